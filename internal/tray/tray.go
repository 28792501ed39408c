// Package tray provides an optional system tray menu for the gesture volume
// controller.
package tray

import (
	"sync"

	"github.com/ayusman/gesturevol/internal/app"
	"github.com/getlantern/systray"
	"github.com/rs/zerolog"
)

// Sender accepts commands for the frame loop. *app.App implements it.
type Sender interface {
	Send(cmd app.Command) bool
}

var _ Sender = (*app.App)(nil)

// Status lines shown in the menu.
const (
	StatusActive = "Volume: active"
	StatusMuted  = "Volume: muted"
	StatusDemo   = "Volume: demo mode"
)

// Tray represents the system tray menu.
type Tray struct {
	sender  Sender
	log     zerolog.Logger
	mu      sync.Mutex
	status  string
	unmuted string

	// Menu items stored for later updates
	menuStatus *systray.MenuItem
}

// New creates a Tray that forwards clicks to sender. With demo set the
// unmuted status reads StatusDemo.
func New(sender Sender, demo bool, log zerolog.Logger) *Tray {
	unmuted := StatusActive
	if demo {
		unmuted = StatusDemo
	}
	return &Tray{
		sender:  sender,
		log:     log.With().Str("component", "tray").Logger(),
		status:  unmuted,
		unmuted: unmuted,
	}
}

// Start registers the tray without taking over the calling goroutine, so
// the preview window can keep the main thread.
func (t *Tray) Start() {
	systray.Register(t.onReady, t.onExit)
}

// Stop removes the tray icon.
func (t *Tray) Stop() {
	systray.Quit()
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("GestureVol")
	systray.SetTooltip("Gesture Volume Controller")

	t.mu.Lock()
	t.menuStatus = systray.AddMenuItem(t.status, "Volume control status")
	t.menuStatus.Disable()
	t.mu.Unlock()
	systray.AddSeparator()

	menuMute := systray.AddMenuItem("Mute", "Mute system output")
	menuUnmute := systray.AddMenuItem("Unmute", "Unmute system output")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit GestureVol")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-menuMute.ClickedCh:
				t.handle(app.CommandMute)
			case <-menuUnmute.ClickedCh:
				t.handle(app.CommandUnmute)
			case <-menuQuit.ClickedCh:
				t.handle(app.CommandQuit)
				return
			}
		}
	}()
}

func (t *Tray) onExit() {
	t.log.Debug().Msg("Tray exited")
}

// handle forwards cmd and updates the status line.
func (t *Tray) handle(cmd app.Command) {
	if !t.sender.Send(cmd) {
		t.log.Warn().Stringer("command", cmd).Msg("Command queue full, dropping click")
		return
	}

	switch cmd {
	case app.CommandMute:
		t.SetStatus(StatusMuted)
	case app.CommandUnmute:
		t.SetStatus(t.unmuted)
	}
}

// SetStatus updates the status line in the menu.
func (t *Tray) SetStatus(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.status = text
	if t.menuStatus != nil {
		t.menuStatus.SetTitle(text)
	}
}

// Status returns the current status line.
func (t *Tray) Status() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}
