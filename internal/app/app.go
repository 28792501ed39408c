// Package app runs the capture, detect, interpret, apply and render loop of
// the gesture volume controller.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ayusman/gesturevol/internal/capture"
	"github.com/ayusman/gesturevol/internal/detector"
	"github.com/ayusman/gesturevol/internal/gesture"
	"github.com/ayusman/gesturevol/internal/overlay"
	"github.com/ayusman/gesturevol/internal/volume"
	"github.com/rs/zerolog"
	"gocv.io/x/gocv"
)

// State is the frame loop state.
type State int32

const (
	StateStopped State = iota
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "stopped"
}

// CommandBuffer is the capacity of the command channel.
const CommandBuffer = 8

// ErrNoDetector is returned by Run when no detector was set.
var ErrNoDetector = errors.New("no hand detector configured")

// App owns the camera, detector and display for one run of the frame loop.
type App struct {
	config   Config
	camera   capture.Camera
	detector detector.Detector
	display  Display
	sink     *volume.Sink
	renderer *overlay.Renderer
	commands chan Command
	state    atomic.Int32
	release  sync.Once
	log      zerolog.Logger
}

// New creates an App that captures from the configured device. The
// detector must be set with SetDetector before Run. Without SetDisplay a
// HighGUI window is opened when the loop starts.
func New(config Config, sink *volume.Sink, log zerolog.Logger) *App {
	if config.SyncEvery <= 0 {
		config.SyncEvery = 1
	}
	if config.WindowName == "" {
		config.WindowName = DefaultWindowName
	}

	return &App{
		config:   config,
		camera:   capture.NewCamera(config.CameraID, config.Width, config.Height),
		sink:     sink,
		renderer: overlay.NewRenderer(sink.Demo()),
		commands: make(chan Command, CommandBuffer),
		log:      log.With().Str("component", "app").Logger(),
	}
}

// SetCamera replaces the capture device. Call before Run.
func (a *App) SetCamera(c capture.Camera) {
	a.camera = c
}

// SetDetector sets the hand detector implementation to use. Call before Run.
func (a *App) SetDetector(d detector.Detector) {
	a.detector = d
}

// SetDisplay replaces the preview window. Call before Run.
func (a *App) SetDisplay(d Display) {
	a.display = d
}

// Send queues a command for the frame loop without blocking. It reports
// false when the queue is full.
func (a *App) Send(cmd Command) bool {
	select {
	case a.commands <- cmd:
		return true
	default:
		return false
	}
}

// State returns the current loop state.
func (a *App) State() State {
	return State(a.state.Load())
}

// Sink returns the volume sink driven by the loop.
func (a *App) Sink() *volume.Sink {
	return a.sink
}

// Run opens the camera and processes frames until the user quits, a frame
// cannot be read or ctx is done. Only a camera that cannot be opened or a
// panic in the loop is reported as an error. The camera, display and
// detector are released exactly once whichever way Run returns.
func (a *App) Run(ctx context.Context) (err error) {
	if a.detector == nil {
		return ErrNoDetector
	}
	defer a.releaseResources()

	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("start frame loop: %w", err)
	}
	if a.display == nil {
		a.display = NewWindowDisplay(a.config.WindowName)
	}

	defer func() {
		a.state.Store(int32(StateStopped))
		if r := recover(); r != nil {
			err = fmt.Errorf("frame loop panic: %v", r)
		}
	}()

	a.state.Store(int32(StateRunning))
	a.log.Info().
		Int("camera", a.config.CameraID).
		Bool("demo", a.sink.Demo()).
		Msg("Starting main loop (press 'q' to quit)")

	for n := 0; ; n++ {
		if ctx.Err() != nil {
			a.log.Info().Msg("Interrupted, stopping")
			return nil
		}
		if !a.drainCommands() {
			return nil
		}
		if !a.step(n) {
			return nil
		}
	}
}

// step processes one frame. It returns false when the loop should stop.
func (a *App) step(n int) bool {
	frame, err := a.camera.ReadFrame()
	if err != nil {
		a.log.Warn().Err(err).Msg("Failed to read frame from camera")
		return false
	}
	defer frame.Close()

	gocv.Flip(*frame, frame, 1)

	hands := a.detectHands(frame)

	result, err := gesture.Interpret(hands)
	if err != nil {
		a.log.Error().Err(err).Msg("Failed to interpret gesture")
	}

	// A frame that sets the volume skips the read-back.
	state := volume.State{Demo: a.sink.Demo()}
	switch {
	case result.Active:
		a.sink.Set(volume.Percent(result.Distance))
		state.Percent = a.sink.Cached()
		state.Active = true
		state.Distance = result.Distance
		a.log.Debug().
			Stringer("mode", result.Mode).
			Float64("distance", result.Distance).
			Int("percent", state.Percent).
			Msg("Gesture active")
	case n%a.config.SyncEvery == 0:
		state.Percent = a.sink.Get()
	default:
		state.Percent = a.sink.Cached()
	}

	a.renderer.Draw(frame, state, result, hands)
	a.display.Show(frame)

	if cmd, ok := commandForKey(a.display.PollKey()); ok {
		return a.handle(cmd)
	}
	return true
}

func (a *App) detectHands(frame *gocv.Mat) []detector.Hand {
	landmarks, err := a.detector.Detect(frame)
	if err != nil {
		a.log.Error().Err(err).Msg("Hand detection failed")
		return nil
	}
	return detector.ToHands(landmarks, frame.Cols(), frame.Rows())
}

// drainCommands applies every queued command. It returns false on quit.
func (a *App) drainCommands() bool {
	for {
		select {
		case cmd := <-a.commands:
			if !a.handle(cmd) {
				return false
			}
		default:
			return true
		}
	}
}

func (a *App) handle(cmd Command) bool {
	a.log.Info().Stringer("command", cmd).Msg("Command received")

	switch cmd {
	case CommandMute:
		a.sink.Mute()
	case CommandUnmute:
		a.sink.Unmute()
	case CommandQuit:
		return false
	}
	return true
}

func (a *App) releaseResources() {
	a.release.Do(func() {
		a.state.Store(int32(StateStopped))

		if err := a.camera.Close(); err != nil {
			a.log.Error().Err(err).Msg("Error closing camera")
		}
		if a.display != nil {
			if err := a.display.Close(); err != nil {
				a.log.Error().Err(err).Msg("Error closing display")
			}
		}
		if err := a.detector.Close(); err != nil {
			a.log.Error().Err(err).Msg("Error closing detector")
		}

		a.log.Info().Msg("Resources cleaned up")
	})
}
