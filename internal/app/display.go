package app

import (
	"sync"

	"gocv.io/x/gocv"
)

// Display shows frames and reports key presses.
type Display interface {
	Show(frame *gocv.Mat)
	// PollKey waits briefly for a key press and returns its code, or -1.
	PollKey() int
	Close() error
}

// windowDisplay is a HighGUI window.
type windowDisplay struct {
	window *gocv.Window
}

// NewWindowDisplay opens a preview window with the given title.
func NewWindowDisplay(name string) Display {
	return &windowDisplay{window: gocv.NewWindow(name)}
}

func (d *windowDisplay) Show(frame *gocv.Mat) {
	d.window.IMShow(*frame)
}

func (d *windowDisplay) PollKey() int {
	return d.window.WaitKey(1)
}

func (d *windowDisplay) Close() error {
	return d.window.Close()
}

// MockDisplay records shown frames and replays scripted key presses.
type MockDisplay struct {
	mu     sync.Mutex
	keys   []int
	shown  int
	closes int
}

// NewMockDisplay returns a display that yields keys in order, then -1.
func NewMockDisplay(keys ...int) *MockDisplay {
	return &MockDisplay{keys: keys}
}

func (d *MockDisplay) Show(frame *gocv.Mat) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shown++
}

func (d *MockDisplay) PollKey() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.keys) == 0 {
		return -1
	}
	k := d.keys[0]
	d.keys = d.keys[1:]
	return k
}

func (d *MockDisplay) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closes++
	return nil
}

// Shown returns the number of frames shown.
func (d *MockDisplay) Shown() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shown
}

// Closes returns how many times Close was called.
func (d *MockDisplay) Closes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closes
}
