package app

import (
	"errors"
	"fmt"

	"github.com/ayusman/gesturevol/internal/capture"
)

// DefaultWindowName is the title of the preview window.
const DefaultWindowName = "Hand Volume Controller"

// Config holds configuration options for the frame loop.
type Config struct {
	CameraID     int
	Width        int
	Height       int
	AudioEnabled bool
	// SyncEvery is how often, in frames, the platform volume is read back.
	SyncEvery  int
	WindowName string
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	return Config{
		CameraID:     capture.DefaultDevice,
		Width:        capture.DefaultWidth,
		Height:       capture.DefaultHeight,
		AudioEnabled: true,
		SyncEvery:    1,
		WindowName:   DefaultWindowName,
	}
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.CameraID < 0:
		return fmt.Errorf("%w: camera index %d is negative", ErrInvalidConfig, c.CameraID)
	case c.Width <= 0:
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidConfig, c.Width)
	case c.Height <= 0:
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalidConfig, c.Height)
	case c.SyncEvery <= 0:
		return fmt.Errorf("%w: sync-every must be positive, got %d", ErrInvalidConfig, c.SyncEvery)
	}
	return nil
}
