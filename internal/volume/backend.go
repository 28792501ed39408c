package volume

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned by a Backend that cannot reach the platform
// audio interface.
var ErrUnavailable = errors.New("volume backend unavailable")

// Backend is the platform audio capability. Scalars are linear 0.0-1.0.
// Every method may fail; callers are expected to degrade rather than abort.
type Backend interface {
	ApplyScalar(scalar float64) error
	ReadScalar() (float64, error)
	SetMute(muted bool) error
}

// Noop is the backend used when no platform audio interface is available.
type Noop struct{}

func (Noop) ApplyScalar(float64) error    { return ErrUnavailable }
func (Noop) ReadScalar() (float64, error) { return 0, ErrUnavailable }
func (Noop) SetMute(bool) error           { return ErrUnavailable }

// Probe checks that a backend can read the current volume. It is the
// startup initialization check used to decide between b and Noop.
func Probe(b Backend) error {
	if b == nil {
		return ErrUnavailable
	}
	if _, ok := b.(Noop); ok {
		return ErrUnavailable
	}

	scalar, err := b.ReadScalar()
	if err != nil {
		return fmt.Errorf("probe volume backend: %w", err)
	}
	if scalar < 0 || scalar > 1 {
		return fmt.Errorf("probe volume backend: scalar %f out of range", scalar)
	}
	return nil
}
