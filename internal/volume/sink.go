package volume

import (
	"math"

	"github.com/rs/zerolog"
)

// DefaultPercent is the last-known volume before anything has been applied
// or read.
const DefaultPercent = 50

// Sink applies volume percentages to a Backend and remembers the last-known
// value. When disabled, or without a usable backend, it only records values.
//
// A Sink is not safe for concurrent use; the frame loop owns it.
type Sink struct {
	backend Backend
	native  bool
	current int
	log     zerolog.Logger
}

// NewSink creates a Sink. With enabled false or a nil/Noop backend the sink
// runs in demo mode and never calls the backend.
func NewSink(enabled bool, backend Backend, log zerolog.Logger) *Sink {
	s := &Sink{
		backend: Noop{},
		current: DefaultPercent,
		log:     log.With().Str("component", "volume").Logger(),
	}

	_, isNoop := backend.(Noop)
	if enabled && backend != nil && !isNoop {
		s.backend = backend
		s.native = true
	} else {
		s.log.Warn().Bool("enabled", enabled).Msg("Volume control disabled or platform backend unavailable")
	}

	return s
}

// Demo reports whether the sink only records values.
func (s *Sink) Demo() bool {
	return !s.native
}

// Set records percent (clamped to 0-100) and applies it to the backend.
// Backend failures are logged; the recorded value is kept.
func (s *Sink) Set(percent int) {
	s.current = clamp(percent)

	if !s.native {
		return
	}

	if err := s.backend.ApplyScalar(float64(s.current) / 100.0); err != nil {
		s.log.Error().Err(err).Int("percent", s.current).Msg("Failed to set volume")
	}
}

// Get reads the platform volume so external changes are picked up, caches
// it and returns it. On failure, or in demo mode, the cached value is returned.
func (s *Sink) Get() int {
	if !s.native {
		return s.current
	}

	scalar, err := s.backend.ReadScalar()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to get volume")
		return s.current
	}

	s.current = clamp(int(math.Round(scalar * 100)))
	return s.current
}

// Cached returns the last-known percentage without touching the backend.
func (s *Sink) Cached() int {
	return s.current
}

// Mute mutes the output. Best effort.
func (s *Sink) Mute() {
	s.setMute(true)
}

// Unmute unmutes the output. Best effort.
func (s *Sink) Unmute() {
	s.setMute(false)
}

func (s *Sink) setMute(muted bool) {
	if !s.native {
		return
	}
	if err := s.backend.SetMute(muted); err != nil {
		s.log.Error().Err(err).Bool("muted", muted).Msg("Failed to change mute state")
	}
}
