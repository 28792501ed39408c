package volume

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// fakeBackend records calls and can be told to fail.
type fakeBackend struct {
	scalar   float64
	muted    bool
	applied  []float64
	reads    int
	applyErr error
	readErr  error
	muteErr  error
}

func (f *fakeBackend) ApplyScalar(s float64) error {
	f.applied = append(f.applied, s)
	if f.applyErr != nil {
		return f.applyErr
	}
	f.scalar = s
	return nil
}

func (f *fakeBackend) ReadScalar() (float64, error) {
	f.reads++
	if f.readErr != nil {
		return 0, f.readErr
	}
	return f.scalar, nil
}

func (f *fakeBackend) SetMute(m bool) error {
	if f.muteErr != nil {
		return f.muteErr
	}
	f.muted = m
	return nil
}

func TestSink_DefaultPercent(t *testing.T) {
	s := NewSink(false, nil, zerolog.Nop())
	if got := s.Get(); got != DefaultPercent {
		t.Errorf("Get() = %d, want %d", got, DefaultPercent)
	}
}

func TestSink_DemoMode(t *testing.T) {
	backend := &fakeBackend{scalar: 0.2}
	s := NewSink(false, backend, zerolog.Nop())

	if !s.Demo() {
		t.Fatal("disabled sink should be in demo mode")
	}

	s.Set(75)
	if got := s.Get(); got != 75 {
		t.Errorf("Get() = %d, want 75", got)
	}

	s.Mute()
	s.Unmute()

	if len(backend.applied) != 0 || backend.reads != 0 || backend.muted {
		t.Errorf("demo mode touched the backend: %+v", backend)
	}
}

func TestSink_NoopBackendIsDemo(t *testing.T) {
	s := NewSink(true, Noop{}, zerolog.Nop())
	if !s.Demo() {
		t.Error("Noop backend should put the sink in demo mode")
	}
	s.Set(30)
	if s.Get() != 30 {
		t.Errorf("Get() = %d, want 30", s.Get())
	}
}

func TestSink_SetAppliesScalar(t *testing.T) {
	backend := &fakeBackend{}
	s := NewSink(true, backend, zerolog.Nop())

	if s.Demo() {
		t.Fatal("enabled sink with backend should not be in demo mode")
	}

	s.Set(75)

	if len(backend.applied) != 1 || backend.applied[0] != 0.75 {
		t.Errorf("applied = %v, want [0.75]", backend.applied)
	}
}

func TestSink_SetClamps(t *testing.T) {
	backend := &fakeBackend{}
	s := NewSink(true, backend, zerolog.Nop())

	s.Set(140)
	if s.Cached() != 100 {
		t.Errorf("Cached() = %d, want 100", s.Cached())
	}
	s.Set(-3)
	if s.Cached() != 0 {
		t.Errorf("Cached() = %d, want 0", s.Cached())
	}
	if backend.applied[0] != 1.0 || backend.applied[1] != 0.0 {
		t.Errorf("applied = %v, want [1 0]", backend.applied)
	}
}

func TestSink_GetReflectsExternalChanges(t *testing.T) {
	backend := &fakeBackend{}
	s := NewSink(true, backend, zerolog.Nop())

	s.Set(40)
	backend.scalar = 0.29 // changed from OS controls

	if got := s.Get(); got != 29 {
		t.Errorf("Get() = %d, want 29", got)
	}
	if s.Cached() != 29 {
		t.Errorf("Cached() = %d, want 29 after Get", s.Cached())
	}
}

func TestSink_FailuresFallBackToCache(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	backend := &fakeBackend{
		applyErr: errors.New("device gone"),
		readErr:  errors.New("device gone"),
		muteErr:  errors.New("device gone"),
	}
	s := NewSink(true, backend, log)

	s.Set(64)
	if got := s.Get(); got != 64 {
		t.Errorf("Get() = %d, want cached 64", got)
	}
	s.Mute()

	out := buf.String()
	for _, msg := range []string{"Failed to set volume", "Failed to get volume", "Failed to change mute state"} {
		if !strings.Contains(out, msg) {
			t.Errorf("expected log %q, got:\n%s", msg, out)
		}
	}
}

func TestSink_MuteUnmute(t *testing.T) {
	backend := &fakeBackend{}
	s := NewSink(true, backend, zerolog.Nop())

	s.Mute()
	if !backend.muted {
		t.Error("expected backend to be muted")
	}
	s.Unmute()
	if backend.muted {
		t.Error("expected backend to be unmuted")
	}
}

func TestSink_CachedDoesNotRead(t *testing.T) {
	backend := &fakeBackend{scalar: 0.9}
	s := NewSink(true, backend, zerolog.Nop())

	if s.Cached() != DefaultPercent {
		t.Errorf("Cached() = %d, want %d", s.Cached(), DefaultPercent)
	}
	if backend.reads != 0 {
		t.Errorf("Cached() read the backend %d times", backend.reads)
	}
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name    string
		backend Backend
		wantErr bool
	}{
		{"nil", nil, true},
		{"noop", Noop{}, true},
		{"healthy", &fakeBackend{scalar: 0.5}, false},
		{"read error", &fakeBackend{readErr: errors.New("no device")}, true},
		{"out of range", &fakeBackend{scalar: 1.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Probe(tt.backend)
			if (err != nil) != tt.wantErr {
				t.Errorf("Probe() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNoop(t *testing.T) {
	var b Noop
	if err := b.ApplyScalar(0.5); !errors.Is(err, ErrUnavailable) {
		t.Errorf("ApplyScalar() = %v, want ErrUnavailable", err)
	}
	if _, err := b.ReadScalar(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("ReadScalar() = %v, want ErrUnavailable", err)
	}
	if err := b.SetMute(true); !errors.Is(err, ErrUnavailable) {
		t.Errorf("SetMute() = %v, want ErrUnavailable", err)
	}
}
