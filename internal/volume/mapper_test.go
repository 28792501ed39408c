package volume

import (
	"math"
	"testing"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		want     int
	}{
		{"lower bound", 20, 0},
		{"midpoint", 110, 50},
		{"upper bound", 200, 100},
		{"below range", 5, 0},
		{"zero", 0, 0},
		{"negative", -150, 0},
		{"above range", 450, 100},
		{"quarter", 65, 25},
		{"rounds up", 21, 1},
		{"rounds down", 20.8, 0},
		{"just below top", 199.5, 100},
		{"positive infinity", math.Inf(1), 100},
		{"negative infinity", math.Inf(-1), 0},
		{"NaN", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percent(tt.distance); got != tt.want {
				t.Errorf("Percent(%v) = %d, want %d", tt.distance, got, tt.want)
			}
		})
	}
}

func TestPercent_AlwaysInRange(t *testing.T) {
	for d := -500.0; d <= 700; d += 0.25 {
		p := Percent(d)
		if p < 0 || p > 100 {
			t.Fatalf("Percent(%v) = %d out of range", d, p)
		}
		if d <= MinDistance && p != 0 {
			t.Fatalf("Percent(%v) = %d, want 0", d, p)
		}
		if d >= MaxDistance && p != 100 {
			t.Fatalf("Percent(%v) = %d, want 100", d, p)
		}
	}
}

func TestPercent_Monotonic(t *testing.T) {
	prev := Percent(MinDistance)
	for d := MinDistance; d <= MaxDistance; d++ {
		p := Percent(d)
		if p < prev {
			t.Fatalf("Percent(%v) = %d decreased from %d", d, p, prev)
		}
		prev = p
	}
}
