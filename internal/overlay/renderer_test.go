package overlay

import (
	"image"
	"strings"
	"testing"

	"github.com/ayusman/gesturevol/internal/detector"
	"github.com/ayusman/gesturevol/internal/gesture"
	"github.com/ayusman/gesturevol/internal/volume"
	"gocv.io/x/gocv"
)

func newFrame(t *testing.T) gocv.Mat {
	t.Helper()
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	t.Cleanup(func() { frame.Close() })
	return frame
}

func bgrAt(frame *gocv.Mat, row, col int) [3]uint8 {
	v := frame.GetVecbAt(row, col)
	return [3]uint8{v[0], v[1], v[2]}
}

func TestLineThickness(t *testing.T) {
	tests := []struct {
		dist float64
		want int
	}{
		{0, 3},
		{35, 3},
		{36, 3},
		{60, 5},
		{119.9, 9},
		{120, 10},
		{500, 10},
	}

	for _, tt := range tests {
		if got := LineThickness(tt.dist); got != tt.want {
			t.Errorf("LineThickness(%v) = %d, want %d", tt.dist, got, tt.want)
		}
	}
}

func TestBarRect(t *testing.T) {
	got := BarRect(640)
	want := image.Rect(560, 100, 600, 400)
	if got != want {
		t.Errorf("BarRect(640) = %v, want %v", got, want)
	}
}

func TestRenderer_DrawVolumeBar_Color(t *testing.T) {
	r := NewRenderer(false)

	tests := []struct {
		name   string
		active bool
		want   [3]uint8 // BGR
	}{
		{"active is green", true, [3]uint8{ColorActive.B, ColorActive.G, ColorActive.R}},
		{"inactive is red", false, [3]uint8{ColorInactive.B, ColorInactive.G, ColorInactive.R}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := newFrame(t)
			r.DrawVolumeBar(&frame, volume.State{Percent: 50, Active: tt.active})

			if got := bgrAt(&frame, 350, 580); got != tt.want {
				t.Errorf("filled pixel = %v, want %v", got, tt.want)
			}
			// Above the fill level the bar stays empty
			if got := bgrAt(&frame, 150, 580); got != [3]uint8{0, 0, 0} {
				t.Errorf("unfilled pixel = %v, want black", got)
			}
		})
	}
}

func TestRenderer_DrawVolumeBar_Empty(t *testing.T) {
	frame := newFrame(t)
	NewRenderer(false).DrawVolumeBar(&frame, volume.State{Percent: 0, Active: true})

	if got := bgrAt(&frame, 350, 580); got != [3]uint8{0, 0, 0} {
		t.Errorf("pixel at 0%% = %v, want black", got)
	}
}

func TestRenderer_Draw_KeepsFrameSize(t *testing.T) {
	frame := newFrame(t)

	hand := detector.Hand{Label: detector.HandRight, Points: make([]image.Point, detector.NumLandmarks)}
	for i := range hand.Points {
		hand.Points[i] = image.Pt(200+i*5, 300-i*5)
	}
	result := gesture.Result{
		Active:   true,
		Mode:     gesture.ModeSingleHand,
		From:     image.Pt(150, 300),
		To:       image.Pt(250, 300),
		Distance: 100,
	}

	NewRenderer(true).Draw(&frame, volume.State{Percent: 44, Active: true}, result, []detector.Hand{hand})

	if frame.Rows() != 480 || frame.Cols() != 640 {
		t.Errorf("frame size = %dx%d, want 640x480", frame.Cols(), frame.Rows())
	}
	if frame.Type() != gocv.MatTypeCV8UC3 {
		t.Errorf("frame type = %v, want CV8UC3", frame.Type())
	}

	// Center dot of the connection
	want := [3]uint8{ColorActive.B, ColorActive.G, ColorActive.R}
	if got := bgrAt(&frame, 300, 200); got != want {
		t.Errorf("center pixel = %v, want %v", got, want)
	}
}

func TestRenderer_Draw_EmptyFrame(t *testing.T) {
	frame := gocv.NewMat()
	defer frame.Close()

	// Must not panic
	NewRenderer(false).Draw(&frame, volume.State{}, gesture.Result{}, nil)
	NewRenderer(false).Draw(nil, volume.State{}, gesture.Result{}, nil)
}

func TestRenderer_DrawHands_SkipsPartial(t *testing.T) {
	frame := newFrame(t)
	partial := detector.Hand{Label: detector.HandLeft, Points: []image.Point{{X: 100, Y: 100}}}

	NewRenderer(false).DrawHands(&frame, []detector.Hand{partial})

	if got := bgrAt(&frame, 100, 100); got != [3]uint8{0, 0, 0} {
		t.Errorf("partial hand was drawn: pixel = %v", got)
	}
}

func TestRenderer_InfoLines(t *testing.T) {
	tests := []struct {
		name     string
		demo     bool
		state    volume.State
		contains []string
		excludes []string
	}{
		{
			name:     "active",
			state:    volume.State{Percent: 73, Active: true},
			contains: []string{"Status: ACTIVE", "Volume: 73%"},
			excludes: []string{"DEMO MODE"},
		},
		{
			name:     "waiting",
			state:    volume.State{Percent: 50},
			contains: []string{"Status: Waiting...", "Volume: 50%"},
		},
		{
			name:     "renderer demo",
			demo:     true,
			state:    volume.State{Percent: 10},
			contains: []string{"DEMO MODE (No audio control)"},
		},
		{
			name:     "state demo",
			state:    volume.State{Demo: true},
			contains: []string{"DEMO MODE (No audio control)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := strings.Join(NewRenderer(tt.demo).InfoLines(tt.state), "\n")
			if !strings.HasPrefix(lines, "Gesture Volume Controller\nThumb +Raise index\nMove fingers to adjust volume") {
				t.Errorf("unexpected header lines:\n%s", lines)
			}
			for _, want := range tt.contains {
				if !strings.Contains(lines, want) {
					t.Errorf("missing %q in:\n%s", want, lines)
				}
			}
			for _, not := range tt.excludes {
				if strings.Contains(lines, not) {
					t.Errorf("unexpected %q in:\n%s", not, lines)
				}
			}
		})
	}
}
