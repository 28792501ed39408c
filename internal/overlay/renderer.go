// Package overlay draws the volume bar, info panel and gesture markers onto
// camera frames using GoCV.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/ayusman/gesturevol/internal/detector"
	"github.com/ayusman/gesturevol/internal/gesture"
	"github.com/ayusman/gesturevol/internal/volume"
	"gocv.io/x/gocv"
)

// Palette
var (
	ColorActive   = color.RGBA{R: 50, G: 205, B: 50, A: 0}
	ColorInactive = color.RGBA{R: 200, G: 50, B: 50, A: 0}
	ColorLine     = color.RGBA{R: 180, G: 180, B: 180, A: 0}
	ColorGlow     = color.RGBA{R: 120, G: 120, B: 120, A: 0}
	ColorText     = color.RGBA{R: 230, G: 230, B: 230, A: 0}
	ColorWaiting  = color.RGBA{R: 255, G: 100, B: 0, A: 0}
	ColorDemo     = color.RGBA{R: 255, G: 120, B: 0, A: 0}
	ColorPanel    = color.RGBA{R: 0, G: 0, B: 0, A: 0}
	ColorBorder   = color.RGBA{R: 255, G: 255, B: 255, A: 0}
	ColorLandmark = color.RGBA{R: 255, G: 0, B: 0, A: 0}
	ColorSkeleton = color.RGBA{R: 224, G: 224, B: 224, A: 0}
)

// Volume bar geometry, relative to the frame's right edge.
const (
	BarRightInset = 80
	BarTop        = 100
	BarWidth      = 40
	BarHeight     = 300
)

// PanelAlpha is the opacity of the info panel background.
const PanelAlpha = 0.35

var panelRect = image.Rect(10, 10, 420, 145)

// HandConnections is the MediaPipe hand skeleton as landmark index pairs.
var HandConnections = [][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 4},
	{0, 5}, {5, 6}, {6, 7}, {7, 8},
	{5, 9}, {9, 10}, {10, 11}, {11, 12},
	{9, 13}, {13, 14}, {14, 15}, {15, 16},
	{13, 17}, {0, 17}, {17, 18}, {18, 19}, {19, 20},
}

// Renderer draws the overlay. It keeps no state between frames; Demo only
// selects the demo notice in the info panel.
type Renderer struct {
	Demo bool
}

// NewRenderer creates a Renderer.
func NewRenderer(demo bool) *Renderer {
	return &Renderer{Demo: demo}
}

// Draw composes the full overlay for one frame in place.
func (r *Renderer) Draw(frame *gocv.Mat, state volume.State, result gesture.Result, hands []detector.Hand) {
	if frame == nil || frame.Empty() {
		return
	}

	r.DrawHands(frame, hands)
	if result.Active {
		r.DrawConnection(frame, result.From, result.To)
	}
	r.DrawVolumeBar(frame, state)
	r.DrawInfoPanel(frame, state)
}

// DrawHands draws the landmark skeleton of every usable hand.
func (r *Renderer) DrawHands(frame *gocv.Mat, hands []detector.Hand) {
	for _, h := range hands {
		if !h.Usable() {
			continue
		}
		for _, c := range HandConnections {
			gocv.Line(frame, h.Points[c[0]], h.Points[c[1]], ColorSkeleton, 2)
		}
		for _, p := range h.Points {
			gocv.Circle(frame, p, 2, ColorLandmark, 2)
		}
	}
}

// LineThickness is the main connection line width for two points dist
// pixels apart.
func LineThickness(dist float64) int {
	t := int(dist) / 12
	if t < 3 {
		return 3
	}
	if t > 10 {
		return 10
	}
	return t
}

// DrawConnection draws the line between the two gesture points with
// endpoint markers and a center dot sized by the line width.
func (r *Renderer) DrawConnection(frame *gocv.Mat, from, to image.Point) {
	dist := math.Hypot(float64(to.X-from.X), float64(to.Y-from.Y))
	thickness := LineThickness(dist)

	gocv.Line(frame, from, to, ColorGlow, thickness+8)
	gocv.Line(frame, from, to, ColorLine, thickness)

	for _, pt := range []image.Point{from, to} {
		gocv.Circle(frame, pt, 16, ColorGlow, -1)
		gocv.Circle(frame, pt, 10, ColorActive, -1)
	}

	center := image.Pt((from.X+to.X)/2, (from.Y+to.Y)/2)
	gocv.Circle(frame, center, max(6, thickness), ColorActive, -1)
}

// BarRect returns the volume bar outline for a frame of the given width.
func BarRect(frameWidth int) image.Rectangle {
	x := frameWidth - BarRightInset
	return image.Rect(x, BarTop, x+BarWidth, BarTop+BarHeight)
}

// DrawVolumeBar draws the vertical bar filled to state.Percent.
func (r *Renderer) DrawVolumeBar(frame *gocv.Mat, state volume.State) {
	bar := BarRect(frame.Cols())
	gocv.Rectangle(frame, bar, ColorInactive, 2)

	fill := state.Percent * BarHeight / 100
	fillColor := ColorInactive
	if state.Active {
		fillColor = ColorActive
	}
	gocv.Rectangle(frame, image.Rect(bar.Min.X, bar.Max.Y-fill, bar.Max.X, bar.Max.Y), fillColor, -1)

	gocv.PutText(frame, fmt.Sprintf("%d%%", state.Percent),
		image.Pt(bar.Min.X-10, bar.Max.Y+30),
		gocv.FontHersheySimplex, 0.7, ColorText, 2)
}

type panelLine struct {
	text  string
	color color.RGBA
}

// InfoLines returns the panel text for state, top to bottom.
func (r *Renderer) InfoLines(state volume.State) []string {
	lines := r.infoLines(state)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.text
	}
	return out
}

func (r *Renderer) infoLines(state volume.State) []panelLine {
	status := panelLine{"Status: Waiting...", ColorWaiting}
	if state.Active {
		status = panelLine{"Status: ACTIVE", ColorActive}
	}

	lines := []panelLine{
		{"Gesture Volume Controller", ColorText},
		{"Thumb +Raise index", ColorText},
		{"Move fingers to adjust volume", ColorText},
		status,
		{fmt.Sprintf("Volume: %d%%", state.Percent), ColorActive},
	}
	if r.Demo || state.Demo {
		lines = append(lines, panelLine{"DEMO MODE (No audio control)", ColorDemo})
	}
	return lines
}

// DrawInfoPanel blends a dark panel into the top-left corner and writes the
// status text and the quit hint.
func (r *Renderer) DrawInfoPanel(frame *gocv.Mat, state volume.State) {
	shade := frame.Clone()
	defer shade.Close()

	gocv.Rectangle(&shade, panelRect, ColorPanel, -1)
	gocv.AddWeighted(shade, PanelAlpha, *frame, 1-PanelAlpha, 0, frame)
	gocv.RectangleWithParams(frame, panelRect, ColorBorder, 2, gocv.LineAA, 0)

	for i, l := range r.infoLines(state) {
		gocv.PutTextWithParams(frame, l.text, image.Pt(25, 38+i*25),
			gocv.FontHersheySimplex, 0.6, l.color, 1, gocv.LineAA, false)
	}

	gocv.PutTextWithParams(frame, "Press 'q' to quit", image.Pt(20, frame.Rows()-20),
		gocv.FontHersheySimplex, 0.5, ColorText, 1, gocv.LineAA, false)
}
