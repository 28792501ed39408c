// Package detector provides hand landmark detection interfaces and types.
package detector

import (
	"image"
	"strings"
)

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Handedness is the left/right classification of a detected hand.
type Handedness int

const (
	// HandUnknown is used when the detector reports no usable label.
	HandUnknown Handedness = iota
	// HandLeft is a hand classified as "Left".
	HandLeft
	// HandRight is a hand classified as "Right".
	HandRight
)

// ParseHandedness converts a detector label into a Handedness.
// Anything other than "left" or "right" (case-insensitive) is HandUnknown.
func ParseHandedness(label string) Handedness {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "left":
		return HandLeft
	case "right":
		return HandRight
	default:
		return HandUnknown
	}
}

// String returns the MediaPipe label for h.
func (h Handedness) String() string {
	switch h {
	case HandLeft:
		return "Left"
	case HandRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (h Handedness) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Handedness) UnmarshalText(text []byte) error {
	*h = ParseHandedness(string(text))
	return nil
}

// Point3D represents a normalized landmark position. X and Y are in the
// 0..1 range relative to the frame, Z is relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness Handedness            `json:"handedness"`
	Score      float64               `json:"score"`
}

// Hand is a detected hand in pixel coordinates.
// Only a hand with exactly NumLandmarks points is usable.
type Hand struct {
	Label  Handedness
	Points []image.Point
}

// Usable reports whether the hand carries a full landmark set.
func (h Hand) Usable() bool {
	return len(h.Points) == NumLandmarks
}

// ToPixels scales the normalized landmarks to a width x height frame.
// Coordinates are truncated toward zero.
func (h *HandLandmarks) ToPixels(width, height int) Hand {
	hand := Hand{
		Label:  h.Handedness,
		Points: make([]image.Point, NumLandmarks),
	}
	for i := 0; i < NumLandmarks; i++ {
		hand.Points[i] = image.Point{
			X: int(h.Points[i].X * float64(width)),
			Y: int(h.Points[i].Y * float64(height)),
		}
	}
	return hand
}

// ToHands converts a detection result to pixel hands for a frame.
func ToHands(landmarks []HandLandmarks, width, height int) []Hand {
	if len(landmarks) == 0 {
		return nil
	}
	hands := make([]Hand, len(landmarks))
	for i := range landmarks {
		hands[i] = landmarks[i].ToPixels(width, height)
	}
	return hands
}
