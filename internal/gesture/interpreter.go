// Package gesture turns detected hand landmarks into a volume gesture.
package gesture

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/ayusman/gesturevol/internal/detector"
)

// ErrMalformedHand is returned when a hand carries more landmarks than the
// detector's model defines.
var ErrMalformedHand = errors.New("malformed hand landmarks")

// Mode identifies which gesture produced a Result.
type Mode int

const (
	// ModeNone means no gesture was recognized.
	ModeNone Mode = iota
	// ModeTwoHand is the thumb-to-opposite-index gesture across two hands.
	ModeTwoHand
	// ModeSingleHand is the thumb-to-index pinch with index and middle raised.
	ModeSingleHand
)

func (m Mode) String() string {
	switch m {
	case ModeTwoHand:
		return "two-hand"
	case ModeSingleHand:
		return "single-hand"
	default:
		return "none"
	}
}

// Result is the outcome of interpreting one frame.
// From, To and Distance are only meaningful when Active is true.
type Result struct {
	Active   bool
	Mode     Mode
	From     image.Point
	To       image.Point
	Distance float64
}

// Finger indices into the FingersUp result.
const (
	Thumb = iota
	Index
	Middle
	Ring
	Pinky
)

// Interpret decides whether hands form a volume gesture.
//
// Hands with fewer than 21 landmarks are ignored. With two usable hands the
// pair must be labeled one Left and one Right. With one usable hand the index
// and middle fingers must be raised. Any other combination is inactive.
func Interpret(hands []detector.Hand) (Result, error) {
	usable := make([]detector.Hand, 0, 2)
	for i, h := range hands {
		if len(h.Points) > detector.NumLandmarks {
			return Result{}, fmt.Errorf("hand %d has %d landmarks: %w", i, len(h.Points), ErrMalformedHand)
		}
		if !h.Usable() {
			continue
		}
		usable = append(usable, h)
		if len(usable) == 2 {
			break
		}
	}

	switch len(usable) {
	case 2:
		return interpretTwoHands(usable[0], usable[1]), nil
	case 1:
		return interpretSingleHand(usable[0]), nil
	default:
		return Result{}, nil
	}
}

func interpretTwoHands(a, b detector.Hand) Result {
	var left, right *detector.Hand
	for _, h := range []*detector.Hand{&a, &b} {
		switch h.Label {
		case detector.HandLeft:
			if left != nil {
				return Result{}
			}
			left = h
		case detector.HandRight:
			if right != nil {
				return Result{}
			}
			right = h
		case detector.HandUnknown:
			return Result{}
		}
	}
	if left == nil || right == nil {
		return Result{}
	}

	leftThumb, rightIndex := left.Points[detector.ThumbTip], right.Points[detector.IndexTip]
	rightThumb, leftIndex := right.Points[detector.ThumbTip], left.Points[detector.IndexTip]

	dLR := Distance(leftThumb, rightIndex)
	dRL := Distance(rightThumb, leftIndex)

	if dLR <= dRL {
		return Result{Active: true, Mode: ModeTwoHand, From: leftThumb, To: rightIndex, Distance: dLR}
	}
	return Result{Active: true, Mode: ModeTwoHand, From: rightThumb, To: leftIndex, Distance: dRL}
}

func interpretSingleHand(h detector.Hand) Result {
	up := FingersUp(h)
	if !up[Index] || !up[Middle] {
		return Result{}
	}

	thumb, index := h.Points[detector.ThumbTip], h.Points[detector.IndexTip]
	return Result{
		Active:   true,
		Mode:     ModeSingleHand,
		From:     thumb,
		To:       index,
		Distance: Distance(thumb, index),
	}
}

// FingersUp reports thumb, index, middle, ring and pinky extension.
//
// The thumb counts as up when its tip is right of its IP joint, which holds
// for a mirrored selfie view. The other fingers are up when the tip is above
// (smaller y) the PIP joint two landmarks below it. A hand without a full
// landmark set reports every finger down.
func FingersUp(h detector.Hand) [5]bool {
	var up [5]bool
	if !h.Usable() {
		return up
	}

	p := h.Points
	up[Thumb] = p[detector.ThumbTip].X > p[detector.ThumbIP].X

	tips := [...]int{detector.IndexTip, detector.MiddleTip, detector.RingTip, detector.PinkyTip}
	for i, tip := range tips {
		up[Index+i] = p[tip].Y < p[tip-2].Y
	}
	return up
}

// Distance is the Euclidean distance between two pixel positions.
func Distance(a, b image.Point) float64 {
	return math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
}
