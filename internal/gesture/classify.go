// Package gesture classifies hand landmarks into the scalar and angular
// signals that drive the control channels: palm orientation, fist closure,
// pinch distance, and the two-hand distance and steering signals.
//
// All functions are pure geometry over well-formed 21-point hands; callers
// must reject malformed hands before classification.
package gesture

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// orientationEpsilon keeps the yaw angle stable when the palm faces the
// camera directly and the z component of the palm vector approaches zero.
const orientationEpsilon = 0.001

// fistSlack is the tolerance applied to the tip-vs-knuckle comparison so
// landmark noise does not flip a finger between open and closed.
const fistSlack = 1.15

// fistMinClosed is how many of the four non-thumb fingers must read as
// closed before the hand counts as a fist; tolerating one misdetected
// finger keeps the fist lock from flickering.
const fistMinClosed = 3

// Tilt is the palm orientation signal: pitch (X) and yaw (Y) in radians.
type Tilt struct {
	X float64
	Y float64
}

// Steering is the two-hand rotation signal: the steering-wheel angle between
// the wrists and the vertical position of the hand pair mapped to [-1, 1].
type Steering struct {
	YRotation float64
	XRotation float64
}

// Orientation derives the palm tilt from the wrist-to-middle-knuckle vector.
func Orientation(hand *detector.HandLandmarks) Tilt {
	wrist := hand.Points[detector.Wrist]
	mcp := hand.Points[detector.MiddleMCP]

	dx := mcp.X - wrist.X
	dy := mcp.Y - wrist.Y
	dz := mcp.Z - wrist.Z

	return Tilt{
		X: math.Atan2(dy, math.Hypot(dx, dz)),
		Y: math.Atan2(dx, math.Abs(dz)+orientationEpsilon),
	}
}

// IsFist reports whether the hand is closed into a fist. A non-thumb finger
// counts as closed when its tip sits closer to the wrist (in the image
// plane) than its knuckle, with 15% slack for landmark noise.
func IsFist(hand *detector.HandLandmarks) bool {
	wrist := hand.Points[detector.Wrist]

	fingers := [4][2]int{
		{detector.IndexTip, detector.IndexMCP},
		{detector.MiddleTip, detector.MiddleMCP},
		{detector.RingTip, detector.RingMCP},
		{detector.PinkyTip, detector.PinkyMCP},
	}

	closed := 0
	for _, f := range fingers {
		tipDist := planarDistance(hand.Points[f[0]], wrist)
		mcpDist := planarDistance(hand.Points[f[1]], wrist)
		if tipDist < mcpDist*fistSlack {
			closed++
		}
	}
	return closed >= fistMinClosed
}

// PinchDistance is the planar distance between the thumb tip and the index
// tip, used as the one-hand scale signal.
func PinchDistance(hand *detector.HandLandmarks) float64 {
	return planarDistance(hand.Points[detector.ThumbTip], hand.Points[detector.IndexTip])
}

// TwoHandDistance is the planar distance between the two wrists, used as
// the two-hand scale signal.
func TwoHandDistance(a, b *detector.HandLandmarks) float64 {
	return planarDistance(a.Points[detector.Wrist], b.Points[detector.Wrist])
}

// TwoHandRotation derives the steering signal from a pair of hands: the
// angle of the wrist-to-wrist line and the vertical position of the pair
// remapped from [0,1] screen space to [-1,1].
func TwoHandRotation(a, b *detector.HandLandmarks) Steering {
	wa := a.Points[detector.Wrist]
	wb := b.Points[detector.Wrist]

	avgY := (wa.Y + wb.Y) / 2

	return Steering{
		YRotation: math.Atan2(wb.Y-wa.Y, wb.X-wa.X),
		XRotation: (avgY - 0.5) * 2,
	}
}

// planarDistance is the Euclidean distance between two landmarks in the
// image plane, ignoring relative depth.
func planarDistance(a, b detector.Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
