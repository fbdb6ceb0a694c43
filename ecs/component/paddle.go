package component

import (
	"fmt"
	"math"
	"strings"
)

// Side identifies which half of the arena a paddle defends.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

const (
	AxisLeftPaddle  = "left_paddle"
	AxisRightPaddle = "right_paddle"
)

// Axis is the input axis that drives paddles on this side.
func (s Side) Axis() string {
	if s == SideRight {
		return AxisRightPaddle
	}
	return AxisLeftPaddle
}

// RestAngle is the arc angle a paddle on this side starts at.
func (s Side) RestAngle() float64 {
	if s == SideRight {
		return 0
	}
	return math.Pi
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideRight {
		return SideLeft
	}
	return SideRight
}

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// ParseSide accepts "left" or "right", case-insensitively.
func ParseSide(v string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "left":
		return SideLeft, nil
	case "right":
		return SideRight, nil
	}
	return SideLeft, fmt.Errorf("unknown side %q", v)
}

// DefaultArc returns the allowed angle range for a side. The left arc is
// wider and centered on π, the right one is centered on 0.
func DefaultArc(s Side) (minAngle, maxAngle float64) {
	if s == SideRight {
		return -math.Pi / 3, math.Pi / 3
	}
	return -4 * math.Pi / 3, 4 * math.Pi / 3
}

// Paddle is static per-paddle configuration. MinAngle and MaxAngle bound
// the arc, inclusive, in radians.
type Paddle struct {
	Side     Side
	Width    float64
	Height   float64
	MinAngle float64
	MaxAngle float64
}

// NewPaddle builds a paddle with the side's default arc.
func NewPaddle(side Side, width, height float64) Paddle {
	lo, hi := DefaultArc(side)
	return Paddle{
		Side:     side,
		Width:    width,
		Height:   height,
		MinAngle: lo,
		MaxAngle: hi,
	}
}

var PaddleComponent = NewComponent[Paddle]()
