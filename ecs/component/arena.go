package component

import "math"

const (
	DefaultArenaWidth  = 100.0
	DefaultArenaHeight = 100.0
	DefaultMotionGain  = 0.05
	DefaultTickRate    = 60
)

// Arena is the scene-wide playfield. The paddle path is the ellipse around
// the center with semi-axes Width/2 and Height/2; with equal extents it is
// a circle. MotionGain is radians of arc per unit of input per tick.
type Arena struct {
	Width      float64
	Height     float64
	MotionGain float64
	TickRate   int
}

func DefaultArena() Arena {
	return Arena{
		Width:      DefaultArenaWidth,
		Height:     DefaultArenaHeight,
		MotionGain: DefaultMotionGain,
		TickRate:   DefaultTickRate,
	}
}

func (a Arena) Center() (float64, float64) {
	return a.Width / 2, a.Height / 2
}

// AngleAt returns the angle of (x, y) around the arena center.
func (a Arena) AngleAt(x, y float64) float64 {
	cx, cy := a.Center()
	return math.Atan2(y-cy, x-cx)
}

// PointAt returns the arc point at angle.
func (a Arena) PointAt(angle float64) (float64, float64) {
	cx, cy := a.Center()
	return cx + math.Cos(angle)*(a.Width/2), cy + math.Sin(angle)*(a.Height/2)
}

// Reach is the normalized elliptical distance of (x, y) from the center:
// 1 on the arc, above 1 outside it.
func (a Arena) Reach(x, y float64) float64 {
	cx, cy := a.Center()
	rx, ry := a.Width/2, a.Height/2
	if rx == 0 || ry == 0 {
		return math.Inf(1)
	}
	dx := (x - cx) / rx
	dy := (y - cy) / ry
	return math.Hypot(dx, dy)
}

// TickSeconds is the fixed simulation step.
func (a Arena) TickSeconds() float64 {
	if a.TickRate <= 0 {
		return 1.0 / DefaultTickRate
	}
	return 1.0 / float64(a.TickRate)
}

var ArenaComponent = NewComponent[Arena]()
