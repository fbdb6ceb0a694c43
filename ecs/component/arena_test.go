package component

import (
	"math"
	"testing"
)

func TestArenaPointAtAngleAt(t *testing.T) {
	arena := DefaultArena()
	for _, angle := range []float64{0, 0.3, math.Pi / 2, 2.5, math.Pi, -math.Pi / 3, -2} {
		x, y := arena.PointAt(angle)
		if r := arena.Reach(x, y); math.Abs(r-1) > 1e-12 {
			t.Fatalf("PointAt(%v) reach = %v, want 1", angle, r)
		}
		got := arena.AngleAt(x, y)
		if d := math.Remainder(got-angle, 2*math.Pi); math.Abs(d) > 1e-12 {
			t.Fatalf("AngleAt(PointAt(%v)) = %v", angle, got)
		}
	}
}

func TestArenaReach(t *testing.T) {
	arena := Arena{Width: 200, Height: 100}
	cases := []struct {
		name string
		x, y float64
		want float64
	}{
		{"center", 100, 50, 0},
		{"right_edge", 200, 50, 1},
		{"top_edge", 100, 100, 1},
		{"outside", 300, 50, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := arena.Reach(c.x, c.y); math.Abs(got-c.want) > 1e-12 {
				t.Fatalf("Reach(%v, %v) = %v, want %v", c.x, c.y, got, c.want)
			}
		})
	}

	if !math.IsInf((Arena{}).Reach(1, 1), 1) {
		t.Fatalf("degenerate arena should report infinite reach")
	}
}

func TestArenaTickSeconds(t *testing.T) {
	if got := (Arena{TickRate: 120}).TickSeconds(); got != 1.0/120 {
		t.Fatalf("TickSeconds = %v", got)
	}
	if got := (Arena{}).TickSeconds(); got != 1.0/DefaultTickRate {
		t.Fatalf("default TickSeconds = %v", got)
	}
}

func TestDefaultArcs(t *testing.T) {
	cases := []struct {
		side     Side
		min, max float64
		axis     string
		rest     float64
	}{
		{SideLeft, -4 * math.Pi / 3, 4 * math.Pi / 3, AxisLeftPaddle, math.Pi},
		{SideRight, -math.Pi / 3, math.Pi / 3, AxisRightPaddle, 0},
	}
	for _, c := range cases {
		t.Run(c.side.String(), func(t *testing.T) {
			lo, hi := DefaultArc(c.side)
			if lo != c.min || hi != c.max {
				t.Fatalf("DefaultArc = [%v, %v], want [%v, %v]", lo, hi, c.min, c.max)
			}
			if c.side.Axis() != c.axis || c.side.RestAngle() != c.rest {
				t.Fatalf("axis %q rest %v", c.side.Axis(), c.side.RestAngle())
			}
			if c.side.Opponent() == c.side {
				t.Fatalf("opponent of %s is itself", c.side)
			}
		})
	}

	if _, err := ParseSide("Top"); err == nil {
		t.Fatalf("expected an error for an unknown side")
	}
	if side, err := ParseSide(" RIGHT "); err != nil || side != SideRight {
		t.Fatalf("ParseSide(RIGHT) = %v, %v", side, err)
	}
}
