package system

import (
	"fmt"
	"math"
	"testing"

	"github.com/milk9111/arcpong/ecs"
	"github.com/milk9111/arcpong/ecs/component"
)

func inlineScripts(scripts map[string]string) func(string) ([]byte, error) {
	return func(name string) ([]byte, error) {
		src, ok := scripts[name]
		if !ok {
			return nil, fmt.Errorf("script %q not found", name)
		}
		return []byte(src), nil
	}
}

func newScriptFixture(t *testing.T, side component.Side, paddleAngle, ballAngle float64, script string) paddleFixture {
	t.Helper()

	f := newPaddleFixture(t, side, paddleAngle)
	if err := ecs.Add(f.w, f.paddle, component.ScriptControllerComponent.Kind(), &component.ScriptController{Script: script}); err != nil {
		t.Fatalf("add script controller: %v", err)
	}

	arena := component.DefaultArena()
	bx, by := arena.PointAt(ballAngle)
	cx, cy := arena.Center()
	ball := ecs.CreateEntity(f.w)
	if err := ecs.Add(f.w, ball, component.BallComponent.Kind(), &component.Ball{Radius: 2}); err != nil {
		t.Fatalf("add ball: %v", err)
	}
	// halfway between center and the arc
	if err := ecs.Add(f.w, ball, component.TransformComponent.Kind(), &component.Transform{X: (bx + cx) / 2, Y: (by + cy) / 2}); err != nil {
		t.Fatalf("add ball transform: %v", err)
	}
	return f
}

func TestScriptControlSetsAxis(t *testing.T) {
	scripts := map[string]string{
		"half":     `axis := 0.5`,
		"huge":     `axis := 3`,
		"negative": `axis := -7.5`,
		"follow":   `axis := ball_angle > paddle_angle ? 1.0 : -1.0`,
		"distance": `axis := ball_distance`,
		"bounds":   `axis := max_angle - min_angle > 2 ? 1.0 : 0.0`,
	}

	cases := []struct {
		name   string
		side   component.Side
		script string
		ball   float64
		want   float64
	}{
		{"plain_value", component.SideRight, "half", 0.5, 0.5},
		{"clamped_high", component.SideRight, "huge", 0.5, 1},
		{"clamped_low", component.SideLeft, "negative", 0.5, -1},
		{"reads_angles", component.SideRight, "follow", 0.5, 1},
		{"reads_angles_below", component.SideRight, "follow", -0.5, -1},
		{"reads_distance", component.SideRight, "distance", 0.3, 0.5},
		{"reads_arc", component.SideRight, "bounds", 0, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newScriptFixture(t, c.side, c.side.RestAngle(), c.ball, c.script)

			NewScriptControlSystemWithLoader(inlineScripts(scripts)).Update(f.w)

			got, ok := f.input.Axis(c.side.Axis())
			if !ok {
				t.Fatalf("axis %q not written", c.side.Axis())
			}
			if math.Abs(got-c.want) > tolerance {
				t.Fatalf("axis = %v, want %v", got, c.want)
			}
			if _, ok := f.input.Axis(c.side.Opponent().Axis()); ok {
				t.Fatalf("script wrote the opponent's axis")
			}
		})
	}
}

func TestScriptControlFailuresReadAsZero(t *testing.T) {
	scripts := map[string]string{
		"broken":  `axis := (`,
		"no_axis": `speed := 1`,
		"panics":  `axis := 1 / 0`,
	}

	for _, name := range []string{"broken", "no_axis", "panics", "missing", ""} {
		t.Run(fmt.Sprintf("script_%q", name), func(t *testing.T) {
			f := newScriptFixture(t, component.SideRight, 0, 0.5, name)
			sys := NewScriptControlSystemWithLoader(inlineScripts(scripts))

			for iter := 0; iter < 2; iter++ {
				f.input.Set(component.AxisRightPaddle, 0.9)
				sys.Update(f.w)
				got, ok := f.input.Axis(component.AxisRightPaddle)
				if !ok || got != 0 {
					t.Fatalf("failed script should write 0, got %v ok=%v", got, ok)
				}
			}
		})
	}
}

func TestScriptControlReload(t *testing.T) {
	scripts := map[string]string{"ai": `axis := (`}
	f := newScriptFixture(t, component.SideLeft, math.Pi, 0, "ai")
	sys := NewScriptControlSystemWithLoader(inlineScripts(scripts))

	sys.Update(f.w)
	if got, _ := f.input.Axis(component.AxisLeftPaddle); got != 0 {
		t.Fatalf("broken script should read as 0, got %v", got)
	}

	scripts["ai"] = `axis := -0.25`
	sys.Update(f.w)
	if got, _ := f.input.Axis(component.AxisLeftPaddle); got != 0 {
		t.Fatalf("script should stay disabled until reload, got %v", got)
	}

	sys.Reload()
	sys.Update(f.w)
	if got, _ := f.input.Axis(component.AxisLeftPaddle); got != -0.25 {
		t.Fatalf("reloaded script axis = %v, want -0.25", got)
	}
}

func TestChaseScriptDrivesPaddleTowardBall(t *testing.T) {
	cases := []struct {
		name string
		ball float64
		want float64
	}{
		{"ball_above", 0.8, 1},
		{"ball_below", -0.8, -1},
		{"ball_level", 0, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newScriptFixture(t, component.SideRight, 0, c.ball, "chase")

			NewScriptControlSystem().Update(f.w)

			got, ok := f.input.Axis(component.AxisRightPaddle)
			if !ok || math.Abs(got-c.want) > 1e-6 {
				t.Fatalf("chase axis = %v ok=%v, want %v", got, ok, c.want)
			}
		})
	}
}

func TestScriptedPaddleFollowsBall(t *testing.T) {
	f := newScriptFixture(t, component.SideRight, 0, 0.6, "chase")
	sched := ecs.NewScheduler(NewScriptControlSystem(), NewPaddleSystem())

	arena := component.DefaultArena()
	for iter := 0; iter < 40; iter++ {
		sched.Update(f.w)
	}

	tr := f.transform(t)
	if got := arena.AngleAt(tr.X, tr.Y); math.Abs(got-0.6) > 0.05 {
		t.Fatalf("paddle angle %v, expected to settle near 0.6", got)
	}
}
