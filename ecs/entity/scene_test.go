package entity

import (
	"math"
	"testing"

	"github.com/milk9111/arcpong/common"
	"github.com/milk9111/arcpong/ecs"
	"github.com/milk9111/arcpong/ecs/component"
	"github.com/milk9111/arcpong/prefabs"
)

func TestNewSceneBuildsMatch(t *testing.T) {
	w := ecs.NewWorld()
	scene, err := NewScene(w)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}

	arena, ok := ecs.Get(w, scene.Arena, component.ArenaComponent.Kind())
	if !ok {
		t.Fatalf("scene has no arena")
	}
	if arena.Width != 100 || arena.Height != 100 || arena.MotionGain != 0.05 {
		t.Fatalf("unexpected arena %+v", *arena)
	}

	if _, ok := ecs.Get(w, scene.Input, component.AxisInputComponent.Kind()); !ok {
		t.Fatalf("scene has no input snapshot")
	}
	bindings, ok := ecs.Get(w, scene.Input, component.InputBindingsComponent.Kind())
	if !ok || len(bindings.Axes) != 2 {
		t.Fatalf("expected two axis bindings, got %+v", bindings)
	}
	if bindings.Axes[0].Axis != component.AxisLeftPaddle || bindings.Axes[1].Axis != component.AxisRightPaddle {
		t.Fatalf("bindings not sorted by axis: %+v", bindings.Axes)
	}

	ball, ok := ecs.Get(w, scene.Ball, component.BallComponent.Kind())
	if !ok || ball.Radius != 2 || ball.VelocityX != 75 || ball.VelocityY != 50 {
		t.Fatalf("unexpected ball %+v", ball)
	}
	if _, ok := ecs.Get(w, scene.Board, component.ScoreBoardComponent.Kind()); !ok {
		t.Fatalf("scene has no scoreboard")
	}

	var texts []component.Side
	ecs.ForEach(w, component.ScoreTextComponent.Kind(), func(_ ecs.Entity, st *component.ScoreText) {
		texts = append(texts, st.Side)
	})
	if len(texts) != 2 {
		t.Fatalf("expected two score texts, got %v", texts)
	}
}

func TestNewScenePaddlesRestOnArc(t *testing.T) {
	w := ecs.NewWorld()
	scene, err := NewScene(w)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	arena, _ := ecs.Get(w, scene.Arena, component.ArenaComponent.Kind())

	cases := []struct {
		side  component.Side
		angle float64
		x, y  float64
	}{
		{component.SideLeft, math.Pi, 0, 50},
		{component.SideRight, 0, 100, 50},
	}

	for _, c := range cases {
		t.Run(c.side.String(), func(t *testing.T) {
			e, ok := scene.Paddles[c.side]
			if !ok {
				t.Fatalf("no %s paddle", c.side)
			}
			paddle, _ := ecs.Get(w, e, component.PaddleComponent.Kind())
			tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())

			if math.Abs(tr.X-c.x) > 1e-9 || math.Abs(tr.Y-c.y) > 1e-9 {
				t.Fatalf("paddle at (%v, %v), want (%v, %v)", tr.X, tr.Y, c.x, c.y)
			}
			if tr.Rotation != 0 {
				t.Fatalf("paddle rotation %v, want 0", tr.Rotation)
			}
			angle := arena.AngleAt(tr.X, tr.Y)
			if math.Abs(common.NormalizeAngle(angle-c.angle)) > 1e-9 {
				t.Fatalf("paddle angle %v, want %v", angle, c.angle)
			}
			if !common.WithinArc(angle, paddle.MinAngle, paddle.MaxAngle) {
				t.Fatalf("rest angle %v outside [%v, %v]", angle, paddle.MinAngle, paddle.MaxAngle)
			}
			wantMin, wantMax := component.DefaultArc(c.side)
			if paddle.MinAngle != wantMin || paddle.MaxAngle != wantMax {
				t.Fatalf("arc [%v, %v], want [%v, %v]", paddle.MinAngle, paddle.MaxAngle, wantMin, wantMax)
			}
			if _, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); !ok {
				t.Fatalf("paddle has no physics body")
			}
		})
	}
}

func TestAttachScript(t *testing.T) {
	w := ecs.NewWorld()
	scene, err := NewScene(w)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}

	if err := scene.AttachScript(w, component.SideRight, "chase"); err != nil {
		t.Fatalf("AttachScript: %v", err)
	}
	ctrl, ok := ecs.Get(w, scene.Paddles[component.SideRight], component.ScriptControllerComponent.Kind())
	if !ok || ctrl.Script != "chase" {
		t.Fatalf("expected chase controller, got %+v", ctrl)
	}
	if ecs.Has(w, scene.Paddles[component.SideLeft], component.ScriptControllerComponent.Kind()) {
		t.Fatalf("left paddle should stay player controlled")
	}

	if err := scene.AttachScript(w, component.SideLeft, " "); err == nil {
		t.Fatalf("expected an error for an empty script name")
	}

	empty := &Scene{Paddles: map[component.Side]ecs.Entity{}}
	if err := empty.AttachScript(w, component.SideLeft, "chase"); err == nil {
		t.Fatalf("expected an error without paddles")
	}
}

func TestReloadKeepsGeometry(t *testing.T) {
	w := ecs.NewWorld()
	scene, err := NewScene(w)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}

	arena, _ := ecs.Get(w, scene.Arena, component.ArenaComponent.Kind())
	arena.MotionGain = 1
	arena.Width = 10
	if err := scene.ReloadArena(w); err != nil {
		t.Fatalf("ReloadArena: %v", err)
	}
	if arena.MotionGain != 0.05 || arena.Width != 10 {
		t.Fatalf("reload should restore the gain and keep extents, got %+v", *arena)
	}

	ball, _ := ecs.Get(w, scene.Ball, component.BallComponent.Kind())
	ball.Speed = 1
	if err := scene.ReloadBall(w); err != nil {
		t.Fatalf("ReloadBall: %v", err)
	}
	if math.Abs(ball.Speed-math.Hypot(75, 50)) > 1e-9 {
		t.Fatalf("ball speed %v after reload", ball.Speed)
	}
}

func TestBuildEntityFromSpec(t *testing.T) {
	cases := []struct {
		name    string
		spec    prefabs.EntityBuildSpec
		wantErr bool
	}{
		{
			name: "paddle_with_custom_arc",
			spec: prefabs.EntityBuildSpec{Components: map[string]any{
				"paddle":    map[string]any{"side": "right", "width": 4, "height": 4, "min_angle_deg": -30.0, "max_angle_deg": 30.0},
				"transform": map[string]any{"x": 1, "y": 2},
			}},
		},
		{name: "empty", spec: prefabs.EntityBuildSpec{}, wantErr: true},
		{
			name: "unknown_component",
			spec: prefabs.EntityBuildSpec{Components: map[string]any{
				"transform": map[string]any{},
				"sprite":    map[string]any{"image": "paddle.png"},
			}},
			wantErr: true,
		},
		{
			name: "bad_side",
			spec: prefabs.EntityBuildSpec{Components: map[string]any{
				"paddle": map[string]any{"side": "top"},
			}},
			wantErr: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e, err := BuildEntityFromSpec(w, c.name+".yaml", c.spec)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected an error")
				}
				if len(ecs.Entities(w)) != 0 {
					t.Fatalf("failed build left %d entities behind", len(ecs.Entities(w)))
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildEntityFromSpec: %v", err)
			}

			paddle, ok := ecs.Get(w, e, component.PaddleComponent.Kind())
			if !ok {
				t.Fatalf("paddle missing")
			}
			if math.Abs(paddle.MinAngle+math.Pi/6) > 1e-12 || math.Abs(paddle.MaxAngle-math.Pi/6) > 1e-12 {
				t.Fatalf("arc [%v, %v], want ±π/6", paddle.MinAngle, paddle.MaxAngle)
			}
			tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			if tr.X != 1 || tr.Y != 2 || tr.ScaleX != 1 || tr.ScaleY != 1 {
				t.Fatalf("unexpected transform %+v", *tr)
			}
		})
	}
}
