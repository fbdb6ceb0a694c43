package entity

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/milk9111/arcpong/common"
	"github.com/milk9111/arcpong/ecs"
	"github.com/milk9111/arcpong/ecs/component"
	"github.com/milk9111/arcpong/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"arena":             addArena,
	"axis_input":        addAxisInput,
	"input_bindings":    addInputBindings,
	"paddle":            addPaddle,
	"ball":              addBall,
	"score_board":       addScoreBoard,
	"score_text":        addScoreText,
	"script_controller": addScriptController,
	"transform":         addTransform,
	"shape":             addShape,
	"render_layer":      addRenderLayer,
	"physics_body":      addPhysicsBody,
}

var componentBuildOrder = []string{
	"arena",
	"axis_input",
	"input_bindings",
	"paddle",
	"ball",
	"score_board",
	"score_text",
	"script_controller",
	"transform",
	"shape",
	"render_layer",
	"physics_body",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildEntityFromSpec(w, prefabPath, spec)
}

// BuildEntityFromSpec builds an entity from an already decoded prefab.
func BuildEntityFromSpec(w *ecs.World, prefabPath string, spec prefabs.EntityBuildSpec) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		delete(remaining, name)
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

type arenaSpec = prefabs.ArenaComponentSpec

func addArena(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[arenaSpec](raw)
	if err != nil {
		return fmt.Errorf("decode arena spec: %w", err)
	}
	arena := arenaFromSpec(spec)
	return ecs.Add(w, e, component.ArenaComponent.Kind(), &arena)
}

func arenaFromSpec(spec arenaSpec) component.Arena {
	arena := component.DefaultArena()
	if spec.Width > 0 {
		arena.Width = spec.Width
	}
	if spec.Height > 0 {
		arena.Height = spec.Height
	}
	if spec.MotionGain != 0 {
		arena.MotionGain = spec.MotionGain
	}
	if spec.TickRate > 0 {
		arena.TickRate = spec.TickRate
	}
	return arena
}

func addAxisInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.AxisInputComponent.Kind(), &component.AxisInput{Values: map[string]float64{}})
}

type inputBindingsSpec = prefabs.InputBindingsComponentSpec

func addInputBindings(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[inputBindingsSpec](raw)
	if err != nil {
		return fmt.Errorf("decode input_bindings spec: %w", err)
	}

	names := make([]string, 0, len(spec.Axes))
	for name := range spec.Axes {
		names = append(names, name)
	}
	sort.Strings(names)

	bindings := &component.InputBindings{}
	for _, name := range names {
		axis := spec.Axes[name]
		bindings.Axes = append(bindings.Axes, component.AxisBinding{
			Axis:        name,
			Positive:    axis.Positive,
			Negative:    axis.Negative,
			Gamepad:     axis.Gamepad,
			GamepadAxis: axis.GamepadAxis,
			Invert:      axis.Invert,
			Deadzone:    axis.Deadzone,
		})
	}
	return ecs.Add(w, e, component.InputBindingsComponent.Kind(), bindings)
}

type paddleSpec = prefabs.PaddleComponentSpec

func addPaddle(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[paddleSpec](raw)
	if err != nil {
		return fmt.Errorf("decode paddle spec: %w", err)
	}
	side, err := component.ParseSide(spec.Side)
	if err != nil {
		return err
	}

	paddle := component.NewPaddle(side, spec.Width, spec.Height)
	if spec.MinAngleDeg != nil {
		paddle.MinAngle = *spec.MinAngleDeg * math.Pi / 180
	}
	if spec.MaxAngleDeg != nil {
		paddle.MaxAngle = *spec.MaxAngleDeg * math.Pi / 180
	}
	if !common.WithinArc(side.RestAngle(), paddle.MinAngle, paddle.MaxAngle) && ctx != nil {
		log.Printf("entity: %s: %s paddle arc excludes its rest angle, it will snap on the first move", ctx.PrefabPath, side)
	}
	return ecs.Add(w, e, component.PaddleComponent.Kind(), &paddle)
}

type ballSpec = prefabs.BallComponentSpec

func addBall(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[ballSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ball spec: %w", err)
	}
	return ecs.Add(w, e, component.BallComponent.Kind(), &component.Ball{
		Radius:    spec.Radius,
		VelocityX: spec.VelocityX,
		VelocityY: spec.VelocityY,
		Speed:     math.Hypot(spec.VelocityX, spec.VelocityY),
	})
}

func addScoreBoard(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ScoreBoardComponent.Kind(), &component.ScoreBoard{})
}

type scoreTextSpec = prefabs.ScoreTextComponentSpec

func addScoreText(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[scoreTextSpec](raw)
	if err != nil {
		return fmt.Errorf("decode score_text spec: %w", err)
	}
	side, err := component.ParseSide(spec.Side)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ScoreTextComponent.Kind(), &component.ScoreText{
		Side:    side,
		OffsetX: spec.OffsetX,
		OffsetY: spec.OffsetY,
		Size:    spec.Size,
	})
}

type scriptControllerSpec = prefabs.ScriptControllerComponentSpec

func addScriptController(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[scriptControllerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode script_controller spec: %w", err)
	}
	if strings.TrimSpace(spec.Script) == "" {
		return fmt.Errorf("script_controller requires a script")
	}
	return ecs.Add(w, e, component.ScriptControllerComponent.Kind(), &component.ScriptController{Script: spec.Script})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type shapeSpec = prefabs.ShapeComponentSpec

func addShape(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[shapeSpec](raw)
	if err != nil {
		return fmt.Errorf("decode shape spec: %w", err)
	}

	var kind component.ShapeKind
	switch strings.ToLower(strings.TrimSpace(spec.Kind)) {
	case "", "rect":
		kind = component.ShapeRect
	case "circle":
		kind = component.ShapeCircle
	case "ring":
		kind = component.ShapeRing
	default:
		return fmt.Errorf("unknown shape kind %q", spec.Kind)
	}

	var clr color.Color = color.White
	if spec.Color != nil && spec.Color.Color != nil {
		clr = spec.Color.Color
	}

	return ecs.Add(w, e, component.ShapeComponent.Kind(), &component.Shape{
		Kind:   kind,
		Width:  spec.Width,
		Height: spec.Height,
		Radius: spec.Radius,
		Color:  clr,
	})
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render_layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics_body spec: %w", err)
	}
	if spec.Kinematic && (spec.Width <= 0 || spec.Height <= 0) {
		return fmt.Errorf("kinematic physics_body needs width and height")
	}
	if !spec.Kinematic && spec.Radius <= 0 && (spec.Width <= 0 || spec.Height <= 0) {
		return fmt.Errorf("physics_body needs a radius or width and height")
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:      spec.Width,
		Height:     spec.Height,
		Radius:     spec.Radius,
		Mass:       spec.Mass,
		Friction:   spec.Friction,
		Elasticity: spec.Elasticity,
		Kinematic:  spec.Kinematic,
	})
}
