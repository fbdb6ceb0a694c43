package system

import (
	"github.com/milk9111/arcpong/common"
	"github.com/milk9111/arcpong/ecs"
	"github.com/milk9111/arcpong/ecs/component"
)

// PaddleSystem moves every paddle along the arena arc from its side's input
// axis, keeping it inside its allowed arc.
type PaddleSystem struct{}

func NewPaddleSystem() *PaddleSystem {
	return &PaddleSystem{}
}

func (p *PaddleSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	inputEnt, ok := w.First(component.AxisInputComponent.Kind())
	if !ok {
		return
	}
	input, ok := ecs.Get(w, inputEnt, component.AxisInputComponent.Kind())
	if !ok {
		return
	}
	arena := arenaOf(w)

	ecs.ForEach2(w, component.PaddleComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, paddle *component.Paddle, transform *component.Transform) {
		value, bound := input.Axis(paddle.Side.Axis())
		if !bound {
			return
		}
		MovePaddle(arena, paddle, transform, value)
	})
}

// MovePaddle applies one tick of arc motion for the given axis value. A zero
// axis leaves the transform untouched.
func MovePaddle(arena component.Arena, paddle *component.Paddle, transform *component.Transform, axis float64) {
	if paddle == nil || transform == nil || axis == 0 {
		return
	}

	angle := arena.AngleAt(transform.X, transform.Y)
	candidate := angle + arena.MotionGain*axis
	clamped := common.ClampAngle(candidate, paddle.MinAngle, paddle.MaxAngle)

	transform.X, transform.Y = arena.PointAt(clamped)
	transform.Rotation += common.NormalizeAngle(angle - clamped)
}

func arenaOf(w *ecs.World) component.Arena {
	if e, ok := w.First(component.ArenaComponent.Kind()); ok {
		if arena, ok := ecs.Get(w, e, component.ArenaComponent.Kind()); ok {
			return *arena
		}
	}
	return component.DefaultArena()
}
