package entity

import (
	"fmt"
	"math"

	"github.com/milk9111/arcpong/ecs"
	"github.com/milk9111/arcpong/ecs/component"
	"github.com/milk9111/arcpong/prefabs"
)

// Scene holds the handles of a built match.
type Scene struct {
	Arena   ecs.Entity
	Input   ecs.Entity
	Ball    ecs.Entity
	Board   ecs.Entity
	Paddles map[component.Side]ecs.Entity
}

// NewScene builds every prefab listed in scene.yaml and rests each paddle
// on the arc at its side's starting angle.
func NewScene(w *ecs.World) (*Scene, error) {
	spec, err := prefabs.LoadSceneSpec()
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	scene := &Scene{Paddles: make(map[component.Side]ecs.Entity, 2)}
	for _, prefab := range spec.Entities {
		e, err := BuildEntity(w, prefab)
		if err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
		scene.track(w, e)
	}

	if err := scene.restPaddles(w); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return scene, nil
}

func (s *Scene) track(w *ecs.World, e ecs.Entity) {
	switch {
	case ecs.Has(w, e, component.ArenaComponent.Kind()):
		s.Arena = e
	case ecs.Has(w, e, component.AxisInputComponent.Kind()):
		s.Input = e
	case ecs.Has(w, e, component.BallComponent.Kind()):
		s.Ball = e
	case ecs.Has(w, e, component.ScoreBoardComponent.Kind()):
		s.Board = e
	}
	if paddle, ok := ecs.Get(w, e, component.PaddleComponent.Kind()); ok {
		s.Paddles[paddle.Side] = e
	}
}

func (s *Scene) arena(w *ecs.World) component.Arena {
	if arena, ok := ecs.Get(w, s.Arena, component.ArenaComponent.Kind()); ok {
		return *arena
	}
	return component.DefaultArena()
}

func (s *Scene) restPaddles(w *ecs.World) error {
	arena := s.arena(w)
	for side, e := range s.Paddles {
		x, y := arena.PointAt(side.RestAngle())
		if err := SetEntityTransform(w, e, x, y, 0); err != nil {
			return fmt.Errorf("rest %s paddle: %w", side, err)
		}
	}
	return nil
}

// AttachScript hands a side's paddle over to a tengo script.
func (s *Scene) AttachScript(w *ecs.World, side component.Side, script string) error {
	e, ok := s.Paddles[side]
	if !ok {
		return fmt.Errorf("scene: no %s paddle", side)
	}
	return addScriptController(w, e, map[string]any{"script": script}, nil)
}

// ReloadArena re-reads the arena tuning. Only the motion gain and tick rate
// change; the arena extents and paddle arcs stay as built.
func (s *Scene) ReloadArena(w *ecs.World) error {
	spec, err := prefabs.ComponentSpec[arenaSpec]("arena.yaml", "arena")
	if err != nil {
		return fmt.Errorf("scene: reload arena: %w", err)
	}
	arena, ok := ecs.Get(w, s.Arena, component.ArenaComponent.Kind())
	if !ok {
		return fmt.Errorf("scene: reload arena: arena entity missing")
	}
	fresh := arenaFromSpec(spec)
	arena.MotionGain = fresh.MotionGain
	arena.TickRate = fresh.TickRate
	return nil
}

// ReloadBall re-reads the ball speed, keeping its current heading.
func (s *Scene) ReloadBall(w *ecs.World) error {
	spec, err := prefabs.ComponentSpec[ballSpec]("ball.yaml", "ball")
	if err != nil {
		return fmt.Errorf("scene: reload ball: %w", err)
	}
	ball, ok := ecs.Get(w, s.Ball, component.BallComponent.Kind())
	if !ok {
		return fmt.Errorf("scene: reload ball: ball entity missing")
	}
	ball.Speed = math.Hypot(spec.VelocityX, spec.VelocityY)
	return nil
}
