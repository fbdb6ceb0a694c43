package system

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arcpong/ecs"
	"github.com/milk9111/arcpong/ecs/component"
)

// ScoreSystem awards a point once the ball has fully left the arena and
// serves it again from the center, heading back the way it came.
type ScoreSystem struct{}

func NewScoreSystem() *ScoreSystem {
	return &ScoreSystem{}
}

func (s *ScoreSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	boardEnt, ok := w.First(component.ScoreBoardComponent.Kind())
	if !ok {
		return
	}
	board, ok := ecs.Get(w, boardEnt, component.ScoreBoardComponent.Kind())
	if !ok {
		return
	}
	arena := arenaOf(w)
	cx, cy := arena.Center()

	ecs.ForEach2(w, component.BallComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ball *component.Ball, transform *component.Transform) {
		if !ballOut(arena, ball, transform) {
			return
		}

		scorer := component.SideLeft
		if transform.X < cx {
			scorer = component.SideRight
		}
		board.Award(scorer)
		log.Printf("score: %s scores, %d - %d", scorer, board.Left, board.Right)
		w.Events().Push(ecs.Event{Type: ecs.EventGoal, Data: ecs.GoalEvent{
			Scorer: scorer,
			Left:   board.Left,
			Right:  board.Right,
		}})

		transform.X, transform.Y = cx, cy
		ball.VelocityX = -ball.VelocityX
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
			body.Body.SetPosition(cp.Vector{X: cx, Y: cy})
			body.Body.SetVelocity(ball.VelocityX, ball.VelocityY)
		}
	})
}

// ballOut reports whether the whole ball lies outside the arena arc.
func ballOut(arena component.Arena, ball *component.Ball, transform *component.Transform) bool {
	semi := math.Min(arena.Width, arena.Height) / 2
	if semi <= 0 {
		return false
	}
	return arena.Reach(transform.X, transform.Y) > 1+ball.Radius/semi
}
