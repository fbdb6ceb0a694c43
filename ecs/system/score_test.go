package system

import (
	"testing"

	"github.com/milk9111/arcpong/ecs"
	"github.com/milk9111/arcpong/ecs/component"
)

func newScoreWorld(t *testing.T, x, y float64) (*ecs.World, ecs.Entity, *component.ScoreBoard) {
	t.Helper()

	w := ecs.NewWorld()
	arena := component.DefaultArena()
	if err := ecs.Add(w, ecs.CreateEntity(w), component.ArenaComponent.Kind(), &arena); err != nil {
		t.Fatalf("add arena: %v", err)
	}

	board := &component.ScoreBoard{}
	if err := ecs.Add(w, ecs.CreateEntity(w), component.ScoreBoardComponent.Kind(), board); err != nil {
		t.Fatalf("add board: %v", err)
	}

	ball := ecs.CreateEntity(w)
	if err := ecs.Add(w, ball, component.BallComponent.Kind(), &component.Ball{Radius: 2, VelocityX: 75, VelocityY: 50}); err != nil {
		t.Fatalf("add ball: %v", err)
	}
	if err := ecs.Add(w, ball, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	return w, ball, board
}

func TestScoreSystem(t *testing.T) {
	cases := []struct {
		name      string
		x, y      float64
		wantLeft  int
		wantRight int
		wantGoal  bool
	}{
		{"inside", 60, 40, 0, 0, false},
		{"touching_ring_is_not_out", 51, 0, 0, 0, false},
		{"left_exit_right_scores", -3, 50, 0, 1, true},
		{"right_exit_left_scores", 103, 50, 1, 0, true},
		{"corner_exit", 95, 95, 1, 0, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, ball, board := newScoreWorld(t, c.x, c.y)

			NewScoreSystem().Update(w)

			if board.Left != c.wantLeft || board.Right != c.wantRight {
				t.Fatalf("score = %d-%d, want %d-%d", board.Left, board.Right, c.wantLeft, c.wantRight)
			}

			events := w.Events().Drain()
			if !c.wantGoal {
				if len(events) != 0 {
					t.Fatalf("unexpected events %v", events)
				}
				return
			}
			if len(events) != 1 || events[0].Type != ecs.EventGoal {
				t.Fatalf("expected one goal event, got %v", events)
			}
			goal, ok := events[0].Data.(ecs.GoalEvent)
			if !ok || goal.Left != c.wantLeft || goal.Right != c.wantRight {
				t.Fatalf("unexpected goal payload %#v", events[0].Data)
			}

			tr, _ := ecs.Get(w, ball, component.TransformComponent.Kind())
			if tr.X != 50 || tr.Y != 50 {
				t.Fatalf("ball not served from center: (%v, %v)", tr.X, tr.Y)
			}
			b, _ := ecs.Get(w, ball, component.BallComponent.Kind())
			if b.VelocityX != -75 || b.VelocityY != 50 {
				t.Fatalf("expected reversed horizontal velocity, got (%v, %v)", b.VelocityX, b.VelocityY)
			}
		})
	}
}

func TestScoreSystemWithoutBoard(t *testing.T) {
	w := ecs.NewWorld()
	ball := ecs.CreateEntity(w)
	if err := ecs.Add(w, ball, component.BallComponent.Kind(), &component.Ball{Radius: 2, VelocityX: 1}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, ball, component.TransformComponent.Kind(), &component.Transform{X: -50, Y: -50}); err != nil {
		t.Fatal(err)
	}

	NewScoreSystem().Update(w)

	tr, _ := ecs.Get(w, ball, component.TransformComponent.Kind())
	if tr.X != -50 || tr.Y != -50 || w.Events().Len() != 0 {
		t.Fatalf("score system acted without a scoreboard")
	}
}

func TestBallOutMargin(t *testing.T) {
	arena := component.DefaultArena()
	ball := &component.Ball{Radius: 2}
	semi := arena.Width / 2

	inside := &component.Transform{X: 50 + semi + ball.Radius - 0.01, Y: 50}
	if ballOut(arena, ball, inside) {
		t.Fatalf("ball still overlapping the ring should not be out")
	}
	outside := &component.Transform{X: 50 + semi + ball.Radius + 0.01, Y: 50}
	if !ballOut(arena, ball, outside) {
		t.Fatalf("ball past the ring should be out")
	}
	if ballOut(component.Arena{}, ball, outside) {
		t.Fatalf("degenerate arena should never report out")
	}
}
