package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/milk9111/arcpong/ecs"
	"github.com/milk9111/arcpong/ecs/component"
	"github.com/milk9111/arcpong/ecs/entity"
	"github.com/milk9111/arcpong/ecs/system"
)

func main() {
	ticks := flag.Int("ticks", 3600, "number of simulation ticks to run")
	left := flag.String("left", "chase", "script driving the left paddle")
	right := flag.String("right", "chase", "script driving the right paddle")
	verbose := flag.Bool("v", false, "log every paddle hit and goal")
	flag.Parse()

	world := ecs.NewWorld()
	scene, err := entity.NewScene(world)
	if err != nil {
		log.Fatal(err)
	}
	if err := scene.AttachScript(world, component.SideLeft, *left); err != nil {
		log.Fatal(err)
	}
	if err := scene.AttachScript(world, component.SideRight, *right); err != nil {
		log.Fatal(err)
	}

	scheduler := ecs.NewScheduler(
		system.NewScriptControlSystem(),
		system.NewPaddleSystem(),
		system.NewPhysicsSystem(),
		system.NewScoreSystem(),
	)

	hits := map[component.Side]int{}
	for tick := 1; tick <= *ticks; tick++ {
		scheduler.Update(world)
		for _, ev := range world.Events().Drain() {
			switch data := ev.Data.(type) {
			case ecs.PaddleHitEvent:
				hits[data.Side]++
				if *verbose {
					log.Printf("tick %d: %s paddle hit", tick, data.Side)
				}
			case ecs.GoalEvent:
				if *verbose {
					log.Printf("tick %d: %s scores (%d - %d)", tick, data.Scorer, data.Left, data.Right)
				}
			}
		}
	}

	board, _ := ecs.Get(world, scene.Board, component.ScoreBoardComponent.Kind())
	arena, _ := ecs.Get(world, scene.Arena, component.ArenaComponent.Kind())
	if board == nil || arena == nil {
		log.Fatal("arcsim: scene is missing its scoreboard or arena")
	}

	fmt.Printf("ticks: %d\n", *ticks)
	fmt.Printf("score: left %d - right %d\n", board.Left, board.Right)
	for _, side := range []component.Side{component.SideLeft, component.SideRight} {
		t, ok := ecs.Get(world, scene.Paddles[side], component.TransformComponent.Kind())
		if !ok {
			continue
		}
		fmt.Printf("%s paddle: angle %.4f rad, rotation %.4f rad, hits %d\n",
			side, arena.AngleAt(t.X, t.Y), t.Rotation, hits[side])
	}
}
