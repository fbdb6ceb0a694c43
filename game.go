package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/arcpong/ecs"
	"github.com/milk9111/arcpong/ecs/component"
	"github.com/milk9111/arcpong/ecs/entity"
	"github.com/milk9111/arcpong/ecs/input"
	"github.com/milk9111/arcpong/ecs/render"
	"github.com/milk9111/arcpong/ecs/system"
	"github.com/milk9111/arcpong/prefabs"
)

const (
	baseWidth  = 600
	baseHeight = 600
)

type Game struct {
	frames int
	debug  bool

	world     *ecs.World
	scene     *entity.Scene
	scheduler *ecs.Scheduler
	scripts   *system.ScriptControlSystem
	physics   *system.PhysicsSystem
	renderer  *render.RenderSystem
	watcher   *prefabs.Watcher
}

// NewGame builds the scene and the per-tick system order: device input,
// scripted input, paddle motion, ball physics, then scoring.
func NewGame(debug, watch bool, ai string) (*Game, error) {
	world := ecs.NewWorld()
	scene, err := entity.NewScene(world)
	if err != nil {
		return nil, err
	}

	sides, err := scriptedSides(ai)
	if err != nil {
		return nil, err
	}
	for _, side := range sides {
		if err := scene.AttachScript(world, side, "chase"); err != nil {
			return nil, err
		}
	}

	scripts := system.NewScriptControlSystem()
	physics := system.NewPhysicsSystem()
	g := &Game{
		debug:   debug,
		world:   world,
		scene:   scene,
		scripts: scripts,
		physics: physics,
		scheduler: ecs.NewScheduler(
			input.NewInputSystem(),
			scripts,
			system.NewPaddleSystem(),
			physics,
			system.NewScoreSystem(),
		),
		renderer: render.NewRenderSystem(),
	}
	g.renderer.Debug = debug

	if watch {
		watcher, err := prefabs.NewWatcher(prefabs.DiskDir, prefabs.DiskDir+"/scripts")
		if err != nil {
			log.Printf("prefab watch disabled: %v", err)
		} else {
			g.watcher = watcher
		}
	}

	return g, nil
}

func scriptedSides(ai string) ([]component.Side, error) {
	switch strings.ToLower(strings.TrimSpace(ai)) {
	case "", "none":
		return nil, nil
	case "both":
		return []component.Side{component.SideLeft, component.SideRight}, nil
	default:
		side, err := component.ParseSide(ai)
		if err != nil {
			return nil, fmt.Errorf("ai: %w", err)
		}
		return []component.Side{side}, nil
	}
}

// TickRate is the simulation rate configured for the arena.
func (g *Game) TickRate() int {
	if arena, ok := ecs.Get(g.world, g.scene.Arena, component.ArenaComponent.Kind()); ok && arena.TickRate > 0 {
		return arena.TickRate
	}
	return component.DefaultArena().TickRate
}

func (g *Game) Update() error {
	g.frames++

	g.applyReloads()
	g.scheduler.Update(g.world)
	g.drainEvents()

	return nil
}

func (g *Game) applyReloads() {
	for _, name := range g.watcher.Poll() {
		var err error
		switch {
		case name == "arena.yaml":
			err = g.scene.ReloadArena(g.world)
			ebiten.SetTPS(g.TickRate())
		case name == "ball.yaml":
			err = g.scene.ReloadBall(g.world)
		case strings.HasPrefix(name, "scripts/"):
			g.scripts.Reload()
		default:
			continue
		}
		if err != nil {
			log.Printf("reload %s: %v", name, err)
			continue
		}
		log.Printf("reloaded %s", name)
	}
}

func (g *Game) drainEvents() {
	for _, ev := range g.world.Events().Drain() {
		if !g.debug {
			continue
		}
		switch data := ev.Data.(type) {
		case ecs.PaddleHitEvent:
			log.Printf("frame %d: ball hit %s paddle", g.frames, data.Side)
		case ecs.GoalEvent:
			log.Printf("frame %d: %s scores (%d - %d)", g.frames, data.Scorer, data.Left, data.Right)
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.world, screen)
	if g.debug {
		g.renderer.DrawPhysics(g.world, screen, g.physics.Space())
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

// Close stops the prefab watcher, if any.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}
