package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/arcpong/common"
	"github.com/milk9111/arcpong/ecs"
	"github.com/milk9111/arcpong/ecs/component"
	"github.com/milk9111/arcpong/prefabs"
)

// ScriptControlSystem feeds scripted paddles into the input snapshot. Each
// script sees the paddle and ball geometry and must assign `axis`.
type ScriptControlSystem struct {
	load     func(name string) ([]byte, error)
	runtimes map[ecs.Entity]*paddleScript
}

type paddleScript struct {
	name     string
	compiled *tengo.Compiled
	failed   bool
}

var scriptInputs = []string{
	"paddle_angle",
	"ball_angle",
	"ball_distance",
	"ball_present",
	"min_angle",
	"max_angle",
}

func NewScriptControlSystem() *ScriptControlSystem {
	return NewScriptControlSystemWithLoader(prefabs.LoadScript)
}

// NewScriptControlSystemWithLoader resolves script names through load.
func NewScriptControlSystemWithLoader(load func(name string) ([]byte, error)) *ScriptControlSystem {
	return &ScriptControlSystem{
		load:     load,
		runtimes: make(map[ecs.Entity]*paddleScript),
	}
}

func (s *ScriptControlSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
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
	ballAngle, ballDistance, ballPresent := 0.0, 0.0, false
	if ballEnt, ok := w.First(component.BallComponent.Kind()); ok {
		if t, ok := ecs.Get(w, ballEnt, component.TransformComponent.Kind()); ok {
			ballAngle = arena.AngleAt(t.X, t.Y)
			ballDistance = arena.Reach(t.X, t.Y)
			ballPresent = true
		}
	}

	for e := range s.runtimes {
		if !ecs.Has(w, e, component.ScriptControllerComponent.Kind()) {
			delete(s.runtimes, e)
		}
	}

	ecs.ForEach3(w, component.PaddleComponent.Kind(), component.ScriptControllerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, paddle *component.Paddle, ctrl *component.ScriptController, transform *component.Transform) {
		rt, err := s.runtime(e, ctrl.Script)
		if err != nil {
			if rt != nil && !rt.failed {
				log.Printf("script: entity=%d %s: %v", e, ctrl.Script, err)
				rt.failed = true
			}
			input.Set(paddle.Side.Axis(), 0)
			return
		}

		axis, err := rt.run(map[string]any{
			"paddle_angle":  arena.AngleAt(transform.X, transform.Y),
			"ball_angle":    ballAngle,
			"ball_distance": ballDistance,
			"ball_present":  ballPresent,
			"min_angle":     paddle.MinAngle,
			"max_angle":     paddle.MaxAngle,
		})
		if err != nil {
			log.Printf("script: entity=%d %s: %v", e, ctrl.Script, err)
			rt.failed = true
			axis = 0
		}
		input.Set(paddle.Side.Axis(), common.Clamp(axis, -1, 1))
	})
}

func (s *ScriptControlSystem) runtime(e ecs.Entity, name string) (*paddleScript, error) {
	if rt, ok := s.runtimes[e]; ok && rt.name == name {
		if rt.failed {
			return rt, fmt.Errorf("script disabled after earlier failure")
		}
		return rt, nil
	}

	rt := &paddleScript{name: name}
	s.runtimes[e] = rt

	if strings.TrimSpace(name) == "" || s.load == nil {
		return rt, fmt.Errorf("no script configured")
	}
	src, err := s.load(name)
	if err != nil {
		return rt, err
	}

	script := tengo.NewScript(src)
	for _, v := range scriptInputs {
		if v == "ball_present" {
			_ = script.Add(v, false)
			continue
		}
		_ = script.Add(v, 0.0)
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return rt, fmt.Errorf("compile: %w", err)
	}
	// globals declared by the script only exist after a first run
	if err := compiled.Run(); err != nil {
		return rt, fmt.Errorf("run: %w", err)
	}
	if !compiled.IsDefined("axis") {
		return rt, fmt.Errorf("script does not define axis")
	}
	rt.compiled = compiled
	return rt, nil
}

func (rt *paddleScript) run(values map[string]any) (float64, error) {
	for name, v := range values {
		if err := rt.compiled.Set(name, v); err != nil {
			return 0, err
		}
	}
	if err := rt.compiled.Run(); err != nil {
		return 0, err
	}
	return rt.compiled.Get("axis").Float(), nil
}

// Reload drops every compiled script so the next tick loads them afresh,
// which also re-enables scripts that failed earlier.
func (s *ScriptControlSystem) Reload() {
	if s == nil {
		return
	}
	clear(s.runtimes)
}
