package input

import (
	"log"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/arcpong/common"
	"github.com/milk9111/arcpong/ecs"
	"github.com/milk9111/arcpong/ecs/component"
)

var gamepadAxes = map[string]ebiten.StandardGamepadAxis{
	"left_stick_horizontal":  ebiten.StandardGamepadAxisLeftStickHorizontal,
	"left_stick_vertical":    ebiten.StandardGamepadAxisLeftStickVertical,
	"right_stick_horizontal": ebiten.StandardGamepadAxisRightStickHorizontal,
	"right_stick_vertical":   ebiten.StandardGamepadAxisRightStickVertical,
}

// InputSystem snapshots keyboard and gamepad state into the axis input once
// per tick, following the configured bindings.
type InputSystem struct {
	keys    map[string]ebiten.Key
	unknown map[string]bool
}

func NewInputSystem() *InputSystem {
	return &InputSystem{
		keys:    make(map[string]ebiten.Key),
		unknown: make(map[string]bool),
	}
}

func (s *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	pads := ebiten.AppendGamepadIDs(nil)

	ecs.ForEach2(w, component.AxisInputComponent.Kind(), component.InputBindingsComponent.Kind(), func(e ecs.Entity, in *component.AxisInput, bindings *component.InputBindings) {
		in.Reset()
		for _, binding := range bindings.Axes {
			in.Set(binding.Axis, s.sample(binding, pads))
		}
	})
}

func (s *InputSystem) sample(b component.AxisBinding, pads []ebiten.GamepadID) float64 {
	value := 0.0
	if s.anyPressed(b.Positive) {
		value += 1
	}
	if s.anyPressed(b.Negative) {
		value -= 1
	}

	if axis, ok := gamepadAxes[strings.ToLower(b.GamepadAxis)]; ok && b.Gamepad >= 0 && b.Gamepad < len(pads) {
		id := pads[b.Gamepad]
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			stick := ebiten.StandardGamepadAxisValue(id, axis)
			if b.Invert {
				stick = -stick
			}
			if math.Abs(stick) > b.Deadzone {
				value = stick
			}
		}
	}

	return common.Clamp(value, -1, 1)
}

func (s *InputSystem) anyPressed(names []string) bool {
	for _, name := range names {
		key, ok := s.key(name)
		if ok && ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

func (s *InputSystem) key(name string) (ebiten.Key, bool) {
	if k, ok := s.keys[name]; ok {
		return k, true
	}
	if s.unknown[name] {
		return 0, false
	}
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		log.Printf("input: unknown key %q in bindings", name)
		s.unknown[name] = true
		return 0, false
	}
	s.keys[name] = k
	return k, true
}
