package component

// AxisInput is the per-tick snapshot of named input axes. An axis that was
// never set this tick has no binding and reads as absent.
type AxisInput struct {
	Values map[string]float64
}

// Axis returns the value of a named axis and whether anything bound it.
func (in *AxisInput) Axis(name string) (float64, bool) {
	if in == nil || in.Values == nil {
		return 0, false
	}
	v, ok := in.Values[name]
	return v, ok
}

func (in *AxisInput) Set(name string, value float64) {
	if in == nil {
		return
	}
	if in.Values == nil {
		in.Values = make(map[string]float64, 2)
	}
	in.Values[name] = value
}

// Reset clears every axis ahead of a new snapshot.
func (in *AxisInput) Reset() {
	if in == nil {
		return
	}
	clear(in.Values)
}

var AxisInputComponent = NewComponent[AxisInput]()

// AxisBinding maps keys and an optional gamepad stick onto one axis. Key
// names follow ebiten's key names ("W", "ArrowUp").
type AxisBinding struct {
	Axis        string
	Positive    []string
	Negative    []string
	Gamepad     int
	GamepadAxis string
	Invert      bool
	Deadzone    float64
}

// InputBindings lists every axis the device input system samples.
type InputBindings struct {
	Axes []AxisBinding
}

var InputBindingsComponent = NewComponent[InputBindings]()
