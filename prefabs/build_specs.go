package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// ComponentSpec pulls one component out of an entity prefab.
func ComponentSpec[T any](filename, component string) (T, error) {
	var zero T
	spec, err := LoadEntityBuildSpec(filename)
	if err != nil {
		return zero, err
	}
	return DecodeComponentSpec[T](spec.Components[component])
}

type ArenaComponentSpec struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	MotionGain float64 `yaml:"motion_gain"`
	TickRate   int     `yaml:"tick_rate"`
}

// PaddleComponentSpec describes a paddle. Arc bounds default to the side's
// arc; the *_deg fields override them in degrees.
type PaddleComponentSpec struct {
	Side        string   `yaml:"side"`
	Width       float64  `yaml:"width"`
	Height      float64  `yaml:"height"`
	MinAngleDeg *float64 `yaml:"min_angle_deg"`
	MaxAngleDeg *float64 `yaml:"max_angle_deg"`
}

type BallComponentSpec struct {
	Radius    float64 `yaml:"radius"`
	VelocityX float64 `yaml:"velocity_x"`
	VelocityY float64 `yaml:"velocity_y"`
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type ShapeComponentSpec struct {
	Kind   string     `yaml:"kind"`
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Radius float64    `yaml:"radius"`
	Color  *YAMLColor `yaml:"color"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type PhysicsBodyComponentSpec struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Radius     float64 `yaml:"radius"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
	Kinematic  bool    `yaml:"kinematic"`
}

type ScoreTextComponentSpec struct {
	Side    string  `yaml:"side"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Size    float64 `yaml:"size"`
}

type ScriptControllerComponentSpec struct {
	Script string `yaml:"script"`
}

type AxisBindingSpec struct {
	Positive    []string `yaml:"positive"`
	Negative    []string `yaml:"negative"`
	Gamepad     int      `yaml:"gamepad"`
	GamepadAxis string   `yaml:"gamepad_axis"`
	Invert      bool     `yaml:"invert"`
	Deadzone    float64  `yaml:"deadzone"`
}

type InputBindingsComponentSpec struct {
	Axes map[string]AxisBindingSpec `yaml:"axes"`
}
