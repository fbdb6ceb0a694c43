package component

// ScriptController drives a paddle's axis from a tengo script instead of a
// device.
type ScriptController struct {
	Script string
}

var ScriptControllerComponent = NewComponent[ScriptController]()
