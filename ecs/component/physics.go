package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Kinematic bodies follow their transform; dynamic bodies drive it.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Width      float64
	Height     float64
	Radius     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Kinematic  bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
