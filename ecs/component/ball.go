package component

// Ball moves freely inside the arena. Speed is the magnitude the physics
// system keeps the velocity at, in arena units per second.
type Ball struct {
	Radius    float64
	VelocityX float64
	VelocityY float64
	Speed     float64
}

var BallComponent = NewComponent[Ball]()
