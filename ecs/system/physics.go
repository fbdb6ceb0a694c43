package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arcpong/ecs"
	"github.com/milk9111/arcpong/ecs/component"
)

const (
	collisionTypeBall cp.CollisionType = iota + 1
	collisionTypePaddle
)

// PhysicsSystem steps a Chipmunk space holding the ball as a dynamic circle
// and paddles as kinematic boxes that follow their transforms.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool

	entities     map[ecs.Entity]*bodyInfo
	ballShapes   map[*cp.Shape]ecs.Entity
	paddleShapes map[*cp.Shape]ecs.Entity
	hits         []ecs.PaddleHitEvent
}

type bodyInfo struct {
	body      *cp.Body
	shape     *cp.Shape
	kinematic bool
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:        newSpace(),
		entities:     make(map[ecs.Entity]*bodyInfo),
		ballShapes:   make(map[*cp.Shape]ecs.Entity),
		paddleShapes: make(map[*cp.Shape]ecs.Entity),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = newSpace()
		ps.handlersReady = false
	}

	dt := arenaOf(w).TickSeconds()

	ps.ensureHandlers()
	ps.cleanupEntities(w)
	ps.syncEntities(w, dt)

	ps.space.Step(dt)

	ps.syncTransforms(w)
	ps.flushHits(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	handler := ps.space.NewCollisionHandler(collisionTypeBall, collisionTypePaddle)
	handler.UserData = ps
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		ball, okBall := sys.ballShapes[shapeA]
		paddle, okPaddle := sys.paddleShapes[shapeB]
		if !okBall || !okPaddle {
			ball, okBall = sys.ballShapes[shapeB]
			paddle, okPaddle = sys.paddleShapes[shapeA]
		}
		if okBall && okPaddle {
			sys.hits = append(sys.hits, ecs.PaddleHitEvent{Ball: ball, Paddle: paddle})
		}
		return true
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World, dt float64) {
	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		info := ps.entities[e]
		if info == nil {
			info = ps.createBodyInfo(w, e, transform, bodyComp)
			if info == nil {
				continue
			}
			ps.entities[e] = info
			bodyComp.Body = info.body
			bodyComp.Shape = info.shape
			continue
		}

		if info.kinematic {
			// velocity carries the body onto the transform during the step
			prev := info.body.Position()
			next := cp.Vector{X: transform.X, Y: transform.Y}
			info.body.SetVelocityVector(next.Sub(prev).Mult(1 / dt))
			info.body.SetAngle(transform.Rotation)
		}
	}
}

func (ps *PhysicsSystem) createBodyInfo(w *ecs.World, e ecs.Entity, transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	pos := cp.Vector{X: transform.X, Y: transform.Y}

	if bodyComp.Kinematic {
		body := cp.NewKinematicBody()
		body.SetPosition(pos)
		body.SetAngle(transform.Rotation)
		shape := cp.NewBox(body, bodyComp.Width, bodyComp.Height, 0)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetFriction(bodyComp.Friction)
		shape.SetCollisionType(collisionTypePaddle)
		ps.space.AddBody(body)
		ps.space.AddShape(shape)
		ps.paddleShapes[shape] = e
		return &bodyInfo{body: body, shape: shape, kinematic: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	var moment float64
	if bodyComp.Radius > 0 {
		moment = cp.MomentForCircle(mass, 0, bodyComp.Radius, cp.Vector{})
	} else {
		moment = cp.MomentForBox(mass, bodyComp.Width, bodyComp.Height)
	}
	body := cp.NewBody(mass, moment)
	body.SetPosition(pos)

	var shape *cp.Shape
	if bodyComp.Radius > 0 {
		shape = cp.NewCircle(body, bodyComp.Radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, bodyComp.Width, bodyComp.Height, 0)
	}
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetFriction(bodyComp.Friction)

	if ball, ok := ecs.Get(w, e, component.BallComponent.Kind()); ok {
		body.SetVelocity(ball.VelocityX, ball.VelocityY)
		shape.SetCollisionType(collisionTypeBall)
		ps.ballShapes[shape] = e
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shape: shape}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		if info.kinematic {
			info.body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
			continue
		}

		if ball, ok := ecs.Get(w, e, component.BallComponent.Kind()); ok && ball.Speed > 0 {
			vel := info.body.Velocity()
			if l := vel.Length(); l > 0 && math.Abs(l-ball.Speed) > 1e-9 {
				vel = vel.Mult(ball.Speed / l)
				info.body.SetVelocityVector(vel)
			}
			ball.VelocityX, ball.VelocityY = vel.X, vel.Y
		}

		pos := info.body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = info.body.Angle()
	}
}

func (ps *PhysicsSystem) flushHits(w *ecs.World) {
	for _, hit := range ps.hits {
		if paddle, ok := ecs.Get(w, hit.Paddle, component.PaddleComponent.Kind()); ok {
			hit.Side = paddle.Side
		}
		w.Events().Push(ecs.Event{Type: ecs.EventPaddleHit, Data: hit})
	}
	ps.hits = ps.hits[:0]
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
			delete(ps.ballShapes, info.shape)
			delete(ps.paddleShapes, info.shape)
		}
		if info.body != nil {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}
