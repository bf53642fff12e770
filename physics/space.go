package physics

import (
	"math"
	"slices"

	"github.com/jakecoffman/cp"

	"github.com/lixenwraith/tremor/config"
	"github.com/lixenwraith/tremor/constant"
	"github.com/lixenwraith/tremor/core"
	"github.com/lixenwraith/tremor/vmath"
)

// Params configures the rigid body world
type Params struct {
	Gravity         float64
	Iterations      int
	Density         float64
	Friction        float64
	Elasticity      float64
	JointBreakForce float64
}

// ParamsFromTuning fills Params from the physics section of the tuning file
func ParamsFromTuning(t config.Physics) Params {
	return Params{
		Gravity:         t.Gravity,
		Iterations:      t.Iterations,
		Density:         t.Density,
		Friction:        t.Friction,
		Elasticity:      constant.Elasticity,
		JointBreakForce: t.JointBreakForce,
	}
}

// Space wraps a cp.Space and maps entities to bodies and constraints
// Not safe for concurrent use; owned by the simulation goroutine
type Space struct {
	space  *cp.Space
	params Params

	bodies   map[core.Entity]*cp.Body
	joints   map[core.Entity]*cp.Constraint
	links    []*cp.Constraint
	breaking []core.Entity
}

// NewSpace creates an empty world with gravity along -y
func NewSpace(p Params) *Space {
	space := cp.NewSpace()
	space.Iterations = uint(max(p.Iterations, 1))
	space.SetGravity(cp.Vector{X: 0, Y: p.Gravity})

	return &Space{
		space:  space,
		params: p,
		bodies: make(map[core.Entity]*cp.Body),
		joints: make(map[core.Entity]*cp.Constraint),
	}
}

func toCP(v vmath.Vec2) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func fromCP(v cp.Vector) vmath.Vec2 {
	return vmath.Vec2{X: v.X, Y: v.Y}
}

func buildingFilter() cp.ShapeFilter {
	return cp.NewShapeFilter(0, constant.CategoryBuilding,
		constant.CategoryBuilding|constant.CategoryPlate|constant.CategoryGround)
}

// AddGround attaches a static box to the space's static body
func (s *Space) AddGround(center, size vmath.Vec2) {
	half := size.Scale(0.5)
	bb := cp.BB{L: center.X - half.X, B: center.Y - half.Y, R: center.X + half.X, T: center.Y + half.Y}
	shape := s.space.AddShape(cp.NewBox2(s.space.StaticBody, bb, 0))
	shape.SetFriction(s.params.Friction)
	shape.SetElasticity(s.params.Elasticity)
	shape.SetFilter(cp.NewShapeFilter(0, constant.CategoryGround, ^uint(0)))
}

// AddBuilding creates a dynamic box body; chimney, when non-nil, adds a sensor at that body-frame offset
func (s *Space) AddBuilding(e core.Entity, pos vmath.Vec2, angle float64, size vmath.Vec2, chimney *vmath.Vec2) {
	mass := size.X * size.Y * s.params.Density
	body := s.space.AddBody(cp.NewBody(mass, cp.MomentForBox(mass, size.X, size.Y)))
	body.SetPosition(toCP(pos))
	body.SetAngle(angle)
	body.UserData = e

	shape := s.space.AddShape(cp.NewBox(body, size.X, size.Y, 0))
	shape.SetFriction(s.params.Friction)
	shape.SetElasticity(s.params.Elasticity)
	shape.SetFilter(buildingFilter())

	if chimney != nil {
		hw, hh := constant.ChimneyWidth/2, constant.ChimneyHeight/2
		bb := cp.BB{L: chimney.X - hw, B: chimney.Y - hh, R: chimney.X + hw, T: chimney.Y + hh}
		sensor := s.space.AddShape(cp.NewBox2(body, bb, 0))
		sensor.SetSensor(true)
		sensor.SetFilter(cp.NewShapeFilter(0, constant.CategorySensor, 0))
	}

	s.bodies[e] = body
}

// AddPlate creates a body that can only translate vertically along x = pos.X
func (s *Space) AddPlate(e core.Entity, pos, size vmath.Vec2) {
	mass := size.X * size.Y * s.params.Density
	body := s.space.AddBody(cp.NewBody(mass, math.Inf(1)))
	body.SetPosition(toCP(pos))
	body.UserData = e

	shape := s.space.AddShape(cp.NewBox(body, size.X, size.Y, 0))
	shape.SetFriction(s.params.Friction)
	shape.SetElasticity(s.params.Elasticity)
	shape.SetFilter(cp.NewShapeFilter(constant.PlateGroup, constant.CategoryPlate,
		constant.CategoryBuilding|constant.CategoryGround))

	// Infinite moment removes rotation; the groove removes horizontal travel
	groove := cp.NewGrooveJoint(s.space.StaticBody, body,
		cp.Vector{X: pos.X, Y: pos.Y - 1e4}, cp.Vector{X: pos.X, Y: pos.Y + 1e4}, cp.Vector{})
	s.space.AddConstraint(groove)

	s.bodies[e] = body
}

// LinkPlates holds two plate centers between min and max apart
func (s *Space) LinkPlates(a, b core.Entity, minDist, maxDist float64) bool {
	ba, okA := s.bodies[a]
	bb, okB := s.bodies[b]
	if !okA || !okB {
		return false
	}
	link := cp.NewSlideJoint(ba, bb, cp.Vector{}, cp.Vector{}, minDist, maxDist)
	link.SetCollideBodies(false)
	s.links = append(s.links, s.space.AddConstraint(link))
	return true
}

// AnchorPlate holds a plate center between min and max from a world point on the static ground
func (s *Space) AnchorPlate(plate core.Entity, groundPoint vmath.Vec2, minDist, maxDist float64) bool {
	body, ok := s.bodies[plate]
	if !ok {
		return false
	}
	link := cp.NewSlideJoint(s.space.StaticBody, body, toCP(groundPoint), cp.Vector{}, minDist, maxDist)
	s.links = append(s.links, s.space.AddConstraint(link))
	return true
}

// AddJoint pins two buildings at body-frame anchors; rest length is the current anchor distance
func (s *Space) AddJoint(e, a, b core.Entity, anchorA, anchorB vmath.Vec2) bool {
	ba, okA := s.bodies[a]
	bb, okB := s.bodies[b]
	if !okA || !okB || a == b {
		return false
	}
	pin := cp.NewPinJoint(ba, bb, toCP(anchorA), toCP(anchorB))
	s.joints[e] = s.space.AddConstraint(pin)
	return true
}

// RemoveJoint detaches a building joint; unknown entities are ignored
func (s *Space) RemoveJoint(e core.Entity) {
	c, ok := s.joints[e]
	if !ok {
		return
	}
	s.space.RemoveConstraint(c)
	delete(s.joints, e)
}

// ApplyForce applies a force at the body center for the next step only
func (s *Space) ApplyForce(e core.Entity, force vmath.Vec2) bool {
	body, ok := s.bodies[e]
	if !ok {
		return false
	}
	body.ApplyForceAtWorldPoint(toCP(force), body.Position())
	return true
}

// Step integrates dt and removes building joints whose reaction force exceeded the break force
// Returns the entities of broken joints; the slice is reused by the next Step
func (s *Space) Step(dt float64) []core.Entity {
	s.space.Step(dt)

	s.breaking = s.breaking[:0]
	if dt <= 0 {
		return nil
	}
	for e, c := range s.joints {
		if c.Class.GetImpulse()/dt > s.params.JointBreakForce {
			s.breaking = append(s.breaking, e)
		}
	}
	slices.Sort(s.breaking)
	for _, e := range s.breaking {
		s.RemoveJoint(e)
	}
	return s.breaking
}

// Pose returns the current transform of an entity's body
func (s *Space) Pose(e core.Entity) (vmath.Vec2, float64, bool) {
	body, ok := s.bodies[e]
	if !ok {
		return vmath.Vec2{}, 0, false
	}
	return fromCP(body.Position()), body.Angle(), true
}

// Velocity returns the linear velocity of an entity's body
func (s *Space) Velocity(e core.Entity) (vmath.Vec2, bool) {
	body, ok := s.bodies[e]
	if !ok {
		return vmath.Vec2{}, false
	}
	return fromCP(body.Velocity()), true
}

// HasJoint reports whether a building joint is still attached
func (s *Space) HasJoint(e core.Entity) bool {
	_, ok := s.joints[e]
	return ok
}

// BodyCount returns the number of tracked dynamic bodies
func (s *Space) BodyCount() int {
	return len(s.bodies)
}
