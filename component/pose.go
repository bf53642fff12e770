package component

import "github.com/lixenwraith/tremor/vmath"

// Pose is the world transform of a body, synced from the physics space after each step
type Pose struct {
	Position vmath.Vec2
	Angle    float64
}

// ToLocal maps a world point into the body frame
func (p Pose) ToLocal(world vmath.Vec2) vmath.Vec2 {
	return world.Sub(p.Position).Rotate(-p.Angle)
}

// ToWorld maps a body-frame point into world space
func (p Pose) ToWorld(local vmath.Vec2) vmath.Vec2 {
	return local.Rotate(p.Angle).Add(p.Position)
}
