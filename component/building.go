package component

import (
	"github.com/lixenwraith/tremor/constant"
	"github.com/lixenwraith/tremor/core"
	"github.com/lixenwraith/tremor/vmath"
)

// VariantKind enumerates roof shapes
type VariantKind uint8

const (
	VariantDefault VariantKind = iota
	VariantChimney
)

func (k VariantKind) String() string {
	if k == VariantChimney {
		return "chimney"
	}
	return "default"
}

// BuildingVariant is Default or Chimney with a body-frame offset
type BuildingVariant struct {
	Kind   VariantKind
	Offset vmath.Vec2
}

// HasChimney reports whether the variant carries a chimney
func (v BuildingVariant) HasChimney() bool {
	return v.Kind == VariantChimney
}

// Building is a placed rigid rectangle
// Children are owned explicitly: at most one chimney plus any inhabitants
type Building struct {
	Size        vmath.Vec2
	Variant     BuildingVariant
	Chimney     core.Entity
	Inhabitants []core.Entity
}

// Box returns the building collider in world space
func (b Building) Box(p Pose) vmath.OBB {
	return vmath.NewOBB(p.Position, b.Size, p.Angle)
}

// ChimneyBox returns the chimney collider in world space
func ChimneyBox(p Pose, offset vmath.Vec2) vmath.OBB {
	return vmath.NewOBB(p.ToWorld(offset), vmath.V(constant.ChimneyWidth, constant.ChimneyHeight), p.Angle)
}

// Chimney is a sensor child of a building
type Chimney struct {
	Parent core.Entity
	Offset vmath.Vec2
}
