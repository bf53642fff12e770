package component

import (
	"github.com/lixenwraith/tremor/constant"
	"github.com/lixenwraith/tremor/vmath"
)

// PreviewBuilding mirrors the next building to be placed
// Singleton; updated every frame and never destroyed
type PreviewBuilding struct {
	Visible       bool
	Blocked       bool
	BottomSupport bool
	Size          vmath.Vec2
	Variant       BuildingVariant
}

// CanPlace reports whether a release would commit a building
func (p PreviewBuilding) CanPlace() bool {
	return p.Visible && !p.Blocked && p.BottomSupport
}

// Colliders returns the inset body box and, for chimney variants, the chimney box
func (p PreviewBuilding) Colliders(pose Pose) []vmath.OBB {
	inset := p.Size.Sub(vmath.V(constant.PreviewEpsilon, constant.PreviewEpsilon).Scale(2))
	boxes := []vmath.OBB{vmath.NewOBB(pose.Position, inset, pose.Angle)}
	if p.Variant.HasChimney() {
		boxes = append(boxes, ChimneyBox(pose, p.Variant.Offset))
	}
	return boxes
}

// SupportSensor returns the strip below the preview used for bottom support
func (p PreviewBuilding) SupportSensor(pose Pose) vmath.OBB {
	size := vmath.V(p.Size.X*constant.SupportSensorWidthFactor, constant.SupportSensorHeight)
	offset := vmath.V(0, -(p.Size.Y/2 + constant.SupportSensorGap))
	return vmath.NewOBB(pose.ToWorld(offset), size, pose.Angle)
}
