package system

import (
	"math/rand"

	"github.com/lixenwraith/tremor/component"
	"github.com/lixenwraith/tremor/constant"
	"github.com/lixenwraith/tremor/core"
	"github.com/lixenwraith/tremor/engine"
	"github.com/lixenwraith/tremor/physics"
	"github.com/lixenwraith/tremor/vmath"
)

// SpawnGround creates the static ground slab and the plate chain anchored to it
// Returns the plate entities in chain order
func SpawnGround(w *engine.World, space *physics.Space) []core.Entity {
	groundCenter := vmath.V(0, constant.GroundY)
	groundSize := vmath.V(constant.GroundWidth, constant.GroundHeight)

	ground := w.CreateEntity()
	w.Components.Pose.Set(ground, component.Pose{Position: groundCenter})
	w.Components.Ground.Set(ground, component.Ground{Size: groundSize})
	space.AddGround(groundCenter, groundSize)

	size := vmath.V(constant.PlateWidth, constant.PlateHeight)
	plates := make([]core.Entity, 0, constant.PlateCount)
	for i := 0; i < constant.PlateCount; i++ {
		pos := vmath.V(constant.PlateStartX+float64(i)*constant.PlateWidth, constant.PlateY)

		e := w.CreateEntity()
		w.Components.Pose.Set(e, component.Pose{Position: pos})
		w.Components.Plate.Set(e, component.Plate{Index: i, Size: size})
		space.AddPlate(e, pos, size)

		if i > 0 {
			space.LinkPlates(plates[i-1], e, constant.PlateWidth, constant.PlateHeight)
		}
		plates = append(plates, e)
	}

	// Chain ends hang from the ground at their own x
	slack := constant.PlateHeight/2 + constant.PlateGroundMargin
	for _, e := range []core.Entity{plates[0], plates[len(plates)-1]} {
		pose, _ := w.Components.Pose.Get(e)
		space.AnchorPlate(e, vmath.V(pose.Position.X, constant.GroundY), 0, slack)
	}
	return plates
}

// SpawnPreview creates the preview singleton with the initial building footprint
func SpawnPreview(w *engine.World) core.Entity {
	e := w.CreateEntity()
	w.Components.Pose.Set(e, component.Pose{})
	w.Components.Preview.Set(e, component.PreviewBuilding{
		Size: vmath.V(constant.InitialBuildingWidth, constant.InitialBuildingHeight),
	})
	return e
}

// SpawnBuilding creates a building with its body, its chimney child and one inhabitant
func SpawnBuilding(w *engine.World, space *physics.Space, pose component.Pose, size vmath.Vec2, variant component.BuildingVariant) core.Entity {
	e := w.CreateEntity()
	building := component.Building{Size: size, Variant: variant}

	var chimneyOffset *vmath.Vec2
	if variant.HasChimney() {
		offset := variant.Offset
		chimneyOffset = &offset

		ch := w.CreateEntity()
		w.Components.Chimney.Set(ch, component.Chimney{Parent: e, Offset: offset})
		building.Chimney = ch
	}

	inhabitant := w.CreateEntity()
	w.Components.Inhabitant.Set(inhabitant, component.Inhabitant{
		Building: e,
		// Zero-length move timer rolls a target on the first tick
		Move: core.NewTimer(0, core.TimerRepeating),
		Rent: core.NewTimer(constant.RentInterval, core.TimerRepeating),
	})
	building.Inhabitants = append(building.Inhabitants, inhabitant)

	w.Components.Pose.Set(e, pose)
	w.Components.Building.Set(e, building)
	space.AddBuilding(e, pose.Position, pose.Angle, size, chimneyOffset)
	return e
}

// SpawnWorld builds the initial scene: ground, plate chain, first building, preview
func SpawnWorld(w *engine.World, space *physics.Space) {
	SpawnGround(w, space)
	SpawnBuilding(w, space, component.Pose{},
		vmath.V(constant.InitialBuildingWidth, constant.InitialBuildingHeight),
		component.BuildingVariant{})
	SpawnPreview(w)
	w.Spatial.Rebuild()
}

// RandomPreview rolls the footprint and roof of the next building
func RandomPreview(rng *rand.Rand) (vmath.Vec2, component.BuildingVariant) {
	width := float64(constant.BuildingWidthMin + rng.Intn(constant.BuildingWidthMax-constant.BuildingWidthMin+1))
	size := vmath.V(width, constant.BuildingHeight)

	if rng.Float64() >= constant.ChimneyChance {
		return size, component.BuildingVariant{}
	}
	spread := constant.ChimneyOffsetFactor * width
	offset := vmath.V(
		(rng.Float64()*2-1)*spread,
		constant.BuildingHeight/2+constant.ChimneyRoofOffset,
	)
	return size, component.BuildingVariant{Kind: component.VariantChimney, Offset: offset}
}
