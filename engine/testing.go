package engine

import (
	"math/rand"

	"github.com/lixenwraith/tremor/component"
	"github.com/lixenwraith/tremor/config"
	"github.com/lixenwraith/tremor/core"
	"github.com/lixenwraith/tremor/vmath"
)

// NewTestWorld creates a world with default tuning and a seeded random source
func NewTestWorld(seed int64) *World {
	return NewWorld(NewResources(config.Default(), rand.New(rand.NewSource(seed))))
}

// SpawnBuildingAt adds a building with pose only, bypassing physics; used by tests and snapshot restore previews
func (w *World) SpawnBuildingAt(center, size vmath.Vec2, angle float64) core.Entity {
	e := w.CreateEntity()
	w.Components.Pose.Set(e, component.Pose{Position: center, Angle: angle})
	w.Components.Building.Set(e, component.Building{Size: size})
	return e
}
