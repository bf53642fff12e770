package event

import (
	"github.com/lixenwraith/tremor/component"
	"github.com/lixenwraith/tremor/core"
	"github.com/lixenwraith/tremor/vmath"
)

// PlaceBuildingPayload captures the preview at the moment of release
type PlaceBuildingPayload struct {
	Position vmath.Vec2
	Angle    float64
	Size     vmath.Vec2
	Variant  component.BuildingVariant
}

// JointClickPayload carries the world-space click point
type JointClickPayload struct {
	Point vmath.Vec2
}

type BuildingPlacedPayload struct {
	Entity core.Entity
	Cost   int64
	Height float64
}

type JointCreatedPayload struct {
	Entity core.Entity
	Cost   int64
	Length float64
}

type JointBrokenPayload struct {
	Entity core.Entity
}

// QuakePayload carries the quake counter after the transition
type QuakePayload struct {
	Count int
}

type RentPayload struct {
	Building core.Entity
	Amount   int64
}

type InhabitantPayload struct {
	Inhabitant core.Entity
	Building   core.Entity
}
