package constant

import (
	"math"
	"time"
)

// Economy
const (
	StartMoney    int64 = 10000
	PlacementCost int64 = 500
	// JointCostRate is money per world unit of anchor distance
	JointCostRate = 3.0
	// JointLabelMinLength hides the joint cost label for degenerate rubber bands
	JointLabelMinLength = 0.1
)

// Building and preview geometry (world units)
const (
	InitialBuildingWidth  = 100.0
	InitialBuildingHeight = 60.0
	BuildingHeight        = 60.0
	BuildingWidthMin      = 80
	BuildingWidthMax      = 100

	// PreviewEpsilon shrinks the preview collider so flush neighbours do not count as blocking
	PreviewEpsilon = 0.02

	CursorSensorRadius = 50.0

	// Bottom support sensor: thin strip under the preview
	SupportSensorWidthFactor = 0.9
	SupportSensorHeight      = 10.0
	SupportSensorGap         = 10.0
	// GroundSupportY is the preview height below which it counts as resting on the ground
	GroundSupportY = 1.0

	ChimneyWidth        = 20.0
	ChimneyHeight       = 30.0
	ChimneyRoofOffset   = 20.0
	ChimneyOffsetFactor = 0.4
	// ChimneyChance is the probability of rolling a chimney variant
	ChimneyChance = 0.2
)

// Earthquake plate chain
const (
	PlateCount  = 20
	PlateWidth  = 50.0
	PlateHeight = 50.0
	PlateStartX = -500.0
	PlateY      = -55.0

	GroundWidth  = 2000.0
	GroundHeight = 50.0
	GroundY      = -105.0
	// PlateGroundMargin is added to half the plate height for the end anchor slack
	PlateGroundMargin = 25.0 + 10.0

	QuakeFirstInterval  = 10 * time.Second
	QuakeIntervalFloor  = 5 * time.Second
	QuakeIntervalDecay  = 0.9
	QuakeDuration       = 3 * time.Second
	QuakeRumbleInterval = 100 * time.Millisecond
	RumblePlateCount    = 5
	QuakeForceBase      = 3_000_000.0
)

// Inhabitants and rent
const (
	InhabitantWidth     = 7.5
	InhabitantHeight    = 20.0
	InhabitantWalkSpeed = 3.0
	// InhabitantTiltDrift scales how fast inhabitants slide toward the low side of a tilted floor
	InhabitantTiltDrift = 10.0
	InhabitantMoveEvery = 5 * time.Second
	InhabitantTiltLimit = math.Pi / 4
	RentInterval        = 10 * time.Second

	MoneyVisualLifetime = 5 * time.Second
	MoneyVisualSpeed    = 100.0
	MoneyVisualGravity  = 0.5
)
