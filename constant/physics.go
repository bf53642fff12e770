package constant

import "time"

// Simulation stepping
const (
	FixedStep = time.Second / 64
	// MaxFixedSteps bounds catch-up work after a stall
	MaxFixedSteps = 8
	FrameInterval = 16 * time.Millisecond
)

// Physics defaults, overridable by the tuning file
const (
	Gravity          = -98.1
	SolverIterations = 20
	Density          = 1.0
	Friction         = 0.8
	Elasticity       = 0.0
	JointBreakForce  = 5_000_000.0
)

// Collision categories for shape filters
const (
	CategoryBuilding uint = 1 << iota
	CategoryPlate
	CategoryGround
	CategorySensor
)

// PlateGroup keeps chain plates from colliding with each other
const PlateGroup uint = 1
