package constant

// Frame system priorities (lower runs first)
const (
	PriorityCursor       = 10
	PriorityTool         = 20
	PriorityPlacement    = 30 // After cursor, before cost label
	PriorityJointPreview = 40
	PriorityCursorText   = 50
	PriorityMoneyVisual  = 60
	PriorityAudio        = 900
	PrioritySpectator    = 950
)

// Fixed system priorities
const (
	PriorityBuild      = 10
	PriorityEarthquake = 20
	PriorityPhysics    = 30 // After all force producers
	PriorityInhabitant = 40
	PriorityStats      = 100
)
