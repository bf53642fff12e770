package component

import (
	"github.com/lixenwraith/tremor/core"
	"github.com/lixenwraith/tremor/vmath"
)

// BuildingJoint is a breakable link between two buildings at body-frame anchors
type BuildingJoint struct {
	A, B       core.Entity
	AnchorA    vmath.Vec2
	AnchorB    vmath.Vec2
	RestLength float64
}

// JointState is the click state of the joint tool
type JointState uint8

const (
	JointIdle JointState = iota
	JointArmed
)

// JointTool holds the two-click construction state
// Building and Anchor are meaningful only while Armed
type JointTool struct {
	State    JointState
	Building core.Entity
	Anchor   vmath.Vec2
	// Length is the live rubber band from the start anchor to the cursor
	Length float64
}

// Arm records the start building and its body-frame anchor
func (j *JointTool) Arm(building core.Entity, anchor vmath.Vec2) {
	j.State = JointArmed
	j.Building = building
	j.Anchor = anchor
}

// Reset returns to Idle
func (j *JointTool) Reset() {
	*j = JointTool{}
}

func (j JointTool) Armed() bool {
	return j.State == JointArmed
}
