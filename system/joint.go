package system

import (
	"github.com/lixenwraith/tremor/component"
	"github.com/lixenwraith/tremor/constant"
	"github.com/lixenwraith/tremor/engine"
	"github.com/lixenwraith/tremor/event"
	"github.com/lixenwraith/tremor/physics"
)

// JointCost returns the price of a joint spanning length world units
func JointCost(length, rate float64) int64 {
	return int64(length * rate)
}

// JointSystem runs the two-click joint tool
// Update tracks the rubber band and emits clicks; HandleEvent commits them in the fixed phase
type JointSystem struct {
	world *engine.World
	space *physics.Space

	enabled bool
}

// NewJointSystem creates the joint tool system attaching joints in space
func NewJointSystem(world *engine.World, space *physics.Space) engine.System {
	s := &JointSystem{
		world: world,
		space: space,
	}
	s.Init()
	return s
}

// Init resets session state for new game
func (s *JointSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *JointSystem) Name() string {
	return "joint"
}

// Priority returns the system's priority
func (s *JointSystem) Priority() int {
	return constant.PriorityJointPreview
}

// EventTypes returns the event types JointSystem handles
func (s *JointSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventJointClick,
	}
}

// Update recomputes the rubber band length and forwards a released click
func (s *JointSystem) Update() {
	if !s.enabled {
		return
	}

	res := s.world.Resources
	j := &res.Tool.Joint
	if res.Tool.Selected != component.ToolJoint || !res.Cursor.Valid {
		j.Length = 0
		return
	}

	j.Length = 0
	if j.Armed() {
		pose, ok := s.world.Components.Pose.Get(j.Building)
		if !ok || !s.world.Alive(j.Building) {
			j.Reset()
		} else {
			j.Length = pose.ToWorld(j.Anchor).Dist(res.Cursor.World)
		}
	}

	if res.Input.LeftReleased {
		s.world.PushEvent(event.EventJointClick, &event.JointClickPayload{Point: res.Cursor.World})
	}
}

// HandleEvent advances the Idle/Armed state machine for one click
func (s *JointSystem) HandleEvent(ev event.GameEvent) {
	if !s.enabled || ev.Type != event.EventJointClick {
		return
	}
	payload, ok := ev.Payload.(*event.JointClickPayload)
	if !ok {
		return
	}

	res := s.world.Resources
	if res.Tool.Selected != component.ToolJoint {
		return
	}
	j := &res.Tool.Joint

	hit, inside := s.world.Spatial.BuildingAt(payload.Point)
	if !inside {
		j.Reset()
		return
	}
	hitPose, _ := s.world.Components.Pose.Get(hit)
	local := hitPose.ToLocal(payload.Point)

	startPose, startOK := s.world.Components.Pose.Get(j.Building)
	if !j.Armed() || !startOK || !s.world.Alive(j.Building) || hit == j.Building {
		// A click on the start building moves its anchor
		j.Arm(hit, local)
		return
	}

	length := startPose.ToWorld(j.Anchor).Dist(payload.Point)
	cost := JointCost(length, res.Tuning.Economy.JointCostRate)
	if cost > res.Player.Money {
		return
	}

	je := s.world.CreateEntity()
	if !s.space.AddJoint(je, j.Building, hit, j.Anchor, local) {
		s.world.DestroyEntity(je)
		j.Reset()
		return
	}
	res.Player.Debit(cost)
	s.world.Components.Joint.Set(je, component.BuildingJoint{
		A:          j.Building,
		B:          hit,
		AnchorA:    j.Anchor,
		AnchorB:    local,
		RestLength: length,
	})
	s.world.PushEvent(event.EventJointCreated, &event.JointCreatedPayload{
		Entity: je,
		Cost:   cost,
		Length: length,
	})
	j.Reset()
}
