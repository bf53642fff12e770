package system

import (
	"github.com/lixenwraith/tremor/component"
	"github.com/lixenwraith/tremor/constant"
	"github.com/lixenwraith/tremor/core"
	"github.com/lixenwraith/tremor/engine"
	"github.com/lixenwraith/tremor/event"
	"github.com/lixenwraith/tremor/physics"
	"github.com/lixenwraith/tremor/vmath"
)

// PhysicsSystem steps the rigid body space and mirrors its state into the world
type PhysicsSystem struct {
	world *engine.World
	space *physics.Space

	enabled bool
}

func NewPhysicsSystem(world *engine.World, space *physics.Space) engine.System {
	s := &PhysicsSystem{
		world: world,
		space: space,
	}
	s.Init()
	return s
}

// Init resets session state for new game
func (s *PhysicsSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *PhysicsSystem) Name() string {
	return "physics"
}

// Priority returns the system's priority (after all force producers)
func (s *PhysicsSystem) Priority() int {
	return constant.PriorityPhysics
}

// Update applies pending plate forces, steps, drops broken joints and syncs poses
func (s *PhysicsSystem) Update() {
	if !s.enabled {
		return
	}

	c := s.world.Components
	for _, e := range c.Plate.All() {
		plate, ok := c.Plate.Get(e)
		if !ok || plate.PendingForce == 0 {
			continue
		}
		s.space.ApplyForce(e, vmath.V(0, plate.PendingForce))
		plate.PendingForce = 0
		c.Plate.Set(e, plate)
	}

	for _, je := range s.space.Step(s.world.Resources.Time.DeltaTime.Seconds()) {
		s.world.DestroyEntity(je)
		s.world.PushEvent(event.EventJointBroken, &event.JointBrokenPayload{Entity: je})
	}

	s.syncPoses(c.Building.All())
	s.syncPoses(c.Plate.All())
	s.world.Spatial.Rebuild()
}

func (s *PhysicsSystem) syncPoses(entities []core.Entity) {
	for _, e := range entities {
		pos, angle, ok := s.space.Pose(e)
		if !ok {
			continue
		}
		s.world.Components.Pose.Set(e, component.Pose{Position: pos, Angle: angle})
	}
}
