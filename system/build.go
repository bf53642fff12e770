package system

import (
	"github.com/lixenwraith/tremor/component"
	"github.com/lixenwraith/tremor/constant"
	"github.com/lixenwraith/tremor/engine"
	"github.com/lixenwraith/tremor/event"
	"github.com/lixenwraith/tremor/physics"
)

// BuildSystem commits placement requests: debit, spawn, reroll the preview
type BuildSystem struct {
	world *engine.World
	space *physics.Space

	enabled bool
}

// NewBuildSystem creates a build system spawning bodies into space
func NewBuildSystem(world *engine.World, space *physics.Space) engine.System {
	s := &BuildSystem{
		world: world,
		space: space,
	}
	s.Init()
	return s
}

// Init resets session state for new game
func (s *BuildSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *BuildSystem) Name() string {
	return "build"
}

// Priority returns the system's priority
func (s *BuildSystem) Priority() int {
	return constant.PriorityBuild
}

// EventTypes returns the event types BuildSystem handles
func (s *BuildSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventPlaceBuilding,
	}
}

// HandleEvent places a building at the requested pose when affordable
func (s *BuildSystem) HandleEvent(ev event.GameEvent) {
	if !s.enabled || ev.Type != event.EventPlaceBuilding {
		return
	}
	payload, ok := ev.Payload.(*event.PlaceBuildingPayload)
	if !ok {
		return
	}

	res := s.world.Resources
	cost := res.Tuning.Economy.PlacementCost
	if !res.Player.Debit(cost) {
		return
	}

	pose := component.Pose{Position: payload.Position, Angle: payload.Angle}
	e := SpawnBuilding(s.world, s.space, pose, payload.Size, payload.Variant)
	s.world.Spatial.Rebuild()

	s.world.PushEvent(event.EventBuildingPlaced, &event.BuildingPlacedPayload{
		Entity: e,
		Cost:   cost,
		Height: payload.Position.Y + payload.Size.Y/2,
	})

	s.rerollPreview()
}

func (s *BuildSystem) rerollPreview() {
	pe, preview, ok := s.world.Components.Preview.First()
	if !ok {
		return
	}
	preview.Size, preview.Variant = RandomPreview(s.world.Resources.Rand)
	s.world.Components.Preview.Set(pe, preview)
}

// Update implements System interface (placement is event driven)
func (s *BuildSystem) Update() {}
