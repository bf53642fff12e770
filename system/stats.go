package system

import (
	"time"

	"github.com/lixenwraith/tremor/constant"
	"github.com/lixenwraith/tremor/engine"
	"github.com/lixenwraith/tremor/event"
	"github.com/lixenwraith/tremor/storage"
)

// RunRecorder receives run rows; satisfied by *storage.RunStore
type RunRecorder interface {
	Submit(storage.Run)
}

// StatsSystem tallies run statistics and checkpoints them after every quake
type StatsSystem struct {
	world    *engine.World
	recorder RunRecorder

	enabled bool
}

// NewStatsSystem creates a stats system; recorder may be nil when history is disabled
func NewStatsSystem(world *engine.World, recorder RunRecorder) engine.System {
	s := &StatsSystem{
		world:    world,
		recorder: recorder,
	}
	s.Init()
	return s
}

// Init resets session state for new game
func (s *StatsSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *StatsSystem) Name() string {
	return "stats"
}

// Priority returns the system's priority
func (s *StatsSystem) Priority() int {
	return constant.PriorityStats
}

// EventTypes returns the event types StatsSystem handles
func (s *StatsSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventBuildingPlaced,
		event.EventJointCreated,
		event.EventJointBroken,
		event.EventQuakeStarted,
		event.EventQuakeStopped,
		event.EventRentCollected,
		event.EventInhabitantEvicted,
	}
}

// HandleEvent updates counters
func (s *StatsSystem) HandleEvent(ev event.GameEvent) {
	if !s.enabled {
		return
	}

	stats := s.world.Resources.Stats
	switch ev.Type {
	case event.EventBuildingPlaced:
		stats.Buildings++
	case event.EventJointCreated:
		stats.Joints++
	case event.EventJointBroken:
		stats.JointsBroken++
	case event.EventQuakeStarted:
		if payload, ok := ev.Payload.(*event.QuakePayload); ok {
			stats.Quakes = payload.Count
		}
	case event.EventQuakeStopped:
		// Checkpoint survivors of each quake
		if s.recorder != nil {
			s.recorder.Submit(RunRow(s.world, time.Now()))
		}
	case event.EventRentCollected:
		if payload, ok := ev.Payload.(*event.RentPayload); ok {
			stats.RentCollected += payload.Amount
		}
	case event.EventInhabitantEvicted:
		stats.Evictions++
	}
}

// Update tracks the highest building top reached so far
func (s *StatsSystem) Update() {
	if !s.enabled {
		return
	}

	stats := s.world.Resources.Stats
	for _, e := range s.world.Components.Building.All() {
		box, ok := s.world.BuildingBox(e)
		if !ok {
			continue
		}
		stats.PeakHeight = max(stats.PeakHeight, box.AABB().Max.Y)
	}
}

// RunRow builds the history row for the current run
func RunRow(w *engine.World, ended time.Time) storage.Run {
	res := w.Resources
	return storage.Run{
		ID:           res.Stats.RunID,
		StartedAt:    res.Stats.Started,
		EndedAt:      ended,
		Buildings:    w.Components.Building.Count(),
		Joints:       w.Components.Joint.Count(),
		JointsBroken: res.Stats.JointsBroken,
		Quakes:       res.Quake.Count,
		PeakHeight:   res.Stats.PeakHeight,
		Money:        res.Player.Money,
	}
}
