package engine

import (
	"time"

	"github.com/lixenwraith/tremor/event"
)

// ClockScheduler drives the two simulation phases
// The frame phase runs once per Advance with the wall-clock delta
// The fixed phase runs zero or more times on an accumulator, dispatching events before its systems
type ClockScheduler struct {
	world    *World
	router   *event.Router
	interval time.Duration
	maxSteps int

	accumulator time.Duration
	tickCount   uint64
}

// NewClockScheduler wires a router to the world queue and registers every system implementing event.Handler
func NewClockScheduler(world *World, step time.Duration, maxSteps int) *ClockScheduler {
	cs := &ClockScheduler{
		world:    world,
		router:   event.NewRouter(world.Events()),
		interval: step,
		maxSteps: maxSteps,
	}
	for _, s := range append(world.FrameSystems(), world.FixedSystems()...) {
		if h, ok := s.(event.Handler); ok {
			cs.router.Register(h)
		}
	}
	return cs
}

// Router exposes the router for handlers that are not systems
func (cs *ClockScheduler) Router() *event.Router {
	return cs.router
}

// Advance runs one frame: frame systems, then as many fixed steps as the accumulator allows
// Returns the number of fixed steps taken
func (cs *ClockScheduler) Advance(frameDelta time.Duration) int {
	timeRes := cs.world.Resources.Time

	timeRes.DeltaTime = frameDelta
	timeRes.FrameNumber++
	for _, s := range cs.world.FrameSystems() {
		s.Update()
	}
	cs.world.Resources.Input.EndFrame()

	cs.accumulator += frameDelta
	steps := 0
	for cs.accumulator >= cs.interval {
		if steps == cs.maxSteps {
			// Drop backlog after a stall instead of spiralling
			cs.accumulator = 0
			break
		}
		cs.accumulator -= cs.interval
		cs.Step()
		steps++
	}
	return steps
}

// Step runs a single fixed tick
func (cs *ClockScheduler) Step() {
	timeRes := cs.world.Resources.Time
	cs.tickCount++
	timeRes.Tick = cs.tickCount
	timeRes.DeltaTime = cs.interval
	timeRes.Elapsed += cs.interval

	cs.router.DispatchAll()
	for _, s := range cs.world.FixedSystems() {
		s.Update()
	}
}

// TickCount returns the number of fixed ticks run
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount
}
