package system

import (
	"math"
	"time"

	"github.com/lixenwraith/tremor/constant"
	"github.com/lixenwraith/tremor/core"
	"github.com/lixenwraith/tremor/engine"
	"github.com/lixenwraith/tremor/event"
)

// QuakeForce returns the upward rumble force for the given quake count
// Grows as log10(10+count)^4, so the first quake pushes with exactly base
func QuakeForce(base float64, count int) float64 {
	return base * math.Pow(math.Log10(10+float64(count)), 4)
}

// NextQuakeInterval shrinks the waiting interval by decay, never below floor
func NextQuakeInterval(current, floor time.Duration, decay float64) time.Duration {
	return max(floor, time.Duration(float64(current)*decay))
}

// EarthquakeSystem drives the quake timers and shoves random plates while a quake is active
type EarthquakeSystem struct {
	world *engine.World

	plates []core.Entity

	enabled bool
}

func NewEarthquakeSystem(world *engine.World) engine.System {
	s := &EarthquakeSystem{
		world: world,
	}
	s.Init()
	return s
}

// Init resets session state for new game
func (s *EarthquakeSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *EarthquakeSystem) Name() string {
	return "earthquake"
}

// Priority returns the system's priority (before physics consumes the forces)
func (s *EarthquakeSystem) Priority() int {
	return constant.PriorityEarthquake
}

// EventTypes returns the event types EarthquakeSystem handles
func (s *EarthquakeSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventQuakeTrigger,
	}
}

// HandleEvent starts a quake on demand without shortening the interval
func (s *EarthquakeSystem) HandleEvent(ev event.GameEvent) {
	if !s.enabled || ev.Type != event.EventQuakeTrigger {
		return
	}
	s.start(false)
}

// Update ticks Next while waiting, Rumbles and Stop while active
func (s *EarthquakeSystem) Update() {
	if !s.enabled {
		return
	}

	q := s.world.Resources.Quake
	dt := s.world.Resources.Time.DeltaTime

	if !q.Active() {
		q.Next.Tick(dt)
		if q.Next.JustFinished() {
			s.start(true)
		}
		return
	}

	q.Rumbles.Tick(dt)
	if q.Rumbles.JustFinished() {
		s.rumble()
	}

	q.Stop.Tick(dt)
	if q.Stop.JustFinished() {
		s.stop()
	}
}

func (s *EarthquakeSystem) start(scheduled bool) {
	q := s.world.Resources.Quake
	tuning := s.world.Resources.Tuning.Quake

	if scheduled {
		q.Next.Duration = NextQuakeInterval(q.Next.Duration, tuning.IntervalFloor.Duration(), tuning.IntervalDecay)
	}
	q.Next.Reset()
	q.Count++

	q.Stop.Reset()
	q.Stop.Unpause()
	q.Rumbles.Reset()
	q.Rumbles.Unpause()

	s.world.PushEvent(event.EventQuakeStarted, &event.QuakePayload{Count: q.Count})
}

func (s *EarthquakeSystem) stop() {
	q := s.world.Resources.Quake
	q.Stop.Pause()
	q.Rumbles.Pause()
	q.Next.Reset()

	s.world.PushEvent(event.EventQuakeStopped, &event.QuakePayload{Count: q.Count})
}

// rumble sets a one-shot upward force on distinct random plates
func (s *EarthquakeSystem) rumble() {
	res := s.world.Resources
	store := s.world.Components.Plate

	s.plates = append(s.plates[:0], store.All()...)
	n := min(res.Tuning.Quake.RumblePlates, len(s.plates))
	force := QuakeForce(res.Tuning.Quake.ForceBase, res.Quake.Count)

	// Partial Fisher-Yates: the first n slots become the pick
	for i := 0; i < n; i++ {
		j := i + res.Rand.Intn(len(s.plates)-i)
		s.plates[i], s.plates[j] = s.plates[j], s.plates[i]

		plate, ok := store.Get(s.plates[i])
		if !ok {
			continue
		}
		plate.PendingForce = force
		store.Set(s.plates[i], plate)
	}
}
