package engine

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/tremor/component"
	"github.com/lixenwraith/tremor/config"
	"github.com/lixenwraith/tremor/core"
	"github.com/lixenwraith/tremor/vmath"
)

// Resources is the simulation context shared by all systems
// Owned by the simulation goroutine; no locking
type Resources struct {
	Time   *TimeResource
	Player *PlayerResource
	Tool   *ToolResource
	Quake  *EarthquakeResource
	Cursor *CursorResource
	Input  *InputResource
	Camera *CameraResource
	Stats  *StatsResource

	Tuning config.Tuning
	Rand   *rand.Rand
}

// NewResources builds the context from tuning with an explicit random source
func NewResources(t config.Tuning, rng *rand.Rand) *Resources {
	return &Resources{
		Time:   &TimeResource{},
		Player: &PlayerResource{Money: t.Economy.StartMoney},
		Tool:   &ToolResource{},
		Quake:  NewEarthquakeResource(t.Quake),
		Cursor: &CursorResource{},
		Input:  &InputResource{},
		Camera: NewCameraResource(),
		Stats:  &StatsResource{},
		Tuning: t,
		Rand:   rng,
	}
}

// TimeResource is updated by the ClockScheduler before each phase
type TimeResource struct {
	// DeltaTime is the frame delta in the frame phase and the fixed step in the fixed phase
	DeltaTime   time.Duration
	Elapsed     time.Duration
	FrameNumber int64
	Tick        uint64
}

// PlayerResource holds the balance; debits happen only after an affordability check
type PlayerResource struct {
	Money int64
}

// Debit subtracts cost when affordable and reports success
func (p *PlayerResource) Debit(cost int64) bool {
	if cost > p.Money {
		return false
	}
	p.Money -= cost
	return true
}

func (p *PlayerResource) Credit(amount int64) {
	p.Money += amount
}

// ToolResource holds the selected tool and the joint construction state
type ToolResource struct {
	Selected component.Tool
	Joint    component.JointTool
}

// Select switches tool; any switch clears joint state
func (t *ToolResource) Select(tool component.Tool) {
	if t.Selected != tool {
		t.Joint.Reset()
	}
	t.Selected = tool
}

// EarthquakeResource holds the three quake timers
// Stop and Rumbles stay paused outside an active quake
type EarthquakeResource struct {
	Next    core.Timer
	Stop    core.Timer
	Rumbles core.Timer
	Count   int
}

func NewEarthquakeResource(q config.Quake) *EarthquakeResource {
	return &EarthquakeResource{
		Next:    core.NewTimer(q.FirstInterval.Duration(), core.TimerRepeating),
		Stop:    core.NewPausedTimer(q.Duration.Duration(), core.TimerOnce),
		Rumbles: core.NewPausedTimer(q.RumbleInterval.Duration(), core.TimerRepeating),
	}
}

// Active reports whether a quake window is open
func (q *EarthquakeResource) Active() bool {
	return !q.Stop.Paused
}

// CursorResource is the cursor world position and its cost label
// Valid is false when the pointer is outside the play area
type CursorResource struct {
	World vmath.Vec2
	Valid bool
	Text  string
}

// InputResource is the latched input state for the current frame
// Edge flags and keys are cleared after the frame phase
type InputResource struct {
	MouseX, MouseY int
	HasMouse       bool
	LeftDown       bool
	LeftReleased   bool
	Keys           []rune
}

// Pressed reports whether a key was pressed this frame
func (in *InputResource) Pressed(r rune) bool {
	for _, k := range in.Keys {
		if k == r {
			return true
		}
	}
	return false
}

// EndFrame clears per-frame edges
func (in *InputResource) EndFrame() {
	in.LeftReleased = false
	in.Keys = in.Keys[:0]
}

// StatsResource accumulates run statistics for history and spectators
type StatsResource struct {
	RunID         string
	Started       time.Time
	Buildings     int
	Joints        int
	JointsBroken  int
	Quakes        int
	Evictions     int
	RentCollected int64
	PeakHeight    float64
}
