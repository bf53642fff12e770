package system

import (
	"github.com/lixenwraith/tremor/audio"
	"github.com/lixenwraith/tremor/constant"
	"github.com/lixenwraith/tremor/engine"
	"github.com/lixenwraith/tremor/event"
)

// SoundPlayer is the audio surface systems need; satisfied by *audio.SoundManager
type SoundPlayer interface {
	Play(audio.SoundType)
	SetRumble(level float64)
	ToggleMute() bool
}

// AudioSystem turns game events into sounds and drives the quake drone
type AudioSystem struct {
	world  *engine.World
	player SoundPlayer

	enabled bool
}

// NewAudioSystem creates an audio system with the given player
// player may be nil if audio is disabled
func NewAudioSystem(world *engine.World, player SoundPlayer) engine.System {
	s := &AudioSystem{
		world:  world,
		player: player,
	}
	s.Init()
	return s
}

// Init resets session state for new game
func (s *AudioSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *AudioSystem) Name() string {
	return "audio"
}

// Priority returns the system's priority
func (s *AudioSystem) Priority() int {
	return constant.PriorityAudio
}

// EventTypes returns the event types AudioSystem handles
func (s *AudioSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventBuildingPlaced,
		event.EventJointCreated,
		event.EventJointBroken,
		event.EventQuakeStarted,
	}
}

// HandleEvent plays the effect matching a committed change
func (s *AudioSystem) HandleEvent(ev event.GameEvent) {
	if !s.enabled || s.player == nil {
		return
	}

	switch ev.Type {
	case event.EventBuildingPlaced:
		s.player.Play(audio.SoundBuild)
	case event.EventJointCreated:
		s.player.Play(audio.SoundJoint)
	case event.EventJointBroken:
		s.player.Play(audio.SoundCrack)
	case event.EventQuakeStarted:
		s.player.Play(audio.SoundQuake)
	}
}

// Update handles the mute key and sets the drone level
func (s *AudioSystem) Update() {
	if !s.enabled || s.player == nil {
		return
	}

	res := s.world.Resources
	if res.Input.Pressed('m') || res.Input.Pressed('M') {
		s.player.ToggleMute()
	}
	s.player.SetRumble(RumbleLevel(res.Quake))
}

// RumbleLevel is the drone level: swelling toward the next quake, fading out during one
func RumbleLevel(q *engine.EarthquakeResource) float64 {
	if q.Active() {
		return q.Stop.FractionRemaining()
	}
	// Quiet for the first half of the wait
	return max(0, q.Next.Fraction()*2-1) * 0.5
}
