package system

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/lixenwraith/tremor/audio"
	"github.com/lixenwraith/tremor/engine"
	"github.com/lixenwraith/tremor/event"
)

type fakePlayer struct {
	played []audio.SoundType
	rumble float64
	muted  bool
}

func (p *fakePlayer) Play(st audio.SoundType) { p.played = append(p.played, st) }
func (p *fakePlayer) SetRumble(level float64) { p.rumble = level }
func (p *fakePlayer) ToggleMute() bool {
	p.muted = !p.muted
	return p.muted
}

func TestAudioSystem_EventsToSounds(t *testing.T) {
	w := engine.NewTestWorld(1)
	player := &fakePlayer{}
	s := NewAudioSystem(w, player).(*AudioSystem)

	for _, et := range []event.EventType{
		event.EventBuildingPlaced,
		event.EventJointCreated,
		event.EventJointBroken,
		event.EventQuakeStarted,
		event.EventRentCollected,
	} {
		s.HandleEvent(event.GameEvent{Type: et})
	}

	want := []audio.SoundType{audio.SoundBuild, audio.SoundJoint, audio.SoundCrack, audio.SoundQuake}
	if !slices.Equal(player.played, want) {
		t.Errorf("played %v, want %v", player.played, want)
	}
}

func TestAudioSystem_MuteKeyAndDrone(t *testing.T) {
	w := engine.NewTestWorld(1)
	player := &fakePlayer{}
	s := NewAudioSystem(w, player)

	w.Resources.Input.Keys = append(w.Resources.Input.Keys, 'm')
	w.Resources.Quake.Stop.Unpause()
	s.Update()
	if !player.muted {
		t.Error("m did not toggle mute")
	}
	if player.rumble != 1 {
		t.Errorf("drone at quake start = %v, want 1", player.rumble)
	}
}

func TestAudioSystem_NilPlayer(t *testing.T) {
	w := engine.NewTestWorld(1)
	s := NewAudioSystem(w, nil).(*AudioSystem)
	s.HandleEvent(event.GameEvent{Type: event.EventJointBroken})
	s.Update()
}

func TestRumbleLevel(t *testing.T) {
	q := engine.NewTestWorld(1).Resources.Quake

	if got := RumbleLevel(q); got != 0 {
		t.Errorf("fresh wait = %v", got)
	}
	q.Next.Elapsed = 7500 * time.Millisecond
	if got := RumbleLevel(q); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("three quarters through the wait = %v, want 0.25", got)
	}

	q.Stop.Unpause()
	q.Stop.Elapsed = 1500 * time.Millisecond
	if got := RumbleLevel(q); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("half way through a quake = %v, want 0.5", got)
	}
}
