package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
)

// SoundManager manages all game audio
// Every method is safe to call before Initialize or after Cleanup; they do nothing then
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rumble      *beep.Ctrl
	rumbleVol   *effects.Volume
	master      float64
	muted       bool
	initialized bool
}

// NewSoundManager creates a sound manager at the given master volume (0-1)
func NewSoundManager(master float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		master: master,
	}
}

// Initialize opens the speaker and starts the mixer with a paused rumble drone
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(speakerBuffer)); err != nil {
		return errors.Wrap(err, "init speaker")
	}

	sm.rumbleVol = newVolume(NewRumbleGenerator(sampleRate), 0)
	sm.rumble = &beep.Ctrl{Streamer: sm.rumbleVol, Paused: true}
	sm.mixer.Add(sm.rumble)

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.rumble.Paused = true
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker close; an empty mixer keeps it silent
	sm.initialized = false
}

// Play mixes in a one-shot effect
func (sm *SoundManager) Play(st SoundType) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	s := GetSoundEffect(st, sm.master)
	if s == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// SetRumble sets the drone level in [0,1]; zero pauses it
func (sm *SoundManager) SetRumble(level float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	level = min(max(level, 0), 1)
	if sm.muted {
		level = 0
	}

	speaker.Lock()
	sm.rumble.Paused = level == 0
	setVolume(sm.rumbleVol, level*rumbleMaxLevel*sm.master)
	speaker.Unlock()
}

// ToggleMute flips mute and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	return sm.muted
}

// IsMuted reports the mute state
func (sm *SoundManager) IsMuted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// IsInitialized reports whether the speaker is open
func (sm *SoundManager) IsInitialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}
