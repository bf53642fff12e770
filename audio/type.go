package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// SoundType represents different sound effects
type SoundType int

const (
	SoundBuild SoundType = iota // Building committed
	SoundJoint                  // Joint committed
	SoundCrack                  // Joint torn apart
	SoundQuake                  // Quake onset
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundBuild:
		return "build"
	case SoundJoint:
		return "joint"
	case SoundCrack:
		return "crack"
	case SoundQuake:
		return "quake"
	default:
		return "unknown"
	}
}

const (
	sampleRate     = beep.SampleRate(48000)
	speakerBuffer  = 100 * time.Millisecond
	buildDuration  = 280 * time.Millisecond
	jointDuration  = 60 * time.Millisecond
	crackDuration  = 400 * time.Millisecond
	quakeDuration  = 900 * time.Millisecond
	rumbleCycle    = 2 * time.Second
	rumbleFreqHz   = 42.0
	buildThudHz    = 70.0
	jointClickHz   = 320.0
	crackRumbleHz  = 80.0
	quakeBoomHz    = 36.0
	rumbleMaxLevel = 0.6
)
