package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decay multiplies a stream by exp(-t*rate), a struck-object envelope
type decay struct {
	streamer beep.Streamer
	rate     beep.SampleRate
	speed    float64
	position int
}

// NewDecay wraps s with an exponential fade; speed is in 1/seconds
func NewDecay(s beep.Streamer, speed float64, rate beep.SampleRate) beep.Streamer {
	return &decay{streamer: s, rate: rate, speed: speed}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		t := float64(d.position) / float64(d.rate)
		vol := math.Exp(-t * d.speed)
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume maps to silent
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func setVolume(v *effects.Volume, vol float64) {
	if vol <= 0 {
		v.Silent = true
		return
	}
	v.Silent = false
	v.Volume = math.Log2(vol)
}

// CreateBuildSound is a low thud with a short noise attack
func CreateBuildSound(master float64) beep.Streamer {
	body := NewDecay(NewOscillator(buildThudHz, buildDuration, WaveSine, sampleRate), 12, sampleRate)
	hit := NewDecay(NewOscillator(0, buildDuration, WaveNoise, sampleRate), 40, sampleRate)
	return newVolume(beep.Mix(newVolume(body, 0.8), newVolume(hit, 0.25)), master)
}

// CreateJointSound is a two-tap metallic click
func CreateJointSound(master float64) beep.Streamer {
	tap := func(freq float64) beep.Streamer {
		return NewDecay(NewOscillator(freq, jointDuration, WaveSquare, sampleRate), 60, sampleRate)
	}
	return newVolume(beep.Seq(tap(jointClickHz), tap(jointClickHz*1.5)), master*0.4)
}

// CreateCrackSound is a crackling noise burst over a low rumble
func CreateCrackSound(master float64) beep.Streamer {
	noise := NewDecay(NewOscillator(0, crackDuration, WaveNoise, sampleRate), 8, sampleRate)
	rumble := NewDecay(NewOscillator(crackRumbleHz, crackDuration, WaveSine, sampleRate), 8, sampleRate)
	return newVolume(beep.Mix(newVolume(noise, 0.25), newVolume(rumble, 0.3)), master)
}

// CreateQuakeSound is a long sub boom marking quake onset
func CreateQuakeSound(master float64) beep.Streamer {
	boom := NewDecay(NewOscillator(quakeBoomHz, quakeDuration, WaveSaw, sampleRate), 3, sampleRate)
	return newVolume(boom, master*0.6)
}

// GetSoundEffect returns the streamer for a sound type at master volume
func GetSoundEffect(st SoundType, master float64) beep.Streamer {
	switch st {
	case SoundBuild:
		return CreateBuildSound(master)
	case SoundJoint:
		return CreateJointSound(master)
	case SoundCrack:
		return CreateCrackSound(master)
	case SoundQuake:
		return CreateQuakeSound(master)
	default:
		return nil
	}
}

// RumbleGenerator is an endless low drone with slow beating and grit
type RumbleGenerator struct {
	sr      beep.SampleRate
	pos     int
	samples int
}

func NewRumbleGenerator(sr beep.SampleRate) *RumbleGenerator {
	return &RumbleGenerator{
		sr:      sr,
		samples: sr.N(rumbleCycle),
	}
}

func (g *RumbleGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		cyclePos := float64(g.pos%g.samples) / float64(g.samples)

		// Two detuned partials beat against each other
		base := math.Sin(2*math.Pi*rumbleFreqHz*t) + 0.6*math.Sin(2*math.Pi*(rumbleFreqHz*1.07)*t)
		grit := 0.15 * (rand.Float64()*2 - 1)
		swell := 0.6 + 0.4*math.Sin(cyclePos*2*math.Pi)

		sample := 0.3 * swell * (0.6*base + grit)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *RumbleGenerator) Err() error {
	return nil
}
