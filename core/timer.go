package core

import "time"

// TimerMode selects whether a timer stops or wraps when it reaches its duration
type TimerMode uint8

const (
	TimerOnce TimerMode = iota
	TimerRepeating
)

// Timer counts elapsed time toward a duration
// Paused timers ignore Tick; JustFinished reports expiry during the most recent Tick only
type Timer struct {
	Duration time.Duration
	Elapsed  time.Duration
	Mode     TimerMode
	Paused   bool

	finished     bool
	timesElapsed int
}

// NewTimer creates a running timer
func NewTimer(d time.Duration, mode TimerMode) Timer {
	return Timer{Duration: d, Mode: mode}
}

// NewPausedTimer creates a timer that does not advance until unpaused
func NewPausedTimer(d time.Duration, mode TimerMode) Timer {
	return Timer{Duration: d, Mode: mode, Paused: true}
}

// Tick advances the timer by dt
func (t *Timer) Tick(dt time.Duration) {
	t.timesElapsed = 0
	if t.Paused {
		t.finished = false
		return
	}
	if t.Mode == TimerOnce && t.finished {
		return
	}

	t.Elapsed += dt
	if t.Elapsed < t.Duration {
		t.finished = false
		return
	}

	t.finished = true
	switch t.Mode {
	case TimerRepeating:
		if t.Duration <= 0 {
			t.timesElapsed = 1
			t.Elapsed = 0
			return
		}
		t.timesElapsed = int(t.Elapsed / t.Duration)
		t.Elapsed %= t.Duration
	default:
		t.timesElapsed = 1
		t.Elapsed = t.Duration
	}
}

// JustFinished reports whether the last Tick crossed the duration
func (t *Timer) JustFinished() bool {
	return t.timesElapsed > 0
}

// TimesFinished returns how many periods completed during the last Tick
func (t *Timer) TimesFinished() int {
	return t.timesElapsed
}

// Finished reports whether a once timer has expired
func (t *Timer) Finished() bool {
	return t.finished
}

// Reset rewinds elapsed time without changing pause state
func (t *Timer) Reset() {
	t.Elapsed = 0
	t.finished = false
	t.timesElapsed = 0
}

func (t *Timer) Pause() {
	t.Paused = true
}

func (t *Timer) Unpause() {
	t.Paused = false
}

// Fraction returns elapsed/duration in [0,1]
func (t *Timer) Fraction() float64 {
	if t.Duration <= 0 {
		return 1
	}
	f := float64(t.Elapsed) / float64(t.Duration)
	if f > 1 {
		return 1
	}
	return f
}

// FractionRemaining returns 1 - Fraction
func (t *Timer) FractionRemaining() float64 {
	return 1 - t.Fraction()
}

// Remaining returns the time left until the next expiry
func (t *Timer) Remaining() time.Duration {
	r := t.Duration - t.Elapsed
	if r < 0 {
		return 0
	}
	return r
}
