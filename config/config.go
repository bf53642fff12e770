package config

import (
	"os"
	"strconv"
	"time"

	"github.com/lixenwraith/tremor/constant"
)

// Seconds is a duration written as fractional seconds in the tuning file
type Seconds float64

// Duration converts to time.Duration
func (s Seconds) Duration() time.Duration {
	return time.Duration(float64(s) * float64(time.Second))
}

// FromDuration converts a time.Duration to Seconds
func FromDuration(d time.Duration) Seconds {
	return Seconds(d.Seconds())
}

// Tuning holds every gameplay and presentation knob that may be changed without a rebuild
type Tuning struct {
	Physics   Physics   `yaml:"physics"`
	Economy   Economy   `yaml:"economy"`
	Quake     Quake     `yaml:"quake"`
	Audio     Audio     `yaml:"audio"`
	Spectator Spectator `yaml:"spectator"`
}

type Physics struct {
	Gravity         float64 `yaml:"gravity"`
	Iterations      int     `yaml:"iterations"`
	Density         float64 `yaml:"density"`
	Friction        float64 `yaml:"friction"`
	JointBreakForce float64 `yaml:"joint_break_force"`
}

type Economy struct {
	StartMoney    int64   `yaml:"start_money"`
	PlacementCost int64   `yaml:"placement_cost"`
	JointCostRate float64 `yaml:"joint_cost_rate"`
}

type Quake struct {
	FirstInterval  Seconds `yaml:"first_interval"`
	IntervalFloor  Seconds `yaml:"interval_floor"`
	IntervalDecay  float64 `yaml:"interval_decay"`
	Duration       Seconds `yaml:"duration"`
	RumbleInterval Seconds `yaml:"rumble_interval"`
	RumblePlates   int     `yaml:"rumble_plates"`
	ForceBase      float64 `yaml:"force_base"`
}

type Audio struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float64 `yaml:"master_volume"`
}

// Spectator configures the optional websocket feed; empty Addr disables it
type Spectator struct {
	Addr   string `yaml:"addr"`
	RateHz int    `yaml:"rate_hz"`
}

// Default returns the compiled-in tuning
func Default() Tuning {
	return Tuning{
		Physics: Physics{
			Gravity:         constant.Gravity,
			Iterations:      constant.SolverIterations,
			Density:         constant.Density,
			Friction:        constant.Friction,
			JointBreakForce: constant.JointBreakForce,
		},
		Economy: Economy{
			StartMoney:    constant.StartMoney,
			PlacementCost: constant.PlacementCost,
			JointCostRate: constant.JointCostRate,
		},
		Quake: Quake{
			FirstInterval:  FromDuration(constant.QuakeFirstInterval),
			IntervalFloor:  FromDuration(constant.QuakeIntervalFloor),
			IntervalDecay:  constant.QuakeIntervalDecay,
			Duration:       FromDuration(constant.QuakeDuration),
			RumbleInterval: FromDuration(constant.QuakeRumbleInterval),
			RumblePlates:   constant.RumblePlateCount,
			ForceBase:      constant.QuakeForceBase,
		},
		Audio: Audio{
			Enabled:      true,
			MasterVolume: 0.5,
		},
		Spectator: Spectator{
			RateHz: 10,
		},
	}
}

// ApplyEnv overrides audio and spectator settings from TREMOR_* variables
// Unparseable values are ignored
func (t *Tuning) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}

	if enabled := getenv("TREMOR_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			t.Audio.Enabled = val
		}
	}

	// Master volume is given as 0-100
	if volume := getenv("TREMOR_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			t.Audio.MasterVolume = min(max(float64(val)/100.0, 0), 1)
		}
	}

	if addr := getenv("TREMOR_SPECTATE"); addr != "" {
		t.Spectator.Addr = addr
	}
}
