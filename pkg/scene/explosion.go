package scene

import (
	"fmt"
	"math"

	"github.com/charmbracelet/harmonica"
)

// ExplosionMode selects how the flag carrier's explosion evolves.
type ExplosionMode int

const (
	// ExplosionFixed holds the control target.
	ExplosionFixed ExplosionMode = iota
	// ExplosionOscillate runs a triangle wave 0 → Max → 0 every Period seconds.
	ExplosionOscillate
	// ExplosionSpring eases toward the control target.
	ExplosionSpring
)

// ParseExplosionMode parses "fixed", "oscillate" or "spring".
func ParseExplosionMode(s string) (ExplosionMode, error) {
	switch s {
	case "fixed":
		return ExplosionFixed, nil
	case "oscillate":
		return ExplosionOscillate, nil
	case "spring":
		return ExplosionSpring, nil
	}
	return 0, fmt.Errorf("unknown explosion mode %q", s)
}

func (m ExplosionMode) String() string {
	switch m {
	case ExplosionOscillate:
		return "oscillate"
	case ExplosionSpring:
		return "spring"
	}
	return "fixed"
}

// ExplosionConfig configures an ExplosionDriver.
type ExplosionConfig struct {
	Mode      ExplosionMode
	Initial   float64 // starting value and target
	Max       float64 // upper bound of the target; wave amplitude
	Period    float64 // oscillation period, seconds
	Frequency float64 // spring angular frequency
	Damping   float64 // spring damping ratio
}

// DefaultExplosionConfig holds the explosion at 0.5.
func DefaultExplosionConfig() ExplosionConfig {
	return ExplosionConfig{
		Mode:      ExplosionFixed,
		Initial:   0.5,
		Max:       0.5,
		Period:    2,
		Frequency: 6,
		Damping:   0.4,
	}
}

// ExplosionDriver produces the flag carrier's explosion value per frame.
type ExplosionDriver struct {
	cfg      ExplosionConfig
	target   float64
	value    float64
	velocity float64
	phase    float64
}

// NewExplosionDriver creates a driver at its initial value.
func NewExplosionDriver(cfg ExplosionConfig) *ExplosionDriver {
	d := &ExplosionDriver{cfg: cfg}
	d.target = d.clamp(cfg.Initial)
	d.value = d.target
	if cfg.Mode == ExplosionOscillate {
		d.value = 0
	}
	return d
}

func (d *ExplosionDriver) clamp(v float64) float64 {
	return math.Max(0, math.Min(v, d.cfg.Max))
}

// SetTarget sets the control target, clamped to [0, Max]. Fixed mode
// applies it immediately; spring mode eases toward it on later updates.
// Oscillation ignores the target.
func (d *ExplosionDriver) SetTarget(v float64) {
	d.target = d.clamp(v)
	if d.cfg.Mode == ExplosionFixed {
		d.value = d.target
	}
}

// Target returns the control target.
func (d *ExplosionDriver) Target() float64 { return d.target }

// Value returns the current explosion.
func (d *ExplosionDriver) Value() float64 { return d.value }

// Mode returns the driver mode.
func (d *ExplosionDriver) Mode() ExplosionMode { return d.cfg.Mode }

// Update advances the driver by dt seconds and returns the new value.
// Update(0) never changes the value.
func (d *ExplosionDriver) Update(dt float64) float64 {
	if dt <= 0 {
		return d.value
	}
	switch d.cfg.Mode {
	case ExplosionOscillate:
		d.phase = math.Mod(d.phase+dt, d.cfg.Period)
		half := d.cfg.Period / 2
		if d.phase < half {
			d.value = d.cfg.Max * d.phase / half
		} else {
			d.value = d.cfg.Max * (1 - (d.phase-half)/half)
		}
	case ExplosionSpring:
		spring := harmonica.NewSpring(dt, d.cfg.Frequency, d.cfg.Damping)
		d.value, d.velocity = spring.Update(d.value, d.velocity, d.target)
	default:
		d.value = d.target
	}
	return d.value
}
