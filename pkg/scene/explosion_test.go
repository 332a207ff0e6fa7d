package scene

import (
	"math"
	"testing"
)

func TestExplosionFixed(t *testing.T) {
	d := NewExplosionDriver(DefaultExplosionConfig())
	if d.Value() != 0.5 {
		t.Fatalf("initial value = %v, want 0.5", d.Value())
	}

	tests := []struct {
		target float64
		want   float64
	}{
		{0.25, 0.25},
		{-1, 0},
		{3, 0.5},
		{0, 0},
	}
	for _, tt := range tests {
		d.SetTarget(tt.target)
		if d.Value() != tt.want {
			t.Errorf("SetTarget(%v): value = %v, want %v", tt.target, d.Value(), tt.want)
		}
		if got := d.Update(1.0 / 60); got != tt.want {
			t.Errorf("SetTarget(%v): Update = %v, want %v", tt.target, got, tt.want)
		}
	}
}

func TestExplosionOscillateTriangleWave(t *testing.T) {
	cfg := DefaultExplosionConfig()
	cfg.Mode = ExplosionOscillate
	d := NewExplosionDriver(cfg)
	if d.Value() != 0 {
		t.Fatalf("initial value = %v, want 0", d.Value())
	}

	want := []float64{0.25, 0.5, 0.25, 0, 0.25}
	for i, w := range want {
		if got := d.Update(0.5); math.Abs(got-w) > 1e-12 {
			t.Errorf("step %d: value = %v, want %v", i, got, w)
		}
	}

	d.SetTarget(0.1)
	if got := d.Update(0.5); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("target changed the wave: %v", got)
	}
}

func TestExplosionSpringSettles(t *testing.T) {
	cfg := DefaultExplosionConfig()
	cfg.Mode = ExplosionSpring
	cfg.Initial = 0
	d := NewExplosionDriver(cfg)

	d.SetTarget(0.4)
	if d.Value() != 0 {
		t.Fatalf("spring jumped to %v", d.Value())
	}
	first := d.Update(1.0 / 60)
	if first <= 0 || first >= 0.4 {
		t.Errorf("first step = %v, want between 0 and 0.4", first)
	}
	for range 600 {
		d.Update(1.0 / 60)
	}
	if math.Abs(d.Value()-0.4) > 1e-3 {
		t.Errorf("settled at %v, want 0.4", d.Value())
	}
}

func TestExplosionZeroDeltaKeepsValue(t *testing.T) {
	for _, mode := range []ExplosionMode{ExplosionFixed, ExplosionOscillate, ExplosionSpring} {
		t.Run(mode.String(), func(t *testing.T) {
			cfg := DefaultExplosionConfig()
			cfg.Mode = mode
			d := NewExplosionDriver(cfg)
			d.Update(0.3)
			v := d.Value()
			if got := d.Update(0); got != v {
				t.Errorf("Update(0) = %v, want %v", got, v)
			}
		})
	}
}

func TestParseExplosionMode(t *testing.T) {
	for _, mode := range []ExplosionMode{ExplosionFixed, ExplosionOscillate, ExplosionSpring} {
		got, err := ParseExplosionMode(mode.String())
		if err != nil || got != mode {
			t.Errorf("ParseExplosionMode(%q) = %v, %v", mode.String(), got, err)
		}
	}
	if _, err := ParseExplosionMode("implode"); err == nil {
		t.Error("ParseExplosionMode(implode) should fail")
	}
}
