package host

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/cubeburst/pkg/math3d"
	"github.com/taigrr/cubeburst/pkg/scene"
)

// Action is a user command, independent of the input device.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionPause
	ActionReset
	ActionPitchUp
	ActionPitchDown
	ActionYawLeft
	ActionYawRight
	ActionRollLeft
	ActionRollRight
	ActionExplodeMore
	ActionExplodeLess
)

// ActionForRune maps a typed character to an action.
func ActionForRune(r rune) Action {
	switch r {
	case 'q', 'Q':
		return ActionQuit
	case 'p', 'P', ' ':
		return ActionPause
	case 'r', 'R':
		return ActionReset
	case 'w', 'W':
		return ActionPitchUp
	case 's', 'S':
		return ActionPitchDown
	case 'a', 'A':
		return ActionYawLeft
	case 'd', 'D':
		return ActionYawRight
	case '[':
		return ActionRollLeft
	case ']':
		return ActionRollRight
	case '+', '=':
		return ActionExplodeMore
	case '-', '_':
		return ActionExplodeLess
	}
	return ActionNone
}

// spinAxis is one rotation axis whose velocity springs back to rest.
type spinAxis struct {
	velocity float64 // degrees per second
	accel    float64 // spring state for velocity
	spring   harmonica.Spring
}

func newSpinAxis(fps int) spinAxis {
	// critically damped so the spin never reverses
	return spinAxis{spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

// update returns the rotation in degrees accumulated over dt.
func (a *spinAxis) update(dt float64) float64 {
	delta := a.velocity * dt
	a.velocity, a.accel = a.spring.Update(a.velocity, a.accel, 0)
	if math.Abs(a.velocity) < 1e-6 && math.Abs(a.accel) < 1e-6 {
		a.velocity, a.accel = 0, 0
	}
	return delta
}

// Controller applies actions to a scene and advances it each frame.
type Controller struct {
	scene *scene.Scene
	fps   int
	spin  [3]spinAxis

	// Impulse is the angular velocity in degrees per second one key press adds.
	Impulse float64
	// ExplosionStep is the percentage one key press changes the explosion by.
	ExplosionStep float64

	paused bool
}

// NewController wraps s. fps sets the spring time step.
func NewController(s *scene.Scene, fps int) *Controller {
	if fps <= 0 {
		fps = 30
	}
	c := &Controller{
		scene:         s,
		fps:           fps,
		Impulse:       90,
		ExplosionStep: 10,
	}
	c.resetSpin()
	return c
}

func (c *Controller) resetSpin() {
	for i := range c.spin {
		c.spin[i] = newSpinAxis(c.fps)
	}
}

// Scene returns the driven scene.
func (c *Controller) Scene() *scene.Scene { return c.scene }

// Paused reports whether time is frozen.
func (c *Controller) Paused() bool { return c.paused }

// Spin returns the current user spin velocity in degrees per second.
func (c *Controller) Spin() math3d.Vec3 {
	return math3d.V3(c.spin[0].velocity, c.spin[1].velocity, c.spin[2].velocity)
}

// Handle applies a, reporting whether the host should quit.
func (c *Controller) Handle(a Action) (quit bool) {
	switch a {
	case ActionQuit:
		return true
	case ActionPause:
		c.paused = !c.paused
	case ActionReset:
		c.resetSpin()
		c.scene.SetRotationDegrees(math3d.Zero3())
	case ActionPitchUp:
		c.spin[0].velocity -= c.Impulse
	case ActionPitchDown:
		c.spin[0].velocity += c.Impulse
	case ActionYawLeft:
		c.spin[1].velocity -= c.Impulse
	case ActionYawRight:
		c.spin[1].velocity += c.Impulse
	case ActionRollLeft:
		c.spin[2].velocity -= c.Impulse
	case ActionRollRight:
		c.spin[2].velocity += c.Impulse
	case ActionExplodeMore:
		c.nudgeExplosion(c.ExplosionStep)
	case ActionExplodeLess:
		c.nudgeExplosion(-c.ExplosionStep)
	}
	return false
}

func (c *Controller) nudgeExplosion(delta float64) {
	pct := math.Max(0, math.Min(100, c.scene.ExplosionTargetPercent()+delta))
	c.scene.SetExplosionPercent(pct)
}

// Tick advances the scene by dt seconds unless paused.
func (c *Controller) Tick(dt float64) {
	if c.paused {
		return
	}
	var delta math3d.Vec3
	delta.X = c.spin[0].update(dt)
	delta.Y = c.spin[1].update(dt)
	delta.Z = c.spin[2].update(dt)
	if delta != math3d.Zero3() {
		c.scene.RotateDegrees(delta)
	}
	c.scene.Step(dt)
}
