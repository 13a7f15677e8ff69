package game

import (
	"math"
	"math/rand"
)

// Glitch timing, in ticks.
const (
	glitchMinDuration    = 12
	glitchDurationSpread = 4 // duration is glitchMinDuration + [0, spread)
	glitchCooldownPad    = 30
	// justReturnedTicks keeps the glitch suppressed after returning to the
	// portal long enough for the first collision pass to run (~100ms).
	justReturnedTicks = 6
)

// Flash particle tuning.
const (
	flashSpawnChance = 0.7
	flashMaxPerTick  = 2
	flashSpread      = 1.2 // spawn box, as a multiple of icon size
	flashScaleMin    = 0.08
	flashScaleRange  = 0.15
	flashScaleRef    = 120.0 // icon width at which flash scale is 1:1
	flashAlphaMin    = 0.8
	flashAlphaRange  = 0.2
	flashMaxAgeMin   = 2.0
	flashMaxAgeRange = 2.0
)

// Sounds is the sound-effect sink the portal drives. The implementation
// tracks the current glitch clip so a new one stops the previous.
type Sounds interface {
	GlitchClips() int
	PlayGlitch(i int)
	StopGlitch()
	PlayCoin()
}

type silentSounds struct{}

func (silentSounds) GlitchClips() int { return 0 }
func (silentSounds) PlayGlitch(int)   {}
func (silentSounds) StopGlitch()      {}
func (silentSounds) PlayCoin()        {}

// Flash is a short-lived glitch sprite drawn around the active icon.
type Flash struct {
	X, Y     float64
	Rotation float64
	Scale    float64
	Alpha    float64
	Age      int
	MaxAge   float64
	Sprite   int // index into the glitch sprite set, -1 when none loaded
}

// Opacity is the flash's alpha after age fade.
func (f Flash) Opacity() float64 {
	return f.Alpha * (1 - float64(f.Age)/f.MaxAge)
}

// Glitch is the glitch effect state machine. "Is glitching" (Active,
// Duration) and "may glitch again" (Cooldown) count down independently.
type Glitch struct {
	Active   bool
	Duration int
	Cooldown int
	Flashes  []Flash
	// Icon is the index of the icon the effect is attached to, -1 when idle.
	Icon int

	// JustReturned blocks triggering right after returning to the portal.
	JustReturned bool
	suppressLeft int
}

func newGlitch() Glitch { return Glitch{Icon: -1} }

// CanTrigger reports whether entering an icon may start the effect.
func (gl *Glitch) CanTrigger() bool {
	return gl.Cooldown <= 0 && !gl.JustReturned
}

// Trigger starts the effect on icon. It picks a random duration and clip and
// arms the cooldown. Callers check CanTrigger first.
func (gl *Glitch) Trigger(rng *rand.Rand, icon int, sfx Sounds) {
	gl.Active = true
	gl.Icon = icon
	gl.Flashes = gl.Flashes[:0]
	gl.Duration = glitchMinDuration + rng.Intn(glitchDurationSpread)
	gl.Cooldown = gl.Duration + glitchCooldownPad
	if n := sfx.GlitchClips(); n > 0 {
		sfx.StopGlitch()
		sfx.PlayGlitch(rng.Intn(n))
	}
}

// Step advances one tick. target is the rect of the icon the effect is on
// and sprites the number of loaded glitch sprites. It returns true on the
// tick the effect returns to idle.
func (gl *Glitch) Step(rng *rand.Rand, target Rect, sprites int, sfx Sounds) bool {
	ended := false
	if gl.Active {
		if rng.Float64() < flashSpawnChance {
			gl.spawn(rng, target, sprites, 1+rng.Intn(flashMaxPerTick))
		}
		kept := gl.Flashes[:0]
		for _, f := range gl.Flashes {
			f.Age++
			if float64(f.Age) < f.MaxAge {
				kept = append(kept, f)
			}
		}
		gl.Flashes = kept

		gl.Duration--
		if gl.Duration <= 0 {
			gl.Duration = 0
			gl.Active = false
			gl.Icon = -1
			gl.Flashes = gl.Flashes[:0]
			sfx.StopGlitch()
			ended = true
		}
	}
	if gl.Cooldown > 0 {
		gl.Cooldown--
	}
	if gl.suppressLeft > 0 {
		gl.suppressLeft--
		if gl.suppressLeft == 0 {
			gl.JustReturned = false
		}
	}
	return ended
}

func (gl *Glitch) spawn(rng *rand.Rand, target Rect, sprites, n int) {
	cx, cy := target.CenterX(), target.CenterY()
	iconScale := target.W / flashScaleRef
	for i := 0; i < n; i++ {
		sprite := -1
		if sprites > 0 {
			sprite = rng.Intn(sprites)
		}
		gl.Flashes = append(gl.Flashes, Flash{
			X:        cx + (rng.Float64()-0.5)*target.W*flashSpread,
			Y:        cy + (rng.Float64()-0.5)*target.H*flashSpread,
			Rotation: (rng.Float64() - 0.5) * 2 * math.Pi,
			Scale:    (flashScaleMin + rng.Float64()*flashScaleRange) * iconScale,
			Alpha:    flashAlphaMin + rng.Float64()*flashAlphaRange,
			MaxAge:   flashMaxAgeMin + rng.Float64()*flashMaxAgeRange,
			Sprite:   sprite,
		})
	}
}

// Reset drops the running effect (particles, duration, sound). The cooldown
// is left alone so leaving and re-entering an icon cannot retrigger early.
func (gl *Glitch) Reset(sfx Sounds) {
	wasActive := gl.Active
	gl.Active = false
	gl.Duration = 0
	gl.Icon = -1
	gl.Flashes = gl.Flashes[:0]
	if wasActive {
		sfx.StopGlitch()
	}
}

// SuppressAfterReturn clears the cooldown and blocks triggering for a few
// ticks, so landing back on an icon does not flash.
func (gl *Glitch) SuppressAfterReturn() {
	gl.Cooldown = 0
	gl.JustReturned = true
	gl.suppressLeft = justReturnedTicks
}
