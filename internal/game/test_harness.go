package game

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/Garsondee/Storm-Portal/internal/config"
)

// TestSim is a headless portal harness used by tests and the headless
// report. It drives Portal.Step exactly as Game.Update does, without Ebiten,
// and records every event into a SimLog.
type TestSim struct {
	Width     int
	Height    int
	Sections  []config.Section
	MoveSpeed float64
	Portal    *Portal
	SimLog    *SimLog
	Presenter *RecordingPresenter
	Sounds    *RecordingSounds

	sprites int
	rng     *rand.Rand
}

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	fn func(*TestSim)
}

// WithCanvas sets the canvas dimensions (below the header).
func WithCanvas(w, h int) SimOption {
	return SimOption{func(ts *TestSim) {
		ts.Width = w
		ts.Height = h
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{func(ts *TestSim) {
		ts.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithSections replaces the default four sections.
func WithSections(secs ...config.Section) SimOption {
	return SimOption{func(ts *TestSim) {
		ts.Sections = secs
	}}
}

// WithMoveSpeed overrides the sprite speed in px per tick.
func WithMoveSpeed(v float64) SimOption {
	return SimOption{func(ts *TestSim) {
		ts.MoveSpeed = v
	}}
}

// WithGlitchAssets pretends sprites glitch images and clips glitch sounds
// were loaded.
func WithGlitchAssets(sprites, clips int) SimOption {
	return SimOption{func(ts *TestSim) {
		ts.sprites = sprites
		ts.Sounds.Clips = clips
	}}
}

// DefaultTestSections is the section set NewTestSim uses unless
// WithSections is given.
func DefaultTestSections() []config.Section {
	return []config.Section{
		{Name: "About", ID: "about", Glow: "#0d1b4d"},
		{Name: "Resume", ID: "resume", Glow: "#0d3a6b"},
		{Name: "Portfolio", ID: "portfolio", Glow: "#2b0d4d"},
		{Name: "Contact", ID: "contact", Glow: "#0d4d3a"},
	}
}

// NewTestSim constructs a TestSim from the given options and sizes the
// portal so it is ready to step.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		Width:     1280,
		Height:    650,
		Sections:  DefaultTestSections(),
		MoveSpeed: defaultMoveSpeed,
		SimLog:    NewSimLog(false),
		Presenter: &RecordingPresenter{},
		Sounds:    &RecordingSounds{},
		rng:       rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
	}
	for _, o := range opts {
		o.fn(ts)
	}
	ts.Portal = NewPortal(ts.Sections, ts.MoveSpeed, ts.rng)
	ts.Portal.SetPresenter(ts.Presenter)
	ts.Portal.SetSounds(ts.Sounds)
	ts.Portal.SetEventSink(ts.SimLog.AddEvent)
	ts.Portal.SetGlitchSprites(ts.sprites)
	ts.Portal.Resize(ts.Width, ts.Height)
	return ts
}

// CurrentTick returns the number of ticks stepped.
func (ts *TestSim) CurrentTick() int { return ts.Portal.Tick() }

// Press steps one tick with in.
func (ts *TestSim) Press(in Input) {
	ts.step(in)
}

// Hold steps n ticks with in. Edge-triggered fields (Activate, Dismiss,
// Back, Click) only fire on the first tick.
func (ts *TestSim) Hold(in Input, n int) {
	for i := 0; i < n; i++ {
		ts.step(in)
		in = held(in)
	}
}

// RunTicks advances n ticks with no input.
func (ts *TestSim) RunTicks(n int) {
	ts.Hold(Input{}, n)
}

// RunUntil advances with in held, up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, in Input, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.step(in)
		in = held(in)
		if predicate(ts) {
			return ts.CurrentTick()
		}
	}
	return -1
}

// WalkTo holds left or right until the sprite centre is within one step of
// x, then stops it there. It returns false if x was not reached within
// maxTicks or the scene changed on the way.
func (ts *TestSim) WalkTo(x float64, maxTicks int) bool {
	p := ts.Portal
	scene := p.Scene.Current
	for i := 0; i < maxTicks; i++ {
		d := x - p.Sprite.X
		if math.Abs(d) <= p.moveSpeed {
			p.Sprite.X = x
			ts.step(Input{})
			return p.Scene.Current == scene
		}
		ts.step(Input{Left: d < 0, Right: d > 0})
		if p.Scene.Current != scene {
			return false
		}
	}
	return false
}

// IconCenter is the x of icon i's centre.
func (ts *TestSim) IconCenter(i int) float64 {
	return ts.Portal.Icons[i].CenterX()
}

func (ts *TestSim) step(in Input) {
	ts.Portal.Step(in)
	sp := ts.Portal.Sprite
	ts.SimLog.AddVerbose(ts.CurrentTick(), "sprite", "position", fmt.Sprintf("(%.1f,%.1f)", sp.X, sp.Y), sp.X)
}

func held(in Input) Input {
	in.Activate = false
	in.Dismiss = false
	in.Back = false
	in.Click = false
	return in
}

// RecordingPresenter records every Presenter call in order.
type RecordingPresenter struct {
	Calls []string
}

func (r *RecordingPresenter) SetPreview(section int, visible bool) {
	if visible {
		r.Calls = append(r.Calls, fmt.Sprintf("preview:%d", section))
		return
	}
	r.Calls = append(r.Calls, "preview:hide")
}

func (r *RecordingPresenter) NavigateToSection(id string) {
	r.Calls = append(r.Calls, "navigate:"+id)
}

func (r *RecordingPresenter) ReturnToPortal()     { r.Calls = append(r.Calls, "return") }
func (r *RecordingPresenter) ShowTreasureChest()  { r.Calls = append(r.Calls, "chest:show") }
func (r *RecordingPresenter) CloseTreasureChest() { r.Calls = append(r.Calls, "chest:close") }

// Count returns how many recorded calls equal call.
func (r *RecordingPresenter) Count(call string) int {
	n := 0
	for _, c := range r.Calls {
		if c == call {
			n++
		}
	}
	return n
}

// RecordingSounds is a Sounds that tracks what would have played.
type RecordingSounds struct {
	Clips   int
	Played  []int
	Stops   int
	Coins   int
	playing bool
}

func (r *RecordingSounds) GlitchClips() int { return r.Clips }

func (r *RecordingSounds) PlayGlitch(i int) {
	r.Played = append(r.Played, i)
	r.playing = true
}

func (r *RecordingSounds) StopGlitch() {
	r.Stops++
	r.playing = false
}

func (r *RecordingSounds) PlayCoin() { r.Coins++ }

// GlitchPlaying reports whether a glitch clip was started and not stopped.
func (r *RecordingSounds) GlitchPlaying() bool { return r.playing }
