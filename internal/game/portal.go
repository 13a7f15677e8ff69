package game

import (
	"fmt"
	"math/rand"

	"github.com/Garsondee/Storm-Portal/internal/config"
)

// View is which surface is in front of the player.
type View int

const (
	ViewPortal View = iota
	ViewSection
	ViewChest
)

func (v View) String() string {
	switch v {
	case ViewSection:
		return "section"
	case ViewChest:
		return "chest"
	}
	return "portal"
}

// Input is one tick's worth of player input.
type Input struct {
	Left, Right bool // held
	Activate    bool // pressed this tick
	Dismiss     bool // pressed this tick
	Back        bool // pressed this tick, only honoured while a section is showing

	PointerX, PointerY float64
	PointerInside      bool
	Click              bool // pressed this tick
}

// Presenter performs the UI effects the portal asks for. The portal never
// draws panels or touches audio ducking itself.
type Presenter interface {
	SetPreview(section int, visible bool)
	NavigateToSection(id string)
	ReturnToPortal()
	ShowTreasureChest()
	CloseTreasureChest()
}

type nopPresenter struct{}

func (nopPresenter) SetPreview(int, bool)     {}
func (nopPresenter) NavigateToSection(string) {}
func (nopPresenter) ReturnToPortal()          {}
func (nopPresenter) ShowTreasureChest()       {}
func (nopPresenter) CloseTreasureChest()      {}

// Event is a notable state change, fed to the on-screen log or a SimLog.
type Event struct {
	Tick     int
	Category string // hover, glitch, scene, nav, chest
	Key      string
	Value    string
}

// Portal is the whole interactive state. It is owned by the loop driver and
// advanced by exactly one Tick per frame.
type Portal struct {
	Sections []config.Section
	Layout   Layout
	Icons    []*Icon
	Sprite   Sprite
	Scene    SceneController
	Glitch   Glitch
	Storm    *Storm
	Hover    Hover
	View     View

	ChestHovered   bool
	CurrentSection int // section previewed by the sprite, -1 when none
	ShowPreview    bool
	OpenSection    int // section whose panel is showing, -1 when none

	saved *savedPosition
	tick  int

	moveSpeed     float64
	glitchSprites int
	rng           *rand.Rand
	sfx           Sounds
	presenter     Presenter
	onEvent       func(Event)
}

type savedPosition struct {
	x, y float64
}

// NewPortal creates a portal for sections. The canvas size is set by Resize.
func NewPortal(sections []config.Section, moveSpeed float64, rng *rand.Rand) *Portal {
	if moveSpeed <= 0 {
		moveSpeed = defaultMoveSpeed
	}
	return &Portal{
		Sections:       sections,
		Sprite:         newSprite(),
		Glitch:         newGlitch(),
		Hover:          noHover,
		CurrentSection: -1,
		OpenSection:    -1,
		moveSpeed:      moveSpeed,
		rng:            rng,
		sfx:            silentSounds{},
		presenter:      nopPresenter{},
	}
}

// SetPresenter installs the UI adapter.
func (p *Portal) SetPresenter(pr Presenter) {
	if pr == nil {
		pr = nopPresenter{}
	}
	p.presenter = pr
}

// SetSounds installs the sound-effect sink.
func (p *Portal) SetSounds(s Sounds) {
	if s == nil {
		s = silentSounds{}
	}
	p.sfx = s
}

// SetEventSink installs a callback receiving every Event.
func (p *Portal) SetEventSink(fn func(Event)) { p.onEvent = fn }

// SetGlitchSprites tells the portal how many glitch sprites are loaded.
func (p *Portal) SetGlitchSprites(n int) { p.glitchSprites = n }

// Tick returns the number of ticks run so far.
func (p *Portal) Tick() int { return p.tick }

// Ready reports whether the canvas has a usable size.
func (p *Portal) Ready() bool { return p.Layout.Width > 0 && p.Layout.Height > 0 }

// Desktop reports whether the full interactive scene runs.
func (p *Portal) Desktop() bool { return p.Ready() && !p.Layout.Compact }

func (p *Portal) emit(category, key, value string) {
	if p.onEvent != nil {
		p.onEvent(Event{Tick: p.tick, Category: category, Key: key, Value: value})
	}
}

// Resize recomputes the layout for a new canvas size. Icons are rebuilt and
// the sprite returns to the middle of the sidewalk. Same-size calls are
// ignored.
func (p *Portal) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if float64(width) == p.Layout.Width && float64(height) == p.Layout.Height {
		return false
	}
	p.Layout = ComputeLayout(width, height, len(p.Sections))
	p.Icons = newIcons(p.Layout.Icons)
	p.Hover = noHover
	p.CurrentSection = -1
	p.ShowPreview = false
	p.ChestHovered = false
	p.Glitch.Reset(p.sfx)
	p.Sprite.X = p.Layout.Width / 2
	p.Sprite.Y = p.Layout.SpriteRestY()
	if p.Storm == nil {
		p.Storm = NewStorm(p.rng, p.Layout.Width, p.Layout.Height)
	} else {
		p.Storm.Resize(p.Layout.Width, p.Layout.Height)
	}
	p.emit("layout", "resize", fmt.Sprintf("%dx%d compact=%t", width, height, p.Layout.Compact))
	return true
}

// Step runs one frame of input handling, physics, collision and effects.
func (p *Portal) Step(in Input) {
	if !p.Ready() {
		return
	}
	p.tick++
	p.Storm.Step(p.rng)
	if p.Layout.Compact {
		return
	}

	p.handleActions(in)
	if p.View != ViewPortal {
		return
	}

	p.Sprite.VelocityX = 0
	if in.Left {
		p.Sprite.VelocityX = -p.moveSpeed
	}
	if in.Right {
		p.Sprite.VelocityX = p.moveSpeed
	}
	p.Sprite.X += p.Sprite.VelocityX
	p.Sprite.Y = p.Layout.SpriteRestY()

	if p.Scene.Step(&p.Sprite, p.Layout.Width, in.Left, in.Right, p.Desktop()) {
		p.clearActive()
		p.ChestHovered = false
		p.emit("scene", "change", p.Scene.Current.String())
	}
	p.Sprite.Clamp(p.Layout.Width)

	switch p.Scene.Current {
	case SceneMain:
		p.detectIcons(in)
	case SceneEdge:
		p.Hover = noHover
		for _, ic := range p.Icons {
			ic.hover = 0
		}
		p.detectChest()
	}

	target := Rect{}
	if i := p.Glitch.Icon; i >= 0 && i < len(p.Icons) {
		target = p.Icons[i].Rect
	}
	if p.Glitch.Step(p.rng, target, p.glitchSprites, p.sfx) {
		for _, ic := range p.Icons {
			ic.GlitchActive = false
		}
		p.emit("glitch", "end", "")
	}
}

func (p *Portal) handleActions(in Input) {
	switch p.View {
	case ViewChest:
		if in.Dismiss {
			p.CloseTreasureChest()
		}
		return
	case ViewSection:
		if in.Dismiss || in.Back {
			p.ReturnToPortal()
		}
		return
	}

	if in.Activate {
		switch p.Scene.Current {
		case SceneEdge:
			if p.ChestHovered {
				p.sfx.PlayCoin()
				p.OpenTreasureChest()
				return
			}
		case SceneMain:
			if i := hitIcon(p.Icons, p.Sprite.X, p.Sprite.CenterY()); i >= 0 {
				p.NavigateToSection(p.Sections[p.Icons[i].Section].ID)
				return
			}
		}
	}

	if in.Click && in.PointerInside && p.Scene.Current == SceneMain {
		if i := hitIcon(p.Icons, in.PointerX, in.PointerY); i >= 0 {
			p.NavigateToSection(p.Sections[p.Icons[i].Section].ID)
			return
		}
		if p.ShowPreview && p.CurrentSection >= 0 && p.Layout.Preview.Contains(in.PointerX, in.PointerY) {
			p.NavigateToSection(p.Sections[p.CurrentSection].ID)
		}
	}
}

// detectIcons runs the sprite and pointer hover checks and drives icon
// activation from the sprite.
func (p *Portal) detectIcons(in Input) {
	spriteIdx := hitIcon(p.Icons, p.Sprite.X, p.Sprite.CenterY())
	pointerIdx := -1
	if in.PointerInside {
		pointerIdx = hitIcon(p.Icons, in.PointerX, in.PointerY)
	}
	p.Hover = Hover{Sprite: spriteIdx, Pointer: pointerIdx}
	for i, ic := range p.Icons {
		ic.hover = p.Hover.Sources(i)
	}

	if spriteIdx < 0 {
		if p.ShowPreview || p.anyActive() {
			p.clearActive()
		}
		return
	}
	if !p.Icons[spriteIdx].Active {
		p.activate(spriteIdx)
	}
}

func (p *Portal) activate(i int) {
	for j, ic := range p.Icons {
		if j != i {
			ic.Active = false
			ic.GlitchActive = false
		}
	}
	ic := p.Icons[i]
	ic.Active = true
	p.CurrentSection = ic.Section
	p.ShowPreview = true
	p.presenter.SetPreview(ic.Section, true)
	p.emit("hover", "enter", p.Sections[ic.Section].ID)

	// Moving straight from one icon to another must not leave the old
	// effect attached to the previous icon.
	p.Glitch.Reset(p.sfx)
	if p.Glitch.CanTrigger() {
		ic.GlitchActive = true
		p.Glitch.Trigger(p.rng, i, p.sfx)
		p.emit("glitch", "start", fmt.Sprintf("duration=%d cooldown=%d", p.Glitch.Duration, p.Glitch.Cooldown))
	}
}

// clearActive drops all activation, the preview and the running glitch.
func (p *Portal) clearActive() {
	for _, ic := range p.Icons {
		ic.Active = false
		ic.GlitchActive = false
	}
	if p.CurrentSection >= 0 {
		p.emit("hover", "leave", p.Sections[p.CurrentSection].ID)
	}
	p.CurrentSection = -1
	p.ShowPreview = false
	p.presenter.SetPreview(-1, false)
	p.Glitch.Reset(p.sfx)
}

func (p *Portal) anyActive() bool {
	return p.ActiveCount() > 0
}

// ActiveCount is the number of icons flagged active.
func (p *Portal) ActiveCount() int {
	n := 0
	for _, ic := range p.Icons {
		if ic.Active {
			n++
		}
	}
	return n
}

func (p *Portal) detectChest() {
	hovered := overlaps(p.Layout.ChestHit, p.Sprite.X, p.Sprite.CenterY())
	if hovered != p.ChestHovered {
		p.emit("chest", "hover", fmt.Sprintf("%t", hovered))
	}
	p.ChestHovered = hovered
}

// NavigateToSection saves the sprite position, drops any running glitch and
// opens the section's panel.
// Unknown ids are ignored.
func (p *Portal) NavigateToSection(id string) {
	idx := -1
	for i, s := range p.Sections {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		p.emit("nav", "unknown_section", id)
		return
	}
	p.saved = &savedPosition{x: p.Sprite.X, y: p.Sprite.Y}
	p.Glitch.Reset(p.sfx)
	p.View = ViewSection
	p.OpenSection = idx
	p.presenter.NavigateToSection(id)
	p.emit("nav", "section", id)
}

// ReturnToPortal closes any section, restores the saved sprite position (or
// centres the sprite when none was saved) and resets hover and glitch state.
func (p *Portal) ReturnToPortal() {
	p.View = ViewPortal
	p.OpenSection = -1
	if p.saved != nil {
		p.Sprite.X = p.saved.x
		p.Sprite.Y = p.saved.y
		p.saved = nil
	} else {
		p.Sprite.X = p.Layout.Width / 2
		p.Sprite.Y = p.Layout.SpriteRestY()
	}
	p.Sprite.VelocityX = 0
	p.Hover = noHover
	for _, ic := range p.Icons {
		ic.Active = false
		ic.GlitchActive = false
		ic.hover = 0
	}
	p.CurrentSection = -1
	p.ShowPreview = false
	p.Glitch.Reset(p.sfx)
	p.Glitch.SuppressAfterReturn()
	p.presenter.SetPreview(-1, false)
	p.presenter.ReturnToPortal()
	p.emit("nav", "return", fmt.Sprintf("x=%.0f", p.Sprite.X))
}

// OpenTreasureChest shows the chest modal.
func (p *Portal) OpenTreasureChest() {
	p.View = ViewChest
	p.presenter.ShowTreasureChest()
	p.emit("chest", "open", "")
}

// CloseTreasureChest hides the chest modal if it is showing.
func (p *Portal) CloseTreasureChest() {
	if p.View != ViewChest {
		return
	}
	p.View = ViewPortal
	p.presenter.CloseTreasureChest()
	p.emit("chest", "close", "")
}

// SavedPosition returns the position stored by the last navigation.
func (p *Portal) SavedPosition() (x, y float64, ok bool) {
	if p.saved == nil {
		return 0, 0, false
	}
	return p.saved.x, p.saved.y, true
}
