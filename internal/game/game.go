package game

import (
	"fmt"
	"image"
	"log/slog"
	"math/rand"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Storm-Portal/internal/assets"
	"github.com/Garsondee/Storm-Portal/internal/config"
)

// Game is the ebiten adapter around a Portal. It turns key and mouse state
// into Input, runs one portal step per Update, draws the scene and implements
// Presenter for the content panels, the chest modal and audio ducking.
type Game struct {
	cfg    *config.Config
	portal *Portal
	bundle *assets.Bundle
	log    *slog.Logger

	mixer   *Mixer
	ambient *Ambient

	eventLog *EventLog
	showHUD  bool

	width  int // window
	height int

	images map[string]*ebiten.Image
	sky    *ebiten.Image
	face   *text.GoXFace

	// Presentation state driven through Presenter.
	panelSection int // -1 when no section panel is showing
	chestOpen    bool
	toast        string
	toastTicks   int
}

// New builds the game from a loaded config and asset bundle. The mixer may be
// nil, in which case the portal runs silently.
func New(cfg *config.Config, bundle *assets.Bundle, mixer *Mixer, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- cosmetic only
	g := &Game{
		cfg:          cfg,
		portal:       NewPortal(cfg.Sections, cfg.Tuning.MoveSpeed, rng),
		bundle:       bundle,
		log:          logger,
		mixer:        mixer,
		eventLog:     NewEventLog(),
		images:       make(map[string]*ebiten.Image),
		face:         text.NewGoXFace(basicfont.Face7x13),
		panelSection: -1,
	}
	g.portal.SetPresenter(g)
	g.portal.SetEventSink(g.eventLog.Add)
	g.portal.SetGlitchSprites(g.countGlitchSprites())

	var thunder LoopPlayer
	if mixer != nil {
		g.portal.SetSounds(mixer)
		thunder = mixer.Thunder()
	}
	g.ambient = NewAmbient(thunder, logger)
	g.ambient.Start()
	return g
}

// Portal exposes the underlying state, mainly for tools.
func (g *Game) Portal() *Portal { return g.portal }

func (g *Game) countGlitchSprites() int {
	n := 0
	for i := 0; i < assets.GlitchVariants; i++ {
		if g.bundle.Image(assets.GlitchSpriteKey(i)) != nil {
			n++
		}
	}
	return n
}

// glitchSprite returns the n-th loaded glitch sprite, skipping missing files.
func (g *Game) glitchSprite(n int) *ebiten.Image {
	seen := 0
	for i := 0; i < assets.GlitchVariants; i++ {
		key := assets.GlitchSpriteKey(i)
		if g.bundle.Image(key) == nil {
			continue
		}
		if seen == n {
			return g.image(key)
		}
		seen++
	}
	return nil
}

// image converts a bundle image to an ebiten image on first use.
func (g *Game) image(key string) *ebiten.Image {
	if img, ok := g.images[key]; ok {
		return img
	}
	var out *ebiten.Image
	if src := g.bundle.Image(key); src != nil {
		out = ebiten.NewImageFromImage(src)
	}
	g.images[key] = out
	return out
}

func (g *Game) canvasSize() (int, int) {
	return g.width, g.height - headerHeight
}

func (g *Game) Update() error {
	// Layout has not produced a usable canvas yet; try again next frame.
	if !g.portal.Ready() {
		return nil
	}
	cw, ch := g.canvasSize()
	in := readInput(cw, ch)

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copySectionLink()
	}
	if g.panelSection >= 0 && inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.toggleSectionMedia()
	}

	g.portal.Step(in)
	g.watchForegroundMedia()
	g.ambient.Update()
	if g.toastTicks > 0 {
		g.toastTicks--
	}
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	g.portal.Resize(outsideWidth, outsideHeight-headerHeight)
	return outsideWidth, outsideHeight
}

func (g *Game) Draw(screen *ebiten.Image) {
	if !g.portal.Ready() {
		return
	}
	cw, ch := g.canvasSize()
	canvas := screen.SubImage(image.Rect(0, headerHeight, cw, headerHeight+ch)).(*ebiten.Image)
	g.drawScene(canvas, 0, headerHeight)

	switch {
	case g.panelSection >= 0:
		g.drawSectionPanel(canvas, 0, headerHeight)
	case g.chestOpen:
		g.drawChestModal(canvas, 0, headerHeight)
	}

	g.drawHeader(screen)
	g.drawFooter(screen)
	if g.toastTicks > 0 {
		g.drawToast(screen)
	}
	if g.showHUD {
		g.eventLog.Draw(screen, g.width-logPanelWidth, headerHeight, ch-footerHeight)
	}
}

func (g *Game) logEvent(category, key, value string) {
	g.eventLog.Add(Event{Tick: g.portal.Tick(), Category: category, Key: key, Value: value})
}

func (g *Game) showToast(msg string) {
	g.toast = msg
	g.toastTicks = 120
}

// copySectionLink puts the previewed (or open) section's link on the
// clipboard.
func (g *Game) copySectionLink() {
	idx := g.panelSection
	if idx < 0 {
		idx = g.portal.CurrentSection
	}
	if idx < 0 {
		return
	}
	s := g.cfg.Sections[idx]
	link := s.Link
	if link == "" {
		link = "#" + s.ID
	}
	if err := clipboard.WriteAll(link); err != nil {
		g.log.Warn("clipboard unavailable", "err", err)
		g.showToast("Clipboard unavailable")
		return
	}
	g.logEvent("nav", "copy_link", link)
	g.showToast(fmt.Sprintf("Copied %s", link))
}

// --- Presenter ---

func (g *Game) SetPreview(section int, visible bool) {
	if visible {
		g.log.Debug("preview", "section", g.cfg.Sections[section].ID)
	}
}

func (g *Game) NavigateToSection(id string) {
	idx := g.cfg.SectionByID(id)
	if idx < 0 {
		return
	}
	g.stopForegroundMedia()
	g.panelSection = idx
	g.chestOpen = false
	g.ambient.ResumeThunder()
	g.log.Info("navigate", "section", id)
}

func (g *Game) ReturnToPortal() {
	g.stopForegroundMedia()
	g.panelSection = -1
	g.ambient.ResumeThunder()
}

func (g *Game) ShowTreasureChest() {
	g.chestOpen = true
	if g.mixer != nil && g.mixer.StartMedia(assets.KeyChestFX) {
		g.ambient.Acquire(assets.KeyChestFX)
		g.logEvent("audio", "foreground", assets.KeyChestFX)
	}
}

func (g *Game) CloseTreasureChest() {
	g.chestOpen = false
	g.stopForegroundMedia()
}

// --- foreground media and thunder ducking ---

func (g *Game) toggleSectionMedia() {
	if g.mixer == nil {
		return
	}
	key := assets.SectionMediaKey(g.cfg.Sections[g.panelSection].ID)
	if !g.mixer.HasMedia(key) {
		return
	}
	if g.mixer.ToggleMedia(key) {
		g.ambient.Acquire(key)
		g.logEvent("audio", "foreground", key)
	} else {
		g.ambient.Release(key)
		g.logEvent("audio", "paused", key)
	}
}

// watchForegroundMedia releases the thunder once a foreground clip ends on
// its own.
func (g *Game) watchForegroundMedia() {
	if g.mixer == nil {
		return
	}
	for _, key := range g.ambient.Holders() {
		if !g.mixer.MediaPlaying(key) {
			g.ambient.Release(key)
			g.logEvent("audio", "ended", key)
		}
	}
}

func (g *Game) stopForegroundMedia() {
	if g.mixer != nil {
		g.mixer.StopMedia()
	}
	g.ambient.ReleaseAll()
}
