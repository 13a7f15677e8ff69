package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Storm-Portal/internal/assets"
)

const (
	panelMargin  = 60
	panelPadding = 24
	panelLineH   = 16
	modalWidth   = 420
	modalHeight  = 300
)

var (
	scrim       = color.NRGBA{R: 0, G: 0, B: 0, A: 170}
	panelBorder = color.RGBA{R: 0x50, G: 0x5a, B: 0x78, A: 0xff}
)

// drawSectionPanel covers the canvas with the open section's content.
func (g *Game) drawSectionPanel(dst *ebiten.Image, ox, oy float64) {
	p := g.portal
	idx := g.panelSection
	if idx < 0 || idx >= len(g.cfg.Sections) {
		return
	}
	s := g.cfg.Sections[idx]
	l := p.Layout

	vector.FillRect(dst, float32(ox), float32(oy), float32(l.Width), float32(l.Height), scrim, false)
	r := Rect{X: panelMargin, Y: panelMargin / 2, W: l.Width - 2*panelMargin, H: l.Height - panelMargin}
	x, y := float32(ox+r.X), float32(oy+r.Y)
	vector.FillRect(dst, x, y, float32(r.W), float32(r.H), withAlpha(s.GlowColor(), 0.95), false)
	vector.StrokeRect(dst, x, y, float32(r.W), float32(r.H), 2, glowColor, false)

	g.drawLabel(dst, s.Name, ox+r.X+panelPadding, oy+r.Y+panelPadding, glowColor, text.AlignStart)
	row := oy + r.Y + panelPadding + 32
	for _, line := range wrapText(s.Body, int(r.W)-2*panelPadding) {
		if row > oy+r.Y+r.H-3*panelLineH {
			break
		}
		g.drawLabel(dst, line, ox+r.X+panelPadding, row, textColor, text.AlignStart)
		row += panelLineH
	}
	if s.Link != "" {
		g.drawLabel(dst, s.Link, ox+r.X+panelPadding, oy+r.Y+r.H-2*panelLineH-panelPadding/2, dimText, text.AlignStart)
	}

	hint := "Esc / Backspace: back to portal  |  C: copy link"
	if g.mixer != nil && g.mixer.HasMedia(assets.SectionMediaKey(s.ID)) {
		state := "play"
		if g.mixer.MediaPlaying(assets.SectionMediaKey(s.ID)) {
			state = "pause"
		}
		hint += "  |  Space: " + state
	}
	g.drawLabel(dst, hint, ox+r.X+panelPadding, oy+r.Y+r.H-panelLineH-panelPadding/2, dimText, text.AlignStart)
}

// drawChestModal shows the treasure chest reveal over the edge scene.
func (g *Game) drawChestModal(dst *ebiten.Image, ox, oy float64) {
	l := g.portal.Layout
	vector.FillRect(dst, float32(ox), float32(oy), float32(l.Width), float32(l.Height), scrim, false)

	r := Rect{X: l.Width/2 - modalWidth/2, Y: l.Height/2 - modalHeight/2, W: modalWidth, H: modalHeight}
	x, y := float32(ox+r.X), float32(oy+r.Y)
	vector.FillRect(dst, x, y, float32(r.W), float32(r.H), chromeColor, false)
	vector.StrokeRect(dst, x, y, float32(r.W), float32(r.H), 2, panelBorder, false)

	chest := g.cfg.Chest
	g.drawLabel(dst, chest.Title, ox+r.CenterX(), oy+r.Y+panelPadding, glowColor, text.AlignCenter)
	if img := g.image(assets.KeyChest); img != nil {
		art := Rect{X: r.CenterX() - chestDrawSize/2, Y: r.Y + 56, W: chestDrawSize, H: chestDrawSize}
		drawImageRect(dst, img, art, ox, oy, nil)
	}
	row := oy + r.Y + 56 + chestDrawSize + 12
	for _, line := range wrapText(chest.Body, int(r.W)-2*panelPadding) {
		g.drawLabel(dst, line, ox+r.CenterX(), row, textColor, text.AlignCenter)
		row += panelLineH
	}
	g.drawLabel(dst, "Esc to close", ox+r.CenterX(), oy+r.Y+r.H-panelPadding, dimText, text.AlignCenter)
}
