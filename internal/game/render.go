package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Storm-Portal/internal/assets"
)

var (
	skyTop    = color.RGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 0xff}
	skyMid    = color.RGBA{R: 0x16, G: 0x21, B: 0x3e, A: 0xff}
	skyBottom = color.RGBA{R: 0x0f, G: 0x14, B: 0x19, A: 0xff}

	cloudColor    = color.RGBA{R: 0x2a, G: 0x2e, B: 0x3a, A: 0xff}
	rainColor     = color.NRGBA{R: 0x6b, G: 0x9b, B: 0xd1, A: 153} // 0.6
	lightningTint = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 204} // 0.8
	sidewalkGrey  = color.RGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff}
	glowColor     = color.RGBA{R: 0x7d, G: 0xf5, B: 0xff, A: 0xff}
	flashFallback = color.RGBA{R: 0x00, G: 0xff, B: 0xff, A: 0xff}
	swordFallback = color.RGBA{R: 0xff, G: 0x55, B: 0x55, A: 0xff}
	chromeColor   = color.RGBA{R: 0x0b, G: 0x0d, B: 0x14, A: 0xff}
	textColor     = color.RGBA{R: 0xe6, G: 0xe6, B: 0xf0, A: 0xff}
	dimText       = color.RGBA{R: 0x8a, G: 0x90, B: 0xa8, A: 0xff}
)

// iconGlowBrightness is the colour scale applied to an active icon.
const iconGlowBrightness = 1.3

// drawScene renders the canvas in a fixed order: sky, clouds, lightning,
// rain, sidewalk, then the scene's foreground, glitch flashes and the sword.
// ox, oy are the canvas origin on screen.
func (g *Game) drawScene(dst *ebiten.Image, ox, oy float64) {
	p := g.portal
	g.drawSky(dst, ox, oy)
	g.drawStorm(dst, ox, oy)

	if p.Layout.Compact {
		g.drawCompactNotice(dst, ox, oy)
		return
	}

	g.drawSidewalk(dst, ox, oy)
	switch p.Scene.Current {
	case SceneMain:
		g.drawIcons(dst, ox, oy)
		g.drawFlashes(dst, ox, oy)
		if p.ShowPreview && p.CurrentSection >= 0 && p.View == ViewPortal {
			g.drawPreview(dst, ox, oy)
		}
	case SceneEdge:
		g.drawChest(dst, ox, oy)
	}
	g.drawSword(dst, ox, oy)
}

// drawSky stretches a one-pixel-wide gradient strip over the canvas. The
// strip is rebuilt when the canvas height changes.
func (g *Game) drawSky(dst *ebiten.Image, ox, oy float64) {
	l := g.portal.Layout
	h := int(l.Height)
	if g.sky == nil || g.sky.Bounds().Dy() != h {
		g.sky = ebiten.NewImage(1, h)
		pix := make([]byte, 4*h)
		for y := 0; y < h; y++ {
			t := float64(y) / float64(h)
			var c color.RGBA
			if t < 0.5 {
				c = lerpColor(skyTop, skyMid, t*2)
			} else {
				c = lerpColor(skyMid, skyBottom, (t-0.5)*2)
			}
			pix[4*y], pix[4*y+1], pix[4*y+2], pix[4*y+3] = c.R, c.G, c.B, c.A
		}
		g.sky.WritePixels(pix)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(l.Width, 1)
	op.GeoM.Translate(ox, oy)
	dst.DrawImage(g.sky, op)
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 0xff}
}

func (g *Game) drawStorm(dst *ebiten.Image, ox, oy float64) {
	s := g.portal.Storm
	if s == nil {
		return
	}
	// Each cloud is five overlapping puffs.
	for _, c := range s.Clouds {
		clr := withAlpha(cloudColor, c.Opacity)
		x, y := float32(ox+c.X), float32(oy+c.Y)
		w, h := float32(c.W), float32(c.H)
		vector.FillCircle(dst, x, y+h*0.5, h*0.45, clr, true)
		vector.FillCircle(dst, x+w*0.25, y+h*0.3, h*0.55, clr, true)
		vector.FillCircle(dst, x+w*0.5, y+h*0.25, h*0.6, clr, true)
		vector.FillCircle(dst, x+w*0.75, y+h*0.35, h*0.5, clr, true)
		vector.FillCircle(dst, x+w, y+h*0.5, h*0.4, clr, true)
	}

	if s.Lightning.Active {
		vector.FillRect(dst, float32(ox), float32(oy), float32(g.portal.Layout.Width), float32(g.portal.Layout.Height), lightningTint, false)
	}

	for _, d := range s.Rain {
		x, y := float32(ox+d.X), float32(oy+d.Y)
		vector.StrokeLine(dst, x, y, x, y+float32(d.Length), 1, rainColor, false)
	}
}

func withAlpha(c color.RGBA, a float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a * 255)}
}

func (g *Game) drawSidewalk(dst *ebiten.Image, ox, oy float64) {
	l := g.portal.Layout
	top := l.FloorLevel
	r := Rect{X: 0, Y: top, W: l.Width, H: l.SidewalkBottom() - top}
	if img := g.image(assets.KeySidewalk); img != nil {
		drawImageRect(dst, img, r, ox, oy, nil)
		return
	}
	vector.FillRect(dst, float32(ox+r.X), float32(oy+r.Y), float32(r.W), float32(r.H), sidewalkGrey, false)
}

// drawImageRect scales img to fill r. cs, when non-nil, tints the draw.
func drawImageRect(dst, img *ebiten.Image, r Rect, ox, oy float64, cs *ebiten.ColorScale) {
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.W/float64(b.Dx()), r.H/float64(b.Dy()))
	op.GeoM.Translate(ox+r.X, oy+r.Y)
	if cs != nil {
		op.ColorScale = *cs
	}
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(img, op)
}

func (g *Game) drawIcons(dst *ebiten.Image, ox, oy float64) {
	p := g.portal
	for _, ic := range p.Icons {
		off := ic.EaseOffset()
		r := ic.Rect
		r.Y += off
		s := p.Sections[ic.Section]

		lit := ic.Active || ic.Hovered()
		var cs *ebiten.ColorScale
		if lit {
			cs = &ebiten.ColorScale{}
			cs.Scale(iconGlowBrightness, iconGlowBrightness, iconGlowBrightness, 1)
			pad := float32(4)
			vector.FillRect(dst, float32(ox+r.X)-pad, float32(oy+r.Y)-pad, float32(r.W)+2*pad, float32(r.H)+2*pad, withAlpha(glowColor, 0.25), false)
			vector.StrokeRect(dst, float32(ox+r.X)-pad, float32(oy+r.Y)-pad, float32(r.W)+2*pad, float32(r.H)+2*pad, 2, glowColor, false)
		}
		if img := g.image(assets.SectionKey(s.ID)); img != nil {
			drawImageRect(dst, img, r, ox, oy, cs)
		} else {
			vector.FillRect(dst, float32(ox+r.X), float32(oy+r.Y), float32(r.W), float32(r.H), s.GlowColor(), false)
		}

		clr := dimText
		if lit {
			clr = glowColor
		}
		g.drawLabel(dst, s.Name, ox+r.CenterX(), oy+r.Y-20, clr, text.AlignCenter)
	}
}

func (g *Game) drawFlashes(dst *ebiten.Image, ox, oy float64) {
	for _, f := range g.portal.Glitch.Flashes {
		alpha := f.Opacity()
		if alpha <= 0 {
			continue
		}
		img := g.glitchSprite(f.Sprite)
		if img == nil {
			size := float32(12)
			vector.FillRect(dst, float32(ox+f.X)-size/2, float32(oy+f.Y)-size/2, size, size, withAlpha(flashFallback, alpha), false)
			continue
		}
		b := img.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
		op.GeoM.Scale(f.Scale, f.Scale)
		op.GeoM.Rotate(f.Rotation)
		op.GeoM.Translate(ox+f.X, oy+f.Y)
		op.ColorScale.ScaleAlpha(float32(alpha))
		dst.DrawImage(img, op)
	}
}

// drawSword centres the sword art on the sprite's collision point.
func (g *Game) drawSword(dst *ebiten.Image, ox, oy float64) {
	sp := g.portal.Sprite
	cx, cy := sp.X, sp.CenterY()
	if img := g.image(assets.KeySword); img != nil {
		r := Rect{X: cx - swordDrawSize/2, Y: cy - swordDrawSize/2, W: swordDrawSize, H: swordDrawSize}
		drawImageRect(dst, img, r, ox, oy, nil)
		return
	}
	vector.FillRect(dst, float32(ox+cx-sp.W/2), float32(oy+cy-sp.H/2), float32(sp.W), float32(sp.H), swordFallback, false)
}

func (g *Game) drawChest(dst *ebiten.Image, ox, oy float64) {
	p := g.portal
	r := p.Layout.ChestDraw
	if img := g.image(assets.KeyChest); img != nil {
		var cs *ebiten.ColorScale
		if p.ChestHovered {
			cs = &ebiten.ColorScale{}
			cs.Scale(iconGlowBrightness, iconGlowBrightness, iconGlowBrightness, 1)
		}
		drawImageRect(dst, img, r, ox, oy, cs)
	}
	if p.ChestHovered && p.View == ViewPortal {
		g.drawLabel(dst, "Press enter to open", ox+r.CenterX(), oy+r.Y-18, glowColor, text.AlignCenter)
	}
}

func (g *Game) drawPreview(dst *ebiten.Image, ox, oy float64) {
	p := g.portal
	s := p.Sections[p.CurrentSection]
	r := p.Layout.Preview
	x, y := float32(ox+r.X), float32(oy+r.Y)
	vector.FillRect(dst, x, y, float32(r.W), float32(r.H), withAlpha(s.GlowColor(), 0.9), false)
	vector.StrokeRect(dst, x, y, float32(r.W), float32(r.H), 2, glowColor, false)

	g.drawLabel(dst, s.Name, ox+r.CenterX(), oy+r.Y+14, glowColor, text.AlignCenter)
	row := oy + r.Y + 38
	for _, line := range wrapText(s.Preview, int(r.W)-24) {
		g.drawLabel(dst, line, ox+r.CenterX(), row, textColor, text.AlignCenter)
		row += 16
	}
	g.drawLabel(dst, "Enter or click to open  |  C copies link", ox+r.CenterX(), oy+r.Y+r.H-20, dimText, text.AlignCenter)
}

func (g *Game) drawCompactNotice(dst *ebiten.Image, ox, oy float64) {
	l := g.portal.Layout
	g.drawLabel(dst, "This portal needs a wider window.", ox+l.Width/2, oy+l.Height/2-10, textColor, text.AlignCenter)
	g.drawLabel(dst, "Widen the window past 768px to explore.", ox+l.Width/2, oy+l.Height/2+10, dimText, text.AlignCenter)
}

func (g *Game) drawHeader(screen *ebiten.Image) {
	w := float32(g.width)
	vector.FillRect(screen, 0, 0, w, headerHeight, chromeColor, false)
	vector.StrokeLine(screen, 0, headerHeight-1, w, headerHeight-1, 1, glowColor, false)
	g.drawLabel(screen, "STORM PORTAL", 16, 14, glowColor, text.AlignStart)
	if g.portal.Desktop() && g.portal.Scene.Current == SceneMain && g.portal.View == ViewPortal {
		g.drawLabel(screen, "Arrows or A/D to walk  |  Enter to open  |  Walk off the edge to explore", 16, 40, dimText, text.AlignStart)
	}
}

func (g *Game) drawFooter(screen *ebiten.Image) {
	y := float32(g.height - footerHeight)
	w := float32(g.width)
	vector.FillRect(screen, 0, y, w, footerHeight, chromeColor, false)
	g.drawLabel(screen, "F1 event log", float64(g.width)/2, float64(y)+18, dimText, text.AlignCenter)
}

func (g *Game) drawToast(screen *ebiten.Image) {
	x := float64(g.width) / 2
	y := float64(g.height - footerHeight - 30)
	g.drawLabel(screen, g.toast, x, y, glowColor, text.AlignCenter)
}

// drawLabel draws one line of text with its top at y.
func (g *Game) drawLabel(dst *ebiten.Image, s string, x, y float64, clr color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	text.Draw(dst, s, g.face, op)
}

// wrapText breaks s into lines no wider than maxWidth pixels of the 7x13
// face.
func wrapText(s string, maxWidth int) []string {
	const glyphWidth = 7
	limit := maxWidth / glyphWidth
	if limit <= 0 {
		return nil
	}
	var lines []string
	var line []rune
	word := []rune{}
	flush := func() {
		if len(line) > 0 {
			lines = append(lines, string(line))
			line = line[:0]
		}
	}
	addWord := func() {
		if len(word) == 0 {
			return
		}
		need := len(word)
		if len(line) > 0 {
			need++
		}
		if len(line)+need > limit {
			flush()
		}
		if len(line) > 0 {
			line = append(line, ' ')
		}
		line = append(line, word...)
		word = word[:0]
	}
	for _, r := range s {
		switch r {
		case ' ', '\t':
			addWord()
		case '\n':
			addWord()
			flush()
		default:
			word = append(word, r)
		}
	}
	addWord()
	flush()
	return lines
}
