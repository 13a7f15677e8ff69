package game

// pixelSize is the art scale: one art pixel is pixelSize screen pixels.
const pixelSize = 4

// Page chrome around the canvas.
const (
	headerHeight = 70
	footerHeight = 50
	// sidewalkDepth is how far above the footer the walkable floor sits.
	sidewalkDepth = 120
)

// Icon and chest geometry.
const (
	iconSize = 80
	// iconInnerGap is the distance from the canvas centre to the inner edge
	// of the nearest icon on either side; iconStride is the distance between
	// inner edges of neighbouring icons on the same side.
	iconInnerGap = 180
	iconStride   = 240
	// iconSink lowers icons onto the sidewalk.
	iconSink = 20

	chestHitSize  = 80
	chestDrawSize = 120

	previewWidth  = 380
	previewHeight = 112
	previewLift   = 150 // gap between preview bottom and icon tops
)

// compactWidth is the widest window still treated as a phone-sized screen.
// Compact windows only show the storm and a static message.
const compactWidth = 768

// Rect is an axis-aligned box in canvas coordinates.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) CenterX() float64 { return r.X + r.W/2 }
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Contains reports whether (px, py) is inside r (edges inclusive).
func (r Rect) Contains(px, py float64) bool {
	return px >= r.X && px <= r.X+r.W && py >= r.Y && py <= r.Y+r.H
}

// Layout is every position derived from the canvas size.
type Layout struct {
	Width      float64
	Height     float64
	FloorLevel float64
	Compact    bool
	Icons      []Rect
	ChestHit   Rect
	ChestDraw  Rect
	Preview    Rect
}

// ComputeLayout positions n section icons symmetrically about the canvas
// centre, half on each side of a central gap. Odd counts put the extra icon
// on the left.
func ComputeLayout(width, height, n int) Layout {
	w, h := float64(width), float64(height)
	floor := h - footerHeight - sidewalkDepth
	l := Layout{
		Width:      w,
		Height:     h,
		FloorLevel: floor,
		Compact:    width <= compactWidth,
	}
	cx := w / 2
	iconY := floor - iconSize + iconSink

	left := (n + 1) / 2
	l.Icons = make([]Rect, 0, n)
	// Left side, outermost first so icon order reads left to right.
	for k := left - 1; k >= 0; k-- {
		x := cx - float64(iconInnerGap+k*iconStride) - iconSize
		l.Icons = append(l.Icons, Rect{X: x, Y: iconY, W: iconSize, H: iconSize})
	}
	for k := 0; k < n-left; k++ {
		x := cx + float64(iconInnerGap+k*iconStride)
		l.Icons = append(l.Icons, Rect{X: x, Y: iconY, W: iconSize, H: iconSize})
	}

	l.ChestHit = Rect{X: cx - chestHitSize/2, Y: floor - chestHitSize + iconSink, W: chestHitSize, H: chestHitSize}
	l.ChestDraw = Rect{X: cx - chestDrawSize/2, Y: floor - (chestDrawSize - 40), W: chestDrawSize, H: chestDrawSize}

	py := iconY - previewLift - previewHeight
	if py < 10 {
		py = 10
	}
	l.Preview = Rect{X: cx - previewWidth/2, Y: py, W: previewWidth, H: previewHeight}
	return l
}

// SpriteRestY is the sprite's y on the sidewalk.
func (l Layout) SpriteRestY() float64 {
	return l.FloorLevel - spriteSize + iconSink
}

// SidewalkBottom is where the footer begins.
func (l Layout) SidewalkBottom() float64 {
	return l.Height - footerHeight
}
