package game

import "math"

// hoverBuffer widens every hit box on each side.
const hoverBuffer = 10

// HoverSource tags what is over an icon. Sprite and pointer are tracked
// independently so they can highlight different icons at once.
type HoverSource uint8

const (
	HoverSprite HoverSource = 1 << iota
	HoverPointer
)

// Has reports whether s includes src.
func (s HoverSource) Has(src HoverSource) bool { return s&src != 0 }

func (s HoverSource) String() string {
	switch s {
	case 0:
		return "none"
	case HoverSprite:
		return "sprite"
	case HoverPointer:
		return "pointer"
	}
	return "sprite+pointer"
}

// Hover is the per-tick hover result: the icon index under each source, or -1.
type Hover struct {
	Sprite  int
	Pointer int
}

var noHover = Hover{Sprite: -1, Pointer: -1}

// Sources returns the tags for icon i.
func (h Hover) Sources(i int) HoverSource {
	var s HoverSource
	if i < 0 {
		return 0
	}
	if h.Sprite == i {
		s |= HoverSprite
	}
	if h.Pointer == i {
		s |= HoverPointer
	}
	return s
}

// overlaps reports whether point (px, py) lies strictly within the box that
// extends hoverBuffer beyond r's half-extents around r's centre.
func overlaps(r Rect, px, py float64) bool {
	dx := math.Abs(px - r.CenterX())
	dy := math.Abs(py - r.CenterY())
	return dx < r.W/2+hoverBuffer && dy < r.H/2+hoverBuffer
}

// hitIcon returns the first icon whose expanded box contains (px, py), or -1.
func hitIcon(icons []*Icon, px, py float64) int {
	for i, ic := range icons {
		if overlaps(ic.Rect, px, py) {
			return i
		}
	}
	return -1
}
