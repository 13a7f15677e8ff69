package game

import "math"

// Hover offset easing.
const (
	hoverLift   = -5.0
	easeRate    = 0.2
	easeEpsilon = 0.01
)

// Icon is one section's image on the sidewalk.
type Icon struct {
	Rect
	Section      int
	Active       bool
	GlitchActive bool

	hover         HoverSource
	OffsetY       float64
	TargetOffsetY float64
}

func newIcons(rects []Rect) []*Icon {
	icons := make([]*Icon, len(rects))
	for i, r := range rects {
		icons[i] = &Icon{Rect: r, Section: i}
	}
	return icons
}

// HoveredBy returns which pointers are over the icon this tick.
func (ic *Icon) HoveredBy() HoverSource { return ic.hover }

// Hovered reports whether anything is over the icon.
func (ic *Icon) Hovered() bool { return ic.hover != 0 }

// EaseOffset moves OffsetY a fixed fraction toward the hover target and snaps
// once the remaining gap is below easeEpsilon. It is advanced once per drawn
// frame.
func (ic *Icon) EaseOffset() float64 {
	ic.TargetOffsetY = 0
	if ic.Hovered() {
		ic.TargetOffsetY = hoverLift
	}
	diff := ic.TargetOffsetY - ic.OffsetY
	ic.OffsetY += diff * easeRate
	if math.Abs(diff) < easeEpsilon {
		ic.OffsetY = ic.TargetOffsetY
	}
	return ic.OffsetY
}
