package game

import "testing"

func TestOverlaps_BufferBoundaryIsExclusive(t *testing.T) {
	r := Rect{X: 100, Y: 100, W: 80, H: 80} // centre (140,140), reach 50
	cases := []struct {
		name   string
		px, py float64
		want   bool
	}{
		{"centre", 140, 140, true},
		{"just inside right", 189.9, 140, true},
		{"on right boundary", 190, 140, false},
		{"just inside left", 90.1, 140, true},
		{"on bottom boundary", 140, 190, false},
		{"inside buffer above", 140, 95, true},
		{"far away", 400, 140, false},
	}
	for _, tc := range cases {
		if got := overlaps(r, tc.px, tc.py); got != tc.want {
			t.Errorf("%s: overlaps(%.1f,%.1f) = %t, want %t", tc.name, tc.px, tc.py, got, tc.want)
		}
	}
}

func TestHitIcon_FirstMatchWins(t *testing.T) {
	icons := newIcons([]Rect{
		{X: 0, Y: 0, W: 80, H: 80},
		{X: 60, Y: 0, W: 80, H: 80}, // overlaps the first
	})
	if got := hitIcon(icons, 70, 40); got != 0 {
		t.Fatalf("expected first icon, got %d", got)
	}
	if got := hitIcon(icons, 135, 40); got != 1 {
		t.Fatalf("expected second icon, got %d", got)
	}
	if got := hitIcon(icons, 500, 40); got != -1 {
		t.Fatalf("expected no icon, got %d", got)
	}
}

func TestHoverSources(t *testing.T) {
	h := Hover{Sprite: 1, Pointer: 1}
	s := h.Sources(1)
	if !s.Has(HoverSprite) || !s.Has(HoverPointer) {
		t.Fatalf("expected both sources, got %s", s)
	}
	if s.String() != "sprite+pointer" {
		t.Fatalf("unexpected string %q", s.String())
	}
	if got := h.Sources(0); got != 0 {
		t.Fatalf("icon 0 should not be hovered, got %s", got)
	}
	if got := noHover.Sources(-1); got != 0 {
		t.Fatalf("negative index should have no sources, got %s", got)
	}
}

func TestIconEaseOffset(t *testing.T) {
	ic := &Icon{Rect: Rect{W: 80, H: 80}}
	ic.hover = HoverSprite
	first := ic.EaseOffset()
	if first != hoverLift*easeRate {
		t.Fatalf("first step should move a fifth of the way, got %.3f", first)
	}
	for i := 0; i < 100; i++ {
		ic.EaseOffset()
	}
	if ic.OffsetY != hoverLift {
		t.Fatalf("expected offset to snap to %.1f, got %.4f", hoverLift, ic.OffsetY)
	}

	ic.hover = 0
	for i := 0; i < 100; i++ {
		ic.EaseOffset()
	}
	if ic.OffsetY != 0 {
		t.Fatalf("expected offset to settle at 0, got %.4f", ic.OffsetY)
	}
}
