package game

import (
	"testing"

	"github.com/Garsondee/Storm-Portal/internal/config"
)

// dumpLog prints the full SimLog to t.Log so it appears in `go test -v` output.
func dumpLog(t *testing.T, ts *TestSim) {
	t.Helper()
	entries := ts.SimLog.Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}

func dumpSummary(t *testing.T, ts *TestSim) {
	t.Helper()
	t.Log(ts.SimLog.Summary(ts.Portal))
}

func TestPortal_StartsCentredAndIdle(t *testing.T) {
	ts := NewTestSim()
	p := ts.Portal
	if !p.Desktop() {
		t.Fatal("1280 wide canvas should run the desktop scene")
	}
	if p.Sprite.X != 640 {
		t.Fatalf("sprite should start centred, got %.1f", p.Sprite.X)
	}
	ts.RunTicks(5)
	if p.ActiveCount() != 0 || p.ShowPreview {
		t.Fatal("nothing should be active before moving")
	}
}

func TestPortal_WalkOntoIconActivatesAndGlitches(t *testing.T) {
	ts := NewTestSim(WithSeed(3), WithGlitchAssets(8, 8))
	p := ts.Portal

	if !ts.WalkTo(ts.IconCenter(1), 200) {
		t.Fatal("failed to reach icon 1")
	}
	defer func() {
		if t.Failed() {
			dumpLog(t, ts)
			dumpSummary(t, ts)
		}
	}()

	if !p.Icons[1].Active || p.ActiveCount() != 1 {
		t.Fatalf("expected only icon 1 active, active count=%d", p.ActiveCount())
	}
	if p.CurrentSection != 1 || !p.ShowPreview {
		t.Fatalf("expected preview for section 1, got section=%d show=%t", p.CurrentSection, p.ShowPreview)
	}
	if !ts.SimLog.HasEntry("hover", "enter", "resume") {
		t.Fatal("expected hover enter for resume")
	}
	if ts.SimLog.CountCategory("glitch", "start") != 1 {
		t.Fatalf("expected one glitch start, got %d", ts.SimLog.CountCategory("glitch", "start"))
	}
	if len(ts.Sounds.Played) != 1 {
		t.Fatalf("expected one glitch clip, got %v", ts.Sounds.Played)
	}
	if ts.Presenter.Count("preview:1") != 1 {
		t.Fatalf("expected one preview call, got calls=%v", ts.Presenter.Calls)
	}
}

func TestPortal_GlitchEndsWithinDuration(t *testing.T) {
	ts := NewTestSim(WithSeed(5))
	p := ts.Portal
	ts.WalkTo(ts.IconCenter(2), 200)

	ts.RunTicks(glitchMinDuration + glitchDurationSpread)
	if p.Glitch.Active {
		t.Fatal("glitch should be idle after its maximum duration")
	}
	for i, ic := range p.Icons {
		if ic.GlitchActive {
			t.Fatalf("icon %d still marked glitching", i)
		}
	}
	if !p.Icons[2].Active {
		t.Fatal("icon should stay active while the sprite stands on it")
	}
}

func TestPortal_ReentryWithinCooldownDoesNotRetrigger(t *testing.T) {
	ts := NewTestSim(WithSeed(9))
	p := ts.Portal

	ts.WalkTo(ts.IconCenter(1), 200)
	start, _ := ts.SimLog.LastOf("glitch", "start")

	// Step just off the icon and straight back on.
	ts.WalkTo(360, 50)
	if p.ActiveCount() != 0 || p.ShowPreview {
		t.Fatal("leaving the icon should clear activation and preview")
	}
	ts.WalkTo(ts.IconCenter(1), 50)

	if ts.CurrentTick()-start.Tick >= glitchMinDuration+glitchCooldownPad {
		t.Fatalf("test walked too slowly to exercise the cooldown (%d ticks)", ts.CurrentTick()-start.Tick)
	}
	if got := ts.SimLog.CountCategory("hover", "enter"); got != 2 {
		t.Fatalf("expected two hover enters, got %d", got)
	}
	if got := ts.SimLog.CountCategory("glitch", "start"); got != 1 {
		dumpLog(t, ts)
		t.Fatalf("expected cooldown to block the second glitch, got %d starts", got)
	}
}

func TestPortal_OnlyOneIconActive(t *testing.T) {
	ts := NewTestSim(WithSeed(11))
	p := ts.Portal
	for _, target := range []float64{ts.IconCenter(1), ts.IconCenter(0), ts.IconCenter(2), ts.IconCenter(3)} {
		for i := 0; i < 400 && p.Sprite.X != target; i++ {
			d := target - p.Sprite.X
			in := Input{Left: d < 0, Right: d > 0}
			if d > -p.moveSpeed && d < p.moveSpeed {
				p.Sprite.X = target
				in = Input{}
			}
			ts.Press(in)
			if n := p.ActiveCount(); n > 1 {
				t.Fatalf("tick %d: %d icons active", ts.CurrentTick(), n)
			}
		}
	}
}

func TestPortal_PointerHoverIsIndependent(t *testing.T) {
	ts := NewTestSim()
	p := ts.Portal
	ts.WalkTo(ts.IconCenter(1), 200)

	ic3 := p.Icons[3]
	ts.Press(Input{PointerInside: true, PointerX: ic3.CenterX(), PointerY: ic3.CenterY()})
	if p.Icons[1].HoveredBy() != HoverSprite {
		t.Fatalf("icon 1 should be sprite-hovered, got %s", p.Icons[1].HoveredBy())
	}
	if ic3.HoveredBy() != HoverPointer {
		t.Fatalf("icon 3 should be pointer-hovered, got %s", ic3.HoveredBy())
	}
	if ic3.Active {
		t.Fatal("pointer hover must not activate an icon")
	}

	ts.Press(Input{PointerInside: false, PointerX: ic3.CenterX(), PointerY: ic3.CenterY()})
	if ic3.Hovered() {
		t.Fatal("pointer outside the canvas should not hover")
	}
}

func TestPortal_ActivateNavigatesAndReturnRestoresPosition(t *testing.T) {
	ts := NewTestSim(WithSeed(2))
	p := ts.Portal
	ts.WalkTo(ts.IconCenter(1), 200)
	x := p.Sprite.X

	ts.Press(Input{Activate: true})
	if p.View != ViewSection || p.OpenSection != 1 {
		t.Fatalf("expected resume panel, got view=%s section=%d", p.View, p.OpenSection)
	}
	if ts.Presenter.Count("navigate:resume") != 1 {
		t.Fatalf("presenter not asked to navigate, calls=%v", ts.Presenter.Calls)
	}
	if sx, _, ok := p.SavedPosition(); !ok || sx != x {
		t.Fatalf("expected saved x=%.1f, got %.1f ok=%t", x, sx, ok)
	}

	// Movement is frozen behind the panel.
	ts.Hold(Input{Right: true}, 10)
	if p.Sprite.X != x {
		t.Fatalf("sprite moved behind the panel: %.1f -> %.1f", x, p.Sprite.X)
	}

	starts := ts.SimLog.CountCategory("glitch", "start")
	ts.Press(Input{Back: true})
	if p.View != ViewPortal || p.OpenSection != -1 {
		t.Fatalf("expected portal view after back, got %s", p.View)
	}
	if p.Sprite.X != x {
		t.Fatalf("expected sprite restored to %.1f, got %.1f", x, p.Sprite.X)
	}
	if _, _, ok := p.SavedPosition(); ok {
		t.Fatal("saved position should be consumed on return")
	}
	if ts.SimLog.CountCategory("glitch", "start") != starts {
		t.Fatal("landing back on an icon must not glitch")
	}
	if ts.Presenter.Count("return") != 1 {
		t.Fatalf("presenter not told to return, calls=%v", ts.Presenter.Calls)
	}
}

func TestPortal_DismissAlsoReturns(t *testing.T) {
	ts := NewTestSim()
	p := ts.Portal
	p.NavigateToSection("contact")
	if p.View != ViewSection {
		t.Fatal("expected section view")
	}
	ts.Press(Input{Dismiss: true})
	if p.View != ViewPortal {
		t.Fatal("escape should close the section")
	}
}

func TestPortal_ReturnWithoutSavedPositionCentres(t *testing.T) {
	ts := NewTestSim()
	p := ts.Portal
	p.Sprite.X = 100
	p.ReturnToPortal()
	if p.Sprite.X != 640 {
		t.Fatalf("expected sprite centred at 640, got %.1f", p.Sprite.X)
	}
	if p.Sprite.Y != p.Layout.SpriteRestY() {
		t.Fatalf("expected sprite on the sidewalk, got y=%.1f", p.Sprite.Y)
	}
	if !p.Glitch.JustReturned {
		t.Fatal("return should suppress the glitch briefly")
	}
}

func TestPortal_UnknownSectionIgnored(t *testing.T) {
	ts := NewTestSim()
	p := ts.Portal
	p.NavigateToSection("nope")
	if p.View != ViewPortal {
		t.Fatalf("unknown section should not open a panel, view=%s", p.View)
	}
	if !ts.SimLog.HasEntry("nav", "unknown_section", "nope") {
		t.Fatal("expected unknown_section event")
	}
	if ts.Presenter.Count("navigate:nope") != 0 {
		t.Fatal("presenter should not be asked to show an unknown section")
	}
}

func TestPortal_ClickIconNavigates(t *testing.T) {
	ts := NewTestSim()
	p := ts.Portal
	ic := p.Icons[3]
	ts.Press(Input{Click: true, PointerInside: true, PointerX: ic.CenterX(), PointerY: ic.CenterY()})
	if p.View != ViewSection || p.OpenSection != 3 {
		t.Fatalf("expected contact panel, got view=%s section=%d", p.View, p.OpenSection)
	}
}

func TestPortal_ClickPreviewNavigates(t *testing.T) {
	ts := NewTestSim()
	p := ts.Portal
	ts.WalkTo(ts.IconCenter(0), 200)
	pr := p.Layout.Preview
	ts.Press(Input{Click: true, PointerInside: true, PointerX: pr.CenterX(), PointerY: pr.CenterY()})
	if p.View != ViewSection || p.OpenSection != 0 {
		t.Fatalf("expected about panel from preview click, got view=%s section=%d", p.View, p.OpenSection)
	}
}

func TestPortal_ClickPreviewIgnoredWhenHidden(t *testing.T) {
	ts := NewTestSim()
	p := ts.Portal
	pr := p.Layout.Preview
	ts.Press(Input{Click: true, PointerInside: true, PointerX: pr.CenterX(), PointerY: pr.CenterY()})
	if p.View != ViewPortal {
		t.Fatal("clicking where a hidden preview would be should do nothing")
	}
}

func TestPortal_EdgeSceneChest(t *testing.T) {
	ts := NewTestSim()
	p := ts.Portal

	if ts.WalkTo(2000, 300) {
		t.Fatal("walking off the right edge should change scene")
	}
	if p.Scene.Current != SceneEdge {
		t.Fatalf("expected edge scene, got %s", p.Scene.Current)
	}
	if p.Sprite.X != spriteSize/2+edgeEntryMargin {
		t.Fatalf("expected sprite at the left entry point, got %.1f", p.Sprite.X)
	}
	if p.ChestHovered {
		t.Fatal("chest should not be hovered at the entry point")
	}

	ts.WalkTo(p.Layout.ChestHit.CenterX(), 200)
	if !p.ChestHovered {
		t.Fatal("expected chest hover")
	}
	for _, ic := range p.Icons {
		if ic.Hovered() || ic.Active {
			t.Fatal("icons must not react in the edge scene")
		}
	}

	ts.Press(Input{Activate: true})
	if p.View != ViewChest {
		t.Fatalf("expected chest view, got %s", p.View)
	}
	if ts.Sounds.Coins != 1 {
		t.Fatalf("expected coin sound, got %d", ts.Sounds.Coins)
	}
	if ts.Presenter.Count("chest:show") != 1 {
		t.Fatalf("expected chest:show, calls=%v", ts.Presenter.Calls)
	}

	x := p.Sprite.X
	ts.Hold(Input{Left: true}, 10)
	if p.Sprite.X != x {
		t.Fatal("sprite moved while the chest was open")
	}

	ts.Press(Input{Dismiss: true})
	if p.View != ViewPortal || ts.Presenter.Count("chest:close") != 1 {
		t.Fatalf("escape should close the chest, view=%s", p.View)
	}
}

func TestPortal_ActivateAwayFromChestDoesNothing(t *testing.T) {
	ts := NewTestSim()
	p := ts.Portal
	ts.WalkTo(2000, 300)
	ts.Press(Input{Activate: true})
	if p.View != ViewPortal || ts.Sounds.Coins != 0 {
		t.Fatal("enter away from the chest should do nothing")
	}
}

func TestPortal_SceneChangeClearsActivation(t *testing.T) {
	ts := NewTestSim()
	p := ts.Portal
	ts.WalkTo(ts.IconCenter(3), 200)
	if p.ActiveCount() != 1 {
		t.Fatal("expected icon 3 active")
	}
	ts.WalkTo(2000, 300)
	if p.ActiveCount() != 0 || p.ShowPreview || p.Glitch.Active {
		t.Fatal("scene change should clear activation, preview and glitch")
	}
	if !ts.SimLog.HasEntry("scene", "change", "edge") {
		t.Fatal("expected scene change event")
	}
}

func TestPortal_CompactOnlyRunsStorm(t *testing.T) {
	ts := NewTestSim(WithCanvas(700, 600))
	p := ts.Portal
	if p.Desktop() {
		t.Fatal("700 wide canvas should be compact")
	}
	x := p.Sprite.X
	ts.Hold(Input{Right: true}, 30)
	if p.Sprite.X != x {
		t.Fatal("sprite should not move on a compact canvas")
	}
	if ts.CurrentTick() != 30 {
		t.Fatalf("storm ticks should still run, got tick %d", ts.CurrentTick())
	}
}

func TestPortal_ResizeSameSizeIsNoop(t *testing.T) {
	ts := NewTestSim()
	p := ts.Portal
	ts.WalkTo(ts.IconCenter(0), 200)
	if p.Resize(ts.Width, ts.Height) {
		t.Fatal("same-size resize should be ignored")
	}
	if !p.Resize(1600, 700) {
		t.Fatal("new size should relayout")
	}
	if p.Sprite.X != 800 || p.ActiveCount() != 0 {
		t.Fatalf("resize should recentre and clear, x=%.1f active=%d", p.Sprite.X, p.ActiveCount())
	}
}

func TestPortal_NotReadyBeforeResize(t *testing.T) {
	p := NewPortal(DefaultTestSections(), 0, newTestRNG())
	p.Step(Input{Right: true})
	if p.Tick() != 0 {
		t.Fatal("step should be a no-op before the first resize")
	}
	if p.Resize(0, 400) {
		t.Fatal("zero width should be rejected")
	}
}

func TestPortal_CustomSections(t *testing.T) {
	ts := NewTestSim(WithSections(
		config.Section{Name: "One", ID: "one"},
		config.Section{Name: "Two", ID: "two"},
	))
	if len(ts.Portal.Icons) != 2 {
		t.Fatalf("expected 2 icons, got %d", len(ts.Portal.Icons))
	}
	ts.WalkTo(ts.IconCenter(1), 200)
	ts.Press(Input{Activate: true})
	if ts.Portal.OpenSection != 1 || ts.Presenter.Count("navigate:two") != 1 {
		t.Fatalf("expected section two open, calls=%v", ts.Presenter.Calls)
	}
}

func TestPortal_NavigateDropsRunningGlitch(t *testing.T) {
	ts := NewTestSim(WithSeed(3), WithGlitchAssets(8, 8))
	p := ts.Portal
	defer func() {
		if t.Failed() {
			dumpLog(t, ts)
		}
	}()
	if ts.RunUntil(func(ts *TestSim) bool { return ts.Portal.Glitch.Active }, Input{Right: true}, 300) < 0 {
		t.Fatal("walking right never glitched an icon")
	}
	if !ts.Sounds.GlitchPlaying() || p.CurrentSection < 0 {
		t.Fatalf("expected an active icon with its clip playing, section=%d", p.CurrentSection)
	}
	cooldown := p.Glitch.Cooldown

	ts.Press(Input{Activate: true})
	if p.View != ViewSection {
		t.Fatalf("expected section view, got %v", p.View)
	}
	if p.Glitch.Active || p.Glitch.Icon != -1 || len(p.Glitch.Flashes) != 0 {
		t.Fatalf("glitch should be reset when a section opens: %+v", p.Glitch)
	}
	if ts.Sounds.GlitchPlaying() {
		t.Fatal("glitch clip should stop when a section opens")
	}
	if p.Glitch.Cooldown <= 0 || p.Glitch.Cooldown > cooldown {
		t.Fatalf("cooldown should survive the reset, got %d (was %d)", p.Glitch.Cooldown, cooldown)
	}
}
