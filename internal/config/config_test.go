package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault_HasFourSections(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	if len(cfg.Sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(cfg.Sections))
	}
	want := []string{"about", "resume", "portfolio", "contact"}
	for i, id := range want {
		if cfg.Sections[i].ID != id {
			t.Errorf("section %d: expected id %q, got %q", i, id, cfg.Sections[i].ID)
		}
	}
	if cfg.Tuning.MoveSpeed != 5 {
		t.Errorf("expected move speed 5, got %.2f", cfg.Tuning.MoveSpeed)
	}
}

func TestParse_FillsTuningDefaults(t *testing.T) {
	cfg, err := Parse([]byte("sections:\n  - {name: A, id: a}\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Tuning.MoveSpeed != 5 || cfg.Tuning.GlitchVolume != 0.25 || cfg.Tuning.ThunderVolume != 0.75 {
		t.Fatalf("tuning defaults not applied: %+v", cfg.Tuning)
	}
	if cfg.Chest.Image != "treasure-chest.png" {
		t.Fatalf("expected default chest image, got %q", cfg.Chest.Image)
	}
}

func TestParse_RejectsEmptySectionList(t *testing.T) {
	if _, err := Parse([]byte("sections: []\n")); err == nil {
		t.Fatal("expected error for empty section list")
	}
}

func TestParse_RejectsDuplicateIDs(t *testing.T) {
	_, err := Parse([]byte("sections:\n  - {name: A, id: x}\n  - {name: B, id: x}\n"))
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestParse_RejectsMissingID(t *testing.T) {
	if _, err := Parse([]byte("sections:\n  - {name: A}\n")); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestLoad_MissingFileFallsBackToDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Sections) != 4 {
		t.Fatalf("expected embedded default, got %d sections", len(cfg.Sections))
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sections.yaml")
	body := "tuning: {move_speed: 7}\nsections:\n  - {name: Blog, id: blog, glow: \"#102030\"}\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Tuning.MoveSpeed != 7 {
		t.Errorf("expected move speed 7, got %.1f", cfg.Tuning.MoveSpeed)
	}
	if got := cfg.Sections[0].GlowColor(); got != (color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}) {
		t.Errorf("unexpected glow colour %+v", got)
	}
	if cfg.SectionByID("blog") != 0 || cfg.SectionByID("missing") != -1 {
		t.Error("SectionByID lookup wrong")
	}
}

func TestGlowColor_FallbackOnGarbage(t *testing.T) {
	s := Section{Glow: "not-a-colour"}
	if got := s.GlowColor(); got.A != 0xff || got.B != 0x4d {
		t.Fatalf("expected navy fallback, got %+v", got)
	}
}
