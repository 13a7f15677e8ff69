package assets

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Storm-Portal/internal/config"
)

// GlitchVariants is the number of glitch sprite/clip pairs shipped with the site.
const GlitchVariants = 8

// Fixed asset keys.
const (
	KeySidewalk = "sidewalk"
	KeySword    = "sword"
	KeyChest    = "chest"
	KeyThunder  = "thunder"
	KeyCoin     = "coin"
	KeyChestFX  = "chest-media"
)

// SectionKey is the image key for a section icon.
func SectionKey(id string) string { return "section:" + id }

// SectionMediaKey is the audio key for a section's foreground clip.
func SectionMediaKey(id string) string { return "media:" + id }

// GlitchSpriteKey is the image key of glitch sprite i (0-based).
func GlitchSpriteKey(i int) string { return fmt.Sprintf("glitch-png-%d", i) }

// GlitchSoundKey is the audio key of glitch clip i (0-based).
func GlitchSoundKey(i int) string { return fmt.Sprintf("glitch-mp3-%d", i) }

// Manifest lists every asset the portal uses for cfg.
func Manifest(cfg *config.Config) []Request {
	reqs := []Request{
		{Key: KeySidewalk, Path: "sidewalk.png", Kind: KindImage},
		{Key: KeySword, Path: "sword.gif", Kind: KindImage},
		{Key: KeyChest, Path: cfg.Chest.Image, Kind: KindImage, Fallback: color.RGBA{R: 0x8b, G: 0x5a, B: 0x2b, A: 0xff}},
		{Key: KeyThunder, Path: "thunder.mp3", Kind: KindAudio},
		{Key: KeyCoin, Path: "coin.mp3", Kind: KindAudio},
	}
	if cfg.Chest.Media != "" {
		reqs = append(reqs, Request{Key: KeyChestFX, Path: cfg.Chest.Media, Kind: KindAudio})
	}
	for _, s := range cfg.Sections {
		img := s.Image
		if img == "" {
			img = s.ID + ".png"
		}
		reqs = append(reqs, Request{Key: SectionKey(s.ID), Path: img, Kind: KindImage, Fallback: s.GlowColor()})
		if s.Media != "" {
			reqs = append(reqs, Request{Key: SectionMediaKey(s.ID), Path: s.Media, Kind: KindAudio})
		}
	}
	for i := 0; i < GlitchVariants; i++ {
		reqs = append(reqs,
			Request{Key: GlitchSpriteKey(i), Path: fmt.Sprintf("glitch-%d.png", i+1), Kind: KindImage},
			Request{Key: GlitchSoundKey(i), Path: fmt.Sprintf("glitch-%d.mp3", i+1), Kind: KindAudio},
		)
	}
	return reqs
}
