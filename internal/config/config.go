// Package config holds the portal's section list and tuning values.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed sections.yaml
var defaultYAML []byte

// Section is one navigable area of the site. It defines both an icon on the
// sidewalk and the content panel it routes to.
type Section struct {
	Name    string `yaml:"name"`
	ID      string `yaml:"id"`
	Image   string `yaml:"image"`
	Glow    string `yaml:"glow"`
	Preview string `yaml:"preview"`
	Body    string `yaml:"body"`
	Link    string `yaml:"link"`
	Media   string `yaml:"media"` // optional foreground clip played while the panel is open
}

// GlowColor parses the section's "#rrggbb" glow colour. Invalid or empty values
// fall back to a dark navy.
func (s Section) GlowColor() color.RGBA {
	c, err := ParseHex(s.Glow)
	if err != nil {
		return color.RGBA{R: 0x0d, G: 0x1b, B: 0x4d, A: 0xff}
	}
	return c
}

// Chest describes the Easter-egg modal in the edge scene.
type Chest struct {
	Image string `yaml:"image"`
	Media string `yaml:"media"`
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// Tuning holds gameplay and mixing values.
type Tuning struct {
	MoveSpeed     float64 `yaml:"move_speed"`
	GlitchVolume  float64 `yaml:"glitch_volume"`
	CoinVolume    float64 `yaml:"coin_volume"`
	ThunderVolume float64 `yaml:"thunder_volume"`
	MediaVolume   float64 `yaml:"media_volume"`
}

// Config is the decoded sections file.
type Config struct {
	Tuning   Tuning    `yaml:"tuning"`
	Chest    Chest     `yaml:"chest"`
	Sections []Section `yaml:"sections"`
}

// Default returns the embedded configuration.
func Default() (*Config, error) {
	return Parse(defaultYAML)
}

// Load reads a YAML file from disk. An empty path or a missing file yields the
// embedded default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default()
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML, fills defaults for missing tuning values and validates
// the section list.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	t := &c.Tuning
	if t.MoveSpeed <= 0 {
		t.MoveSpeed = 5
	}
	if t.GlitchVolume <= 0 {
		t.GlitchVolume = 0.25
	}
	if t.CoinVolume <= 0 {
		t.CoinVolume = 0.5
	}
	if t.ThunderVolume <= 0 {
		t.ThunderVolume = 0.75
	}
	if t.MediaVolume <= 0 {
		t.MediaVolume = 0.5
	}
	if c.Chest.Image == "" {
		c.Chest.Image = "treasure-chest.png"
	}
}

// Validate checks that there is at least one section and that ids are unique.
func (c *Config) Validate() error {
	if len(c.Sections) == 0 {
		return errors.New("no sections configured")
	}
	seen := make(map[string]bool, len(c.Sections))
	for i, s := range c.Sections {
		if strings.TrimSpace(s.ID) == "" {
			return fmt.Errorf("section %d (%q): empty id", i, s.Name)
		}
		if seen[s.ID] {
			return fmt.Errorf("section %d: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

// SectionByID returns the index of the section with the given id, or -1.
func (c *Config) SectionByID(id string) int {
	for i, s := range c.Sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// ParseHex parses "#rrggbb" or "rrggbb" into an opaque colour.
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("colour %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
