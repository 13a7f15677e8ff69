package game

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"

	"github.com/Garsondee/Storm-Portal/internal/assets"
	"github.com/Garsondee/Storm-Portal/internal/config"
)

const sampleRate = 44100

// Mixer plays the portal's clips through one ebiten audio context. Clips are
// decoded to PCM once. The coin clip reuses one player; other plays get a
// fresh player.
type Mixer struct {
	ctx    *audio.Context
	tuning config.Tuning
	log    *slog.Logger

	glitch  [][]byte
	coin    []byte
	media   map[string][]byte
	thunder *audio.Player

	currentGlitch *audio.Player
	coinPlayer    rewindPlayer
	newPlayer     func([]byte) rewindPlayer
	foreground    *audio.Player
	foregroundKey string
}

// rewindPlayer is the part of *audio.Player a reused clip needs.
type rewindPlayer interface {
	SetVolume(float64)
	Rewind() error
	Play()
}

// NewMixer decodes every clip in the bundle. Clips that are missing or fail to
// decode are skipped.
func NewMixer(b *assets.Bundle, cfg *config.Config, logger *slog.Logger) *Mixer {
	m := &Mixer{
		ctx:    audio.NewContext(sampleRate),
		tuning: cfg.Tuning,
		log:    logger,
		media:  make(map[string][]byte),
	}
	m.newPlayer = func(pcm []byte) rewindPlayer { return m.ctx.NewPlayerFromBytes(pcm) }
	for i := 0; i < assets.GlitchVariants; i++ {
		if pcm := m.decode(assets.GlitchSoundKey(i), b.Audio(assets.GlitchSoundKey(i))); pcm != nil {
			m.glitch = append(m.glitch, pcm)
		}
	}
	m.coin = m.decode(assets.KeyCoin, b.Audio(assets.KeyCoin))
	if pcm := m.decode(assets.KeyChestFX, b.Audio(assets.KeyChestFX)); pcm != nil {
		m.media[assets.KeyChestFX] = pcm
	}
	for _, s := range cfg.Sections {
		key := assets.SectionMediaKey(s.ID)
		if pcm := m.decode(key, b.Audio(key)); pcm != nil {
			m.media[key] = pcm
		}
	}
	if data := b.Audio(assets.KeyThunder); data != nil {
		p, err := m.loop(data)
		if err != nil {
			m.log.Warn("thunder loop unavailable", "err", err)
		} else {
			p.SetVolume(cfg.Tuning.ThunderVolume)
			m.thunder = p
		}
	}
	return m
}

func (m *Mixer) decode(key string, data []byte) []byte {
	if data == nil {
		return nil
	}
	s, err := mp3.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	if err != nil {
		m.log.Warn("clip decode failed", "asset", key, "err", err)
		return nil
	}
	pcm, err := io.ReadAll(s)
	if err != nil {
		m.log.Warn("clip read failed", "asset", key, "err", err)
		return nil
	}
	return pcm
}

func (m *Mixer) loop(data []byte) (*audio.Player, error) {
	s, err := mp3.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode thunder: %w", err)
	}
	p, err := m.ctx.NewPlayer(audio.NewInfiniteLoop(s, s.Length()))
	if err != nil {
		return nil, fmt.Errorf("thunder player: %w", err)
	}
	return p, nil
}

// Thunder returns the ambient loop, or nil when it could not be loaded.
func (m *Mixer) Thunder() LoopPlayer {
	if m.thunder == nil {
		return nil
	}
	return m.thunder
}

func (m *Mixer) GlitchClips() int { return len(m.glitch) }

// PlayGlitch stops the previous glitch clip and starts clip i.
func (m *Mixer) PlayGlitch(i int) {
	if i < 0 || i >= len(m.glitch) {
		return
	}
	m.StopGlitch()
	p := m.ctx.NewPlayerFromBytes(m.glitch[i])
	p.SetVolume(m.tuning.GlitchVolume)
	p.Play()
	m.currentGlitch = p
}

// StopGlitch halts the current glitch clip, if any.
func (m *Mixer) StopGlitch() {
	if m.currentGlitch == nil {
		return
	}
	m.currentGlitch.Pause()
	if err := m.currentGlitch.Close(); err != nil {
		m.log.Debug("close glitch player", "err", err)
	}
	m.currentGlitch = nil
}

func (m *Mixer) PlayCoin() {
	if m.coin == nil {
		return
	}
	if m.coinPlayer == nil {
		m.coinPlayer = m.newPlayer(m.coin)
		m.coinPlayer.SetVolume(m.tuning.CoinVolume)
	}
	if err := m.coinPlayer.Rewind(); err != nil {
		m.log.Debug("rewind coin player", "err", err)
	}
	m.coinPlayer.Play()
}

// HasMedia reports whether a foreground clip exists for key.
func (m *Mixer) HasMedia(key string) bool {
	_, ok := m.media[key]
	return ok
}

// StartMedia plays the foreground clip for key from the start, replacing any
// other foreground clip. It returns false when there is no such clip.
func (m *Mixer) StartMedia(key string) bool {
	pcm, ok := m.media[key]
	if !ok {
		return false
	}
	m.StopMedia()
	p := m.ctx.NewPlayerFromBytes(pcm)
	p.SetVolume(m.tuning.MediaVolume)
	p.Play()
	m.foreground = p
	m.foregroundKey = key
	return true
}

// ToggleMedia pauses or resumes the foreground clip for key, starting it if
// needed. It returns whether the clip is now playing.
func (m *Mixer) ToggleMedia(key string) bool {
	if m.foreground == nil || m.foregroundKey != key {
		return m.StartMedia(key)
	}
	if m.foreground.IsPlaying() {
		m.foreground.Pause()
		return false
	}
	m.foreground.Play()
	return true
}

// MediaPlaying reports whether the foreground clip for key is audible.
func (m *Mixer) MediaPlaying(key string) bool {
	return m.foreground != nil && m.foregroundKey == key && m.foreground.IsPlaying()
}

// StopMedia halts and rewinds the foreground clip.
func (m *Mixer) StopMedia() {
	if m.foreground == nil {
		return
	}
	m.foreground.Pause()
	if err := m.foreground.Close(); err != nil {
		m.log.Debug("close media player", "err", err)
	}
	m.foreground = nil
	m.foregroundKey = ""
}
