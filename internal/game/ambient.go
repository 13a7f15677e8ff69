package game

import (
	"log/slog"
	"sort"
)

// ambientRetryTicks is how long to wait before trying to restart the thunder
// loop when it should be playing but is not.
const ambientRetryTicks = 60

// LoopPlayer is the ambient loop's playback handle. *audio.Player satisfies it.
type LoopPlayer interface {
	Play()
	Pause()
	IsPlaying() bool
}

// Ambient owns the thunder loop. Any foreground media holding a key pauses
// it; it resumes only once every key has been released.
type Ambient struct {
	player  LoopPlayer
	media   map[string]struct{}
	started bool
	retry   int
	log     *slog.Logger
}

// NewAmbient wraps player. A nil player makes every call a no-op apart from
// the reference counting.
func NewAmbient(player LoopPlayer, logger *slog.Logger) *Ambient {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Ambient{player: player, media: make(map[string]struct{}), log: logger}
}

// Start begins the loop unless foreground media is already holding it.
func (a *Ambient) Start() {
	a.started = true
	a.ResumeThunder()
}

// Acquire registers foreground media and pauses the thunder.
func (a *Ambient) Acquire(key string) {
	a.media[key] = struct{}{}
	a.PauseThunder()
}

// Release unregisters foreground media and resumes the thunder when nothing
// else is holding it. Releasing an unknown key is harmless.
func (a *Ambient) Release(key string) {
	delete(a.media, key)
	a.ResumeThunder()
}

// ReleaseAll drops every foreground hold.
func (a *Ambient) ReleaseAll() {
	for k := range a.media {
		delete(a.media, k)
	}
	a.ResumeThunder()
}

// Holders returns the keys currently pausing the thunder, sorted.
func (a *Ambient) Holders() []string {
	out := make([]string, 0, len(a.media))
	for k := range a.media {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// PauseThunder pauses the loop if it is playing.
func (a *Ambient) PauseThunder() {
	if a.player != nil && a.player.IsPlaying() {
		a.player.Pause()
	}
}

// ResumeThunder restarts the loop when no foreground media is active.
func (a *Ambient) ResumeThunder() {
	if !a.started || len(a.media) > 0 || a.player == nil {
		return
	}
	if !a.player.IsPlaying() {
		a.player.Play()
	}
	a.retry = ambientRetryTicks
}

// Update retries playback on a tick-counted delay when the loop should be
// running but has stopped.
func (a *Ambient) Update() {
	if !a.started || len(a.media) > 0 || a.player == nil || a.player.IsPlaying() {
		return
	}
	if a.retry > 0 {
		a.retry--
		return
	}
	a.log.Debug("thunder loop not playing, retrying")
	a.player.Play()
	a.retry = ambientRetryTicks
}
