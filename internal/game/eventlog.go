package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	logPanelWidth = 320
	logMaxEntries = 60
	logLineHeight = 14
)

// categoryColors tints the dot next to each log line.
var categoryColors = map[string]color.RGBA{
	"hover":  {R: 125, G: 245, B: 255, A: 255}, // electric blue
	"glitch": {R: 220, G: 80, B: 220, A: 255},
	"scene":  {R: 240, G: 200, B: 60, A: 255},
	"nav":    {R: 90, G: 210, B: 110, A: 255},
	"chest":  {R: 200, G: 140, B: 60, A: 255},
	"audio":  {R: 150, G: 150, B: 170, A: 255},
}

// EventLog is a ring buffer of portal events rendered as a debug panel.
type EventLog struct {
	entries []Event
	head    int
	count   int
}

// NewEventLog creates a log with a fixed capacity.
func NewEventLog() *EventLog {
	return &EventLog{
		entries: make([]Event, logMaxEntries),
	}
}

// Add appends an event, overwriting the oldest once full.
func (el *EventLog) Add(e Event) {
	el.entries[el.head] = e
	el.head = (el.head + 1) % logMaxEntries
	if el.count < logMaxEntries {
		el.count++
	}
}

// Recent returns events in chronological order (oldest first).
func (el *EventLog) Recent() []Event {
	result := make([]Event, el.count)
	for i := 0; i < el.count; i++ {
		idx := (el.head - el.count + i + logMaxEntries) % logMaxEntries
		result[i] = el.entries[idx]
	}
	return result
}

// Draw renders the log panel against the right edge of the screen.
func (el *EventLog) Draw(screen *ebiten.Image, panelX, panelY, panelH int) {
	x, y := float32(panelX), float32(panelY)
	vector.FillRect(screen, x, y, logPanelWidth, float32(panelH), color.RGBA{R: 10, G: 12, B: 20, A: 230}, false)
	vector.StrokeLine(screen, x, y, x, y+float32(panelH), 1.0, color.RGBA{R: 50, G: 60, B: 90, A: 255}, false)

	vector.FillRect(screen, x, y, logPanelWidth, 16, color.RGBA{R: 20, G: 24, B: 40, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENT LOG  (F1 to hide)", panelX+8, panelY)

	entries := visibleEntries(el.Recent(), panelH)

	row := panelY + 20
	for i, e := range entries {
		if i >= len(entries)-3 {
			vector.FillRect(screen, x+2, float32(row), logPanelWidth-4, logLineHeight, color.RGBA{R: 30, G: 36, B: 60, A: 160}, false)
		}
		dot, ok := categoryColors[e.Category]
		if !ok {
			dot = color.RGBA{R: 200, G: 200, B: 200, A: 255}
		}
		vector.FillRect(screen, x+5, float32(row+4), 3, 5, dot, false)
		line := fmt.Sprintf("%5d %s.%s %s", e.Tick, e.Category, e.Key, e.Value)
		ebitenutil.DebugPrintAt(screen, line, panelX+12, row)
		row += logLineHeight
	}
}

// visibleEntries keeps the newest entries that fit below the panel title.
func visibleEntries(entries []Event, panelH int) []Event {
	maxVisible := (panelH - 24) / logLineHeight
	if maxVisible <= 0 {
		return nil
	}
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}
	return entries
}
