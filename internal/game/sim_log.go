package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a headless run.
type SimLogEntry struct {
	Tick     int
	Category string  // hover, glitch, scene, nav, chest, layout, sprite
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] glitch    start            duration=13 cooldown=43
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-9s %-16s %s", e.Tick, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a headless run. Unlike EventLog
// (UI ring-buffer), SimLog is unbounded and machine-readable.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick sprite position
// entries are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddEvent records a portal Event.
func (sl *SimLog) AddEvent(e Event) {
	sl.Add(e.Tick, e.Category, e.Key, e.Value, 0)
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the portal state.
func (sl *SimLog) Summary(p *Portal) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", p.Tick())
	fmt.Fprintf(&sb, "View: %s  Scene: %s  Sprite: (%.1f,%.1f)\n", p.View, p.Scene.Current, p.Sprite.X, p.Sprite.Y)

	active := "none"
	for _, ic := range p.Icons {
		if ic.Active {
			active = p.Sections[ic.Section].ID
		}
	}
	fmt.Fprintf(&sb, "Active icon: %s  Preview: %t\n", active, p.ShowPreview)
	fmt.Fprintf(&sb, "Glitch: active=%t duration=%d cooldown=%d flashes=%d\n",
		p.Glitch.Active, p.Glitch.Duration, p.Glitch.Cooldown, len(p.Glitch.Flashes))

	counts := map[string]int{}
	for _, e := range sl.entries {
		counts[e.Category+"."+e.Key]++
	}
	fmt.Fprintf(&sb, "Events: glitch.start=%d hover.enter=%d scene.change=%d nav.section=%d chest.open=%d\n",
		counts["glitch.start"], counts["hover.enter"], counts["scene.change"], counts["nav.section"], counts["chest.open"])
	return sb.String()
}
