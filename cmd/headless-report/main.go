package main

import (
	"flag"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/Garsondee/Storm-Portal/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64
	scenario string
	ticks    int

	firstHoverTick  int
	firstGlitchTick int
	firstEdgeTick   int
	firstChestTick  int

	hoverEnters    int
	glitchStarts   int
	glitchEnds     int
	sceneChanges   int
	sectionsOpened int
	returns        int
	chestOpens     int

	maxActive  int
	visited    map[string]struct{}
	violations []string
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var scenario string
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless portal runs")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per jitter run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "tour", "scenario name (tour, jitter)")
	flag.BoolVar(&verbose, "v", false, "print the full event log of every run")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	var run func(int, int64, int) (runStats, *game.SimLog)
	switch scenario {
	case "tour":
		run = runScenarioTour
	case "jitter":
		run = runScenarioJitter
	default:
		fmt.Printf("error: unsupported scenario %q (supported: tour, jitter)\n", scenario)
		return
	}

	fmt.Printf("=== Headless Portal Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", scenario, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats, log := run(i+1, seed, ticks)
		all = append(all, stats)
		printRun(stats)
		if verbose {
			fmt.Print(log.Format())
			fmt.Println()
		}
	}

	printAggregate(all)
}

// runScenarioTour walks to every icon in turn, opens and closes its section,
// then walks off the right edge and opens the chest.
func runScenarioTour(runIndex int, seed int64, _ int) (runStats, *game.SimLog) {
	ts := game.NewTestSim(game.WithSeed(seed), game.WithGlitchAssets(8, 8))
	maxActive := 0
	track := func() {
		if n := ts.Portal.ActiveCount(); n > maxActive {
			maxActive = n
		}
	}

	for i := range ts.Portal.Icons {
		ts.WalkTo(ts.IconCenter(i), 600)
		track()
		ts.RunTicks(20)
		ts.Press(game.Input{Activate: true})
		ts.RunTicks(30)
		ts.Press(game.Input{Back: true})
		track()
		ts.RunTicks(10)
	}
	ts.WalkTo(1e6, 600)
	ts.WalkTo(ts.Portal.Layout.ChestHit.CenterX(), 600)
	ts.Press(game.Input{Activate: true})
	ts.RunTicks(30)
	ts.Press(game.Input{Dismiss: true})
	ts.RunTicks(10)

	return collect(runIndex, seed, "tour", ts, maxActive), ts.SimLog
}

// runScenarioJitter feeds random held directions, activations and
// dismissals for the given number of ticks.
func runScenarioJitter(runIndex int, seed int64, ticks int) (runStats, *game.SimLog) {
	ts := game.NewTestSim(game.WithSeed(seed), game.WithGlitchAssets(8, 8))
	rng := rand.New(rand.NewSource(seed ^ 0x5eed)) // #nosec G404 -- scripted input only
	maxActive := 0

	for ts.CurrentTick() < ticks {
		var in game.Input
		switch rng.Intn(6) {
		case 0, 1:
			in.Left = true
		case 2, 3:
			in.Right = true
		case 4:
			in.Activate = true
		case 5:
			in.Dismiss = true
		}
		hold := 1 + rng.Intn(30)
		if ts.CurrentTick()+hold > ticks {
			hold = ticks - ts.CurrentTick()
		}
		for i := 0; i < hold; i++ {
			ts.Press(in)
			in.Activate, in.Dismiss = false, false
			if n := ts.Portal.ActiveCount(); n > maxActive {
				maxActive = n
			}
		}
	}
	return collect(runIndex, seed, "jitter", ts, maxActive), ts.SimLog
}

func collect(runIndex int, seed int64, scenario string, ts *game.TestSim, maxActive int) runStats {
	entries := ts.SimLog.Entries()
	visited := map[string]struct{}{}
	for _, e := range ts.SimLog.Filter("nav", "section") {
		visited[e.Value] = struct{}{}
	}
	rs := runStats{
		runIndex:        runIndex,
		seed:            seed,
		scenario:        scenario,
		ticks:           ts.CurrentTick(),
		firstHoverTick:  firstTick(entries, "hover", "enter", ""),
		firstGlitchTick: firstTick(entries, "glitch", "start", ""),
		firstEdgeTick:   firstTick(entries, "scene", "change", "edge"),
		firstChestTick:  firstTick(entries, "chest", "open", ""),
		hoverEnters:     ts.SimLog.CountCategory("hover", "enter"),
		glitchStarts:    ts.SimLog.CountCategory("glitch", "start"),
		glitchEnds:      ts.SimLog.CountCategory("glitch", "end"),
		sceneChanges:    ts.SimLog.CountCategory("scene", "change"),
		sectionsOpened:  ts.SimLog.CountCategory("nav", "section"),
		returns:         ts.SimLog.CountCategory("nav", "return"),
		chestOpens:      ts.SimLog.CountCategory("chest", "open"),
		maxActive:       maxActive,
		visited:         visited,
	}
	rs.violations = checkInvariants(rs, entries)
	return rs
}

// checkInvariants flags runs where more than one icon was active or a glitch
// restarted before the previous one's cooldown ran out. A return to the
// portal clears the cooldown, so it resets the spacing check.
func checkInvariants(rs runStats, entries []game.SimLogEntry) []string {
	var out []string
	if rs.maxActive > 1 {
		out = append(out, fmt.Sprintf("multiple_active(max=%d)", rs.maxActive))
	}
	lastStart, lastCooldown := -1, 0
	for _, e := range entries {
		switch {
		case e.Category == "nav" && e.Key == "return":
			lastStart = -1
		case e.Category == "glitch" && e.Key == "start":
			if lastStart >= 0 && e.Tick-lastStart < lastCooldown {
				out = append(out, fmt.Sprintf("glitch_in_cooldown(T=%d gap=%d cooldown=%d)", e.Tick, e.Tick-lastStart, lastCooldown))
			}
			var d, cd int
			if _, err := fmt.Sscanf(e.Value, "duration=%d cooldown=%d", &d, &cd); err != nil {
				out = append(out, fmt.Sprintf("bad_glitch_entry(T=%d %q)", e.Tick, e.Value))
				continue
			}
			lastStart, lastCooldown = e.Tick, cd
		}
	}
	if rs.glitchEnds > rs.glitchStarts {
		out = append(out, fmt.Sprintf("more_ends_than_starts(%d>%d)", rs.glitchEnds, rs.glitchStarts))
	}
	return out
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d scenario=%s ticks=%d) ---\n", rs.runIndex, rs.seed, rs.scenario, rs.ticks)
	fmt.Printf("phase_markers: first_hover=%d first_glitch=%d first_edge=%d first_chest=%d\n",
		rs.firstHoverTick, rs.firstGlitchTick, rs.firstEdgeTick, rs.firstChestTick)
	fmt.Printf("event_totals: hover_enter=%d glitch_start=%d glitch_end=%d scene_change=%d section_open=%d return=%d chest_open=%d\n",
		rs.hoverEnters, rs.glitchStarts, rs.glitchEnds, rs.sceneChanges, rs.sectionsOpened, rs.returns, rs.chestOpens)
	fmt.Printf("visited_sections: %s\n", joinSet(rs.visited))
	if len(rs.violations) == 0 {
		fmt.Println("invariants: ok")
	} else {
		fmt.Printf("invariants: FAILED %s\n", strings.Join(rs.violations, " "))
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalHover := 0
	totalGlitch := 0
	totalScene := 0
	totalSections := 0
	totalChest := 0
	failed := 0

	glitchTicks := make([]int, 0, len(all))
	edgeTicks := make([]int, 0, len(all))
	visitedGlobal := map[string]struct{}{}

	for _, rs := range all {
		totalHover += rs.hoverEnters
		totalGlitch += rs.glitchStarts
		totalScene += rs.sceneChanges
		totalSections += rs.sectionsOpened
		totalChest += rs.chestOpens
		if len(rs.violations) > 0 {
			failed++
		}
		if rs.firstGlitchTick >= 0 {
			glitchTicks = append(glitchTicks, rs.firstGlitchTick)
		}
		if rs.firstEdgeTick >= 0 {
			edgeTicks = append(edgeTicks, rs.firstEdgeTick)
		}
		for id := range rs.visited {
			visitedGlobal[id] = struct{}{}
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d failed_runs=%d\n", len(all), failed)
	fmt.Printf("avg_events_per_run: hover_enter=%.1f glitch_start=%.1f scene_change=%.1f section_open=%.1f chest_open=%.1f\n",
		avg(totalHover, len(all)), avg(totalGlitch, len(all)), avg(totalScene, len(all)), avg(totalSections, len(all)), avg(totalChest, len(all)))
	fmt.Printf("phase_marker_avg_ticks: first_glitch=%s first_edge=%s\n", avgTickString(glitchTicks), avgTickString(edgeTicks))
	fmt.Printf("sections_visited=%d [%s]\n", len(visitedGlobal), joinSet(visitedGlobal))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinSet(s map[string]struct{}) string {
	if len(s) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(s))
	for k := range s {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return strings.Join(labels, ",")
}
