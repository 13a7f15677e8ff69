package game

// Scene is one of the two canvas layouts.
type Scene int

const (
	SceneMain Scene = iota
	SceneEdge
)

func (s Scene) String() string {
	if s == SceneEdge {
		return "edge"
	}
	return "main"
}

// Edge transition tuning.
const (
	edgeThreshold           = 10 // distance from a canvas edge that counts as "at the edge"
	edgeEntryMargin         = 50 // inset from the far edge after teleporting
	transitionCooldownTicks = 15
)

// SceneController flips between the main and edge scenes when the sprite is
// pushed through a canvas edge.
type SceneController struct {
	Current  Scene
	Cooldown int
}

// Step decrements the cooldown and, when it is zero, checks for a
// transition. Walking out through the left edge lands the sprite at the right
// edge of the other scene and vice versa. Returns true when the scene flipped.
func (sc *SceneController) Step(sp *Sprite, width float64, left, right, desktop bool) bool {
	if sc.Cooldown > 0 {
		sc.Cooldown--
	}
	if !desktop || sc.Cooldown != 0 {
		return false
	}
	half := sp.W / 2
	atLeft := sp.X <= half+edgeThreshold
	atRight := sp.X >= width-half-edgeThreshold

	switch {
	case atLeft && left:
		sp.X = width - half - edgeEntryMargin
	case atRight && right:
		sp.X = half + edgeEntryMargin
	default:
		return false
	}
	sc.Current = 1 - sc.Current
	sc.Cooldown = transitionCooldownTicks
	return true
}
