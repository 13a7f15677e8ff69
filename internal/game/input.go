package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Movement keys: arrows and A/D map to the same two directions.
var (
	leftKeys  = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}
	rightKeys = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}
)

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// readInput samples the keyboard and mouse. Pointer coordinates are converted
// to canvas space (below the header).
func readInput(canvasW, canvasH int) Input {
	mx, my := ebiten.CursorPosition()
	cy := my - headerHeight
	return Input{
		Left:          anyPressed(leftKeys),
		Right:         anyPressed(rightKeys),
		Activate:      inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter),
		Dismiss:       inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		Back:          inpututil.IsKeyJustPressed(ebiten.KeyBackspace),
		PointerX:      float64(mx),
		PointerY:      float64(cy),
		PointerInside: mx >= 0 && mx < canvasW && cy >= 0 && cy < canvasH,
		Click:         inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}
}
