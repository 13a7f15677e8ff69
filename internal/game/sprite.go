package game

// spriteSize is the player's hit size: 8 art pixels square.
const spriteSize = 8 * pixelSize

// swordDrawSize is the on-screen size of the sword art.
const swordDrawSize = 48

const defaultMoveSpeed = 5.0

// Sprite is the player-controlled sword. X is the horizontal centre; Y is
// the top of the hit box.
type Sprite struct {
	X, Y      float64
	W, H      float64
	VelocityX float64
}

func newSprite() Sprite {
	return Sprite{W: spriteSize, H: spriteSize}
}

// CenterY is the vertical point used for collision.
func (s *Sprite) CenterY() float64 { return s.Y + s.H/2 }

// Clamp keeps the sprite fully on a canvas of the given width.
func (s *Sprite) Clamp(width float64) {
	half := s.W / 2
	if s.X < half {
		s.X = half
	}
	if s.X > width-half {
		s.X = width - half
	}
}
