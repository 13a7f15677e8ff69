package game

import "math/rand"

const (
	cloudCount = 8
	rainCount  = 100

	cloudWrapMargin = 100
	rainRespawnY    = -10

	// Lightning timers, in ticks. The first strike comes early.
	firstStrikeMin    = 300
	firstStrikeRange  = 300
	strikeIntervalMin = 1200
	strikeIntervalRng = 900
	strikeLengthMin   = 2
	strikeLengthRange = 3
)

type cloud struct {
	X, Y    float64
	W, H    float64
	Speed   float64
	Opacity float64
}

type raindrop struct {
	X, Y   float64
	Speed  float64
	Length float64
}

// Lightning is the full-screen flash timer.
type Lightning struct {
	Active   bool
	Duration float64
	Timer    float64
}

// Storm is the ambient sky animation. It only depends on time.
type Storm struct {
	Clouds    []cloud
	Rain      []raindrop
	Lightning Lightning
	width     float64
	height    float64
}

// NewStorm seeds clouds and rain over a width x height canvas.
func NewStorm(rng *rand.Rand, width, height float64) *Storm {
	s := &Storm{width: width, height: height}
	s.Clouds = make([]cloud, cloudCount)
	for i := range s.Clouds {
		s.Clouds[i] = cloud{
			X:       rng.Float64() * width,
			Y:       rng.Float64()*200 + 50,
			W:       150 + rng.Float64()*100,
			H:       60 + rng.Float64()*40,
			Speed:   0.3 + rng.Float64()*0.5,
			Opacity: 0.6 + rng.Float64()*0.3,
		}
	}
	s.Rain = make([]raindrop, rainCount)
	for i := range s.Rain {
		s.Rain[i] = raindrop{
			X:      rng.Float64() * width,
			Y:      rng.Float64() * height,
			Speed:  3 + rng.Float64()*4,
			Length: 5 + rng.Float64()*10,
		}
	}
	s.Lightning.Timer = firstStrikeMin + rng.Float64()*firstStrikeRange
	return s
}

// Resize changes the wrap bounds; particles keep their positions.
func (s *Storm) Resize(width, height float64) {
	s.width, s.height = width, height
}

// Step advances clouds, rain and lightning by one tick.
func (s *Storm) Step(rng *rand.Rand) {
	for i := range s.Clouds {
		c := &s.Clouds[i]
		c.X += c.Speed
		if c.X > s.width+cloudWrapMargin {
			c.X = -cloudWrapMargin
		}
	}

	lt := &s.Lightning
	if lt.Active {
		lt.Duration--
		if lt.Duration <= 0 {
			lt.Active = false
		}
	} else {
		lt.Timer--
		if lt.Timer <= 0 {
			lt.Active = true
			lt.Duration = strikeLengthMin + rng.Float64()*strikeLengthRange
			lt.Timer = strikeIntervalMin + rng.Float64()*strikeIntervalRng
		}
	}

	for i := range s.Rain {
		d := &s.Rain[i]
		d.Y += d.Speed
		if d.Y > s.height {
			d.Y = rainRespawnY
			d.X = rng.Float64() * s.width
		}
	}
}
