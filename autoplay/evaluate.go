package autoplay

import "github.com/plus3/blockfall/tetris"

// Weights scores a board after a placement. Higher totals are better.
type Weights struct {
	Height    float64
	Holes     float64
	Bumpiness float64
	Lines     float64
}

// DefaultWeights favour flat stacks without covered holes.
var DefaultWeights = Weights{
	Height:    -0.51,
	Holes:     -0.36,
	Bumpiness: -0.18,
	Lines:     0.76,
}

// Features are the measurements used by Weights.
type Features struct {
	AggregateHeight int
	Holes           int
	Bumpiness       int
	Lines           int
}

// Measure computes the features of g. lines is the number of rows the
// placement cleared.
func Measure(g *tetris.Grid, lines int) Features {
	b := g.Bounds()
	heights := make([]int, 0, g.Width())
	f := Features{Lines: lines}

	for col := b.XMin; col < b.XMax; col++ {
		height := 0
		for row := b.YMax - 1; row >= b.YMin; row-- {
			if g.Occupied(tetris.Point{X: col, Y: row}) {
				if height == 0 {
					height = row - b.YMin + 1
				}
			} else if height > 0 {
				f.Holes++
			}
		}
		heights = append(heights, height)
		f.AggregateHeight += height
	}

	for i := 1; i < len(heights); i++ {
		d := heights[i] - heights[i-1]
		if d < 0 {
			d = -d
		}
		f.Bumpiness += d
	}
	return f
}

// Score combines features with w.
func (w Weights) Score(f Features) float64 {
	return w.Height*float64(f.AggregateHeight) +
		w.Holes*float64(f.Holes) +
		w.Bumpiness*float64(f.Bumpiness) +
		w.Lines*float64(f.Lines)
}
