package tetris

import (
	"strings"

	"github.com/kamstrup/intmap"
)

// Point is an integer cell coordinate. X grows to the right, Y grows upward.
type Point struct {
	X, Y int
}

// Add returns the component-wise sum of p and q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Rect is a half-open cell range: XMin <= x < XMax, YMin <= y < YMax.
type Rect struct {
	XMin, YMin int
	XMax, YMax int
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.XMin && p.X < r.XMax && p.Y >= r.YMin && p.Y < r.YMax
}

// Grid is a bounded cell store addressed in a centered coordinate system.
// Columns range over [-width/2, width/2) and rows over [-height/2, height/2).
// Only occupied cells are stored.
type Grid struct {
	width  int
	height int
	bounds Rect
	cells  *intmap.Map[int64, Kind]
}

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(width, height int) *Grid {
	xMin, yMin := -width/2, -height/2
	return &Grid{
		width:  width,
		height: height,
		bounds: Rect{XMin: xMin, YMin: yMin, XMax: xMin + width, YMax: yMin + height},
		cells:  intmap.New[int64, Kind](width * height),
	}
}

func cellKey(p Point) int64 {
	return int64(p.X)<<32 | int64(uint32(p.Y))
}

func (g *Grid) Width() int   { return g.width }
func (g *Grid) Height() int  { return g.height }
func (g *Grid) Bounds() Rect { return g.bounds }

// InBounds reports whether p addresses a cell of the grid.
func (g *Grid) InBounds(p Point) bool {
	return g.bounds.Contains(p)
}

// Occupied reports whether p holds a cell. Coordinates outside the grid are
// always reported as occupied.
func (g *Grid) Occupied(p Point) bool {
	if !g.bounds.Contains(p) {
		return true
	}
	_, ok := g.cells.Get(cellKey(p))
	return ok
}

// At returns the kind stored at p, or None when p is empty or outside the grid.
func (g *Grid) At(p Point) Kind {
	if !g.bounds.Contains(p) {
		return None
	}
	k, _ := g.cells.Get(cellKey(p))
	return k
}

func (g *Grid) put(p Point, k Kind) {
	if !g.bounds.Contains(p) {
		return
	}
	if k == None {
		g.cells.Del(cellKey(p))
		return
	}
	g.cells.Put(cellKey(p), k)
}

// Set marks every cell with k. The caller is responsible for validating the
// placement beforehand; cells outside the grid are ignored.
func (g *Grid) Set(cells []Point, k Kind) {
	for _, p := range cells {
		g.put(p, k)
	}
}

// Clear empties every given cell.
func (g *Grid) Clear(cells []Point) {
	for _, p := range cells {
		g.put(p, None)
	}
}

// IsRowFull reports whether every column of row is occupied.
func (g *Grid) IsRowFull(row int) bool {
	if row < g.bounds.YMin || row >= g.bounds.YMax {
		return false
	}
	for col := g.bounds.XMin; col < g.bounds.XMax; col++ {
		if _, ok := g.cells.Get(cellKey(Point{X: col, Y: row})); !ok {
			return false
		}
	}
	return true
}

// ClearRow empties every column of row.
func (g *Grid) ClearRow(row int) {
	for col := g.bounds.XMin; col < g.bounds.XMax; col++ {
		g.put(Point{X: col, Y: row}, None)
	}
}

// ShiftRowDown copies the contents of row+1 into row. Shifting the top row
// leaves it empty.
func (g *Grid) ShiftRowDown(row int) {
	for col := g.bounds.XMin; col < g.bounds.XMax; col++ {
		g.put(Point{X: col, Y: row}, g.At(Point{X: col, Y: row + 1}))
	}
}

// Reset empties the whole grid.
func (g *Grid) Reset() {
	g.cells.Clear()
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	return g.cells.Len()
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.width, g.height)
	for row := g.bounds.YMin; row < g.bounds.YMax; row++ {
		for col := g.bounds.XMin; col < g.bounds.XMax; col++ {
			p := Point{X: col, Y: row}
			if k, ok := g.cells.Get(cellKey(p)); ok {
				c.cells.Put(cellKey(p), k)
			}
		}
	}
	return c
}

// String renders the grid top row first, using the kind letter for occupied
// cells and '.' for empty ones.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for row := g.bounds.YMax - 1; row >= g.bounds.YMin; row-- {
		for col := g.bounds.XMin; col < g.bounds.XMax; col++ {
			k := g.At(Point{X: col, Y: row})
			if k == None {
				sb.WriteByte('.')
			} else {
				sb.WriteString(k.String())
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
