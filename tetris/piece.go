package tetris

import "math"

// rotationMatrix is a quarter turn clockwise: x' = y, y' = -x.
var rotationMatrix = [4]float64{0, 1, -1, 0}

// Piece is the falling piece. All mutations validate against the grid first
// and either commit completely or leave the piece untouched.
type Piece struct {
	grid     *Grid
	def      *Tetromino
	rotation int
	position Point
	cells    [4]Point
}

// NewPiece creates a piece bound to grid. It holds no shape until Spawn.
func NewPiece(grid *Grid) *Piece {
	return &Piece{grid: grid}
}

// Spawn (re)initializes the piece with def at anchor in rotation state 0.
func (p *Piece) Spawn(def *Tetromino, anchor Point) {
	p.def = def
	p.position = anchor
	p.rotation = 0
	p.cells = def.Cells()
}

func (p *Piece) Definition() *Tetromino { return p.def }
func (p *Piece) Rotation() int          { return p.rotation }
func (p *Piece) Position() Point        { return p.position }

// Kind returns the kind of the piece, or None before the first Spawn.
func (p *Piece) Kind() Kind {
	if p.def == nil {
		return None
	}
	return p.def.Kind()
}

// Offsets returns the cell offsets relative to the anchor.
func (p *Piece) Offsets() [4]Point {
	return p.cells
}

// Cells returns the absolute cells the piece covers.
func (p *Piece) Cells() [4]Point {
	return p.cellsAt(p.position)
}

func (p *Piece) cellsAt(anchor Point) [4]Point {
	var out [4]Point
	for i, c := range p.cells {
		out[i] = c.Add(anchor)
	}
	return out
}

// Valid reports whether the piece fits at its current anchor.
func (p *Piece) Valid() bool {
	return p.fits(p.position)
}

// Fits reports whether the piece would fit after translating by (dx, dy),
// without moving it.
func (p *Piece) Fits(dx, dy int) bool {
	return p.fits(p.position.Add(Point{X: dx, Y: dy}))
}

func (p *Piece) fits(anchor Point) bool {
	if p.def == nil {
		return false
	}
	for _, c := range p.cells {
		if p.grid.Occupied(c.Add(anchor)) {
			return false
		}
	}
	return true
}

// TryTranslate moves the piece by (dx, dy) if the destination is free.
func (p *Piece) TryTranslate(dx, dy int) bool {
	target := p.position.Add(Point{X: dx, Y: dy})
	if !p.fits(target) {
		return false
	}
	p.position = target
	return true
}

// Rotate turns the piece a quarter turn clockwise (direction > 0) or
// counter-clockwise (direction < 0), trying the wall-kick candidates of the
// transition in order. When no candidate fits the piece is left exactly as it
// was and Rotate returns false.
func (p *Piece) Rotate(direction int) bool {
	if p.def == nil || direction == 0 {
		return false
	}
	if direction > 0 {
		direction = 1
	} else {
		direction = -1
	}

	prevRotation, prevCells, prevPosition := p.rotation, p.cells, p.position

	p.rotation = wrap(p.rotation+direction, 0, 4)
	p.applyRotation(direction)

	if p.tryWallKicks(p.rotation, direction) {
		return true
	}

	p.rotation, p.cells, p.position = prevRotation, prevCells, prevPosition
	return false
}

func (p *Piece) applyRotation(direction int) {
	m := rotationMatrix
	d := float64(direction)
	for i, c := range p.cells {
		x, y := float64(c.X), float64(c.Y)
		var nx, ny int
		if p.def.pivotsOnHalfCell() {
			x -= 0.5
			y -= 0.5
			nx = int(math.Ceil(x*m[0]*d + y*m[1]*d))
			ny = int(math.Ceil(x*m[2]*d + y*m[3]*d))
		} else {
			nx = int(math.Round(x*m[0]*d + y*m[1]*d))
			ny = int(math.Round(x*m[2]*d + y*m[3]*d))
		}
		p.cells[i] = Point{X: nx, Y: ny}
	}
}

func (p *Piece) tryWallKicks(rotation, direction int) bool {
	row := wallKickIndex(rotation, direction, p.def.KickRowCount())
	for _, kick := range p.def.Kicks(row) {
		if p.TryTranslate(kick.X, kick.Y) {
			return true
		}
	}
	return false
}

func wallKickIndex(rotation, direction, rows int) int {
	index := rotation * 2
	if direction < 0 {
		index--
	}
	return wrap(index, 0, rows)
}

// wrap maps input into [lo, hi).
func wrap(input, lo, hi int) int {
	span := hi - lo
	return lo + ((input-lo)%span+span)%span
}

// HardDropDistance returns how many rows the piece can fall from its
// current position.
func (p *Piece) HardDropDistance() int {
	if !p.Valid() {
		return 0
	}
	distance := 0
	for p.fits(p.position.Add(Point{Y: -(distance + 1)})) {
		distance++
	}
	return distance
}

// HardDrop moves the piece down until it rests and returns the rows travelled.
func (p *Piece) HardDrop() int {
	rows := 0
	for p.TryTranslate(0, -1) {
		rows++
	}
	return rows
}

// Ghost returns the cells the piece would occupy after a hard drop.
func (p *Piece) Ghost() [4]Point {
	return p.cellsAt(p.position.Add(Point{Y: -p.HardDropDistance()}))
}
