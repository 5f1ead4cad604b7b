package tetris

// Kind identifies one of the seven tetrominoes. None marks an empty cell.
type Kind uint8

const (
	None Kind = iota
	I
	J
	L
	O
	S
	T
	Z
)

// Kinds lists every playable kind in catalog order.
var Kinds = [...]Kind{I, J, L, O, S, T, Z}

func (k Kind) String() string {
	switch k {
	case I:
		return "I"
	case J:
		return "J"
	case L:
		return "L"
	case O:
		return "O"
	case S:
		return "S"
	case T:
		return "T"
	case Z:
		return "Z"
	default:
		return "-"
	}
}

const (
	kickRows     = 8
	kickAttempts = 5
)

// Tetromino is the immutable definition of a piece kind: its cell offsets in
// rotation state 0 and its wall-kick table. The table has one row per
// rotation transition; each row lists translations to try in order.
type Tetromino struct {
	kind  Kind
	cells [4]Point
	kicks [kickRows][kickAttempts]Point
}

func (t *Tetromino) Kind() Kind        { return t.kind }
func (t *Tetromino) Cells() [4]Point   { return t.cells }
func (t *Tetromino) KickRowCount() int { return kickRows }

// Kicks returns the translation candidates of the given table row.
func (t *Tetromino) Kicks(row int) [kickAttempts]Point {
	return t.kicks[row]
}

// pivotsOnHalfCell reports whether the kind has no center cell and rotates
// around a half-integer pivot.
func (t *Tetromino) pivotsOnHalfCell() bool {
	return t.kind == I || t.kind == O
}

var wallKicksI = [kickRows][kickAttempts]Point{
	{{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
	{{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
	{{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
	{{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
	{{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
	{{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
}

var wallKicksJLOSTZ = [kickRows][kickAttempts]Point{
	{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
	{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
}

// Catalog holds the definition of every kind. It is fully built on
// construction and never mutated afterwards.
type Catalog struct {
	defs [len(Kinds)]Tetromino
}

// NewCatalog builds the standard seven-piece catalog.
func NewCatalog() *Catalog {
	shapes := map[Kind][4]Point{
		I: {{-1, 1}, {0, 1}, {1, 1}, {2, 1}},
		J: {{-1, 1}, {-1, 0}, {0, 0}, {1, 0}},
		L: {{1, 1}, {-1, 0}, {0, 0}, {1, 0}},
		O: {{0, 1}, {1, 1}, {0, 0}, {1, 0}},
		S: {{0, 1}, {1, 1}, {-1, 0}, {0, 0}},
		T: {{0, 1}, {-1, 0}, {0, 0}, {1, 0}},
		Z: {{-1, 1}, {0, 1}, {0, 0}, {1, 0}},
	}

	c := &Catalog{}
	for i, kind := range Kinds {
		kicks := wallKicksJLOSTZ
		if kind == I {
			kicks = wallKicksI
		}
		c.defs[i] = Tetromino{kind: kind, cells: shapes[kind], kicks: kicks}
	}
	return c
}

// Get returns the definition for kind, or nil for None and unknown kinds.
func (c *Catalog) Get(kind Kind) *Tetromino {
	if kind == None || int(kind) > len(c.defs) {
		return nil
	}
	return &c.defs[kind-1]
}
