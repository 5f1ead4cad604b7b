package tetris

// Listener receives presentation notifications from a board. Calls happen
// synchronously on the ticking goroutine after the state change completed;
// listeners must not call back into the board.
type Listener interface {
	SessionStarted()
	PieceLocked(kind Kind, cells [4]Point)
	LinesCleared(rows []int)
	GameOver(finalScore int)
}

// ListenerFuncs adapts plain functions to a Listener. Nil fields are skipped.
type ListenerFuncs struct {
	OnSessionStarted func()
	OnPieceLocked    func(kind Kind, cells [4]Point)
	OnLinesCleared   func(rows []int)
	OnGameOver       func(finalScore int)
}

func (f ListenerFuncs) SessionStarted() {
	if f.OnSessionStarted != nil {
		f.OnSessionStarted()
	}
}

func (f ListenerFuncs) PieceLocked(kind Kind, cells [4]Point) {
	if f.OnPieceLocked != nil {
		f.OnPieceLocked(kind, cells)
	}
}

func (f ListenerFuncs) LinesCleared(rows []int) {
	if f.OnLinesCleared != nil {
		f.OnLinesCleared(rows)
	}
}

func (f ListenerFuncs) GameOver(finalScore int) {
	if f.OnGameOver != nil {
		f.OnGameOver(finalScore)
	}
}

type signals []Listener

func (s signals) sessionStarted() {
	for _, l := range s {
		l.SessionStarted()
	}
}

func (s signals) pieceLocked(kind Kind, cells [4]Point) {
	for _, l := range s {
		l.PieceLocked(kind, cells)
	}
}

func (s signals) linesCleared(rows []int) {
	for _, l := range s {
		l.LinesCleared(append([]int(nil), rows...))
	}
}

func (s signals) gameOver(finalScore int) {
	for _, l := range s {
		l.GameOver(finalScore)
	}
}
