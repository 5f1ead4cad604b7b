package tetris

// ScoreKeeper receives score awards from the board.
type ScoreKeeper interface {
	ScoreReader
	AddScore(amount int)
	Reset()
}

// ScoreCounter is the default ScoreKeeper. It remembers the best score seen
// across resets.
type ScoreCounter struct {
	score int
	best  int
}

func NewScoreCounter() *ScoreCounter {
	return &ScoreCounter{}
}

func (s *ScoreCounter) AddScore(amount int) {
	s.score += amount
}

// Reset promotes the current score to best when it is higher, then zeroes it.
func (s *ScoreCounter) Reset() {
	if s.score > s.best {
		s.best = s.score
	}
	s.score = 0
}

func (s *ScoreCounter) Score() int { return s.score }
func (s *ScoreCounter) Best() int  { return s.best }
