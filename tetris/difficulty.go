package tetris

import "time"

// ScoreReader exposes the running score of a session.
type ScoreReader interface {
	Score() int
}

// Difficulty maps the cumulative score onto a gravity delay table. Every
// pointsPerLevel points advance one level; the last entry is used once the
// table is exhausted.
type Difficulty struct {
	score          ScoreReader
	delays         []time.Duration
	pointsPerLevel int
}

// NewDifficulty creates a difficulty provider reading from score. delays is
// copied.
func NewDifficulty(score ScoreReader, delays []time.Duration, pointsPerLevel int) *Difficulty {
	return &Difficulty{
		score:          score,
		delays:         append([]time.Duration(nil), delays...),
		pointsPerLevel: pointsPerLevel,
	}
}

// Level returns the current difficulty level, starting at 0.
func (d *Difficulty) Level() int {
	if d.pointsPerLevel <= 0 {
		return 0
	}
	level := d.score.Score() / d.pointsPerLevel
	return max(0, min(level, len(d.delays)-1))
}

// GravityDelay returns the step interval for the current level.
func (d *Difficulty) GravityDelay() time.Duration {
	return d.delays[d.Level()]
}

func validateDelays(delays []time.Duration) error {
	if len(delays) == 0 {
		return ErrNoGravityDelays
	}
	for i, delay := range delays {
		if delay <= 0 {
			return ErrInvalidDelay
		}
		if i > 0 && delay > delays[i-1] {
			return ErrInvalidDelay
		}
	}
	return nil
}
