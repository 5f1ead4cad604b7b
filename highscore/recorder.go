package highscore

import (
	"context"
	"log/slog"
	"time"

	"github.com/plus3/blockfall/tetris"
)

// Recorder is a tetris.Listener that submits the final score of every
// finished session to a Store. Store failures are logged and dropped.
type Recorder struct {
	store   Store
	name    string
	timeout time.Duration
	logger  *slog.Logger
	now     func() time.Time

	lines int
	last  *Entry
}

// NewRecorder creates a recorder submitting entries under name. Each submit
// is bounded by timeout.
func NewRecorder(store Store, name string, timeout time.Duration, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		store:   store,
		name:    name,
		timeout: timeout,
		logger:  logger,
		now:     time.Now,
	}
}

// SessionStarted drops the line count of a session that ended without a
// game over.
func (r *Recorder) SessionStarted() {
	r.lines = 0
}

func (r *Recorder) PieceLocked(tetris.Kind, [4]tetris.Point) {}

func (r *Recorder) LinesCleared(rows []int) {
	r.lines += len(rows)
}

func (r *Recorder) GameOver(finalScore int) {
	e := Entry{Name: r.name, Score: finalScore, Lines: r.lines, At: r.now()}
	r.lines = 0
	r.last = &e

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	best, err := r.store.Submit(ctx, e)
	if err != nil {
		r.logger.Warn("high score not recorded", "score", e.Score, "error", err)
		return
	}
	r.logger.Info("high score recorded", "score", e.Score, "lines", e.Lines, "best", best)
}

// Last returns the most recent entry submitted, if any.
func (r *Recorder) Last() (Entry, bool) {
	if r.last == nil {
		return Entry{}, false
	}
	return *r.last, true
}
