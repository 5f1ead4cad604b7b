package tetris

import (
	"context"
	"time"
)

// InputSource supplies the intents for each tick driven by Run.
type InputSource interface {
	Poll(b *Board) Intents
}

// InputFunc adapts a function to an InputSource.
type InputFunc func(b *Board) Intents

func (f InputFunc) Poll(b *Board) Intents { return f(b) }

// Stats provides counters about the board since construction.
type Stats struct {
	Ticks         int64
	Games         int
	PiecesSpawned int
	PiecesLocked  int
	LinesCleared  int
	MinTick       time.Duration
	MaxTick       time.Duration
	AvgTick       time.Duration
	LastTick      time.Duration
	TotalTick     time.Duration
}

type statsInternal struct {
	ticks     int64
	games     int
	spawned   int
	locked    int
	lines     int
	lastFinal int
	minTick   time.Duration
	maxTick   time.Duration
	lastTick  time.Duration
	totalTick time.Duration
}

func (s *statsInternal) init() {
	s.minTick = time.Duration(1<<63 - 1)
}

func (s *statsInternal) record(d time.Duration) {
	s.ticks++
	s.lastTick = d
	s.totalTick += d
	if d < s.minTick {
		s.minTick = d
	}
	if d > s.maxTick {
		s.maxTick = d
	}
}

// Stats returns a snapshot of the board counters.
func (b *Board) Stats() Stats {
	s := b.stats
	out := Stats{
		Ticks:         s.ticks,
		Games:         s.games,
		PiecesSpawned: s.spawned,
		PiecesLocked:  s.locked,
		LinesCleared:  s.lines,
		MaxTick:       s.maxTick,
		LastTick:      s.lastTick,
		TotalTick:     s.totalTick,
	}
	if s.ticks > 0 {
		out.MinTick = s.minTick
		out.AvgTick = s.totalTick / time.Duration(s.ticks)
	}
	return out
}

// Run ticks the board at the given interval until ctx is cancelled, polling
// source once per tick. The elapsed time passed to Tick is measured between
// ticker deliveries. Run returns ctx.Err().
func (b *Board) Run(ctx context.Context, interval time.Duration, source InputSource) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(lastTime)
			lastTime = now
			b.Tick(dt, source.Poll(b))
		}
	}
}
