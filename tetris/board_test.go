package tetris_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	started int
	locked  []tetris.Kind
	cleared [][]int
	over    []int
}

func (r *recorder) SessionStarted() {
	r.started++
}

func (r *recorder) PieceLocked(kind tetris.Kind, _ [4]tetris.Point) {
	r.locked = append(r.locked, kind)
}

func (r *recorder) LinesCleared(rows []int) {
	r.cleared = append(r.cleared, rows)
}

func (r *recorder) GameOver(finalScore int) {
	r.over = append(r.over, finalScore)
}

func newBoard(t *testing.T, kinds []tetris.Kind, opts ...tetris.Option) (*tetris.Board, *recorder) {
	t.Helper()
	rec := &recorder{}
	opts = append([]tetris.Option{tetris.WithPicker(tetris.NewSequencePicker(kinds...)), tetris.WithListener(rec)}, opts...)
	b, err := tetris.NewBoard(tetris.DefaultConfig(), opts...)
	require.NoError(t, err)
	return b, rec
}

var hardDrop = tetris.Intents{HardDrop: true}

func TestNewBoardValidatesConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*tetris.Config)
		want   error
	}{
		{"narrow", func(c *tetris.Config) { c.Width = 3 }, tetris.ErrInvalidDimensions},
		{"flat", func(c *tetris.Config) { c.Height = 0 }, tetris.ErrInvalidDimensions},
		{"spawn above", func(c *tetris.Config) { c.Spawn = tetris.Point{X: 0, Y: 9} }, tetris.ErrInvalidSpawn},
		{"spawn left", func(c *tetris.Config) { c.Spawn = tetris.Point{X: -5, Y: 0} }, tetris.ErrInvalidSpawn},
		{"no gravity", func(c *tetris.Config) { c.GravityDelays = nil }, tetris.ErrNoGravityDelays},
		{"increasing gravity", func(c *tetris.Config) { c.GravityDelays = []time.Duration{ms, 2 * ms} }, tetris.ErrInvalidDelay},
		{"zero gravity", func(c *tetris.Config) { c.GravityDelays = []time.Duration{0} }, tetris.ErrInvalidDelay},
		{"negative lock", func(c *tetris.Config) { c.LockDelay = -ms }, tetris.ErrInvalidDelay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tetris.DefaultConfig()
			tt.mutate(&cfg)
			b, err := tetris.NewBoard(cfg)
			assert.Nil(t, b)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	b, err := tetris.NewBoard(tetris.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, tetris.Idle, b.State())
}

func TestBoardIdleIgnoresTicks(t *testing.T) {
	b, rec := newBoard(t, []tetris.Kind{tetris.I})
	res := b.Tick(time.Second, hardDrop)
	assert.Equal(t, tetris.TickResult{}, res)
	assert.Empty(t, rec.locked)
	_, ok := b.Piece()
	assert.False(t, ok)
}

func TestBoardStartSpawnsPiece(t *testing.T) {
	b, _ := newBoard(t, []tetris.Kind{tetris.T})
	b.Start()

	assert.Equal(t, tetris.Running, b.State())
	p, ok := b.Piece()
	require.True(t, ok)
	assert.Equal(t, tetris.T, p.Kind())
	assert.Equal(t, tetris.Point{X: -1, Y: 8}, p.Position())
	assert.Equal(t, 1, b.Stats().PiecesSpawned)
}

func TestBoardHardDropOnEmptyBoard(t *testing.T) {
	b, rec := newBoard(t, []tetris.Kind{tetris.I, tetris.O})
	b.Start()

	ghost, ok := b.Ghost()
	require.True(t, ok)

	res := b.Tick(16*ms, hardDrop)
	assert.True(t, res.Locked)
	assert.Equal(t, 19, res.HardDropRows)
	assert.Equal(t, 0, res.Cleared.Count)
	assert.True(t, res.Spawned)
	assert.False(t, res.GameOver)

	assert.Equal(t, []tetris.Kind{tetris.I}, rec.locked)
	assert.Empty(t, rec.cleared)
	assert.Equal(t, 0, b.Score())

	g := b.Grid()
	assert.Equal(t, 4, g.Count())
	for _, c := range ghost {
		assert.Equal(t, tetris.I, g.At(c))
		assert.Equal(t, -10, c.Y)
	}

	p, ok := b.Piece()
	require.True(t, ok)
	assert.Equal(t, tetris.O, p.Kind())
}

func TestBoardOPieceCompletesLine(t *testing.T) {
	b, rec := newBoard(t, []tetris.Kind{tetris.O})
	b.Start()
	fillRow(b.Grid(), -10, tetris.Z, -1, 0)

	res := b.Tick(16*ms, hardDrop)
	require.True(t, res.Locked)
	assert.Equal(t, 1, res.Cleared.Count)
	assert.Equal(t, 100, res.Cleared.Points)
	assert.Equal(t, 100, b.Score())
	assert.Equal(t, [][]int{{-10}}, rec.cleared)

	g := b.Grid()
	assert.Equal(t, 2, g.Count())
	assert.Equal(t, tetris.O, g.At(tetris.Point{X: -1, Y: -10}))
	assert.Equal(t, tetris.O, g.At(tetris.Point{X: 0, Y: -10}))
	assert.Equal(t, 1, b.Stats().LinesCleared)
}

func TestBoardGravityLocksPiece(t *testing.T) {
	b, rec := newBoard(t, []tetris.Kind{tetris.I})
	b.Start()

	var locked tetris.TickResult
	for range 2000 {
		res := b.Tick(50*ms, tetris.Intents{})
		if res.Locked {
			locked = res
			break
		}
	}

	require.True(t, locked.Locked)
	assert.Equal(t, 0, locked.HardDropRows)
	assert.Len(t, rec.locked, 1)
	for x := -2; x <= 1; x++ {
		assert.True(t, b.Grid().Occupied(tetris.Point{X: x, Y: -10}))
	}
}

func TestBoardGameOverWhenSpawnBlocked(t *testing.T) {
	score := tetris.NewScoreCounter()
	b, rec := newBoard(t, []tetris.Kind{tetris.O}, tetris.WithScore(score))
	b.Start()
	score.AddScore(1200)

	for row := -10; row <= 7; row++ {
		fillRow(b.Grid(), row, tetris.J, 4)
	}

	res := b.Tick(16*ms, hardDrop)
	assert.True(t, res.Locked)
	assert.Equal(t, 0, res.HardDropRows)
	assert.True(t, res.GameOver)
	assert.False(t, res.Spawned)
	assert.Equal(t, 1200, res.FinalScore)

	assert.Equal(t, tetris.GameOver, b.State())
	assert.Equal(t, []int{1200}, rec.over)
	assert.Equal(t, 0, b.Grid().Count())
	assert.Equal(t, 0, b.Score())
	assert.Equal(t, 1200, score.Best())

	_, ok := b.Piece()
	assert.False(t, ok)
	assert.Equal(t, tetris.TickResult{}, b.Tick(time.Second, hardDrop))

	b.Start()
	assert.Equal(t, tetris.Running, b.State())
	assert.Equal(t, 2, b.Stats().Games)
	assert.Equal(t, 2, rec.started)
}

func TestBoardPause(t *testing.T) {
	b, rec := newBoard(t, []tetris.Kind{tetris.L})
	b.Start()
	before, _ := b.Piece()

	b.SetPaused(true)
	assert.True(t, b.Paused())
	for range 100 {
		b.Tick(time.Second, hardDrop)
	}
	after, _ := b.Piece()
	assert.Equal(t, before.Position(), after.Position())
	assert.Empty(t, rec.locked)
	assert.Equal(t, 0, b.Grid().Count())

	b.SetPaused(false)
	assert.True(t, b.Tick(time.Millisecond, hardDrop).Locked)
}

func TestBoardStop(t *testing.T) {
	b, rec := newBoard(t, []tetris.Kind{tetris.S})
	b.Start()
	b.Tick(ms, hardDrop)
	require.Equal(t, 4, b.Grid().Count())

	b.Stop()
	assert.Equal(t, tetris.Idle, b.State())
	assert.Equal(t, 0, b.Grid().Count())
	assert.Empty(t, rec.over, "stopping is not a game over")
	_, ok := b.Piece()
	assert.False(t, ok)
	assert.False(t, b.Spawn())
}

func TestBoardListenerRegisteredLater(t *testing.T) {
	b, _ := newBoard(t, []tetris.Kind{tetris.I})
	var locks int
	b.AddListener(tetris.ListenerFuncs{OnPieceLocked: func(tetris.Kind, [4]tetris.Point) { locks++ }})
	b.Start()
	b.Tick(ms, hardDrop)
	b.Tick(ms, hardDrop)
	assert.Equal(t, 2, locks)
}

func TestBoardOccupancyInvariant(t *testing.T) {
	b, err := tetris.NewBoard(tetris.DefaultConfig(), tetris.WithSeed(7))
	require.NoError(t, err)

	var locked, lines int
	b.AddListener(tetris.ListenerFuncs{
		OnPieceLocked:  func(tetris.Kind, [4]tetris.Point) { locked++ },
		OnLinesCleared: func(rows []int) { lines += len(rows) },
		OnGameOver:     func(int) { locked, lines = 0, 0 },
	})
	b.Start()

	intents := []tetris.Intents{
		{Move: -1}, {Move: 1}, {Rotate: 1}, {Rotate: -1}, {SoftDrop: true}, {}, {Move: 1, Rotate: 1}, hardDrop,
	}
	for i := range 20000 {
		if b.State() != tetris.Running {
			b.Start()
		}
		b.Tick(37*ms, intents[(i*7+i/3)%len(intents)])

		if p, ok := b.Piece(); ok {
			require.True(t, p.Valid(), "tick %d: active piece overlaps the grid", i)
		}
		require.Equal(t, locked*4-lines*b.Grid().Width(), b.Grid().Count(), "tick %d", i)
	}
	assert.Greater(t, b.Stats().PiecesLocked, 0)
}

func TestBoardRun(t *testing.T) {
	b, rec := newBoard(t, []tetris.Kind{tetris.I})
	b.Start()

	var polls int
	source := tetris.InputFunc(func(*tetris.Board) tetris.Intents {
		polls++
		return hardDrop
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*ms)
	defer cancel()

	err := b.Run(ctx, 5*ms, source)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)

	stats := b.Stats()
	assert.Greater(t, stats.Ticks, int64(0))
	assert.Equal(t, int64(polls), stats.Ticks)
	assert.Greater(t, stats.PiecesLocked, 0)
	assert.Len(t, rec.locked, stats.PiecesLocked)
}
