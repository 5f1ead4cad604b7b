package tetris

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"
)

// State is the session state of a board.
type State int

const (
	Idle State = iota
	Running
	GameOver
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case GameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Config holds the board geometry and timing constants.
type Config struct {
	Width          int
	Height         int
	Spawn          Point
	MoveDelay      time.Duration
	LockDelay      time.Duration
	GravityDelays  []time.Duration
	PointsPerLevel int
}

// DefaultConfig returns the standard 10x20 board configuration.
func DefaultConfig() Config {
	return Config{
		Width:     10,
		Height:    20,
		Spawn:     Point{X: -1, Y: 8},
		MoveDelay: 100 * time.Millisecond,
		LockDelay: 500 * time.Millisecond,
		GravityDelays: []time.Duration{
			1000 * time.Millisecond,
			800 * time.Millisecond,
			650 * time.Millisecond,
			500 * time.Millisecond,
			400 * time.Millisecond,
			300 * time.Millisecond,
			220 * time.Millisecond,
			150 * time.Millisecond,
			100 * time.Millisecond,
		},
		PointsPerLevel: 600,
	}
}

func (c Config) validate(catalog *Catalog) error {
	if c.Width < 4 || c.Height < 4 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	}
	if c.MoveDelay < 0 || c.LockDelay < 0 {
		return fmt.Errorf("%w: move %s, lock %s", ErrInvalidDelay, c.MoveDelay, c.LockDelay)
	}
	if err := validateDelays(c.GravityDelays); err != nil {
		return fmt.Errorf("%w: gravity %v", err, c.GravityDelays)
	}
	grid := NewGrid(c.Width, c.Height)
	for _, kind := range Kinds {
		for _, cell := range catalog.Get(kind).Cells() {
			if !grid.InBounds(cell.Add(c.Spawn)) {
				return fmt.Errorf("%w: %s at %v", ErrInvalidSpawn, kind, c.Spawn)
			}
		}
	}
	return nil
}

// Option configures the collaborators of a board.
type Option func(*Board)

// WithLogger sets the logger for lifecycle events. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Board) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithScore replaces the default ScoreCounter.
func WithScore(score ScoreKeeper) Option {
	return func(b *Board) { b.score = score }
}

// WithGravity replaces the score-driven Difficulty as the gravity source.
func WithGravity(gravity GravitySource) Option {
	return func(b *Board) { b.gravity = gravity }
}

// WithPicker sets the source of piece kinds.
func WithPicker(picker Picker) Option {
	return func(b *Board) { b.picker = picker }
}

// WithSeed uses a RandomPicker seeded with seed.
func WithSeed(seed uint64) Option {
	return func(b *Board) { b.picker = NewRandomPicker(seed) }
}

// WithListener registers a listener at construction.
func WithListener(l Listener) Option {
	return func(b *Board) { b.listeners = append(b.listeners, l) }
}

// TickResult reports everything that happened during one Tick.
type TickResult struct {
	StepResult
	Cleared    LineClearResult
	Spawned    bool
	GameOver   bool
	FinalScore int
}

// Board owns the grid and the active piece and runs the session state
// machine. A board is driven by a single goroutine and is not safe for
// concurrent use.
type Board struct {
	cfg       Config
	logger    *slog.Logger
	catalog   *Catalog
	grid      *Grid
	piece     *Piece
	timer     *DropTimer
	score     ScoreKeeper
	gravity   GravitySource
	picker    Picker
	listeners signals

	state  State
	paused bool
	active bool
	stats  statsInternal
}

// NewBoard creates an idle board. It fails only when cfg is invalid.
func NewBoard(cfg Config, opts ...Option) (*Board, error) {
	catalog := NewCatalog()
	if err := cfg.validate(catalog); err != nil {
		return nil, err
	}
	cfg.GravityDelays = append([]time.Duration(nil), cfg.GravityDelays...)

	b := &Board{
		cfg:     cfg,
		logger:  newNopLogger(),
		catalog: catalog,
		grid:    NewGrid(cfg.Width, cfg.Height),
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.score == nil {
		b.score = NewScoreCounter()
	}
	if b.gravity == nil {
		b.gravity = NewDifficulty(b.score, cfg.GravityDelays, cfg.PointsPerLevel)
	}
	if b.picker == nil {
		b.picker = NewRandomPicker(rand.Uint64())
	}

	b.piece = NewPiece(b.grid)
	b.timer = NewDropTimer(b.gravity, cfg.MoveDelay, cfg.LockDelay)
	b.stats.init()
	return b, nil
}

// AddListener registers l for all subsequent notifications.
func (b *Board) AddListener(l Listener) {
	b.listeners = append(b.listeners, l)
}

func (b *Board) Config() Config         { return b.cfg }
func (b *Board) Catalog() *Catalog      { return b.catalog }
func (b *Board) State() State           { return b.state }
func (b *Board) Paused() bool           { return b.paused }
func (b *Board) Score() int             { return b.score.Score() }
func (b *Board) Gravity() GravitySource { return b.gravity }

// Grid returns the committed cells. The grid is owned by the board and must
// only be read.
func (b *Board) Grid() *Grid { return b.grid }

// Piece returns a copy of the active piece. ok is false when no piece is in
// play.
func (b *Board) Piece() (piece Piece, ok bool) {
	if !b.active {
		return Piece{}, false
	}
	return *b.piece, true
}

// Ghost returns the landing cells of the active piece.
func (b *Board) Ghost() ([4]Point, bool) {
	if !b.active {
		return [4]Point{}, false
	}
	return b.piece.Ghost(), true
}

// LockState returns the drop timer phase of the active piece.
func (b *Board) LockState() LockState {
	return b.timer.State()
}

// SetPaused suspends or resumes ticking. State transitions are unaffected.
func (b *Board) SetPaused(paused bool) {
	b.paused = paused
}

// Start begins a new session on an empty grid.
func (b *Board) Start() {
	b.grid.Reset()
	b.score.Reset()
	b.paused = false
	b.state = Running
	b.stats.games++
	b.logger.Info("session started", "game", b.stats.games)
	b.listeners.sessionStarted()
	b.spawn()
}

// Stop ends the session without a game-over notification and discards the
// grid and the active piece.
func (b *Board) Stop() {
	b.grid.Reset()
	b.active = false
	b.paused = false
	b.state = Idle
	b.logger.Info("session stopped", "score", b.score.Score())
}

// Spawn places a new piece at the spawn anchor. It reports false and ends
// the session when the spawn cells are blocked.
func (b *Board) Spawn() bool {
	if b.state != Running {
		return false
	}
	return b.spawn()
}

func (b *Board) spawn() bool {
	kind := b.picker.Next()
	def := b.catalog.Get(kind)
	if def == nil {
		kind = Kinds[0]
		def = b.catalog.Get(kind)
	}
	b.piece.Spawn(def, b.cfg.Spawn)
	if !b.piece.Valid() {
		b.logger.Debug("spawn blocked", "kind", kind)
		b.gameOver()
		return false
	}
	b.active = true
	b.timer.Reset()
	b.stats.spawned++
	b.logger.Debug("piece spawned", "kind", kind)
	return true
}

// Tick advances the simulation by dt with the given player intents. Nothing
// happens unless the board is running and not paused.
func (b *Board) Tick(dt time.Duration, in Intents) TickResult {
	start := time.Now()
	defer func() { b.stats.record(time.Since(start)) }()

	var res TickResult
	if b.state != Running || b.paused || !b.active {
		return res
	}

	res.StepResult = b.timer.Advance(dt, b.piece, in)
	if res.Locked {
		b.lock(&res)
	}
	return res
}

func (b *Board) lock(res *TickResult) {
	kind := b.piece.Kind()
	cells := b.piece.Cells()
	b.grid.Set(cells[:], kind)
	b.active = false
	b.stats.locked++
	b.logger.Debug("piece locked", "kind", kind, "position", b.piece.Position())
	b.listeners.pieceLocked(kind, cells)

	res.Cleared = ClearLines(b.grid)
	if res.Cleared.Count > 0 {
		b.score.AddScore(res.Cleared.Points)
		b.stats.lines += res.Cleared.Count
		b.logger.Debug("lines cleared", "count", res.Cleared.Count, "points", res.Cleared.Points)
		b.listeners.linesCleared(res.Cleared.Rows)
	}

	if b.spawn() {
		res.Spawned = true
		return
	}
	res.GameOver = true
	res.FinalScore = b.stats.lastFinal
}

func (b *Board) gameOver() {
	final := b.score.Score()
	b.grid.Reset()
	b.active = false
	b.state = GameOver
	b.stats.lastFinal = final
	b.logger.Info("game over", "score", final)
	b.listeners.gameOver(final)
	b.score.Reset()
}
