package tetris

import "time"

// LockState is the per-piece phase of the drop timer.
type LockState int

const (
	Falling LockState = iota
	Locking
	Locked
)

func (s LockState) String() string {
	switch s {
	case Falling:
		return "falling"
	case Locking:
		return "locking"
	case Locked:
		return "locked"
	default:
		return "unknown"
	}
}

// Intents are the player requests for one tick. Move is a held direction
// (-1, 0 or 1) repeated at the move delay; the remaining fields are one-shot
// requests consumed by the tick they are passed to.
type Intents struct {
	Move     int
	Rotate   int
	SoftDrop bool
	HardDrop bool
}

// GravitySource provides the interval between forced one-row drops.
type GravitySource interface {
	GravityDelay() time.Duration
}

// StepResult describes what the drop timer did to the piece during a tick.
type StepResult struct {
	Moved        bool
	Rotated      bool
	SoftDropped  bool
	Stepped      bool
	HardDropRows int
	Locked       bool
}

// DropTimer advances one piece through gravity, player movement and lock
// delay. Deadlines are computed from the accumulated tick time, so behaviour
// depends only on the sequence of elapsed durations passed to Advance.
type DropTimer struct {
	gravity   GravitySource
	moveDelay time.Duration
	lockDelay time.Duration

	now      time.Duration
	stepAt   time.Duration
	moveAt   time.Duration
	lockTime time.Duration
	state    LockState
}

// NewDropTimer creates a timer using gravity for the step interval.
func NewDropTimer(gravity GravitySource, moveDelay, lockDelay time.Duration) *DropTimer {
	return &DropTimer{
		gravity:   gravity,
		moveDelay: moveDelay,
		lockDelay: lockDelay,
	}
}

// Reset starts the timers for a freshly spawned piece.
func (t *DropTimer) Reset() {
	t.stepAt = t.now + t.gravity.GravityDelay()
	t.moveAt = t.now + t.moveDelay
	t.lockTime = 0
	t.state = Falling
}

func (t *DropTimer) State() LockState         { return t.state }
func (t *DropTimer) Now() time.Duration       { return t.now }
func (t *DropTimer) LockTime() time.Duration  { return t.lockTime }
func (t *DropTimer) LockDelay() time.Duration { return t.lockDelay }

// Advance moves the clock forward by dt and applies intents and gravity to p.
// Once the timer reports Locked it does nothing until Reset.
func (t *DropTimer) Advance(dt time.Duration, p *Piece, in Intents) StepResult {
	var res StepResult
	if t.state == Locked {
		res.Locked = true
		return res
	}

	t.now += dt
	t.lockTime += dt

	if in.Rotate != 0 && p.Rotate(in.Rotate) {
		res.Rotated = true
		t.movementReset()
	}

	if in.HardDrop {
		res.HardDropRows = p.HardDrop()
		t.state = Locked
		res.Locked = true
		return res
	}

	if in.Move != 0 && t.now >= t.moveAt {
		dx := 1
		if in.Move < 0 {
			dx = -1
		}
		if p.TryTranslate(dx, 0) {
			res.Moved = true
			t.movementReset()
		}
	}

	if in.SoftDrop && p.TryTranslate(0, -1) {
		res.SoftDropped = true
		t.stepAt = t.now + t.gravity.GravityDelay()
	}

	if t.now >= t.stepAt {
		res.Stepped = true
		t.stepAt = t.now + t.gravity.GravityDelay()
		if p.TryTranslate(0, -1) {
			t.lockTime = 0
		}
		if t.lockTime >= t.lockDelay {
			t.state = Locked
			res.Locked = true
			return res
		}
	}

	if p.Fits(0, -1) {
		t.state = Falling
	} else {
		t.state = Locking
	}
	return res
}

// movementReset gives the player a fresh lock window after a successful
// lateral move or rotation.
func (t *DropTimer) movementReset() {
	t.moveAt = t.now + t.moveDelay
	t.lockTime = 0
}
