package tetris

// Error is a constant error returned when a board cannot be constructed.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidDimensions Error = "invalid board dimensions"
	ErrInvalidSpawn      Error = "spawn anchor outside board"
	ErrNoGravityDelays   Error = "gravity delay table is empty"
	ErrInvalidDelay      Error = "invalid delay"
)
