package circuit

import (
	"errors"
	"fmt"
)

// ErrCircuitDead is returned by Bipole.SetKind when the owning Circuit has
// already been garbage collected.
var ErrCircuitDead = errors.New("circuit: owning circuit is dead")

// MatrixError wraps a failure from the mna package, surfaced unchanged
// through errors.Unwrap/errors.As once it crosses into Circuit territory.
type MatrixError struct {
	Err error
}

func (e MatrixError) Error() string {
	return fmt.Sprintf("circuit: matrix error: %v", e.Err)
}

func (e MatrixError) Unwrap() error {
	return e.Err
}
