package plan

import (
	"errors"
	"fmt"

	"github.com/neurobreath/placement/internal/level"
)

// ErrCannotGeneratePlan is the only failure family of Generate.
var ErrCannotGeneratePlan = errors.New("cannot generate plan")

// Error describes why a plan could not be generated. It unwraps to
// ErrCannotGeneratePlan.
type Error struct {
	Level  level.Level
	Group  level.LearnerGroup
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot generate plan for %s (%s): %s", e.Level, e.Group, e.Reason)
}

func (e *Error) Unwrap() error { return ErrCannotGeneratePlan }
