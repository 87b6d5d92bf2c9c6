// SPDX-License-Identifier: MPL-2.0

package diagnostics

import (
	"errors"
	"fmt"
)

// Level selects how much detail a report carries. Levels are cumulative:
// everything rendered at a level is also rendered at every higher level.
type Level int

const (
	// Basic reports the version, build date, platform, runtime, and
	// encoding facts only.
	Basic Level = iota
	// Detailed adds virtual file system schemes, launch arguments, and the
	// prefix-filtered environment.
	Detailed
	// Full widens the environment to every variable and adds the runtime
	// property and module path sections.
	Full
)

// ErrInvalidLevel reports a verbosity level outside the supported range.
var ErrInvalidLevel = errors.New("invalid verbosity level")

// InvalidLevelError carries the offending level value.
type InvalidLevelError struct {
	Value Level
}

func (e *InvalidLevelError) Error() string {
	return fmt.Sprintf("invalid verbosity level %d (valid range %d..%d)", int(e.Value), int(Basic), int(Full))
}

func (e *InvalidLevelError) Unwrap() error { return ErrInvalidLevel }

// Validate checks that the level is one of the declared constants.
func (l Level) Validate() error {
	if l < Basic || l > Full {
		return &InvalidLevelError{Value: l}
	}
	return nil
}

func (l Level) String() string {
	switch l {
	case Basic:
		return "basic"
	case Detailed:
		return "detailed"
	case Full:
		return "full"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// LevelFromCount maps a counted CLI flag to a Level. Counts beyond the
// highest level clamp to Full instead of failing.
func LevelFromCount(n int) Level {
	switch {
	case n <= int(Basic):
		return Basic
	case n >= int(Full):
		return Full
	default:
		return Level(n)
	}
}
