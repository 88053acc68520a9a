package orbitcore

import (
	"fmt"

	"github.com/pkg/errors"
)

// InvalidElements reports a set of orbital elements that violate the
// constructor's invariants (e.g. a periapsis that isn't positive, or a
// semi-major axis inconsistent with the requested eccentricity class).
type InvalidElements struct {
	msg string
}

func (e *InvalidElements) Error() string { return e.msg }

func newInvalidElements(format string, args ...interface{}) *InvalidElements {
	return &InvalidElements{msg: fmt.Sprintf(format, args...)}
}

// ErrDegenerateState is returned by OrbitFromStateVector when a position or
// velocity cannot correspond to any orbit (zero angular momentum, i.e. r
// and v are collinear).
var ErrDegenerateState = errors.New("state vector yields zero angular momentum: no orbit plane")

// wrapf annotates err with a formatted message via github.com/pkg/errors,
// preserving the original error for errors.Cause/errors.Is.
func wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}
