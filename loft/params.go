package loft

import (
	"fmt"
	"math"

	"github.com/loftworks/birail"
)

// AxisMode selects how the sample count of an axis is chosen.
type AxisMode int

const (
	// Resolution uses an explicit point count.
	Resolution AxisMode = iota

	// Spacing derives the point count from a target distance between
	// samples and the length of the curve being sampled.
	Spacing
)

func (m AxisMode) String() string {
	switch m {
	case Resolution:
		return "resolution"
	case Spacing:
		return "spacing"
	default:
		return fmt.Sprintf("AxisMode(%d)", int(m))
	}
}

// ParseAxisMode parses "resolution" or "spacing".
func ParseAxisMode(s string) (AxisMode, error) {
	switch s {
	case "resolution", "":
		return Resolution, nil
	case "spacing":
		return Spacing, nil
	default:
		return 0, birail.NewError(birail.ErrCodeInvalidParameter, "unknown axis mode %q", s)
	}
}

// Axis is the sampling choice for one axis of the loft.
type Axis struct {
	Mode       AxisMode
	Spacing    float64
	Resolution int
}

// Count resolves the number of samples for a curve of the given length.
func (a Axis) Count(length float64) (int, error) {
	return ResolveSampleCount(a.Mode, a.Spacing, a.Resolution, length)
}

func (a Axis) validate(name string) error {
	switch a.Mode {
	case Resolution:
		if a.Resolution < 2 {
			return birail.NewError(birail.ErrCodeInvalidParameter,
				"%s resolution must be at least 2, got %d", name, a.Resolution)
		}
	case Spacing:
		if !(a.Spacing > 0) || math.IsInf(a.Spacing, 0) {
			return birail.NewError(birail.ErrCodeInvalidParameter,
				"%s spacing must be positive and finite, got %g", name, a.Spacing)
		}
	default:
		return birail.NewError(birail.ErrCodeInvalidParameter, "%s has unknown mode %v", name, a.Mode)
	}

	return nil
}

// ResolveSampleCount converts a spacing or resolution choice into a point
// count for a curve of known length.
//
// In Resolution mode the resolution is returned as is; it must be at least
// 2. In Spacing mode the count is round(length/spacing), never less than 2;
// spacing must be positive. Violations are InvalidParameter errors.
func ResolveSampleCount(mode AxisMode, spacing float64, resolution int, length float64) (int, error) {
	a := Axis{Mode: mode, Spacing: spacing, Resolution: resolution}
	if err := a.validate("axis"); err != nil {
		return 0, err
	}

	if mode == Resolution {
		return resolution, nil
	}

	if math.IsNaN(length) || math.IsInf(length, 0) || length < 0 {
		return 0, birail.NewError(birail.ErrCodeInvalidParameter, "curve length %g is not usable", length)
	}

	n := int(math.Round(length / spacing))
	if n < 2 {
		n = 2
	}
	return n, nil
}
