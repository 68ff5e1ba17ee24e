// Package units provides shared constants, validation and conversion for
// angle units.
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Angle unit constants
const (
	Degrees = "deg"
	Radians = "rad"
)

// ValidAngleUnits contains all valid angle unit values
var ValidAngleUnits = []string{Degrees, Radians}

// IsValidAngleUnit checks if the given unit is in the list of valid units
func IsValidAngleUnit(unit string) bool {
	for _, validUnit := range ValidAngleUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidAngleUnitsString returns a comma-separated string of valid units for error messages
func GetValidAngleUnitsString() string {
	return strings.Join(ValidAngleUnits, ", ")
}

// ToDegrees converts an angle in the given unit to degrees.
// Unknown units are treated as degrees.
func ToDegrees(angle float64, unit string) float64 {
	switch unit {
	case Radians:
		return angle * 180 / math.Pi
	default:
		return angle
	}
}

// ParseAngle parses "45", "45deg" or "0.785rad" and returns degrees.
// A bare number is interpreted in defaultUnit.
func ParseAngle(s, defaultUnit string) (float64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	unit := defaultUnit
	for _, u := range ValidAngleUnits {
		if strings.HasSuffix(s, u) {
			unit = u
			s = strings.TrimSpace(strings.TrimSuffix(s, u))
			break
		}
	}
	if !IsValidAngleUnit(unit) {
		return 0, fmt.Errorf("invalid angle unit %q (valid: %s)", unit, GetValidAngleUnitsString())
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid angle %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid angle %q: not finite", s)
	}
	return ToDegrees(v, unit), nil
}
