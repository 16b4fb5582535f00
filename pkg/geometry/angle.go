package geometry

import "math"

// FullTurn is one revolution in degrees.
const FullTurn = 360.0

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// NormalizeHeading brings a heading back into [0, 360) with a single correction.
// Callers never move a heading by more than one revolution at once.
func NormalizeHeading(deg float64) float64 {
	if deg >= FullTurn {
		deg -= FullTurn
	} else if deg < 0 {
		deg += FullTurn
		// -1e-20 + 360 rounds to 360
		if deg >= FullTurn {
			deg = 0
		}
	}
	return deg
}

// SteeringAngle returns atan(d.X/d.Y) in degrees, the turn that points a heading toward the
// end of d in the world's trigonometric convention.
// When d.Y is zero the ratio is replaced by its signed limit: +90 or -90, and 0 for a null vector.
func SteeringAngle(d Vector2D) float64 {
	if d.Y == 0 {
		switch {
		case d.X > 0:
			return 90
		case d.X < 0:
			return -90
		default:
			return 0
		}
	}
	return RadToDeg(math.Atan(d.X / d.Y))
}
