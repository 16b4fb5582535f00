package geometry

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used by Eq and by tests comparing floats.
const (
	Epsilon = 1e-9
)

// Vector2D is a point or a displacement in the cartesian plane of the world.
// The Y axis grows downward (screen coordinates), so a heading of 0 degrees points "up".
// Fields are public because they are plain data: v := Vector2D{X: 1, Y: 2}
type Vector2D struct {
	X float64 `json:"x" toml:"x" yaml:"x"`
	Y float64 `json:"y" toml:"y" yaml:"y"`
}

// NewVector creates a new Vector2D.
func NewVector(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// NewVectorHeading returns the displacement of length distance along a compass heading
// given in degrees (0 = up, clockwise increase).
func NewVectorHeading(distance, headingDeg float64) Vector2D {
	rad := DegToRad(headingDeg)
	x := distance * math.Sin(rad)
	y := -distance * math.Cos(rad)

	// Handle standard floating point precision issues near zero
	if math.Abs(x) < Epsilon {
		x = 0
	}
	if math.Abs(y) < Epsilon {
		y = 0
	}
	return Vector2D{X: x, Y: y}
}

// String implements the fmt.Stringer interface.
func (v Vector2D) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// ---------------------------------------------------------------------
// Arithmetic Operations
// Value receivers returning new values keep the type immutable by convention.
// ---------------------------------------------------------------------

// Add adds two vectors and returns the result.
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{v.X + other.X, v.Y + other.Y}
}

// Sub subtracts the other vector from the current vector.
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{v.X - other.X, v.Y - other.Y}
}

// Mul scales the vector by a scalar value.
func (v Vector2D) Mul(scalar float64) Vector2D {
	return Vector2D{v.X * scalar, v.Y * scalar}
}

// Div scales the vector by 1/scalar.
// The second result is false when scalar is zero, in which case v is returned unchanged
// so callers can keep their previous value instead of propagating Inf.
func (v Vector2D) Div(scalar float64) (Vector2D, bool) {
	if scalar == 0 {
		return v, false
	}
	return Vector2D{v.X / scalar, v.Y / scalar}, true
}

// ---------------------------------------------------------------------
// Magnitude and distances
// ---------------------------------------------------------------------

// LenSqr calculates the squared magnitude of the vector. Use it for comparisons.
func (v Vector2D) LenSqr() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len calculates the magnitude (length) of the vector.
func (v Vector2D) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// DistanceTo calculates the Euclidean distance to another vector.
func (v Vector2D) DistanceTo(other Vector2D) float64 {
	return v.Sub(other).Len()
}

// DistanceSquaredTo calculates the squared Euclidean distance to another vector.
func (v Vector2D) DistanceSquaredTo(other Vector2D) float64 {
	return v.Sub(other).LenSqr()
}

// WithinBox reports whether v lies in the axis-aligned square of the given half width
// centered on center. Edges are inclusive.
func (v Vector2D) WithinBox(center Vector2D, halfWidth float64) bool {
	return v.X >= center.X-halfWidth && v.X <= center.X+halfWidth &&
		v.Y >= center.Y-halfWidth && v.Y <= center.Y+halfWidth
}

// IsFinite is false as soon as one component is NaN or infinite.
func (v Vector2D) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// ---------------------------------------------------------------------
// Comparison
// ---------------------------------------------------------------------

// Eq checks if two vectors are approximately equal using the Epsilon constant.
func (v Vector2D) Eq(other Vector2D) bool {
	return math.Abs(v.X-other.X) <= Epsilon && math.Abs(v.Y-other.Y) <= Epsilon
}

// EqWithin is Eq with a caller supplied tolerance.
func (v Vector2D) EqWithin(other Vector2D, tolerance float64) bool {
	return math.Abs(v.X-other.X) <= tolerance && math.Abs(v.Y-other.Y) <= tolerance
}
