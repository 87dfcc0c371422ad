package scene

import (
	"fmt"
	"math"
)

// Vector3 is a 3-axis vector (position, size, direction).
type Vector3 struct {
	X, Y, Z float64
}

// String renders the vector as "(x, y, z)".
func (v Vector3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Sub returns v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Cross returns the cross product v × o.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Magnitude returns the vector length.
func (v Vector3) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Unit returns the normalized vector. The zero vector is returned unchanged.
func (v Vector3) Unit() Vector3 {
	m := v.Magnitude()
	if m == 0 {
		return v
	}
	return Vector3{v.X / m, v.Y / m, v.Z / m}
}

// Vector2 is a 2-axis vector.
type Vector2 struct {
	X, Y float64
}

// String renders the vector as "(x, y)".
func (v Vector2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// Color3 is an RGB color with channels in the host's native range.
// Channel values are carried through exactly as received.
type Color3 struct {
	R, G, B float64
}

// String renders the color as "r, g, b".
func (c Color3) String() string {
	return fmt.Sprintf("%g, %g, %g", c.R, c.G, c.B)
}

// UDim is a one-axis layout coordinate: a fraction of the parent extent plus
// a fixed pixel offset.
type UDim struct {
	Scale  float64
	Offset float64
}

// String renders the coordinate as "{scale, offset}".
func (u UDim) String() string {
	return fmt.Sprintf("{%g, %g}", u.Scale, u.Offset)
}

// UDim2 is a two-axis layout coordinate used by 2D-layout nodes for position
// and size.
type UDim2 struct {
	X, Y UDim
}

// String renders the coordinate as "{xs, xo}, {ys, yo}".
func (u UDim2) String() string {
	return fmt.Sprintf("%s, %s", u.X, u.Y)
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min, Max Vector2
}

// NumberRange is a closed numeric interval.
type NumberRange struct {
	Min, Max float64
}

// NumberSequenceKeypoint is one point of a scalar animation curve.
type NumberSequenceKeypoint struct {
	Time     float64
	Value    float64
	Envelope float64
}

// NumberSequence is a scalar animation curve, keypoints ordered by time.
type NumberSequence struct {
	Keypoints []NumberSequenceKeypoint
}

// ColorSequenceKeypoint is one point of a color animation curve.
type ColorSequenceKeypoint struct {
	Time  float64
	Value Color3
}

// ColorSequence is a color animation curve, keypoints ordered by time.
type ColorSequence struct {
	Keypoints []ColorSequenceKeypoint
}

// CFrame is a rigid transform: a position plus a row-major 3x3 rotation
// matrix. The zero rotation is not valid; use NewCFrame or CFrameLookAt.
type CFrame struct {
	Position Vector3
	// Rotation holds r00..r22 row-major. Identity for pure translations.
	Rotation [9]float64
}

// IdentityRotation is the rotation of an axis-aligned transform.
var IdentityRotation = [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}

// NewCFrame returns an axis-aligned transform at the given position.
func NewCFrame(pos Vector3) CFrame {
	return CFrame{Position: pos, Rotation: IdentityRotation}
}

// NewCFrameFromMatrix returns a transform with an explicit rotation matrix,
// given row-major components r00..r22.
func NewCFrameFromMatrix(pos Vector3, r [9]float64) CFrame {
	return CFrame{Position: pos, Rotation: r}
}

// CFrameLookAt returns a transform at pos facing target, with the world up
// axis (0,1,0). A vertical look direction falls back to (0,0,1) as up so the
// result is always well formed.
func CFrameLookAt(pos, target Vector3) CFrame {
	up := Vector3{0, 1, 0}
	forward := target.Sub(pos).Unit()
	if forward.Magnitude() == 0 {
		return NewCFrame(pos)
	}
	// Looking straight up or down leaves the right axis undefined.
	if math.Abs(forward.X) < 1e-9 && math.Abs(forward.Z) < 1e-9 {
		up = Vector3{0, 0, 1}
	}
	zaxis := Vector3{-forward.X, -forward.Y, -forward.Z}
	xaxis := up.Cross(zaxis).Unit()
	yaxis := zaxis.Cross(xaxis)
	return CFrame{
		Position: pos,
		Rotation: [9]float64{
			xaxis.X, yaxis.X, zaxis.X,
			xaxis.Y, yaxis.Y, zaxis.Y,
			xaxis.Z, yaxis.Z, zaxis.Z,
		},
	}
}

// PhysicalProperties is the custom physics tuple a physical node carries.
type PhysicalProperties struct {
	Density          float64
	Friction         float64
	Elasticity       float64
	FrictionWeight   float64
	ElasticityWeight float64
}
