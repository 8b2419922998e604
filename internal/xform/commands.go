package xform

import (
	"fmt"
	gomath "math"

	"github.com/pkg/errors"

	"github.com/Faultbox/offview/pkg/math"
)

var (
	// ErrDegenerateAxis is returned when both points of a rotation axis coincide.
	ErrDegenerateAxis = errors.New("rotation axis has zero length")
	// ErrDegeneratePlane is returned when a reflection plane has a zero normal.
	ErrDegeneratePlane = errors.New("reflection plane normal has zero length")
)

// shearAngle is the fixed rotation about Z that every shear applies.
const shearAngle = -45

// Command is a user-level transform expressed as elementary operations.
type Command interface {
	// Emit issues the command's operations onto t. A command that fails
	// validation returns an error without issuing anything.
	Emit(t Transform) error
	String() string
}

// Translation moves the object by Offset.
type Translation struct {
	Offset math.Vec3
}

// Emit implements Command.
func (c Translation) Emit(t Transform) error {
	t.Translate(c.Offset.X, c.Offset.Y, c.Offset.Z)
	return nil
}

func (c Translation) String() string {
	return fmt.Sprintf("translate (%g, %g, %g)", c.Offset.X, c.Offset.Y, c.Offset.Z)
}

// Scaling scales the object about the origin.
type Scaling struct {
	Factors math.Vec3
}

// Emit implements Command.
func (c Scaling) Emit(t Transform) error {
	t.Scale(c.Factors.X, c.Factors.Y, c.Factors.Z)
	return nil
}

func (c Scaling) String() string {
	return fmt.Sprintf("scale (%g, %g, %g)", c.Factors.X, c.Factors.Y, c.Factors.Z)
}

// Shear approximates a shear along Axis: a fixed -45 degree turn about Z,
// then a scale of the two other axes by F1 and F2 in X, Y, Z order.
// It is not a true shear matrix.
type Shear struct {
	Axis   Axis
	F1, F2 float32
}

// Emit implements Command.
func (c Shear) Emit(t Transform) error {
	t.Rotate(shearAngle, AxisZ)
	switch c.Axis {
	case AxisX:
		t.Scale(1, c.F1, c.F2)
	case AxisY:
		t.Scale(c.F1, 1, c.F2)
	default:
		t.Scale(c.F1, c.F2, 1)
	}
	return nil
}

func (c Shear) String() string {
	return fmt.Sprintf("shear %s (%g, %g)", c.Axis, c.F1, c.F2)
}

// LineRotation rotates by Angle degrees about the line through P1 and P2,
// counterclockwise when looking from P2 toward P1.
type LineRotation struct {
	P1, P2 math.Vec3
	Angle  float32
}

// Emit implements Command.
func (c LineRotation) Emit(t Transform) error {
	dir := c.P2.Sub(c.P1)
	if dir.IsZero() {
		return ErrDegenerateAxis
	}
	aroundAligned(t, c.P1, dir.Normalize(), func() {
		t.Rotate(c.Angle, AxisZ)
	}, func(sign float32) {
		t.Rotate(sign*c.Angle, AxisX)
	})
	return nil
}

func (c LineRotation) String() string {
	return fmt.Sprintf("rotate %g about (%g, %g, %g)->(%g, %g, %g)",
		c.Angle, c.P1.X, c.P1.Y, c.P1.Z, c.P2.X, c.P2.Y, c.P2.Z)
}

// PlaneReflection mirrors the object across the plane through Point with
// the given Normal. Normal need not be unit length.
type PlaneReflection struct {
	Point  math.Vec3
	Normal math.Vec3
}

// Emit implements Command.
func (c PlaneReflection) Emit(t Transform) error {
	if c.Normal.IsZero() {
		return ErrDegeneratePlane
	}
	aroundAligned(t, c.Point, c.Normal.Normalize(), func() {
		t.Scale(1, 1, -1)
	}, func(float32) {
		t.Scale(-1, 1, 1)
	})
	return nil
}

func (c PlaneReflection) String() string {
	return fmt.Sprintf("reflect through (%g, %g, %g) normal (%g, %g, %g)",
		c.Point.X, c.Point.Y, c.Point.Z, c.Normal.X, c.Normal.Y, c.Normal.Z)
}

// aroundAligned moves origin to the world origin, turns the unit vector u onto
// +Z, runs aligned, then undoes both. When u already lies on the X axis the
// turn is skipped and onX runs instead with the sign of u.X.
func aroundAligned(t Transform, origin, u math.Vec3, aligned func(), onX func(sign float32)) {
	back := origin.Negate()
	t.Translate(back.X, back.Y, back.Z)

	d := float32(gomath.Sqrt(float64(u.Y*u.Y + u.Z*u.Z)))
	if d == 0 {
		sign := float32(1)
		if u.X < 0 {
			sign = -1
		}
		onX(sign)
	} else {
		e := u.Length()
		alpha := math.Degrees(gomath.Acos(clampUnit(u.Z / d)))
		if u.Y < 0 {
			alpha = -alpha
		}
		beta := math.Degrees(gomath.Asin(clampUnit(u.X / e)))

		t.Rotate(alpha, AxisX)
		t.Rotate(-beta, AxisY)
		aligned()
		t.Rotate(beta, AxisY)
		t.Rotate(-alpha, AxisX)
	}

	t.Translate(origin.X, origin.Y, origin.Z)
}

func clampUnit(v float32) float64 {
	return gomath.Max(-1, gomath.Min(1, float64(v)))
}
