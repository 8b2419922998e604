// Package xform composes object transforms out of three elementary operations
// (translate, axis-aligned rotate, scale) and keeps the undoable stack of
// cumulative transforms the viewer renders with.
package xform

import (
	"fmt"

	"github.com/Faultbox/offview/pkg/math"
)

// Axis selects one of the coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Transform accepts elementary operations. Each call acts on geometry after
// all previously issued calls.
type Transform interface {
	Translate(dx, dy, dz float32)
	Rotate(angleDeg float32, axis Axis)
	Scale(sx, sy, sz float32)
}

// Matrix is a Transform backed by an explicit 4x4 matrix.
type Matrix struct {
	M math.Mat4
}

// NewMatrix returns an identity Matrix.
func NewMatrix() *Matrix {
	return &Matrix{M: math.Identity()}
}

// Translate implements Transform.
func (m *Matrix) Translate(dx, dy, dz float32) {
	m.M = math.Translate(dx, dy, dz).Mul(m.M)
}

// Rotate implements Transform. angleDeg is counterclockwise looking down the
// positive axis toward the origin.
func (m *Matrix) Rotate(angleDeg float32, axis Axis) {
	rad := math.Radians(angleDeg)
	var r math.Mat4
	switch axis {
	case AxisX:
		r = math.RotateX(rad)
	case AxisY:
		r = math.RotateY(rad)
	default:
		r = math.RotateZ(rad)
	}
	m.M = r.Mul(m.M)
}

// Scale implements Transform.
func (m *Matrix) Scale(sx, sy, sz float32) {
	m.M = math.Scale(sx, sy, sz).Mul(m.M)
}

// OpKind identifies an elementary operation.
type OpKind int

const (
	OpTranslate OpKind = iota
	OpRotate
	OpScale
)

// Op is one recorded elementary operation.
// V holds the translation offset or the scale factors; Angle and Axis are set for rotations.
type Op struct {
	Kind  OpKind
	V     math.Vec3
	Angle float32
	Axis  Axis
}

// Apply replays the operation onto t.
func (o Op) Apply(t Transform) {
	switch o.Kind {
	case OpTranslate:
		t.Translate(o.V.X, o.V.Y, o.V.Z)
	case OpRotate:
		t.Rotate(o.Angle, o.Axis)
	case OpScale:
		t.Scale(o.V.X, o.V.Y, o.V.Z)
	}
}

func (o Op) String() string {
	switch o.Kind {
	case OpTranslate:
		return fmt.Sprintf("translate(%g, %g, %g)", o.V.X, o.V.Y, o.V.Z)
	case OpRotate:
		return fmt.Sprintf("rotate(%g, %s)", o.Angle, o.Axis)
	case OpScale:
		return fmt.Sprintf("scale(%g, %g, %g)", o.V.X, o.V.Y, o.V.Z)
	default:
		return fmt.Sprintf("op(%d)", int(o.Kind))
	}
}

// Recorder is a Transform that only remembers what it was asked to do.
type Recorder struct {
	Ops []Op
}

// Translate implements Transform.
func (r *Recorder) Translate(dx, dy, dz float32) {
	r.Ops = append(r.Ops, Op{Kind: OpTranslate, V: math.Vec3{X: dx, Y: dy, Z: dz}})
}

// Rotate implements Transform.
func (r *Recorder) Rotate(angleDeg float32, axis Axis) {
	r.Ops = append(r.Ops, Op{Kind: OpRotate, Angle: angleDeg, Axis: axis})
}

// Scale implements Transform.
func (r *Recorder) Scale(sx, sy, sz float32) {
	r.Ops = append(r.Ops, Op{Kind: OpScale, V: math.Vec3{X: sx, Y: sy, Z: sz}})
}

// Compose returns the matrix of ops applied in order, starting from identity.
func Compose(ops []Op) math.Mat4 {
	m := NewMatrix()
	for _, op := range ops {
		op.Apply(m)
	}
	return m.M
}
