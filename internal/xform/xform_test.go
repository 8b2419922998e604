package xform

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/offview/pkg/math"
)

const eps = 1e-4

func near(a, b math.Vec3) bool {
	d := a.Sub(b)
	return d.X < eps && d.X > -eps && d.Y < eps && d.Y > -eps && d.Z < eps && d.Z > -eps
}

func matNear(a, b math.Mat4) bool {
	return mgl32.Mat4(a).ApproxEqualThreshold(mgl32.Mat4(b), eps)
}

func emit(t *testing.T, cmd Command) math.Mat4 {
	t.Helper()
	var rec Recorder
	if err := cmd.Emit(&rec); err != nil {
		t.Fatalf("%s: unexpected error: %v", cmd, err)
	}
	return Compose(rec.Ops)
}

func TestMatrixAppliesInIssueOrder(t *testing.T) {
	m := NewMatrix()
	m.Translate(1, 0, 0)
	m.Scale(2, 2, 2)

	got := m.M.TransformPoint(math.Vec3{X: 1})
	if !near(got, math.Vec3{X: 4}) {
		t.Errorf("translate then scale of (1,0,0): got %v, want (4, 0, 0)", got)
	}
}

func TestMatrixRotateIsCounterclockwise(t *testing.T) {
	tests := []struct {
		axis Axis
		in   math.Vec3
		want math.Vec3
	}{
		{AxisX, math.Vec3{Y: 1}, math.Vec3{Z: 1}},
		{AxisY, math.Vec3{Z: 1}, math.Vec3{X: 1}},
		{AxisZ, math.Vec3{X: 1}, math.Vec3{Y: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.axis.String(), func(t *testing.T) {
			m := NewMatrix()
			m.Rotate(90, tt.axis)
			if got := m.M.TransformPoint(tt.in); !near(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComposeMatchesMatrix(t *testing.T) {
	var rec Recorder
	rec.Translate(1, 2, 3)
	rec.Rotate(30, AxisY)
	rec.Scale(2, 1, 0.5)

	m := NewMatrix()
	for _, op := range rec.Ops {
		op.Apply(m)
	}
	if got := Compose(rec.Ops); got != m.M {
		t.Errorf("Compose differs from replaying onto a Matrix")
	}
	if got := Compose(nil); got != math.Identity() {
		t.Errorf("Compose(nil) should be identity")
	}
}

var rotationAxes = []struct {
	name   string
	p1, p2 math.Vec3
}{
	{"along +X", math.Vec3{X: 1, Y: 2, Z: 3}, math.Vec3{X: 5, Y: 2, Z: 3}},
	{"along -X", math.Vec3{X: 1, Y: -1, Z: 0}, math.Vec3{X: -2, Y: -1, Z: 0}},
	{"along Z", math.Vec3{X: 1, Y: 1}, math.Vec3{X: 1, Y: 1, Z: 4}},
	{"oblique", math.Vec3{}, math.Vec3{X: 1, Y: 2, Z: 3}},
	{"negative y", math.Vec3{X: 2, Y: 0, Z: -1}, math.Vec3{X: 3, Y: -2, Z: -0.5}},
	{"along -Y", math.Vec3{Z: 2}, math.Vec3{Y: -3, Z: 2}},
}

func TestLineRotationFullTurnsAreIdentity(t *testing.T) {
	for _, axis := range rotationAxes {
		for _, angle := range []float32{0, 360, -360} {
			got := emit(t, LineRotation{P1: axis.p1, P2: axis.p2, Angle: angle})
			if !matNear(got, math.Identity()) {
				t.Errorf("%s, angle %g: expected identity, got %v", axis.name, angle, got)
			}
		}
	}
}

func TestLineRotationOntoExistingTransform(t *testing.T) {
	s := NewStack()
	if err := s.PushAndApply(Scaling{Factors: math.Vec3{X: 2, Y: 3, Z: 4}}); err != nil {
		t.Fatal(err)
	}
	before := s.Current()

	if err := s.PushAndApply(LineRotation{P1: math.Vec3{X: 1}, P2: math.Vec3{X: 1, Y: 1, Z: 1}, Angle: 0}); err != nil {
		t.Fatal(err)
	}
	if !matNear(s.Current(), before) {
		t.Error("zero-angle rotation changed the cumulative transform")
	}
}

func TestLineRotationMatchesAxisAngle(t *testing.T) {
	for _, axis := range rotationAxes {
		for _, angle := range []float32{30, 90, -135} {
			u := axis.p2.Sub(axis.p1).Normalize()
			want := math.Translate(axis.p1.X, axis.p1.Y, axis.p1.Z).
				Mul(math.Mat4(mgl32.HomogRotate3D(mgl32.DegToRad(angle), mgl32.Vec3{u.X, u.Y, u.Z}))).
				Mul(math.Translate(-axis.p1.X, -axis.p1.Y, -axis.p1.Z))

			got := emit(t, LineRotation{P1: axis.p1, P2: axis.p2, Angle: angle})
			if !matNear(got, want) {
				t.Errorf("%s, angle %g:\ngot  %v\nwant %v", axis.name, angle, got, want)
			}
		}
	}
}

func TestLineRotationRightHandRule(t *testing.T) {
	// Quarter turn about the vertical line through (1, 0, 0).
	m := emit(t, LineRotation{P1: math.Vec3{X: 1}, P2: math.Vec3{X: 1, Z: 1}, Angle: 90})
	if got := m.TransformPoint(math.Vec3{X: 2}); !near(got, math.Vec3{X: 1, Y: 1}) {
		t.Errorf("got %v, want (1, 1, 0)", got)
	}

	// Reversing the axis direction reverses the turn.
	m = emit(t, LineRotation{P1: math.Vec3{X: 1, Z: 1}, P2: math.Vec3{X: 1}, Angle: 90})
	if got := m.TransformPoint(math.Vec3{X: 2}); !near(got, math.Vec3{X: 1, Y: -1}) {
		t.Errorf("reversed axis: got %v, want (1, -1, 0)", got)
	}
}

func TestLineRotationFixesAxisPoints(t *testing.T) {
	for _, axis := range rotationAxes {
		m := emit(t, LineRotation{P1: axis.p1, P2: axis.p2, Angle: 73})
		for _, s := range []float32{0, 0.5, 1, 2} {
			p := axis.p1.Add(axis.p2.Sub(axis.p1).Scale(s))
			if got := m.TransformPoint(p); !near(got, p) {
				t.Errorf("%s: axis point %v moved to %v", axis.name, p, got)
			}
		}
	}
}

func TestLineRotationPrimitiveCount(t *testing.T) {
	for _, axis := range rotationAxes {
		var rec Recorder
		if err := (LineRotation{P1: axis.p1, P2: axis.p2, Angle: 45}).Emit(&rec); err != nil {
			t.Fatal(err)
		}
		if len(rec.Ops) > 7 {
			t.Errorf("%s: %d primitives, want at most 7", axis.name, len(rec.Ops))
		}
	}

	var rec Recorder
	_ = LineRotation{P1: math.Vec3{}, P2: math.Vec3{X: 1}, Angle: 45}.Emit(&rec)
	if len(rec.Ops) != 3 {
		t.Errorf("X-aligned axis: %d primitives, want 3", len(rec.Ops))
	}
}

func TestPlaneReflection(t *testing.T) {
	tests := []struct {
		name     string
		point, n math.Vec3
		in, want math.Vec3
	}{
		{"normal along X", math.Vec3{X: 2}, math.Vec3{X: -3}, math.Vec3{X: 3, Y: 1, Z: 1}, math.Vec3{X: 1, Y: 1, Z: 1}},
		{"normal along Z", math.Vec3{Z: 1}, math.Vec3{Z: 2}, math.Vec3{X: 1, Y: 1, Z: 3}, math.Vec3{X: 1, Y: 1, Z: -1}},
		{"normal along Y", math.Vec3{}, math.Vec3{Y: 1}, math.Vec3{X: 1, Y: 2, Z: 3}, math.Vec3{X: 1, Y: -2, Z: 3}},
		{"diagonal", math.Vec3{}, math.Vec3{X: 1, Y: 1}, math.Vec3{X: 1}, math.Vec3{Y: -1}},
		{"oblique through offset point", math.Vec3{X: 1, Y: 1, Z: 1}, math.Vec3{X: 1, Y: 1, Z: 1}, math.Vec3{}, math.Vec3{X: 2, Y: 2, Z: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := emit(t, PlaneReflection{Point: tt.point, Normal: tt.n})
			if got := m.TransformPoint(tt.in); !near(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if got := m.TransformPoint(tt.point); !near(got, tt.point) {
				t.Errorf("plane point moved to %v", got)
			}
			if twice := m.Mul(m); !matNear(twice, math.Identity()) {
				t.Errorf("reflection is not an involution: %v", twice)
			}
		})
	}
}

func TestPlaneReflectionTwiceOnStack(t *testing.T) {
	s := NewStack()
	_ = s.PushAndApply(Translation{Offset: math.Vec3{X: 1, Y: -2, Z: 0.5}})
	_ = s.PushAndApply(LineRotation{P1: math.Vec3{}, P2: math.Vec3{X: 1, Y: 1, Z: 0}, Angle: 40})
	before := s.Current()

	plane := PlaneReflection{Point: math.Vec3{X: 0.3, Y: 2, Z: -1}, Normal: math.Vec3{X: -1, Y: 0.5, Z: 2}}
	_ = s.PushAndApply(plane)
	_ = s.PushAndApply(plane)

	if !matNear(s.Current(), before) {
		t.Error("reflecting twice across the same plane changed the transform")
	}
}

func TestShearOps(t *testing.T) {
	tests := []struct {
		axis  Axis
		scale math.Vec3
	}{
		{AxisX, math.Vec3{X: 1, Y: 2, Z: 3}},
		{AxisY, math.Vec3{X: 2, Y: 1, Z: 3}},
		{AxisZ, math.Vec3{X: 2, Y: 3, Z: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.axis.String(), func(t *testing.T) {
			var rec Recorder
			if err := (Shear{Axis: tt.axis, F1: 2, F2: 3}).Emit(&rec); err != nil {
				t.Fatal(err)
			}
			want := []Op{
				{Kind: OpRotate, Angle: -45, Axis: AxisZ},
				{Kind: OpScale, V: tt.scale},
			}
			if len(rec.Ops) != len(want) {
				t.Fatalf("got %d ops, want %d", len(rec.Ops), len(want))
			}
			for i := range want {
				if rec.Ops[i] != want[i] {
					t.Errorf("op %d: got %s, want %s", i, rec.Ops[i], want[i])
				}
			}
		})
	}
}

func TestDegenerateCommandsLeaveStackUnchanged(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want error
	}{
		{"coincident axis points", LineRotation{P1: math.Vec3{X: 1, Y: 1, Z: 1}, P2: math.Vec3{X: 1, Y: 1, Z: 1}, Angle: 30}, ErrDegenerateAxis},
		{"zero plane normal", PlaneReflection{Point: math.Vec3{X: 1}}, ErrDegeneratePlane},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStack()
			_ = s.PushAndApply(Translation{Offset: math.Vec3{X: 1}})
			before := s.Current()

			err := s.PushAndApply(tt.cmd)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if s.Depth() != 2 || s.Current() != before {
				t.Error("rejected command modified the stack")
			}

			var rec Recorder
			_ = tt.cmd.Emit(&rec)
			if len(rec.Ops) != 0 {
				t.Errorf("rejected command emitted %d ops", len(rec.Ops))
			}
		})
	}
}

func TestStackComposesInObjectSpace(t *testing.T) {
	s := NewStack()
	_ = s.PushAndApply(Translation{Offset: math.Vec3{X: 1}})
	_ = s.PushAndApply(Scaling{Factors: math.Vec3{X: 2, Y: 2, Z: 2}})

	// The later scale acts before the earlier translation.
	if got := s.Current().TransformPoint(math.Vec3{X: 1}); !near(got, math.Vec3{X: 3}) {
		t.Errorf("got %v, want (3, 0, 0)", got)
	}
}

func TestStackUndo(t *testing.T) {
	s := NewStack()
	if s.Depth() != 1 || s.Current() != math.Identity() {
		t.Fatal("new stack should hold only the identity")
	}

	if s.Undo() {
		t.Error("undo on the bottom entry should report false")
	}
	if s.Depth() != 1 || s.Current() != math.Identity() {
		t.Error("undo on the bottom entry changed the stack")
	}

	_ = s.PushAndApply(Translation{Offset: math.Vec3{X: 1, Y: 2, Z: 3}})
	prior := s.Current()
	_ = s.PushAndApply(LineRotation{P1: math.Vec3{}, P2: math.Vec3{Y: 1}, Angle: 45})
	if s.Depth() != 3 {
		t.Fatalf("expected depth 3, got %d", s.Depth())
	}

	if !s.Undo() {
		t.Error("undo should report true")
	}
	if s.Current() != prior {
		t.Error("undo did not restore the prior transform exactly")
	}
	s.Undo()
	s.Undo()
	if s.Depth() != 1 || s.Current() != math.Identity() {
		t.Error("stack should be back at the identity")
	}
}

func TestCommandStrings(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{Translation{Offset: math.Vec3{X: 1, Y: 2, Z: 3}}, "translate (1, 2, 3)"},
		{Scaling{Factors: math.Vec3{X: 0.5, Y: 1, Z: 2}}, "scale (0.5, 1, 2)"},
		{Shear{Axis: AxisY, F1: 2, F2: 3}, "shear Y (2, 3)"},
	}

	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}
