package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestMulOrder(t *testing.T) {
	// Scale first, then translate.
	m := Translate(10, 0, 0).Mul(Scale(2, 2, 2))
	got := m.TransformPoint(Vec3{1, 1, 1})
	want := Vec3{12, 2, 2}
	if got != want {
		t.Errorf("T*S applied to (1,1,1): got %v, want %v", got, want)
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestScale(t *testing.T) {
	m := Scale(2, 3, 4)

	if m[0] != 2 || m[5] != 3 || m[10] != 4 {
		t.Errorf("Scale diagonal: got (%f, %f, %f), want (2, 3, 4)", m[0], m[5], m[10])
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformPoint(Vec3{1, 2, 3})

	expected := Vec3{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestAxisRotations(t *testing.T) {
	quarter := float32(math.Pi / 2)
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"x turns y into z", RotateX(quarter), Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{"y turns z into x", RotateY(quarter), Vec3{0, 0, 1}, Vec3{1, 0, 0}},
		{"y turns x into -z", RotateY(quarter), Vec3{1, 0, 0}, Vec3{0, 0, -1}},
		{"z turns x into y", RotateZ(quarter), Vec3{1, 0, 0}, Vec3{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.in)
			if !vecNear(got, tt.want, 1e-5) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalMatrixNonUniformScale(t *testing.T) {
	// A plane tilted 45 degrees keeps its normal perpendicular after the scale.
	m := Scale(2, 1, 1)
	surface := Vec3{1, 1, 0}
	normal := Vec3{1, -1, 0}

	scaledSurface := m.Mat3().MulVec3(surface)
	scaledNormal := m.NormalMatrix().MulVec3(normal)
	if d := scaledSurface.Dot(scaledNormal); abs(d) > 1e-6 {
		t.Errorf("normal no longer perpendicular, dot = %f", d)
	}
}

func TestNormalMatrixRotationIsRotation(t *testing.T) {
	m := RotateX(0.4).Mul(RotateZ(1.1))
	got := m.NormalMatrix()
	want := m.Mat3()
	for i := range got {
		if abs(got[i]-want[i]) > 1e-5 {
			t.Fatalf("element %d: got %f, want %f", i, got[i], want[i])
		}
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(Radians(45), 1, 0.1, 100)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAt(t *testing.T) {
	m := LookAt(Vec3{0, 0, 5}, Vec3{}, Vec3{0, 1, 0})

	// The center ends up straight ahead of the eye.
	got := m.TransformPoint(Vec3{})
	if !vecNear(got, Vec3{0, 0, -5}, 1e-5) {
		t.Errorf("LookAt center in eye space: got %v, want (0, 0, -5)", got)
	}
}

func vecNear(a, b Vec3, eps float32) bool {
	return abs(a.X-b.X) <= eps && abs(a.Y-b.Y) <= eps && abs(a.Z-b.Z) <= eps
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
