package camera

import (
	"testing"

	"github.com/Faultbox/offview/pkg/math"
)

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera(60)
	c.FitToBounds(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 3, Y: 1, Z: 1})

	if c.Center != (math.Vec3{X: 1}) {
		t.Errorf("center: got %v, want (1, 0, 0)", c.Center)
	}

	// The bounding sphere must fit: distance * sin(fov/2) >= radius.
	radius := float32(math.Vec3{X: 4, Y: 2, Z: 2}.Length() / 2)
	if c.Distance*0.5 < radius {
		t.Errorf("distance %f too small for radius %f", c.Distance, radius)
	}

	// Looking down -Z from +Z.
	pos := c.Position()
	if pos.X != 1 || pos.Y != 0 || pos.Z <= 0 {
		t.Errorf("unexpected position %v", pos)
	}
}

func TestFitToBoundsDegenerateBox(t *testing.T) {
	c := NewOrbitCamera(45)
	p := math.Vec3{X: 2, Y: 2, Z: 2}
	c.FitToBounds(p, p)

	if c.Distance <= 0 {
		t.Errorf("expected positive distance, got %f", c.Distance)
	}
}

func TestViewMatrixMapsCenterOntoAxis(t *testing.T) {
	c := NewOrbitCamera(45)
	c.FitToBounds(math.Vec3{}, math.Vec3{X: 2, Y: 2, Z: 2})
	c.HandleDrag(20, -15)

	eye := c.ViewMatrix().TransformPoint(c.Center)
	if abs(eye.X) > 1e-4 || abs(eye.Y) > 1e-4 {
		t.Errorf("center should be on the view axis, got %v", eye)
	}
	if d := -eye.Z - c.Distance; abs(d) > 1e-4 {
		t.Errorf("center should be %f in front of the eye, got %v", c.Distance, eye)
	}
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera(45)
	c.HandleDrag(0, 10000)
	if c.RotationX != c.MaxPitch {
		t.Errorf("pitch: got %f, want %f", c.RotationX, c.MaxPitch)
	}
	c.HandleDrag(0, -10000)
	if c.RotationX != c.MinPitch {
		t.Errorf("pitch: got %f, want %f", c.RotationX, c.MinPitch)
	}
}

func TestHandleZoomClamps(t *testing.T) {
	c := NewOrbitCamera(45)
	for i := 0; i < 200; i++ {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("zoom in: got %f, want %f", c.Distance, c.MinDistance)
	}
	for i := 0; i < 500; i++ {
		c.HandleZoom(-1)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("zoom out: got %f, want %f", c.Distance, c.MaxDistance)
	}
}

func TestClipPlanesBracketCenter(t *testing.T) {
	c := NewOrbitCamera(45)
	near, far := c.ClipPlanes()
	if near <= 0 || near >= c.Distance || far <= c.Distance {
		t.Errorf("clip planes %f..%f do not bracket distance %f", near, far, c.Distance)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
