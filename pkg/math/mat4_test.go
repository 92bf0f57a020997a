package math

import (
	"math"
	"testing"
)

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation lives in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformPoint([3]float32{1, 2, 3})

	expected := [3]float32{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestScaleTransform(t *testing.T) {
	m := Scale(2)
	result := m.TransformPoint([3]float32{1, 2, 3})

	expected := [3]float32{2, 4, 6}
	if result != expected {
		t.Errorf("TransformPoint with scale: got %v, want %v", result, expected)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2))
	result := m.TransformPoint([3]float32{1, 0, 0})

	// (1,0,0) rotates to approximately (0,0,-1)
	if abs(result[0]) > 0.001 || abs(result[1]) > 0.001 || abs(result[2]+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestLookAtOrigin(t *testing.T) {
	eye := Vec3{X: 0, Y: 0, Z: 10}
	center := Vec3{}
	up := Vec3{X: 0, Y: 1, Z: 0}

	view := LookAt(eye, center, up)

	// The eye itself maps to the view-space origin
	p := view.TransformPoint([3]float32{0, 0, 10})
	if abs(p[0]) > 0.001 || abs(p[1]) > 0.001 || abs(p[2]) > 0.001 {
		t.Errorf("eye should map to origin, got %v", p)
	}

	// The center sits 10 units down the view-space -Z axis
	c := view.TransformPoint([3]float32{0, 0, 0})
	if abs(c[0]) > 0.001 || abs(c[1]) > 0.001 || abs(c[2]+10) > 0.001 {
		t.Errorf("center should map to (0,0,-10), got %v", c)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := Perspective(float32(math.Pi/3), 16.0/9.0, 0.1, 100)

	// A point on the near plane maps to NDC z = -1
	near := proj.TransformPoint([3]float32{0, 0, -0.1})
	if abs(near[2]+1) > 0.001 {
		t.Errorf("near plane should map to z=-1, got %f", near[2])
	}

	// A point on the far plane maps to NDC z = +1
	far := proj.TransformPoint([3]float32{0, 0, -100})
	if abs(far[2]-1) > 0.001 {
		t.Errorf("far plane should map to z=+1, got %f", far[2])
	}
}
