package geometry

import (
	"math"
	"testing"
)

func TestLookRotationForward(t *testing.T) {
	directions := []Vector3{
		NewVector3(0, 0, 1),
		NewVector3(0, 0, -1),
		NewVector3(1, 0, 0),
		NewVector3(1, 2, 3),
		NewVector3(0, 1, 0), // parallel to up
	}

	for _, dir := range directions {
		q := LookRotation(dir, Up)
		got := q.Rotate(Forward)
		expected := dir.Normalize()
		if !got.ApproxEqual(expected, 1e-9) {
			t.Errorf("LookRotation(%v) failed: expected forward %v, got %v", dir, expected, got)
		}
	}
}

func TestLookRotationKeepsUp(t *testing.T) {
	q := LookRotation(NewVector3(1, 0, 0), Up)
	up := q.Rotate(Up)
	if !up.ApproxEqual(Up, 1e-9) {
		t.Errorf("LookRotation up failed: expected %v, got %v", Up, up)
	}
}

func TestQuaternionMulConjugate(t *testing.T) {
	q := AxisAngle(NewVector3(0, 1, 0), math.Pi/2)
	v := q.Rotate(NewVector3(0, 0, 1))
	if !v.ApproxEqual(NewVector3(1, 0, 0), 1e-9) {
		t.Errorf("AxisAngle rotate failed: expected (1,0,0), got %v", v)
	}

	back := q.Conjugate().Rotate(v)
	if !back.ApproxEqual(NewVector3(0, 0, 1), 1e-9) {
		t.Errorf("Conjugate failed: expected (0,0,1), got %v", back)
	}

	twice := q.Mul(q).Rotate(NewVector3(0, 0, 1))
	if !twice.ApproxEqual(NewVector3(0, 0, -1), 1e-9) {
		t.Errorf("Mul failed: expected (0,0,-1), got %v", twice)
	}
}
