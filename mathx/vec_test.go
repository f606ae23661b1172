package mathx

import "testing"

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	if result, expected := v1.Add(v2), NewVec3(5, 7, 9); result != expected {
		t.Errorf("Add: expected %v, got %v", expected, result)
	}
	if result, expected := v2.Sub(v1), NewVec3(3, 3, 3); result != expected {
		t.Errorf("Sub: expected %v, got %v", expected, result)
	}
	if result, expected := v1.Mul(2), NewVec3(2, 4, 6); result != expected {
		t.Errorf("Mul: expected %v, got %v", expected, result)
	}
	if dot, expected := v1.Dot(v2), float32(32); dot != expected {
		t.Errorf("Dot: expected %v, got %v", expected, dot)
	}
	if cross, expected := Vec3Right.Cross(Vec3Up), Vec3Front; !cross.Equals(expected) {
		t.Errorf("Cross: expected %v, got %v", expected, cross)
	}
}

func TestVec3NormalizeZeroLength(t *testing.T) {
	zero := Vec3Zero
	if n := zero.Normalize(); n != zero {
		t.Errorf("Normalize of zero-length vector must be a no-op, got %v", n)
	}

	v := NewVec3(3, 0, 4)
	n := v.Normalize()
	if l := n.Length(); !Equals(l, 1) {
		t.Errorf("expected unit length, got %v", l)
	}
}

func TestFloatEquals(t *testing.T) {
	if !Equals(1.0000001, 1.0000002) {
		t.Error("values within epsilon should compare equal")
	}
	if Equals(1.0, 1.1) {
		t.Error("values outside epsilon should not compare equal")
	}
}

func TestWithinAbsoluteTolerance(t *testing.T) {
	if !Within(10, 10.3, 0.5) {
		t.Error("expected values within absolute delta to compare close")
	}
	if Within(10, 11, 0.5) {
		t.Error("expected values outside absolute delta to compare not close")
	}
}

func TestVec2Basics(t *testing.T) {
	a := NewVec2(1, 2)
	b := NewVec2(3, 4)
	if got, want := a.Add(b), NewVec2(4, 6); got != want {
		t.Errorf("Add: expected %v, got %v", want, got)
	}
	if got, want := a.Dot(b), float32(11); got != want {
		t.Errorf("Dot: expected %v, got %v", want, got)
	}
}
