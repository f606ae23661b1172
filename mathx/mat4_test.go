package mathx

import "testing"

func TestMat4IdentityInverse(t *testing.T) {
	id := Mat4Identity()
	inv := id.Inverse()
	if !inv.Equals(id) {
		t.Errorf("inverse of identity should be identity, got %v", inv)
	}
}

func TestMat4InverseRoundTrip(t *testing.T) {
	m := Mat4Translation(NewVec3(1, 2, 3)).Mul(Mat4RotationY(0.7)).Mul(Mat4Scale(NewVec3(2, 3, 4)))
	product := m.Mul(m.Inverse())
	if !product.Equals(Mat4Identity()) {
		t.Errorf("M * inverse(M) should be ~identity, got %v", product)
	}
}

func TestMat4InverseSingularIsNoOp(t *testing.T) {
	singular := Mat4Zero()
	inv := singular.Inverse()
	if !inv.Equals(singular) {
		t.Errorf("inverse of a singular matrix must be a no-op, got %v", inv)
	}
}

func TestMat4RotationOrthonormal(t *testing.T) {
	r := Mat4RotationAxis(Vec3Up, PiQ)
	product := r.Mul(r.Transpose())
	if !product.Equals(Mat4Identity()) {
		t.Errorf("R * transpose(R) should be ~identity, got %v", product)
	}
	if det := r.Determinant(); !Equals(det, 1) {
		t.Errorf("expected det(R) ~= 1, got %v", det)
	}
}

func TestNearFarFromProjectionRoundTrip(t *testing.T) {
	proj := Perspective(PiH, 1, 0.1, 100)
	near, far := NearFarFromProjection(proj)
	if !Equals(near, 0.1) {
		t.Errorf("expected near ~= 0.1, got %v", near)
	}
	if !Equals(far, 100) {
		t.Errorf("expected far ~= 100, got %v", far)
	}
}

func TestNearFarFromOrthographicRoundTrip(t *testing.T) {
	proj := Orthographic(2, 2, 0.1, 10)
	near, far := NearFarFromProjection(proj)
	if !Equals(near, 0.1) {
		t.Errorf("expected near ~= 0.1, got %v", near)
	}
	if !Equals(far, 10) {
		t.Errorf("expected far ~= 10, got %v", far)
	}

	// A negative near plane is legal for orthographic projections.
	proj = Orthographic(1, 1, -1, 1)
	near, far = NearFarFromProjection(proj)
	if !Equals(near, -1) {
		t.Errorf("expected near ~= -1, got %v", near)
	}
	if !Equals(far, 1) {
		t.Errorf("expected far ~= 1, got %v", far)
	}
}

func TestMat4TranslationColumnMajor(t *testing.T) {
	m := Mat4Translation(NewVec3(1, 2, 3))
	p := m.MulPoint(Vec3Zero)
	if !p.Equals(NewVec3(1, 2, 3)) {
		t.Errorf("expected translated point (1,2,3), got %v", p)
	}
	d := m.MulDir(NewVec3(5, 5, 5))
	if !d.Equals(NewVec3(5, 5, 5)) {
		t.Errorf("translation must not affect directions, got %v", d)
	}
}
