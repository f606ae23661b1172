package mathx

import "testing"

func TestQuaternionIdentityRotateVector(t *testing.T) {
	q := QuatIdentity()
	v := NewVec3(1, 2, 3)
	if r := q.RotateVector(v); !r.Equals(v) {
		t.Errorf("identity quaternion must not change v, got %v", r)
	}
}

func TestQuaternionAxisAngleMatchesMat4Rotation(t *testing.T) {
	q := QuatFromAxisAngle(Vec3Up, PiH)
	v := NewVec3(1, 0, 0)
	byQuat := q.RotateVector(v)
	byMat := Mat4RotationAxis(Vec3Up, PiH).MulDir(v)
	if !byQuat.Equals(byMat) {
		t.Errorf("quaternion and matrix rotation should agree: %v vs %v", byQuat, byMat)
	}
}

func TestQuaternionNormalize(t *testing.T) {
	q := Quaternion{W: 2, X: 0, Y: 0, Z: 0}
	n := q.Normalize()
	if !Equals(n.Length(), 1) {
		t.Errorf("expected unit quaternion, got length %v", n.Length())
	}
}

func TestQuaternionStorageOrder(t *testing.T) {
	q := QuatFromAxisAngle(Vec3Front, Pi)
	if !Equals(q.W, 0) {
		t.Errorf("expected w ~= 0 for a pi rotation, got %v", q.W)
	}
}
