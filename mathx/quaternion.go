package mathx

import "github.com/chewxy/math32"

// Quaternion is stored (w, x, y, z). Unit length is not enforced at
// construction; call Normalize explicitly.
type Quaternion struct {
	W, X, Y, Z float32
}

func QuatIdentity() Quaternion { return Quaternion{W: 1} }

func QuatFromAxisAngle(axis Vec3, angle float32) Quaternion {
	half := angle * 0.5
	s := math32.Sin(half)
	return Quaternion{W: math32.Cos(half), X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s}
}

func (q Quaternion) LengthSqr() float32 { return q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z }
func (q Quaternion) Length() float32    { return math32.Sqrt(q.LengthSqr()) }

func (q Quaternion) Normalize() Quaternion {
	l := q.Length()
	if l <= Epsilon {
		return q
	}
	inv := 1.0 / l
	return Quaternion{q.W * inv, q.X * inv, q.Y * inv, q.Z * inv}
}

func (q Quaternion) Conjugate() Quaternion { return Quaternion{q.W, -q.X, -q.Y, -q.Z} }

func (q Quaternion) Inverse() Quaternion {
	ls := q.LengthSqr()
	if ls <= Epsilon {
		return q
	}
	c := q.Conjugate()
	inv := 1.0 / ls
	return Quaternion{c.W * inv, c.X * inv, c.Y * inv, c.Z * inv}
}

func (a Quaternion) Mul(b Quaternion) Quaternion {
	return Quaternion{
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
		X: a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		Y: a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		Z: a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
	}
}

// RotateVector rotates v by q*v*q^-1, computed via the quaternion-vector
// shortcut rather than a full matrix build.
func (q Quaternion) RotateVector(v Vec3) Vec3 {
	qv := Vec3{q.X, q.Y, q.Z}
	uv := qv.Cross(v)
	uuv := qv.Cross(uv)
	return v.Add(uv.Mul(2 * q.W)).Add(uuv.Mul(2))
}

func (q Quaternion) ToMat4() Mat4 {
	x2, y2, z2 := q.X+q.X, q.Y+q.Y, q.Z+q.Z
	xx, yy, zz := q.X*x2, q.Y*y2, q.Z*z2
	xy, xz, yz := q.X*y2, q.X*z2, q.Y*z2
	wx, wy, wz := q.W*x2, q.W*y2, q.W*z2

	m := Mat4Identity()
	m.Set(0, 0, 1-(yy+zz))
	m.Set(0, 1, xy-wz)
	m.Set(0, 2, xz+wy)
	m.Set(1, 0, xy+wz)
	m.Set(1, 1, 1-(xx+zz))
	m.Set(1, 2, yz-wx)
	m.Set(2, 0, xz-wy)
	m.Set(2, 1, yz+wx)
	m.Set(2, 2, 1-(xx+yy))
	return m
}

func (a Quaternion) Lerp(b Quaternion, t float32) Quaternion {
	return Quaternion{
		W: a.W + (b.W-a.W)*t,
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}.Normalize()
}

func (a Quaternion) Slerp(b Quaternion, t float32) Quaternion {
	dot := a.W*b.W + a.X*b.X + a.Y*b.Y + a.Z*b.Z
	if dot < 0 {
		b = Quaternion{-b.W, -b.X, -b.Y, -b.Z}
		dot = -dot
	}
	if dot > 0.9995 {
		return a.Lerp(b, t)
	}
	theta0 := math32.Acos(Clampf(dot, -1, 1))
	theta := theta0 * t
	sinTheta0 := math32.Sin(theta0)
	s0 := math32.Cos(theta) - dot*math32.Sin(theta)/sinTheta0
	s1 := math32.Sin(theta) / sinTheta0
	return Quaternion{
		W: a.W*s0 + b.W*s1,
		X: a.X*s0 + b.X*s1,
		Y: a.Y*s0 + b.Y*s1,
		Z: a.Z*s0 + b.Z*s1,
	}
}
