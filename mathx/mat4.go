package mathx

import "github.com/chewxy/math32"

// Mat4 is a 4x4 matrix stored column-major in a flat array, matching the
// layout the rasterizer expects when it walks projection-matrix elements
// directly (see NearFarFromProjection). Element (row, col) lives at
// index col*4+row.
type Mat4 [16]float32

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func Mat4Zero() Mat4 { return Mat4{} }

func (m Mat4) At(row, col int) float32      { return m[col*4+row] }
func (m *Mat4) Set(row, col int, v float32) { m[col*4+row] = v }

func (m Mat4) Col(c int) Vec4 {
	return Vec4{m[c*4+0], m[c*4+1], m[c*4+2], m[c*4+3]}
}

func (m Mat4) Equals(o Mat4) bool {
	for i := range m {
		if !Equals(m[i], o[i]) {
			return false
		}
	}
	return true
}

func (a Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		bc := b.Col(col)
		for row := 0; row < 4; row++ {
			out.Set(row, col,
				a.At(row, 0)*bc.X+a.At(row, 1)*bc.Y+a.At(row, 2)*bc.Z+a.At(row, 3)*bc.W)
		}
	}
	return out
}

func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: m.At(0, 0)*v.X + m.At(0, 1)*v.Y + m.At(0, 2)*v.Z + m.At(0, 3)*v.W,
		Y: m.At(1, 0)*v.X + m.At(1, 1)*v.Y + m.At(1, 2)*v.Z + m.At(1, 3)*v.W,
		Z: m.At(2, 0)*v.X + m.At(2, 1)*v.Y + m.At(2, 2)*v.Z + m.At(2, 3)*v.W,
		W: m.At(3, 0)*v.X + m.At(3, 1)*v.Y + m.At(3, 2)*v.Z + m.At(3, 3)*v.W,
	}
}

// MulPoint transforms a point (implicit w=1) and returns xyz (no divide).
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return m.MulVec4(v.ToVec4(1)).ToVec3()
}

// MulDir transforms a direction (implicit w=0); translation has no effect.
func (m Mat4) MulDir(v Vec3) Vec3 {
	return m.MulVec4(v.ToVec4(0)).ToVec3()
}

func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out.Set(col, row, m.At(row, col))
		}
	}
	return out
}

func (m Mat4) Determinant() float32 {
	a00, a01, a02, a03 := m.At(0, 0), m.At(0, 1), m.At(0, 2), m.At(0, 3)
	a10, a11, a12, a13 := m.At(1, 0), m.At(1, 1), m.At(1, 2), m.At(1, 3)
	a20, a21, a22, a23 := m.At(2, 0), m.At(2, 1), m.At(2, 2), m.At(2, 3)
	a30, a31, a32, a33 := m.At(3, 0), m.At(3, 1), m.At(3, 2), m.At(3, 3)

	b00 := a00*a11 - a01*a10
	b01 := a00*a12 - a02*a10
	b02 := a00*a13 - a03*a10
	b03 := a01*a12 - a02*a11
	b04 := a01*a13 - a03*a11
	b05 := a02*a13 - a03*a12
	b06 := a20*a31 - a21*a30
	b07 := a20*a32 - a22*a30
	b08 := a20*a33 - a23*a30
	b09 := a21*a32 - a22*a31
	b10 := a21*a33 - a23*a31
	b11 := a22*a33 - a23*a32

	return b00*b11 - b01*b10 + b02*b09 + b03*b08 - b04*b07 + b05*b06
}

// Inverse uses cofactor expansion via the 2x2 sub-determinant trick. When
// |det| < Epsilon the matrix is left unchanged and no error is raised: the
// caller keeps using a still-valid (if now-stale) matrix rather than being
// handed garbage.
func (m Mat4) Inverse() Mat4 {
	a00, a01, a02, a03 := m.At(0, 0), m.At(0, 1), m.At(0, 2), m.At(0, 3)
	a10, a11, a12, a13 := m.At(1, 0), m.At(1, 1), m.At(1, 2), m.At(1, 3)
	a20, a21, a22, a23 := m.At(2, 0), m.At(2, 1), m.At(2, 2), m.At(2, 3)
	a30, a31, a32, a33 := m.At(3, 0), m.At(3, 1), m.At(3, 2), m.At(3, 3)

	b00 := a00*a11 - a01*a10
	b01 := a00*a12 - a02*a10
	b02 := a00*a13 - a03*a10
	b03 := a01*a12 - a02*a11
	b04 := a01*a13 - a03*a11
	b05 := a02*a13 - a03*a12
	b06 := a20*a31 - a21*a30
	b07 := a20*a32 - a22*a30
	b08 := a20*a33 - a23*a30
	b09 := a21*a32 - a22*a31
	b10 := a21*a33 - a23*a31
	b11 := a22*a33 - a23*a32

	det := b00*b11 - b01*b10 + b02*b09 + b03*b08 - b04*b07 + b05*b06
	if math32.Abs(det) < Epsilon {
		return m
	}
	invDet := 1.0 / det

	var out Mat4
	out.Set(0, 0, (a11*b11-a12*b10+a13*b09)*invDet)
	out.Set(0, 1, (a02*b10-a01*b11-a03*b09)*invDet)
	out.Set(0, 2, (a31*b05-a32*b04+a33*b03)*invDet)
	out.Set(0, 3, (a22*b04-a21*b05-a23*b03)*invDet)
	out.Set(1, 0, (a12*b08-a10*b11-a13*b07)*invDet)
	out.Set(1, 1, (a00*b11-a02*b08+a03*b07)*invDet)
	out.Set(1, 2, (a32*b02-a30*b05-a33*b01)*invDet)
	out.Set(1, 3, (a20*b05-a22*b02+a23*b01)*invDet)
	out.Set(2, 0, (a10*b10-a11*b08+a13*b06)*invDet)
	out.Set(2, 1, (a01*b08-a00*b10-a03*b06)*invDet)
	out.Set(2, 2, (a30*b04-a31*b02+a33*b00)*invDet)
	out.Set(2, 3, (a21*b02-a20*b04-a23*b00)*invDet)
	out.Set(3, 0, (a11*b07-a10*b09-a12*b06)*invDet)
	out.Set(3, 1, (a00*b09-a01*b07+a02*b06)*invDet)
	out.Set(3, 2, (a31*b01-a30*b03-a32*b00)*invDet)
	out.Set(3, 3, (a20*b03-a21*b01+a22*b00)*invDet)
	return out
}

func Mat4Translation(t Vec3) Mat4 {
	m := Mat4Identity()
	m.Set(0, 3, t.X)
	m.Set(1, 3, t.Y)
	m.Set(2, 3, t.Z)
	return m
}

func Mat4Scale(s Vec3) Mat4 {
	m := Mat4Identity()
	m.Set(0, 0, s.X)
	m.Set(1, 1, s.Y)
	m.Set(2, 2, s.Z)
	return m
}

func Mat4RotationX(angle float32) Mat4 {
	s, c := math32.Sin(angle), math32.Cos(angle)
	m := Mat4Identity()
	m.Set(1, 1, c)
	m.Set(1, 2, -s)
	m.Set(2, 1, s)
	m.Set(2, 2, c)
	return m
}

func Mat4RotationY(angle float32) Mat4 {
	s, c := math32.Sin(angle), math32.Cos(angle)
	m := Mat4Identity()
	m.Set(0, 0, c)
	m.Set(0, 2, s)
	m.Set(2, 0, -s)
	m.Set(2, 2, c)
	return m
}

func Mat4RotationZ(angle float32) Mat4 {
	s, c := math32.Sin(angle), math32.Cos(angle)
	m := Mat4Identity()
	m.Set(0, 0, c)
	m.Set(0, 1, -s)
	m.Set(1, 0, s)
	m.Set(1, 1, c)
	return m
}

// Mat4RotationAxis builds a rotation matrix about an arbitrary (unit) axis
// via Rodrigues' formula, laid out column-major.
func Mat4RotationAxis(axis Vec3, angle float32) Mat4 {
	s, c := math32.Sin(angle), math32.Cos(angle)
	t := 1 - c
	x, y, z := axis.X, axis.Y, axis.Z

	m := Mat4Identity()
	m.Set(0, 0, t*x*x+c)
	m.Set(0, 1, t*x*y-s*z)
	m.Set(0, 2, t*x*z+s*y)
	m.Set(1, 0, t*x*y+s*z)
	m.Set(1, 1, t*y*y+c)
	m.Set(1, 2, t*y*z-s*x)
	m.Set(2, 0, t*x*z-s*y)
	m.Set(2, 1, t*y*z+s*x)
	m.Set(2, 2, t*z*z+c)
	return m
}

// Perspective builds a right-handed perspective projection with NDC z in
// [-1,1], so near/far recovery in NearFarFromProjection works out to
// m[14]/(m[10]-1) and m[14]/(m[10]+1).
func Perspective(fovy, aspect, near, far float32) Mat4 {
	f := 1.0 / math32.Tan(fovy/2)
	m := Mat4Zero()
	m.Set(0, 0, f/aspect)
	m.Set(1, 1, f)
	m.Set(2, 2, (far+near)/(near-far))
	m.Set(2, 3, (2*far*near)/(near-far))
	m.Set(3, 2, -1)
	return m
}

// Orthographic builds a right-handed orthographic projection with NDC z in
// [-1,1], centered at the origin with the given width/height extents.
func Orthographic(width, height, near, far float32) Mat4 {
	m := Mat4Identity()
	m.Set(0, 0, 2/width)
	m.Set(1, 1, 2/height)
	m.Set(2, 2, -2/(far-near))
	m.Set(2, 3, -(far+near)/(far-near))
	return m
}

func LookAt(eye, target, up Vec3) Mat4 {
	f := target.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	m := Mat4Identity()
	m.Set(0, 0, s.X)
	m.Set(0, 1, s.Y)
	m.Set(0, 2, s.Z)
	m.Set(1, 0, u.X)
	m.Set(1, 1, u.Y)
	m.Set(1, 2, u.Z)
	m.Set(2, 0, -f.X)
	m.Set(2, 1, -f.Y)
	m.Set(2, 2, -f.Z)
	m.Set(0, 3, -s.Dot(eye))
	m.Set(1, 3, -u.Dot(eye))
	m.Set(2, 3, f.Dot(eye))
	return m
}

// NearFarFromProjection recovers the near/far plane distances from a
// projection matrix built by Perspective or Orthographic, reading the
// z-row elements directly. The two forms are told apart by the bottom
// row: a perspective matrix carries -1 at (3,2) where an orthographic
// one carries 0.
func NearFarFromProjection(proj Mat4) (near, far float32) {
	m10 := proj.At(2, 2)
	m14 := proj.At(2, 3)
	if Equals(proj.At(3, 2), 0) {
		// Orthographic: m10 = -2/(f-n), m14 = -(f+n)/(f-n).
		if math32.Abs(m10) > Epsilon {
			near = (m14 + 1) / m10
			far = (m14 - 1) / m10
		}
		return near, far
	}
	if math32.Abs(m10-1) > Epsilon {
		near = m14 / (m10 - 1)
	}
	if math32.Abs(m10+1) > Epsilon {
		far = m14 / (m10 + 1)
	}
	return near, far
}
