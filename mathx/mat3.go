package mathx

import "github.com/chewxy/math32"

// Mat3 is a 3x3 matrix, column-major, index = col*3+row.
type Mat3 [9]float32

func Mat3Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

func (m Mat3) At(row, col int) float32      { return m[col*3+row] }
func (m *Mat3) Set(row, col int, v float32) { m[col*3+row] = v }

func (a Mat3) Mul(b Mat3) Mat3 {
	var out Mat3
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			var sum float32
			for k := 0; k < 3; k++ {
				sum += a.At(row, k) * b.At(k, col)
			}
			out.Set(row, col, sum)
		}
	}
	return out
}

func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		X: m.At(0, 0)*v.X + m.At(0, 1)*v.Y + m.At(0, 2)*v.Z,
		Y: m.At(1, 0)*v.X + m.At(1, 1)*v.Y + m.At(1, 2)*v.Z,
		Z: m.At(2, 0)*v.X + m.At(2, 1)*v.Y + m.At(2, 2)*v.Z,
	}
}

func (m Mat3) Transpose() Mat3 {
	var out Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			out.Set(col, row, m.At(row, col))
		}
	}
	return out
}

func (m Mat3) Determinant() float32 {
	a, b, c := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	d, e, f := m.At(1, 0), m.At(1, 1), m.At(1, 2)
	g, h, i := m.At(2, 0), m.At(2, 1), m.At(2, 2)
	return a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
}

// Inverse leaves m unchanged when |det| < Epsilon, same degeneracy policy
// as Mat4.Inverse.
func (m Mat3) Inverse() Mat3 {
	det := m.Determinant()
	if math32.Abs(det) < Epsilon {
		return m
	}
	a, b, c := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	d, e, f := m.At(1, 0), m.At(1, 1), m.At(1, 2)
	g, h, i := m.At(2, 0), m.At(2, 1), m.At(2, 2)
	invDet := 1.0 / det

	var out Mat3
	out.Set(0, 0, (e*i-f*h)*invDet)
	out.Set(0, 1, (c*h-b*i)*invDet)
	out.Set(0, 2, (b*f-c*e)*invDet)
	out.Set(1, 0, (f*g-d*i)*invDet)
	out.Set(1, 1, (a*i-c*g)*invDet)
	out.Set(1, 2, (c*d-a*f)*invDet)
	out.Set(2, 0, (d*h-e*g)*invDet)
	out.Set(2, 1, (b*g-a*h)*invDet)
	out.Set(2, 2, (a*e-b*d)*invDet)
	return out
}

// Mat4ToMat3 extracts the upper-left 3x3 block (used to build the normal
// matrix from a modelview matrix).
func Mat4ToMat3(m Mat4) Mat3 {
	var out Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			out.Set(row, col, m.At(row, col))
		}
	}
	return out
}

func (m Mat3) ToMat4() Mat4 {
	out := Mat4Identity()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			out.Set(row, col, m.At(row, col))
		}
	}
	return out
}
