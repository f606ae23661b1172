package mathx

import "github.com/chewxy/math32"

// Mat2 is a 2x2 matrix, column-major, index = col*2+row.
type Mat2 [4]float32

func Mat2Identity() Mat2 { return Mat2{1, 0, 0, 1} }

func (m Mat2) At(row, col int) float32      { return m[col*2+row] }
func (m *Mat2) Set(row, col int, v float32) { m[col*2+row] = v }

func (a Mat2) Mul(b Mat2) Mat2 {
	var out Mat2
	for col := 0; col < 2; col++ {
		for row := 0; row < 2; row++ {
			out.Set(row, col, a.At(row, 0)*b.At(0, col)+a.At(row, 1)*b.At(1, col))
		}
	}
	return out
}

func (m Mat2) MulVec2(v Vec2) Vec2 {
	return Vec2{
		X: m.At(0, 0)*v.X + m.At(0, 1)*v.Y,
		Y: m.At(1, 0)*v.X + m.At(1, 1)*v.Y,
	}
}

func (m Mat2) Transpose() Mat2 {
	return Mat2{m.At(0, 0), m.At(1, 0), m.At(0, 1), m.At(1, 1)}
}

func (m Mat2) Determinant() float32 {
	return m.At(0, 0)*m.At(1, 1) - m.At(0, 1)*m.At(1, 0)
}

func (m Mat2) Inverse() Mat2 {
	det := m.Determinant()
	if math32.Abs(det) < Epsilon {
		return m
	}
	invDet := 1.0 / det
	return Mat2{
		m.At(1, 1) * invDet, -m.At(1, 0) * invDet,
		-m.At(0, 1) * invDet, m.At(0, 0) * invDet,
	}
}
