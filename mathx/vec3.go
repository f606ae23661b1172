package mathx

import "github.com/chewxy/math32"

type Vec3 struct {
	X, Y, Z float32
}

var (
	Vec3Zero  = Vec3{0, 0, 0}
	Vec3One   = Vec3{1, 1, 1}
	Vec3Up    = Vec3{0, 1, 0}
	Vec3Down  = Vec3{0, -1, 0}
	Vec3Right = Vec3{1, 0, 0}
	Vec3Left  = Vec3{-1, 0, 0}
	Vec3Front = Vec3{0, 0, 1}
	Vec3Back  = Vec3{0, 0, -1}
)

func NewVec3(x, y, z float32) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3    { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3    { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Mul(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) MulVec(o Vec3) Vec3 { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }
func (v Vec3) Div(s float32) Vec3 { return v.Mul(1.0 / s) }
func (v Vec3) Negate() Vec3       { return Vec3{-v.X, -v.Y, -v.Z} }

func (v Vec3) Dot(o Vec3) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) LengthSqr() float32 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }
func (v Vec3) Length() float32    { return math32.Sqrt(v.LengthSqr()) }

// Normalize is a no-op on a zero-length (or near-zero-length) vector; this
// is the documented degeneracy policy, not an error.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l <= Epsilon {
		return v
	}
	return v.Mul(1.0 / l)
}

func (v Vec3) Distance(o Vec3) float32    { return v.Sub(o).Length() }
func (v Vec3) DistanceSqr(o Vec3) float32 { return v.Sub(o).LengthSqr() }

func (v Vec3) Lerp(o Vec3, t float32) Vec3 { return v.Add(o.Sub(v).Mul(t)) }

func (v Vec3) Equals(o Vec3) bool {
	return Equals(v.X, o.X) && Equals(v.Y, o.Y) && Equals(v.Z, o.Z)
}

func (v Vec3) Inverse() Vec3 {
	return Vec3{invOrZero(v.X), invOrZero(v.Y), invOrZero(v.Z)}
}

func invOrZero(x float32) float32 {
	if math32.Abs(x) <= Epsilon {
		return 0
	}
	return 1.0 / x
}

func (v Vec3) Clamp(lo, hi Vec3) Vec3 {
	return Vec3{Clampf(v.X, lo.X, hi.X), Clampf(v.Y, lo.Y, hi.Y), Clampf(v.Z, lo.Z, hi.Z)}
}

// RotateAxis rotates v about axis (assumed unit length) by angle radians
// using Rodrigues' rotation formula.
func (v Vec3) RotateAxis(axis Vec3, angle float32) Vec3 {
	s, c := math32.Sin(angle), math32.Cos(angle)
	return v.Mul(c).Add(axis.Cross(v).Mul(s)).Add(axis.Mul(axis.Dot(v) * (1 - c)))
}

func (v Vec3) ToVec4(w float32) Vec4 { return Vec4{X: v.X, Y: v.Y, Z: v.Z, W: w} }
