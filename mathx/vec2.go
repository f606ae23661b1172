package mathx

import "github.com/chewxy/math32"

type Vec2 struct {
	X, Y float32
}

var Vec2Zero = Vec2{0, 0}

func NewVec2(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2    { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2    { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) MulVec(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }
func (v Vec2) Div(s float32) Vec2 { return v.Mul(1.0 / s) }
func (v Vec2) Dot(o Vec2) float32 { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Negate() Vec2       { return Vec2{-v.X, -v.Y} }

func (v Vec2) LengthSqr() float32 { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Length() float32    { return math32.Sqrt(v.LengthSqr()) }

func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l <= Epsilon {
		return v
	}
	return v.Mul(1.0 / l)
}

func (v Vec2) Distance(o Vec2) float32    { return v.Sub(o).Length() }
func (v Vec2) DistanceSqr(o Vec2) float32 { return v.Sub(o).LengthSqr() }

func (v Vec2) Lerp(o Vec2, t float32) Vec2 { return v.Add(o.Sub(v).Mul(t)) }

func (v Vec2) Equals(o Vec2) bool { return Equals(v.X, o.X) && Equals(v.Y, o.Y) }

func (v Vec2) Clamp(lo, hi Vec2) Vec2 {
	return Vec2{Clampf(v.X, lo.X, hi.X), Clampf(v.Y, lo.Y, hi.Y)}
}
