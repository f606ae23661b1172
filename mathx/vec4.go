package mathx

type Vec4 struct {
	X, Y, Z, W float32
}

func NewVec4(x, y, z, w float32) Vec4 { return Vec4{X: x, Y: y, Z: z, W: w} }

func (v Vec4) Add(o Vec4) Vec4    { return Vec4{v.X + o.X, v.Y + o.Y, v.Z + o.Z, v.W + o.W} }
func (v Vec4) Sub(o Vec4) Vec4    { return Vec4{v.X - o.X, v.Y - o.Y, v.Z - o.Z, v.W - o.W} }
func (v Vec4) Mul(s float32) Vec4 { return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s} }
func (v Vec4) MulVec(o Vec4) Vec4 { return Vec4{v.X * o.X, v.Y * o.Y, v.Z * o.Z, v.W * o.W} }
func (v Vec4) Dot(o Vec4) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z + v.W*o.W }

func (v Vec4) Equals(o Vec4) bool {
	return Equals(v.X, o.X) && Equals(v.Y, o.Y) && Equals(v.Z, o.Z) && Equals(v.W, o.W)
}

func (v Vec4) Lerp(o Vec4, t float32) Vec4 { return v.Add(o.Sub(v).Mul(t)) }

func (v Vec4) ToVec3() Vec3 { return Vec3{X: v.X, Y: v.Y, Z: v.Z} }

// ToVec3DivW performs the perspective divide; a zero (or near-zero) w
// leaves the vector unchanged rather than dividing by zero.
func (v Vec4) ToVec3DivW() Vec3 {
	if Equals(v.W, 0) {
		return v.ToVec3()
	}
	inv := 1.0 / v.W
	return Vec3{X: v.X * inv, Y: v.Y * inv, Z: v.Z * inv}
}
