package pipeline

import (
	"terminalgl/mathx"

	"github.com/chewxy/math32"
)

// windowTransform maps a post-divide NDC position to window space: x
// flips nothing, y flips (NDC up is window down), z remaps from [-1,1]
// to [0,1].
func windowTransform(ndc mathx.Vec3, w, h int) (x, y, z float32) {
	fw, fh := float32(w), float32(h)
	x = (fw / 2) * (ndc.X + 1)
	y = (fh / 2) * (-ndc.Y + 1)
	z = (ndc.Z + 1) / 2
	return
}

// buildTriangle assembles the internal clip/raster triangle for one
// draw-call face: applies the current modelview/projection/normal
// matrices to three submitted vertices. Attributes outside the VAO tag
// are zeroed, never read.
func (c *Context) buildTriangle(v0, v1, v2 Vertex, attr VertexAttr) triangle {
	mv := c.stacks[ModeModelview].top()
	proj := c.stacks[ModeProjection].top()
	normalMat := mathx.Mat4ToMat3(c.stacks[ModeNormal].top())

	build := func(v Vertex) vtx {
		view := mv.MulPoint(v.Position)
		clip := proj.MulVec4(view.ToVec4(1))
		out := vtx{clip: clip, object: v.Position, view: view}
		if attr.hasColor() {
			out.attr.color = v.Color
		}
		if attr.hasNormal() {
			out.normal = normalMat.MulVec3(v.Normal)
			out.attr.normal = out.normal
		}
		if attr.hasTexcoord() {
			out.attr.texcoord = v.Texcoord
		}
		return out
	}
	return triangle{attrTag: attr, v: [3]vtx{build(v0), build(v1), build(v2)}}
}

// faceVisible applies the culling test against the triangle's view-space
// positions and outward face normal. Returns false when the face should
// be discarded.
func (c *Context) faceVisible(tri triangle) bool {
	if c.cullFace == CullNone || !c.fb.enabled(CullFaceEnable) {
		return true
	}
	if c.cullFace == CullFrontAndBack {
		return false
	}
	p0, p1, p2 := tri.v[0].view, tri.v[1].view, tri.v[2].view
	n := p0.Sub(p1).Cross(p0.Sub(p2)).Normalize()
	centroid := p0.Add(p1).Add(p2).Mul(1.0 / 3.0)
	toEye := centroid.Negate().Normalize() // eye is at the view-space origin
	facing := n.Dot(toEye)

	cullBackWhenCCWFacing := (c.winding == WindingCCW && c.cullFace == CullBack) ||
		(c.winding == WindingCW && c.cullFace == CullFront)
	if cullBackWhenCCWFacing {
		return facing >= 0
	}
	return facing < 0
}

// DrawTriangle transforms, culls, clips, rasterizes and shades a single
// triangle against the current framebuffer.
func (c *Context) DrawTriangle(v0, v1, v2 Vertex, attr VertexAttr) {
	if c.fb == nil || c.fb.grids[c.fb.backIdx] == nil {
		c.emit(SeverityError, "draw call with no initialized framebuffer")
		return
	}
	if !attr.valid() {
		c.emit(SeverityWarning, "invalid vertex attribute configuration")
		return
	}
	if attr.hasTexcoord() {
		c.emit(SeverityInfo, "texcoord attribute is reserved; texturing is not applied")
	}
	tri := c.buildTriangle(v0, v1, v2, attr)
	if !c.faceVisible(tri) {
		return
	}

	near, far := mathx.NearFarFromProjection(c.stacks[ModeProjection].top())
	clipped := clipNearFar(tri, near, far, nil)
	for _, t := range clipped {
		c.rasterizeTriangle(t)
	}
}

// DrawLine transforms, clips and rasterizes a single line segment. Lines
// carry only position and color; they are never lit or textured. An
// endpoint with a zero-value color takes the current raster color.
func (c *Context) DrawLine(v0, v1 Vertex) {
	if c.fb == nil || c.fb.grids[c.fb.backIdx] == nil {
		c.emit(SeverityError, "draw call with no initialized framebuffer")
		return
	}
	mv := c.stacks[ModeModelview].top()
	proj := c.stacks[ModeProjection].top()

	build := func(v Vertex) vtx {
		view := mv.MulPoint(v.Position)
		clip := proj.MulVec4(view.ToVec4(1))
		col := v.Color
		if col == (Color{}) {
			col = c.rasterColor
		}
		return vtx{clip: clip, object: v.Position, view: view, attr: attrSlot{color: col}}
	}
	a, b := build(v0), build(v1)
	near, far := mathx.NearFarFromProjection(proj)
	clipped := clipLineNearFar(a, b, near, far)
	if clipped == nil {
		return
	}
	c.rasterizeLine(clipped[0], clipped[1])
}

// DrawPoint transforms and rasterizes a single point.
func (c *Context) DrawPoint(v Vertex) {
	if c.fb == nil || c.fb.grids[c.fb.backIdx] == nil {
		c.emit(SeverityError, "draw call with no initialized framebuffer")
		return
	}
	mv := c.stacks[ModeModelview].top()
	proj := c.stacks[ModeProjection].top()
	view := mv.MulPoint(v.Position)
	clip := proj.MulVec4(view.ToVec4(1))
	ndc := clip.ToVec3DivW()
	if ndc.Z < -1 || ndc.Z > 1 {
		return
	}
	w, h := c.fb.effW, c.fb.effH
	x, y, z := windowTransform(ndc, w, h)
	i, j := int(x), int(y)
	if i < 0 || i >= w || j < 0 || j >= h {
		return
	}
	col := v.Color
	if col == (Color{}) {
		col = c.rasterColor
	}
	c.depthTestAndWrite(j, i, z, col)
}

func (c *Context) depthTestAndWrite(row, col int, z float32, col32 Color) {
	idx, ok := c.fb.pixelIndex(row, col)
	if !ok {
		return
	}
	back := c.fb.grids[c.fb.backIdx]
	if c.fb.enabled(DepthTest) {
		if !c.fb.CompareDepth(z, back[idx].Depth) {
			return
		}
	}
	back[idx].Color = col32
	if c.fb.enabled(DepthTest) && c.fb.depthMask {
		back[idx].Depth = z
	}
}

// clipLineNearFar clips a 2-vertex segment's view-space z against the
// same near/far slab the triangle clipper uses, returning the clipped
// endpoints (nil if the whole segment is outside).
func clipLineNearFar(a, b vtx, near, far float32) []vtx {
	lo, hi := -far, -near
	clipEnd := func(keep, drop vtx, dropAbove bool) vtx {
		var boundary float32
		if dropAbove {
			boundary = hi
		} else {
			boundary = lo
		}
		t := (boundary - keep.view.Z) / (drop.view.Z - keep.view.Z)
		return lerpVtx(keep, drop, t)
	}
	aIn := a.view.Z >= lo-mathx.Epsilon && a.view.Z <= hi+mathx.Epsilon
	bIn := b.view.Z >= lo-mathx.Epsilon && b.view.Z <= hi+mathx.Epsilon
	if !aIn && !bIn {
		return nil
	}
	if aIn && bIn {
		return []vtx{a, b}
	}
	if aIn {
		if b.view.Z > hi {
			return []vtx{a, clipEnd(a, b, true)}
		}
		return []vtx{a, clipEnd(a, b, false)}
	}
	if a.view.Z > hi {
		return []vtx{clipEnd(b, a, true), b}
	}
	return []vtx{clipEnd(b, a, false), b}
}

func (c *Context) rasterizeLine(a, b vtx) {
	w, h := c.fb.effW, c.fb.effH
	ax, ay, az := windowTransform(a.clip.ToVec3DivW(), w, h)
	bx, by, bz := windowTransform(b.clip.ToVec3DivW(), w, h)

	minX, maxX := clampRange(mathx.Clampf(minf(ax, bx), 0, float32(w-1)), mathx.Clampf(maxf(ax, bx), 0, float32(w-1)))
	minY, maxY := clampRange(mathx.Clampf(minf(ay, by), 0, float32(h-1)), mathx.Clampf(maxf(ay, by), 0, float32(h-1)))

	const lineBias = 0.5
	dx, dy := bx-ax, by-ay
	lenSqr := dx*dx + dy*dy

	for j := minY; j <= maxY; j++ {
		for i := minX; i <= maxX; i++ {
			px, py := float32(i)+0.5, float32(j)+0.5
			var t float32
			if lenSqr > mathx.Epsilon {
				t = ((px-ax)*dx + (py-ay)*dy) / lenSqr
				t = mathx.Clampf(t, 0, 1)
			}
			cx, cy := ax+t*dx, ay+t*dy
			ddx, ddy := px-cx, py-cy
			dist := math32.Sqrt(ddx*ddx + ddy*ddy)
			if !mathx.Within(dist, 0, lineBias) {
				continue
			}
			z := az + t*(bz-az)
			if z < 0 || z > 1 {
				continue
			}
			col := lerpColor(a.attr.color, b.attr.color, t)
			c.depthTestAndWrite(j, i, z, col)
		}
	}
}

func (c *Context) rasterizeTriangle(tri triangle) {
	w, h := c.fb.effW, c.fb.effH
	var wx, wy, wz [3]float32
	for k := 0; k < 3; k++ {
		ndc := tri.v[k].clip.ToVec3DivW()
		wx[k], wy[k], wz[k] = windowTransform(ndc, w, h)
	}

	minX := mathx.Clampf(minf3(wx[0], wx[1], wx[2]), 0, float32(w-1))
	maxX := mathx.Clampf(maxf3(wx[0], wx[1], wx[2]), 0, float32(w-1))
	minY := mathx.Clampf(minf3(wy[0], wy[1], wy[2]), 0, float32(h-1))
	maxY := mathx.Clampf(maxf3(wy[0], wy[1], wy[2]), 0, float32(h-1))
	ix0, ix1 := int(minX), int(maxX)
	iy0, iy1 := int(minY), int(maxY)

	// z^-1 = -1/w_clip, the perspective-correct interpolation weight.
	var invZ [3]float32
	for k := 0; k < 3; k++ {
		wc := tri.v[k].clip.W
		if mathx.Equals(wc, 0) {
			invZ[k] = 1
		} else {
			invZ[k] = -1.0 / wc
		}
	}

	denom := (wy[1]-wy[2])*(wx[0]-wx[2]) + (wx[2]-wx[1])*(wy[0]-wy[2])
	degenerate := mathx.Equals(denom, 0)

	for j := iy0; j <= iy1; j++ {
		for i := ix0; i <= ix1; i++ {
			px, py := float32(i)+0.5, float32(j)+0.5
			var b0, b1, b2 float32
			if degenerate {
				b0, b1, b2 = 1, 0, 0
			} else {
				b0 = ((wy[1]-wy[2])*(px-wx[2]) + (wx[2]-wx[1])*(py-wy[2])) / denom
				b1 = ((wy[2]-wy[0])*(px-wx[2]) + (wx[0]-wx[2])*(py-wy[2])) / denom
				b2 = 1 - b0 - b1
			}
			if b0 < -mathx.Epsilon || b1 < -mathx.Epsilon || b2 < -mathx.Epsilon {
				continue
			}
			if b0+b1+b2 > 1+mathx.Epsilon {
				continue
			}

			zInterp := b0*invZ[0] + b1*invZ[1] + b2*invZ[2]
			// zInterp is the normalizer for the perspective-correct
			// attribute lerp in interpolateFragment; a zero sum leaves
			// nothing to divide by, so the pixel is skipped.
			if zInterp == 0 {
				continue
			}

			// The depth compare key is window-space z, interpolated
			// linearly in screen space.
			windowZ := b0*wz[0] + b1*wz[1] + b2*wz[2]
			if windowZ < 0 || windowZ > 1 {
				continue
			}

			frag := interpolateFragment(tri, b0, b1, b2, invZ, c.shadeModel)
			col := c.shadeFragment(frag)
			c.depthTestAndWrite(j, i, windowZ, col)
		}
	}
}

// fragment carries the per-pixel inputs the shader stage needs.
type fragment struct {
	position mathx.Vec3 // view-space, perspective-correct (or face mean under flat)
	normal   mathx.Vec3 // view-space, perspective-correct and renormalized (or face mean)
	color    Color
	texcoord mathx.Vec2
}

func interpolateFragment(tri triangle, b0, b1, b2 float32, invZ [3]float32, shade ShadeModel) fragment {
	if shade == ShadeFlat {
		mean := func(a, b, c mathx.Vec3) mathx.Vec3 { return a.Add(b).Add(c).Mul(1.0 / 3.0) }
		return fragment{
			position: mean(tri.v[0].view, tri.v[1].view, tri.v[2].view),
			normal:   mean(tri.v[0].normal, tri.v[1].normal, tri.v[2].normal).Normalize(),
			color:    meanColor(tri.v[0].attr.color, tri.v[1].attr.color, tri.v[2].attr.color),
			texcoord: tri.v[0].attr.texcoord.Add(tri.v[1].attr.texcoord).Add(tri.v[2].attr.texcoord).Mul(1.0 / 3.0),
		}
	}

	wsum := b0*invZ[0] + b1*invZ[1] + b2*invZ[2]
	persp3 := func(a, b, c mathx.Vec3) mathx.Vec3 {
		v := a.Mul(b0 * invZ[0]).Add(b.Mul(b1 * invZ[1])).Add(c.Mul(b2 * invZ[2]))
		return v.Mul(1.0 / wsum)
	}
	perspColor := func(a, b, c Color) Color {
		r := a.mul(b0 * invZ[0]).add(b.mul(b1 * invZ[1])).add(c.mul(b2 * invZ[2]))
		return r.mul(1.0 / wsum)
	}
	perspVec2 := func(a, b, c mathx.Vec2) mathx.Vec2 {
		v := a.Mul(b0 * invZ[0]).Add(b.Mul(b1 * invZ[1])).Add(c.Mul(b2 * invZ[2]))
		return v.Mul(1.0 / wsum)
	}

	return fragment{
		position: persp3(tri.v[0].view, tri.v[1].view, tri.v[2].view),
		normal:   persp3(tri.v[0].normal, tri.v[1].normal, tri.v[2].normal).Normalize(),
		color:    perspColor(tri.v[0].attr.color, tri.v[1].attr.color, tri.v[2].attr.color),
		texcoord: perspVec2(tri.v[0].attr.texcoord, tri.v[1].attr.texcoord, tri.v[2].attr.texcoord),
	}
}

func meanColor(a, b, c Color) Color { return a.add(b).add(c).mul(1.0 / 3.0) }

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
func minf3(a, b, c float32) float32 { return minf(a, minf(b, c)) }
func maxf3(a, b, c float32) float32 { return maxf(a, maxf(b, c)) }
func clampRange(lo, hi float32) (int, int) {
	l, h := int(lo), int(hi)
	if h < l {
		h = l
	}
	return l, h
}
