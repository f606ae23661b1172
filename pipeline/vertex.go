package pipeline

import "terminalgl/mathx"

// Color is an RGBA color; components are expected in [0,1] once written to
// a pixel, but are not clamped on construction.
type Color struct {
	R, G, B, A float32
}

func (c Color) add(o Color) Color { return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A} }
func (c Color) mul(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A * s}
}
func (c Color) mulColor(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}
func (c Color) clamp01() Color {
	return Color{
		R: mathx.Clampf(c.R, 0, 1),
		G: mathx.Clampf(c.G, 0, 1),
		B: mathx.Clampf(c.B, 0, 1),
		A: mathx.Clampf(c.A, 0, 1),
	}
}

func lerpColor(a, b Color, t float32) Color {
	return Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

// Vertex is a caller-submitted, world-space vertex. Which of Color, Normal
// and Texcoord are meaningful is dictated by the Attr tag the draw call is
// made with; attributes outside that tag are ignored.
type Vertex struct {
	Position mathx.Vec3
	Color    Color
	Normal   mathx.Vec3
	Texcoord mathx.Vec2
}

// attrSlot is the per-vertex attribute payload the rasterizer
// interpolates for shading: color, normal, or a zero value, chosen by
// the VAO configuration. Texcoord is carried but never sampled;
// texturing is a reserved slot only.
type attrSlot struct {
	color    Color
	normal   mathx.Vec3
	texcoord mathx.Vec2
}

func lerpAttr(a, b attrSlot, t float32) attrSlot {
	return attrSlot{
		color:    lerpColor(a.color, b.color, t),
		normal:   a.normal.Lerp(b.normal, t),
		texcoord: a.texcoord.Lerp(b.texcoord, t),
	}
}

// vtx bundles everything the clipper and rasterizer carry per vertex:
// clip-space position (pre-divide), object-space and view-space position
// (view is what clipping and culling test against), view-space normal,
// and the interpolated attribute slot.
type vtx struct {
	clip   mathx.Vec4
	object mathx.Vec3
	view   mathx.Vec3
	normal mathx.Vec3
	attr   attrSlot
}

func lerpVtx(a, b vtx, t float32) vtx {
	return vtx{
		clip:   a.clip.Lerp(b.clip, t),
		object: a.object.Lerp(b.object, t),
		view:   a.view.Lerp(b.view, t),
		normal: a.normal.Lerp(b.normal, t),
		attr:   lerpAttr(a.attr, b.attr, t),
	}
}

// triangle is the internal clip/raster unit: three vertices plus the VAO
// tag describing which attribute is meaningful in attrSlot.
type triangle struct {
	v       [3]vtx
	attrTag VertexAttr
}
