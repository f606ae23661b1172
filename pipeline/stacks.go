package pipeline

import "terminalgl/mathx"

// matrixStack is a fixed-capacity ordered sequence of 4x4 matrices with a
// top index. It always holds at least one element (the identity, at
// construction); Push duplicates the top, Pop discards it. Overflow and
// underflow are warnings handled by the caller (Context), not here.
type matrixStack struct {
	data []mathx.Mat4
	cap  int
}

func newMatrixStack(capacity int) *matrixStack {
	s := &matrixStack{data: make([]mathx.Mat4, 1, capacity), cap: capacity}
	s.data[0] = mathx.Mat4Identity()
	return s
}

func (s *matrixStack) top() mathx.Mat4      { return s.data[len(s.data)-1] }
func (s *matrixStack) setTop(m mathx.Mat4)  { s.data[len(s.data)-1] = m }
func (s *matrixStack) full() bool           { return len(s.data) >= s.cap }
func (s *matrixStack) empty() bool          { return len(s.data) <= 1 }

func (s *matrixStack) push() bool {
	if s.full() {
		return false
	}
	s.data = append(s.data, s.top())
	return true
}

func (s *matrixStack) pop() bool {
	if s.empty() {
		return false
	}
	s.data = s.data[:len(s.data)-1]
	return true
}

// stackCapacity matches "tens, not thousands": 32 for modelview (nested
// transform hierarchies go deep), 4 for the rest.
func stackCapacity(m MatrixMode) int {
	if m == ModeModelview {
		return 32
	}
	return 4
}

func (c *Context) stack(m MatrixMode) *matrixStack {
	switch m {
	case ModeProjection:
		return c.stacks[ModeProjection]
	case ModeModelview:
		return c.stacks[ModeModelview]
	case ModeNormal:
		return c.stacks[ModeNormal]
	case ModeTexture:
		return c.stacks[ModeTexture]
	case ModeLight:
		return c.stacks[ModeLight]
	default:
		return nil
	}
}

// MatrixMode sets the selector that subsequent transform operations
// affect. An invalid mode emits a warning and leaves the selector
// unchanged.
func (c *Context) MatrixMode(m MatrixMode) {
	if !m.valid() {
		c.emit(SeverityWarning, "invalid matrix mode")
		return
	}
	c.matrixMode = m
}

func (c *Context) currentStack() *matrixStack { return c.stack(c.matrixMode) }

// Push duplicates the top of the selected stack. Overflow is a warning
// and a no-op.
func (c *Context) Push() bool {
	if ok := c.currentStack().push(); !ok {
		c.emit(SeverityWarning, "matrix stack overflow")
		return false
	}
	return true
}

// Pop discards the top of the selected stack. Underflow (pop at size 1)
// is a warning and a no-op.
func (c *Context) Pop() bool {
	if ok := c.currentStack().pop(); !ok {
		c.emit(SeverityWarning, "matrix stack underflow")
		return false
	}
	return true
}

// LoadIdentity writes identity into the top of the selected stack.
func (c *Context) LoadIdentity() {
	c.currentStack().setTop(mathx.Mat4Identity())
}

// Top returns the top matrix of the selected stack.
func (c *Context) Top() mathx.Mat4 { return c.currentStack().top() }

// Translate post-multiplies the top of the selected stack by a
// translation.
func (c *Context) Translate(t mathx.Vec3) {
	s := c.currentStack()
	s.setTop(s.top().Mul(mathx.Mat4Translation(t)))
}

// Rotate post-multiplies the top of the selected stack by a rotation
// about axis. When ModeModelview is selected, the normal-stack top is
// regenerated as transpose(inverse(modelview_top)).
func (c *Context) Rotate(angle float32, axis mathx.Vec3) {
	s := c.currentStack()
	s.setTop(s.top().Mul(mathx.Mat4RotationAxis(axis.Normalize(), angle)))
	c.refreshNormalIfModelview()
}

// Scale post-multiplies the top of the selected stack by a scale. When
// ModeModelview is selected, the normal-stack top is regenerated.
func (c *Context) Scale(s mathx.Vec3) {
	st := c.currentStack()
	st.setTop(st.top().Mul(mathx.Mat4Scale(s)))
	c.refreshNormalIfModelview()
}

func (c *Context) refreshNormalIfModelview() {
	if c.matrixMode != ModeModelview {
		return
	}
	mv := c.stacks[ModeModelview].top()
	c.stacks[ModeNormal].setTop(mv.Inverse().Transpose())
}

// CopyTransform overwrites the top of dst with the top of src.
func (c *Context) CopyTransform(dst, src MatrixMode) {
	if !dst.valid() || !src.valid() {
		c.emit(SeverityWarning, "invalid matrix mode in CopyTransform")
		return
	}
	c.stack(dst).setTop(c.stack(src).top())
}

// Perspective overwrites the top of the projection stack with a
// perspective projection. aspect is divided by the configured width
// multiplier to correct for the non-square character cell.
func (c *Context) Perspective(fovy, aspect, near, far float32) {
	corrected := aspect / c.widthMultiplier
	c.stacks[ModeProjection].setTop(mathx.Perspective(fovy, corrected, near, far))
}

// Ortho overwrites the top of the projection stack with an orthographic
// projection. width is multiplied by the configured width multiplier
// (the asymmetric counterpart of Perspective's division).
func (c *Context) Ortho(width, height, near, far float32) {
	c.stacks[ModeProjection].setTop(mathx.Orthographic(width*c.widthMultiplier, height, near, far))
}

// LookAt writes a right-handed view matrix into the top of the
// modelview stack and returns it.
func (c *Context) LookAt(eye, target, up mathx.Vec3) mathx.Mat4 {
	m := mathx.LookAt(eye, target, up)
	c.stacks[ModeModelview].setTop(m)
	return m
}

// WidthMultiplier returns the caller-tunable character-cell aspect
// correction factor (default 2.0).
func (c *Context) WidthMultiplier() float32 { return c.widthMultiplier }

// SetWidthMultiplier sets it.
func (c *Context) SetWidthMultiplier(v float32) { c.widthMultiplier = v }
