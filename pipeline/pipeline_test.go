package pipeline

import "terminalgl/mathx"

// fakeSurface is a minimal Surface for exercising Framebuffer/Context
// without a real terminal. It records the last blit it received.
type fakeSurface struct {
	rows, cols int
	lastPixels []byte
	lastStride int
	blits      int
	renders    int
	refreshes  int
}

func newFakeSurface(rows, cols int) *fakeSurface { return &fakeSurface{rows: rows, cols: cols} }

func (s *fakeSurface) Dims() (rows, cols int) { return s.rows, s.cols }

func (s *fakeSurface) BlitRGBA(pixels []byte, rowStride int, tileMode TileMode, lenX, lenY int) error {
	s.lastPixels = pixels
	s.lastStride = rowStride
	s.blits++
	return nil
}

func (s *fakeSurface) Render() error { s.renders++; return nil }

func (s *fakeSurface) Refresh() error { s.refreshes++; return nil }

// newTestContext builds a Context with a fakeSurface of the given
// character-cell size already attached at Tile1x1, ready to draw into.
func newTestContext(rows, cols int) (*Context, *fakeSurface) {
	c := NewContext(Options{})
	s := newFakeSurface(rows, cols)
	if !c.Init(s, Tile1x1) {
		panic("test setup: framebuffer init failed")
	}
	return c, s
}

// setupOrtho points the camera down -Z with an orthographic projection
// covering [-1,1]x[-1,1] and near/far [0.1, 10], so callers can submit
// vertices directly in view space without worrying about perspective.
func setupOrtho(c *Context) {
	c.SetWidthMultiplier(1) // keep the NDC mapping symmetric for test math
	c.MatrixMode(ModeProjection)
	c.LoadIdentity()
	c.Ortho(2, 2, 0.1, 10)
	c.MatrixMode(ModeModelview)
	c.LoadIdentity()
}

func v(x, y, z float32) Vertex { return Vertex{Position: mathx.NewVec3(x, y, z)} }
