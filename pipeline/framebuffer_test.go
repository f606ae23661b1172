package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFramebufferInitAllocatesBothGrids(t *testing.T) {
	c, _ := newTestContext(4, 6)
	fb := c.Framebuffer()
	w, h := fb.Dims()
	assert.Equal(t, 6, w)
	assert.Equal(t, 4, h)
	assert.Len(t, fb.grids[0], w*h)
	assert.Len(t, fb.grids[1], w*h)
}

func TestFramebufferAspectRatio(t *testing.T) {
	c, _ := newTestContext(5, 10)
	assert.InDelta(t, 2.0, c.Framebuffer().AspectRatio(), 1e-6)
}

func TestFramebufferClearWritesColorAndDepth(t *testing.T) {
	c, _ := newTestContext(3, 3)
	fb := c.Framebuffer()
	fb.ClearColor(Color{R: 0.25, A: 1})
	fb.ClearDepth(0.75)
	fb.Enable(DepthTest)
	fb.Clear(ColorBit | DepthBit)
	for _, p := range fb.grids[fb.backIdx] {
		assert.Equal(t, Color{R: 0.25, A: 1}, p.Color)
		assert.InDelta(t, 0.75, p.Depth, 1e-6)
	}
}

func TestFramebufferClearDepthSkippedWithoutDepthTestEnabled(t *testing.T) {
	c, _ := newTestContext(3, 3)
	fb := c.Framebuffer()
	fb.ClearDepth(0.75)
	fb.Clear(DepthBit) // DepthTest not enabled
	for _, p := range fb.grids[fb.backIdx] {
		assert.Zero(t, p.Depth)
	}
}

func TestCompareDepthVariants(t *testing.T) {
	c, _ := newTestContext(2, 2)
	fb := c.Framebuffer()

	fb.DepthFunc(DepthLess)
	assert.True(t, fb.CompareDepth(0.1, 0.2))
	assert.False(t, fb.CompareDepth(0.2, 0.1))

	fb.DepthFunc(DepthLEqual)
	assert.True(t, fb.CompareDepth(0.2, 0.2))

	fb.DepthFunc(DepthEqual)
	assert.True(t, fb.CompareDepth(0.5, 0.5))
	assert.False(t, fb.CompareDepth(0.5, 0.6))

	fb.DepthFunc(DepthGEqual)
	assert.True(t, fb.CompareDepth(0.5, 0.5))
	assert.True(t, fb.CompareDepth(0.6, 0.5))

	fb.DepthFunc(DepthGreater)
	assert.True(t, fb.CompareDepth(0.6, 0.5))
	assert.False(t, fb.CompareDepth(0.4, 0.5))

	fb.DepthFunc(DepthNotEqual)
	assert.True(t, fb.CompareDepth(0.4, 0.5))
	assert.False(t, fb.CompareDepth(0.5, 0.5))

	fb.DepthFunc(DepthAlways)
	assert.True(t, fb.CompareDepth(999, -999))
}

func TestGetSetPixelOutOfRangeEmitsErrorAndNoOp(t *testing.T) {
	var gotSeverity Severity
	var gotMsg string
	c := NewContext(Options{Sink: func(sev Severity, msg string) { gotSeverity, gotMsg = sev, msg }})
	s := newFakeSurface(2, 2)
	c.Init(s, Tile1x1)
	fb := c.Framebuffer()

	fb.SetPixel(100, 100, Pixel{Color: Color{R: 1}}, SideBack, c)
	assert.Equal(t, SeverityError, gotSeverity)
	assert.NotEmpty(t, gotMsg)

	p := fb.GetPixel(100, 100, SideBack, c)
	assert.Equal(t, Pixel{}, p)
}

func TestSwapFlipsFrontAndBackAndIsIdempotentUnderRepeatedCalls(t *testing.T) {
	c, _ := newTestContext(2, 2)
	fb := c.Framebuffer()
	fb.SetTimingBudget(1, 10)
	fb.ClearColor(Color{R: 1, A: 1})
	fb.Clear(ColorBit)

	fb.Swap(c)
	// Allow the present goroutine's rendezvous to settle.
	time.Sleep(5 * time.Millisecond)
	front := fb.grids[1-fb.backIdx]
	for _, p := range front {
		assert.Equal(t, Color{R: 1, A: 1}, p.Color)
	}

	// Swapping again with an unchanged back buffer must not panic or
	// corrupt state.
	assert.NotPanics(t, func() { fb.Swap(c) })
	front = fb.grids[1-fb.backIdx]
	for _, p := range front {
		assert.Equal(t, Color{R: 1, A: 1}, p.Color)
	}
	c.Free()
}

func TestViewportResizeIsDeferredUntilSwap(t *testing.T) {
	c, _ := newTestContext(4, 4)
	fb := c.Framebuffer()
	fb.SetTimingBudget(1, 10)
	beforeW, beforeH := fb.Dims()

	fb.Viewport(8, 8, c)
	// Not applied yet.
	w, h := fb.Dims()
	assert.Equal(t, beforeW, w)
	assert.Equal(t, beforeH, h)

	fb.Swap(c)
	time.Sleep(5 * time.Millisecond)
	w, h = fb.Dims()
	assert.Equal(t, 8, w)
	assert.Equal(t, 8, h)
	c.Free()
}

func TestFreeIsIdempotent(t *testing.T) {
	c, _ := newTestContext(2, 2)
	fb := c.Framebuffer()
	assert.NotPanics(t, func() {
		fb.Free()
		fb.Free()
	})
}
