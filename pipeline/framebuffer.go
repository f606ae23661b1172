package pipeline

import "terminalgl/mathx"

// Pixel is a single framebuffer cell: a color and a depth in window-space
// [0,1] (0 = near, 1 = far). Depth is only meaningful once written; a
// pixel's depth is only overwritten when depth masking is enabled and the
// depth comparison passes.
type Pixel struct {
	Color Color
	Depth float32
}

// Framebuffer is the double-buffered color+depth grid the rasterizer
// writes into and the swap/present protocol reads from. Width and height
// always match the last committed viewport; both grids exist or neither
// does (see Init/Viewport/Swap).
type Framebuffer struct {
	surface Surface
	tile    TileMode

	logicalW, logicalH int // last committed logical viewport
	effW, effH         int // logicalW/H scaled by the tile mode's cell size

	grids   [2][]Pixel
	backIdx int

	clearColor Color
	clearDepth float32
	enable     EnableFlag
	depthFn    DepthFunc
	depthMask  bool

	pendingResize      bool
	pendingW, pendingH int

	initialized bool
	freed       bool

	swapState // concurrency fields, see swap.go
}

// Init binds the framebuffer to the terminal collaborator's render
// surface and performs the first allocation at the surface's current
// dimensions, scaled by the given tile mode. Returns false (and emits an
// error) on allocation failure.
func (fb *Framebuffer) Init(surface Surface, tile TileMode, c *Context) bool {
	if fb.initialized {
		c.emit(SeverityWarning, "framebuffer already initialized")
		return true
	}
	fb.surface = surface
	fb.tile = tile
	rows, cols := surface.Dims()
	if !fb.Viewport(cols, rows, c) {
		return false
	}
	// Viewport only records a pending resize; Init applies it immediately
	// so the framebuffer is usable before the first Swap.
	if !fb.applyResize(c) {
		return false
	}
	fb.startPresentLoop(c)
	fb.initialized = true
	return true
}

// Viewport records a pending resize if (w,h) differs from the current
// logical dimensions; the resize is applied at the next Swap (or
// immediately, the first time, by Init).
func (fb *Framebuffer) Viewport(w, h int, c *Context) bool {
	if w <= 0 || h <= 0 {
		c.emit(SeverityError, "viewport dimensions must be positive")
		return false
	}
	if w == fb.logicalW && h == fb.logicalH && fb.grids[0] != nil {
		return true
	}
	fb.pendingResize = true
	fb.pendingW, fb.pendingH = w, h
	return true
}

func (fb *Framebuffer) applyResize(c *Context) bool {
	cols, rows := fb.tile.CellSize()
	effW, effH := fb.pendingW*cols, fb.pendingH*rows
	n := effW * effH
	var newGrids [2][]Pixel
	defer func() {
		if r := recover(); r != nil {
			c.emitf(SeverityError, "framebuffer allocation failed: %v", r)
		}
	}()
	newGrids[0] = make([]Pixel, n)
	newGrids[1] = make([]Pixel, n)

	fb.grids = newGrids
	fb.backIdx = 0
	fb.logicalW, fb.logicalH = fb.pendingW, fb.pendingH
	fb.effW, fb.effH = effW, effH
	fb.pendingResize = false
	if err := fb.surface.Refresh(); err != nil {
		c.emitf(SeverityError, "surface refresh failed: %v", err)
	}
	return true
}

// Init constructs a Framebuffer, binds it to the terminal collaborator's
// render surface at the given glyph tile mode, and attaches it to c —
// the entry point a caller uses in place of constructing a Framebuffer
// directly, so every subsequent draw call on c has somewhere to write.
// Returns false (and emits an error) on allocation failure, leaving c
// with no attached framebuffer.
func (c *Context) Init(surface Surface, tile TileMode) bool {
	fb := &Framebuffer{}
	if !fb.Init(surface, tile, c) {
		return false
	}
	c.fb = fb
	return true
}

// Viewport requests a resize of the attached framebuffer's logical
// dimensions, applied at the next Swap. Returns false when no
// framebuffer is attached or the dimensions are rejected.
func (c *Context) Viewport(w, h int) bool {
	if c.fb == nil {
		c.emit(SeverityError, "viewport with no initialized framebuffer")
		return false
	}
	return c.fb.Viewport(w, h, c)
}

// Free tears down the attached framebuffer (blocking until any in-flight
// present completes) and detaches it. Returns false if Init was never
// called.
func (c *Context) Free() bool {
	if c.fb == nil {
		return false
	}
	c.fb.Free()
	c.fb = nil
	return true
}

// ClearColor sets the color Clear writes to the back buffer when
// ColorBit is set.
func (fb *Framebuffer) ClearColor(col Color) { fb.clearColor = col }

// ClearDepth sets the depth Clear writes when both depth-test is enabled
// and DepthBit is set.
func (fb *Framebuffer) ClearDepth(d float32) { fb.clearDepth = d }

// Enable turns on the given state flags.
func (fb *Framebuffer) Enable(flags EnableFlag) { fb.enable |= flags }

// Disable turns off the given state flags.
func (fb *Framebuffer) Disable(flags EnableFlag) { fb.enable &^= flags }

func (fb *Framebuffer) enabled(flag EnableFlag) bool { return fb.enable&flag != 0 }

// Clear writes the clear color and/or clear depth to the back buffer per
// mask.
func (fb *Framebuffer) Clear(mask ClearMask) {
	back := fb.grids[fb.backIdx]
	writeColor := mask&ColorBit != 0
	writeDepth := mask&DepthBit != 0 && fb.enabled(DepthTest)
	if !writeColor && !writeDepth {
		return
	}
	for i := range back {
		if writeColor {
			back[i].Color = fb.clearColor
		}
		if writeDepth {
			back[i].Depth = fb.clearDepth
		}
	}
}

// GetPixel reads a pixel from the front or back grid. Out-of-range
// coordinates return the zero Pixel and emit an error.
func (fb *Framebuffer) GetPixel(row, col int, side Side, c *Context) Pixel {
	idx, ok := fb.pixelIndex(row, col)
	if !ok {
		c.emit(SeverityError, "pixel access out of range")
		return Pixel{}
	}
	return fb.grids[fb.gridIndex(side)][idx]
}

// SetPixel writes a pixel to the front or back grid. Out-of-range
// coordinates are a no-op and emit an error.
func (fb *Framebuffer) SetPixel(row, col int, p Pixel, side Side, c *Context) {
	idx, ok := fb.pixelIndex(row, col)
	if !ok {
		c.emit(SeverityError, "pixel access out of range")
		return
	}
	fb.grids[fb.gridIndex(side)][idx] = p
}

func (fb *Framebuffer) pixelIndex(row, col int) (int, bool) {
	if row < 0 || row >= fb.effH || col < 0 || col >= fb.effW {
		return 0, false
	}
	return row*fb.effW + col, true
}

func (fb *Framebuffer) gridIndex(side Side) int {
	if side == SideBack {
		return fb.backIdx
	}
	return 1 - fb.backIdx
}

// DepthFunc configures the comparison CompareDepth performs.
func (fb *Framebuffer) DepthFunc(f DepthFunc) { fb.depthFn = f }

// DepthMask enables or disables writing depth on a passing compare.
func (fb *Framebuffer) DepthMask(b bool) { fb.depthMask = b }

// CompareDepth returns whether newZ passes the configured depth
// comparison against oldZ. Equality variants use epsilon comparison.
func (fb *Framebuffer) CompareDepth(newZ, oldZ float32) bool {
	switch fb.depthFn {
	case DepthLess:
		return newZ < oldZ
	case DepthLEqual:
		return newZ < oldZ || mathx.Equals(newZ, oldZ)
	case DepthEqual:
		return mathx.Equals(newZ, oldZ)
	case DepthGEqual:
		return newZ > oldZ || mathx.Equals(newZ, oldZ)
	case DepthGreater:
		return newZ > oldZ
	case DepthNotEqual:
		return !mathx.Equals(newZ, oldZ)
	case DepthAlways:
		return true
	default:
		return true
	}
}

// AspectRatio returns effective_w / effective_h.
func (fb *Framebuffer) AspectRatio() float32 {
	if fb.effH == 0 {
		return 1
	}
	return float32(fb.effW) / float32(fb.effH)
}

// Dims returns the effective (window-space) width and height.
func (fb *Framebuffer) Dims() (w, h int) { return fb.effW, fb.effH }
