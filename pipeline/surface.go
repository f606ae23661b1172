package pipeline

// Surface is the terminal-collaborator interface the framebuffer presents
// through. It is the only external surface the pipeline depends on; no
// terminal escape codes or rendering backend are specified here (see
// term.AnsiSurface for a concrete implementation).
type Surface interface {
	// Dims reports the plane's current size in character cells (rows, cols).
	Dims() (rows, cols int)

	// BlitRGBA takes a contiguous RGBA byte buffer (4 bytes per pixel, row
	// stride rowStride) and displays it, downsampling lenX x lenY logical
	// pixels per cell according to tileMode.
	BlitRGBA(pixels []byte, rowStride int, tileMode TileMode, lenX, lenY int) error

	// Render flushes the collaborator's internal scene to the terminal.
	Render() error

	// Refresh is called after a viewport resize, before the next BlitRGBA.
	Refresh() error
}
