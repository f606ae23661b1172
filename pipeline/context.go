package pipeline

import (
	"fmt"
	"time"
)

// MessageSink receives structured {severity, message} reports from every
// pipeline component. It is never fatal to the caller; if unset, messages
// are dropped.
type MessageSink func(severity Severity, message string)

// Context is the single opaque value that owns all of the immediate-mode
// render state: the five matrix stacks and current mode, the material,
// the light registry, the raster color, shade/cull/wind/depth-func
// state, and the framebuffer. Every drawing operation is a method on
// *Context; nothing in this package is process-global.
type Context struct {
	stacks     [modeCount]*matrixStack
	matrixMode MatrixMode

	widthMultiplier float32

	material Material
	lights   *LightRegistry

	rasterColor Color
	shadeModel  ShadeModel
	cullFace    CullFace
	winding     Winding

	fb *Framebuffer

	sink MessageSink
}

// Options configures a new Context. Zero value is valid; fields default
// as documented on NewContext.
type Options struct {
	WidthMultiplier float32
	LightCapacity   int
	Sink            MessageSink
}

// NewContext constructs a Context with all five matrix stacks at
// identity, the default material, an empty light registry, white raster
// color, smooth shading, no culling, and CCW winding. No framebuffer is
// attached until Init is called.
func NewContext(opts Options) *Context {
	if opts.WidthMultiplier == 0 {
		opts.WidthMultiplier = 2.0
	}
	c := &Context{
		matrixMode:      ModeModelview,
		widthMultiplier: opts.WidthMultiplier,
		material:        DefaultMaterial(),
		lights:          NewLightRegistry(opts.LightCapacity),
		rasterColor:     Color{1, 1, 1, 1},
		shadeModel:      ShadeSmooth,
		cullFace:        CullNone,
		winding:         WindingCCW,
		sink:            opts.Sink,
	}
	for m := MatrixMode(0); m < modeCount; m++ {
		c.stacks[m] = newMatrixStack(stackCapacity(m))
	}
	return c
}

func (c *Context) emit(sev Severity, msg string) {
	if c.sink == nil {
		return
	}
	c.sink(sev, FormatTimestamp(time.Now())+" "+msg)
}

func (c *Context) emitf(sev Severity, format string, args ...any) {
	c.emit(sev, fmt.Sprintf(format, args...))
}

// SetSink installs (or replaces) the message sink.
func (c *Context) SetSink(sink MessageSink) { c.sink = sink }

// SetRasterColor sets the current color used by unlit/colorless
// primitives.
func (c *Context) SetRasterColor(col Color) { c.rasterColor = col }

// SetShadeModel selects unlit/flat/smooth shading.
func (c *Context) SetShadeModel(m ShadeModel) { c.shadeModel = m }

// SetCullFace selects which winding is discarded when culling is enabled.
func (c *Context) SetCullFace(f CullFace) { c.cullFace = f }

// SetWinding selects which vertex order is front-facing.
func (c *Context) SetWinding(w Winding) { c.winding = w }

// Framebuffer returns the attached framebuffer, or nil if Init has not
// been called.
func (c *Context) Framebuffer() *Framebuffer { return c.fb }

// FormatTimestamp renders t as "[MM::DD::YYYY HH::MM::SS]", the prefix
// format for messages handed to a raw (non-structured-logger) sink.
func FormatTimestamp(t time.Time) string {
	return t.Format("[01::02::2006 15::04::05]")
}
