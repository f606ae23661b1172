// Package term is the demo program's terminal collaborator: the
// pipeline.Surface implementation that takes the packed RGBA grid the
// framebuffer's present goroutine produces and actually draws it into a
// character-cell terminal. The pipeline is written against the
// pipeline.Surface interface only and never sees an escape code; this
// package is where they all live.
package term

import (
	"bufio"
	"image/color"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"github.com/rivo/uniseg"

	"terminalgl/pipeline"
)

// fullBlock is the glyph used for every tile mode except braille, which
// instead picks one of the 256 Unicode braille patterns per cell.
const fullBlock = '█'

// litThreshold is the luma (see luminance) above which a braille
// sub-pixel is considered "on". Chosen empirically against the clear
// color default (near-black); not a documented contract constant.
const litThreshold = 0.15

// AnsiSurface renders a packed RGBA grid into an ANSI terminal using
// colorized block or braille glyphs, one cell at a time. It detects the
// terminal's color depth with termenv and renders through a lipgloss
// Renderer bound to the same writer, so color degrades gracefully on a
// 16-color or no-color terminal instead of emitting escapes it can't use.
type AnsiSurface struct {
	w        io.Writer
	buf      *bufio.Writer
	rows     int
	cols     int
	renderer *lipgloss.Renderer
	profile  termenv.Profile
}

// NewAnsiSurface constructs a surface of the given size (in character
// cells) writing to w.
func NewAnsiSurface(w io.Writer, rows, cols int) *AnsiSurface {
	return &AnsiSurface{
		w:        w,
		buf:      bufio.NewWriter(w),
		rows:     rows,
		cols:     cols,
		renderer: lipgloss.NewRenderer(w),
		profile:  termenv.NewOutput(w).ColorProfile(),
	}
}

// Dims reports the plane's size in character cells (rows, cols).
func (s *AnsiSurface) Dims() (rows, cols int) { return s.rows, s.cols }

// Resize changes the character-cell grid size. The framebuffer calls
// Viewport/Swap with the corresponding logical pixel dimensions; this
// only needs to be called when the host terminal itself is resized.
func (s *AnsiSurface) Resize(rows, cols int) { s.rows, s.cols = rows, cols }

// Refresh clears the screen and homes the cursor, as required after a
// viewport resize (pipeline.Surface contract) before the next BlitRGBA.
func (s *AnsiSurface) Refresh() error {
	s.buf.WriteString("\x1b[2J\x1b[H")
	return s.buf.Flush()
}

// Render flushes any buffered output to the terminal.
func (s *AnsiSurface) Render() error { return s.buf.Flush() }

// BlitRGBA takes the packed RGBA grid (R,G,B,A bytes per pixel, stride
// rowStride) the framebuffer's present goroutine produced and writes one
// styled line per character row, downsampling lenX x lenY logical pixels
// into each cell according to tileMode.
func (s *AnsiSurface) BlitRGBA(pixels []byte, rowStride int, tileMode pipeline.TileMode, lenX, lenY int) error {
	s.buf.WriteString("\x1b[H")
	var line strings.Builder
	for cellRow := 0; cellRow < s.rows; cellRow++ {
		line.Reset()
		for cellCol := 0; cellCol < s.cols; cellCol++ {
			glyph, col, lit := s.sampleCell(pixels, rowStride, tileMode, lenX, lenY, cellRow, cellCol)
			line.WriteString(s.styleGlyph(glyph, col, lit))
		}
		s.buf.WriteString(line.String())
		s.buf.WriteString("\r\n")
	}
	return nil
}

// sampleCell reduces the lenX x lenY block of logical pixels backing one
// character cell to a single glyph and an averaged color. The average is
// taken on go-colorful's sRGB-encoded components; no linearization is
// applied.
// Braille tiling additionally picks which of the 8 dots are lit; every
// other tile mode always lights the single full-block glyph.
func (s *AnsiSurface) sampleCell(pixels []byte, rowStride int, tileMode pipeline.TileMode, lenX, lenY, cellRow, cellCol int) (rune, colorful.Color, bool) {
	if tileMode == pipeline.TileBraille2x4 {
		return s.sampleBraille(pixels, rowStride, cellRow, cellCol)
	}
	var sum colorful.Color
	n := 0
	for sy := 0; sy < lenY; sy++ {
		py := cellRow*lenY + sy
		for sx := 0; sx < lenX; sx++ {
			px := cellCol*lenX + sx
			sum = addColorful(sum, readPixel(pixels, rowStride, px, py))
			n++
		}
	}
	if n == 0 {
		return ' ', colorful.Color{}, false
	}
	return fullBlock, averageColorful(sum, n), true
}

// brailleDotBit maps (subRow, subCol) within a 2x4 cell to the bit index
// of the Unicode braille-pattern codepoint (U+2800 + bitmask), per the
// standard Braille dot numbering (1,2,3,7 in the left column, 4,5,6,8 in
// the right).
var brailleDotBit = [4][2]uint{
	{0, 3},
	{1, 4},
	{2, 5},
	{6, 7},
}

func (s *AnsiSurface) sampleBraille(pixels []byte, rowStride int, cellRow, cellCol int) (rune, colorful.Color, bool) {
	var bits uint
	var sum colorful.Color
	lit := 0
	for sy := 0; sy < 4; sy++ {
		py := cellRow*4 + sy
		for sx := 0; sx < 2; sx++ {
			px := cellCol*2 + sx
			c := readPixel(pixels, rowStride, px, py)
			if luminance(c) > litThreshold {
				bits |= 1 << brailleDotBit[sy][sx]
				sum = addColorful(sum, c)
				lit++
			}
		}
	}
	if lit == 0 {
		return ' ', colorful.Color{}, false
	}
	return rune(0x2800 + int(bits)), averageColorful(sum, lit), true
}

// styleGlyph wraps glyph in the lipgloss style carrying its averaged
// color, skipping ANSI color escapes entirely when the detected profile
// is Ascii (a terminal with no color support at all).
func (s *AnsiSurface) styleGlyph(glyph rune, col colorful.Color, lit bool) string {
	if !lit {
		return " "
	}
	g := string(glyph)
	if uniseg.GraphemeClusterCount(g) != 1 || runewidth.RuneWidth(glyph) != 1 {
		// Every glyph this package chooses is a single-width, single-cluster
		// rune; this only guards a future glyph table entry that isn't.
		g = "?"
	}
	if s.profile == termenv.Ascii {
		return g
	}
	style := s.renderer.NewStyle().Foreground(lipgloss.Color(col.Clamped().Hex()))
	return style.Render(g)
}

func readPixel(pixels []byte, rowStride, px, py int) colorful.Color {
	o := py*rowStride + px*4
	if o < 0 || o+3 >= len(pixels) {
		return colorful.Color{}
	}
	c, _ := colorful.MakeColor(color.RGBA{R: pixels[o], G: pixels[o+1], B: pixels[o+2], A: 255})
	return c
}

func addColorful(a, b colorful.Color) colorful.Color {
	return colorful.Color{R: a.R + b.R, G: a.G + b.G, B: a.B + b.B}
}

func averageColorful(sum colorful.Color, n int) colorful.Color {
	f := 1.0 / float64(n)
	return colorful.Color{R: sum.R * f, G: sum.G * f, B: sum.B * f}.Clamped()
}

// luminance applies the Rec. 709 weights directly to go-colorful's
// sRGB-encoded R/G/B (a luma, not linear-light relative luminance), used
// only to threshold braille dots.
func luminance(c colorful.Color) float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}
