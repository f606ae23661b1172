// Package pipeline implements the fixed-function software rendering
// pipeline: transform stacks, clipping, rasterization, shading, and the
// double-buffered framebuffer. It has no knowledge of terminals; callers
// hand it a Surface (see surface.go) to present into.
package pipeline

// MatrixMode selects which of the five named stacks subsequent transform
// operations affect.
type MatrixMode int

const (
	ModeProjection MatrixMode = iota
	ModeModelview
	ModeNormal
	ModeTexture
	ModeLight
	modeCount
)

func (m MatrixMode) valid() bool { return m >= ModeProjection && m < modeCount }

// LightKind identifies which owned sequence a light slot index refers to.
type LightKind int

const (
	LightDirectional LightKind = iota
	LightPoint
	LightSpot
)

// ShadeModel selects how the shader stage treats interpolated normals and
// positions.
type ShadeModel int

const (
	ShadeUnlit ShadeModel = iota
	ShadeFlat
	ShadeSmooth
)

// CullFace selects which winding of face is discarded when culling is
// enabled.
type CullFace int

const (
	CullNone CullFace = iota
	CullFront
	CullBack
	CullFrontAndBack
)

// Winding identifies which vertex order is considered front-facing.
type Winding int

const (
	WindingCCW Winding = iota
	WindingCW
)

// DepthFunc selects the comparison used by CompareDepth.
type DepthFunc int

const (
	DepthLess DepthFunc = iota
	DepthLEqual
	DepthEqual
	DepthGEqual
	DepthGreater
	DepthNotEqual
	DepthAlways
)

// Side selects which of the two framebuffer grids an access targets.
type Side int

const (
	SideFront Side = iota
	SideBack
)

// Severity classifies a message sent to the message sink.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// VertexAttr is the tagged VAO configuration: which attributes beyond
// position a submitted vertex carries. The texcoord-bearing variants are
// reserved; submitting them draws untextured and emits an info message.
type VertexAttr int

const (
	AttrPosition VertexAttr = iota
	AttrPositionColor
	AttrPositionNormal
	AttrPositionTexcoord
	AttrPositionColorNormal
	AttrPositionColorTexcoord
	AttrPositionNormalTexcoord
	AttrPositionColorNormalTexcoord
)

// hasColor, hasNormal and hasTexcoord report which attributes a
// VertexAttr configuration carries beyond position.
func (a VertexAttr) hasColor() bool {
	switch a {
	case AttrPositionColor, AttrPositionColorNormal, AttrPositionColorTexcoord, AttrPositionColorNormalTexcoord:
		return true
	default:
		return false
	}
}

func (a VertexAttr) hasNormal() bool {
	switch a {
	case AttrPositionNormal, AttrPositionColorNormal, AttrPositionNormalTexcoord, AttrPositionColorNormalTexcoord:
		return true
	default:
		return false
	}
}

func (a VertexAttr) hasTexcoord() bool {
	switch a {
	case AttrPositionTexcoord, AttrPositionColorTexcoord, AttrPositionNormalTexcoord, AttrPositionColorNormalTexcoord:
		return true
	default:
		return false
	}
}

func (a VertexAttr) valid() bool {
	return a >= AttrPosition && a <= AttrPositionColorNormalTexcoord
}

// Bitmask constants. ClearMask and EnableFlag are independent namespaces
// and may legally reuse bit positions across each other.
type ClearMask uint32

const (
	ColorBit ClearMask = 1 << iota
	DepthBit
)

type EnableFlag uint32

const (
	DepthTest EnableFlag = 1 << iota
	CullFaceEnable
)

// TileMode is the glyph tiling mode: how many logical pixels map to one
// terminal character cell.
type TileMode int

const (
	Tile1x1 TileMode = iota
	Tile2x1
	Tile2x2
	Tile3x2
	TileBraille2x4
	Tile4x1
	Tile8x1
)

// CellSize returns (cols, rows) of logical pixels packed per glyph cell.
func (t TileMode) CellSize() (cols, rows int) {
	switch t {
	case Tile1x1:
		return 1, 1
	case Tile2x1:
		return 2, 1
	case Tile2x2:
		return 2, 2
	case Tile3x2:
		return 3, 2
	case TileBraille2x4:
		return 2, 4
	case Tile4x1:
		return 4, 1
	case Tile8x1:
		return 8, 1
	default:
		return 1, 1
	}
}
