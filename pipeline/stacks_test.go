package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"terminalgl/mathx"
)

func TestMatrixStackPushPopRoundTrip(t *testing.T) {
	c := NewContext(Options{})
	c.MatrixMode(ModeModelview)
	c.LoadIdentity()
	c.Translate(mathx.NewVec3(1, 2, 3))
	before := c.Top()

	assert.True(t, c.Push())
	c.Translate(mathx.NewVec3(10, 10, 10))
	assert.NotEqual(t, before, c.Top())

	assert.True(t, c.Pop())
	assert.True(t, before.Equals(c.Top()))
}

func TestMatrixStackUnderflowIsNoOp(t *testing.T) {
	c := NewContext(Options{})
	c.MatrixMode(ModeProjection)
	assert.False(t, c.Pop()) // only one element at construction
}

func TestMatrixStackOverflowIsNoOp(t *testing.T) {
	c := NewContext(Options{})
	c.MatrixMode(ModeProjection) // capacity 4
	ok := true
	for i := 0; i < 10; i++ {
		ok = c.Push()
	}
	assert.False(t, ok)
}

func TestModelviewStackHasDeeperCapacityThanOthers(t *testing.T) {
	assert.Greater(t, stackCapacity(ModeModelview), stackCapacity(ModeProjection))
}

func TestRotateRefreshesNormalStackOnlyInModelviewMode(t *testing.T) {
	c := NewContext(Options{})
	c.MatrixMode(ModeModelview)
	c.Rotate(mathx.PiH, mathx.NewVec3(0, 1, 0))
	mv := c.Top()
	c.MatrixMode(ModeNormal)
	expected := mv.Inverse().Transpose()
	assert.True(t, expected.Equals(c.Top()))
}

func TestRotateInNonModelviewModeDoesNotTouchNormalStack(t *testing.T) {
	c := NewContext(Options{})
	c.MatrixMode(ModeTexture)
	c.MatrixMode(ModeNormal)
	before := c.Top()
	c.MatrixMode(ModeTexture)
	c.Rotate(mathx.PiQ, mathx.NewVec3(1, 0, 0))
	c.MatrixMode(ModeNormal)
	assert.True(t, before.Equals(c.Top()))
}

func TestInvalidMatrixModeLeavesSelectorUnchanged(t *testing.T) {
	c := NewContext(Options{})
	c.MatrixMode(ModeTexture)
	c.MatrixMode(MatrixMode(999))
	assert.Equal(t, ModeTexture, c.matrixMode)
}

func TestPerspectiveDividesAspectByWidthMultiplier(t *testing.T) {
	c := NewContext(Options{WidthMultiplier: 2})
	c.MatrixMode(ModeProjection)
	c.Perspective(mathx.PiQ, 2, 0.1, 100)
	withMultiplier := c.Top()

	c2 := NewContext(Options{WidthMultiplier: 1})
	c2.MatrixMode(ModeProjection)
	c2.Perspective(mathx.PiQ, 1, 0.1, 100)
	reference := c2.Top()

	assert.True(t, withMultiplier.Equals(reference))
}

func TestOrthoMultipliesWidthByWidthMultiplier(t *testing.T) {
	c := NewContext(Options{WidthMultiplier: 2})
	c.MatrixMode(ModeProjection)
	c.Ortho(2, 2, 0.1, 10)
	doubled := c.Top()

	c2 := NewContext(Options{WidthMultiplier: 1})
	c2.MatrixMode(ModeProjection)
	c2.Ortho(4, 2, 0.1, 10)
	reference := c2.Top()

	assert.True(t, doubled.Equals(reference))
}
