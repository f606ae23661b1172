package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"terminalgl/mathx"
)

func TestShadeFragmentUnlitUsesVertexColorOverRasterColor(t *testing.T) {
	c := NewContext(Options{})
	c.SetShadeModel(ShadeUnlit)
	c.SetRasterColor(Color{R: 1, A: 1})
	f := fragment{color: Color{G: 1, A: 1}}
	assert.Equal(t, Color{G: 1, A: 1}, c.shadeFragment(f))
}

func TestShadeFragmentUnlitFallsBackToRasterColorWhenVertexColorIsZero(t *testing.T) {
	c := NewContext(Options{})
	c.SetShadeModel(ShadeUnlit)
	c.SetRasterColor(Color{B: 1, A: 1})
	assert.Equal(t, Color{B: 1, A: 1}, c.shadeFragment(fragment{}))
}

func TestShadeFragmentWithNoActiveLightsFallsBackToAmbientPlusDiffuseScale(t *testing.T) {
	c := NewContext(Options{})
	c.SetShadeModel(ShadeSmooth)
	f := fragment{normal: mathx.NewVec3(0, 0, 1), position: mathx.NewVec3(0, 0, -1)}
	got := c.shadeFragment(f)
	mat := c.Material()
	want := mat.Ambient.add(mat.Diffuse).clamp01()
	assert.Equal(t, want, got)
}

func TestShadeFragmentDirectionalLightBrightensSurfaceFacingIt(t *testing.T) {
	c := NewContext(Options{})
	c.SetShadeModel(ShadeSmooth)
	c.SetDirectional(0, DirectionalLight{
		Diffuse:   Color{R: 1, G: 1, B: 1, A: 1},
		Specular:  Color{},
		Direction: mathx.NewVec3(0, 0, -1), // shining toward -Z
		Intensity: 1,
	})

	facingLight := fragment{normal: mathx.NewVec3(0, 0, 1), position: mathx.NewVec3(0, 0, -1)}
	awayFromLight := fragment{normal: mathx.NewVec3(0, 0, -1), position: mathx.NewVec3(0, 0, -1)}

	bright := c.shadeFragment(facingLight)
	dim := c.shadeFragment(awayFromLight)
	assert.Greater(t, bright.R, dim.R)
}

func TestShadeFragmentPointLightAttenuatesWithDistance(t *testing.T) {
	c := NewContext(Options{})
	c.SetShadeModel(ShadeSmooth)
	c.SetPoint(0, PointLight{
		Diffuse:   Color{R: 1, G: 1, B: 1, A: 1},
		Position:  mathx.NewVec3(0, 0, 0),
		Intensity: 1,
		Range:     10,
	})

	near := fragment{normal: mathx.NewVec3(0, 0, 1), position: mathx.NewVec3(0, 0, -1)}
	far := fragment{normal: mathx.NewVec3(0, 0, 1), position: mathx.NewVec3(0, 0, -8)}

	brightNear := c.shadeFragment(near)
	dimFar := c.shadeFragment(far)
	assert.Greater(t, brightNear.R, dimFar.R)
}

func TestBlinnPhongZeroWhenFacingAway(t *testing.T) {
	mat := DefaultMaterial()
	diffuse, specular := blinnPhong(mathx.NewVec3(0, 0, 1), mathx.NewVec3(0, 0, -1), mathx.NewVec3(0, 0, 1), Color{R: 1, G: 1, B: 1, A: 1}, Color{R: 1, G: 1, B: 1, A: 1}, mat)
	assert.Zero(t, diffuse.R)
	assert.Zero(t, specular.R)
}

func TestInterpolateFragmentFlatUsesUnweightedMean(t *testing.T) {
	tri := triangle{v: [3]vtx{
		{view: mathx.NewVec3(0, 0, -1), normal: mathx.NewVec3(1, 0, 0)},
		{view: mathx.NewVec3(2, 0, -1), normal: mathx.NewVec3(0, 1, 0)},
		{view: mathx.NewVec3(0, 2, -1), normal: mathx.NewVec3(0, 0, 1)},
	}}
	invZ := [3]float32{1, 1, 1}
	f := interpolateFragment(tri, 1.0/3, 1.0/3, 1.0/3, invZ, ShadeFlat)
	assert.InDelta(t, 2.0/3, f.position.X, 1e-4)
	assert.InDelta(t, 2.0/3, f.position.Y, 1e-4)
}

func TestInterpolateFragmentSmoothRenormalizesNormal(t *testing.T) {
	tri := triangle{v: [3]vtx{
		{view: mathx.NewVec3(0, 0, -1), normal: mathx.NewVec3(1, 0, 0)},
		{view: mathx.NewVec3(2, 0, -1), normal: mathx.NewVec3(0, 1, 0)},
		{view: mathx.NewVec3(0, 2, -1), normal: mathx.NewVec3(0, 0, 1)},
	}}
	invZ := [3]float32{1, 1, 1}
	f := interpolateFragment(tri, 1.0/3, 1.0/3, 1.0/3, invZ, ShadeSmooth)
	assert.InDelta(t, 1.0, f.normal.Length(), 1e-4)
}
