package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"terminalgl/mathx"
)

func TestNewLightRegistryDefaultsCapacity(t *testing.T) {
	r := NewLightRegistry(0)
	assert.Equal(t, 2, r.capacity)
	r2 := NewLightRegistry(-5)
	assert.Equal(t, 2, r2.capacity)
}

func TestSetDirectionalOutOfRangeIsWarningNoOp(t *testing.T) {
	var gotSeverity Severity
	c := NewContext(Options{LightCapacity: 1, Sink: func(sev Severity, msg string) { gotSeverity = sev }})
	c.SetDirectional(5, DirectionalLight{Intensity: 1})
	assert.Equal(t, SeverityWarning, gotSeverity)
	assert.Empty(t, c.lights.Directional)
}

func TestSetDirectionalWithinRangeGrowsSlice(t *testing.T) {
	c := NewContext(Options{LightCapacity: 3})
	c.SetDirectional(2, DirectionalLight{Intensity: 0.5})
	assert.Len(t, c.lights.Directional, 3)
	assert.InDelta(t, 0.5, c.lights.Directional[2].Intensity, 1e-6)
}

func TestLightActiveRequiresNonzeroIntensity(t *testing.T) {
	assert.False(t, DirectionalLight{}.active())
	assert.True(t, DirectionalLight{Intensity: 1}.active())
	assert.False(t, PointLight{}.active())
	assert.True(t, PointLight{Intensity: 0.01}.active())
}

func TestComputeAttenuationDirectionalIgnoresRange(t *testing.T) {
	kc, kl, kq := ComputeAttenuation(LightDirectional, 100, 1)
	assert.Equal(t, float32(1), kc)
	assert.Zero(t, kl)
	assert.Zero(t, kq)
}

func TestComputeAttenuationPointFollowsEmpiricalCurve(t *testing.T) {
	kc, kl, kq := ComputeAttenuation(LightPoint, 10, 1)
	assert.Equal(t, float32(1), kc)
	assert.InDelta(t, 4.5/10.0, kl, 1e-6)
	assert.InDelta(t, 75.0/100.0, kq, 1e-6)
}

func TestComputeAttenuationZeroRangeFallsBackToConstantOnly(t *testing.T) {
	kc, kl, kq := ComputeAttenuation(LightPoint, 0, 2)
	assert.Equal(t, float32(2), kc)
	assert.Zero(t, kl)
	assert.Zero(t, kq)
}

func TestComputeAttenuationFartherRangeMeansLessFalloff(t *testing.T) {
	_, klNear, kqNear := ComputeAttenuation(LightPoint, 5, 1)
	_, klFar, kqFar := ComputeAttenuation(LightPoint, 50, 1)
	assert.Greater(t, klNear, klFar)
	assert.Greater(t, kqNear, kqFar)
}

func TestAttenuateFillsStoredCoefficientsFromRange(t *testing.T) {
	c := NewContext(Options{})
	c.SetPoint(0, PointLight{Intensity: 1, Range: 10})
	c.Attenuate(LightPoint, 0, 1)

	l := c.lights.Point[0]
	assert.Equal(t, float32(1), l.Constant)
	assert.InDelta(t, 0.45, l.Linear, 1e-6)
	assert.InDelta(t, 0.75, l.Quadratic, 1e-6)
}

func TestAttenuateDirectionalIsWarningNoOp(t *testing.T) {
	var warned bool
	c := NewContext(Options{Sink: func(sev Severity, msg string) {
		if sev == SeverityWarning {
			warned = true
		}
	}})
	c.SetDirectional(0, DirectionalLight{Intensity: 1})
	c.Attenuate(LightDirectional, 0, 1)
	assert.True(t, warned)
}

func TestSpotLightCutoffExcludesFragmentsOutsideCone(t *testing.T) {
	l := SpotLight{
		PointLight: PointLight{Intensity: 1, Range: 10, Position: mathx.NewVec3(0, 0, 0)},
		Direction:  mathx.NewVec3(0, 0, -1),
		// A tight cone: cos(10 degrees) ~ 0.9848.
		CutoffCosine: 0.98,
	}
	identity := mathx.Mat4Identity()
	mat := DefaultMaterial()

	// Fragment straight ahead of the spot, well within the cone.
	_, ok := shadeSpot(l, identity, mathx.NewVec3(0, 0, -5), mathx.NewVec3(0, 0, 1), mathx.NewVec3(0, 0, 1), mat)
	assert.True(t, ok)

	// Fragment far off to the side, outside the cone.
	_, ok = shadeSpot(l, identity, mathx.NewVec3(5, 0, -5), mathx.NewVec3(0, 0, 1), mathx.NewVec3(0, 0, 1), mat)
	assert.False(t, ok)
}
