package pipeline

import (
	"terminalgl/mathx"

	"github.com/chewxy/math32"
)

// shadeFragment dispatches on the current shade model and, for Flat and
// Smooth, accumulates every enabled light's contribution using Blinn-Phong
// terms, then clamps the result to [0,1].
func (c *Context) shadeFragment(f fragment) Color {
	if c.shadeModel == ShadeUnlit {
		return unlitColor(f, c.rasterColor)
	}

	n := f.normal
	viewDir := f.position.Negate().Normalize() // eye at view-space origin

	out := Color{}
	base := fragmentBaseColor(f, c.rasterColor)
	lightMatrix := c.stacks[ModeLight].top()
	active := 0

	for _, l := range c.lights.Directional {
		if !l.active() {
			continue
		}
		active++
		out = out.add(shadeDirectional(l, lightMatrix, n, viewDir, c.material))
	}
	for _, l := range c.lights.Point {
		if !l.active() {
			continue
		}
		active++
		if contrib, ok := shadePoint(l, lightMatrix, f.position, n, viewDir, c.material); ok {
			out = out.add(contrib)
		}
	}
	for _, l := range c.lights.Spot {
		if !l.PointLight.active() {
			continue
		}
		active++
		if contrib, ok := shadeSpot(l, lightMatrix, f.position, n, viewDir, c.material); ok {
			out = out.add(contrib)
		}
	}

	// No active light: fall back to the base color scaled by the
	// material's ambient plus diffuse so an unlit scene with smooth/flat
	// shading still renders visibly.
	if active == 0 {
		return base.mulColor(c.material.Ambient.add(c.material.Diffuse)).clamp01()
	}
	return out.clamp01()
}

func unlitColor(f fragment, raster Color) Color {
	if f.color != (Color{}) {
		return f.color.clamp01()
	}
	return raster.clamp01()
}

func fragmentBaseColor(f fragment, raster Color) Color {
	if f.color != (Color{}) {
		return f.color
	}
	return raster
}

func blinnPhong(lightDir, n, viewDir mathx.Vec3, lightDiffuse, lightSpecular Color, mat Material) (diffuse, specular Color) {
	diff := maxf(n.Dot(lightDir), 0)
	diffuse = lightDiffuse.mulColor(mat.Diffuse).mul(diff)

	h := viewDir.Add(lightDir).Normalize()
	spec := math32.Pow(maxf(n.Dot(h), 0), mat.Shininess)
	specular = lightSpecular.mulColor(mat.Specular).mul(spec)
	return
}

func shadeDirectional(l DirectionalLight, lightMatrix mathx.Mat4, n, viewDir mathx.Vec3, mat Material) Color {
	dir := lightMatrix.MulDir(l.Direction).Negate().Normalize()
	diffuse, specular := blinnPhong(dir, n, viewDir, l.Diffuse, l.Specular, mat)
	ambient := l.Ambient.mulColor(mat.Ambient)
	return diffuse.add(specular).mul(l.Intensity).add(ambient)
}

func shadePoint(l PointLight, lightMatrix mathx.Mat4, fragPos, n, viewDir mathx.Vec3, mat Material) (Color, bool) {
	lightPos := lightMatrix.MulPoint(l.Position)
	toLight := lightPos.Sub(fragPos)
	dist := toLight.Length()
	kc, kl, kq := l.Constant, l.Linear, l.Quadratic
	if kc == 0 && kl == 0 && kq == 0 {
		// Coefficients were never filled in (via Attenuate or directly);
		// derive them from the light's range on the spot.
		kc, kl, kq = ComputeAttenuation(LightPoint, l.Range, l.Constant)
	}
	denom := kc + kl*dist + kq*dist*dist
	if mathx.Equals(denom, 0) {
		return Color{}, false
	}
	attenuation := 1.0 / denom
	lightDir := fragPos.Sub(lightPos).Negate().Normalize()
	diffuse, specular := blinnPhong(lightDir, n, viewDir, l.Diffuse, l.Specular, mat)
	return diffuse.add(specular).mul(l.Intensity * attenuation), true
}

func shadeSpot(l SpotLight, lightMatrix mathx.Mat4, fragPos, n, viewDir mathx.Vec3, mat Material) (Color, bool) {
	contrib, ok := shadePoint(l.PointLight, lightMatrix, fragPos, n, viewDir, mat)
	if !ok {
		return Color{}, false
	}
	lightPos := lightMatrix.MulPoint(l.Position)
	lightDir := fragPos.Sub(lightPos).Negate().Normalize()
	spotDir := lightMatrix.MulDir(l.Direction).Negate().Normalize()
	theta := lightDir.Dot(spotDir)
	if theta <= l.CutoffCosine {
		return Color{}, false
	}
	return contrib, true
}
