package pipeline

// Material is the process-wide current material: ambient, diffuse,
// specular (RGBA) and shininess. There is no per-object material binding;
// SetMaterial replaces it wholesale before a draw call.
type Material struct {
	Ambient   Color
	Diffuse   Color
	Specular  Color
	Shininess float32
}

// DefaultMaterial is the startup material: a neutral grey diffuse
// surface with a modest specular highlight.
func DefaultMaterial() Material {
	return Material{
		Ambient:   Color{0.1, 0.1, 0.1, 1},
		Diffuse:   Color{0.8, 0.8, 0.8, 1},
		Specular:  Color{0.5, 0.5, 0.5, 1},
		Shininess: 32,
	}
}

// SetMaterial overwrites the current material singleton.
func (c *Context) SetMaterial(m Material) {
	if m.Shininess <= 0 {
		c.emit(SeverityWarning, "material shininess must be positive; ignoring SetMaterial")
		return
	}
	c.material = m
}

// Material returns the current material.
func (c *Context) Material() Material { return c.material }
