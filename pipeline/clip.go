package pipeline

import "terminalgl/mathx"

// clipTriangleAgainstPlane classifies a triangle's view-space position
// against a half-space plane (pointOnPlane, normal, both view-space) and
// returns the resulting triangle(s): 0 if fully outside, 1 if fully
// inside or if exactly one vertex is inside (the plane slices off a
// corner, producing one smaller triangle), 2 if exactly two vertices are
// inside (the plane slices off a corner, leaving a quadrilateral that is
// fan-triangulated into two triangles preserving winding).
//
// A vertex with |distance| < mathx.Epsilon is treated as inside (the
// on-plane case never produces a degenerate zero-area slice).
//
// This is derived directly from the general point/normal polygon-clip
// construction rather than any branchy case-by-case original: classify,
// then walk the (at most) two crossing edges and lerp every carried
// attribute — clip position, object/view position, normal, color,
// texcoord — by the same parametric t used for the intersection.
func clipTriangleAgainstPlane(tri triangle, pointOnPlane, normal mathx.Vec3) (int, triangle, triangle) {
	var d [3]float32
	insideCount := 0
	var inside [3]bool
	for i := 0; i < 3; i++ {
		d[i] = normal.Dot(tri.v[i].view.Sub(pointOnPlane))
		inside[i] = d[i] >= -mathx.Epsilon
		if inside[i] {
			insideCount++
		}
	}

	switch insideCount {
	case 0:
		return 0, triangle{}, triangle{}
	case 3:
		return 1, tri, triangle{}
	case 1:
		i := soleIndex(inside, true)
		j, k := (i+1)%3, (i+2)%3
		pij := lerpVtx(tri.v[i], tri.v[j], d[i]/(d[i]-d[j]))
		pik := lerpVtx(tri.v[i], tri.v[k], d[i]/(d[i]-d[k]))
		out := triangle{attrTag: tri.attrTag}
		out.v[i] = tri.v[i]
		out.v[j] = pij
		out.v[k] = pik
		return 1, out, triangle{}
	default: // 2
		o := soleIndex(inside, false)
		p, q := (o+1)%3, (o+2)%3
		ip := lerpVtx(tri.v[p], tri.v[o], d[p]/(d[p]-d[o]))
		iq := lerpVtx(tri.v[q], tri.v[o], d[q]/(d[q]-d[o]))
		out0 := triangle{attrTag: tri.attrTag, v: [3]vtx{tri.v[p], tri.v[q], iq}}
		out1 := triangle{attrTag: tri.attrTag, v: [3]vtx{tri.v[p], iq, ip}}
		return 2, out0, out1
	}
}

// soleIndex returns the index of the single element of b matching want,
// assuming exactly one does (the caller only invokes this for the
// insideCount==1 and insideCount==2 cases).
func soleIndex(b [3]bool, want bool) int {
	for i, v := range b {
		if v == want {
			return i
		}
	}
	return -1
}

// clipNearFar runs a triangle through the near-plane clip, then runs
// every surviving piece through the far-plane clip, and appends every
// final triangle to out. near and far are the distances along -Z
// recovered from the active projection matrix (mathx.NearFarFromProjection);
// an orthographic projection may yield a negative near.
//
// View space follows the right-handed, camera-looks-down--Z convention
// the math kernel's LookAt/Perspective establish: a point is in front of
// the camera when its view-space z is negative, so the valid slab is
// -far <= z <= -near and the plane/normal pairs below are derived for
// that axis.
func clipNearFar(tri triangle, near, far float32, out []triangle) []triangle {
	nearPoint, nearNormal := mathx.Vec3{X: 0, Y: 0, Z: -near}, mathx.Vec3{X: 0, Y: 0, Z: -1}
	farPoint, farNormal := mathx.Vec3{X: 0, Y: 0, Z: -far}, mathx.Vec3{X: 0, Y: 0, Z: 1}

	n, t0, t1 := clipTriangleAgainstPlane(tri, nearPoint, nearNormal)
	var stage1 [2]triangle
	stage1[0], stage1[1] = t0, t1

	for i := 0; i < n; i++ {
		m, f0, f1 := clipTriangleAgainstPlane(stage1[i], farPoint, farNormal)
		if m >= 1 {
			out = append(out, f0)
		}
		if m == 2 {
			out = append(out, f1)
		}
	}
	return out
}
