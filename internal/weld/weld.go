// Package weld converts triangle soup, as produced by marching cubes,
// into the viewer's indexed mesh form by merging vertices that share a
// position.
package weld

import (
	"github.com/deadsy/sdfx/render"

	"trigon/pkg/geom"
	"trigon/pkg/mesh"
)

// Triangles welds a triangle list into an indexed mesh. Vertices are
// merged on exact position equality, which is sufficient for marching
// cubes output where shared corners are bit-identical. Vertex IDs are
// assigned in first-seen order, faces keep the input winding.
func Triangles(tris []render.Triangle3) *mesh.Mesh {
	m := &mesh.Mesh{
		Faces: make([]mesh.Face, 0, len(tris)),
	}
	ids := make(map[geom.Vec3]int, len(tris))

	intern := func(p geom.Vec3) int {
		if id, ok := ids[p]; ok {
			return id
		}
		id := len(m.Vertices) + 1
		m.Vertices = append(m.Vertices, mesh.Vertex{ID: id, Pos: p})
		ids[p] = id
		return id
	}

	for _, t := range tris {
		var f mesh.Face
		for i := 0; i < 3; i++ {
			f.V[i] = intern(geom.Vec3{X: t[i].X, Y: t[i].Y, Z: t[i].Z})
		}
		m.Faces = append(m.Faces, f)
	}
	return m
}
