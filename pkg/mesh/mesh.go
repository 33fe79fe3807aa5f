// Package mesh defines the triangle mesh data model and its file format.
// A Mesh is immutable after loading; opening a new file replaces the
// whole value rather than mutating it in place.
package mesh

import "trigon/pkg/geom"

// Vertex is a mesh vertex. IDs are 1-based and unique within a mesh;
// vertex i of a valid mesh has ID i+1, so faces resolve in O(1).
type Vertex struct {
	ID  int
	Pos geom.Vec3
}

// Face is a triangle referencing three vertices by ID, in a fixed
// winding order.
type Face struct {
	V [3]int
}

// Mesh holds the vertices and triangular faces of one loaded object.
// The slices are treated as read-only after Load; every face ID lies in
// [1, len(Vertices)].
type Mesh struct {
	Vertices []Vertex
	Faces    []Face
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// IsEmpty reports whether the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Pos returns the position of the vertex with the given 1-based ID.
// The ID must be valid; Load guarantees this for every face reference.
func (m *Mesh) Pos(id int) geom.Vec3 {
	return m.Vertices[id-1].Pos
}

// FaceCorners returns the three corner positions of f.
func (m *Mesh) FaceCorners(f Face) (a, b, c geom.Vec3) {
	return m.Pos(f.V[0]), m.Pos(f.V[1]), m.Pos(f.V[2])
}

// FaceNormal returns the unit normal of f in object space.
func (m *Mesh) FaceNormal(f Face) geom.Vec3 {
	a, b, c := m.FaceCorners(f)
	return geom.FaceNormal(a, b, c)
}

// Points returns all vertex positions in load order.
func (m *Mesh) Points() []geom.Vec3 {
	pts := make([]geom.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		pts[i] = v.Pos
	}
	return pts
}

// Bounds returns the axis-aligned bounding box of the mesh. ok is false
// for an empty mesh.
func (m *Mesh) Bounds() (geom.Box, bool) {
	return geom.BoundingBox(m.Points())
}
