// Package geom is the stateless geometry kernel: vector math, face
// normals, rotation, bounding boxes and scale fitting. Nothing in this
// package holds state; every function is a pure mapping from inputs to
// outputs so the rendering pipeline built on top stays testable.
package geom

import "math"

// Epsilon guards normalization against division by zero. A degenerate
// (zero-area) face divides its cross product by Epsilon and comes out as
// numerical noise instead of NaN.
const Epsilon = 1e-10

// Vec3 is a 3D vector or point.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scale returns v scaled by f.
func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{v.X * f, v.Y * f, v.Z * f}
}

// Cross returns the cross product v × w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Length returns the Euclidean norm of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns v divided by its length plus Epsilon. Zero vectors
// stay near zero rather than becoming NaN.
func (v Vec3) Normalize() Vec3 {
	return v.Scale(1 / (v.Length() + Epsilon))
}

// IsFinite reports whether all three components are finite numbers.
func (v Vec3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// FaceNormal computes the unit normal of the triangle (a, b, c) using the
// cross product of its two edge vectors (b-a) × (c-a). The result follows
// the winding order of the triangle. Degenerate triangles yield a finite
// near-zero vector, which callers accept as-is.
func FaceNormal(a, b, c Vec3) Vec3 {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	return e1.Cross(e2).Normalize()
}

// Rotate applies a right-handed rotation about the X axis by ax radians,
// then about the Y axis by ay radians. The order is fixed: X first, then
// Y, matching the drag semantics of the interaction layer.
func Rotate(p Vec3, ax, ay float64) Vec3 {
	sx, cx := math.Sincos(ax)
	sy, cy := math.Sincos(ay)

	// Rx(ax)
	y := p.Y*cx - p.Z*sx
	z := p.Y*sx + p.Z*cx

	// Ry(ay)
	x := p.X*cy + z*sy
	z = -p.X*sy + z*cy

	return Vec3{X: x, Y: y, Z: z}
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Vec3
}

// Size returns the extent of the box along each axis.
func (b Box) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// BoundingBox returns the axis-aligned extents of the given points. The
// second return value is false when the point set is empty.
func BoundingBox(points []Vec3) (Box, bool) {
	if len(points) == 0 {
		return Box{}, false
	}
	b := Box{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
		b.Min.Z = math.Min(b.Min.Z, p.Z)
		b.Max.Z = math.Max(b.Max.Z, p.Z)
	}
	return b, true
}

// FitScale computes the scale factor that makes the boxed object occupy
// targetRatio of the surface along every considered axis: width for X,
// height for Y and, when includeDepth is set, the mean of width and height
// for Z. The returned scale is the minimum of the per-axis factors, so the
// object fits on all of them. Axes with zero extent are excluded rather
// than producing an infinite factor; ok is false when every axis was
// excluded, in which case callers should keep their current scale.
func FitScale(b Box, width, height int, targetRatio float64, includeDepth bool) (scale float64, ok bool) {
	size := b.Size()
	scale = math.Inf(1)

	if size.X > 0 {
		scale = math.Min(scale, float64(width)*targetRatio/size.X)
		ok = true
	}
	if size.Y > 0 {
		scale = math.Min(scale, float64(height)*targetRatio/size.Y)
		ok = true
	}
	if includeDepth && size.Z > 0 {
		scale = math.Min(scale, float64(width+height)*targetRatio/2/size.Z)
		ok = true
	}
	if !ok {
		return 0, false
	}
	return scale, true
}
