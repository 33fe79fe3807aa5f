// Package render turns a mesh plus the current view state into draw
// calls on an abstract Surface. It owns the mutable view (scale, rotation
// angles, last pointer position) and implements two fixed render modes:
// a static 2D wireframe and a rotatable, depth-sorted, flat-shaded 3D
// projection using the painter's algorithm.
package render

import (
	"image/color"
	"math"
	"sort"

	"trigon/pkg/geom"
	"trigon/pkg/mesh"
)

// Point is a 2D screen-space position.
type Point struct {
	X, Y float64
}

// Surface is the display collaborator. Implementations provide the
// drawing primitives and the current drawable size; the renderer never
// caches the size because the window may be resized between calls.
//
// All calls happen on the event-loop goroutine that drives rendering.
type Surface interface {
	// Size returns the current drawable width and height in pixels.
	Size() (width, height int)
	// Clear erases the surface.
	Clear()
	// Line draws a straight line between two points.
	Line(a, b Point, col color.Color, width float64)
	// Polygon draws a filled polygon with an outline.
	Polygon(pts []Point, fill, outline color.Color)
	// Circle draws a filled circle.
	Circle(center Point, radius float64, fill color.Color)
}

// Mode selects the render algorithm. It is fixed per renderer instance.
type Mode int

const (
	// Mode2D draws an unrotated wireframe with vertex markers.
	Mode2D Mode = iota
	// Mode3D draws rotated, shaded, depth-sorted faces.
	Mode3D
)

// View is the mutable view state: the object-to-screen scale factor, the
// accumulated rotation angles in radians (unbounded, no wraparound) and
// the last recorded pointer position used for drag deltas.
type View struct {
	Scale      float64
	RotX, RotY float64
	LastX      int
	LastY      int
}

const (
	// targetRatio is the fraction of the surface the object is scaled
	// to occupy along each fitted axis.
	targetRatio = 0.5
	// vertexRadius is the marker size drawn at each vertex.
	vertexRadius = 3
)

// accent is the outline, wireframe and vertex-marker color.
var accent = color.RGBA{B: 0xFF, A: 0xFF}

// Renderer converts a mesh and its view state into Surface draw calls.
// It is not safe for concurrent use; all calls belong on the event loop.
type Renderer struct {
	surface Surface
	mode    Mode
	view    View
}

// New returns a renderer in the given mode drawing to s.
func New(s Surface, mode Mode) *Renderer {
	return &Renderer{
		surface: s,
		mode:    mode,
		view:    View{Scale: 100},
	}
}

// Mode returns the renderer's fixed mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// View returns the mutable view state. The interaction layer updates the
// rotation angles and last pointer position through it.
func (r *Renderer) View() *View {
	return &r.view
}

// Render draws m on the surface. Scale is refitted from the unrotated
// bounding box on every call; when the mesh has no usable extent the
// previous scale is kept. An empty mesh clears the surface and draws
// nothing.
func (r *Renderer) Render(m *mesh.Mesh) {
	width, height := r.surface.Size()
	if b, ok := m.Bounds(); ok {
		if s, ok := geom.FitScale(b, width, height, targetRatio, r.mode == Mode3D); ok {
			r.view.Scale = s
		}
	}
	r.surface.Clear()

	switch r.mode {
	case Mode2D:
		r.render2D(m, width, height)
	case Mode3D:
		r.render3D(m, width, height)
	}
}

// project maps an object-space point to screen space. The origin is the
// surface center and Y is flipped, since screen coordinates grow down.
func (r *Renderer) project(p geom.Vec3, width, height int) Point {
	return Point{
		X: float64(width)/2 + p.X*r.view.Scale,
		Y: float64(height)/2 - p.Y*r.view.Scale,
	}
}

func (r *Renderer) render2D(m *mesh.Mesh, width, height int) {
	for _, f := range m.Faces {
		a, b, c := m.FaceCorners(f)
		pa := r.project(a, width, height)
		pb := r.project(b, width, height)
		pc := r.project(c, width, height)
		r.surface.Line(pa, pb, accent, 1)
		r.surface.Line(pb, pc, accent, 1)
		r.surface.Line(pc, pa, accent, 1)
	}
	for _, v := range m.Vertices {
		r.surface.Circle(r.project(v.Pos, width, height), vertexRadius, accent)
	}
}

// faceDraw is one depth-sorted polygon ready to emit.
type faceDraw struct {
	depth float64
	pts   [3]Point
	fill  color.RGBA
}

func (r *Renderer) render3D(m *mesh.Mesh, width, height int) {
	draws := make([]faceDraw, 0, len(m.Faces))
	for _, f := range m.Faces {
		a, b, c := m.FaceCorners(f)

		// The normal is computed in object space, then rotated with
		// the vertices and renormalized so shading sees a unit vector.
		n := geom.Rotate(geom.FaceNormal(a, b, c), r.view.RotX, r.view.RotY).Normalize()

		ra := geom.Rotate(a, r.view.RotX, r.view.RotY)
		rb := geom.Rotate(b, r.view.RotX, r.view.RotY)
		rc := geom.Rotate(c, r.view.RotX, r.view.RotY)

		draws = append(draws, faceDraw{
			// Depth is the mean rotated Z, before projection.
			depth: (ra.Z + rb.Z + rc.Z) / 3,
			pts: [3]Point{
				r.project(ra, width, height),
				r.project(rb, width, height),
				r.project(rc, width, height),
			},
			fill: shade(n.Z),
		})
	}

	// Painter's algorithm: furthest faces first. The sort must be
	// stable so equal depths keep their load order and repeated
	// renders emit identical sequences.
	sort.SliceStable(draws, func(i, j int) bool {
		return draws[i].depth < draws[j].depth
	})

	for _, d := range draws {
		r.surface.Polygon(d.pts[:], d.fill, accent)
	}

	for _, v := range m.Vertices {
		p := r.project(geom.Rotate(v.Pos, r.view.RotX, r.view.RotY), width, height)
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			continue
		}
		r.surface.Circle(p, vertexRadius, accent)
	}
}

// shade maps the rotated normal's Z component to a fill color. The angle
// between the normal and the view axis is acos(|nz|); intensity falls
// linearly from 1 at 0° (face-on) to 0 at 90° (edge-on), and the blue
// channel interpolates from 0xFF down to 0x5F accordingly.
func shade(nz float64) color.RGBA {
	angle := math.Acos(math.Min(math.Abs(nz), 1))
	angleDeg := angle * 180 / math.Pi
	intensity := 1 - angleDeg/90
	return color.RGBA{B: uint8(math.Round(95 + intensity*160)), A: 0xFF}
}
