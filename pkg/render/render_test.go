package render_test

import (
	"image/color"
	"math"
	"strings"
	"testing"

	"trigon/pkg/mesh"
	"trigon/pkg/render"
)

// op records one draw call issued to the recorder surface.
type op struct {
	kind    string // "clear", "line", "polygon", "circle"
	pts     []render.Point
	fill    color.Color
	outline color.Color
}

// recorder is a Surface that records every call for inspection.
type recorder struct {
	width, height int
	ops           []op
}

func newRecorder() *recorder {
	return &recorder{width: 800, height: 600}
}

func (s *recorder) Size() (int, int) { return s.width, s.height }

func (s *recorder) Clear() {
	s.ops = append(s.ops, op{kind: "clear"})
}

func (s *recorder) Line(a, b render.Point, col color.Color, width float64) {
	s.ops = append(s.ops, op{kind: "line", pts: []render.Point{a, b}, fill: col})
}

func (s *recorder) Polygon(pts []render.Point, fill, outline color.Color) {
	cp := append([]render.Point(nil), pts...)
	s.ops = append(s.ops, op{kind: "polygon", pts: cp, fill: fill, outline: outline})
}

func (s *recorder) Circle(center render.Point, radius float64, fill color.Color) {
	s.ops = append(s.ops, op{kind: "circle", pts: []render.Point{center}, fill: fill})
}

func (s *recorder) count(kind string) int {
	n := 0
	for _, o := range s.ops {
		if o.kind == kind {
			n++
		}
	}
	return n
}

func (s *recorder) polygons() []op {
	var out []op
	for _, o := range s.ops {
		if o.kind == "polygon" {
			out = append(out, o)
		}
	}
	return out
}

func loadMesh(t *testing.T, src string) *mesh.Mesh {
	t.Helper()
	m, err := mesh.Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return m
}

const unitTriangle = "3,1\n1,0,0,0\n2,1,0,0\n3,0,1,0\n1,2,3\n"

func TestRenderFlatTriangleIsFullBlue(t *testing.T) {
	s := newRecorder()
	r := render.New(s, render.Mode3D)
	r.Render(loadMesh(t, unitTriangle))

	polys := s.polygons()
	if len(polys) != 1 {
		t.Fatalf("polygon count = %d, want 1", len(polys))
	}
	// Normal (0,0,1), no rotation: intensity 1, fill #0000FF.
	want := color.RGBA{B: 0xFF, A: 0xFF}
	if polys[0].fill != want {
		t.Errorf("fill = %v, want %v", polys[0].fill, want)
	}
}

func TestRenderEdgeOnTriangleIsDimBlue(t *testing.T) {
	s := newRecorder()
	r := render.New(s, render.Mode3D)
	r.View().RotX = math.Pi / 2
	r.Render(loadMesh(t, unitTriangle))

	polys := s.polygons()
	if len(polys) != 1 {
		t.Fatalf("polygon count = %d, want 1", len(polys))
	}
	// The rotated normal is edge-on: intensity ~0, fill ~#00005F.
	fill := polys[0].fill.(color.RGBA)
	if fill.R != 0 || fill.G != 0 {
		t.Errorf("fill = %v, want red/green zero", fill)
	}
	if fill.B != 0x5F {
		t.Errorf("blue channel = %#x, want 0x5f", fill.B)
	}
}

func TestRenderIdempotent(t *testing.T) {
	m := loadMesh(t, "4,2\n1,0,0,0\n2,1,0,0\n3,0,1,0\n4,1,1,1\n1,2,3\n2,3,4\n")

	s1 := newRecorder()
	r1 := render.New(s1, render.Mode3D)
	r1.View().RotX, r1.View().RotY = 0.4, -1.2
	r1.Render(m)
	r1.Render(m)

	// Two consecutive renders with unchanged state emit identical
	// sequences.
	half := len(s1.ops) / 2
	if len(s1.ops)%2 != 0 {
		t.Fatalf("op count %d not even across two renders", len(s1.ops))
	}
	for i := 0; i < half; i++ {
		a, b := s1.ops[i], s1.ops[half+i]
		if a.kind != b.kind || len(a.pts) != len(b.pts) || a.fill != b.fill {
			t.Fatalf("op %d differs between renders: %+v vs %+v", i, a, b)
		}
		for j := range a.pts {
			if a.pts[j] != b.pts[j] {
				t.Fatalf("op %d point %d differs: %+v vs %+v", i, j, a.pts[j], b.pts[j])
			}
		}
	}
}

func TestPainterSortIsStableForEqualDepths(t *testing.T) {
	// Two coplanar faces share the same mean Z; their draw order must be
	// their load order, render after render.
	m := loadMesh(t, "6,2\n1,0,0,0\n2,1,0,0\n3,0,1,0\n4,2,0,0\n5,3,0,0\n6,2,1,0\n1,2,3\n4,5,6\n")
	s := newRecorder()
	r := render.New(s, render.Mode3D)
	r.Render(m)

	polys := s.polygons()
	if len(polys) != 2 {
		t.Fatalf("polygon count = %d, want 2", len(polys))
	}
	// Face 1 has smaller X coordinates; after projection its points sit
	// to the left of face 2's.
	if polys[0].pts[0].X >= polys[1].pts[0].X {
		t.Errorf("equal-depth faces drawn out of load order: %+v then %+v",
			polys[0].pts[0], polys[1].pts[0])
	}
}

func TestPainterSortBackToFront(t *testing.T) {
	// Two parallel triangles at z=-5 and z=+5. The far one (negative
	// rotated Z) must be drawn first.
	m := loadMesh(t, "6,2\n1,0,0,5\n2,1,0,5\n3,0,1,5\n4,0,0,-5\n5,1,0,-5\n6,0,1,-5\n1,2,3\n4,5,6\n")
	s := newRecorder()
	r := render.New(s, render.Mode3D)
	r.Render(m)

	polys := s.polygons()
	if len(polys) != 2 {
		t.Fatalf("polygon count = %d, want 2", len(polys))
	}
	// Without rotation both faces project to identical screen points,
	// so distinguish them by fill being equal and order by checking the
	// recorder sequence: the second loaded face (z=-5) is further back
	// and must come first. Rotate slightly about Y so screen X differs.
	s2 := newRecorder()
	r2 := render.New(s2, render.Mode3D)
	r2.View().RotY = 0.2
	r2.Render(m)
	polys = s2.polygons()
	// After a small +Y rotation the z=-5 face shifts left, the z=+5
	// face shifts right; back-to-front means left-shifted drawn first.
	if polys[0].pts[0].X >= polys[1].pts[0].X {
		t.Errorf("far face not drawn first: %+v then %+v", polys[0].pts[0], polys[1].pts[0])
	}
}

func TestRenderEmptyMesh(t *testing.T) {
	s := newRecorder()
	r := render.New(s, render.Mode3D)
	r.Render(&mesh.Mesh{})
	if s.count("polygon")+s.count("line")+s.count("circle") != 0 {
		t.Errorf("empty mesh emitted draw ops: %+v", s.ops)
	}
	if s.count("clear") != 1 {
		t.Errorf("clear count = %d, want 1", s.count("clear"))
	}
	// The default scale survives a render with nothing to fit.
	if r.View().Scale != 100 {
		t.Errorf("scale = %v, want 100", r.View().Scale)
	}
}

func TestRender2DWireframe(t *testing.T) {
	m := loadMesh(t, unitTriangle)
	s := newRecorder()
	r := render.New(s, render.Mode2D)
	r.Render(m)

	if got := s.count("line"); got != 3 {
		t.Errorf("line count = %d, want 3", got)
	}
	if got := s.count("circle"); got != 3 {
		t.Errorf("circle count = %d, want 3", got)
	}
	if got := s.count("polygon"); got != 0 {
		t.Errorf("polygon count = %d, want 0", got)
	}
}

func TestRender2DScaleIgnoresDepth(t *testing.T) {
	// A mesh much deeper than wide: 2D fit must only consider x and y.
	m := loadMesh(t, "2,0\n1,0,0,0\n2,1,1,1000\n")
	s := newRecorder()
	r := render.New(s, render.Mode2D)
	r.Render(m)
	if got := r.View().Scale; math.Abs(got-300) > 1e-9 {
		t.Errorf("scale = %v, want 300", got)
	}
}

func TestProjectionCentersOnSurface(t *testing.T) {
	// A single vertex at the origin lands on the surface center.
	m := loadMesh(t, "2,0\n1,0,0,0\n2,2,2,0\n")
	s := newRecorder()
	r := render.New(s, render.Mode2D)
	r.Render(m)

	var circles []op
	for _, o := range s.ops {
		if o.kind == "circle" {
			circles = append(circles, o)
		}
	}
	if len(circles) != 2 {
		t.Fatalf("circle count = %d, want 2", len(circles))
	}
	c := circles[0].pts[0]
	if c.X != 400 || c.Y != 300 {
		t.Errorf("origin projected to %+v, want (400,300)", c)
	}
	// Y is flipped: the vertex with positive object Y sits above center.
	c = circles[1].pts[0]
	if c.Y >= 300 {
		t.Errorf("positive-Y vertex projected to %+v, want screen Y < 300", c)
	}
}

func TestRenderRefitsScaleAfterResize(t *testing.T) {
	m := loadMesh(t, unitTriangle)
	s := newRecorder()
	r := render.New(s, render.Mode2D)
	r.Render(m)
	first := r.View().Scale

	s.width, s.height = 400, 300
	r.Render(m)
	if r.View().Scale == first {
		t.Errorf("scale %v unchanged after surface resize", r.View().Scale)
	}
}

func TestRotationDoesNotChangeScale(t *testing.T) {
	// 3D fitting uses the unrotated bounding box, so rotating must not
	// re-derive a different scale.
	m := loadMesh(t, unitTriangle)
	s := newRecorder()
	r := render.New(s, render.Mode3D)
	r.Render(m)
	fitted := r.View().Scale

	r.View().RotX, r.View().RotY = 1.1, -0.7
	r.Render(m)
	if r.View().Scale != fitted {
		t.Errorf("scale changed under rotation: %v -> %v", fitted, r.View().Scale)
	}
}

func TestDegenerateFaceStillDrawn(t *testing.T) {
	// A zero-area face participates in shading and sorting with its
	// noise normal instead of being rejected.
	m := loadMesh(t, "3,1\n1,1,1,1\n2,1,1,1\n3,1,1,1\n1,2,3\n")
	s := newRecorder()
	r := render.New(s, render.Mode3D)
	r.Render(m)
	if got := s.count("polygon"); got != 1 {
		t.Errorf("polygon count = %d, want 1", got)
	}
	fill := s.polygons()[0].fill.(color.RGBA)
	if fill.B < 0x5F || fill.B > 0xFF {
		t.Errorf("degenerate fill = %v, want blue in [0x5f,0xff]", fill)
	}
}
