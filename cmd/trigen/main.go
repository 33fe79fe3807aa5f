// Trigen generates mesh files in the viewer's text format from simple
// solids, using SDF-based modeling and marching cubes tessellation.
//
// Usage:
//
//	trigen -shape box -x 40 -y 20 -z 10 -o box.txt
//	trigen -shape cylinder -radius 10 -height 30 -o cyl.txt
//	trigen -shape sphere -radius 15 -cells 32 -o ball.txt
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"trigon/internal/weld"
	"trigon/pkg/mesh"
)

func main() {
	shape := flag.String("shape", "box", "Solid to generate: box, cylinder or sphere.")
	x := flag.Float64("x", 2, "Box X dimension.")
	y := flag.Float64("y", 2, "Box Y dimension.")
	z := flag.Float64("z", 2, "Box Z dimension.")
	radius := flag.Float64("radius", 1, "Cylinder/sphere radius.")
	height := flag.Float64("height", 2, "Cylinder height.")
	cells := flag.Int("cells", 24, "Marching cubes resolution; higher means more faces.")
	out := flag.String("o", "", "Output file (default stdout).")
	flag.Parse()

	solid, err := makeSolid(*shape, *x, *y, *z, *radius, *height)
	if err != nil {
		log.Fatal(err)
	}

	triangles := render.ToTriangles(solid, render.NewMarchingCubesUniform(*cells))
	if len(triangles) == 0 {
		log.Fatal("tessellation produced no triangles")
	}

	m := weld.Triangles(triangles)
	log.Printf("%s: %d triangles welded to %d vertices, %d faces",
		*shape, len(triangles), m.VertexCount(), m.FaceCount())

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		w = f
	}
	if err := mesh.Encode(w, m); err != nil {
		log.Fatal(err)
	}
}

// makeSolid builds the requested SDF solid.
func makeSolid(shape string, x, y, z, radius, height float64) (sdf.SDF3, error) {
	switch shape {
	case "box":
		return sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	case "cylinder":
		return sdf.Cylinder3D(height, radius, 0)
	case "sphere":
		return sdf.Sphere3D(radius)
	default:
		return nil, fmt.Errorf("unknown shape %q (want box, cylinder or sphere)", shape)
	}
}
