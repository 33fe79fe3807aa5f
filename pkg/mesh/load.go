package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMalformed indicates a structurally invalid mesh file: wrong field
// count, a non-numeric value, or fewer lines than the header declares.
var ErrMalformed = errors.New("malformed mesh file")

// ErrVertexRef indicates a face referencing a vertex ID outside the
// declared range. It is a load-time error; no such face ever reaches the
// renderer.
var ErrVertexRef = errors.New("face references unknown vertex")

// Load parses a mesh from r.
//
// The format is line-oriented CSV: a header `<vertex_count>,<face_count>`,
// then one `<id>,<x>,<y>,<z>` line per vertex and one `<v1>,<v2>,<v3>`
// line per face. Vertex IDs are 1-based and must match their position in
// the file. All face references are validated eagerly, so a mesh returned
// by Load is safe to index without further checks.
//
// On any error the returned mesh is nil; callers keep whatever mesh they
// had before.
func Load(r io.Reader) (*Mesh, error) {
	sc := bufio.NewScanner(r)

	header, err := nextLine(sc)
	if err != nil {
		return nil, fmt.Errorf("%w: missing header: %v", ErrMalformed, err)
	}
	counts, err := splitFields(header, 2)
	if err != nil {
		return nil, fmt.Errorf("%w: header %q: %v", ErrMalformed, header, err)
	}
	nv, err := parseCount(counts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: vertex count %q: %v", ErrMalformed, counts[0], err)
	}
	nf, err := parseCount(counts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: face count %q: %v", ErrMalformed, counts[1], err)
	}

	m := &Mesh{
		Vertices: make([]Vertex, 0, nv),
		Faces:    make([]Face, 0, nf),
	}

	for i := 0; i < nv; i++ {
		line, err := nextLine(sc)
		if err != nil {
			return nil, fmt.Errorf("%w: expected %d vertices, got %d: %v", ErrMalformed, nv, i, err)
		}
		v, err := parseVertex(line)
		if err != nil {
			return nil, fmt.Errorf("%w: vertex line %d: %v", ErrMalformed, i+1, err)
		}
		if v.ID != i+1 {
			return nil, fmt.Errorf("%w: vertex line %d has id %d, want %d", ErrMalformed, i+1, v.ID, i+1)
		}
		m.Vertices = append(m.Vertices, v)
	}

	for i := 0; i < nf; i++ {
		line, err := nextLine(sc)
		if err != nil {
			return nil, fmt.Errorf("%w: expected %d faces, got %d: %v", ErrMalformed, nf, i, err)
		}
		f, err := parseFace(line)
		if err != nil {
			return nil, fmt.Errorf("%w: face line %d: %v", ErrMalformed, i+1, err)
		}
		for _, id := range f.V {
			if id < 1 || id > nv {
				return nil, fmt.Errorf("%w: face line %d: id %d outside [1,%d]", ErrVertexRef, i+1, id, nv)
			}
		}
		m.Faces = append(m.Faces, f)
	}

	return m, nil
}

// LoadFile opens and parses the mesh file at path.
func LoadFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func nextLine(sc *bufio.Scanner) (string, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", errors.New("unexpected end of file")
	}
	return strings.TrimSpace(sc.Text()), nil
}

func splitFields(line string, n int) ([]string, error) {
	parts := strings.Split(line, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d fields, got %d", n, len(parts))
	}
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts, nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return n, nil
}

// parseVertex parses `<id>,<x>,<y>,<z>`. The ID field is parsed as a
// float and truncated, so "1.0" is accepted as id 1.
func parseVertex(line string) (Vertex, error) {
	parts, err := splitFields(line, 4)
	if err != nil {
		return Vertex{}, err
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		vals[i], err = strconv.ParseFloat(p, 64)
		if err != nil {
			return Vertex{}, fmt.Errorf("field %d: %v", i+1, err)
		}
	}
	v := Vertex{ID: int(vals[0])}
	v.Pos.X, v.Pos.Y, v.Pos.Z = vals[1], vals[2], vals[3]
	if v.ID < 1 {
		return Vertex{}, fmt.Errorf("non-positive vertex id %d", v.ID)
	}
	return v, nil
}

func parseFace(line string) (Face, error) {
	parts, err := splitFields(line, 3)
	if err != nil {
		return Face{}, err
	}
	var f Face
	for i, p := range parts {
		f.V[i], err = strconv.Atoi(p)
		if err != nil {
			return Face{}, fmt.Errorf("field %d: %v", i+1, err)
		}
	}
	return f, nil
}

// Encode writes m to w in the same format Load reads.
func Encode(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d,%d\n", len(m.Vertices), len(m.Faces))
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "%d,%g,%g,%g\n", v.ID, v.Pos.X, v.Pos.Y, v.Pos.Z)
	}
	for _, f := range m.Faces {
		fmt.Fprintf(bw, "%d,%d,%d\n", f.V[0], f.V[1], f.V[2])
	}
	return bw.Flush()
}
