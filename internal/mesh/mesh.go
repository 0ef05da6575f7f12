// Package mesh holds the compiled-in wireframe geometry.
package mesh

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/meshgen -in tank.yaml -out tank_gen.go -var tankMesh
//go:generate go run ../../cmd/meshgen -in landscape.yaml -out landscape_gen.go -var landscapeMesh

// ErrIndexRange is returned when an edge references a missing vertex.
var ErrIndexRange = errors.New("mesh: edge index out of range")

// Edge joins two vertices by index.
type Edge [2]uint16

// Mesh is an immutable wireframe: vertices plus edge index pairs.
type Mesh struct {
	Name     string
	Vertices []mgl32.Vec3
	Edges    []Edge
}

// Tank returns a copy of the built-in tank wireframe. Forward is +Y, up is +Z.
func Tank() *Mesh { return tankMesh.Clone() }

// Landscape returns a copy of the built-in horizon silhouette. It lies in
// the y = 0 plane, spans x in [-0.5, 0.5] and rises along +Z.
func Landscape() *Mesh { return landscapeMesh.Clone() }

// Clone returns a deep copy of m.
func (m *Mesh) Clone() *Mesh {
	if m == nil {
		return nil
	}
	return &Mesh{
		Name:     m.Name,
		Vertices: append([]mgl32.Vec3(nil), m.Vertices...),
		Edges:    append([]Edge(nil), m.Edges...),
	}
}

// Validate checks every edge index.
func (m *Mesh) Validate() error {
	if m == nil || len(m.Vertices) == 0 {
		return errors.New("mesh: no vertices")
	}
	if len(m.Vertices) > math.MaxUint16+1 {
		return fmt.Errorf("mesh %s: %d vertices exceed uint16 indices", m.Name, len(m.Vertices))
	}
	for i, e := range m.Edges {
		for _, idx := range e {
			if int(idx) >= len(m.Vertices) {
				return fmt.Errorf("%w: %s edge %d uses vertex %d of %d", ErrIndexRange, m.Name, i, idx, len(m.Vertices))
			}
		}
	}
	return nil
}

// Fingerprint hashes the geometry. Identical meshes hash equal.
func (m *Mesh) Fingerprint() uint64 {
	if m == nil {
		return 0
	}
	d := xxhash.New()
	var buf [4]byte
	for _, v := range m.Vertices {
		for _, c := range v {
			binary.LittleEndian.PutUint32(buf[:], math.Float32bits(c))
			_, _ = d.Write(buf[:])
		}
	}
	// Separate the sections so vertex bytes cannot alias edge bytes.
	_, _ = d.Write([]byte{0xFF})
	for _, e := range m.Edges {
		binary.LittleEndian.PutUint16(buf[:2], e[0])
		binary.LittleEndian.PutUint16(buf[2:], e[1])
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// Bounds returns the axis-aligned extent of the vertices.
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if m == nil || len(m.Vertices) == 0 {
		return lo, hi
	}
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], v[i])
			hi[i] = max(hi[i], v[i])
		}
	}
	return lo, hi
}

// source is the YAML layout read by meshgen.
type source struct {
	Name     string       `yaml:"name"`
	Vertices [][3]float32 `yaml:"vertices"`
	Edges    [][2]uint16  `yaml:"edges"`
}

// Decode reads a YAML mesh description and validates it.
func Decode(r io.Reader) (*Mesh, error) {
	var src source
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&src); err != nil {
		return nil, fmt.Errorf("mesh: decode: %w", err)
	}
	m := &Mesh{Name: src.Name}
	m.Vertices = make([]mgl32.Vec3, len(src.Vertices))
	for i, v := range src.Vertices {
		m.Vertices[i] = mgl32.Vec3(v)
	}
	m.Edges = make([]Edge, len(src.Edges))
	for i, e := range src.Edges {
		m.Edges[i] = Edge(e)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
