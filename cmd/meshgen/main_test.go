package main

import (
	"go/parser"
	"go/token"
	"os"
	"strings"
	"testing"

	"tankdemo/internal/mesh"
)

func TestGenerateSource(t *testing.T) {
	m, err := mesh.Decode(strings.NewReader(`
name: tri
vertices:
  - [0, 0, 0]
  - [1.5, 0, 0]
  - [0, -0.25, 2]
edges:
  - [0, 1]
  - [1, 2]
  - [2, 0]
`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	src, err := generate(m, "triMesh", "tri.yaml")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	out := string(src)
	for _, want := range []string{
		"// Code generated by meshgen from tri.yaml; DO NOT EDIT.",
		"var triMesh = Mesh{",
		`Name: "tri",`,
		"{1.5, 0, 0},",
		"{0, -0.25, 2},",
		"{2, 0},",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if _, err := parser.ParseFile(token.NewFileSet(), "tri_gen.go", src, 0); err != nil {
		t.Fatalf("generated source does not parse: %v", err)
	}
}

// The checked-in *_gen.go files must match their YAML sources.
func TestBuiltinSourcesUpToDate(t *testing.T) {
	for _, tt := range []struct {
		yaml     string
		compiled *mesh.Mesh
	}{
		{"tank.yaml", mesh.Tank()},
		{"landscape.yaml", mesh.Landscape()},
	} {
		in, err := os.Open("../../internal/mesh/" + tt.yaml)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		m, err := mesh.Decode(in)
		in.Close()
		if err != nil {
			t.Fatalf("%s: Decode: %v", tt.yaml, err)
		}
		if got, want := m.Fingerprint(), tt.compiled.Fingerprint(); got != want {
			t.Fatalf("%s is stale: yaml fingerprint %x, compiled %x (run go generate ./internal/mesh)", tt.yaml, got, want)
		}
	}
}
