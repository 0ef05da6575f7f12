// Command meshgen converts a YAML wireframe description into a Go source
// file holding a mesh.Mesh literal for package mesh.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strconv"
	"text/template"

	"tankdemo/internal/mesh"
)

func main() {
	var (
		inPath  = flag.String("in", "", "Input mesh description (.yaml).")
		outPath = flag.String("out", "", "Output Go file.")
		varName = flag.String("var", "", "Variable name of the generated mesh.")
	)
	flag.Parse()

	if *inPath == "" || *outPath == "" || *varName == "" {
		fatalf("usage: meshgen -in tank.yaml -out tank_gen.go -var tankMesh")
	}

	in, err := os.Open(*inPath)
	if err != nil {
		fatalf("open: %v", err)
	}
	m, err := mesh.Decode(in)
	_ = in.Close()
	if err != nil {
		fatalf("%s: %v", *inPath, err)
	}

	src, err := generate(m, *varName, filepath.Base(*inPath))
	if err != nil {
		fatalf("generate: %v", err)
	}
	if err := os.WriteFile(*outPath, src, 0o644); err != nil {
		fatalf("write: %v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

var fileTmpl = template.Must(template.New("mesh").Funcs(template.FuncMap{
	"num": formatFloat,
}).Parse(`// Code generated by meshgen from {{.Source}}; DO NOT EDIT.

package mesh

import "github.com/go-gl/mathgl/mgl32"

var {{.Var}} = Mesh{
	Name: {{printf "%q" .Mesh.Name}},
	Vertices: []mgl32.Vec3{
{{- range .Mesh.Vertices}}
		{ {{- num (index . 0)}}, {{num (index . 1)}}, {{num (index . 2) -}} },
{{- end}}
	},
	Edges: []Edge{
{{- range .Mesh.Edges}}
		{ {{- index . 0}}, {{index . 1 -}} },
{{- end}}
	},
}
`))

// generate renders and gofmts the source for m. The output belongs to
// package mesh.
func generate(m *mesh.Mesh, varName, source string) ([]byte, error) {
	var buf bytes.Buffer
	err := fileTmpl.Execute(&buf, struct {
		Var    string
		Source string
		Mesh   *mesh.Mesh
	}{varName, source, m})
	if err != nil {
		return nil, err
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	return out, nil
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
