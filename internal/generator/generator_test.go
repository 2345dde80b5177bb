package generator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeFixtureModule lays out a small self-contained module for end-to-end
// runs through the real package loader.
func writeFixtureModule(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	gomod := "module example.com/shapesfixture\n\ngo 1.21\n"
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte(gomod), 0644); err != nil {
		t.Fatalf("failed to write go.mod: %v", err)
	}

	source := `package shapesfixture

//sealedgen:family
type Shape interface {
	isShape()
}

type Circle struct {
	Radius float64 ` + "`json:\"radius\"`" + `
}

func (Circle) isShape() {}

type halt struct{}

func (halt) isShape() {}

var Halt = halt{}
`
	if err := os.WriteFile(filepath.Join(dir, "shapes.go"), []byte(source), 0644); err != nil {
		t.Fatalf("failed to write fixture source: %v", err)
	}
	return dir
}

func TestGeneratorRun(t *testing.T) {
	dir := writeFixtureModule(t)

	rep, err := New(Config{Dir: dir}, nil).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(rep.Families) != 1 || rep.Families[0].Name != "Shape" {
		t.Fatalf("families = %+v, want Shape", rep.Families)
	}
	if len(rep.Files) != 1 || rep.Files[0] != filepath.Join(dir, "shapes_sealedgen.go") {
		t.Fatalf("files = %v, want colocated shapes_sealedgen.go", rep.Files)
	}

	content, err := os.ReadFile(rep.Files[0])
	if err != nil {
		t.Fatalf("failed to read generated file: %v", err)
	}
	for _, want := range []string{
		"func DecodeShape",
		"func EncodeShape",
		"var ShapeCodec",
		`case "Circle":`,
		`case "Halt":`,
		"return Halt, nil",
	} {
		if !strings.Contains(string(content), want) {
			t.Errorf("generated file missing: %s", want)
		}
	}
}

func TestGeneratorRunDryRun(t *testing.T) {
	dir := writeFixtureModule(t)

	rep, err := New(Config{Dir: dir, DryRun: true}, nil).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(rep.Files) != 1 {
		t.Fatalf("files = %v, want one planned file", rep.Files)
	}
	if _, err := os.Stat(rep.Files[0]); !os.IsNotExist(err) {
		t.Error("dry run must not write files")
	}
}

func TestGeneratorRunExplicitRequest(t *testing.T) {
	dir := writeFixtureModule(t)

	cfg := Config{
		Dir:      dir,
		Requests: []Request{{Type: "Shape", Tag: "kind", Ops: OpsDecode}},
	}
	rep, err := New(cfg, nil).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	content, err := os.ReadFile(rep.Files[0])
	if err != nil {
		t.Fatalf("failed to read generated file: %v", err)
	}
	if !strings.Contains(string(content), `sealed.Tag(data, "kind")`) {
		t.Error("explicit request should override the tag field")
	}
	if strings.Contains(string(content), "func EncodeShape") {
		t.Error("ops=decode should omit the encoder")
	}
}

func TestGeneratorRunSingleOutput(t *testing.T) {
	dir := writeFixtureModule(t)
	output := filepath.Join(dir, "gen", "codecs.go")

	rep, err := New(Config{Dir: dir, Output: output}, nil).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(rep.Files) != 1 || rep.Files[0] != output {
		t.Fatalf("files = %v, want %s", rep.Files, output)
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("single output file not written: %v", err)
	}
}

func TestGeneratorNoRequests(t *testing.T) {
	dir := t.TempDir()
	gomod := "module example.com/emptyfixture\n\ngo 1.21\n"
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte(gomod), 0644); err != nil {
		t.Fatalf("failed to write go.mod: %v", err)
	}
	source := "package emptyfixture\n\ntype Plain struct{}\n"
	if err := os.WriteFile(filepath.Join(dir, "plain.go"), []byte(source), 0644); err != nil {
		t.Fatalf("failed to write fixture source: %v", err)
	}

	_, err := New(Config{Dir: dir}, nil).Run()
	if err == nil || !strings.Contains(err.Error(), "no families requested") {
		t.Fatalf("Run() error = %v, want no-families failure", err)
	}
}

func TestGeneratorDuplicateRequests(t *testing.T) {
	dir := writeFixtureModule(t)

	cfg := Config{
		Dir:      dir,
		Requests: []Request{{Type: "Shape"}, {Type: "Shape"}},
	}
	_, err := New(cfg, nil).Run()
	if err == nil || !strings.Contains(err.Error(), "more than once") {
		t.Fatalf("Run() error = %v, want duplicate-request failure", err)
	}
}
