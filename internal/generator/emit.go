package generator

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultSuffix names generated files: shapes.go becomes shapes_sealedgen.go.
const DefaultSuffix = "_sealedgen.go"

const generatedHeader = "// Code generated by sealedgen. DO NOT EDIT."

// sealedImportPath is the only import generated code needs.
const sealedImportPath = "github.com/Vuzi/sealedgen/pkg/sealed"

// OutputFile is one rendered generated file and its destination path.
type OutputFile struct {
	Path    string
	Content []byte
}

// renderFile assembles the unformatted source of one generated file. The
// families must share a package; they render in name order.
func renderFile(pkgName string, fams []*Family) ([]byte, error) {
	sorted := make([]*Family, len(fams))
	copy(sorted, fams)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n\n", generatedHeader)
	fmt.Fprintf(&buf, "package %s\n\n", pkgName)
	fmt.Fprintf(&buf, "import %q\n", sealedImportPath)

	for _, fam := range sorted {
		body, err := renderFamily(fam)
		if err != nil {
			return nil, err
		}
		buf.WriteString(body)
	}
	buf.WriteString("\n")

	return buf.Bytes(), nil
}

// Render renders and formats the generated file for one package's families.
func Render(pkgName string, fams []*Family) ([]byte, error) {
	raw, err := renderFile(pkgName, fams)
	if err != nil {
		return nil, err
	}
	formatted, err := format.Source(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code: %w", err)
	}
	return formatted, nil
}

// RenderSingle renders all families into one file. They must share a package;
// a single output file cannot hold more than one package clause.
func RenderSingle(fams []*Family) ([]byte, error) {
	if len(fams) == 0 {
		return nil, fmt.Errorf("no families to render")
	}
	pkgName := fams[0].Package
	for _, fam := range fams[1:] {
		if fam.Package != pkgName {
			return nil, fmt.Errorf("families %s and %s live in different packages; single-file output needs one package",
				fams[0].Name, fam.Name)
		}
	}
	return Render(pkgName, fams)
}

// RenderColocated renders one file per source file that declares families,
// without writing anything. Results are sorted by path.
func RenderColocated(fams []*Family, suffix string) ([]OutputFile, error) {
	var outs []OutputFile
	for sourceFile, group := range groupBySource(fams) {
		content, err := Render(group[0].Package, group)
		if err != nil {
			return nil, fmt.Errorf("failed to generate codecs for %s: %w", sourceFile, err)
		}
		outs = append(outs, OutputFile{Path: OutputPath(sourceFile, suffix), Content: content})
	}
	sort.Slice(outs, func(i, j int) bool { return outs[i].Path < outs[j].Path })
	return outs, nil
}

// GenerateFile renders the families' codecs and writes them to outputPath.
func GenerateFile(pkgName string, fams []*Family, outputPath string) error {
	raw, err := renderFile(pkgName, fams)
	if err != nil {
		return err
	}

	formatted, err := format.Source(raw)
	if err != nil {
		// Write unformatted code for debugging
		writeFile(outputPath+".debug", raw)
		return fmt.Errorf("failed to format generated code: %w", err)
	}

	if err := writeFile(outputPath, formatted); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// GenerateColocatedFiles writes one generated file next to each source file
// that declares families, and returns the written paths sorted.
func GenerateColocatedFiles(fams []*Family, suffix string) ([]string, error) {
	var paths []string
	for sourceFile, group := range groupBySource(fams) {
		outputPath := OutputPath(sourceFile, suffix)
		if err := GenerateFile(group[0].Package, group, outputPath); err != nil {
			return nil, fmt.Errorf("failed to generate codecs for %s: %w", sourceFile, err)
		}
		paths = append(paths, outputPath)
	}
	sort.Strings(paths)
	return paths, nil
}

// OutputPath names the generated file colocated with a family's source file.
func OutputPath(sourceFile, suffix string) string {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return strings.TrimSuffix(sourceFile, ".go") + suffix
}

func groupBySource(fams []*Family) map[string][]*Family {
	bySource := make(map[string][]*Family)
	for _, fam := range fams {
		bySource[fam.SourceFile] = append(bySource[fam.SourceFile], fam)
	}
	return bySource
}

// writeFile writes content to a file, creating directories if necessary
func writeFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return os.WriteFile(path, content, 0644)
}
