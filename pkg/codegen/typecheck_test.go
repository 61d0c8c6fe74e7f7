package codegen

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Resolves the asm runtime from its sources in this repository and everything else from GOROOT
type runtimeImporter struct {
	fset    *token.FileSet
	std     types.Importer
	runtime *types.Package
}

func newRuntimeImporter(fset *token.FileSet) *runtimeImporter {
	return &runtimeImporter{fset: fset, std: importer.ForCompiler(fset, "source", nil)}
}

func (i *runtimeImporter) Import(path string) (*types.Package, error) {
	if path != DefaultOptions().AsmImport {
		return i.std.Import(path)
	}

	if i.runtime != nil {
		return i.runtime, nil
	}

	dir := filepath.Join("..", "asm")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := []*ast.File{}
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".go") || strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}

		file, err := parser.ParseFile(i.fset, filepath.Join(dir, entry.Name()), nil, 0)
		if err != nil {
			return nil, err
		}

		files = append(files, file)
	}

	config := types.Config{Importer: i.std}
	i.runtime, err = config.Check(path, i.fset, files, nil)
	return i.runtime, err
}

// Type checks generated go code against the asm runtime
func typecheck(t *testing.T, code string) *types.Package {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "isa.go", code, 0)
	require.NoError(t, err, code)

	config := types.Config{Importer: newRuntimeImporter(fset)}
	pkg, err := config.Check("example.com/"+file.Name.Name, fset, []*ast.File{file}, nil)
	require.NoError(t, err, code)

	return pkg
}
