// Package loader reads instruction descriptors from instruction set definition files.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Manu343726/encgen/pkg/isa"
	"github.com/Manu343726/encgen/pkg/utils"
)

var (
	ErrMalformedDescriptor = errors.New("malformed instruction descriptor")
	ErrUnknownFormat       = errors.New("unknown descriptor format")
)

// Format of a descriptor file
type Format string

const (
	// Detect the format from the file extension
	FormatAuto Format = ""
	// JSON record dump produced by llvm-tblgen --dump-json
	FormatTblgen Format = "tblgen"
	// Hand-written YAML descriptors
	FormatYAML Format = "yaml"
)

var Formats = []Format{FormatTblgen, FormatYAML}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatAuto, FormatTblgen, FormatYAML:
		return f, nil
	case "json":
		return FormatTblgen, nil
	case "yml":
		return FormatYAML, nil
	}

	return FormatAuto, utils.MakeError(ErrUnknownFormat, "'%v' (expected one of %v)", s, Formats)
}

// Returns the format of a descriptor file given its path
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatTblgen, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}

	return FormatAuto, utils.MakeError(ErrUnknownFormat, "cannot detect the format of '%v' from its extension", path)
}

// Reads all descriptors of a file. If format is [FormatAuto] it is detected from the path
func Load(path string, format Format) ([]*isa.Descriptor, error) {
	if format == FormatAuto {
		var err error
		if format, err = DetectFormat(path); err != nil {
			return nil, err
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	descriptors, err := Read(file, format)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}

	return descriptors, nil
}

// Reads all descriptors from a stream in the given format
func Read(r io.Reader, format Format) ([]*isa.Descriptor, error) {
	switch format {
	case FormatTblgen:
		return ReadTblgen(r)
	case FormatYAML:
		return ReadYAML(r)
	}

	return nil, utils.MakeError(ErrUnknownFormat, "'%v'", format)
}
