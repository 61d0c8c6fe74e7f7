package encoder

import (
	"fmt"
	"slices"

	"github.com/gobwas/glob"

	"github.com/Manu343726/encgen/pkg/isa"
	"github.com/Manu343726/encgen/pkg/utils"
)

type FilterOptions struct {
	// Glob patterns of instruction names that are not handled
	Exclude []string
	// Namespaces of records that are not real instructions
	Namespaces []string
}

func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		Exclude:    []string{"t*", "s*"},
		Namespaces: []string{"TargetOpcode"},
	}
}

type namePattern struct {
	text string
	glob glob.Glob
}

// Decides which instruction descriptors can be fed to the layout resolver
type Filter struct {
	exclude    []namePattern
	namespaces map[string]bool
}

func NewFilter(opts FilterOptions) (*Filter, error) {
	f := &Filter{
		exclude:    make([]namePattern, 0, len(opts.Exclude)),
		namespaces: make(map[string]bool, len(opts.Namespaces)),
	}

	for _, pattern := range opts.Exclude {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclusion pattern '%v': %w", pattern, err)
		}

		f.exclude = append(f.exclude, namePattern{text: pattern, glob: g})
	}

	for _, namespace := range opts.Namespaces {
		f.namespaces[namespace] = true
	}

	return f, nil
}

// Returns nil if the descriptor can be encoded, a [*Rejection] otherwise.
//
// Checks run in order: name patterns, instruction set membership, template presence and template width.
func (f *Filter) Check(d *isa.Descriptor) error {
	if i := slices.IndexFunc(f.exclude, func(p namePattern) bool { return p.glob.Match(d.Name) }); i >= 0 {
		return reject(d.Name, Reason_UnsupportedNamePrefix, "matches '%v'", f.exclude[i].text)
	}

	if f.namespaces[d.Namespace] {
		return reject(d.Name, Reason_NotPartOfInstructionSet, "namespace %v", d.Namespace)
	}

	if d.Flags.Any() {
		return reject(d.Name, Reason_NotPartOfInstructionSet, "%+v", d.Flags)
	}

	if d.Template.IsIncomplete() {
		return reject(d.Name, Reason_MissingOrIncompleteTemplate, "")
	}

	if d.Template.Width() != utils.WordBits {
		return reject(d.Name, Reason_UnsupportedWidth, "%v bit template", d.Template.Width())
	}

	return nil
}
