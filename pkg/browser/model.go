package browser

import (
	"fmt"
	"strings"

	"github.com/Manu343726/encgen/pkg/encoder"
)

// Subset of the results shown in the browser list
type View uint

const (
	View_All View = iota
	View_Synthesized
	View_Rejected
)

func (v View) String() string {
	switch v {
	case View_All:
		return "all"
	case View_Synthesized:
		return "synthesized"
	case View_Rejected:
		return "rejected"
	}

	return fmt.Sprintf("View(%d)", uint(v))
}

// Returns the view that follows v, wrapping around
func (v View) Next() View {
	return (v + 1) % (View_Rejected + 1)
}

func (v View) accepts(result *encoder.Result) bool {
	switch v {
	case View_Synthesized:
		return result.Ok()
	case View_Rejected:
		return !result.Ok()
	}

	return true
}

type Entry struct {
	// Index of the result in the batch
	Index int

	// Text shown in the list
	Label string

	// tview color tag of the label
	Color string

	Result *encoder.Result
}

func newEntry(index int, result *encoder.Result) Entry {
	if result.Ok() {
		return Entry{Index: index, Label: result.Descriptor.Name, Color: "green", Result: result}
	}

	return Entry{
		Index:  index,
		Label:  fmt.Sprintf("%v (%v)", result.Descriptor.Name, result.Rejection.Reason),
		Color:  "red",
		Result: result,
	}
}

// Returns the entries of the results matching the view whose instruction name contains query, ignoring case
func Entries(results []encoder.Result, view View, query string) []Entry {
	query = strings.ToLower(query)
	entries := []Entry{}

	for i := range results {
		result := &results[i]

		if !view.accepts(result) {
			continue
		}

		if query != "" && !strings.Contains(strings.ToLower(result.Descriptor.Name), query) {
			continue
		}

		entries = append(entries, newEntry(i, result))
	}

	return entries
}
