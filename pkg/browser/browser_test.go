package browser

import (
	"io"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manu343726/encgen/pkg/codegen"
	"github.com/Manu343726/encgen/pkg/encoder"
	"github.com/Manu343726/encgen/pkg/isa"
)

func descriptor(name string, template string) *isa.Descriptor {
	return &isa.Descriptor{
		Name:      name,
		Namespace: "ARM",
		Template:  isa.MustParseTemplate(template),
		Outs:      []isa.Argument{{Name: "Rd", Type: "GPR"}},
		Ins:       []isa.Argument{{Name: "Rn", Type: "GPR"}},
		Fields:    map[string]isa.Field{"Rd": {Width: 4}, "Rn": {Width: 4}},
		Size:      4,
	}
}

func results(t *testing.T) []encoder.Result {
	pipeline, err := encoder.NewPipeline(encoder.DefaultOptions())
	require.NoError(t, err)

	descriptors := []*isa.Descriptor{
		descriptor("MOVr", "1110 0001 1010 0000 Rd:4 0000 0000 Rn:4"),
		descriptor("tMOVr", "1110 0001 1010 0000 Rd:4 0000 0000 Rn:4"),
		descriptor("MVNr", "1110 0001 1110 0000 Rd:4 0000 0000 Rn:4"),
	}

	results := make([]encoder.Result, 0, len(descriptors))
	for _, d := range descriptors {
		results = append(results, pipeline.Process(d))
	}

	return results
}

func labels(entries []Entry) []string {
	result := make([]string, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.Label)
	}

	return result
}

func TestEntries(t *testing.T) {
	cases := []struct {
		name     string
		view     View
		query    string
		expected []string
	}{
		{name: "All", view: View_All, expected: []string{"MOVr", "tMOVr (UnsupportedNamePrefix)", "MVNr"}},
		{name: "Synthesized", view: View_Synthesized, expected: []string{"MOVr", "MVNr"}},
		{name: "Rejected", view: View_Rejected, expected: []string{"tMOVr (UnsupportedNamePrefix)"}},
		{name: "QueryIgnoresCase", view: View_All, query: "movr", expected: []string{"MOVr", "tMOVr (UnsupportedNamePrefix)"}},
		{name: "QueryAndView", view: View_Synthesized, query: "MOV", expected: []string{"MOVr"}},
		{name: "NoMatches", view: View_All, query: "LDR", expected: []string{}},
	}

	rs := results(t)

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, labels(Entries(rs, c.view, c.query)))
		})
	}
}

func TestEntriesKeepBatchIndex(t *testing.T) {
	entries := Entries(results(t), View_Synthesized, "")

	require.Len(t, entries, 2)
	assert.Equal(t, 0, entries[0].Index)
	assert.Equal(t, 2, entries[1].Index)
	assert.Equal(t, "green", entries[0].Color)
	assert.Equal(t, "red", Entries(results(t), View_Rejected, "")[0].Color)
}

func TestViewNext(t *testing.T) {
	assert.Equal(t, View_Synthesized, View_All.Next())
	assert.Equal(t, View_Rejected, View_Synthesized.Next())
	assert.Equal(t, View_All, View_Rejected.Next())
	assert.Equal(t, "rejected", View_Rejected.String())
}

func TestBrowser(t *testing.T) {
	color.NoColor = true

	g, err := codegen.NewGenerator(codegen.DefaultOptions())
	require.NoError(t, err)

	b := New(results(t), g, slog.New(slog.NewTextHandler(io.Discard, nil)))

	t.Run("ListsAllResults", func(t *testing.T) {
		assert.Equal(t, 3, b.list.GetItemCount())
		assert.Contains(t, b.details.GetText(true), "MOVr")
		assert.Contains(t, b.status.GetText(true), "3 instructions")
	})

	t.Run("ShowsRejection", func(t *testing.T) {
		b.show(1)
		assert.Contains(t, b.details.GetText(true), "rejected: UnsupportedNamePrefix")
	})

	t.Run("TabCyclesViews", func(t *testing.T) {
		assert.Nil(t, b.capture(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone)))
		assert.Equal(t, View_Synthesized, b.view)
		assert.Equal(t, 2, b.list.GetItemCount())
	})

	t.Run("Query", func(t *testing.T) {
		b.setQuery("mvn")
		assert.Equal(t, 1, b.list.GetItemCount())
		assert.Contains(t, b.details.GetText(true), "MVNr")

		b.setQuery("nothing")
		assert.Equal(t, 0, b.list.GetItemCount())
		assert.Empty(t, b.details.GetText(true))
	})

	t.Run("OtherKeysPassThrough", func(t *testing.T) {
		event := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
		assert.Equal(t, event, b.capture(event))
	})
}
