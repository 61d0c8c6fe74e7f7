// Interactive terminal browser over the results of a pipeline run
package browser

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Manu343726/encgen/pkg/codegen"
	"github.com/Manu343726/encgen/pkg/encoder"
	"github.com/Manu343726/encgen/pkg/report"
)

const help = "[yellow]tab[-] view  [yellow]/[-] filter  [yellow]esc[-] list  [yellow]q[-] quit"

type Browser struct {
	app       *tview.Application
	list      *tview.List
	details   *tview.TextView
	filter    *tview.InputField
	status    *tview.TextView
	results   []encoder.Result
	entries   []Entry
	generator *codegen.Generator
	report    *encoder.Report
	view      View
	query     string
	logger    *slog.Logger
}

// Builds a browser over the given results. The generator is used to show the code of each
// synthesized instruction and may be nil
func New(results []encoder.Result, generator *codegen.Generator, logger *slog.Logger) *Browser {
	b := &Browser{
		app:       tview.NewApplication(),
		list:      tview.NewList().ShowSecondaryText(false).SetHighlightFullLine(true),
		details:   tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false),
		filter:    tview.NewInputField().SetLabel("filter: "),
		status:    tview.NewTextView().SetDynamicColors(true),
		results:   results,
		generator: generator,
		report:    encoder.NewReport(results),
		logger:    logger,
	}

	b.list.SetBorder(true)
	b.details.SetBorder(true)

	b.list.SetChangedFunc(func(index int, _ string, _ string, _ rune) {
		b.show(index)
	})

	b.list.SetSelectedFunc(func(int, string, string, rune) {
		b.app.SetFocus(b.details)
	})

	b.filter.SetChangedFunc(b.setQuery)
	b.filter.SetDoneFunc(func(tcell.Key) {
		b.app.SetFocus(b.list)
	})

	columns := tview.NewFlex().
		AddItem(b.list, 0, 1, true).
		AddItem(b.details, 0, 3, false)

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(columns, 0, 1, true).
		AddItem(b.filter, 1, 0, false).
		AddItem(b.status, 1, 0, false)

	b.app.SetRoot(root, true).SetFocus(b.list)
	b.app.SetInputCapture(b.capture)

	b.refresh()
	return b
}

func (b *Browser) capture(event *tcell.EventKey) *tcell.EventKey {
	if b.app.GetFocus() == b.filter {
		return event
	}

	switch event.Key() {
	case tcell.KeyTab:
		b.setView(b.view.Next())
		return nil
	case tcell.KeyEscape:
		b.app.SetFocus(b.list)
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case '/':
			b.app.SetFocus(b.filter)
			return nil
		case 'q':
			b.app.Stop()
			return nil
		}
	}

	return event
}

func (b *Browser) setView(view View) {
	b.view = view
	b.refresh()
}

func (b *Browser) setQuery(query string) {
	b.query = query
	b.refresh()
}

// Rebuilds the list from the current view and query
func (b *Browser) refresh() {
	b.entries = Entries(b.results, b.view, b.query)
	b.list.Clear()

	for _, entry := range b.entries {
		b.list.AddItem(fmt.Sprintf("[%v]%v[-]", entry.Color, tview.Escape(entry.Label)), "", 0, nil)
	}

	b.list.SetTitle(fmt.Sprintf(" %v (%v) ", b.view, len(b.entries)))
	b.status.SetText(fmt.Sprintf("%v instructions  [green]%v[-] synthesized  [red]%v[-] rejected  %v",
		b.report.Total, b.report.Synthesized, b.report.RejectedTotal(), help))

	if len(b.entries) == 0 {
		b.details.Clear()
		return
	}

	b.show(b.list.GetCurrentItem())
}

// Shows the description of the entry at the given list index
func (b *Browser) show(index int) {
	b.details.Clear()

	if index < 0 || index >= len(b.entries) {
		return
	}

	entry := b.entries[index]
	b.details.SetTitle(fmt.Sprintf(" %v ", entry.Result.Descriptor.Name))

	var buffer bytes.Buffer
	if err := report.Describe(&buffer, entry.Result, b.generator); err != nil {
		b.logger.Error("cannot describe instruction", "instruction", entry.Result.Descriptor.Name, "error", err)
		fmt.Fprintf(b.details, "[red]%v[-]", tview.Escape(err.Error()))
		return
	}

	fmt.Fprint(tview.ANSIWriter(b.details), tview.Escape(buffer.String()))
	b.details.ScrollToBeginning()
}

// Runs the browser until the user quits
func (b *Browser) Run() error {
	return b.app.Run()
}
