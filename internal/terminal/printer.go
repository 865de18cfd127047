package terminal

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Printer writes one progress line per event, coloured by outcome.
type Printer struct {
	writer  io.Writer
	notice  *color.Color
	success *color.Color
	failure *color.Color
	info    *color.Color
}

// NewPrinter creates a printer for writer. Colour is forced on or off so
// output does not depend on the global color.NoColor switch.
func NewPrinter(writer io.Writer, colorize bool) *Printer {
	p := &Printer{
		writer:  writer,
		notice:  color.New(color.FgYellow),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
		info:    color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.notice, p.success, p.failure, p.info} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Notice prints a warning that did not stop the run
func (p *Printer) Notice(line string) {
	p.notice.Fprintln(p.writer, line)
}

// Success prints a completed step
func (p *Printer) Success(line string) {
	p.success.Fprintln(p.writer, line)
}

// Failure prints a failed step
func (p *Printer) Failure(line string) {
	p.failure.Fprintln(p.writer, line)
}

// Info prints a neutral status line
func (p *Printer) Info(line string) {
	p.info.Fprintln(p.writer, line)
}

// Plain prints text without colour
func (p *Printer) Plain(s string) {
	fmt.Fprintln(p.writer, s)
}

// PlanRow is one planned move shown by RenderPlan
type PlanRow struct {
	Extension   string
	Source      string
	Destination string
}

// RenderPlan renders planned moves as a table
func RenderPlan(rows []PlanRow) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Extension", "Source", "Destination"})
	for i, row := range rows {
		tw.AppendRow(table.Row{i + 1, row.Extension, row.Source, row.Destination})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
