package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/mesh-intelligence/wbedit/pkg/update"
)

// Printer writes human-readable reports.
type Printer struct {
	w       io.Writer
	heading func(string, ...any) string
	ops     map[string]func(string, ...any) string
	faint   func(string, ...any) string
}

// NewPrinter returns a printer writing to w. Colors are used only when
// colored is true, regardless of what w is.
func NewPrinter(w io.Writer, colored bool) *Printer {
	paint := func(attrs ...color.Attribute) func(string, ...any) string {
		c := color.New(attrs...)
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintfFunc()
	}
	return &Printer{
		w:       w,
		heading: paint(color.Bold),
		ops: map[string]func(string, ...any) string{
			OpAdd:     paint(color.FgGreen),
			OpReplace: paint(color.FgYellow),
			OpSet:     paint(color.FgCyan),
			OpRemove:  paint(color.FgRed),
		},
		faint: paint(color.Faint),
	}
}

// Print writes the report of u.
func (p *Printer) Print(u update.EntityUpdate) error {
	return p.PrintReport(NewReport(u), 0)
}

// PrintReport writes r indented by depth levels.
func (p *Printer) PrintReport(r Report, depth int) error {
	indent := strings.Repeat("  ", depth)
	mode := "blind"
	if r.BaseRevision != 0 {
		mode = fmt.Sprintf("base revision %d", r.BaseRevision)
	}
	if _, err := fmt.Fprintf(p.w, "%s%s %s\n", indent, p.heading("%s", r.Entity), p.faint("(%s, %s)", r.Kind, mode)); err != nil {
		return err
	}
	if r.Empty {
		_, err := fmt.Fprintf(p.w, "%s  %s\n", indent, p.faint("no changes"))
		return err
	}
	for _, c := range r.Changes {
		line := opSigil(c.Op) + " " + c.Section
		if c.Key != "" {
			line += " " + c.Key
		}
		if c.Value != "" {
			line += ": " + c.Value
		}
		if _, err := fmt.Fprintf(p.w, "%s  %s\n", indent, p.ops[c.Op]("%s", line)); err != nil {
			return err
		}
	}
	for _, nested := range r.Nested {
		if err := p.PrintReport(nested, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the reports of updates as an indented JSON array.
func WriteJSON(w io.Writer, updates ...update.EntityUpdate) error {
	reports := make([]Report, 0, len(updates))
	for _, u := range updates {
		reports = append(reports, NewReport(u))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}
