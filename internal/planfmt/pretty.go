package planfmt

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"traitgen/internal/diag"
	"traitgen/internal/driver"
	"traitgen/internal/plan"
	"traitgen/internal/traits"
)

// Pretty writes a human-readable listing: one block per type with its
// per-trait decisions and member rules, then the sorted diagnostics.
// Callers pass results in input order; the bag is expected to be sorted.
func Pretty(w io.Writer, results []driver.Result, bag *diag.Bag, opts PrettyOpts) {
	p := prettyPrinter{w: w, opts: opts}
	for i := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		p.printPlan(results[i])
	}
	if bag != nil && bag.Len() > 0 {
		fmt.Fprintln(w)
		for _, d := range bag.Items() {
			p.printDiagnostic(d)
		}
	}
}

type prettyPrinter struct {
	w    io.Writer
	opts PrettyOpts
}

func (p *prettyPrinter) paint(c *color.Color, s string) string {
	if !p.opts.Color {
		return s
	}
	return c.Sprint(s)
}

var (
	headColor     = color.New(color.Bold)
	emitColor     = color.New(color.FgGreen)
	suppressColor = color.New(color.FgCyan)
	refuseColor   = color.New(color.FgRed)
	dimColor      = color.New(color.Faint)
	warnColor     = color.New(color.FgYellow, color.Bold)
	errColor      = color.New(color.FgRed, color.Bold)
	infoColor     = color.New(color.FgBlue, color.Bold)
)

func (p *prettyPrinter) printPlan(r driver.Result) {
	pl := r.Plan
	head := fmt.Sprintf("%s  (%s, case=%s)", pl.Type, r.Shape.Tag, pl.Case)
	if r.CacheHit {
		head += p.paint(dimColor, "  [cached]")
	}
	fmt.Fprintln(p.w, p.paint(headColor, head))
	if p.opts.ShowDigest {
		fmt.Fprintf(p.w, "  digest %s\n", hex.EncodeToString(pl.Digest[:8]))
	}

	for t := traits.Trait(0); t < traits.Count; t++ {
		d := pl.Decisions[t]
		if d.Kind == plan.NotRequested {
			continue
		}
		name := runewidth.FillRight(t.String(), 14)
		switch d.Kind {
		case plan.Emit:
			fmt.Fprintf(p.w, "  %s %s\n", name, p.paint(emitColor, "emit"))
		case plan.Suppress:
			fmt.Fprintf(p.w, "  %s %s (%s)\n", name, p.paint(suppressColor, "suppress"), d.Reason)
		case plan.Refuse:
			fmt.Fprintf(p.w, "  %s %s [%s]\n", name, p.paint(refuseColor, "refuse"), d.Code.ID())
		}
	}

	if p.opts.ShowMembers && len(pl.Members) > 0 {
		fmt.Fprintln(p.w, p.paint(dimColor, "  members:"))
		width := 0
		for _, m := range pl.Members {
			if w := runewidth.StringWidth(m.Name); w > width {
				width = w
			}
		}
		for _, m := range pl.Members {
			rule := m.Rule
			fmt.Fprintf(p.w, "    %s  %s\n", runewidth.FillRight(m.Name, width), RuleString(&rule))
		}
	}
}

func (p *prettyPrinter) printDiagnostic(d diag.Diagnostic) {
	var sev string
	switch d.Severity {
	case diag.SevError:
		sev = p.paint(errColor, d.Severity.String())
	case diag.SevWarning:
		sev = p.paint(warnColor, d.Severity.String())
	default:
		sev = p.paint(infoColor, d.Severity.String())
	}
	loc := d.Type
	if d.Member != "" {
		loc += "." + d.Member
	}
	fmt.Fprintf(p.w, "%s [%s] %s: %s\n", sev, d.Code.ID(), loc, d.Message)
	if p.opts.ShowRemedy && d.Remedy != "" {
		fmt.Fprintf(p.w, "    %s %s\n", p.paint(dimColor, "remedy:"), d.Remedy)
	}
}
