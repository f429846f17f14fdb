package planfmt

import (
	"encoding/hex"
	"encoding/json"
	"io"

	"traitgen/internal/diag"
	"traitgen/internal/driver"
	"traitgen/internal/plan"
	"traitgen/internal/traits"
)

// DecisionJSON is one trait verdict.
type DecisionJSON struct {
	Trait    string `json:"trait"`
	Decision string `json:"decision"`
	Reason   string `json:"reason,omitempty"`
	Code     string `json:"code,omitempty"`
}

// MemberJSON is one resolved member rule.
type MemberJSON struct {
	Name string `json:"name"`
	Rule string `json:"rule"`
}

// PlanJSON is one type's plan.
type PlanJSON struct {
	Type      string         `json:"type"`
	Digest    string         `json:"digest"`
	Case      string         `json:"case"`
	CacheHit  bool           `json:"cache_hit,omitempty"`
	Decisions []DecisionJSON `json:"decisions"`
	Members   []MemberJSON   `json:"members,omitempty"`
}

// DiagnosticJSON is one finding.
type DiagnosticJSON struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Type     string `json:"type"`
	Member   string `json:"member,omitempty"`
	Message  string `json:"message"`
	Remedy   string `json:"remedy,omitempty"`
}

// Output is the JSON document root.
type Output struct {
	Plans       []PlanJSON       `json:"plans"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// BuildOutput assembles the JSON document without serializing it. Field
// order and trait iteration are fixed, so identical runs produce identical
// documents.
func BuildOutput(results []driver.Result, bag *diag.Bag, opts JSONOpts) Output {
	out := Output{
		Plans:       make([]PlanJSON, 0, len(results)),
		Diagnostics: []DiagnosticJSON{},
	}

	for _, r := range results {
		pl := r.Plan
		pj := PlanJSON{
			Type:     pl.Type.String(),
			Digest:   hex.EncodeToString(pl.Digest[:]),
			Case:     pl.Case.String(),
			CacheHit: r.CacheHit,
		}
		for t := traits.Trait(0); t < traits.Count; t++ {
			d := pl.Decisions[t]
			if d.Kind == plan.NotRequested {
				continue
			}
			dj := DecisionJSON{Trait: t.String(), Decision: d.Kind.String(), Reason: d.Reason}
			if d.Kind == plan.Refuse {
				dj.Code = d.Code.ID()
			}
			pj.Decisions = append(pj.Decisions, dj)
		}
		for _, m := range pl.Members {
			rule := m.Rule
			pj.Members = append(pj.Members, MemberJSON{Name: m.Name, Rule: RuleString(&rule)})
		}
		out.Plans = append(out.Plans, pj)
	}

	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}
	for i := 0; i < maxItems; i++ {
		d := items[i]
		out.Diagnostics = append(out.Diagnostics, DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Type:     d.Type,
			Member:   d.Member,
			Message:  d.Message,
			Remedy:   d.Remedy,
		})
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON serializes the document with stable indentation.
func JSON(w io.Writer, results []driver.Result, bag *diag.Bag, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildOutput(results, bag, opts))
}
