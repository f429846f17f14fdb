package planfmt

import (
	"strings"

	"traitgen/internal/plan"
	"traitgen/structcmp"
)

// RuleString renders a resolved comparison rule in a compact canonical form,
// e.g. "grouping[multiset]<string[fold], custom<Money>>". The form is
// deterministic and feeds both outputs.
func RuleString(r *plan.CompareRule) string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	writeRule(&b, r)
	return b.String()
}

func writeRule(b *strings.Builder, r *plan.CompareRule) {
	switch r.Kind {
	case plan.RuleString:
		b.WriteString("string")
		if r.Case == structcmp.CaseFold {
			b.WriteString("[fold]")
		}
	case plan.RulePrimitive:
		b.WriteString(r.TypeName)
	case plan.RuleCustom:
		b.WriteString("custom<")
		b.WriteString(r.TypeName)
		b.WriteString(">")
	case plan.RuleOpaque:
		b.WriteString("opaque")
		if r.TypeName != "" {
			b.WriteString("<")
			b.WriteString(r.TypeName)
			b.WriteString(">")
		}
	case plan.RuleOption:
		b.WriteString("option")
		if r.Collapse {
			b.WriteString("[collapse]")
		}
		b.WriteString("<")
		writeRule(b, r.Elem)
		b.WriteString(">")
	case plan.RuleSeq:
		b.WriteString("seq<")
		writeRule(b, r.Elem)
		b.WriteString(">")
	case plan.RuleSet:
		b.WriteString("set<")
		writeRule(b, r.Elem)
		b.WriteString(">")
	case plan.RuleMemSlice:
		b.WriteString("memslice<")
		writeRule(b, r.Elem)
		b.WriteString(">")
	case plan.RuleMap:
		b.WriteString("map<")
		writeRule(b, r.Key)
		b.WriteString(", ")
		writeRule(b, r.Elem)
		b.WriteString(">")
	case plan.RuleGrouping:
		if r.Ordered {
			b.WriteString("grouping[ordered]<")
		} else {
			b.WriteString("grouping[multiset]<")
		}
		writeRule(b, r.Key)
		b.WriteString(", ")
		writeRule(b, r.Elem)
		b.WriteString(">")
	default:
		b.WriteString(r.Kind.String())
	}
}
