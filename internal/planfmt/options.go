// Package planfmt renders synthesis plans and their diagnostics for the
// CLI: a colorized pretty listing for humans and a stable JSON document for
// tooling. It never computes anything; plans and bags arrive fully decided.
package planfmt

// PrettyOpts configures pretty-printing.
type PrettyOpts struct {
	Color       bool
	ShowMembers bool
	ShowRemedy  bool
	ShowDigest  bool
}

// JSONOpts configures JSON output.
type JSONOpts struct {
	// Max truncates the diagnostics list in the output, not the Bag.
	Max int
}
