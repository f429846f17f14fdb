package driver

import (
	"sync"

	"traitgen/internal/diag"
	"traitgen/internal/plan"
	"traitgen/internal/shape"
)

// Entry is one cached plan with the diagnostics its planning produced.
// Entries are immutable once published.
type Entry struct {
	Plan  *plan.Plan
	Diags []diag.Diagnostic
}

// Memo is a content-addressed plan cache: the key is the shape's digest,
// never its identity. Standard concurrent-map semantics apply: duplicate
// computations for one key may race and both complete, wasting work but
// never producing a wrong result; the first publish wins.
type Memo struct {
	m sync.Map // shape.Digest -> *Entry
}

// NewMemo constructs an empty memo.
func NewMemo() *Memo { return &Memo{} }

// Load returns the published entry for a key, if any.
func (c *Memo) Load(key shape.Digest) (*Entry, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*Entry), true
}

// Publish stores the entry unless one is already published, and returns
// whichever entry won.
func (c *Memo) Publish(key shape.Digest, e *Entry) *Entry {
	v, _ := c.m.LoadOrStore(key, e)
	return v.(*Entry)
}

// Len counts published entries.
func (c *Memo) Len() int {
	n := 0
	c.m.Range(func(any, any) bool {
		n++
		return true
	})
	return n
}
