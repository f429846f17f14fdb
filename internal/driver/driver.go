// Package driver orchestrates detection and planning over many type shapes:
// parallel execution, an in-memory content-addressed memo, and an optional
// msgpack disk cache. Everything below it is a pure function over immutable
// snapshots, so shapes can be processed fully in parallel with no shared
// mutable state beyond the caches.
package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"traitgen/internal/detect"
	"traitgen/internal/diag"
	"traitgen/internal/observ"
	"traitgen/internal/plan"
	"traitgen/internal/shape"
)

// Options configures a planning run.
type Options struct {
	// Jobs caps parallel workers; 0 means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics bounds each type's diagnostic bag.
	MaxDiagnostics int
	// Memo is the in-memory plan cache; nil disables memoization.
	Memo *Memo
	// Disk is the persistent plan cache; nil disables it.
	Disk *DiskCache
	// Timer, when set, records the run's phases.
	Timer *observ.Timer
	// Progress, when set, is called once per finished type, in completion
	// order, from worker goroutines.
	Progress func(r Result)
}

// Result is the outcome for one type shape.
type Result struct {
	Shape *shape.TypeShape
	Plan  *plan.Plan
	Bag   *diag.Bag
	// CacheHit marks plans served from the memo or disk cache.
	CacheHit bool
}

// PlanAll plans every shape. Result order matches input order; each worker
// owns its result slot, so no mutex is needed. A canceled context stops the
// run; partially computed results are simply discarded, since nothing is
// published until a plan completes in full.
func PlanAll(ctx context.Context, in *shape.Interner, shapes []*shape.TypeShape, opts Options) ([]Result, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = 100
	}

	var phase int
	if opts.Timer != nil {
		phase = opts.Timer.Begin("plan")
	}

	results := make([]Result, len(shapes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(shapes), 1)))

	for i, s := range shapes {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			results[i] = planOne(in, s, maxDiag, opts)
			if opts.Progress != nil {
				opts.Progress(results[i])
			}
			return nil
		})
	}

	err := g.Wait()
	if opts.Timer != nil {
		opts.Timer.End(phase, "")
	}
	if err != nil {
		return results, err
	}
	return results, nil
}

func planOne(in *shape.Interner, s *shape.TypeShape, maxDiag int, opts Options) Result {
	key := s.Digest(in)

	if opts.Memo != nil {
		if e, ok := opts.Memo.Load(key); ok {
			return cachedResult(s, e, maxDiag)
		}
	}
	if opts.Disk != nil {
		if e, ok := opts.Disk.Get(key); ok {
			if opts.Memo != nil {
				e = opts.Memo.Publish(key, e)
			}
			return cachedResult(s, e, maxDiag)
		}
	}

	bag := diag.NewBag(maxDiag)
	existing := detect.Detect(s)
	p := plan.Build(s, in, existing, diag.BagReporter{Bag: bag})

	entry := &Entry{Plan: p, Diags: append([]diag.Diagnostic(nil), bag.Items()...)}
	if opts.Memo != nil {
		// Racing computations for the same key may both land here; the
		// first publish wins and the results are identical either way.
		entry = opts.Memo.Publish(key, entry)
	}
	if opts.Disk != nil {
		// Best effort: a failed disk write never fails the run.
		_ = opts.Disk.Put(key, entry)
	}

	return Result{Shape: s, Plan: entry.Plan, Bag: bag}
}

func cachedResult(s *shape.TypeShape, e *Entry, maxDiag int) Result {
	bag := diag.NewBag(maxDiag)
	for _, d := range e.Diags {
		bag.Add(d)
	}
	return Result{Shape: s, Plan: e.Plan, Bag: bag, CacheHit: true}
}

// MergeBags collects every result's diagnostics into one sorted bag.
func MergeBags(results []Result, maxDiag int) *diag.Bag {
	out := diag.NewBag(maxDiag)
	for _, r := range results {
		if r.Bag != nil {
			out.Merge(r.Bag)
		}
	}
	out.Sort()
	return out
}
