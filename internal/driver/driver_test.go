package driver

import (
	"context"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"traitgen/internal/plan"
	"traitgen/internal/shape"
	"traitgen/internal/testkit"
	"traitgen/internal/traits"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testShapes(in *shape.Interner, n int) []*shape.TypeShape {
	b := in.Builtins()
	out := make([]*shape.TypeShape, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &shape.TypeShape{
			Ref: shape.TypeRef{Namespace: "t", Name: "T" + string(rune('A'+i%26)) + string(rune('0'+i/26))},
			Members: []shape.Member{
				{Name: "id", Class: b.String},
				{Name: "n", Class: b.Int},
				{Name: "xs", Class: in.Intern(shape.MakeSequence(b.Int))},
			},
			Requested: traits.Of(traits.EqualTyped, traits.Hash, traits.Compare, traits.OrderOps),
		})
	}
	return out
}

func TestPlanAllKeepsInputOrder(t *testing.T) {
	in := shape.NewInterner()
	shapes := testShapes(in, 40)
	results, err := PlanAll(context.Background(), in, shapes, Options{Jobs: 8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, r := range results {
		if r.Shape != shapes[i] {
			t.Fatalf("result %d out of order", i)
		}
		if r.Plan == nil || r.Plan.Type != shapes[i].Ref {
			t.Fatalf("result %d has no plan for its shape", i)
		}
	}
}

func TestTwoRunsAreBitIdentical(t *testing.T) {
	in := shape.NewInterner()
	shapes := testShapes(in, 10)

	a, err := PlanAll(context.Background(), in, shapes, Options{Jobs: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := PlanAll(context.Background(), in, shapes, Options{Jobs: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range a {
		if diff := cmp.Diff(a[i].Plan, b[i].Plan); diff != "" {
			t.Fatalf("plan %d differs between runs (-parallel +serial):\n%s", i, diff)
		}
	}
}

func TestMemoServesIdenticalShapes(t *testing.T) {
	in := shape.NewInterner()
	memo := NewMemo()
	shapes := testShapes(in, 3)
	// Same content, distinct allocations: content addressing must hit.
	again := testShapes(in, 3)

	first, err := PlanAll(context.Background(), in, shapes, Options{Memo: memo})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := PlanAll(context.Background(), in, again, Options{Memo: memo})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range second {
		if !second[i].CacheHit {
			t.Fatalf("result %d should be a cache hit", i)
		}
		if second[i].Plan != first[i].Plan {
			t.Fatalf("memo must serve the published plan pointer")
		}
		if second[i].Bag.Len() != first[i].Bag.Len() {
			t.Fatalf("cached diagnostics must replay")
		}
	}
}

func TestMemoFirstPublishWins(t *testing.T) {
	memo := NewMemo()
	var key shape.Digest
	key[0] = 7

	a := &Entry{Plan: &plan.Plan{}}
	b := &Entry{Plan: &plan.Plan{}}

	var wg sync.WaitGroup
	won := make([]*Entry, 2)
	for i, e := range []*Entry{a, b} {
		wg.Add(1)
		go func(i int, e *Entry) {
			defer wg.Done()
			won[i] = memo.Publish(key, e)
		}(i, e)
	}
	wg.Wait()
	if won[0] != won[1] {
		t.Fatalf("both publishers must observe the same winner")
	}
	if memo.Len() != 1 {
		t.Fatalf("one entry expected, got %d", memo.Len())
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	in := shape.NewInterner()
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	shapes := testShapes(in, 2)

	first, err := PlanAll(context.Background(), in, shapes, Options{Disk: cache})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := PlanAll(context.Background(), in, shapes, Options{Disk: cache})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range second {
		if !second[i].CacheHit {
			t.Fatalf("second run must hit the disk cache")
		}
		if diff := cmp.Diff(first[i].Plan, second[i].Plan); diff != "" {
			t.Fatalf("plan %d changed across the disk round trip:\n%s", i, diff)
		}
	}
}

func TestEveryPlanHoldsItsInvariants(t *testing.T) {
	in := shape.NewInterner()
	shapes := testShapes(in, 20)
	results, err := PlanAll(context.Background(), in, shapes, Options{Jobs: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, r := range results {
		if err := testkit.CheckPlanInvariants(r.Plan, r.Shape, in); err != nil {
			t.Errorf("plan %d: %v", i, err)
		}
	}
}

func TestCanceledContextStopsTheRun(t *testing.T) {
	in := shape.NewInterner()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := PlanAll(ctx, in, testShapes(in, 50), Options{Jobs: 2})
	if err == nil {
		t.Fatalf("canceled context must surface")
	}
}
