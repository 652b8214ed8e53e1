package gc_test

import (
	"errors"
	"testing"

	wasmgc "github.com/wippyai/wasm-gc"
	gcerrors "github.com/wippyai/wasm-gc/errors"
	"github.com/wippyai/wasm-gc/gc"
	"github.com/wippyai/wasm-gc/objects"
)

func TestCollect_PinClosure(t *testing.T) {
	heap := gc.NewHeap()
	defer heap.Close()

	var pinned []wasmgc.Handle
	for i := 0; i < 10; i++ {
		_, h := newLeaf(t, heap)
		if i%2 == 0 {
			if err := heap.Pin(h); err != nil {
				t.Fatalf("Pin failed: %v", err)
			}
			pinned = append(pinned, h)
		}
	}

	m := heap.Collect()
	if m.Roots != 5 {
		t.Fatalf("expected 5 roots, got %d", m.Roots)
	}
	if m.Total != 10 {
		t.Fatalf("expected 10 objects scanned, got %d", m.Total)
	}
	if m.Garbage != 5 {
		t.Fatalf("expected 5 garbage, got %d", m.Garbage)
	}
	for _, h := range pinned {
		if !heap.Contains(h) {
			t.Fatalf("pinned object %d did not survive", h)
		}
	}
}

func TestCollect_ReachabilityClosure(t *testing.T) {
	heap := gc.NewHeap()
	defer heap.Close()

	// root -> a -> b, c unreferenced.
	b := &testObject{kind: wasmgc.KindExceptionType}
	hb, _ := heap.Register(b)
	a := &testObject{kind: wasmgc.KindExceptionType, refs: []wasmgc.Handle{hb}}
	ha, _ := heap.Register(a)
	root := &testObject{kind: wasmgc.KindExceptionType, refs: []wasmgc.Handle{ha}}
	hroot, _ := heap.Register(root)
	c := &testObject{kind: wasmgc.KindExceptionType}
	hc, _ := heap.Register(c)

	if err := heap.Pin(hroot); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}

	m := heap.Collect()
	if m.Garbage != 1 {
		t.Fatalf("expected exactly 1 garbage object, got %d", m.Garbage)
	}
	for _, h := range []wasmgc.Handle{hroot, ha, hb} {
		if !heap.Contains(h) {
			t.Fatalf("transitively reachable object %d collected", h)
		}
	}
	if heap.Contains(hc) {
		t.Fatal("unreachable object survived")
	}
	if c.finalized != 1 {
		t.Fatalf("expected unreachable object finalized once, got %d", c.finalized)
	}
	if a.finalized != 0 || b.finalized != 0 || root.finalized != 0 {
		t.Fatal("reachable objects must be left entirely untouched")
	}
}

func TestCollect_Idempotent(t *testing.T) {
	heap := gc.NewHeap()
	defer heap.Close()

	_, pinned := newLeaf(t, heap)
	if err := heap.Pin(pinned); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}
	garbage, _ := newLeaf(t, heap)

	first := heap.Collect()
	if first.Garbage != 1 {
		t.Fatalf("expected 1 garbage on first cycle, got %d", first.Garbage)
	}
	if garbage.finalized != 1 {
		t.Fatalf("expected finalize once, got %d", garbage.finalized)
	}

	// No pin or graph changes: a second cycle finalizes nothing.
	second := heap.Collect()
	if second.Garbage != 0 {
		t.Fatalf("expected 0 garbage on second cycle, got %d", second.Garbage)
	}
	if garbage.finalized != 1 {
		t.Fatalf("second cycle re-finalized: %d", garbage.finalized)
	}
}

func TestCollect_Cycle(t *testing.T) {
	heap := gc.NewHeap()
	defer heap.Close()

	// a and b reference each other but nothing pins them.
	a := &testObject{kind: wasmgc.KindExceptionType}
	ha, _ := heap.Register(a)
	b := &testObject{kind: wasmgc.KindExceptionType, refs: []wasmgc.Handle{ha}}
	hb, _ := heap.Register(b)
	a.refs = []wasmgc.Handle{hb}

	m := heap.Collect()
	if m.Garbage != 2 {
		t.Fatalf("expected the whole cycle collected, got %d garbage", m.Garbage)
	}
	if a.finalized != 1 || b.finalized != 1 {
		t.Fatalf("expected both cycle members finalized once, got %d and %d", a.finalized, b.finalized)
	}
}

// Scenario A: compartment C pinned, module M in C pinned, table T owned by C
// and referenced from M's table list: all three survive.
func TestCollect_ScenarioCompartmentModuleTable(t *testing.T) {
	heap := gc.NewHeap()
	defer heap.Close()

	comp, err := objects.NewCompartment(heap)
	if err != nil {
		t.Fatalf("NewCompartment failed: %v", err)
	}
	if err := heap.Pin(comp.Handle()); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}

	mod, err := objects.NewModule(heap, comp.Handle())
	if err != nil {
		t.Fatalf("NewModule failed: %v", err)
	}
	if err := heap.Pin(mod.Handle()); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}

	table, err := objects.NewTable(heap, comp.Handle(), 4)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	mod.AddTable(table.Handle())
	mod.SetDefaultTable(table.Handle())

	heap.Collect()

	for _, h := range []wasmgc.Handle{comp.Handle(), mod.Handle(), table.Handle(), comp.Intrinsics()} {
		if !heap.Contains(h) {
			t.Fatalf("object %d did not survive", h)
		}
	}
}

// Scenario B: an object with no pins and no incoming edges is unregistered,
// finalized once, and reported as one garbage object.
func TestCollect_ScenarioOrphan(t *testing.T) {
	heap := gc.NewHeap()
	defer heap.Close()

	orphan, h := newLeaf(t, heap)

	m := heap.Collect()
	if heap.Contains(h) {
		t.Fatal("orphan still registered")
	}
	if orphan.finalized != 1 {
		t.Fatalf("expected finalize once, got %d", orphan.finalized)
	}
	if m.Garbage != 1 {
		t.Fatalf("expected garbage count 1, got %d", m.Garbage)
	}
}

// Scenario C: an unpinned function survives through a pinned table's element
// slot.
func TestCollect_ScenarioTableElement(t *testing.T) {
	heap := gc.NewHeap()
	defer heap.Close()

	comp, err := objects.NewCompartment(heap)
	if err != nil {
		t.Fatalf("NewCompartment failed: %v", err)
	}
	if err := heap.Pin(comp.Handle()); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}

	fn, err := objects.NewFunction(heap, comp.Intrinsics(), "f")
	if err != nil {
		t.Fatalf("NewFunction failed: %v", err)
	}

	table, err := objects.NewTable(heap, comp.Handle(), 2)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	if err := table.Set(1, fn.Handle()); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := heap.Pin(table.Handle()); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}

	heap.Collect()
	if !heap.Contains(fn.Handle()) {
		t.Fatal("function referenced by table element was collected")
	}

	// Clearing the slot severs the edge; the function falls next cycle.
	if err := table.Set(1, wasmgc.Null); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	heap.Collect()
	if heap.Contains(fn.Handle()) {
		t.Fatal("function survived after its only edge was cleared")
	}
}

// Scenario D: pinned A survives, unpinned A is collected next cycle.
func TestCollect_ScenarioPinThenUnpin(t *testing.T) {
	heap := gc.NewHeap()
	defer heap.Close()

	obj, h := newLeaf(t, heap)
	if err := heap.Pin(h); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}

	heap.Collect()
	if !heap.Contains(h) {
		t.Fatal("pinned object collected")
	}

	if err := heap.Unpin(h); err != nil {
		t.Fatalf("Unpin failed: %v", err)
	}
	heap.Collect()
	if heap.Contains(h) {
		t.Fatal("unpinned object survived second cycle")
	}
	if obj.finalized != 1 {
		t.Fatalf("expected finalize once, got %d", obj.finalized)
	}
}

// Scenario E: a kind tag outside the closed set is fatal, not a silent skip.
func TestCollect_UnknownKindIsFatal(t *testing.T) {
	heap := gc.NewHeap()

	bad := &testObject{kind: wasmgc.Kind(42)}
	h, err := heap.Register(bad)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := heap.Pin(h); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on unknown kind")
		}
		perr, ok := r.(error)
		if !ok {
			t.Fatalf("panic value is not an error: %v", r)
		}
		if !errors.Is(perr, &gcerrors.Error{Phase: gcerrors.PhaseCollect, Kind: gcerrors.KindUnknownKind}) {
			t.Fatalf("expected unknown_kind, got %v", perr)
		}
	}()
	heap.Collect()
}

func TestCollect_CorruptEdgeIsFatal(t *testing.T) {
	heap := gc.NewHeap()

	// An edge to a handle no registration ever produced.
	bad := &testObject{kind: wasmgc.KindExceptionType, refs: []wasmgc.Handle{1000}}
	h, err := heap.Register(bad)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := heap.Pin(h); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on corrupt edge")
		}
		perr, ok := r.(error)
		if !ok {
			t.Fatalf("panic value is not an error: %v", r)
		}
		if !errors.Is(perr, &gcerrors.Error{Phase: gcerrors.PhaseCollect, Kind: gcerrors.KindCorruptEdge}) {
			t.Fatalf("expected corrupt_edge, got %v", perr)
		}
	}()
	heap.Collect()
}

func TestCollect_NullEdgesSkipped(t *testing.T) {
	heap := gc.NewHeap()
	defer heap.Close()

	// Null edges are a normal case (unset defaults, empty slots), never an
	// error.
	obj := &testObject{kind: wasmgc.KindExceptionType, refs: []wasmgc.Handle{wasmgc.Null, wasmgc.Null}}
	h, err := heap.Register(obj)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := heap.Pin(h); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}

	m := heap.Collect()
	if m.Garbage != 0 {
		t.Fatalf("expected no garbage, got %d", m.Garbage)
	}
	if !heap.Contains(h) {
		t.Fatal("object with null edges collected")
	}
}

// A finalize hook may read state belonging to sibling objects collected in
// the same pass: every sibling is still materialized while any finalizer
// runs, because release is deferred until the whole sweep completes.
func TestCollect_FinalizeObservesSiblings(t *testing.T) {
	heap := gc.NewHeap()
	defer heap.Close()

	a := &finalizeProbe{payload: "a"}
	b := &finalizeProbe{payload: "b"}
	a.hook = func() { a.sawSibling = b.payload }
	b.hook = func() { b.sawSibling = a.payload }

	if _, err := heap.Register(a); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := heap.Register(b); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	m := heap.Collect()
	if m.Garbage != 2 {
		t.Fatalf("expected 2 garbage, got %d", m.Garbage)
	}
	if a.sawSibling != "b" || b.sawSibling != "a" {
		t.Fatalf("finalize hooks could not observe sibling state: %q, %q", a.sawSibling, b.sawSibling)
	}
}

type finalizeProbe struct {
	payload    string
	sawSibling string
	hook       func()
}

func (p *finalizeProbe) Kind() wasmgc.Kind           { return wasmgc.KindExceptionType }
func (p *finalizeProbe) EachRef(func(wasmgc.Handle)) {}
func (p *finalizeProbe) Finalize()                   { p.hook() }

func TestCollect_Metrics(t *testing.T) {
	heap := gc.NewHeap()
	defer heap.Close()

	_, pinned := newLeaf(t, heap)
	if err := heap.Pin(pinned); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}
	newLeaf(t, heap)
	newLeaf(t, heap)

	m := heap.Collect()
	if m.Roots != 1 {
		t.Errorf("expected 1 root, got %d", m.Roots)
	}
	if m.Total != 3 {
		t.Errorf("expected 3 total, got %d", m.Total)
	}
	if m.Garbage != 2 {
		t.Errorf("expected 2 garbage, got %d", m.Garbage)
	}
	if m.Duration < 0 {
		t.Errorf("negative duration %v", m.Duration)
	}
}
