package table

import (
	stderrors "errors"
	"sync"
	"testing"

	"github.com/wippyai/anybox/box"
	"github.com/wippyai/anybox/errors"
	"github.com/wippyai/anybox/typeid"
)

type testObserver struct {
	mu     sync.Mutex
	events []Event
}

func (o *testObserver) OnTableEvent(e Event) {
	o.mu.Lock()
	o.events = append(o.events, e)
	o.mu.Unlock()
}

type conn struct {
	closed *int
	name   string
}

func (c *conn) Drop() { *c.closed++ }

func TestInsertGet(t *testing.T) {
	tbl := New()

	h1, err := Insert(tbl, uint64(42))
	if err != nil {
		t.Fatal(err)
	}
	h2, err := Insert(tbl, "10086")
	if err != nil {
		t.Fatal(err)
	}
	if h1 == 0 || h2 == 0 || h1 == h2 {
		t.Fatalf("bad handles %d, %d", h1, h2)
	}

	p, ok := Get[uint64](tbl, h1)
	if !ok || *p != 42 {
		t.Fatalf("Get[uint64] = %v, %v", p, ok)
	}
	s, ok := Get[string](tbl, h2)
	if !ok || *s != "10086" {
		t.Fatalf("Get[string] = %v, %v", s, ok)
	}

	if _, ok := Get[string](tbl, h1); ok {
		t.Fatal("expected type mismatch")
	}
	if _, ok := Get[uint64](tbl, 0); ok {
		t.Fatal("handle 0 must be invalid")
	}
	if _, ok := Get[uint64](tbl, 99); ok {
		t.Fatal("out of range handle must be invalid")
	}

	if tbl.Len() != 2 {
		t.Fatalf("Len = %d, want 2", tbl.Len())
	}
}

func TestLoad(t *testing.T) {
	tbl := New()
	h, _ := Insert(tbl, int32(7))

	v, err := Load[int32](tbl, h)
	if err != nil || v != 7 {
		t.Fatalf("Load = %d, %v", v, err)
	}

	_, err = Load[string](tbl, h)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindTypeMismatch {
		t.Fatalf("expected type mismatch, got %v", err)
	}

	_, err = Load[int32](tbl, h+1)
	if !stderrors.As(err, &e) || e.Kind != errors.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestType(t *testing.T) {
	tbl := New()
	h, _ := Insert(tbl, 3.5)

	id, ok := tbl.Type(h)
	if !ok || id != typeid.Of[float64]() {
		t.Fatalf("Type = %v, %v", id, ok)
	}
	if _, ok := tbl.Type(0); ok {
		t.Fatal("handle 0 has no type")
	}
}

func TestRemoveRunsDestroy(t *testing.T) {
	tbl := New()
	closed := 0
	h, _ := Insert(tbl, conn{closed: &closed, name: "db"})

	if !tbl.Remove(h) {
		t.Fatal("Remove returned false")
	}
	if closed != 1 {
		t.Fatalf("Drop ran %d times, want 1", closed)
	}
	if tbl.Remove(h) {
		t.Fatal("second Remove must fail")
	}
	if _, ok := Get[conn](tbl, h); ok {
		t.Fatal("removed handle still readable")
	}
}

func TestTakeSkipsDestroy(t *testing.T) {
	tbl := New()
	closed := 0
	h, _ := Insert(tbl, conn{closed: &closed})

	v, ok := tbl.Take(h)
	if !ok {
		t.Fatal("Take failed")
	}
	if closed != 0 {
		t.Fatal("Take must not destroy")
	}
	if box.Get[conn](&v) == nil {
		t.Fatal("taken value lost its payload")
	}
	if tbl.Len() != 0 {
		t.Fatalf("Len = %d after Take", tbl.Len())
	}

	v.Reset()
	if closed != 1 {
		t.Fatalf("Drop ran %d times, want 1", closed)
	}
}

func TestCloneIndependent(t *testing.T) {
	tbl := New()
	h, _ := Insert(tbl, "10086")

	c, ok := tbl.Clone(h)
	if !ok {
		t.Fatal("Clone failed")
	}
	*box.Get[string](&c) = "changed"

	s, _ := Get[string](tbl, h)
	if *s != "10086" {
		t.Fatalf("table value changed to %q", *s)
	}
}

func TestHandleReuse(t *testing.T) {
	tbl := New()
	h1, _ := Insert(tbl, 1)
	tbl.Remove(h1)

	h2, _ := Insert(tbl, 2)
	if h2 != h1 {
		t.Fatalf("expected reuse of %d, got %d", h1, h2)
	}
	v, ok := Get[int](tbl, h2)
	if !ok || *v != 2 {
		t.Fatalf("reused slot = %v, %v", v, ok)
	}
}

func TestInsertAnyMovesSource(t *testing.T) {
	tbl := New()
	a := box.New("owned")

	h, err := tbl.InsertAny(&a)
	if err != nil {
		t.Fatal(err)
	}
	if !a.IsEmpty() {
		t.Fatal("source not emptied")
	}
	s, ok := Get[string](tbl, h)
	if !ok || *s != "owned" {
		t.Fatalf("Get = %v, %v", s, ok)
	}
}

func TestEachAndClear(t *testing.T) {
	tbl := New()
	for i := 0; i < 5; i++ {
		Insert(tbl, i)
	}
	h, _ := Insert(tbl, "x")
	tbl.Remove(h)

	seen := 0
	tbl.Each(func(_ Handle, a *box.Any) bool {
		if box.Get[int](a) == nil {
			t.Errorf("unexpected value %s", a)
		}
		seen++
		return true
	})
	if seen != 5 {
		t.Fatalf("Each visited %d, want 5", seen)
	}

	stopped := 0
	tbl.Each(func(Handle, *box.Any) bool {
		stopped++
		return false
	})
	if stopped != 1 {
		t.Fatalf("Each did not stop early: %d", stopped)
	}

	tbl.Clear()
	if tbl.Len() != 0 {
		t.Fatalf("Len = %d after Clear", tbl.Len())
	}
}

func TestObservers(t *testing.T) {
	tbl := New()
	obs := &testObserver{}
	tbl.Subscribe(obs)

	h, _ := Insert(tbl, uint64(1))
	tbl.Remove(h)

	if len(obs.events) != 2 {
		t.Fatalf("got %d events, want 2", len(obs.events))
	}
	if obs.events[0].Type != EventInserted || obs.events[0].Handle != h {
		t.Errorf("first event = %+v", obs.events[0])
	}
	if obs.events[1].Type != EventRemoved || obs.events[1].TypeID != typeid.Of[uint64]() {
		t.Errorf("second event = %+v", obs.events[1])
	}

	tbl.Unsubscribe(obs)
	Insert(tbl, uint64(2))
	if len(obs.events) != 2 {
		t.Fatal("unsubscribed observer still notified")
	}
}

func TestObserverFunc(t *testing.T) {
	tbl := New()
	var got EventType = 255
	tbl.Subscribe(ObserverFunc(func(e Event) { got = e.Type }))

	Insert(tbl, true)
	if got != EventInserted {
		t.Fatalf("got %v", got)
	}
	if got.String() != "inserted" {
		t.Fatalf("String = %q", got.String())
	}
}

func TestObserverFuncCancel(t *testing.T) {
	tbl := New()
	calls := 0
	f := ObserverFunc(func(Event) { calls++ })
	cancel := tbl.Subscribe(f)

	Insert(tbl, 1)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	// Unsubscribe cannot match a func observer and must not panic.
	tbl.Unsubscribe(f)
	Insert(tbl, 2)
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}

	cancel()
	Insert(tbl, 3)
	if calls != 2 {
		t.Fatalf("cancelled observer still notified: %d calls", calls)
	}
	cancel()
}

func TestSubscribeCancelKeepsOthers(t *testing.T) {
	tbl := New()
	a, b := &testObserver{}, &testObserver{}
	cancelA := tbl.Subscribe(a)
	tbl.Subscribe(b)

	cancelA()
	Insert(tbl, true)
	if len(a.events) != 0 || len(b.events) != 1 {
		t.Fatalf("events a=%d b=%d", len(a.events), len(b.events))
	}
}

func TestClose(t *testing.T) {
	tbl := New()
	closed := 0
	Insert(tbl, conn{closed: &closed})
	Insert(tbl, conn{closed: &closed})

	if err := tbl.Close(); err != nil {
		t.Fatal(err)
	}
	if closed != 2 {
		t.Fatalf("Close destroyed %d values, want 2", closed)
	}
	if err := tbl.Close(); err != nil {
		t.Fatal("second Close must be a no-op")
	}

	_, err := Insert(tbl, 1)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindClosed {
		t.Fatalf("expected closed error, got %v", err)
	}
}

func TestConcurrentAccess(t *testing.T) {
	tbl := New()
	var wg sync.WaitGroup

	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				h, err := Insert(tbl, g*1000+i)
				if err != nil {
					t.Error(err)
					return
				}
				if v, ok := Get[int](tbl, h); !ok || *v != g*1000+i {
					t.Errorf("Get(%d) = %v, %v", h, v, ok)
					return
				}
				tbl.Remove(h)
			}
		}(g)
	}
	wg.Wait()

	if tbl.Len() != 0 {
		t.Fatalf("Len = %d, want 0", tbl.Len())
	}
}
