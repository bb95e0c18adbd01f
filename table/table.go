package table

import (
	"reflect"
	"strconv"
	"sync"

	"github.com/wippyai/anybox/box"
	"github.com/wippyai/anybox/errors"
	"github.com/wippyai/anybox/typeid"
)

// Table owns boxed values addressed by handles.
type Table struct {
	entries   []*entry
	freeList  []Handle
	observers []subscription
	nextObs   uint64
	mu        sync.RWMutex
	obsMu     sync.RWMutex
	live      int
	closed    bool
}

type subscription struct {
	o  Observer
	id uint64
}

type entry struct {
	value box.Any
	valid bool
}

// New creates an empty table.
func New() *Table {
	return &Table{
		entries:  make([]*entry, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

// Insert boxes v and stores it in the table.
func Insert[T any](t *Table, v T) (Handle, error) {
	a := box.New(v)
	h, err := t.InsertAny(&a)
	if err != nil {
		a.Reset()
	}
	return h, err
}

// InsertAny moves the contents of a into the table. a is left empty.
func (t *Table) InsertAny(a *box.Any) (Handle, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return 0, errors.Closed(errors.PhaseTable, "table")
	}

	var h Handle
	var e *entry
	if n := len(t.freeList); n > 0 {
		h = t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
		e = t.entries[h-1]
	} else {
		e = &entry{}
		t.entries = append(t.entries, e)
		h = Handle(len(t.entries))
	}
	box.Move(&e.value, a)
	e.valid = true
	t.live++
	id := e.value.Type()
	t.mu.Unlock()

	t.notify(Event{Type: EventInserted, Handle: h, TypeID: id})
	return h, nil
}

// Get returns a pointer to the value behind h if it holds a T.
func Get[T any](t *Table, h Handle) (*T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e := t.lookup(h)
	if e == nil {
		return nil, false
	}
	p := box.Get[T](&e.value)
	return p, p != nil
}

// Load returns a copy of the value behind h, or an error explaining why it
// is not a T.
func Load[T any](t *Table, h Handle) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e := t.lookup(h)
	if e == nil {
		var zero T
		return zero, errors.NotFound(errors.PhaseTable, "handle", strconv.FormatUint(uint64(h), 10))
	}
	return box.As[T](&e.value)
}

// Type returns the identity of the type stored behind h.
func (t *Table) Type(h Handle) (typeid.ID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e := t.lookup(h)
	if e == nil {
		return typeid.Empty, false
	}
	return e.value.Type(), true
}

// Remove destroys the value behind h and frees the handle.
func (t *Table) Remove(h Handle) bool {
	t.mu.Lock()
	e := t.lookup(h)
	if e == nil {
		t.mu.Unlock()
		return false
	}
	id := e.value.Type()
	e.value.Reset()
	t.release(h, e)
	t.mu.Unlock()

	t.notify(Event{Type: EventRemoved, Handle: h, TypeID: id})
	return true
}

// Take moves the value behind h out of the table and frees the handle.
// The payload is not destroyed; the caller owns it.
func (t *Table) Take(h Handle) (box.Any, bool) {
	t.mu.Lock()
	e := t.lookup(h)
	if e == nil {
		t.mu.Unlock()
		return box.Any{}, false
	}
	v := e.value.Take()
	t.release(h, e)
	t.mu.Unlock()

	t.notify(Event{Type: EventTaken, Handle: h, TypeID: v.Type()})
	return v, true
}

// Clone returns an independent copy of the value behind h.
func (t *Table) Clone(h Handle) (box.Any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e := t.lookup(h)
	if e == nil {
		return box.Any{}, false
	}
	return e.value.Clone(), true
}

// Len returns the number of live values.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.live
}

// Each calls fn for every live value until fn returns false.
// fn runs under the read lock and must not call back into the table.
func (t *Table) Each(fn func(Handle, *box.Any) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i, e := range t.entries {
		if !e.valid {
			continue
		}
		if !fn(Handle(i+1), &e.value) {
			return
		}
	}
}

// Clear removes every value.
func (t *Table) Clear() {
	// Collect handles first to avoid holding lock during Remove
	var handles []Handle
	t.Each(func(h Handle, _ *box.Any) bool {
		handles = append(handles, h)
		return true
	})
	for _, h := range handles {
		t.Remove(h)
	}
}

// Close destroys every value and stops accepting inserts.
func (t *Table) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true

	for _, e := range t.entries {
		if e.valid {
			e.value.Reset()
			e.valid = false
		}
	}
	t.entries = nil
	t.freeList = nil
	t.live = 0
	return nil
}

// Subscribe adds an observer for lifecycle events. The returned function
// removes it again and is the only way to remove an observer whose type is
// not comparable, such as ObserverFunc.
func (t *Table) Subscribe(o Observer) func() {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.nextObs++
	id := t.nextObs
	t.observers = append(t.observers, subscription{id: id, o: o})
	return func() { t.remove(id) }
}

// Unsubscribe removes an observer by value. Observers of uncomparable types
// are never matched; use the function returned by Subscribe for those.
func (t *Table) Unsubscribe(o Observer) {
	typ := reflect.TypeOf(o)
	if typ == nil || !typ.Comparable() {
		return
	}
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, sub := range t.observers {
		if reflect.TypeOf(sub.o) == typ && sub.o == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

func (t *Table) remove(id uint64) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, sub := range t.observers {
		if sub.id == id {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// lookup returns the live entry for h. Callers hold t.mu.
func (t *Table) lookup(h Handle) *entry {
	if h == 0 || int(h) > len(t.entries) {
		return nil
	}
	e := t.entries[h-1]
	if !e.valid {
		return nil
	}
	return e
}

func (t *Table) release(h Handle, e *entry) {
	e.valid = false
	t.live--
	t.freeList = append(t.freeList, h)
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, sub := range t.observers {
		sub.o.OnTableEvent(e)
	}
}
