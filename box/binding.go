package box

import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/anybox/layout"
	"github.com/wippyai/anybox/optable"
	"github.com/wippyai/anybox/typeid"
)

// Binding is the resolved storage plan for T. Resolving it once and reusing
// it skips the per-call registry lookups of New and Set.
type Binding[T any] struct {
	ops   *optable.OperationSet
	id    typeid.ID
	store storage
}

// Bind resolves the storage plan for T.
func Bind[T any]() Binding[T] {
	b := bind[T]()
	Logger().Debug("binding resolved",
		zap.Stringer("type", b.id),
		zap.Stringer("state", storageState(b.store)))
	return b
}

func bind[T any]() Binding[T] {
	info := layout.For[T]()
	b := Binding[T]{id: typeid.Of[T](), store: storageOf(info.Class)}
	if b.store == storeHeap {
		b.ops = optable.For[T]()
	}
	return b
}

// ID returns the identity of T.
func (b Binding[T]) ID() typeid.ID {
	return b.id
}

// State returns the state containers holding T are in.
func (b Binding[T]) State() State {
	return storageState(b.store)
}

// Ops returns the operation set for T, or nil when T is stored inline.
func (b Binding[T]) Ops() *optable.OperationSet {
	return b.ops
}

// New returns an Any holding v.
func (b Binding[T]) New(v T) Any {
	var a Any
	b.put(&a, v)
	return a
}

// Set replaces the contents of a with v.
func (b Binding[T]) Set(a *Any, v T) {
	a.Reset()
	b.put(a, v)
}

// Get returns a pointer to the payload if a holds a T, otherwise nil.
func (b Binding[T]) Get(a *Any) *T {
	if a == nil || a.tag != b.id {
		return nil
	}
	return payload[T](a)
}

// put stores v into the empty container a.
func (b Binding[T]) put(a *Any, v T) {
	switch b.store {
	case storeInline:
		*(*T)(unsafe.Pointer(&a.words)) = v
	case storeInlineRef:
		*(*T)(unsafe.Pointer(&a.ptr)) = v
	default:
		cell := b.ops.New()
		*(*T)(cell) = v
		a.ptr = cell
		a.ops = b.ops
	}
	a.tag = b.id
	a.store = b.store
}

func storageState(s storage) State {
	switch s {
	case storeInline, storeInlineRef:
		return StateInline
	case storeHeap:
		return StateHeap
	default:
		return StateEmpty
	}
}
