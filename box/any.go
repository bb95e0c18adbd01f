package box

import (
	"unsafe"

	"github.com/wippyai/anybox/errors"
	"github.com/wippyai/anybox/layout"
	"github.com/wippyai/anybox/optable"
	"github.com/wippyai/anybox/typeid"
)

// State is the externally visible storage state of an Any.
type State uint8

const (
	StateEmpty State = iota
	StateInline
	StateHeap
)

var stateNames = [...]string{
	StateEmpty:  "empty",
	StateInline: "inline",
	StateHeap:   "heap",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// storage tells Get where the payload is.
type storage uint8

const (
	storeEmpty storage = iota
	storeInline
	storeInlineRef
	storeHeap
)

// Any holds at most one value of any type.
type Any struct {
	ops   *optable.OperationSet // heap only
	tag   typeid.ID
	ptr   unsafe.Pointer // heap cell, or the value of a pointer-shaped type
	words [2]uint64      // pointer-free inline payload
	store storage
}

// New returns an Any holding v.
func New[T any](v T) Any {
	var a Any
	bind[T]().put(&a, v)
	return a
}

// Set replaces the contents of a with v. Any previous payload is destroyed
// first.
func Set[T any](a *Any, v T) {
	a.Reset()
	bind[T]().put(a, v)
}

// Get returns a pointer to the payload if a holds a T, otherwise nil.
// The pointer stays valid until a is reset, overwritten or moved from.
func Get[T any](a *Any) *T {
	if a == nil || a.tag != typeid.Of[T]() {
		return nil
	}
	return payload[T](a)
}

// As returns a copy of the payload, or an error describing why a does not
// hold a T.
func As[T any](a *Any) (T, error) {
	if p := Get[T](a); p != nil {
		return *p, nil
	}
	var zero T
	want := typeid.Register[T]().Name
	if a == nil || a.store == storeEmpty {
		return zero, errors.Empty(errors.PhaseAccess, want)
	}
	return zero, errors.TypeMismatch(errors.PhaseAccess, a.tag.String(), want)
}

// Type returns the identity of the held type, or typeid.Empty.
func (a *Any) Type() typeid.ID {
	if a == nil {
		return typeid.Empty
	}
	return a.tag
}

// State reports where the payload is stored.
func (a *Any) State() State {
	return storageState(a.store)
}

// IsEmpty reports whether a holds no value.
func (a *Any) IsEmpty() bool {
	return a.store == storeEmpty
}

// Reset destroys the payload, if any, and leaves a empty.
func (a *Any) Reset() {
	if a.store == storeHeap {
		a.ops.Destroy(a.ptr)
	}
	*a = Any{}
}

// Clone returns an independent copy of a.
func (a *Any) Clone() Any {
	if a.store != storeHeap {
		return *a
	}
	c := Any{ops: a.ops, tag: a.tag, store: storeHeap}
	c.ptr = a.ops.New()
	a.ops.Copy(c.ptr, a.ptr)
	return c
}

// CopyFrom replaces the contents of a with a copy of src.
func (a *Any) CopyFrom(src *Any) {
	if a == src {
		return
	}
	c := src.Clone()
	a.Reset()
	*a = c
}

// Take moves the payload out of a into the returned Any. a is left empty.
func (a *Any) Take() Any {
	v := *a
	*a = Any{}
	return v
}

// Move transfers the contents of src into dst, destroying what dst held.
// src is left empty. No payload is copied.
func Move(dst, src *Any) {
	if dst == src {
		return
	}
	dst.Reset()
	*dst = *src
	*src = Any{}
}

// Swap exchanges the contents of a and b.
func (a *Any) Swap(b *Any) {
	*a, *b = *b, *a
}

// String describes the held type and storage state.
func (a *Any) String() string {
	if a.store == storeEmpty {
		return "box.Any(<empty>)"
	}
	return "box.Any(" + a.tag.String() + ", " + a.State().String() + ")"
}

func payload[T any](a *Any) *T {
	switch a.store {
	case storeInline:
		return (*T)(unsafe.Pointer(&a.words))
	case storeInlineRef:
		return (*T)(unsafe.Pointer(&a.ptr))
	default:
		return (*T)(a.ptr)
	}
}

func storageOf(c layout.Class) storage {
	switch c {
	case layout.ClassInline:
		return storeInline
	case layout.ClassInlineRef:
		return storeInlineRef
	default:
		return storeHeap
	}
}
