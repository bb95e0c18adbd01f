package layout

import (
	"reflect"
	"unsafe"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/wippyai/anybox"
	"github.com/wippyai/anybox/typeid"
)

const (
	// InlineSize is the number of payload bytes a container holds without
	// allocating.
	InlineSize = 16
	// InlineAlign is the strictest alignment the inline words satisfy.
	InlineAlign = 8
	// PtrSize is the size of the pointer slot.
	PtrSize = unsafe.Sizeof(uintptr(0))
)

// Class is the storage decision for a type.
type Class uint8

const (
	ClassInline Class = iota
	ClassInlineRef
	ClassHeap
)

var classNames = [...]string{
	ClassInline:    "inline",
	ClassInlineRef: "inline-ref",
	ClassHeap:      "heap",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

// Info is the storage layout of a type.
type Info struct {
	Type        reflect.Type
	Size        uintptr
	Align       uintptr
	Kind        Kind
	Class       Class
	HasPointers bool
	Clones      bool // *T has Clone() T
	Drops       bool // *T has Drop()
}

// Trivial reports whether values are copied and destroyed as plain bytes.
func (i Info) Trivial() bool {
	return i.Class == ClassInline
}

// TriviallyConstructible reports whether the zero value is all zero bytes
// with nothing for the collector to track.
func (i Info) TriviallyConstructible() bool {
	return !i.HasPointers
}

// TriviallyDestructible reports whether destroying a value needs no action
// beyond forgetting it.
func (i Info) TriviallyDestructible() bool {
	return !i.HasPointers && !i.Drops
}

var (
	dropperType = reflect.TypeFor[anybox.Dropper]()
	memo        = xsync.NewMapOf[typeid.ID, *Info]()
)

// For returns the memoised layout of T.
// The first call for a type also records it in the typeid registry.
func For[T any]() *Info {
	id := typeid.Of[T]()
	if info, ok := memo.Load(id); ok {
		return info
	}
	info, _ := memo.LoadOrCompute(id, func() *Info {
		typeid.Register[T]()
		info := Classify(reflect.TypeFor[T]())
		return &info
	})
	return info
}

// Classify computes the layout of t.
func Classify(t reflect.Type) Info {
	info := Info{
		Type:        t,
		Size:        t.Size(),
		Align:       uintptr(t.Align()),
		Kind:        kindOf(t),
		HasPointers: hasPointers(t),
	}

	// References do not own what they point at.
	if !info.Kind.IsReference() && info.Kind != KindInterface {
		pt := reflect.PointerTo(t)
		info.Drops = pt.Implements(dropperType)
		info.Clones = hasClone(pt, t)
	}

	info.Class = classOf(info)
	return info
}

func classOf(info Info) Class {
	if info.Drops || info.Clones {
		return ClassHeap
	}
	if !info.HasPointers && info.Size <= InlineSize && info.Align <= InlineAlign {
		return ClassInline
	}
	// A pointer-sized value with pointers is exactly one pointer word.
	if info.HasPointers && info.Size == PtrSize && info.Align == PtrSize {
		return ClassInlineRef
	}
	return ClassHeap
}

func hasClone(pt, t reflect.Type) bool {
	m, ok := pt.MethodByName("Clone")
	if !ok {
		return false
	}
	mt := m.Type
	return mt.NumIn() == 1 && mt.NumOut() == 1 && mt.Out(0) == t
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}
