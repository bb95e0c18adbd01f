package bench

import (
	"unsafe"

	"github.com/wippyai/anybox/box"
	"github.com/wippyai/anybox/typeid"
)

// Adapter describes how a container of type C holds a payload of type V.
type Adapter[C, V any] struct {
	// Container and Payload name the types in reports.
	Container string
	Payload   string
	// Make constructs a container holding v.
	Make func(v V) C
	// Drop destroys the contents of c.
	Drop func(c *C)
	// Addr returns the address of the payload held by c, or 0.
	Addr func(c *C) uintptr
}

// Pair is a tuple of two raw pointers, the smallest container that can
// stand in for a value of unknown type.
type Pair struct {
	First  unsafe.Pointer
	Second unsafe.Pointer
}

// PairOwned is a pointer paired with an owned heap string. Copying it in
// Make allocates, so it stands for a tuple with an owning member.
type PairOwned struct {
	First  unsafe.Pointer
	Second *string
}

// Iface holds V in Go's built-in interface.
func Iface[V any]() Adapter[any, V] {
	return Adapter[any, V]{
		Container: "any",
		Payload:   typeName[V](),
		Make:      func(v V) any { return v },
		Drop:      func(c *any) { *c = nil },
		Addr: func(c *any) uintptr {
			if _, ok := (*c).(V); !ok {
				return 0
			}
			return uintptr((*eface)(unsafe.Pointer(c)).data)
		},
	}
}

// Box holds V in a box.Any.
func Box[V any]() Adapter[box.Any, V] {
	return Adapter[box.Any, V]{
		Container: "box.Any",
		Payload:   typeName[V](),
		Make:      box.New[V],
		Drop:      (*box.Any).Reset,
		Addr: func(c *box.Any) uintptr {
			return uintptr(unsafe.Pointer(box.Get[V](c)))
		},
	}
}

// Bound holds V in a box.Any through a pre-resolved binding.
func Bound[V any]() Adapter[box.Any, V] {
	b := box.Bind[V]()
	return Adapter[box.Any, V]{
		Container: "box.Binding",
		Payload:   typeName[V](),
		Make:      b.New,
		Drop:      (*box.Any).Reset,
		Addr: func(c *box.Any) uintptr {
			return uintptr(unsafe.Pointer(b.Get(c)))
		},
	}
}

// Raw stores V directly.
func Raw[V any]() Adapter[V, V] {
	return Adapter[V, V]{
		Container: typeName[V](),
		Payload:   typeName[V](),
		Make:      func(v V) V { return v },
		Drop: func(c *V) {
			var zero V
			*c = zero
		},
		Addr: func(c *V) uintptr { return uintptr(unsafe.Pointer(c)) },
	}
}

// Owned stores a string in a PairOwned, copying it to the heap.
func Owned() Adapter[PairOwned, string] {
	return Adapter[PairOwned, string]{
		Container: "bench.PairOwned",
		Payload:   "string",
		Make: func(v string) PairOwned {
			s := new(string)
			*s = v
			return PairOwned{Second: s}
		},
		Drop: func(c *PairOwned) { *c = PairOwned{} },
		Addr: func(c *PairOwned) uintptr { return uintptr(unsafe.Pointer(c.Second)) },
	}
}

type eface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

func typeName[T any]() string {
	return typeid.Register[T]().Name
}
