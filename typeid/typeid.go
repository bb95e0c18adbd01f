package typeid

import (
	"strconv"
	"unsafe"
)

// ID identifies a Go type within one running process.
type ID uintptr

// Empty is the identity of nothing. No type has it.
const Empty ID = 0

// eface matches the runtime layout of an empty interface.
type eface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// Of returns the identity of T.
func Of[T any]() ID {
	var p any = (*T)(nil)
	return ID(uintptr((*eface)(unsafe.Pointer(&p)).typ))
}

// IsEmpty reports whether id is the empty marker.
func (id ID) IsEmpty() bool {
	return id == Empty
}

// Name returns the registered type name, or "" when id was never registered.
func (id ID) Name() string {
	if info, ok := Lookup(id); ok {
		return info.Name
	}
	return ""
}

// String returns the registered type name when known.
func (id ID) String() string {
	if id == Empty {
		return "<empty>"
	}
	if name := id.Name(); name != "" {
		return name
	}
	return "TypeID(0x" + strconv.FormatUint(uint64(id), 16) + ")"
}
