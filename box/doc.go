// Package box provides Any, a type-erased value container.
//
// An Any is in one of three states:
//
//	Empty   no value; the zero Any
//	Inline  the value sits in the container's own words, no allocation
//	Heap    the value sits in a cell reached through an operation set
//
// Which of Inline or Heap a type uses is decided by the layout package once
// per type. Typed access compares the stored type tag with the requested one
// and returns a pointer to the payload or nil:
//
//	a := box.New("10086")
//	p := box.Get[string](&a) // *string
//	q := box.Get[int](&a)    // nil
//
// # Copy and Move
//
// Go assignment copies an Any's words, which for the heap state would share
// the cell between two containers. Use Clone for an independent copy and
// Take or Move to transfer a value; both leave the source empty. Returning an
// Any by value from a function is a transfer and is fine.
//
// New takes ownership of the value it is given. Clone runs the type's copy
// operation, so types with a Clone method get a deep copy there.
//
// # Thread Safety
//
// An Any has no internal locking. Concurrent readers are safe only while no
// goroutine mutates the container or, through Get, its payload.
package box
