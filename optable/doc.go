// Package optable binds copy, move and destroy operations to Go types.
//
// An OperationSet is created the first time a heap-stored type is boxed and is
// shared by every container holding that type for the rest of the process.
// Containers keep a pointer to it and never free it. Once bound, the set is
// immutable.
//
// Operations work on unsafe.Pointer cells so a container can manage a value
// after it has forgotten the value's static type:
//
//	ops := optable.For[string]()
//	cell := ops.New()
//	src := "10086"
//	ops.Copy(cell, unsafe.Pointer(&src))
//	ops.Destroy(cell)
//
// By default copy is assignment and destroy only counts the cell. A type whose
// pointer implements anybox.Cloner or anybox.Dropper gets those methods wired
// in instead; Register installs explicit overrides before first use.
package optable
