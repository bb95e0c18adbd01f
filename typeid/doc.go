// Package typeid provides process-stable identities for Go types.
//
// An ID is derived from the address of the runtime's type descriptor for *T.
// The descriptor is a per-type singleton laid down by the linker, so Of needs
// no initialization, takes no lock and is safe under concurrent first use.
// Deriving it from *T rather than T keeps interface types distinguishable.
//
// IDs compare for equality only. Their numeric values differ between builds
// and processes and must not be persisted.
//
// The registry attaches a reflect.Type and a readable name to an ID the first
// time a caller asks for it:
//
//	id := typeid.Of[uint64]()
//	info := typeid.Register[uint64]()
//	fmt.Println(info.Name, id == info.ID) // uint64 true
package typeid
