// Package table maps integer handles to boxed values of any type.
//
// A box.Any carries no locking of its own; Table is the shared owner that
// supplies it. Every operation takes the table lock, so handles may be used
// from many goroutines.
//
//	tbl := table.New()
//	h, _ := table.Insert(tbl, "10086")
//
//	p, ok := table.Get[string](tbl, h) // typed access, ok=false on mismatch
//	tbl.Remove(h)                      // destroys the payload
//
// Handle 0 is reserved and always invalid. Freed handles are reused.
//
// Pointers returned by Get stay valid until the handle is removed. Writes
// through them are not synchronised by the table.
//
// # Observers
//
// Observers receive an Event for every insert and removal:
//
//	cancel := tbl.Subscribe(myObserver)
//	defer cancel()
package table
