// Package anybox provides a type-erased value container for Go.
//
// A box.Any holds at most one value of any type together with a tag that
// identifies the type. Small pointer-free values live inside the container
// itself; everything else lives in a separately allocated cell that is copied
// and destroyed through a per-type operation set.
//
// # Architecture Overview
//
//	anybox/              Root package with the Cloner and Dropper contracts
//	├── typeid/          Process-wide type identities and the type registry
//	├── layout/          Storage classification (inline vs heap)
//	├── optable/         Per-type copy/move/destroy operation sets
//	├── box/             The Any container
//	├── table/           Handle table sharing boxed values between goroutines
//	├── bench/           Measurement harness comparing Any with interfaces
//	│   └── store/       SQLite history of benchmark runs
//	├── errors/          Structured error types
//	└── cmd/anybench/    Benchmark CLI
//
// # Quick Start
//
//	a := box.New(uint64(42))
//	if p := box.Get[uint64](&a); p != nil {
//	    fmt.Println(*p) // 42
//	}
//
//	b := a.Clone()      // independent copy
//	c := a.Take()       // a is now empty
//	c.Reset()
//
// # Storage
//
// The storage classifier decides once per type where values live:
//
//	Class       Holds                                 Allocation
//	──────────────────────────────────────────────────────────────
//	inline      pointer-free, size <= 16, align <= 8  none
//	inline-ref  exactly one pointer word               none
//	heap        anything else                          one cell
//
// A type that implements Cloner or Dropper is never stored inline, so its
// custom operations always run.
//
// # Thread Safety
//
// A single Any is not safe for concurrent mutation. The type registry and the
// operation table are safe for concurrent use.
package anybox
