// Package bench measures box.Any against Go's built-in interface and against
// raw values.
//
// Every measurement fills a slice of Num containers, clears it again, and
// repeats that Times times. Construct and destroy are timed separately and
// reported in nanoseconds per element:
//
//	cfg := bench.DefaultConfig()
//	r := bench.ConstructDestructWith(cfg, bench.Box[uint64](), 0)
//	fmt.Println(r.Construct, r.Destroy, r.Allocs)
//
// # Adapters
//
// An Adapter describes how a container type holds a payload:
//
//	Iface[V]()    any holding V
//	Box[V]()      box.Any holding V
//	Raw[V]()      V itself, the lower bound
//	Owned()       a pointer pair that owns a heap string
//
// # Suite
//
// DefaultSuite is the standard comparison: storage analysis of
// the container types, then default construction, construction with a
// uint64, a nil pointer and a short string, and pointer access for each
// payload. Suite.Run repeats it until the loop budget is spent or the
// context is cancelled, handing every result to a Reporter.
//
// # Reporting
//
// A Reporter logs each result through zap, records it on an OpenTelemetry
// histogram when a meter is configured, saves completed loops through a
// Recorder such as bench/store, and keeps them in memory for WriteReport.
package bench
