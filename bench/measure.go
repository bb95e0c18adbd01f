package bench

import (
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/anybox/layout"
)

// Measure names what a Result measured.
type Measure string

const (
	MeasureConstruct     Measure = "construct"      // zero value
	MeasureConstructWith Measure = "construct_with" // from a payload
	MeasureGet           Measure = "get"            // payload address
)

// Result is one timed measurement. Durations are nanoseconds per element.
type Result struct {
	Group     string  `json:"group,omitempty" yaml:"group,omitempty"`
	Measure   Measure `json:"measure" yaml:"measure"`
	Container string  `json:"container" yaml:"container"`
	Payload   string  `json:"payload,omitempty" yaml:"payload,omitempty"`
	Construct float64 `json:"construct_ns,omitempty" yaml:"construct_ns,omitempty"`
	Destroy   float64 `json:"destroy_ns,omitempty" yaml:"destroy_ns,omitempty"`
	Get       float64 `json:"get_ns,omitempty" yaml:"get_ns,omitempty"`
	Allocs    float64 `json:"allocs" yaml:"allocs"`
}

// Analysis describes the storage properties of a container type.
type Analysis struct {
	Type                   string  `json:"type" yaml:"type"`
	Size                   uintptr `json:"size" yaml:"size"`
	TriviallyConstructible bool    `json:"trivially_constructible" yaml:"trivially_constructible"`
	TriviallyDestructible  bool    `json:"trivially_destructible" yaml:"trivially_destructible"`
	Class                  string  `json:"class" yaml:"class"`
}

// sink keeps get-pointer sums observable so the loop is not elided.
var sink uintptr

// Analyse reports the layout of T.
func Analyse[T any]() Analysis {
	info := layout.For[T]()
	return Analysis{
		Type:                   typeName[T](),
		Size:                   info.Size,
		TriviallyConstructible: info.TriviallyConstructible(),
		TriviallyDestructible:  info.TriviallyDestructible(),
		Class:                  info.Class.String(),
	}
}

// ConstructDestruct times appending Num zero containers and destroying them.
func ConstructDestruct[C, V any](cfg Config, ad Adapter[C, V]) Result {
	var zero C
	r := constructDestruct(cfg, ad, func() C { return zero })
	r.Measure = MeasureConstruct
	r.Payload = ""
	return r
}

// ConstructDestructWith times appending Num containers built from value and
// destroying them.
func ConstructDestructWith[C, V any](cfg Config, ad Adapter[C, V], value V) Result {
	r := constructDestruct(cfg, ad, func() C { return ad.Make(value) })
	r.Measure = MeasureConstructWith
	return r
}

func constructDestruct[C, V any](cfg Config, ad Adapter[C, V], build func() C) Result {
	sv := make([]C, 0, cfg.Num)

	var cused, dused time.Duration
	mallocs := mallocCount()
	for i := 0; i < cfg.Times; i++ {
		begin := time.Now()
		for j := 0; j < cfg.Num; j++ {
			sv = append(sv, build())
		}
		cused += time.Since(begin)

		begin = time.Now()
		for j := range sv {
			ad.Drop(&sv[j])
		}
		sv = sv[:0]
		dused += time.Since(begin)
	}
	allocs := mallocCount() - mallocs

	ops := float64(cfg.Times) * float64(cfg.Num)
	return Result{
		Container: ad.Container,
		Payload:   ad.Payload,
		Construct: float64(cused.Nanoseconds()) / ops,
		Destroy:   float64(dused.Nanoseconds()) / ops,
		Allocs:    float64(allocs) / ops,
	}
}

// GetPointer times fetching the payload address from Num containers built
// from value.
func GetPointer[C, V any](cfg Config, ad Adapter[C, V], value V) Result {
	sv := make([]C, 0, cfg.Num)
	for i := 0; i < cfg.Num; i++ {
		sv = append(sv, ad.Make(value))
	}

	var used time.Duration
	var sum uintptr
	mallocs := mallocCount()
	for i := 0; i < cfg.Times; i++ {
		begin := time.Now()
		for j := range sv {
			sum += ad.Addr(&sv[j])
		}
		used += time.Since(begin)
	}
	allocs := mallocCount() - mallocs
	sink = sum

	for j := range sv {
		ad.Drop(&sv[j])
	}
	Logger().Debug("get pointer checksum",
		zap.String("container", ad.Container),
		zap.Uintptr("sum", sum))

	ops := float64(cfg.Times) * float64(cfg.Num)
	return Result{
		Measure:   MeasureGet,
		Container: ad.Container,
		Payload:   ad.Payload,
		Get:       float64(used.Nanoseconds()) / ops,
		Allocs:    float64(allocs) / ops,
	}
}

func mallocCount() uint64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.Mallocs
}
