package bench

import (
	"context"
	"time"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/anybox/box"
)

// Case is one measurement within a suite.
type Case struct {
	Group string
	Run   func(Config) Result
}

// ConstructCase measures default construction of ad's container.
func ConstructCase[C, V any](group string, ad Adapter[C, V]) Case {
	return Case{Group: group, Run: func(cfg Config) Result {
		return ConstructDestruct(cfg, ad)
	}}
}

// ConstructWithCase measures construction of ad's container from value.
func ConstructWithCase[C, V any](group string, ad Adapter[C, V], value V) Case {
	return Case{Group: group, Run: func(cfg Config) Result {
		return ConstructDestructWith(cfg, ad, value)
	}}
}

// GetCase measures payload access through ad's container.
func GetCase[C, V any](group string, ad Adapter[C, V], value V) Case {
	return Case{Group: group, Run: func(cfg Config) Result {
		return GetPointer(cfg, ad, value)
	}}
}

// Suite is an ordered list of analyses and measurements.
type Suite struct {
	Analyses []func() Analysis
	Cases    []Case
}

// DefaultSuite returns the standard comparison of box.Any with any and with
// raw values.
func DefaultSuite() *Suite {
	const text = "10086"
	var nilPtr unsafe.Pointer

	return &Suite{
		Analyses: []func() Analysis{
			Analyse[any],
			Analyse[box.Any],
			Analyse[Pair],
			Analyse[*string],
			Analyse[string],
			Analyse[[]string],
			Analyse[PairOwned],
		},
		Cases: []Case{
			ConstructCase("default", Iface[uint64]()),
			ConstructCase("default", Box[uint64]()),
			ConstructCase("default", Raw[Pair]()),

			ConstructWithCase("uint64", Iface[uint64](), 0),
			ConstructWithCase("uint64", Box[uint64](), 0),
			ConstructWithCase("uint64", Raw[Pair](), Pair{}),

			ConstructWithCase("pointer", Iface[unsafe.Pointer](), nilPtr),
			ConstructWithCase("pointer", Box[unsafe.Pointer](), nilPtr),
			ConstructWithCase("pointer", Raw[Pair](), Pair{}),

			ConstructWithCase("string", Iface[string](), text),
			ConstructWithCase("string", Box[string](), text),
			ConstructWithCase("string", Owned(), text),

			GetCase("get uint64", Iface[uint64](), 0),
			GetCase("get uint64", Box[uint64](), 0),
			GetCase("get uint64", Raw[uint64](), 0),

			GetCase("get pointer", Iface[unsafe.Pointer](), nilPtr),
			GetCase("get pointer", Box[unsafe.Pointer](), nilPtr),
			GetCase("get pointer", Raw[unsafe.Pointer](), nilPtr),

			GetCase("get string", Iface[string](), text),
			GetCase("get string", Box[string](), text),
			GetCase("get string", Raw[string](), text),
		},
	}
}

// Run executes the suite cfg.Loops times, or until ctx is cancelled when
// cfg.Loops is 0, handing every result to rep. It returns ctx.Err() when
// cancelled.
func (s *Suite) Run(ctx context.Context, cfg Config, rep *Reporter) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	cpu := -1
	if cfg.Pin {
		c, unpin, err := PinCPU()
		if err != nil {
			Logger().Warn("cpu pinning failed", zap.Error(err))
		} else {
			defer unpin()
			cpu = c
			Logger().Info("bound to cpu", zap.Int("cpu", cpu))
		}
	}

	analyses := make([]Analysis, 0, len(s.Analyses))
	for _, fn := range s.Analyses {
		a := fn()
		rep.Analysis(a)
		analyses = append(analyses, a)
	}

	for loop := 1; cfg.Loops == 0 || loop <= cfg.Loops; loop++ {
		run := Run{
			Loop:     loop,
			Started:  time.Now(),
			CPU:      cpu,
			Config:   cfg,
			Analyses: analyses,
			Results:  make([]Result, 0, len(s.Cases)),
		}

		group := ""
		for _, c := range s.Cases {
			if err := ctx.Err(); err != nil {
				return err
			}
			if c.Group != group {
				group = c.Group
				rep.Group(group)
			}
			r := c.Run(cfg)
			r.Group = c.Group
			rep.Result(ctx, r)
			run.Results = append(run.Results, r)
		}
		run.Elapsed = time.Since(run.Started)

		if err := rep.Commit(ctx, &run); err != nil {
			return err
		}

		if cfg.Loops != 0 && loop == cfg.Loops {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(cfg.Interval):
		}
	}
	return nil
}
