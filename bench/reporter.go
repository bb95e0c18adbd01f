package bench

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"

	"github.com/wippyai/anybox/errors"
)

// Run is one complete pass over a suite.
type Run struct {
	ID       int64         `json:"id,omitempty" yaml:"id,omitempty"`
	Loop     int           `json:"loop" yaml:"loop"`
	Started  time.Time     `json:"started" yaml:"started"`
	Elapsed  time.Duration `json:"elapsed" yaml:"elapsed"`
	CPU      int           `json:"cpu" yaml:"cpu"`
	Config   Config        `json:"config" yaml:"config"`
	Analyses []Analysis    `json:"analyses,omitempty" yaml:"analyses,omitempty"`
	Results  []Result      `json:"results" yaml:"results"`
}

// Recorder persists completed runs.
type Recorder interface {
	SaveRun(ctx context.Context, run Run) (int64, error)
}

// Reporter collects suite output and fans it out to the log, metrics and
// an optional Recorder. It is safe for concurrent use.
type Reporter struct {
	log      *zap.Logger
	meter    metric.Meter
	recorder Recorder
	duration metric.Float64Histogram
	allocs   metric.Float64Histogram

	onResult []func(Result)
	onRun    []func(Run)

	mu      sync.Mutex
	runs    []Run
	history int
}

// ReporterOption configures a Reporter.
type ReporterOption func(*Reporter)

// WithLogger sets the logger results are written to. Defaults to Logger().
func WithLogger(l *zap.Logger) ReporterOption {
	return func(r *Reporter) { r.log = l }
}

// WithMeter records results on histograms created from m.
func WithMeter(m metric.Meter) ReporterOption {
	return func(r *Reporter) { r.meter = m }
}

// WithRecorder saves every completed run through rec.
func WithRecorder(rec Recorder) ReporterOption {
	return func(r *Reporter) { r.recorder = rec }
}

// WithHistory bounds the number of runs kept in memory. 0 keeps all.
func WithHistory(n int) ReporterOption {
	return func(r *Reporter) { r.history = n }
}

// OnResult registers fn to be called after each measurement.
func OnResult(fn func(Result)) ReporterOption {
	return func(r *Reporter) { r.onResult = append(r.onResult, fn) }
}

// OnRun registers fn to be called after each completed run.
func OnRun(fn func(Run)) ReporterOption {
	return func(r *Reporter) { r.onRun = append(r.onRun, fn) }
}

// NewReporter creates a Reporter.
func NewReporter(opts ...ReporterOption) (*Reporter, error) {
	r := &Reporter{}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = Logger()
	}
	if r.meter == nil {
		r.meter = noop.NewMeterProvider().Meter("github.com/wippyai/anybox/bench")
	}

	var err error
	r.duration, err = r.meter.Float64Histogram(
		"anybox.bench.duration",
		metric.WithDescription("Time per element of a container operation"),
		metric.WithUnit("ns"),
	)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseReport, errors.KindInvalidInput, err, "create duration histogram")
	}
	r.allocs, err = r.meter.Float64Histogram(
		"anybox.bench.allocs",
		metric.WithDescription("Heap allocations per element"),
		metric.WithUnit("{allocation}"),
	)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseReport, errors.KindInvalidInput, err, "create allocs histogram")
	}
	return r, nil
}

// Analysis logs the storage analysis of a container type.
func (r *Reporter) Analysis(a Analysis) {
	r.log.Info("analyse",
		zap.String("type", a.Type),
		zap.Uintptr("size", a.Size),
		zap.Bool("trivially_constructible", a.TriviallyConstructible),
		zap.Bool("trivially_destructible", a.TriviallyDestructible),
		zap.String("class", a.Class))
}

// Group marks the start of a group of related measurements.
func (r *Reporter) Group(name string) {
	r.log.Info("=====================================================", zap.String("group", name))
}

// Result logs and records one measurement.
func (r *Reporter) Result(ctx context.Context, res Result) {
	fields := []zap.Field{
		zap.String("group", res.Group),
		zap.String("measure", string(res.Measure)),
		zap.String("container", res.Container),
		zap.String("payload", res.Payload),
	}
	base := []attribute.KeyValue{
		attribute.String("measure", string(res.Measure)),
		attribute.String("container", res.Container),
		attribute.String("payload", res.Payload),
	}

	if res.Measure == MeasureGet {
		fields = append(fields, zap.Float64("get_ns", res.Get))
		r.record(ctx, base, "get", res.Get)
	} else {
		fields = append(fields,
			zap.Float64("construct_ns", res.Construct),
			zap.Float64("destroy_ns", res.Destroy))
		r.record(ctx, base, "construct", res.Construct)
		r.record(ctx, base, "destroy", res.Destroy)
	}
	fields = append(fields, zap.Float64("allocs", res.Allocs))
	r.allocs.Record(ctx, res.Allocs, metric.WithAttributes(base...))

	r.log.Info("result", fields...)

	for _, fn := range r.onResult {
		fn(res)
	}
}

func (r *Reporter) record(ctx context.Context, base []attribute.KeyValue, op string, ns float64) {
	attrs := append(base[:len(base):len(base)], attribute.String("op", op))
	r.duration.Record(ctx, ns, metric.WithAttributes(attrs...))
}

// Commit saves a completed run, assigns its ID when a Recorder is set, and
// keeps it in memory.
func (r *Reporter) Commit(ctx context.Context, run *Run) error {
	if r.recorder != nil {
		id, err := r.recorder.SaveRun(ctx, *run)
		if err != nil {
			return err
		}
		run.ID = id
	}

	r.mu.Lock()
	r.runs = append(r.runs, *run)
	if r.history > 0 && len(r.runs) > r.history {
		r.runs = append(r.runs[:0], r.runs[len(r.runs)-r.history:]...)
	}
	r.mu.Unlock()

	r.log.Info("run complete",
		zap.Int("loop", run.Loop),
		zap.Int64("id", run.ID),
		zap.Duration("elapsed", run.Elapsed))

	for _, fn := range r.onRun {
		fn(*run)
	}
	return nil
}

// Runs returns a copy of the runs kept in memory, oldest first.
func (r *Reporter) Runs() []Run {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Run, len(r.runs))
	copy(out, r.runs)
	return out
}

// Latest returns the most recent run.
func (r *Reporter) Latest() (Run, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.runs) == 0 {
		return Run{}, false
	}
	return r.runs[len(r.runs)-1], true
}
