package bench

import (
	"time"

	"github.com/wippyai/anybox/errors"
)

// Config controls how much work each measurement does.
type Config struct {
	// Times is the number of fill/clear rounds per measurement.
	Times int `json:"times" yaml:"times"`
	// Num is the number of containers per round.
	Num int `json:"num" yaml:"num"`
	// Loops is the number of suite iterations. 0 runs until cancelled.
	Loops int `json:"loops" yaml:"loops"`
	// Interval is the pause between suite iterations.
	Interval time.Duration `json:"interval" yaml:"interval"`
	// Pin binds the measuring thread to the CPU it starts on.
	Pin bool `json:"pin" yaml:"pin"`
}

// DefaultConfig returns 100 rounds of 128 containers, one loop.
func DefaultConfig() Config {
	return Config{
		Times:    100,
		Num:      128,
		Loops:    1,
		Interval: time.Second,
	}
}

// Validate checks that the configuration describes runnable work.
func (c Config) Validate() error {
	switch {
	case c.Times <= 0:
		return errors.New(errors.PhaseBench, errors.KindInvalidInput).
			Path("times").Value(c.Times).Detail("must be positive").Build()
	case c.Num <= 0:
		return errors.New(errors.PhaseBench, errors.KindInvalidInput).
			Path("num").Value(c.Num).Detail("must be positive").Build()
	case c.Loops < 0:
		return errors.New(errors.PhaseBench, errors.KindInvalidInput).
			Path("loops").Value(c.Loops).Detail("must not be negative").Build()
	case c.Interval < 0:
		return errors.New(errors.PhaseBench, errors.KindInvalidInput).
			Path("interval").Value(c.Interval).Detail("must not be negative").Build()
	}
	return nil
}
