package lang

import (
	"io"

	"github.com/sergev/vispel/log"
)

// DefaultMaxDepth bounds nested user function calls.
const DefaultMaxDepth = 10000

type options struct {
	logger   log.Logger
	out      io.Writer
	maxDepth int
}

// Option configures a Resolver or Evaluator.
type Option func(*options)

func makeOptions(opts ...Option) options {
	o := options{out: io.Discard, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger used for trace records.
func WithLogger(l log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithOutput sets where the final value of a chunk is printed.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w == nil {
			w = io.Discard
		}
		o.out = w
	}
}

// WithMaxDepth bounds nested user function calls. Non-positive values keep
// the default.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}
