package filter

import "log/slog"

// Option configures a Compound at construction.
type Option func(*Options)

type Options struct {
	Description string
	Logger      *slog.Logger
}

func WithDescription(description string) Option {
	return func(opts *Options) {
		opts.Description = description
	}
}

// WithLogger sets the logger that receives propagation events at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

func newOptions(opts []Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}
