package magnify

import "log/slog"

// Option configures a Magnifier during creation.
//
// Example:
//
//	m := magnify.New(
//	    magnify.WithLogger(slog.Default()),
//	    magnify.WithLimits(magnify.DefaultLimits()),
//	)
type Option func(*options)

type options struct {
	logger *slog.Logger
	limits *Limits
}

// WithLogger sets a logger for this Magnifier instead of the package
// logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithLimits clamps every frame's parameters to l before rendering.
// Without it, parameters are used as given.
func WithLimits(l Limits) Option {
	return func(o *options) {
		o.limits = &l
	}
}
