package contract

import "log/slog"

// Option is a function that configures a Contract at bind time.
// Options follow the functional options pattern for flexible configuration.
type Option func(*options)

// options holds the internal configuration applied during Bind.
type options struct {
	logger *slog.Logger
}

// defaultOptions returns the configuration used when no options are supplied.
func defaultOptions() options {
	return options{
		logger: slog.Default(),
	}
}

// WithLogger configures the structured logger the contract reports binding
// and violations to. Defaults to slog.Default().
//
// Example:
//
//	c, err := contract.Bind(fn, sig, contract.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
