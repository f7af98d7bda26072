package strdex

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	maxValueBytes      int
	rejectUnrecognized bool
	hasher             func(string) string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithMaxValueBytes caps the size of accepted values. 0 disables the cap.
// Defaults to 64 KiB.
func WithMaxValueBytes(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxValueBytes = n
	})
}

// WithRejectUnrecognized makes Query fail with ErrUnrecognizedQuery when no
// phrase is understood. By default such a query matches every string.
func WithRejectUnrecognized() Option {
	return optionFunc(func(c *clientConfig) {
		c.rejectUnrecognized = true
	})
}

// WithHasher replaces SHA-256 as the ID function. The function must be
// deterministic; its output becomes both the ID and the reported hash.
func WithHasher(h func(value string) string) Option {
	return optionFunc(func(c *clientConfig) {
		c.hasher = h
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
