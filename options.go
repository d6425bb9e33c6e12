package gdbjs

import (
	"log/slog"

	"github.com/taskcluster/gdb-js/internal/dispatch"
)

type config struct {
	gdbPath   string
	attachPid int
	tty       string
	args      []string
	env       []string
	cliToken  string
	logger    *slog.Logger
	metrics   dispatch.Metrics
}

// Option configures a Client at construction time.
type Option func(*config)

// WithGdbPath overrides the "gdb" binary looked up on PATH.
func WithGdbPath(path string) Option {
	return func(c *config) { c.gdbPath = path }
}

// WithAttach makes NewClient adopt an already-running process by pid
// instead of launching a fresh executable.
func WithAttach(pid int) Option {
	return func(c *config) { c.attachPid = pid }
}

// WithTTY sets a separate inferior terminal (--tty=), recommended whenever
// a caller will subscribe to the Target event stream.
func WithTTY(tty string) Option {
	return func(c *config) { c.tty = tty }
}

// WithArgs passes extra arguments to the debuggee.
func WithArgs(args ...string) Option {
	return func(c *config) { c.args = args }
}

// WithEnv sets additional environment variables for the GDB subprocess.
func WithEnv(env ...string) Option {
	return func(c *config) { c.env = env }
}

// WithCLIToken overrides the magic prefix used to correlate CLI console
// echoes (default "GDBJS^").
func WithCLIToken(token string) Option {
	return func(c *config) { c.cliToken = token }
}

// WithLogger supplies a *slog.Logger for ProtocolError-class diagnostics.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithMetrics wires optional dispatched-command counters/histograms (see
// internal/dispatch.Metrics), typically backed by
// github.com/prometheus/client_golang. Nil by default.
func WithMetrics(m dispatch.Metrics) Option {
	return func(c *config) { c.metrics = m }
}
