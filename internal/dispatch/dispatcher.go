// Package dispatch serializes public operations against a single GDB
// subprocess, formats MI/CLI command text (including scope injection and
// the CLI-over-MI escape convention), and restores the debugger's
// globally-selected thread after any operation that perturbs it.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/taskcluster/gdb-js/internal/stream"
	"github.com/taskcluster/gdb-js/internal/subprocess"
)

// Dispatcher owns the single ticket that makes public operations mutually
// exclusive, and the one writer of the subprocess's standard input.
type Dispatcher struct {
	proc       subprocess.Process
	correlator *stream.Correlator
	logger     *slog.Logger
	ticket     chan struct{}

	metrics Metrics
}

// Metrics is an optional hook for recording dispatched-command count and
// latency; both fields may be nil.
type Metrics struct {
	Count   func()
	Observe func(seconds float64)
}

// New builds a Dispatcher. proc must already be Start()-ed; correlator
// must be the same one feeding off proc's demultiplexed output.
func New(proc subprocess.Process, correlator *stream.Correlator, logger *slog.Logger, metrics Metrics) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	ticket := make(chan struct{}, 1)
	ticket <- struct{}{}
	return &Dispatcher{proc: proc, correlator: correlator, logger: logger, ticket: ticket, metrics: metrics}
}

// Do runs fn as the next link of the monotonic task chain: it blocks until
// every previously started Do has completed, then runs fn exclusively.
// Releasing the ticket happens regardless of fn's outcome.
func (d *Dispatcher) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	select {
	case <-d.ticket:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { d.ticket <- struct{}{} }()
	return fn(ctx)
}

// SendMI writes an MI command (after scope injection) and waits for its
// result.
func (d *Dispatcher) SendMI(ctx context.Context, cmd string, scope Scope) (stream.Outcome, error) {
	wrapped := FormatMI(cmd, scope)
	return d.send(ctx, wrapped, cmd, stream.MI)
}

// SendCLI writes a CLI command wrapped per the magic-prefix correlator
// variant and waits for both its result record and its framed echo. A
// ThreadGroup scope has no MI equivalent, so SendCLI switches the current
// inferior with its own "inferior <id>" round trip first; the caller is
// expected to have wrapped this call in a preserve-thread transaction,
// since switching inferior perturbs GDB's globally-selected thread.
func (d *Dispatcher) SendCLI(ctx context.Context, cmd string, scope Scope) (stream.Outcome, error) {
	if scope.Kind == ThreadGroupScope {
		if _, err := d.sendCLIPlain(ctx, fmt.Sprintf("inferior %d", scope.GroupID)); err != nil {
			return stream.Outcome{}, err
		}
	}
	return d.sendCLIPlain(ctx, FormatCLI(cmd, scope))
}

func (d *Dispatcher) sendCLIPlain(ctx context.Context, cmd string) (stream.Outcome, error) {
	wrapped := WrapCLIToken(cmd, d.correlator.Token())
	return d.send(ctx, wrapped, cmd, stream.CLI)
}

func (d *Dispatcher) send(ctx context.Context, wire, original string, interp stream.Interpreter) (stream.Outcome, error) {
	start := time.Now()
	if _, err := io.WriteString(d.proc.Stdin(), wire+"\n"); err != nil {
		return stream.Outcome{}, fmt.Errorf("dispatch: write command %q: %w", original, err)
	}
	ch, err := d.correlator.Enqueue(original, interp)
	if err != nil {
		return stream.Outcome{}, err
	}
	if d.metrics.Count != nil {
		d.metrics.Count()
	}
	select {
	case out := <-ch:
		if d.metrics.Observe != nil {
			d.metrics.Observe(time.Since(start).Seconds())
		}
		if out.Err != nil {
			return out, out.Err
		}
		return out, nil
	case <-ctx.Done():
		return stream.Outcome{}, ctx.Err()
	}
}

// Interrupt delivers an interrupt: a real process signal when async mode
// is off, or "-exec-interrupt" (scoped) when it is on.
func (d *Dispatcher) Interrupt(ctx context.Context, scope Scope, asyncEnabled bool, sig func() error) (stream.Outcome, error) {
	if !asyncEnabled {
		if err := sig(); err != nil {
			return stream.Outcome{}, fmt.Errorf("dispatch: interrupt signal: %w", err)
		}
		return stream.Outcome{}, nil
	}
	cmd := "-exec-interrupt --all"
	switch scope.Kind {
	case ThreadScope:
		cmd = fmt.Sprintf("-exec-interrupt --thread %d", scope.ThreadID)
	case ThreadGroupScope:
		cmd = fmt.Sprintf("-exec-interrupt --thread-group %s", scope.groupIDString())
	}
	return d.SendMI(ctx, cmd, Scope{})
}
