package gdbjs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"syscall"

	"github.com/taskcluster/gdb-js/internal/dispatch"
	"github.com/taskcluster/gdb-js/internal/stream"
	"github.com/taskcluster/gdb-js/internal/subprocess"
)

// Client is one GDB subprocess wrapped by the library. Every public
// operation is a suspension point: it blocks until the debugger
// replies, and at most one is in flight on a given Client at a time.
type Client struct {
	proc       subprocess.Process
	demux      *stream.Demux
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger

	asyncMu      sync.Mutex
	asyncEnabled bool

	groupMu        sync.Mutex
	currentGroupID int // GDB's default inferior is 1 until SelectThreadGroup changes it

	sourceFilesOnce  sync.Once
	sourceFilesCache []string
	sourceFilesErr   error
}

// NewClient spawns (or, with WithAttach, adopts) a GDB subprocess in MI
// mode and wires the demultiplexer and dispatcher around it. The returned
// Client is ready to accept public operations; call Init before anything
// that depends on the debugger-side helper scripts.
func NewClient(ctx context.Context, executable string, opts ...Option) (*Client, error) {
	cfg := config{gdbPath: "gdb", cliToken: stream.DefaultCLIToken}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	cmd := &subprocess.Command{
		GdbPath:    cfg.gdbPath,
		Executable: executable,
		AttachPid:  cfg.attachPid,
		Args:       cfg.args,
		TTY:        cfg.tty,
		Env:        cfg.env,
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("gdbjs: start subprocess: %w", err)
	}
	return newClient(cmd, cfg), nil
}

// newClient wires a Demux and Dispatcher around an already-started
// process. Split out from NewClient so tests can substitute a fake
// Process without spawning a real GDB binary.
func newClient(proc subprocess.Process, cfg config) *Client {
	demux := stream.NewDemux(cfg.cliToken, cfg.logger)
	dispatcher := dispatch.New(proc, demux.Correlator, cfg.logger, cfg.metrics)

	c := &Client{proc: proc, demux: demux, dispatcher: dispatcher, logger: cfg.logger, currentGroupID: 1}

	go func() {
		err := demux.Run(proc.Stdout())
		if err != nil {
			cfg.logger.Warn("gdbjs: demultiplexer stopped", "error", err)
		}
		demux.Correlator.Terminate(&stream.ProcessTerminatedError{Command: "<subprocess output closed>"})
	}()

	return c
}

// Init sends every debugger-side helper script in order. It
// must be called once before Context/SourceFiles/event-extension
// features are used; core MI operations (break/step/run/...) and ExecPy
// don't require it.
func (c *Client) Init(ctx context.Context, scripts []string) error {
	return c.do(ctx, func(ctx context.Context) error {
		return c.dispatcher.InitScripts(ctx, scripts)
	})
}

// Set sends a GDB "set <param> <value>" command.
func (c *Client) Set(ctx context.Context, param, value string) error {
	err := c.do(ctx, func(ctx context.Context) error {
		_, err := c.dispatcher.SendCLI(ctx, fmt.Sprintf("set %s %s", param, value), dispatch.Scope{})
		return err
	})
	return translateOutcomeErr(err)
}

// AttachOnFork configures GDB to keep debugging the parent after a fork,
// via "set follow-fork-mode parent" / "detach-on-fork off"-equivalent
// wiring exposed as a single call.
func (c *Client) AttachOnFork(ctx context.Context) error {
	if err := c.Set(ctx, "follow-fork-mode", "parent"); err != nil {
		return err
	}
	return c.Set(ctx, "detach-on-fork", "off")
}

// EnableAsync turns on MI async/non-stop-capable execution, which changes
// how Interrupt behaves.
func (c *Client) EnableAsync(ctx context.Context) error {
	if err := c.Set(ctx, "mi-async", "on"); err != nil {
		return err
	}
	c.asyncMu.Lock()
	c.asyncEnabled = true
	c.asyncMu.Unlock()
	return nil
}

func (c *Client) isAsyncEnabled() bool {
	c.asyncMu.Lock()
	defer c.asyncMu.Unlock()
	return c.asyncEnabled
}

// Attach attaches the running GDB instance to an already-running process.
func (c *Client) Attach(ctx context.Context, pid int) error {
	err := c.do(ctx, func(ctx context.Context) error {
		_, err := c.dispatcher.SendMI(ctx, fmt.Sprintf("-target-attach %d", pid), dispatch.Scope{})
		return err
	})
	return translateOutcomeErr(err)
}

// Detach detaches from the inferior identified by pid, or the current one
// if pid is 0.
func (c *Client) Detach(ctx context.Context, pid int) error {
	cmd := "-target-detach"
	if pid != 0 {
		cmd = fmt.Sprintf("-target-detach %d", pid)
	}
	err := c.do(ctx, func(ctx context.Context) error {
		_, err := c.dispatcher.SendMI(ctx, cmd, dispatch.Scope{})
		return err
	})
	return translateOutcomeErr(err)
}

// Interrupt stops the debuggee, using a real process signal when async
// mode is off or "-exec-interrupt" when it is on. Unlike every other
// operation, Interrupt bypasses the dispatcher's ticket: its entire
// purpose is to break into whatever operation currently holds it.
func (c *Client) Interrupt(ctx context.Context, scope Scope) error {
	_, err := c.dispatcher.Interrupt(ctx, scope.toInternal(), c.isAsyncEnabled(), func() error {
		return c.proc.Signal(syscall.SIGINT)
	})
	return translateOutcomeErr(err)
}

// Exit terminates the GDB session by sending "-gdb-exit" and waiting for
// the subprocess to end.
func (c *Client) Exit(ctx context.Context) error {
	err := c.do(ctx, func(ctx context.Context) error {
		_, err := c.dispatcher.SendMI(ctx, "-gdb-exit", dispatch.Scope{})
		return err
	})
	if err != nil {
		return translateOutcomeErr(err)
	}
	return c.proc.Wait()
}

// ReInit invalidates the memoized SourceFiles cache, forcing
// the next SourceFiles call to re-query every thread group.
func (c *Client) ReInit() {
	c.sourceFilesOnce = sync.Once{}
	c.sourceFilesCache = nil
	c.sourceFilesErr = nil
}
