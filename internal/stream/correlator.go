package stream

import (
	"container/list"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/taskcluster/gdb-js/internal/mi"
)

// Interpreter distinguishes the two reply streams a pending request can
// belong to: MI requests resolve on their result record alone;
// CLI requests additionally need their framed console echo.
type Interpreter int

const (
	MI Interpreter = iota
	CLI
)

// DefaultCLIToken is the magic prefix the "concat" debugger-side helper
// prepends to a CLI command's console echo.
const DefaultCLIToken = "GDBJS^"

// Outcome is what a pending request resolves with: either a successful
// payload or a typed error. Exactly one of Data/CLIBody is meaningful,
// selected by the request's Interpreter.
type Outcome struct {
	Class   string
	Data    *mi.Tuple
	CLIBody string
	Err     error
}

// GdbError is raised when MI answers a request with "^error". It carries
// enough to let the caller build a rich, typed error without the
// correlator needing to know about the public error taxonomy.
type GdbError struct {
	Msg     string
	Code    int
	Command string
}

func (e *GdbError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("gdb: %q failed: %s (code %d)", e.Command, e.Msg, e.Code)
	}
	return fmt.Sprintf("gdb: %q failed: %s", e.Command, e.Msg)
}

// ProcessTerminatedError is delivered to every request still pending when
// the subprocess's output stream closes.
type ProcessTerminatedError struct {
	Command string
}

func (e *ProcessTerminatedError) Error() string {
	return fmt.Sprintf("gdb: process terminated before %q completed", e.Command)
}

type pendingRequest struct {
	cmd    string
	interp Interpreter
	ch     chan Outcome

	resultSet   bool
	resultClass string
	resultData  *mi.Tuple

	echoSet  bool
	echoBody string
}

// Correlator pairs incoming Result records with the FIFO queue of
// requests the dispatcher enqueued, and — for CLI requests — additionally
// waits for the matching framed console echo. It is driven entirely from
// the single demultiplexer goroutine plus whichever goroutine enqueues
// requests; the mutex only protects the two list.List queues, never a
// blocking operation.
type Correlator struct {
	mu        sync.Mutex
	pending   *list.List // all requests, submission order
	cliQueue  *list.List // CLI-only subset, submission order
	token     string
	logger    *slog.Logger
	terminate error // once set, all future Enqueue calls fail immediately
}

func NewCorrelator(token string, logger *slog.Logger) *Correlator {
	if token == "" {
		token = DefaultCLIToken
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Correlator{
		pending:  list.New(),
		cliQueue: list.New(),
		token:    token,
		logger:   logger,
	}
}

// Token returns the magic prefix console echoes are expected to start
// with, for the dispatcher's command-wrapping step.
func (c *Correlator) Token() string { return c.token }

// Enqueue registers a new pending request in FIFO order. It must be
// called only after the corresponding command bytes have already been
// written to the subprocess, preserving request/reply ordering.
func (c *Correlator) Enqueue(cmd string, interp Interpreter) (<-chan Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.terminate != nil {
		return nil, c.terminate
	}
	req := &pendingRequest{cmd: cmd, interp: interp, ch: make(chan Outcome, 1)}
	c.pending.PushBack(req)
	if interp == CLI {
		c.cliQueue.PushBack(req)
	}
	return req.ch, nil
}

// OnResult feeds one parsed Result record to the correlator. rec.Kind
// must be mi.ResultRecord.
func (c *Correlator) OnResult(rec mi.Record) {
	c.mu.Lock()
	front := c.pending.Front()
	if front == nil {
		c.mu.Unlock()
		c.logger.Warn("stream: result record with no pending request", "class", rec.Class)
		return
	}
	c.pending.Remove(front)
	req := front.Value.(*pendingRequest)

	data, _ := rec.Data.(*mi.Tuple)

	if rec.Class == "error" {
		c.removeCLI(req)
		c.mu.Unlock()
		req.ch <- Outcome{Class: rec.Class, Err: buildGdbError(req.cmd, data)}
		return
	}

	if req.interp == MI {
		c.mu.Unlock()
		req.ch <- Outcome{Class: rec.Class, Data: data}
		return
	}

	// CLI: park the result until the matching echo (if any) arrives.
	req.resultSet = true
	req.resultClass = rec.Class
	req.resultData = data
	ready := req.echoSet
	if ready {
		c.removeCLI(req)
	}
	c.mu.Unlock()
	if ready {
		req.ch <- Outcome{Class: req.resultClass, Data: req.resultData, CLIBody: req.echoBody}
	}
}

// OnConsoleEcho feeds one console record's text to the correlator. If it
// starts with the CLI token, the remainder is paired against the oldest
// still-open CLI request.
func (c *Correlator) OnConsoleEcho(text string) {
	if !strings.HasPrefix(text, c.token) {
		return
	}
	body := strings.TrimPrefix(text, c.token)

	c.mu.Lock()
	front := c.cliQueue.Front()
	if front == nil {
		c.mu.Unlock()
		c.logger.Warn("stream: CLI console echo with no pending CLI request")
		return
	}
	req := front.Value.(*pendingRequest)
	req.echoSet = true
	req.echoBody = body
	ready := req.resultSet
	if ready {
		c.cliQueue.Remove(front)
	}
	c.mu.Unlock()
	if ready {
		req.ch <- Outcome{Class: req.resultClass, Data: req.resultData, CLIBody: req.echoBody}
	}
}

// removeCLI drops req from the CLI-only queue if present. Caller must
// hold c.mu.
func (c *Correlator) removeCLI(req *pendingRequest) {
	if req.interp != CLI {
		return
	}
	for e := c.cliQueue.Front(); e != nil; e = e.Next() {
		if e.Value.(*pendingRequest) == req {
			c.cliQueue.Remove(e)
			return
		}
	}
}

// Terminate rejects every still-pending request with err and makes every
// future Enqueue fail with the same error.
func (c *Correlator) Terminate(err error) {
	c.mu.Lock()
	c.terminate = err
	var reqs []*pendingRequest
	for e := c.pending.Front(); e != nil; e = e.Next() {
		reqs = append(reqs, e.Value.(*pendingRequest))
	}
	// CLI requests whose result already arrived have left pending but are
	// still waiting for their console echo.
	for e := c.cliQueue.Front(); e != nil; e = e.Next() {
		if req := e.Value.(*pendingRequest); req.resultSet {
			reqs = append(reqs, req)
		}
	}
	c.pending.Init()
	c.cliQueue.Init()
	c.mu.Unlock()
	for _, req := range reqs {
		req.ch <- Outcome{Err: &ProcessTerminatedError{Command: req.cmd}}
	}
}

func buildGdbError(cmd string, data *mi.Tuple) *GdbError {
	if data == nil {
		return &GdbError{Command: cmd}
	}
	return &GdbError{
		Command: cmd,
		Msg:     mi.String(data, "msg", ""),
		Code:    mi.Int(data, "code", 0),
	}
}
