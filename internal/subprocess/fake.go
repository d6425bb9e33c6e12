package subprocess

import (
	"io"
	"os"
)

// Fake is an in-memory Process backed by pipes, for tests that need to
// feed canned GDB output and observe what the dispatcher writes without
// spawning a real GDB binary.
type Fake struct {
	In  *io.PipeWriter // not set by NewFake; tests see dispatcher writes through the stdinRead it returns
	out *io.PipeReader // what Stdout() returns
	w   *io.PipeWriter // what the test writes to, to feed output

	stdinR *io.PipeReader
	stdinW *io.PipeWriter

	waitCh chan error
	sig    chan os.Signal
}

// NewFake returns a Fake and the two pipe halves the test drives:
// stdinRead lets the test observe bytes the dispatcher writes to stdin;
// stdoutWrite lets the test inject bytes as if GDB had printed them.
func NewFake() (f *Fake, stdinRead io.Reader, stdoutWrite io.WriteCloser) {
	sr, sw := io.Pipe()
	or, ow := io.Pipe()
	f = &Fake{
		stdinR: sr,
		stdinW: sw,
		out:    or,
		w:      ow,
		waitCh: make(chan error, 1),
		sig:    make(chan os.Signal, 8),
	}
	return f, sr, ow
}

func (f *Fake) Stdin() io.WriteCloser { return f.stdinW }
func (f *Fake) Stdout() io.ReadCloser { return f.out }
func (f *Fake) Start() error          { return nil }

func (f *Fake) Wait() error { return <-f.waitCh }

// Exit makes a pending Wait return err, simulating process termination.
func (f *Fake) Exit(err error) { f.waitCh <- err }

func (f *Fake) Signal(sig os.Signal) error {
	f.sig <- sig
	return nil
}

// Signals exposes every signal delivered via Signal, for assertions.
func (f *Fake) Signals() <-chan os.Signal { return f.sig }
