package dispatch

import (
	"bufio"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/taskcluster/gdb-js/internal/mi"
	"github.com/taskcluster/gdb-js/internal/stream"
	"github.com/taskcluster/gdb-js/internal/subprocess"
)

func TestDispatcher_SerializesOperations(t *testing.T) {
	fake, stdinRead, _ := subprocess.NewFake()
	correlator := stream.NewCorrelator("", nil)
	// send enqueues a request only after its write has returned, so each
	// reply below waits for the Count hook that follows Enqueue.
	enqueued := make(chan struct{}, 2)
	d := New(fake, correlator, nil, Metrics{Count: func() { enqueued <- struct{}{} }})

	r := bufio.NewReader(stdinRead)
	readLine := func() string {
		line, err := r.ReadString('\n')
		if err != nil {
			t.Fatalf("read stdin: %v", err)
		}
		return strings.TrimSuffix(line, "\n")
	}

	var mu sync.Mutex
	var order []string
	record := func(s string) {
		mu.Lock()
		order = append(order, s)
		mu.Unlock()
	}

	started := make(chan struct{}, 2)
	finished := make(chan struct{}, 2)
	run := func(name, cmd string) {
		started <- struct{}{}
		_ = d.Do(context.Background(), func(ctx context.Context) error {
			record(name + "-start")
			_, _ = d.SendMI(ctx, cmd, Scope{})
			record(name + "-end")
			return nil
		})
		finished <- struct{}{}
	}
	go run("A", "cmd-a")
	go run("B", "cmd-b")

	<-started
	<-started

	first := readLine()
	if !strings.HasPrefix(first, "cmd-a") && !strings.HasPrefix(first, "cmd-b") {
		t.Fatalf("unexpected first command: %q", first)
	}
	<-enqueued
	correlator.OnResult(mi.Parse("^done"))
	<-finished

	second := readLine()
	if second == first {
		t.Fatalf("second write repeated the first: %q", second)
	}
	<-enqueued
	correlator.OnResult(mi.Parse("^done"))
	<-finished

	mu.Lock()
	defer mu.Unlock()
	// Whichever of A/B ran first, its "-end" must precede the other's "-start".
	startOfSecond := order[2]
	if !strings.HasSuffix(order[1], "-end") || !strings.HasSuffix(startOfSecond, "-start") {
		t.Fatalf("operations interleaved: %v", order)
	}
}

func TestDispatcher_SendCLI_ThreadGroupScope_SwitchesInferior(t *testing.T) {
	fake, stdinRead, _ := subprocess.NewFake()
	correlator := stream.NewCorrelator("", nil)
	enqueued := make(chan struct{}, 2)
	d := New(fake, correlator, nil, Metrics{Count: func() { enqueued <- struct{}{} }})

	var mu sync.Mutex
	var sent []string
	go func() {
		r := bufio.NewReader(stdinRead)
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			line = strings.TrimSuffix(line, "\n")
			mu.Lock()
			sent = append(sent, line)
			mu.Unlock()
			<-enqueued
			correlator.OnResult(mi.Parse("^done"))
			correlator.OnConsoleEcho(correlator.Token() + "ok")
		}
	}()

	out, err := d.SendCLI(context.Background(), "print x", ThreadGroupOf(7))
	if err != nil {
		t.Fatalf("SendCLI returned error: %v", err)
	}
	if out.CLIBody != "ok" {
		t.Errorf("CLIBody = %q, want %q", out.CLIBody, "ok")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(sent) != 2 {
		t.Fatalf("sent = %v, want 2 commands", sent)
	}
	if !strings.Contains(sent[0], "concat "+correlator.Token()+" inferior 7") {
		t.Errorf("first command = %q, want an inferior switch", sent[0])
	}
	if !strings.Contains(sent[1], "concat "+correlator.Token()+" print x") {
		t.Errorf("second command = %q, want the original command unchanged", sent[1])
	}
}

func TestDispatcher_PreserveThread_RestoresSelection(t *testing.T) {
	fake, stdinRead, _ := subprocess.NewFake()
	correlator := stream.NewCorrelator("", nil)
	enqueued := make(chan struct{}, 3)
	d := New(fake, correlator, nil, Metrics{Count: func() { enqueued <- struct{}{} }})

	var mu sync.Mutex
	var sent []string
	go func() {
		r := bufio.NewReader(stdinRead)
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			line = strings.TrimSuffix(line, "\n")
			mu.Lock()
			sent = append(sent, line)
			mu.Unlock()
			<-enqueued
			switch {
			case strings.HasPrefix(line, "-thread-info"):
				correlator.OnResult(mi.Parse(`^done,current-thread-id="2"`))
			default:
				correlator.OnResult(mi.Parse("^done"))
			}
		}
	}()

	err := d.PreserveThread(context.Background(), func(ctx context.Context) error {
		_, sendErr := d.SendMI(ctx, "-exec-run", ThreadGroupOf(3))
		return sendErr
	})
	if err != nil {
		t.Fatalf("PreserveThread returned error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(sent) != 3 {
		t.Fatalf("sent = %v, want 3 commands", sent)
	}
	if !strings.HasPrefix(sent[0], "-thread-info") {
		t.Errorf("first command = %q, want -thread-info", sent[0])
	}
	if !strings.Contains(sent[1], "--thread-group i3") {
		t.Errorf("second command = %q, want thread-group injection", sent[1])
	}
	if sent[2] != "-thread-select 2" {
		t.Errorf("third command = %q, want restore to thread 2", sent[2])
	}
}
