package stream

import (
	"strings"
	"testing"
)

func TestDemux_StoppedBreakpointHit(t *testing.T) {
	d := NewDemux("", nil)
	events := d.Events.Subscribe()

	input := `*stopped,reason="breakpoint-hit",bkptno="1",thread-id="1",frame={fullname="/p/hello.c",line="9"}` + "\n"
	if err := d.Run(strings.NewReader(input)); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-events:
		if ev.Name != "stopped" {
			t.Fatalf("event name = %q", ev.Name)
		}
		sd := ev.Data.(StoppedData)
		if sd.Reason != "breakpoint-hit" {
			t.Errorf("reason = %q", sd.Reason)
		}
		if sd.Thread == nil || sd.Thread.ID != 1 || sd.Thread.Status != "stopped" {
			t.Errorf("thread = %+v", sd.Thread)
		}
		if sd.Thread.Frame == nil || sd.Thread.Frame.Line != 9 {
			t.Errorf("frame = %+v", sd.Thread.Frame)
		}
		if sd.Breakpoint == nil || sd.Breakpoint.ID != 1 {
			t.Errorf("breakpoint = %+v", sd.Breakpoint)
		}
	default:
		t.Fatal("no event published")
	}
}

func TestDemux_RunningAllThreadsOmitsThread(t *testing.T) {
	d := NewDemux("", nil)
	events := d.Events.Subscribe()

	if err := d.Run(strings.NewReader(`*running,thread-id="all"` + "\n")); err != nil {
		t.Fatal(err)
	}
	ev := <-events
	rd := ev.Data.(RunningData)
	if rd.Thread != nil {
		t.Errorf("thread = %+v, want nil", rd.Thread)
	}
}

func TestDemux_ThreadGroupStarted(t *testing.T) {
	d := NewDemux("", nil)
	events := d.Events.Subscribe()

	if err := d.Run(strings.NewReader(`=thread-group-started,id="i1",pid="1234"` + "\n")); err != nil {
		t.Fatal(err)
	}
	ev := <-events
	if ev.Name != "thread-group-started" {
		t.Fatalf("name = %q", ev.Name)
	}
	gd := ev.Data.(ThreadGroupLifecycleData)
	if gd.Group.ID != 1 || gd.Group.Pid != 1234 {
		t.Errorf("group = %+v", gd.Group)
	}
}

func TestDemux_ConsoleStreamIsClean(t *testing.T) {
	d := NewDemux("", nil)
	console := d.Console.Subscribe()

	input := `~"GDBJS^<gdbjs:event:ping {} ping:event:gdbjs>done\n"` + "\n"
	if err := d.Run(strings.NewReader(input)); err != nil {
		t.Fatal(err)
	}
	got := <-console
	if strings.Contains(got, "<gdbjs:") {
		t.Errorf("console text still carries a frame: %q", got)
	}
}

func TestDemux_CorrelatorReceivesResults(t *testing.T) {
	d := NewDemux("", nil)
	ch, err := d.Correlator.Enqueue("-break-list", MI)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Run(strings.NewReader(`^done,BreakpointTable={}` + "\n")); err != nil {
		t.Fatal(err)
	}
	out := <-ch
	if out.Err != nil {
		t.Fatalf("unexpected error: %v", out.Err)
	}
	if out.Class != "done" {
		t.Errorf("class = %q", out.Class)
	}
}
