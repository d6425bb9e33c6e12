package stream

import (
	"io"
	"log/slog"
	"strconv"

	"github.com/taskcluster/gdb-js/internal/entities"
	"github.com/taskcluster/gdb-js/internal/mi"
)

// Event is one high-level, synthesized event: "stopped", "running",
// "thread-created", "thread-exited", "thread-group-started",
// "thread-group-exited", "new-objfile", or a custom name a debugger-side
// Python script pushed through the embedded-event channel.
type Event struct {
	Name string
	Data any
}

// StoppedData is the payload of a "stopped" event.
type StoppedData struct {
	Reason     string
	Thread     *entities.Thread
	Breakpoint *entities.Breakpoint
}

// RunningData is the payload of a "running" event.
type RunningData struct {
	Thread *entities.Thread
}

// ThreadLifecycleData is the payload of "thread-created"/"thread-exited".
type ThreadLifecycleData struct {
	Thread *entities.Thread
}

// ThreadGroupLifecycleData is the payload of
// "thread-group-started"/"thread-group-exited".
type ThreadGroupLifecycleData struct {
	Group *entities.ThreadGroup
}

// NewObjfileData is the payload of "new-objfile".
type NewObjfileData struct {
	File string
}

// Demux owns the single goroutine that reads lines, classifies them, and
// fans them out. It is the only destructive consumer of the result-record
// stream (via Correlator); every Bus below is a non-consuming observer.
type Demux struct {
	logger     *slog.Logger
	Correlator *Correlator

	Console       *Bus[string]
	Target        *Bus[string]
	Log           *Bus[string]
	Exec          *Bus[mi.Record]
	Notify        *Bus[mi.Record]
	Status        *Bus[mi.Record]
	Events        *Bus[Event]
	ConsoleEvents *Bus[EmbeddedEvent]
}

// NewDemux builds a Demux with a fresh Correlator using token (empty
// string for the default) and the given logger (nil defaults to
// slog.Default()).
func NewDemux(token string, logger *slog.Logger) *Demux {
	if logger == nil {
		logger = slog.Default()
	}
	return &Demux{
		logger:        logger,
		Correlator:    NewCorrelator(token, logger),
		Console:       NewBus[string]("console", logger),
		Target:        NewBus[string]("target", logger),
		Log:           NewBus[string]("log", logger),
		Exec:          NewBus[mi.Record]("exec", logger),
		Notify:        NewBus[mi.Record]("notify", logger),
		Status:        NewBus[mi.Record]("status", logger),
		Events:        NewBus[Event]("events", logger),
		ConsoleEvents: NewBus[EmbeddedEvent]("console-events", logger),
	}
}

// Run reads r line by line until it is exhausted or errors, dispatching
// every line through handleLine. It blocks; callers run it in its own
// goroutine and treat a returned error or the reader's close as the
// subprocess's output stream having ended.
func (d *Demux) Run(r io.Reader) error {
	return SplitLines(r, d.handleLine)
}

func (d *Demux) handleLine(line string) {
	rec := mi.Parse(line)
	switch rec.Kind {
	case mi.ResultRecord:
		d.Correlator.OnResult(rec)
	case mi.ConsoleRecord:
		text := string(rec.Data.(mi.CString))
		d.Correlator.OnConsoleEcho(text)
		for _, ev := range ExtractEvents(text, d.logger) {
			d.ConsoleEvents.Publish(ev)
			if ev.Name == "new-objfile" {
				if file, ok := ev.Data.(string); ok {
					d.Events.Publish(Event{Name: "new-objfile", Data: NewObjfileData{File: file}})
				}
			}
		}
		d.Console.Publish(StripFrames(text))
	case mi.TargetRecord:
		d.Target.Publish(StripFrames(string(rec.Data.(mi.CString))))
	case mi.LogRecord:
		d.Log.Publish(StripFrames(string(rec.Data.(mi.CString))))
	case mi.ExecRecord:
		d.synthesizeExec(rec)
		d.Exec.Publish(rec)
	case mi.NotifyRecord:
		d.synthesizeNotify(rec)
		d.Notify.Publish(rec)
	case mi.StatusRecord:
		d.Status.Publish(rec)
	case mi.PromptRecord, mi.RawRecord:
		// Neither carries synthesized meaning; Raw is diagnostic only.
	}
}

func (d *Demux) synthesizeExec(rec mi.Record) {
	data, _ := rec.Data.(*mi.Tuple)
	switch rec.Class {
	case "stopped":
		sd := StoppedData{Reason: mi.String(data, "reason", "")}
		if tid := mi.String(data, "thread-id", ""); tid != "" && tid != "all" {
			sd.Thread = threadFromID(tid, "stopped", mi.Tup(data, "frame"))
		}
		if sd.Reason == "breakpoint-hit" {
			sd.Breakpoint = &entities.Breakpoint{ID: mi.Int(data, "bkptno", 0)}
		}
		d.Events.Publish(Event{Name: "stopped", Data: sd})
	case "running":
		rd := RunningData{}
		if tid := mi.String(data, "thread-id", ""); tid != "" && tid != "all" {
			rd.Thread = threadFromID(tid, "running", nil)
		}
		d.Events.Publish(Event{Name: "running", Data: rd})
	}
}

func (d *Demux) synthesizeNotify(rec mi.Record) {
	data, _ := rec.Data.(*mi.Tuple)
	switch rec.Class {
	case "thread-created", "thread-exited":
		var group *entities.ThreadGroup
		if gid, ok := entities.ParseGroupID(mi.String(data, "group-id", "")); ok {
			group = &entities.ThreadGroup{ID: gid}
		}
		th := &entities.Thread{ID: mi.Int(data, "id", 0), Group: group}
		d.Events.Publish(Event{Name: rec.Class, Data: ThreadLifecycleData{Thread: th}})
	case "thread-group-started", "thread-group-exited":
		gid, _ := entities.ParseGroupID(mi.String(data, "id", ""))
		group := &entities.ThreadGroup{ID: gid}
		if mi.Has(data, "pid") {
			group.Pid = mi.Int(data, "pid", 0)
		}
		d.Events.Publish(Event{Name: rec.Class, Data: ThreadGroupLifecycleData{Group: group}})
	}
}

func threadFromID(tid, status string, frame *mi.Tuple) *entities.Thread {
	id, _ := strconv.Atoi(tid)
	return &entities.Thread{ID: id, Status: status, Frame: entities.FrameFromTuple(frame)}
}
