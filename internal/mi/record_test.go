package mi

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_AnonymousRecord(t *testing.T) {
	rec := Parse(`+download,{section=".isr_vector",section-size="776"}`)
	if rec.Kind != StatusRecord {
		t.Fatalf("kind = %v, want StatusRecord", rec.Kind)
	}
	if rec.Class != "download" {
		t.Fatalf("class = %q, want download", rec.Class)
	}
	data, ok := rec.Data.(*Tuple)
	if !ok {
		t.Fatalf("data is %T, want *Tuple", rec.Data)
	}
	inner := Tup(data, unnamedKey)
	if inner == nil {
		t.Fatalf("missing synthetic %q key in %v", unnamedKey, data.Keys())
	}
	if got := String(inner, "section", ""); got != ".isr_vector" {
		t.Errorf("section = %q", got)
	}
	if got := String(inner, "section-size", ""); got != "776" {
		t.Errorf("section-size = %q", got)
	}
}

func TestParse_UnderscoreInNames(t *testing.T) {
	rec := Parse(`^done,name="v1",numchild="0",value="1",type="int",thread-id="1",has_more="0"`)
	if rec.Kind != ResultRecord || rec.Class != "done" {
		t.Fatalf("rec = %+v", rec)
	}
	data := rec.Data.(*Tuple)
	if got := String(data, "has_more", ""); got != "0" {
		t.Errorf("has_more = %q, want 0", got)
	}
}

func TestParse_BreakpointInsert(t *testing.T) {
	rec := Parse(`^done,bkpt={number="1",fullname="/p/hello.c",line="4",func="main"}`)
	bkpt := Tup(rec.Data.(*Tuple), "bkpt")
	if bkpt == nil {
		t.Fatal("missing bkpt tuple")
	}
	if got := Int(bkpt, "line", 0); got != 4 {
		t.Errorf("line = %d, want 4", got)
	}
	if got := String(bkpt, "func", ""); got != "main" {
		t.Errorf("func = %q, want main", got)
	}
}

func TestParse_StoppedBreakpointHit(t *testing.T) {
	rec := Parse(`*stopped,reason="breakpoint-hit",bkptno="1",thread-id="1",frame={fullname="/p/hello.c",line="9"}`)
	if rec.Kind != ExecRecord || rec.Class != "stopped" {
		t.Fatalf("rec = %+v", rec)
	}
	data := rec.Data.(*Tuple)
	if got := String(data, "reason", ""); got != "breakpoint-hit" {
		t.Errorf("reason = %q", got)
	}
	frame := Tup(data, "frame")
	if got := Int(frame, "line", 0); got != 9 {
		t.Errorf("frame.line = %d, want 9", got)
	}
}

func TestParse_Evaluate(t *testing.T) {
	rec := Parse(`^done,value="3735928559"`)
	data := rec.Data.(*Tuple)
	if got := String(data, "value", ""); got != "3735928559" {
		t.Errorf("value = %q", got)
	}
}

func TestParse_ConsoleStream(t *testing.T) {
	rec := Parse(`~"Hello World!\n"`)
	if rec.Kind != ConsoleRecord {
		t.Fatalf("kind = %v", rec.Kind)
	}
	cs, ok := rec.Data.(CString)
	if !ok || string(cs) != "Hello World!\n" {
		t.Errorf("data = %#v", rec.Data)
	}
}

func TestParse_Prompt(t *testing.T) {
	for _, line := range []string{"(gdb)", "(gdb) "} {
		rec := Parse(line)
		if rec.Kind != PromptRecord {
			t.Errorf("Parse(%q).Kind = %v, want PromptRecord", line, rec.Kind)
		}
	}
}

func TestParse_MalformedIsRaw(t *testing.T) {
	for _, line := range []string{
		"",
		"garbage that is not MI at all",
		"^done,name=",
		"^done,{unterminated",
		`^done,x="unterminated`,
	} {
		rec := Parse(line)
		if rec.Kind != RawRecord {
			t.Errorf("Parse(%q).Kind = %v, want RawRecord", line, rec.Kind)
		}
		if rec.Line != line {
			t.Errorf("Parse(%q).Line = %q, want original line preserved", line, rec.Line)
		}
	}
}

func TestParse_ValueList(t *testing.T) {
	rec := Parse(`^done,thread-groups=["i1","i2"]`)
	data := rec.Data.(*Tuple)
	lst := Lst(data, "thread-groups")
	if lst == nil || len(lst.Items) != 2 {
		t.Fatalf("thread-groups = %#v", lst)
	}
	if lst.Items[0].(CString) != "i1" || lst.Items[1].(CString) != "i2" {
		t.Errorf("items = %v", lst.Items)
	}
}

func TestParse_ResultList(t *testing.T) {
	// Each bracket entry is itself a named result ("frame=..."), so this
	// hits the "[" result ("," result)* "]" production: the repeated
	// "frame" name collapses into an ordered List nested inside a Tuple,
	// not a bare List of bracket items.
	rec := Parse(`^done,stack=[frame={level="0",addr="0x1"},frame={level="1",addr="0x2"}]`)
	data := rec.Data.(*Tuple)
	stack, isTuple := data.m["stack"].(*Tuple)
	if !isTuple {
		t.Fatalf("stack = %#v, want *Tuple", data.m["stack"])
	}
	frames := Lst(stack, "frame")
	if frames == nil || len(frames.Items) != 2 {
		t.Fatalf("stack.frame = %#v, want 2 collapsed items", frames)
	}
}

func TestParse_BareTupleList(t *testing.T) {
	// Items with no leading name at all parse as an ordered value list,
	// since a bare value can only start with '"', '{' or '['.
	rec := Parse(`^done,frame=[{level="0",addr="0x1"},{level="1",addr="0x2"}]`)
	data := rec.Data.(*Tuple)
	lst, isList := data.m["frame"].(*List)
	if !isList || len(lst.Items) != 2 {
		t.Fatalf("frame = %#v, want a 2-item *List", data.m["frame"])
	}
}

func TestParse_TokenPresent(t *testing.T) {
	rec := Parse(`42^done`)
	if rec.Token == nil || *rec.Token != 42 {
		t.Fatalf("token = %v, want 42", rec.Token)
	}
}

func TestParse_EmptyContainers(t *testing.T) {
	rec := Parse(`^done,a={},b=[]`)
	data := rec.Data.(*Tuple)
	a := Tup(data, "a")
	if a == nil || a.Len() != 0 {
		t.Errorf("a = %#v", a)
	}
	b := Lst(data, "b")
	if b == nil || len(b.Items) != 0 {
		t.Errorf("b = %#v", b)
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"with \"quotes\" and \\backslash\\",
		"tabs\tand\nnewlines\rand\bbackspace\fformfeed",
		"unicode: héllo wörld 你好",
	}
	for _, in := range inputs {
		encoded := EncodeCString(in)
		decoded := DecodeCString(encoded)
		if decoded != in {
			t.Errorf("round trip mismatch: in=%q encoded=%q decoded=%q", in, encoded, decoded)
		}
	}
}

func TestParse_OneRecordPerLineWithExpectedKinds(t *testing.T) {
	lines := []string{
		`^done`,
		`~"hi\n"`,
		`*stopped,reason="exited-normally"`,
		`=thread-created,id="1",group-id="i1"`,
		`(gdb)`,
	}
	var kinds []RecordKind
	for _, l := range lines {
		kinds = append(kinds, Parse(l).Kind)
	}
	want := []RecordKind{ResultRecord, ConsoleRecord, ExecRecord, NotifyRecord, PromptRecord}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}
