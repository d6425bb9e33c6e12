package stream

import (
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func TestSplitLines_CRLFAndLF(t *testing.T) {
	var got []string
	err := SplitLines(strings.NewReader("a\r\nb\nc\r\n"), func(l string) { got = append(got, l) })
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitLines_PartialTrailingDispatchedOnClose(t *testing.T) {
	var got []string
	err := SplitLines(strings.NewReader("complete\npartial-no-newline"), func(l string) { got = append(got, l) })
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1] != "partial-no-newline" {
		t.Fatalf("got %v", got)
	}
}

func TestSplitLines_EmptyReaderEmitsNothing(t *testing.T) {
	var got []string
	err := SplitLines(strings.NewReader(""), func(l string) { got = append(got, l) })
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("got %v", got)
	}
}

func TestSplitLines_SameRecordCountRegardlessOfChunking(t *testing.T) {
	data := "one\ntwo\nthree\nfour\n"
	readers := map[string]io.Reader{
		"whole":    strings.NewReader(data),
		"one-byte": iotest.OneByteReader(strings.NewReader(data)),
		"half":     iotest.HalfReader(strings.NewReader(data)),
	}
	for name, r := range readers {
		var got []string
		if err := SplitLines(r, func(l string) { got = append(got, l) }); err != nil {
			t.Fatal(err)
		}
		if len(got) != 4 {
			t.Fatalf("%s: got %d lines, want 4: %v", name, len(got), got)
		}
	}
}
