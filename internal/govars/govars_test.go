package govars

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sample = `All defined variables:

File /src/a.c:
int counter;
static char *name;

File /src/b.c:
double total;

Non-debugging symbols:
0x0000000000601030  __data_start
`

func TestParse(t *testing.T) {
	got := Parse(sample)
	want := []Variable{
		{File: "/src/a.c", Type: "int", Name: "counter"},
		{File: "/src/a.c", Type: "static char *", Name: "name"},
		{File: "/src/b.c", Type: "double", Name: "total"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_NoFiles(t *testing.T) {
	if got := Parse("All defined variables:\n"); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}
