package mi_test

import (
	"fmt"

	"github.com/taskcluster/gdb-js/internal/mi"
)

func ExampleParse() {
	rec := mi.Parse(`^done,bkpt={number="1",func="main",line="4"}`)
	data := rec.Data.(*mi.Tuple)
	bkpt := mi.Tup(data, "bkpt")
	fmt.Printf("%s number=%s func=%s line=%d\n", rec.Class, mi.String(bkpt, "number", ""), mi.String(bkpt, "func", ""), mi.Int(bkpt, "line", 0))
	// Output: done number=1 func=main line=4
}
