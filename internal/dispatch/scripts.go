package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// MaxScriptLength is the recommended ceiling on a single debugger-
// side helper script, to stay clear of GDB's command-line length limits.
const MaxScriptLength = 3500

// ErrScriptTooLarge is a Usage error: rejected synchronously, without
// ever touching the subprocess.
var ErrScriptTooLarge = errors.New("dispatch: script exceeds the length ceiling")

// EscapeScript encodes a Python script body for embedding inside a double-
// quoted MI console command.
func EscapeScript(src string) string {
	return quoteMIBody(src)
}

// quoteMIBody applies the escape vocabulary for embedding arbitrary text
// inside a double-quoted MI command argument:
// \ -> \\, newline -> \n, CR -> \r, tab -> \t, " -> \".
func quoteMIBody(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
		`"`, `\"`,
	)
	return r.Replace(s)
}

// InitScripts sends every script in order via
// `-interpreter-exec console "python\n<escaped>"`, rejecting any script
// over MaxScriptLength before writing anything to the subprocess.
func (d *Dispatcher) InitScripts(ctx context.Context, scripts []string) error {
	for i, src := range scripts {
		if len(src) > MaxScriptLength {
			return fmt.Errorf("dispatch: init script %d: %w", i, ErrScriptTooLarge)
		}
	}
	for _, src := range scripts {
		cmd := fmt.Sprintf(`-interpreter-exec console "python\n%s"`, EscapeScript(src))
		if _, err := d.SendMI(ctx, cmd, Scope{}); err != nil {
			return fmt.Errorf("dispatch: init script: %w", err)
		}
	}
	return nil
}
