package dispatch

import (
	"fmt"
	"strings"
)

// FormatMI builds the wire text of an MI command under scope: the command
// is split at its first space into head and options, and a scope injects
// an extra leading option.
func FormatMI(cmd string, scope Scope) string {
	head, rest := splitHeadRest(cmd)
	switch scope.Kind {
	case ThreadScope:
		return joinHeadOptions(head, fmt.Sprintf("--thread %d", scope.ThreadID), rest)
	case ThreadGroupScope:
		return joinHeadOptions(head, fmt.Sprintf("--thread-group %s", scope.groupIDString()), rest)
	default:
		return cmd
	}
}

// FormatCLI builds the CLI command text under scope. A Thread scope wraps
// the command in "thread apply <id> <cmd>"; a ThreadGroup scope never
// rewrites the command text itself (GDB's CLI has no per-command inferior
// option) — Dispatcher.SendCLI switches the current inferior with a
// separate round trip before sending this text.
func FormatCLI(cmd string, scope Scope) string {
	if scope.Kind == ThreadScope {
		return fmt.Sprintf("thread apply %d %s", scope.ThreadID, cmd)
	}
	return cmd
}

// WrapCLIToken wraps a CLI command in the magic-prefix correlator variant:
// "-interpreter-exec console \"concat <token> <cmd>\"".
func WrapCLIToken(cmd, token string) string {
	return fmt.Sprintf(`-interpreter-exec console "concat %s %s"`, token, quoteMIBody(cmd))
}

func splitHeadRest(cmd string) (head, rest string) {
	i := strings.IndexByte(cmd, ' ')
	if i < 0 {
		return cmd, ""
	}
	return cmd[:i], cmd[i+1:]
}

func joinHeadOptions(head, injected, rest string) string {
	if rest == "" {
		return head + " " + injected
	}
	return head + " " + injected + " " + rest
}
