// Command gdbjs-attach is a minimal example of attaching gdbjs to an
// already-running process and printing its callstack once.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/taskcluster/gdb-js"
)

func main() {
	if err := Main(); err != nil {
		log.Fatal(err)
	}
}

func Main() error {
	fs := flag.NewFlagSet("gdbjs-attach", flag.ExitOnError)
	gdbPath := fs.String("gdb-path", "gdb", "path to the gdb binary")
	pid := fs.Int("pid", 0, "pid of the running process to attach to")

	cmd := &ffcli.Command{
		Name:       "gdbjs-attach",
		ShortUsage: "gdbjs-attach -pid <pid>",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if *pid == 0 {
				return fmt.Errorf("-pid is required")
			}
			return attach(ctx, *gdbPath, *pid)
		},
	}

	if err := cmd.Parse(os.Args[1:]); err != nil {
		return err
	}
	return cmd.Run(context.Background())
}

func attach(ctx context.Context, gdbPath string, pid int) error {
	client, err := gdbjs.NewClient(ctx, "", gdbjs.WithGdbPath(gdbPath), gdbjs.WithAttach(pid))
	if err != nil {
		return fmt.Errorf("start gdb: %w", err)
	}
	defer client.Exit(ctx)

	frames, err := client.Callstack(ctx, gdbjs.Scope{})
	if err != nil {
		return fmt.Errorf("callstack: %w", err)
	}
	for _, f := range frames {
		fmt.Printf("#%d  %s (%s:%d)\n", f.Level, f.Func, f.File, f.Line)
	}
	return nil
}
