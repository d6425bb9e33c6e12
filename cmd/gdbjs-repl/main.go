// Command gdbjs-repl is an interactive shell over a gdbjs.Client: a thin
// example of the library, not part of its public contract.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/UNO-SOFT/zlog/v2"
	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/taskcluster/gdb-js"
	"github.com/taskcluster/gdb-js/internal/govars"
	"github.com/taskcluster/gdb-js/scripts"
)

var verbose zlog.VerboseVar

func main() {
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "gdbjs-repl <executable>",
		Short: "Interactive shell over a GDB/MI session",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	f := root.Flags()
	f.String("gdb-path", "gdb", "path to the gdb binary")
	f.String("tty", "", "separate terminal device for the debuggee's own output")
	f.Bool("verbose", false, "enable debug-level logging")
	f.String("metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090)")

	viper.SetEnvPrefix("GDBJS")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	_ = viper.BindPFlag("gdb_path", f.Lookup("gdb-path"))
	_ = viper.BindPFlag("tty", f.Lookup("tty"))
	_ = viper.BindPFlag("verbose", f.Lookup("verbose"))
	_ = viper.BindPFlag("metrics_addr", f.Lookup("metrics-addr"))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if viper.GetBool("verbose") {
		_ = verbose.Set("1")
	}
	logger := zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()
	sessionID := uuid.NewString()
	logger = logger.With("session", sessionID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-sigCh
		cancel()
	}()

	opts := []gdbjs.Option{
		gdbjs.WithGdbPath(viper.GetString("gdb_path")),
		gdbjs.WithLogger(logger),
	}
	if tty := viper.GetString("tty"); tty != "" {
		opts = append(opts, gdbjs.WithTTY(tty))
	}
	if addr := viper.GetString("metrics_addr"); addr != "" {
		reg := prometheus.NewRegistry()
		pm := gdbjs.NewPrometheusMetrics(reg, "gdbjs")
		opts = append(opts, gdbjs.WithMetrics(pm.AsDispatchMetrics()))

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: addr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Warn("metrics server stopped", "error", err)
			}
		}()
		go func() {
			<-ctx.Done()
			_ = srv.Close()
		}()
	}

	client, err := gdbjs.NewClient(ctx, args[0], opts...)
	if err != nil {
		return fmt.Errorf("start gdb: %w", err)
	}
	if err := client.Init(ctx, scripts.All); err != nil {
		return fmt.Errorf("init helper scripts: %w", err)
	}
	logger.Info("gdb started", "executable", args[0])

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return pumpConsole(gctx, client) })
	g.Go(func() error { return pumpEvents(gctx, client, logger) })
	g.Go(func() error { return runREPL(gctx, client, cancel) })

	if err := g.Wait(); err != nil && gctx.Err() == nil {
		return err
	}
	return nil
}

func pumpConsole(ctx context.Context, client *gdbjs.Client) error {
	ch := client.Console()
	for {
		select {
		case line, ok := <-ch:
			if !ok {
				return nil
			}
			fmt.Print(line)
		case <-ctx.Done():
			return nil
		}
	}
}

func pumpEvents(ctx context.Context, client *gdbjs.Client, logger *slog.Logger) error {
	ch := client.Events()
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			logger.Debug("event", "name", ev.Name, "data", ev.Data)
		case <-ctx.Done():
			return nil
		}
	}
}

func runREPL(ctx context.Context, client *gdbjs.Client, cancel context.CancelFunc) error {
	home, _ := os.UserHomeDir()
	historyFile := filepath.Join(home, ".cache", "gdbjs-repl", "history")
	_ = os.MkdirAll(filepath.Dir(historyFile), 0755)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "(gdbjs) ",
		HistoryFile:       historyFile,
		HistorySearchFold: true,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
	})
	if err != nil {
		return fmt.Errorf("readline init: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			_ = client.Interrupt(ctx, gdbjs.Scope{})
			continue
		}
		if err != nil {
			cancel()
			return nil
		}
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case line == "exit" || line == "quit":
			cancel()
			return nil
		case line == ":globals":
			printGlobals(ctx, client)
		default:
			result, err := client.ExecCMD(ctx, line, gdbjs.Scope{})
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				continue
			}
			if s, ok := result.(string); ok {
				fmt.Print(s)
			} else {
				fmt.Printf("%v\n", result)
			}
		}
	}
}

// printGlobals is an example tooling hook: it runs "info variables" through
// the library's CLI escape hatch and formats the result with govars, which
// the core package never imports.
func printGlobals(ctx context.Context, client *gdbjs.Client) {
	body, err := client.ExecCLI(ctx, "info variables", gdbjs.Scope{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	for _, v := range govars.Parse(body) {
		fmt.Printf("%s\t%s %s\n", v.File, v.Type, v.Name)
	}
}
