// Package cmd wires up the CLI flags and dispatches to the otp core.
// Every tool is reachable through its own executable under cmd/ and
// through the multi-call binary ("otp enc_server 57171").
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"otp/internal/cipher"
	"otp/internal/errors"
)

// version is overridable at link time:
//
//	go build -ldflags "-X otp/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Output streams; tests swap them.
var (
	stdout io.Writer = os.Stdout //nolint:gochecknoglobals
	stderr io.Writer = os.Stderr //nolint:gochecknoglobals
)

// tools maps each executable name to its entry point.
var tools = map[string]func(ctx context.Context, args []string) error{ //nolint:gochecknoglobals
	"keygen":     runKeygen,
	"enc_server": func(ctx context.Context, args []string) error { return runServer(ctx, cipher.Forward, args) },
	"dec_server": func(ctx context.Context, args []string) error { return runServer(ctx, cipher.Inverse, args) },
	"enc_client": func(ctx context.Context, args []string) error { return runClient(ctx, cipher.Forward, args) },
	"dec_client": func(ctx context.Context, args []string) error { return runClient(ctx, cipher.Inverse, args) },
}

// Main runs tool with args under a signal-aware context, reports any
// error on stderr and returns the process exit status.  An empty tool
// selects the multi-call dispatcher.
func Main(tool string, args []string) int {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	name := tool
	if name == "" {
		name = "otp"
	}

	var err error
	if tool == "" {
		err = Execute(ctx, args)
	} else {
		err = Run(ctx, tool, args)
	}
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
	}
	return errors.ExitCode(err)
}

// Execute is the multi-call entry point: args[0] names the tool.  When
// the binary itself is invoked under a tool's name (a symlink), that
// name wins.
func Execute(ctx context.Context, args []string) error {
	if self := filepath.Base(os.Args[0]); tools[self] != nil {
		return Run(ctx, self, args)
	}

	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printRootUsage()
		return nil
	}
	if args[0] == "--version" {
		fmt.Fprintf(stdout, "otp %s\n", version)
		return nil
	}
	return Run(ctx, args[0], args[1:])
}

// Run executes one named tool.
func Run(ctx context.Context, tool string, args []string) error {
	fn, ok := tools[tool]
	if !ok {
		printRootUsage()
		return &errors.UsageError{Message: fmt.Sprintf("unknown tool %q", tool)}
	}
	return fn(ctx, args)
}

func printRootUsage() {
	names := make([]string, 0, len(tools))
	for n := range tools {
		names = append(names, n)
	}
	sort.Strings(names)

	fmt.Fprintf(stderr, `otp – one-time pad toolkit v%s

Usage:
  otp <tool> [options] [arguments]

Tools:
`, version)
	for _, n := range names {
		fmt.Fprintf(stderr, "  %-12s %s\n", n, synopsis[n])
	}
	fmt.Fprintf(stderr, `
Run "otp <tool> --help" for the options of each tool.
`)
}
