package cmd

import (
	"context"
	"fmt"
	"strconv"

	flag "github.com/spf13/pflag"

	"otp/config"
	"otp/internal/cipher"
	"otp/internal/core"
	"otp/internal/errors"
	"otp/util"
)

// synopsis is the positional argument summary for each tool.
var synopsis = map[string]string{ //nolint:gochecknoglobals
	"keygen":     "keylength",
	"enc_server": "listening_port",
	"dec_server": "listening_port",
	"enc_client": "plaintext key port",
	"dec_client": "ciphertext key port",
}

// ── keygen ───────────────────────────────────────────────────────────

func runKeygen(ctx context.Context, args []string) error {
	cfg := config.Default(config.ModeKeygen, cipher.Forward)
	config.LoadFromEnv(cfg)
	fs, common := newFlagSet(cfg)

	rest, done, err := common.parse(fs, args)
	if err != nil || done {
		return err
	}
	if len(rest) != 1 {
		return common.usageError(fs)
	}
	n, err := strconv.Atoi(rest[0])
	if err != nil || n <= 0 {
		return &errors.UsageError{Tool: cfg.ToolName(), Message: "keylength must be a positive integer"}
	}
	cfg.KeyLength = n

	return launch(ctx, cfg)
}

// ── services ─────────────────────────────────────────────────────────

func runServer(ctx context.Context, dir cipher.Direction, args []string) error {
	cfg := config.Default(config.ModeServe, dir)
	config.LoadFromEnv(cfg)
	fs, common := newFlagSet(cfg)

	noRestart := !cfg.RestartWorkers
	fs.IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "Concurrent sessions (pool size)")
	fs.BoolVar(&noRestart, "no-restart", noRestart, "Do not relaunch workers that die; the pool shrinks")
	fs.IntVar(&cfg.MaxRestarts, "max-restarts", cfg.MaxRestarts, "Relaunch budget per worker (0 = unlimited)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Per-session deadline (0 = none)")
	fs.IntVar(&cfg.MaxMessageSize, "max-size", cfg.MaxMessageSize, "Largest accepted message in bytes (0 = no limit)")
	fs.StringVar(&cfg.StatsAddr, "stats-addr", cfg.StatsAddr, "Serve /healthz and /stats on this address")
	fs.StringVar(&cfg.BindAddress, "bind", cfg.BindAddress, "Listen address (default all interfaces)")

	rest, done, err := common.parse(fs, args)
	if err != nil || done {
		return err
	}
	if len(rest) != 1 {
		return common.usageError(fs)
	}
	if cfg.Port, err = util.ParsePort(rest[0]); err != nil {
		return &errors.UsageError{Tool: cfg.ToolName(), Message: err.Error()}
	}
	cfg.RestartWorkers = !noRestart

	return launch(ctx, cfg)
}

// ── clients ──────────────────────────────────────────────────────────

func runClient(ctx context.Context, dir cipher.Direction, args []string) error {
	cfg := config.Default(config.ModeClient, dir)
	config.LoadFromEnv(cfg)
	fs, common := newFlagSet(cfg)

	fs.StringVarP(&cfg.Host, "host", "H", cfg.Host, "Service host")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Deadline for the whole exchange (0 = none)")

	rest, done, err := common.parse(fs, args)
	if err != nil || done {
		return err
	}
	if len(rest) != 3 {
		return common.usageError(fs)
	}
	cfg.InputPath, cfg.KeyPath = rest[0], rest[1]
	if cfg.Port, err = util.ParsePort(rest[2]); err != nil {
		return &errors.UsageError{Tool: cfg.ToolName(), Message: err.Error()}
	}

	return launch(ctx, cfg)
}

// ── shared ───────────────────────────────────────────────────────────

// commonFlags holds the flags every tool accepts.
type commonFlags struct {
	name        string
	cfg         *config.Config
	verbose     int
	showHelp    bool
	showVersion bool
}

func newFlagSet(cfg *config.Config) (*flag.FlagSet, *commonFlags) {
	c := &commonFlags{name: cfg.ToolName(), cfg: cfg}
	fs := flag.NewFlagSet(c.name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.CountVarP(&c.verbose, "verbose", "v", "Increase verbosity (repeatable)")
	fs.BoolVar(&c.showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&c.showHelp, "help", "h", false, "Show this help")
	fs.Usage = func() { printToolUsage(c.name, fs) }
	return fs, c
}

// parse parses args and handles --help/--version.  done reports that
// the tool has nothing left to do.
func (c *commonFlags) parse(fs *flag.FlagSet, args []string) (rest []string, done bool, err error) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &errors.UsageError{Tool: c.name, Message: err.Error()}
	}
	if c.showHelp {
		printToolUsage(c.name, fs)
		return nil, true, nil
	}
	if c.showVersion {
		fmt.Fprintf(stdout, "%s (otp) %s\n", c.name, version)
		return nil, true, nil
	}
	c.cfg.Verbose += c.verbose
	return fs.Args(), false, nil
}

func (c *commonFlags) usageError(fs *flag.FlagSet) error {
	printToolUsage(c.name, fs)
	return &errors.UsageError{Tool: c.name, Message: synopsis[c.name]}
}

// launch validates cfg, builds its mode and runs it.
func launch(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := util.NewLogger(cfg.Verbose)
	logger.SetOutput(stderr)

	mode, err := core.Build(cfg, logger)
	if err != nil {
		return err
	}
	switch m := mode.(type) {
	case *core.KeygenMode:
		m.Stdout = stdout
	case *core.ClientMode:
		m.Stdout = stdout
	}
	return mode.Run(ctx)
}

func printToolUsage(name string, fs *flag.FlagSet) {
	fmt.Fprintf(stderr, "Usage:\n  %s [options] %s\n\nOptions:\n", name, synopsis[name])
	fs.PrintDefaults()
}
