package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"go.dw1.io/doclink"
	"go.dw1.io/doclink/internal/config"
	"go.dw1.io/doclink/internal/logging"
)

const description = `doclink-cli - resolve {@link} references and symbol links for generated documentation

Examples:
   # Resolve a symbol to an anchor element
   doclink-cli -r symbols.yaml resolve Pkg.Foo

   # Print only the destination of a member
   doclink-cli -r symbols.yaml resolve --href Pkg.Foo.bar

   # Substitute markers in documents and write them to out/
   doclink-cli -r symbols.yaml substitute --out-dir out docs/*.html

   # Browse a rendered document in the pager
   doclink-cli -r symbols.yaml substitute --render --pager README.md
`

type cli struct {
	Config   string `short:"c" help:"Configuration file path." type:"path" env:"DOCLINK_CONFIG"`
	Registry string `short:"r" help:"Registry snapshot (YAML or JSON)." type:"path" env:"DOCLINK_REGISTRY"`
	Base     string `help:"Prefix for cross-file links." env:"DOCLINK_BASE"`
	Ext      string `help:"Extension of generated pages." env:"DOCLINK_EXT"`
	SrcDir   string `name:"src-dir" help:"Directory of source listing pages." env:"DOCLINK_SRC_DIR"`
	LogLevel string `name:"log-level" help:"Log level (trace, debug, info, warn, error)." env:"DOCLINK_LOG_LEVEL"`
	NoCache  bool   `name:"no-cache" help:"Do not use the registry snapshot cache."`

	Resolve    resolveCmd    `cmd:"" help:"Resolve a single reference."`
	Substitute substituteCmd `cmd:"" help:"Replace {@link} markers in documents."`
	Signature  signatureCmd  `cmd:"" help:"Print the signature of a registered function."`
	Summarize  summarizeCmd  `cmd:"" help:"Print the first sentence of a description."`
	PublishSrc publishSrcCmd `cmd:"" name:"publish-src" help:"Write source listing pages."`
	List       listCmd       `cmd:"" help:"List registered symbols."`
}

// app carries everything a command needs once flags and configuration have
// been merged.
type app struct {
	cfg      *config.Config
	logger   *logrus.Logger
	registry *doclink.MapRegistry
	resolver *doclink.Resolver
	metrics  *prometheus.Registry
	fs       afero.Fs
	ctx      context.Context
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], afero.NewOsFs(), os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, fs afero.Fs, stdin io.Reader, stdout, stderr io.Writer) error {
	var c cli

	parser, err := kong.New(&c,
		kong.Name("doclink-cli"),
		kong.Description(description),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, &c, fs, stdin, stdout, stderr)
	if err != nil {
		return err
	}

	return kctx.Run(a)
}

func newApp(ctx context.Context, c *cli, fs afero.Fs, stdin io.Reader, stdout, stderr io.Writer) (*app, error) {
	cfg := config.Default()
	if c.Config != "" {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	applyOverrides(cfg, c)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	registry, err := loadRegistry(fs, cfg)
	if err != nil {
		return nil, err
	}

	promReg := prometheus.NewRegistry()
	metrics, err := doclink.NewMetrics(promReg)
	if err != nil {
		return nil, err
	}

	resolver := doclink.New(
		doclink.WithConfig(cfg.LinkConfig()),
		doclink.WithRegistry(registry),
		doclink.WithLogger(logger),
		doclink.WithMetrics(metrics),
		doclink.WithWorkers(cfg.Workers),
		doclink.WithContext(ctx),
	)

	logger.WithFields(logrus.Fields{
		"symbols": registry.Len(),
		"base":    cfg.Link.Base,
	}).Debug("resolver ready")

	return &app{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		resolver: resolver,
		metrics:  promReg,
		fs:       fs,
		ctx:      ctx,
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
	}, nil
}

func applyOverrides(cfg *config.Config, c *cli) {
	if c.Registry != "" {
		cfg.Registry = c.Registry
	}
	if c.Base != "" {
		cfg.Link.Base = c.Base
	}
	if c.Ext != "" {
		cfg.Link.Ext = c.Ext
	}
	if c.SrcDir != "" {
		cfg.Link.SrcDir = c.SrcDir
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if c.NoCache {
		cfg.Cache = false
	}
}

// loadRegistry reads the configured registry snapshot. Without one, an empty
// registry is used and every symbol reference degrades to plain text.
func loadRegistry(fs afero.Fs, cfg *config.Config) (*doclink.MapRegistry, error) {
	if cfg.Registry == "" {
		return doclink.NewRegistry()
	}

	if cfg.Cache {
		if _, ok := fs.(*afero.OsFs); ok {
			return doclink.OpenRegistry(cfg.Registry)
		}
	}

	f, err := fs.Open(cfg.Registry)
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}
	defer f.Close()

	reg, err := doclink.DecodeRegistry(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Registry, err)
	}

	return reg, nil
}
