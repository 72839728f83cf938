package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"go.dw1.io/doclink"
	"go.dw1.io/doclink/internal/config"
	"go.dw1.io/doclink/internal/logging"
)

type cli struct {
	Config   string `short:"c" help:"Configuration file path." type:"path" env:"DOCLINK_CONFIG"`
	Registry string `short:"r" help:"Registry snapshot (YAML or JSON)." type:"path" env:"DOCLINK_REGISTRY"`
	Base     string `help:"Prefix for cross-file links." env:"DOCLINK_BASE"`
}

type resolveArgs struct {
	Ref    string `json:"ref" jsonschema:"symbol alias (e.g., Pkg.Foo.bar), #anchor, or file path"`
	Kind   string `json:"kind,omitempty" jsonschema:"reference kind: symbol (default), source, or file"`
	Text   string `json:"text,omitempty" jsonschema:"display text of the link - empty for the default"`
	Target string `json:"target,omitempty" jsonschema:"target frame of the link"`
	Href   bool   `json:"href,omitempty" jsonschema:"return only the destination instead of an anchor element"`
}

type resolveResult struct {
	Link string `json:"link" jsonschema:"resolved link"`
}

type substituteArgs struct {
	Texts []string `json:"texts" jsonschema:"documents containing {@link Alias} markers"`
}

type substituteResult struct {
	Texts      []string                `json:"texts" jsonschema:"documents with markers replaced, in input order"`
	Unresolved []doclink.UnresolvedRef `json:"unresolved,omitempty" jsonschema:"references that did not resolve"`
}

type signatureArgs struct {
	Alias string `json:"alias" jsonschema:"alias of a registered function or method"`
}

type signatureResult struct {
	Signature string `json:"signature" jsonschema:"parenthesized parameter list"`
}

type summarizeArgs struct {
	Text  string `json:"text,omitempty" jsonschema:"description to summarize"`
	Alias string `json:"alias,omitempty" jsonschema:"summarize the description of this registered symbol instead"`
}

type summarizeResult struct {
	Summary string `json:"summary" jsonschema:"first sentence of the description"`
}

type server struct {
	resolver *doclink.Resolver
	registry doclink.Registry
	logger   logrus.FieldLogger
}

func (s *server) resolveHandler(ctx context.Context, req *mcp.CallToolRequest, args resolveArgs) (*mcp.CallToolResult, resolveResult, error) {
	l := s.resolver.Link().WithDisplayText(args.Text).WithTargetFrame(args.Target)

	switch args.Kind {
	case "", "symbol":
		l.AsSymbol(args.Ref)
	case "source":
		l.AsSource(args.Ref)
	case "file":
		l.AsFile(args.Ref)
	default:
		return nil, resolveResult{}, fmt.Errorf("unknown reference kind %q", args.Kind)
	}

	return &mcp.CallToolResult{
		Meta: map[string]any{
			"ref":  args.Ref,
			"kind": args.Kind,
		},
	}, resolveResult{Link: l.Resolve(!args.Href)}, nil
}

func (s *server) substituteHandler(ctx context.Context, req *mcp.CallToolRequest, args substituteArgs) (*mcp.CallToolResult, substituteResult, error) {
	s.resolver.ResetUnresolved()

	texts, err := s.resolver.SubstituteAll(ctx, args.Texts)
	if err != nil {
		return nil, substituteResult{}, fmt.Errorf("failed to substitute links: %w", err)
	}

	unresolved := s.resolver.Unresolved()
	if len(unresolved) > 0 {
		s.logger.WithField("count", len(unresolved)).Debug("unresolved references")
	}

	return nil, substituteResult{Texts: texts, Unresolved: unresolved}, nil
}

func (s *server) signatureHandler(ctx context.Context, req *mcp.CallToolRequest, args signatureArgs) (*mcp.CallToolResult, signatureResult, error) {
	sig, ok := s.resolver.SymbolSignature(args.Alias)
	if !ok {
		return nil, signatureResult{}, fmt.Errorf("symbol %q not found", args.Alias)
	}

	return nil, signatureResult{Signature: sig}, nil
}

func (s *server) summarizeHandler(ctx context.Context, req *mcp.CallToolRequest, args summarizeArgs) (*mcp.CallToolResult, summarizeResult, error) {
	desc := args.Text
	if args.Alias != "" {
		sym, ok := s.registry.Lookup(args.Alias)
		if !ok {
			return nil, summarizeResult{}, fmt.Errorf("symbol %q not found", args.Alias)
		}

		desc = sym.Desc
	}

	return nil, summarizeResult{Summary: doclink.Summarize(desc)}, nil
}

func newServer(c *cli) (*server, error) {
	cfg := config.Default()
	if c.Config != "" {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	if c.Registry != "" {
		cfg.Registry = c.Registry
	}
	if c.Base != "" {
		cfg.Link.Base = c.Base
	}

	// stdout carries the protocol.
	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	var registry *doclink.MapRegistry
	switch {
	case cfg.Registry == "":
		registry, err = doclink.NewRegistry()
	case cfg.Cache:
		registry, err = doclink.OpenRegistry(cfg.Registry)
	default:
		registry, err = doclink.LoadRegistryFile(cfg.Registry)
	}
	if err != nil {
		return nil, err
	}

	resolver := doclink.New(
		doclink.WithConfig(cfg.LinkConfig()),
		doclink.WithRegistry(registry),
		doclink.WithLogger(logger),
		doclink.WithWorkers(cfg.Workers),
	)

	return &server{resolver: resolver, registry: registry, logger: logger}, nil
}

func (s *server) mcpServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "doclink-mcp",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve",
		Description: "Resolve a symbol alias, anchor, source path, or file path into a documentation link.",
	}, s.resolveHandler)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "substitute",
		Description: "Replace {@link Alias} markers in documents with resolved links.",
	}, s.substituteHandler)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "signature",
		Description: "Render the parameter signature of a registered function or method.",
	}, s.signatureHandler)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "summarize",
		Description: "Return the first sentence of a description.",
	}, s.summarizeHandler)

	return server
}

func main() {
	var c cli
	kong.Parse(&c,
		kong.Name("doclink-mcp"),
		kong.Description("MCP server resolving documentation links."),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := newServer(&c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := s.mcpServer().Run(ctx, &mcp.StdioTransport{}); err != nil {
		s.logger.WithError(err).Fatal("server failed")
	}
}
