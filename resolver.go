package doclink

import (
	"context"
	"io"
	"runtime"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	DefaultExt    = ".html"
	DefaultSrcDir = "symbols/src/"

	// globalPage is the page that documents members without an enclosing
	// constructor.
	globalPage = "_global_"
)

// Config holds the output layout every generated link depends on.
type Config struct {
	// Base is prepended to every cross-file destination.
	Base string `json:"base" yaml:"base" jsonschema:"prefix for cross-file links"`
	// Ext is the extension of generated pages.
	Ext string `json:"ext" yaml:"ext" jsonschema:"extension of generated pages"`
	// SrcDir is the directory of generated source listings.
	SrcDir string `json:"src_dir" yaml:"src_dir" jsonschema:"directory of source listing pages"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		Ext:    DefaultExt,
		SrcDir: DefaultSrcDir,
	}
}

// Resolver turns references into links. It is safe for concurrent use once
// created, provided its [Registry] is not mutated.
type Resolver struct {
	cfg      Config
	registry Registry
	ctx      context.Context
	logger   logrus.FieldLogger
	metrics  *Metrics
	workers  int

	mu      sync.Mutex
	missing map[string]int
}

// New creates a new [Resolver] with the specified configuration.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		cfg:     DefaultConfig(),
		ctx:     context.Background(),
		workers: runtime.GOMAXPROCS(0),
		missing: make(map[string]int),
	}

	r.SetOptions(opts...)

	if r.ctx == nil {
		r.ctx = context.Background()
	}

	if r.logger == nil {
		r.logger = discardLogger()
	}

	return r
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}

// Config returns the resolver's output layout.
func (r *Resolver) Config() Config {
	return r.cfg
}

// context returns the effective context for batch operations.
func (r *Resolver) context() context.Context {
	if r == nil || r.ctx == nil {
		return context.Background()
	}

	return r.ctx
}

// Link starts a new link.
func (r *Resolver) Link() *Link {
	return &Link{r: r}
}

// Unresolved returns every reference that failed to resolve since the
// resolver was created or last reset, ordered by name.
func (r *Resolver) Unresolved() []UnresolvedRef {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]UnresolvedRef, 0, len(r.missing))
	for name, n := range r.missing {
		out = append(out, UnresolvedRef{Name: name, Count: n})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

// ResetUnresolved clears the collected unresolved references.
func (r *Resolver) ResetUnresolved() {
	r.mu.Lock()
	clear(r.missing)
	r.mu.Unlock()
}

func (r *Resolver) lookup(alias string) (Symbol, bool) {
	if r.registry == nil {
		return Symbol{}, false
	}

	return r.registry.Lookup(alias)
}

func (r *Resolver) unresolved(token string) {
	r.mu.Lock()
	r.missing[token]++
	r.mu.Unlock()

	r.metrics.observe(kindSymbol, outcomeUnresolved)
	r.logger.WithField("alias", token).Debug("unresolved reference")
}

// symbolHref computes the destination of a registered symbol. Constructors
// own a page; members link into the page of their enclosing constructor.
func (r *Resolver) symbolHref(sym Symbol) string {
	if sym.IsConstructor() {
		return r.cfg.Base + escapeAlias(sym.Alias) + r.cfg.Ext
	}

	page := globalPage
	if sym.ParentConstructor != "" {
		page = escapeAlias(sym.ParentConstructor)
	}

	return r.cfg.Base + page + r.cfg.Ext + "#" + sym.linkName()
}
