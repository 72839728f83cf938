package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"go.dw1.io/doclink"
	"go.dw1.io/doclink/internal/pager"
	"go.dw1.io/doclink/internal/watch"
)

type resolveCmd struct {
	Ref    string `arg:"" help:"Symbol alias, #anchor, or path."`
	Href   bool   `help:"Print only the destination."`
	Text   string `help:"Display text of the link."`
	Target string `help:"Target frame of the link."`
	Source bool   `help:"Treat the reference as a source file path." xor:"kind"`
	File   bool   `help:"Treat the reference as a file path." xor:"kind"`
}

func (c *resolveCmd) Run(a *app) error {
	l := a.resolver.Link().WithDisplayText(c.Text).WithTargetFrame(c.Target)

	switch {
	case c.Source:
		l.AsSource(c.Ref)
	case c.File:
		l.AsFile(c.Ref)
	default:
		l.AsSymbol(c.Ref)
	}

	fmt.Fprintln(a.stdout, l.Resolve(!c.Href))

	return nil
}

type substituteCmd struct {
	Files       []string `arg:"" optional:"" help:"Documents to process. Standard input is read when none are given." type:"path"`
	OutDir      string   `name:"out-dir" help:"Write results into this directory instead of standard output."`
	Render      bool     `help:"Render the result as Markdown in the terminal."`
	Style       string   `default:"auto" help:"Glamour style (dark, light, notty, auto)."`
	Pager       bool     `help:"Show the result in an interactive pager." xor:"interactive"`
	Watch       bool     `help:"Process again whenever an input or the registry changes." xor:"interactive"`
	Report      bool     `help:"Report unresolved references on standard error."`
	MetricsFile string   `name:"metrics-file" help:"Write resolution metrics in the Prometheus text format."`
}

type document struct {
	name string
	text string
}

func (c *substituteCmd) Run(a *app) error {
	if err := c.substitute(a); err != nil {
		return err
	}

	if !c.Watch {
		return nil
	}

	if len(c.Files) == 0 {
		return errors.New("--watch requires at least one input file")
	}

	paths := slices.Clone(c.Files)
	if a.cfg.Registry != "" {
		paths = append(paths, a.cfg.Registry)
	}

	w, err := watch.New(paths, watch.DefaultDebounce, a.logger)
	if err != nil {
		return err
	}

	a.logger.WithField("files", len(paths)).Info("watching for changes")

	return w.Run(a.ctx, func() error {
		reg, err := loadRegistry(a.fs, a.cfg)
		if err != nil {
			return err
		}

		a.resolver.SetOptions(doclink.WithRegistry(reg))
		a.resolver.ResetUnresolved()

		return c.substitute(a)
	})
}

func (c *substituteCmd) substitute(a *app) error {
	docs, err := c.read(a)
	if err != nil {
		return err
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.text
	}

	results, err := a.resolver.SubstituteAll(a.ctx, texts)
	if err != nil {
		return err
	}

	unresolved := a.resolver.Unresolved()

	switch {
	case c.OutDir != "":
		if err := c.write(a, docs, results); err != nil {
			return err
		}
	case c.Pager:
		raw := strings.Join(results, "\n")
		rendered, err := renderMarkdown(raw, c.Style)
		if err != nil {
			return err
		}

		refs := make([]string, len(unresolved))
		for i, u := range unresolved {
			refs[i] = fmt.Sprintf("%s (%d)", u.Name, u.Count)
		}

		if err := pager.Run(pager.Document{
			Content:    rendered,
			Raw:        raw,
			Label:      docLabel(docs),
			Unresolved: refs,
		}); err != nil {
			return fmt.Errorf("pager: %w", err)
		}
	case c.Render:
		for _, res := range results {
			rendered, err := renderMarkdown(res, c.Style)
			if err != nil {
				return err
			}

			fmt.Fprint(a.stdout, rendered)
		}
	default:
		for _, res := range results {
			fmt.Fprint(a.stdout, res)
		}
	}

	if c.Report {
		writeReport(a.stderr, unresolved)
	}

	if c.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(c.MetricsFile, a.metrics); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	return nil
}

func (c *substituteCmd) read(a *app) ([]document, error) {
	if len(c.Files) == 0 {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		return []document{{name: "stdin", text: string(data)}}, nil
	}

	docs := make([]document, 0, len(c.Files))
	for _, name := range c.Files {
		data, err := afero.ReadFile(a.fs, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		docs = append(docs, document{name: name, text: string(data)})
	}

	return docs, nil
}

func (c *substituteCmd) write(a *app, docs []document, results []string) error {
	if err := a.fs.MkdirAll(c.OutDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", c.OutDir, err)
	}

	for i, d := range docs {
		out := filepath.Join(c.OutDir, filepath.Base(d.name))
		if err := afero.WriteFile(a.fs, out, []byte(results[i]), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}

		a.logger.WithFields(logrus.Fields{"input": d.name, "output": out}).Info("substituted document")
	}

	return nil
}

func docLabel(docs []document) string {
	if len(docs) == 1 {
		return docs[0].name
	}

	return fmt.Sprintf("%d documents", len(docs))
}

func writeReport(w io.Writer, refs []doclink.UnresolvedRef) {
	if len(refs) == 0 {
		fmt.Fprintln(w, "All references resolved.")

		return
	}

	fmt.Fprintf(w, "%d unresolved reference(s):\n", len(refs))
	for _, ref := range refs {
		fmt.Fprintf(w, "  %s\t%d\n", ref.Name, ref.Count)
	}
}

type signatureCmd struct {
	Alias string `arg:"" help:"Alias of a registered function or method."`
	Plain bool   `help:"Print parameter types as plain destinations."`
}

func (c *signatureCmd) Run(a *app) error {
	sig, ok := a.resolver.SymbolSignature(c.Alias)
	if !ok {
		return fmt.Errorf("symbol %q not found", c.Alias)
	}

	if c.Plain {
		sig = markdownLinks(sig)
	}

	fmt.Fprintln(a.stdout, sig)

	return nil
}

type summarizeCmd struct {
	Text  string `arg:"" optional:"" help:"Description to summarize. Standard input is read when omitted."`
	Alias string `help:"Summarize the description of a registered symbol instead."`
}

func (c *summarizeCmd) Run(a *app) error {
	desc := c.Text

	switch {
	case c.Alias != "":
		sym, ok := a.registry.Lookup(c.Alias)
		if !ok {
			return fmt.Errorf("symbol %q not found", c.Alias)
		}

		desc = sym.Desc
	case desc == "":
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}

		desc = string(data)
	}

	fmt.Fprintln(a.stdout, doclink.Summarize(desc))

	return nil
}

type publishSrcCmd struct {
	Files  []string `arg:"" help:"Source files to publish." type:"path"`
	Header string   `help:"Template fragment prepended to every listing."`
}

func (c *publishSrcCmd) Run(a *app) error {
	highlight := doclink.PlainHighlighter(a.fs)

	if c.Header != "" {
		templates := doclink.NewPublisher(a.fs, a.resolver, a.cfg.TemplatesDir, nil)

		header, err := templates.Include(c.Header)
		if err != nil {
			return err
		}

		plain := highlight
		highlight = func(src *doclink.SourceFile) error {
			if err := plain(src); err != nil {
				return err
			}

			src.Highlighted = header + src.Highlighted

			return nil
		}
	}

	if err := a.fs.MkdirAll(a.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", a.cfg.OutputDir, err)
	}

	out := afero.NewBasePathFs(a.fs, a.cfg.OutputDir)
	p := doclink.NewPublisher(out, a.resolver, a.cfg.TemplatesDir, highlight)

	for _, f := range c.Files {
		if err := p.MakeSourceFile(f, ""); err != nil {
			return err
		}

		fmt.Fprintln(a.stdout, a.resolver.Link().AsSource(f).Resolve(false))
	}

	return nil
}

type listCmd struct {
	Sort      string `default:"alias" enum:"alias,name,kind,memberof,src_file" help:"Attribute to sort by."`
	Class     string `help:"Only list members of this class."`
	Inherited bool   `help:"With --class, also list members inherited from other classes."`
}

func (c *listCmd) Run(a *app) error {
	symbols := a.registry.Symbols()

	var owner doclink.Symbol
	if c.Class != "" {
		sym, ok := a.registry.Lookup(c.Class)
		if !ok {
			return fmt.Errorf("class %q not found", c.Class)
		}

		owner = sym
	}

	listed := symbols[:0]
	for _, sym := range symbols {
		if c.Class != "" && !c.memberOf(sym, owner) {
			continue
		}

		listed = append(listed, sym)
	}

	slices.SortStableFunc(listed, doclink.SortBy(c.Sort))

	for _, sym := range listed {
		line := fmt.Sprintf("%s\t%s\t%s", sym.Alias, sym.Kind, doclink.Summarize(sym.Desc))
		if c.Class != "" && doclink.IsInherited(sym, owner) {
			line += "\t(inherited from " + sym.MemberOf + ")"
		}

		fmt.Fprintln(a.stdout, strings.TrimRight(line, "\t"))
	}

	return nil
}

// memberOf reports whether sym belongs on the page of owner. Members
// inherited from another class are documented on owner's page as well and
// carry owner's alias as parent constructor.
func (c *listCmd) memberOf(sym, owner doclink.Symbol) bool {
	if sym.Alias == owner.Alias {
		return false
	}

	if sym.MemberOf == owner.Alias {
		return true
	}

	return c.Inherited && sym.ParentConstructor == owner.Alias
}
