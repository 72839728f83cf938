package doclink

import (
	"fmt"
	"html"
	"io"
	"path"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// SourceFile is a source listing about to be published.
type SourceFile struct {
	// Path is the path of the original source file.
	Path string
	// Name is the flattened output name, without extension.
	Name string
	// Highlighted is the rendered listing. Nothing is written while it is
	// empty.
	Highlighted string
}

// Highlighter renders a source file into SourceFile.Highlighted.
type Highlighter func(src *SourceFile) error

// Publisher writes source listing pages and reads template fragments.
type Publisher struct {
	fs           afero.Fs
	cfg          Config
	templatesDir string
	highlight    Highlighter
	logger       logrus.FieldLogger
}

// NewPublisher creates a [Publisher] writing below the root of fs. The
// resolver supplies the output layout and logger.
func NewPublisher(fs afero.Fs, r *Resolver, templatesDir string, highlight Highlighter) *Publisher {
	return &Publisher{
		fs:           fs,
		cfg:          r.Config(),
		templatesDir: templatesDir,
		highlight:    highlight,
		logger:       r.logger,
	}
}

// MakeSourceFile publishes the listing of srcPath as SrcDir/name+Ext. An
// empty name is derived with [SourceFileName]. When no highlighter is set,
// or it leaves the listing empty, nothing is written.
func (p *Publisher) MakeSourceFile(srcPath, name string) error {
	if name == "" {
		name = SourceFileName(srcPath)
	}

	src := &SourceFile{Path: srcPath, Name: name}

	if p.highlight != nil {
		if err := p.highlight(src); err != nil {
			return fmt.Errorf("highlight %s: %w", srcPath, err)
		}
	}

	if src.Highlighted == "" {
		return nil
	}

	out := path.Join(p.cfg.SrcDir, src.Name+p.cfg.Ext)
	if err := p.fs.MkdirAll(path.Dir(out), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", path.Dir(out), err)
	}

	if err := afero.WriteFile(p.fs, out, []byte(src.Highlighted), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	p.logger.WithFields(logrus.Fields{"path": srcPath, "output": out}).Info("published source listing")

	return nil
}

// Include returns the content of a template fragment below the templates
// directory.
func (p *Publisher) Include(name string) (string, error) {
	data, err := afero.ReadFile(p.fs, path.Join(p.templatesDir, name))
	if err != nil {
		return "", fmt.Errorf("include %s: %w", name, err)
	}

	return string(data), nil
}

// PlainHighlighter returns a [Highlighter] that reads the source from fs and
// renders it as an escaped, line-numbered <pre> block.
func PlainHighlighter(fs afero.Fs) Highlighter {
	return func(src *SourceFile) error {
		f, err := fs.Open(src.Path)
		if err != nil {
			return err
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return err
		}

		lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")

		var sb strings.Builder
		sb.WriteString("<pre class=\"source\">\n")
		for i, line := range lines {
			fmt.Fprintf(&sb, "<span class=\"line\">%5d</span> %s\n", i+1, html.EscapeString(line))
		}
		sb.WriteString("</pre>\n")

		src.Highlighted = sb.String()

		return nil
	}
}
