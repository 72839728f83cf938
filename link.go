package doclink

import (
	"strings"
)

// Target is the destination of a link. It is one of [SymbolTarget],
// [AnchorTarget], [SourceTarget] or [FileTarget].
type Target interface {
	// rank orders targets when more than one is configured on a [Link].
	rank() int
}

// SymbolTarget links to a documented symbol. The alias may be free text
// containing several references; each is resolved independently.
type SymbolTarget struct{ Alias string }

// AnchorTarget links to an anchor on the current page, such as "#events".
type AnchorTarget struct{ Anchor string }

// SourceTarget links to the generated listing page of a source file.
type SourceTarget struct{ Path string }

// FileTarget links to an arbitrary output file relative to the link base.
type FileTarget struct{ Path string }

func (SymbolTarget) rank() int { return 3 }
func (AnchorTarget) rank() int { return 3 }
func (SourceTarget) rank() int { return 2 }
func (FileTarget) rank() int   { return 1 }

// Classify returns the target a single reference token denotes: an
// [AnchorTarget] when it starts with "#", a [SymbolTarget] otherwise.
func Classify(token string) Target {
	if strings.HasPrefix(token, "#") {
		return AnchorTarget{Anchor: token}
	}

	return SymbolTarget{Alias: token}
}

// Link builds a single hyperlink. Obtain one from [Resolver.Link]; a Link is
// not safe for concurrent use and should be discarded after Resolve.
//
// Only one destination kind is honoured. When several are configured,
// symbols win over source files, which win over plain files, regardless of
// the order of the calls.
type Link struct {
	r      *Resolver
	target Target
	frame  string
	text   string
}

// WithTargetFrame sets the frame or window name emitted as the anchor's
// target attribute.
func (l *Link) WithTargetFrame(name string) *Link {
	if name != "" {
		l.frame = name
	}

	return l
}

// WithDisplayText overrides the visible text of the link.
func (l *Link) WithDisplayText(text string) *Link {
	if text != "" {
		l.text = text
	}

	return l
}

// AsSymbol points the link at a symbol alias.
func (l *Link) AsSymbol(alias string) *Link {
	if alias == "" {
		return l
	}

	return l.To(SymbolTarget{Alias: alias})
}

// AsSource points the link at the listing page of a source file.
func (l *Link) AsSource(srcPath string) *Link {
	if srcPath == "" {
		return l
	}

	return l.To(SourceTarget{Path: srcPath})
}

// AsFile points the link at an arbitrary file below the link base.
func (l *Link) AsFile(filePath string) *Link {
	if filePath == "" {
		return l
	}

	return l.To(FileTarget{Path: filePath})
}

// To sets the destination directly. A target of lower precedence than the
// one already configured is ignored.
func (l *Link) To(t Target) *Link {
	if t == nil {
		return l
	}

	if l.target == nil || t.rank() >= l.target.rank() {
		l.target = t
	}

	return l
}

// Target returns the configured destination, or nil.
func (l *Link) Target() Target {
	return l.target
}

// Resolve renders the link. With asHTML it returns an <a> element, otherwise
// just the destination. References that cannot be resolved come back as
// their original text; a link with no destination renders as "".
//
// A zero Link resolves with [DefaultConfig] and an empty registry.
func (l *Link) Resolve(asHTML bool) string {
	if l.r == nil {
		l.r = New()
	}

	switch t := l.target.(type) {
	case SymbolTarget:
		return l.resolveAlias(t.Alias, asHTML)
	case AnchorTarget:
		l.r.metrics.observe(kindAnchor, outcomeResolved)

		return l.render(t.Anchor, t.Anchor, asHTML)
	case SourceTarget:
		dest := l.r.cfg.SrcDir + SourceFileName(t.Path) + l.r.cfg.Ext
		l.r.metrics.observe(kindSource, outcomeResolved)

		return l.render(dest, baseName(t.Path), asHTML)
	case FileTarget:
		l.r.metrics.observe(kindFile, outcomeResolved)

		return l.render(l.r.cfg.Base+t.Path, t.Path, asHTML)
	default:
		return ""
	}
}

// String renders the link as HTML.
func (l *Link) String() string {
	return l.Resolve(true)
}

// resolveAlias resolves every reference embedded in alias and rebuilds the
// text around them.
func (l *Link) resolveAlias(alias string, asHTML bool) string {
	matches := symbolTokenRegex.FindAllStringSubmatchIndex(alias, -1)
	if len(matches) == 0 {
		return alias
	}

	var sb strings.Builder
	sb.Grow(len(alias))

	last := 0
	for _, m := range matches {
		start, end := m[2], m[3]
		sb.WriteString(alias[last:start])
		sb.WriteString(l.symbolLink(alias[start:end], asHTML))
		last = end
	}
	sb.WriteString(alias[last:])

	return sb.String()
}

// symbolLink resolves a single token.
func (l *Link) symbolLink(token string, asHTML bool) string {
	if t, ok := Classify(token).(AnchorTarget); ok {
		l.r.metrics.observe(kindAnchor, outcomeResolved)

		return l.render(t.Anchor, token, asHTML)
	}

	sym, ok := l.r.lookup(token)
	if !ok {
		l.r.unresolved(token)

		return token
	}

	l.r.metrics.observe(kindSymbol, outcomeResolved)

	return l.render(l.r.symbolHref(sym), token, asHTML)
}

// render wraps dest in an anchor element when asHTML is set. defaultText is
// used when no display text was configured.
func (l *Link) render(dest, defaultText string, asHTML bool) string {
	if !asHTML {
		return dest
	}

	text := l.text
	if text == "" {
		text = defaultText
	}

	var sb strings.Builder
	sb.WriteString(`<a href="`)
	sb.WriteString(dest)
	sb.WriteByte('"')
	if l.frame != "" {
		sb.WriteString(` target="`)
		sb.WriteString(l.frame)
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	sb.WriteString(text)
	sb.WriteString("</a>")

	return sb.String()
}
