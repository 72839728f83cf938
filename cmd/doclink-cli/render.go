package main

import (
	"fmt"
	"os"
	"regexp"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const defaultWordWrapWidth = 120

var (
	anchorRegex = regexp.MustCompile(`<a href="([^"]*)"(?: target="[^"]*")?>(.*?)</a>`)
	spanRegex   = regexp.MustCompile(`</?span[^>]*>`)
)

// markdownLinks converts the anchors produced by the resolver into Markdown
// links, so glamour can style them.
func markdownLinks(text string) string {
	text = spanRegex.ReplaceAllString(text, "")

	return anchorRegex.ReplaceAllString(text, "[$2]($1)")
}

func getWordWrapWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err == nil && width > 0 {
		if width <= defaultWordWrapWidth {
			return width
		}

		return defaultWordWrapWidth
	}

	return 0
}

func renderMarkdown(text, style string) (string, error) {
	renderOpts := []glamour.TermRendererOption{}
	if width := getWordWrapWidth(); width > 0 {
		renderOpts = append(renderOpts, glamour.WithWordWrap(width))
	}

	switch style {
	case "", "auto":
		renderOpts = append(renderOpts, glamour.WithAutoStyle())
	default:
		renderOpts = append(renderOpts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(renderOpts...)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}

	rendered, err := r.Render(markdownLinks(text))
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	return rendered, nil
}
