package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Renderer turns markdown into what gets printed.
type Renderer func(markdown string) (string, error)

// Plain returns markdown unchanged.
func Plain(markdown string) (string, error) {
	return markdown, nil
}

// NewRenderer returns a glamour renderer when out is a terminal and Plain otherwise.
func NewRenderer(out io.Writer) Renderer {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return Plain
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // detect light/dark background
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return Plain
	}
	return r.Render
}

// NewStyledRenderer always renders with the given glamour style ("dark", "light", "notty").
func NewStyledRenderer(style string) (Renderer, error) {
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle(style), glamour.WithWordWrap(0))
	if err != nil {
		return nil, err
	}
	return r.Render, nil
}
