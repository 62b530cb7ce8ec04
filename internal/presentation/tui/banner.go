package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`   ___ _ __ __ _ _ __  ___(_)_ __ ___  `, "#34d399"},
	{`  / __| '__/ _' | '_ \/ __| | '_ ' _ \ `, "#10b981"},
	{` | (__| | | (_| | |_) \__ \ | | | | | |`, "#f59e0b"},
	{`  \___|_|  \__,_| .__/|___/_|_| |_| |_|`, "#ef4444"},
	{`                |_|                    `, "#dc2626"},
}

// PrintBanner writes the crapsim banner, coloured for the terminal profile of out.
func PrintBanner(out io.Writer) {
	o := termenv.NewOutput(out)
	fmt.Fprintln(out)
	for _, l := range bannerLines {
		fmt.Fprintln(out, o.String(l.text).Foreground(o.Color(l.color)))
	}
	fmt.Fprintln(out)
}
