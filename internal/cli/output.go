package cli

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/fatih/color"
)

var (
	title   = color.New(color.Bold, color.FgBlue)
	bold    = color.New(color.Bold)
	success = color.New(color.FgGreen)
	warn    = color.New(color.FgYellow)
	accent  = color.New(color.FgCyan)
	muted   = color.New(color.FgHiBlack)
)

func heading(w io.Writer, text string) {
	fmt.Fprintln(w)
	title.Fprintf(w, "  %s\n", text)
	fmt.Fprintln(w)
}

func printOK(w io.Writer, format string, a ...any) {
	success.Fprintf(w, "  ✓ "+format+"\n", a...)
}

func printWarn(w io.Writer, format string, a ...any) {
	warn.Fprintf(w, "  ! "+format+"\n", a...)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-1]) + "…"
}
