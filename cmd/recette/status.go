package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func colorize(out io.Writer, color, text string) string {
	if !isTerminal(out) {
		return text
	}
	return color + text + ansiReset
}

func statusMark(out io.Writer, ok bool) string {
	if ok {
		return colorize(out, ansiGreen, "ok")
	}
	return colorize(out, ansiRed, "missing")
}

func warnLine(out io.Writer, format string, args ...any) {
	fmt.Fprintln(out, colorize(out, ansiYellow, fmt.Sprintf(format, args...)))
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
