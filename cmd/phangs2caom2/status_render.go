package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type statusLevel string

const (
	statusInfo  statusLevel = "INFO"
	statusOK    statusLevel = "OK"
	statusError statusLevel = "ERROR"
)

const ansiReset = "\x1b[0m"

var statusColors = map[statusLevel]string{
	statusInfo:  "\x1b[34m",
	statusOK:    "\x1b[32m",
	statusError: "\x1b[31m",
}

// statusReport prints aligned "label: [LEVEL] detail" lines grouped under
// section headers. Colour is only used on terminals.
type statusReport struct {
	w        io.Writer
	color    bool
	sections int
}

func newStatusReport(w io.Writer) *statusReport {
	return &statusReport{w: w, color: isTerminal(w)}
}

func (r *statusReport) section(title string) {
	if r.sections > 0 {
		fmt.Fprintln(r.w)
	}
	r.sections++
	header := "== " + strings.TrimSpace(title) + " =="
	r.println(statusInfo, header)
	r.println(statusInfo, strings.Repeat("-", len(header)))
}

func (r *statusReport) line(label string, level statusLevel, detail string) {
	text := fmt.Sprintf("  %-20s [%s]", label+":", level)
	if detail != "" {
		text += " " + detail
	}
	r.println(level, text)
}

func (r *statusReport) println(level statusLevel, text string) {
	if r.color {
		text = statusColors[level] + text + ansiReset
	}
	fmt.Fprintln(r.w, text)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
