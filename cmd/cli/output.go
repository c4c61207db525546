package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/sevigo/bilingo/internal/docsync"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
)

// printSummary writes a coloured, human readable sync report.
func printSummary(w io.Writer, sum docsync.Summary) {
	_, _ = titleColor.Fprintln(w, "Translation sync summary")
	printGroup(w, successColor, "translated", sum.Translated)
	printGroup(w, dimColor, "up to date", sum.UpToDate)
	printGroup(w, warnColor, "skipped", sum.Skipped)
	printGroup(w, warnColor, "removed", sum.Removed)
	printGroup(w, errorColor, "failed", sum.Failed)
}

func printGroup(w io.Writer, c *color.Color, label string, files []string) {
	if len(files) == 0 {
		return
	}
	_, _ = c.Fprintf(w, "  %s (%d)\n", label, len(files))
	for _, f := range files {
		fmt.Fprintf(w, "    %s\n", f)
	}
}
