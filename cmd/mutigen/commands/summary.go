package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/teranos/mutigen/check"
	"github.com/teranos/mutigen/driver"
	"github.com/teranos/mutigen/logger"
)

// printProblems prints warnings and class failures of a run
func printProblems(w io.Writer, report *driver.Report) {
	for _, warning := range report.Warnings {
		pterm.Warning.WithWriter(w).Println(warning.String())
	}
	for _, e := range report.Errors {
		pterm.Error.WithWriter(w).Printfln("%s [%s]: %v", e.Class, e.Kind(), e.Err)
	}
	if report.Skipped > 0 {
		pterm.Warning.WithWriter(w).Printfln("%d classes skipped after the first failure", report.Skipped)
	}
}

// printReport prints a generation summary; dir is empty for stream output
func printReport(w io.Writer, report *driver.Report, dir string, verbosity int) {
	if logger.ShouldOutput(verbosity, logger.OutputUnits) {
		for _, u := range report.Units {
			fmt.Fprintf(w, "  %s (%s)\n", u.Name, humanize.Bytes(uint64(u.Bytes)))
		}
	}
	printProblems(w, report)

	msg := fmt.Sprintf("Generated %d units (%s) in %s",
		len(report.Units),
		humanize.Bytes(uint64(report.TotalBytes())),
		report.Duration.Round(time.Millisecond))
	if dir != "" {
		msg += " into " + dir
	}
	if report.HasErrors() {
		pterm.Error.WithWriter(w).Printfln("%s, %d failed", msg, len(report.Errors))
		return
	}
	pterm.Success.WithWriter(w).Println(msg)
}

// printCheck lists out-of-date files
func printCheck(w io.Writer, result *check.Result, dir string) {
	if result.UpToDate {
		pterm.Success.WithWriter(w).Printfln("Generated sources in %s are up to date", dir)
		return
	}
	pterm.Error.WithWriter(w).Printfln("Generated sources in %s are out of date", dir)
	section := func(title string, files []string) {
		if len(files) == 0 {
			return
		}
		fmt.Fprintf(w, "\n%s:\n", title)
		for _, file := range files {
			fmt.Fprintf(w, "  - %s\n", file)
		}
	}
	section("Changed", result.Changed)
	section("Missing", result.Missing)
	section("Stale", result.Stale)
}
