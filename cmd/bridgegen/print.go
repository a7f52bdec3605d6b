package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"bridge-generator/internal/diagnostic"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow)
	infoColor = color.New(color.FgCyan)
)

// printDiagnostics writes every diagnostic to stderr, severity-colored.
func printDiagnostics(diags *diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		var c *color.Color

		switch d.Severity {
		case diagnostic.SeverityError:
			c = errColor
		case diagnostic.SeverityWarning:
			c = warnColor
		default:
			c = infoColor
		}

		fmt.Fprintf(os.Stderr, "%s: %s\n", c.Sprint(d.Severity), d)
	}
}
