package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/mikey/phishawk/internal/core"
	"github.com/mikey/phishawk/internal/presenter"
)

// Printer renders panel views as plain text for scripted use
type Printer struct {
	out     io.Writer
	verbose bool
}

// NewPrinter creates a new console printer
func NewPrinter(out io.Writer, verbose bool) *Printer {
	return &Printer{
		out:     out,
		verbose: verbose,
	}
}

// PrintEmail prints a summary of an extracted email
func (p *Printer) PrintEmail(email core.ExtractedEmail) {
	fmt.Fprintf(p.out, "\n=== Email Summary ===\n")
	fmt.Fprintf(p.out, "From: %s\n", email.Sender)
	fmt.Fprintf(p.out, "Subject: %s\n", email.Subject)
	fmt.Fprintf(p.out, "URL: %s\n", email.SourceURL)
	fmt.Fprintf(p.out, "Body length: %d bytes\n", len(email.Body))

	if p.verbose {
		preview := email.Body
		if len(preview) > 500 {
			preview = preview[:500] + "..."
		}
		fmt.Fprintf(p.out, "\nBody preview:\n%s\n", preview)
	}
}

// PrintView prints one render model
func (p *Printer) PrintView(v presenter.View) {
	if v.Mode != presenter.ResultView {
		if v.Status != "" {
			fmt.Fprintf(p.out, "\n%s\n", v.Status)
		}
		return
	}

	fmt.Fprintf(p.out, "\n=== Results ===\n")
	fmt.Fprintf(p.out, "Verdict: %s (%s risk)\n", v.Banner, strings.ToUpper(string(v.Tier)))
	fmt.Fprintf(p.out, "%s\n", v.ScoreLine)
	fmt.Fprintf(p.out, "Subject: %s\n", v.SubjectLine)
	fmt.Fprintf(p.out, "Triggers:\n")
	for i, trigger := range v.Triggers {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, trigger)
	}
}
