// Package output renders calculation summaries for the caller: a styled
// console report, a sectioned CSV export and plain JSON. No calculation
// logic lives here.
package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/previdcalc/previdcalc/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(26)

	eligibleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	notEligibleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("203"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// Formatter renders a summary into one output format.
type Formatter interface {
	Name() string
	Format(summary *domain.CalculationSummary) ([]byte, error)
}

// ByName returns the formatter registered under name.
func ByName(name string) (Formatter, error) {
	switch name {
	case "console", "":
		return ConsoleFormatter{}, nil
	case "csv":
		return CSVFormatter{}, nil
	case "json":
		return JSONFormatter{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (want console, csv or json)", name)
}

// ConsoleFormatter renders a human-readable styled report.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(summary *domain.CalculationSummary) ([]byte, error) {
	buf := &bytes.Buffer{}

	fmt.Fprintln(buf, titleStyle.Render("Retirement Benefit Calculation"))

	fmt.Fprintln(buf, sectionStyle.Render("Insured"))
	writeField(buf, "Name", summary.Insured.Name)
	writeField(buf, "Birth date", summary.Insured.BirthDate.Format(dateLayout))
	writeField(buf, "Sex", string(summary.Insured.Sex))
	if !summary.Insured.FilingDate.IsZero() {
		writeField(buf, "Filing date (DER)", summary.Insured.FilingDate.Format(dateLayout))
	}
	writeField(buf, "Age at reference", fmt.Sprintf("%d", summary.AgeAtReference))

	fmt.Fprintln(buf, sectionStyle.Render("Contribution time"))
	writeField(buf, "Records", fmt.Sprintf("%d", len(summary.Contributions)))
	writeField(buf, "Total time", summary.ContributionTime.String())

	fmt.Fprintln(buf, sectionStyle.Render("Eligibility"))
	for _, v := range summary.Verdicts {
		verdict := notEligibleStyle.Render("not eligible")
		if v.Eligible {
			verdict = eligibleStyle.Render("ELIGIBLE")
		}
		fmt.Fprintf(buf, "%s %s\n", labelStyle.Render(ruleLabel(v.RuleName)), verdict)
		fmt.Fprintf(buf, "%s %s\n", labelStyle.Render(""), v.Rationale)
	}

	fmt.Fprintln(buf, sectionStyle.Render("Benefit value"))
	for _, b := range summary.Benefits {
		writeField(buf, fmt.Sprintf("Average salary (%s)", b.Regime), "R$ "+b.AverageSalary.StringFixed(2))
		writeField(buf, fmt.Sprintf("RMI (%s)", b.Regime), "R$ "+b.RMI.StringFixed(2))
	}

	if len(summary.Warnings) > 0 {
		fmt.Fprintln(buf, sectionStyle.Render("Warnings"))
		for _, w := range summary.Warnings {
			fmt.Fprintln(buf, warningStyle.Render("  ! "+w.String()))
		}
	}

	return buf.Bytes(), nil
}

func writeField(buf *bytes.Buffer, label, value string) {
	fmt.Fprintf(buf, "%s %s\n", labelStyle.Render(label), value)
}

func ruleLabel(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

// JSONFormatter renders the summary as indented JSON.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(summary *domain.CalculationSummary) ([]byte, error) {
	return json.MarshalIndent(summary, "", "  ")
}
