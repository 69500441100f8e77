package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/previdcalc/previdcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Section markers in the exported report.
const (
	sectionInsured       = "[insured]"
	sectionContributions = "[contributions]"
	sectionResults       = "[results]"
)

const dateLayout = "2006-01-02"

// CSVFormatter renders the calculation summary as a sectioned CSV report:
// insured data, the contribution records and the computed results. Monetary
// values in the contributions section keep full precision so the section
// re-parses to the exact records.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(summary *domain.CalculationSummary) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	rows := [][]string{
		{sectionInsured},
		{"name", "birth_date", "sex", "filing_date", "category"},
		{
			summary.Insured.Name,
			summary.Insured.BirthDate.Format(dateLayout),
			string(summary.Insured.Sex),
			summary.Insured.FilingDate.Format(dateLayout),
			string(summary.Insured.Category),
		},
		{sectionContributions},
		{"competency", "declared_value", "kind", "proof", "corrected_value"},
	}
	for _, c := range summary.Contributions {
		rows = append(rows, []string{
			c.Competency.String(),
			c.DeclaredValue.String(),
			string(c.Kind),
			string(c.Proof),
			c.CorrectedValue.String(),
		})
	}

	rows = append(rows,
		[]string{sectionResults},
		[]string{"metric", "value"},
		[]string{"as_of_year", fmt.Sprintf("%d", summary.AsOfYear)},
		[]string{"age", fmt.Sprintf("%d", summary.AgeAtReference)},
		[]string{"contribution_time", summary.ContributionTime.String()},
	)
	for _, b := range summary.Benefits {
		rows = append(rows,
			[]string{fmt.Sprintf("average_salary_%s", b.Regime), b.AverageSalary.StringFixed(2)},
			[]string{fmt.Sprintf("rmi_%s", b.Regime), b.RMI.StringFixed(2)},
		)
	}
	for _, v := range summary.Verdicts {
		rows = append(rows, []string{fmt.Sprintf("eligible_%s", v.RuleName), fmt.Sprintf("%t", v.Eligible)})
	}
	for _, warn := range summary.Warnings {
		rows = append(rows, []string{"warning", warn.String()})
	}

	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ParseContributionsCSV reads the contributions section of an exported report
// back into records, field for field.
func ParseContributionsCSV(data []byte) ([]domain.Contribution, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	var (
		contributions []domain.Contribution
		inSection     bool
		headerSeen    bool
	)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading report: %w", err)
		}
		if len(row) == 1 {
			switch row[0] {
			case sectionContributions:
				inSection = true
				headerSeen = false
			case sectionInsured, sectionResults:
				inSection = false
			}
			continue
		}
		if !inSection {
			continue
		}
		if !headerSeen {
			headerSeen = true
			continue
		}
		if len(row) != 5 {
			return nil, fmt.Errorf("contribution row has %d fields, want 5", len(row))
		}
		c, err := parseContributionRow(row)
		if err != nil {
			return nil, err
		}
		contributions = append(contributions, c)
	}
	if !headerSeen && len(contributions) == 0 && !inSection {
		return nil, fmt.Errorf("report has no %s section", sectionContributions)
	}
	return contributions, nil
}

func parseContributionRow(row []string) (domain.Contribution, error) {
	competency, err := domain.ParseCompetency(row[0])
	if err != nil {
		return domain.Contribution{}, err
	}
	declared, err := decimal.NewFromString(row[1])
	if err != nil {
		return domain.Contribution{}, fmt.Errorf("declared value %q: %w", row[1], err)
	}
	correctedVal, err := decimal.NewFromString(row[4])
	if err != nil {
		return domain.Contribution{}, fmt.Errorf("corrected value %q: %w", row[4], err)
	}
	return domain.Contribution{
		Competency:     competency,
		DeclaredValue:  declared,
		Kind:           domain.ContributionKind(row[2]),
		Proof:          domain.ProofType(row[3]),
		CorrectedValue: correctedVal,
	}, nil
}
