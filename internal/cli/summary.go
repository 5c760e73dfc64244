package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/riskline/riskline/internal/model"
)

// Columns shown in the top-suspicious preview when present in the input.
var previewColumns = []string{"transaction_id", "account_id", "amount", "channel"}

const previewLimit = 10

// RenderSummary writes the scoring run summary to w.
func RenderSummary(w io.Writer, summary model.RunSummary) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Evaluated:   %d\n", summary.ScoredRows))
	b.WriteString(fmt.Sprintf("Suspicious:  %d (threshold %v)\n", summary.SuspiciousRows, summary.Threshold))
	if summary.DuplicatesDropped > 0 {
		b.WriteString(fmt.Sprintf("Duplicates:  %d dropped\n", summary.DuplicatesDropped))
	}
	if summary.SkippedRows > 0 {
		b.WriteString(fmt.Sprintf("Skipped:     %d rows failed to write\n", summary.SkippedRows))
	}
	b.WriteString(fmt.Sprintf("Duration:    %s", summary.Duration.Round(1e6)))

	fmt.Fprintln(w, TitleStyle.Render(ChartIcon+" Scoring results"))
	fmt.Fprintln(w, BoxStyle.Render(b.String()))

	if summary.DegradedAlignment {
		fmt.Fprintln(w, FormatWarning("scaler schema unavailable; columns aligned by input order"))
	}
}

// RenderSuspicious writes a preview table of the highest-risk records.
func RenderSuspicious(w io.Writer, results model.ResultSet, columns []string) {
	if len(results.Suspicious) == 0 {
		fmt.Fprintln(w, FormatSuccess("no transactions above the suspicion threshold"))
		return
	}

	fmt.Fprintln(w, WarningStyle.Render(AlertIcon+" Suspicious transactions (top ranked):"))

	shown := pickColumns(columns)
	header := make([]string, 0, len(shown)+2)
	for _, col := range shown {
		header = append(header, TableCellStyle.Render(col))
	}
	header = append(header, TableCellStyle.Render("probability"), "reason")
	fmt.Fprintln(w, TableHeaderStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, header...)))

	for i, rec := range results.Suspicious {
		if i >= previewLimit {
			fmt.Fprintln(w, SubtleStyle.Render(fmt.Sprintf("… and %d more", len(results.Suspicious)-previewLimit)))
			break
		}
		cells := make([]string, 0, len(shown)+2)
		for _, col := range shown {
			cells = append(cells, TableCellStyle.Render(rec.Record.Fields[col]))
		}
		cells = append(cells,
			TableCellStyle.Render(fmt.Sprintf("%.4f", rec.Probability)),
			rec.Reason)
		fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
}

func pickColumns(columns []string) []string {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	shown := make([]string, 0, len(previewColumns))
	for _, c := range previewColumns {
		if present[c] {
			shown = append(shown, c)
		}
	}
	return shown
}
