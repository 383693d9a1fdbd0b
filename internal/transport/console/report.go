package console

import (
	"fmt"
	"io"

	"github.com/burningtree/flixbux-prices/internal/domain/models"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

const notAvailable = "n/a"

var header = []string{"domain", "lang", "symbol", "price", "converted", "diff"}

// RenderReport writes the comparison table followed by a one-line summary.
func RenderReport(w io.Writer, report models.Report) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, line := range report.Lines {
		table.Append(Row(line, report.Currency))
	}
	table.Render()

	renderSummary(w, report)
}

func Row(line models.ReportLine, currency string) []string {
	return []string{
		line.Storefront.URL,
		line.Storefront.Label,
		line.Price.Currency,
		line.Price.Amount,
		FormatConverted(line.Converted, currency),
		FormatDiff(line.Diff),
	}
}

func FormatConverted(value *float64, currency string) string {
	if value == nil {
		return notAvailable
	}
	return fmt.Sprintf("%.2f %s", *value, currency)
}

func FormatDiff(diff *float64) string {
	if diff == nil {
		return notAvailable
	}
	return fmt.Sprintf("%.2f%%", *diff)
}

func renderSummary(w io.Writer, report models.Report) {
	cheapest, ok := report.Cheapest()
	if !ok {
		_, _ = color.New(color.FgRed).Fprintln(w, "no storefront returned a comparable price")
	} else {
		_, _ = color.New(color.FgGreen).Fprintf(w, "cheapest: %s (%s) %s\n",
			cheapest.Storefront.URL,
			cheapest.Storefront.Label,
			FormatConverted(cheapest.Converted, report.Currency),
		)
	}

	if missing := report.Unpriced + report.Failed; missing > 0 {
		_, _ = color.New(color.FgYellow).Fprintf(w, "%d storefront(s) without a comparable price\n", missing)
	}
}
