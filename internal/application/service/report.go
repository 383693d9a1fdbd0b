package service

import (
	"sort"

	"github.com/burningtree/flixbux-prices/internal/domain/models"
)

// BuildReport ranks converted rows from cheapest to most expensive. The
// cheapest row is the baseline for every diff and has none itself. Rows with
// a price that could not be converted follow the ranking; rows without a price
// are only counted.
func BuildReport(rows []models.ComparisonRow, currency string) models.Report {
	report := models.Report{Currency: currency}

	ranked := make([]models.ComparisonRow, 0, len(rows))
	unpriced := make([]models.ComparisonRow, 0)
	for _, row := range rows {
		switch {
		case row.Ranked():
			ranked = append(ranked, row)
		case row.Priced():
			unpriced = append(unpriced, row)
		default:
			report.Failed++
		}
	}
	report.Unpriced = len(unpriced)

	sort.SliceStable(ranked, func(i, j int) bool {
		if *ranked[i].Converted != *ranked[j].Converted {
			return *ranked[i].Converted < *ranked[j].Converted
		}
		return ranked[i].Storefront.URL < ranked[j].Storefront.URL
	})
	sort.SliceStable(unpriced, func(i, j int) bool {
		return unpriced[i].Storefront.URL < unpriced[j].Storefront.URL
	})

	report.Lines = make([]models.ReportLine, 0, len(ranked)+len(unpriced))
	if len(ranked) > 0 {
		baseline := *ranked[0].Converted
		for i, row := range ranked {
			converted := *row.Converted
			line := models.ReportLine{
				Storefront: row.Storefront,
				Price:      *row.Price,
				Converted:  &converted,
			}
			if i > 0 && baseline > 0 {
				diff := PercentDiff(converted, baseline)
				line.Diff = &diff
			}
			report.Lines = append(report.Lines, line)
		}
	}

	for _, row := range unpriced {
		report.Lines = append(report.Lines, models.ReportLine{
			Storefront: row.Storefront,
			Price:      *row.Price,
		})
	}

	return report
}

func PercentDiff(value, baseline float64) float64 {
	return value/baseline*100 - 100
}
