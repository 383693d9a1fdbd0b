package service

import (
	"errors"
	"testing"

	"github.com/burningtree/flixbux-prices/internal/domain/models"
)

func convertedRow(url string, converted float64) models.ComparisonRow {
	return models.ComparisonRow{
		Storefront: models.Storefront{URL: url},
		Price:      &models.Price{Amount: "1", Currency: "EUR"},
		Converted:  &converted,
	}
}

func TestBuildReport_BaselineIsCheapest(t *testing.T) {
	report := BuildReport([]models.ComparisonRow{
		convertedRow("https://c", 300),
		{Storefront: models.Storefront{URL: "https://failed"}, Err: errors.New("boom")},
		convertedRow("https://a", 100),
		convertedRow("https://b", 150),
	}, "CZK")

	if report.Failed != 1 || report.Unpriced != 0 || len(report.Lines) != 3 {
		t.Fatalf("unexpected report: %+v", report)
	}

	wantURLs := []string{"https://a", "https://b", "https://c"}
	for i, want := range wantURLs {
		if report.Lines[i].Storefront.URL != want {
			t.Fatalf("line %d: got %s want %s", i, report.Lines[i].Storefront.URL, want)
		}
	}
	if report.Lines[0].Diff != nil {
		t.Fatalf("baseline must have no diff, got %v", *report.Lines[0].Diff)
	}
	if *report.Lines[1].Diff != 50 || *report.Lines[2].Diff != 200 {
		t.Fatalf("unexpected diffs: %v %v", *report.Lines[1].Diff, *report.Lines[2].Diff)
	}

	cheapest, ok := report.Cheapest()
	if !ok || cheapest.Storefront.URL != "https://a" {
		t.Fatalf("unexpected cheapest: %+v %v", cheapest, ok)
	}
}

func TestBuildReport_EqualPriceAfterBaseline(t *testing.T) {
	report := BuildReport([]models.ComparisonRow{
		convertedRow("https://b", 100),
		convertedRow("https://a", 100),
	}, "CZK")

	if report.Lines[0].Storefront.URL != "https://a" {
		t.Fatalf("ties must be ordered by url: %+v", report.Lines)
	}
	if report.Lines[1].Diff == nil || *report.Lines[1].Diff != 0 {
		t.Fatalf("equal price after baseline must show 0%%, got %v", report.Lines[1].Diff)
	}
}

func TestBuildReport_UnconvertedRowsFollowRanking(t *testing.T) {
	report := BuildReport([]models.ComparisonRow{
		{Storefront: models.Storefront{URL: "https://uk"}, Price: &models.Price{Amount: "12.50", Currency: "GBP"}},
		convertedRow("https://de", 100),
	}, "CZK")

	if len(report.Lines) != 2 || report.Unpriced != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	last := report.Lines[1]
	if last.Storefront.URL != "https://uk" || last.Converted != nil || last.Diff != nil {
		t.Fatalf("unexpected unconverted line: %+v", last)
	}
}

func TestBuildReport_Empty(t *testing.T) {
	report := BuildReport(nil, "CZK")
	if len(report.Lines) != 0 {
		t.Fatalf("unexpected lines: %+v", report.Lines)
	}
	if _, ok := report.Cheapest(); ok {
		t.Fatal("empty report has no cheapest line")
	}
}
