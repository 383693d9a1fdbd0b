package models

type ComparisonRow struct {
	Storefront Storefront
	Price      *Price
	Converted  *float64
	Err        error
}

func (r ComparisonRow) Priced() bool {
	return r.Price != nil
}

func (r ComparisonRow) Ranked() bool {
	return r.Price != nil && r.Converted != nil
}

type ReportLine struct {
	Storefront Storefront
	Price      Price
	Converted  *float64
	Diff       *float64
}

type Report struct {
	Currency string
	Lines    []ReportLine
	Unpriced int
	Failed   int
}

// Cheapest returns the baseline line, if any storefront could be ranked.
func (r Report) Cheapest() (ReportLine, bool) {
	if len(r.Lines) == 0 || r.Lines[0].Converted == nil {
		return ReportLine{}, false
	}
	return r.Lines[0], true
}
