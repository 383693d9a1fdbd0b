package models

type PriceLayout uint8

const (
	LayoutUnknown PriceLayout = iota
	LayoutAmountFirst
	LayoutSymbolFirst
)

func (l PriceLayout) String() string {
	switch l {
	case LayoutAmountFirst:
		return "AMOUNT_FIRST"
	case LayoutSymbolFirst:
		return "SYMBOL_FIRST"
	default:
		return "UNKNOWN"
	}
}

type ParsedPrice struct {
	Layout PriceLayout
	Amount string
	Symbol string
}

type Price struct {
	Amount   string
	Currency string
	Symbol   string
}
