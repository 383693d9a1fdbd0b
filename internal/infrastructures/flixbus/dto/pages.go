package dto

// LanguageLink is one entry of the storefront language switcher.
type LanguageLink struct {
	Href  string
	Title string
}

type CurrencyWidget struct {
	Code    string
	Present bool
}

type SearchPage struct {
	Currency  CurrencyWidget
	RowFound  bool
	PriceText string
}
