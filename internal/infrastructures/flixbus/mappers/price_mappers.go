package mappers

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	derr "github.com/burningtree/flixbux-prices/internal/domain/errors"
	"github.com/burningtree/flixbux-prices/internal/domain/models"
	"github.com/burningtree/flixbux-prices/internal/infrastructures/flixbus/dto"
)

var (
	amountFirstPattern = regexp.MustCompile(`^([0-9.,\s]+)([^0-9.,\s].*)$`)
	symbolFirstPattern = regexp.MustCompile(`^([^0-9]+?)\s*([0-9][0-9.,\s]*)$`)
)

// Symbols shown by storefronts that do not render the currency switcher.
var currencySymbols = map[string]string{
	"KM":  "BAM",
	"лв.": "BGN",
	"€":   "EUR",
	"kr.": "DKK",
	"£":   "GBP",
	"$":   "USD",
	"den": "MKD",
	"kr":  "NOK",
	"zł":  "PLN",
}

var spaceReplacer = strings.NewReplacer("\u00a0", " ", "\u202f", " ", "\u2009", " ")

// ExtractPrice turns a scraped search page into a price. Unrecognized layouts
// are reported as ErrPriceUnavailable; an unresolvable currency is
// ErrUnknownSymbol.
func ExtractPrice(page dto.SearchPage) (models.Price, error) {
	if !page.RowFound {
		return models.Price{}, fmt.Errorf("%w: connection row not found", derr.ErrPriceUnavailable)
	}

	parsed, ok := ParsePriceText(page.PriceText)
	if !ok {
		return models.Price{}, fmt.Errorf("%w: price text %q not recognized", derr.ErrPriceUnavailable, page.PriceText)
	}

	currency, err := ResolveCurrency(page.Currency, parsed.Symbol)
	if err != nil {
		return models.Price{}, err
	}

	return models.Price{
		Amount:   parsed.Amount,
		Currency: currency,
		Symbol:   parsed.Symbol,
	}, nil
}

// ParsePriceText tries the amount-then-symbol layout first and falls back to
// symbol-then-amount.
func ParsePriceText(text string) (models.ParsedPrice, bool) {
	text = strings.TrimSpace(spaceReplacer.Replace(text))

	if m := amountFirstPattern.FindStringSubmatch(text); m != nil && hasDigit(m[1]) {
		return models.ParsedPrice{
			Layout: models.LayoutAmountFirst,
			Amount: NormalizeAmount(m[1]),
			Symbol: strings.TrimSpace(m[2]),
		}, true
	}

	if m := symbolFirstPattern.FindStringSubmatch(text); m != nil {
		return models.ParsedPrice{
			Layout: models.LayoutSymbolFirst,
			Amount: NormalizeAmount(m[2]),
			Symbol: strings.TrimSpace(m[1]),
		}, true
	}

	return models.ParsedPrice{}, false
}

// NormalizeAmount rewrites a localized amount into a plain decimal string.
// With both separators present the period groups thousands and the comma is
// decimal. A lone comma is decimal; repeated separators group thousands.
func NormalizeAmount(raw string) string {
	amount := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)

	commas := strings.Count(amount, ",")
	periods := strings.Count(amount, ".")

	switch {
	case commas > 0 && periods > 0:
		amount = strings.ReplaceAll(amount, ".", "")
		amount = strings.ReplaceAll(amount, ",", ".")
	case commas == 1:
		amount = strings.Replace(amount, ",", ".", 1)
	case commas > 1:
		amount = strings.ReplaceAll(amount, ",", "")
	case periods > 1:
		amount = strings.ReplaceAll(amount, ".", "")
	}

	return amount
}

// ResolveCurrency prefers the active currency widget and falls back to the
// symbol table.
func ResolveCurrency(widget dto.CurrencyWidget, symbol string) (string, error) {
	if widget.Present {
		if code := strings.ToUpper(strings.TrimSpace(widget.Code)); code != "" {
			return code, nil
		}
	}

	if code, ok := currencySymbols[strings.TrimSpace(symbol)]; ok {
		return code, nil
	}

	return "", fmt.Errorf("%w: %q", derr.ErrUnknownSymbol, symbol)
}

func hasDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}
