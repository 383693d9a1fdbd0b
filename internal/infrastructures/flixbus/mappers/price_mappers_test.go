package mappers

import (
	"errors"
	"testing"

	derr "github.com/burningtree/flixbux-prices/internal/domain/errors"
	"github.com/burningtree/flixbux-prices/internal/domain/models"
	"github.com/burningtree/flixbux-prices/internal/infrastructures/flixbus/dto"
)

func TestParsePriceText(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantLayout models.PriceLayout
		wantAmount string
		wantSymbol string
	}{
		{name: "amount first with spaces", text: "1 234,56 €", wantLayout: models.LayoutAmountFirst, wantAmount: "1234.56", wantSymbol: "€"},
		{name: "symbol first dot thousands", text: "€1.234,56", wantLayout: models.LayoutSymbolFirst, wantAmount: "1234.56", wantSymbol: "€"},
		{name: "symbol first with space", text: "£ 12.50", wantLayout: models.LayoutSymbolFirst, wantAmount: "12.50", wantSymbol: "£"},
		{name: "trailing dotted symbol", text: "129,00 kr.", wantLayout: models.LayoutAmountFirst, wantAmount: "129.00", wantSymbol: "kr."},
		{name: "non-breaking space", text: "2\u00a0499\u00a0Kč", wantLayout: models.LayoutAmountFirst, wantAmount: "2499", wantSymbol: "Kč"},
		{name: "surrounding whitespace", text: "\n   25,90 zł  \n", wantLayout: models.LayoutAmountFirst, wantAmount: "25.90", wantSymbol: "zł"},
		{name: "cyrillic symbol", text: "45,00 лв.", wantLayout: models.LayoutAmountFirst, wantAmount: "45.00", wantSymbol: "лв."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParsePriceText(tc.text)
			if !ok {
				t.Fatalf("expected %q to be recognized", tc.text)
			}
			if got.Layout != tc.wantLayout {
				t.Fatalf("unexpected layout: got %s want %s", got.Layout, tc.wantLayout)
			}
			if got.Amount != tc.wantAmount {
				t.Fatalf("unexpected amount: got %q want %q", got.Amount, tc.wantAmount)
			}
			if got.Symbol != tc.wantSymbol {
				t.Fatalf("unexpected symbol: got %q want %q", got.Symbol, tc.wantSymbol)
			}
		})
	}
}

func TestParsePriceText_Unrecognized(t *testing.T) {
	for _, text := range []string{"", "   ", "sold out", "1234.56", "€"} {
		if got, ok := ParsePriceText(text); ok {
			t.Fatalf("expected %q to be rejected, got %+v", text, got)
		}
	}
}

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "1234.56", want: "1234.56"},
		{raw: "1 234,56", want: "1234.56"},
		{raw: "1.234,56", want: "1234.56"},
		{raw: "19,99", want: "19.99"},
		{raw: "1,234,567", want: "1234567"},
		{raw: "1.234.567", want: "1234567"},
		{raw: " 42 ", want: "42"},
	}

	for _, tc := range tests {
		if got := NormalizeAmount(tc.raw); got != tc.want {
			t.Fatalf("NormalizeAmount(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeAmount_Idempotent(t *testing.T) {
	for _, raw := range []string{"1 234,56", "€1.234,56", "19,99", "1234.56", "7"} {
		once := NormalizeAmount(raw)
		if twice := NormalizeAmount(once); twice != once {
			t.Fatalf("normalizing %q twice changed %q to %q", raw, once, twice)
		}
	}
}

func TestResolveCurrency(t *testing.T) {
	code, err := ResolveCurrency(dto.CurrencyWidget{Code: " czk ", Present: true}, "Kč")
	if err != nil || code != "CZK" {
		t.Fatalf("widget should win: got %q, %v", code, err)
	}

	code, err = ResolveCurrency(dto.CurrencyWidget{}, "kr")
	if err != nil || code != "NOK" {
		t.Fatalf("expected table fallback to NOK, got %q, %v", code, err)
	}

	code, err = ResolveCurrency(dto.CurrencyWidget{Present: true, Code: "  "}, "kr.")
	if err != nil || code != "DKK" {
		t.Fatalf("blank widget should fall back to DKK, got %q, %v", code, err)
	}

	_, err = ResolveCurrency(dto.CurrencyWidget{}, "¤")
	if !errors.Is(err, derr.ErrUnknownSymbol) {
		t.Fatalf("expected ErrUnknownSymbol, got %v", err)
	}
}

func TestExtractPrice(t *testing.T) {
	got, err := ExtractPrice(dto.SearchPage{RowFound: true, PriceText: "€1.234,56"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Amount != "1234.56" || got.Currency != "EUR" || got.Symbol != "€" {
		t.Fatalf("unexpected price: %+v", got)
	}
}

func TestExtractPrice_SoftAndHardFailures(t *testing.T) {
	_, err := ExtractPrice(dto.SearchPage{RowFound: false})
	if !errors.Is(err, derr.ErrPriceUnavailable) {
		t.Fatalf("missing row: expected ErrPriceUnavailable, got %v", err)
	}

	_, err = ExtractPrice(dto.SearchPage{RowFound: true, PriceText: "sold out"})
	if !errors.Is(err, derr.ErrPriceUnavailable) {
		t.Fatalf("bad layout: expected ErrPriceUnavailable, got %v", err)
	}

	_, err = ExtractPrice(dto.SearchPage{RowFound: true, PriceText: "99,00 ₴"})
	if !errors.Is(err, derr.ErrUnknownSymbol) {
		t.Fatalf("unknown symbol: expected ErrUnknownSymbol, got %v", err)
	}
	if errors.Is(err, derr.ErrPriceUnavailable) {
		t.Fatal("unknown symbol must not be reported as a soft failure")
	}
}
