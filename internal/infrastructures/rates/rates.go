package rates

import (
	"fmt"
	"sort"
	"strings"

	derr "github.com/burningtree/flixbux-prices/internal/domain/errors"
	"github.com/ilyakaznacheev/cleanenv"
)

type file struct {
	Base  string             `json:"base" yaml:"base"`
	Rates map[string]float64 `json:"rates" yaml:"rates"`
}

// Table maps currency codes to rates against a common base. It is never
// modified after Load.
type Table struct {
	base  string
	rates map[string]float64
}

// Load reads a rate file (JSON or YAML, picked by extension) and checks that
// the required codes are present.
func Load(path string, required ...string) (*Table, error) {
	const op = "rates.Load"

	var payload file
	if err := cleanenv.ReadConfig(path, &payload); err != nil {
		return nil, fmt.Errorf("%s: read %s: %w", op, path, err)
	}

	table, err := New(payload.Base, payload.Rates)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, code := range required {
		if _, ok := table.Rate(code); !ok {
			return nil, fmt.Errorf("%s: %s: %w", op, normalizeCode(code), derr.ErrRateNotFound)
		}
	}

	return table, nil
}

func New(base string, values map[string]float64) (*Table, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("rate table is empty")
	}

	rates := make(map[string]float64, len(values)+1)
	for code, rate := range values {
		if rate <= 0 {
			return nil, fmt.Errorf("rate for %s must be positive, got %v", code, rate)
		}
		rates[normalizeCode(code)] = rate
	}

	base = normalizeCode(base)
	if _, ok := rates[base]; base != "" && !ok {
		rates[base] = 1
	}

	return &Table{base: base, rates: rates}, nil
}

func (t *Table) Rate(code string) (float64, bool) {
	rate, ok := t.rates[normalizeCode(code)]
	return rate, ok
}

func (t *Table) Base() string {
	return t.base
}

func (t *Table) Codes() []string {
	codes := make([]string, 0, len(t.rates))
	for code := range t.rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
