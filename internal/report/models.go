package report

import "strings"

// TickerSummary is one qualifying ticker's aggregate line from the report.
// NumPuts and TotalPremium are derived from the ticker's put set and are
// recomputed whenever that set is filtered.
type TickerSummary struct {
	Symbol       string  `json:"symbol"`
	CurrentPrice float64 `json:"current_price"`
	NumPuts      int     `json:"num_puts"`
	TotalPremium float64 `json:"total_premium"`
}

// PutDetail is a single ITM put contract line. PutNumber is copied verbatim
// from the source text and is not guaranteed unique or contiguous.
// Expiration is an opaque label, never parsed as a date.
type PutDetail struct {
	PutNumber  int     `json:"put_number"`
	Strike     float64 `json:"strike"`
	Spot       float64 `json:"spot"`
	ITMBy      float64 `json:"itm_by"`
	Premium    float64 `json:"premium"`
	Expiration string  `json:"expiration"`
}

// CategorySet holds every record parsed for one category of the report.
// Maps are keyed by bare ticker symbol.
type CategorySet struct {
	Tickers map[string]TickerSummary
	Puts    map[string][]PutDetail
	Calls   map[string]string
}

func newCategorySet() CategorySet {
	return CategorySet{
		Tickers: make(map[string]TickerSummary),
		Puts:    make(map[string][]PutDetail),
		Calls:   make(map[string]string),
	}
}

// Analysis is the complete parse result for one report. The normal and
// earnings-pending categories are disjoint; a symbol may appear in both
// as independent records.
type Analysis struct {
	Normal   CategorySet
	Earnings CategorySet
}

// EarningsKeyPrefix qualifies earnings-category ticker keys so a symbol
// present in both categories stays addressable as two distinct entries.
const EarningsKeyPrefix = "earnings_"

// EarningsKey returns the category-qualified key for an earnings-pending
// ticker.
func EarningsKey(symbol string) string {
	return EarningsKeyPrefix + symbol
}

// SplitKey resolves a category-qualified ticker key into its bare symbol
// and category.
func SplitKey(key string) (symbol string, earnings bool) {
	if strings.HasPrefix(key, EarningsKeyPrefix) {
		return strings.TrimPrefix(key, EarningsKeyPrefix), true
	}
	return key, false
}
