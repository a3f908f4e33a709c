// Package view assembles the display-facing projections of a parsed
// analysis: the combined ticker selection list and per-ticker detail
// payloads, both parameterized by the active expiration selection.
package view

import (
	"errors"
	"sort"
	"strconv"

	"github.com/itmlabs/itmview/internal/report"
	"github.com/itmlabs/itmview/internal/shortinterest"
)

// ErrUnknownTicker indicates a category-qualified key that does not resolve
// under the active filter.
var ErrUnknownTicker = errors.New("unknown ticker key")

// TickerOption is one entry in the combined selection list. Key is the
// category-qualified identifier; earnings entries carry the fixed prefix.
type TickerOption struct {
	Key               string  `json:"key"`
	Symbol            string  `json:"symbol"`
	Earnings          bool    `json:"earnings"`
	Label             string  `json:"label"`
	NumPuts           int     `json:"num_puts"`
	TotalPremium      float64 `json:"total_premium"`
	HighShortInterest bool    `json:"high_short_interest"`
}

// TickerDetail is the per-selection payload: the filtered put list with its
// recomputed summary, plus the unfiltered call narrative.
type TickerDetail struct {
	Key               string             `json:"key"`
	Symbol            string             `json:"symbol"`
	Earnings          bool               `json:"earnings"`
	CurrentPrice      float64            `json:"current_price"`
	NumPuts           int                `json:"num_puts"`
	TotalPremium      float64            `json:"total_premium"`
	TotalPremiumLabel string             `json:"total_premium_label"`
	Puts              []report.PutDetail `json:"puts"`
	CallNarrative     string             `json:"call_narrative,omitempty"`
	HighShortInterest bool               `json:"high_short_interest"`
}

// Builder assembles views over a parsed analysis with an injected
// short-interest flag set.
type Builder struct {
	flags shortinterest.Set
}

func NewBuilder(flags shortinterest.Set) *Builder {
	return &Builder{flags: flags}
}

// Options returns the combined category-qualified ticker list for the given
// expiration selection: normal tickers first, then earnings-pending, each
// group sorted by symbol. Labels reflect the filtered counts and premiums.
func (b *Builder) Options(a report.Analysis, expirations []string) []TickerOption {
	f := a.Filter(expirations)
	opts := make([]TickerOption, 0, len(f.Normal.Tickers)+len(f.Earnings.Tickers))
	opts = append(opts, b.categoryOptions(f.Normal, false)...)
	opts = append(opts, b.categoryOptions(f.Earnings, true)...)
	return opts
}

func (b *Builder) categoryOptions(c report.CategorySet, earnings bool) []TickerOption {
	symbols := make([]string, 0, len(c.Tickers))
	for symbol := range c.Tickers {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	opts := make([]TickerOption, 0, len(symbols))
	for _, symbol := range symbols {
		t := c.Tickers[symbol]
		key := symbol
		if earnings {
			key = report.EarningsKey(symbol)
		}
		opts = append(opts, TickerOption{
			Key:      key,
			Symbol:   symbol,
			Earnings: earnings,
			Label: symbol + " (" + strconv.Itoa(t.NumPuts) + " | " +
				report.FormatCurrency(t.TotalPremium) + ")",
			NumPuts:           t.NumPuts,
			TotalPremium:      t.TotalPremium,
			HighShortInterest: b.flags.Contains(symbol),
		})
	}
	return opts
}

// Detail resolves one category-qualified key against the expiration
// selection. Puts and summary fields are filtered/recomputed; the call
// narrative is always the unfiltered text for that key's category.
func (b *Builder) Detail(a report.Analysis, key string, expirations []string) (*TickerDetail, error) {
	symbol, earnings := report.SplitKey(key)
	c := a.Normal
	if earnings {
		c = a.Earnings
	}

	fc := c.Filter(expirations)
	t, ok := fc.Tickers[symbol]
	if !ok {
		return nil, ErrUnknownTicker
	}

	return &TickerDetail{
		Key:               key,
		Symbol:            symbol,
		Earnings:          earnings,
		CurrentPrice:      t.CurrentPrice,
		NumPuts:           t.NumPuts,
		TotalPremium:      t.TotalPremium,
		TotalPremiumLabel: report.FormatCurrency(t.TotalPremium),
		Puts:              fc.Puts[symbol],
		CallNarrative:     c.Calls[symbol],
		HighShortInterest: b.flags.Contains(symbol),
	}, nil
}

// Narrative returns the unfiltered call narrative for a key. Narratives are
// never filtered by expiration.
func (b *Builder) Narrative(a report.Analysis, key string) (string, error) {
	symbol, earnings := report.SplitKey(key)
	c := a.Normal
	if earnings {
		c = a.Earnings
	}
	text, ok := c.Calls[symbol]
	if !ok {
		return "", ErrUnknownTicker
	}
	return text, nil
}
