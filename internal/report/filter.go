package report

// FilterPuts narrows a put collection to records expiring on one of the
// selected labels. An empty selection means "no filter applied" and returns
// the input unchanged. Tickers left with no matching puts are dropped.
func FilterPuts(puts map[string][]PutDetail, selected []string) map[string][]PutDetail {
	if len(selected) == 0 {
		return puts
	}
	want := make(map[string]struct{}, len(selected))
	for _, label := range selected {
		want[label] = struct{}{}
	}

	filtered := make(map[string][]PutDetail)
	for symbol, list := range puts {
		var kept []PutDetail
		for _, p := range list {
			if _, ok := want[p.Expiration]; ok {
				kept = append(kept, p)
			}
		}
		if len(kept) > 0 {
			filtered[symbol] = kept
		}
	}
	return filtered
}

// RecomputeSummaries rebuilds ticker summaries from a filtered put set.
// Only tickers present in the filtered set survive. NumPuts and TotalPremium
// are rederived from the filtered puts; CurrentPrice carries over from the
// original summary.
func RecomputeSummaries(tickers map[string]TickerSummary, filteredPuts map[string][]PutDetail) map[string]TickerSummary {
	out := make(map[string]TickerSummary, len(filteredPuts))
	for symbol, list := range filteredPuts {
		orig, ok := tickers[symbol]
		if !ok {
			continue
		}
		total := 0.0
		for _, p := range list {
			total += p.Premium
		}
		out[symbol] = TickerSummary{
			Symbol:       symbol,
			CurrentPrice: orig.CurrentPrice,
			NumPuts:      len(list),
			TotalPremium: total,
		}
	}
	return out
}

// Filter applies an expiration selection to one category, recomputing the
// derived summary fields. Call narratives are never filtered.
func (c CategorySet) Filter(selected []string) CategorySet {
	if len(selected) == 0 {
		return c
	}
	puts := FilterPuts(c.Puts, selected)
	return CategorySet{
		Tickers: RecomputeSummaries(c.Tickers, puts),
		Puts:    puts,
		Calls:   c.Calls,
	}
}

// Filter applies an expiration selection to both categories independently.
func (a Analysis) Filter(selected []string) Analysis {
	return Analysis{
		Normal:   a.Normal.Filter(selected),
		Earnings: a.Earnings.Filter(selected),
	}
}
