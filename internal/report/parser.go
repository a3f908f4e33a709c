package report

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// AAPL: Current Price $150.00, 2 ITM puts, Total Premium $5,000.00
	reSummaryLine = regexp.MustCompile(`^([A-Z]+):\s*Current Price \$?([\d,.]+),\s*(\d+)\s*ITM puts,\s*Total Premium \$?([\d,.]+)`)

	// AAPL (Current Price $150.00):
	reTickerHeader = regexp.MustCompile(`^([A-Z]+)\s*\(Current Price.*\):`)

	// Put #1: Strike $155.00, Spot $150.00, ITM by $5.00, Premium $2,500.00, Exp: 2025-01-17
	rePutLine = regexp.MustCompile(`^Put #(\d+):\s*Strike \$?([\d,.]+),\s*Spot \$?([\d,.]+),\s*ITM by \$?([\d,.]+),\s*Premium \$?([\d,.]+),\s*Exp:\s*(.+)`)

	// Loose prefix used to drop header-like lines from call narratives even
	// when they fail the full header match.
	reTickerHeaderPrefix = regexp.MustCompile(`^[A-Z]+\s*\(Current Price`)
)

// Parse extracts all typed records from a raw analysis report. Parsing is
// pure and line-tolerant: unmatched lines are skipped and absent sections
// yield empty collections, never an error.
func Parse(text string) Analysis {
	a := Analysis{Normal: newCategorySet(), Earnings: newCategorySet()}

	if region, ok := extractSection(reTickersSection, text); ok {
		parseSummaries(region, a.Normal.Tickers)
	}
	if region, ok := extractSection(rePutsSection, text); ok {
		parsePuts(region, a.Normal.Puts)
	}
	if region, ok := extractSection(reCallsSection, text); ok {
		parseCalls(region, a.Normal.Calls)
	}

	if region, ok := extractSection(reTickersEarningsSection, text); ok {
		parseSummaries(region, a.Earnings.Tickers)
	}
	if region, ok := extractSection(rePutsEarningsSection, text); ok {
		parsePuts(region, a.Earnings.Puts)
	}
	if region, ok := extractSection(reCallsEarningsSection, text); ok {
		parseCalls(region, a.Earnings.Calls)
	}

	return a
}

func parseSummaries(region string, out map[string]TickerSummary) {
	for _, line := range strings.Split(region, "\n") {
		m := reSummaryLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		price, err1 := parseAmount(m[2])
		count, err2 := strconv.Atoi(m[3])
		premium, err3 := parseAmount(m[4])
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		out[m[1]] = TickerSummary{
			Symbol:       m[1],
			CurrentPrice: price,
			NumPuts:      count,
			TotalPremium: premium,
		}
	}
}

// parsePuts scans a put breakdown region with a two-state machine: lines are
// ignored until a ticker header establishes the active ticker, then each
// "Put #" line is matched in that ticker's scope. A header with no following
// put lines leaves an empty list for that ticker.
func parsePuts(region string, out map[string][]PutDetail) {
	current := ""
	for _, raw := range strings.Split(region, "\n") {
		line := strings.TrimSpace(raw)
		if m := reTickerHeader.FindStringSubmatch(line); m != nil {
			current = m[1]
			out[current] = []PutDetail{}
			continue
		}
		if current == "" || !strings.HasPrefix(line, "Put #") {
			continue
		}
		m := rePutLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		number, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		strike, err1 := parseAmount(m[2])
		spot, err2 := parseAmount(m[3])
		itmBy, err3 := parseAmount(m[4])
		premium, err4 := parseAmount(m[5])
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}
		out[current] = append(out[current], PutDetail{
			PutNumber:  number,
			Strike:     strike,
			Spot:       spot,
			ITMBy:      itmBy,
			Premium:    premium,
			Expiration: strings.TrimSpace(m[6]),
		})
	}
}

// parseCalls accumulates each ticker's narrative under the same
// header-scoping rule as parsePuts. Non-empty lines are joined with single
// spaces and the result is trimmed once the region is consumed. A repeated
// header resets that ticker's accumulated text, like parsePuts does for
// put lists.
func parseCalls(region string, out map[string]string) {
	chunks := make(map[string][]string)
	current := ""
	for _, raw := range strings.Split(region, "\n") {
		line := strings.TrimSpace(raw)
		if m := reTickerHeader.FindStringSubmatch(line); m != nil {
			current = m[1]
			chunks[current] = nil
			continue
		}
		if current == "" || line == "" || reTickerHeaderPrefix.MatchString(line) {
			continue
		}
		chunks[current] = append(chunks[current], line)
	}
	for symbol, lines := range chunks {
		out[symbol] = strings.TrimSpace(strings.Join(lines, " "))
	}
}

// parseAmount converts a matched numeric field, stripping thousands
// separators first.
func parseAmount(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}
