package report

import "regexp"

// Sentinel phrases bounding the parseable regions of a report. The earnings
// variants use the same base phrase with a fixed suffix before the colon.
const (
	sentTickers  = "FINAL QUALIFYING TICKERS WITH CURRENT PRICES:"
	sentCalls    = "CALL ACTIVITY ANALYSIS:"
	sentPuts     = "DETAILED PUT BREAKDOWN BY TICKER:"
	sentMetadata = "ANALYSIS METADATA:"

	sentTickersEarnings = "FINAL QUALIFYING TICKERS WITH CURRENT PRICES with upcoming earnings:"
	sentCallsEarnings   = "CALL ACTIVITY ANALYSIS with upcoming earnings:"
	sentPutsEarnings    = "DETAILED PUT BREAKDOWN BY TICKER with upcoming earnings:"

	// The normal call section ends at the put breakdown header regardless
	// of its trailing text.
	sentPutsPartial = "DETAILED PUT BREAKDOWN"
)

var (
	reTickersSection         = sectionRegexp(sentTickers, sentCalls)
	reCallsSection           = sectionRegexp(sentCalls, sentPutsPartial)
	rePutsSection            = sectionRegexp(sentPuts, sentMetadata)
	reTickersEarningsSection = sectionRegexp(sentTickersEarnings, sentCallsEarnings)
	reCallsEarningsSection   = sectionRegexp(sentCallsEarnings, sentPutsEarnings)
	rePutsEarningsSection    = sectionRegexp(sentPutsEarnings, "")
)

// sectionRegexp builds the matcher for the region strictly between a start
// and end sentinel. A decorative run of '=' after the start sentinel is
// consumed, and matching is not line-anchored. An empty end sentinel bounds
// the region at end-of-text (the terminal section).
func sectionRegexp(start, end string) *regexp.Regexp {
	pattern := `(?s)` + regexp.QuoteMeta(start) + `\s*=*\s*(.*?)\s*`
	if end == "" {
		pattern += `\z`
	} else {
		pattern += regexp.QuoteMeta(end)
	}
	return regexp.MustCompile(pattern)
}

// extractSection returns the first region bounded by the sentinel pair, or
// ok=false when either sentinel is absent or out of order. A missing region
// is not an error; the report may legitimately omit whole sections.
func extractSection(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}
