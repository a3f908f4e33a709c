package report

import "sort"

// Expirations returns the distinct expiration labels across both categories'
// puts, sorted ascending. Labels are opaque strings; lexicographic order is
// the deliberate policy, not calendar order.
func (a Analysis) Expirations() []string {
	seen := make(map[string]struct{})
	collect := func(puts map[string][]PutDetail) {
		for _, list := range puts {
			for _, p := range list {
				seen[p.Expiration] = struct{}{}
			}
		}
	}
	collect(a.Normal.Puts)
	collect(a.Earnings.Puts)

	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
