// Package shortinterest loads the high-short-interest ticker flags used to
// annotate the selection list. The set is read once at startup and treated
// as immutable reference data.
package shortinterest

import (
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
)

// Set is an immutable collection of flagged symbols. Safe for concurrent
// readers; never mutated after Load returns.
type Set map[string]struct{}

type csvRow struct {
	Ticker string `csv:"Ticker"`
}

// Load reads flagged tickers from a CSV with a "Ticker" column, normalizing
// entries to trimmed uppercase. A missing or malformed file degrades to an
// empty set with a warning; the flag is cosmetic and must never block
// startup.
func Load(path string, logger *zap.Logger) Set {
	set := make(Set)

	f, err := os.Open(path)
	if err != nil {
		logger.Warn("short interest file unavailable",
			zap.String("path", path),
			zap.Error(err),
		)
		return set
	}
	defer f.Close()

	var rows []csvRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		logger.Warn("short interest file malformed",
			zap.String("path", path),
			zap.Error(err),
		)
		return set
	}

	for _, r := range rows {
		symbol := strings.ToUpper(strings.TrimSpace(r.Ticker))
		if symbol != "" {
			set[symbol] = struct{}{}
		}
	}

	if len(set) == 0 {
		logger.Warn("no Ticker entries found in short interest file",
			zap.String("path", path),
		)
	} else {
		logger.Info("short interest flags loaded",
			zap.String("path", path),
			zap.Int("count", len(set)),
		)
	}
	return set
}

// Contains reports whether symbol carries the high-short-interest flag.
func (s Set) Contains(symbol string) bool {
	_, ok := s[strings.ToUpper(symbol)]
	return ok
}
