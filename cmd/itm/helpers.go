package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/itmlabs/itmview/internal/report"
	"github.com/itmlabs/itmview/internal/shortinterest"
	"github.com/itmlabs/itmview/internal/store"
)

// loadAnalysis reads and parses the configured report file. A missing file
// is the one input failure surfaced to the user.
func loadAnalysis() (report.Analysis, error) {
	text, err := store.ReadReportFile(cfg.Report.Path, cfg.Report.MaxBytes)
	if err != nil {
		if os.IsNotExist(err) {
			return report.Analysis{}, fmt.Errorf("no report available at %s (upload one or adjust report.path)", cfg.Report.Path)
		}
		return report.Analysis{}, err
	}
	return report.Parse(text), nil
}

func loadFlags() shortinterest.Set {
	return shortinterest.Load(cfg.ShortInterest.Path, logger)
}

func newTable(w io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetColumnSeparator("")
	return table
}

func summaryTable(w io.Writer, title string, c report.CategorySet, flags shortinterest.Set) {
	fmt.Fprintf(w, "%s (%d tickers)\n", title, len(c.Tickers))
	if len(c.Tickers) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}

	table := newTable(w, []string{"Ticker", "Price", "Puts", "Total Premium", "Flags"})
	for _, symbol := range sortedSymbols(c.Tickers) {
		t := c.Tickers[symbol]
		flag := ""
		if flags.Contains(symbol) {
			flag = "HIGH SHORT"
		}
		table.Append([]string{
			symbol,
			fmt.Sprintf("$%.2f", t.CurrentPrice),
			fmt.Sprintf("%d", t.NumPuts),
			report.FormatCurrency(t.TotalPremium),
			flag,
		})
	}
	table.Render()
}

func sortedSymbols(tickers map[string]report.TickerSummary) []string {
	symbols := make([]string, 0, len(tickers))
	for symbol := range tickers {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}
