package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func summaryCmd() *cobra.Command {
	var expirations []string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show ticker summaries from the analysis report",
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis, err := loadAnalysis()
			if err != nil {
				return err
			}
			flags := loadFlags()

			filtered := analysis.Filter(expirations)
			logger.Debug("summary",
				zap.Strings("expirations", expirations),
				zap.Int("normal", len(filtered.Normal.Tickers)),
				zap.Int("earnings", len(filtered.Earnings.Tickers)),
			)

			out := cmd.OutOrStdout()
			summaryTable(out, "QUALIFYING TICKERS", filtered.Normal, flags)
			summaryTable(out, "QUALIFYING TICKERS WITH UPCOMING EARNINGS", filtered.Earnings, flags)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&expirations, "exp", nil, "limit to these expiration labels (default: all)")
	return cmd
}
