package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/itmlabs/itmview/internal/report"
	"github.com/itmlabs/itmview/internal/shortinterest"
	"github.com/itmlabs/itmview/internal/view"
)

func callsCmd() *cobra.Command {
	var earnings bool

	cmd := &cobra.Command{
		Use:   "calls SYMBOL",
		Short: "Show the call activity narrative for one ticker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis, err := loadAnalysis()
			if err != nil {
				return err
			}

			symbol := strings.ToUpper(args[0])
			key := symbol
			if earnings {
				key = report.EarningsKey(symbol)
			}

			// Narratives are keyed independently of the put data, so no
			// short-interest lookup is needed here.
			builder := view.NewBuilder(shortinterest.Set{})
			narrative, err := builder.Narrative(analysis, key)
			if err != nil {
				return fmt.Errorf("no call activity for %s (check --earnings)", symbol)
			}

			fmt.Fprintln(cmd.OutOrStdout(), narrative)
			return nil
		},
	}

	cmd.Flags().BoolVar(&earnings, "earnings", false, "use the upcoming-earnings category")
	return cmd
}
