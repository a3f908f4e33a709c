package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/itmlabs/itmview/internal/report"
	"github.com/itmlabs/itmview/internal/view"
)

func putsCmd() *cobra.Command {
	var expirations []string
	var earnings bool

	cmd := &cobra.Command{
		Use:   "puts SYMBOL",
		Short: "Show the put breakdown for one ticker",
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

			builder := view.NewBuilder(loadFlags())
			detail, err := builder.Detail(analysis, key, expirations)
			if err != nil {
				return fmt.Errorf("no put data for %s (check --earnings and --exp)", symbol)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  Current Price $%.2f  |  %d puts  |  %s\n",
				detail.Symbol, detail.CurrentPrice, detail.NumPuts, detail.TotalPremiumLabel)
			if detail.HighShortInterest {
				fmt.Fprintln(out, "HIGH SHORT INTEREST")
			}

			table := newTable(out, []string{"Put #", "Strike", "Spot", "ITM By", "Premium", "Expiry"})
			for _, p := range detail.Puts {
				table.Append([]string{
					fmt.Sprintf("%d", p.PutNumber),
					fmt.Sprintf("$%.2f", p.Strike),
					fmt.Sprintf("$%.2f", p.Spot),
					fmt.Sprintf("$%.2f", p.ITMBy),
					report.FormatCurrency(p.Premium),
					p.Expiration,
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&expirations, "exp", nil, "limit to these expiration labels (default: all)")
	cmd.Flags().BoolVar(&earnings, "earnings", false, "use the upcoming-earnings category")
	return cmd
}
