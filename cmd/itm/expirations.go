package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func expirationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expirations",
		Short: "List distinct put expiration labels in the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis, err := loadAnalysis()
			if err != nil {
				return err
			}

			labels := analysis.Expirations()
			out := cmd.OutOrStdout()
			if len(labels) == 0 {
				fmt.Fprintln(out, "no put expirations found")
				return nil
			}
			for _, label := range labels {
				fmt.Fprintln(out, label)
			}
			return nil
		},
	}
}
