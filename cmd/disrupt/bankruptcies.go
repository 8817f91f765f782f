package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"disruption_dataset/pkg/core/edgar"
)

func bankruptciesCmd() *cobra.Command {
	var years []int

	cmd := &cobra.Command{
		Use:   "bankruptcies",
		Short: "Scrape Wikipedia Chapter 11 listings only",
		RunE: func(cmd *cobra.Command, _ []string) error {
			yearList, err := resolveYears(years)
			if err != nil {
				return err
			}

			o := newOrchestrator(edgar.MinInterval, false)
			records, err := o.BuildBankruptcyDataset(cmd.Context(), yearList)
			if err != nil {
				return err
			}
			fmt.Printf("Collected %d bankruptcy records across %d years\n", len(records), len(yearList))
			return nil
		},
	}

	cmd.Flags().IntSliceVar(&years, "years", nil, "years to scrape (default 1995 through 2025)")
	return cmd
}
