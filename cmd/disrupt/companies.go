package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"disruption_dataset/pkg/core/dataset"
	"disruption_dataset/pkg/core/edgar"
	"disruption_dataset/pkg/core/pipeline"
)

func companiesCmd() *cobra.Command {
	var (
		maxCompanies int
		minInterval  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "companies",
		Short: "Fetch SEC EDGAR company metadata only",
		RunE: func(cmd *cobra.Command, _ []string) error {
			o := newOrchestrator(minInterval, false)

			companies, err := o.BuildCompanyDataset(cmd.Context(), maxCompanies)
			if err != nil {
				return fmt.Errorf("company fetch failed: %w", err)
			}

			path, err := dataset.SaveCSV(o.OutDir, pipeline.CompaniesFile, func(w io.Writer) error {
				return dataset.WriteCompaniesCSV(w, companies)
			})
			if err != nil {
				return err
			}
			fmt.Printf("Saved %d companies to %s\n", len(companies), path)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxCompanies, "max-companies", defaultMaxCompanies, "maximum companies to fetch from EDGAR")
	cmd.Flags().DurationVar(&minInterval, "min-interval", edgar.MinInterval, "minimum interval between EDGAR requests")
	return cmd
}
