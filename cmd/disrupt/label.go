package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"disruption_dataset/pkg/core/dataset"
	"disruption_dataset/pkg/core/edgar"
	"disruption_dataset/pkg/core/match"
	"disruption_dataset/pkg/core/pipeline"
)

func labelCmd() *cobra.Command {
	var (
		companiesFile string
		years         []int
		strict        bool
	)

	cmd := &cobra.Command{
		Use:   "label",
		Short: "Label an existing companies.csv against a fresh bankruptcy scrape",
		RunE: func(cmd *cobra.Command, _ []string) error {
			yearList, err := resolveYears(years)
			if err != nil {
				return err
			}

			if companiesFile == "" {
				companiesFile = filepath.Join(viper.GetString("output.dir"), pipeline.CompaniesFile)
			}
			f, err := os.Open(companiesFile)
			if err != nil {
				return fmt.Errorf("failed to open companies file: %w", err)
			}
			companies, err := dataset.ReadCompaniesCSV(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", companiesFile, err)
			}

			o := newOrchestrator(edgar.MinInterval, strict)
			records, err := o.BuildBankruptcyDataset(cmd.Context(), yearList)
			if err != nil {
				return err
			}

			labeled, path, err := o.Label(companies, match.FromRecords(records))
			if err != nil {
				return err
			}

			disrupted := 0
			for _, c := range labeled {
				disrupted += c.Disrupted
			}
			fmt.Printf("Labeled %d companies (%d disrupted) -> %s\n", len(labeled), disrupted, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&companiesFile, "companies-file", "", "existing companies CSV (default: <out>/companies.csv)")
	cmd.Flags().IntSliceVar(&years, "years", nil, "years to scrape (default 1995 through 2025)")
	cmd.Flags().BoolVar(&strict, "strict-match", false, "require word-boundary name containment instead of raw substrings")
	return cmd
}
