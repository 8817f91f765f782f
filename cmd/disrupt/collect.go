package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"disruption_dataset/pkg/core/edgar"
	"disruption_dataset/pkg/core/store"
)

func collectCmd() *cobra.Command {
	var (
		maxCompanies int
		years        []int
		minInterval  time.Duration
		strict       bool
		persist      bool
		databaseURL  string
	)

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Run the full pipeline: companies, bankruptcies, label",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			yearList, err := resolveYears(years)
			if err != nil {
				return err
			}

			o := newOrchestrator(minInterval, strict)
			summary, labeled, bankruptcies, err := o.Run(ctx, maxCompanies, yearList)
			if err != nil {
				return fmt.Errorf("collection failed: %w", err)
			}

			if persist {
				// Store errors are reported, never fatal: the CSVs are
				// already on disk at this point.
				if err := store.InitDB(ctx, databaseURL); err != nil {
					slog.Error("Skipping persistence", "error", err)
				} else {
					defer store.Close()
					runID, err := store.NewRunRepo().SaveRun(ctx, labeled, bankruptcies)
					if err != nil {
						slog.Error("Failed to persist run", "error", err)
					} else {
						slog.Info("Run persisted", "run_id", runID)
					}
				}
			}

			summary.Print(os.Stdout)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxCompanies, "max-companies", defaultMaxCompanies, "maximum companies to fetch from EDGAR")
	cmd.Flags().IntSliceVar(&years, "years", nil, "years to scrape (default 1995 through 2025)")
	cmd.Flags().DurationVar(&minInterval, "min-interval", edgar.MinInterval, "minimum interval between EDGAR requests")
	cmd.Flags().BoolVar(&strict, "strict-match", false, "require word-boundary name containment instead of raw substrings")
	cmd.Flags().BoolVar(&persist, "store", false, "persist the run to Postgres")
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "Postgres URL (default: DATABASE_URL env)")
	return cmd
}
