// Package pipeline wires the collection stages together:
// EDGAR fetch -> tier classification -> Wikipedia scrape -> labeling ->
// CSV outputs.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/schollz/progressbar/v3"

	"disruption_dataset/pkg/core/dataset"
	"disruption_dataset/pkg/core/match"
)

// Output file names under the output directory.
const (
	CompaniesFile    = "companies.csv"
	BankruptciesFile = "bankruptcies.csv"
	LabeledFile      = "companies_labelled.csv"
)

// CompanySource produces company records from the registry.
// Implementations: edgar.Client (live), fakes in tests.
type CompanySource interface {
	FetchTickers(ctx context.Context, max int) ([]dataset.TickerEntry, error)
	FetchCompanyMetadata(ctx context.Context, cik string) (*dataset.CompanyRecord, error)
}

// BankruptcySource produces scraped bankruptcy records. Per-year
// failures are the implementation's to log and skip.
type BankruptcySource interface {
	ScrapeYears(ctx context.Context, years []int) []dataset.BankruptcyRecord
}

// Orchestrator manages the end-to-end data flow. All stages are
// sequential, stateless, single-pass transforms; composition is purely
// data flow through the orchestrator.
type Orchestrator struct {
	companies    CompanySource
	bankruptcies BankruptcySource

	// OutDir receives the three CSV outputs. Default data/raw.
	OutDir string
	// MatchMode selects the labeling containment rule.
	MatchMode match.Mode
	// ProgressWriter receives the fetch progress bar; nil disables it.
	ProgressWriter io.Writer
}

// Summary describes a finished run.
type Summary struct {
	Companies       int
	Disrupted       int
	BankruptcyNames int
	TierCounts      map[int]int
	LabeledPath     string
}

// DisruptionRate is the fraction of labeled companies marked disrupted.
func (s Summary) DisruptionRate() float64 {
	if s.Companies == 0 {
		return 0
	}
	return float64(s.Disrupted) / float64(s.Companies)
}

// Print writes the post-run summary in tier order.
func (s Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "\nTier distribution:\n")
	tiers := make([]int, 0, len(s.TierCounts))
	for t := range s.TierCounts {
		tiers = append(tiers, t)
	}
	sort.Ints(tiers)
	for _, t := range tiers {
		fmt.Fprintf(w, "  tier %d: %d\n", t, s.TierCounts[t])
	}
	fmt.Fprintf(w, "\nDisruption rate: %.1f%% (%d of %d companies, %d names in set)\n",
		100*s.DisruptionRate(), s.Disrupted, s.Companies, s.BankruptcyNames)
}

// NewOrchestrator creates an orchestrator over the given sources.
func NewOrchestrator(companies CompanySource, bankruptcies BankruptcySource) *Orchestrator {
	return &Orchestrator{
		companies:      companies,
		bankruptcies:   bankruptcies,
		OutDir:         "data/raw",
		ProgressWriter: os.Stderr,
	}
}

// BuildCompanyDataset fetches the ticker listing and then metadata per
// CIK, sequentially. A CIK whose metadata fetch fails is logged at debug
// and dropped — no retry, no partial record. The ticker listing fetch is
// the one fatal precondition of the run.
func (o *Orchestrator) BuildCompanyDataset(ctx context.Context, maxCompanies int) ([]dataset.CompanyRecord, error) {
	slog.Info("Fetching company tickers from SEC EDGAR", "max", maxCompanies)
	tickers, err := o.companies.FetchTickers(ctx, maxCompanies)
	if err != nil {
		return nil, fmt.Errorf("ticker listing fetch failed: %w", err)
	}
	slog.Info("Ticker listing fetched", "companies", len(tickers))

	bar := o.newProgressBar(len(tickers))
	records := make([]dataset.CompanyRecord, 0, len(tickers))
	for _, t := range tickers {
		if ctx.Err() != nil {
			return records, ctx.Err()
		}

		meta, err := o.companies.FetchCompanyMetadata(ctx, t.CIK)
		if err != nil {
			slog.Debug("Dropping CIK", "cik", t.CIK, "error", err)
			advance(bar)
			continue
		}
		meta.Ticker = t.Ticker
		records = append(records, *meta)
		advance(bar)
	}

	slog.Info("Company dataset built", "fetched", len(records), "dropped", len(tickers)-len(records))
	return records, nil
}

// BuildBankruptcyDataset scrapes the per-year listings and writes
// bankruptcies.csv. Partial failure per year is non-fatal.
func (o *Orchestrator) BuildBankruptcyDataset(ctx context.Context, years []int) ([]dataset.BankruptcyRecord, error) {
	records := o.bankruptcies.ScrapeYears(ctx, years)

	path, err := dataset.SaveCSV(o.OutDir, BankruptciesFile, func(w io.Writer) error {
		return dataset.WriteBankruptciesCSV(w, records)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save bankruptcy records: %w", err)
	}
	slog.Info("Saved bankruptcy records", "path", path, "records", len(records))
	return records, nil
}

// Label joins a company table against the flattened name set and writes
// the labeled CSV. Returns the labeled rows and the output path.
func (o *Orchestrator) Label(companies []dataset.CompanyRecord, set *match.NameSet) ([]dataset.LabeledCompany, string, error) {
	labeled := match.Label(companies, set, o.MatchMode)

	path, err := dataset.SaveCSV(o.OutDir, LabeledFile, func(w io.Writer) error {
		return dataset.WriteLabeledCSV(w, labeled)
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to save labeled companies: %w", err)
	}

	disrupted := 0
	for _, c := range labeled {
		disrupted += c.Disrupted
	}
	slog.Info("Labeled companies", "total", len(labeled), "disrupted", disrupted, "path", path)
	return labeled, path, nil
}

// Run executes the full pipeline and returns a run summary. The labeled
// rows and bankruptcy records are returned alongside so callers can
// persist them elsewhere.
func (o *Orchestrator) Run(ctx context.Context, maxCompanies int, years []int) (*Summary, []dataset.LabeledCompany, []dataset.BankruptcyRecord, error) {
	companies, err := o.BuildCompanyDataset(ctx, maxCompanies)
	if err != nil {
		return nil, nil, nil, err
	}

	if _, err := dataset.SaveCSV(o.OutDir, CompaniesFile, func(w io.Writer) error {
		return dataset.WriteCompaniesCSV(w, companies)
	}); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to save companies: %w", err)
	}

	bankruptcies, err := o.BuildBankruptcyDataset(ctx, years)
	if err != nil {
		return nil, nil, nil, err
	}
	set := match.FromRecords(bankruptcies)
	slog.Info("Bankruptcy name set built", "names", set.Len())

	labeled, path, err := o.Label(companies, set)
	if err != nil {
		return nil, nil, nil, err
	}

	summary := &Summary{
		Companies:       len(labeled),
		BankruptcyNames: set.Len(),
		TierCounts:      make(map[int]int),
		LabeledPath:     path,
	}
	for _, c := range labeled {
		summary.Disrupted += c.Disrupted
		summary.TierCounts[c.Tier]++
	}
	return summary, labeled, bankruptcies, nil
}

func (o *Orchestrator) newProgressBar(total int) *progressbar.ProgressBar {
	if o.ProgressWriter == nil {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(o.ProgressWriter),
		progressbar.OptionSetDescription("Fetching company metadata"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func advance(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Add(1)
	}
}
