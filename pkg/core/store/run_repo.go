package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"disruption_dataset/pkg/core/dataset"
)

// RunRepo persists completed collection runs. Each run is tagged with a
// UUID so successive collections can coexist for comparison.
//
// Schema assumption (managed outside this package):
//
//	CREATE TABLE IF NOT EXISTS collection_runs (
//	  id UUID PRIMARY KEY,
//	  max_companies INT,
//	  created_at TIMESTAMPTZ
//	);
//	CREATE TABLE IF NOT EXISTS labeled_companies (
//	  run_id UUID REFERENCES collection_runs(id),
//	  cik TEXT, name TEXT, sic INT, sic_description TEXT, state TEXT,
//	  n_10k INT, n_8k INT, n_total_filings INT, tier INT, ticker TEXT,
//	  disrupted INT
//	);
//	CREATE TABLE IF NOT EXISTS bankruptcy_names (
//	  run_id UUID REFERENCES collection_runs(id),
//	  name TEXT, year INT, source TEXT
//	);
type RunRepo struct{}

// NewRunRepo creates a new repository instance.
func NewRunRepo() *RunRepo {
	return &RunRepo{}
}

// SaveRun persists one labeled dataset and its bankruptcy inputs under a
// fresh run ID. Returns the ID for reference in logs.
func (r *RunRepo) SaveRun(ctx context.Context, companies []dataset.LabeledCompany, bankruptcies []dataset.BankruptcyRecord) (uuid.UUID, error) {
	pool := GetPool()
	if pool == nil {
		return uuid.Nil, fmt.Errorf("database pool not initialized")
	}

	runID := uuid.New()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO collection_runs (id, max_companies, created_at) VALUES ($1, $2, $3)`,
		runID, len(companies), time.Now())
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert run: %w", err)
	}

	companyRows := make([][]any, 0, len(companies))
	for _, c := range companies {
		companyRows = append(companyRows, []any{
			runID, c.CIK, c.Name, c.SIC, c.SICDescription, c.State,
			c.N10K, c.N8K, c.NTotalFilings, c.Tier, c.Ticker, c.Disrupted,
		})
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"labeled_companies"},
		[]string{"run_id", "cik", "name", "sic", "sic_description", "state",
			"n_10k", "n_8k", "n_total_filings", "tier", "ticker", "disrupted"},
		pgx.CopyFromRows(companyRows))
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to copy labeled companies: %w", err)
	}

	bankruptcyRows := make([][]any, 0, len(bankruptcies))
	for _, b := range bankruptcies {
		bankruptcyRows = append(bankruptcyRows, []any{runID, b.Name, b.Year, b.Source})
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"bankruptcy_names"},
		[]string{"run_id", "name", "year", "source"},
		pgx.CopyFromRows(bankruptcyRows))
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to copy bankruptcy names: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// LoadRunLabels retrieves the labeled companies of a stored run.
func (r *RunRepo) LoadRunLabels(ctx context.Context, runID uuid.UUID) ([]dataset.LabeledCompany, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx, `
		SELECT cik, name, sic, sic_description, state,
		       n_10k, n_8k, n_total_filings, tier, ticker, disrupted
		FROM labeled_companies WHERE run_id = $1 ORDER BY cik`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run %s: %w", runID, err)
	}
	defer rows.Close()

	var companies []dataset.LabeledCompany
	for rows.Next() {
		var c dataset.LabeledCompany
		if err := rows.Scan(&c.CIK, &c.Name, &c.SIC, &c.SICDescription, &c.State,
			&c.N10K, &c.N8K, &c.NTotalFilings, &c.Tier, &c.Ticker, &c.Disrupted); err != nil {
			return nil, fmt.Errorf("failed to scan labeled company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}
