package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

var companyHeader = []string{
	"cik", "name", "sic", "sic_description", "state",
	"n_10k", "n_8k", "n_total_filings", "tier", "ticker",
}

var bankruptcyHeader = []string{"name", "year", "disrupted", "source"}

// WriteCompaniesCSV writes company records with a header row.
func WriteCompaniesCSV(w io.Writer, companies []CompanyRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(companyHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, c := range companies {
		if err := cw.Write(companyRow(c)); err != nil {
			return fmt.Errorf("failed to write row for CIK %s: %w", c.CIK, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLabeledCSV writes labeled company records: the company columns
// plus a trailing disrupted column.
func WriteLabeledCSV(w io.Writer, companies []LabeledCompany) error {
	cw := csv.NewWriter(w)
	header := append(append([]string{}, companyHeader...), "disrupted")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, c := range companies {
		row := append(companyRow(c.CompanyRecord), strconv.Itoa(c.Disrupted))
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row for CIK %s: %w", c.CIK, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteBankruptciesCSV writes scraped bankruptcy records with a header row.
func WriteBankruptciesCSV(w io.Writer, records []BankruptcyRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(bankruptcyHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		row := []string{r.Name, strconv.Itoa(r.Year), strconv.Itoa(r.Disrupted), r.Source}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %q: %w", r.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCompaniesCSV reads a companies file previously written by
// WriteCompaniesCSV. Used by the standalone label command to rejoin an
// existing dataset without refetching EDGAR.
func ReadCompaniesCSV(r io.Reader) ([]CompanyRecord, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty companies file")
	}
	if len(rows[0]) < len(companyHeader) {
		return nil, fmt.Errorf("unexpected column count %d, want at least %d", len(rows[0]), len(companyHeader))
	}

	companies := make([]CompanyRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		c := CompanyRecord{
			CIK:            row[0],
			Name:           row[1],
			SICDescription: row[3],
			State:          row[4],
			Ticker:         row[9],
		}
		// Numeric columns default to zero on parse failure rather than
		// dropping the row; matches the defaulting policy for metadata.
		c.SIC, _ = strconv.Atoi(row[2])
		c.N10K, _ = strconv.Atoi(row[5])
		c.N8K, _ = strconv.Atoi(row[6])
		c.NTotalFilings, _ = strconv.Atoi(row[7])
		tier, err := strconv.Atoi(row[8])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad tier %q", i+2, row[8])
		}
		c.Tier = tier
		companies = append(companies, c)
	}
	return companies, nil
}

// SaveCSV writes a file under dir, creating the directory if needed.
func SaveCSV(dir, name string, write func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return "", err
	}
	return path, nil
}

func companyRow(c CompanyRecord) []string {
	return []string{
		c.CIK,
		c.Name,
		strconv.Itoa(c.SIC),
		c.SICDescription,
		c.State,
		strconv.Itoa(c.N10K),
		strconv.Itoa(c.N8K),
		strconv.Itoa(c.NTotalFilings),
		strconv.Itoa(c.Tier),
		c.Ticker,
	}
}
