// Package dataset defines the tabular record types produced by the
// collection pipeline and their CSV encoding.
package dataset

// TickerEntry is one row of the SEC bulk company_tickers listing.
type TickerEntry struct {
	CIK    string // zero-padded to 10 digits
	Ticker string
	Name   string
}

// CompanyRecord is the per-company metadata row assembled from the SEC
// submissions API. Immutable after construction; labeling produces a
// separate LabeledCompany rather than mutating in place.
type CompanyRecord struct {
	CIK            string
	Name           string
	SIC            int
	SICDescription string
	State          string
	N10K           int
	N8K            int
	NTotalFilings  int
	Tier           int
	Ticker         string
}

// LabeledCompany is a CompanyRecord plus the binary disruption label.
type LabeledCompany struct {
	CompanyRecord
	Disrupted int
}

// BankruptcyRecord is one scraped Chapter 11 listing entry. Disrupted is
// always 1; presence in the listing is the signal. Year and Source are
// provenance and are not consulted by the matcher.
type BankruptcyRecord struct {
	Name      string
	Year      int
	Disrupted int
	Source    string
}

// SourceWikipediaCh11 tags records scraped from Wikipedia's per-year
// Chapter 11 category pages.
const SourceWikipediaCh11 = "wikipedia_ch11"
