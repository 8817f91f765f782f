// Package edgar fetches company metadata from SEC EDGAR.
// API Documentation: https://www.sec.gov/developer
package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"disruption_dataset/pkg/core/dataset"
	"disruption_dataset/pkg/core/tier"
)

const (
	// SEC EDGAR endpoints
	CompanyTickersURL = "https://www.sec.gov/files/company_tickers.json"
	SubmissionsURL    = "https://data.sec.gov/submissions/CIK%s.json"

	// Required User-Agent per SEC fair-access guidelines
	UserAgent = "disruption-dataset/1.0 (research; contact@example.com)"

	// MinInterval is the default minimum spacing between requests. The
	// SEC asks for no more than 10 requests per second; we stay well
	// under it.
	MinInterval = 120 * time.Millisecond

	bulkTimeout     = 15 * time.Second
	metadataTimeout = 10 * time.Second
)

// tickerEntry mirrors one value of the company_tickers.json object:
// { "0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."}, ... }
type tickerEntry struct {
	CIK    int    `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// submissionsResponse is the subset of the per-CIK submissions document
// we consume. SIC arrives as a string and may be empty.
type submissionsResponse struct {
	Name                 string `json:"name"`
	SIC                  string `json:"sic"`
	SICDescription       string `json:"sicDescription"`
	StateOfIncorporation string `json:"stateOfIncorporation"`
	Filings              struct {
		Recent struct {
			Form []string `json:"form"`
		} `json:"recent"`
	} `json:"filings"`
}

// Client fetches the bulk ticker listing and per-CIK submission
// metadata. One Client holds one reusable HTTP connection pool and a
// shared rate limiter, so the aggregate request rate honors the SEC
// interval even if callers ever fan out.
type Client struct {
	httpClient     *http.Client
	limiter        *rate.Limiter
	tickersURL     string
	submissionsURL string
	userAgent      string
}

// Option configures a Client.
type Option func(*Client)

// WithMinInterval sets the minimum spacing between requests.
func WithMinInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.limiter = rate.NewLimiter(rate.Every(d), 1)
		} else {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
		}
	}
}

// WithBaseURLs overrides the SEC endpoints (tests point these at a local
// server). submissionsURL keeps one %s slot for the padded CIK.
func WithBaseURLs(tickersURL, submissionsURL string) Option {
	return func(c *Client) {
		c.tickersURL = tickersURL
		c.submissionsURL = submissionsURL
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a new SEC EDGAR client with production defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:     &http.Client{Timeout: bulkTimeout},
		limiter:        rate.NewLimiter(rate.Every(MinInterval), 1),
		tickersURL:     CompanyTickersURL,
		submissionsURL: SubmissionsURL,
		userAgent:      UserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PadCIK zero-pads a CIK to the 10-digit form the submissions API wants.
func PadCIK(cik string) string {
	return fmt.Sprintf("%010s", strings.TrimLeft(cik, "0"))
}

// FetchTickers retrieves up to max entries from the bulk company ticker
// listing, CIKs zero-padded. The listing is the startup precondition for
// the whole run: transient failures are retried with exponential backoff
// and the final error is returned to the caller to abort on.
//
// Entries come back in ascending numeric key order, matching the
// document's own ordering, so repeated runs see the same prefix.
func (c *Client) FetchTickers(ctx context.Context, max int) ([]dataset.TickerEntry, error) {
	var body []byte
	fetch := func() error {
		var err error
		body, err = c.get(ctx, c.tickersURL)
		return err
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 4), ctx)
	if err := backoff.Retry(fetch, bo); err != nil {
		return nil, fmt.Errorf("failed to fetch company tickers: %w", err)
	}

	var mapping map[string]tickerEntry
	if err := json.Unmarshal(body, &mapping); err != nil {
		return nil, fmt.Errorf("failed to parse company tickers: %w", err)
	}

	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})

	if max > 0 && max < len(keys) {
		keys = keys[:max]
	}

	entries := make([]dataset.TickerEntry, 0, len(keys))
	for _, k := range keys {
		e := mapping[k]
		entries = append(entries, dataset.TickerEntry{
			CIK:    fmt.Sprintf("%010d", e.CIK),
			Ticker: e.Ticker,
			Name:   e.Title,
		})
	}
	return entries, nil
}

// FetchCompanyMetadata retrieves the submissions document for one CIK
// and assembles a company record. Missing or malformed fields default
// (SIC 0, tier fallback) rather than failing the record; any fetch or
// decode error drops the CIK entirely — no retry, no partial record.
func (c *Client) FetchCompanyMetadata(ctx context.Context, cik string) (*dataset.CompanyRecord, error) {
	cik = PadCIK(cik)

	reqCtx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()

	body, err := c.get(reqCtx, fmt.Sprintf(c.submissionsURL, cik))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submissions for CIK %s: %w", cik, err)
	}

	var sub submissionsResponse
	if err := json.Unmarshal(body, &sub); err != nil {
		return nil, fmt.Errorf("failed to parse submissions for CIK %s: %w", cik, err)
	}

	sic, err := strconv.Atoi(strings.TrimSpace(sub.SIC))
	if err != nil {
		sic = 0
	}

	forms := sub.Filings.Recent.Form
	record := &dataset.CompanyRecord{
		CIK:            cik,
		Name:           sub.Name,
		SIC:            sic,
		SICDescription: sub.SICDescription,
		State:          sub.StateOfIncorporation,
		N10K:           countForms(forms, "10-K"),
		N8K:            countForms(forms, "8-K"),
		NTotalFilings:  len(forms),
		Tier:           tier.Classify(sic),
	}
	return record, nil
}

// get performs a rate-limited GET and returns the body for 200 responses.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

func countForms(forms []string, form string) int {
	n := 0
	for _, f := range forms {
		if f == form {
			n++
		}
	}
	return n
}
