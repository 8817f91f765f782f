// Package wiki scrapes Wikipedia's per-year "Companies that filed for
// Chapter 11 bankruptcy" category pages.
//
// Uses github.com/PuerkitoBio/goquery for HTML traversal: every category
// member is an anchor inside <div id="mw-pages">.
package wiki

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"disruption_dataset/pkg/core/dataset"
)

const (
	// CategoryURL is the per-year category page, with one %d year slot.
	CategoryURL = "https://en.wikipedia.org/wiki/Category:Companies_that_filed_for_Chapter_11_bankruptcy_in_%d"

	defaultUserAgent = "disruption-dataset/1.0 (research; contact@example.com)"
	defaultTimeout   = 15 * time.Second
	defaultDelay     = 1 * time.Second
)

// Scraper fetches and parses per-year category pages. One Scraper holds
// one reusable HTTP client for connection reuse and shared headers.
type Scraper struct {
	client    *http.Client
	baseURL   string
	userAgent string
	delay     time.Duration
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithBaseURL overrides the category URL template (tests point this at a
// local server).
func WithBaseURL(urlTemplate string) Option {
	return func(s *Scraper) { s.baseURL = urlTemplate }
}

// WithDelay overrides the politeness delay between year fetches.
func WithDelay(d time.Duration) Option {
	return func(s *Scraper) { s.delay = d }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) { s.client = c }
}

// NewScraper creates a scraper with production defaults.
func NewScraper(opts ...Option) *Scraper {
	s := &Scraper{
		client:    &http.Client{Timeout: defaultTimeout},
		baseURL:   CategoryURL,
		userAgent: defaultUserAgent,
		delay:     defaultDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScrapeYear fetches one category page and returns its entity names as
// bankruptcy records. Errors cover transport failures, non-2xx statuses,
// and a missing #mw-pages container.
func (s *Scraper) ScrapeYear(ctx context.Context, year int) ([]dataset.BankruptcyRecord, error) {
	url := fmt.Sprintf(s.baseURL, year)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	// Category members live inside <div id="mw-pages">; anything outside
	// (navigation, sidebars, subcategory boxes) is noise.
	container := doc.Find("div#mw-pages")
	if container.Length() == 0 {
		return nil, fmt.Errorf("no mw-pages container found for %d", year)
	}

	var records []dataset.BankruptcyRecord
	container.Find("a").Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Text())
		if name == "" {
			return
		}
		records = append(records, dataset.BankruptcyRecord{
			Name:      name,
			Year:      year,
			Disrupted: 1,
			Source:    dataset.SourceWikipediaCh11,
		})
	})
	return records, nil
}

// ScrapeYears fetches every year sequentially. A failed year is logged
// and skipped; it never aborts the remaining years. The politeness delay
// applies between successive fetches.
func (s *Scraper) ScrapeYears(ctx context.Context, years []int) []dataset.BankruptcyRecord {
	var all []dataset.BankruptcyRecord
	for i, year := range years {
		if i > 0 && s.delay > 0 {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
				slog.Warn("Scrape canceled", "remaining_years", len(years)-i)
				return all
			}
		}

		records, err := s.ScrapeYear(ctx, year)
		if err != nil {
			slog.Warn("Skipping year", "year", year, "error", err)
			continue
		}
		slog.Info("Scraped Chapter 11 listing", "year", year, "companies", len(records))
		all = append(all, records...)
	}
	return all
}
