package wiki

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disruption_dataset/pkg/core/match"
)

func categoryPage(names ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body><div id="bodyContent">`)
	b.WriteString(`<div id="mw-normal-catlinks"><a href="/wiki/Help:Category">Category</a></div>`)
	b.WriteString(`<div id="mw-pages"><h2>Pages in category</h2><ul>`)
	for _, n := range names {
		fmt.Fprintf(&b, `<li><a href="/wiki/%s">%s</a></li>`, strings.ReplaceAll(n, " ", "_"), n)
	}
	b.WriteString(`<li><a href="/wiki/Empty"> </a></li>`) // whitespace-only text is dropped
	b.WriteString(`</ul></div></body></html>`)
	return b.String()
}

func newTestScraper(t *testing.T, handler http.HandlerFunc) *Scraper {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewScraper(
		WithBaseURL(srv.URL+"/category/%d"),
		WithDelay(0),
		WithHTTPClient(srv.Client()),
	)
}

func TestScrapeYearExtractsAnchors(t *testing.T) {
	s := newTestScraper(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, categoryPage("Acme Corp", "Beta Stores"))
	})

	records, err := s.ScrapeYear(context.Background(), 2020)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Acme Corp", records[0].Name)
	assert.Equal(t, 2020, records[0].Year)
	assert.Equal(t, 1, records[0].Disrupted)
	assert.Equal(t, "wikipedia_ch11", records[0].Source)
}

func TestScrapeYearMissingContainer(t *testing.T) {
	s := newTestScraper(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body><p>no category listing here</p></body></html>`)
	})

	_, err := s.ScrapeYear(context.Background(), 2020)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mw-pages")
}

func TestScrapeYearHTTPError(t *testing.T) {
	s := newTestScraper(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := s.ScrapeYear(context.Background(), 1996)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

// A failed year must not prevent collection of the surrounding years.
func TestScrapeYearsSkipsFailedYear(t *testing.T) {
	s := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/category/2019":
			fmt.Fprint(w, categoryPage("Acme Corp"))
		case "/category/2020":
			w.WriteHeader(http.StatusInternalServerError)
		case "/category/2021":
			fmt.Fprint(w, categoryPage("Beta Stores", "Acme Corp"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	records := s.ScrapeYears(context.Background(), []int{2019, 2020, 2021})
	require.Len(t, records, 3)

	set := match.FromRecords(records)
	assert.Equal(t, []string{"ACME CORP", "BETA STORES"}, set.Names())
	assert.Equal(t, []int{2019, 2021}, set.YearsFor("Acme Corp"))

	for _, r := range records {
		assert.NotEqual(t, 2020, r.Year, "year 2020 failed and must be skipped")
	}
}
