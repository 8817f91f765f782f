package edgar

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tickersJSON = `{
	"1": {"cik_str": 789019, "ticker": "MSFT", "title": "Microsoft Corp"},
	"0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."},
	"2": {"cik_str": 1318605, "ticker": "TSLA", "title": "Tesla, Inc."}
}`

const submissionsJSON = `{
	"name": "Apple Inc.",
	"sic": "3571",
	"sicDescription": "Electronic Computers",
	"stateOfIncorporation": "CA",
	"filings": {"recent": {"form": ["10-K", "8-K", "8-K", "4", "10-Q", "10-K"]}}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(
		WithBaseURLs(srv.URL+"/tickers", srv.URL+"/submissions/CIK%s.json"),
		WithHTTPClient(srv.Client()),
		WithMinInterval(0),
	)
}

func TestFetchTickersOrdersAndPads(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, tickersJSON)
	})

	entries, err := c.FetchTickers(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Numeric key order, not map iteration order.
	assert.Equal(t, "0000320193", entries[0].CIK)
	assert.Equal(t, "AAPL", entries[0].Ticker)
	assert.Equal(t, "Apple Inc.", entries[0].Name)
	assert.Equal(t, "0000789019", entries[1].CIK)
}

func TestFetchTickersRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, tickersJSON)
	})

	entries, err := c.FetchTickers(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestFetchCompanyMetadata(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/submissions/CIK0000320193.json", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		fmt.Fprint(w, submissionsJSON)
	})

	// Unpadded CIK is padded before the request.
	record, err := c.FetchCompanyMetadata(context.Background(), "320193")
	require.NoError(t, err)

	assert.Equal(t, "0000320193", record.CIK)
	assert.Equal(t, "Apple Inc.", record.Name)
	assert.Equal(t, 3571, record.SIC)
	assert.Equal(t, "Electronic Computers", record.SICDescription)
	assert.Equal(t, "CA", record.State)
	assert.Equal(t, 2, record.N10K)
	assert.Equal(t, 2, record.N8K)
	assert.Equal(t, 6, record.NTotalFilings)
	assert.Equal(t, 1, record.Tier) // 3571 falls in [2800,3600)
}

func TestFetchCompanyMetadataMissingSICDefaults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"name": "Shell Co", "sic": "", "filings": {"recent": {"form": []}}}`)
	})

	record, err := c.FetchCompanyMetadata(context.Background(), "999")
	require.NoError(t, err)
	assert.Equal(t, 0, record.SIC)
	assert.Equal(t, 2, record.Tier) // unknown SIC maps to the fallback tier
	assert.Equal(t, 0, record.NTotalFilings)
}

func TestFetchCompanyMetadataHTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.FetchCompanyMetadata(context.Background(), "123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestPadCIK(t *testing.T) {
	assert.Equal(t, "0000320193", PadCIK("320193"))
	assert.Equal(t, "0000320193", PadCIK("0000320193"))
	assert.Equal(t, "0000000001", PadCIK("1"))
}
