package dataset

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCompaniesCSVColumns(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCompaniesCSV(&buf, []CompanyRecord{{
		CIK: "0000320193", Name: "Apple Inc.", SIC: 3571,
		SICDescription: "Electronic Computers", State: "CA",
		N10K: 28, N8K: 120, NTotalFilings: 900, Tier: 1, Ticker: "AAPL",
	}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "cik,name,sic,sic_description,state,n_10k,n_8k,n_total_filings,tier,ticker", lines[0])
	assert.Equal(t, "0000320193,Apple Inc.,3571,Electronic Computers,CA,28,120,900,1,AAPL", lines[1])
}

func TestWriteLabeledCSVAppendsDisrupted(t *testing.T) {
	var buf bytes.Buffer
	err := WriteLabeledCSV(&buf, []LabeledCompany{
		{CompanyRecord: CompanyRecord{CIK: "1", Name: "Acme, Inc.", Tier: 2}, Disrupted: 1},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], ",disrupted"))
	// Comma in the name is quoted, label lands in the last column.
	assert.Equal(t, `1,"Acme, Inc.",0,,,0,0,0,2,,1`, lines[1])
}

func TestReadCompaniesCSVRoundTrip(t *testing.T) {
	companies := []CompanyRecord{
		{CIK: "0000000001", Name: "Acme Inc", SIC: 2100, SICDescription: "Tobacco",
			State: "DE", N10K: 3, N8K: 7, NTotalFilings: 40, Tier: 1, Ticker: "ACME"},
		{CIK: "0000000002", Name: "Beta LLC", Tier: 2},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCompaniesCSV(&buf, companies))

	got, err := ReadCompaniesCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, companies, got)
}

func TestReadCompaniesCSVRejectsEmpty(t *testing.T) {
	_, err := ReadCompaniesCSV(strings.NewReader(""))
	require.Error(t, err)
}
