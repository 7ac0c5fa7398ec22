package refdata

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fundTableHTML = `
<html><body>
<table class="data-table">
<thead><tr><th>Ticker</th><th>Name</th><th>Category</th><th>Expense</th><th>AUM ($M)</th></tr></thead>
<tbody>
<tr><td>VTSAX</td><td>Vanguard Total Stock Market</td><td>US Equity</td><td>0.04%</td><td>1,300,000</td></tr>
<tr><td>VBTLX</td><td>Vanguard Total Bond Market</td><td>US Bond</td><td>0.05%</td><td>300,000</td></tr>
<tr><td></td><td>Broken row</td><td>X</td><td>0.10%</td><td>1</td></tr>
<tr><td>BADNUM</td><td>Bad numbers</td><td>X</td><td>n/a</td><td>1</td></tr>
</tbody>
</table>
</body></html>`

func TestParseFundTable(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fundTableHTML))
	require.NoError(t, err)

	funds, skipped := parseFundTable(doc)

	require.Len(t, funds, 2)
	assert.Equal(t, 2, skipped)

	assert.Equal(t, "VTSAX", funds[0].Ticker)
	assert.Equal(t, "US Equity", funds[0].Category)
	assert.InDelta(t, 0.0004, funds[0].ExpenseRatio, 1e-9)
	assert.InDelta(t, 1_300_000.0, funds[0].AUMMillions, 1e-9)
}

func TestParsePct(t *testing.T) {
	v, err := parsePct(" 0.25% ")
	require.NoError(t, err)
	assert.InDelta(t, 0.0025, v, 1e-9)

	_, err = parsePct("n/a")
	assert.Error(t, err)
}

func TestParseNumber(t *testing.T) {
	v, err := parseNumber("1,234.5")
	require.NoError(t, err)
	assert.InDelta(t, 1234.5, v, 1e-9)
}
