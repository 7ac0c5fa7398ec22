package cards

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSourceFetch(t *testing.T) {
	dir := t.TempDir()

	payload := `{
		"symbol": "AAPL",
		"prices": [
			{"date": "2026-08-28T00:00:00Z", "close": 230.5, "volume": 1000},
			{"date": "2026-08-27T00:00:00Z", "close": 228.1, "volume": 1200}
		]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "AAPL.json"), []byte(payload), 0o644))

	source := NewFileSource(dir)
	data, err := source.Fetch(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", data.Symbol)
	assert.Len(t, data.Prices, 2)
	assert.Equal(t, 230.5, data.Prices[0].Close)
}

func TestFileSourceMissingFile(t *testing.T) {
	source := NewFileSource(t.TempDir())

	_, err := source.Fetch(context.Background(), "MSFT")
	assert.Error(t, err)
}

func TestFileSourceSymbolMismatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "AAPL.json"), []byte(`{"symbol":"TSLA"}`), 0o644))

	source := NewFileSource(dir)
	_, err := source.Fetch(context.Background(), "AAPL")
	assert.Error(t, err)
}
