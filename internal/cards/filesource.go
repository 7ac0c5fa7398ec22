package cards

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileSource loads symbol data from JSON files on disk. Each symbol
// lives in <dir>/<SYMBOL>.json and matches the SymbolData shape.
type FileSource struct {
	dir string
}

// NewFileSource creates a file-backed symbol data source.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Fetch loads the data file for a symbol.
func (s *FileSource) Fetch(ctx context.Context, symbol string) (SymbolData, error) {
	path := filepath.Join(s.dir, symbol+".json")

	raw, err := os.ReadFile(path)
	if err != nil {
		return SymbolData{}, fmt.Errorf("read symbol data %s: %w", symbol, err)
	}

	var data SymbolData
	if err := json.Unmarshal(raw, &data); err != nil {
		return SymbolData{}, fmt.Errorf("parse symbol data %s: %w", symbol, err)
	}

	if data.Symbol == "" {
		data.Symbol = symbol
	}
	if data.Symbol != symbol {
		return SymbolData{}, fmt.Errorf("symbol data %s declares symbol %q", symbol, data.Symbol)
	}

	return data, nil
}
