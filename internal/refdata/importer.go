package refdata

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/vivmac33/marketprism/pkg/httputil"
	"github.com/vivmac33/marketprism/pkg/logger"
)

// Importer scrapes the fund reference table from an HTML source and
// loads it into the repository. It runs as a one-shot CLI command, not
// in the serving path.
type Importer struct {
	httpClient *httputil.Client
	repo       *Repository
	logger     *logger.Logger
}

// NewImporter creates a fund table importer.
func NewImporter(httpClient *httputil.Client, repo *Repository, log *logger.Logger) *Importer {
	return &Importer{
		httpClient: httpClient,
		repo:       repo,
		logger:     log,
	}
}

// ImportFunds fetches the fund table page, parses it and upserts the
// rows. Rows that do not parse are skipped and counted, not fatal.
func (i *Importer) ImportFunds(ctx context.Context, sourceURL string) (int, error) {
	if sourceURL == "" {
		return 0, fmt.Errorf("fund source URL is not configured")
	}

	resp, err := i.httpClient.Get(ctx, sourceURL)
	if err != nil {
		return 0, fmt.Errorf("fetch fund table: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("parse fund table page: %w", err)
	}

	funds, skipped := parseFundTable(doc)
	if len(funds) == 0 {
		return 0, fmt.Errorf("no fund rows found at %s", sourceURL)
	}

	if err := i.repo.UpsertFunds(ctx, funds); err != nil {
		return 0, err
	}

	i.logger.WithFields(map[string]interface{}{
		"imported": len(funds),
		"skipped":  skipped,
		"source":   sourceURL,
	}).Info("Fund table imported")

	return len(funds), nil
}

// parseFundTable extracts fund rows from the first table with a
// data-table class. Expected columns: ticker, name, category, expense
// ratio, AUM in millions.
func parseFundTable(doc *goquery.Document) ([]Fund, int) {
	var funds []Fund
	skipped := 0
	now := time.Now().UTC()

	doc.Find("table.data-table tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 5 {
			skipped++
			return
		}

		ticker := strings.TrimSpace(cells.Eq(0).Text())
		name := strings.TrimSpace(cells.Eq(1).Text())
		if ticker == "" || name == "" {
			skipped++
			return
		}

		expense, err := parsePct(cells.Eq(3).Text())
		if err != nil {
			skipped++
			return
		}
		aum, err := parseNumber(cells.Eq(4).Text())
		if err != nil {
			skipped++
			return
		}

		funds = append(funds, Fund{
			Ticker:       ticker,
			Name:         name,
			Category:     strings.TrimSpace(cells.Eq(2).Text()),
			ExpenseRatio: expense,
			AUMMillions:  aum,
			UpdatedAt:    now,
		})
	})

	return funds, skipped
}

func parsePct(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return v / 100, nil
}

func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	return strconv.ParseFloat(s, 64)
}
