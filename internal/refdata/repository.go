package refdata

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is the reference-dataset store.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new reference data repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListFunds retrieves the fund table, optionally filtered by category.
func (r *Repository) ListFunds(ctx context.Context, category string) ([]Fund, error) {
	query := `
		SELECT ticker, name, category, expense_ratio, aum_millions, updated_at
		FROM refdata.funds
		WHERE ($1 = '' OR category = $1)
		ORDER BY ticker
	`

	rows, err := r.pool.Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("list funds: %w", err)
	}
	defer rows.Close()

	var funds []Fund
	for rows.Next() {
		var f Fund
		if err := rows.Scan(&f.Ticker, &f.Name, &f.Category, &f.ExpenseRatio, &f.AUMMillions, &f.UpdatedAt); err != nil {
			return nil, err
		}
		funds = append(funds, f)
	}
	return funds, rows.Err()
}

// UpsertFunds replaces fund rows by ticker inside one transaction, so a
// half-finished import never leaves a mixed table.
func (r *Repository) UpsertFunds(ctx context.Context, funds []Fund) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO refdata.funds (ticker, name, category, expense_ratio, aum_millions, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (ticker) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			expense_ratio = EXCLUDED.expense_ratio,
			aum_millions = EXCLUDED.aum_millions,
			updated_at = EXCLUDED.updated_at
	`

	for _, f := range funds {
		if _, err := tx.Exec(ctx, query, f.Ticker, f.Name, f.Category, f.ExpenseRatio, f.AUMMillions, f.UpdatedAt); err != nil {
			return fmt.Errorf("upsert fund %s: %w", f.Ticker, err)
		}
	}

	return tx.Commit(ctx)
}

// ListConcepts retrieves the concept encyclopedia.
func (r *Repository) ListConcepts(ctx context.Context) ([]Concept, error) {
	query := `
		SELECT slug, term, summary, category
		FROM refdata.concepts
		ORDER BY term
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list concepts: %w", err)
	}
	defer rows.Close()

	var concepts []Concept
	for rows.Next() {
		var c Concept
		if err := rows.Scan(&c.Slug, &c.Term, &c.Summary, &c.Category); err != nil {
			return nil, err
		}
		concepts = append(concepts, c)
	}
	return concepts, rows.Err()
}

// ListLessons retrieves the curriculum in course order.
func (r *Repository) ListLessons(ctx context.Context) ([]Lesson, error) {
	query := `
		SELECT slug, title, level, ordinal, concept_slugs
		FROM refdata.lessons
		ORDER BY ordinal
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	var lessons []Lesson
	for rows.Next() {
		var l Lesson
		if err := rows.Scan(&l.Slug, &l.Title, &l.Level, &l.Ordinal, &l.ConceptSlugs); err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}
