package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type QuoteRepo struct {
	db DBTX
}

func NewQuoteRepo(db DBTX) *QuoteRepo {
	return &QuoteRepo{db: db}
}

// Random returns one quote, optionally limited to the given traditions.
// Returns nil when no quote matches.
func (r *QuoteRepo) Random(ctx context.Context, traditions []string) (*Quote, error) {
	query := `SELECT id, quote, author, source, tradition FROM wisdom_quotes`
	var args []any
	if len(traditions) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(traditions)), ", ")
		query += ` WHERE tradition IN (` + placeholders + `)`
		for _, t := range traditions {
			args = append(args, t)
		}
	}
	query += ` ORDER BY RANDOM() LIMIT 1`

	row := r.db.QueryRowContext(ctx, query, args...)

	var q Quote
	var author, source sql.NullString
	if err := row.Scan(&q.ID, &q.Text, &author, &source, &q.Tradition); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("quote random: %w", err)
	}
	if author.Valid {
		v := author.String
		q.Author = &v
	}
	if source.Valid {
		v := source.String
		q.Source = &v
	}
	return &q, nil
}
