package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/spellcheckd/internal/common"
	"github.com/dmitrijs2005/spellcheckd/internal/dbx"
	"github.com/dmitrijs2005/spellcheckd/internal/server/models"
)

// SQLRepository keeps the history in the queries table. The misspelled
// words are stored as a JSON array to preserve their order.
type SQLRepository struct {
	mu      sync.Mutex
	db      *sql.DB
	dialect dbx.Dialect
}

func NewSQLRepository(db *sql.DB, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Append(ctx context.Context, rec *models.QueryRecord) (*models.QueryRecord, error) {
	words, err := json.Marshal(nonNil(rec.Misspelled))
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := dbx.InTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) (int64, error) {
		if lock := r.dialect.LockTable("queries"); lock != "" {
			if _, err := tx.ExecContext(ctx, lock); err != nil {
				return 0, err
			}
		}
		var next int64
		if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM queries`).Scan(&next); err != nil {
			return 0, err
		}
		_, err := tx.ExecContext(ctx, r.dialect.Rebind(
			`INSERT INTO queries (id, username, submitted_text, misspelled, created_at) VALUES ($1, $2, $3, $4, $5)`),
			next, rec.UserName, rec.Text, string(words), rec.CreatedAt)
		return next, err
	})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	rec.ID = id
	return rec, nil
}

func (r *SQLRepository) ForUser(ctx context.Context, userName string) ([]models.QueryRecord, error) {
	query :=
		`SELECT id, username, submitted_text, misspelled, created_at FROM queries
		 WHERE username = $1
		 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), userName)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]models.QueryRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *SQLRepository) Get(ctx context.Context, id int64) (*models.QueryRecord, error) {
	query :=
		`SELECT id, username, submitted_text, misspelled, created_at FROM queries
		 WHERE id = $1`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, r.dialect.Rebind(query), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return rec, nil
}

// --- helpers below ---

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*models.QueryRecord, error) {
	rec := &models.QueryRecord{}
	var words string
	if err := s.Scan(&rec.ID, &rec.UserName, &rec.Text, &words, &rec.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := json.Unmarshal([]byte(words), &rec.Misspelled); err != nil {
		return nil, fmt.Errorf("db error: bad misspelled column for query %d: %w", rec.ID, err)
	}
	return rec, nil
}

func nonNil(words []string) []string {
	if words == nil {
		return []string{}
	}
	return words
}
