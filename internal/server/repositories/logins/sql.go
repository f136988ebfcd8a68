package logins

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/spellcheckd/internal/dbx"
	"github.com/dmitrijs2005/spellcheckd/internal/server/models"
)

// SQLRepository keeps the audit log in the logins table. Ids are assigned
// as MAX(id)+1 inside a transaction holding the table lock, and appends from
// this process are additionally serialized by mu.
type SQLRepository struct {
	mu      sync.Mutex
	db      *sql.DB
	dialect dbx.Dialect
}

func NewSQLRepository(db *sql.DB, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) lock(ctx context.Context, tx dbx.DBTX) error {
	if lock := r.dialect.LockTable("logins"); lock != "" {
		if _, err := tx.ExecContext(ctx, lock); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLRepository) RecordLogin(ctx context.Context, userName string, at time.Time) (*models.LoginRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := dbx.InTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) (int64, error) {
		if err := r.lock(ctx, tx); err != nil {
			return 0, err
		}
		var next int64
		if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM logins`).Scan(&next); err != nil {
			return 0, err
		}
		_, err := tx.ExecContext(ctx, r.dialect.Rebind(
			`INSERT INTO logins (id, username, login_time) VALUES ($1, $2, $3)`),
			next, userName, at)
		return next, err
	})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &models.LoginRecord{ID: id, UserName: userName, LoginTime: at}, nil
}

// RecordLogout finds the user's latest open record and closes it under the
// same table lock, so concurrent logouts close distinct records.
func (r *SQLRepository) RecordLogout(ctx context.Context, userName string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	closed, err := dbx.InTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) (bool, error) {
		if err := r.lock(ctx, tx); err != nil {
			return false, err
		}
		var id sql.NullInt64
		err := tx.QueryRowContext(ctx, r.dialect.Rebind(
			`SELECT MAX(id) FROM logins WHERE username = $1 AND logout_time IS NULL`),
			userName).Scan(&id)
		if err != nil {
			return false, err
		}
		if !id.Valid {
			return false, nil
		}
		res, err := tx.ExecContext(ctx, r.dialect.Rebind(
			`UPDATE logins SET logout_time = $1 WHERE id = $2`),
			at, id.Int64)
		if err != nil {
			return false, err
		}
		n, err := res.RowsAffected()
		return n > 0, err
	})
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return closed, nil
}

func (r *SQLRepository) ForUser(ctx context.Context, userName string) ([]models.LoginRecord, error) {
	query :=
		`SELECT id, username, login_time, logout_time FROM logins
		 WHERE username = $1
		 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), userName)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]models.LoginRecord, 0)
	for rows.Next() {
		var rec models.LoginRecord
		var logout sql.NullTime
		if err := rows.Scan(&rec.ID, &rec.UserName, &rec.LoginTime, &logout); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if logout.Valid {
			t := logout.Time
			rec.LogoutTime = &t
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
