package queries

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/spellcheckd/internal/common"
	"github.com/dmitrijs2005/spellcheckd/internal/dbx"
	"github.com/dmitrijs2005/spellcheckd/internal/server/models"
	"github.com/dmitrijs2005/spellcheckd/internal/server/repositories/repotest"
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := repotest.NewMock(t)
	return NewSQLRepository(db, dbx.Postgres), mock
}

func TestAppend_Postgres(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec(`^LOCK TABLE queries IN SHARE ROW EXCLUSIVE MODE$`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`^SELECT COALESCE\(MAX\(id\), 0\) \+ 1 FROM queries$`).
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(1))
	mock.ExpectExec(`^INSERT INTO queries \(id, username, submitted_text, misspelled, created_at\) VALUES \(\$1, \$2, \$3, \$4, \$5\)$`).
		WithArgs(int64(1), "jonathan", "my dawg is kewl.", `["dawg","kewl"]`, now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	rec, err := repo.Append(context.Background(), &models.QueryRecord{
		UserName: "jonathan", Text: "my dawg is kewl.", Misspelled: []string{"dawg", "kewl"}, CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if rec.ID != 1 {
		t.Fatalf("want id 1, got %d", rec.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT id, username, submitted_text, misspelled, created_at FROM queries WHERE id = \$1$`).
		WithArgs(int64(5)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), 5)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestGet_CorruptWords(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`^SELECT id, username`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "submitted_text", "misspelled", "created_at"}).
			AddRow(5, "a", "t", "not json", time.Now()))

	if _, err := repo.Get(context.Background(), 5); err == nil {
		t.Fatal("expected error for corrupt misspelled column")
	}
}
