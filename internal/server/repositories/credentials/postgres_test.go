package credentials

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/julinuzzo19/ecommerce-auth-service/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const insertQuery = `(?s)^INSERT\s+INTO\s+credentials\s*\(id,\s*user_id,\s*password_hash\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+created_at\s*$`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"created_at"}).AddRow(now)
	mock.ExpectQuery(insertQuery).
		WithArgs(sqlmock.AnyArg(), "user-1", "salt:hash").
		WillReturnRows(rows)

	got, err := repo.Create(context.Background(), "user-1", "salt:hash")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID == "" {
		t.Fatalf("expected generated id")
	}
	if got.UserID != "user-1" || got.PasswordHash != "salt:hash" {
		t.Fatalf("unexpected credential: %+v", got)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("created_at: got %v want %v", got.CreatedAt, now)
	}
}

func TestCreate_DuplicateUserID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).
		WithArgs(sqlmock.AnyArg(), "user-1", "salt:hash").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	_, err := repo.Create(context.Background(), "user-1", "salt:hash")
	if !errors.Is(err, common.ErrDuplicateCredential) {
		t.Fatalf("expected ErrDuplicateCredential, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).
		WithArgs(sqlmock.AnyArg(), "user-1", "salt:hash").
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), "user-1", "salt:hash")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByUserID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*user_id,\s*password_hash,\s*created_at\s+FROM\s+credentials\s+WHERE\s+user_id\s*=\s*\$1\s*$`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "password_hash", "created_at"}).
		AddRow("c-1", "user-1", "salt:hash", now)
	mock.ExpectQuery(q).
		WithArgs("user-1").
		WillReturnRows(rows)

	got, err := repo.GetByUserID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetByUserID error: %v", err)
	}
	if got.ID != "c-1" || got.UserID != "user-1" || got.PasswordHash != "salt:hash" {
		t.Fatalf("unexpected credential: %+v", got)
	}
}

func TestGetByUserID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*user_id,\s*password_hash,\s*created_at\s+FROM\s+credentials`

	mock.ExpectQuery(q).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUserID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}
