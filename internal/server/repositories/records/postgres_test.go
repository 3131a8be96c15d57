package records

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+records\s*\(user_id,\s*start_time,\s*end_time,\s*duration\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id,\s*created_at\s*$`

	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(5 * time.Minute)

	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), time.Now())
	mock.ExpectQuery(q).
		WithArgs(int64(1), start, end, int64(300)).
		WillReturnRows(rows)

	rec := &models.Record{UserID: 1, StartTime: start, EndTime: end, Duration: 300}
	got, err := repo.Create(context.Background(), rec)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 7 || got.Duration != 300 {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+records`

	mock.ExpectQuery(q).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Record{UserID: 1})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestListByUser_OrderedQuery(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*user_id,\s*start_time,\s*end_time,\s*duration,\s*created_at\s+FROM\s+records\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+start_time\s+DESC\s*$`

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "start_time", "end_time", "duration", "created_at"}).
		AddRow(int64(2), int64(1), now, now.Add(time.Minute), int64(60), now).
		AddRow(int64(1), int64(1), now.Add(-time.Hour), now.Add(-time.Hour+time.Minute), int64(60), now)
	mock.ExpectQuery(q).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 1 {
		t.Fatalf("unexpected records: %+v", got)
	}
}

func TestListByUser_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*user_id,.*FROM\s+records`

	mock.ExpectQuery(q).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "start_time", "end_time", "duration", "created_at"}))

	got, err := repo.ListByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+records\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s*$`

	mock.ExpectExec(q).
		WithArgs(int64(7), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 1, 7); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_NotOwnedOrMissing(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+records\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s*$`

	mock.ExpectExec(q).
		WithArgs(int64(7), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 2, 7)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
