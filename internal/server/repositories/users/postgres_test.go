package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/greeter/internal/common"
	"github.com/dmitrijs2005/greeter/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewPostgresRepository(db), mock
}

const (
	qNextID  = `^SELECT nextval\('users_id_seq'\)$`
	qFindAll = `(?s)^SELECT\s+id,\s*greeting\s+FROM\s+users\s+ORDER\s+BY\s+id\s*$`
	qInsert  = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*greeting\)\s*VALUES\s*\(\$1,\s*\$2\)\s*ON\s+CONFLICT\s*\(id\)\s*DO\s+NOTHING\s*$`
	qUpdate  = `(?s)^UPDATE\s+users\s+SET\s+greeting\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$1\s+RETURNING\s+id,\s*greeting\s*$`
	qDelete  = `^DELETE FROM users WHERE id = \$1$`
	qSetval  = `^SELECT setval\('users_id_seq', GREATEST\(\$1, \(SELECT last_value FROM users_id_seq\)\)\)$`
)

func TestPostgres_NextID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(qNextID).WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(int64(5)))

	id, err := repo.NextID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
}

func TestPostgres_NextID_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(qNextID).WillReturnError(errors.New("db down"))

	_, err := repo.NextID(context.Background())
	assert.ErrorContains(t, err, "db error: db down")
}

func TestPostgres_FindAll(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"id", "greeting"}).
		AddRow(int64(1), "Hello, Alice!").
		AddRow(int64(3), "Bob")
	mock.ExpectQuery(qFindAll).WillReturnRows(rows)

	got, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.User{{ID: 1, Greeting: "Hello, Alice!"}, {ID: 3, Greeting: "Bob"}}, got)
}

func TestPostgres_FindAll_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(qFindAll).WillReturnRows(sqlmock.NewRows([]string{"id", "greeting"}))

	got, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPostgres_FindAll_RowError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"id", "greeting"}).
		AddRow(int64(1), "a").
		RowError(0, errors.New("broken row"))
	mock.ExpectQuery(qFindAll).WillReturnRows(rows)

	_, err := repo.FindAll(context.Background())
	assert.ErrorContains(t, err, "broken row")
}

func TestPostgres_Add(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(qInsert).WithArgs(int64(1), "Hello, Alice!").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(qSetval).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Add(context.Background(), models.User{ID: 1, Greeting: "Hello, Alice!"})
	require.NoError(t, err)
	assert.Equal(t, models.User{ID: 1, Greeting: "Hello, Alice!"}, got)
}

func TestPostgres_Add_Conflict(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(qInsert).WithArgs(int64(1), "x").WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Add(context.Background(), models.User{ID: 1, Greeting: "x"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestPostgres_Add_AdvancesSequence(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(qInsert).WithArgs(int64(10), "x").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(qSetval).WithArgs(int64(10)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(qNextID).WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(int64(11)))

	_, err := repo.Add(context.Background(), models.User{ID: 10, Greeting: "x"})
	require.NoError(t, err)

	id, err := repo.NextID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
}

func TestPostgres_Add_SequenceError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(qInsert).WithArgs(int64(10), "x").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(qSetval).WithArgs(int64(10)).WillReturnError(errors.New("seq gone"))

	_, err := repo.Add(context.Background(), models.User{ID: 10, Greeting: "x"})
	assert.ErrorContains(t, err, "db error: seq gone")
}

func TestPostgres_Update(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(qUpdate).WithArgs(int64(1), "Bob").
		WillReturnRows(sqlmock.NewRows([]string{"id", "greeting"}).AddRow(int64(1), "Bob"))

	got, err := repo.Update(context.Background(), 1, "Bob")
	require.NoError(t, err)
	assert.Equal(t, models.User{ID: 1, Greeting: "Bob"}, got)
}

func TestPostgres_Update_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(qUpdate).WithArgs(int64(9), "Bob").WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), 9, "Bob")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgres_Update_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(qUpdate).WithArgs(int64(9), "Bob").WillReturnError(errors.New("db down"))

	_, err := repo.Update(context.Background(), 9, "Bob")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgres_Delete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(qDelete).WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(qDelete).WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Delete(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPostgres_Delete_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(qDelete).WithArgs(int64(2)).WillReturnError(errors.New("db down"))

	_, err := repo.Delete(context.Background(), 2)
	assert.ErrorContains(t, err, "db error")
}
