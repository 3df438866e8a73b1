package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"chirp/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockDB wires gorm onto sqlmock so tests can pin the exact SQL the
// repository emits against Postgres.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByLoginID_SQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "login_id", "username", "email"}).
			AddRow(1, "alice01", "alice", "alice@example.com")
		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT * FROM "users" WHERE login_id = $1 ORDER BY "users"."id" LIMIT $2`)).
			WithArgs("alice01", 1).
			WillReturnRows(rows)

		user, err := repo.GetByLoginID(ctx, "alice01")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "alice", user.Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing is nil without error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT * FROM "users" WHERE login_id = $1 ORDER BY "users"."id" LIMIT $2`)).
			WithArgs("nobody", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.GetByLoginID(ctx, "nobody")
		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT * FROM "users" WHERE login_id = $1 ORDER BY "users"."id" LIMIT $2`)).
			WithArgs("alice01", 1).
			WillReturnError(errors.New("connection timeout"))

		user, err := repo.GetByLoginID(ctx, "alice01")
		assert.Nil(t, user)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeInternal, appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_CountLikedPosts_SQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT count(*) FROM "post_likes" WHERE user_id = $1`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountLikedPosts(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdatePassword_SQL(t *testing.T) {
	ctx := context.Background()

	t.Run("below the retention limit", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT count(*) FROM "password_histories" WHERE user_id = $1`)).
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery(regexp.QuoteMeta(
			`INSERT INTO "password_histories" ("user_id","password","created_at") VALUES ($1,$2,$3) RETURNING "id"`)).
			WithArgs(7, "old-hash", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
		mock.ExpectExec(regexp.QuoteMeta(
			`UPDATE "users" SET "password"=$1,"updated_at"=$2 WHERE id = $3`)).
			WithArgs("new-hash", sqlmock.AnyArg(), 7).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.UpdatePassword(ctx, 7, "old-hash", "new-hash")
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("at the limit the oldest entry is evicted", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT count(*) FROM "password_histories" WHERE user_id = $1`)).
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(models.PasswordHistoryLimit))
		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT * FROM "password_histories" WHERE user_id = $1 ORDER BY id ASC,"password_histories"."id" LIMIT $2`)).
			WithArgs(7, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "password"}).AddRow(1, 7, "stale-hash"))
		mock.ExpectExec(regexp.QuoteMeta(
			`DELETE FROM "password_histories" WHERE "password_histories"."id" = $1`)).
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(regexp.QuoteMeta(
			`INSERT INTO "password_histories" ("user_id","password","created_at") VALUES ($1,$2,$3) RETURNING "id"`)).
			WithArgs(7, "old-hash", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
		mock.ExpectExec(regexp.QuoteMeta(
			`UPDATE "users" SET "password"=$1,"updated_at"=$2 WHERE id = $3`)).
			WithArgs("new-hash", sqlmock.AnyArg(), 7).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.UpdatePassword(ctx, 7, "old-hash", "new-hash")
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a failed update rolls back", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT count(*) FROM "password_histories" WHERE user_id = $1`)).
			WithArgs(7).
			WillReturnError(errors.New("connection timeout"))
		mock.ExpectRollback()

		err := repo.UpdatePassword(ctx, 7, "old-hash", "new-hash")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeInternal, appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
