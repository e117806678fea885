package waitlist

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viewmark/viewmark/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestWaitlistRepository_SQLite(t *testing.T) {
	ctx := context.Background()

	t.Run("creates entry", func(t *testing.T) {
		repo := NewWaitlistRepository(newTestDB(t))

		entry, err := repo.CreateEntry(ctx, &models.WaitlistEmail{Email: "ada@example.com"})
		require.NoError(t, err)
		assert.NotZero(t, entry.ID)
		assert.False(t, entry.CreatedAt.IsZero())
	})

	t.Run("duplicate maps to already registered", func(t *testing.T) {
		repo := NewWaitlistRepository(newTestDB(t))

		_, err := repo.CreateEntry(ctx, &models.WaitlistEmail{Email: "ada@example.com"})
		require.NoError(t, err)

		_, err = repo.CreateEntry(ctx, &models.WaitlistEmail{Email: "ada@example.com"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)
	})

	t.Run("records signup interaction", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewWaitlistRepository(db)

		email := "ada@example.com"
		require.NoError(t, repo.RecordSignup(ctx, &models.UserInteraction{
			InteractionType: models.InteractionTypeEmailSignup,
			Email:           &email,
		}))

		var rows []models.UserInteraction
		require.NoError(t, db.Find(&rows).Error)
		require.Len(t, rows, 1)
		assert.Equal(t, models.InteractionTypeEmailSignup, rows[0].InteractionType)
		require.NotNil(t, rows[0].Email)
		assert.Equal(t, email, *rows[0].Email)
	})
}

func newPostgresMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

var insertWaitlistEmail = regexp.QuoteMeta(`INSERT INTO "waitlist_emails"`)

func TestWaitlistRepository_Postgres(t *testing.T) {
	ctx := context.Background()

	t.Run("unique violation on the email constraint is a conflict", func(t *testing.T) {
		db, mock := newPostgresMock(t)
		repo := NewWaitlistRepository(db)

		mock.ExpectQuery(insertWaitlistEmail).
			WithArgs("ada@example.com", sqlmock.AnyArg()).
			WillReturnError(&pgconn.PgError{
				Code:           "23505",
				ConstraintName: models.WaitlistEmailConstraint,
				Message:        `duplicate key value violates unique constraint "waitlist_emails_email_key"`,
			})

		_, err := repo.CreateEntry(ctx, &models.WaitlistEmail{Email: "ada@example.com"})

		assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation on another constraint is a save failure", func(t *testing.T) {
		db, mock := newPostgresMock(t)
		repo := NewWaitlistRepository(db)

		mock.ExpectQuery(insertWaitlistEmail).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "waitlist_emails_pkey"})

		_, err := repo.CreateEntry(ctx, &models.WaitlistEmail{Email: "ada@example.com"})

		assert.ErrorIs(t, err, ErrSaveFailed)
		assert.NotErrorIs(t, err, ErrEmailAlreadyRegistered)
	})

	t.Run("other store errors are save failures", func(t *testing.T) {
		db, mock := newPostgresMock(t)
		repo := NewWaitlistRepository(db)

		mock.ExpectQuery(insertWaitlistEmail).WillReturnError(errors.New("connection reset by peer"))

		_, err := repo.CreateEntry(ctx, &models.WaitlistEmail{Email: "ada@example.com"})

		assert.ErrorIs(t, err, ErrSaveFailed)
	})

	t.Run("not-null violation is a save failure", func(t *testing.T) {
		db, mock := newPostgresMock(t)
		repo := NewWaitlistRepository(db)

		mock.ExpectQuery(insertWaitlistEmail).WillReturnError(&pgconn.PgError{Code: "23502"})

		_, err := repo.CreateEntry(ctx, &models.WaitlistEmail{Email: "ada@example.com"})

		assert.ErrorIs(t, err, ErrSaveFailed)
	})
}
