package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"eventscatalogue/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestBookingRepository_Create(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		booking *domain.Booking
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name:    "success",
			booking: domain.NewBooking("ev-1", "summer-fest", "jane@example.com"),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO bookings`).
					WithArgs("ev-1", "summer-fest", "jane@example.com").
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("bk-1", created))
			},
			wantID: "bk-1",
		},
		{
			name:    "duplicate attendee returns ErrConflict",
			booking: domain.NewBooking("ev-1", "summer-fest", "jane@example.com"),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO bookings`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrConflict,
		},
		{
			name:    "db error",
			booking: domain.NewBooking("ev-1", "summer-fest", "jane@example.com"),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO bookings`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewBookingRepository(db)
			err = repo.Create(ctx, tt.booking)
			if tt.wantErr != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.booking.ID)
			require.Equal(t, created, tt.booking.CreatedAt)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_GetByEventAndEmail(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, slug, email, created_at`).
			WithArgs("ev-1", "jane@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "slug", "email", "created_at"}).
				AddRow("bk-1", "ev-1", "summer-fest", "jane@example.com", created))

		repo := NewBookingRepository(db)
		b, err := repo.GetByEventAndEmail(ctx, "ev-1", "jane@example.com")
		require.NoError(t, err)
		require.Equal(t, "bk-1", b.ID)
		require.Equal(t, "summer-fest", b.Slug)
	})

	t.Run("no rows returns ErrNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, slug, email, created_at`).
			WithArgs("ev-1", "nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		repo := NewBookingRepository(db)
		_, err = repo.GetByEventAndEmail(ctx, "ev-1", "nobody@example.com")
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestBookingRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, event_id, slug, email, created_at(.|\n)*LIMIT \$2 OFFSET \$3`).
		WithArgs("ev-1", 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "slug", "email", "created_at"}).
			AddRow("bk-2", "ev-1", "summer-fest", "b@example.com", created).
			AddRow("bk-1", "ev-1", "summer-fest", "a@example.com", created))

	repo := NewBookingRepository(db)
	bookings, err := repo.ListByEventID(ctx, "ev-1", domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	require.Equal(t, "bk-2", bookings[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_CountByEventID(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	repo := NewBookingRepository(db)
	count, err := repo.CountByEventID(ctx, "ev-1")
	require.NoError(t, err)
	require.Equal(t, 7, count)
}
