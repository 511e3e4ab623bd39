package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripdesk/trip-booking-backend/internal/models"
)

func newMockDB(t *testing.T) (*PostgresDB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &PostgresDB{DB: sqlx.NewDb(db, "sqlmock")}, mock
}

func occurrenceColumns() []string {
	return []string{"id", "template_id", "trip_date", "booked_seats", "status", "created_at", "updated_at"}
}

func TestGetOrCreateOccurrence(t *testing.T) {
	tripDate := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	t.Run("Returns Existing Row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTripOccurrenceRepository(db)

		mock.ExpectQuery(`SELECT (.+) FROM trip_occurrences WHERE template_id`).
			WithArgs("template-1", tripDate).
			WillReturnRows(sqlmock.NewRows(occurrenceColumns()).
				AddRow("occ-1", "template-1", tripDate, 3, "active", now, now))

		occ, err := repo.GetOrCreate("template-1", tripDate)
		require.NoError(t, err)
		assert.Equal(t, "occ-1", occ.ID)
		assert.Equal(t, 3, occ.BookedSeats)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Materializes Missing Row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTripOccurrenceRepository(db)

		mock.ExpectQuery(`SELECT (.+) FROM trip_occurrences WHERE template_id`).
			WithArgs("template-1", tripDate).
			WillReturnError(sql.ErrNoRows)

		mock.ExpectQuery(`INSERT INTO trip_occurrences`).
			WithArgs(sqlmock.AnyArg(), "template-1", tripDate).
			WillReturnRows(sqlmock.NewRows(occurrenceColumns()).
				AddRow("occ-new", "template-1", tripDate, 0, "active", now, now))

		occ, err := repo.GetOrCreate("template-1", tripDate)
		require.NoError(t, err)
		assert.Equal(t, "occ-new", occ.ID)
		assert.Equal(t, 0, occ.BookedSeats)
		assert.Equal(t, models.OccurrenceStatusActive, occ.Status)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Lost Insert Race Refetches Winner", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTripOccurrenceRepository(db)

		mock.ExpectQuery(`SELECT (.+) FROM trip_occurrences WHERE template_id`).
			WithArgs("template-1", tripDate).
			WillReturnError(sql.ErrNoRows)

		// ON CONFLICT DO NOTHING returns no rows for the loser
		mock.ExpectQuery(`INSERT INTO trip_occurrences`).
			WithArgs(sqlmock.AnyArg(), "template-1", tripDate).
			WillReturnRows(sqlmock.NewRows(occurrenceColumns()))

		mock.ExpectQuery(`SELECT (.+) FROM trip_occurrences WHERE template_id`).
			WithArgs("template-1", tripDate).
			WillReturnRows(sqlmock.NewRows(occurrenceColumns()).
				AddRow("occ-winner", "template-1", tripDate, 0, "active", now, now))

		occ, err := repo.GetOrCreate("template-1", tripDate)
		require.NoError(t, err)
		assert.Equal(t, "occ-winner", occ.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOccurrenceSetStatus(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTripOccurrenceRepository(db)

		mock.ExpectExec(`UPDATE trip_occurrences`).
			WithArgs("occ-1", models.OccurrenceStatusCancelled).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetStatus("occ-1", models.OccurrenceStatusCancelled)
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTripOccurrenceRepository(db)

		mock.ExpectExec(`UPDATE trip_occurrences`).
			WithArgs("missing", models.OccurrenceStatusCancelled).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetStatus("missing", models.OccurrenceStatusCancelled)
		assert.ErrorIs(t, err, models.ErrNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListUpcoming(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTripOccurrenceRepository(db)

	tripDate := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	columns := []string{
		"id", "template_id", "trip_date", "pickup_city", "dropoff_city",
		"departure_time", "price", "seat_capacity", "booked_seats", "status",
	}

	t.Run("With Filters", func(t *testing.T) {
		from := tripDate

		mock.ExpectQuery(`SELECT o\.id, o\.template_id, o\.trip_date`).
			WithArgs("template-1", from, 50).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("occ-1", "template-1", tripDate, "Colombo", "Kandy",
					"08:30:00", 2500.0, 14, 5, "active"))

		summaries, err := repo.ListUpcoming(models.OccurrenceFilters{
			TemplateID: "template-1",
			FromDate:   &from,
		})
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, "Colombo", summaries[0].PickupCity)
		assert.Equal(t, 5, summaries[0].BookedSeats)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
