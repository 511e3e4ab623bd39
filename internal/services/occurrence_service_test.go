package services

import (
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripdesk/trip-booking-backend/internal/database"
	"github.com/tripdesk/trip-booking-backend/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newServiceMockDB(t *testing.T) (*database.PostgresDB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &database.PostgresDB{DB: sqlx.NewDb(db, "sqlmock")}, mock
}

func templateRow(status, kind, days string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "pickup_city_id", "dropoff_city_id", "vehicle_id", "vehicle_type_id",
		"seat_capacity", "time_slot_id", "price", "recurrence_kind", "recurrence_days",
		"start_date", "end_date", "status", "created_at", "updated_at",
	}).AddRow(
		"template-1", "city-1", "city-2", "vehicle-1", "vt-1",
		14, "slot-1", 2500.0, kind, days,
		time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC),
		status, now, now,
	)
}

func TestOccurrenceServiceGetOrCreate(t *testing.T) {
	t.Run("Bad Date Format", func(t *testing.T) {
		db, _ := newServiceMockDB(t)
		svc := NewOccurrenceService(
			database.NewTripTemplateRepository(db),
			database.NewTripOccurrenceRepository(db),
			testLogger(),
		)

		_, err := svc.GetOrCreate("template-1", "05/01/2026")

		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "trip_date", validationErr.Field)
	})

	t.Run("Inactive Template", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		svc := NewOccurrenceService(
			database.NewTripTemplateRepository(db),
			database.NewTripOccurrenceRepository(db),
			testLogger(),
		)

		mock.ExpectQuery(`SELECT (.+) FROM trip_templates WHERE id`).
			WithArgs("template-1").
			WillReturnRows(templateRow("inactive", "weekly", "Monday"))

		_, err := svc.GetOrCreate("template-1", "2026-01-05")

		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "template_id", validationErr.Field)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Date Outside Recurrence", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		svc := NewOccurrenceService(
			database.NewTripTemplateRepository(db),
			database.NewTripOccurrenceRepository(db),
			testLogger(),
		)

		mock.ExpectQuery(`SELECT (.+) FROM trip_templates WHERE id`).
			WithArgs("template-1").
			WillReturnRows(templateRow("active", "weekly", "Monday"))

		// 2026-01-06 is a Tuesday
		_, err := svc.GetOrCreate("template-1", "2026-01-06")

		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "trip_date", validationErr.Field)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		svc := NewOccurrenceService(
			database.NewTripTemplateRepository(db),
			database.NewTripOccurrenceRepository(db),
			testLogger(),
		)

		tripDate := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM trip_templates WHERE id`).
			WithArgs("template-1").
			WillReturnRows(templateRow("active", "weekly", "Monday"))

		mock.ExpectQuery(`SELECT (.+) FROM trip_occurrences WHERE template_id`).
			WithArgs("template-1", tripDate).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "template_id", "trip_date", "booked_seats", "status", "created_at", "updated_at",
			}).AddRow("occ-1", "template-1", tripDate, 0, "active", now, now))

		occ, err := svc.GetOrCreate("template-1", "2026-01-05")
		require.NoError(t, err)
		assert.Equal(t, "occ-1", occ.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpcomingDates(t *testing.T) {
	db, mock := newServiceMockDB(t)
	svc := NewOccurrenceService(
		database.NewTripTemplateRepository(db),
		database.NewTripOccurrenceRepository(db),
		testLogger(),
	)

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM trip_templates WHERE id`).
		WithArgs("template-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "pickup_city_id", "dropoff_city_id", "vehicle_id", "vehicle_type_id",
			"seat_capacity", "time_slot_id", "price", "recurrence_kind", "recurrence_days",
			"start_date", "end_date", "status", "created_at", "updated_at",
		}).AddRow(
			"template-1", "city-1", "city-2", "vehicle-1", "vt-1",
			14, "slot-1", 2500.0, "single_day", "",
			time.Date(2020, 3, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2020, 3, 2, 0, 0, 0, 0, time.UTC),
			"active", now, now,
		))

	// Window ended long ago, so nothing upcoming
	dates, err := svc.UpcomingDates("template-1", 5)
	require.NoError(t, err)
	assert.Empty(t, dates)

	assert.NoError(t, mock.ExpectationsWereMet())
}
