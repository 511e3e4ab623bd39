package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripdesk/trip-booking-backend/internal/models"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeEndDate(t *testing.T) {
	tests := []struct {
		name     string
		kind     models.RecurrenceKind
		start    string
		expected string
	}{
		{"Single Day", models.RecurrenceSingleDay, "2026-01-05", "2026-01-05"},
		{"Weekly", models.RecurrenceWeekly, "2026-01-05", "2026-01-11"},
		{"Monthly", models.RecurrenceMonthly, "2026-01-05", "2026-02-04"},
		{"Monthly Over Short Month", models.RecurrenceMonthly, "2026-01-31", "2026-03-02"},
		{"Yearly", models.RecurrenceYearly, "2026-01-05", "2027-01-04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end := ComputeEndDate(tt.kind, date(tt.start))
			assert.Equal(t, tt.expected, end.Format("2006-01-02"))
		})
	}
}

func TestOccursOn(t *testing.T) {
	t.Run("Single Day", func(t *testing.T) {
		template := &models.TripTemplate{
			RecurrenceKind: models.RecurrenceSingleDay,
			StartDate:      date("2026-01-05"),
			EndDate:        date("2026-01-05"),
		}

		assert.True(t, OccursOn(template, date("2026-01-05")))
		assert.False(t, OccursOn(template, date("2026-01-04")))
		assert.False(t, OccursOn(template, date("2026-01-06")))
	})

	t.Run("Weekly On Mondays And Fridays", func(t *testing.T) {
		// 2026-01-05 is a Monday
		template := &models.TripTemplate{
			RecurrenceKind: models.RecurrenceWeekly,
			RecurrenceDays: "Monday,Friday",
			StartDate:      date("2026-01-05"),
			EndDate:        date("2026-01-11"),
		}

		assert.True(t, OccursOn(template, date("2026-01-05")))  // Monday
		assert.False(t, OccursOn(template, date("2026-01-06"))) // Tuesday
		assert.True(t, OccursOn(template, date("2026-01-09")))  // Friday
		assert.False(t, OccursOn(template, date("2026-01-12"))) // Monday, past window
	})

	t.Run("Weekly With Empty Day Set Never Matches", func(t *testing.T) {
		template := &models.TripTemplate{
			RecurrenceKind: models.RecurrenceWeekly,
			RecurrenceDays: "",
			StartDate:      date("2026-01-05"),
			EndDate:        date("2026-01-11"),
		}

		for d := date("2026-01-05"); !d.After(date("2026-01-11")); d = d.AddDate(0, 0, 1) {
			assert.False(t, OccursOn(template, d))
		}
	})

	t.Run("Weekly With Malformed Day Set Never Matches", func(t *testing.T) {
		template := &models.TripTemplate{
			RecurrenceKind: models.RecurrenceWeekly,
			RecurrenceDays: "Monday,Funday",
			StartDate:      date("2026-01-05"),
			EndDate:        date("2026-01-11"),
		}

		assert.False(t, OccursOn(template, date("2026-01-05")))
	})

	t.Run("Monthly Matches Day Of Month", func(t *testing.T) {
		template := &models.TripTemplate{
			RecurrenceKind: models.RecurrenceMonthly,
			StartDate:      date("2026-01-05"),
			EndDate:        date("2026-02-04"),
		}

		assert.True(t, OccursOn(template, date("2026-01-05")))
		assert.False(t, OccursOn(template, date("2026-01-06")))
		// The next day-of-month hit lands one day past the window end
		assert.False(t, OccursOn(template, date("2026-02-05")))
	})

	t.Run("Yearly Matches Month And Day", func(t *testing.T) {
		template := &models.TripTemplate{
			RecurrenceKind: models.RecurrenceYearly,
			StartDate:      date("2026-01-05"),
			EndDate:        date("2027-01-04"),
		}

		assert.True(t, OccursOn(template, date("2026-01-05")))
		assert.False(t, OccursOn(template, date("2026-02-05")))
		// The anniversary falls one day past the window end
		assert.False(t, OccursOn(template, date("2027-01-05")))
	})

	t.Run("Before Window", func(t *testing.T) {
		template := &models.TripTemplate{
			RecurrenceKind: models.RecurrenceWeekly,
			RecurrenceDays: "Monday",
			StartDate:      date("2026-01-05"),
			EndDate:        date("2026-01-11"),
		}

		assert.False(t, OccursOn(template, date("2025-12-29")))
	})
}

func TestNextOccurrenceDates(t *testing.T) {
	t.Run("Weekly", func(t *testing.T) {
		template := &models.TripTemplate{
			RecurrenceKind: models.RecurrenceWeekly,
			RecurrenceDays: "Monday,Wednesday,Friday",
			StartDate:      date("2026-01-05"),
			EndDate:        date("2026-01-11"),
		}

		dates := NextOccurrenceDates(template, date("2026-01-01"), 10)
		require.Len(t, dates, 3)
		assert.Equal(t, "2026-01-05", dates[0].Format("2006-01-02"))
		assert.Equal(t, "2026-01-07", dates[1].Format("2006-01-02"))
		assert.Equal(t, "2026-01-09", dates[2].Format("2006-01-02"))
	})

	t.Run("Empty Day Set Terminates", func(t *testing.T) {
		template := &models.TripTemplate{
			RecurrenceKind: models.RecurrenceWeekly,
			RecurrenceDays: "",
			StartDate:      date("2026-01-05"),
			EndDate:        date("2026-01-11"),
		}

		dates := NextOccurrenceDates(template, date("2026-01-01"), 10)
		assert.Empty(t, dates)
	})

	t.Run("Respects Count Limit", func(t *testing.T) {
		template := &models.TripTemplate{
			RecurrenceKind: models.RecurrenceWeekly,
			RecurrenceDays: "Monday,Tuesday,Wednesday,Thursday,Friday,Saturday,Sunday",
			StartDate:      date("2026-01-05"),
			EndDate:        date("2026-01-11"),
		}

		dates := NextOccurrenceDates(template, date("2026-01-05"), 2)
		require.Len(t, dates, 2)
	})

	t.Run("Starts From Later Of From And Window Start", func(t *testing.T) {
		template := &models.TripTemplate{
			RecurrenceKind: models.RecurrenceWeekly,
			RecurrenceDays: "Wednesday",
			StartDate:      date("2026-01-05"),
			EndDate:        date("2026-01-11"),
		}

		dates := NextOccurrenceDates(template, date("2026-01-08"), 10)
		assert.Empty(t, dates) // the only Wednesday in window is Jan 7
	})
}
