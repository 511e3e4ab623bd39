package services

import (
	"time"

	"github.com/tripdesk/trip-booking-backend/internal/models"
)

// The recurrence expander is pure: it decides whether a template has
// an occurrence on a date and derives the validity window end. It is
// used both to validate requested booking dates and to enumerate
// upcoming dates for display.

// ComputeEndDate derives the validity window end from the recurrence
// kind and start date. Monthly and yearly windows span exactly one
// period minus a day, so those kinds produce a single effective
// occurrence inside their own window.
func ComputeEndDate(kind models.RecurrenceKind, startDate time.Time) time.Time {
	start := dateOnly(startDate)
	switch kind {
	case models.RecurrenceSingleDay:
		return start
	case models.RecurrenceWeekly:
		return start.AddDate(0, 0, 6)
	case models.RecurrenceMonthly:
		return start.AddDate(0, 1, -1)
	case models.RecurrenceYearly:
		return start.AddDate(1, 0, -1)
	default:
		return start
	}
}

// OccursOn reports whether the template has an occurrence on the given
// date. A weekly template with an empty day-set never matches; that is
// a configuration the operator UI allows, so it stays explicit here
// rather than being corrected.
func OccursOn(template *models.TripTemplate, date time.Time) bool {
	day := dateOnly(date)
	start := dateOnly(template.StartDate)
	end := dateOnly(template.EndDate)

	if day.Before(start) || day.After(end) {
		return false
	}

	switch template.RecurrenceKind {
	case models.RecurrenceSingleDay:
		return day.Equal(start)
	case models.RecurrenceWeekly:
		days, err := template.DaySet()
		if err != nil {
			return false
		}
		return days[day.Weekday()]
	case models.RecurrenceMonthly:
		return day.Day() == start.Day()
	case models.RecurrenceYearly:
		return day.Month() == start.Month() && day.Day() == start.Day()
	default:
		return false
	}
}

// NextOccurrenceDates enumerates up to n occurrence dates on or after
// from, for dashboard display. The scan is bounded by the template's
// validity window so a weekly template with no day-set terminates.
func NextOccurrenceDates(template *models.TripTemplate, from time.Time, n int) []time.Time {
	dates := make([]time.Time, 0, n)

	current := dateOnly(from)
	if start := dateOnly(template.StartDate); current.Before(start) {
		current = start
	}
	end := dateOnly(template.EndDate)

	for len(dates) < n && !current.After(end) {
		if OccursOn(template, current) {
			dates = append(dates, current)
		}
		current = current.AddDate(0, 0, 1)
	}

	return dates
}

// dateOnly truncates a timestamp to its calendar date in UTC
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
