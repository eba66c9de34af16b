package calendar

import (
	"time"

	"github.com/fkmjec/prahadlo/internal/models"
)

// Active implements spec.md §4.1's service_active predicate: true iff
// start_date <= date <= end_date and (weekday flag set) XOR (a matching
// exception is present). An "added" exception forces true and a "removed"
// exception forces false, overriding the weekday bit; a date outside the
// range is inactive whatever its exceptions.
func Active(svc models.Service, date models.Date) bool {
	if date < svc.StartDate || date > svc.EndDate {
		return false
	}

	for _, exc := range svc.Exceptions {
		if exc.Date != date {
			continue
		}
		return exc.ExceptionType == models.ExceptionAdded
	}

	return svc.Weekday[weekdayOf(date)]
}

// weekdayOf returns a time.Weekday-compatible index (Sunday=0) for a Date,
// the same stdlib time.Weekday() the teacher's schedule handlers indexed
// its own dayColumns table with. Constructing at midnight UTC keeps the
// result a pure function of the calendar date, unaffected by the host's
// local timezone or DST.
func weekdayOf(d models.Date) int {
	year := int(d) / 10000
	month := int(d) / 100 % 100
	day := int(d) % 100
	return int(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday())
}
