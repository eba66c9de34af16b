// Package calendar implements the time-of-day and service-date primitives
// of spec.md §4.1: GTFS "HH:MM:SS" parsing (hours may exceed 23 for
// post-midnight trips), "YYYYMMDD" date parsing, and the service-active
// predicate combining calendar.txt weekday flags with calendar_dates.txt
// exceptions.
package calendar

import (
	"strconv"
	"strings"

	"github.com/fkmjec/prahadlo/internal/models"
	"github.com/fkmjec/prahadlo/internal/txerr"
)

// ParseTime parses a GTFS "H:MM:SS" or "HH:MM:SS" string into seconds since
// midnight. Hours may be >= 24 for trips that run past midnight; spec.md
// §3.1 bounds the result to [0, 172800).
func ParseTime(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, txerr.Newf(txerr.MalformedTime, "invalid time %q: expected HH:MM:SS", s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0, txerr.Newf(txerr.MalformedTime, "invalid hours in %q", s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, txerr.Newf(txerr.MalformedTime, "invalid minutes in %q", s)
	}
	seconds, err := strconv.Atoi(parts[2])
	if err != nil || seconds < 0 || seconds > 59 {
		return 0, txerr.Newf(txerr.MalformedTime, "invalid seconds in %q", s)
	}

	total := hours*3600 + minutes*60 + seconds
	if total < 0 || total >= 172800 {
		return 0, txerr.Newf(txerr.MalformedTime, "time %q out of the two-day range", s)
	}
	return total, nil
}

// ParseDate parses a GTFS "YYYYMMDD" string into a Date, rejecting
// impossible calendar dates (e.g. month 13, Feb 30).
func ParseDate(s string) (models.Date, error) {
	if len(s) != 8 {
		return 0, txerr.Newf(txerr.MalformedDate, "invalid date %q: expected YYYYMMDD", s)
	}
	year, errY := strconv.Atoi(s[0:4])
	month, errM := strconv.Atoi(s[4:6])
	day, errD := strconv.Atoi(s[6:8])
	if errY != nil || errM != nil || errD != nil {
		return 0, txerr.Newf(txerr.MalformedDate, "invalid date %q: non-numeric", s)
	}
	if month < 1 || month > 12 {
		return 0, txerr.Newf(txerr.MalformedDate, "invalid date %q: month out of range", s)
	}
	if day < 1 || day > daysInMonth(year, month) {
		return 0, txerr.Newf(txerr.MalformedDate, "invalid date %q: day out of range", s)
	}
	return models.Date(year*10000 + month*100 + day), nil
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
