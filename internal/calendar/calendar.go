package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Date is a proleptic Gregorian calendar date. All arithmetic in this
// package treats dates as UTC; there is no timezone concept beyond
// "seconds since the Unix epoch".
type Date struct {
	Year  int
	Month int
	Day   int
}

// ErrDateOutOfRange is returned when date arithmetic would land before
// 1970-01-01.
var ErrDateOutOfRange = errors.New("date out of range: before 1970-01-01")

// InvalidFormatError reports a timestamp string that could not be parsed.
type InvalidFormatError struct {
	Input string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid timestamp format: %q", e.Input)
}

var monthLengths = [2][12]int{
	{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31},
	{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31},
}

func isLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

func yearLength(year int) int {
	if isLeapYear(year) {
		return 366
	}
	return 365
}

func leapIndex(year int) int {
	if isLeapYear(year) {
		return 1
	}
	return 0
}

// EpochDaysToDate converts a non-negative day count since 1970-01-01 to a
// calendar date. Day 0 is 1970-01-01.
func EpochDaysToDate(days int) Date {
	year := 1970
	for days >= yearLength(year) {
		days -= yearLength(year)
		year++
	}

	month := 0
	for days >= monthLengths[leapIndex(year)][month] {
		days -= monthLengths[leapIndex(year)][month]
		month++
	}

	return Date{Year: year, Month: month + 1, Day: days + 1}
}

// DateToEpochDays converts a calendar date to its day count since 1970-01-01.
func DateToEpochDays(d Date) int {
	days := 0
	for y := 1970; y < d.Year; y++ {
		days += yearLength(y)
	}
	for m := 1; m < d.Month; m++ {
		days += monthLengths[leapIndex(d.Year)][m-1]
	}
	return days + d.Day - 1
}

// AddDays shifts a date by delta days, which may be negative. Dates before
// 1970-01-01 are rejected; there is no upper bound.
func AddDays(d Date, delta int) (Date, error) {
	days := DateToEpochDays(d) + delta
	if days < 0 {
		return Date{}, ErrDateOutOfRange
	}
	return EpochDaysToDate(days), nil
}

// ParseTimestamp parses "YYYY-MM-DD HH:MM" into epoch seconds. The seconds
// component is implicitly zero.
func ParseTimestamp(s string) (int64, error) {
	dateStr, timeStr, ok := strings.Cut(s, " ")
	if !ok {
		return 0, &InvalidFormatError{Input: s}
	}

	dateParts := strings.Split(dateStr, "-")
	timeParts := strings.Split(timeStr, ":")
	if len(dateParts) != 3 || len(timeParts) < 2 {
		return 0, &InvalidFormatError{Input: s}
	}

	fields := make([]int, 0, 5)
	for _, p := range append(dateParts, timeParts[0], timeParts[1]) {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, &InvalidFormatError{Input: s}
		}
		fields = append(fields, n)
	}

	d := Date{Year: fields[0], Month: fields[1], Day: fields[2]}
	if d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return 0, &InvalidFormatError{Input: s}
	}

	return int64(DateToEpochDays(d))*86400 + int64(fields[3])*3600 + int64(fields[4])*60, nil
}

// FromUnix converts epoch seconds to the calendar date containing them.
func FromUnix(sec int64) Date {
	return EpochDaysToDate(int(sec / 86400))
}

// Compact formats a date the way the NOAA API expects it: YYYYMMDD.
func Compact(d Date) string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
}

// ISO formats a date as YYYY-MM-DD.
func ISO(d Date) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
