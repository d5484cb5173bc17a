package domain

import (
	"errors"
	"time"
)

var ErrInvalidPeriod = errors.New("invalid period (must be today, this-week, this-month, last-month, last-4-weeks or this-quarter)")

type Quarter string

const (
	Q1 Quarter = "Q1"
	Q2 Quarter = "Q2"
	Q3 Quarter = "Q3"
	Q4 Quarter = "Q4"
)

var quarters = [...]Quarter{Q1, Q2, Q3, Q4}

func (q Quarter) Valid() bool {
	return q.Index() >= 0
}

// Index is 0 for Q1 through 3 for Q4, or -1.
func (q Quarter) Index() int {
	for i, v := range quarters {
		if v == q {
			return i
		}
	}
	return -1
}

func CurrentQuarter(t time.Time) Quarter {
	return quarters[(int(t.Month())-1)/3]
}

// QuarterRange is the half-open [start, end) window of quarter q in year.
func QuarterRange(year int, q Quarter, loc *time.Location) (time.Time, time.Time) {
	idx := q.Index()
	if idx < 0 {
		return time.Time{}, time.Time{}
	}
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, time.Month(idx*3+1), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 3, 0)
}

// WeekStart returns Monday 00:00:00 of t's week in t's location. Weeks start
// on Monday, so a Sunday belongs to the week that began six days earlier.
func WeekStart(t time.Time) time.Time {
	wd := int(t.Weekday())
	back := wd - 1
	if wd == 0 {
		back = 6
	}
	d := t.AddDate(0, 0, -back)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

type Period string

const (
	PeriodToday       Period = "today"
	PeriodThisWeek    Period = "this-week"
	PeriodThisMonth   Period = "this-month"
	PeriodLastMonth   Period = "last-month"
	PeriodLast4Weeks  Period = "last-4-weeks"
	PeriodThisQuarter Period = "this-quarter"
)

var Periods = []Period{
	PeriodToday, PeriodThisWeek, PeriodThisMonth,
	PeriodLastMonth, PeriodLast4Weeks, PeriodThisQuarter,
}

func ParsePeriod(s string) (Period, error) {
	for _, p := range Periods {
		if string(p) == s {
			return p, nil
		}
	}
	return "", ErrInvalidPeriod
}

// ShiftPeriod moves a navigation anchor one step. Only the sign of direction
// matters; zero leaves the anchor unchanged.
func ShiftPeriod(start time.Time, period Period, direction int) time.Time {
	step := 0
	switch {
	case direction > 0:
		step = 1
	case direction < 0:
		step = -1
	default:
		return start
	}

	switch period {
	case PeriodThisMonth, PeriodLastMonth:
		return start.AddDate(0, step, 0)
	case PeriodLast4Weeks:
		return start.AddDate(0, 0, 28*step)
	default:
		return start.AddDate(0, 0, 7*step)
	}
}

// PeriodRange resolves the half-open [from, to) window that period covers
// relative to anchor.
func PeriodRange(anchor time.Time, period Period) (time.Time, time.Time) {
	day := StartOfDay(anchor)
	monthStart := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())

	switch period {
	case PeriodToday:
		return day, day.AddDate(0, 0, 1)
	case PeriodThisMonth:
		return monthStart, monthStart.AddDate(0, 1, 0)
	case PeriodLastMonth:
		return monthStart.AddDate(0, -1, 0), monthStart
	case PeriodLast4Weeks:
		end := WeekStart(anchor).AddDate(0, 0, 7)
		return end.AddDate(0, 0, -28), end
	case PeriodThisQuarter:
		return QuarterRange(anchor.Year(), CurrentQuarter(anchor), anchor.Location())
	default:
		ws := WeekStart(anchor)
		return ws, ws.AddDate(0, 0, 7)
	}
}
