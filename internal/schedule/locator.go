package schedule

import (
	"fmt"
	"time"
)

// columnByHour maps the posting hour to the spreadsheet column holding that hour's post.
// 14 and 17 both point at J and G is never used; the sheet layout depends on this table as-is.
var columnByHour = map[int]string{
	8:  "A",
	9:  "B",
	10: "C",
	11: "D",
	12: "E",
	13: "F",
	14: "J",
	15: "H",
	16: "I",
	17: "J",
	18: "K",
	19: "L",
	20: "M",
	21: "N",
}

// TimeContext is the slice of wall-clock time the locator cares about
type TimeContext struct {
	Date    time.Time
	Hour    int
	Weekday int // Sunday = 0
	Week    int
}

// Location identifies the sheet tab and column holding the content for one run
type Location struct {
	Sheet  string
	Column string
}

// NewTimeContext derives a TimeContext from t, in t's own location.
func NewTimeContext(t time.Time) TimeContext {
	return TimeContext{
		Date:    time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()),
		Hour:    t.Hour(),
		Weekday: int(t.Weekday()),
		Week:    WeekNumber(t),
	}
}

// WeekNumber returns the 1-indexed week of the year, counting whole weeks since Jan 1.
func WeekNumber(t time.Time) int {
	days := t.YearDay() - 1
	return days/7 + 1
}

// ColumnForHour returns the column letter for hour, or false when nothing is posted at that hour.
func ColumnForHour(hour int) (string, bool) {
	column, ok := columnByHour[hour]
	return column, ok
}

// Locate returns the sheet and column to read for t.
// Hours outside the posting window produce an empty Column; the read for it fails downstream.
func Locate(t time.Time) Location {
	return NewTimeContext(t).Location()
}

// Location returns the sheet and column for this time context.
func (tc TimeContext) Location() Location {
	column, _ := ColumnForHour(tc.Hour)
	return Location{
		Sheet:  fmt.Sprintf("%d-%d", tc.Week, tc.Weekday),
		Column: column,
	}
}

// Range renders the A1 notation for the whole column, e.g. "12-3!C:C".
func (l Location) Range() string {
	return fmt.Sprintf("%s!%s:%s", l.Sheet, l.Column, l.Column)
}

func (l Location) String() string {
	return l.Range()
}
