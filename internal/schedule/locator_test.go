package schedule

import (
	"testing"
	"time"
)

func TestColumnForHour(t *testing.T) {
	tests := []struct {
		hour   int
		column string
	}{
		{8, "A"},
		{9, "B"},
		{10, "C"},
		{11, "D"},
		{12, "E"},
		{13, "F"},
		{14, "J"},
		{15, "H"},
		{16, "I"},
		{17, "J"},
		{18, "K"},
		{19, "L"},
		{20, "M"},
		{21, "N"},
	}

	for _, test := range tests {
		column, ok := ColumnForHour(test.hour)
		if !ok {
			t.Errorf("ColumnForHour(%d) reported no column", test.hour)
			continue
		}
		if column != test.column {
			t.Errorf("ColumnForHour(%d) = %s, expected %s", test.hour, column, test.column)
		}
	}
}

func TestColumnForHourUniqueOutsideCollision(t *testing.T) {
	seen := make(map[string]int)
	for _, hour := range []int{8, 9, 10, 11, 12, 13, 15, 16, 18, 19, 20, 21} {
		column, _ := ColumnForHour(hour)
		if prev, dup := seen[column]; dup {
			t.Errorf("hours %d and %d share column %s", prev, hour, column)
		}
		seen[column] = hour
	}

	c14, _ := ColumnForHour(14)
	c17, _ := ColumnForHour(17)
	if c14 != "J" || c17 != "J" {
		t.Errorf("expected 14 and 17 to map to J, got %s and %s", c14, c17)
	}
}

func TestColumnForHourOutsideWindow(t *testing.T) {
	for _, hour := range []int{0, 1, 7, 22, 23} {
		if column, ok := ColumnForHour(hour); ok || column != "" {
			t.Errorf("ColumnForHour(%d) = %q, %v; expected no column", hour, column, ok)
		}
	}
}

func TestWeekNumber(t *testing.T) {
	for _, year := range []int{2023, 2024, 2025} {
		jan1 := time.Date(year, time.January, 1, 12, 0, 0, 0, time.UTC)
		for k := 0; k <= 52; k++ {
			date := jan1.AddDate(0, 0, 7*k)
			if date.Year() != year {
				break
			}
			if got := WeekNumber(date); got != k+1 {
				t.Errorf("WeekNumber(%s) = %d, expected %d", date.Format("2006-01-02"), got, k+1)
			}
		}
	}
}

func TestWeekNumberWithinWeek(t *testing.T) {
	tests := []struct {
		date string
		week int
	}{
		{"2025-01-01", 1},
		{"2025-01-02", 1},
		{"2025-01-07", 1},
		{"2025-01-08", 2},
		{"2025-01-14", 2},
		{"2025-01-15", 3},
		{"2024-12-31", 53}, // leap year, day 365
		{"2025-12-31", 53},
	}

	for _, test := range tests {
		date, err := time.Parse("2006-01-02", test.date)
		if err != nil {
			t.Fatalf("bad test date %s: %v", test.date, err)
		}
		if got := WeekNumber(date); got != test.week {
			t.Errorf("WeekNumber(%s) = %d, expected %d", test.date, got, test.week)
		}
	}
}

func TestWeekNumberIgnoresTimeOfDay(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	early := time.Date(2025, time.March, 5, 0, 0, 1, 0, loc)
	late := time.Date(2025, time.March, 5, 23, 59, 59, 0, loc)
	if WeekNumber(early) != WeekNumber(late) {
		t.Errorf("week changed within a day: %d vs %d", WeekNumber(early), WeekNumber(late))
	}
}

func TestLocate(t *testing.T) {
	// Wednesday, 5 March 2025: day 63 of the year
	now := time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)

	loc := Locate(now)
	if loc.Sheet != "10-3" {
		t.Errorf("expected sheet 10-3, got %s", loc.Sheet)
	}
	if loc.Column != "C" {
		t.Errorf("expected column C, got %s", loc.Column)
	}
	if loc.Range() != "10-3!C:C" {
		t.Errorf("expected range 10-3!C:C, got %s", loc.Range())
	}
}

func TestLocateOutsideWindow(t *testing.T) {
	now := time.Date(2025, time.March, 5, 23, 0, 0, 0, time.UTC)

	loc := Locate(now)
	if loc.Column != "" {
		t.Errorf("expected empty column, got %s", loc.Column)
	}
	if loc.Range() != "10-3!:" {
		t.Errorf("expected degenerate range, got %s", loc.Range())
	}
}

func TestNewTimeContext(t *testing.T) {
	now := time.Date(2025, time.January, 5, 17, 30, 0, 0, time.UTC) // Sunday

	tc := NewTimeContext(now)
	if tc.Hour != 17 {
		t.Errorf("expected hour 17, got %d", tc.Hour)
	}
	if tc.Weekday != 0 {
		t.Errorf("expected weekday 0, got %d", tc.Weekday)
	}
	if tc.Week != 1 {
		t.Errorf("expected week 1, got %d", tc.Week)
	}
	if !tc.Date.Equal(time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected date %v", tc.Date)
	}
	if got := tc.Location().Range(); got != "1-0!J:J" {
		t.Errorf("expected 1-0!J:J, got %s", got)
	}
}
