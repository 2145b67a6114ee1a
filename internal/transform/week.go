package transform

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// "2021-W05", "2021-05" and "2021W05"
var yearWeekPattern = regexp.MustCompile(`^(\d{4})-?W?(\d{1,2})$`)

// ParseYearWeek converts an ISO-like week label into the Sunday that closes
// the week. Weeks are numbered Monday-first: week 1 starts on the first
// Monday of the year and days before it belong to week 0.
func ParseYearWeek(label string) (time.Time, error) {
	m := yearWeekPattern.FindStringSubmatch(label)
	if m == nil {
		return time.Time{}, fmt.Errorf("invalid year_week %q", label)
	}

	year, _ := strconv.Atoi(m[1])
	week, _ := strconv.Atoi(m[2])
	if week > 53 {
		return time.Time{}, fmt.Errorf("invalid week %d in %q", week, label)
	}

	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	firstWeekday := (int(jan1.Weekday()) + 6) % 7 // Monday = 0
	const sunday = 6

	var dayOfYear int
	if week == 0 {
		dayOfYear = 1 + sunday - firstWeekday
	} else {
		week0Length := (7 - firstWeekday) % 7
		dayOfYear = 1 + week0Length + 7*(week-1) + sunday
	}

	return jan1.AddDate(0, 0, dayOfYear-1), nil
}
