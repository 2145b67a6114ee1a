package transform

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseYearWeek(t *testing.T) {
	tests := []struct {
		label string
		want  time.Time
	}{
		{"2021W05", date(2021, time.February, 7)},
		{"2021-W05", date(2021, time.February, 7)},
		{"2021-05", date(2021, time.February, 7)},
		{"2020-W01", date(2020, time.January, 12)},
		{"2021-W00", date(2021, time.January, 3)},
		{"2024-W01", date(2024, time.January, 7)},
		{"2020-W53", date(2021, time.January, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := ParseYearWeek(tt.label)
			if err != nil {
				t.Fatalf("ParseYearWeek(%q) error = %v", tt.label, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseYearWeek(%q) = %s, want %s", tt.label, got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
			if got.Weekday() != time.Sunday {
				t.Errorf("ParseYearWeek(%q) = %s is a %s, want Sunday", tt.label, got.Format("2006-01-02"), got.Weekday())
			}
		})
	}
}

func TestParseYearWeekInvalid(t *testing.T) {
	for _, label := range []string{"", "2021", "2021-W", "21-W05", "2021-W54", "week 5"} {
		t.Run(label, func(t *testing.T) {
			if _, err := ParseYearWeek(label); err == nil {
				t.Errorf("ParseYearWeek(%q) expected error", label)
			}
		})
	}
}
