package reconcile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jy-crnz/SchedulerDesigner/internal/grid"
)

var dayIndex = map[string]int{
	"monday": 0, "mon": 0,
	"tuesday": 1, "tue": 1, "tues": 1,
	"wednesday": 2, "wed": 2,
	"thursday": 3, "thu": 3, "thur": 3, "thurs": 3,
	"friday": 4, "fri": 4,
	"saturday": 5, "sat": 5,
	"sunday": 6, "sun": 6,
}

// ParseDay maps a day name to its index (Mon=0 .. Sun=6).
func ParseDay(name string) (int, error) {
	day, ok := dayIndex[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnrecognizedDay, name)
	}
	return day, nil
}

// rangeSeparators split "08:00AM-09:00AM" style ranges.
var rangeSeparators = []string{"-", "–", "—", " to "}

// hourPattern matches the hour a time starts with, with optional minutes and
// meridiem: "8", "08:30", "8:30 pm", "2PM", "11 a.m.". Text before the hour
// makes the time unparseable.
var hourPattern = regexp.MustCompile(`^\s*(\d{1,2})(?::(\d{2}))?\s*([AP])?\.?\s*(M)?\.?`)

// StartHour returns the 24-hour hour at which a time range starts.
func StartHour(timeRange string) (int, error) {
	start := strings.ToUpper(strings.TrimSpace(timeRange))
	for _, sep := range rangeSeparators {
		if before, _, ok := strings.Cut(start, strings.ToUpper(sep)); ok {
			start = strings.TrimSpace(before)
			break
		}
	}

	m := hourPattern.FindStringSubmatch(start)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnparseableTime, timeRange)
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnparseableTime, timeRange)
	}
	if m[2] != "" {
		if mins, _ := strconv.Atoi(m[2]); mins > 59 {
			return 0, fmt.Errorf("%w: %q", ErrUnparseableTime, timeRange)
		}
	}

	switch {
	case m[3] == "P" && m[4] == "M":
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("%w: %q", ErrUnparseableTime, timeRange)
		}
		if hour != 12 {
			hour += 12
		}
	case m[3] == "A" && m[4] == "M":
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("%w: %q", ErrUnparseableTime, timeRange)
		}
		if hour == 12 {
			hour = 0
		}
	default:
		if hour > 23 {
			return 0, fmt.Errorf("%w: %q", ErrUnparseableTime, timeRange)
		}
	}
	return hour, nil
}

// RowForHour buckets a 24-hour hour into one of the grid rows.
func RowForHour(hour int) int {
	switch {
	case hour >= 15:
		return 4
	case hour >= 13:
		return 3
	case hour >= 11:
		return 2
	case hour >= 9:
		return 1
	default:
		return 0
	}
}

var rowLabels = [grid.Rows]string{"BEFORE 9", "9-11", "11-1", "1-3", "3 PM+"}

// RowLabel names the hour bucket of a grid row, or "" if out of range.
func RowLabel(row int) string {
	if row < 0 || row >= grid.Rows {
		return ""
	}
	return rowLabels[row]
}

// RowForTime returns the grid row for the start of a time range.
func RowForTime(timeRange string) (int, error) {
	hour, err := StartHour(timeRange)
	if err != nil {
		return 0, err
	}
	return RowForHour(hour), nil
}

// CellIndex returns the dense index of a class in a grid that is columns wide
// and starts on Monday, or -1 if the day or time cannot be parsed.
func CellIndex(day, timeRange string, columns int) int {
	d, err := ParseDay(day)
	if err != nil || columns < 1 || d >= columns {
		return -1
	}
	row, err := RowForTime(timeRange)
	if err != nil {
		return -1
	}
	return row*columns + d
}

// HintColumns returns 7 if any entry falls on a weekend, 5 otherwise.
func HintColumns(entries []Entry) int {
	for _, e := range entries {
		if d, err := ParseDay(e.Day); err == nil && d >= 5 {
			return grid.DaysPerWeek
		}
	}
	return grid.DefaultColumns
}
