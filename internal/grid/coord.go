package grid

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	// Rows is the number of fixed time slots per day.
	Rows = 5
	// DaysPerWeek is the number of addressable days (Mon=0 .. Sun=6).
	DaysPerWeek = 7
	// DefaultColumns is the width of a fresh grid (Monday to Friday).
	DefaultColumns = 5
)

// Day names indexed by day number.
var dayNames = [DaysPerWeek]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DayName returns the English name of a day index, or "" if out of range.
func DayName(day int) string {
	if day < 0 || day >= DaysPerWeek {
		return ""
	}
	return dayNames[day]
}

// Key is the stable identifier of a cell. It never changes when the set of
// visible days changes.
type Key struct {
	Row int
	Day int
}

// String encodes the key as "row:day".
func (k Key) String() string {
	return strconv.Itoa(k.Row) + ":" + strconv.Itoa(k.Day)
}

// Valid reports whether the key lies inside the Rows x DaysPerWeek key space.
func (k Key) Valid() bool {
	return k.Row >= 0 && k.Row < Rows && k.Day >= 0 && k.Day < DaysPerWeek
}

// ParseKey decodes a "row:day" string.
func ParseKey(s string) (Key, error) {
	rowStr, dayStr, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Key{}, fmt.Errorf("%w: key %q is not row:day", ErrNotFound, s)
	}
	row, err := strconv.Atoi(rowStr)
	if err != nil {
		return Key{}, fmt.Errorf("%w: key %q has a bad row", ErrNotFound, s)
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return Key{}, fmt.Errorf("%w: key %q has a bad day", ErrNotFound, s)
	}
	k := Key{Row: row, Day: day}
	if !k.Valid() {
		return Key{}, fmt.Errorf("%w: key %q", ErrNotFound, s)
	}
	return k, nil
}

// AllKeys returns every key of the key space in row-major order.
func AllKeys() []Key {
	keys := make([]Key, 0, Rows*DaysPerWeek)
	for row := 0; row < Rows; row++ {
		for day := 0; day < DaysPerWeek; day++ {
			keys = append(keys, Key{Row: row, Day: day})
		}
	}
	return keys
}

// VisibleIndex returns the rank of day within activeDays.
func VisibleIndex(day int, activeDays []int) (int, error) {
	idx := slices.Index(activeDays, day)
	if idx < 0 {
		return 0, fmt.Errorf("%w: day %d is not visible", ErrNotFound, day)
	}
	return idx, nil
}

// VisiblePosition returns the dense row-major position of (row, day) in the
// visible grid.
func VisiblePosition(row, day int, activeDays []int) (int, error) {
	if len(activeDays) == 0 {
		return 0, fmt.Errorf("%w: no active days", ErrConfig)
	}
	if row < 0 || row >= Rows {
		return 0, fmt.Errorf("%w: row %d", ErrOutOfRange, row)
	}
	idx, err := VisibleIndex(day, activeDays)
	if err != nil {
		return 0, err
	}
	return row*len(activeDays) + idx, nil
}

// RowOf returns the row of a visible position.
func RowOf(pos, columns int) (int, error) {
	if columns < 1 {
		return 0, fmt.Errorf("%w: column count %d", ErrConfig, columns)
	}
	return pos / columns, nil
}

// DayOf returns the absolute day shown at a visible position.
func DayOf(pos, columns int, activeDays []int) (int, error) {
	if columns < 1 || columns != len(activeDays) {
		return 0, fmt.Errorf("%w: column count %d for %d active days", ErrConfig, columns, len(activeDays))
	}
	if pos < 0 {
		return 0, fmt.Errorf("%w: position %d", ErrOutOfRange, pos)
	}
	return activeDays[pos%columns], nil
}

// KeyAt maps a visible position back to its stable key.
func KeyAt(pos int, activeDays []int) (Key, error) {
	columns := len(activeDays)
	if pos < 0 || pos >= Rows*max(columns, 1) {
		if columns == 0 {
			return Key{}, fmt.Errorf("%w: no active days", ErrConfig)
		}
		return Key{}, fmt.Errorf("%w: position %d", ErrOutOfRange, pos)
	}
	row, err := RowOf(pos, columns)
	if err != nil {
		return Key{}, err
	}
	day, err := DayOf(pos, columns, activeDays)
	if err != nil {
		return Key{}, err
	}
	return Key{Row: row, Day: day}, nil
}

// NormalizeDays validates a day set and returns it sorted and de-duplicated.
func NormalizeDays(days []int) ([]int, error) {
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: at least one active day is required", ErrConfig)
	}
	out := slices.Clone(days)
	for _, d := range out {
		if d < 0 || d >= DaysPerWeek {
			return nil, fmt.Errorf("%w: day %d out of range", ErrConfig, d)
		}
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// DefaultDays returns [0..columns-1].
func DefaultDays(columns int) ([]int, error) {
	if columns < 1 || columns > DaysPerWeek {
		return nil, fmt.Errorf("%w: column count %d", ErrConfig, columns)
	}
	days := make([]int, columns)
	for i := range days {
		days[i] = i
	}
	return days, nil
}
