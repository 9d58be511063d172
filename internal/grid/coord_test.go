package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisibleIndex(t *testing.T) {
	days := []int{1, 3, 5}

	idx, err := VisibleIndex(3, days)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, err = VisibleIndex(2, days)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestVisiblePosition_RoundTrip(t *testing.T) {
	layouts := [][]int{
		{0, 1, 2, 3, 4},
		{0, 1, 2, 3, 4, 5, 6},
		{1, 3},
		{6},
	}
	for _, days := range layouts {
		for row := 0; row < Rows; row++ {
			for _, day := range days {
				pos, err := VisiblePosition(row, day, days)
				require.NoError(t, err)

				gotRow, err := RowOf(pos, len(days))
				require.NoError(t, err)
				gotDay, err := DayOf(pos, len(days), days)
				require.NoError(t, err)
				assert.Equal(t, row, gotRow)
				assert.Equal(t, day, gotDay)

				k, err := KeyAt(pos, days)
				require.NoError(t, err)
				assert.Equal(t, Key{Row: row, Day: day}, k)
			}
		}
	}
}

func TestVisiblePosition_Values(t *testing.T) {
	pos, err := VisiblePosition(2, 3, []int{0, 1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, 17, pos)

	pos, err = VisiblePosition(1, 3, []int{1, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, pos)
}

func TestZeroColumns(t *testing.T) {
	_, err := RowOf(3, 0)
	require.ErrorIs(t, err, ErrConfig)
	_, err = DayOf(3, 0, nil)
	require.ErrorIs(t, err, ErrConfig)
	_, err = VisiblePosition(0, 0, nil)
	require.ErrorIs(t, err, ErrConfig)
	_, err = KeyAt(0, nil)
	require.ErrorIs(t, err, ErrConfig)
}

func TestKeyAt_OutOfRange(t *testing.T) {
	_, err := KeyAt(25, []int{0, 1, 2, 3, 4})
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = KeyAt(-1, []int{0})
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey("2:3")
	require.NoError(t, err)
	assert.Equal(t, Key{Row: 2, Day: 3}, k)
	assert.Equal(t, "2:3", k.String())

	for _, bad := range []string{"", "2", "a:1", "1:b", "5:0", "0:7", "-1:0"} {
		_, err := ParseKey(bad)
		require.ErrorIs(t, err, ErrNotFound, "input %q", bad)
	}
}

func TestNormalizeDays(t *testing.T) {
	days, err := NormalizeDays([]int{4, 1, 4, 0})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 4}, days)

	_, err = NormalizeDays(nil)
	require.ErrorIs(t, err, ErrConfig)
	_, err = NormalizeDays([]int{7})
	require.ErrorIs(t, err, ErrConfig)
}

func TestDeriveVacant_Idempotent(t *testing.T) {
	for _, c := range []Content{Empty(), Starred(), Occupied("A", "B", "C")} {
		once := DeriveVacant(c)
		assert.Equal(t, once, DeriveVacant(once))
		assert.False(t, once.IsEmpty())
	}
	assert.Equal(t, Occupied("A", "B", "C"), DeriveVacant(Occupied("A", "B", "C")))
}

func TestContent_FieldsAndEquality(t *testing.T) {
	f, ok := Occupied("MATH", "9AM", "R1").Fields()
	require.True(t, ok)
	assert.Equal(t, ClassFields{Subject: "MATH", Time: "9AM", Room: "R1"}, f)

	_, ok = Starred().Fields()
	assert.False(t, ok)

	assert.NotEqual(t, Occupied("math", "", ""), Occupied("MATH", "", ""))
	assert.Equal(t, Occupied("MATH", "", ""), Occupied("MATH", "", ""))
}
