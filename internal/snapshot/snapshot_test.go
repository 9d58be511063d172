package snapshot

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jy-crnz/SchedulerDesigner/internal/grid"
)

func sampleGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g := grid.New()
	require.NoError(t, g.Resize(7, nil))
	require.NoError(t, g.Place(grid.Key{Row: 2, Day: 3}, "PHYSICS", "11:00AM-12:00PM", "LAB 2"))
	require.NoError(t, g.Place(grid.Key{Row: 0, Day: 6}, "CHOIR", "08:00AM", ""))
	require.NoError(t, g.Resize(3, []int{0, 3, 4}))
	require.NoError(t, g.ToggleStar(grid.Key{Row: 4, Day: 4}))
	g.SetHeader(grid.Header{StartYear: "2026", EndYear: "2027", Term: "TERM 2", Theme: "neon"})
	return g
}

func TestRoundTrip(t *testing.T) {
	g := sampleGrid(t)

	data, err := Marshal(g)
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)

	want := g.Clone()
	want.DeriveVacancy()
	assert.True(t, want.Equal(got))
	assert.Equal(t, []int{0, 3, 4}, got.Layout().ActiveDays())
	assert.Equal(t, "neon", got.Header().Theme)

	// hidden day content survives
	f, ok := got.Cell(grid.Key{Row: 0, Day: 6}).Fields()
	require.True(t, ok)
	assert.Equal(t, "CHOIR", f.Subject)
}

func TestEncode_OmitsEmpty(t *testing.T) {
	g := grid.New()
	k := grid.Key{Row: 1, Day: 1}
	require.NoError(t, g.ToggleStar(k))

	rec := Encode(g)
	assert.Equal(t, Version, rec.Version)
	assert.Len(t, rec.Cells, grid.Rows*grid.DaysPerWeek-1)
	assert.NotContains(t, rec.Cells, k.String())
	assert.Equal(t, "starred", rec.Cells["0:0"].Kind)
	assert.Equal(t, 5, rec.Columns)
}

func TestDecode_Corrupt(t *testing.T) {
	for _, in := range []string{``, `not json`, `[]`, `"text"`, `42`, `null`} {
		_, err := Decode([]byte(in))
		require.ErrorIs(t, err, ErrCorruptRecord, "input %q", in)
	}
}

func TestDecode_EmptyObjectIsDefault(t *testing.T) {
	g, err := Decode([]byte(`{}`))
	require.NoError(t, err)
	assert.True(t, g.Equal(grid.New()))
}

func TestDecode_ColumnsHint(t *testing.T) {
	g, err := Decode([]byte(`{"columns": 7}`))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, g.Layout().ActiveDays())
}

func TestDecode_InvalidLayoutFallsBack(t *testing.T) {
	for _, in := range []string{
		`{"active_days": []}`,
		`{"active_days": [0, 9]}`,
		`{"active_days": ["mon"]}`,
		`{"active_days": [1.5]}`,
		`{"columns": 0}`,
	} {
		g, err := Decode([]byte(in))
		require.NoError(t, err, in)
		assert.Equal(t, []int{0, 1, 2, 3, 4}, g.Layout().ActiveDays(), in)
	}
}

func TestDecode_UnsortedDays(t *testing.T) {
	g, err := Decode([]byte(`{"active_days": [3, 1, 3]}`))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, g.Layout().ActiveDays())
}

func TestDecode_SkipsMalformedCells(t *testing.T) {
	in := `{
		"cells": {
			"0:0": {"kind": "occupied", "subject": "MATH", "time": "8AM", "room": "R1"},
			"0:1": {"kind": "occupied"},
			"0:2": {"kind": "unknown"},
			"9:9": {"kind": "occupied", "subject": "GHOST"},
			"x": {"kind": "occupied", "subject": "GHOST"},
			"1:0": "MATH",
			"1:1": {"subject": "LEGACY"}
		},
		"extra": true
	}`
	g, err := Decode([]byte(in))
	require.NoError(t, err)

	assert.Equal(t, grid.Occupied("MATH", "8AM", "R1"), g.Cell(grid.Key{Row: 0, Day: 0}))
	assert.Equal(t, grid.Occupied("LEGACY", "", ""), g.Cell(grid.Key{Row: 1, Day: 1}))
	for _, k := range []grid.Key{{Row: 0, Day: 1}, {Row: 0, Day: 2}, {Row: 1, Day: 0}} {
		assert.True(t, g.Cell(k).IsStarred(), "key %s", k)
	}
}

func TestDecode_LegacyHeader(t *testing.T) {
	g, err := Decode([]byte(`{"start": "2024", "end": 2025, "theme": "theme-dark"}`))
	require.NoError(t, err)

	h := g.Header()
	assert.Equal(t, "2024", h.StartYear)
	assert.Equal(t, "2025", h.EndYear)
	assert.Equal(t, "TERM 1", h.Term)
	assert.Equal(t, "dark", h.Theme)
}

func TestRoundTrip_EmptyHeaderFields(t *testing.T) {
	g := grid.New()
	g.SetHeader(grid.Header{StartYear: "", EndYear: "2026", Term: "", Theme: "classic"})

	data, err := Marshal(g)
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, g.Header(), got.Header())
	assert.True(t, g.Equal(got))
}

func TestDecode_HeaderFallbacks(t *testing.T) {
	g, err := Decode([]byte(`{"start_year": null, "start": "2030", "term": {"x": 1}}`))
	require.NoError(t, err)

	h := g.Header()
	assert.Equal(t, "2030", h.StartYear)
	assert.Equal(t, grid.DefaultHeader().Term, h.Term)
	assert.Equal(t, grid.DefaultHeader().EndYear, h.EndYear)
}

func TestMarshal_Shape(t *testing.T) {
	g := grid.New()
	require.NoError(t, g.Place(grid.Key{Row: 3, Day: 2}, "ART", "2PM", "STUDIO"))

	data, err := Marshal(g)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, field := range []string{"version", "cells", "active_days", "columns", "start_year", "end_year", "term", "theme"} {
		assert.Contains(t, raw, field)
	}
	cells := raw["cells"].(map[string]any)
	assert.Equal(t, map[string]any{"kind": "occupied", "subject": "ART", "time": "2PM", "room": "STUDIO"}, cells["3:2"])
}
