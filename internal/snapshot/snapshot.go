// Package snapshot converts a grid to and from its persisted record.
//
// Records are JSON objects. Decoding is lenient: missing or malformed optional
// fields fall back to defaults, and only a payload that is not an object at all
// is rejected.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/jy-crnz/SchedulerDesigner/internal/grid"
)

// Version is the record schema written by Encode.
const Version = 1

// ErrCorruptRecord is returned when a payload is not a JSON object.
var ErrCorruptRecord = errors.New("corrupt snapshot record")

// CellRecord is one persisted cell.
type CellRecord struct {
	Kind    string `json:"kind"`
	Subject string `json:"subject,omitempty"`
	Time    string `json:"time,omitempty"`
	Room    string `json:"room,omitempty"`
}

// Record is the flat persisted form of a grid.
type Record struct {
	Version    int                   `json:"version"`
	Cells      map[string]CellRecord `json:"cells"`
	ActiveDays []int                 `json:"active_days"`
	Columns    int                   `json:"columns"`
	StartYear  string                `json:"start_year"`
	EndYear    string                `json:"end_year"`
	Term       string                `json:"term"`
	Theme      string                `json:"theme"`
}

// Encode builds the record for g. Empty cells are omitted.
func Encode(g *grid.Grid) Record {
	layout := g.Layout()
	header := g.Header()

	cells := g.Cells()
	rec := Record{
		Version:    Version,
		Cells:      make(map[string]CellRecord, len(cells)),
		ActiveDays: layout.ActiveDays(),
		Columns:    layout.Columns(),
		StartYear:  header.StartYear,
		EndYear:    header.EndYear,
		Term:       header.Term,
		Theme:      header.Theme,
	}
	for _, c := range cells {
		rec.Cells[c.Key.String()] = CellRecord{
			Kind:    c.Content.Kind.String(),
			Subject: c.Content.Class.Subject,
			Time:    c.Content.Class.Time,
			Room:    c.Content.Class.Room,
		}
	}
	return rec
}

// Marshal encodes g as JSON.
func Marshal(g *grid.Grid) ([]byte, error) {
	data, err := json.Marshal(Encode(g))
	if err != nil {
		return nil, fmt.Errorf("marshaling snapshot: %w", err)
	}
	return data, nil
}

// Decode rebuilds a grid from a persisted record and reapplies vacancy
// derivation.
func Decode(data []byte) (*grid.Grid, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrCorruptRecord)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: record is not an object", ErrCorruptRecord)
	}

	g := grid.Restore(decodeCells(root.Get("cells")), decodeLayout(root), decodeHeader(root))
	g.DeriveVacancy()
	return g, nil
}

func decodeCells(v gjson.Result) map[grid.Key]grid.Content {
	cells := make(map[grid.Key]grid.Content)
	if !v.IsObject() {
		return cells
	}
	v.ForEach(func(key, value gjson.Result) bool {
		k, err := grid.ParseKey(key.String())
		if err != nil || !value.IsObject() {
			return true
		}
		if c, ok := decodeContent(value); ok {
			cells[k] = c
		}
		return true
	})
	return cells
}

func decodeContent(v gjson.Result) (grid.Content, bool) {
	subject := v.Get("subject").String()
	kindField := v.Get("kind")
	if !kindField.Exists() {
		// Records without a kind hold a card if they carry a subject.
		if subject != "" {
			return grid.Occupied(subject, v.Get("time").String(), v.Get("room").String()), true
		}
		return grid.Empty(), true
	}

	kind, ok := grid.ParseKind(kindField.String())
	if !ok {
		return grid.Content{}, false
	}
	switch kind {
	case grid.KindOccupied:
		if subject == "" {
			return grid.Content{}, false
		}
		return grid.Occupied(subject, v.Get("time").String(), v.Get("room").String()), true
	case grid.KindStarred:
		return grid.Starred(), true
	default:
		return grid.Empty(), true
	}
}

func decodeLayout(root gjson.Result) grid.Layout {
	if days := root.Get("active_days"); days.IsArray() {
		var ints []int
		valid := true
		for _, d := range days.Array() {
			if d.Type != gjson.Number || d.Num != float64(int(d.Num)) {
				valid = false
				break
			}
			ints = append(ints, int(d.Int()))
		}
		if valid {
			if l, err := grid.NewLayout(ints); err == nil {
				return l
			}
		}
		return grid.DefaultLayout()
	}

	if cols := root.Get("columns"); cols.Type == gjson.Number {
		if days, err := grid.DefaultDays(int(cols.Int())); err == nil {
			if l, err := grid.NewLayout(days); err == nil {
				return l
			}
		}
	}
	return grid.DefaultLayout()
}

func decodeHeader(root gjson.Result) grid.Header {
	h := grid.DefaultHeader()
	if v, ok := firstString(root, "start_year", "start"); ok {
		h.StartYear = v
	}
	if v, ok := firstString(root, "end_year", "end"); ok {
		h.EndYear = v
	}
	if v, ok := firstString(root, "term"); ok {
		h.Term = v
	}
	if v, ok := firstString(root, "theme"); ok {
		h.Theme = strings.TrimPrefix(v, "theme-")
	}
	return h
}

// firstString returns the first scalar stored among paths. A stored empty
// string counts; only absent or non-scalar values fall through to defaults.
func firstString(root gjson.Result, paths ...string) (string, bool) {
	for _, p := range paths {
		v := root.Get(p)
		if v.Type == gjson.String || v.Type == gjson.Number {
			return strings.TrimSpace(v.String()), true
		}
	}
	return "", false
}
