// Package reconcile merges an unordered list of extracted class records into a
// schedule grid, trimming the visible days to the days that hold classes.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jy-crnz/SchedulerDesigner/internal/grid"
)

// Batch errors abort the whole reconciliation and leave the grid untouched.
var (
	ErrUnrecognizedDay = errors.New("unrecognized day")
	ErrEmptyBatch      = fmt.Errorf("%w: no classes to reconcile", grid.ErrConfig)
)

// Entry errors only skip the offending entry.
var (
	ErrUnparseableTime = errors.New("unparseable time")
	ErrInvalidEntry    = errors.New("invalid entry")
)

// Entry is one class record as returned by the vision service.
type Entry struct {
	Subject string `json:"subject" validate:"required,max=120"`
	Day     string `json:"day" validate:"required"`
	Time    string `json:"time" validate:"required"`
	Room    string `json:"room" validate:"max=60"`
}

// Options tunes a reconciliation run.
type Options struct {
	// Replace clears every cell before the entries are placed.
	Replace bool
}

// EntryError reports an entry that was skipped.
type EntryError struct {
	Index int
	Entry Entry
	Err   error
}

func (e EntryError) Error() string {
	return fmt.Sprintf("entry %d (%s %s): %v", e.Index, e.Entry.Day, e.Entry.Subject, e.Err)
}

func (e EntryError) Unwrap() error { return e.Err }

// Placement records where an entry landed.
type Placement struct {
	Index int
	Key   grid.Key
}

// Collision records an entry that overwrote an earlier one in the same batch.
// The later entry wins.
type Collision struct {
	Key      grid.Key
	Replaced int // index of the overwritten entry
	By       int // index of the winning entry
}

// Result summarizes a reconciliation run.
type Result struct {
	ActiveDays []int
	Placed     []Placement
	Skipped    []EntryError
	Collisions []Collision
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Apply reconciles entries into g. Day names are resolved first; a single
// unknown day fails the batch before g is touched. Entries with a bad time or
// missing fields are skipped and reported. Apply is not atomic on its own if
// ctx is cancelled mid-batch: callers that need atomicity run it on a clone.
func Apply(ctx context.Context, g *grid.Grid, entries []Entry, opts Options) (Result, error) {
	if len(entries) == 0 {
		return Result{}, ErrEmptyBatch
	}

	days := make([]int, len(entries))
	for i, e := range entries {
		d, err := ParseDay(e.Day)
		if err != nil {
			return Result{}, fmt.Errorf("entry %d: %w", i, err)
		}
		days[i] = d
	}
	active, err := grid.NormalizeDays(days)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if opts.Replace {
		g.ClearAll()
	}
	if err := g.Resize(len(active), active); err != nil {
		return Result{}, err
	}

	res := Result{ActiveDays: slices.Clone(active)}
	owner := make(map[grid.Key]int, len(entries))
	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		e = trimEntry(e)
		if err := validate.Struct(e); err != nil {
			res.Skipped = append(res.Skipped, EntryError{Index: i, Entry: e, Err: fmt.Errorf("%w: %s", ErrInvalidEntry, describe(err))})
			continue
		}
		row, err := RowForTime(e.Time)
		if err != nil {
			res.Skipped = append(res.Skipped, EntryError{Index: i, Entry: e, Err: err})
			continue
		}

		k := grid.Key{Row: row, Day: days[i]}
		if prev, ok := owner[k]; ok {
			res.Collisions = append(res.Collisions, Collision{Key: k, Replaced: prev, By: i})
		}
		if err := g.Place(k, e.Subject, e.Time, e.Room); err != nil {
			res.Skipped = append(res.Skipped, EntryError{Index: i, Entry: e, Err: err})
			continue
		}
		owner[k] = i
		res.Placed = append(res.Placed, Placement{Index: i, Key: k})
	}

	g.DeriveVacancy()
	return res, nil
}

func trimEntry(e Entry) Entry {
	return Entry{
		Subject: strings.TrimSpace(e.Subject),
		Day:     strings.TrimSpace(e.Day),
		Time:    strings.TrimSpace(e.Time),
		Room:    strings.TrimSpace(e.Room),
	}
}

// describe flattens validator errors into "field tag" pairs.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, strings.ToLower(fe.Field())+" "+fe.Tag())
	}
	return strings.Join(parts, ", ")
}
