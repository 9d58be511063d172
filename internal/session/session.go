// Package session owns the grid of one schedule profile while an adapter runs.
//
// Every operation takes the session lock, applies the change to a working copy,
// persists the encoded copy and only then makes it current. A failed step
// leaves both the in-memory and the stored state as they were.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jy-crnz/SchedulerDesigner/internal/grid"
	"github.com/jy-crnz/SchedulerDesigner/internal/reconcile"
	"github.com/jy-crnz/SchedulerDesigner/internal/snapshot"
)

// Store persists encoded snapshots per profile.
type Store interface {
	// LoadSnapshot returns nil, nil when the profile has never been saved.
	LoadSnapshot(ctx context.Context, profile string) ([]byte, error)
	SaveSnapshot(ctx context.Context, profile string, data []byte) error
}

// Exporter renders the visible grid into an artifact.
type Exporter interface {
	Export(ctx context.Context, g *grid.Grid) error
}

// ExporterFunc adapts a function to Exporter.
type ExporterFunc func(ctx context.Context, g *grid.Grid) error

func (f ExporterFunc) Export(ctx context.Context, g *grid.Grid) error { return f(ctx, g) }

// Update is sent to subscribers after every committed change.
type Update struct {
	Op       string
	Snapshot []byte
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// Session serializes access to one profile's grid.
type Session struct {
	mu      sync.Mutex
	store   Store
	profile string
	grid    *grid.Grid
	log     *slog.Logger

	subMu  sync.Mutex
	subs   map[int]chan Update
	nextID int
}

// Open loads profile from store. A missing profile starts from the default
// grid. A corrupt record is logged and replaced by the default grid on the
// next save.
func Open(ctx context.Context, store Store, profile string, opts ...Option) (*Session, error) {
	s := &Session{
		store:   store,
		profile: profile,
		log:     slog.Default(),
		subs:    make(map[int]chan Update),
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := store.LoadSnapshot(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("loading profile %q: %w", profile, err)
	}
	if data == nil {
		s.grid = grid.New()
		return s, nil
	}

	g, err := snapshot.Decode(data)
	if err != nil {
		if !errors.Is(err, snapshot.ErrCorruptRecord) {
			return nil, err
		}
		s.log.Warn("stored schedule is unreadable, starting from defaults",
			"profile", profile, "error", err)
		g = grid.New()
	}
	s.grid = g
	return s, nil
}

// Profile returns the profile name.
func (s *Session) Profile() string { return s.profile }

// Grid returns a copy of the current grid.
func (s *Session) Grid() *grid.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Clone()
}

// Snapshot returns the encoded current grid.
func (s *Session) Snapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot.Marshal(s.grid)
}

// mutate runs fn on a working copy and commits it once it is persisted.
func (s *Session) mutate(ctx context.Context, op string, fn func(g *grid.Grid) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.grid.Clone()
	if err := fn(work); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := snapshot.Marshal(work)
	if err != nil {
		return err
	}
	if err := s.store.SaveSnapshot(ctx, s.profile, data); err != nil {
		return fmt.Errorf("saving profile %q: %w", s.profile, err)
	}
	s.grid = work
	s.log.Debug("schedule updated", "profile", s.profile, "op", op)
	s.publish(Update{Op: op, Snapshot: data})
	return nil
}

// Place puts a subject card at k.
func (s *Session) Place(ctx context.Context, k grid.Key, subject, time, room string) error {
	return s.mutate(ctx, "place", func(g *grid.Grid) error {
		return g.Place(k, subject, time, room)
	})
}

// Move swaps src and dst.
func (s *Session) Move(ctx context.Context, src, dst grid.Key) error {
	return s.mutate(ctx, "move", func(g *grid.Grid) error {
		return g.Move(src, dst)
	})
}

// Copy duplicates src into dst.
func (s *Session) Copy(ctx context.Context, src, dst grid.Key) error {
	return s.mutate(ctx, "copy", func(g *grid.Grid) error {
		return g.Copy(src, dst)
	})
}

// Delete clears k.
func (s *Session) Delete(ctx context.Context, k grid.Key) error {
	return s.mutate(ctx, "delete", func(g *grid.Grid) error {
		return g.Delete(k)
	})
}

// ToggleStar flips the free-slot marker at k.
func (s *Session) ToggleStar(ctx context.Context, k grid.Key) error {
	return s.mutate(ctx, "star", func(g *grid.Grid) error {
		return g.ToggleStar(k)
	})
}

// Resize changes the visible days.
func (s *Session) Resize(ctx context.Context, columns int, days []int) error {
	return s.mutate(ctx, "resize", func(g *grid.Grid) error {
		return g.Resize(columns, days)
	})
}

// ClearAll empties the grid and restores the Monday to Friday layout.
func (s *Session) ClearAll(ctx context.Context) error {
	return s.mutate(ctx, "clear", func(g *grid.Grid) error {
		g.ClearAll()
		return nil
	})
}

// SetHeader replaces the header metadata.
func (s *Session) SetHeader(ctx context.Context, h grid.Header) error {
	return s.mutate(ctx, "header", func(g *grid.Grid) error {
		g.SetHeader(h)
		return nil
	})
}

// UpdateHeader applies fn to the current header.
func (s *Session) UpdateHeader(ctx context.Context, fn func(h *grid.Header)) error {
	return s.mutate(ctx, "header", func(g *grid.Grid) error {
		h := g.Header()
		fn(&h)
		g.SetHeader(h)
		return nil
	})
}

// Reconcile merges extracted classes into the grid as one atomic batch.
func (s *Session) Reconcile(ctx context.Context, entries []reconcile.Entry, opts reconcile.Options) (reconcile.Result, error) {
	var res reconcile.Result
	err := s.mutate(ctx, "reconcile", func(g *grid.Grid) error {
		var err error
		res, err = reconcile.Apply(ctx, g, entries, opts)
		return err
	})
	if err != nil {
		return reconcile.Result{}, err
	}
	for _, sk := range res.Skipped {
		s.log.Warn("class skipped", "profile", s.profile, "index", sk.Index, "error", sk.Err)
	}
	for _, c := range res.Collisions {
		s.log.Warn("class overwritten", "profile", s.profile, "cell", c.Key.String(), "replaced", c.Replaced, "by", c.By)
	}
	return res, nil
}

// Replace swaps the whole grid for g, e.g. after an import.
func (s *Session) Replace(ctx context.Context, g *grid.Grid) error {
	return s.mutate(ctx, "replace", func(work *grid.Grid) error {
		*work = *g.Clone()
		work.DeriveVacancy()
		return nil
	})
}

// Import decodes a snapshot record and replaces the grid with it.
func (s *Session) Import(ctx context.Context, data []byte) error {
	g, err := snapshot.Decode(data)
	if err != nil {
		return err
	}
	return s.Replace(ctx, g)
}

// Export hands the current grid to e. No mutation can run meanwhile.
func (s *Session) Export(ctx context.Context, e Exporter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return e.Export(ctx, s.grid.Clone())
}

// Subscribe returns a channel receiving committed updates. When a subscriber
// falls behind, older pending updates are dropped in favor of the latest one.
// The returned func unsubscribes and closes the channel.
func (s *Session) Subscribe() (<-chan Update, func()) {
	ch := make(chan Update, 1)

	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
			close(ch)
		})
	}
}

func (s *Session) publish(u Update) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- u:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- u
		}
	}
}
