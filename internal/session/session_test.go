package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jy-crnz/SchedulerDesigner/internal/grid"
	"github.com/jy-crnz/SchedulerDesigner/internal/reconcile"
	"github.com/jy-crnz/SchedulerDesigner/internal/snapshot"
)

type memStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	saves   int
	failErr error
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) LoadSnapshot(_ context.Context, profile string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[profile], nil
}

func (m *memStore) SaveSnapshot(_ context.Context, profile string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	m.saves++
	m.data[profile] = data
	return nil
}

func (m *memStore) stored(t *testing.T, profile string) *grid.Grid {
	t.Helper()
	m.mu.Lock()
	data := m.data[profile]
	m.mu.Unlock()
	require.NotNil(t, data)
	g, err := snapshot.Decode(data)
	require.NoError(t, err)
	return g
}

func TestOpen_Defaults(t *testing.T) {
	s, err := Open(context.Background(), newMemStore(), "default")
	require.NoError(t, err)
	assert.True(t, s.Grid().Equal(grid.New()))
}

func TestOpen_CorruptFallsBack(t *testing.T) {
	store := newMemStore()
	store.data["default"] = []byte("[1,2,3]")

	s, err := Open(context.Background(), store, "default")
	require.NoError(t, err)
	assert.True(t, s.Grid().Equal(grid.New()))
}

func TestOpen_LoadError(t *testing.T) {
	_, err := Open(context.Background(), failingLoader{}, "default")
	require.Error(t, err)
}

type failingLoader struct{}

func (failingLoader) LoadSnapshot(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func (failingLoader) SaveSnapshot(context.Context, string, []byte) error { return nil }

func TestMutationsPersist(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	s, err := Open(ctx, store, "p1")
	require.NoError(t, err)

	a := grid.Key{Row: 0, Day: 0}
	b := grid.Key{Row: 1, Day: 2}
	require.NoError(t, s.Place(ctx, a, "MATH", "8AM", "R1"))
	require.NoError(t, s.Copy(ctx, a, b))
	require.NoError(t, s.Move(ctx, a, grid.Key{Row: 4, Day: 4}))
	require.NoError(t, s.Delete(ctx, b))

	assert.Equal(t, 4, store.saves)
	assert.True(t, s.Grid().Equal(store.stored(t, "p1")))
	assert.True(t, s.Grid().Cell(grid.Key{Row: 4, Day: 4}).IsOccupied())
	assert.True(t, s.Grid().Cell(a).IsStarred())
	assert.True(t, s.Grid().Cell(b).IsStarred())
}

func TestFailedOperationLeavesState(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	s, err := Open(ctx, store, "p1")
	require.NoError(t, err)

	k := grid.Key{Row: 0, Day: 0}
	err = s.Move(ctx, k, k)
	require.ErrorIs(t, err, grid.ErrInvalidTarget)
	assert.Equal(t, 0, store.saves)

	err = s.Resize(ctx, 0, nil)
	require.ErrorIs(t, err, grid.ErrConfig)
	assert.Equal(t, 0, store.saves)
}

func TestSaveFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	s, err := Open(ctx, store, "p1")
	require.NoError(t, err)

	store.failErr = errors.New("read-only")
	err = s.Place(ctx, grid.Key{Row: 0, Day: 0}, "MATH", "", "")
	require.ErrorIs(t, err, store.failErr)
	assert.True(t, s.Grid().Equal(grid.New()))
}

func TestReconcile_Atomic(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	s, err := Open(ctx, store, "p1")
	require.NoError(t, err)
	require.NoError(t, s.Place(ctx, grid.Key{Row: 0, Day: 0}, "KEEP", "", ""))
	before := s.Grid()

	_, err = s.Reconcile(ctx, []reconcile.Entry{
		{Subject: "A", Day: "Monday", Time: "8AM"},
		{Subject: "B", Day: "Blursday", Time: "8AM"},
	}, reconcile.Options{})
	require.ErrorIs(t, err, reconcile.ErrUnrecognizedDay)
	assert.True(t, s.Grid().Equal(before))

	res, err := s.Reconcile(ctx, []reconcile.Entry{
		{Subject: "A", Day: "Tuesday", Time: "08:00AM-09:00AM"},
		{Subject: "B", Day: "Thursday", Time: "02:00PM-03:00PM"},
	}, reconcile.Options{})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, res.ActiveDays)
	assert.Equal(t, []int{1, 3}, store.stored(t, "p1").Layout().ActiveDays())
}

func TestReconcile_CancelledLeavesState(t *testing.T) {
	store := newMemStore()
	s, err := Open(context.Background(), store, "p1")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Reconcile(ctx, []reconcile.Entry{{Subject: "A", Day: "Monday", Time: "8AM"}}, reconcile.Options{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, store.saves)
}

func TestHeaderAndImport(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, newMemStore(), "p1")
	require.NoError(t, err)

	require.NoError(t, s.UpdateHeader(ctx, func(h *grid.Header) { h.Term = "TERM 3" }))
	assert.Equal(t, "TERM 3", s.Grid().Header().Term)

	other := grid.New()
	require.NoError(t, other.Place(grid.Key{Row: 3, Day: 3}, "ART", "", ""))
	data, err := snapshot.Marshal(other)
	require.NoError(t, err)

	require.NoError(t, s.Import(ctx, data))
	assert.True(t, s.Grid().Equal(other))

	err = s.Import(ctx, []byte("nope"))
	require.ErrorIs(t, err, snapshot.ErrCorruptRecord)
	assert.True(t, s.Grid().Equal(other))
}

func TestClearedHeaderSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	s, err := Open(ctx, store, "p1")
	require.NoError(t, err)
	require.NoError(t, s.UpdateHeader(ctx, func(h *grid.Header) {
		h.Term = ""
		h.StartYear = ""
	}))

	reopened, err := Open(ctx, store, "p1")
	require.NoError(t, err)
	assert.Equal(t, s.Grid().Header(), reopened.Grid().Header())
	assert.Empty(t, reopened.Grid().Header().Term)
}

func TestExportSeesCommittedState(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, newMemStore(), "p1")
	require.NoError(t, err)
	require.NoError(t, s.Place(ctx, grid.Key{Row: 2, Day: 2}, "BIO", "", ""))

	var got *grid.Grid
	err = s.Export(ctx, ExporterFunc(func(_ context.Context, g *grid.Grid) error {
		got = g
		return nil
	}))
	require.NoError(t, err)
	assert.True(t, got.Cell(grid.Key{Row: 2, Day: 2}).IsOccupied())
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, newMemStore(), "p1")
	require.NoError(t, err)

	ch, unsubscribe := s.Subscribe()
	require.NoError(t, s.Place(ctx, grid.Key{Row: 0, Day: 0}, "A", "", ""))
	require.NoError(t, s.Place(ctx, grid.Key{Row: 0, Day: 1}, "B", "", ""))

	u := <-ch
	assert.Equal(t, "place", u.Op)
	g, err := snapshot.Decode(u.Snapshot)
	require.NoError(t, err)
	assert.True(t, g.Cell(grid.Key{Row: 0, Day: 1}).IsOccupied(), "latest update wins")

	unsubscribe()
	unsubscribe()
	_, ok := <-ch
	assert.False(t, ok)
}

func TestConcurrentMutations(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	s, err := Open(ctx, store, "p1")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for day := 0; day < 5; day++ {
		for row := 0; row < grid.Rows; row++ {
			wg.Add(1)
			go func(k grid.Key) {
				defer wg.Done()
				assert.NoError(t, s.Place(ctx, k, "X", "", ""))
			}(grid.Key{Row: row, Day: day})
		}
	}
	wg.Wait()

	assert.Equal(t, 25, store.saves)
	for _, c := range s.Grid().Visible() {
		for _, cell := range c {
			assert.True(t, cell.Content.IsOccupied(), "key %s", cell.Key)
		}
	}
}
