package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard/internal/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(ttl time.Duration) (*MemoryStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(ttl)
	store.now = clock.Now
	return store, clock
}

func TestMemoryStore_CreateAndGet(t *testing.T) {
	store, _ := newTestStore(time.Hour)
	table := &domain.Table{ID: "tbl001"}

	created, err := store.Create(table)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.Filter.IsEmpty())

	got, ok := store.Get(created.ID)
	require.True(t, ok)
	assert.Same(t, table, got.Table)
	assert.Equal(t, 1, store.Len())

	_, ok = store.Get("inexistente")
	assert.False(t, ok)
}

func TestMemoryStore_SessionsAreIsolated(t *testing.T) {
	store, _ := newTestStore(time.Hour)
	tableA := &domain.Table{ID: "A"}
	tableB := &domain.Table{ID: "B"}

	a, err := store.Create(tableA)
	require.NoError(t, err)
	b, err := store.Create(tableB)
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)

	require.True(t, store.SetFilter(a.ID, domain.NewFilterSpec("L1", "")))

	gotA, _ := store.Get(a.ID)
	gotB, _ := store.Get(b.ID)
	assert.Equal(t, "A", gotA.Table.ID)
	assert.Equal(t, "B", gotB.Table.ID)
	assert.Equal(t, "L1", gotA.Filter.LabelValue())
	assert.True(t, gotB.Filter.IsEmpty())
}

func TestMemoryStore_ReplaceResetsFilter(t *testing.T) {
	store, _ := newTestStore(time.Hour)

	sess, err := store.Create(&domain.Table{ID: "old"})
	require.NoError(t, err)
	store.SetFilter(sess.ID, domain.NewFilterSpec("L1", "2024-01"))

	replaced, ok := store.Replace(sess.ID, &domain.Table{ID: "new"})
	require.True(t, ok)
	assert.Equal(t, sess.ID, replaced.ID)
	assert.Equal(t, "new", replaced.Table.ID)
	assert.True(t, replaced.Filter.IsEmpty())

	_, ok = store.Replace("inexistente", &domain.Table{})
	assert.False(t, ok)
}

func TestMemoryStore_Expiration(t *testing.T) {
	store, clock := newTestStore(30 * time.Minute)

	active, err := store.Create(&domain.Table{ID: "active"})
	require.NoError(t, err)
	idle, err := store.Create(&domain.Table{ID: "idle"})
	require.NoError(t, err)

	clock.Advance(20 * time.Minute)
	_, ok := store.Get(active.ID)
	require.True(t, ok)

	clock.Advance(15 * time.Minute)

	_, ok = store.Get(idle.ID)
	assert.False(t, ok, "sessão inativa não deve ser retornada")

	evicted := store.EvictExpired(clock.Now())
	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, store.Len())

	_, ok = store.Get(active.ID)
	assert.True(t, ok)
}

func TestMemoryStore_Delete(t *testing.T) {
	store, _ := newTestStore(time.Hour)

	sess, err := store.Create(&domain.Table{})
	require.NoError(t, err)

	store.Delete(sess.ID)

	_, ok := store.Get(sess.ID)
	assert.False(t, ok)
	assert.False(t, store.SetFilter(sess.ID, domain.FilterSpec{}))
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store, _ := newTestStore(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess, err := store.Create(&domain.Table{})
			if err != nil {
				return
			}
			store.SetFilter(sess.ID, domain.NewFilterSpec("L1", ""))
			store.Get(sess.ID)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, store.Len())
}
