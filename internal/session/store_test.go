package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Achutha2207/portfolio/internal/catalog"
	"github.com/Achutha2207/portfolio/internal/view"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *fakeClock) {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	clock := &fakeClock{t: time.Date(2025, 7, 28, 21, 0, 0, 0, time.UTC)}
	st := NewStore(c, ttl, nil)
	st.now = clock.Now
	return st, clock
}

func TestSessionsAreIndependent(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t, time.Hour)
	a := st.Create()
	b := st.Create()
	require.NotEqual(t, a.ID, b.ID)

	a.Do(func(c *view.Controller) { c.NavigateTo(view.Projects) })
	require.Equal(t, view.Projects, a.Snapshot().Page)
	require.Equal(t, view.Home, b.Snapshot().Page)
}

func TestGetLooksUpLiveSessions(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t, time.Hour)
	s := st.Create()

	got, ok := st.Get(s.ID)
	require.True(t, ok)
	require.Same(t, s, got)

	_, ok = st.Get("not-a-uuid")
	require.False(t, ok)
	_, ok = st.Get("")
	require.False(t, ok)
	require.Equal(t, 1, st.Len())
}

func TestExpiredSessionsAreSweptAndNotReturned(t *testing.T) {
	t.Parallel()

	st, clock := newTestStore(t, 10*time.Minute)
	old := st.Create()
	clock.Advance(6 * time.Minute)
	recent := st.Create()
	clock.Advance(6 * time.Minute)

	_, ok := st.Get(old.ID)
	require.False(t, ok)
	_, ok = st.Get(recent.ID)
	require.True(t, ok)

	require.Equal(t, 1, st.Sweep(clock.Now()))
	require.Equal(t, 1, st.Len())
}

func TestGetRefreshesIdleTime(t *testing.T) {
	t.Parallel()

	st, clock := newTestStore(t, 10*time.Minute)
	s := st.Create()
	for range 5 {
		clock.Advance(8 * time.Minute)
		_, ok := st.Get(s.ID)
		require.True(t, ok)
	}
	require.Zero(t, st.Sweep(clock.Now()))
}

func TestConcurrentTransitionsOnOneSession(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t, time.Hour)
	s := st.Create()

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Do(func(c *view.Controller) { c.ToggleMenu() })
		}()
	}
	wg.Wait()
	require.False(t, s.Snapshot().MenuOpen, "an even number of toggles restores the menu")
}

func TestRunStopsWithContext(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		st.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
