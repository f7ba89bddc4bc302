package customers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BoutiqueAdmin/internal/mockapi"
)

func newTestClient(d Delays) (*Client, *mockapi.Store) {
	s := mockapi.NewStore(mockapi.DefaultSeed())
	return New(s, d, nil), s
}

func TestClient_CRUD(t *testing.T) {
	c, s := newTestClient(Delays{})
	ctx := context.Background()

	items, meta, err := c.List(ctx, mockapi.ListQuery{Search: "priya"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, meta.Total)

	created, err := c.Create(ctx, mockapi.Customer{ID: "#JD-001", Name: "Lakshmi Rao", Email: "lakshmi@example.com"})
	require.NoError(t, err)
	assert.Regexp(t, `^#JD-\d{3}$`, created.ID)
	assert.NotEqual(t, "#JD-001", created.ID)
	assert.Equal(t, "New", created.Type)

	updated, err := c.Update(ctx, created.ID, map[string]any{"phone": "+91 90000 00000"})
	require.NoError(t, err)
	assert.Equal(t, "Lakshmi Rao", updated.Name)
	assert.Equal(t, "+91 90000 00000", updated.Phone)

	got, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	require.NoError(t, c.Delete(ctx, created.ID))
	_, err = c.Get(ctx, created.ID)
	assert.True(t, mockapi.IsNotFoundFor(err, mockapi.EntityCustomer))
	assert.Equal(t, 6, s.Customers.Len())
}

func TestClient_MissingCustomer(t *testing.T) {
	c, _ := newTestClient(Delays{})
	ctx := context.Background()

	_, err := c.Get(ctx, "#JD-999")
	assert.ErrorIs(t, err, mockapi.ErrNotFound)

	_, err = c.Update(ctx, "#JD-999", map[string]any{"name": "x"})
	assert.ErrorIs(t, err, mockapi.ErrNotFound)

	assert.ErrorIs(t, c.Delete(ctx, "#JD-999"), mockapi.ErrNotFound)
}

func TestClient_NonObjectPatchIsEmpty(t *testing.T) {
	c, _ := newTestClient(Delays{})

	got, err := c.Update(context.Background(), "#JD-002", []string{"not", "an", "object"})
	require.NoError(t, err)
	assert.Equal(t, "Ananya Iyer", got.Name)
}

func TestClient_WaitsBeforeTouchingStore(t *testing.T) {
	c, _ := newTestClient(Delays{Get: 40 * time.Millisecond})

	start := time.Now()
	_, err := c.Get(context.Background(), "#JD-001")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestClient_CancelledCallLeavesStoreAlone(t *testing.T) {
	c, s := newTestClient(Delays{Create: time.Hour, Delete: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Create(ctx, mockapi.Customer{Name: "Never Stored"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 6, s.Customers.Len())

	done, stop := context.WithCancel(context.Background())
	stop()
	assert.ErrorIs(t, c.Delete(done, "#JD-001"), context.Canceled)
	assert.Equal(t, 6, s.Customers.Len())
}

// Both entry points share one collection, so creates racing through the delay
// all land, each under its own id.
func TestClient_ConcurrentCreatesShareStore(t *testing.T) {
	c, s := newTestClient(Delays{Create: 10 * time.Millisecond})

	const n = 20
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cust, err := c.Create(context.Background(), mockapi.Customer{Name: "Walk-in"})
			if assert.NoError(t, err) {
				ids <- cust.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.Equal(t, 6+n, s.Customers.Len())
}

func TestDefaultDelays(t *testing.T) {
	d := DefaultDelays()
	assert.Equal(t, 500*time.Millisecond, d.List)
	assert.Equal(t, 300*time.Millisecond, d.Get)
	assert.Equal(t, 600*time.Millisecond, d.Create)
}
