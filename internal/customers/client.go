// Package customers is the direct customer path of the mock backend. It skips
// HTTP entirely and works on the shared store, waiting a fixed delay per
// operation the way a slow network would.
package customers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"BoutiqueAdmin/internal/mockapi"
)

type Delays struct {
	List   time.Duration
	Get    time.Duration
	Create time.Duration
	Update time.Duration
	Delete time.Duration
}

func DefaultDelays() Delays {
	return Delays{
		List:   500 * time.Millisecond,
		Get:    300 * time.Millisecond,
		Create: 600 * time.Millisecond,
		Update: 500 * time.Millisecond,
		Delete: 400 * time.Millisecond,
	}
}

type Client struct {
	store  *mockapi.Store
	delays Delays
	log    *zap.Logger
}

func New(store *mockapi.Store, delays Delays, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{store: store, delays: delays, log: log}
}

// List returns one page of customers matching q.
func (c *Client) List(ctx context.Context, q mockapi.ListQuery) ([]mockapi.Customer, mockapi.PageMeta, error) {
	if err := c.wait(ctx, "list", c.delays.List); err != nil {
		return nil, mockapi.PageMeta{}, err
	}
	items, meta := c.store.ListCustomers(q)
	return items, meta, nil
}

func (c *Client) Get(ctx context.Context, id string) (mockapi.Customer, error) {
	if err := c.wait(ctx, "get", c.delays.Get); err != nil {
		return mockapi.Customer{}, err
	}
	return c.store.Customers.Get(id)
}

// Create stores in under a fresh id. Any id on in is ignored.
func (c *Client) Create(ctx context.Context, in mockapi.Customer) (mockapi.Customer, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return mockapi.Customer{}, fmt.Errorf("encode customer: %w", err)
	}
	if err := c.wait(ctx, "create", c.delays.Create); err != nil {
		return mockapi.Customer{}, err
	}
	return c.store.CreateCustomer(raw)
}

// Update merges the fields present in patch into the stored customer. patch
// is anything that encodes to a JSON object, typically a map or a struct
// with omitempty fields.
func (c *Client) Update(ctx context.Context, id string, patch any) (mockapi.Customer, error) {
	raw, err := json.Marshal(patch)
	if err != nil {
		return mockapi.Customer{}, fmt.Errorf("encode patch: %w", err)
	}
	obj, coerced := mockapi.NormalizeBody(raw)
	if coerced {
		c.log.Warn("customer patch is not an object, applying empty patch", zap.String("id", id))
	}
	if err := c.wait(ctx, "update", c.delays.Update); err != nil {
		return mockapi.Customer{}, err
	}
	return c.store.Customers.Update(id, obj)
}

func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.wait(ctx, "delete", c.delays.Delete); err != nil {
		return err
	}
	return c.store.Customers.Delete(id)
}

// wait blocks for d or until ctx is done. A cancelled call never reaches the
// store.
func (c *Client) wait(ctx context.Context, op string, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		c.log.Debug("customer call cancelled", zap.String("op", op), zap.Error(ctx.Err()))
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
