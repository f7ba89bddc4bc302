package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"BoutiqueAdmin/internal/mockapi"
)

// Resource is one CRUD collection of the API.
type Resource[T any] struct {
	c      *Client
	path   string
	entity string
}

func newResource[T any](c *Client, path, entity string) *Resource[T] {
	return &Resource[T]{c: c, path: path, entity: entity}
}

func (c *Client) Orders() *Resource[mockapi.Order] {
	return newResource[mockapi.Order](c, "/orders", mockapi.EntityOrder)
}

func (c *Client) Customers() *Resource[mockapi.Customer] {
	return newResource[mockapi.Customer](c, "/customers", mockapi.EntityCustomer)
}

func (c *Client) Inventory() *Resource[mockapi.InventoryItem] {
	return newResource[mockapi.InventoryItem](c, "/inventory/materials", mockapi.EntityInventory)
}

func (c *Client) Tailors() *Resource[mockapi.Tailor] {
	return newResource[mockapi.Tailor](c, "/tailors", mockapi.EntityTailor)
}

func (c *Client) Products() *Resource[mockapi.Product] {
	return newResource[mockapi.Product](c, "/products", mockapi.EntityProduct)
}

// itemPath escapes id as a single path segment so '#', '/' and spaces reach
// the server intact.
func (r *Resource[T]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

// List returns the matching records. meta is only set by collections that
// paginate (customers).
func (r *Resource[T]) List(ctx context.Context, q mockapi.ListQuery) ([]T, *mockapi.PageMeta, error) {
	env, err := r.c.Get(ctx, r.path, queryParams(q))
	if err != nil {
		return nil, nil, err
	}
	var out []T
	if err := decodeData(env, &out); err != nil {
		return nil, nil, err
	}
	return out, env.Meta, nil
}

func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	env, err := r.c.Get(ctx, r.itemPath(id), nil)
	return r.one(env, err, id)
}

// Create posts in. The server assigns the id.
func (r *Resource[T]) Create(ctx context.Context, in any) (T, error) {
	env, err := r.c.Post(ctx, r.path, in)
	return r.one(env, err, "")
}

// Update sends a partial record; fields absent from patch keep their value.
func (r *Resource[T]) Update(ctx context.Context, id string, patch any) (T, error) {
	env, err := r.c.Put(ctx, r.itemPath(id), patch)
	return r.one(env, err, id)
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	_, err := r.c.Delete(ctx, r.itemPath(id))
	return r.notFound(err, id)
}

// one decodes a single record. A success envelope with null data is treated
// as a miss, which is how some backends answer an unknown id.
func (r *Resource[T]) one(env Envelope, err error, id string) (T, error) {
	var out T
	if err != nil {
		return out, r.notFound(err, id)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return out, &mockapi.NotFoundError{Entity: r.entity, ID: id}
	}
	if err := decodeData(env, &out); err != nil {
		return out, err
	}
	return out, nil
}

// notFound turns a bare 404 from a backend that does not fill in the entity
// into the same typed error the mock returns.
func (r *Resource[T]) notFound(err error, id string) error {
	var ae *APIError
	if errors.As(err, &ae) && ae.Status == http.StatusNotFound {
		return &mockapi.NotFoundError{Entity: r.entity, ID: id}
	}
	return err
}

func queryParams(q mockapi.ListQuery) url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

func decodeData(env Envelope, out any) error {
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: data: %v", ErrBadResponse, err)
	}
	return nil
}

// DashboardAPI reads the static dashboard endpoints.
type DashboardAPI struct {
	c *Client
}

func (c *Client) Dashboard() DashboardAPI { return DashboardAPI{c: c} }

func (d DashboardAPI) Stats(ctx context.Context) (mockapi.DashboardStats, error) {
	var out mockapi.DashboardStats
	if err := d.get(ctx, "/dashboard/stats", &out); err != nil {
		return out, err
	}
	return out, nil
}

func (d DashboardAPI) Activity(ctx context.Context) ([]mockapi.RecentActivity, error) {
	var out []mockapi.RecentActivity
	if err := d.get(ctx, "/dashboard/activity", &out); err != nil {
		return out, err
	}
	return out, nil
}

func (d DashboardAPI) Urgent(ctx context.Context) ([]mockapi.UrgentDelivery, error) {
	var out []mockapi.UrgentDelivery
	if err := d.get(ctx, "/dashboard/urgent", &out); err != nil {
		return out, err
	}
	return out, nil
}

func (d DashboardAPI) Sales(ctx context.Context) ([]mockapi.SalesData, error) {
	var out []mockapi.SalesData
	if err := d.get(ctx, "/dashboard/sales", &out); err != nil {
		return out, err
	}
	return out, nil
}

func (d DashboardAPI) get(ctx context.Context, path string, out any) error {
	env, err := d.c.Get(ctx, path, nil)
	if err != nil {
		return err
	}
	return decodeData(env, out)
}
