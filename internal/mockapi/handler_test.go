package mockapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BoutiqueAdmin/pkg/kit"
)

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    *PageMeta       `json:"meta"`
	Error   *kit.ErrorBody  `json:"error"`
}

func newTestRoutes(t *testing.T, seed Seed) (*Routes, *Store) {
	t.Helper()
	s := newTestStore(seed)
	return NewRoutes(s, HandlerDeps{BasePath: "/api"}), s
}

func serve(t *testing.T, h http.Handler, method, target, body string) (int, testEnvelope) {
	t.Helper()

	var rd *strings.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	var req *http.Request
	if rd != nil {
		req = httptest.NewRequest(method, target, rd)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env testEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body=%s", w.Body.String())
	return w.Code, env
}

func TestRoutes_ListCustomersWithMeta(t *testing.T) {
	rt, _ := newTestRoutes(t, Seed{Customers: manyCustomers(25)})

	code, env := serve(t, rt, http.MethodGet, "/api/customers?page=3&limit=10", "")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	require.NotNil(t, env.Meta)
	assert.Equal(t, PageMeta{Total: 25, Page: 3, Limit: 10, TotalPages: 3}, *env.Meta)

	var items []Customer
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 5)
}

func TestRoutes_BadPaginationFallsBackToDefaults(t *testing.T) {
	rt, _ := newTestRoutes(t, Seed{Customers: manyCustomers(25)})

	_, env := serve(t, rt, http.MethodGet, "/api/customers?page=abc&limit=-3", "")
	require.NotNil(t, env.Meta)
	assert.Equal(t, PageMeta{Total: 25, Page: 1, Limit: 10, TotalPages: 3}, *env.Meta)
}

func TestRoutes_LimitIsNotCapped(t *testing.T) {
	rt, _ := newTestRoutes(t, Seed{Customers: manyCustomers(250)})

	_, env := serve(t, rt, http.MethodGet, "/api/customers?limit=200", "")
	require.NotNil(t, env.Meta)
	assert.Equal(t, PageMeta{Total: 250, Page: 1, Limit: 200, TotalPages: 2}, *env.Meta)

	var items []Customer
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 200)
}

func TestRoutes_ListWithoutMeta(t *testing.T) {
	rt, _ := newTestRoutes(t, DefaultSeed())

	code, env := serve(t, rt, http.MethodGet, "/api/inventory/materials?search=silk", "")
	require.Equal(t, http.StatusOK, code)
	assert.Nil(t, env.Meta)

	var items []InventoryItem
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "SLK-108", items[0].SKU)
}

func TestRoutes_GetDecodesID(t *testing.T) {
	rt, _ := newTestRoutes(t, DefaultSeed())

	code, env := serve(t, rt, http.MethodGet, "/api/customers/%23JD-001", "")
	require.Equal(t, http.StatusOK, code)

	var c Customer
	require.NoError(t, json.Unmarshal(env.Data, &c))
	assert.Equal(t, "#JD-001", c.ID)
}

func TestRoutes_GetIDWithSlashAndSpace(t *testing.T) {
	rt, _ := newTestRoutes(t, Seed{Products: []Product{{ID: "PRD-a/b c", Name: "Odd"}}})

	code, env := serve(t, rt, http.MethodGet, "/api/products/PRD-a%2Fb%20c", "")
	require.Equal(t, http.StatusOK, code, "error=%+v", env.Error)

	var p Product
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "PRD-a/b c", p.ID)

	code, _ = serve(t, rt, http.MethodDelete, "/api/products/PRD-a%2Fb%20c", "")
	assert.Equal(t, http.StatusOK, code)
}

func TestRoutes_GetMissingIsNotFound(t *testing.T) {
	rt, _ := newTestRoutes(t, DefaultSeed())

	for _, target := range []string{
		"/api/orders/%23ORD-0000",
		"/api/customers/%23JD-999",
		"/api/inventory/materials/%23MAT-0000",
		"/api/tailors/%23TLR-999",
		"/api/products/PRD-missing",
	} {
		code, env := serve(t, rt, http.MethodGet, target, "")
		assert.Equal(t, http.StatusNotFound, code, target)
		assert.False(t, env.Success)
		require.NotNil(t, env.Error, target)
		assert.Equal(t, CodeNotFound, env.Error.Code)
		assert.NotEmpty(t, env.Error.Entity)
	}
}

func TestRoutes_CreateAcceptsStringifiedBody(t *testing.T) {
	rt, s := newTestRoutes(t, Seed{})

	code, env := serve(t, rt, http.MethodPost, "/api/tailors", `"{\"name\":\"Gopal\",\"specialization\":\"Kurtas\"}"`)
	require.Equal(t, http.StatusCreated, code)

	var tl Tailor
	require.NoError(t, json.Unmarshal(env.Data, &tl))
	assert.Equal(t, "Gopal", tl.Name)
	assert.Equal(t, "2024-03-08", tl.JoinedDate)
	assert.Equal(t, 1, s.Tailors.Len())
}

func TestRoutes_CreateMalformedBodyUsesDefaults(t *testing.T) {
	rt, s := newTestRoutes(t, Seed{})

	code, env := serve(t, rt, http.MethodPost, "/api/customers", `{"name": "Broken"`)
	require.Equal(t, http.StatusCreated, code)

	var c Customer
	require.NoError(t, json.Unmarshal(env.Data, &c))
	assert.Empty(t, c.Name)
	assert.Equal(t, "New", c.Type)
	assert.Equal(t, 1, s.Customers.Len())
}

func TestRoutes_CreateWrongTypeIsRejected(t *testing.T) {
	rt, s := newTestRoutes(t, Seed{})

	code, env := serve(t, rt, http.MethodPost, "/api/orders", `{"amount":"lots","items":"two"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeValidation, env.Error.Code)
	assert.Equal(t, 0, s.Orders.Len())
}

func TestRoutes_UpdateMergesAndKeepsID(t *testing.T) {
	rt, _ := newTestRoutes(t, DefaultSeed())

	code, env := serve(t, rt, http.MethodPut, "/api/orders/%23ORD-7830", `{"status":"Completed","id":"#ORD-0001"}`)
	require.Equal(t, http.StatusOK, code)

	var o Order
	require.NoError(t, json.Unmarshal(env.Data, &o))
	assert.Equal(t, "#ORD-7830", o.ID)
	assert.Equal(t, "Completed", o.Status)
	assert.Equal(t, "Ananya Iyer", o.CustomerName)

	code, env = serve(t, rt, http.MethodPut, "/api/orders/%23ORD-0001", `{"status":"Completed"}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, EntityOrder, env.Error.Entity)
	assert.Equal(t, "#ORD-0001", env.Error.ID)
}

func TestRoutes_DeleteAck(t *testing.T) {
	rt, s := newTestRoutes(t, DefaultSeed())

	code, env := serve(t, rt, http.MethodDelete, "/api/tailors/%23TLR-102", "")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.Nil(t, env.Data)
	assert.Equal(t, 2, s.Tailors.Len())

	code, env = serve(t, rt, http.MethodDelete, "/api/tailors/%23TLR-102", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, EntityTailor, env.Error.Entity)
}

func TestRoutes_Dashboard(t *testing.T) {
	rt, _ := newTestRoutes(t, DefaultSeed())

	_, env := serve(t, rt, http.MethodGet, "/api/dashboard/stats", "")
	assert.JSONEq(t, `{
		"todays_revenue": 45200,
		"new_stitching_orders": 12,
		"total_boutique_orders": 156,
		"pending_deliveries": 8,
		"low_stock_alerts": 3,
		"revenue_growth": 12.5
	}`, string(env.Data))

	for _, p := range []string{"activity", "urgent", "sales"} {
		code, env := serve(t, rt, http.MethodGet, "/api/dashboard/"+p, "")
		assert.Equal(t, http.StatusOK, code, p)
		assert.True(t, strings.HasPrefix(string(env.Data), "["), p)
	}
}

func TestRoutes_InvoicesEmptyList(t *testing.T) {
	rt, _ := newTestRoutes(t, Seed{})

	code, env := serve(t, rt, http.MethodGet, "/api/invoices", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestRoutes_Claims(t *testing.T) {
	rt, _ := newTestRoutes(t, Seed{})

	tests := []struct {
		method, path string
		want         bool
	}{
		{http.MethodGet, "/api/customers", true},
		{http.MethodPost, "/api/customers", true},
		{http.MethodPut, "/api/customers/%23JD-001", true},
		{http.MethodDelete, "/api/customers/%23JD-001", false},
		{http.MethodDelete, "/api/orders/%23ORD-0001", false},
		{http.MethodDelete, "/api/products/PRD-1", true},
		{http.MethodGet, "/api/dashboard/sales", true},
		{http.MethodPost, "/api/dashboard/sales", false},
		{http.MethodGet, "/api/invoices", true},
		{http.MethodGet, "/api/settings", false},
		{http.MethodGet, "/customers", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rt.Claims(tt.method, tt.path), "%s %s", tt.method, tt.path)
	}
}

func TestRoutes_RootBasePath(t *testing.T) {
	rt := NewRoutes(newTestStore(DefaultSeed()), HandlerDeps{})

	assert.True(t, rt.Claims(http.MethodGet, "/orders"))
	code, _ := serve(t, rt, http.MethodGet, "/orders", "")
	assert.Equal(t, http.StatusOK, code)
}

func TestRoutes_CountsServedResponses(t *testing.T) {
	reg := prometheus.NewRegistry()
	rt := NewRoutes(newTestStore(DefaultSeed()), HandlerDeps{BasePath: "/api", Registry: reg})

	serve(t, rt, http.MethodGet, "/api/tailors/%23TLR-101", "")
	serve(t, rt, http.MethodGet, "/api/tailors/%23TLR-000", "")

	ok := rt.metrics.Served.WithLabelValues(http.MethodGet, "/api/tailors/{id}", "200")
	miss := rt.metrics.Served.WithLabelValues(http.MethodGet, "/api/tailors/{id}", "404")
	assert.Equal(t, 1.0, testutil.ToFloat64(ok))
	assert.Equal(t, 1.0, testutil.ToFloat64(miss))

	// A second table on the same registry shares the collector.
	again := NewRoutes(newTestStore(Seed{}), HandlerDeps{Registry: reg})
	assert.Same(t, rt.metrics.Served, again.metrics.Served)
}
