package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"BoutiqueAdmin/pkg/kit"
)

const maxBodyBytes = 1 << 20

type HandlerDeps struct {
	Log *zap.Logger
	// BasePath prefixes every route, e.g. "/api". Empty mounts at the root.
	BasePath string
	Registry prometheus.Registerer
}

// Routes is the explicit (method, pattern) table of the mock backend. A
// request either matches exactly one entry or is not claimed at all; there is
// no substring matching and no fallthrough between entities.
type Routes struct {
	mux     *chi.Mux
	store   *Store
	log     *zap.Logger
	metrics *Metrics
}

func NewRoutes(store *Store, deps HandlerDeps) *Routes {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	rt := &Routes{
		mux:   chi.NewRouter(),
		store: store,
		log:   log,
	}
	if deps.Registry != nil {
		rt.metrics = NewMetrics(deps.Registry)
		rt.mux.Use(rt.metrics.Middleware)
	}

	base := NormalizeBasePath(deps.BasePath)
	if base == "" {
		rt.register(rt.mux)
	} else {
		rt.mux.Route(base, rt.register)
	}
	return rt
}

// NormalizeBasePath trims trailing slashes and ensures a leading one. The
// root comes back as "".
func NormalizeBasePath(p string) string {
	p = strings.TrimRight(strings.TrimSpace(p), "/")
	if p != "" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func (rt *Routes) register(r chi.Router) {
	s := rt.store

	r.Get("/customers", rt.listCustomers)
	r.Post("/customers", createHandler(rt, s.CreateCustomer))
	r.Get("/customers/{id}", getHandler(rt, s.Customers))
	r.Put("/customers/{id}", updateHandler(rt, s.Customers))

	r.Get("/orders", rt.listOrders)
	r.Post("/orders", createHandler(rt, s.CreateOrder))
	r.Get("/orders/{id}", getHandler(rt, s.Orders))
	r.Put("/orders/{id}", updateHandler(rt, s.Orders))

	r.Get("/inventory/materials", rt.listInventory)
	r.Post("/inventory/materials", createHandler(rt, s.CreateInventoryItem))
	r.Get("/inventory/materials/{id}", getHandler(rt, s.Inventory))
	r.Put("/inventory/materials/{id}", updateHandler(rt, s.Inventory))
	r.Delete("/inventory/materials/{id}", deleteHandler(rt, s.Inventory))

	r.Get("/tailors", rt.listTailors)
	r.Post("/tailors", createHandler(rt, s.CreateTailor))
	r.Get("/tailors/{id}", getHandler(rt, s.Tailors))
	r.Put("/tailors/{id}", updateHandler(rt, s.Tailors))
	r.Delete("/tailors/{id}", deleteHandler(rt, s.Tailors))

	r.Get("/products", rt.listProducts)
	r.Post("/products", createHandler(rt, s.CreateProduct))
	r.Get("/products/{id}", getHandler(rt, s.Products))
	r.Put("/products/{id}", updateHandler(rt, s.Products))
	r.Delete("/products/{id}", deleteHandler(rt, s.Products))

	r.Get("/dashboard/stats", rt.dashboardStats)
	r.Get("/dashboard/activity", rt.dashboardActivity)
	r.Get("/dashboard/urgent", rt.dashboardUrgent)
	r.Get("/dashboard/sales", rt.dashboardSales)

	r.Get("/invoices", rt.emptyList)
}

// ServeHTTP always routes as a top-level router. A chi route context left in
// r by an outer router (the gateway, a reverse proxy) is dropped so the mock
// table matches against the full URL path.
func (rt *Routes) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if chi.RouteContext(r.Context()) != nil {
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, nil))
	}
	rt.mux.ServeHTTP(w, r)
}

// Claims reports whether the table has an entry for method and path. The
// path is matched the way chi routes it: escaped form when one exists.
func (rt *Routes) Claims(method, path string) bool {
	return rt.mux.Match(chi.NewRouteContext(), method, path)
}

func (rt *Routes) ClaimsRequest(r *http.Request) bool {
	return rt.Claims(r.Method, routingPath(r.URL))
}

func routingPath(u *url.URL) string {
	if u.RawPath != "" {
		return u.RawPath
	}
	return u.Path
}

// idParam returns the decoded {id} segment. chi routes on RawPath when the
// URL has one, in which case the captured segment is still escaped.
func idParam(r *http.Request) string {
	id := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return id
	}
	if dec, err := url.PathUnescape(id); err == nil {
		return dec
	}
	return id
}

func listQuery(r *http.Request) ListQuery {
	q := r.URL.Query()
	return ListQuery{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Page:     queryInt(q, "page", DefaultPage),
		Limit:    queryInt(q, "limit", DefaultLimit),
	}
}

// queryInt falls back to def for missing, malformed or non-positive values.
func queryInt(q url.Values, key string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(q.Get(key)))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// readObject reads and normalizes the request body. Malformed bodies become
// {} so that creation defaults still apply.
func (rt *Routes) readObject(w http.ResponseWriter, r *http.Request) json.RawMessage {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		rt.log.Warn("read request body failed", zap.Error(err), zap.String("path", r.URL.Path))
	}

	obj, coerced := NormalizeBody(raw)
	if coerced {
		rt.log.Warn("request body coerced to empty object",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("bytes", len(raw)),
		)
	}
	return obj
}

func (rt *Routes) listCustomers(w http.ResponseWriter, r *http.Request) {
	items, meta := rt.store.ListCustomers(listQuery(r))
	kit.WriteData(w, http.StatusOK, items, meta)
}

func (rt *Routes) listOrders(w http.ResponseWriter, r *http.Request) {
	kit.WriteData(w, http.StatusOK, rt.store.ListOrders(listQuery(r)), nil)
}

func (rt *Routes) listInventory(w http.ResponseWriter, r *http.Request) {
	kit.WriteData(w, http.StatusOK, rt.store.ListInventory(listQuery(r)), nil)
}

func (rt *Routes) listTailors(w http.ResponseWriter, r *http.Request) {
	kit.WriteData(w, http.StatusOK, rt.store.ListTailors(listQuery(r)), nil)
}

func (rt *Routes) listProducts(w http.ResponseWriter, r *http.Request) {
	kit.WriteData(w, http.StatusOK, rt.store.ListProducts(listQuery(r)), nil)
}

func createHandler[T Keyed](rt *Routes, create func(json.RawMessage) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := create(rt.readObject(w, r))
		if err != nil {
			rt.writeStoreError(w, r, err)
			return
		}
		kit.WriteData(w, http.StatusCreated, rec, nil)
	}
}

func getHandler[T Keyed](rt *Routes, c *Collection[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := c.Get(idParam(r))
		if err != nil {
			rt.writeStoreError(w, r, err)
			return
		}
		kit.WriteData(w, http.StatusOK, rec, nil)
	}
}

func updateHandler[T Keyed](rt *Routes, c *Collection[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := idParam(r)
		rec, err := c.Update(id, rt.readObject(w, r))
		if err != nil {
			rt.writeStoreError(w, r, err)
			return
		}
		kit.WriteData(w, http.StatusOK, rec, nil)
	}
}

func deleteHandler[T Keyed](rt *Routes, c *Collection[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := c.Delete(idParam(r)); err != nil {
			rt.writeStoreError(w, r, err)
			return
		}
		kit.WriteAck(w)
	}
}

func (rt *Routes) dashboardStats(w http.ResponseWriter, _ *http.Request) {
	kit.WriteData(w, http.StatusOK, rt.store.Dashboard().Stats, nil)
}

func (rt *Routes) dashboardActivity(w http.ResponseWriter, _ *http.Request) {
	kit.WriteData(w, http.StatusOK, rt.store.Dashboard().Activity, nil)
}

func (rt *Routes) dashboardUrgent(w http.ResponseWriter, _ *http.Request) {
	kit.WriteData(w, http.StatusOK, rt.store.Dashboard().Urgent, nil)
}

func (rt *Routes) dashboardSales(w http.ResponseWriter, _ *http.Request) {
	kit.WriteData(w, http.StatusOK, rt.store.Dashboard().Sales, nil)
}

func (rt *Routes) emptyList(w http.ResponseWriter, _ *http.Request) {
	kit.WriteData(w, http.StatusOK, []struct{}{}, nil)
}

func (rt *Routes) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var nf *NotFoundError
	switch {
	case errors.As(err, &nf):
		kit.WriteFailure(w, r, http.StatusNotFound, kit.ErrorBody{
			Code:    CodeNotFound,
			Message: nf.Error(),
			Entity:  nf.Entity,
			ID:      nf.ID,
		})
	case errors.Is(err, ErrInvalidPayload):
		kit.WriteError(w, r, http.StatusBadRequest, CodeValidation, err.Error(), nil)
	case errors.Is(err, ErrIDSpaceExhausted), errors.Is(err, ErrDuplicateID):
		rt.log.Error("id generation failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusConflict, CodeConflict, err.Error(), nil)
	default:
		rt.log.Error("mock handler failed", zap.Error(err), zap.String("path", r.URL.Path))
		kit.WriteError(w, r, http.StatusInternalServerError, CodeInternal, "server error", nil)
	}
}

// Error codes carried in failure envelopes.
const (
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION_ERROR"
	CodeConflict   = "CONFLICT"
	CodeInternal   = "INTERNAL_ERROR"
)
