package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"BoutiqueAdmin/internal/auth"
	"BoutiqueAdmin/internal/mockapi"
	"BoutiqueAdmin/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

type Deps struct {
	// BackendURL is the origin of the real API. Empty serves everything from
	// the mock.
	BackendURL    string
	BasePath      string
	FallbackOn5xx bool
	ProxyTimeout  time.Duration
	CORSOrigins   []string

	Store *mockapi.Store

	// Accounts and JWT enable /auth. AuthRequired additionally guards every
	// mutating API call.
	Accounts     auth.Verifier
	JWT          *auth.TokenMaker
	TokenTTL     time.Duration
	AuthRequired bool
}

const (
	readyTimeout      = 2 * time.Second
	readyProbeTimeout = 700 * time.Millisecond
)

var readyClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     30 * time.Second,
	},
}

func NewHandler(deps Deps, httpDeps HTTPDeps) (http.Handler, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("gateway: store is required")
	}
	if deps.AuthRequired && deps.JWT == nil {
		return nil, fmt.Errorf("gateway: auth required but no token maker configured")
	}
	if httpDeps.Log == nil {
		httpDeps.Log = zap.NewNop()
	}
	deps.BasePath = mockapi.NormalizeBasePath(deps.BasePath)

	api, err := newAPIHandler(deps, httpDeps)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	setupMiddleware(r, deps, httpDeps)
	setupMetrics(r, httpDeps)

	r.Get("/healthz", healthz)
	r.Get("/readyz", readyz(deps, httpDeps.Log))

	if deps.Accounts != nil && deps.JWT != nil {
		(&auth.Server{
			Log:      httpDeps.Log,
			Accounts: deps.Accounts,
			JWT:      deps.JWT,
			TokenTTL: deps.TokenTTL,
		}).Mount(r)
	}

	r.Group(func(ar chi.Router) {
		if deps.JWT != nil {
			ar.Use(auth.RequireAdmin(deps.JWT))
		}
		ar.Post("/admin/mock/reset", resetMock(deps.Store, httpDeps.Log))
	})

	r.Group(func(pr chi.Router) {
		if deps.AuthRequired {
			pr.Use(auth.RequireAdminForWrites(deps.JWT))
		}
		pr.Use(forwardIdentity)
		if deps.BasePath != "" {
			pr.Handle(deps.BasePath, api)
		}
		pr.Handle(deps.BasePath+"/*", api)
	})

	return r, nil
}

func setupMiddleware(r *chi.Mux, deps Deps, httpDeps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(httpDeps.Log))

	if len(deps.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins:   deps.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
			ExposedHeaders:   []string{kit.SourceHeader, "Retry-After"},
			AllowCredentials: true,
			MaxAge:           300,
		}).Handler)
	}
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.RoutePatternOrPath))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// readyz always answers 200: an unreachable backend is covered by the mock.
// The body says which side is serving.
func readyz(deps Deps, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.BackendURL == "" {
			kit.WriteData(w, http.StatusOK, map[string]string{"mode": "mock"}, nil)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		backend := "up"
		if err := checkReady(ctx, deps.BackendURL); err != nil {
			log.Warn("readyz: backend unreachable", zap.Error(err))
			backend = "down"
		}
		kit.WriteData(w, http.StatusOK, map[string]string{"mode": "proxy", "backend": backend}, nil)
	}
}

// checkReady counts any answer below 500 as a live backend; the origin may
// not serve anything at its root.
func checkReady(ctx context.Context, url string) error {
	cctx, cancel := context.WithTimeout(ctx, readyProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := readyClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("status=%d", resp.StatusCode)
	}

	return nil
}

func resetMock(store *mockapi.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store.Reset()
		log.Info("mock store reset", zap.String("request_id", chimw.GetReqID(r.Context())))
		kit.WriteAck(w)
	}
}
