package gateway

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"BoutiqueAdmin/internal/auth"
	"BoutiqueAdmin/internal/mockapi"
	"BoutiqueAdmin/pkg/kit"
)

const (
	codeBadGateway = "BAD_GATEWAY"
	codeTooLarge   = "PAYLOAD_TOO_LARGE"
)

// newAPIHandler serves the dashboard API. Without a backend the mock route
// table answers directly. With one, requests are proxied and the mock only
// steps in when the backend cannot be reached.
func newAPIHandler(deps Deps, httpDeps HTTPDeps) (http.Handler, error) {
	log := httpDeps.Log

	mockDeps := mockapi.HandlerDeps{Log: log, BasePath: deps.BasePath}
	if httpDeps.Registry != nil {
		mockDeps.Registry = httpDeps.Registry
	}

	if deps.BackendURL == "" {
		routes := mockapi.NewRoutes(deps.Store, mockDeps)
		return mockOnly(routes), nil
	}

	target, err := url.Parse(deps.BackendURL)
	if err != nil {
		return nil, fmt.Errorf("gateway: backend url: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("gateway: backend url %q must be absolute", deps.BackendURL)
	}

	// Proxied requests carry the backend's path prefix, so the table is
	// mounted under it as well.
	mockDeps.BasePath = strings.TrimRight(target.Path, "/") + deps.BasePath
	routes := mockapi.NewRoutes(deps.Store, mockDeps)

	tr := mockapi.NewTransport(backendTransport(deps), routes, log)
	tr.FallbackOn5xx = deps.FallbackOn5xx

	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		Transport: tr,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Error(err),
			}
			switch {
			case errors.Is(err, mockapi.ErrBodyTooLarge):
				log.Info("request body too large", fields...)
				kit.WriteError(w, r, http.StatusRequestEntityTooLarge, codeTooLarge, "request body too large", nil)
			case r.Context().Err() != nil:
				// Client went away; the mock was not consulted.
				log.Debug("proxy request cancelled", fields...)
				kit.WriteError(w, r, http.StatusBadGateway, codeBadGateway, "request cancelled", nil)
			default:
				log.Warn("backend unreachable and route not mocked", fields...)
				kit.WriteError(w, r, http.StatusBadGateway, codeBadGateway, "backend unavailable", nil)
			}
		},
	}, nil
}

func backendTransport(deps Deps) http.RoundTripper {
	base := http.DefaultTransport.(*http.Transport).Clone()
	if deps.ProxyTimeout > 0 {
		base.DialContext = (&net.Dialer{Timeout: deps.ProxyTimeout}).DialContext
		base.ResponseHeaderTimeout = deps.ProxyTimeout
	}
	return base
}

// mockOnly answers unclaimed requests with the same envelope the mock uses
// for misses, instead of chi's plain-text 404.
func mockOnly(routes *mockapi.Routes) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !routes.ClaimsRequest(r) {
			kit.WriteError(w, r, http.StatusNotFound, mockapi.CodeNotFound, "no such route", nil)
			return
		}
		w.Header().Set(kit.SourceHeader, "true")
		routes.ServeHTTP(w, r)
	})
}

// forwardIdentity replaces any client-supplied identity headers with the
// authenticated admin, if there is one.
func forwardIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Header.Del("X-Admin-Id")
		r.Header.Del("X-Admin-Email")

		if c, ok := auth.ClaimsFromContext(r.Context()); ok {
			r.Header.Set("X-Admin-Id", c.UserID)
			r.Header.Set("X-Admin-Email", c.Email)
		}

		next.ServeHTTP(w, r)
	})
}
