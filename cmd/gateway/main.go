package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"BoutiqueAdmin/internal/auth"
	"BoutiqueAdmin/internal/config"
	"BoutiqueAdmin/internal/gateway"
	"BoutiqueAdmin/internal/mockapi"
	"BoutiqueAdmin/pkg/kit"
)

func main() {
	service := "gateway"

	cfg, err := config.Load()
	if err != nil {
		boot := kit.NewLogger(service, "info")
		boot.Fatal("invalid configuration", zap.Error(err))
	}

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	deps := gateway.Deps{
		BackendURL:    cfg.BackendURL,
		BasePath:      cfg.BasePath,
		FallbackOn5xx: cfg.FallbackOn5xx,
		ProxyTimeout:  cfg.ProxyTimeout,
		CORSOrigins:   cfg.CORSOrigins,
		Store:         mockapi.NewStore(mockapi.DefaultSeed()),
		TokenTTL:      cfg.TokenTTL,
		AuthRequired:  cfg.AuthRequired,
	}

	if cfg.AdminConfigured() && cfg.JWTSecret != "" {
		accounts := auth.NewMemStore()
		if _, err := accounts.Create(cfg.AdminEmail, cfg.AdminPassword, auth.RoleAdmin); err != nil {
			log.Fatal("seed admin account failed", zap.Error(err))
		}
		deps.Accounts = accounts
		deps.JWT = auth.NewTokenMaker(cfg.JWTSecret)
	} else {
		log.Warn("admin auth disabled: ADMIN_EMAIL, ADMIN_PASSWORD and JWT_SECRET not all set")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	h, err := gateway.NewHandler(deps, gateway.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.MetricsToken != "",
		MetricsToken:   cfg.MetricsToken,
	})
	if err != nil {
		log.Fatal("init gateway handler failed", zap.Error(err))
	}

	mode := "mock"
	if cfg.BackendURL != "" {
		mode = "proxy"
	}
	log.Info("gateway configured",
		zap.String("mode", mode),
		zap.String("backend_url", cfg.BackendURL),
		zap.String("base_path", cfg.BasePath),
		zap.Bool("auth_required", cfg.AuthRequired),
	)

	if err := kit.RunHTTPServer(context.Background(), cfg.Addr(), h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
