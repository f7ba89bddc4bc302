package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"BoutiqueAdmin/pkg/kit"
)

const (
	maxBodyBytes = 1 << 20

	loginLimitPerMin = 5
	limitWindow      = 60 * time.Second

	defaultTokenTTL = 15 * time.Minute

	codeBadRequest   = "VALIDATION_ERROR"
	codeUnauthorized = "UNAUTHORIZED"
	codeInternal     = "INTERNAL_ERROR"
)

type Server struct {
	Log      *zap.Logger
	Accounts Verifier
	JWT      *TokenMaker
	TokenTTL time.Duration
}

// Mount registers /auth/login (rate limited per client IP) and /auth/whoami.
func (s *Server) Mount(r chi.Router) {
	limiter := kit.NewIPRateLimiter(loginLimitPerMin, limitWindow)

	r.Route("/auth", func(rr chi.Router) {
		rr.With(limiter.Middleware).Post("/login", s.handleLogin)
		rr.With(RequireAdmin(s.JWT)).Get("/whoami", s.handleWhoAmI)
	})
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type loginResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := decodeJSONBody(w, r, &req); err != nil {
		var re *requestError
		if errors.As(err, &re) && re.details != nil {
			kit.WriteError(w, r, http.StatusBadRequest, codeBadRequest, re.msg, re.details)
			return
		}
		kit.WriteError(w, r, http.StatusBadRequest, codeBadRequest, err.Error(), nil)
		return
	}

	u, err := s.Accounts.Verify(req.Email, req.Password)
	if err != nil {
		s.Log.Info("login rejected", zap.String("email", normalizeEmail(req.Email)))
		kit.WriteError(w, r, http.StatusUnauthorized, codeUnauthorized, "invalid credentials", nil)
		return
	}

	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	tok, err := s.JWT.New(u, ttl)
	if err != nil {
		s.Log.Error("token issue", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, codeInternal, "server error", nil)
		return
	}

	kit.WriteData(w, http.StatusOK, loginResp{
		AccessToken: tok,
		TokenType:   "Bearer",
		ExpiresIn:   int(ttl.Seconds()),
	}, nil)
}

func (s *Server) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	c, _ := ClaimsFromContext(r.Context())
	kit.WriteData(w, http.StatusOK, map[string]any{
		"user_id": c.UserID,
		"email":   c.Email,
		"role":    c.Role,
	}, nil)
}
