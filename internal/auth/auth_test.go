package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail    = "owner@boutique.test"
	adminPassword = "stitch-me-up"
)

func newTestServer(t *testing.T) (*Server, *MemStore) {
	t.Helper()
	st := NewMemStore()
	st.cost = bcrypt.MinCost
	_, err := st.Create(adminEmail, adminPassword, RoleAdmin)
	require.NoError(t, err)

	return &Server{Log: zap.NewNop(), Accounts: st, JWT: NewTokenMaker("test-secret")}, st
}

func newRouter(s *Server) http.Handler {
	r := chi.NewRouter()
	s.Mount(r)
	return r
}

func login(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestMemStore_CreateAndVerify(t *testing.T) {
	_, st := newTestServer(t)

	u, err := st.Verify("  OWNER@boutique.test ", adminPassword)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, u.Role)
	assert.True(t, strings.HasPrefix(u.ID, "adm_"))

	_, err = st.Verify(adminEmail, "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = st.Verify("nobody@boutique.test", adminPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = st.Create(adminEmail, "another-pass", RoleAdmin)
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.Equal(t, 1, st.Len())
}

func TestTokenMaker_RoundTrip(t *testing.T) {
	tm := NewTokenMaker("secret")
	u := User{ID: "adm_1", Email: adminEmail, Role: RoleAdmin}

	tok, err := tm.New(u, time.Minute)
	require.NoError(t, err)

	c, err := tm.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "adm_1", c.UserID)
	assert.Equal(t, issuer, c.Issuer)

	_, err = NewTokenMaker("other").Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenMaker_Expired(t *testing.T) {
	tm := NewTokenMaker("secret")
	tm.now = func() time.Time { return time.Date(2024, 3, 8, 10, 0, 0, 0, time.UTC) }

	tok, err := tm.New(User{ID: "adm_1", Role: RoleAdmin}, time.Minute)
	require.NoError(t, err)

	tm.now = func() time.Time { return time.Date(2024, 3, 8, 10, 5, 0, 0, time.UTC) }
	_, err = tm.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogin_IssuesTokenAndWhoAmI(t *testing.T) {
	s, _ := newTestServer(t)
	h := newRouter(s)

	w := login(t, h, `{"email":"owner@boutique.test","password":"stitch-me-up"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var env struct {
		Data loginResp `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "Bearer", env.Data.TokenType)
	assert.Equal(t, int(defaultTokenTTL.Seconds()), env.Data.ExpiresIn)

	req := httptest.NewRequest(http.MethodGet, "/auth/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+env.Data.AccessToken)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"owner@boutique.test"`)
}

func TestLogin_Validation(t *testing.T) {
	s, _ := newTestServer(t)
	h := newRouter(s)

	w := login(t, h, `{"email":"not-an-email","password":"short"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var env struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, codeBadRequest, env.Error.Code)
	assert.Equal(t, "must be a valid email", env.Error.Details["email"])
	assert.Equal(t, "must be at least 8", env.Error.Details["password"])

	w = login(t, h, `{"email":"owner@boutique.test","password":"stitch-me-up","remember":true}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown fields are rejected")
}

func TestLogin_WrongPassword(t *testing.T) {
	s, _ := newTestServer(t)
	w := login(t, newRouter(s), `{"email":"owner@boutique.test","password":"not-the-password"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_RateLimited(t *testing.T) {
	s, _ := newTestServer(t)
	h := newRouter(s)

	for i := 0; i < loginLimitPerMin; i++ {
		w := login(t, h, `{"email":"owner@boutique.test","password":"not-the-password"}`)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}
	w := login(t, h, `{"email":"owner@boutique.test","password":"stitch-me-up"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRequireAdminForWrites(t *testing.T) {
	tm := NewTokenMaker("secret")
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := RequireAdminForWrites(tm)(ok)

	do := func(method, token string) int {
		req := httptest.NewRequest(method, "/api/tailors", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	admin, err := tm.New(User{ID: "adm_1", Role: RoleAdmin}, time.Minute)
	require.NoError(t, err)
	staff, err := tm.New(User{ID: "usr_1", Role: "staff"}, time.Minute)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, do(http.MethodGet, ""))
	assert.Equal(t, http.StatusUnauthorized, do(http.MethodPost, ""))
	assert.Equal(t, http.StatusUnauthorized, do(http.MethodPut, "garbage"))
	assert.Equal(t, http.StatusForbidden, do(http.MethodDelete, staff))
	assert.Equal(t, http.StatusNoContent, do(http.MethodPost, admin))
}
