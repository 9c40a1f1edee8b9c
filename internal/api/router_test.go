package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krm/catalog-api/internal/core/domain"
	"github.com/krm/catalog-api/internal/pkg/config"
)

const (
	testUser     = "Kishore Ram M"
	testPassword = "KRM143"
)

func newTestRouter(t *testing.T, env map[string]string, rdb *redis.Client) *echo.Echo {
	t.Helper()
	if _, ok := env["AUTH_BCRYPT_COST"]; !ok {
		env["AUTH_BCRYPT_COST"] = "4"
	}
	cfg, err := config.LoadWith(context.Background(), envconfig.MapLookuper(env))
	require.NoError(t, err)

	e, err := NewRouter(Deps{
		Config:   cfg,
		Logger:   zerolog.Nop(),
		Registry: prometheus.NewRegistry(),
		Redis:    rdb,
	})
	require.NoError(t, err)
	return e
}

type requestOpt func(*http.Request)

func withBasic(user, pass string) requestOpt {
	return func(r *http.Request) { r.SetBasicAuth(user, pass) }
}

func withBearer(token string) requestOpt {
	return func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer "+token) }
}

func do(e *echo.Echo, method, path, body string, opts ...requestOpt) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_GateRejectsMissingCredentials(t *testing.T) {
	e := newTestRouter(t, map[string]string{}, nil)

	rec := do(e, http.MethodGet, "/krm/greet", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, `Basic realm="Restricted"`, rec.Header().Get(echo.HeaderWWWAuthenticate))
	assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
}

func TestRouter_GreetWithConfiguredUser(t *testing.T) {
	e := newTestRouter(t, map[string]string{}, nil)

	rec := do(e, http.MethodGet, "/krm/greet", "", withBasic(testUser, testPassword))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "WELCOME TO KRM", rec.Body.String())
}

func TestRouter_WrongSecretAndUnknownUserLookAlike(t *testing.T) {
	e := newTestRouter(t, map[string]string{}, nil)

	bad := do(e, http.MethodGet, "/krm/greet", "", withBasic(testUser, "nope"))
	unknown := do(e, http.MethodGet, "/krm/greet", "", withBasic("someone", testPassword))

	assert.Equal(t, http.StatusUnauthorized, bad.Code)
	assert.Equal(t, bad.Code, unknown.Code)
	assert.Equal(t, bad.Body.String(), unknown.Body.String())
	assert.Equal(t, bad.Header().Get(echo.HeaderWWWAuthenticate), unknown.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestRouter_EveryRequestIsReauthenticated(t *testing.T) {
	e := newTestRouter(t, map[string]string{}, nil)

	first := do(e, http.MethodGet, "/krm/greet", "", withBasic(testUser, testPassword))
	require.Equal(t, http.StatusOK, first.Code)
	assert.Empty(t, first.Header().Get("Set-Cookie"))

	second := do(e, http.MethodGet, "/krm/greet", "")
	assert.Equal(t, http.StatusUnauthorized, second.Code)
}

func TestRouter_OperationalRoutesAreOpen(t *testing.T) {
	e := newTestRouter(t, map[string]string{}, nil)

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/health/ready", "").Code)

	// Touch the catalog so the gauge has a value.
	do(e, http.MethodGet, "/products", "", withBasic(testUser, testPassword))
	metricsRec := do(e, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, metricsRec.Code)
	assert.Contains(t, metricsRec.Body.String(), "catalog_products 10")
	assert.Contains(t, metricsRec.Body.String(), "catalog_auth_attempts_total")
}

func TestRouter_KRMRoutes(t *testing.T) {
	e := newTestRouter(t, map[string]string{}, nil)
	auth := withBasic(testUser, testPassword)

	assert.Equal(t, "42", do(e, http.MethodGet, "/krm/42", "", auth).Body.String())
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/krm/abc", "", auth).Code)
	assert.Equal(t, " KING KISHORE :ram", do(e, http.MethodGet, "/krm/r?k=ram", "", auth).Body.String())
	assert.Equal(t, "KRM IS BACK ", do(e, http.MethodPost, "/krm/post", "", auth).Body.String())
}

func TestRouter_CatalogScenario(t *testing.T) {
	e := newTestRouter(t, map[string]string{}, nil)
	auth := withBasic(testUser, testPassword)

	var products []domain.Product
	rec := do(e, http.MethodGet, "/products", "", auth)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 10)
	assert.Equal(t, domain.Product{ID: 101, Name: "Product A", Price: 1000}, products[0])
	assert.Equal(t, domain.Product{ID: 110, Name: "Product J", Price: 5500}, products[9])

	rec = do(e, http.MethodPost, "/products", `{"id":111,"name":"Product K","price":6000}`, auth)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(e, http.MethodGet, "/products", "", auth)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 11)

	rec = do(e, http.MethodDelete, "/products/105", "", auth)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(e, http.MethodGet, "/products/105", "", auth)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"product not found"}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/products", "", auth)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 10)
}

func TestRouter_CatalogStrictErrors(t *testing.T) {
	e := newTestRouter(t, map[string]string{}, nil)
	auth := withBasic(testUser, testPassword)

	rec := do(e, http.MethodPost, "/products", `{"id":101,"name":"dup","price":1}`, auth)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(e, http.MethodPut, "/products", `{"id":999,"name":"ghost","price":1}`, auth)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodPost, "/products", `{"id":1,"price":1}`, auth)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name is required")
}

func TestRouter_UserRegistration(t *testing.T) {
	e := newTestRouter(t, map[string]string{}, nil)
	auth := withBasic(testUser, testPassword)

	rec := do(e, http.MethodPost, "/user/", `{"UserId":1,"UserName":"ram","UserPassword":"secret1"}`, auth)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"UserId":1,"UserName":"ram"}`, rec.Body.String())

	rec = do(e, http.MethodPost, "/user/", `{"UserId":2,"UserName":"ram","UserPassword":"secret2"}`, auth)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(e, http.MethodGet, "/user/", "", auth)
	assert.JSONEq(t, `[{"UserId":1,"UserName":"ram"}]`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/user/9", "", auth).Code)
}

func TestRouter_UsersPrincipalSource(t *testing.T) {
	e := newTestRouter(t, map[string]string{"AUTH_PRINCIPAL_SOURCE": "users"}, nil)

	// Empty user store: nobody gets in, including the static default.
	rec := do(e, http.MethodGet, "/krm/greet", "", withBasic(testUser, testPassword))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_Homes(t *testing.T) {
	e := newTestRouter(t, map[string]string{}, nil)
	auth := withBasic(testUser, testPassword)

	rec := do(e, http.MethodPost, "/homes", `{"id":"h1","place":"Chennai","name":"KRM"}`, auth)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodPost, "/homes", `{"id":"h1","place":"Madurai","name":"KRM"}`, auth)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/homes", "", auth)
	assert.JSONEq(t, `[{"id":"h1","place":"Madurai","name":"KRM"}]`, rec.Body.String())
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/homes/none", "", auth).Code)
}

func TestRouter_Me(t *testing.T) {
	e := newTestRouter(t, map[string]string{}, nil)

	rec := do(e, http.MethodGet, "/me", "", withBasic(testUser, testPassword))
	assert.JSONEq(t, `{"username":"Kishore Ram M","roles":["USER"]}`, rec.Body.String())
}

func TestRouter_RoleRequired(t *testing.T) {
	e := newTestRouter(t, map[string]string{"AUTH_ROLE": "ADMIN"}, nil)

	rec := do(e, http.MethodGet, "/krm/greet", "", withBasic(testUser, testPassword))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"access forbidden"}`, rec.Body.String())
}

func TestRouter_ExemptPathsBypassGate(t *testing.T) {
	for _, policy := range []string{"basic", "bearer"} {
		t.Run(policy, func(t *testing.T) {
			e := newTestRouter(t, map[string]string{
				"AUTH_POLICY":       policy,
				"JWT_SECRET":        "test-secret",
				"AUTH_EXEMPT_PATHS": "/krm/greet",
			}, nil)

			rec := do(e, http.MethodGet, "/krm/greet", "")
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "WELCOME TO KRM", rec.Body.String())

			rec = do(e, http.MethodGet, "/products", "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRouter_TokenRequiresRole(t *testing.T) {
	e := newTestRouter(t, map[string]string{
		"AUTH_POLICY": "bearer",
		"JWT_SECRET":  "test-secret",
		"AUTH_ROLE":   "ADMIN",
	}, nil)

	rec := do(e, http.MethodPost, "/auth/token", "", withBasic(testUser, testPassword))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotContains(t, rec.Body.String(), "token")
}

func TestRouter_ElementList(t *testing.T) {
	e := newTestRouter(t, map[string]string{}, nil)
	auth := withBasic(testUser, testPassword)

	rec := do(e, http.MethodPost, "/list", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/list", strings.NewReader("krm"))
	req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)
	auth(req)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Element added: krm", rec.Body.String())

	rec = do(e, http.MethodGet, "/list", "", auth)
	assert.JSONEq(t, `["krm"]`, rec.Body.String())

	rec = do(e, http.MethodDelete, "/list", "", auth)
	assert.Equal(t, "All elements cleared.", rec.Body.String())

	rec = do(e, http.MethodGet, "/list", "", auth)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRouter_BearerPolicy(t *testing.T) {
	e := newTestRouter(t, map[string]string{
		"AUTH_POLICY": "bearer",
		"JWT_SECRET":  "test-secret",
	}, nil)

	rec := do(e, http.MethodPost, "/auth/token", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(e, http.MethodPost, "/auth/token", "", withBasic(testUser, testPassword))
	require.Equal(t, http.StatusOK, rec.Code)
	var tok struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))
	require.NotEmpty(t, tok.Token)

	rec = do(e, http.MethodGet, "/krm/greet", "", withBearer(tok.Token))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/krm/greet", "", withBasic(testUser, testPassword))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(e, http.MethodGet, "/krm/greet", "", withBearer("garbage"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ThrottleLocksOutAfterFailures(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	e := newTestRouter(t, map[string]string{
		"AUTH_THROTTLE_ENABLED":      "true",
		"AUTH_THROTTLE_MAX_FAILURES": "2",
	}, rdb)

	for i := 0; i < 2; i++ {
		rec := do(e, http.MethodGet, "/krm/greet", "", withBasic(testUser, "wrong"))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := do(e, http.MethodGet, "/krm/greet", "", withBasic(testUser, testPassword))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderRetryAfter))

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/health/ready", "").Code)
}

func TestRouter_ThrottleRequiresRedis(t *testing.T) {
	cfg, err := config.LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"AUTH_THROTTLE_ENABLED": "true",
	}))
	require.NoError(t, err)

	_, err = NewRouter(Deps{Config: cfg, Logger: zerolog.Nop()})
	assert.Error(t, err)
}
