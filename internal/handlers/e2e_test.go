package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/metrics"
	"jobboard/internal/middleware"
	"jobboard/internal/models"
	"jobboard/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type E2ETestSuite struct {
	suite.Suite
	e       *echo.Echo
	tenants *memTenants
	users   *memUsers
	tokens  *memTokens
	acme    *models.Tenant
	globex  *models.Tenant
}

func TestE2ETestSuite(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}

func (suite *E2ETestSuite) SetupTest() {
	log := zap.NewNop()
	m := metrics.New()

	suite.tenants = &memTenants{rows: map[uuid.UUID]*models.Tenant{}}
	suite.users = &memUsers{rows: map[uuid.UUID]*models.User{}}
	suite.tokens = &memTokens{rows: map[string]*models.RefreshToken{}}
	profiles := &memProfiles{rows: map[uuid.UUID]*models.Profile{}}
	companies := memCompanies{}

	suite.acme = suite.tenants.add("acme", true)
	suite.globex = suite.tenants.add("globex", true)

	tokenService := services.NewTokenService(services.TokenConfig{
		AccessSecret:  "access-secret",
		AccessTTL:     15 * time.Minute,
		RefreshSecret: "refresh-secret",
		RefreshTTL:    24 * time.Hour,
	}, suite.tokens, m)
	tenantService := services.NewTenantService(suite.tenants)
	authService := services.NewAuthService(suite.users, suite.tenants, suite.tokens, profiles, tokenService, m, log, bcrypt.MinCost)
	userService := services.NewUserService(suite.users, profiles, companies, nil, log)

	suite.e = echo.New()
	suite.e.HTTPErrorHandler = common.HTTPErrorHandler(log)
	RegisterRoutes(suite.e.Group("/api"), &Handlers{
		Auth:         NewAuthHandlers(authService, userService, CookieConfig{AccessTTL: 15 * time.Minute, RefreshTTL: 24 * time.Hour}),
		Tenants:      NewTenantHandlers(tenantService),
		Users:        NewUserHandlers(userService),
		Companies:    NewCompanyHandlers(services.NewCompanyService(companies)),
		Jobs:         NewJobHandlers(nil),
		Applications: NewApplicationHandlers(nil),
	}, middleware.TenantResolver(tenantService, log), middleware.NewAuthMiddleware(authService, m))
}

func (suite *E2ETestSuite) call(method, host, path, body, bearer string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Host = host
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	suite.e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func (suite *E2ETestSuite) register(host, email, role string) {
	body := `{"name":"Jane Doe","email":"` + email + `","password":"secret1","role":"` + role + `"}`
	rec, _ := suite.call(http.MethodPost, host, "/api/auth/register", body, "")
	require.Equal(suite.T(), http.StatusCreated, rec.Code, rec.Body.String())
}

func (suite *E2ETestSuite) login(host, email string) models.LoginResult {
	body := `{"email":"` + email + `","password":"secret1"}`
	rec, env := suite.call(http.MethodPost, host, "/api/auth/login", body, "")
	require.Equal(suite.T(), http.StatusOK, rec.Code, rec.Body.String())

	var result models.LoginResult
	require.NoError(suite.T(), json.Unmarshal(env.Data, &result))
	return result
}

func (suite *E2ETestSuite) TestStudentSessionLifecycle() {
	suite.register("acme.localhost:3333", "Jane@Example.com", "student")
	result := suite.login("acme.localhost:3333", "jane@example.com")

	assert.Equal(suite.T(), models.RoleStudent, result.User.Role)
	assert.Equal(suite.T(), "jane@example.com", result.User.Email)
	assert.Equal(suite.T(), 1, suite.tokens.count())

	// Me carries the profile created at registration
	rec, env := suite.call(http.MethodGet, "acme.localhost:3333", "/api/auth/me", "", result.AccessToken)
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	var me models.UserProfile
	require.NoError(suite.T(), json.Unmarshal(env.Data, &me))
	assert.Equal(suite.T(), result.User.ID, me.ID)
	require.NotNil(suite.T(), me.Profile)

	// A student is not a company
	rec, env = suite.call(http.MethodPost, "acme.localhost:3333", "/api/companies", `{"name":"Initech"}`, result.AccessToken)
	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
	assert.Equal(suite.T(), "InsufficientPermissions", env.Error.Code)

	// Refresh, then logout, then the refresh token is dead
	rec, env = suite.call(http.MethodPost, "acme.localhost", "/api/auth/refresh", `{"refreshToken":"`+result.RefreshToken+`"}`, "")
	require.Equal(suite.T(), http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(suite.T(), string(env.Data), "accessToken")

	rec, _ = suite.call(http.MethodPost, "acme.localhost", "/api/auth/logout", `{"refreshToken":"`+result.RefreshToken+`"}`, "")
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), 0, suite.tokens.count())

	rec, env = suite.call(http.MethodPost, "acme.localhost", "/api/auth/refresh", `{"refreshToken":"`+result.RefreshToken+`"}`, "")
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
	assert.Equal(suite.T(), "InvalidRefreshToken", env.Error.Code)
}

func (suite *E2ETestSuite) TestLoginSetsHTTPOnlyCookies() {
	suite.register("acme.localhost", "sam@example.com", "company")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"sam@example.com","password":"secret1"}`))
	req.Host = "acme.localhost"
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	suite.e.ServeHTTP(rec, req)
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	cookies := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c
	}
	require.Contains(suite.T(), cookies, common.AccessTokenCookie)
	require.Contains(suite.T(), cookies, common.RefreshTokenCookie)
	assert.True(suite.T(), cookies[common.AccessTokenCookie].HttpOnly)
	assert.Equal(suite.T(), http.SameSiteStrictMode, cookies[common.RefreshTokenCookie].SameSite)
	assert.Equal(suite.T(), 900, cookies[common.AccessTokenCookie].MaxAge)

	// The access cookie alone authenticates
	me := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	me.Host = "acme.localhost"
	me.AddCookie(cookies[common.AccessTokenCookie])
	rec = httptest.NewRecorder()
	suite.e.ServeHTTP(rec, me)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func (suite *E2ETestSuite) TestSameEmailInTwoTenants() {
	suite.register("acme.localhost", "dup@example.com", "student")
	suite.register("globex.localhost", "dup@example.com", "student")

	rec, env := suite.call(http.MethodPost, "acme.localhost", "/api/auth/register",
		`{"name":"Jane Doe","email":"dup@example.com","password":"secret1","role":"student"}`, "")
	assert.Equal(suite.T(), http.StatusConflict, rec.Code)
	assert.Equal(suite.T(), "Conflict", env.Error.Code)

	acme := suite.login("acme.localhost", "dup@example.com")
	globex := suite.login("globex.localhost", "dup@example.com")
	assert.NotEqual(suite.T(), acme.User.ID, globex.User.ID)

	stored, err := suite.users.GetByID(context.Background(), acme.User.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.acme.ID, stored.TenantID)
}

func (suite *E2ETestSuite) TestTokenFromAnotherTenantIsRejected() {
	suite.register("acme.localhost", "jane@example.com", "student")
	result := suite.login("acme.localhost", "jane@example.com")

	rec, env := suite.call(http.MethodGet, "globex.localhost", "/api/auth/me", "", result.AccessToken)
	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
	assert.Equal(suite.T(), "TenantMismatch", env.Error.Code)
}

func (suite *E2ETestSuite) TestWrongPasswordAndUnknownEmailLookAlike() {
	suite.register("acme.localhost", "jane@example.com", "student")

	recA, envA := suite.call(http.MethodPost, "acme.localhost", "/api/auth/login", `{"email":"jane@example.com","password":"wrong-pass"}`, "")
	recB, envB := suite.call(http.MethodPost, "acme.localhost", "/api/auth/login", `{"email":"nobody@example.com","password":"secret1"}`, "")

	assert.Equal(suite.T(), http.StatusUnauthorized, recA.Code)
	assert.Equal(suite.T(), recA.Code, recB.Code)
	assert.Equal(suite.T(), envA.Error, envB.Error)
}

func (suite *E2ETestSuite) TestTenantResolutionFailures() {
	rec, env := suite.call(http.MethodPost, "localhost:3333", "/api/auth/login", `{}`, "")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(suite.T(), "TenantResolutionError", env.Error.Code)

	rec, env = suite.call(http.MethodPost, "nope.localhost", "/api/auth/login", `{}`, "")
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	assert.Equal(suite.T(), "TenantNotFound", env.Error.Code)

	suite.tenants.add("dormant", false)
	rec, env = suite.call(http.MethodPost, "dormant.localhost", "/api/auth/login", `{}`, "")
	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
	assert.Equal(suite.T(), "TenantInactive", env.Error.Code)
}

func (suite *E2ETestSuite) TestTenantRoutesRequireGlobalAdmin() {
	suite.register("acme.localhost", "jane@example.com", "student")
	result := suite.login("acme.localhost", "jane@example.com")

	rec, env := suite.call(http.MethodGet, "api.example.com", "/api/tenants", "", result.AccessToken)
	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
	assert.Equal(suite.T(), "InsufficientPermissions", env.Error.Code)

	rec, env = suite.call(http.MethodGet, "api.example.com", "/api/tenants", "", "")
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
	assert.Equal(suite.T(), "NoToken", env.Error.Code)
}

func (suite *E2ETestSuite) TestDeactivatedTenantBlocksRoutesOutsideResolver() {
	suite.register("acme.localhost", "jane@example.com", "student")
	result := suite.login("acme.localhost", "jane@example.com")

	suite.tenants.mu.Lock()
	suite.tenants.rows[suite.acme.ID].IsActive = false
	suite.tenants.mu.Unlock()

	rec, env := suite.call(http.MethodGet, "api.example.com", "/api/tenants/"+suite.acme.ID.String(), "", result.AccessToken)
	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
	assert.Equal(suite.T(), "TenantInactive", env.Error.Code)
}
