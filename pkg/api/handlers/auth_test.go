package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jordanlanch/salespipe/config"
	"github.com/jordanlanch/salespipe/ent"
	"github.com/jordanlanch/salespipe/ent/enttest"
	"github.com/jordanlanch/salespipe/ent/user"
	"github.com/jordanlanch/salespipe/pkg/auth"
	"github.com/jordanlanch/salespipe/pkg/cache"
	"github.com/labstack/echo/v4"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 24,
	}
}

func setupAuthTest(t *testing.T) (*ent.Client, *AuthHandler) {
	client := enttest.Open(t, "sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name()))
	t.Cleanup(func() { client.Close() })

	handler := NewAuthHandler(client, testConfig(), nil, nil, nil)
	return client, handler
}

func postJSON(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegister(t *testing.T) {
	_, handler := setupAuthTest(t)

	e := echo.New()
	c, rec := postJSON(e, "/api/v1/auth/register",
		`{"email":"rep@example.com","password":"s3cret-pass","first_name":"Rita","last_name":"Rep"}`)

	require.NoError(t, handler.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])

	created := resp["user"].(map[string]interface{})
	assert.Equal(t, "rep@example.com", created["email"])
	assert.Equal(t, "sales_executive", created["role"])
	assert.Equal(t, true, created["is_active"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	client, handler := setupAuthTest(t)

	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	client.User.Create().
		SetEmail("rep@example.com").
		SetPasswordHash(hash).
		SetFirstName("Rita").
		SetLastName("Rep").
		SetRole(user.RoleSalesExecutive).
		SaveX(context.Background())

	e := echo.New()
	c, rec := postJSON(e, "/api/v1/auth/register",
		`{"email":"rep@example.com","password":"s3cret-pass","first_name":"Rita","last_name":"Rep"}`)

	require.NoError(t, handler.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "user_exists", resp["error"])
}

func TestRegister_InvalidPayload(t *testing.T) {
	_, handler := setupAuthTest(t)

	e := echo.New()
	c, rec := postJSON(e, "/api/v1/auth/register",
		`{"email":"not-an-email","password":"short","first_name":"","last_name":""}`)

	require.NoError(t, handler.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	client, handler := setupAuthTest(t)

	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	seeded := client.User.Create().
		SetEmail("rep@example.com").
		SetPasswordHash(hash).
		SetFirstName("Rita").
		SetLastName("Rep").
		SetRole(user.RoleSalesExecutive).
		SaveX(context.Background())

	e := echo.New()
	c, rec := postJSON(e, "/api/v1/auth/login",
		`{"email":"rep@example.com","password":"s3cret-pass"}`)

	require.NoError(t, handler.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])

	// Login stamps last_login_at
	reloaded := client.User.GetX(context.Background(), seeded.ID)
	assert.NotNil(t, reloaded.LastLoginAt)
}

func TestLogin_WrongPassword(t *testing.T) {
	client, handler := setupAuthTest(t)

	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	client.User.Create().
		SetEmail("rep@example.com").
		SetPasswordHash(hash).
		SetFirstName("Rita").
		SetLastName("Rep").
		SetRole(user.RoleSalesExecutive).
		SaveX(context.Background())

	e := echo.New()
	c, rec := postJSON(e, "/api/v1/auth/login",
		`{"email":"rep@example.com","password":"wrong-pass"}`)

	require.NoError(t, handler.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_credentials", resp["error"])
}

func TestLogin_UnknownUser(t *testing.T) {
	_, handler := setupAuthTest(t)

	e := echo.New()
	c, rec := postJSON(e, "/api/v1/auth/login",
		`{"email":"ghost@example.com","password":"whatever1"}`)

	require.NoError(t, handler.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_DisabledAccount(t *testing.T) {
	client, handler := setupAuthTest(t)

	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	client.User.Create().
		SetEmail("rep@example.com").
		SetPasswordHash(hash).
		SetFirstName("Rita").
		SetLastName("Rep").
		SetRole(user.RoleSalesExecutive).
		SetIsActive(false).
		SaveX(context.Background())

	e := echo.New()
	c, rec := postJSON(e, "/api/v1/auth/login",
		`{"email":"rep@example.com","password":"s3cret-pass"}`)

	require.NoError(t, handler.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "account_disabled", resp["error"])
}

func TestMe(t *testing.T) {
	client, handler := setupAuthTest(t)

	actor := client.User.Create().
		SetEmail("rep@example.com").
		SetPasswordHash("hash").
		SetFirstName("Rita").
		SetLastName("Rep").
		SetRole(user.RoleSalesExecutive).
		SaveX(context.Background())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("actor", actor)

	require.NoError(t, handler.Me(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "rep@example.com", resp["email"])
}

func TestLogout_RevokesToken(t *testing.T) {
	client := enttest.Open(t, "sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name()))
	t.Cleanup(func() { client.Close() })

	mr := miniredis.RunT(t)
	cacheClient, err := cache.NewClient(fmt.Sprintf("redis://%s", mr.Addr()))
	require.NoError(t, err)
	t.Cleanup(func() { cacheClient.Close() })
	blacklist := auth.NewTokenBlacklist(cacheClient)

	cfg := testConfig()
	handler := NewAuthHandler(client, cfg, blacklist, nil, nil)

	token, err := auth.GenerateJWT(1, "rep@example.com", "sales_executive", cfg.JWTSecret, cfg.JWTExpirationHours)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("token", token)

	require.NoError(t, handler.Logout(c))
	require.Equal(t, http.StatusOK, rec.Code)

	revoked, err := blacklist.IsBlacklisted(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = auth.ValidateJWTWithBlacklist(context.Background(), token, cfg.JWTSecret, blacklist)
	assert.Error(t, err)
}

func TestLogout_NoToken(t *testing.T) {
	_, handler := setupAuthTest(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.Logout(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
