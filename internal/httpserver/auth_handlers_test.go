package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arkumar/ecommerce-backend/internal/transport"
)

func TestRegister_ReturnsTokenAndCookies(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/auth/register", transport.RegisterRequest{
		Username:  "alice",
		Email:     "alice@x.com",
		Password:  "password123",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	require.NoError(t, env.Auth.Register(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "Bearer", resp.TokenType)
	require.Equal(t, "alice", resp.Username)
	require.Equal(t, "alice@x.com", resp.Email)
	require.False(t, resp.IsAdmin)

	requireCookie(t, rec, "accessToken")
	requireCookie(t, rec, "refreshToken")
}

func TestRegister_ValidationErrors(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/auth/register", transport.RegisterRequest{
		Username:  "alice",
		Email:     "not-an-email",
		Password:  "pw",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	require.NoError(t, env.Auth.Register(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.Errors, "email")
	require.Contains(t, resp.Errors, "password")
}

func TestRegister_DuplicateUsernameConflict(t *testing.T) {
	env := newTestEnv(t)

	body := transport.RegisterRequest{
		Username:  "alice",
		Email:     "alice@x.com",
		Password:  "password123",
		FirstName: "Alice",
		LastName:  "Smith",
	}

	_, c := env.doJSONRequest(http.MethodPost, "/api/auth/register", body)
	require.NoError(t, env.Auth.Register(c))

	body.Email = "other@x.com"
	_, c = env.doJSONRequest(http.MethodPost, "/api/auth/register", body)
	requireHTTPError(t, env.Auth.Register(c), http.StatusConflict)
}

func TestLogin_OKAndWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "bob")

	rec, c := env.doJSONRequest(http.MethodPost, "/api/auth/login", transport.LoginRequest{
		Username: "bob",
		Password: "password123",
	})
	require.NoError(t, env.Auth.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "bob", resp.Username)
	require.NotEmpty(t, resp.Token)

	_, c = env.doJSONRequest(http.MethodPost, "/api/auth/login", transport.LoginRequest{
		Username: "bob",
		Password: "wrong-password",
	})
	requireHTTPError(t, env.Auth.Login(c), http.StatusUnauthorized)
}

func TestLogin_UnknownUserUnauthorized(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/api/auth/login", transport.LoginRequest{
		Username: "nobody",
		Password: "password123",
	})
	requireHTTPError(t, env.Auth.Login(c), http.StatusUnauthorized)
}

func TestRefresh_RotatesTokens(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/auth/register", transport.RegisterRequest{
		Username:  "carol",
		Email:     "carol@x.com",
		Password:  "password123",
		FirstName: "Carol",
		LastName:  "Jones",
	})
	require.NoError(t, env.Auth.Register(c))
	refresh := requireCookie(t, rec, "refreshToken")

	rec2, c2 := env.doJSONRequest(http.MethodPost, "/api/auth/refresh", nil)
	c2.Request().AddCookie(&http.Cookie{Name: "refreshToken", Value: refresh.Value})
	require.NoError(t, env.Auth.Refresh(c2))
	require.Equal(t, http.StatusOK, rec2.Code)

	rotated := requireCookie(t, rec2, "refreshToken")
	require.NotEqual(t, refresh.Value, rotated.Value)

	// the old refresh token was revoked by the rotation
	_, c3 := env.doJSONRequest(http.MethodPost, "/api/auth/refresh", nil)
	c3.Request().AddCookie(&http.Cookie{Name: "refreshToken", Value: refresh.Value})
	requireHTTPError(t, env.Auth.Refresh(c3), http.StatusUnauthorized)
}

func TestRefresh_MissingCookie(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/api/auth/refresh", nil)
	requireHTTPError(t, env.Auth.Refresh(c), http.StatusUnauthorized)
}
