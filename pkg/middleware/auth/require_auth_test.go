package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/arkumar/ecommerce-backend/pkg/tokens"
)

var testSecret = []byte("test-jwt-secret")

func signAccessToken(t *testing.T, role string, ttl time.Duration) string {
	t.Helper()

	claims := tokens.AccessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "9f1c0d9e-0000-4000-8000-000000000001",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return raw
}

func newContext(header, cookie string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: cookie})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestRequireAuth(t *testing.T) {
	m := New(testSecret)

	t.Run("bearer header", func(t *testing.T) {
		raw := signAccessToken(t, "user", time.Minute)
		c, _ := newContext("Bearer "+raw, "")
		require.NoError(t, m.RequireAuth(okHandler)(c))
		require.Equal(t, "9f1c0d9e-0000-4000-8000-000000000001", c.Get("user_id"))
		require.Equal(t, "user", c.Get("role"))
	})

	t.Run("access cookie", func(t *testing.T) {
		raw := signAccessToken(t, "user", time.Minute)
		c, _ := newContext("", raw)
		require.NoError(t, m.RequireAuth(okHandler)(c))
		require.Equal(t, "user", c.Get("role"))
	})

	t.Run("missing token", func(t *testing.T) {
		c, _ := newContext("", "")
		err := m.RequireAuth(okHandler)(c)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		require.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		raw := signAccessToken(t, "user", -time.Minute)
		c, _ := newContext("Bearer "+raw, "")
		err := m.RequireAuth(okHandler)(c)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		require.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		claims := tokens.AccessClaims{
			Role: "user",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
		}
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
		require.NoError(t, err)

		c, _ := newContext("Bearer "+raw, "")
		handlerErr := m.RequireAuth(okHandler)(c)
		var he *echo.HTTPError
		require.ErrorAs(t, handlerErr, &he)
		require.Equal(t, http.StatusUnauthorized, he.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	m := New(testSecret)

	t.Run("admin passes", func(t *testing.T) {
		raw := signAccessToken(t, "admin", time.Minute)
		c, rec := newContext("Bearer "+raw, "")
		require.NoError(t, m.RequireAdmin(okHandler)(c))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("plain user forbidden", func(t *testing.T) {
		raw := signAccessToken(t, "user", time.Minute)
		c, _ := newContext("Bearer "+raw, "")
		err := m.RequireAdmin(okHandler)(c)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		require.Equal(t, http.StatusForbidden, he.Code)
	})
}
