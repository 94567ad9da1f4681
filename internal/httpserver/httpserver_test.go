package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arkumar/ecommerce-backend/internal/models"
	"github.com/arkumar/ecommerce-backend/internal/repo"
	"github.com/arkumar/ecommerce-backend/internal/service"
	"github.com/arkumar/ecommerce-backend/pkg/hash"
)

type testEnv struct {
	Echo     *echo.Echo
	Repo     *repo.GormRepo
	Auth     *AuthHTTP
	Cart     *CartHTTP
	Checkout *CheckoutHTTP
	Product  *ProductHTTP
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	r := repo.New(db)

	authSvc := &service.AuthService{
		Repo:          r,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}

	return &testEnv{
		Echo:     echo.New(),
		Repo:     r,
		Auth:     &AuthHTTP{Svc: authSvc},
		Cart:     &CartHTTP{Svc: &service.CartService{Repo: r}},
		Checkout: &CheckoutHTTP{Svc: &service.CheckoutService{Repo: r}},
		Product:  &ProductHTTP{Svc: &service.CatalogService{Repo: r}},
	}
}

func (env *testEnv) doJSONRequest(method, target string, body any) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.Echo.NewContext(req, rec)
	return rec, c
}

func asUser(c echo.Context, userID uuid.UUID) {
	c.Set("user_id", userID.String())
	c.Set("role", "user")
}

func (env *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()

	pwHash, err := hash.HashPassword("password123")
	require.NoError(t, err)

	u := models.User{
		Username:     username,
		Email:        username + "@x.com",
		PasswordHash: pwHash,
		FirstName:    "Test",
		LastName:     "User",
		Role:         "user",
	}
	require.NoError(t, env.Repo.CreateUser(context.Background(), &u))
	return &u
}

func (env *testEnv) createProduct(t *testing.T, name string, priceCents int64) *models.Product {
	t.Helper()

	p := models.Product{Name: name, Description: name, PriceCents: priceCents, Count: 100}
	require.NoError(t, env.Repo.CreateProduct(context.Background(), &p))
	return &p
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, code, he.Code)
}

func requireCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}
