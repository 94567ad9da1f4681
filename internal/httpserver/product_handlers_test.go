package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/arkumar/ecommerce-backend/internal/models"
	"github.com/arkumar/ecommerce-backend/internal/transport"
)

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Keyboard", 4500)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/products/"+product.ID.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(product.ID.String())
	require.NoError(t, env.Product.GetProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, product.ID, resp.ID)
	require.Equal(t, "Keyboard", resp.Name)
	require.EqualValues(t, 4500, resp.PriceCents)
}

func TestGetProduct_NotFound(t *testing.T) {
	env := newTestEnv(t)

	id := uuid.New()
	_, c := env.doJSONRequest(http.MethodGet, "/api/products/"+id.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	requireHTTPError(t, env.Product.GetProduct(c), http.StatusNotFound)
}

func TestGetProduct_BadID(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/api/products/nope", nil)
	c.SetParamNames("id")
	c.SetParamValues("nope")
	requireHTTPError(t, env.Product.GetProduct(c), http.StatusBadRequest)
}

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/admin/products", transport.ProductRequest{
		Name:        "Monitor",
		Description: "27 inch",
		PriceCents:  19900,
		Count:       5,
	})
	require.NoError(t, env.Product.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEqual(t, uuid.Nil, resp.ID)
	require.Equal(t, "Monitor", resp.Name)
	require.EqualValues(t, 19900, resp.PriceCents)
}

func TestCreateProduct_Invalid(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/api/admin/products", transport.ProductRequest{
		Name:       "",
		PriceCents: -1,
	})
	requireHTTPError(t, env.Product.CreateProduct(c), http.StatusBadRequest)
}

func TestUpdateProduct(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Keyboard", 4500)

	rec, c := env.doJSONRequest(http.MethodPut, "/api/admin/products/"+product.ID.String(), transport.ProductRequest{
		Name:        "Keyboard v2",
		Description: "updated",
		PriceCents:  5500,
		Count:       10,
	})
	c.SetParamNames("id")
	c.SetParamValues(product.ID.String())
	require.NoError(t, env.Product.UpdateProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Keyboard v2", resp.Name)
	require.EqualValues(t, 5500, resp.PriceCents)
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Keyboard", 4500)

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/admin/products/"+product.ID.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(product.ID.String())
	require.NoError(t, env.Product.DeleteProduct(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	_, c2 := env.doJSONRequest(http.MethodGet, "/api/products/"+product.ID.String(), nil)
	c2.SetParamNames("id")
	c2.SetParamValues(product.ID.String())
	requireHTTPError(t, env.Product.GetProduct(c2), http.StatusNotFound)
}

func TestGetProducts_Pagination(t *testing.T) {
	env := newTestEnv(t)
	for _, name := range []string{"Alpha", "Bravo", "Charlie"} {
		env.createProduct(t, name, 1000)
	}

	rec, c := env.doJSONRequest(http.MethodGet, "/api/products?page=1&size=2", nil)
	require.NoError(t, env.Product.GetProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Product `json:"data"`
		Meta struct {
			Total      int64 `json:"total"`
			TotalPages int64 `json:"total_pages"`
			HasNext    bool  `json:"has_next"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	require.EqualValues(t, 3, resp.Meta.Total)
	require.EqualValues(t, 2, resp.Meta.TotalPages)
	require.True(t, resp.Meta.HasNext)

	// listing is ordered by name
	require.Equal(t, "Alpha", resp.Data[0].Name)
	require.Equal(t, "Bravo", resp.Data[1].Name)
}

func TestSearch_RequiresQuery(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/api/products/search", nil)
	requireHTTPError(t, env.Product.Search(c), http.StatusBadRequest)
}
