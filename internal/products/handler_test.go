package products

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consignly/consignly/internal/platform/httpx"
	"github.com/consignly/consignly/internal/shared"
)

func newTestRouter(repo *mockRepository) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	r.Route("/products", NewHandler(logger, NewService(repo)).MountRoutes)
	return r
}

func send(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func problemOf(t *testing.T, rr *httptest.ResponseRecorder) httpx.ProblemDetail {
	t.Helper()
	var p httpx.ProblemDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	return p
}

func TestHandlerCreateProduct(t *testing.T) {
	h := newTestRouter(newMockRepository(7))

	rr := send(h, http.MethodPost, "/products",
		`{"name":"Silk Scarf","category":"Accessories","consignor_id":7,"expected_price":"75.00","specifications":{"material":"silk"}}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var p Product
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, 75.0, p.ExpectedPrice)
	assert.Equal(t, 1, p.Quantity)
	assert.JSONEq(t, `{"material":"silk"}`, string(p.Specifications))
}

func TestHandlerCreateProductErrors(t *testing.T) {
	h := newTestRouter(newMockRepository(7))
	require.Equal(t, http.StatusCreated,
		send(h, http.MethodPost, "/products", `{"name":"Lamp","category":"Home","consignor_id":7}`).Code)

	rr := send(h, http.MethodPost, "/products", `{"name":"lamp ","category":"Home","consignor_id":7}`)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, shared.KindConflict, problemOf(t, rr).Kind)

	rr = send(h, http.MethodPost, "/products", `{"name":"Rug","category":"Home","consignor_id":8}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, shared.KindReferenceNotFound, problemOf(t, rr).Kind)

	rr = send(h, http.MethodPost, "/products", `{"name":"Rug","consignor_id":7}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "category", problemOf(t, rr).Field)

	rr = send(h, http.MethodPost, "/products", `[]`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandlerUpdateAndDeleteProduct(t *testing.T) {
	repo := newMockRepository(7)
	h := newTestRouter(repo)
	require.Equal(t, http.StatusCreated,
		send(h, http.MethodPost, "/products", `{"name":"Lamp","category":"Home","consignor_id":7}`).Code)

	rr := send(h, http.MethodPatch, "/products/1", `{"quantity":4,"image_url":"https://example.com/lamp.jpg"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 4, repo.products[1].Quantity)

	rr = send(h, http.MethodPut, "/products/1", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, shared.KindInvalidUpdate, problemOf(t, rr).Kind)

	assert.Equal(t, http.StatusOK, send(h, http.MethodGet, "/products/1", "").Code)
	assert.Equal(t, http.StatusNoContent, send(h, http.MethodDelete, "/products/1", "").Code)
	assert.Equal(t, http.StatusNotFound, send(h, http.MethodDelete, "/products/1", "").Code)
}

func TestHandlerListProducts(t *testing.T) {
	h := newTestRouter(newMockRepository())

	rr := send(h, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}
