package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/angelmondragon/labstock-backend/internal/inventory"
	"github.com/angelmondragon/labstock-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInventoryRouter(t *testing.T) (http.Handler, *inventory.Store) {
	t.Helper()
	store := inventory.NewStore()
	inventory.SeedDemo(store)
	svc, err := inventory.NewService(inventory.ServiceParams{Store: store, Logger: logger.Nop()})
	require.NoError(t, err)

	logg := logger.Nop()
	r := chi.NewRouter()
	r.Get("/products", ListProducts(svc, logg))
	r.Post("/products", CreateProduct(svc, logg))
	r.Route("/products/{productId}", func(r chi.Router) {
		r.Get("/", GetProduct(svc, logg))
		r.Patch("/", UpdateProduct(svc, logg))
		r.Delete("/", DeleteProduct(svc, logg))
		r.Post("/restock", RestockProduct(svc, logg))
		r.Post("/defective", MarkProductDefective(svc, logg))
		r.Get("/records", ListProductRecords(svc, logg))
		r.Post("/records", CreateProductRecord(svc, logg))
	})
	return r, store
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	return envelope.Data
}

func decodeErrorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	return envelope.Error.Message
}

func TestListProductsSearch(t *testing.T) {
	h, _ := newInventoryRouter(t)

	rec := do(t, h, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]inventory.Product](t, rec), 5)

	rec = do(t, h, http.MethodGet, "/products?q=RASP", "")
	products := decodeData[[]inventory.Product](t, rec)
	require.Len(t, products, 1)
	assert.Equal(t, "Raspberry Pi 4", products[0].Name)
}

func TestCreateProductAcceptsNumbersAndStrings(t *testing.T) {
	h, store := newInventoryRouter(t)

	rec := do(t, h, http.MethodPost, "/products", `{"name":"Oscilloscope","master_count":4,"availability":"3"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	product := decodeData[inventory.Product](t, rec)
	assert.Equal(t, 4, product.MasterCount)
	assert.Equal(t, 3, product.Availability)
	assert.Len(t, store.Products(), 6)

	rec = do(t, h, http.MethodPost, "/products", `{"name":"Bad","master_count":1,"availability":2}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Availability cannot exceed master count", decodeErrorMessage(t, rec))
}

func TestProductLifecycleEndpoints(t *testing.T) {
	h, store := newInventoryRouter(t)

	rec := do(t, h, http.MethodPost, "/products/1/restock", `{"quantity":10}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	product := decodeData[inventory.Product](t, rec)
	assert.Equal(t, 60, product.MasterCount)
	assert.Equal(t, 55, product.Availability)

	rec = do(t, h, http.MethodPost, "/products/1/defective", `{"quantity":"5"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 50, decodeData[inventory.Product](t, rec).Availability)

	rec = do(t, h, http.MethodPost, "/products/1/defective", `{"quantity":"51"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Quantity cannot exceed availability (50)", decodeErrorMessage(t, rec))

	rec = do(t, h, http.MethodPatch, "/products/1", `{"name":"Arduino Uno R3"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Arduino Uno R3", decodeData[inventory.Product](t, rec).Name)

	rec = do(t, h, http.MethodGet, "/products/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodDelete, "/products/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, h, http.MethodDelete, "/products/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/products/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	for _, r := range store.Records() {
		assert.NotEqual(t, "1", r.ProductID, "records cascade with the product")
	}
}

func TestRecordEndpoints(t *testing.T) {
	h, _ := newInventoryRouter(t)

	body := `{"student_name":"Jane","usn":"1ms21cs002","phone_number":"98765 43211","section":"b",` +
		`"taken_date":"2024-04-01","return_date":"2024-04-10","type":"borrow","quantity":3}`
	rec := do(t, h, http.MethodPost, "/products/5/records", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	record := decodeData[inventory.Record](t, rec)
	assert.Equal(t, "1MS21CS002", record.USN)
	assert.Equal(t, "B", record.Section)

	rec = do(t, h, http.MethodGet, "/products/5", "")
	assert.Equal(t, 9, decodeData[inventory.Product](t, rec).Availability)

	rec = do(t, h, http.MethodGet, "/products/5/records", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]inventory.Record](t, rec), 1)

	rec = do(t, h, http.MethodPost, "/products/5/records", strings.Replace(body, `"quantity":3`, `"quantity":10`, 1))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Not enough available stock. Maximum: 9", decodeErrorMessage(t, rec))

	rec = do(t, h, http.MethodPost, "/products/missing/records", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateRecordRejectsUnknownFields(t *testing.T) {
	h, _ := newInventoryRouter(t)
	rec := do(t, h, http.MethodPost, "/products/5/records", `{"student":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
