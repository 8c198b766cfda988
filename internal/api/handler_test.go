package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alghadeer/ledger/internal/api"
	"github.com/alghadeer/ledger/internal/entity"
	"github.com/alghadeer/ledger/internal/repository/memory"
	"github.com/alghadeer/ledger/internal/service"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	svc := service.New(memory.New(), nil)

	return api.NewRouter(api.NewHandler(svc), api.NewMiddleware(nil))
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)

		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T

	err := json.NewDecoder(rec.Body).Decode(&v)
	require.NoError(t, err)

	return v
}

func createTestClient(t *testing.T, router http.Handler, name string) entity.Client {
	t.Helper()

	rec := doRequest(t, router, http.MethodPost, "/api/clients", map[string]string{"name": name})
	require.Equal(t, http.StatusOK, rec.Code)

	return decodeBody[entity.Client](t, rec)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok\n", rec.Body.String())
}

func TestClientCRUD(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	created := createTestClient(t, router, "Acme Transport")
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Acme Transport", created.Name)

	rec := doRequest(t, router, http.MethodGet, "/api/clients/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, created, decodeBody[entity.Client](t, rec))

	rec = doRequest(t, router, http.MethodGet, "/api/clients", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []entity.Client{created}, decodeBody[[]entity.Client](t, rec))

	rec = doRequest(t, router, http.MethodPut, "/api/clients/"+created.ID, map[string]string{
		"name":    "Acme Renamed",
		"phone":   "123",
		"company": "Acme LLC",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decodeBody[entity.Client](t, rec)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "Acme Renamed", updated.Name)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)

	rec = doRequest(t, router, http.MethodGet, "/api/clients/DEADBEEF", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateClientValidation(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/clients", map[string]string{"phone": "123"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeBody[api.ResponseError](t, rec)
	require.Equal(t, "malformed request body", resp.Message)

	req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader("{not json"))
	raw := httptest.NewRecorder()
	router.ServeHTTP(raw, req)
	require.Equal(t, http.StatusBadRequest, raw.Code)
}

func TestCreateReceiptUnknownClient(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/receipts", map[string]any{
		"client_id": "DEADBEEF",
		"date":      "2025-03-14",
		"driver":    "Karim",
		"car":       "KIA 4512",
		"city":      "Basra",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)

	list := doRequest(t, router, http.MethodGet, "/api/receipts", nil)
	require.Equal(t, http.StatusOK, list.Code)
	require.Empty(t, decodeBody[[]entity.Receipt](t, list))
}

func TestClientAccount(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	client := createTestClient(t, router, "Acme")

	for _, amount := range []float64{300, 200} {
		rec := doRequest(t, router, http.MethodPost, "/api/receipts", map[string]any{
			"client_id": client.ID,
			"date":      "2025-03-14",
			"driver":    "Karim",
			"car":       "KIA 4512",
			"city":      "Basra",
			"amount":    amount,
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doRequest(t, router, http.MethodPost, "/api/payments", map[string]any{
		"client_id": client.ID,
		"date":      "2025-03-15",
		"amount":    200,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, entity.DefaultPaymentMethod, decodeBody[entity.Payment](t, rec).Method)

	rec = doRequest(t, router, http.MethodGet, "/api/clients/"+client.ID+"/account", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	account := decodeBody[service.Account](t, rec)
	require.Equal(t, client, account.Client)
	require.InDelta(t, 500, account.TotalReceipts, 1e-9)
	require.InDelta(t, 200, account.TotalPayments, 1e-9)
	require.InDelta(t, 300, account.Balance, 1e-9)
	require.Len(t, account.Receipts, 2)
	require.Len(t, account.Payments, 1)

	rec = doRequest(t, router, http.MethodGet, "/api/clients/DEADBEEF/account", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteRestoreFlow(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	client := createTestClient(t, router, "Acme")

	rec := doRequest(t, router, http.MethodDelete, "/api/clients/"+client.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "client moved to trash", decodeBody[api.ResponseMessage](t, rec).Message)

	rec = doRequest(t, router, http.MethodGet, "/api/clients/"+client.ID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/trash", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	trash := decodeBody[[]entity.TrashEntry](t, rec)
	require.Len(t, trash, 1)
	require.Equal(t, entity.ItemTypeClient, trash[0].ItemType)

	rec = doRequest(t, router, http.MethodPost, "/api/trash/"+trash[0].ID+"/restore", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/clients/"+client.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, client, decodeBody[entity.Client](t, rec))

	rec = doRequest(t, router, http.MethodGet, "/api/trash", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decodeBody[[]entity.TrashEntry](t, rec))
}

func TestDeleteNonexistentClient(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodDelete, "/api/clients/DEADBEEF", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/trash", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decodeBody[[]entity.TrashEntry](t, rec))
}

func TestTrashEndpoints(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/trash/no-such-id/restore", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/api/trash/no-such-id", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	client := createTestClient(t, router, "Acme")

	rec = doRequest(t, router, http.MethodDelete, "/api/clients/"+client.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/api/trash", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "trash emptied", decodeBody[api.ResponseMessage](t, rec).Message)

	rec = doRequest(t, router, http.MethodGet, "/api/trash", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decodeBody[[]entity.TrashEntry](t, rec))
}

func TestStatsEndpoint(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	client := createTestClient(t, router, "Acme")

	rec := doRequest(t, router, http.MethodPost, "/api/receipts", map[string]any{
		"client_id": client.ID,
		"date":      "2025-03-14",
		"driver":    "Karim",
		"car":       "KIA 4512",
		"city":      "Basra",
		"amount":    120.5,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/payments", map[string]any{
		"client_id": client.ID,
		"date":      "2025-03-15",
		"amount":    20.5,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	stats := decodeBody[service.Stats](t, rec)
	require.Equal(t, int64(1), stats.ClientsCount)
	require.Equal(t, int64(1), stats.ReceiptsCount)
	require.Equal(t, int64(1), stats.PaymentsCount)
	require.InDelta(t, 120.5, stats.TotalReceipts, 1e-9)
	require.InDelta(t, 20.5, stats.TotalPayments, 1e-9)
	require.InDelta(t, 100, stats.Balance, 1e-9)
}
