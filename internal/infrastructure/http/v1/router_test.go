package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktrack/internal/core/apperror"
	"stocktrack/internal/domain/auth"
	"stocktrack/internal/domain/inventory"
	"stocktrack/internal/infrastructure/http/v1/dto"
	"stocktrack/internal/infrastructure/http/v1/middleware"
	"stocktrack/internal/infrastructure/storage/jsonfile"
	"stocktrack/pkg/logger"
)

func newTestRouter(t *testing.T, validator middleware.TokenValidator) (http.Handler, *inventory.Inventory) {
	t.Helper()

	inv := inventory.New(jsonfile.New())
	cfg := RouterConfig{
		Inventory:      inv,
		Logger:         logger.Default(),
		TokenValidator: validator,
		SnapshotPath:   filepath.Join(t.TempDir(), "inventory.json"),
	}
	return NewRouter(cfg), inv
}

func doJSON(t *testing.T, router http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestAddAndGetItem(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodPost, "/api/v1/inventory/items/apple/add", `{"qty": 10}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var item dto.ItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, "apple", item.Item)
	assert.Equal(t, 10, item.Quantity)

	w = doJSON(t, router, http.MethodGet, "/api/v1/inventory/items/apple", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, 10, item.Quantity)
}

func TestAdd_InvalidQuantity(t *testing.T) {
	router, inv := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodPost, "/api/v1/inventory/items/apple/add", `{"qty": -2}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeValidation, errorCode(t, w))
	assert.Equal(t, 0, inv.Quantity("apple"))
}

func TestRemove_AbsentItem(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodPost, "/api/v1/inventory/items/ghost/remove", `{"qty": 1}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperror.CodeNotFound, errorCode(t, w))
}

func TestRemove_OverSubtraction(t *testing.T) {
	router, inv := newTestRouter(t, nil)

	doJSON(t, router, http.MethodPost, "/api/v1/inventory/items/apple/add", `{"qty": 10}`, nil)
	w := doJSON(t, router, http.MethodPost, "/api/v1/inventory/items/apple/remove", `{"qty": 15}`, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, inv.Quantity("apple"))
	assert.Equal(t, 0, inv.Len())
}

func TestListInventory(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	doJSON(t, router, http.MethodPost, "/api/v1/inventory/items/apple/add", `{"qty": 7}`, nil)
	doJSON(t, router, http.MethodPost, "/api/v1/inventory/items/banana/add", `{"qty": 5}`, nil)

	w := doJSON(t, router, http.MethodGet, "/api/v1/inventory", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.InventoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalItems)
	assert.Equal(t, map[string]int{"apple": 7, "banana": 5}, resp.Items)
}

func TestLowStock(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	doJSON(t, router, http.MethodPost, "/api/v1/inventory/items/apple/add", `{"qty": 7}`, nil)
	doJSON(t, router, http.MethodPost, "/api/v1/inventory/items/banana/add", `{"qty": 3}`, nil)

	w := doJSON(t, router, http.MethodGet, "/api/v1/inventory/low?threshold=5", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.LowStockResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.Threshold)
	assert.Equal(t, []string{"banana"}, resp.Items)
}

func TestLowStock_InvalidThreshold(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodGet, "/api/v1/inventory/low?threshold=ten", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/inventory/low?threshold=-1", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeValidation, errorCode(t, w))
}

func TestReport(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	doJSON(t, router, http.MethodPost, "/api/v1/inventory/items/apple/add", `{"qty": 7}`, nil)

	w := doJSON(t, router, http.MethodGet, "/api/v1/inventory/report", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Items Report")
	assert.Contains(t, w.Body.String(), "apple")
}

func TestJournalEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	doJSON(t, router, http.MethodPost, "/api/v1/inventory/items/apple/add", `{"qty": 7}`, nil)

	w := doJSON(t, router, http.MethodGet, "/api/v1/inventory/journal", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.JournalResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.TotalCount)
	assert.Equal(t, "add", resp.Entries[0].Op)
	assert.Equal(t, "apple", resp.Entries[0].Item)
}

func TestJournalEndpoint_Limit(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	doJSON(t, router, http.MethodPost, "/api/v1/inventory/items/apple/add", `{"qty": 1}`, nil)
	doJSON(t, router, http.MethodPost, "/api/v1/inventory/items/banana/add", `{"qty": 2}`, nil)
	doJSON(t, router, http.MethodPost, "/api/v1/inventory/items/orange/add", `{"qty": 3}`, nil)

	w := doJSON(t, router, http.MethodGet, "/api/v1/inventory/journal?limit=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.JournalResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.TotalCount)
	assert.Equal(t, "banana", resp.Entries[0].Item)
	assert.Equal(t, "orange", resp.Entries[1].Item)
}

func TestSnapshotSaveLoadEndpoints(t *testing.T) {
	router, inv := newTestRouter(t, nil)
	doJSON(t, router, http.MethodPost, "/api/v1/inventory/items/apple/add", `{"qty": 7}`, nil)

	w := doJSON(t, router, http.MethodPost, "/api/v1/inventory/snapshot/save", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	doJSON(t, router, http.MethodPost, "/api/v1/inventory/items/banana/add", `{"qty": 5}`, nil)

	w = doJSON(t, router, http.MethodPost, "/api/v1/inventory/snapshot/load", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]int{"apple": 7}, inv.Items())
}

func TestSnapshotLoad_MissingFile(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodPost, "/api/v1/inventory/snapshot/load", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, apperror.CodePersistence, errorCode(t, w))
}

func TestAuth_Enforced(t *testing.T) {
	svc := auth.NewJWTService(auth.DefaultConfig("test-secret"))
	router, _ := newTestRouter(t, svc)

	// No token
	w := doJSON(t, router, http.MethodGet, "/api/v1/inventory", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperror.CodeUnauthorized, errorCode(t, w))

	// Malformed header
	w = doJSON(t, router, http.MethodGet, "/api/v1/inventory", "", map[string]string{"Authorization": "Token abc"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token
	token, _, err := svc.GenerateToken("ops")
	require.NoError(t, err)
	w = doJSON(t, router, http.MethodGet, "/api/v1/inventory", "", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, w.Code)

	// Health is never guarded
	w = doJSON(t, router, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTraceHeadersPropagated(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodGet, "/health/live", "", map[string]string{"X-Request-ID": "req-123"})
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
}
