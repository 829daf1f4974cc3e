package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bakery-backoffice/internal/dbtest"
	"bakery-backoffice/internal/repository"
	"bakery-backoffice/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	t     *testing.T
	app   *fiber.App
	users service.UserService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	db := dbtest.Open(t)
	users := service.NewUserService(db)

	app := fiber.New()
	RegisterRoutes(app.Group("/api"), Services{
		Inventory:  service.NewInventoryService(db, nil),
		Production: service.NewProductionService(db),
		Sales:      service.NewSalesService(db, nil),
		Users:      users,
		Audit:      service.NewAuditService(repository.NewAuditRepo(db), repository.NewUserRepo(db)),
		Auth:       service.NewAuthService(db, "handler-test-secret"),
	}, RouteOptions{})

	return &testAPI{t: t, app: app, users: users}
}

// do sends a request and returns the status and decoded JSON body (nil when empty).
func (a *testAPI) do(method, path, body, token string) (int, interface{}) {
	a.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	if len(raw) == 0 {
		return resp.StatusCode, nil
	}
	var out interface{}
	require.NoError(a.t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func (a *testAPI) token(username, email string) string {
	a.t.Helper()
	status, body := a.do("POST", "/api/api-token-auth", fmt.Sprintf(`{"username":%q,"password":%q}`, username, email), "")
	require.Equal(a.t, http.StatusOK, status, body)
	return body.(map[string]interface{})["token"].(string)
}

func obj(v interface{}) map[string]interface{} { return v.(map[string]interface{}) }

func list(v interface{}) []interface{} { return v.([]interface{}) }

func idOf(v interface{}) int { return int(obj(v)["id"].(float64)) }

func TestInventoryItemLifecycle(t *testing.T) {
	api := newTestAPI(t)

	status, body := api.do("POST", "/api/inventory", `{"name":"Flour","unit_price":"2.5","reorder_level":10,"username":"alice"}`, "")
	require.Equal(t, http.StatusCreated, status, body)
	item := obj(body)
	assert.Equal(t, "2.50", item["unit_price"])
	assert.Equal(t, "rawmaterial", item["category"])
	path := fmt.Sprintf("/api/inventory/%d", idOf(body))

	status, body = api.do("PATCH", path, `{"reorder_level":3}`, "")
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Flour", obj(body)["name"])
	assert.Equal(t, float64(3), obj(body)["reorder_level"])

	status, body = api.do("PUT", path, `{"name":"Rye"}`, "")
	require.Equal(t, http.StatusBadRequest, status)
	var fields []string
	for _, f := range list(obj(body)["fields"]) {
		fields = append(fields, obj(f)["field"].(string))
	}
	assert.ElementsMatch(t, []string{"unit_price", "reorder_level"}, fields)

	status, body = api.do("GET", "/api/inventory/?username=alice", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, list(body), 1)
	status, body = api.do("GET", "/api/inventory?username=bob", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, list(body))

	status, _ = api.do("DELETE", path, "", "")
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = api.do("GET", path, "", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBadRequests(t *testing.T) {
	api := newTestAPI(t)

	status, body := api.do("GET", "/api/inventory/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid inventory item ID", obj(body)["error"])

	status, body = api.do("POST", "/api/sales", `{"product_id":`, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid JSON", obj(body)["error"])

	status, _ = api.do("GET", "/api/transactions?product=x", "", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = api.do("DELETE", "/api/sales/77", "", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHistoricalDataEndpoint(t *testing.T) {
	api := newTestAPI(t)

	_, item := api.do("POST", "/api/inventory", `{"name":"Flour","category":"rawmaterial","unit_price":2.50,"reorder_level":10}`, "")
	status, body := api.do("POST", "/api/transactions", fmt.Sprintf(`{"product":%d,"transaction_type":"Addition","quantity":5}`, idOf(item)), "")
	require.Equal(t, http.StatusCreated, status, body)

	status, body = api.do("GET", "/api/historical-data", "", "")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list(body), 1)
	assert.Equal(t, map[string]interface{}{
		"date":       time.Now().Format("2006-01-02"),
		"product":    "Flour",
		"quantity":   float64(5),
		"unit_price": "2.50",
	}, obj(list(body)[0]))

	status, body = api.do("GET", fmt.Sprintf("/api/transactions?product=%d", idOf(item)+1), "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, list(body))
}

func TestSaleStockEndpointsMirror(t *testing.T) {
	api := newTestAPI(t)

	status, body := api.do("POST", "/api/salestocks", `{"product_id":"SKU1","quantity_obtained":20,"stock_amount":"100.00"}`, "")
	require.Equal(t, http.StatusCreated, status, body)
	stockID := idOf(body)
	txPath := fmt.Sprintf("/api/salesstocktransactions?sale_stock=%d", stockID)

	_, body = api.do("GET", txPath, "", "")
	require.Len(t, list(body), 1)
	first := obj(list(body)[0])
	assert.Equal(t, "Addition", first["transaction_type"])
	assert.Equal(t, "Stock added", first["remarks"])
	assert.Equal(t, "100.00", first["stock_amount"])
	assert.Equal(t, float64(stockID), first["sale_stock"])

	status, _ = api.do("PATCH", fmt.Sprintf("/api/salestocks/%d", stockID), `{"quantity_obtained":25}`, "")
	require.Equal(t, http.StatusOK, status)

	_, body = api.do("GET", txPath, "", "")
	require.Len(t, list(body), 2)
	second := obj(list(body)[1])
	assert.Equal(t, "Update", second["transaction_type"])
	assert.Equal(t, "Updated stock", second["remarks"])
	assert.Equal(t, float64(25), second["quantity_obtained"])
}

func TestProductionEndpoints(t *testing.T) {
	api := newTestAPI(t)

	_, a := api.do("POST", "/api/inventory", `{"name":"Flour","unit_price":"1","reorder_level":1}`, "")
	_, b := api.do("POST", "/api/inventory", `{"name":"Sugar","unit_price":"1","reorder_level":1}`, "")

	payload := fmt.Sprintf(`{"productName":"Bread","rawMaterials":[%d,%d],"quantityUsed":[2,1],"quantityProduced":10}`, idOf(b), idOf(a))
	status, body := api.do("POST", "/api/productions", payload, "")
	require.Equal(t, http.StatusCreated, status, body)
	rec := obj(body)
	assert.Equal(t, []interface{}{float64(idOf(a)), float64(idOf(b))}, rec["rawMaterials"])
	assert.Equal(t, []interface{}{float64(1), float64(2)}, rec["quantityUsed"])
	assert.Equal(t, "0.00", rec["unit_price"])

	status, body = api.do("PATCH", fmt.Sprintf("/api/productions/%d", idOf(body)), `{"quantityDamaged":1}`, "")
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, float64(1), obj(body)["quantityDamaged"])
	assert.Len(t, list(obj(body)["rawMaterials"]), 2)
}

func TestUserAndTokenEndpoints(t *testing.T) {
	api := newTestAPI(t)

	status, body := api.do("POST", "/api/users", `{"username":"bob","email":"bob@x.com","userprofile":{"role":"sales_representative"}}`, "")
	require.Equal(t, http.StatusCreated, status, body)
	profile := obj(obj(body)["userprofile"])
	assert.Equal(t, "sales_representative", profile["role"])
	assert.Equal(t, "active", profile["status"])

	status, _ = api.do("POST", "/api/users", `{"username":"bob"}`, "")
	assert.Equal(t, http.StatusConflict, status)

	token := api.token("bob", "bob@x.com")
	assert.Equal(t, token, api.token("bob", "bob@x.com"))

	status, body = api.do("POST", "/api/api-token-auth", `{"username":"bob","password":"wrong@x.com"}`, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, map[string]interface{}{"error": "Invalid credentials"}, body)

	status, _ = api.do("DELETE", fmt.Sprintf("/api/user-profiles/%d", int(profile["id"].(float64))), "", "")
	assert.Equal(t, http.StatusConflict, status)

	status, _ = api.do("GET", "/api/inventory", "", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestTokenIgnoresStaleAuthorization(t *testing.T) {
	api := newTestAPI(t)

	status, body := api.do("POST", "/api/users", `{"username":"bob","email":"bob@x.com"}`, "")
	require.Equal(t, http.StatusCreated, status, body)

	status, body = api.do("POST", "/api/api-token-auth", `{"username":"bob","password":"bob@x.com"}`, "revoked-key")
	require.Equal(t, http.StatusOK, status, body)
	token := obj(body)["token"].(string)
	assert.Equal(t, api.token("bob", "bob@x.com"), token)

	status, _ = api.do("GET", "/api/inventory", "", token)
	assert.Equal(t, http.StatusOK, status)
}

func TestAuditLogsRequireAdmin(t *testing.T) {
	api := newTestAPI(t)

	_, err := api.users.Bootstrap()
	require.NoError(t, err)
	api.do("POST", "/api/users", `{"username":"bob","email":"bob@x.com","userprofile":{"role":"sales_representative"}}`, "")

	status, _ := api.do("GET", "/api/auditlogs", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = api.do("GET", "/api/auditlogs", "", api.token("bob", "bob@x.com"))
	assert.Equal(t, http.StatusForbidden, status)

	admin := api.token("Allan", "lutaloallan6@gmail.com")
	status, body := api.do("POST", "/api/auditlogs", `{"action":"stock counted"}`, admin)
	require.Equal(t, http.StatusCreated, status, body)
	entry := obj(body)
	assert.Equal(t, "Allan", obj(entry["user"])["username"])

	path := fmt.Sprintf("/api/auditlogs/%d", int(entry["log_id"].(float64)))
	status, _ = api.do("PUT", path, `{"action":"changed"}`, admin)
	assert.Equal(t, http.StatusMethodNotAllowed, status)
	status, _ = api.do("PATCH", path, `{"action":"changed"}`, admin)
	assert.Equal(t, http.StatusMethodNotAllowed, status)

	status, body = api.do("GET", "/api/auditlogs", "", admin)
	require.Equal(t, http.StatusOK, status)
	actions := []string{}
	for _, e := range list(body) {
		actions = append(actions, obj(e)["action"].(string))
	}
	assert.Contains(t, actions, "stock counted")
	assert.Contains(t, actions, "user created")
	assert.Contains(t, actions, "token issued")

	status, _ = api.do("DELETE", path, "", admin)
	assert.Equal(t, http.StatusNoContent, status)
}
