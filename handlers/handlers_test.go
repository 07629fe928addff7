package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"restaurant-pos-api/config"
	"restaurant-pos-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Load()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "api_test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	config.DB = db
	config.Migrate(db)

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

// doJSON fires a request and decodes the JSON body
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	out := map[string]interface{}{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w.Code, out
}

func field(t *testing.T, m map[string]interface{}, keys ...string) interface{} {
	t.Helper()
	var cur interface{} = m
	for _, k := range keys {
		obj, ok := cur.(map[string]interface{})
		if !ok {
			t.Fatalf("field %v: %v is not an object", keys, cur)
		}
		cur, ok = obj[k]
		if !ok {
			t.Fatalf("field %v missing in %v", keys, obj)
		}
	}
	return cur
}

func idOf(t *testing.T, m map[string]interface{}, keys ...string) uint {
	t.Helper()
	f, ok := field(t, m, keys...).(float64)
	if !ok {
		t.Fatalf("field %v is not a number", keys)
	}
	return uint(f)
}

// seedBackoffice registers an owner, creates a branch with a table
// and a manager account, and returns the manager token plus ids
func seedBackoffice(t *testing.T, r *gin.Engine) (managerToken string, branchID, tableID uint) {
	t.Helper()

	code, resp := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Owner", "email": "owner@example.com", "password": "secret123",
	})
	if code != http.StatusCreated {
		t.Fatalf("register: %d %v", code, resp)
	}
	ownerToken := field(t, resp, "token").(string)

	code, resp = doJSON(t, r, http.MethodPost, "/api/admin/branches", ownerToken, gin.H{
		"name": "Main Branch", "sgst_rate": 9, "cgst_rate": 9,
	})
	if code != http.StatusCreated {
		t.Fatalf("create branch: %d %v", code, resp)
	}
	branchID = idOf(t, resp, "branch", "id")

	code, resp = doJSON(t, r, http.MethodPost, "/api/admin/tables", ownerToken, gin.H{
		"branch_id": branchID, "number": 1, "seats": 4,
	})
	if code != http.StatusCreated {
		t.Fatalf("create table: %d %v", code, resp)
	}
	tableID = idOf(t, resp, "table", "id")

	code, resp = doJSON(t, r, http.MethodPost, "/api/admin/staff", ownerToken, gin.H{
		"name": "Manager", "email": "manager@example.com", "password": "secret123",
		"role": "manager", "branch_id": branchID,
	})
	if code != http.StatusCreated {
		t.Fatalf("create staff: %d %v", code, resp)
	}

	code, resp = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "manager@example.com", "password": "secret123",
	})
	if code != http.StatusOK {
		t.Fatalf("login manager: %d %v", code, resp)
	}
	return field(t, resp, "token").(string), branchID, tableID
}

func seedMenu(t *testing.T, r *gin.Engine, token string) (biryaniID, biryaniFullID, sodaID, sodaRegularID uint) {
	t.Helper()
	code, resp := doJSON(t, r, http.MethodPost, "/api/office/menu", token, gin.H{
		"name": "Chicken Biryani", "category": "Mains",
		"variants": []gin.H{
			{"name": "Half", "cost_price": 90, "selling_price": 200},
			{"name": "Full", "cost_price": 150, "selling_price": 350},
		},
	})
	if code != http.StatusCreated {
		t.Fatalf("add menu item: %d %v", code, resp)
	}
	biryaniID = idOf(t, resp, "item", "id")
	variants := field(t, resp, "item", "variants").([]interface{})
	biryaniFullID = uint(variants[1].(map[string]interface{})["id"].(float64))

	code, resp = doJSON(t, r, http.MethodPost, "/api/office/menu", token, gin.H{
		"name": "Masala Soda", "category": "Drinks",
		"variants": []gin.H{{"name": "Regular", "cost_price": 15, "selling_price": 60}},
	})
	if code != http.StatusCreated {
		t.Fatalf("add menu item: %d %v", code, resp)
	}
	sodaID = idOf(t, resp, "item", "id")
	variants = field(t, resp, "item", "variants").([]interface{})
	sodaRegularID = uint(variants[0].(map[string]interface{})["id"].(float64))
	return
}

func TestDraftAndCheckoutFlow(t *testing.T) {
	r := setupRouter(t)
	token, _, tableID := seedBackoffice(t, r)
	biryaniID, biryaniFullID, sodaID, sodaRegularID := seedMenu(t, r, token)

	draftPath := fmt.Sprintf("/api/pos/tables/%d/draft", tableID)

	// no draft yet: table is implicitly available
	code, _ := doJSON(t, r, http.MethodGet, draftPath, token, nil)
	if code != http.StatusNotFound {
		t.Fatalf("get draft: %d, want 404", code)
	}

	code, resp := doJSON(t, r, http.MethodPost, draftPath+"/lines", token, gin.H{
		"menu_item_id": biryaniID, "variant_id": biryaniFullID, "quantity": 2,
	})
	if code != http.StatusOK {
		t.Fatalf("add line: %d %v", code, resp)
	}
	code, resp = doJSON(t, r, http.MethodPost, draftPath+"/lines", token, gin.H{
		"menu_item_id": sodaID, "variant_id": sodaRegularID,
	})
	if code != http.StatusOK {
		t.Fatalf("add line: %d %v", code, resp)
	}

	total := field(t, resp, "draft", "total").(float64)
	if math.Abs(total-896.80) > 1e-6 {
		t.Errorf("draft total = %v, want 896.80", total)
	}

	// stepper down to zero removes the soda line
	code, resp = doJSON(t, r, http.MethodPut, draftPath+"/lines", token, gin.H{
		"menu_item_id": sodaID, "variant_id": sodaRegularID, "quantity": 0,
	})
	if code != http.StatusOK {
		t.Fatalf("set quantity: %d %v", code, resp)
	}
	subtotal := field(t, resp, "draft", "subtotal").(float64)
	if subtotal != 700 {
		t.Errorf("subtotal = %v, want 700 after removing soda", subtotal)
	}

	// checkout freezes the order and clears the draft
	code, resp = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/pos/tables/%d/checkout", tableID), token, gin.H{
		"payment_method": "CARD",
	})
	if code != http.StatusCreated {
		t.Fatalf("checkout: %d %v", code, resp)
	}
	orderTotal := field(t, resp, "receipt", "total").(float64)
	if math.Abs(orderTotal-826.00) > 1e-6 { // 700 * 1.18
		t.Errorf("order total = %v, want 826.00", orderTotal)
	}

	code, _ = doJSON(t, r, http.MethodGet, draftPath, token, nil)
	if code != http.StatusNotFound {
		t.Errorf("draft after checkout: %d, want 404", code)
	}

	code, resp = doJSON(t, r, http.MethodGet, "/api/pos/orders", token, nil)
	if code != http.StatusOK || field(t, resp, "count").(float64) != 1 {
		t.Errorf("orders: %d %v, want one order", code, resp)
	}
}

func TestEmptyTableCheckoutRejected(t *testing.T) {
	r := setupRouter(t)
	token, _, tableID := seedBackoffice(t, r)

	code, resp := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/pos/tables/%d/checkout", tableID), token, gin.H{
		"payment_method": "CASH",
	})
	if code != http.StatusNotFound {
		t.Errorf("checkout with no draft: %d %v, want 404", code, resp)
	}
	if c, resp := doJSON(t, r, http.MethodGet, "/api/pos/orders", token, nil); c != http.StatusOK || field(t, resp, "count").(float64) != 0 {
		t.Errorf("orders after rejected checkout: %v, want none", resp)
	}
}

func TestSalesReport(t *testing.T) {
	r := setupRouter(t)
	token, _, tableID := seedBackoffice(t, r)
	biryaniID, biryaniFullID, _, _ := seedMenu(t, r, token)

	draftPath := fmt.Sprintf("/api/pos/tables/%d/draft", tableID)
	if code, resp := doJSON(t, r, http.MethodPost, draftPath+"/lines", token, gin.H{
		"menu_item_id": biryaniID, "variant_id": biryaniFullID, "quantity": 2,
	}); code != http.StatusOK {
		t.Fatalf("add line: %d %v", code, resp)
	}
	if code, resp := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/pos/tables/%d/checkout", tableID), token, gin.H{
		"payment_method": "UPI",
	}); code != http.StatusCreated {
		t.Fatalf("checkout: %d %v", code, resp)
	}

	code, resp := doJSON(t, r, http.MethodGet, "/api/office/reports/sales", token, nil)
	if code != http.StatusOK {
		t.Fatalf("report: %d %v", code, resp)
	}
	if got := field(t, resp, "order_count").(float64); got != 1 {
		t.Errorf("order_count = %v, want 1", got)
	}
	if got := field(t, resp, "total_revenue").(float64); math.Abs(got-826.00) > 1e-6 {
		t.Errorf("total_revenue = %v, want 826.00", got)
	}
	if got := field(t, resp, "by_payment_method", "UPI").(float64); math.Abs(got-826.00) > 1e-6 {
		t.Errorf("UPI revenue = %v, want 826.00", got)
	}
}

func TestAuthAndRoleGates(t *testing.T) {
	r := setupRouter(t)
	token, _, _ := seedBackoffice(t, r)

	// no token
	if code, _ := doJSON(t, r, http.MethodGet, "/api/pos/menu", "", nil); code != http.StatusUnauthorized {
		t.Errorf("unauthenticated: %d, want 401", code)
	}
	// manager cannot reach owner-only staff management
	if code, _ := doJSON(t, r, http.MethodGet, "/api/admin/staff", token, nil); code != http.StatusForbidden {
		t.Errorf("manager on admin route: %d, want 403", code)
	}
}
