package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"shopify_dev_v1_202608/internal/config"
	"shopify_dev_v1_202608/internal/repository"
	"shopify_dev_v1_202608/internal/service"
	"shopify_dev_v1_202608/pkg/shopifyapi"
)

func setupAuthRouter(t *testing.T, shopifyURL string) *gin.Engine {
	db := setupSyncCtlDB(t)
	shopRepo := repository.NewShopRepository(db)

	client := shopifyapi.NewClient("testkey", "testsecret", "2024-01")
	if shopifyURL != "" {
		client.SetBaseURL(shopifyURL)
	}

	cfg := config.ShopifyConfig{
		ApiKey:     "testkey",
		ApiSecret:  "testsecret",
		ApiVersion: "2024-01",
		Scopes:     "read_products",
		AppURL:     "https://app.example.com",
	}
	ctrl := NewAuthController(service.NewAuthService(shopRepo, client, cfg))

	r := gin.New()
	r.GET("/api/auth/login", ctrl.Login)
	r.POST("/api/auth/callback", ctrl.Callback)
	return r
}

// ==================== 单元测试 ====================

func TestAuthController_Callback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/admin/oauth/access_token":
			fmt.Fprint(w, `{"access_token":"shpat_secret_token","scope":"read_products"}`)
		case strings.HasSuffix(r.URL.Path, "/shop.json"):
			fmt.Fprint(w, `{"shop":{"id":7,"name":"Ctl Shop","email":"a@b.c","currency":"USD"}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	r := setupAuthRouter(t, srv.URL)
	w := postJSON(r, "/api/auth/callback", map[string]string{
		"shop": "demo.myshopify.com",
		"code": "authcode",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, want 200 (%s)", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["success"] != true {
		t.Errorf("success = %v, want true", resp["success"])
	}

	shop, ok := resp["shop"].(map[string]interface{})
	if !ok {
		t.Fatalf("shop 字段缺失: %s", w.Body.String())
	}
	if shop["shop_domain"] != "demo.myshopify.com" {
		t.Errorf("shop_domain = %v", shop["shop_domain"])
	}

	// 令牌绝不出现在响应体里
	if strings.Contains(w.Body.String(), "shpat_secret_token") {
		t.Errorf("响应泄露了 access token")
	}
}

func TestAuthController_Callback_ExchangeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	r := setupAuthRouter(t, srv.URL)
	w := postJSON(r, "/api/auth/callback", map[string]string{
		"shop": "demo.myshopify.com",
		"code": "badcode",
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("状态码 = %d, want 400", w.Code)
	}
}

func TestAuthController_Callback_MissingParams(t *testing.T) {
	r := setupAuthRouter(t, "")
	w := postJSON(r, "/api/auth/callback", map[string]string{"shop": "demo.myshopify.com"})

	if w.Code != http.StatusBadRequest {
		t.Errorf("状态码 = %d, want 400", w.Code)
	}
}

func TestAuthController_Login(t *testing.T) {
	r := setupAuthRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/login?shop=demo.myshopify.com", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d (%s)", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	authURL, _ := resp["auth_url"].(string)
	if !strings.HasPrefix(authURL, "https://demo.myshopify.com/admin/oauth/authorize?") {
		t.Errorf("auth_url = %q", authURL)
	}
}

func TestAuthController_Login_MissingShop(t *testing.T) {
	r := setupAuthRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/login", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("状态码 = %d, want 400", w.Code)
	}
}
