package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"shopify_dev_v1_202608/internal/config"
	"shopify_dev_v1_202608/internal/service"
	"shopify_dev_v1_202608/pkg/aigateway"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 测试辅助 ====================

func setupAIRouter(gatewayURL string) *gin.Engine {
	cfg := config.AIGatewayConfig{
		ApiKey:  "gateway-key",
		BaseURL: gatewayURL,
		Model:   "google/gemini-2.5-flash",
	}
	svc := service.NewAIService(aigateway.NewClient(cfg.ApiKey, cfg.BaseURL), cfg)
	ctrl := NewAIController(svc)

	r := gin.New()
	r.POST("/api/ai/process", ctrl.ProcessPrompt)
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ==================== 单元测试 ====================

func TestAIController_ProcessPrompt(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "done"}},
			},
		})
	}))
	defer gateway.Close()

	r := setupAIRouter(gateway.URL)
	w := postJSON(r, "/api/ai/process", map[string]string{
		"prompt":       "sort by price",
		"sessionId":    "sess-9",
		"sheetContext": "10 rows",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, want 200 (%s)", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["response"] != "done" {
		t.Errorf("response = %v", resp["response"])
	}
	if resp["sessionId"] != "sess-9" {
		t.Errorf("sessionId = %v, want sess-9", resp["sessionId"])
	}
	if resp["timestamp"] == nil || resp["timestamp"] == "" {
		t.Errorf("timestamp 缺失")
	}
}

func TestAIController_RateLimitPassthrough(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer gateway.Close()

	r := setupAIRouter(gateway.URL)
	w := postJSON(r, "/api/ai/process", map[string]string{"prompt": "hello"})

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("状态码 = %d, want 429", w.Code)
	}
}

func TestAIController_PaymentRequiredPassthrough(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer gateway.Close()

	r := setupAIRouter(gateway.URL)
	w := postJSON(r, "/api/ai/process", map[string]string{"prompt": "hello"})

	if w.Code != http.StatusPaymentRequired {
		t.Errorf("状态码 = %d, want 402", w.Code)
	}
}

func TestAIController_EmptyPrompt(t *testing.T) {
	r := setupAIRouter("http://unused.invalid")
	w := postJSON(r, "/api/ai/process", map[string]string{"prompt": ""})

	if w.Code != http.StatusBadRequest {
		t.Errorf("状态码 = %d, want 400", w.Code)
	}
}
