package aigateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopify_dev_v1_202608/pkg/apperrors"
)

func testRequest() *ChatRequest {
	return &ChatRequest{
		Model: "google/gemini-2.5-flash",
		Messages: []ChatMessage{
			{Role: "system", Content: "system"},
			{Role: "user", Content: "hello"},
		},
		Temperature: 0.7,
		MaxTokens:   1000,
	}
}

func TestChatCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("路径 = %s, want /v1/chat/completions", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer testkey" {
			t.Errorf("Authorization 头 = %q", r.Header.Get("Authorization"))
		}

		var req ChatRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.MaxTokens != 1000 {
			t.Errorf("max_tokens = %d, want 1000", req.MaxTokens)
		}
		if req.Temperature != 0.7 {
			t.Errorf("temperature = %v, want 0.7", req.Temperature)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "回复内容"}},
			},
		})
	}))
	defer srv.Close()

	client := NewClient("testkey", srv.URL)
	content, err := client.ChatCompletion(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("补全请求失败: %v", err)
	}
	if content != "回复内容" {
		t.Errorf("content = %q, want 回复内容", content)
	}
}

func TestChatCompletion_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient("testkey", srv.URL)
	_, err := client.ChatCompletion(context.Background(), testRequest())

	var rle *apperrors.RateLimitedError
	if !errors.As(err, &rle) {
		t.Fatalf("错误类型 = %T, want *RateLimitedError", err)
	}
}

func TestChatCompletion_PaymentRequired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer srv.Close()

	client := NewClient("testkey", srv.URL)
	_, err := client.ChatCompletion(context.Background(), testRequest())

	var pre *apperrors.PaymentRequiredError
	if !errors.As(err, &pre) {
		t.Fatalf("错误类型 = %T, want *PaymentRequiredError", err)
	}
}

func TestChatCompletion_MissingKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewClient("", srv.URL)
	_, err := client.ChatCompletion(context.Background(), testRequest())

	var cfgErr *apperrors.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("错误类型 = %T, want *ConfigurationError", err)
	}
	if called {
		t.Errorf("缺少密钥时不应发起请求")
	}
}

func TestChatCompletion_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer srv.Close()

	client := NewClient("testkey", srv.URL)
	_, err := client.ChatCompletion(context.Background(), testRequest())

	var ue *apperrors.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("错误类型 = %T, want *UpstreamError", err)
	}
}
