package aigateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"shopify_dev_v1_202608/pkg/apperrors"
)

// ==================== DTO ====================

// ChatMessage 单条对话消息
type ChatMessage struct {
	Role    string `json:"role"` // system / user / assistant
	Content string `json:"content"`
}

// ChatRequest chat-completions 请求体 (OpenAI 兼容)
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// ChatResponse chat-completions 响应体
type ChatResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
}

// ==================== 客户端 ====================

// Client AI 网关客户端
type Client struct {
	rest    *resty.Client
	apiKey  string
	baseURL string
}

// NewClient 创建客户端
func NewClient(apiKey, baseURL string) *Client {
	rest := resty.New()
	rest.SetTimeout(60 * time.Second)

	return &Client{
		rest:    rest,
		apiKey:  apiKey,
		baseURL: baseURL,
	}
}

// ChatCompletion 发起一次补全请求，返回首个 choice 的文本
// 429/402 透传为对应的业务错误，其余非 2xx 归为 UpstreamError
func (c *Client) ChatCompletion(ctx context.Context, req *ChatRequest) (string, error) {
	if c.apiKey == "" {
		return "", &apperrors.ConfigurationError{Key: "AI_GATEWAY_KEY"}
	}

	var result ChatResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Post(c.baseURL + "/v1/chat/completions")

	if err != nil {
		return "", fmt.Errorf("AI 网关网络错误: %w", err)
	}

	switch {
	case resp.StatusCode() == http.StatusTooManyRequests:
		return "", &apperrors.RateLimitedError{}
	case resp.StatusCode() == http.StatusPaymentRequired:
		return "", &apperrors.PaymentRequiredError{}
	case resp.IsError():
		return "", &apperrors.UpstreamError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	if len(result.Choices) == 0 {
		return "", &apperrors.UpstreamError{StatusCode: resp.StatusCode(), Body: "响应缺少 choices"}
	}

	return result.Choices[0].Message.Content, nil
}
