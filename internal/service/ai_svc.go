package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"shopify_dev_v1_202608/internal/config"
	"shopify_dev_v1_202608/pkg/aigateway"
	"shopify_dev_v1_202608/pkg/apperrors"

	"github.com/google/uuid"
)

// ==================== 服务 ====================

type AIService struct {
	client *aigateway.Client
	cfg    config.AIGatewayConfig
}

// NewAIService 创建 AI 服务
func NewAIService(client *aigateway.Client, cfg config.AIGatewayConfig) *AIService {
	return &AIService{
		client: client,
		cfg:    cfg,
	}
}

// ==================== 提示词处理 ====================

// PromptResult 提示词处理结果
type PromptResult struct {
	Response  string `json:"response"`
	SessionID string `json:"sessionId"`
	Timestamp string `json:"timestamp"`
}

// systemPrompt 拼装系统提示词，嵌入当前表格上下文
func systemPrompt(sheetContext string) string {
	if sheetContext == "" {
		sheetContext = "No sheet loaded"
	}
	return fmt.Sprintf(`You are an AI assistant specialized in spreadsheet operations. You can help users with:
- Sorting data (e.g., "Sort inventory by price descending")
- Filtering data (e.g., "Show products under $50")
- Calculating values (e.g., "Calculate total inventory value")
- Updating cells (e.g., "Increase all prices by 10%%")
- Creating formulas (e.g., "Add a formula to calculate profit margin")

When a user asks for an operation, respond with:
1. A clear explanation of what you'll do
2. The specific operation details in JSON format: { "operation": "sort|filter|calculate|update|formula", "details": {...} }

Current spreadsheet context: %s

Be concise and helpful. Always confirm destructive operations before executing.`, sheetContext)
}

// ProcessPrompt 将用户提示词转发给 AI 网关并返回回复
// sessionID 为空时生成新的会话 ID
func (s *AIService) ProcessPrompt(ctx context.Context, prompt, sessionID, sheetContext string) (*PromptResult, error) {
	if prompt == "" {
		return nil, &apperrors.ValidationError{Message: "prompt 不能为空"}
	}

	req := &aigateway.ChatRequest{
		Model: s.cfg.Model,
		Messages: []aigateway.ChatMessage{
			{Role: "system", Content: systemPrompt(sheetContext)},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   1000,
	}

	content, err := s.client.ChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	log.Printf("[AIService] 提示词处理完成 session=%s", sessionID)

	return &PromptResult{
		Response:  content,
		SessionID: sessionID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}
