package controller

import (
	"net/http"

	"shopify_dev_v1_202608/internal/service"
	"shopify_dev_v1_202608/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type AIController struct {
	aiService *service.AIService
}

func NewAIController(aiService *service.AIService) *AIController {
	return &AIController{aiService: aiService}
}

// PromptReq 提示词请求体
type PromptReq struct {
	Prompt       string `json:"prompt"`
	SessionID    string `json:"sessionId"`
	SheetContext string `json:"sheetContext"`
}

// ProcessPrompt 处理用户提示词
// @Summary 将提示词转发给 AI 网关并返回回复
// @Description 携带表格上下文构建系统提示词，网关限流和欠费状态原样透传
// @Tags AI (智能模块)
// @Accept json
// @Produce json
// @Param body body PromptReq true "提示词参数"
// @Success 200 {object} service.PromptResult
// @Failure 429 {object} map[string]string "上游限流"
// @Failure 402 {object} map[string]string "上游额度不足"
// @Router /api/ai/process [post]
func (ctrl *AIController) ProcessPrompt(c *gin.Context) {
	var req PromptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &apperrors.ValidationError{Message: "请求体解析失败"})
		return
	}

	result, err := ctrl.aiService.ProcessPrompt(c.Request.Context(), req.Prompt, req.SessionID, req.SheetContext)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
