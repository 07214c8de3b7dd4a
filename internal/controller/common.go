package controller

import (
	"log"

	"shopify_dev_v1_202608/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// respondError 统一错误出口，按错误类型映射 HTTP 状态码
func respondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= 500 {
		log.Printf("[HTTP] %s %s 失败: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
