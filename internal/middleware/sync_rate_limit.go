package middleware

import (
	"fmt"
	"net/http"
	"time"

	"shopify_dev_v1_202608/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// ==================== 同步冷却中间件 ====================

// syncBody 只取冷却维度需要的字段，完整解析留给 Controller
type syncBody struct {
	ShopDomain string `json:"shopDomain"`
}

// SyncCooldownGuard 按店铺域名限制全量同步频率
// 请求体用 ShouldBindBodyWith 缓存，下游 Controller 需用同样方式读取
//
// 使用示例:
//
//	api.POST("/sync", middleware.SyncCooldownGuard(0), syncCtl.Sync)
func SyncCooldownGuard(interval time.Duration) gin.HandlerFunc {
	if interval == 0 {
		interval = CooldownInterval(model.SyncTypeFull)
	}

	return func(c *gin.Context) {
		var body syncBody
		if err := c.ShouldBindBodyWith(&body, binding.JSON); err != nil || body.ShopDomain == "" {
			// 交给 Controller 返回参数错误
			c.Next()
			return
		}

		key := DomainSyncKey(body.ShopDomain, model.SyncTypeFull)
		result := GetCooldown().Check(key, interval)
		if !result.Allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       formatRetryMessage(result.RetryAfter),
				"retry_after": int(result.RetryAfter.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// formatRetryMessage 格式化重试提示信息
func formatRetryMessage(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("同步冷却中，请 %d 秒后重试", seconds)
	}

	minutes := seconds / 60
	remaining := seconds % 60
	if remaining == 0 {
		return fmt.Sprintf("同步冷却中，请 %d 分钟后重试", minutes)
	}
	return fmt.Sprintf("同步冷却中，请 %d 分 %d 秒后重试", minutes, remaining)
}
