package controller

import (
	"net/http"

	"shopify_dev_v1_202608/internal/service"
	"shopify_dev_v1_202608/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(s *service.AuthService) *AuthController {
	return &AuthController{authService: s}
}

// ==================== 请求体 ====================

// CallbackReq 授权回调请求体
type CallbackReq struct {
	Shop  string `json:"shop"`
	Code  string `json:"code"`
	State string `json:"state"`
}

// ==================== 接口 ====================

// Login 获取 Shopify 授权链接
// @Summary 生成店铺安装授权链接
// @Description 为指定店铺域名生成 OAuth 授权跳转链接，state 由服务端生成并缓存
// @Tags Auth (授权模块)
// @Accept json
// @Produce json
// @Param shop query string true "店铺域名，如 demo.myshopify.com"
// @Success 200 {object} map[string]interface{} "授权链接"
// @Failure 400 {object} map[string]string "错误信息"
// @Router /api/auth/login [get]
func (ctrl *AuthController) Login(c *gin.Context) {
	shopDomain := c.Query("shop")
	if shopDomain == "" {
		respondError(c, &apperrors.ValidationError{Message: "缺少 shop 参数"})
		return
	}

	url, err := ctrl.authService.GenerateInstallURL(c.Request.Context(), shopDomain)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "获取成功",
		"auth_url": url,
	})
}

// Callback Shopify 授权回调
// @Summary 用授权码换取访问令牌并入库
// @Description 接收 shop 和 code，向 Shopify 换取 Token，拉取店铺信息后写库
// @Tags Auth (授权模块)
// @Accept json
// @Produce json
// @Param body body CallbackReq true "回调参数"
// @Success 200 {object} map[string]interface{} "店铺信息"
// @Failure 400 {object} map[string]string "换取失败/参数错误"
// @Router /api/auth/callback [post]
func (ctrl *AuthController) Callback(c *gin.Context) {
	var req CallbackReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &apperrors.ValidationError{Message: "请求体解析失败"})
		return
	}

	shop, err := ctrl.authService.HandleCallback(c.Request.Context(), req.Shop, req.Code, req.State)
	if err != nil {
		respondError(c, err)
		return
	}

	// AccessToken 带 json:"-" 标签，不会出现在响应里
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"shop":    shop,
	})
}
