package controller

import (
	"net/http"
	"strconv"

	"shopify_dev_v1_202608/internal/service"
	"shopify_dev_v1_202608/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ShopController struct {
	shopService *service.ShopService
}

func NewShopController(shopService *service.ShopService) *ShopController {
	return &ShopController{shopService: shopService}
}

// ListShops 获取店铺列表
// @Summary 获取已接入的店铺列表
// @Tags Shop (店铺模块)
// @Produce json
// @Param only_active query bool false "只看已激活店铺"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} map[string]interface{}
// @Router /api/shops [get]
func (ctrl *ShopController) ListShops(c *gin.Context) {
	onlyActive := c.Query("only_active") == "true"
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	shops, total, err := ctrl.shopService.ListShops(c.Request.Context(), onlyActive, page, pageSize)
	if err != nil {
		respondError(c, &apperrors.PersistenceError{Op: "查询店铺列表", Err: err})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":      0,
		"message":   "success",
		"data":      shops,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetShop 获取店铺详情
// @Summary 获取单个店铺详情及商品数
// @Tags Shop (店铺模块)
// @Produce json
// @Param id path int true "店铺ID"
// @Success 200 {object} service.ShopSummary
// @Failure 404 {object} map[string]string "店铺不存在"
// @Router /api/shops/{id} [get]
func (ctrl *ShopController) GetShop(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, &apperrors.ValidationError{Message: "无效的店铺ID"})
		return
	}

	summary, err := ctrl.shopService.GetShop(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    summary,
	})
}
