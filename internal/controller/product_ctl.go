package controller

import (
	"net/http"
	"strconv"

	"shopify_dev_v1_202608/internal/repository"
	"shopify_dev_v1_202608/internal/service"
	"shopify_dev_v1_202608/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productService *service.ProductService
}

func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// ==================== 查询接口 ====================

// ListProducts 获取商品列表
// @Summary 获取指定店铺的商品列表
// @Tags Product (商品模块)
// @Produce json
// @Param shop_id query int true "店铺ID"
// @Param status query string false "状态筛选"
// @Param keyword query string false "标题/货号/供应商搜索"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} map[string]interface{}
// @Router /api/products [get]
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	shopID, err := strconv.ParseInt(c.Query("shop_id"), 10, 64)
	if err != nil || shopID <= 0 {
		respondError(c, &apperrors.ValidationError{Message: "无效的 shop_id"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	products, total, err := ctrl.productService.ListProducts(c.Request.Context(), repository.ProductFilter{
		ShopID:   shopID,
		Status:   c.Query("status"),
		Keyword:  c.Query("keyword"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, &apperrors.PersistenceError{Op: "查询商品列表", Err: err})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":      0,
		"message":   "success",
		"data":      products,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetProduct 获取商品详情
// @Summary 获取单个商品详情（含变体和元字段）
// @Tags Product (商品模块)
// @Produce json
// @Param id path int true "商品ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "商品不存在"
// @Router /api/products/{id} [get]
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, &apperrors.ValidationError{Message: "无效的商品ID"})
		return
	}

	product, err := ctrl.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    product,
	})
}

// ListHistory 获取变更历史
// @Summary 获取店铺的字段级变更历史
// @Tags Product (商品模块)
// @Produce json
// @Param shop_id query int true "店铺ID"
// @Param entity_type query string false "实体类型筛选 product/variant"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(50)
// @Success 200 {object} map[string]interface{}
// @Router /api/history [get]
func (ctrl *ProductController) ListHistory(c *gin.Context) {
	shopID, err := strconv.ParseInt(c.Query("shop_id"), 10, 64)
	if err != nil || shopID <= 0 {
		respondError(c, &apperrors.ValidationError{Message: "无效的 shop_id"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))

	records, total, err := ctrl.productService.ListHistory(c.Request.Context(), repository.HistoryFilter{
		ShopID:     shopID,
		EntityType: c.Query("entity_type"),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		respondError(c, &apperrors.PersistenceError{Op: "查询变更历史", Err: err})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":      0,
		"message":   "success",
		"data":      records,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
