package controller

import (
	"net/http"
	"strconv"

	"shopify_dev_v1_202608/internal/middleware"
	"shopify_dev_v1_202608/internal/model"
	"shopify_dev_v1_202608/internal/repository"
	"shopify_dev_v1_202608/internal/service"
	"shopify_dev_v1_202608/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type SyncController struct {
	syncService *service.SyncService
	syncRepo    repository.SyncOperationRepository
}

func NewSyncController(syncService *service.SyncService, syncRepo repository.SyncOperationRepository) *SyncController {
	return &SyncController{
		syncService: syncService,
		syncRepo:    syncRepo,
	}
}

// SyncReq 同步请求体
type SyncReq struct {
	ShopDomain string `json:"shopDomain"`
}

// Sync 触发商品全量同步
// @Summary 同步指定店铺的商品目录
// @Description 分页拉取远端商品并逐条落库，单条失败不中断整体流程
// @Tags Sync (同步模块)
// @Accept json
// @Produce json
// @Param body body SyncReq true "店铺域名"
// @Success 200 {object} map[string]interface{} "同步统计"
// @Failure 404 {object} map[string]string "店铺不存在"
// @Router /api/sync [post]
func (ctrl *SyncController) Sync(c *gin.Context) {
	// 冷却中间件已读过请求体，这里走缓存副本
	var req SyncReq
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		respondError(c, &apperrors.ValidationError{Message: "请求体解析失败"})
		return
	}

	result, err := ctrl.syncService.SyncProducts(c.Request.Context(), req.ShopDomain)
	if err != nil {
		// 失败的同步不占用冷却窗口，前端可立即重试
		middleware.GetCooldown().Reset(middleware.DomainSyncKey(req.ShopDomain, model.SyncTypeFull))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"productsSync":  result.ProductsSynced,
		"totalProducts": result.TotalProducts,
	})
}

// ListOperations 查询同步操作记录
// @Summary 获取店铺的同步操作历史
// @Tags Sync (同步模块)
// @Produce json
// @Param shop_id query int true "店铺ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} map[string]interface{}
// @Router /api/sync/operations [get]
func (ctrl *SyncController) ListOperations(c *gin.Context) {
	shopID, err := strconv.ParseInt(c.Query("shop_id"), 10, 64)
	if err != nil || shopID <= 0 {
		respondError(c, &apperrors.ValidationError{Message: "无效的 shop_id"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	ops, total, err := ctrl.syncRepo.ListByShop(c.Request.Context(), shopID, page, pageSize)
	if err != nil {
		respondError(c, &apperrors.PersistenceError{Op: "查询同步记录", Err: err})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":      0,
		"message":   "success",
		"data":      ops,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
