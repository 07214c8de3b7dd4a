package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"shopify_dev_v1_202608/internal/model"
	"shopify_dev_v1_202608/internal/repository"
	"shopify_dev_v1_202608/pkg/apperrors"
	"shopify_dev_v1_202608/pkg/shopifyapi"
)

// ==================== SyncService 目录同步 ====================

// SyncResult 一轮同步的结果计数
type SyncResult struct {
	TotalProducts  int `json:"totalProducts"`
	ProductsSynced int `json:"productsSync"`
	FailedProducts int `json:"failedProducts"`
	OperationID    int64
}

// SyncService 把远端商品目录镜像到本地表
// 严格顺序执行：逐页拉取、逐商品 upsert，不做并发和重试
type SyncService struct {
	shopRepo    repository.ShopRepository
	productRepo repository.ProductRepository
	syncRepo    repository.SyncOperationRepository
	historyRepo repository.ChangeHistoryRepository
	client      *shopifyapi.Client
}

// NewSyncService 创建同步服务
func NewSyncService(
	shopRepo repository.ShopRepository,
	productRepo repository.ProductRepository,
	syncRepo repository.SyncOperationRepository,
	historyRepo repository.ChangeHistoryRepository,
	client *shopifyapi.Client,
) *SyncService {
	return &SyncService{
		shopRepo:    shopRepo,
		productRepo: productRepo,
		syncRepo:    syncRepo,
		historyRepo: historyRepo,
		client:      client,
	}
}

// SyncProducts 同步指定店铺的全部商品
// 拉页失败整轮终止并把操作标为 failed；单个商品入库失败只跳过该商品
// (其变体不再尝试)，整轮照常收尾
func (s *SyncService) SyncProducts(ctx context.Context, shopDomain string) (*SyncResult, error) {
	return s.syncProducts(ctx, shopDomain, model.SyncTypeFull)
}

// SyncProductsScheduled 定时任务入口，仅操作类型标记不同
func (s *SyncService) SyncProductsScheduled(ctx context.Context, shopDomain string) (*SyncResult, error) {
	return s.syncProducts(ctx, shopDomain, model.SyncTypeScheduled)
}

func (s *SyncService) syncProducts(ctx context.Context, shopDomain, opType string) (*SyncResult, error) {
	if shopDomain == "" {
		return nil, &apperrors.ValidationError{Message: "缺少 shopDomain 参数"}
	}

	// 1. 解析店铺，未知域名不产生任何同步记录
	shop, err := s.shopRepo.GetByDomain(ctx, shopDomain)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "店铺", Key: shopDomain}
		}
		return nil, err
	}
	if !shop.IsActive {
		return nil, &apperrors.NotFoundError{Resource: "店铺", Key: shopDomain}
	}

	// 2. 登记同步操作
	now := time.Now()
	op := &model.SyncOperation{
		ShopID:        shop.ID,
		OperationType: opType,
		Status:        model.SyncStatusInProgress,
		StartedAt:     &now,
	}
	if err := s.syncRepo.Create(ctx, op); err != nil {
		// 进度记录失败不阻塞同步本身
		log.Printf("[SyncService] 登记同步操作失败 shop=%s: %v", shopDomain, err)
		op = nil
	}

	// 3. 逐页拉取
	var allProducts []shopifyapi.Product
	pager := s.client.NewProductPager(shop.ShopDomain, shop.AccessToken)
	for pager.HasNext() {
		page, err := pager.Next(ctx)
		if err != nil {
			// 拉页失败整轮终止，操作记为 failed 而不是悬在 in_progress
			s.finishOperation(ctx, op, model.SyncStatusFailed, len(allProducts), 0, 0, err.Error())
			return nil, err
		}
		allProducts = append(allProducts, page...)
		log.Printf("[SyncService] shop=%s 本页拉取 %d 条 (累计 %d)", shopDomain, len(page), len(allProducts))
	}

	// 4. 逐商品入库
	processed := 0
	failed := 0
	for i := range allProducts {
		if err := s.upsertProduct(ctx, shop, op, &allProducts[i]); err != nil {
			log.Printf("[SyncService] 商品入库失败 shop=%s product=%d: %v",
				shopDomain, allProducts[i].ID, err)
			failed++
			continue
		}
		processed++
	}

	// 5. 收尾
	s.finishOperation(ctx, op, model.SyncStatusCompleted, len(allProducts), processed, failed, "")
	if err := s.shopRepo.UpdateLastSyncAt(ctx, shop.ID, time.Now()); err != nil {
		log.Printf("[SyncService] 更新 last_sync_at 失败 shop=%s: %v", shopDomain, err)
	}

	log.Printf("[SyncService] 同步完成 shop=%s total=%d processed=%d failed=%d",
		shopDomain, len(allProducts), processed, failed)

	result := &SyncResult{
		TotalProducts:  len(allProducts),
		ProductsSynced: processed,
		FailedProducts: failed,
	}
	if op != nil {
		result.OperationID = op.ID
	}
	return result, nil
}

// ==================== 单商品处理 ====================

// upsertProduct 商品本体 + 变体 + 元字段入库，并记录字段级变更
// 不变式：先保证父商品行存在，再写变体；商品失败则整个放弃
func (s *SyncService) upsertProduct(ctx context.Context, shop *model.Shop, op *model.SyncOperation, dto *shopifyapi.Product) error {
	// 变更审计需要 upsert 前的旧值
	existing, err := s.productRepo.GetByShopifyID(ctx, shop.ID, dto.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	product := &model.Product{
		ShopID:           shop.ID,
		ShopifyProductID: dto.ID,
		Title:            dto.Title,
		Handle:           dto.Handle,
		BodyHTML:         dto.BodyHTML,
		Vendor:           dto.Vendor,
		ProductType:      dto.ProductType,
		Status:           dto.Status,
		PublishedScope:   dto.PublishedScope,
		TemplateSuffix:   dto.TemplateSuffix,
		Tags:             dto.TagList(),
		PublishedAt:      dto.PublishedAt,
		CreatedAtShopify: dto.CreatedAt,
		UpdatedAtShopify: dto.UpdatedAt,
	}
	if err := s.productRepo.Upsert(ctx, product); err != nil {
		return err
	}

	s.recordProductChanges(ctx, shop.ID, op, existing, product)

	// 变体：单条失败只记日志，不影响兄弟变体
	for i := range dto.Variants {
		v := &dto.Variants[i]
		variant := &model.ProductVariant{
			ProductID:           product.ID,
			ShopID:              shop.ID,
			ShopifyVariantID:    v.ID,
			Title:               v.Title,
			SKU:                 v.SKU,
			Barcode:             v.Barcode,
			Position:            v.Position,
			Price:               v.Price,
			CompareAtPrice:      v.CompareAtPrice,
			InventoryQuantity:   v.InventoryQuantity,
			Weight:              v.Weight,
			WeightUnit:          v.WeightUnit,
			InventoryManagement: v.InventoryManagement,
			InventoryPolicy:     v.InventoryPolicy,
			FulfillmentService:  v.FulfillmentService,
			Taxable:             v.Taxable,
			RequiresShipping:    v.RequiresShipping,
			Option1:             v.Option1,
			Option2:             v.Option2,
			Option3:             v.Option3,
		}
		if err := s.productRepo.UpsertVariant(ctx, variant); err != nil {
			log.Printf("[SyncService] 变体入库失败 product=%d variant=%d: %v", dto.ID, v.ID, err)
		}
	}

	// 元字段 (响应里内联时才有)
	for i := range dto.Metafields {
		m := &dto.Metafields[i]
		metafield := &model.ProductMetafield{
			ProductID:          product.ID,
			ShopID:             shop.ID,
			ShopifyMetafieldID: m.ID,
			Namespace:          m.Namespace,
			Key:                m.Key,
			Value:              m.Value,
			ValueType:          m.Type,
			Description:        m.Description,
		}
		if err := s.productRepo.UpsertMetafield(ctx, metafield); err != nil {
			log.Printf("[SyncService] 元字段入库失败 product=%d metafield=%d: %v", dto.ID, m.ID, err)
		}
	}

	return nil
}

// recordProductChanges 对比新旧值，写字段级变更记录 (History 页数据来源)
// 审计失败只记日志，永不影响同步主流程
func (s *SyncService) recordProductChanges(ctx context.Context, shopID int64, op *model.SyncOperation, old, new_ *model.Product) {
	var opID *int64
	var meta datatypes.JSON
	if op != nil {
		opID = &op.ID
		// 记录来源操作类型，操作行被清理后仍可辨别变更出处
		if raw, err := json.Marshal(map[string]string{"operation_type": op.OperationType}); err == nil {
			meta = raw
		}
	}

	var records []model.ChangeHistory

	if old == nil {
		records = append(records, model.ChangeHistory{
			ShopID:          shopID,
			EntityType:      model.EntityTypeProduct,
			EntityID:        new_.ID,
			ShopifyEntityID: new_.ShopifyProductID,
			FieldName:       "title",
			NewValue:        new_.Title,
			ChangeType:      model.ChangeTypeCreate,
			OperationID:     opID,
			Metadata:        meta,
		})
	} else {
		diff := func(field, oldVal, newVal string) {
			if oldVal == newVal {
				return
			}
			records = append(records, model.ChangeHistory{
				ShopID:          shopID,
				EntityType:      model.EntityTypeProduct,
				EntityID:        new_.ID,
				ShopifyEntityID: new_.ShopifyProductID,
				FieldName:       field,
				OldValue:        oldVal,
				NewValue:        newVal,
				ChangeType:      model.ChangeTypeUpdate,
				OperationID:     opID,
				Metadata:        meta,
			})
		}
		diff("title", old.Title, new_.Title)
		diff("status", old.Status, new_.Status)
		diff("vendor", old.Vendor, new_.Vendor)
		diff("product_type", old.ProductType, new_.ProductType)
	}

	if err := s.historyRepo.BatchCreate(ctx, records); err != nil {
		log.Printf("[SyncService] 变更记录写入失败 product=%d: %v", new_.ShopifyProductID, err)
	}
}

// finishOperation 更新同步操作的终态
func (s *SyncService) finishOperation(ctx context.Context, op *model.SyncOperation, status string, total, processed, failed int, errMsg string) {
	if op == nil {
		return
	}
	now := time.Now()
	fields := map[string]interface{}{
		"status":            status,
		"total_records":     total,
		"processed_records": processed,
		"failed_records":    failed,
		"completed_at":      &now,
	}
	if errMsg != "" {
		fields["error_message"] = errMsg
	}
	if err := s.syncRepo.UpdateFields(ctx, op.ID, fields); err != nil {
		log.Printf("[SyncService] 更新同步操作失败 op=%d: %v", op.ID, err)
	}
}
