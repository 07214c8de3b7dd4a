package repository

import (
	"context"

	"gorm.io/gorm"

	"shopify_dev_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// ChangeHistoryRepository 变更历史仓储接口 (只追加)
type ChangeHistoryRepository interface {
	BatchCreate(ctx context.Context, records []model.ChangeHistory) error
	List(ctx context.Context, filter HistoryFilter) ([]model.ChangeHistory, int64, error)
}

// HistoryFilter 变更历史过滤条件
type HistoryFilter struct {
	ShopID     int64
	EntityType string
	Page       int
	PageSize   int
}

// ==================== 仓储实现 ====================

type changeHistoryRepo struct {
	db *gorm.DB
}

// NewChangeHistoryRepository 创建变更历史仓储
func NewChangeHistoryRepository(db *gorm.DB) ChangeHistoryRepository {
	return &changeHistoryRepo{db: db}
}

func (r *changeHistoryRepo) BatchCreate(ctx context.Context, records []model.ChangeHistory) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&records).Error
}

func (r *changeHistoryRepo) List(ctx context.Context, filter HistoryFilter) ([]model.ChangeHistory, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.ChangeHistory{})

	if filter.ShopID > 0 {
		query = query.Where("shop_id = ?", filter.ShopID)
	}
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize := filter.Page, filter.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}

	var records []model.ChangeHistory
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
