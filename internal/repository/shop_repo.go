package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopify_dev_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// ShopRepository 店铺仓储接口
type ShopRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Shop, error)
	GetByDomain(ctx context.Context, domain string) (*model.Shop, error)
	// Upsert 按 shop_domain 冲突更新，重复授权不会产生重复行
	Upsert(ctx context.Context, shop *model.Shop) error
	UpdateLastSyncAt(ctx context.Context, id int64, t time.Time) error
	List(ctx context.Context, filter ShopFilter) ([]model.Shop, int64, error)
}

// ShopFilter 店铺过滤条件
type ShopFilter struct {
	OnlyActive bool
	Page       int
	PageSize   int
}

// ==================== 仓储实现 ====================

type shopRepo struct {
	db *gorm.DB
}

// NewShopRepository 创建店铺仓储
func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepo{db: db}
}

func (r *shopRepo) GetByID(ctx context.Context, id int64) (*model.Shop, error) {
	var shop model.Shop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *shopRepo) GetByDomain(ctx context.Context, domain string) (*model.Shop, error) {
	var shop model.Shop
	err := r.db.WithContext(ctx).
		Where("shop_domain = ?", domain).
		First(&shop).Error
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *shopRepo) Upsert(ctx context.Context, shop *model.Shop) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "shop_domain"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"access_token", "shop_name", "shop_email", "shop_owner",
			"currency", "timezone", "plan_name",
			"is_active", "last_sync_at", "updated_at",
		}),
	}).Create(shop).Error
	if err != nil {
		return err
	}

	// 冲突更新路径下主键可能没回填，补查一次保证调用方拿到行 ID
	if shop.ID == 0 {
		existing, err := r.GetByDomain(ctx, shop.ShopDomain)
		if err != nil {
			return err
		}
		shop.ID = existing.ID
		shop.CreatedAt = existing.CreatedAt
	}
	return nil
}

func (r *shopRepo) UpdateLastSyncAt(ctx context.Context, id int64, t time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Shop{}).
		Where("id = ?", id).
		Update("last_sync_at", t).Error
}

func (r *shopRepo) List(ctx context.Context, filter ShopFilter) ([]model.Shop, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Shop{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var shops []model.Shop
	if err := query.Order("created_at DESC").Find(&shops).Error; err != nil {
		return nil, 0, err
	}
	return shops, total, nil
}
