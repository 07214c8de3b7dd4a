package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopify_dev_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// ProductRepository 商品仓储接口
type ProductRepository interface {
	// 同步写路径，全部按 (shop_id, shopify_*_id) 冲突更新
	Upsert(ctx context.Context, product *model.Product) error
	UpsertVariant(ctx context.Context, variant *model.ProductVariant) error
	UpsertMetafield(ctx context.Context, metafield *model.ProductMetafield) error

	// 读路径
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	GetByShopifyID(ctx context.Context, shopID, shopifyProductID int64) (*model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error)
	CountByShop(ctx context.Context, shopID int64) (int64, error)
}

// ProductFilter 商品过滤条件
type ProductFilter struct {
	ShopID   int64
	Status   string
	Keyword  string
	Page     int
	PageSize int
}

// ==================== 仓储实现 ====================

type productRepo struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Upsert(ctx context.Context, product *model.Product) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "shop_id"}, {Name: "shopify_product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "handle", "body_html", "vendor", "product_type",
			"status", "published_scope", "template_suffix", "tags",
			"published_at", "created_at_shopify", "updated_at_shopify",
			"updated_at",
		}),
	}).Create(product).Error
	if err != nil {
		return err
	}

	// 冲突更新时回填本地行 ID，变体外键依赖它
	if product.ID == 0 {
		existing, err := r.GetByShopifyID(ctx, product.ShopID, product.ShopifyProductID)
		if err != nil {
			return err
		}
		product.ID = existing.ID
		product.CreatedAt = existing.CreatedAt
	}
	return nil
}

func (r *productRepo) UpsertVariant(ctx context.Context, variant *model.ProductVariant) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "shop_id"}, {Name: "shopify_variant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"product_id", "title", "sku", "barcode", "position",
			"price", "compare_at_price", "inventory_quantity",
			"weight", "weight_unit",
			"inventory_management", "inventory_policy", "fulfillment_service",
			"taxable", "requires_shipping",
			"option1", "option2", "option3",
			"updated_at",
		}),
	}).Create(variant).Error
}

func (r *productRepo) UpsertMetafield(ctx context.Context, metafield *model.ProductMetafield) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "shop_id"}, {Name: "shopify_metafield_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"product_id", "namespace", "key", "value", "value_type",
			"description", "updated_at",
		}),
	}).Create(metafield).Error
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Preload("Metafields").
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) GetByShopifyID(ctx context.Context, shopID, shopifyProductID int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND shopify_product_id = ?", shopID, shopifyProductID).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.ShopID > 0 {
		query = query.Where("shop_id = ?", filter.ShopID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where("title LIKE ? OR handle LIKE ? OR vendor LIKE ?", kw, kw, kw)
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
		pageSize = 20
	}

	var products []model.Product
	err := query.
		Preload("Variants").
		Order("updated_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepo) CountByShop(ctx context.Context, shopID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("shop_id = ?", shopID).
		Count(&count).Error
	return count, err
}
