package service

import (
	"context"
	"errors"

	"shopify_dev_v1_202608/internal/model"
	"shopify_dev_v1_202608/internal/repository"
	"shopify_dev_v1_202608/pkg/apperrors"

	"gorm.io/gorm"
)

type ShopService struct {
	shopRepo    repository.ShopRepository
	productRepo repository.ProductRepository
}

func NewShopService(shopRepo repository.ShopRepository, productRepo repository.ProductRepository) *ShopService {
	return &ShopService{
		shopRepo:    shopRepo,
		productRepo: productRepo,
	}
}

// ShopSummary 店铺概览（含商品数，不含令牌）
type ShopSummary struct {
	Shop         *model.Shop `json:"shop"`
	ProductCount int64       `json:"product_count"`
}

// ListShops 查店铺列表
func (s *ShopService) ListShops(ctx context.Context, onlyActive bool, page, pageSize int) ([]model.Shop, int64, error) {
	return s.shopRepo.List(ctx, repository.ShopFilter{
		OnlyActive: onlyActive,
		Page:       page,
		PageSize:   pageSize,
	})
}

// GetShop 查店铺详情
func (s *ShopService) GetShop(ctx context.Context, id int64) (*ShopSummary, error) {
	shop, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "shop", Key: ""}
		}
		return nil, &apperrors.PersistenceError{Op: "查询店铺", Err: err}
	}

	count, err := s.productRepo.CountByShop(ctx, shop.ID)
	if err != nil {
		return nil, &apperrors.PersistenceError{Op: "统计商品", Err: err}
	}

	return &ShopSummary{Shop: shop, ProductCount: count}, nil
}
