package service

import (
	"context"
	"errors"

	"shopify_dev_v1_202608/internal/model"
	"shopify_dev_v1_202608/internal/repository"
	"shopify_dev_v1_202608/pkg/apperrors"

	"gorm.io/gorm"
)

type ProductService struct {
	productRepo repository.ProductRepository
	historyRepo repository.ChangeHistoryRepository
}

func NewProductService(productRepo repository.ProductRepository, historyRepo repository.ChangeHistoryRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		historyRepo: historyRepo,
	}
}

// ListProducts 按条件查商品列表
func (s *ProductService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, int64, error) {
	return s.productRepo.List(ctx, filter)
}

// GetProduct 查商品详情（带变体和元字段）
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "product", Key: ""}
		}
		return nil, &apperrors.PersistenceError{Op: "查询商品", Err: err}
	}
	return product, nil
}

// ListHistory 查变更历史
func (s *ProductService) ListHistory(ctx context.Context, filter repository.HistoryFilter) ([]model.ChangeHistory, int64, error) {
	return s.historyRepo.List(ctx, filter)
}
