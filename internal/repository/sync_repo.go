package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shopify_dev_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// SyncOperationRepository 同步操作仓储接口
type SyncOperationRepository interface {
	Create(ctx context.Context, op *model.SyncOperation) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	GetByID(ctx context.Context, id int64) (*model.SyncOperation, error)
	ListByShop(ctx context.Context, shopID int64, page, pageSize int) ([]model.SyncOperation, int64, error)
	// FailStale 把卡在 in_progress 超过 deadline 的操作标记为 failed
	// 进程崩溃后遗留的记录只能靠它收尾
	FailStale(ctx context.Context, deadline time.Time, message string) (int64, error)
}

// ==================== 仓储实现 ====================

type syncOperationRepo struct {
	db *gorm.DB
}

// NewSyncOperationRepository 创建同步操作仓储
func NewSyncOperationRepository(db *gorm.DB) SyncOperationRepository {
	return &syncOperationRepo{db: db}
}

func (r *syncOperationRepo) Create(ctx context.Context, op *model.SyncOperation) error {
	return r.db.WithContext(ctx).Create(op).Error
}

func (r *syncOperationRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.SyncOperation{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *syncOperationRepo) GetByID(ctx context.Context, id int64) (*model.SyncOperation, error) {
	var op model.SyncOperation
	if err := r.db.WithContext(ctx).First(&op, id).Error; err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *syncOperationRepo) ListByShop(ctx context.Context, shopID int64, page, pageSize int) ([]model.SyncOperation, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.SyncOperation{})
	if shopID > 0 {
		query = query.Where("shop_id = ?", shopID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	var ops []model.SyncOperation
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&ops).Error
	if err != nil {
		return nil, 0, err
	}
	return ops, total, nil
}

func (r *syncOperationRepo) FailStale(ctx context.Context, deadline time.Time, message string) (int64, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.SyncOperation{}).
		Where("status = ? AND started_at < ?", model.SyncStatusInProgress, deadline).
		Updates(map[string]interface{}{
			"status":        model.SyncStatusFailed,
			"error_message": message,
			"completed_at":  &now,
		})
	return result.RowsAffected, result.Error
}
