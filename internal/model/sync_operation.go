package model

import (
	"time"
)

// 同步操作状态常量
const (
	SyncStatusInProgress = "in_progress"
	SyncStatusCompleted  = "completed"
	SyncStatusFailed     = "failed"
)

// 同步操作类型常量
const (
	SyncTypeFull      = "full_sync"
	SyncTypeScheduled = "scheduled_sync"
)

// SyncOperation 一次目录同步的进度记录
// 只追加，不删除：历史页直接按时间倒序展示
type SyncOperation struct {
	BaseModel

	ShopID int64 `gorm:"index;not null" json:"shop_id"`
	Shop   *Shop `gorm:"foreignKey:ShopID" json:"-"`

	OperationType string `gorm:"size:50;not null" json:"operation_type"`
	Status        string `gorm:"size:20;not null;index;default:'in_progress'" json:"status"`

	TotalRecords     int `gorm:"default:0" json:"total_records"`
	ProcessedRecords int `gorm:"default:0" json:"processed_records"`
	FailedRecords    int `gorm:"default:0" json:"failed_records"`

	StartedAt    *time.Time `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	ErrorMessage string     `gorm:"type:text" json:"error_message"`
}

func (SyncOperation) TableName() string {
	return "sync_operations"
}
