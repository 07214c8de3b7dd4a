package model

import (
	"gorm.io/datatypes"
)

// 变更类型常量
const (
	ChangeTypeCreate = "create"
	ChangeTypeUpdate = "update"
)

// 实体类型常量
const (
	EntityTypeProduct = "product"
	EntityTypeVariant = "variant"
)

// ChangeHistory 字段级变更审计
// 同步过程中对已有行的每一处字段改动记一条，History 页面的数据来源
type ChangeHistory struct {
	BaseModel

	ShopID int64 `gorm:"index;not null" json:"shop_id"`
	Shop   *Shop `gorm:"foreignKey:ShopID" json:"-"`

	// 变更所属实体 (本地行 ID + Shopify 侧 ID 双份，方便两头排查)
	EntityType      string `gorm:"size:50;not null;index" json:"entity_type"`
	EntityID        int64  `gorm:"not null;index" json:"entity_id"`
	ShopifyEntityID int64  `gorm:"index" json:"shopify_entity_id"`

	FieldName string `gorm:"size:100;not null" json:"field_name"`
	OldValue  string `gorm:"type:text" json:"old_value"`
	NewValue  string `gorm:"type:text" json:"new_value"`

	ChangeType string `gorm:"size:20;not null" json:"change_type"`

	// 产生本条记录的同步操作 (可空：将来可能有手工编辑等非同步来源)
	OperationID *int64         `gorm:"index" json:"operation_id"`
	Metadata    datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
}

func (ChangeHistory) TableName() string {
	return "change_history"
}
