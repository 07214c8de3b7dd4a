package model

import (
	"time"
)

type Shop struct {
	BaseModel

	// 1. 核心身份
	// 域名是店铺的业务主键，重复授权时按域名 upsert
	ShopDomain string `gorm:"size:255;uniqueIndex;not null" json:"shop_domain"`

	// 2. API Token
	// 敏感字段：序列化与日志中一律不输出
	AccessToken string `gorm:"size:255;not null" json:"-"`

	// 3. 店铺档案 (来自 /admin/api/{version}/shop.json)
	ShopName  string `gorm:"size:255" json:"shop_name"`
	ShopEmail string `gorm:"size:255" json:"shop_email"`
	ShopOwner string `gorm:"size:255" json:"shop_owner"`
	Currency  string `gorm:"size:10" json:"currency"`
	Timezone  string `gorm:"size:100" json:"timezone"`
	PlanName  string `gorm:"size:100" json:"plan_name"`

	// 4. 状态
	IsActive   bool       `gorm:"default:false;index" json:"is_active"`
	LastSyncAt *time.Time `json:"last_sync_at"`

	// 5. 关联关系
	Products       []Product       `gorm:"foreignKey:ShopID" json:"products,omitempty"`
	SyncOperations []SyncOperation `gorm:"foreignKey:ShopID" json:"sync_operations,omitempty"`
}

func (Shop) TableName() string {
	return "shops"
}
