package model

import (
	"time"
)

// BaseModel 公共字段
// 镜像表不做软删除：本地行的生死完全跟随远端目录
type BaseModel struct {
	ID        int64     `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
