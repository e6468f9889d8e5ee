package model

import (
	"time"

	"gorm.io/gorm"
)

type BaseModel struct {
	ID        int64          `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// --- 审计字段 ---
	// 存用户名而非 ID：后台列表直接展示 createdBy/updatedBy，免去联表
	CreatedBy string `gorm:"size:50;comment:创建人" json:"created_by"`
	UpdatedBy string `gorm:"size:50;comment:更新人" json:"updated_by"`
}
