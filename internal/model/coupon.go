package model

import (
	"time"

	"gorm.io/datatypes"
)

// ==================== 优惠券 ====================

// CouponDiscountType 折扣类型
type CouponDiscountType string

const (
	CouponDiscountPercentage CouponDiscountType = "percentage" // 百分比
	CouponDiscountFixed      CouponDiscountType = "fixed"      // 固定金额
)

// Coupon 优惠券
// UserIDs / ProductIDs 用 JSON 列存 id 列表，sqlite / postgres 通用
type Coupon struct {
	BaseModel
	Code              string             `gorm:"size:20;uniqueIndex;not null" json:"code"`
	DiscountType      CouponDiscountType `gorm:"size:20;default:percentage" json:"discount_type"`
	DiscountValue     float64            `gorm:"not null" json:"discount_value"`
	MaxUses           int                `gorm:"default:0" json:"max_uses"`             // 0 = 不限
	MinPurchaseAmount float64            `gorm:"default:0" json:"min_purchase_amount"` // 0 = 不限
	StartDate         time.Time          `gorm:"index" json:"start_date"`
	EndDate           time.Time          `gorm:"index" json:"end_date"`
	IsActive          bool               `gorm:"default:true;index" json:"is_active"`
	UserIDs           datatypes.JSON     `gorm:"type:json" json:"user_ids"`    // 指定用户，空 = 全员
	ProductIDs        datatypes.JSON     `gorm:"type:json" json:"product_ids"` // 指定商品，空 = 全场
}

func (Coupon) TableName() string {
	return "coupons"
}
