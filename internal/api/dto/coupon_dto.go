package dto

import "time"

// ==================== 优惠券 ====================

// CouponSaveReq 优惠券创建/更新请求
type CouponSaveReq struct {
	Code              string    `json:"code" binding:"required,min=3,max=20"`
	DiscountType      string    `json:"discountType" binding:"required,oneof=percentage fixed"`
	DiscountValue     float64   `json:"discountValue" binding:"required,gt=0"`
	MaxUses           int       `json:"maxUses" binding:"omitempty,gte=0"`
	MinPurchaseAmount float64   `json:"minPurchaseAmount" binding:"omitempty,gte=0"`
	StartDate         time.Time `json:"startDate" binding:"required"`
	EndDate           time.Time `json:"endDate" binding:"required"`
	IsActive          bool      `json:"isActive"`
	UserIDs           []int64   `json:"userIds"`
	ProductIDs        []int64   `json:"productIds"`
}

// CouponResp 优惠券响应 (列表列直接对应表格 accessorKey)
type CouponResp struct {
	ID                int64     `json:"id"`
	Code              string    `json:"code"`
	DiscountType      string    `json:"discountType"`
	DiscountValue     float64   `json:"discountValue"`
	MaxUses           int       `json:"maxUses"`
	MinPurchaseAmount float64   `json:"minPurchaseAmount"`
	StartDate         time.Time `json:"startDate"`
	EndDate           time.Time `json:"endDate"`
	IsActive          bool      `json:"isActive"`
	UserIDs           []int64   `json:"userIds,omitempty"`
	ProductIDs        []int64   `json:"productIds,omitempty"`
	CreatedBy         string    `json:"createdBy"`
	UpdatedBy         string    `json:"updatedBy"`
}
