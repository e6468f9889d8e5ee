// Package variation 实现商品规格编辑模型：
// 规格在表单提交前完全活在内存里，增删改都走这里的 Editor，
// 后端保存商品时也复用同一套校验规则。
package variation

import (
	"errors"
	"math"
)

// Variation 商品规格
// ID 由编辑器在提交时生成 (毫秒时间戳字符串)，之后不变
type Variation struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DiscountedPrice float64 `json:"discountedPrice"`
	DiscountType    string  `json:"discountType"`
	Units           int     `json:"units"`
	Stock           int     `json:"stock"`
}

// ==================== 校验 ====================

// 校验错误，文案直接给前端 toast 展示
var (
	ErrNameRequired         = errors.New("Name is required")
	ErrPriceNotPositive     = errors.New("Price must be greater than 0")
	ErrDiscountedPriceNeg   = errors.New("Discounted price cannot be negative")
	ErrDiscountExceedsPrice = errors.New("Discounted price must be less than or equal to regular price")
	ErrUnitsTooSmall        = errors.New("Units must be at least 1")
	ErrStockNegative        = errors.New("Stock cannot be negative")
)

// Validate 整体校验一条规格，返回所有违反的规则
// 任何一条不过都不允许提交，不做部分生效
func Validate(v Variation) []error {
	var errs []error

	if v.Name == "" {
		errs = append(errs, ErrNameRequired)
	}
	if v.Price <= 0 {
		errs = append(errs, ErrPriceNotPositive)
	}
	if v.DiscountedPrice < 0 {
		errs = append(errs, ErrDiscountedPriceNeg)
	}
	if v.DiscountedPrice > v.Price {
		errs = append(errs, ErrDiscountExceedsPrice)
	}
	if v.Units < 1 {
		errs = append(errs, ErrUnitsTooSmall)
	}
	if v.Stock < 0 {
		errs = append(errs, ErrStockNegative)
	}

	return errs
}

// DiscountPercent 由原价和折后价算折扣百分比 (展示用派生值，不落库)
// price = 0 时返回 0，避免除零；上限夹到 100，保留两位小数
func DiscountPercent(price, discountedPrice float64) float64 {
	if price == 0 {
		return 0
	}
	percentage := (price - discountedPrice) / price * 100
	percentage = math.Min(percentage, 100)
	return math.Round(percentage*100) / 100
}
