package service

import "errors"

// 业务错误定义，controller 层据此映射 HTTP 状态码
// 文案直接透传给前端 toast 展示
var (
	// 认证
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserDisabled       = errors.New("用户已被禁用")
	ErrInvalidToken       = errors.New("Token 无效或已过期")

	// 通用
	ErrNotFound = errors.New("记录不存在")

	// 品牌 / 分类
	ErrBrandNameExists    = errors.New("品牌名称已存在")
	ErrCategoryNameExists = errors.New("分类名称已存在")
	ErrBrandInUse         = errors.New("品牌下仍有商品，无法删除")
	ErrCategoryInUse      = errors.New("分类下仍有商品，无法删除")

	// 商品
	ErrSlugExists        = errors.New("商品 slug 已存在")
	ErrBrandNotFound     = errors.New("所选品牌不存在")
	ErrCategoryNotFound  = errors.New("所选分类不存在")
	ErrAlternativeAbsent = errors.New("勾选了替代药但未填写替代药信息")

	// 优惠券
	ErrCouponCodeExists  = errors.New("优惠券码已存在")
	ErrCouponDateOrder   = errors.New("结束时间必须晚于开始时间")
	ErrCouponPercentOver = errors.New("百分比折扣不能超过 100")

	// 处方
	ErrPrescriptionTransition = errors.New("处方当前状态不允许该操作")
	ErrRejectionReasonMissing = errors.New("拒绝处方必须填写原因")
	ErrOrderProductNotFound   = errors.New("下单商品或规格不存在")
)
