package controller

import (
	"github.com/gin-gonic/gin"

	"pharmacy_admin_v1_202608/internal/api/dto"
	"pharmacy_admin_v1_202608/internal/repository"
	"pharmacy_admin_v1_202608/internal/service"
)

// CouponController 优惠券控制器
type CouponController struct {
	couponSvc *service.CouponService
}

// NewCouponController 工厂方法
func NewCouponController(couponSvc *service.CouponService) *CouponController {
	return &CouponController{couponSvc: couponSvc}
}

// List 优惠券列表
// @Summary 优惠券列表
// @Tags Coupon (优惠券管理)
// @Produce json
// @Param keyword query string false "券码关键词"
// @Param limit query int false "每页数量"
// @Param offset query int false "偏移量"
// @Success 200 {object} dto.Response "优惠券列表"
// @Router /api/coupons [get]
func (c *CouponController) List(ctx *gin.Context) {
	limit, offset, paged := parsePaging(ctx)

	coupons, total, err := c.couponSvc.List(ctx.Request.Context(), repository.ListFilter{
		Keyword: ctx.Query("keyword"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		failBiz(ctx, err)
		return
	}

	items := make([]dto.CouponResp, len(coupons))
	for i := range coupons {
		items[i] = service.ToCouponResp(&coupons[i])
	}

	ok(ctx, "获取成功", listPayload(items, total, paged))
}

// Get 优惠券详情
// @Summary 优惠券详情
// @Tags Coupon (优惠券管理)
// @Produce json
// @Param id path int true "优惠券ID"
// @Success 200 {object} dto.Response{data=dto.CouponResp} "优惠券详情"
// @Router /api/coupons/{id} [get]
func (c *CouponController) Get(ctx *gin.Context) {
	id, valid := parseID(ctx)
	if !valid {
		return
	}

	coupon, err := c.couponSvc.Get(ctx.Request.Context(), id)
	if err != nil {
		failBiz(ctx, err)
		return
	}
	ok(ctx, "获取成功", service.ToCouponResp(coupon))
}

// GenerateCode 生成随机券码
// @Summary 生成随机券码
// @Description 表单里点 "随机生成" 按钮调用
// @Tags Coupon (优惠券管理)
// @Produce json
// @Success 200 {object} dto.Response "券码"
// @Router /api/coupons/generate-code [get]
func (c *CouponController) GenerateCode(ctx *gin.Context) {
	code, err := c.couponSvc.GenerateCode(ctx.Request.Context())
	if err != nil {
		failBiz(ctx, err)
		return
	}
	ok(ctx, "生成成功", gin.H{"code": code})
}

// Create 创建优惠券
// @Summary 创建优惠券
// @Tags Coupon (优惠券管理)
// @Accept json
// @Produce json
// @Param request body dto.CouponSaveReq true "优惠券参数"
// @Success 201 {object} dto.Response{data=dto.CouponResp} "创建成功"
// @Failure 409 {object} dto.Response "券码已存在"
// @Router /api/coupons [post]
func (c *CouponController) Create(ctx *gin.Context) {
	var req dto.CouponSaveReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	coupon, err := c.couponSvc.Create(ctx.Request.Context(), &req)
	if err != nil {
		failBiz(ctx, err)
		return
	}
	created(ctx, "优惠券创建成功", service.ToCouponResp(coupon))
}

// Update 更新优惠券
// @Summary 更新优惠券
// @Tags Coupon (优惠券管理)
// @Accept json
// @Produce json
// @Param id path int true "优惠券ID"
// @Param request body dto.CouponSaveReq true "优惠券参数"
// @Success 200 {object} dto.Response{data=dto.CouponResp} "更新成功"
// @Router /api/coupons/{id} [put]
func (c *CouponController) Update(ctx *gin.Context) {
	id, valid := parseID(ctx)
	if !valid {
		return
	}

	var req dto.CouponSaveReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	coupon, err := c.couponSvc.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		failBiz(ctx, err)
		return
	}
	ok(ctx, "优惠券更新成功", service.ToCouponResp(coupon))
}

// Delete 删除优惠券
// @Summary 删除优惠券
// @Tags Coupon (优惠券管理)
// @Produce json
// @Param id path int true "优惠券ID"
// @Success 200 {object} dto.Response "删除成功"
// @Router /api/coupons/{id} [delete]
func (c *CouponController) Delete(ctx *gin.Context) {
	id, valid := parseID(ctx)
	if !valid {
		return
	}

	if err := c.couponSvc.Delete(ctx.Request.Context(), id); err != nil {
		failBiz(ctx, err)
		return
	}
	ok(ctx, "优惠券删除成功", nil)
}

// BulkDelete 批量删除优惠券
// @Summary 批量删除优惠券
// @Tags Coupon (优惠券管理)
// @Accept json
// @Produce json
// @Param request body dto.BulkDeleteReq true "ID 列表"
// @Success 200 {object} dto.Response "删除成功"
// @Router /api/coupons [delete]
func (c *CouponController) BulkDelete(ctx *gin.Context) {
	ids, valid := parseBulkIDs(ctx)
	if !valid {
		return
	}

	affected, err := c.couponSvc.DeleteByIDs(ctx.Request.Context(), ids)
	if err != nil {
		failBiz(ctx, err)
		return
	}
	ok(ctx, "优惠券删除成功", gin.H{"deleted": affected})
}
