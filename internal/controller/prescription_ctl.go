package controller

import (
	"github.com/gin-gonic/gin"

	"pharmacy_admin_v1_202608/internal/api/dto"
	"pharmacy_admin_v1_202608/internal/model"
	"pharmacy_admin_v1_202608/internal/repository"
	"pharmacy_admin_v1_202608/internal/service"
)

// PrescriptionController 处方控制器
type PrescriptionController struct {
	prescriptionSvc *service.PrescriptionService
}

// NewPrescriptionController 工厂方法
func NewPrescriptionController(prescriptionSvc *service.PrescriptionService) *PrescriptionController {
	return &PrescriptionController{prescriptionSvc: prescriptionSvc}
}

// List 处方列表
// @Summary 处方列表
// @Tags Prescription (处方管理)
// @Produce json
// @Param status query string false "状态筛选 (UPLOADED/APPROVED/REJECTED/ORDERED)"
// @Param keyword query string false "患者名/用户名关键词"
// @Param limit query int false "每页数量"
// @Param offset query int false "偏移量"
// @Success 200 {object} dto.Response "处方列表"
// @Router /api/prescriptions [get]
func (c *PrescriptionController) List(ctx *gin.Context) {
	limit, offset, paged := parsePaging(ctx)

	prescriptions, total, err := c.prescriptionSvc.List(ctx.Request.Context(), repository.PrescriptionFilter{
		Status:  model.PrescriptionStatus(ctx.Query("status")),
		Keyword: ctx.Query("keyword"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		failBiz(ctx, err)
		return
	}

	items := make([]dto.PrescriptionResp, len(prescriptions))
	for i := range prescriptions {
		items[i] = service.ToPrescriptionResp(&prescriptions[i])
	}

	ok(ctx, "获取成功", listPayload(items, total, paged))
}

// Get 处方详情
// @Summary 处方详情
// @Tags Prescription (处方管理)
// @Produce json
// @Param id path int true "处方ID"
// @Success 200 {object} dto.Response{data=dto.PrescriptionResp} "处方详情"
// @Router /api/prescriptions/{id} [get]
func (c *PrescriptionController) Get(ctx *gin.Context) {
	id, valid := parseID(ctx)
	if !valid {
		return
	}

	prescription, err := c.prescriptionSvc.Get(ctx.Request.Context(), id)
	if err != nil {
		failBiz(ctx, err)
		return
	}
	ok(ctx, "获取成功", service.ToPrescriptionResp(prescription))
}

// Create 登记处方
// @Summary 登记处方
// @Description 商城侧上传处方，初始状态 UPLOADED
// @Tags Prescription (处方管理)
// @Accept json
// @Produce json
// @Param request body dto.PrescriptionCreateReq true "处方参数"
// @Success 201 {object} dto.Response{data=dto.PrescriptionResp} "登记成功"
// @Router /api/prescriptions [post]
func (c *PrescriptionController) Create(ctx *gin.Context) {
	var req dto.PrescriptionCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	prescription, err := c.prescriptionSvc.Create(ctx.Request.Context(), &req)
	if err != nil {
		failBiz(ctx, err)
		return
	}
	created(ctx, "处方登记成功", service.ToPrescriptionResp(prescription))
}

// UpdateStatus 审核处方
// @Summary 审核处方
// @Description UPLOADED -> APPROVED / REJECTED，驳回必须带原因
// @Tags Prescription (处方管理)
// @Accept json
// @Produce json
// @Param id path int true "处方ID"
// @Param request body dto.PrescriptionStatusReq true "审核参数"
// @Success 200 {object} dto.Response{data=dto.PrescriptionResp} "审核成功"
// @Failure 400 {object} dto.Response "状态不允许或缺少拒绝原因"
// @Router /api/prescriptions/{id}/status [put]
func (c *PrescriptionController) UpdateStatus(ctx *gin.Context) {
	id, valid := parseID(ctx)
	if !valid {
		return
	}

	var req dto.PrescriptionStatusReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	prescription, err := c.prescriptionSvc.UpdateStatus(ctx.Request.Context(), id, &req)
	if err != nil {
		failBiz(ctx, err)
		return
	}
	ok(ctx, "处方审核完成", service.ToPrescriptionResp(prescription))
}

// CreateOrder 按处方下单
// @Summary 按处方下单
// @Description 只有 APPROVED 状态可下单，商品行逐条校验商品和规格存在
// @Tags Prescription (处方管理)
// @Accept json
// @Produce json
// @Param id path int true "处方ID"
// @Param request body dto.PrescriptionOrderReq true "下单参数"
// @Success 200 {object} dto.Response{data=dto.PrescriptionResp} "下单成功"
// @Failure 400 {object} dto.Response "状态不允许或商品不存在"
// @Router /api/prescriptions/{id}/order [post]
func (c *PrescriptionController) CreateOrder(ctx *gin.Context) {
	id, valid := parseID(ctx)
	if !valid {
		return
	}

	var req dto.PrescriptionOrderReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	prescription, err := c.prescriptionSvc.CreateOrder(ctx.Request.Context(), id, &req)
	if err != nil {
		failBiz(ctx, err)
		return
	}
	ok(ctx, "处方下单成功", service.ToPrescriptionResp(prescription))
}

// Delete 删除处方
// @Summary 删除处方
// @Tags Prescription (处方管理)
// @Produce json
// @Param id path int true "处方ID"
// @Success 200 {object} dto.Response "删除成功"
// @Router /api/prescriptions/{id} [delete]
func (c *PrescriptionController) Delete(ctx *gin.Context) {
	id, valid := parseID(ctx)
	if !valid {
		return
	}

	if err := c.prescriptionSvc.Delete(ctx.Request.Context(), id); err != nil {
		failBiz(ctx, err)
		return
	}
	ok(ctx, "处方删除成功", nil)
}

// BulkDelete 批量删除处方
// @Summary 批量删除处方
// @Tags Prescription (处方管理)
// @Accept json
// @Produce json
// @Param request body dto.BulkDeleteReq true "ID 列表"
// @Success 200 {object} dto.Response "删除成功"
// @Router /api/prescriptions [delete]
func (c *PrescriptionController) BulkDelete(ctx *gin.Context) {
	ids, valid := parseBulkIDs(ctx)
	if !valid {
		return
	}

	affected, err := c.prescriptionSvc.DeleteByIDs(ctx.Request.Context(), ids)
	if err != nil {
		failBiz(ctx, err)
		return
	}
	ok(ctx, "处方删除成功", gin.H{"deleted": affected})
}
