package controller

import (
	"io"

	"github.com/gin-gonic/gin"

	"pharmacy_admin_v1_202608/internal/api/dto"
	"pharmacy_admin_v1_202608/internal/repository"
	"pharmacy_admin_v1_202608/internal/service"
)

// CategoryController 分类控制器
type CategoryController struct {
	categorySvc *service.CategoryService
	storage     service.StorageProvider
}

// NewCategoryController 工厂方法
func NewCategoryController(categorySvc *service.CategoryService, storage service.StorageProvider) *CategoryController {
	return &CategoryController{categorySvc: categorySvc, storage: storage}
}

// List 分类列表
// @Summary 分类列表
// @Tags Category (分类管理)
// @Produce json
// @Param keyword query string false "名称关键词"
// @Param limit query int false "每页数量"
// @Param offset query int false "偏移量"
// @Success 200 {object} dto.Response "分类列表"
// @Router /api/categories [get]
func (c *CategoryController) List(ctx *gin.Context) {
	limit, offset, paged := parsePaging(ctx)

	categories, total, err := c.categorySvc.List(ctx.Request.Context(), repository.ListFilter{
		Keyword: ctx.Query("keyword"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		failBiz(ctx, err)
		return
	}

	ok(ctx, "获取成功", listPayload(categories, total, paged))
}

// Get 分类详情
// @Summary 分类详情
// @Tags Category (分类管理)
// @Produce json
// @Param id path int true "分类ID"
// @Success 200 {object} dto.Response "分类详情"
// @Router /api/categories/{id} [get]
func (c *CategoryController) Get(ctx *gin.Context) {
	id, valid := parseID(ctx)
	if !valid {
		return
	}

	category, err := c.categorySvc.Get(ctx.Request.Context(), id)
	if err != nil {
		failBiz(ctx, err)
		return
	}
	ok(ctx, "获取成功", category)
}

// Create 创建分类
// @Summary 创建分类
// @Tags Category (分类管理)
// @Accept json
// @Produce json
// @Param request body dto.CategorySaveReq true "分类参数"
// @Success 201 {object} dto.Response "创建成功"
// @Failure 409 {object} dto.Response "名称已存在"
// @Router /api/categories [post]
func (c *CategoryController) Create(ctx *gin.Context) {
	req, valid := c.bindSaveReq(ctx)
	if !valid {
		return
	}

	category, err := c.categorySvc.Create(ctx.Request.Context(), req)
	if err != nil {
		failBiz(ctx, err)
		return
	}
	created(ctx, "分类创建成功", category)
}

// Update 更新分类
// @Summary 更新分类
// @Tags Category (分类管理)
// @Accept json
// @Produce json
// @Param id path int true "分类ID"
// @Param request body dto.CategorySaveReq true "分类参数"
// @Success 200 {object} dto.Response "更新成功"
// @Router /api/categories/{id} [put]
func (c *CategoryController) Update(ctx *gin.Context) {
	id, valid := parseID(ctx)
	if !valid {
		return
	}

	req, reqValid := c.bindSaveReq(ctx)
	if !reqValid {
		return
	}

	category, err := c.categorySvc.Update(ctx.Request.Context(), id, req)
	if err != nil {
		failBiz(ctx, err)
		return
	}
	ok(ctx, "分类更新成功", category)
}

// Delete 删除分类
// @Summary 删除分类
// @Tags Category (分类管理)
// @Produce json
// @Param id path int true "分类ID"
// @Success 200 {object} dto.Response "删除成功"
// @Failure 400 {object} dto.Response "分类下仍有商品"
// @Router /api/categories/{id} [delete]
func (c *CategoryController) Delete(ctx *gin.Context) {
	id, valid := parseID(ctx)
	if !valid {
		return
	}

	if err := c.categorySvc.Delete(ctx.Request.Context(), id); err != nil {
		failBiz(ctx, err)
		return
	}
	ok(ctx, "分类删除成功", nil)
}

// BulkDelete 批量删除分类
// @Summary 批量删除分类
// @Tags Category (分类管理)
// @Accept json
// @Produce json
// @Param request body dto.BulkDeleteReq true "ID 列表"
// @Success 200 {object} dto.Response "删除成功"
// @Router /api/categories [delete]
func (c *CategoryController) BulkDelete(ctx *gin.Context) {
	ids, valid := parseBulkIDs(ctx)
	if !valid {
		return
	}

	affected, err := c.categorySvc.DeleteByIDs(ctx.Request.Context(), ids)
	if err != nil {
		failBiz(ctx, err)
		return
	}
	ok(ctx, "分类删除成功", gin.H{"deleted": affected})
}

func (c *CategoryController) bindSaveReq(ctx *gin.Context) (*dto.CategorySaveReq, bool) {
	var req dto.CategorySaveReq
	if err := ctx.ShouldBind(&req); err != nil {
		badRequest(ctx, err)
		return nil, false
	}

	file, err := ctx.FormFile("logo")
	if err != nil || file == nil {
		return &req, true
	}

	f, err := file.Open()
	if err != nil {
		badRequest(ctx, err)
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		badRequest(ctx, err)
		return nil, false
	}

	url, err := c.storage.Upload(ctx.Request.Context(), data, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		failBiz(ctx, err)
		return nil, false
	}
	req.LogoURL = url
	return &req, true
}
