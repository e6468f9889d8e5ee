package controller

import (
	"io"
	"log"

	"github.com/gin-gonic/gin"

	"pharmacy_admin_v1_202608/internal/api/dto"
	"pharmacy_admin_v1_202608/internal/repository"
	"pharmacy_admin_v1_202608/internal/service"
)

// BrandController 品牌控制器
type BrandController struct {
	brandSvc *service.BrandService
	storage  service.StorageProvider
}

// NewBrandController 工厂方法
func NewBrandController(brandSvc *service.BrandService, storage service.StorageProvider) *BrandController {
	return &BrandController{brandSvc: brandSvc, storage: storage}
}

// List 品牌列表
// @Summary 品牌列表
// @Description 不带 limit 返回全量数组，带 limit/offset 返回 {data, total}
// @Tags Brand (品牌管理)
// @Produce json
// @Param keyword query string false "名称关键词"
// @Param limit query int false "每页数量"
// @Param offset query int false "偏移量"
// @Success 200 {object} dto.Response "品牌列表"
// @Router /api/brands [get]
func (c *BrandController) List(ctx *gin.Context) {
	limit, offset, paged := parsePaging(ctx)

	brands, total, err := c.brandSvc.List(ctx.Request.Context(), repository.ListFilter{
		Keyword: ctx.Query("keyword"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		failBiz(ctx, err)
		return
	}

	ok(ctx, "获取成功", listPayload(brands, total, paged))
}

// Get 品牌详情
// @Summary 品牌详情
// @Tags Brand (品牌管理)
// @Produce json
// @Param id path int true "品牌ID"
// @Success 200 {object} dto.Response "品牌详情"
// @Failure 404 {object} dto.Response "记录不存在"
// @Router /api/brands/{id} [get]
func (c *BrandController) Get(ctx *gin.Context) {
	id, valid := parseID(ctx)
	if !valid {
		return
	}

	brand, err := c.brandSvc.Get(ctx.Request.Context(), id)
	if err != nil {
		failBiz(ctx, err)
		return
	}
	ok(ctx, "获取成功", brand)
}

// Create 创建品牌
// @Summary 创建品牌
// @Description 支持 multipart (带 logo 文件) 和纯 JSON 两种方式
// @Tags Brand (品牌管理)
// @Accept json
// @Produce json
// @Param request body dto.BrandSaveReq true "品牌参数"
// @Success 201 {object} dto.Response "创建成功"
// @Failure 409 {object} dto.Response "名称已存在"
// @Router /api/brands [post]
func (c *BrandController) Create(ctx *gin.Context) {
	req, valid := c.bindSaveReq(ctx)
	if !valid {
		return
	}

	brand, err := c.brandSvc.Create(ctx.Request.Context(), req)
	if err != nil {
		failBiz(ctx, err)
		return
	}
	created(ctx, "品牌创建成功", brand)
}

// Update 更新品牌
// @Summary 更新品牌
// @Tags Brand (品牌管理)
// @Accept json
// @Produce json
// @Param id path int true "品牌ID"
// @Param request body dto.BrandSaveReq true "品牌参数"
// @Success 200 {object} dto.Response "更新成功"
// @Router /api/brands/{id} [put]
func (c *BrandController) Update(ctx *gin.Context) {
	id, valid := parseID(ctx)
	if !valid {
		return
	}

	req, reqValid := c.bindSaveReq(ctx)
	if !reqValid {
		return
	}

	brand, err := c.brandSvc.Update(ctx.Request.Context(), id, req)
	if err != nil {
		failBiz(ctx, err)
		return
	}
	ok(ctx, "品牌更新成功", brand)
}

// Delete 删除品牌
// @Summary 删除品牌
// @Tags Brand (品牌管理)
// @Produce json
// @Param id path int true "品牌ID"
// @Success 200 {object} dto.Response "删除成功"
// @Failure 400 {object} dto.Response "品牌下仍有商品"
// @Router /api/brands/{id} [delete]
func (c *BrandController) Delete(ctx *gin.Context) {
	id, valid := parseID(ctx)
	if !valid {
		return
	}

	if err := c.brandSvc.Delete(ctx.Request.Context(), id); err != nil {
		failBiz(ctx, err)
		return
	}
	ok(ctx, "品牌删除成功", nil)
}

// BulkDelete 批量删除品牌
// @Summary 批量删除品牌
// @Tags Brand (品牌管理)
// @Accept json
// @Produce json
// @Param request body dto.BulkDeleteReq true "ID 列表"
// @Success 200 {object} dto.Response "删除成功"
// @Router /api/brands [delete]
func (c *BrandController) BulkDelete(ctx *gin.Context) {
	ids, valid := parseBulkIDs(ctx)
	if !valid {
		return
	}

	affected, err := c.brandSvc.DeleteByIDs(ctx.Request.Context(), ids)
	if err != nil {
		failBiz(ctx, err)
		return
	}
	ok(ctx, "品牌删除成功", gin.H{"deleted": affected})
}

// bindSaveReq 解析保存请求；multipart 时顺手把 logo 文件传到存储
func (c *BrandController) bindSaveReq(ctx *gin.Context) (*dto.BrandSaveReq, bool) {
	var req dto.BrandSaveReq
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
		log.Printf("品牌 logo 上传失败: %v", err)
		failBiz(ctx, err)
		return nil, false
	}
	req.LogoURL = url
	return &req, true
}
