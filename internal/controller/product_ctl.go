package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"pharmacy_admin_v1_202608/internal/api/dto"
	"pharmacy_admin_v1_202608/internal/repository"
	"pharmacy_admin_v1_202608/internal/service"
)

// ProductController 商品控制器
type ProductController struct {
	productSvc *service.ProductService
}

// NewProductController 工厂方法
func NewProductController(productSvc *service.ProductService) *ProductController {
	return &ProductController{productSvc: productSvc}
}

// List 商品列表
// @Summary 商品列表
// @Description 不带 limit 返回全量数组，带 limit/offset 返回 {data, total}；支持按品牌、分类、关键词筛选
// @Tags Product (商品管理)
// @Produce json
// @Param keyword query string false "名称关键词"
// @Param brand_id query int false "品牌ID"
// @Param category_id query int false "分类ID"
// @Param limit query int false "每页数量"
// @Param offset query int false "偏移量"
// @Success 200 {object} dto.Response "商品列表"
// @Router /api/products [get]
func (c *ProductController) List(ctx *gin.Context) {
	limit, offset, paged := parsePaging(ctx)
	brandID, _ := strconv.ParseInt(ctx.Query("brand_id"), 10, 64)
	categoryID, _ := strconv.ParseInt(ctx.Query("category_id"), 10, 64)

	products, total, err := c.productSvc.List(ctx.Request.Context(), repository.ProductFilter{
		BrandID:    brandID,
		CategoryID: categoryID,
		Keyword:    ctx.Query("keyword"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		failBiz(ctx, err)
		return
	}

	items := make([]dto.ProductListItem, len(products))
	for i := range products {
		items[i] = service.ToListItem(&products[i])
	}

	ok(ctx, "获取成功", listPayload(items, total, paged))
}

// Get 商品详情
// @Summary 商品详情
// @Description id 为数字按主键查，否则按 slug 查 (编辑页路由用 slug)
// @Tags Product (商品管理)
// @Produce json
// @Param id path string true "商品ID 或 slug"
// @Success 200 {object} dto.Response{data=dto.ProductDetailResp} "商品详情"
// @Failure 404 {object} dto.Response "记录不存在"
// @Router /api/products/{id} [get]
func (c *ProductController) Get(ctx *gin.Context) {
	param := ctx.Param("id")

	if id, parseErr := strconv.ParseInt(param, 10, 64); parseErr == nil && id > 0 {
		p, err := c.productSvc.Get(ctx.Request.Context(), id)
		if err != nil {
			failBiz(ctx, err)
			return
		}
		ok(ctx, "获取成功", service.ToDetailResp(p))
		return
	}

	p, err := c.productSvc.GetBySlug(ctx.Request.Context(), param)
	if err != nil {
		failBiz(ctx, err)
		return
	}
	ok(ctx, "获取成功", service.ToDetailResp(p))
}

// Create 创建商品
// @Summary 创建商品
// @Description 主表 + 规格 + 图片 + 替代药整体落库；规格必须至少一条且全部通过校验
// @Tags Product (商品管理)
// @Accept json
// @Produce json
// @Param request body dto.ProductSaveReq true "商品参数"
// @Success 201 {object} dto.Response{data=dto.ProductDetailResp} "创建成功"
// @Failure 409 {object} dto.Response "slug 已存在"
// @Router /api/products [post]
func (c *ProductController) Create(ctx *gin.Context) {
	var req dto.ProductSaveReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	product, err := c.productSvc.Create(ctx.Request.Context(), &req)
	if err != nil {
		failBiz(ctx, err)
		return
	}
	created(ctx, "商品创建成功", service.ToDetailResp(product))
}

// Update 更新商品
// @Summary 更新商品
// @Tags Product (商品管理)
// @Accept json
// @Produce json
// @Param id path int true "商品ID"
// @Param request body dto.ProductSaveReq true "商品参数"
// @Success 200 {object} dto.Response{data=dto.ProductDetailResp} "更新成功"
// @Router /api/products/{id} [put]
func (c *ProductController) Update(ctx *gin.Context) {
	id, valid := parseID(ctx)
	if !valid {
		return
	}

	var req dto.ProductSaveReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	product, err := c.productSvc.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		failBiz(ctx, err)
		return
	}
	ok(ctx, "商品更新成功", service.ToDetailResp(product))
}

// Delete 删除商品
// @Summary 删除商品
// @Tags Product (商品管理)
// @Produce json
// @Param id path int true "商品ID"
// @Success 200 {object} dto.Response "删除成功"
// @Router /api/products/{id} [delete]
func (c *ProductController) Delete(ctx *gin.Context) {
	id, valid := parseID(ctx)
	if !valid {
		return
	}

	if err := c.productSvc.Delete(ctx.Request.Context(), id); err != nil {
		failBiz(ctx, err)
		return
	}
	ok(ctx, "商品删除成功", nil)
}

// BulkDelete 批量删除商品
// @Summary 批量删除商品
// @Tags Product (商品管理)
// @Accept json
// @Produce json
// @Param request body dto.BulkDeleteReq true "ID 列表"
// @Success 200 {object} dto.Response "删除成功"
// @Router /api/products [delete]
func (c *ProductController) BulkDelete(ctx *gin.Context) {
	ids, valid := parseBulkIDs(ctx)
	if !valid {
		return
	}

	affected, err := c.productSvc.DeleteByIDs(ctx.Request.Context(), ids)
	if err != nil {
		failBiz(ctx, err)
		return
	}
	ok(ctx, "商品删除成功", gin.H{"deleted": affected})
}
