package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pharmacy_admin_v1_202608/internal/api/dto"
	"pharmacy_admin_v1_202608/internal/service"
)

// ==================== 响应辅助 ====================

// ok 成功响应
func ok(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusOK, dto.Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// created 创建成功响应
func created(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusCreated, dto.Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// fail 错误响应
func fail(ctx *gin.Context, code int, message string) {
	ctx.JSON(code, dto.Response{
		Status:  "error",
		Message: message,
	})
}

// badRequest 参数错误
func badRequest(ctx *gin.Context, err error) {
	fail(ctx, http.StatusBadRequest, "参数错误: "+err.Error())
}

// failBiz 按业务错误映射状态码
func failBiz(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		fail(ctx, http.StatusNotFound, service.ErrNotFound.Error())
	case errors.Is(err, service.ErrBrandNameExists),
		errors.Is(err, service.ErrCategoryNameExists),
		errors.Is(err, service.ErrSlugExists),
		errors.Is(err, service.ErrCouponCodeExists):
		fail(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrBrandInUse),
		errors.Is(err, service.ErrCategoryInUse),
		errors.Is(err, service.ErrBrandNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrAlternativeAbsent),
		errors.Is(err, service.ErrCouponDateOrder),
		errors.Is(err, service.ErrCouponPercentOver),
		errors.Is(err, service.ErrPrescriptionTransition),
		errors.Is(err, service.ErrRejectionReasonMissing),
		errors.Is(err, service.ErrOrderProductNotFound):
		fail(ctx, http.StatusBadRequest, err.Error())
	default:
		fail(ctx, http.StatusInternalServerError, err.Error())
	}
}

// ==================== 参数解析 ====================

// parseID 路径 id
func parseID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		fail(ctx, http.StatusBadRequest, "无效的 ID")
		return 0, false
	}
	return id, true
}

// parsePaging 解析 limit/offset
// 不带 limit 表示全量拉取 (返回纯数组)；带了表示分页 (返回 {data, total})
func parsePaging(ctx *gin.Context) (limit, offset int, paged bool) {
	limitStr := ctx.Query("limit")
	if limitStr == "" {
		return 0, 0, false
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return 0, 0, false
	}
	offset, _ = strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset, true
}

// parseBulkIDs 解析批量删除请求体，字符串 id 转 int64
func parseBulkIDs(ctx *gin.Context) ([]int64, bool) {
	var req dto.BulkDeleteReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return nil, false
	}

	ids := make([]int64, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			fail(ctx, http.StatusBadRequest, "无效的 ID: "+raw)
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// listPayload 列表响应体：分页包 {data, total}，不分页给裸数组
func listPayload(data interface{}, total int64, paged bool) interface{} {
	if paged {
		return dto.PagedData{Data: data, Total: total}
	}
	return data
}
