package controller

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmacy_admin_v1_202608/internal/service"
)

// 上传大小上限 10MB，处方扫描件和商品图都够用
const maxUploadSize = 10 << 20

// UploadController 文件上传控制器
// 前端先传文件拿 URL，再把 URL 填进表单提交
type UploadController struct {
	storage service.StorageProvider
}

// NewUploadController 工厂方法
func NewUploadController(storage service.StorageProvider) *UploadController {
	return &UploadController{storage: storage}
}

// Upload 上传文件
// @Summary 上传文件
// @Description multipart 上传，返回可公开访问的 URL
// @Tags Upload (文件上传)
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "文件"
// @Success 200 {object} dto.Response "文件 URL"
// @Failure 400 {object} dto.Response "文件缺失或过大"
// @Router /api/upload [post]
func (c *UploadController) Upload(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		fail(ctx, http.StatusBadRequest, "未找到上传文件")
		return
	}
	if file.Size > maxUploadSize {
		fail(ctx, http.StatusBadRequest, "文件超过大小限制")
		return
	}

	f, err := file.Open()
	if err != nil {
		badRequest(ctx, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		badRequest(ctx, err)
		return
	}

	url, err := c.storage.Upload(ctx.Request.Context(), data, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		failBiz(ctx, err)
		return
	}

	ok(ctx, "上传成功", gin.H{"url": url})
}
