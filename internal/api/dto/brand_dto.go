package dto

// ==================== 品牌 ====================

// BrandSaveReq 品牌创建/更新请求
// 前端走 multipart (带 logo 文件)，也兼容纯 JSON
type BrandSaveReq struct {
	Name        string `json:"name" form:"name" binding:"required"`
	Description string `json:"description" form:"description"`
	WebsiteURL  string `json:"website_url" form:"website_url"`
	LogoURL     string `json:"logo_url" form:"logo_url"` // 已上传好的 URL (JSON 方式)
}

// ==================== 分类 ====================

// CategorySaveReq 分类创建/更新请求
type CategorySaveReq struct {
	Name        string `json:"name" form:"name" binding:"required"`
	Description string `json:"description" form:"description"`
	LogoURL     string `json:"logo_url" form:"logo_url"`
}
