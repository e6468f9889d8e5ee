package dto

// ==================== 通用响应 ====================

// Response 统一响应壳，前端按 status === "success" 判定
type Response struct {
	Status  string      `json:"status"` // success / error
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PagedData 分页数据体 (带 limit/offset 的列表接口返回)
type PagedData struct {
	Data  interface{} `json:"data"`
	Total int64       `json:"total"`
}

// BulkDeleteReq 批量删除请求
// id 走字符串：前端表格里 row id 统一是 string
type BulkDeleteReq struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}
