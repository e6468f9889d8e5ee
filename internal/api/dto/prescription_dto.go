package dto

import "time"

// ==================== 处方 ====================

// PrescriptionCreateReq 处方登记请求 (商城侧上传，后台偶尔也手工补录)
type PrescriptionCreateReq struct {
	UserName      string `json:"userName" binding:"required"`
	PatientName   string `json:"patientName" binding:"required"`
	PatientAge    string `json:"patientAge"`
	PatientGender string `json:"patientGender"`
	PatientWeight string `json:"patientWeight"`
	PatientHeight string `json:"patientHeight"`
	FileURL       string `json:"fileUrl"`
}

// PrescriptionStatusReq 处方状态流转请求
type PrescriptionStatusReq struct {
	Status          string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	RejectionReason string `json:"rejectionReason"`
}

// PrescriptionOrderLine 处方下单商品行
type PrescriptionOrderLine struct {
	ProductID    int64  `json:"productId" binding:"required"`
	VariationKey string `json:"variationKey" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required,gte=1"`
}

// PrescriptionOrderReq 处方下单请求 (审核通过后)
type PrescriptionOrderReq struct {
	Products []PrescriptionOrderLine `json:"products" binding:"required,min=1"`
}

// PrescriptionResp 处方响应 (列表列对应表格 accessorKey)
type PrescriptionResp struct {
	ID              int64     `json:"id"`
	UserName        string    `json:"userName"`
	PatientName     string    `json:"patientName"`
	PatientAge      string    `json:"patientAge"`
	PatientGender   string    `json:"patientGender"`
	PatientWeight   string    `json:"patientWeight"`
	PatientHeight   string    `json:"patientHeight"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejectionReason,omitempty"`
	FileURL         string    `json:"fileUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	CreatedBy       string    `json:"createdBy"`
	UpdatedBy       string    `json:"updatedBy"`
}
