package model

import "gorm.io/datatypes"

// ==================== 处方 ====================

// PrescriptionStatus 处方状态
// 流转：UPLOADED -> APPROVED -> ORDERED
//
//	UPLOADED -> REJECTED (必须填拒绝原因)
type PrescriptionStatus string

const (
	PrescriptionUploaded PrescriptionStatus = "UPLOADED"
	PrescriptionApproved PrescriptionStatus = "APPROVED"
	PrescriptionRejected PrescriptionStatus = "REJECTED"
	PrescriptionOrdered  PrescriptionStatus = "ORDERED"
)

// Prescription 用户上传的处方
type Prescription struct {
	BaseModel
	UserName        string             `gorm:"size:100;index" json:"user_name"`
	PatientName     string             `gorm:"size:100;not null" json:"patient_name"`
	PatientAge      string             `gorm:"size:10" json:"patient_age"`
	PatientGender   string             `gorm:"size:10" json:"patient_gender"`
	PatientWeight   string             `gorm:"size:10" json:"patient_weight"`
	PatientHeight   string             `gorm:"size:10" json:"patient_height"`
	Status          PrescriptionStatus `gorm:"size:20;default:UPLOADED;index" json:"status"`
	RejectionReason string             `gorm:"type:text" json:"rejection_reason"`
	FileURL         string             `gorm:"size:255" json:"file_url"` // 处方扫描件
	OrderItems      datatypes.JSON     `gorm:"type:json" json:"order_items"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// PrescriptionOrderItem 审核通过后下单的商品行，整体序列化进 OrderItems
type PrescriptionOrderItem struct {
	ProductID    int64  `json:"product_id"`
	VariationKey string `json:"variation_key"`
	Quantity     int    `json:"quantity"`
}
