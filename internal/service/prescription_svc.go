package service

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"pharmacy_admin_v1_202608/internal/api/dto"
	"pharmacy_admin_v1_202608/internal/model"
	"pharmacy_admin_v1_202608/internal/repository"
)

// PrescriptionService 处方服务
// 状态流转：UPLOADED -> APPROVED -> ORDERED，UPLOADED -> REJECTED (必填原因)
type PrescriptionService struct {
	prescriptionRepo repository.PrescriptionRepository
	productRepo      repository.ProductRepository
}

// NewPrescriptionService 工厂方法
func NewPrescriptionService(
	prescriptionRepo repository.PrescriptionRepository,
	productRepo repository.ProductRepository,
) *PrescriptionService {
	return &PrescriptionService{
		prescriptionRepo: prescriptionRepo,
		productRepo:      productRepo,
	}
}

// Create 登记处方，初始状态 UPLOADED
func (s *PrescriptionService) Create(ctx context.Context, req *dto.PrescriptionCreateReq) (*model.Prescription, error) {
	prescription := &model.Prescription{
		UserName:      req.UserName,
		PatientName:   req.PatientName,
		PatientAge:    req.PatientAge,
		PatientGender: req.PatientGender,
		PatientWeight: req.PatientWeight,
		PatientHeight: req.PatientHeight,
		FileURL:       req.FileURL,
		Status:        model.PrescriptionUploaded,
	}
	if err := s.prescriptionRepo.Create(ctx, prescription); err != nil {
		return nil, err
	}
	return prescription, nil
}

// Get 查单条处方
func (s *PrescriptionService) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	prescription, err := s.prescriptionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return prescription, nil
}

// List 处方列表
func (s *PrescriptionService) List(ctx context.Context, filter repository.PrescriptionFilter) ([]model.Prescription, int64, error) {
	return s.prescriptionRepo.List(ctx, filter)
}

// UpdateStatus 审核处方：通过或驳回
// 只有 UPLOADED 状态可审核；驳回必须带原因
func (s *PrescriptionService) UpdateStatus(ctx context.Context, id int64, req *dto.PrescriptionStatusReq) (*model.Prescription, error) {
	prescription, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if prescription.Status != model.PrescriptionUploaded {
		return nil, ErrPrescriptionTransition
	}

	target := model.PrescriptionStatus(req.Status)
	fields := map[string]interface{}{"status": target}

	if target == model.PrescriptionRejected {
		if req.RejectionReason == "" {
			return nil, ErrRejectionReasonMissing
		}
		fields["rejection_reason"] = req.RejectionReason
	}

	if err := s.prescriptionRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// CreateOrder 审核通过后按处方下单
// 每个商品行都要能对上已有商品和规格，整单校验通过才落库
func (s *PrescriptionService) CreateOrder(ctx context.Context, id int64, req *dto.PrescriptionOrderReq) (*model.Prescription, error) {
	prescription, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if prescription.Status != model.PrescriptionApproved {
		return nil, ErrPrescriptionTransition
	}

	items := make([]model.PrescriptionOrderItem, len(req.Products))
	for i, line := range req.Products {
		if _, err := s.productRepo.GetVariation(ctx, line.ProductID, line.VariationKey); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrOrderProductNotFound
			}
			return nil, err
		}
		items[i] = model.PrescriptionOrderItem{
			ProductID:    line.ProductID,
			VariationKey: line.VariationKey,
			Quantity:     line.Quantity,
		}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"status":      model.PrescriptionOrdered,
		"order_items": datatypes.JSON(data),
	}
	if err := s.prescriptionRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete 删除处方
func (s *PrescriptionService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.prescriptionRepo.Delete(ctx, id)
}

// DeleteByIDs 批量删除
func (s *PrescriptionService) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	return s.prescriptionRepo.DeleteByIDs(ctx, ids)
}

// ToPrescriptionResp 响应转换
func ToPrescriptionResp(p *model.Prescription) dto.PrescriptionResp {
	return dto.PrescriptionResp{
		ID:              p.ID,
		UserName:        p.UserName,
		PatientName:     p.PatientName,
		PatientAge:      p.PatientAge,
		PatientGender:   p.PatientGender,
		PatientWeight:   p.PatientWeight,
		PatientHeight:   p.PatientHeight,
		Status:          string(p.Status),
		RejectionReason: p.RejectionReason,
		FileURL:         p.FileURL,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		CreatedBy:       p.CreatedBy,
		UpdatedBy:       p.UpdatedBy,
	}
}
