package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"pharmacy_admin_v1_202608/internal/model"
)

// PrescriptionRepository 处方仓储接口
type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *model.Prescription) error
	GetByID(ctx context.Context, id int64) (*model.Prescription, error)
	Update(ctx context.Context, prescription *model.Prescription) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
	List(ctx context.Context, filter PrescriptionFilter) ([]model.Prescription, int64, error)

	// CountStaleUploaded 统计滞留超过 age 未审核的处方 (定时任务提醒用)
	CountStaleUploaded(ctx context.Context, age time.Duration) (int64, error)
}

// PrescriptionFilter 处方过滤条件
type PrescriptionFilter struct {
	Status  model.PrescriptionStatus
	Keyword string // 患者名 / 用户名模糊
	Limit   int
	Offset  int
}

type prescriptionRepo struct {
	db *gorm.DB
}

// NewPrescriptionRepository 创建处方仓储
func NewPrescriptionRepository(db *gorm.DB) PrescriptionRepository {
	return &prescriptionRepo{db: db}
}

func (r *prescriptionRepo) Create(ctx context.Context, prescription *model.Prescription) error {
	return r.db.WithContext(ctx).Create(prescription).Error
}

func (r *prescriptionRepo) GetByID(ctx context.Context, id int64) (*model.Prescription, error) {
	var prescription model.Prescription
	if err := r.db.WithContext(ctx).First(&prescription, id).Error; err != nil {
		return nil, err
	}
	return &prescription, nil
}

func (r *prescriptionRepo) Update(ctx context.Context, prescription *model.Prescription) error {
	return r.db.WithContext(ctx).Save(prescription).Error
}

func (r *prescriptionRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Prescription{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *prescriptionRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Prescription{}, id).Error
}

func (r *prescriptionRepo) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&model.Prescription{}, ids)
	return result.RowsAffected, result.Error
}

func (r *prescriptionRepo) List(ctx context.Context, filter PrescriptionFilter) ([]model.Prescription, int64, error) {
	var prescriptions []model.Prescription
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Prescription{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where("patient_name LIKE ? OR user_name LIKE ?", kw, kw)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	err := query.Find(&prescriptions).Error
	return prescriptions, total, err
}

func (r *prescriptionRepo) CountStaleUploaded(ctx context.Context, age time.Duration) (int64, error) {
	var count int64
	cutoff := time.Now().Add(-age)
	err := r.db.WithContext(ctx).
		Model(&model.Prescription{}).
		Where("status = ? AND created_at < ?", model.PrescriptionUploaded, cutoff).
		Count(&count).Error
	return count, err
}
