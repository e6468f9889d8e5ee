package repository

import (
	"context"

	"gorm.io/gorm"

	"pharmacy_admin_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// BrandRepository 品牌仓储接口
type BrandRepository interface {
	Create(ctx context.Context, brand *model.Brand) error
	GetByID(ctx context.Context, id int64) (*model.Brand, error)
	GetByName(ctx context.Context, name string) (*model.Brand, error)
	Update(ctx context.Context, brand *model.Brand) error
	Delete(ctx context.Context, id int64) error
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
	List(ctx context.Context, filter ListFilter) ([]model.Brand, int64, error)
}

// ListFilter 通用列表过滤条件
// Limit <= 0 表示不分页 (前端部分列表页直接全量拉取)
type ListFilter struct {
	Keyword string
	Limit   int
	Offset  int
}

// ==================== 仓储实现 ====================

type brandRepo struct {
	db *gorm.DB
}

// NewBrandRepository 创建品牌仓储
func NewBrandRepository(db *gorm.DB) BrandRepository {
	return &brandRepo{db: db}
}

func (r *brandRepo) Create(ctx context.Context, brand *model.Brand) error {
	return r.db.WithContext(ctx).Create(brand).Error
}

func (r *brandRepo) GetByID(ctx context.Context, id int64) (*model.Brand, error) {
	var brand model.Brand
	if err := r.db.WithContext(ctx).First(&brand, id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepo) GetByName(ctx context.Context, name string) (*model.Brand, error) {
	var brand model.Brand
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&brand).Error
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepo) Update(ctx context.Context, brand *model.Brand) error {
	return r.db.WithContext(ctx).Save(brand).Error
}

func (r *brandRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Brand{}, id).Error
}

func (r *brandRepo) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&model.Brand{}, ids)
	return result.RowsAffected, result.Error
}

func (r *brandRepo) List(ctx context.Context, filter ListFilter) ([]model.Brand, int64, error) {
	var brands []model.Brand
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Brand{})
	if filter.Keyword != "" {
		query = query.Where("name LIKE ?", "%"+filter.Keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("updated_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	err := query.Find(&brands).Error
	return brands, total, err
}
