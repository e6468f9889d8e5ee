package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"pharmacy_admin_v1_202608/internal/model"
)

// CouponRepository 优惠券仓储接口
type CouponRepository interface {
	Create(ctx context.Context, coupon *model.Coupon) error
	GetByID(ctx context.Context, id int64) (*model.Coupon, error)
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)
	Update(ctx context.Context, coupon *model.Coupon) error
	Delete(ctx context.Context, id int64) error
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
	List(ctx context.Context, filter ListFilter) ([]model.Coupon, int64, error)

	// DeactivateExpired 把已过期但仍激活的券关掉，返回关掉的数量 (定时任务用)
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

type couponRepo struct {
	db *gorm.DB
}

// NewCouponRepository 创建优惠券仓储
func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepo{db: db}
}

func (r *couponRepo) Create(ctx context.Context, coupon *model.Coupon) error {
	return r.db.WithContext(ctx).Create(coupon).Error
}

func (r *couponRepo) GetByID(ctx context.Context, id int64) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := r.db.WithContext(ctx).First(&coupon, id).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepo) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var coupon model.Coupon
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&coupon).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepo) Update(ctx context.Context, coupon *model.Coupon) error {
	return r.db.WithContext(ctx).Save(coupon).Error
}

func (r *couponRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Coupon{}, id).Error
}

func (r *couponRepo) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&model.Coupon{}, ids)
	return result.RowsAffected, result.Error
}

func (r *couponRepo) List(ctx context.Context, filter ListFilter) ([]model.Coupon, int64, error) {
	var coupons []model.Coupon
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Coupon{})
	if filter.Keyword != "" {
		query = query.Where("code LIKE ?", "%"+filter.Keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	err := query.Find(&coupons).Error
	return coupons, total, err
}

func (r *couponRepo) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Coupon{}).
		Where("is_active = ? AND end_date < ?", true, now).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
