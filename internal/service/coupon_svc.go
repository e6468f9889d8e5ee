package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"pharmacy_admin_v1_202608/internal/api/dto"
	"pharmacy_admin_v1_202608/internal/model"
	"pharmacy_admin_v1_202608/internal/repository"
	"pharmacy_admin_v1_202608/pkg/utils"
)

// 自动生成的优惠券码长度
const couponCodeLength = 10

// CouponService 优惠券服务
type CouponService struct {
	couponRepo repository.CouponRepository
}

// NewCouponService 工厂方法
func NewCouponService(couponRepo repository.CouponRepository) *CouponService {
	return &CouponService{couponRepo: couponRepo}
}

// GenerateCode 生成未占用的随机券码
func (s *CouponService) GenerateCode(ctx context.Context) (string, error) {
	// 码空间足够大，碰撞基本不会发生，重试 3 次兜底
	for i := 0; i < 3; i++ {
		code, err := utils.GenerateRandomString(couponCodeLength)
		if err != nil {
			return "", err
		}
		if _, err := s.couponRepo.GetByCode(ctx, code); errors.Is(err, gorm.ErrRecordNotFound) {
			return code, nil
		}
	}
	return "", ErrCouponCodeExists
}

// Create 创建优惠券
func (s *CouponService) Create(ctx context.Context, req *dto.CouponSaveReq) (*model.Coupon, error) {
	if err := validateCouponReq(req); err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if existing, err := s.couponRepo.GetByCode(ctx, code); err == nil && existing != nil {
		return nil, ErrCouponCodeExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	coupon := &model.Coupon{
		Code:              code,
		DiscountType:      model.CouponDiscountType(req.DiscountType),
		DiscountValue:     req.DiscountValue,
		MaxUses:           req.MaxUses,
		MinPurchaseAmount: req.MinPurchaseAmount,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		IsActive:          req.IsActive,
		UserIDs:           toJSONIDs(req.UserIDs),
		ProductIDs:        toJSONIDs(req.ProductIDs),
	}
	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Update 更新优惠券
func (s *CouponService) Update(ctx context.Context, id int64, req *dto.CouponSaveReq) (*model.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := validateCouponReq(req); err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if existing, err := s.couponRepo.GetByCode(ctx, code); err == nil && existing.ID != id {
		return nil, ErrCouponCodeExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	coupon.Code = code
	coupon.DiscountType = model.CouponDiscountType(req.DiscountType)
	coupon.DiscountValue = req.DiscountValue
	coupon.MaxUses = req.MaxUses
	coupon.MinPurchaseAmount = req.MinPurchaseAmount
	coupon.StartDate = req.StartDate
	coupon.EndDate = req.EndDate
	coupon.IsActive = req.IsActive
	coupon.UserIDs = toJSONIDs(req.UserIDs)
	coupon.ProductIDs = toJSONIDs(req.ProductIDs)

	if err := s.couponRepo.Update(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Get 查单张券
func (s *CouponService) Get(ctx context.Context, id int64) (*model.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return coupon, nil
}

// List 优惠券列表
func (s *CouponService) List(ctx context.Context, filter repository.ListFilter) ([]model.Coupon, int64, error) {
	return s.couponRepo.List(ctx, filter)
}

// Delete 删除优惠券
func (s *CouponService) Delete(ctx context.Context, id int64) error {
	if _, err := s.couponRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.couponRepo.Delete(ctx, id)
}

// DeleteByIDs 批量删除
func (s *CouponService) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	return s.couponRepo.DeleteByIDs(ctx, ids)
}

// DeactivateExpired 关停已过期的券 (定时任务入口)
func (s *CouponService) DeactivateExpired(ctx context.Context) (int64, error) {
	return s.couponRepo.DeactivateExpired(ctx, time.Now())
}

// validateCouponReq 日期顺序 + 百分比上限
func validateCouponReq(req *dto.CouponSaveReq) error {
	if !req.EndDate.After(req.StartDate) {
		return ErrCouponDateOrder
	}
	if req.DiscountType == string(model.CouponDiscountPercentage) && req.DiscountValue > 100 {
		return ErrCouponPercentOver
	}
	return nil
}

// toJSONIDs id 列表转 JSON 列，空列表存 NULL
func toJSONIDs(ids []int64) datatypes.JSON {
	if len(ids) == 0 {
		return nil
	}
	data, err := json.Marshal(ids)
	if err != nil {
		log.Printf("序列化 id 列表失败: %v", err)
		return nil
	}
	return datatypes.JSON(data)
}

// ToCouponResp 响应转换
func ToCouponResp(c *model.Coupon) dto.CouponResp {
	return dto.CouponResp{
		ID:                c.ID,
		Code:              c.Code,
		DiscountType:      string(c.DiscountType),
		DiscountValue:     c.DiscountValue,
		MaxUses:           c.MaxUses,
		MinPurchaseAmount: c.MinPurchaseAmount,
		StartDate:         c.StartDate,
		EndDate:           c.EndDate,
		IsActive:          c.IsActive,
		UserIDs:           fromJSONIDs(c.UserIDs),
		ProductIDs:        fromJSONIDs(c.ProductIDs),
		CreatedBy:         c.CreatedBy,
		UpdatedBy:         c.UpdatedBy,
	}
}

func fromJSONIDs(data datatypes.JSON) []int64 {
	if len(data) == 0 {
		return nil
	}
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil
	}
	return ids
}
