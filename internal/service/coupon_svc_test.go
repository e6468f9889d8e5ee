package service

import (
	"errors"
	"testing"
	"time"

	"pharmacy_admin_v1_202608/internal/api/dto"
	"pharmacy_admin_v1_202608/internal/repository"
)

func validCouponReq(code string) *dto.CouponSaveReq {
	now := time.Now()
	return &dto.CouponSaveReq{
		Code:          code,
		DiscountType:  "percentage",
		DiscountValue: 20,
		StartDate:     now,
		EndDate:       now.Add(30 * 24 * time.Hour),
		IsActive:      true,
		UserIDs:       []int64{1, 2},
		ProductIDs:    []int64{10},
	}
}

// ==================== 创建 / 校验 ====================

func TestCouponService_CreateNormalizesCode(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCouponService(repository.NewCouponRepository(db))

	coupon, err := svc.Create(testCtx, validCouponReq("  summer20  "))
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if coupon.Code != "SUMMER20" {
		t.Fatalf("券码应去空格转大写，得到 %q", coupon.Code)
	}

	// 受众列表落到 JSON 列再读回
	resp := ToCouponResp(coupon)
	if len(resp.UserIDs) != 2 || resp.UserIDs[0] != 1 {
		t.Fatalf("用户白名单序列化错误: %v", resp.UserIDs)
	}
	if len(resp.ProductIDs) != 1 || resp.ProductIDs[0] != 10 {
		t.Fatalf("商品白名单序列化错误: %v", resp.ProductIDs)
	}
}

func TestCouponService_CreateDuplicateCode(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCouponService(repository.NewCouponRepository(db))

	if _, err := svc.Create(testCtx, validCouponReq("SUMMER20")); err != nil {
		t.Fatalf("首次创建失败: %v", err)
	}
	// 归一化后相同的码也算重复
	if _, err := svc.Create(testCtx, validCouponReq("summer20")); !errors.Is(err, ErrCouponCodeExists) {
		t.Fatalf("重复券码应报 ErrCouponCodeExists，得到 %v", err)
	}
}

func TestCouponService_DateOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCouponService(repository.NewCouponRepository(db))

	req := validCouponReq("BAD")
	req.EndDate = req.StartDate
	if _, err := svc.Create(testCtx, req); !errors.Is(err, ErrCouponDateOrder) {
		t.Fatalf("结束不晚于开始应报 ErrCouponDateOrder，得到 %v", err)
	}
}

func TestCouponService_PercentCap(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCouponService(repository.NewCouponRepository(db))

	req := validCouponReq("OVER")
	req.DiscountValue = 120
	if _, err := svc.Create(testCtx, req); !errors.Is(err, ErrCouponPercentOver) {
		t.Fatalf("百分比超 100 应报 ErrCouponPercentOver，得到 %v", err)
	}

	// fixed 类型不受 100 上限约束
	req.Code = "FIXED120"
	req.DiscountType = "fixed"
	if _, err := svc.Create(testCtx, req); err != nil {
		t.Fatalf("fixed 类型大额应允许: %v", err)
	}
}

func TestCouponService_UpdateKeepsCodeForSelf(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCouponService(repository.NewCouponRepository(db))

	created, err := svc.Create(testCtx, validCouponReq("SUMMER20"))
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	req := validCouponReq("SUMMER20")
	req.DiscountValue = 25
	updated, err := svc.Update(testCtx, created.ID, req)
	if err != nil {
		t.Fatalf("不改码更新不应报重复: %v", err)
	}
	if updated.DiscountValue != 25 {
		t.Fatalf("折扣值未更新: %v", updated.DiscountValue)
	}
}

// ==================== 码生成 ====================

func TestCouponService_GenerateCode(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCouponService(repository.NewCouponRepository(db))

	code, err := svc.GenerateCode(testCtx)
	if err != nil {
		t.Fatalf("生成券码失败: %v", err)
	}
	if len(code) != couponCodeLength {
		t.Fatalf("券码长度应为 %d，得到 %q", couponCodeLength, code)
	}

	// 两次生成不应相同
	code2, _ := svc.GenerateCode(testCtx)
	if code == code2 {
		t.Fatalf("连续生成的券码不应相同: %q", code)
	}
}

// ==================== 过期关停 ====================

func TestCouponService_DeactivateExpired(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCouponService(repository.NewCouponRepository(db))

	now := time.Now()

	expired := validCouponReq("EXPIRED1")
	expired.StartDate = now.Add(-48 * time.Hour)
	expired.EndDate = now.Add(-24 * time.Hour)

	active, err := svc.Create(testCtx, validCouponReq("ACTIVE1"))
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	expiredCoupon, err := svc.Create(testCtx, expired)
	if err != nil {
		t.Fatalf("创建过期券失败: %v", err)
	}

	affected, err := svc.DeactivateExpired(testCtx)
	if err != nil {
		t.Fatalf("过期关停失败: %v", err)
	}
	if affected != 1 {
		t.Fatalf("应关停 1 张，得到 %d", affected)
	}

	got, _ := svc.Get(testCtx, expiredCoupon.ID)
	if got.IsActive {
		t.Fatal("过期券应已失效")
	}
	got, _ = svc.Get(testCtx, active.ID)
	if !got.IsActive {
		t.Fatal("未过期券不应被关停")
	}

	// 幂等：再跑一遍没有新关停
	affected, _ = svc.DeactivateExpired(testCtx)
	if affected != 0 {
		t.Fatalf("重复执行不应再关停，得到 %d", affected)
	}
}
