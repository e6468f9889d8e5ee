package task

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pharmacy_admin_v1_202608/internal/model"
	"pharmacy_admin_v1_202608/internal/repository"
)

func setupTaskDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Coupon{}, &model.Prescription{}); err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return db
}

func TestCouponExpiryTask_RunOnce(t *testing.T) {
	db := setupTaskDB(t)
	now := time.Now()

	coupons := []model.Coupon{
		{Code: "EXPIRED1", DiscountType: model.CouponDiscountPercentage, DiscountValue: 10,
			StartDate: now.Add(-48 * time.Hour), EndDate: now.Add(-24 * time.Hour), IsActive: true},
		{Code: "EXPIRED2", DiscountType: model.CouponDiscountFixed, DiscountValue: 50,
			StartDate: now.Add(-48 * time.Hour), EndDate: now.Add(-time.Hour), IsActive: true},
		{Code: "ACTIVE1", DiscountType: model.CouponDiscountPercentage, DiscountValue: 20,
			StartDate: now.Add(-time.Hour), EndDate: now.Add(24 * time.Hour), IsActive: true},
		{Code: "ALREADYOFF", DiscountType: model.CouponDiscountPercentage, DiscountValue: 20,
			StartDate: now.Add(-48 * time.Hour), EndDate: now.Add(-time.Hour), IsActive: false},
	}
	for i := range coupons {
		if err := db.Create(&coupons[i]).Error; err != nil {
			t.Fatalf("种子优惠券失败: %v", err)
		}
	}

	taskRunner := NewCouponExpiryTask(repository.NewCouponRepository(db))
	taskRunner.RunOnce(context.Background())

	var activeCount int64
	db.Model(&model.Coupon{}).Where("is_active = ?", true).Count(&activeCount)
	if activeCount != 1 {
		t.Fatalf("执行后应只剩 1 张激活券，得到 %d", activeCount)
	}

	var active model.Coupon
	db.Where("is_active = ?", true).First(&active)
	if active.Code != "ACTIVE1" {
		t.Fatalf("留下的应是未过期券，得到 %q", active.Code)
	}
}

func TestPrescriptionAgingTask_CountsStale(t *testing.T) {
	db := setupTaskDB(t)
	repo := repository.NewPrescriptionRepository(db)

	prescriptions := []model.Prescription{
		{UserName: "a", PatientName: "A", Status: model.PrescriptionUploaded},
		{UserName: "b", PatientName: "B", Status: model.PrescriptionApproved},
	}
	for i := range prescriptions {
		if err := db.Create(&prescriptions[i]).Error; err != nil {
			t.Fatalf("种子处方失败: %v", err)
		}
	}
	// 把第一条的创建时间拨回 6 小时前
	db.Model(&model.Prescription{}).Where("id = ?", prescriptions[0].ID).
		Update("created_at", time.Now().Add(-6*time.Hour))

	count, err := repo.CountStaleUploaded(context.Background(), 4*time.Hour)
	if err != nil {
		t.Fatalf("统计滞留处方失败: %v", err)
	}
	if count != 1 {
		t.Fatalf("滞留超过 4 小时的未审核处方应为 1，得到 %d", count)
	}
}
