package service

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pharmacy_admin_v1_202608/internal/model"
	"pharmacy_admin_v1_202608/internal/repository"
)

// ==================== 测试辅助 ====================

// setupTestDB 内存库 + 全量建表，每个测试一套独立环境
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(
		&model.SysUser{},
		&model.Brand{}, &model.Category{},
		&model.Product{}, &model.ProductVariation{}, &model.ProductImage{}, &model.BrandedAlternative{},
		&model.Coupon{},
		&model.Prescription{},
	); err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return db
}

// seedBrandCategory 大部分商品相关测试都要的前置数据
func seedBrandCategory(t *testing.T, db *gorm.DB) (*model.Brand, *model.Category) {
	t.Helper()

	brand := &model.Brand{Name: "Bayer"}
	category := &model.Category{Name: "Pain Relief"}
	if err := db.Create(brand).Error; err != nil {
		t.Fatalf("种子品牌失败: %v", err)
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("种子分类失败: %v", err)
	}
	return brand, category
}

func newProductService(db *gorm.DB) *ProductService {
	return NewProductService(
		repository.NewProductRepository(db),
		repository.NewBrandRepository(db),
		repository.NewCategoryRepository(db),
	)
}

var testCtx = context.Background()
