package service

import (
	"errors"
	"strings"
	"testing"

	"pharmacy_admin_v1_202608/internal/api/dto"
	"pharmacy_admin_v1_202608/internal/repository"
)

// ==================== 测试数据 ====================

func validProductReq(brandID, categoryID int64) *dto.ProductSaveReq {
	return &dto.ProductSaveReq{
		Name:       "aspirin 500mg tablets",
		BrandID:    brandID,
		CategoryID: categoryID,
		Variations: []dto.VariationPayload{
			{Key: "1700000000001", Name: "Strip of 10", Price: 50, DiscountedPrice: 45, Units: 10, Stock: 100},
			{Key: "1700000000002", Name: "Strip of 30", Price: 120, Units: 30, Stock: 40},
		},
		ImageURLs: []string{"/uploads/a.jpg", "/uploads/b.jpg"},
	}
}

// ==================== 创建 ====================

func TestProductService_CreateFull(t *testing.T) {
	db := setupTestDB(t)
	brand, category := seedBrandCategory(t, db)
	svc := newProductService(db)

	req := validProductReq(brand.ID, category.ID)
	req.HasAlternativeProduct = true
	req.Alternative = &dto.AlternativePayload{Name: "Generic Aspirin", Price: 30, Units: 10}

	product, err := svc.Create(testCtx, req)
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	// slug 由名称生成
	if product.Slug != "aspirin-500mg-tablets" {
		t.Fatalf("slug 生成错误: %q", product.Slug)
	}
	if len(product.Variations) != 2 {
		t.Fatalf("应落库 2 条规格，得到 %d", len(product.Variations))
	}
	if len(product.Images) != 2 {
		t.Fatalf("应落库 2 张图片，得到 %d", len(product.Images))
	}
	if product.Alternative == nil || product.Alternative.Name != "Generic Aspirin" {
		t.Fatalf("替代药未落库: %+v", product.Alternative)
	}
	// 未填折扣类型的规格默认 percentage
	for _, v := range product.Variations {
		if v.DiscountType != "percentage" {
			t.Fatalf("规格折扣类型应默认 percentage，得到 %q", v.DiscountType)
		}
	}
}

func TestProductService_CreateSlugConflict(t *testing.T) {
	db := setupTestDB(t)
	brand, category := seedBrandCategory(t, db)
	svc := newProductService(db)

	if _, err := svc.Create(testCtx, validProductReq(brand.ID, category.ID)); err != nil {
		t.Fatalf("首次创建失败: %v", err)
	}
	if _, err := svc.Create(testCtx, validProductReq(brand.ID, category.ID)); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("同名商品 slug 冲突应报 ErrSlugExists，得到 %v", err)
	}
}

func TestProductService_CreateExplicitSlug(t *testing.T) {
	db := setupTestDB(t)
	brand, category := seedBrandCategory(t, db)
	svc := newProductService(db)

	req := validProductReq(brand.ID, category.ID)
	req.Slug = "custom-slug"

	product, err := svc.Create(testCtx, req)
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if product.Slug != "custom-slug" {
		t.Fatalf("请求带 slug 时应原样使用，得到 %q", product.Slug)
	}
}

func TestProductService_CreateInvalidVariation(t *testing.T) {
	db := setupTestDB(t)
	brand, category := seedBrandCategory(t, db)
	svc := newProductService(db)

	req := validProductReq(brand.ID, category.ID)
	req.Variations[0].Price = 0
	req.Variations[0].Name = ""

	_, err := svc.Create(testCtx, req)
	if err == nil {
		t.Fatal("非法规格应整单拒绝")
	}
	// 错误里要能看到所有违反项，不是只报第一条
	if !strings.Contains(err.Error(), "Name is required") || !strings.Contains(err.Error(), "Price must be greater than 0") {
		t.Fatalf("错误应聚合全部违反项: %v", err)
	}

	// 事务外不应有残留
	_, total, _ := repository.NewProductRepository(db).List(testCtx, repository.ProductFilter{})
	if total != 0 {
		t.Fatalf("校验失败不应落库，得到 %d 条", total)
	}
}

func TestProductService_CreateUnknownBrand(t *testing.T) {
	db := setupTestDB(t)
	_, category := seedBrandCategory(t, db)
	svc := newProductService(db)

	req := validProductReq(404, category.ID)
	if _, err := svc.Create(testCtx, req); !errors.Is(err, ErrBrandNotFound) {
		t.Fatalf("未知品牌应报 ErrBrandNotFound，得到 %v", err)
	}
}

func TestProductService_CreateAlternativeFlagWithoutPayload(t *testing.T) {
	db := setupTestDB(t)
	brand, category := seedBrandCategory(t, db)
	svc := newProductService(db)

	req := validProductReq(brand.ID, category.ID)
	req.HasAlternativeProduct = true
	req.Alternative = nil

	if _, err := svc.Create(testCtx, req); !errors.Is(err, ErrAlternativeAbsent) {
		t.Fatalf("开了替代药开关但没给数据应报 ErrAlternativeAbsent，得到 %v", err)
	}
}

// ==================== 更新 ====================

func TestProductService_UpdateReplacesCollections(t *testing.T) {
	db := setupTestDB(t)
	brand, category := seedBrandCategory(t, db)
	svc := newProductService(db)

	created, err := svc.Create(testCtx, validProductReq(brand.ID, category.ID))
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	req := validProductReq(brand.ID, category.ID)
	req.Slug = created.Slug // 不改 slug
	req.Variations = []dto.VariationPayload{
		{Key: "1700000000009", Name: "Bottle of 100", Price: 300, Units: 100, Stock: 10},
	}
	req.ImageURLs = []string{"/uploads/new.jpg"}

	updated, err := svc.Update(testCtx, created.ID, req)
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}

	if len(updated.Variations) != 1 || updated.Variations[0].VariationKey != "1700000000009" {
		t.Fatalf("规格应整组替换，得到 %+v", updated.Variations)
	}
	if len(updated.Images) != 1 || updated.Images[0].URL != "/uploads/new.jpg" {
		t.Fatalf("图片应整组替换，得到 %+v", updated.Images)
	}
}

func TestProductService_UpdateClearsAlternative(t *testing.T) {
	db := setupTestDB(t)
	brand, category := seedBrandCategory(t, db)
	svc := newProductService(db)

	req := validProductReq(brand.ID, category.ID)
	req.HasAlternativeProduct = true
	req.Alternative = &dto.AlternativePayload{Name: "Generic", Price: 30}
	created, err := svc.Create(testCtx, req)
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	// 关掉开关，替代药应被清除
	req2 := validProductReq(brand.ID, category.ID)
	req2.Slug = created.Slug
	updated, err := svc.Update(testCtx, created.ID, req2)
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if updated.Alternative != nil {
		t.Fatalf("关掉开关后替代药应清除，得到 %+v", updated.Alternative)
	}
}

func TestProductService_UpdateNotFound(t *testing.T) {
	db := setupTestDB(t)
	brand, category := seedBrandCategory(t, db)
	svc := newProductService(db)

	if _, err := svc.Update(testCtx, 404, validProductReq(brand.ID, category.ID)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("不存在的商品应报 ErrNotFound，得到 %v", err)
	}
}

// ==================== 查询 / 转换 ====================

func TestProductService_GetBySlug(t *testing.T) {
	db := setupTestDB(t)
	brand, category := seedBrandCategory(t, db)
	svc := newProductService(db)

	created, err := svc.Create(testCtx, validProductReq(brand.ID, category.ID))
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	got, err := svc.GetBySlug(testCtx, created.Slug)
	if err != nil {
		t.Fatalf("按 slug 查询失败: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("slug 查回的不是同一商品: %d != %d", got.ID, created.ID)
	}

	if _, err := svc.GetBySlug(testCtx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("未知 slug 应报 ErrNotFound，得到 %v", err)
	}
}

func TestProductService_ToListItem(t *testing.T) {
	db := setupTestDB(t)
	brand, category := seedBrandCategory(t, db)
	svc := newProductService(db)

	created, err := svc.Create(testCtx, validProductReq(brand.ID, category.ID))
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	item := ToListItem(created)
	// 列表展示名首字母大写
	if item.Name != "Aspirin 500mg Tablets" {
		t.Fatalf("列表名应逐词首字母大写，得到 %q", item.Name)
	}
	if item.Brand != "Bayer" || item.Category != "Pain Relief" {
		t.Fatalf("品牌/分类名未带出: %+v", item)
	}
	if item.VariationCount != 2 {
		t.Fatalf("规格数错误: %d", item.VariationCount)
	}
}

func TestProductService_ToDetailRespDiscountPercent(t *testing.T) {
	db := setupTestDB(t)
	brand, category := seedBrandCategory(t, db)
	svc := newProductService(db)

	created, err := svc.Create(testCtx, validProductReq(brand.ID, category.ID))
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	resp := ToDetailResp(created)
	var strip10 *dto.VariationResp
	for i := range resp.Variations {
		if resp.Variations[i].Key == "1700000000001" {
			strip10 = &resp.Variations[i]
		}
	}
	if strip10 == nil {
		t.Fatal("规格未带出")
	}
	// 50 -> 45 折扣 10%
	if strip10.DiscountPercent != 10 {
		t.Fatalf("折扣百分比错误: %v", strip10.DiscountPercent)
	}
}
