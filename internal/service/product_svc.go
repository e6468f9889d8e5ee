package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"pharmacy_admin_v1_202608/internal/api/dto"
	"pharmacy_admin_v1_202608/internal/model"
	"pharmacy_admin_v1_202608/internal/repository"
	"pharmacy_admin_v1_202608/pkg/utils"
	"pharmacy_admin_v1_202608/pkg/variation"
)

// ProductService 商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	brandRepo    repository.BrandRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService 工厂方法
func NewProductService(
	productRepo repository.ProductRepository,
	brandRepo repository.BrandRepository,
	categoryRepo repository.CategoryRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		brandRepo:    brandRepo,
		categoryRepo: categoryRepo,
	}
}

// ==================== 创建 / 更新 ====================

// Create 创建商品：主表 + 规格 + 图片 + 替代药在一个事务里落库
func (s *ProductService) Create(ctx context.Context, req *dto.ProductSaveReq) (*model.Product, error) {
	if err := s.validateSaveReq(ctx, req); err != nil {
		return nil, err
	}

	slug, err := s.resolveSlug(ctx, req, 0)
	if err != nil {
		return nil, err
	}

	product := buildProduct(req)
	product.Slug = slug

	err = s.productRepo.Transaction(ctx, func(txRepo repository.ProductRepository) error {
		if err := txRepo.Create(ctx, product); err != nil {
			return err
		}
		if err := txRepo.ReplaceVariations(ctx, product.ID, buildVariations(req.Variations)); err != nil {
			return err
		}
		if err := txRepo.ReplaceImages(ctx, product.ID, buildImages(req.ImageURLs)); err != nil {
			return err
		}
		return s.saveAlternative(ctx, txRepo, product.ID, req)
	})
	if err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// Update 更新商品，关联集合整组替换
func (s *ProductService) Update(ctx context.Context, id int64, req *dto.ProductSaveReq) (*model.Product, error) {
	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.validateSaveReq(ctx, req); err != nil {
		return nil, err
	}

	slug, err := s.resolveSlug(ctx, req, id)
	if err != nil {
		return nil, err
	}

	product := buildProduct(req)
	product.BaseModel = existing.BaseModel
	product.Slug = slug

	err = s.productRepo.Transaction(ctx, func(txRepo repository.ProductRepository) error {
		if err := txRepo.Update(ctx, product); err != nil {
			return err
		}
		if err := txRepo.ReplaceVariations(ctx, id, buildVariations(req.Variations)); err != nil {
			return err
		}
		if err := txRepo.ReplaceImages(ctx, id, buildImages(req.ImageURLs)); err != nil {
			return err
		}
		return s.saveAlternative(ctx, txRepo, id, req)
	})
	if err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, id)
}

// ==================== 查询 / 删除 ====================

// Get 按 id 查商品详情
func (s *ProductService) Get(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

// GetBySlug 按 slug 查商品详情 (编辑路由用 slug 定位)
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

// List 商品列表
func (s *ProductService) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, int64, error) {
	return s.productRepo.List(ctx, filter)
}

// Delete 删除商品
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if _, err := s.productRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// DeleteByIDs 批量删除
func (s *ProductService) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	return s.productRepo.DeleteByIDs(ctx, ids)
}

// ==================== 校验 ====================

// validateSaveReq 保存前校验：品牌分类存在、规格全部合法、替代药完整
func (s *ProductService) validateSaveReq(ctx context.Context, req *dto.ProductSaveReq) error {
	if _, err := s.brandRepo.GetByID(ctx, req.BrandID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBrandNotFound
		}
		return err
	}
	if _, err := s.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	// 规格校验复用前端同一套规则，任何一条不过整单拒绝
	for _, v := range req.Variations {
		errs := variation.Validate(variation.Variation{
			ID:              v.Key,
			Name:            v.Name,
			Price:           v.Price,
			DiscountedPrice: v.DiscountedPrice,
			DiscountType:    v.DiscountType,
			Units:           v.Units,
			Stock:           v.Stock,
		})
		if len(errs) > 0 {
			messages := make([]string, len(errs))
			for i, e := range errs {
				messages[i] = e.Error()
			}
			return fmt.Errorf("规格 %q 校验失败: %s", v.Name, strings.Join(messages, "; "))
		}
	}

	if req.HasAlternativeProduct && req.Alternative == nil {
		return ErrAlternativeAbsent
	}
	return nil
}

// resolveSlug 定 slug：请求带就用请求的，否则按商品名生成；重复时报错
func (s *ProductService) resolveSlug(ctx context.Context, req *dto.ProductSaveReq, selfID int64) (string, error) {
	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}

	existing, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return slug, nil
		}
		return "", err
	}
	if existing.ID != selfID {
		return "", ErrSlugExists
	}
	return slug, nil
}

// saveAlternative 替代药的保存/清除
func (s *ProductService) saveAlternative(ctx context.Context, txRepo repository.ProductRepository, productID int64, req *dto.ProductSaveReq) error {
	if !req.HasAlternativeProduct {
		return txRepo.DeleteAlternative(ctx, productID)
	}

	alt := req.Alternative
	return txRepo.UpsertAlternative(ctx, &model.BrandedAlternative{
		ProductID:    productID,
		Name:         alt.Name,
		CompanyName:  alt.CompanyName,
		Content:      alt.Content,
		Price:        alt.Price,
		Discount:     alt.Discount,
		DiscountType: alt.DiscountType,
		Units:        alt.Units,
		ImageURL:     alt.ImageURL,
	})
}

// ==================== 模型组装 ====================

func buildProduct(req *dto.ProductSaveReq) *model.Product {
	return &model.Product{
		Name:        req.Name,
		Description: req.Description,
		BrandID:     req.BrandID,
		CategoryID:  req.CategoryID,

		Uses:                     req.Uses,
		Composition:              req.Composition,
		Directions:               req.Directions,
		SideEffects:              req.SideEffects,
		AdditionalInfo:           req.AdditionalInfo,
		RouteOfAdministration:    req.RouteOfAdministration,
		MedActivity:              req.MedActivity,
		Precaution:               req.Precaution,
		Interactions:             req.Interactions,
		DosageInformation:        req.DosageInformation,
		Storage:                  req.Storage,
		DietAndLifestyleGuidance: req.DietAndLifestyleGuidance,
		Highlights:               req.Highlights,
		Ingredients:              req.Ingredients,
		KeyUses:                  req.KeyUses,
		HowToUse:                 req.HowToUse,
		SafetyInformation:        req.SafetyInformation,

		HasAlternative: req.HasAlternativeProduct,
	}
}

func buildVariations(payloads []dto.VariationPayload) []model.ProductVariation {
	variations := make([]model.ProductVariation, len(payloads))
	for i, p := range payloads {
		discountType := p.DiscountType
		if discountType == "" {
			discountType = "percentage"
		}
		variations[i] = model.ProductVariation{
			VariationKey:    p.Key,
			Name:            p.Name,
			Price:           p.Price,
			DiscountedPrice: p.DiscountedPrice,
			DiscountType:    discountType,
			Units:           p.Units,
			Stock:           p.Stock,
		}
	}
	return variations
}

func buildImages(urls []string) []model.ProductImage {
	images := make([]model.ProductImage, len(urls))
	for i, u := range urls {
		images[i] = model.ProductImage{URL: u}
	}
	return images
}

// ==================== 响应转换 ====================

// ToListItem 列表行转换
func ToListItem(p *model.Product) dto.ProductListItem {
	item := dto.ProductListItem{
		ID:             p.ID,
		Name:           utils.CapitalizeWords(p.Name),
		Slug:           p.Slug,
		VariationCount: len(p.Variations),
		HasAlternative: p.HasAlternative,
		CreatedBy:      p.CreatedBy,
		UpdatedBy:      p.UpdatedBy,
	}
	if p.Brand != nil {
		item.Brand = p.Brand.Name
	}
	if p.Category != nil {
		item.Category = p.Category.Name
	}
	return item
}

// ToDetailResp 详情转换，规格带上派生折扣百分比
func ToDetailResp(p *model.Product) dto.ProductDetailResp {
	resp := dto.ProductDetailResp{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		BrandID:     p.BrandID,
		CategoryID:  p.CategoryID,

		Uses:                     p.Uses,
		Composition:              p.Composition,
		Directions:               p.Directions,
		SideEffects:              p.SideEffects,
		AdditionalInfo:           p.AdditionalInfo,
		RouteOfAdministration:    p.RouteOfAdministration,
		MedActivity:              p.MedActivity,
		Precaution:               p.Precaution,
		Interactions:             p.Interactions,
		DosageInformation:        p.DosageInformation,
		Storage:                  p.Storage,
		DietAndLifestyleGuidance: p.DietAndLifestyleGuidance,
		Highlights:               p.Highlights,
		Ingredients:              p.Ingredients,
		KeyUses:                  p.KeyUses,
		HowToUse:                 p.HowToUse,
		SafetyInformation:        p.SafetyInformation,

		HasAlternative: p.HasAlternative,
		CreatedBy:      p.CreatedBy,
		UpdatedBy:      p.UpdatedBy,
	}

	resp.Variations = make([]dto.VariationResp, len(p.Variations))
	for i, v := range p.Variations {
		resp.Variations[i] = dto.VariationResp{
			Key:             v.VariationKey,
			Name:            v.Name,
			Price:           v.Price,
			DiscountedPrice: v.DiscountedPrice,
			DiscountType:    v.DiscountType,
			Units:           v.Units,
			Stock:           v.Stock,
			DiscountPercent: variation.DiscountPercent(v.Price, v.DiscountedPrice),
		}
	}

	resp.ImageURLs = make([]string, len(p.Images))
	for i, img := range p.Images {
		resp.ImageURLs[i] = img.URL
	}

	if p.Alternative != nil {
		resp.Alternative = &dto.AlternativePayload{
			Name:         p.Alternative.Name,
			CompanyName:  p.Alternative.CompanyName,
			Content:      p.Alternative.Content,
			Price:        p.Alternative.Price,
			Discount:     p.Alternative.Discount,
			DiscountType: p.Alternative.DiscountType,
			Units:        p.Alternative.Units,
			ImageURL:     p.Alternative.ImageURL,
		}
	}

	return resp
}
