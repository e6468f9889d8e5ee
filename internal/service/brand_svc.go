package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pharmacy_admin_v1_202608/internal/api/dto"
	"pharmacy_admin_v1_202608/internal/model"
	"pharmacy_admin_v1_202608/internal/repository"
)

// BrandService 品牌服务
type BrandService struct {
	brandRepo   repository.BrandRepository
	productRepo repository.ProductRepository
}

// NewBrandService 工厂方法
func NewBrandService(brandRepo repository.BrandRepository, productRepo repository.ProductRepository) *BrandService {
	return &BrandService{brandRepo: brandRepo, productRepo: productRepo}
}

// Create 创建品牌，名称唯一
func (s *BrandService) Create(ctx context.Context, req *dto.BrandSaveReq) (*model.Brand, error) {
	if err := s.checkNameUnique(ctx, req.Name, 0); err != nil {
		return nil, err
	}

	brand := &model.Brand{
		Name:        req.Name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		WebsiteURL:  req.WebsiteURL,
	}
	if err := s.brandRepo.Create(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// Update 更新品牌
func (s *BrandService) Update(ctx context.Context, id int64, req *dto.BrandSaveReq) (*model.Brand, error) {
	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.checkNameUnique(ctx, req.Name, id); err != nil {
		return nil, err
	}

	brand.Name = req.Name
	brand.Description = req.Description
	brand.WebsiteURL = req.WebsiteURL
	// logo 不传表示不改，避免 multipart 更新时把已有 logo 冲掉
	if req.LogoURL != "" {
		brand.LogoURL = req.LogoURL
	}

	if err := s.brandRepo.Update(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// Get 查单个品牌
func (s *BrandService) Get(ctx context.Context, id int64) (*model.Brand, error) {
	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return brand, nil
}

// List 品牌列表
func (s *BrandService) List(ctx context.Context, filter repository.ListFilter) ([]model.Brand, int64, error) {
	return s.brandRepo.List(ctx, filter)
}

// Delete 删除品牌；有商品引用时拒绝
func (s *BrandService) Delete(ctx context.Context, id int64) error {
	if _, err := s.brandRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.checkNotInUse(ctx, id); err != nil {
		return err
	}
	return s.brandRepo.Delete(ctx, id)
}

// DeleteByIDs 批量删除，任何一个被引用就整批拒绝
func (s *BrandService) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	for _, id := range ids {
		if err := s.checkNotInUse(ctx, id); err != nil {
			return 0, err
		}
	}
	return s.brandRepo.DeleteByIDs(ctx, ids)
}

func (s *BrandService) checkNameUnique(ctx context.Context, name string, selfID int64) error {
	existing, err := s.brandRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return ErrBrandNameExists
	}
	return nil
}

func (s *BrandService) checkNotInUse(ctx context.Context, brandID int64) error {
	_, total, err := s.productRepo.List(ctx, repository.ProductFilter{BrandID: brandID, Limit: 1})
	if err != nil {
		return err
	}
	if total > 0 {
		return ErrBrandInUse
	}
	return nil
}
