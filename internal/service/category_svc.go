package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pharmacy_admin_v1_202608/internal/api/dto"
	"pharmacy_admin_v1_202608/internal/model"
	"pharmacy_admin_v1_202608/internal/repository"
)

// CategoryService 分类服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCategoryService 工厂方法
func NewCategoryService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, productRepo: productRepo}
}

// Create 创建分类
func (s *CategoryService) Create(ctx context.Context, req *dto.CategorySaveReq) (*model.Category, error) {
	if err := s.checkNameUnique(ctx, req.Name, 0); err != nil {
		return nil, err
	}

	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update 更新分类
func (s *CategoryService) Update(ctx context.Context, id int64, req *dto.CategorySaveReq) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.checkNameUnique(ctx, req.Name, id); err != nil {
		return nil, err
	}

	category.Name = req.Name
	category.Description = req.Description
	if req.LogoURL != "" {
		category.LogoURL = req.LogoURL
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Get 查单个分类
func (s *CategoryService) Get(ctx context.Context, id int64) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

// List 分类列表
func (s *CategoryService) List(ctx context.Context, filter repository.ListFilter) ([]model.Category, int64, error) {
	return s.categoryRepo.List(ctx, filter)
}

// Delete 删除分类；有商品引用时拒绝
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.checkNotInUse(ctx, id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, id)
}

// DeleteByIDs 批量删除
func (s *CategoryService) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	for _, id := range ids {
		if err := s.checkNotInUse(ctx, id); err != nil {
			return 0, err
		}
	}
	return s.categoryRepo.DeleteByIDs(ctx, ids)
}

func (s *CategoryService) checkNameUnique(ctx context.Context, name string, selfID int64) error {
	existing, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return ErrCategoryNameExists
	}
	return nil
}

func (s *CategoryService) checkNotInUse(ctx context.Context, categoryID int64) error {
	_, total, err := s.productRepo.List(ctx, repository.ProductFilter{CategoryID: categoryID, Limit: 1})
	if err != nil {
		return err
	}
	if total > 0 {
		return ErrCategoryInUse
	}
	return nil
}
