package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pharmacy_admin_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// ProductRepository 商品仓储接口
type ProductRepository interface {
	// 基础 CRUD
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id int64) error
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
	List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error)

	// 规格操作 (整组替换：前端编辑器提交的是完整规格列表)
	ReplaceVariations(ctx context.Context, productID int64, variations []model.ProductVariation) error
	GetVariation(ctx context.Context, productID int64, key string) (*model.ProductVariation, error)

	// 图片操作
	ReplaceImages(ctx context.Context, productID int64, images []model.ProductImage) error

	// 替代药操作
	UpsertAlternative(ctx context.Context, alt *model.BrandedAlternative) error
	DeleteAlternative(ctx context.Context, productID int64) error

	// 事务
	WithTx(tx *gorm.DB) ProductRepository
	Transaction(ctx context.Context, fn func(txRepo ProductRepository) error) error
}

// ProductFilter 商品过滤条件
type ProductFilter struct {
	BrandID    int64
	CategoryID int64
	Keyword    string
	Limit      int
	Offset     int
}

// ==================== 仓储实现 ====================

type productRepo struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Brand").
		Preload("Category").
		Preload("Variations").
		Preload("Images").
		Preload("Alternative").
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Brand").
		Preload("Category").
		Preload("Variations").
		Preload("Images").
		Preload("Alternative").
		Where("slug = ?", slug).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	// 关联集合单独用 Replace* 维护，这里只存主表字段
	return r.db.WithContext(ctx).Omit("Variations", "Images", "Alternative").Save(product).Error
}

func (r *productRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}

func (r *productRepo) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&model.Product{}, ids)
	return result.RowsAffected, result.Error
}

func (r *productRepo) List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.BrandID > 0 {
		query = query.Where("brand_id = ?", filter.BrandID)
	}
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Keyword != "" {
		query = query.Where("name LIKE ?", "%"+filter.Keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.
		Preload("Brand").
		Preload("Category").
		Preload("Variations").
		Order("updated_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	err := query.Find(&products).Error
	return products, total, err
}

// ==================== 规格 / 图片 / 替代药 ====================

func (r *productRepo) ReplaceVariations(ctx context.Context, productID int64, variations []model.ProductVariation) error {
	db := r.db.WithContext(ctx)

	// 先硬删旧规格再整组写入，避免软删行占用 (product_id, variation_key) 唯一索引
	if err := db.Unscoped().Where("product_id = ?", productID).Delete(&model.ProductVariation{}).Error; err != nil {
		return err
	}
	if len(variations) == 0 {
		return nil
	}
	for i := range variations {
		variations[i].ProductID = productID
	}
	return db.Create(&variations).Error
}

func (r *productRepo) GetVariation(ctx context.Context, productID int64, key string) (*model.ProductVariation, error) {
	var variation model.ProductVariation
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND variation_key = ?", productID, key).
		First(&variation).Error
	if err != nil {
		return nil, err
	}
	return &variation, nil
}

func (r *productRepo) ReplaceImages(ctx context.Context, productID int64, images []model.ProductImage) error {
	db := r.db.WithContext(ctx)

	if err := db.Unscoped().Where("product_id = ?", productID).Delete(&model.ProductImage{}).Error; err != nil {
		return err
	}
	if len(images) == 0 {
		return nil
	}
	for i := range images {
		images[i].ProductID = productID
		images[i].SortOrder = i
	}
	return db.Create(&images).Error
}

func (r *productRepo) UpsertAlternative(ctx context.Context, alt *model.BrandedAlternative) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "product_id"}},
			UpdateAll: true,
		}).
		Create(alt).Error
}

func (r *productRepo) DeleteAlternative(ctx context.Context, productID int64) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("product_id = ?", productID).
		Delete(&model.BrandedAlternative{}).Error
}

// ==================== 事务 ====================

func (r *productRepo) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepo{db: tx}
}

func (r *productRepo) Transaction(ctx context.Context, fn func(txRepo ProductRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
