package model

// Product 商品 (药品)
type Product struct {
	BaseModel

	// --- 基本信息 ---
	Name        string `gorm:"size:255;not null;index" json:"name"`
	Slug        string `gorm:"size:255;uniqueIndex;not null" json:"slug"` // 编辑路由用 slug 定位
	Description string `gorm:"type:text" json:"description"`
	BrandID     int64  `gorm:"index;not null" json:"brand_id"`
	Brand       *Brand `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	CategoryID  int64  `gorm:"index;not null" json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	// --- 药品说明字段 (富文本 HTML，后端只存不渲染) ---
	Uses                     string `gorm:"type:text" json:"uses"`
	Composition              string `gorm:"type:text" json:"composition"`
	Directions               string `gorm:"type:text" json:"directions"`
	SideEffects              string `gorm:"type:text" json:"side_effects"`
	AdditionalInfo           string `gorm:"type:text" json:"additional_info"`
	RouteOfAdministration    string `gorm:"type:text" json:"route_of_administration"`
	MedActivity              string `gorm:"type:text" json:"med_activity"`
	Precaution               string `gorm:"type:text" json:"precaution"`
	Interactions             string `gorm:"type:text" json:"interactions"`
	DosageInformation        string `gorm:"type:text" json:"dosage_information"`
	Storage                  string `gorm:"type:text" json:"storage"`
	DietAndLifestyleGuidance string `gorm:"type:text" json:"diet_and_lifestyle_guidance"`
	Highlights               string `gorm:"type:text" json:"highlights"`
	Ingredients              string `gorm:"type:text" json:"ingredients"`
	KeyUses                  string `gorm:"type:text" json:"key_uses"`
	HowToUse                 string `gorm:"type:text" json:"how_to_use"`
	SafetyInformation        string `gorm:"type:text" json:"safety_information"`

	// --- 关联关系 ---
	HasAlternative bool                `gorm:"default:false" json:"has_alternative"`
	Variations     []ProductVariation  `gorm:"foreignKey:ProductID" json:"variations"`
	Images         []ProductImage      `gorm:"foreignKey:ProductID" json:"images"`
	Alternative    *BrandedAlternative `gorm:"foreignKey:ProductID" json:"alternative,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// ProductVariation 商品规格 (SKU)
// VariationKey 是前端表单生成的 id (毫秒时间戳字符串)，保存后不变，
// 编辑时前端靠它做 add/edit/remove 对账
type ProductVariation struct {
	BaseModel
	ProductID       int64   `gorm:"index:idx_product_variation,unique;not null" json:"product_id"`
	VariationKey    string  `gorm:"size:32;index:idx_product_variation,unique;not null" json:"variation_key"`
	Name            string  `gorm:"size:100;not null" json:"name"`
	Price           float64 `gorm:"not null" json:"price"`
	DiscountedPrice float64 `gorm:"default:0" json:"discounted_price"`
	DiscountType    string  `gorm:"size:20;default:percentage" json:"discount_type"`
	Units           int     `gorm:"default:1" json:"units"`
	Stock           int     `gorm:"default:0" json:"stock"`
}

func (ProductVariation) TableName() string {
	return "product_variations"
}

// ProductImage 商品图片
type ProductImage struct {
	BaseModel
	ProductID int64  `gorm:"index;not null" json:"product_id"`
	URL       string `gorm:"size:255;not null" json:"url"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`
}

func (ProductImage) TableName() string {
	return "product_images"
}

// BrandedAlternative 品牌替代药
// 平铺字段而非关联到另一个 Product，前端就是一组扁平输入框
type BrandedAlternative struct {
	BaseModel
	ProductID    int64   `gorm:"uniqueIndex;not null" json:"product_id"`
	Name         string  `gorm:"size:255;not null" json:"name"`
	CompanyName  string  `gorm:"size:255" json:"company_name"`
	Content      string  `gorm:"type:text" json:"content"`
	Price        float64 `gorm:"default:0" json:"price"`
	Discount     float64 `gorm:"default:0" json:"discount"`
	DiscountType string  `gorm:"size:20;default:percentage" json:"discount_type"`
	Units        int     `gorm:"default:1" json:"units"`
	ImageURL     string  `gorm:"size:255" json:"image_url"`
}

func (BrandedAlternative) TableName() string {
	return "branded_alternatives"
}
