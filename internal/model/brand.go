package model

// Brand 品牌 (前台叫 Company)
type Brand struct {
	BaseModel
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	LogoURL     string `gorm:"size:255" json:"logo_url"`
	WebsiteURL  string `gorm:"size:255" json:"website_url"`
}

func (Brand) TableName() string {
	return "brands"
}

// Category 商品分类
type Category struct {
	BaseModel
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	LogoURL     string `gorm:"size:255" json:"logo_url"`
}

func (Category) TableName() string {
	return "categories"
}
