package dto

// ==================== 商品 ====================

// VariationPayload 商品规格载荷
// Key 是前端规格编辑器生成的毫秒时间戳 id
type VariationPayload struct {
	Key             string  `json:"id" binding:"required"`
	Name            string  `json:"name" binding:"required"`
	Price           float64 `json:"price"`
	DiscountedPrice float64 `json:"discountedPrice"`
	DiscountType    string  `json:"discountType"`
	Units           int     `json:"units"`
	Stock           int     `json:"stock"`
}

// AlternativePayload 品牌替代药载荷 (扁平字段组)
type AlternativePayload struct {
	Name         string  `json:"productAlternativeName" binding:"required"`
	CompanyName  string  `json:"productAlternativeCompanyName"`
	Content      string  `json:"productAlternativeContent"`
	Price        float64 `json:"productAlternativePrice"`
	Discount     float64 `json:"productAlternativeDiscount"`
	DiscountType string  `json:"productAlternativeDiscountType"`
	Units        int     `json:"productAlternativeUnits"`
	ImageURL     string  `json:"productAlternativeImageUrl"`
}

// ProductSaveReq 商品创建/更新请求
type ProductSaveReq struct {
	Name        string `json:"productName" binding:"required"`
	Slug        string `json:"productSlug"` // 空则由后端按名称生成
	Description string `json:"productDescription"`
	BrandID     int64  `json:"brandId" binding:"required"`
	CategoryID  int64  `json:"categoryId" binding:"required"`

	Uses                     string `json:"productUses"`
	Composition              string `json:"productComposition"`
	Directions               string `json:"productDirections"`
	SideEffects              string `json:"productSideEffects"`
	AdditionalInfo           string `json:"productAdditionalInfo"`
	RouteOfAdministration    string `json:"productRouteOfAdministration"`
	MedActivity              string `json:"productMedActivity"`
	Precaution               string `json:"productPrecaution"`
	Interactions             string `json:"productInteractions"`
	DosageInformation        string `json:"productDosageInformation"`
	Storage                  string `json:"productStorage"`
	DietAndLifestyleGuidance string `json:"productDietAndLifestyleGuidance"`
	Highlights               string `json:"productHighlights"`
	Ingredients              string `json:"productIngredients"`
	KeyUses                  string `json:"productKeyUses"`
	HowToUse                 string `json:"productHowToUse"`
	SafetyInformation        string `json:"productSafetyInformation"`

	Variations             []VariationPayload  `json:"productVariations" binding:"required,min=1"`
	ImageURLs              []string            `json:"productImages"`
	HasAlternativeProduct  bool                `json:"hasAlternativeProduct"`
	Alternative            *AlternativePayload `json:"productAlternatives"`
}

// VariationResp 规格响应，带派生折扣百分比 (展示用，不落库)
type VariationResp struct {
	Key             string  `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DiscountedPrice float64 `json:"discountedPrice"`
	DiscountType    string  `json:"discountType"`
	Units           int     `json:"units"`
	Stock           int     `json:"stock"`
	DiscountPercent float64 `json:"discountPercent"`
}

// ProductListItem 商品列表行 (表格列)
type ProductListItem struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	Brand          string `json:"brand"`
	Category       string `json:"category"`
	VariationCount int    `json:"productVariations"`
	HasAlternative bool   `json:"hasAlternative"`
	CreatedBy      string `json:"createdBy"`
	UpdatedBy      string `json:"updatedBy"`
}

// ProductDetailResp 商品详情
type ProductDetailResp struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	BrandID     int64  `json:"brandId"`
	CategoryID  int64  `json:"categoryId"`

	Uses                     string `json:"productUses"`
	Composition              string `json:"productComposition"`
	Directions               string `json:"productDirections"`
	SideEffects              string `json:"productSideEffects"`
	AdditionalInfo           string `json:"productAdditionalInfo"`
	RouteOfAdministration    string `json:"productRouteOfAdministration"`
	MedActivity              string `json:"productMedActivity"`
	Precaution               string `json:"productPrecaution"`
	Interactions             string `json:"productInteractions"`
	DosageInformation        string `json:"productDosageInformation"`
	Storage                  string `json:"productStorage"`
	DietAndLifestyleGuidance string `json:"productDietAndLifestyleGuidance"`
	Highlights               string `json:"productHighlights"`
	Ingredients              string `json:"productIngredients"`
	KeyUses                  string `json:"productKeyUses"`
	HowToUse                 string `json:"productHowToUse"`
	SafetyInformation        string `json:"productSafetyInformation"`

	Variations     []VariationResp     `json:"productVariations"`
	ImageURLs      []string            `json:"productImages"`
	HasAlternative bool                `json:"hasAlternativeProduct"`
	Alternative    *AlternativePayload `json:"productAlternatives,omitempty"`
	CreatedBy      string              `json:"createdBy"`
	UpdatedBy      string              `json:"updatedBy"`
}
