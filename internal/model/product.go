package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel

	// --- 归属 ---
	ShopID int64 `gorm:"index;not null;uniqueIndex:idx_shop_product" json:"shop_id"`
	Shop   *Shop `gorm:"foreignKey:ShopID" json:"-"`

	// --- Shopify 侧身份 ---
	ShopifyProductID int64 `gorm:"not null;uniqueIndex:idx_shop_product" json:"shopify_product_id"`

	// --- 商品基本信息 ---
	Title          string `gorm:"size:512;not null" json:"title"`
	Handle         string `gorm:"size:255;index" json:"handle"`
	BodyHTML       string `gorm:"type:text" json:"body_html"`
	Vendor         string `gorm:"size:255;index" json:"vendor"`
	ProductType    string `gorm:"size:255;index" json:"product_type"`
	Status         string `gorm:"size:20;index" json:"status"` // active / draft / archived
	PublishedScope string `gorm:"size:50" json:"published_scope"`
	TemplateSuffix string `gorm:"size:100" json:"template_suffix"`

	// --- 标签 (Postgres Array，来自逗号分隔字符串) ---
	Tags pq.StringArray `gorm:"type:text[]" json:"tags"`

	// --- Shopify 侧时间戳 ---
	PublishedAt      *time.Time `json:"published_at"`
	CreatedAtShopify *time.Time `json:"created_at_shopify"`
	UpdatedAtShopify *time.Time `json:"updated_at_shopify"`

	// --- 关联关系 ---
	Variants   []ProductVariant   `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	Metafields []ProductMetafield `gorm:"foreignKey:ProductID" json:"metafields,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

type ProductVariant struct {
	BaseModel

	// --- 关联 ---
	// 不变式：父商品行必须已经存在，同步流程先 upsert 商品再 upsert 变体
	ProductID int64    `gorm:"index;not null" json:"product_id"`
	Product   *Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ShopID    int64    `gorm:"index;not null;uniqueIndex:idx_shop_variant" json:"shop_id"`

	// --- Shopify 侧身份 ---
	ShopifyVariantID int64 `gorm:"not null;uniqueIndex:idx_shop_variant" json:"shopify_variant_id"`

	// --- 基础信息 ---
	Title    string `gorm:"size:255" json:"title"`
	SKU      string `gorm:"size:255;index" json:"sku"`
	Barcode  string `gorm:"size:255" json:"barcode"`
	Position int    `gorm:"default:1" json:"position"`

	// --- 价格 ---
	Price          decimal.Decimal     `gorm:"type:numeric(12,2)" json:"price"`
	CompareAtPrice decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"compare_at_price"`

	// --- 库存与物流 ---
	InventoryQuantity   int     `gorm:"default:0" json:"inventory_quantity"`
	Weight              float64 `gorm:"default:0" json:"weight"`
	WeightUnit          string  `gorm:"size:10" json:"weight_unit"`
	InventoryManagement string  `gorm:"size:50" json:"inventory_management"`
	InventoryPolicy     string  `gorm:"size:50" json:"inventory_policy"`
	FulfillmentService  string  `gorm:"size:50" json:"fulfillment_service"`
	Taxable             bool    `gorm:"default:true" json:"taxable"`
	RequiresShipping    bool    `gorm:"default:true" json:"requires_shipping"`

	// --- 规格选项 (Shopify 固定最多三个) ---
	Option1 string `gorm:"size:255" json:"option1"`
	Option2 string `gorm:"size:255" json:"option2"`
	Option3 string `gorm:"size:255" json:"option3"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}

type ProductMetafield struct {
	BaseModel

	// --- 关联 ---
	ProductID int64    `gorm:"index;not null" json:"product_id"`
	Product   *Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ShopID    int64    `gorm:"index;not null;uniqueIndex:idx_shop_metafield" json:"shop_id"`

	// --- Shopify 侧身份 ---
	ShopifyMetafieldID int64 `gorm:"not null;uniqueIndex:idx_shop_metafield" json:"shopify_metafield_id"`

	// --- 内容 ---
	Namespace   string `gorm:"size:255;index" json:"namespace"`
	Key         string `gorm:"size:255;index" json:"key"`
	Value       string `gorm:"type:text" json:"value"`
	ValueType   string `gorm:"size:50" json:"value_type"`
	Description string `gorm:"type:text" json:"description"`
}

func (ProductMetafield) TableName() string {
	return "product_metafields"
}
