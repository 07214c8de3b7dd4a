package shopifyapi

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ==================== DTO 定义 ====================
// Shopify Admin REST API 的响应结构，字段名与官方 JSON 保持一致

// TokenResponse /admin/oauth/access_token 的响应
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
}

// ShopInfo /admin/api/{version}/shop.json 里的 shop 对象
type ShopInfo struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	ShopOwner string `json:"shop_owner"`
	Domain    string `json:"domain"`
	Currency  string `json:"currency"`
	Timezone  string `json:"timezone"`
	PlanName  string `json:"plan_name"`
}

type shopResp struct {
	Shop ShopInfo `json:"shop"`
}

// Product /admin/api/{version}/products.json 里的单个商品
type Product struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Handle         string     `json:"handle"`
	BodyHTML       string     `json:"body_html"`
	Vendor         string     `json:"vendor"`
	ProductType    string     `json:"product_type"`
	Status         string     `json:"status"`
	PublishedScope string     `json:"published_scope"`
	TemplateSuffix string     `json:"template_suffix"`
	Tags           string     `json:"tags"` // 逗号分隔，入库前拆为数组
	PublishedAt    *time.Time `json:"published_at"`
	CreatedAt      *time.Time `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
	Variants       []Variant  `json:"variants"`
	// 部分 API 版本会在商品详情里内联 metafields，没有则为空
	Metafields []Metafield `json:"metafields,omitempty"`
}

// TagList 把 "a, b, c" 形式的标签串拆成去除空白的有序切片
func (p Product) TagList() []string {
	if p.Tags == "" {
		return []string{}
	}
	parts := strings.Split(p.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Variant 商品变体
type Variant struct {
	ID                  int64               `json:"id"`
	ProductID           int64               `json:"product_id"`
	Title               string              `json:"title"`
	SKU                 string              `json:"sku"`
	Barcode             string              `json:"barcode"`
	Position            int                 `json:"position"`
	Price               decimal.Decimal     `json:"price"`
	CompareAtPrice      decimal.NullDecimal `json:"compare_at_price"`
	InventoryQuantity   int                 `json:"inventory_quantity"`
	Weight              float64             `json:"weight"`
	WeightUnit          string              `json:"weight_unit"`
	Option1             string              `json:"option1"`
	Option2             string              `json:"option2"`
	Option3             string              `json:"option3"`
	Taxable             bool                `json:"taxable"`
	RequiresShipping    bool                `json:"requires_shipping"`
	InventoryManagement string              `json:"inventory_management"`
	InventoryPolicy     string              `json:"inventory_policy"`
	FulfillmentService  string              `json:"fulfillment_service"`
}

// Metafield 商品元字段
type Metafield struct {
	ID          int64  `json:"id"`
	Namespace   string `json:"namespace"`
	Key         string `json:"key"`
	Value       string `json:"value"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type productsResp struct {
	Products []Product `json:"products"`
}
