package shopifyapi

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/go-resty/resty/v2"

	"shopify_dev_v1_202608/pkg/apperrors"
)

// 目录分页的单页上限，Shopify 固定最大 250
const PageLimit = 250

// Link 响应头里的下一页游标，形如
// <https://x.myshopify.com/admin/api/2024-01/products.json?limit=250&page_info=abc>; rel="next"
var nextPageRe = regexp.MustCompile(`<[^>]*page_info=([^>&]*)[^>]*>;\s*rel="next"`)

// ==================== 客户端 ====================

// Client Shopify Admin REST 客户端
type Client struct {
	rest       *resty.Client
	apiKey     string
	apiSecret  string
	apiVersion string

	// baseURL 覆盖 https://{shop} 前缀，仅测试时使用
	baseURL string
}

// NewClient 创建客户端
func NewClient(apiKey, apiSecret, apiVersion string) *Client {
	rest := resty.New()
	rest.SetTimeout(30 * time.Second)

	return &Client{
		rest:       rest,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		apiVersion: apiVersion,
	}
}

// SetBaseURL 指定固定的服务地址 (测试注入 httptest.Server 用)
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

func (c *Client) shopURL(shopDomain string) string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return "https://" + shopDomain
}

// ==================== OAuth ====================

// ExchangeToken 用授权码换取永久 access token
// POST https://{shop}/admin/oauth/access_token
func (c *Client) ExchangeToken(ctx context.Context, shopDomain, code string) (string, error) {
	if c.apiKey == "" || c.apiSecret == "" {
		return "", &apperrors.ConfigurationError{Key: "SHOPIFY_API_KEY/SHOPIFY_API_SECRET"}
	}

	var tokenResp TokenResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"client_id":     c.apiKey,
			"client_secret": c.apiSecret,
			"code":          code,
		}).
		SetResult(&tokenResp).
		Post(c.shopURL(shopDomain) + "/admin/oauth/access_token")

	if err != nil {
		return "", fmt.Errorf("token 请求网络错误: %w", err)
	}
	if resp.IsError() {
		// 响应体可能含敏感回显，只记状态码
		return "", &apperrors.UpstreamAuthError{StatusCode: resp.StatusCode()}
	}
	if tokenResp.AccessToken == "" {
		return "", &apperrors.UpstreamAuthError{StatusCode: resp.StatusCode(), Body: "响应缺少 access_token"}
	}

	return tokenResp.AccessToken, nil
}

// GetShopInfo 用新 token 拉取店铺档案
func (c *Client) GetShopInfo(ctx context.Context, shopDomain, accessToken string) (*ShopInfo, error) {
	var result shopResp
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("X-Shopify-Access-Token", accessToken).
		SetResult(&result).
		Get(fmt.Sprintf("%s/admin/api/%s/shop.json", c.shopURL(shopDomain), c.apiVersion))

	if err != nil {
		return nil, fmt.Errorf("拉取店铺档案网络错误: %w", err)
	}
	if resp.IsError() {
		return nil, &apperrors.UpstreamFetchError{StatusCode: resp.StatusCode()}
	}

	return &result.Shop, nil
}

// ==================== 目录分页 ====================

// ProductPager 商品目录的惰性分页器
// 每次 Next 拉取一页 (最多 PageLimit 条)，并从 Link 响应头解析下一页游标
type ProductPager struct {
	client      *Client
	shopDomain  string
	accessToken string

	pageInfo string
	hasNext  bool
}

// NewProductPager 创建分页器，游标从第一页开始
func (c *Client) NewProductPager(shopDomain, accessToken string) *ProductPager {
	return &ProductPager{
		client:      c,
		shopDomain:  shopDomain,
		accessToken: accessToken,
		hasNext:     true,
	}
}

// HasNext 是否还有下一页
func (p *ProductPager) HasNext() bool {
	return p.hasNext
}

// Next 拉取当前游标指向的一页商品
// 网络错误或非 2xx 一律返回 UpstreamFetchError，由调用方决定整轮同步如何收场
func (p *ProductPager) Next(ctx context.Context) ([]Product, error) {
	url := fmt.Sprintf("%s/admin/api/%s/products.json?limit=%d",
		p.client.shopURL(p.shopDomain), p.client.apiVersion, PageLimit)
	if p.pageInfo != "" {
		url += "&page_info=" + p.pageInfo
	}

	var result productsResp
	resp, err := p.client.rest.R().
		SetContext(ctx).
		SetHeader("X-Shopify-Access-Token", p.accessToken).
		SetResult(&result).
		Get(url)

	if err != nil {
		p.hasNext = false
		return nil, &apperrors.UpstreamFetchError{Err: err}
	}
	if resp.IsError() {
		p.hasNext = false
		return nil, &apperrors.UpstreamFetchError{StatusCode: resp.StatusCode()}
	}

	// 解析 Link 头，更新游标
	p.pageInfo = parseNextPageInfo(resp.Header().Get("Link"))
	p.hasNext = p.pageInfo != ""

	return result.Products, nil
}

// parseNextPageInfo 从 Link 头提取 rel="next" 的 page_info，没有则返回空串
func parseNextPageInfo(linkHeader string) string {
	if linkHeader == "" {
		return ""
	}
	m := nextPageRe.FindStringSubmatch(linkHeader)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}
