package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"shopify_dev_v1_202608/internal/config"
	"shopify_dev_v1_202608/internal/model"
	"shopify_dev_v1_202608/internal/repository"
	"shopify_dev_v1_202608/pkg/apperrors"
	"shopify_dev_v1_202608/pkg/shopifyapi"
	"shopify_dev_v1_202608/pkg/utils"
)

// AuthService 授权服务：换 token + 店铺档案入库
type AuthService struct {
	shopRepo repository.ShopRepository
	client   *shopifyapi.Client
	cfg      config.ShopifyConfig
}

// NewAuthService 工厂方法
func NewAuthService(shopRepo repository.ShopRepository, client *shopifyapi.Client, cfg config.ShopifyConfig) *AuthService {
	return &AuthService{
		shopRepo: shopRepo,
		client:   client,
		cfg:      cfg,
	}
}

// GenerateInstallURL 生成 Shopify 授权跳转链接
// state 随机串缓存在进程内，回调时校验防 CSRF
func (s *AuthService) GenerateInstallURL(ctx context.Context, shopDomain string) (string, error) {
	if shopDomain == "" {
		return "", &apperrors.ValidationError{Message: "缺少 shop 参数"}
	}
	if s.cfg.ApiKey == "" {
		return "", &apperrors.ConfigurationError{Key: "SHOPIFY_API_KEY"}
	}

	state, err := utils.GenerateRandomString(16)
	if err != nil {
		return "", fmt.Errorf("生成 state 失败: %w", err)
	}
	utils.SetCache(state, shopDomain, 0)

	redirectURI := s.cfg.AppURL + "/api/auth/callback"
	installURL := fmt.Sprintf(
		"https://%s/admin/oauth/authorize?client_id=%s&scope=%s&redirect_uri=%s&state=%s",
		shopDomain,
		s.cfg.ApiKey,
		url.QueryEscape(s.cfg.Scopes),
		url.QueryEscape(redirectURI),
		state,
	)
	return installURL, nil
}

// HandleCallback 凭授权码换取 access token 并落库
// state 为空时跳过校验 (兼容旧版前端直接 POST {shop, code} 的调用方式)
func (s *AuthService) HandleCallback(ctx context.Context, shopDomain, code, state string) (*model.Shop, error) {
	if shopDomain == "" || code == "" {
		return nil, &apperrors.ValidationError{Message: "缺少 shop 或 code 参数"}
	}

	if state != "" {
		cachedDomain, ok := utils.GetCache(state)
		if !ok || cachedDomain != shopDomain {
			return nil, &apperrors.ValidationError{Message: "state 无效或已过期，请重新发起授权"}
		}
		utils.DeleteCache(state)
	}

	// 1. 换取 token
	accessToken, err := s.client.ExchangeToken(ctx, shopDomain, code)
	if err != nil {
		return nil, err
	}

	// 2. 拉取店铺档案
	// 档案拉取失败不致命，token 已到手，店铺行照常落库，档案等下次同步补齐
	info, err := s.client.GetShopInfo(ctx, shopDomain, accessToken)
	if err != nil {
		log.Printf("[AuthService] 拉取店铺档案失败 shop=%s: %v", shopDomain, err)
		info = &shopifyapi.ShopInfo{}
	}

	// 3. 按域名 upsert 店铺
	now := time.Now()
	shop := &model.Shop{
		ShopDomain:  shopDomain,
		AccessToken: accessToken,
		ShopName:    info.Name,
		ShopEmail:   info.Email,
		ShopOwner:   info.ShopOwner,
		Currency:    info.Currency,
		Timezone:    info.Timezone,
		PlanName:    info.PlanName,
		IsActive:    true,
		LastSyncAt:  &now,
	}
	if err := s.shopRepo.Upsert(ctx, shop); err != nil {
		return nil, &apperrors.PersistenceError{Op: "店铺", Err: err}
	}

	log.Printf("[AuthService] 店铺授权成功 shop=%s", shopDomain)
	return shop, nil
}
