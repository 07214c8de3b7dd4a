package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// ==================== 配置结构 ====================

// Config 全局配置
// 启动时加载一次，按需注入到各个 service，避免在业务代码里散落 os.Getenv
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Shopify   ShopifyConfig
	AIGateway AIGatewayConfig
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port string
	Mode string // gin 运行模式: debug / release
}

// DatabaseConfig Postgres 连接配置
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN 拼接 gorm postgres 连接串
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.DBName, c.Port, c.SSLMode)
}

// ShopifyConfig Shopify App 凭证
// ApiSecret 属于敏感信息，禁止打印到日志
type ShopifyConfig struct {
	ApiKey     string
	ApiSecret  string
	ApiVersion string
	Scopes     string
	AppURL     string // 授权回调地址前缀
}

// AIGatewayConfig AI 网关配置
type AIGatewayConfig struct {
	ApiKey  string
	BaseURL string
	Model   string
}

// ==================== 加载 ====================

// Load 从环境变量读取配置
// 支持 .env 文件 (存在则读取，不存在不报错)
func Load() *Config {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()
	v.AutomaticEnv()

	// 默认值
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "shopify_admin")
	v.SetDefault("DB_NAME", "shopify_sheet")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SHOPIFY_API_VERSION", "2024-01")
	v.SetDefault("SHOPIFY_SCOPES", "read_products,write_products")
	v.SetDefault("AI_GATEWAY_URL", "https://ai.gateway.lovable.dev")
	v.SetDefault("AI_MODEL", "google/gemini-2.5-flash")

	return &Config{
		Server: ServerConfig{
			Port: v.GetString("SERVER_PORT"),
			Mode: v.GetString("GIN_MODE"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Shopify: ShopifyConfig{
			ApiKey:     v.GetString("SHOPIFY_API_KEY"),
			ApiSecret:  v.GetString("SHOPIFY_API_SECRET"),
			ApiVersion: v.GetString("SHOPIFY_API_VERSION"),
			Scopes:     v.GetString("SHOPIFY_SCOPES"),
			AppURL:     v.GetString("APP_URL"),
		},
		AIGateway: AIGatewayConfig{
			ApiKey:  v.GetString("AI_GATEWAY_KEY"),
			BaseURL: v.GetString("AI_GATEWAY_URL"),
			Model:   v.GetString("AI_MODEL"),
		},
	}
}
