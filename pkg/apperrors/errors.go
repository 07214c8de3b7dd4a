package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ==================== 错误类型定义 ====================

// ValidationError 请求参数缺失/非法
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "参数校验失败"
}

// ConfigurationError 服务端凭证缺失 (如 Shopify App Secret 未配置)
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("服务端配置缺失: %s", e.Key)
}

// NotFoundError 资源不存在
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s 不存在: %s", e.Resource, e.Key)
}

// UpstreamAuthError Shopify Token 换取被拒绝 (非 2xx)
type UpstreamAuthError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamAuthError) Error() string {
	return fmt.Sprintf("token 换取被拒绝: status %d", e.StatusCode)
}

// UpstreamFetchError 拉取远端目录页失败 (网络错误或非 2xx)
type UpstreamFetchError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamFetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("拉取商品失败: %v", e.Err)
	}
	return fmt.Sprintf("拉取商品失败: status %d", e.StatusCode)
}

func (e *UpstreamFetchError) Unwrap() error { return e.Err }

// UpstreamError AI 网关等上游的其它非 2xx 响应
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("上游服务异常 [%d]", e.StatusCode)
}

// RateLimitedError AI 网关返回 429
type RateLimitedError struct{}

func (e *RateLimitedError) Error() string {
	return "请求过于频繁，请稍后再试"
}

// PaymentRequiredError AI 网关返回 402
type PaymentRequiredError struct{}

func (e *PaymentRequiredError) Error() string {
	return "额度不足，请先为工作区充值"
}

// PersistenceError 入库失败
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s 入库失败: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ==================== HTTP 映射 ====================

// HTTPStatus 在 controller 边界把错误类型映射为状态码
// 未识别的错误一律 500
func HTTPStatus(err error) int {
	var (
		validation  *ValidationError
		notFound    *NotFoundError
		authErr     *UpstreamAuthError
		rateLimited *RateLimitedError
		payment     *PaymentRequiredError
	)

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &authErr):
		// 前端按 400 处理换 token 失败，保持接口兼容
		return http.StatusBadRequest
	case errors.As(err, &rateLimited):
		return http.StatusTooManyRequests
	case errors.As(err, &payment):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
