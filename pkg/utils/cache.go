package utils

import (
	"sync"
	"time"
)

// OAuth state 等短生命周期键值的进程内缓存
// 使用 sync.Map 保证并发安全
var memoryCache sync.Map

// cacheItem 内部结构，包含值和过期时间
type cacheItem struct {
	value      string
	expiration int64
}

// SetCache 设置缓存
// key: state 随机串
// value: shop_domain
// ttl: 过期时长，0 则默认 10 分钟 (足够完成授权流程)
func SetCache(key, value string, ttl time.Duration) {
	if ttl == 0 {
		ttl = 10 * time.Minute
	}

	memoryCache.Store(key, cacheItem{
		value:      value,
		expiration: time.Now().Add(ttl).UnixNano(),
	})
}

// GetCache 获取缓存并验证是否过期
func GetCache(key string) (string, bool) {
	val, ok := memoryCache.Load(key)
	if !ok {
		return "", false
	}

	item := val.(cacheItem)

	// 过期则懒删除
	if time.Now().UnixNano() > item.expiration {
		memoryCache.Delete(key)
		return "", false
	}

	return item.value, true
}

// DeleteCache 删除缓存 (用完即焚)
func DeleteCache(key string) {
	memoryCache.Delete(key)
}
