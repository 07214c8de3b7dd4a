package middleware

import (
	"fmt"
	"sync"
	"time"

	"shopify_dev_v1_202608/internal/model"
)

// ==================== 同步冷却器 ====================

// SyncCooldown 同步冷却器
// 防止前端频繁触发全量同步导致 Shopify API 限流
type SyncCooldown struct {
	entries sync.Map // key -> *cooldownEntry
}

type cooldownEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

var globalCooldown = &SyncCooldown{}

// GetCooldown 获取全局冷却器
func GetCooldown() *SyncCooldown {
	return globalCooldown
}

// ==================== 冷却检查 ====================

// CooldownResult 检查结果
type CooldownResult struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Check 检查是否允许执行，允许时同步更新最后执行时间
func (cd *SyncCooldown) Check(key string, interval time.Duration) CooldownResult {
	actual, _ := cd.entries.LoadOrStore(key, &cooldownEntry{})
	entry := actual.(*cooldownEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(entry.lastTime)
	if elapsed < interval {
		return CooldownResult{Allowed: false, RetryAfter: interval - elapsed}
	}

	entry.lastTime = now
	return CooldownResult{Allowed: true}
}

// CheckOnly 仅检查，不更新时间
func (cd *SyncCooldown) CheckOnly(key string, interval time.Duration) CooldownResult {
	actual, ok := cd.entries.Load(key)
	if !ok {
		return CooldownResult{Allowed: true}
	}

	entry := actual.(*cooldownEntry)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	elapsed := time.Since(entry.lastTime)
	if elapsed < interval {
		return CooldownResult{Allowed: false, RetryAfter: interval - elapsed}
	}
	return CooldownResult{Allowed: true}
}

// Reset 清除指定 key 的冷却，同步失败后调用可立即重试
func (cd *SyncCooldown) Reset(key string) {
	cd.entries.Delete(key)
}

// ==================== Key 生成工具 ====================

// DomainSyncKey 生成店铺域名维度的冷却 Key
func DomainSyncKey(shopDomain, opType string) string {
	return fmt.Sprintf("domain:%s:%s", shopDomain, opType)
}

// ==================== 默认冷却间隔 ====================

var defaultCooldowns = map[string]time.Duration{
	model.SyncTypeFull:      5 * time.Minute,
	model.SyncTypeScheduled: time.Minute,
}

// CooldownInterval 获取同步类型的默认冷却间隔
func CooldownInterval(opType string) time.Duration {
	if interval, ok := defaultCooldowns[opType]; ok {
		return interval
	}
	return 5 * time.Minute
}
