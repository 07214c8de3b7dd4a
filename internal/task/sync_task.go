package task

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"shopify_dev_v1_202608/internal/middleware"
	"shopify_dev_v1_202608/internal/model"
	"shopify_dev_v1_202608/internal/repository"
	"shopify_dev_v1_202608/internal/service"
)

// ==================== CatalogSyncTask 目录同步任务 ====================

// CatalogSyncTask 商品目录定时同步任务
// 同步策略：
//   - 定时同步：每 6 小时，遍历所有活跃店铺
//   - 僵尸清理：每 30 分钟，将超过 2 小时仍在 in_progress 的操作记为失败
type CatalogSyncTask struct {
	shopRepo    repository.ShopRepository
	syncRepo    repository.SyncOperationRepository
	syncService *service.SyncService
	cron        *cron.Cron

	// 并发控制
	concurrencyLimit int
	sleepTime        time.Duration
	staleAfter       time.Duration
}

// NewCatalogSyncTask 创建目录同步任务
func NewCatalogSyncTask(
	shopRepo repository.ShopRepository,
	syncRepo repository.SyncOperationRepository,
	syncService *service.SyncService,
) *CatalogSyncTask {
	return &CatalogSyncTask{
		shopRepo:         shopRepo,
		syncRepo:         syncRepo,
		syncService:      syncService,
		cron:             cron.New(cron.WithSeconds()),
		concurrencyLimit: 3,
		sleepTime:        300 * time.Millisecond,
		staleAfter:       2 * time.Hour,
	}
}

// SetConcurrency 设置并发参数
func (t *CatalogSyncTask) SetConcurrency(limit int, sleep time.Duration) {
	t.concurrencyLimit = limit
	t.sleepTime = sleep
}

// Start 启动定时任务
func (t *CatalogSyncTask) Start() {
	// 定时同步：每 6 小时
	_, _ = t.cron.AddFunc("0 0 */6 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
		defer cancel()
		t.syncAllShops(ctx)
	})

	// 僵尸清理：每 30 分钟
	_, _ = t.cron.AddFunc("0 */30 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.reapStaleOperations(ctx)
	})

	t.cron.Start()
	log.Println("[CatalogSyncTask] 已启动 (同步每6小时/僵尸清理每30分钟)")
}

// Stop 停止任务
func (t *CatalogSyncTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	log.Println("[CatalogSyncTask] 已停止")
}

// syncAllShops 同步所有活跃店铺的商品目录
func (t *CatalogSyncTask) syncAllShops(ctx context.Context) {
	log.Println("[CatalogSyncTask] 开始定时目录同步...")

	shops, _, err := t.shopRepo.List(ctx, repository.ShopFilter{
		OnlyActive: true,
		PageSize:   1000,
	})
	if err != nil {
		log.Printf("[CatalogSyncTask] 获取店铺列表失败: %v", err)
		return
	}

	if len(shops) == 0 {
		log.Println("[CatalogSyncTask] 无活跃店铺需要同步")
		return
	}

	sem := make(chan struct{}, t.concurrencyLimit)
	var wg sync.WaitGroup

	var (
		successCount int
		failCount    int
		skipCount    int
		totalSynced  int
		mu           sync.Mutex
	)

	log.Printf("[CatalogSyncTask] 开始处理 %d 个店铺", len(shops))

	fullInterval := middleware.CooldownInterval(model.SyncTypeFull)
	for i := range shops {
		shop := shops[i]

		// 手工全量同步刚跑过的店铺本轮跳过，只探测冷却不消耗窗口
		key := middleware.DomainSyncKey(shop.ShopDomain, model.SyncTypeFull)
		if res := middleware.GetCooldown().CheckOnly(key, fullInterval); !res.Allowed {
			log.Printf("[CatalogSyncTask] 店铺 %s 刚完成手工同步，跳过 (剩余 %s)",
				shop.ShopDomain, res.RetryAfter.Round(time.Second))
			skipCount++
			continue
		}

		select {
		case <-ctx.Done():
			log.Println("[CatalogSyncTask] 任务超时停止")
			wg.Wait()
			return
		default:
		}

		sem <- struct{}{}
		wg.Add(1)
		time.Sleep(t.sleepTime)

		go func(domain string) {
			defer wg.Done()
			defer func() { <-sem }()

			result, err := t.syncService.SyncProductsScheduled(ctx, domain)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				log.Printf("[CatalogSyncTask] 店铺 %s 同步失败: %v", domain, err)
				failCount++
			} else {
				successCount++
				totalSynced += result.ProductsSynced
				if result.ProductsSynced > 0 {
					log.Printf("[CatalogSyncTask] 店铺 %s: 同步 %d/%d", domain, result.ProductsSynced, result.TotalProducts)
				}
			}
		}(shop.ShopDomain)
	}

	wg.Wait()
	log.Printf("[CatalogSyncTask] 定时同步完成: 店铺成功 %d, 失败 %d, 跳过 %d, 商品 %d",
		successCount, failCount, skipCount, totalSynced)
}

// reapStaleOperations 清理卡死的同步操作
// 进程崩溃会留下永远 in_progress 的记录，超时一律记为失败
func (t *CatalogSyncTask) reapStaleOperations(ctx context.Context) {
	deadline := time.Now().Add(-t.staleAfter)
	count, err := t.syncRepo.FailStale(ctx, deadline, "operation timed out")
	if err != nil {
		log.Printf("[CatalogSyncTask] 僵尸清理失败: %v", err)
		return
	}
	if count > 0 {
		log.Printf("[CatalogSyncTask] 清理了 %d 条卡死的同步操作", count)
	}
}
