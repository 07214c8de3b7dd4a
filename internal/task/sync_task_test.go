package task

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopify_dev_v1_202608/internal/middleware"
	"shopify_dev_v1_202608/internal/model"
	"shopify_dev_v1_202608/internal/repository"
	"shopify_dev_v1_202608/internal/service"
	"shopify_dev_v1_202608/pkg/shopifyapi"
)

// ==================== 测试辅助 ====================

func setupTaskTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	err = db.AutoMigrate(
		&model.Shop{},
		&model.Product{}, &model.ProductVariant{}, &model.ProductMetafield{},
		&model.SyncOperation{},
		&model.ChangeHistory{},
	)
	if err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return db
}

func newTaskTestEnv(t *testing.T, shopifyURL string) (*CatalogSyncTask, *gorm.DB) {
	db := setupTaskTestDB(t)

	shopRepo := repository.NewShopRepository(db)
	productRepo := repository.NewProductRepository(db)
	syncRepo := repository.NewSyncOperationRepository(db)
	historyRepo := repository.NewChangeHistoryRepository(db)

	client := shopifyapi.NewClient("key", "secret", "2024-01")
	client.SetBaseURL(shopifyURL)

	svc := service.NewSyncService(shopRepo, productRepo, syncRepo, historyRepo, client)
	task := NewCatalogSyncTask(shopRepo, syncRepo, svc)
	task.SetConcurrency(1, 0)
	return task, db
}

func seedTaskShop(t *testing.T, db *gorm.DB, domain string) *model.Shop {
	shop := &model.Shop{ShopDomain: domain, AccessToken: "shpat_test", IsActive: true}
	if err := repository.NewShopRepository(db).Upsert(context.Background(), shop); err != nil {
		t.Fatalf("准备店铺失败: %v", err)
	}
	return shop
}

func taskCatalog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"products":[
			{"id":401,"title":"Widget","handle":"widget","status":"active","tags":"a",
			 "variants":[{"id":601,"product_id":401,"title":"Default","sku":"W-1","price":"5.00"}]}
		]}`)
	}
}

// ==================== 单元测试 ====================

func TestCatalogSyncTask_SyncAllShops(t *testing.T) {
	srv := httptest.NewServer(taskCatalog())
	defer srv.Close()

	task, db := newTaskTestEnv(t, srv.URL)
	shop := seedTaskShop(t, db, "task-sync-one.myshopify.com")

	task.syncAllShops(context.Background())

	var ops []model.SyncOperation
	db.Where("shop_id = ?", shop.ID).Find(&ops)
	if len(ops) != 1 {
		t.Fatalf("同步操作行数 = %d, want 1", len(ops))
	}
	if ops[0].OperationType != model.SyncTypeScheduled {
		t.Errorf("操作类型 = %s, want scheduled_sync", ops[0].OperationType)
	}
	if ops[0].Status != model.SyncStatusCompleted {
		t.Errorf("操作状态 = %s, want completed", ops[0].Status)
	}
}

func TestCatalogSyncTask_SkipsRecentlyManualSynced(t *testing.T) {
	srv := httptest.NewServer(taskCatalog())
	defer srv.Close()

	task, db := newTaskTestEnv(t, srv.URL)
	recent := seedTaskShop(t, db, "task-sync-recent.myshopify.com")
	due := seedTaskShop(t, db, "task-sync-due.myshopify.com")

	// 模拟 recent 店铺刚触发过手工全量同步
	key := middleware.DomainSyncKey(recent.ShopDomain, model.SyncTypeFull)
	middleware.GetCooldown().Check(key, middleware.CooldownInterval(model.SyncTypeFull))
	t.Cleanup(func() { middleware.GetCooldown().Reset(key) })

	task.syncAllShops(context.Background())

	var recentOps, dueOps int64
	db.Model(&model.SyncOperation{}).Where("shop_id = ?", recent.ID).Count(&recentOps)
	db.Model(&model.SyncOperation{}).Where("shop_id = ?", due.ID).Count(&dueOps)
	if recentOps != 0 {
		t.Errorf("冷却中的店铺不应被定时任务同步, 操作行数 = %d", recentOps)
	}
	if dueOps != 1 {
		t.Errorf("未冷却店铺操作行数 = %d, want 1", dueOps)
	}
}

func TestCatalogSyncTask_ReapStaleOperations(t *testing.T) {
	task, db := newTaskTestEnv(t, "http://unused.invalid")
	shop := seedTaskShop(t, db, "task-sync-stale.myshopify.com")

	old := time.Now().Add(-3 * time.Hour)
	stale := &model.SyncOperation{
		ShopID:        shop.ID,
		OperationType: model.SyncTypeScheduled,
		Status:        model.SyncStatusInProgress,
		StartedAt:     &old,
	}
	if err := db.Create(stale).Error; err != nil {
		t.Fatalf("准备卡死操作失败: %v", err)
	}

	task.reapStaleOperations(context.Background())

	var got model.SyncOperation
	db.First(&got, stale.ID)
	if got.Status != model.SyncStatusFailed {
		t.Errorf("操作状态 = %s, want failed", got.Status)
	}
	if got.ErrorMessage == "" {
		t.Errorf("error_message 为空")
	}
}
