package repository

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopify_dev_v1_202608/internal/model"
)

// ==================== 测试辅助 ====================

func setupRepoTestDB(t *testing.T) *gorm.DB {
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

// ==================== 单元测试 ====================

func TestShopRepo_UpsertIdempotent(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewShopRepository(db)
	ctx := context.Background()

	now := time.Now()
	first := &model.Shop{
		ShopDomain:  "demo.myshopify.com",
		AccessToken: "shpat_old",
		ShopName:    "Demo",
		IsActive:    true,
		LastSyncAt:  &now,
	}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("首次 upsert 失败: %v", err)
	}
	if first.ID == 0 {
		t.Fatalf("首次 upsert 后 ID 未回填")
	}

	// 同域名重复授权，应覆盖字段而不是新增行
	second := &model.Shop{
		ShopDomain:  "demo.myshopify.com",
		AccessToken: "shpat_new",
		ShopName:    "Demo Renamed",
		IsActive:    true,
	}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("二次 upsert 失败: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("二次 upsert 行 ID = %d, want %d", second.ID, first.ID)
	}

	var count int64
	db.Model(&model.Shop{}).Count(&count)
	if count != 1 {
		t.Errorf("店铺行数 = %d, want 1", count)
	}

	found, err := repo.GetByDomain(ctx, "demo.myshopify.com")
	if err != nil {
		t.Fatalf("按域名查询失败: %v", err)
	}
	if found.AccessToken != "shpat_new" {
		t.Errorf("access_token 未更新: %s", found.AccessToken)
	}
	if found.ShopName != "Demo Renamed" {
		t.Errorf("shop_name 未更新: %s", found.ShopName)
	}
}

func TestShopRepo_GetByDomain_NotFound(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewShopRepository(db)

	_, err := repo.GetByDomain(context.Background(), "unknown.myshopify.com")
	if err != gorm.ErrRecordNotFound {
		t.Errorf("错误 = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestShopRepo_UpdateLastSyncAt(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewShopRepository(db)
	ctx := context.Background()

	shop := &model.Shop{ShopDomain: "demo.myshopify.com", IsActive: true}
	if err := repo.Upsert(ctx, shop); err != nil {
		t.Fatalf("upsert 失败: %v", err)
	}

	syncTime := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	if err := repo.UpdateLastSyncAt(ctx, shop.ID, syncTime); err != nil {
		t.Fatalf("更新同步时间失败: %v", err)
	}

	found, _ := repo.GetByID(ctx, shop.ID)
	if found.LastSyncAt == nil || !found.LastSyncAt.Equal(syncTime) {
		t.Errorf("last_sync_at = %v, want %v", found.LastSyncAt, syncTime)
	}
}

func TestShopRepo_List_OnlyActive(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewShopRepository(db)
	ctx := context.Background()

	repo.Upsert(ctx, &model.Shop{ShopDomain: "a.myshopify.com", IsActive: true})
	repo.Upsert(ctx, &model.Shop{ShopDomain: "b.myshopify.com", IsActive: false})
	repo.Upsert(ctx, &model.Shop{ShopDomain: "c.myshopify.com", IsActive: true})

	shops, total, err := repo.List(ctx, ShopFilter{OnlyActive: true})
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if total != 2 || len(shops) != 2 {
		t.Errorf("活跃店铺数 = %d (total %d), want 2", len(shops), total)
	}

	_, total, _ = repo.List(ctx, ShopFilter{})
	if total != 3 {
		t.Errorf("全部店铺数 = %d, want 3", total)
	}
}
