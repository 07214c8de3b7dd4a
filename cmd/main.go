package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopify_dev_v1_202608/internal/config"
	"shopify_dev_v1_202608/internal/controller"
	"shopify_dev_v1_202608/internal/model"
	"shopify_dev_v1_202608/internal/repository"
	"shopify_dev_v1_202608/internal/router"
	"shopify_dev_v1_202608/internal/service"
	"shopify_dev_v1_202608/internal/task"
	"shopify_dev_v1_202608/pkg/aigateway"
	"shopify_dev_v1_202608/pkg/database"
	"shopify_dev_v1_202608/pkg/shopifyapi"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @title Shopify Sheet ERP API
// @version 1.0
// @description Shopify 店铺接入、商品目录同步与表格 AI 助手后端
// @BasePath /
func main() {
	// 1. 加载配置
	cfg := config.Load()

	// 2. 初始化数据库
	db := initDatabase(cfg)

	// 3. 初始化依赖
	deps := initDependencies(db, cfg)

	// 4. 启动定时任务
	syncTask := initTasks(deps)
	defer syncTask.Stop()

	// 5. 初始化路由
	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	router.InitRoutes(r,
		deps.Controllers.Auth,
		deps.Controllers.Sync,
		deps.Controllers.AI,
		deps.Controllers.Shop,
		deps.Controllers.Product,
	)

	// 6. 启动服务
	startServer(r, cfg.Server.Port)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Shop    repository.ShopRepository
	Product repository.ProductRepository
	Sync    repository.SyncOperationRepository
	History repository.ChangeHistoryRepository
}

// Services 服务集合
type Services struct {
	Auth    *service.AuthService
	Sync    *service.SyncService
	AI      *service.AIService
	Shop    *service.ShopService
	Product *service.ProductService
}

// Controllers 控制器集合
type Controllers struct {
	Auth    *controller.AuthController
	Sync    *controller.SyncController
	AI      *controller.AIController
	Shop    *controller.ShopController
	Product *controller.ProductController
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) *gorm.DB {
	return database.InitDB(
		cfg.Database.DSN(),
		cfg.Server.Mode == "debug",
		&model.Shop{},
		&model.Product{}, &model.ProductVariant{}, &model.ProductMetafield{},
		&model.SyncOperation{},
		&model.ChangeHistory{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB, cfg *config.Config) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		Shop:    repository.NewShopRepository(db),
		Product: repository.NewProductRepository(db),
		Sync:    repository.NewSyncOperationRepository(db),
		History: repository.NewChangeHistoryRepository(db),
	}

	// -------- 外部客户端 --------
	shopifyClient := shopifyapi.NewClient(cfg.Shopify.ApiKey, cfg.Shopify.ApiSecret, cfg.Shopify.ApiVersion)
	aiClient := aigateway.NewClient(cfg.AIGateway.ApiKey, cfg.AIGateway.BaseURL)

	// -------- 业务服务 --------
	services := &Services{
		Auth:    service.NewAuthService(repos.Shop, shopifyClient, cfg.Shopify),
		Sync:    service.NewSyncService(repos.Shop, repos.Product, repos.Sync, repos.History, shopifyClient),
		AI:      service.NewAIService(aiClient, cfg.AIGateway),
		Shop:    service.NewShopService(repos.Shop, repos.Product),
		Product: service.NewProductService(repos.Product, repos.History),
	}

	// -------- Controller 层 --------
	controllers := &Controllers{
		Auth:    controller.NewAuthController(services.Auth),
		Sync:    controller.NewSyncController(services.Sync, repos.Sync),
		AI:      controller.NewAIController(services.AI),
		Shop:    controller.NewShopController(services.Shop),
		Product: controller.NewProductController(services.Product),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) *task.CatalogSyncTask {
	syncTask := task.NewCatalogSyncTask(
		deps.Repos.Shop,
		deps.Repos.Sync,
		deps.Services.Sync,
	)
	syncTask.Start()

	log.Println("定时任务已启动")
	return syncTask
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine, port string) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}
