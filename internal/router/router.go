package router

import (
	"net/http"

	"shopify_dev_v1_202608/internal/controller"
	"shopify_dev_v1_202608/internal/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "shopify_dev_v1_202608/docs"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	authCtrl *controller.AuthController,
	syncCtrl *controller.SyncController,
	aiCtrl *controller.AIController,
	shopCtrl *controller.ShopController,
	productCtrl *controller.ProductController) {
	// 1. 全局中间件
	r.Use(middleware.CORS())

	// 2. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 3. 健康检查
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 4. API 路由组
	api := r.Group("/api")
	{
		// auth 授权组
		auth := api.Group("/auth")
		{
			// GET /api/auth/login
			auth.GET("/login", authCtrl.Login)

			// POST /api/auth/callback
			auth.POST("/callback", authCtrl.Callback)
		}

		// sync 同步组，手动同步带冷却
		api.POST("/sync", middleware.SyncCooldownGuard(0), syncCtrl.Sync)
		api.GET("/sync/operations", syncCtrl.ListOperations)

		// ai 智能组
		api.POST("/ai/process", aiCtrl.ProcessPrompt)

		// shop 店铺管理
		shops := api.Group("/shops")
		{
			shops.GET("", shopCtrl.ListShops)
			shops.GET("/:id", shopCtrl.GetShop)
		}

		// product 商品组
		products := api.Group("/products")
		{
			products.GET("", productCtrl.ListProducts)
			products.GET("/:id", productCtrl.GetProduct)
		}

		// 变更历史
		api.GET("/history", productCtrl.ListHistory)
	}
}
