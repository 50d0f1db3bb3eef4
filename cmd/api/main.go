package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/bedoax/bookstore/docs" // swag生成的API文档
	appaccount "github.com/bedoax/bookstore/internal/application/account"
	appbook "github.com/bedoax/bookstore/internal/application/book"
	"github.com/bedoax/bookstore/internal/application/catalog"
	apporder "github.com/bedoax/bookstore/internal/application/order"
	"github.com/bedoax/bookstore/internal/application/purchase"
	appreview "github.com/bedoax/bookstore/internal/application/review"
	"github.com/bedoax/bookstore/internal/domain/account"
	"github.com/bedoax/bookstore/internal/domain/book"
	"github.com/bedoax/bookstore/internal/infrastructure/config"
	"github.com/bedoax/bookstore/internal/infrastructure/persistence/mysql"
	"github.com/bedoax/bookstore/internal/infrastructure/persistence/redis"
	"github.com/bedoax/bookstore/internal/interface/http/handler"
	"github.com/bedoax/bookstore/internal/interface/http/middleware"
	"github.com/bedoax/bookstore/pkg/jwt"
	"github.com/bedoax/bookstore/pkg/metrics"
	"github.com/bedoax/bookstore/pkg/response"
)

// @title           网上书店API
// @version         1.0
// @description     图书销售后端服务。核心能力：事务性购书（锁库存、扣余额、落台账）、图书目录管理、客户账户
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization

// main 主程序入口
// 说明：手动依赖注入(wire.go提供等价的Wire注入器,运行wire gen生成)
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 3. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 4. 初始化Prometheus指标
	metrics.InitMetrics()

	// 5. 依赖注入（手动组装）
	// 依赖链：Repository ← Service ← UseCase ← Handler

	// 基础设施层
	customerRepo := mysql.NewCustomerRepository(db)
	adminRepo := mysql.NewAdminRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	authorRepo := mysql.NewAuthorRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	reviewRepo := mysql.NewReviewRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	bookCache := redis.NewBookCache(redisClient, cfg.Cache.BookDetailTTL, cfg.Cache.BookListTTL)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	accountService := account.NewService(customerRepo, adminRepo)
	bookService := book.NewService(bookRepo)

	// 引导管理员账号(不存在则创建)
	if err := accountService.EnsureAdmin(context.Background(), cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.Name); err != nil {
		log.Fatalf("初始化管理员账号失败: %v", err)
	}

	// 应用层
	registerUseCase := appaccount.NewRegisterCustomerUseCase(accountService)
	loginUseCase := appaccount.NewLoginUseCase(accountService, jwtManager, sessionStore, cfg.JWT.RefreshTokenExpire)
	logoutUseCase := appaccount.NewLogoutUseCase(sessionStore, cfg.JWT.AccessTokenExpire)
	profileUseCase := appaccount.NewProfileUseCase(customerRepo)
	browseUseCase := appbook.NewBrowseBooksUseCase(bookService, bookCache)
	manageUseCase := appbook.NewManageBooksUseCase(bookService, bookCache)
	catalogUseCase := catalog.NewCatalogUseCase(authorRepo, categoryRepo)
	reviewUseCase := appreview.NewReviewUseCase(reviewRepo, bookRepo)
	purchaseUseCase := purchase.NewExecutePurchaseUseCase(customerRepo, bookRepo, orderRepo, txManager)
	historyUseCase := apporder.NewHistoryUseCase(orderRepo)

	// 接口层
	accountHandler := handler.NewAccountHandler(registerUseCase, loginUseCase, logoutUseCase, profileUseCase, jwtManager)
	bookHandler := handler.NewBookHandler(browseUseCase, manageUseCase)
	catalogHandler := handler.NewCatalogHandler(catalogUseCase)
	reviewHandler := handler.NewReviewHandler(reviewUseCase)
	purchaseHandler := handler.NewPurchaseHandler(purchaseUseCase, historyUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 6. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery(), metrics.GinMiddleware())

	// 7. 注册路由
	registerRoutes(r, accountHandler, bookHandler, catalogHandler, reviewHandler, purchaseHandler, authMiddleware)

	// 8. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   API文档:  http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("   监控指标: http://localhost%s/metrics\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
// 权限设计:
// - 公开:注册、登录、图书/作者/分类/评论浏览
// - 客户:购书、订单、个人资料、发表评论
// - 管理员:图书/作者/分类管理、客户管理、回复评论
func registerRoutes(
	r *gin.Engine,
	accountHandler *handler.AccountHandler,
	bookHandler *handler.BookHandler,
	catalogHandler *handler.CatalogHandler,
	reviewHandler *handler.ReviewHandler,
	purchaseHandler *handler.PurchaseHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标端点
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档(生产环境建议禁用或加访问控制)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 认证模块（公开接口）
		auth := v1.Group("/auth")
		{
			auth.POST("/register", accountHandler.Register)
			auth.POST("/login", accountHandler.LoginCustomer)
			auth.POST("/admin/login", accountHandler.LoginAdmin)
			auth.POST("/refresh", accountHandler.RefreshToken)
			auth.POST("/logout", authMiddleware.RequireAuth(), accountHandler.Logout)
		}

		// 图书浏览（公开接口）
		books := v1.Group("/books")
		{
			books.GET("", bookHandler.List)
			books.GET("/search", bookHandler.GetByTitle)
			books.GET("/:id", bookHandler.Get)
			books.GET("/:id/reviews", reviewHandler.ListByBook)
		}

		// 目录浏览（公开接口）
		v1.GET("/authors", catalogHandler.ListAuthors)
		v1.GET("/authors/:id", catalogHandler.GetAuthor)
		v1.GET("/categories", catalogHandler.ListCategories)

		// 客户接口（需要客户角色）
		customer := v1.Group("", authMiddleware.RequireAuth(), authMiddleware.RequireRole(jwt.RoleCustomer))
		{
			// 购书:核心接口
			customer.POST("/purchase", purchaseHandler.Purchase)
			customer.GET("/orders", purchaseHandler.ListOrders)
			customer.GET("/orders/:id", purchaseHandler.GetOrder)

			// 个人资料
			customer.GET("/customers/me", accountHandler.GetProfile)
			customer.PUT("/customers/me", accountHandler.UpdateProfile)

			// 评论
			customer.POST("/reviews", reviewHandler.Post)
			customer.DELETE("/reviews/:id", reviewHandler.Delete)
			customer.POST("/reviews/:id/like", reviewHandler.Like)
			customer.POST("/reviews/:id/dislike", reviewHandler.Dislike)
		}

		// 管理员接口（需要管理员角色）
		admin := v1.Group("/admin", authMiddleware.RequireAuth(), authMiddleware.RequireRole(jwt.RoleAdmin))
		{
			// 图书管理
			admin.POST("/books", bookHandler.Publish)
			admin.PUT("/books/:id", bookHandler.Update)
			admin.PUT("/books/:id/price", bookHandler.UpdatePrice)
			admin.POST("/books/:id/restock", bookHandler.Restock)
			admin.DELETE("/books/:id", bookHandler.Delete)

			// 作者管理
			admin.POST("/authors", catalogHandler.CreateAuthor)
			admin.PUT("/authors/:id", catalogHandler.UpdateAuthor)
			admin.DELETE("/authors/:id", catalogHandler.DeleteAuthor)

			// 分类管理
			admin.POST("/categories", catalogHandler.CreateCategory)
			admin.PUT("/categories/:id", catalogHandler.RenameCategory)
			admin.DELETE("/categories/:id", catalogHandler.DeleteCategory)

			// 客户管理
			admin.GET("/customers", accountHandler.ListCustomers)
			admin.POST("/customers", accountHandler.CreateCustomer)
			admin.GET("/customers/:id", accountHandler.GetCustomer)
			admin.PUT("/customers/:id", accountHandler.UpdateCustomer)
			admin.POST("/customers/:id/topup", accountHandler.TopUp)
			admin.DELETE("/customers/:id", accountHandler.DeleteCustomer)

			// 订单查询(管理员可查任意客户)
			admin.GET("/customers/:id/orders", purchaseHandler.ListCustomerOrders)
			admin.GET("/orders/:id", purchaseHandler.GetOrderAdmin)

			// 评论回复
			admin.POST("/reviews/:id/respond", reviewHandler.Respond)
		}
	}
}
