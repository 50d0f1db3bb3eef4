//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 教学说明：
// 1. Wire是Google开发的编译期依赖注入工具
// 2. 与运行时反射注入不同，Wire在编译期生成代码：零运行时开销、类型安全
// 3. 运行 `wire gen ./cmd/api` 生成wire_gen.go后，main.go可改用InitializeApp()
//
// 核心概念：
// - Provider: 提供依赖的构造函数（如NewBookRepository）
// - Injector: 声明最终要构造的目标类型（*gin.Engine）
// - wire.Build(): 告诉Wire如何组装依赖链

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

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

// infrastructureSet 基础设施层依赖
// 包含：配置加载、数据库连接、Redis连接
var infrastructureSet = wire.NewSet(
	config.Load,     // 加载配置文件
	mysql.NewDB,     // 创建MySQL连接
	redis.NewClient, // 创建Redis连接
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewCustomerRepository, // 客户仓储
	mysql.NewAdminRepository,    // 管理员仓储
	mysql.NewBookRepository,     // 图书仓储
	mysql.NewAuthorRepository,   // 作者仓储
	mysql.NewCategoryRepository, // 分类仓储
	mysql.NewReviewRepository,   // 评论仓储
	mysql.NewOrderRepository,    // 购书台账仓储
	mysql.NewTxManager,          // 事务管理器
	// 教学要点：购书用例依赖的是purchase.TxManager接口（便于单元测试用假事务），
	// wire.Bind告诉Wire用*mysql.TxManager来满足这个接口
	wire.Bind(new(purchase.TxManager), new(*mysql.TxManager)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	account.NewService, // 账户领域服务
	book.NewService,    // 图书领域服务
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appaccount.NewRegisterCustomerUseCase, // 客户注册用例
	provideLoginUseCase,                   // 登录用例（需要从config提取过期时间）
	provideLogoutUseCase,                  // 登出用例（同上）
	appaccount.NewProfileUseCase,          // 个人资料用例
	appbook.NewBrowseBooksUseCase,         // 图书浏览用例
	appbook.NewManageBooksUseCase,         // 图书管理用例
	catalog.NewCatalogUseCase,             // 作者/分类目录用例
	appreview.NewReviewUseCase,            // 评论用例
	purchase.NewExecutePurchaseUseCase,    // 购书用例（核心）
	apporder.NewHistoryUseCase,            // 订单历史用例
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,            // JWT管理器（需要从config提取参数）
	provideSessionStore,          // Session存储
	provideBookCache,             // 图书缓存（需要从config提取TTL）
	middleware.NewAuthMiddleware, // 认证中间件
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewAccountHandler,
	handler.NewBookHandler,
	handler.NewCatalogHandler,
	handler.NewReviewHandler,
	handler.NewPurchaseHandler,
)

// provideJWTManager 从配置创建JWT管理器
// 教学要点：config.Config包含多个字段，Wire无法自动从Config提取参数，需要手动编写Provider
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建Session存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideBookCache 从配置提取缓存TTL
func provideBookCache(client *goredis.Client, cfg *config.Config) *redis.BookCache {
	return redis.NewBookCache(client, cfg.Cache.BookDetailTTL, cfg.Cache.BookListTTL)
}

// provideLoginUseCase 登录用例：刷新令牌有效期即Session有效期
func provideLoginUseCase(
	accountService account.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
	cfg *config.Config,
) *appaccount.LoginUseCase {
	return appaccount.NewLoginUseCase(accountService, jwtManager, sessionStore, cfg.JWT.RefreshTokenExpire)
}

// provideLogoutUseCase 登出用例：令牌拉黑时长与访问令牌有效期对齐
func provideLogoutUseCase(sessionStore *redis.SessionStore, cfg *config.Config) *appaccount.LogoutUseCase {
	return appaccount.NewLogoutUseCase(sessionStore, cfg.JWT.AccessTokenExpire)
}

// provideGinEngine 创建并配置Gin引擎
// 教学要点：路由注册需要所有Handler和Middleware，Wire会自动注入这些依赖。
// 这里直接在函数内注册路由，避免与main.go中的registerRoutes冲突
func provideGinEngine(
	cfg *config.Config,
	accountHandler *handler.AccountHandler,
	bookHandler *handler.BookHandler,
	catalogHandler *handler.CatalogHandler,
	reviewHandler *handler.ReviewHandler,
	purchaseHandler *handler.PurchaseHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics.InitMetrics()

	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery(), metrics.GinMiddleware())

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", accountHandler.Register)
			auth.POST("/login", accountHandler.LoginCustomer)
			auth.POST("/admin/login", accountHandler.LoginAdmin)
			auth.POST("/refresh", accountHandler.RefreshToken)
			auth.POST("/logout", authMiddleware.RequireAuth(), accountHandler.Logout)
		}

		books := v1.Group("/books")
		{
			books.GET("", bookHandler.List)
			books.GET("/search", bookHandler.GetByTitle)
			books.GET("/:id", bookHandler.Get)
			books.GET("/:id/reviews", reviewHandler.ListByBook)
		}

		v1.GET("/authors", catalogHandler.ListAuthors)
		v1.GET("/authors/:id", catalogHandler.GetAuthor)
		v1.GET("/categories", catalogHandler.ListCategories)

		customer := v1.Group("", authMiddleware.RequireAuth(), authMiddleware.RequireRole(jwt.RoleCustomer))
		{
			customer.POST("/purchase", purchaseHandler.Purchase)
			customer.GET("/orders", purchaseHandler.ListOrders)
			customer.GET("/orders/:id", purchaseHandler.GetOrder)
			customer.GET("/customers/me", accountHandler.GetProfile)
			customer.PUT("/customers/me", accountHandler.UpdateProfile)
			customer.POST("/reviews", reviewHandler.Post)
			customer.DELETE("/reviews/:id", reviewHandler.Delete)
			customer.POST("/reviews/:id/like", reviewHandler.Like)
			customer.POST("/reviews/:id/dislike", reviewHandler.Dislike)
		}

		admin := v1.Group("/admin", authMiddleware.RequireAuth(), authMiddleware.RequireRole(jwt.RoleAdmin))
		{
			admin.POST("/books", bookHandler.Publish)
			admin.PUT("/books/:id", bookHandler.Update)
			admin.PUT("/books/:id/price", bookHandler.UpdatePrice)
			admin.POST("/books/:id/restock", bookHandler.Restock)
			admin.DELETE("/books/:id", bookHandler.Delete)

			admin.POST("/authors", catalogHandler.CreateAuthor)
			admin.PUT("/authors/:id", catalogHandler.UpdateAuthor)
			admin.DELETE("/authors/:id", catalogHandler.DeleteAuthor)

			admin.POST("/categories", catalogHandler.CreateCategory)
			admin.PUT("/categories/:id", catalogHandler.RenameCategory)
			admin.DELETE("/categories/:id", catalogHandler.DeleteCategory)

			admin.GET("/customers", accountHandler.ListCustomers)
			admin.POST("/customers", accountHandler.CreateCustomer)
			admin.GET("/customers/:id", accountHandler.GetCustomer)
			admin.PUT("/customers/:id", accountHandler.UpdateCustomer)
			admin.POST("/customers/:id/topup", accountHandler.TopUp)
			admin.DELETE("/customers/:id", accountHandler.DeleteCustomer)

			admin.GET("/customers/:id/orders", purchaseHandler.ListCustomerOrders)
			admin.GET("/orders/:id", purchaseHandler.GetOrderAdmin)

			admin.POST("/reviews/:id/respond", reviewHandler.Respond)
		}
	}

	return r
}

// InitializeApp 初始化整个应用
//
// 教学说明：
// wire.Build告诉Wire需要哪些Provider来构建*gin.Engine，
// Wire会在编译期分析依赖关系并按正确顺序生成所有构造调用。
// Injector函数体只是占位符，实际代码在wire_gen.go中
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
