package router

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"pharmacy_admin_v1_202608/internal/controller"
	"pharmacy_admin_v1_202608/internal/middleware"

	_ "pharmacy_admin_v1_202608/docs"
)

// Controllers 路由需要的控制器集合
type Controllers struct {
	Auth         *controller.AuthController
	Brand        *controller.BrandController
	Category     *controller.CategoryController
	Product      *controller.ProductController
	Coupon       *controller.CouponController
	Prescription *controller.PrescriptionController
	Upload       *controller.UploadController
}

// SetupRouter 创建 gin 引擎并注册路由
func SetupRouter(ctls *Controllers) *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware())
	InitRoutes(r, ctls)
	return r
}

// corsMiddleware 管理后台前端跨域访问
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctls *Controllers) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. 本地存储模式下的静态文件
	r.Static("/uploads", "./uploads")

	// 3. API 路由组
	api := r.Group("/api")

	// auth 组：登录和刷新不需要带 Token
	auth := api.Group("/auth")
	{
		auth.POST("/login", ctls.Auth.Login)
		auth.POST("/refresh", ctls.Auth.RefreshToken)
		auth.GET("/me", middleware.JWTAuth(), ctls.Auth.Me)
		auth.POST("/logout", middleware.JWTAuth(), ctls.Auth.Logout)
	}

	// 业务组：JWT 认证 + 审计上下文 + 变更防重复提交
	protected := api.Group("")
	protected.Use(
		middleware.JWTAuth(),
		middleware.AuditContext(),
		middleware.ThrottleMutations(500*time.Millisecond),
	)
	{
		brands := protected.Group("/brands")
		{
			brands.GET("", ctls.Brand.List)
			brands.GET("/:id", ctls.Brand.Get)
			brands.POST("", ctls.Brand.Create)
			brands.PUT("/:id", ctls.Brand.Update)
			brands.DELETE("/:id", ctls.Brand.Delete)
			// DELETE /api/brands (body 带 ids)
			brands.DELETE("", ctls.Brand.BulkDelete)
		}

		categories := protected.Group("/categories")
		{
			categories.GET("", ctls.Category.List)
			categories.GET("/:id", ctls.Category.Get)
			categories.POST("", ctls.Category.Create)
			categories.PUT("/:id", ctls.Category.Update)
			categories.DELETE("/:id", ctls.Category.Delete)
			categories.DELETE("", ctls.Category.BulkDelete)
		}

		products := protected.Group("/products")
		{
			products.GET("", ctls.Product.List)
			// :id 也接受 slug，编辑页按 slug 取详情
			products.GET("/:id", ctls.Product.Get)
			products.POST("", ctls.Product.Create)
			products.PUT("/:id", ctls.Product.Update)
			products.DELETE("/:id", ctls.Product.Delete)
			products.DELETE("", ctls.Product.BulkDelete)
		}

		coupons := protected.Group("/coupons")
		{
			coupons.GET("", ctls.Coupon.List)
			coupons.GET("/generate-code", ctls.Coupon.GenerateCode)
			coupons.GET("/:id", ctls.Coupon.Get)
			coupons.POST("", ctls.Coupon.Create)
			coupons.PUT("/:id", ctls.Coupon.Update)
			coupons.DELETE("/:id", ctls.Coupon.Delete)
			coupons.DELETE("", ctls.Coupon.BulkDelete)
		}

		prescriptions := protected.Group("/prescriptions")
		{
			prescriptions.GET("", ctls.Prescription.List)
			prescriptions.GET("/:id", ctls.Prescription.Get)
			prescriptions.POST("", ctls.Prescription.Create)
			prescriptions.PUT("/:id/status", ctls.Prescription.UpdateStatus)
			prescriptions.POST("/:id/order", ctls.Prescription.CreateOrder)
			prescriptions.DELETE("/:id", ctls.Prescription.Delete)
			prescriptions.DELETE("", ctls.Prescription.BulkDelete)
		}

		protected.POST("/upload", ctls.Upload.Upload)
	}
}
