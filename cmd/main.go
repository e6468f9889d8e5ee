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

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pharmacy_admin_v1_202608/internal/controller"
	"pharmacy_admin_v1_202608/internal/middleware"
	"pharmacy_admin_v1_202608/internal/model"
	"pharmacy_admin_v1_202608/internal/repository"
	"pharmacy_admin_v1_202608/internal/router"
	"pharmacy_admin_v1_202608/internal/service"
	"pharmacy_admin_v1_202608/internal/task"
	"pharmacy_admin_v1_202608/pkg/database"
)

// @title 药房管理后台 API
// @version 1.0
// @description 药房电商的后台管理接口：品牌 / 分类 / 商品 / 优惠券 / 处方
// @BasePath /
func main() {
	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 种子管理员账号
	seedAdmin(deps.Services.User)

	// 4. 启动定时任务
	tasks := initTasks(deps)
	defer tasks.Stop()

	// 5. 初始化路由
	r := router.SetupRouter(deps.Controllers)

	// 6. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	User         repository.UserRepository
	Brand        repository.BrandRepository
	Category     repository.CategoryRepository
	Product      repository.ProductRepository
	Coupon       repository.CouponRepository
	Prescription repository.PrescriptionRepository
}

// Services 服务集合
type Services struct {
	User         *service.UserService
	Brand        *service.BrandService
	Category     *service.CategoryService
	Product      *service.ProductService
	Coupon       *service.CouponService
	Prescription *service.PrescriptionService
	Storage      service.StorageProvider
}

// Tasks 定时任务集合
type Tasks struct {
	CouponExpiry      *task.CouponExpiryTask
	PrescriptionAging *task.PrescriptionAgingTask
}

// Stop 停止所有任务
func (t *Tasks) Stop() {
	t.CouponExpiry.Stop()
	t.PrescriptionAging.Stop()
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	db := database.InitDB(
		getEnv("DATABASE_DSN", "pharmacy_admin.db"),
		// Manager
		&model.SysUser{},
		// Catalog
		&model.Brand{}, &model.Category{},
		&model.Product{}, &model.ProductVariation{}, &model.ProductImage{}, &model.BrandedAlternative{},
		// Marketing
		&model.Coupon{},
		// Prescription
		&model.Prescription{},
	)

	// 审计回调：Create/Update 自动落 created_by/updated_by
	middleware.RegisterAuditCallbacks(db)
	return db
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		User:         repository.NewUserRepository(db),
		Brand:        repository.NewBrandRepository(db),
		Category:     repository.NewCategoryRepository(db),
		Product:      repository.NewProductRepository(db),
		Coupon:       repository.NewCouponRepository(db),
		Prescription: repository.NewPrescriptionRepository(db),
	}

	// -------- 存储 --------
	storage := initStorage()

	// -------- 业务服务 --------
	services := &Services{
		User:         service.NewUserService(repos.User),
		Brand:        service.NewBrandService(repos.Brand, repos.Product),
		Category:     service.NewCategoryService(repos.Category, repos.Product),
		Product:      service.NewProductService(repos.Product, repos.Brand, repos.Category),
		Coupon:       service.NewCouponService(repos.Coupon),
		Prescription: service.NewPrescriptionService(repos.Prescription, repos.Product),
		Storage:      storage,
	}

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Auth:         controller.NewAuthController(services.User),
		Brand:        controller.NewBrandController(services.Brand, storage),
		Category:     controller.NewCategoryController(services.Category, storage),
		Product:      controller.NewProductController(services.Product),
		Coupon:       controller.NewCouponController(services.Coupon),
		Prescription: controller.NewPrescriptionController(services.Prescription),
		Upload:       controller.NewUploadController(storage),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initStorage 初始化存储
func initStorage() service.StorageProvider {
	storage, err := service.NewStorageProvider(&service.StorageConfig{
		Provider:  getEnv("STORAGE_PROVIDER", "local"),
		Bucket:    getEnv("AWS_BUCKET", ""),
		Region:    getEnv("AWS_REGION", ""),
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		Endpoint:  getEnv("STORAGE_ENDPOINT", ""),
		CDNDomain: getEnv("AWS_CDN_DOMAIN", ""),
		BasePath:  getEnv("STORAGE_BASE_PATH", ""),
	})
	if err != nil {
		log.Fatalf("存储服务初始化失败: %v", err)
	}
	return storage
}

// seedAdmin 首次启动种子管理员
func seedAdmin(userSvc *service.UserService) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := userSvc.EnsureAdminUser(ctx,
		getEnv("ADMIN_USERNAME", "admin"),
		getEnv("ADMIN_PASSWORD", "admin123"),
	); err != nil {
		log.Fatalf("初始化管理员账号失败: %v", err)
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) *Tasks {
	tasks := &Tasks{
		CouponExpiry:      task.NewCouponExpiryTask(deps.Repos.Coupon),
		PrescriptionAging: task.NewPrescriptionAgingTask(deps.Repos.Prescription),
	}

	// 启动时先清一遍已过期的券
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	tasks.CouponExpiry.RunOnce(ctx)

	tasks.CouponExpiry.Start()
	tasks.PrescriptionAging.Start()

	log.Println("定时任务已启动")
	return tasks
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

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

// getEnv 读取环境变量，空则用默认值
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
