package app

import (
	"codequest_backend/internal/config"
	"codequest_backend/internal/controller"
	"codequest_backend/internal/repository"
	"codequest_backend/internal/service"
	"codequest_backend/pkg/configwatcher"
	"codequest_backend/pkg/database"
	"codequest_backend/pkg/logger"
	"codequest_backend/pkg/monitoring"
	"codequest_backend/pkg/security"
	"codequest_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
	stopTasks       chan struct{}
	tracer          *sdktrace.TracerProvider
}

type repositories struct {
	user         *repository.UserRepository
	language     *repository.LanguageRepository
	course       *repository.CourseRepository
	flashcard    *repository.FlashcardRepository
	cardProgress *repository.FlashcardProgressRepository
	quiz         *repository.QuizRepository
	quizSession  *repository.QuizSessionRepository
	pet          *repository.PetRepository
	achievement  *repository.AchievementRepository
	progress     *repository.ProgressRepository
	checkin      *repository.CheckinRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	storage     *service.StorageService
	content     *service.ContentService
	flashcard   *service.FlashcardService
	quiz        *service.QuizService
	pet         *service.PetService
	achievement *service.AchievementService
	progress    *service.ProgressService
	dashboard   *service.DashboardService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	content     *controller.ContentController
	flashcard   *controller.FlashcardController
	quiz        *controller.QuizController
	pet         *controller.PetController
	achievement *controller.AchievementController
	dashboard   *controller.DashboardController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		language:     repository.NewLanguageRepository(db),
		course:       repository.NewCourseRepository(db),
		flashcard:    repository.NewFlashcardRepository(db),
		cardProgress: repository.NewFlashcardProgressRepository(db),
		quiz:         repository.NewQuizRepository(db),
		quizSession:  repository.NewQuizSessionRepository(db),
		pet:          repository.NewPetRepository(db),
		achievement:  repository.NewAchievementRepository(db),
		progress:     repository.NewProgressRepository(db),
		checkin:      repository.NewCheckinRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	deduper := service.NewDeduper(rdb)

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.checkin, cfg.Gamify.CheckinXP)
	s.content = service.NewContentService(repos.language, repos.course, rdb)
	s.achievement = service.NewAchievementService(repos.achievement, repos.user, repos.quiz, repos.cardProgress, rdb)
	s.flashcard = service.NewFlashcardService(repos.flashcard, repos.cardProgress, s.achievement)
	s.quiz = service.NewQuizService(repos.quiz, repos.quizSession, repos.user, s.achievement, deduper, &cfg.Gamify)
	s.pet = service.NewPetService(repos.pet, s.achievement, deduper, &cfg.Gamify)
	s.progress = service.NewProgressService(repos.progress, repos.course, repos.user, s.achievement)
	s.dashboard = service.NewDashboardService(repos.user, repos.quiz, repos.progress, repos.cardProgress, s.pet, s.achievement)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(s.user, s.storage),
		content:     controller.NewContentController(s.content, s.progress),
		flashcard:   controller.NewFlashcardController(s.flashcard),
		quiz:        controller.NewQuizController(s.quiz),
		pet:         controller.NewPetController(s.pet),
		achievement: controller.NewAchievementController(s.achievement),
		dashboard:   controller.NewDashboardController(s.dashboard),
		health:      controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 启动超时测验自动交卷任务
func (a *App) startBackgroundTasks(s *services) {
	a.stopTasks = make(chan struct{})
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.quiz.AutoSubmitExpired(); err != nil {
					logger.Log.Error("auto submit sweep error", zap.Error(err))
				}
			case <-a.stopTasks:
				return
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	// release 模式默认不做自动迁移，除非显式带 -migrate 启动
	runMigration := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, runMigration)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("codequest-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
		router.Static("/api/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

	// 配置热加载：奖励数值可在不重启的情况下调整
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		reloaded, ok := newCfg.(*config.Config)
		if !ok {
			return
		}
		reloaded.Gamify.ApplyDefaults()
		cfg.Gamify = reloaded.Gamify
		logger.Log.Info("gamify config reloaded",
			zap.Int("xpPerCorrect", cfg.Gamify.XPPerCorrect),
			zap.Int("passingPercent", cfg.Gamify.PassingPercent))
		for _, cb := range app.configCallbacks {
			cb(reloaded)
		}
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// 停止后台任务
	if a.stopTasks != nil {
		close(a.stopTasks)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
