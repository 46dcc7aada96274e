package app

import (
	"codequest_backend/docs"
	"codequest_backend/internal/config"
	"codequest_backend/internal/middleware"
	"codequest_backend/internal/model"

	"codequest_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		// 学生/通用 授权接口
		a.registerStudentRoutes(authGroup, c)

		// 教师相关接口
		a.registerEducatorRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		// 课程目录对游客开放
		public.GET("/languages", c.content.GetLanguages)
		public.GET("/courses", c.content.GetCourses)
		public.GET("/courses/:id", c.content.GetCourse)
		public.GET("/achievements", c.achievement.GetCatalog)
		public.GET("/leaderboard", c.achievement.GetLeaderboard)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/me", c.auth.GetProfile)
	rg.PUT("/users/profile", c.user.UpdateProfile)
	rg.POST("/users/avatar", c.user.UploadAvatar)
	rg.POST("/users/checkin", c.user.Checkin)

	// 首页聚合
	rg.GET("/dashboard", c.dashboard.GetDashboard)

	// 闪卡
	rg.GET("/flashcards", c.flashcard.GetFlashcards)
	rg.GET("/flashcards/progress", c.flashcard.GetMyProgress)
	rg.POST("/flashcards/:id/review", c.flashcard.Review)

	// 测验
	rg.GET("/quizzes", c.quiz.GetQuizzes)
	rg.GET("/quizzes/attempts", c.quiz.GetAttempts)
	rg.GET("/quizzes/:id", c.quiz.GetQuiz)
	rg.POST("/quizzes/:id/session", c.quiz.StartSession)
	rg.PUT("/quizzes/:id/answers", c.quiz.SaveAnswers)
	rg.POST("/quizzes/:id/submit", c.quiz.Submit)

	// 虚拟宠物
	rg.GET("/pet", c.pet.GetPet)
	rg.POST("/pet/feed", c.pet.Feed)
	rg.POST("/pet/play", c.pet.Play)
	rg.POST("/pet/rest", c.pet.Rest)
	rg.PUT("/pet/name", c.pet.Rename)

	// 成就
	rg.GET("/achievements/me", c.achievement.GetMyAchievements)

	// 课程进度
	rg.GET("/progress", c.content.GetProgress)
	rg.PUT("/courses/:id/progress", c.content.UpdateProgress)
}

func (a *App) registerEducatorRoutes(rg *gin.RouterGroup, c *controllers) {
	educator := rg.Group("")
	educator.Use(middleware.RoleMiddleware(model.Educator, model.Admin))
	{
		educator.POST("/courses", c.content.CreateCourse)
		educator.PUT("/courses/:id", c.content.UpdateCourse)
		educator.DELETE("/courses/:id", c.content.DeleteCourse)

		educator.POST("/flashcards", c.flashcard.CreateFlashcard)
		educator.DELETE("/flashcards/:id", c.flashcard.DeleteFlashcard)

		educator.POST("/quizzes", c.quiz.CreateQuiz)
		educator.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.PUT("/users/:id/disabled", c.user.SetUserDisabled)

		admin.POST("/achievements", c.achievement.CreateAchievement)
		admin.PUT("/achievements/:id/active", c.achievement.SetAchievementActive)
	}
}
