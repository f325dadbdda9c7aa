package app

import (
	"course_forge_backend/docs"
	"course_forge_backend/internal/config"
	"course_forge_backend/internal/middleware"
	"course_forge_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c, repos)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerAuthorizedRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 课程浏览：游客可访问，认证仅用于记录活跃时间
	browse := router.Group("/api")
	browse.Use(middleware.TryAuthMiddleware(a.Config), middleware.ActivityMiddleware(repos.user))
	{
		browse.GET("/courses", c.course.GetCourses)
		browse.GET("/courses/top", c.ranking.TopCourses)
		browse.GET("/courses/:id", c.course.GetCourse)
		browse.GET("/courses/:id/modules", c.module.GetCourseModules)
		browse.GET("/modules/:id", c.module.GetModule)
	}
}

func (a *App) registerAuthorizedRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/profile", c.auth.UpdateProfile)

	// 课程
	rg.POST("/courses", c.course.CreateCourse)
	rg.PUT("/courses/:id", c.course.UpdateCourse)
	rg.DELETE("/courses/:id", c.course.DeleteCourse)
	rg.POST("/courses/:id/fork", c.course.ForkCourse)
	rg.POST("/courses/:id/vote", c.ranking.Vote)

	// 模块。创建时课程 ID 在请求体里，与结构化内容一并提交
	rg.POST("/modules", c.module.CreateModule)
	rg.PUT("/courses/:id/modules/reorder", c.module.ReorderModules)
	rg.PUT("/modules/:id", c.module.UpdateModule)
	rg.DELETE("/modules/:id", c.module.DeleteModule)
	rg.POST("/modules/:id/duplicate", c.module.DuplicateModule)

	// 创作者工作台
	rg.GET("/my-courses", c.course.GetMyCourses)
	rg.GET("/my-courses/stats", c.course.GetMyStats)
	rg.GET("/my-courses/top", c.course.GetMyTopCourses)
	rg.GET("/my-courses/activity", c.course.GetMyRecentActivity)

	// 媒体上传
	rg.POST("/media/upload", c.media.UploadMedia)

	// 链上市场
	marketplace := rg.Group("/marketplace")
	{
		marketplace.POST("/courses", c.marketplace.ListCourse)
		marketplace.GET("/courses/:id", c.marketplace.GetCourse)
		marketplace.POST("/purchase", c.marketplace.PurchaseCourse)
		marketplace.POST("/withdraw", c.marketplace.Withdraw)
		marketplace.POST("/certificates", c.marketplace.IssueCertificate)
	}
}
