// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"campus-care/internal/cache"
	"campus-care/internal/config"
	"campus-care/internal/database"
	"campus-care/internal/handler"
	"campus-care/internal/handler/admin"
	"campus-care/internal/handler/auth"
	"campus-care/internal/handler/student"
	"campus-care/internal/middleware"
)

// Deps 路由所需的共用資源
type Deps struct {
	DB        database.DB
	Cache     cache.Cache
	Auth      auth.Authenticator
	Chat      student.ChatDeps
	RateLimit config.RateLimitConfig
	Logger    *zap.Logger
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	api := e.Group("/api")

	// 健康檢查
	api.GET("/health", handler.HealthHandler)
	api.GET("/ping", handler.PingHandler(d.DB, d.Cache))

	// 註冊、登入與 OTP，依 IP 限流
	apiAuth := api.Group("/auth", middleware.RateLimit(d.Cache, d.RateLimit.Limit, d.RateLimit.Window, d.Logger))
	apiAuth.POST("/register", auth.RegisterHandler(d.Auth))
	apiAuth.POST("/login", auth.LoginHandler(d.Auth))
	apiAuth.POST("/send-otp", auth.SendOTPHandler(d.Auth))
	apiAuth.POST("/verify-otp", auth.VerifyOTPHandler(d.Auth))
	apiAuth.POST("/reset-password", auth.ResetPasswordHandler(d.Auth))

	// 學生命名空間，需登入
	apiStudent := api.Group("/student", middleware.RequireAuth(d.DB))
	apiStudent.GET("/me", student.MeHandler)
	apiStudent.GET("/details", student.GetDetailsHandler(d.DB))
	apiStudent.POST("/details", student.UpdateDetailsHandler(d.DB))
	apiStudent.GET("/moods", student.ListMoodsHandler(d.DB))
	apiStudent.POST("/crisis-check", student.CrisisCheckHandler(d.Chat.Detector))
	apiStudent.POST("/facial-detection", student.FacialDetectionHandler(d.DB), middleware.RequireStudent())
	apiStudent.POST("/chat", student.ChatHandler(d.Chat), middleware.RequireStudent())

	// 管理員命名空間
	apiAdmin := api.Group("/admin", middleware.RequireAuth(d.DB), middleware.RequireAdmin())
	apiAdmin.GET("", admin.IndexHandler)
	apiAdmin.GET("/", admin.IndexHandler)
	apiAdmin.GET("/students", admin.ListStudentsHandler(d.DB))
	apiAdmin.GET("/user", admin.GetUserHandler(d.DB))
	apiAdmin.GET("/moods", admin.ListMoodsHandler(d.DB))
	apiAdmin.GET("/crisis-logs", admin.ListCrisisLogsHandler(d.DB))
}
