// @title        Campus Care API
// @version      1.0
// @description  Campus Care 學生心理健康平台後端 API 文件
// @host         localhost:3000
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-care/internal/cache"
	"campus-care/internal/config"
	"campus-care/internal/crisis"
	"campus-care/internal/database"
	"campus-care/internal/handler/student"
	"campus-care/internal/logger"
	"campus-care/internal/mail"
	"campus-care/internal/middleware"
	"campus-care/internal/router"
	"campus-care/internal/service"
	"campus-care/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	_ "campus-care/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig      = config.Load
	newLogger       = logger.New
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newProviders    = crisis.NewProviders
	newMailer       = mail.New
	newWorkerPool   = worker.NewPool
	startServer     = serveUntilSignal
	exitFunc        = os.Exit
	// exitLogger 記錄 run() 失敗原因，設定載入前也能輸出
	exitLogger = func() *zap.Logger {
		l, err := zap.NewProduction()
		if err != nil {
			return zap.NewNop()
		}
		return l
	}
)

// serveUntilSignal 啟動 Echo，收到 SIGINT/SIGTERM 後優雅關閉
func serveUntilSignal(e *echo.Echo, addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- e.Start(addr) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func run() error {
	cfg, err := loadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}

	zl, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	// service 層從環境變數讀取簽章金鑰，設定檔提供時同步過去
	if os.Getenv(service.SecretEnv) == "" {
		if err := os.Setenv(service.SecretEnv, cfg.Auth.AccessTokenSecret); err != nil {
			return fmt.Errorf("設定 %s 失敗: %w", service.SecretEnv, err)
		}
	}

	ctx := context.Background()
	db, err := newPgxPool(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	redis, err := newRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer redis.Close()

	if err := runMigrationsFn(cfg.Database.URL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	providers, err := newProviders(ctx, cfg.LLM)
	if err != nil {
		return fmt.Errorf("LLM 供應商初始化失敗: %w", err)
	}
	if len(providers) == 0 {
		zl.Warn("no LLM provider configured, chat replies are unavailable")
	}
	detector := crisis.NewDetector(crisis.Mode(cfg.Crisis.Mode), providers, cfg.LLM.Provider, cfg.LLM.Timeout)

	mailer := newMailer(cfg.Mail)

	wp := newWorkerPool(cfg.Worker.Count, zl)
	defer wp.Stop()

	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(zl))

	router.Setup(e, router.Deps{
		DB:    db,
		Cache: redis,
		Auth: &service.AuthService{
			DB:                       db,
			Mailer:                   mailer,
			TokenTTL:                 cfg.Auth.AccessTokenTTL,
			OTPTTL:                   cfg.Auth.OTPTTL,
			RequireEmailVerification: cfg.Auth.RequireEmailVerification,
		},
		Chat: student.ChatDeps{
			DB:         db,
			Detector:   detector,
			Pool:       wp,
			Mailer:     mailer,
			AdminEmail: cfg.Mail.AdminEmail,
			Timeout:    cfg.LLM.Timeout,
			Logger:     zl,
		},
		RateLimit: cfg.RateLimit,
		Logger:    zl,
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	zl.Info("server starting",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("crisis_mode", cfg.Crisis.Mode),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.Int("workers", cfg.Worker.Count),
	)
	return startServer(e, cfg.Server.Addr())
}

func main() {
	if err := run(); err != nil {
		zl := exitLogger()
		zl.Error("service exited", zap.Error(err))
		_ = zl.Sync()
		exitFunc(1)
	}
}
