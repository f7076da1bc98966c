// File: internal/handler/ping.go
package handler

import (
	"net/http"
	"time"

	"campus-care/internal/api"
	"campus-care/internal/cache"
	"campus-care/internal/database"

	"github.com/labstack/echo/v4"
)

// PingResponse 健康檢查回應模型
// swagger:model PingResponse
type PingResponse struct {
	// 回應訊息
	Message string `json:"message" example:"pong"`
}

// HealthHandler 存活檢查
// @Summary     Liveness
// @Description 服務啟動即回傳 OK
// @Tags        health
// @Produce     plain
// @Success     200 {string} string "OK"
// @Router      /health [get]
func HealthHandler(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與 Redis 連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} PingResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /ping [get]
func PingHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			return c.JSON(http.StatusInternalServerError, api.Fail("database unhealthy"))
		}
		if err := cch.Set(ctx, "health:ping", "pong", 10*time.Second).Err(); err != nil {
			return c.JSON(http.StatusInternalServerError, api.Fail("cache unhealthy"))
		}
		return c.JSON(http.StatusOK, PingResponse{Message: "pong"})
	}
}
