package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"campus-care/internal/api"
	"campus-care/internal/cache"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RateLimit 以 Redis 固定視窗計數限制每個 IP 的請求數
// Redis 出錯時降級放行
func RateLimit(c cache.Cache, limit int, window time.Duration, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if c == nil || limit <= 0 {
				return next(ctx)
			}

			reqCtx := ctx.Request().Context()
			key := fmt.Sprintf("rate_limit:%s:%s", ctx.RealIP(), ctx.Path())
			count, err := c.Incr(reqCtx, key).Result()
			if err != nil {
				logger.Warn("rate limit unavailable", zap.String("key", key), zap.Error(err))
				return next(ctx)
			}
			if count == 1 {
				if err := c.Expire(reqCtx, key, window).Err(); err != nil {
					logger.Warn("rate limit expire failed", zap.String("key", key), zap.Error(err))
				}
			}

			remaining := int64(limit) - count
			if remaining < 0 {
				remaining = 0
			}
			h := ctx.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(limit))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(limit) {
				h.Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				return ctx.JSON(http.StatusTooManyRequests, api.Fail("Too many requests, please try again later"))
			}
			return next(ctx)
		}
	}
}
