package middleware

import (
	"net/http"
	"strings"

	"campus-care/internal/api"
	"campus-care/internal/database"
	"campus-care/internal/metrics"
	"campus-care/internal/model"
	"campus-care/internal/service"
	"campus-care/internal/store"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

const (
	msgInvalidToken = "Invalid token"
	msgAccessDenied = "Access denied"
)

// AuthUser 驗證後掛在 context 上的身分
type AuthUser struct {
	ID    string
	Email string
	Role  model.Role
}

// 測試可覆寫
var (
	verifyAccessToken = service.VerifyAccessToken
	getUserByEmail    = store.GetUserByEmail
)

func extractClaims(c echo.Context) (*service.CustomClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, service.ErrInvalidToken
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return nil, service.ErrInvalidToken
	}
	return verifyAccessToken(strings.TrimSpace(parts[1]))
}

// RequireAuth 驗證 Bearer token 並確認帳號仍存在；任何失敗一律 401 Invalid token
func RequireAuth(db database.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := extractClaims(c)
			if err != nil {
				metrics.AuthEvents.WithLabelValues("verify", "failure").Inc()
				return c.JSON(http.StatusUnauthorized, api.Fail(msgInvalidToken))
			}
			user, err := getUserByEmail(c.Request().Context(), db, claims.Email)
			if err != nil {
				metrics.AuthEvents.WithLabelValues("verify", "failure").Inc()
				return c.JSON(http.StatusUnauthorized, api.Fail(msgInvalidToken))
			}
			metrics.AuthEvents.WithLabelValues("verify", "success").Inc()
			c.Set(ContextUserKey, &AuthUser{ID: user.ID, Email: user.Email, Role: user.Role})
			return next(c)
		}
	}
}

// RequireRole 身分角色不符時回 403，需放在 RequireAuth 之後
func RequireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, ok := CurrentUser(c)
			if !ok || u.Role != role {
				return c.JSON(http.StatusForbidden, api.Fail(msgAccessDenied))
			}
			return next(c)
		}
	}
}

func RequireAdmin() echo.MiddlewareFunc   { return RequireRole(model.RoleAdmin) }
func RequireStudent() echo.MiddlewareFunc { return RequireRole(model.RoleStudent) }

// CurrentUser 取出 RequireAuth 設定的身分
func CurrentUser(c echo.Context) (*AuthUser, bool) {
	u, ok := c.Get(ContextUserKey).(*AuthUser)
	return u, ok && u != nil
}
