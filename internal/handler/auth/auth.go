// File: internal/handler/auth/auth.go
package auth

import (
	"context"
	"errors"
	"net/http"

	"campus-care/internal/api"
	"campus-care/internal/metrics"
	"campus-care/internal/model"
	"campus-care/internal/service"

	"github.com/labstack/echo/v4"
)

// Authenticator 對應 *service.AuthService
type Authenticator interface {
	Register(ctx context.Context, in service.RegisterInput) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email string, code int) error
	ResetPassword(ctx context.Context, email string, code int, newPassword string) error
}

// clientErrors 直接以訊息回給使用者的錯誤
var clientErrors = []error{
	service.ErrUserExists,
	service.ErrEmailNotVerified,
	service.ErrOTPAlreadySent,
	service.ErrOTPNotFound,
	service.ErrOTPInvalid,
	service.ErrOTPExpired,
	service.ErrUserNotFound,
}

// writeError 將 service 錯誤轉為 JSON 回應；未預期錯誤交給 echo 並由請求日誌記錄
func writeError(c echo.Context, err error) error {
	if errors.Is(err, service.ErrInvalidCredentials) {
		return c.JSON(http.StatusUnauthorized, api.Fail(err.Error()))
	}
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return c.JSON(http.StatusBadRequest, api.Fail(target.Error()))
		}
	}
	return echo.NewHTTPError(http.StatusInternalServerError, api.Fail("Internal server error")).SetInternal(err)
}

// bindAndValidate 解析並驗證請求，失敗時已寫出 400
func bindAndValidate(c echo.Context, req any) bool {
	if err := c.Bind(req); err != nil {
		_ = c.JSON(http.StatusBadRequest, api.Fail("Invalid request body"))
		return false
	}
	if err := c.Validate(req); err != nil {
		_ = c.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		return false
	}
	return true
}

func record(event string, err error) {
	metrics.AuthEvents.WithLabelValues(event, metrics.Outcome(err)).Inc()
}

// RegisterHandler 註冊學生帳號
// @Summary     註冊
// @Description 建立學生帳號並回傳存取令牌；email 已存在時回 400 且不發行令牌
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.RegisterRequest true "註冊資料"
// @Success     200  {object} api.SuccessResponse{data=api.TokenData}
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/register [post]
func RegisterHandler(svc Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if !bindAndValidate(c, &req) {
			return nil
		}
		_, token, err := svc.Register(c.Request().Context(), service.RegisterInput{
			Email:    req.Email,
			Password: req.Password,
			Name:     req.Name,
			Contact:  req.Contact,
		})
		record("register", err)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, api.OK(api.TokenData{Token: token}))
	}
}

// LoginHandler 使用 email/password 驗證並回傳 JWT
// @Summary     登入
// @Description 查無帳號與密碼錯誤皆回 401 Invalid email or password
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資料"
// @Success     200  {object} api.SuccessResponse{data=api.TokenData}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(svc Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if !bindAndValidate(c, &req) {
			return nil
		}
		_, token, err := svc.Login(c.Request().Context(), req.Email, req.Password)
		record("login", err)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, api.OK(api.TokenData{Token: token}))
	}
}

// SendOTPHandler 寄送六位數驗證碼
// @Summary     寄送 OTP
// @Description 未過期的驗證碼存在時回 400；驗證碼 5 分鐘內有效
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.SendOTPRequest true "email"
// @Success     200  {object} api.SuccessResponse{data=api.MessageData}
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/send-otp [post]
func SendOTPHandler(svc Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.SendOTPRequest
		if !bindAndValidate(c, &req) {
			return nil
		}
		err := svc.SendOTP(c.Request().Context(), req.Email)
		record("send_otp", err)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, api.OK(api.MessageData{Message: "OTP sent successfully"}))
	}
}

// VerifyOTPHandler 驗證 OTP
// @Summary     驗證 OTP
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.VerifyOTPRequest true "email 與驗證碼"
// @Success     200  {object} api.SuccessResponse{data=api.MessageData}
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/verify-otp [post]
func VerifyOTPHandler(svc Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.VerifyOTPRequest
		if !bindAndValidate(c, &req) {
			return nil
		}
		err := svc.VerifyOTP(c.Request().Context(), req.Email, req.Code)
		record("verify_otp", err)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, api.OK(api.MessageData{Message: "OTP verified successfully"}))
	}
}

// ResetPasswordHandler 以 OTP 重設密碼
// @Summary     重設密碼
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.ResetPasswordRequest true "email、驗證碼與新密碼"
// @Success     200  {object} api.SuccessResponse{data=api.MessageData}
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/reset-password [post]
func ResetPasswordHandler(svc Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.ResetPasswordRequest
		if !bindAndValidate(c, &req) {
			return nil
		}
		err := svc.ResetPassword(c.Request().Context(), req.Email, req.Code, req.NewPassword)
		record("reset_password", err)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, api.OK(api.MessageData{Message: "Password reset successfully"}))
	}
}
