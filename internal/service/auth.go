package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campus-care/internal/database"
	"campus-care/internal/mail"
	"campus-care/internal/model"
	"campus-care/internal/store"
)

// store 呼叫點，測試可覆寫
var (
	getUserByEmail        = store.GetUserByEmail
	createUser            = store.CreateUser
	updatePasswordByEmail = store.UpdatePasswordByEmail
	getOTP                = store.GetOTP
	createOTP             = store.CreateOTP
	deleteOTP             = store.DeleteOTP
	markOTPVerified       = store.MarkOTPVerified
)

// AuthService 處理註冊、登入與 OTP 流程
type AuthService struct {
	DB     database.DB
	Mailer mail.Sender

	TokenTTL                 time.Duration
	OTPTTL                   time.Duration
	RequireEmailVerification bool
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Contact  string
}

// NormalizeEmail 去除空白並轉小寫
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register 建立學生帳號並發行存取令牌；重複 email 不發行令牌
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	email := NormalizeEmail(in.Email)

	existing, err := getUserByEmail(ctx, s.DB, email)
	switch {
	case err == nil && existing != nil:
		return nil, "", ErrUserExists
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return nil, "", err
	}

	if s.RequireEmailVerification {
		otp, err := getOTP(ctx, s.DB, email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, "", ErrEmailNotVerified
			}
			return nil, "", err
		}
		if !otp.IsVerified {
			return nil, "", ErrEmailNotVerified
		}
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := createUser(ctx, s.DB, &model.User{
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleStudent,
		Name:         in.Name,
		Contact:      in.Contact,
	})
	if err != nil {
		// 同時註冊時由唯一索引擋下
		if store.IsDuplicate(err) {
			return nil, "", ErrUserExists
		}
		return nil, "", err
	}

	if s.RequireEmailVerification {
		// OTP 已用於註冊，刪除失敗不影響結果
		_ = deleteOTP(ctx, s.DB, email)
	}

	token, err := IssueAccessToken(*user, s.TokenTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login 驗證 email 與密碼；查無使用者與密碼錯誤回傳相同錯誤
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := getUserByEmail(ctx, s.DB, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := IssueAccessToken(*user, s.TokenTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// SendOTP 產生新的驗證碼並寄出；未過期的驗證碼存在時拒絕
func (s *AuthService) SendOTP(ctx context.Context, email string) error {
	email = NormalizeEmail(email)

	existing, err := getOTP(ctx, s.DB, email)
	switch {
	case err == nil:
		if !existing.Expired(timeNow()) {
			return ErrOTPAlreadySent
		}
		if err := deleteOTP(ctx, s.DB, email); err != nil {
			return err
		}
	case !errors.Is(err, store.ErrNotFound):
		return err
	}

	code, err := GenerateOTP()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	otp := &model.OTP{
		Email:     email,
		Code:      code,
		ExpiresAt: timeNow().Add(s.OTPTTL),
	}
	if err := createOTP(ctx, s.DB, otp); err != nil {
		return err
	}

	msg := mail.Message{
		To:      []string{email},
		Subject: "Your Campus Care verification code",
		Body: fmt.Sprintf("Your verification code is %06d. It expires in %d minutes.",
			code, int(s.OTPTTL.Minutes())),
	}
	if err := s.Mailer.Send(ctx, msg); err != nil {
		// 寄送失敗時移除，讓使用者可以立即重試
		_ = deleteOTP(ctx, s.DB, email)
		return err
	}
	return nil
}

// VerifyOTP 依序檢查存在、正確與到期，成功後標記已驗證
func (s *AuthService) VerifyOTP(ctx context.Context, email string, code int) error {
	email = NormalizeEmail(email)

	otp, err := getOTP(ctx, s.DB, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrOTPNotFound
		}
		return err
	}
	if otp.Code != code {
		return ErrOTPInvalid
	}
	if otp.Expired(timeNow()) {
		return ErrOTPExpired
	}
	return markOTPVerified(ctx, s.DB, email)
}

// ResetPassword 驗證 OTP 後更新密碼
func (s *AuthService) ResetPassword(ctx context.Context, email string, code int, newPassword string) error {
	email = NormalizeEmail(email)

	if _, err := getUserByEmail(ctx, s.DB, email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.VerifyOTP(ctx, email, code); err != nil {
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := updatePasswordByEmail(ctx, s.DB, email, hash); err != nil {
		return err
	}
	_ = deleteOTP(ctx, s.DB, email)
	return nil
}
