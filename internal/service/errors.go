package service

import (
	"errors"

	"campus-care/internal/mail"
)

var (
	ErrUserExists         = errors.New("User already exists")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrEmailNotVerified   = errors.New("Email not verified. Please verify your email first.")
	ErrOTPAlreadySent     = errors.New("OTP already sent. Please check your email.")
	ErrOTPNotFound        = errors.New("OTP not found. Please request a new one.")
	ErrOTPInvalid         = errors.New("Invalid OTP. Please try again.")
	ErrOTPExpired         = errors.New("OTP has expired. Please request a new one.")
	ErrUserNotFound       = errors.New("User with this email does not exist")
	ErrMissingSecret      = errors.New("ACCESS_TOKEN_SECRET not set")
	ErrInvalidToken       = errors.New("invalid token")
	ErrMailNotConfigured  = mail.ErrNotConfigured
)
