package api

import "campus-care/internal/crisis"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email" example:"student@campus.edu"`
	Password string `json:"password" validate:"required,min=6" example:"secret123"`
	Name     string `json:"name" validate:"max=255" example:"Alice"`
	Contact  string `json:"contact" validate:"max=20" example:"0912345678"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"student@campus.edu"`
	Password string `json:"password" validate:"required" example:"secret123"`
}

type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email" example:"student@campus.edu"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email" example:"student@campus.edu"`
	Code  int    `json:"code" validate:"required,gte=100000,lte=999999" example:"123456"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email" example:"student@campus.edu"`
	Code        int    `json:"code" validate:"required,gte=100000,lte=999999" example:"123456"`
	NewPassword string `json:"new_password" validate:"required,min=6" example:"newsecret"`
}

type UpdateDetailsRequest struct {
	Name    string `json:"name" validate:"required,max=255" example:"Alice"`
	Contact string `json:"contact" validate:"max=20" example:"0912345678"`
}

// FacialDetectionRequest 臉部辨識得到的情緒樣本
type FacialDetectionRequest struct {
	Mood      string   `json:"mood" validate:"required,oneof=happy sad angry surprised disgusted fearful neutral" example:"happy"`
	MoodScore *float64 `json:"mood_score" validate:"required,gte=0,lte=1" example:"0.87"`
}

// ChatRequest 最後一則訊息必須來自使用者且非空
type ChatRequest struct {
	Messages      []crisis.Message `json:"messages" validate:"required,min=1,dive"`
	ModelProvider string           `json:"model_provider" validate:"omitempty,oneof=groq gemini Groq Gemini" example:"groq"`
	SessionID     string           `json:"session_id" validate:"omitempty,max=64"`
}

type CrisisCheckRequest struct {
	Text     string `json:"text" validate:"required" example:"I had a great day"`
	Provider string `json:"provider" validate:"omitempty,oneof=groq gemini Groq Gemini" example:"gemini"`
}
