package api

import (
	"time"

	"campus-care/internal/model"
)

// MeData 目前登入者身分
type MeData struct {
	ID    string     `json:"id" example:"5f0c3a0e-8f0b-4c2e-9d51-2a8f7d7e1c11"`
	Email string     `json:"email" example:"student@campus.edu"`
	Role  model.Role `json:"role" example:"student"`
}

// UserResponse 不含密碼雜湊的使用者資料
type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	Name      string     `json:"name"`
	Contact   string     `json:"contact"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		Name:      u.Name,
		Contact:   u.Contact,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ChatData 聊天回覆；Crisis 為 true 時 Reply 為安全訊息
type ChatData struct {
	Reply     string `json:"reply"`
	Crisis    bool   `json:"crisis"`
	Source    string `json:"source"`
	Provider  string `json:"provider,omitempty"`
	SessionID string `json:"session_id"`
}
