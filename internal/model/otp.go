package model

import "time"

// OTP 每個 email 最多一筆
type OTP struct {
	Email      string    `db:"email" json:"email"`
	Code       int       `db:"code" json:"-"`
	ExpiresAt  time.Time `db:"expires_at" json:"expires_at"`
	IsVerified bool      `db:"is_verified" json:"is_verified"`
}

// Expired 回報 OTP 在 now 時是否已過期
func (o *OTP) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}
