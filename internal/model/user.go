// File: internal/model/user.go
package model

import "time"

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	Name         string    `db:"name" json:"name"`
	Contact      string    `db:"contact" json:"contact"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// IsAdmin 回報使用者是否為管理員
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
