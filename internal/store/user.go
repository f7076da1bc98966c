package store

import (
	"context"
	"fmt"

	"campus-care/internal/database"
	"campus-care/internal/model"
)

const userColumns = `id::text, email, password_hash, role::text, name, contact, created_at, updated_at`

func scanUser(row scanner) (*model.User, error) {
	u := &model.User{}
	var role string
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&role,
		&u.Name,
		&u.Contact,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	u.Role = model.Role(role)
	return u, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", notFound(err))
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", notFound(err))
	}
	return u, nil
}

// CreateUser 寫入使用者並回填 id 與時間欄位
func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	if u.Role == "" {
		u.Role = model.RoleStudent
	}
	row := db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, role, name, contact)
		 VALUES ($1, $2, $3::role, $4, $5)
		 RETURNING id::text, created_at, updated_at`,
		u.Email,
		u.PasswordHash,
		string(u.Role),
		u.Name,
		u.Contact,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if IsDuplicate(err) {
			return nil, fmt.Errorf("CreateUser: %w", ErrDuplicate)
		}
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

// UpdateUserProfile 更新個人資料並回傳最新資料
func UpdateUserProfile(ctx context.Context, db database.DB, userID, name, contact string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`UPDATE users SET name = $1, contact = $2, updated_at = now()
		 WHERE id = $3
		 RETURNING `+userColumns,
		name,
		contact,
		userID,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("UpdateUserProfile: %w", notFound(err))
	}
	return u, nil
}

func UpdatePasswordByEmail(ctx context.Context, db database.DB, email, passwordHash string) error {
	tag, err := db.Exec(ctx,
		`UPDATE users
		 SET password_hash = $1, updated_at = now()
		 WHERE email = $2`,
		passwordHash,
		email,
	)
	if err != nil {
		return fmt.Errorf("UpdatePasswordByEmail: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdatePasswordByEmail: %w", ErrNotFound)
	}
	return nil
}

// ListUsersByRole 依建立時間排序列出指定角色的使用者
func ListUsersByRole(ctx context.Context, db database.DB, role model.Role) ([]model.User, error) {
	rows, err := db.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = $1::role ORDER BY created_at`,
		string(role),
	)
	if err != nil {
		return nil, fmt.Errorf("ListUsersByRole: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ListUsersByRole: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListUsersByRole: %w", err)
	}
	return users, nil
}
