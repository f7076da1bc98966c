package store

import (
	"context"
	"fmt"

	"campus-care/internal/database"
	"campus-care/internal/model"
)

func GetOTP(ctx context.Context, db database.DB, email string) (*model.OTP, error) {
	row := db.QueryRow(ctx,
		`SELECT email, code, expires_at, is_verified FROM otp WHERE email = $1`,
		email,
	)
	o := &model.OTP{}
	if err := row.Scan(&o.Email, &o.Code, &o.ExpiresAt, &o.IsVerified); err != nil {
		return nil, fmt.Errorf("GetOTP: %w", notFound(err))
	}
	return o, nil
}

// CreateOTP 寫入新的 OTP；同 email 的舊紀錄會被覆蓋
func CreateOTP(ctx context.Context, db database.DB, o *model.OTP) error {
	_, err := db.Exec(ctx,
		`INSERT INTO otp (email, code, expires_at, is_verified)
		 VALUES ($1, $2, $3, FALSE)
		 ON CONFLICT (email) DO UPDATE
		 SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at, is_verified = FALSE`,
		o.Email,
		o.Code,
		o.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("CreateOTP: %w", err)
	}
	return nil
}

func DeleteOTP(ctx context.Context, db database.DB, email string) error {
	_, err := db.Exec(ctx, `DELETE FROM otp WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("DeleteOTP: %w", err)
	}
	return nil
}

func MarkOTPVerified(ctx context.Context, db database.DB, email string) error {
	tag, err := db.Exec(ctx, `UPDATE otp SET is_verified = TRUE WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("MarkOTPVerified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("MarkOTPVerified: %w", ErrNotFound)
	}
	return nil
}
