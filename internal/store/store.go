package store

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound 查無資料
var ErrNotFound = errors.New("not found")

// ErrDuplicate 違反唯一索引
var ErrDuplicate = errors.New("duplicate")

// uniqueViolation PostgreSQL unique_violation
const uniqueViolation = "23505"

// scanner 同時涵蓋 pgx.Row 與 pgx.Rows
type scanner interface {
	Scan(dest ...any) error
}

// notFound 將 pgx.ErrNoRows 轉為 ErrNotFound，其餘錯誤原樣回傳
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// IsDuplicate 判斷錯誤是否為唯一索引衝突
func IsDuplicate(err error) bool {
	if errors.Is(err, ErrDuplicate) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
