package store

import (
	"context"
	"fmt"

	"campus-care/internal/database"
	"campus-care/internal/model"
)

func CreateCrisisLog(ctx context.Context, db database.DB, l *model.CrisisLog) error {
	row := db.QueryRow(ctx,
		`INSERT INTO crisis_logs (session_id, student_id, is_crisis, source, provider)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id::text, created_at`,
		l.SessionID,
		l.StudentID,
		l.IsCrisis,
		l.Source,
		l.Provider,
	)
	if err := row.Scan(&l.ID, &l.CreatedAt); err != nil {
		return fmt.Errorf("CreateCrisisLog: %w", err)
	}
	return nil
}

// ListCrisisLogs 由新到舊列出危機紀錄
func ListCrisisLogs(ctx context.Context, db database.DB, limit int) ([]model.CrisisLog, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Query(ctx,
		`SELECT id::text, session_id, student_id::text, is_crisis, source, provider, created_at
		 FROM crisis_logs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ListCrisisLogs: %w", err)
	}
	defer rows.Close()

	logs := []model.CrisisLog{}
	for rows.Next() {
		var l model.CrisisLog
		if err := rows.Scan(&l.ID, &l.SessionID, &l.StudentID, &l.IsCrisis, &l.Source, &l.Provider, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListCrisisLogs: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListCrisisLogs: %w", err)
	}
	return logs, nil
}
