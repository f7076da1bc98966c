package store

import (
	"context"
	"fmt"

	"campus-care/internal/database"
	"campus-care/internal/model"
)

// CreateStudentMood 寫入一筆情緒紀錄；Date 為零值時由資料庫填入 now()
func CreateStudentMood(ctx context.Context, db database.DB, m *model.StudentMood) (*model.StudentMood, error) {
	var date any
	if !m.Date.IsZero() {
		date = m.Date
	}
	row := db.QueryRow(ctx,
		`INSERT INTO student_moods (student_id, mood, mood_score, date)
		 VALUES ($1, $2::mood, $3, COALESCE($4::timestamptz, now()))
		 RETURNING id::text, date, created_at`,
		m.StudentID,
		string(m.Mood),
		m.MoodScore,
		date,
	)
	if err := row.Scan(&m.ID, &m.Date, &m.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateStudentMood: %w", err)
	}
	return m, nil
}

// ListStudentMoods 由新到舊列出學生的情緒紀錄，limit <= 0 表示不限筆數
func ListStudentMoods(ctx context.Context, db database.DB, studentID string, limit int) ([]model.StudentMood, error) {
	query := `SELECT id::text, student_id::text, mood::text, mood_score, date, created_at
		 FROM student_moods WHERE student_id = $1 ORDER BY date DESC`
	args := []any{studentID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListStudentMoods: %w", err)
	}
	defer rows.Close()

	moods := []model.StudentMood{}
	for rows.Next() {
		var m model.StudentMood
		var mood string
		if err := rows.Scan(&m.ID, &m.StudentID, &mood, &m.MoodScore, &m.Date, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListStudentMoods: %w", err)
		}
		m.Mood = model.Mood(mood)
		moods = append(moods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListStudentMoods: %w", err)
	}
	return moods, nil
}
