package model

import "time"

type CrisisLog struct {
	ID        string    `db:"id" json:"id"`
	SessionID string    `db:"session_id" json:"session_id"`
	StudentID string    `db:"student_id" json:"student_id"`
	IsCrisis  bool      `db:"is_crisis" json:"is_crisis"`
	Source    string    `db:"source" json:"source"`
	Provider  string    `db:"provider" json:"provider"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
