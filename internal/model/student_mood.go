package model

import "time"

type Mood string

const (
	MoodHappy     Mood = "happy"
	MoodSad       Mood = "sad"
	MoodAngry     Mood = "angry"
	MoodSurprised Mood = "surprised"
	MoodDisgusted Mood = "disgusted"
	MoodFearful   Mood = "fearful"
	MoodNeutral   Mood = "neutral"
)

// Moods 依臉部辨識模型輸出順序列出所有情緒
var Moods = []Mood{MoodHappy, MoodSad, MoodAngry, MoodSurprised, MoodDisgusted, MoodFearful, MoodNeutral}

type StudentMood struct {
	ID        string    `db:"id" json:"id"`
	StudentID string    `db:"student_id" json:"student_id"`
	Mood      Mood      `db:"mood" json:"mood"`
	MoodScore float64   `db:"mood_score" json:"mood_score"`
	Date      time.Time `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
