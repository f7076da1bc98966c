package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"campus-care/internal/database"
	"campus-care/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func TestCreateStudentMood(t *testing.T) {
	ctx := context.Background()

	t.Run("zero date sends null", func(t *testing.T) {
		var gotArgs []any
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				gotArgs = args
				return &fakeRow{vals: []any{"m1", now, now}}
			},
		}
		m, err := CreateStudentMood(ctx, db, &model.StudentMood{StudentID: "u1", Mood: model.MoodSad, MoodScore: 0.8})
		require.NoError(t, err)
		require.Equal(t, "m1", m.ID)
		require.Equal(t, now, m.Date)
		require.Equal(t, "sad", gotArgs[1])
		require.Nil(t, gotArgs[3])
	})

	t.Run("explicit date", func(t *testing.T) {
		date := now.Add(-24 * time.Hour)
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				require.Equal(t, date, args[3])
				return &fakeRow{vals: []any{"m2", date, now}}
			},
		}
		m, err := CreateStudentMood(ctx, db, &model.StudentMood{StudentID: "u1", Mood: model.MoodHappy, Date: date})
		require.NoError(t, err)
		require.Equal(t, date, m.Date)
	})

	t.Run("error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeRow{scanErr: errors.New("check violation")}
			},
		}
		_, err := CreateStudentMood(ctx, db, &model.StudentMood{StudentID: "u1", Mood: model.MoodHappy})
		require.ErrorContains(t, err, "CreateStudentMood")
	})
}

func TestListStudentMoods(t *testing.T) {
	ctx := context.Background()

	t.Run("with limit", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
				require.Contains(t, sql, "LIMIT $2")
				require.Equal(t, []any{"u1", 5}, args)
				return &fakeRows{data: [][]any{{"m1", "u1", "fearful", 0.4, now, now}}}, nil
			},
		}
		moods, err := ListStudentMoods(ctx, db, "u1", 5)
		require.NoError(t, err)
		require.Len(t, moods, 1)
		require.Equal(t, model.MoodFearful, moods[0].Mood)
		require.InDelta(t, 0.4, moods[0].MoodScore, 1e-9)
	})

	t.Run("no limit", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
				require.NotContains(t, sql, "LIMIT")
				require.Len(t, args, 1)
				return &fakeRows{}, nil
			},
		}
		moods, err := ListStudentMoods(ctx, db, "u1", 0)
		require.NoError(t, err)
		require.Empty(t, moods)
	})

	t.Run("query error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
				return nil, errors.New("boom")
			},
		}
		_, err := ListStudentMoods(ctx, db, "u1", 0)
		require.ErrorContains(t, err, "ListStudentMoods")
	})
}
