package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"campus-care/internal/database"
	"campus-care/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func userVals(id, email string, role model.Role) []any {
	return []any{id, email, "hash", string(role), "Alice", "0912", now, now}
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()

	t.Run("by email ok", func(t *testing.T) {
		var gotArgs []any
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
				require.Contains(t, sql, "WHERE email = $1")
				gotArgs = args
				return &fakeRow{vals: userVals("u1", "a@x.io", model.RoleAdmin)}
			},
		}
		u, err := GetUserByEmail(ctx, db, "a@x.io")
		require.NoError(t, err)
		require.Equal(t, []any{"a@x.io"}, gotArgs)
		require.Equal(t, "u1", u.ID)
		require.Equal(t, model.RoleAdmin, u.Role)
		require.True(t, u.IsAdmin())
	})

	t.Run("by id no rows", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeRow{scanErr: pgx.ErrNoRows}
			},
		}
		_, err := GetUserByID(ctx, db, "missing")
		require.ErrorIs(t, err, ErrNotFound)
		require.ErrorContains(t, err, "GetUserByID")
	})

	t.Run("by email other error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeRow{scanErr: errors.New("conn reset")}
			},
		}
		_, err := GetUserByEmail(ctx, db, "a@x.io")
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to student", func(t *testing.T) {
		var gotArgs []any
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				gotArgs = args
				return &fakeRow{vals: []any{"new-id", now, now}}
			},
		}
		u, err := CreateUser(ctx, db, &model.User{Email: "s@x.io", PasswordHash: "h"})
		require.NoError(t, err)
		require.Equal(t, "new-id", u.ID)
		require.Equal(t, model.RoleStudent, u.Role)
		require.Equal(t, "student", gotArgs[2])
		require.Equal(t, now, u.CreatedAt)
	})

	t.Run("error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeRow{scanErr: errors.New("duplicate key")}
			},
		}
		_, err := CreateUser(ctx, db, &model.User{Email: "s@x.io"})
		require.ErrorContains(t, err, "CreateUser")
		require.False(t, IsDuplicate(err))
	})

	t.Run("unique violation", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeRow{scanErr: &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}}
			},
		}
		_, err := CreateUser(ctx, db, &model.User{Email: "s@x.io"})
		require.ErrorIs(t, err, ErrDuplicate)
		require.True(t, IsDuplicate(err))
	})
}

func TestIsDuplicate(t *testing.T) {
	require.True(t, IsDuplicate(&pgconn.PgError{Code: "23505"}))
	require.True(t, IsDuplicate(fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "23505"})))
	require.False(t, IsDuplicate(&pgconn.PgError{Code: "23503"}))
	require.False(t, IsDuplicate(errors.New("boom")))
	require.False(t, IsDuplicate(nil))
}

func TestUpdateUserProfile(t *testing.T) {
	ctx := context.Background()
	db := &database.FakeDB{
		QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			require.Equal(t, []any{"Bob", "0987", "u1"}, args)
			vals := userVals("u1", "b@x.io", model.RoleStudent)
			vals[4] = "Bob"
			vals[5] = "0987"
			return &fakeRow{vals: vals}
		},
	}
	u, err := UpdateUserProfile(ctx, db, "u1", "Bob", "0987")
	require.NoError(t, err)
	require.Equal(t, "Bob", u.Name)
	require.Equal(t, "0987", u.Contact)

	db.QueryRowFn = func(context.Context, string, ...any) pgx.Row {
		return &fakeRow{scanErr: pgx.ErrNoRows}
	}
	_, err = UpdateUserProfile(ctx, db, "u1", "Bob", "0987")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePasswordByEmail(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name    string
		tag     pgconn.CommandTag
		execErr error
		wantNF  bool
		wantErr bool
	}{
		{name: "ok", tag: pgconn.NewCommandTag("UPDATE 1")},
		{name: "no user", tag: pgconn.NewCommandTag("UPDATE 0"), wantErr: true, wantNF: true},
		{name: "exec error", execErr: errors.New("boom"), wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := &database.FakeDB{
				ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
					return tc.tag, tc.execErr
				},
			}
			err := UpdatePasswordByEmail(ctx, db, "a@x.io", "h")
			if !tc.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Equal(t, tc.wantNF, errors.Is(err, ErrNotFound))
		})
	}
}

func TestListUsersByRole(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		rows := &fakeRows{data: [][]any{
			userVals("u1", "a@x.io", model.RoleStudent),
			userVals("u2", "b@x.io", model.RoleStudent),
		}}
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
				require.Equal(t, []any{"student"}, args)
				return rows, nil
			},
		}
		users, err := ListUsersByRole(ctx, db, model.RoleStudent)
		require.NoError(t, err)
		require.Len(t, users, 2)
		require.Equal(t, "b@x.io", users[1].Email)
		require.True(t, rows.closed)
	})

	t.Run("empty is not nil", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
				return &fakeRows{}, nil
			},
		}
		users, err := ListUsersByRole(ctx, db, model.RoleAdmin)
		require.NoError(t, err)
		require.NotNil(t, users)
		require.Empty(t, users)
	})

	errCases := map[string]func() (pgx.Rows, error){
		"query": func() (pgx.Rows, error) { return nil, errors.New("q") },
		"scan": func() (pgx.Rows, error) {
			return &fakeRows{data: [][]any{{}}, scanErr: errors.New("s")}, nil
		},
		"rows err": func() (pgx.Rows, error) { return &fakeRows{err: errors.New("r")}, nil },
	}
	for name, fn := range errCases {
		t.Run(name, func(t *testing.T) {
			db := &database.FakeDB{
				QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) { return fn() },
			}
			_, err := ListUsersByRole(ctx, db, model.RoleStudent)
			require.ErrorContains(t, err, "ListUsersByRole")
		})
	}
}
