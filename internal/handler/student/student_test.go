package student

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"campus-care/internal/database"
	"campus-care/internal/model"
	"campus-care/internal/store"

	"github.com/stretchr/testify/require"
)

func TestMeHandler(t *testing.T) {
	rec := serve(MeHandler, http.MethodGet, "/api/student/me", "", testStudent)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":true,"data":{"id":"s1","email":"s@x.io","role":"student"}}`, rec.Body.String())

	rec = serve(MeHandler, http.MethodGet, "/api/student/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetDetailsHandler(t *testing.T) {
	t.Cleanup(restore)
	db := &database.FakeDB{}

	getUserByID = func(_ context.Context, _ database.DB, id string) (*model.User, error) {
		require.Equal(t, "s1", id)
		return &model.User{ID: "s1", Email: "s@x.io", PasswordHash: "secret-hash", Name: "Sam"}, nil
	}
	rec := serve(GetDetailsHandler(db), http.MethodGet, "/", "", testStudent)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"name":"Sam"`)
	require.NotContains(t, rec.Body.String(), "secret-hash")

	getUserByID = func(context.Context, database.DB, string) (*model.User, error) {
		return nil, store.ErrNotFound
	}
	require.Equal(t, http.StatusNotFound, serve(GetDetailsHandler(db), http.MethodGet, "/", "", testStudent).Code)

	getUserByID = func(context.Context, database.DB, string) (*model.User, error) {
		return nil, errors.New("boom")
	}
	require.Equal(t, http.StatusInternalServerError, serve(GetDetailsHandler(db), http.MethodGet, "/", "", testStudent).Code)
}

func TestUpdateDetailsHandler(t *testing.T) {
	t.Cleanup(restore)
	updateUserProfile = func(_ context.Context, _ database.DB, id, name, contact string) (*model.User, error) {
		return &model.User{ID: id, Name: name, Contact: contact}, nil
	}
	h := UpdateDetailsHandler(&database.FakeDB{})

	rec := serve(h, http.MethodPost, "/", `{"name":"New","contact":"0900"}`, testStudent)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"contact":"0900"`)

	rec = serve(h, http.MethodPost, "/", `{"contact":"0900"}`, testStudent)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFacialDetectionHandler(t *testing.T) {
	t.Cleanup(restore)
	var saved *model.StudentMood
	createStudentMood = func(_ context.Context, _ database.DB, m *model.StudentMood) (*model.StudentMood, error) {
		saved = m
		m.ID = "m1"
		m.Date = time.Now()
		return m, nil
	}
	h := FacialDetectionHandler(&database.FakeDB{})

	rec := serve(h, http.MethodPost, "/", `{"mood":"happy","mood_score":0.87}`, testStudent)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "s1", saved.StudentID)
	require.Equal(t, model.MoodHappy, saved.Mood)
	require.InDelta(t, 0.87, saved.MoodScore, 1e-9)

	saved = nil
	rec = serve(h, http.MethodPost, "/", `{"mood":"happy","mood_score":0}`, testStudent)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, saved)

	for _, body := range []string{
		`{"mood":"bored","mood_score":0.5}`,
		`{"mood":"sad","mood_score":1.5}`,
		`{"mood":"sad","mood_score":-0.1}`,
		`{"mood":"sad"}`,
	} {
		rec = serve(h, http.MethodPost, "/", body, testStudent)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestListMoodsHandler(t *testing.T) {
	t.Cleanup(restore)
	var gotLimit int
	listStudentMoods = func(_ context.Context, _ database.DB, id string, limit int) ([]model.StudentMood, error) {
		gotLimit = limit
		return []model.StudentMood{{ID: "m1", StudentID: id, Mood: model.MoodSad}}, nil
	}
	h := ListMoodsHandler(&database.FakeDB{})

	rec := serve(h, http.MethodGet, "/?limit=10", "", testStudent)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 10, gotLimit)
	require.Contains(t, rec.Body.String(), `"mood":"sad"`)

	require.Equal(t, http.StatusBadRequest, serve(h, http.MethodGet, "/?limit=x", "", testStudent).Code)
}
