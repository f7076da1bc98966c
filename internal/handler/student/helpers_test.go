package student

import (
	"context"
	"net/http/httptest"
	"strings"

	"campus-care/internal/middleware"
	"campus-care/internal/model"
	"campus-care/internal/store"
	"campus-care/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type testValidator struct{ v *validator.Validate }

func (tv testValidator) Validate(i any) error { return tv.v.Struct(i) }

func restore() {
	getUserByID = store.GetUserByID
	updateUserProfile = store.UpdateUserProfile
	createStudentMood = store.CreateStudentMood
	listStudentMoods = store.ListStudentMoods
	createCrisisLog = store.CreateCrisisLog
	listUsersByRole = store.ListUsersByRole
}

var testStudent = &middleware.AuthUser{ID: "s1", Email: "s@x.io", Role: model.RoleStudent}

// serve 以指定身分執行 handler，回傳錯誤時交給 echo 寫出
func serve(h echo.HandlerFunc, method, target, body string, user *middleware.AuthUser) *httptest.ResponseRecorder {
	e := echo.New()
	e.Validator = testValidator{v: validator.New()}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.ContextUserKey, user)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

// syncPool 立即在呼叫端執行工作
type syncPool struct {
	names []string
	err   error
}

func (p *syncPool) Submit(name string, t worker.Task) error {
	if p.err != nil {
		return p.err
	}
	p.names = append(p.names, name)
	t(context.Background())
	return nil
}

func (p *syncPool) Stop() {}
