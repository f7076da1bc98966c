package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"campus-care/internal/model"
	"campus-care/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type testValidator struct{ v *validator.Validate }

func (tv testValidator) Validate(i any) error { return tv.v.Struct(i) }

// fakeAuth 以函式欄位模擬 Authenticator
type fakeAuth struct {
	registerFn func(service.RegisterInput) (*model.User, string, error)
	loginFn    func(email, password string) (*model.User, string, error)
	sendFn     func(email string) error
	verifyFn   func(email string, code int) error
	resetFn    func(email string, code int, pw string) error
}

func (f *fakeAuth) Register(_ context.Context, in service.RegisterInput) (*model.User, string, error) {
	return f.registerFn(in)
}
func (f *fakeAuth) Login(_ context.Context, email, password string) (*model.User, string, error) {
	return f.loginFn(email, password)
}
func (f *fakeAuth) SendOTP(_ context.Context, email string) error { return f.sendFn(email) }
func (f *fakeAuth) VerifyOTP(_ context.Context, email string, code int) error {
	return f.verifyFn(email, code)
}
func (f *fakeAuth) ResetPassword(_ context.Context, email string, code int, pw string) error {
	return f.resetFn(email, code, pw)
}

func do(h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	e := echo.New()
	e.Validator = testValidator{v: validator.New()}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRegisterHandler(t *testing.T) {
	var got service.RegisterInput
	svc := &fakeAuth{registerFn: func(in service.RegisterInput) (*model.User, string, error) {
		got = in
		if in.Email == "dup@x.io" {
			return nil, "", service.ErrUserExists
		}
		return &model.User{ID: "u1"}, "tok", nil
	}}

	rec := do(RegisterHandler(svc), `{"email":"new@x.io","password":"secret1","name":"N","contact":"1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":true,"data":{"token":"tok"}}`, rec.Body.String())
	require.Equal(t, service.RegisterInput{Email: "new@x.io", Password: "secret1", Name: "N", Contact: "1"}, got)

	rec = do(RegisterHandler(svc), `{"email":"dup@x.io","password":"secret1"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"success":false,"error":{"message":"User already exists"}}`, rec.Body.String())
	require.NotContains(t, rec.Body.String(), "token")

	rec = do(RegisterHandler(svc), `{"email":"not-an-email","password":"secret1"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(RegisterHandler(svc), `{bad json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid request body")
}

func TestLoginHandler(t *testing.T) {
	svc := &fakeAuth{loginFn: func(email, password string) (*model.User, string, error) {
		if email == "a@x.io" && password == "right" {
			return &model.User{}, "tok", nil
		}
		if email == "err@x.io" {
			return nil, "", errors.New("db down")
		}
		return nil, "", service.ErrInvalidCredentials
	}}

	rec := do(LoginHandler(svc), `{"email":"a@x.io","password":"right"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"token":"tok"`)

	wrong := do(LoginHandler(svc), `{"email":"a@x.io","password":"wrong"}`)
	unknown := do(LoginHandler(svc), `{"email":"nobody@x.io","password":"right"}`)
	require.Equal(t, http.StatusUnauthorized, wrong.Code)
	require.Equal(t, wrong.Code, unknown.Code)
	require.Equal(t, wrong.Body.String(), unknown.Body.String())
	require.Contains(t, wrong.Body.String(), "Invalid email or password")

	rec = do(LoginHandler(svc), `{"email":"err@x.io","password":"x"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "db down")

	rec = do(LoginHandler(svc), `{"email":"a@x.io"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOTPHandlers(t *testing.T) {
	svc := &fakeAuth{
		sendFn: func(email string) error {
			if email == "again@x.io" {
				return service.ErrOTPAlreadySent
			}
			return nil
		},
		verifyFn: func(_ string, code int) error {
			switch code {
			case 123456:
				return nil
			case 999999:
				return service.ErrOTPExpired
			}
			return service.ErrOTPInvalid
		},
		resetFn: func(email string, _ int, _ string) error {
			if email == "ghost@x.io" {
				return service.ErrUserNotFound
			}
			return nil
		},
	}

	cases := []struct {
		name   string
		h      echo.HandlerFunc
		body   string
		status int
		msg    string
	}{
		{"send ok", SendOTPHandler(svc), `{"email":"a@x.io"}`, http.StatusOK, "OTP sent successfully"},
		{"send again", SendOTPHandler(svc), `{"email":"again@x.io"}`, http.StatusBadRequest, "OTP already sent. Please check your email."},
		{"verify ok", VerifyOTPHandler(svc), `{"email":"a@x.io","code":123456}`, http.StatusOK, "OTP verified successfully"},
		{"verify invalid", VerifyOTPHandler(svc), `{"email":"a@x.io","code":111111}`, http.StatusBadRequest, "Invalid OTP. Please try again."},
		{"verify expired", VerifyOTPHandler(svc), `{"email":"a@x.io","code":999999}`, http.StatusBadRequest, "OTP has expired. Please request a new one."},
		{"verify short code", VerifyOTPHandler(svc), `{"email":"a@x.io","code":12}`, http.StatusBadRequest, "Code"},
		{"reset ok", ResetPasswordHandler(svc), `{"email":"a@x.io","code":123456,"new_password":"newpass"}`, http.StatusOK, "Password reset successfully"},
		{"reset ghost", ResetPasswordHandler(svc), `{"email":"ghost@x.io","code":123456,"new_password":"newpass"}`, http.StatusBadRequest, "User with this email does not exist"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(tc.h, tc.body)
			require.Equal(t, tc.status, rec.Code)
			require.Contains(t, rec.Body.String(), tc.msg)
		})
	}
}
