// File: internal/handler/student/student.go
package student

import (
	"errors"
	"net/http"
	"strconv"

	"campus-care/internal/api"
	"campus-care/internal/database"
	"campus-care/internal/middleware"
	"campus-care/internal/model"
	"campus-care/internal/store"

	"github.com/labstack/echo/v4"
)

// store 呼叫點，測試可覆寫
var (
	getUserByID       = store.GetUserByID
	updateUserProfile = store.UpdateUserProfile
	createStudentMood = store.CreateStudentMood
	listStudentMoods  = store.ListStudentMoods
	createCrisisLog   = store.CreateCrisisLog
	listUsersByRole   = store.ListUsersByRole
)

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, api.Fail("Invalid token"))
}

func internalError(err error) error {
	return echo.NewHTTPError(http.StatusInternalServerError, api.Fail("Internal server error")).SetInternal(err)
}

func bindAndValidate(c echo.Context, req any) bool {
	if err := c.Bind(req); err != nil {
		_ = c.JSON(http.StatusBadRequest, api.Fail("Invalid request body"))
		return false
	}
	if err := c.Validate(req); err != nil {
		_ = c.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		return false
	}
	return true
}

// MeHandler 回傳目前登入者身分
// @Summary     目前使用者
// @Tags        student
// @Produce     json
// @Success     200 {object} api.SuccessResponse{data=api.MeData}
// @Failure     401 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /student/me [get]
func MeHandler(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorized(c)
	}
	return c.JSON(http.StatusOK, api.OK(api.MeData{ID: u.ID, Email: u.Email, Role: u.Role}))
}

// GetDetailsHandler 取得完整個人資料
// @Summary     取得個人資料
// @Tags        student
// @Produce     json
// @Success     200 {object} api.SuccessResponse{data=api.UserResponse}
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /student/details [get]
func GetDetailsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, ok := middleware.CurrentUser(c)
		if !ok {
			return unauthorized(c)
		}
		user, err := getUserByID(c.Request().Context(), db, u.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.Fail("User not found"))
			}
			return internalError(err)
		}
		return c.JSON(http.StatusOK, api.OK(api.NewUserResponse(user)))
	}
}

// UpdateDetailsHandler 更新姓名與聯絡方式
// @Summary     更新個人資料
// @Tags        student
// @Accept      json
// @Produce     json
// @Param       body body     api.UpdateDetailsRequest true "個人資料"
// @Success     200  {object} api.SuccessResponse{data=api.UserResponse}
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /student/details [post]
func UpdateDetailsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, ok := middleware.CurrentUser(c)
		if !ok {
			return unauthorized(c)
		}
		var req api.UpdateDetailsRequest
		if !bindAndValidate(c, &req) {
			return nil
		}
		user, err := updateUserProfile(c.Request().Context(), db, u.ID, req.Name, req.Contact)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.Fail("User not found"))
			}
			return internalError(err)
		}
		return c.JSON(http.StatusOK, api.OK(api.NewUserResponse(user)))
	}
}

// FacialDetectionHandler 儲存臉部辨識得到的情緒樣本
// @Summary     記錄情緒
// @Description mood 為七種情緒之一，mood_score 介於 0 與 1
// @Tags        student
// @Accept      json
// @Produce     json
// @Param       body body     api.FacialDetectionRequest true "情緒樣本"
// @Success     200  {object} api.SuccessResponse{data=model.StudentMood}
// @Failure     400  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /student/facial-detection [post]
func FacialDetectionHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, ok := middleware.CurrentUser(c)
		if !ok {
			return unauthorized(c)
		}
		var req api.FacialDetectionRequest
		if !bindAndValidate(c, &req) {
			return nil
		}
		m, err := createStudentMood(c.Request().Context(), db, &model.StudentMood{
			StudentID: u.ID,
			Mood:      model.Mood(req.Mood),
			MoodScore: *req.MoodScore,
		})
		if err != nil {
			return internalError(err)
		}
		return c.JSON(http.StatusOK, api.OK(m))
	}
}

// ListMoodsHandler 由新到舊列出自己的情緒紀錄
// @Summary     情緒紀錄
// @Tags        student
// @Produce     json
// @Param       limit query    int false "最多筆數"
// @Success     200   {object} api.SuccessResponse{data=[]model.StudentMood}
// @Failure     400   {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /student/moods [get]
func ListMoodsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, ok := middleware.CurrentUser(c)
		if !ok {
			return unauthorized(c)
		}
		limit := 0
		if v := c.QueryParam("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return c.JSON(http.StatusBadRequest, api.Fail("Invalid limit"))
			}
			limit = n
		}
		moods, err := listStudentMoods(c.Request().Context(), db, u.ID, limit)
		if err != nil {
			return internalError(err)
		}
		return c.JSON(http.StatusOK, api.OK(moods))
	}
}
