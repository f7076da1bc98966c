// File: internal/handler/admin/admin.go
package admin

import (
	"errors"
	"net/http"
	"strconv"

	"campus-care/internal/api"
	"campus-care/internal/database"
	"campus-care/internal/model"
	"campus-care/internal/store"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// store 呼叫點，測試可覆寫
var (
	getUserByID      = store.GetUserByID
	listUsersByRole  = store.ListUsersByRole
	listStudentMoods = store.ListStudentMoods
	listCrisisLogs   = store.ListCrisisLogs
)

func internalError(err error) error {
	return echo.NewHTTPError(http.StatusInternalServerError, api.Fail("Internal server error")).SetInternal(err)
}

// parseUUIDParam 讀取必填的 uuid 查詢參數
func parseUUIDParam(c echo.Context, name string) (string, bool) {
	id, err := uuid.Parse(c.QueryParam(name))
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// IndexHandler 管理員命名空間存活檢查
// @Summary     Admin index
// @Tags        admin
// @Produce     plain
// @Success     200 {string} string "OK"
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin [get]
func IndexHandler(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// ListStudentsHandler 列出所有學生
// @Summary     學生列表
// @Tags        admin
// @Produce     json
// @Success     200 {object} api.SuccessResponse{data=[]api.UserResponse}
// @Failure     403 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/students [get]
func ListStudentsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsersByRole(c.Request().Context(), db, model.RoleStudent)
		if err != nil {
			return internalError(err)
		}
		resp := make([]api.UserResponse, 0, len(users))
		for i := range users {
			resp = append(resp, api.NewUserResponse(&users[i]))
		}
		return c.JSON(http.StatusOK, api.OK(resp))
	}
}

// GetUserHandler 取得單一使用者
// @Summary     使用者詳細資料
// @Tags        admin
// @Produce     json
// @Param       userId query    string true "使用者 uuid"
// @Success     200    {object} api.SuccessResponse{data=api.UserResponse}
// @Failure     400    {object} api.ErrorResponse
// @Failure     404    {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/user [get]
func GetUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := parseUUIDParam(c, "userId")
		if !ok {
			return c.JSON(http.StatusBadRequest, api.Fail("Invalid userId"))
		}
		user, err := getUserByID(c.Request().Context(), db, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.Fail("User not found"))
			}
			return internalError(err)
		}
		return c.JSON(http.StatusOK, api.OK(api.NewUserResponse(user)))
	}
}

// ListMoodsHandler 列出指定學生的情緒紀錄
// @Summary     學生情緒紀錄
// @Tags        admin
// @Produce     json
// @Param       studentId query    string true  "學生 uuid"
// @Param       limit     query    int    false "最多筆數"
// @Success     200       {object} api.SuccessResponse{data=[]model.StudentMood}
// @Failure     400       {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/moods [get]
func ListMoodsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := parseUUIDParam(c, "studentId")
		if !ok {
			return c.JSON(http.StatusBadRequest, api.Fail("Invalid studentId"))
		}
		limit, ok := parseLimit(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, api.Fail("Invalid limit"))
		}
		moods, err := listStudentMoods(c.Request().Context(), db, id, limit)
		if err != nil {
			return internalError(err)
		}
		return c.JSON(http.StatusOK, api.OK(moods))
	}
}

// ListCrisisLogsHandler 列出最近的危機判定紀錄
// @Summary     危機紀錄
// @Tags        admin
// @Produce     json
// @Param       limit query    int false "最多筆數，預設 100"
// @Success     200   {object} api.SuccessResponse{data=[]model.CrisisLog}
// @Failure     400   {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/crisis-logs [get]
func ListCrisisLogsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit, ok := parseLimit(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, api.Fail("Invalid limit"))
		}
		logs, err := listCrisisLogs(c.Request().Context(), db, limit)
		if err != nil {
			return internalError(err)
		}
		return c.JSON(http.StatusOK, api.OK(logs))
	}
}

func parseLimit(c echo.Context) (int, bool) {
	v := c.QueryParam("limit")
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
