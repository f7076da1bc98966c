// File: internal/handler/student/chat.go
package student

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"campus-care/internal/api"
	"campus-care/internal/crisis"
	"campus-care/internal/database"
	"campus-care/internal/mail"
	"campus-care/internal/middleware"
	"campus-care/internal/model"
	"campus-care/internal/worker"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ChatDeps 聊天與危機判定所需的依賴
type ChatDeps struct {
	DB         database.DB
	Detector   *crisis.Detector
	Pool       worker.Pool
	Mailer     mail.Sender
	AdminEmail string
	Timeout    time.Duration
	Logger     *zap.Logger
}

// ChatHandler 先做危機判定，危機時回安全訊息並通知管理員，否則由模型回覆
// @Summary     聊天
// @Description 最後一則訊息必須為非空的使用者訊息
// @Tags        student
// @Accept      json
// @Produce     json
// @Param       body body     api.ChatRequest true "對話紀錄"
// @Success     200  {object} api.SuccessResponse{data=api.ChatData}
// @Failure     400  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     502  {object} api.ErrorResponse
// @Failure     503  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /student/chat [post]
func ChatHandler(d ChatDeps) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, ok := middleware.CurrentUser(c)
		if !ok {
			return unauthorized(c)
		}
		var req api.ChatRequest
		if !bindAndValidate(c, &req) {
			return nil
		}
		last := req.Messages[len(req.Messages)-1]
		text := strings.TrimSpace(last.Content)
		if last.Role != crisis.RoleUser || text == "" {
			return c.JSON(http.StatusBadRequest, api.Fail("Message cannot be empty"))
		}

		sessionID := req.SessionID
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		ctx := c.Request().Context()

		result, err := d.Detector.Detect(ctx, text, req.ModelProvider)
		if err != nil {
			return providerError(c, err)
		}

		// 只有實際詢問過模型時才記錄供應商
		provider := ""
		if d.Detector.Mode() != crisis.ModeKeyword && result.Source != crisis.SourceKeyword {
			if p, err := d.Detector.Provider(req.ModelProvider); err == nil {
				provider = p.Name()
			}
		}
		d.logChat(u, sessionID, result, provider)

		if result.Crisis {
			d.alertAdmins(u, sessionID, result)
			return c.JSON(http.StatusOK, api.OK(api.ChatData{
				Reply:     crisis.SafetyMessage,
				Crisis:    true,
				Source:    string(result.Source),
				SessionID: sessionID,
			}))
		}

		completer, err := d.Detector.Provider(req.ModelProvider)
		if err != nil {
			return providerError(c, err)
		}
		reply, err := crisis.Reply(ctx, completer, req.Messages, d.Timeout)
		if err != nil {
			return providerError(c, err)
		}
		return c.JSON(http.StatusOK, api.OK(api.ChatData{
			Reply:     reply,
			Crisis:    false,
			Source:    string(result.Source),
			Provider:  completer.Name(),
			SessionID: sessionID,
		}))
	}
}

// CrisisCheckHandler 直接回傳危機判定結果
// @Summary     危機判定
// @Tags        student
// @Accept      json
// @Produce     json
// @Param       body body     api.CrisisCheckRequest true "待判定文字"
// @Success     200  {object} api.SuccessResponse{data=crisis.Result}
// @Failure     400  {object} api.ErrorResponse
// @Failure     502  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /student/crisis-check [post]
func CrisisCheckHandler(detector *crisis.Detector) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CrisisCheckRequest
		if !bindAndValidate(c, &req) {
			return nil
		}
		result, err := detector.Detect(c.Request().Context(), req.Text, req.Provider)
		if err != nil {
			return providerError(c, err)
		}
		return c.JSON(http.StatusOK, api.OK(result))
	}
}

func providerError(c echo.Context, err error) error {
	if errors.Is(err, crisis.ErrUnknownProvider) {
		return c.JSON(http.StatusServiceUnavailable, api.Fail("Model provider not configured"))
	}
	return echo.NewHTTPError(http.StatusBadGateway, api.Fail("Model provider request failed")).SetInternal(err)
}

// logChat 非同步寫入判定紀錄，不保存訊息內容
func (d ChatDeps) logChat(u *middleware.AuthUser, sessionID string, r crisis.Result, provider string) {
	entry := &model.CrisisLog{
		SessionID: sessionID,
		StudentID: u.ID,
		IsCrisis:  r.Crisis,
		Source:    string(r.Source),
		Provider:  provider,
	}
	err := d.Pool.Submit("crisis_log", func(ctx context.Context) {
		if err := createCrisisLog(ctx, d.DB, entry); err != nil {
			d.Logger.Error("write crisis log failed", zap.String("session_id", sessionID), zap.Error(err))
		}
	})
	if err != nil {
		d.Logger.Warn("crisis log not queued", zap.Error(err))
	}
}

// alertAdmins 非同步寄信給所有管理員，查無管理員時改寄 AdminEmail
func (d ChatDeps) alertAdmins(u *middleware.AuthUser, sessionID string, r crisis.Result) {
	err := d.Pool.Submit("crisis_alert", func(ctx context.Context) {
		var to []string
		admins, err := listUsersByRole(ctx, d.DB, model.RoleAdmin)
		if err != nil {
			d.Logger.Error("list admins failed", zap.Error(err))
		}
		for _, a := range admins {
			to = append(to, a.Email)
		}
		if len(to) == 0 && d.AdminEmail != "" {
			to = []string{d.AdminEmail}
		}
		if len(to) == 0 {
			d.Logger.Warn("crisis alert has no recipients", zap.String("session_id", sessionID))
			return
		}

		msg := mail.Message{
			To:      to,
			Subject: "Crisis alert: student may need immediate support",
			Body: fmt.Sprintf("A chat message from student %s (%s) was flagged as a crisis by %s detection.\n"+
				"Session: %s\nTime: %s\nPlease reach out to the student as soon as possible.",
				u.Email, u.ID, r.Source, sessionID, time.Now().UTC().Format(time.RFC3339)),
		}
		if err := d.Mailer.Send(ctx, msg); err != nil {
			d.Logger.Error("send crisis alert failed", zap.String("session_id", sessionID), zap.Error(err))
			return
		}
		d.Logger.Info("crisis alert sent", zap.String("session_id", sessionID), zap.Int("recipients", len(to)))
	})
	if err != nil {
		d.Logger.Warn("crisis alert not queued", zap.Error(err))
	}
}
