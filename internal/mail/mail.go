package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"campus-care/internal/config"
)

// ErrNotConfigured 未設定 SMTP 主機時回傳
var ErrNotConfigured = errors.New("mail not configured")

// Message 純文字郵件
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Sender 寄送郵件的介面，測試時以 FakeSender 替換
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// smtpSendMail 測試可覆寫
var smtpSendMail = smtp.SendMail

// SMTPSender 透過 net/smtp 寄信
type SMTPSender struct {
	addr string
	from string
	auth smtp.Auth
}

// New 依設定建立 Sender，SMTPHost 為空時回傳 Disabled
func New(cfg config.MailConfig) Sender {
	if cfg.SMTPHost == "" {
		return Disabled{}
	}
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.SMTPHost)
	}
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPSender{
		addr: net.JoinHostPort(cfg.SMTPHost, strconv.Itoa(cfg.SMTPPort)),
		from: from,
		auth: auth,
	}
}

// Send 寄出郵件；smtp.SendMail 不支援 context，僅在送出前檢查是否已取消
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return errors.New("mail: no recipients")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := smtpSendMail(s.addr, s.auth, s.from, msg.To, buildMessage(s.from, msg)); err != nil {
		return fmt.Errorf("mail: send to %s: %w", strings.Join(msg.To, ","), err)
	}
	return nil
}

func buildMessage(from string, msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + strings.Join(msg.To, ", ") + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String())
}

// Disabled 在未設定 SMTP 時使用，每次寄送都回傳 ErrNotConfigured
type Disabled struct{}

func (Disabled) Send(context.Context, Message) error { return ErrNotConfigured }

// FakeSender 測試用
type FakeSender struct {
	SendFn func(ctx context.Context, msg Message) error
}

func (f *FakeSender) Send(ctx context.Context, msg Message) error {
	if f.SendFn != nil {
		return f.SendFn(ctx, msg)
	}
	panic("unexpected Send")
}
