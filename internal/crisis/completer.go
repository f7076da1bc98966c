package crisis

import (
	"context"
	"errors"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrEmptyReply 模型回傳空內容
var ErrEmptyReply = errors.New("crisis: empty model reply")

// Message 一則對話訊息，Role 為 user 或 assistant
type Message struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

// Completer 一次性的對話補全
type Completer interface {
	Complete(ctx context.Context, system string, messages []Message) (string, error)
	Name() string
}
