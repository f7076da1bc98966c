package crisis

import (
	"context"
	"time"
)

const friendSystemPrompt = `You are a supportive best friend whose goal is to improve your friend's mental health.
Talk like a real friend: warm, casual and sometimes funny. Reply in the same language as the user.
If the user feels low, validate their feelings first, then gently suggest one small, doable action.
If the user is fine, celebrate with them or ask a fun question.
Never be cruel, shaming or overly medical.
If the user expresses self-harm, stop joking, respond calmly and urge them to contact a trusted person or local emergency services.`

// Reply 以朋友語氣產生聊天回覆
func Reply(ctx context.Context, c Completer, messages []Message, timeout time.Duration) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return c.Complete(ctx, friendSystemPrompt, messages)
}
