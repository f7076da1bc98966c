package crisis

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const classifierSystemPrompt = "You are a binary classifier. Reply only YES or NO."

const crisisPromptTemplate = `Answer with exactly one word: YES or NO (only that word).

Question: Does the following user message indicate imminent suicidal intent or self-harm risk requiring emergency intervention?

User message:
"%s"

Please respond YES or NO.`

// Classifier 以模型做 YES/NO 危機判定
type Classifier struct {
	completer Completer
	timeout   time.Duration
}

func NewClassifier(c Completer, timeout time.Duration) *Classifier {
	return &Classifier{completer: c, timeout: timeout}
}

// IsCrisis 回覆包含 yes（不分大小寫）即為危機；不重試，錯誤直接回傳
func (c *Classifier) IsCrisis(ctx context.Context, text string) (bool, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	prompt := fmt.Sprintf(crisisPromptTemplate, text)
	reply, err := c.completer.Complete(ctx, classifierSystemPrompt, []Message{{Role: RoleUser, Content: prompt}})
	if err != nil {
		return false, err
	}
	return strings.Contains(strings.ToLower(reply), "yes"), nil
}
