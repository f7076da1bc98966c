package crisis

import (
	"context"

	"campus-care/internal/config"
)

// NewProviders 為已設定金鑰的供應商建立 Completer
func NewProviders(ctx context.Context, cfg config.LLMConfig) (map[string]Completer, error) {
	providers := map[string]Completer{}
	if cfg.GroqAPIKey != "" {
		providers["groq"] = NewGroqClient(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel, cfg.Timeout)
	}
	if cfg.GoogleAPIKey != "" {
		g, err := NewGeminiClient(ctx, cfg.GoogleAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		providers["gemini"] = g
	}
	return providers, nil
}
