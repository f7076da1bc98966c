package logger

import (
	"fmt"

	"campus-care/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New 依設定建立 zap logger，format 為 console 時使用開發模式輸出
func New(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	switch cfg.Format {
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("無效的日誌等級 %q: %w", cfg.Level, err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	l, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("初始化日誌失敗: %w", err)
	}
	return l, nil
}
