package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log 全局 SugaredLogger，调用 Initialize 之前为 no-op。
var Log *zap.SugaredLogger = zap.NewNop().Sugar()

// Initialize 按级别与输出格式初始化全局日志。
// format 为 "console" 时使用开发格式，其余情况输出 JSON。
func Initialize(level string, format string) error {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	if strings.EqualFold(strings.TrimSpace(format), "console") {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	built, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = built.Sugar()
	return nil
}

// Sync 刷新缓冲日志，进程退出前调用。
func Sync() {
	_ = Log.Sync()
}
