package logger

import (
	"os"
	"path/filepath"

	config "github.com/inference-gateway/desktop-mcp/config"
	zap "go.uber.org/zap"
	zapcore "go.uber.org/zap/zapcore"
)

var (
	base  = zap.NewNop()
	sugar = base.Sugar()
)

// Init builds the process logger. Output always goes to stderr because stdout
// carries the MCP stdio transport; when cfg.Logging.Dir is set a JSON log file
// is written there as well.
func Init(verbose bool, cfg *config.Config) {
	level := zapcore.InfoLevel
	if verbose || (cfg != nil && cfg.Logging.Debug) {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.Lock(os.Stderr), level),
	}

	if cfg != nil && cfg.Logging.Dir != "" {
		if err := os.MkdirAll(cfg.Logging.Dir, 0755); err == nil {
			path := filepath.Join(cfg.Logging.Dir, "desktop-mcp.log")
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err == nil {
				cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), level))
			}
		}
	}

	Set(zap.New(zapcore.NewTee(cores...)))
}

// Set replaces the process logger. Tests use it to install an observer.
func Set(l *zap.Logger) {
	base = l
	sugar = l.Sugar()
	zap.ReplaceGlobals(l)
}

// Close flushes buffered log entries
func Close() {
	_ = base.Sync()
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	sugar.Debugw(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	sugar.Infow(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	sugar.Warnw(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	sugar.Errorw(msg, args...)
}
