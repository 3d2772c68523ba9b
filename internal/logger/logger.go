package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config описывает логгер storyctl. Stdout занят JSON-ответами команд,
// поэтому логи идут в stderr или в файл.
type Config struct {
	Level      string // debug, info, warn, error; неизвестное значение -> info
	Encoding   string // console или json
	OutputPath string // "stderr", "" или путь к файлу
}

// New собирает zap.Logger без caller и stacktrace.
func New(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level '%s', using 'info'\n", cfg.Level)
		level = zapcore.InfoLevel
	}

	sink, err := openSink(cfg.OutputPath)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(newEncoder(cfg.Encoding), sink, level)
	return zap.New(core, zap.ErrorOutput(zapcore.Lock(os.Stderr))), nil
}

func newEncoder(encoding string) zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	if strings.EqualFold(encoding, "console") {
		return zapcore.NewConsoleEncoder(encoderCfg)
	}
	return zapcore.NewJSONEncoder(encoderCfg)
}

func openSink(path string) (zapcore.WriteSyncer, error) {
	if path == "" || path == "stderr" {
		return zapcore.Lock(os.Stderr), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return zapcore.Lock(f), nil
}
