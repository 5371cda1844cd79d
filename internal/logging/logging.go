package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"quiz_answer_llm/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileSink mirrors log entries into a JSON lines file. A sink without a file
// leaves loggers untouched.
type FileSink struct {
	file  *os.File
	level zapcore.Level
}

func NewFileSink(cfg config.Config) (*FileSink, error) {
	file, err := openLogFile(cfg.LogFile)
	if err != nil {
		return nil, err
	}

	level := zapcore.InfoLevel
	if cfg.Debug {
		level = zapcore.DebugLevel
	}

	return &FileSink{file: file, level: level}, nil
}

func (s *FileSink) Enabled() bool {
	return s != nil && s.file != nil
}

func (s *FileSink) Attach(base *zap.Logger) *zap.Logger {
	if !s.Enabled() {
		return base
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.Lock(s.file), s.level)
	return base.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, fileCore)
	}))
}

func (s *FileSink) Close() error {
	if !s.Enabled() {
		return nil
	}
	return errors.Join(s.file.Sync(), s.file.Close())
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return file, nil
}
