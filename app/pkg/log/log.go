package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level      string `help:"log level, one of [debug|info|warn|error]" devDefault:"debug" default:"info"`
	File       string `help:"log file path, empty logs to stderr only" default:""`
	MaxSize    int    `help:"max size of a log file in MB before rotation" default:"100"`
	MaxBackups int    `help:"rotated files to keep" default:"5"`
	MaxAge     int    `help:"days to keep rotated files" default:"30"`
}

// NewLog builds the process logger and installs it as zap's global.
func NewLog(conf *Config) *zap.Logger {
	level := zapcore.InfoLevel
	_ = level.Set(conf.Level)

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(os.Stderr), level),
	}
	if conf.File != "" {
		rotate := &lumberjack.Logger{
			Filename:   conf.File,
			MaxSize:    conf.MaxSize,
			MaxBackups: conf.MaxBackups,
			MaxAge:     conf.MaxAge,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rotate), level))
	}
	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	zap.ReplaceGlobals(logger)
	return logger
}
