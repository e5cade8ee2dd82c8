package db

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

func getLogInterface(zapLog *zap.Logger, level string) logger.Interface {
	if zapLog == nil {
		return logger.Discard
	}
	var lv logger.LogLevel
	switch level {
	case "info":
		lv = logger.Info
	case "warn":
		lv = logger.Warn
	case "error":
		lv = logger.Error
	default:
		lv = logger.Silent
	}
	return &zapGormLogger{log: zapLog, level: lv}
}

type zapGormLogger struct {
	log   *zap.Logger
	level logger.LogLevel
}

func (l *zapGormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &zapGormLogger{log: l.log, level: level}
}

func (l *zapGormLogger) Info(_ context.Context, msg string, args ...any) {
	if l.level >= logger.Info {
		l.log.Sugar().Infof(msg, args...)
	}
}

func (l *zapGormLogger) Warn(_ context.Context, msg string, args ...any) {
	if l.level >= logger.Warn {
		l.log.Sugar().Warnf(msg, args...)
	}
}

func (l *zapGormLogger) Error(_ context.Context, msg string, args ...any) {
	if l.level >= logger.Error {
		l.log.Sugar().Errorf(msg, args...)
	}
}

func (l *zapGormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}
	sql, rows := fc()
	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= logger.Error:
		l.log.Error("sql", zap.String("query", sql), zap.Int64("rows", rows), zap.Duration("elapsed", elapsed), zap.Error(err))
	case l.level >= logger.Info:
		l.log.Debug("sql", zap.String("query", sql), zap.Int64("rows", rows), zap.Duration("elapsed", elapsed))
	}
}
