// Package log provides centralized logging functionality using zap logger.
package log

import (
	"fmt"

	"go.uber.org/zap"
)

var log *zap.SugaredLogger

// Init initializes the package-level logger.
func Init(debug bool) error {
	var zapLogger *zap.Logger
	var err error

	if debug {
		zapLogger, err = zap.NewDevelopment(zap.AddCallerSkip(1))
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.DisableCaller = true
		zapLogger, err = cfg.Build(zap.AddCallerSkip(1))
	}
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %v", err)
	}

	log = zapLogger.Sugar()
	return nil
}

// Sync flushes any buffered log entries.
func Sync() {
	if log != nil {
		log.Sync()
	}
}

func logger() *zap.SugaredLogger {
	if log == nil {
		// Fallback logger if not initialized
		base, _ := zap.NewProduction(zap.AddCallerSkip(1))
		log = base.Sugar()
	}
	return log
}

// Package-level convenience functions
func Debugf(template string, args ...interface{}) {
	logger().Debugf(template, args...)
}

func Info(args ...interface{}) {
	logger().Info(args...)
}

func Infof(template string, args ...interface{}) {
	logger().Infof(template, args...)
}

func Warnf(template string, args ...interface{}) {
	logger().Warnf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	logger().Errorf(template, args...)
}

func Fatalf(template string, args ...interface{}) {
	logger().Fatalf(template, args...)
}
