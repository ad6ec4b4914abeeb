package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	log *zap.Logger

	mu          sync.Mutex
	serviceName = "default"
)

// Init собирает продакшен-логгер; повторные вызовы безвредны.
func Init(name string) error {
	mu.Lock()
	defer mu.Unlock()
	if name != "" {
		serviceName = name
	}
	if log != nil {
		return nil
	}
	l, err := zap.NewProduction(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	log = l
	return nil
}

func get() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if log == nil {
		// до Init (в тестах) пишем через no-op конфигурацию
		log = zap.NewNop()
	}
	return log
}

func Info(format string, args ...interface{}) {
	get().With(
		zap.String("service", serviceName),
	).Info(fmt.Sprintf(format, args...))
}

func Error(format string, args ...interface{}) {
	get().With(
		zap.String("service", serviceName),
	).Error(fmt.Sprintf(format, args...))
}

func Fatal(format string, args ...interface{}) {
	get().With(
		zap.String("service", serviceName),
	).Fatal(fmt.Sprintf(format, args...))
}
