package loopback

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the logger shared by every System in the process.
// Logons, logoffs and raised exceptions are logged at debug level.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger sets the shared logger. Call it before creating a System.
func SetLogger(l *zap.Logger) {
	logger = l
}
