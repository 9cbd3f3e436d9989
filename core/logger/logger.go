package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	sugar  = newDefault()
	levels = map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
)

func newDefault() *zap.SugaredLogger {
	l, err := zap.NewProduction(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

// Init replaces the package logger. level is one of debug, info, warn, error.
func Init(level string, development bool) error {
	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	if lvl, ok := levels[level]; ok {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	mu.Lock()
	sugar = l.Sugar()
	mu.Unlock()
	return nil
}

// Sync flushes buffered log entries.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = sugar.Sync()
}

// normalize turns call sites like logger.Error("Repo:Create", err) into a
// valid key/value list; a dangling value is reported under "error".
func normalize(kv []any) []any {
	if len(kv)%2 == 0 {
		return kv
	}
	if len(kv) == 1 {
		return []any{"error", kv[0]}
	}
	out := make([]any, 0, len(kv)+1)
	out = append(out, kv[:len(kv)-1]...)
	return append(out, "error", kv[len(kv)-1])
}

func Debug(msg string, kv ...any) {
	mu.RLock()
	defer mu.RUnlock()
	sugar.Debugw(msg, normalize(kv)...)
}

func Info(msg string, kv ...any) {
	mu.RLock()
	defer mu.RUnlock()
	sugar.Infow(msg, normalize(kv)...)
}

func Warn(msg string, kv ...any) {
	mu.RLock()
	defer mu.RUnlock()
	sugar.Warnw(msg, normalize(kv)...)
}

func Error(msg string, kv ...any) {
	mu.RLock()
	defer mu.RUnlock()
	sugar.Errorw(msg, normalize(kv)...)
}
