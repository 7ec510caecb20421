// Package logger provides structured logging for idrepo.
//
// It wraps Uber's zap logger behind a global Log variable. Log is built once
// and gated by a shared atomic level, which stays off until InitLogger is
// called, so library code and tests can log freely. Changing the level never
// replaces Log, so it is safe while other goroutines are logging.
//
//	logger.InitLogger("debug") // debug, info, warn, error
//
//	logger.Log.Info("reaped expired batches", zap.Int64("count", n))
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelEnv names the environment variable consulted by FromEnv
const LevelEnv = "IDREPO_LOG_LEVEL"

// disabled is above every level zap emits
const disabled = zapcore.FatalLevel + 1

var level = zap.NewAtomicLevelAt(disabled)

var Log = newLogger(level)

func newLogger(enabler zapcore.LevelEnabler) *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(os.Stderr), enabler)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
}

// InitLogger turns logging on at the given level
func InitLogger(lvl string) {
	SetLevel(lvl)
}

// SetLevel changes the level of Log. Unknown levels fall back to info.
func SetLevel(lvl string) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(lvl)); err != nil {
		zapLevel = zap.InfoLevel
	}
	level.SetLevel(zapLevel)
}

// Level returns the current level of Log
func Level() zapcore.Level {
	return level.Level()
}

// FromEnv initialises the logger from IDREPO_LOG_LEVEL, defaulting to info
func FromEnv() {
	lvl := os.Getenv(LevelEnv)
	if lvl == "" {
		lvl = "info"
	}
	InitLogger(lvl)
}

// Debug reports whether debug logging is enabled
func Debug() bool {
	return Log.Core().Enabled(zap.DebugLevel)
}
