package logger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func restoreLevel(t *testing.T) {
	prev := Level()
	t.Cleanup(func() { level.SetLevel(prev) })
}

func TestDisabledLevelSilencesEverything(t *testing.T) {
	restoreLevel(t)
	level.SetLevel(disabled)

	assert.False(t, Log.Core().Enabled(zap.FatalLevel))
	assert.False(t, Debug())
}

func TestSetLevel(t *testing.T) {
	restoreLevel(t)

	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zap.DebugLevel},
		{"warn", zap.WarnLevel},
		{"error", zap.ErrorLevel},
		{"bogus", zap.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			SetLevel(tt.in)
			assert.Equal(t, tt.want, Level())
			assert.Equal(t, tt.want == zap.DebugLevel, Debug())
		})
	}
}

func TestFromEnv(t *testing.T) {
	restoreLevel(t)

	t.Setenv(LevelEnv, "")
	FromEnv()
	assert.Equal(t, zap.InfoLevel, Level())

	t.Setenv(LevelEnv, "debug")
	FromEnv()
	assert.True(t, Debug())
}

func TestLevelChangesKeepLogger(t *testing.T) {
	restoreLevel(t)
	before := Log

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if i%2 == 0 {
				InitLogger("error")
			} else {
				SetLevel("warn")
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			Log.Debug("reloading", zap.Int("i", i))
		}
	}()
	wg.Wait()

	assert.Same(t, before, Log)
	assert.Equal(t, zap.WarnLevel, Level())
}
