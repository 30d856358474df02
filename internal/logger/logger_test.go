// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		env       string
		level     string
		wantLevel zapcore.Level
		wantErr   string
	}{
		{name: "default env is development", env: "", wantLevel: zapcore.DebugLevel},
		{name: "prod defaults to info", env: "prod", wantLevel: zapcore.InfoLevel},
		{name: "level override", env: "dev", level: "warn", wantLevel: zapcore.WarnLevel},
		{name: "unknown env", env: "staging", wantErr: "unknown environment"},
		{name: "bad level", env: "prod", level: "loud", wantErr: "invalid log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.env, tt.level)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.wantLevel))
			if tt.wantLevel > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.wantLevel-1))
			}
		})
	}
}
