package config

import (
	"img2svg/image2svg"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultTraceConfig(t *testing.T) {
	cfg := DefaultTraceConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, image2svg.DefaultOptions(), cfg.Options())
	assert.Equal(t, 128, cfg.GetThreshold())
	assert.Equal(t, 30, cfg.GetColorTolerance())
	assert.Equal(t, EngineNative, cfg.GetEngine())
}

func TestEmptyConfigGetters(t *testing.T) {
	cfg := &TraceConfig{}
	assert.Equal(t, image2svg.DefaultOptions(), cfg.Options())
	assert.Equal(t, DefaultFPS, cfg.GetFPS())
	assert.Equal(t, DefaultMaxWidth, cfg.GetMaxWidth())
	assert.Equal(t, *DefaultTraceConfig().FPS, cfg.GetFPS())
	assert.Equal(t, *DefaultTraceConfig().MaxWidth, cfg.GetMaxWidth())
}

func TestLoadTraceConfigPartial(t *testing.T) {
	path := writeConfig(t, "trace.json", `{"threshold": 100, "engine": "potrace"}`)
	cfg, err := LoadTraceConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.GetThreshold())
	assert.Equal(t, EnginePotrace, cfg.GetEngine())
	// 未给出的字段保持默认
	assert.Equal(t, 30, cfg.GetColorTolerance())
	assert.Equal(t, 1.0, cfg.GetEpsilon())
}

func TestLoadTraceConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		wantErr string
	}{
		{"extension", "trace.yaml", `{}`, "extension"},
		{"unknown field", "a.json", `{"thresh": 1}`, "unknown field"},
		{"bad json", "b.json", `{`, "parse"},
		{"threshold range", "c.json", `{"threshold": 300}`, "threshold"},
		{"tolerance", "d.json", `{"color_tolerance": -1}`, "color_tolerance"},
		{"zero tolerance", "g.json", `{"color_tolerance": 0}`, "color_tolerance must be >= 1"},
		{"engine", "e.json", `{"engine": "magic"}`, "engine"},
		{"fps", "f.json", `{"fps": 0}`, "fps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTraceConfig(writeConfig(t, tt.file, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadTraceConfigMissing(t *testing.T) {
	_, err := LoadTraceConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "stat")
}

func TestLoadTraceConfigTooLarge(t *testing.T) {
	body := `{"threshold": 1` + strings.Repeat(" ", 1024*1024) + `}`
	_, err := LoadTraceConfig(writeConfig(t, "big.json", body))
	assert.ErrorContains(t, err, "too large")
}

func TestLoadTraceConfigMinimumTolerance(t *testing.T) {
	cfg, err := LoadTraceConfig(writeConfig(t, "tol.json", `{"color_tolerance": 1}`))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.GetColorTolerance())
}
