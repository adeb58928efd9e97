package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"img2svg/image2svg"
	"os"
	"path/filepath"
)

const (
	EngineNative  = "native"
	EnginePotrace = "potrace"

	// 视频输入默认值
	DefaultFPS      = 10
	DefaultMaxWidth = 96
)

// TraceConfig 配置文件结构，省略的字段使用默认值
type TraceConfig struct {
	Threshold      *int     `json:"threshold,omitempty"`
	ColorTolerance *int     `json:"color_tolerance,omitempty"`
	Epsilon        *float64 `json:"epsilon,omitempty"`
	StrokeWidth    *float64 `json:"stroke_width,omitempty"`
	Engine         *string  `json:"engine,omitempty"` // native | potrace

	// 视频输入
	FPS      *int `json:"fps,omitempty"`
	MaxWidth *int `json:"max_width,omitempty"`
}

func ptrInt(v int) *int             { return &v }
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }

// DefaultTraceConfig 返回所有字段都已填好默认值的配置
func DefaultTraceConfig() *TraceConfig {
	opt := image2svg.DefaultOptions()
	return &TraceConfig{
		Threshold:      ptrInt(opt.Threshold),
		ColorTolerance: ptrInt(opt.ColorTolerance),
		Epsilon:        ptrFloat64(opt.Epsilon),
		StrokeWidth:    ptrFloat64(opt.StrokeWidth),
		Engine:         ptrString(EngineNative),
		FPS:            ptrInt(DefaultFPS),
		MaxWidth:       ptrInt(DefaultMaxWidth),
	}
}

// LoadTraceConfig 读取 JSON 配置。文件必须是 .json 且不超过 1MB，未知字段报错
func LoadTraceConfig(path string) (*TraceConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultTraceConfig()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查取值范围
func (c *TraceConfig) Validate() error {
	if t := c.GetThreshold(); t < 0 || t > 255 {
		return fmt.Errorf("threshold must be in [0, 255], got %d", t)
	}
	// 容差为 0 时任何颜色都无法并入已有分组
	if tol := c.GetColorTolerance(); tol < 1 {
		return fmt.Errorf("color_tolerance must be >= 1, got %d", tol)
	}
	if eps := c.GetEpsilon(); eps < 0 {
		return fmt.Errorf("epsilon must be >= 0, got %v", eps)
	}
	if sw := c.GetStrokeWidth(); sw < 0 {
		return fmt.Errorf("stroke_width must be >= 0, got %v", sw)
	}
	switch e := c.GetEngine(); e {
	case EngineNative, EnginePotrace:
	default:
		return fmt.Errorf("unknown engine %q", e)
	}
	if c.GetFPS() <= 0 {
		return fmt.Errorf("fps must be > 0, got %d", c.GetFPS())
	}
	if c.GetMaxWidth() <= 0 {
		return fmt.Errorf("max_width must be > 0, got %d", c.GetMaxWidth())
	}
	return nil
}

func (c *TraceConfig) GetThreshold() int {
	if c.Threshold == nil {
		return image2svg.DefaultOptions().Threshold
	}
	return *c.Threshold
}

func (c *TraceConfig) GetColorTolerance() int {
	if c.ColorTolerance == nil {
		return image2svg.DefaultOptions().ColorTolerance
	}
	return *c.ColorTolerance
}

func (c *TraceConfig) GetEpsilon() float64 {
	if c.Epsilon == nil {
		return image2svg.DefaultOptions().Epsilon
	}
	return *c.Epsilon
}

func (c *TraceConfig) GetStrokeWidth() float64 {
	if c.StrokeWidth == nil {
		return image2svg.DefaultOptions().StrokeWidth
	}
	return *c.StrokeWidth
}

func (c *TraceConfig) GetEngine() string {
	if c.Engine == nil {
		return EngineNative
	}
	return *c.Engine
}

func (c *TraceConfig) GetFPS() int {
	if c.FPS == nil {
		return DefaultFPS
	}
	return *c.FPS
}

func (c *TraceConfig) GetMaxWidth() int {
	if c.MaxWidth == nil {
		return DefaultMaxWidth
	}
	return *c.MaxWidth
}

// Options 转成流水线参数
func (c *TraceConfig) Options() image2svg.Options {
	return image2svg.Options{
		Threshold:      c.GetThreshold(),
		ColorTolerance: c.GetColorTolerance(),
		Epsilon:        c.GetEpsilon(),
		StrokeWidth:    c.GetStrokeWidth(),
	}
}
