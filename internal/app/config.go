// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/haierkeys/simple-note-service/internal/dao"
	"github.com/haierkeys/simple-note-service/pkg/limiter"
	"github.com/haierkeys/simple-note-service/pkg/util"

	"github.com/caarlos0/env/v11"
	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File     string         `yaml:"-"` // 配置文件路径，不序列化
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	UI       UIConfig       `yaml:"ui"`
	Tracer   TracerConfig   `yaml:"tracer"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"info"`
	// File 日志文件路径，为空时仅输出到 stderr
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式 debug/release/test
	RunMode string `yaml:"run-mode" default:"release" env:"RUN_MODE"`
	// HttpPort HTTP 监听地址
	HttpPort string `yaml:"http-port" default:":8000" env:"HTTP_PORT"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen 私有 HTTP 监听地址（metrics/expvar/pprof），为空时不启动
	PrivateHttpListen string `yaml:"private-http-listen" default:":9001"`
	// Lang 错误信息语言 en/zh_cn
	Lang string `yaml:"lang" default:"en"`
	// RateLimit 按客户端 IP 限流，默认关闭
	RateLimit RateLimitConfig `yaml:"rate-limit"`
}

// RateLimitConfig 令牌桶限流配置
type RateLimitConfig struct {
	Enabled bool `yaml:"enabled"`
	// FillInterval 填充间隔，例如 1s
	FillInterval string `yaml:"fill-interval" default:"1s"`
	// Capacity 桶容量
	Capacity int64 `yaml:"capacity" default:"100"`
	// Quantum 每次填充的令牌数
	Quantum int64 `yaml:"quantum" default:"100"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// URL 连接串，例如 sqlite:///storage/database/notes.db
	URL string `yaml:"url" env:"DATABASE_URL"`
	// Replicas 只读副本连接串
	Replicas []string `yaml:"replicas"`
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// MaxIdleConns 最大闲置连接数，默认 10
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数，默认 100
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime 连接最大生命周期，支持格式：30m（分钟）、1h（小时），默认 30m
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime 空闲连接最大生命周期，支持格式：10m（分钟）、1h（小时），默认 10m
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
}

// UIConfig 表单客户端配置
type UIConfig struct {
	// ApiUrl 后端服务地址
	ApiUrl string `yaml:"api-url" default:"http://localhost:8000" env:"API_URL"`
	// HttpPort 客户端监听地址
	HttpPort string `yaml:"http-port" default:":8501" env:"UI_HTTP_PORT"`
	// Timeout 请求后端的超时时间
	Timeout string `yaml:"timeout" default:"10s"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否启用追踪
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称，默认 X-Trace-ID
	Header string `yaml:"header" default:"X-Trace-ID"`
}

// LoadConfig 从文件加载配置，环境变量优先于文件
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	// 设置默认值
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	err = yaml.Unmarshal(file, c)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// 默认值只在解析前设置一次，YAML 中显式的 false 或空字符串保持不变
	if err := c.ApplyEnv(); err != nil {
		return nil, realpath, err
	}

	return c, realpath, nil
}

// DefaultConfig returns the built-in defaults with environment overrides applied
// DefaultConfig 返回默认配置（已应用环境变量）
func DefaultConfig() (*AppConfig, error) {
	c := new(AppConfig)
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "set default config failed")
	}
	if err := c.ApplyEnv(); err != nil {
		return nil, err
	}
	return c, nil
}

// ApplyEnv 使用环境变量覆盖配置：DATABASE_URL、API_URL、HTTP_PORT、RUN_MODE、UI_HTTP_PORT
func (c *AppConfig) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return errors.Wrap(err, "parse environment failed")
	}
	c.Server.HttpPort = NormalizeListen(c.Server.HttpPort)
	c.UI.HttpPort = NormalizeListen(c.UI.HttpPort)
	c.UI.ApiUrl = strings.TrimRight(c.UI.ApiUrl, "/")
	return nil
}

// NormalizeListen turns a bare port such as 8000 into :8000
// NormalizeListen 将纯端口号补全为监听地址
func NormalizeListen(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" || strings.Contains(addr, ":") {
		return addr
	}
	return ":" + addr
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	err = os.WriteFile(c.File, data, 0644)
	if err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}

// GetDatabaseConfig 转换为 DAO 层使用的数据库配置
func (c *AppConfig) GetDatabaseConfig() dao.DatabaseConfig {
	return dao.DatabaseConfig{
		URL:             c.Database.URL,
		Replicas:        c.Database.Replicas,
		AutoMigrate:     c.Database.AutoMigrate,
		MaxIdleConns:    c.Database.MaxIdleConns,
		MaxOpenConns:    c.Database.MaxOpenConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
		ConnMaxIdleTime: c.Database.ConnMaxIdleTime,
		RunMode:         c.Server.RunMode,
		Tracing:         c.Tracer.Enabled,
	}
}

// GetRateLimitRule 转换为限流器规则
func (c *AppConfig) GetRateLimitRule() limiter.BucketRule {
	rule := limiter.BucketRule{
		Capacity: c.Server.RateLimit.Capacity,
		Quantum:  c.Server.RateLimit.Quantum,
	}
	if d, err := util.ParseDuration(c.Server.RateLimit.FillInterval); err == nil {
		rule.FillInterval = d
	}
	return rule
}

// GetUITimeout 获取表单客户端请求超时时间
func (c *AppConfig) GetUITimeout() time.Duration {
	if d, err := util.ParseDuration(c.UI.Timeout); err == nil && d > 0 {
		return d
	}
	return 10 * time.Second
}
