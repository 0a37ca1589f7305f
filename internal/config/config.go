package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// PDF 解析引擎
const (
	PDFEngineEino       = "eino"
	PDFEngineLedongthuc = "ledongthuc"
)

// Config 应用程序配置
type Config struct {
	// 服务器配置
	Server ServerConfig `yaml:"server"`

	// 日志配置
	Logger LoggerConfig `yaml:"logger"`

	// 文本提取配置
	Parser ParserConfig `yaml:"parser"`

	// 技能词表、岗位描述等静态资源
	Resources ResourcesConfig `yaml:"resources"`

	// 链路追踪配置
	Tracing TracingConfig `yaml:"tracing"`

	// 配置文件所在目录，用于解析相对路径
	baseDir string
}

// ServerConfig 定义服务器配置
type ServerConfig struct {
	Address          string `yaml:"address"`             // 例如 ":8080" or "0.0.0.0:8080"
	MaxRequestBodyMB int    `yaml:"max_request_body_mb"` // 上传请求体上限(MB)
	ExitWaitSeconds  int    `yaml:"exit_wait_seconds"`   // 优雅退出等待时间(秒)
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // 时间格式
	ReportCaller bool   `yaml:"report_caller"` // 是否报告调用位置
	File         string `yaml:"file"`          // 额外写入的日志文件，可为空
}

// ParserConfig 文本提取配置
type ParserConfig struct {
	PDFEngine string `yaml:"pdf_engine"` // eino 或 ledongthuc
}

// ResourcesConfig 静态资源文件路径
type ResourcesConfig struct {
	SkillsFile         string `yaml:"skills_file"`          // 每行一个技能
	JobDescriptionFile string `yaml:"job_description_file"` // 岗位描述纯文本
}

// TracingConfig OpenTelemetry 配置
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"` // OTLP gRPC 地址，例如 "localhost:4317"
	Insecure    bool   `yaml:"insecure"`
	ServiceName string `yaml:"service_name"`
}

// LoadConfig 从文件加载配置，configPath 为空时在默认位置查找
func LoadConfig(configPath string) (*Config, error) {
	loadDotEnv()

	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			"internal/config/config.yaml",
			"../config.yaml",
			"../../internal/config/config.yaml",
			filepath.Join(os.Getenv("HOME"), ".resume-analyzer", "config.yaml"),
		}
		if execPath, err := os.Executable(); err == nil {
			execDir := filepath.Dir(execPath)
			searchPaths = append(searchPaths, filepath.Join(execDir, "config.yaml"))
		}
		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}
		if configPath == "" {
			return nil, fmt.Errorf("未在默认位置找到配置文件")
		}
	}

	cfg, err := LoadConfigFromFileOnly(configPath)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadConfigFromFileOnly 从文件加载配置，不读取环境变量
func LoadConfigFromFileOnly(configPath string) (*Config, error) {
	if configPath == "" {
		return nil, fmt.Errorf("必须提供配置文件路径")
	}

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("配置文件不存在: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		absPath = configPath
	}
	config.baseDir = filepath.Dir(absPath)

	config.setDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate 检查配置是否可用
func (c *Config) Validate() error {
	switch c.Parser.PDFEngine {
	case PDFEngineEino, PDFEngineLedongthuc:
	default:
		return fmt.Errorf("不支持的PDF解析引擎: %q", c.Parser.PDFEngine)
	}
	if c.Resources.SkillsFile == "" {
		return fmt.Errorf("resources.skills_file 不能为空")
	}
	if c.Resources.JobDescriptionFile == "" {
		return fmt.Errorf("resources.job_description_file 不能为空")
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return fmt.Errorf("启用 tracing 时必须配置 tracing.endpoint")
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Server.MaxRequestBodyMB <= 0 {
		c.Server.MaxRequestBodyMB = 20
	}
	if c.Server.ExitWaitSeconds <= 0 {
		c.Server.ExitWaitSeconds = 5
	}
	if c.Parser.PDFEngine == "" {
		c.Parser.PDFEngine = PDFEngineEino
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Format == "" {
		c.Logger.Format = "pretty"
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = "resume-analyzer"
	}
}

func applyEnvOverrides(c *Config) {
	if v := os.Getenv("RESUME_SKILLS_FILE"); v != "" {
		c.Resources.SkillsFile = v
	}
	if v := os.Getenv("RESUME_JD_FILE"); v != "" {
		c.Resources.JobDescriptionFile = v
	}
	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		c.Server.Address = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logger.Level = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		c.Tracing.Endpoint = v
	}
}

// loadDotEnv 读取当前目录下的 .env，文件不存在时忽略
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "读取 .env 失败: %v\n", err)
	}
}

// ResolvePath 相对路径按配置文件所在目录解析
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.baseDir == "" {
		return p
	}
	return filepath.Join(c.baseDir, p)
}

// MaxRequestBodySize 请求体上限(字节)
func (c *Config) MaxRequestBodySize() int {
	return c.Server.MaxRequestBodyMB * 1024 * 1024
}
