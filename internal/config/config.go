package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"jobtrack-go/internal/logger"
	"jobtrack-go/internal/types"
)

// Config 应用程序配置
type Config struct {
	// MySQL 申请记录存储配置
	MySQL MySQLConfig `yaml:"mysql"`

	// Parser 简历解析管线配置
	Parser ParserConfig `yaml:"parser"`

	// Dashboard 分析面板配置
	Dashboard DashboardConfig `yaml:"dashboard"`

	// Logger 日志配置
	Logger logger.Config `yaml:"logger"`
}

// MySQLConfig MySQL配置结构
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	// 连接池设置
	MaxIdleConns int `yaml:"max_idle_conns"` // 最大空闲连接数
	MaxOpenConns int `yaml:"max_open_conns"` // 最大打开连接数
	// 连接生命周期
	ConnMaxLifetimeMinutes int `yaml:"conn_max_lifetime_minutes"`  // 连接最大生命周期(分钟)
	ConnMaxIdleTimeMinutes int `yaml:"conn_max_idle_time_minutes"` // 空闲连接最大生命周期(分钟)
	// 超时设置
	ConnectTimeoutSeconds int `yaml:"connect_timeout_seconds"`
	ReadTimeoutSeconds    int `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds   int `yaml:"write_timeout_seconds"`
	// 日志设置
	LogLevel int `yaml:"log_level"` // GORM日志级别(1-4)
}

// SectionSynonyms 一个规范章节及其标题同义词。
// 列表顺序即优先级：一行同时命中多个章节时，先声明的章节获胜。
type SectionSynonyms struct {
	Section  types.SectionType `yaml:"section"`
	Synonyms []string          `yaml:"synonyms"`
}

// ParserConfig 简历解析管线配置。
// 章节同义词表是数据而不是代码，方便测试和扩展。
type ParserConfig struct {
	// ContactScanLines 联系人信息只在第一页的前N个非空行中查找
	ContactScanLines int `yaml:"contact_scan_lines"`
	// Sections 规范章节 -> 标题同义词（按优先级排列），为空时使用内置默认表
	Sections []SectionSynonyms `yaml:"sections"`
}

// DashboardConfig 分析面板配置，基准值为典型求职指标
type DashboardConfig struct {
	ResponseRateBenchmark  float64 `yaml:"response_rate_benchmark"`  // 基准回复率(%)
	InterviewRateBenchmark float64 `yaml:"interview_rate_benchmark"` // 基准面试率(%)
	OfferRateBenchmark     float64 `yaml:"offer_rate_benchmark"`     // 基准offer率(%)
	TopKeywords            int     `yaml:"top_keywords"`             // 关键词榜单长度
}

// DefaultSectionSynonyms 内置的章节同义词表，匹配按大小写不敏感的
// 整行相等或前缀进行
func DefaultSectionSynonyms() []SectionSynonyms {
	return []SectionSynonyms{
		{Section: types.SectionSummary, Synonyms: []string{"summary", "professional summary", "profile", "objective"}},
		{Section: types.SectionExperience, Synonyms: []string{"experience", "work experience", "professional experience", "employment history", "employment"}},
		{Section: types.SectionProjects, Synonyms: []string{"projects", "portfolio"}},
		{Section: types.SectionEducation, Synonyms: []string{"education", "academic background"}},
		{Section: types.SectionSkills, Synonyms: []string{"skills", "technical skills", "core competencies"}},
		{Section: types.SectionCertifications, Synonyms: []string{"certifications", "certificates", "licenses"}},
		{Section: types.SectionPublications, Synonyms: []string{"publications", "research"}},
	}
}

// LoadConfig 从文件加载配置
func LoadConfig(configPath string) (*Config, error) {
	// 如果未指定配置文件路径，则尝试在默认位置查找
	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			"./config.yaml",
			"../config.yaml",
			filepath.Join(os.Getenv("HOME"), ".jobtrack", "config.yaml"),
		}

		if execPath, err := os.Executable(); err == nil {
			execDir := filepath.Dir(execPath)
			searchPaths = append(searchPaths,
				filepath.Join(execDir, "config.yaml"),
				filepath.Join(execDir, "..", "config.yaml"))
		}

		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}

		// 仍找不到配置文件时直接使用默认配置
		if configPath == "" {
			return DefaultConfig(), nil
		}
	}

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("配置文件不存在: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	applyEnvOverrides(config)
	applyDefaults(config)

	return config, nil
}

// applyEnvOverrides 从环境变量覆盖配置（如果存在）
func applyEnvOverrides(config *Config) {
	if host := os.Getenv("JOBTRACK_MYSQL_HOST"); host != "" {
		config.MySQL.Host = host
	}
	if port := os.Getenv("JOBTRACK_MYSQL_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.MySQL.Port = p
		}
	}
	if user := os.Getenv("JOBTRACK_MYSQL_USER"); user != "" {
		config.MySQL.Username = user
	}
	if password := os.Getenv("JOBTRACK_MYSQL_PASSWORD"); password != "" {
		config.MySQL.Password = password
	}
	if database := os.Getenv("JOBTRACK_MYSQL_DATABASE"); database != "" {
		config.MySQL.Database = database
	}
	if level := os.Getenv("JOBTRACK_LOG_LEVEL"); level != "" {
		config.Logger.Level = level
	}
}

// applyDefaults 补齐零值字段
func applyDefaults(config *Config) {
	if config.Parser.ContactScanLines <= 0 {
		config.Parser.ContactScanLines = 10
	}
	if len(config.Parser.Sections) == 0 {
		config.Parser.Sections = DefaultSectionSynonyms()
	}
	if config.Dashboard.ResponseRateBenchmark == 0 {
		config.Dashboard.ResponseRateBenchmark = 50.0
	}
	if config.Dashboard.InterviewRateBenchmark == 0 {
		config.Dashboard.InterviewRateBenchmark = 15.0
	}
	if config.Dashboard.OfferRateBenchmark == 0 {
		config.Dashboard.OfferRateBenchmark = 5.0
	}
	if config.Dashboard.TopKeywords == 0 {
		config.Dashboard.TopKeywords = 10
	}
	if config.Logger.Level == "" {
		config.Logger.Level = "info"
	}
}

// DefaultConfig 返回一份带默认值的配置，用于无配置文件启动和测试
func DefaultConfig() *Config {
	config := &Config{}

	// MySQL默认配置
	config.MySQL.Host = "localhost"
	config.MySQL.Port = 3306
	config.MySQL.Username = "root"
	config.MySQL.Password = "password"
	config.MySQL.Database = "jobtrack"
	config.MySQL.MaxIdleConns = 5
	config.MySQL.MaxOpenConns = 20
	config.MySQL.ConnMaxLifetimeMinutes = 60
	config.MySQL.ConnMaxIdleTimeMinutes = 30
	config.MySQL.ConnectTimeoutSeconds = 10
	config.MySQL.ReadTimeoutSeconds = 30
	config.MySQL.WriteTimeoutSeconds = 30
	config.MySQL.LogLevel = 2 // Error级别，CLI下不刷SQL日志

	// 解析器默认配置
	config.Parser.ContactScanLines = 10
	config.Parser.Sections = DefaultSectionSynonyms()

	// 面板默认配置
	config.Dashboard.ResponseRateBenchmark = 50.0
	config.Dashboard.InterviewRateBenchmark = 15.0
	config.Dashboard.OfferRateBenchmark = 5.0
	config.Dashboard.TopKeywords = 10

	// 日志默认配置
	config.Logger.Level = "info"
	config.Logger.Format = "pretty"
	config.Logger.TimeFormat = "2006-01-02 15:04:05"

	applyEnvOverrides(config)
	return config
}

// CreateSampleConfig 创建一个示例配置文件
func CreateSampleConfig(filePath string) error {
	if _, err := os.Stat(filePath); err == nil {
		return fmt.Errorf("文件 '%s' 已存在，不会覆盖", filePath)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("写入示例配置文件 '%s' 失败: %w", filePath, err)
	}
	return nil
}

// SynonymsFor 返回指定章节配置的同义词列表，未配置时返回nil
func (p ParserConfig) SynonymsFor(section types.SectionType) []string {
	for _, entry := range p.Sections {
		if entry.Section == section {
			return entry.Synonyms
		}
	}
	return nil
}

// DSN 按GORM MySQL驱动的格式拼接连接串
func (c MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
		c.Username, c.Password, c.Host, c.Port, c.Database,
		c.ConnectTimeoutSeconds, c.ReadTimeoutSeconds, c.WriteTimeoutSeconds)
}

// Redact 返回不含密码的连接描述，用于日志
func (c MySQLConfig) Redact() string {
	return fmt.Sprintf("%s@%s:%d/%s", c.Username, c.Host, c.Port, c.Database)
}
