package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrack-go/internal/types"
)

// TestDefaultConfig 默认配置带完整的解析器和面板参数
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "localhost", cfg.MySQL.Host)
	assert.Equal(t, 3306, cfg.MySQL.Port)
	assert.Equal(t, 10, cfg.Parser.ContactScanLines)
	assert.NotEmpty(t, cfg.Parser.Sections)
	assert.Equal(t, 50.0, cfg.Dashboard.ResponseRateBenchmark)
	assert.Equal(t, 15.0, cfg.Dashboard.InterviewRateBenchmark)
	assert.Equal(t, 5.0, cfg.Dashboard.OfferRateBenchmark)
}

// TestLoadConfigFromFile 从yaml文件加载并补齐默认值
func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
mysql:
  host: db.internal
  port: 3307
  username: tracker
  database: jobs
logger:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.MySQL.Host)
	assert.Equal(t, 3307, cfg.MySQL.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
	// 未指定的字段取默认值
	assert.Equal(t, 10, cfg.Parser.ContactScanLines)
	assert.Equal(t, 50.0, cfg.Dashboard.ResponseRateBenchmark)
}

// TestLoadConfigMissingFile 指定了不存在的文件时报错
func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.yaml")
	assert.Error(t, err)
}

// TestEnvOverrides 环境变量覆盖文件配置
func TestEnvOverrides(t *testing.T) {
	t.Setenv("JOBTRACK_MYSQL_HOST", "env-host")
	t.Setenv("JOBTRACK_MYSQL_PORT", "3310")
	t.Setenv("JOBTRACK_LOG_LEVEL", "warn")

	cfg := DefaultConfig()

	assert.Equal(t, "env-host", cfg.MySQL.Host)
	assert.Equal(t, 3310, cfg.MySQL.Port)
	assert.Equal(t, "warn", cfg.Logger.Level)
}

// TestSynonymsFor 返回指定章节的同义词配置
func TestSynonymsFor(t *testing.T) {
	cfg := DefaultConfig()

	synonyms := cfg.Parser.SynonymsFor(types.SectionExperience)
	assert.Contains(t, synonyms, "work experience")

	assert.Nil(t, cfg.Parser.SynonymsFor(types.SectionType("unknown")))
}

// TestDSNAndRedact DSN包含密码，Redact不包含
func TestDSNAndRedact(t *testing.T) {
	cfg := MySQLConfig{
		Host: "localhost", Port: 3306,
		Username: "root", Password: "secret", Database: "jobtrack",
		ConnectTimeoutSeconds: 10, ReadTimeoutSeconds: 30, WriteTimeoutSeconds: 30,
	}

	assert.Contains(t, cfg.DSN(), "root:secret@tcp(localhost:3306)/jobtrack")
	assert.NotContains(t, cfg.Redact(), "secret")
	assert.Contains(t, cfg.Redact(), "root@localhost:3306/jobtrack")
}

// TestCreateSampleConfig 不覆盖已存在的文件
func TestCreateSampleConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	require.NoError(t, CreateSampleConfig(path))
	assert.FileExists(t, path)

	// 再次生成应报错而不是覆盖
	assert.Error(t, CreateSampleConfig(path))
}
