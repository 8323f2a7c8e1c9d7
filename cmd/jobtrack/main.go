package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"jobtrack-go/internal/config"
	"jobtrack-go/internal/logger"
	"jobtrack-go/internal/storage"
)

var version = "1.0.0" //nolint:gochecknoglobals

const usageText = `jobtrack - 求职申请跟踪与简历解析工具

用法:
  jobtrack <command> [flags]

申请管理:
  add            创建申请记录
  list           列出申请记录
  show           查看单条申请详情
  update         更新申请记录
  delete         删除申请记录

面试管理:
  add-interview  为申请记录面试
  interviews     列出面试记录

分析:
  dashboard      生成分析面板
  sync-metrics   同步每日指标快照
  analyze-jd     分析职位描述关键词

简历:
  parse          解析PDF简历为markdown

其他:
  init-config    生成示例配置文件
  version        打印版本号

每个命令支持 --help 查看参数。
`

func main() {
	// .env仅用于本地开发，文件缺失不算错误
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "add":
		err = runAdd(os.Args[2:])
	case "list":
		err = runList(os.Args[2:])
	case "show":
		err = runShow(os.Args[2:])
	case "update":
		err = runUpdate(os.Args[2:])
	case "delete":
		err = runDelete(os.Args[2:])
	case "add-interview":
		err = runAddInterview(os.Args[2:])
	case "interviews":
		err = runInterviews(os.Args[2:])
	case "dashboard":
		err = runDashboard(os.Args[2:])
	case "sync-metrics":
		err = runSyncMetrics(os.Args[2:])
	case "analyze-jd":
		err = runAnalyzeJD(os.Args[2:])
	case "parse":
		err = runParse(os.Args[2:])
	case "init-config":
		err = runInitConfig(os.Args[2:])
	case "version":
		fmt.Printf("jobtrack %s\n", version)
	case "help", "-h", "--help":
		fmt.Print(usageText)
	default:
		fmt.Fprintf(os.Stderr, "未知命令 %q\n\n", os.Args[1])
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

// setup 加载配置并初始化日志，所有命令共用
func setup(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}
	logger.Init(cfg.Logger)
	return cfg, nil
}

// openStorage 在setup的基础上连接MySQL
func openStorage(configPath string) (*config.Config, *storage.MySQL, error) {
	cfg, err := setup(configPath)
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.NewMySQL(&cfg.MySQL)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}
