package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"jobtrack-go/internal/config"
	"jobtrack-go/internal/parser"
)

func runParse(args []string) error {
	fs := pflag.NewFlagSet("parse", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "配置文件路径")
	output := fs.StringP("output", "o", "", "输出markdown路径，默认与PDF同名")
	asJSON := fs.Bool("json", false, "打印结构化解析结果（JSON）而不写文件")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("用法: jobtrack parse <resume.pdf> [-o output.md]")
	}
	pdfPath := fs.Arg(0)

	cfg, err := setup(*configPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	resumeParser, err := parser.NewResumeParser(ctx, &cfg.Parser)
	if err != nil {
		return err
	}

	if *asJSON {
		resume, err := resumeParser.ParseFile(ctx, pdfPath)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(resume, "", "  ")
		if err != nil {
			return fmt.Errorf("序列化解析结果失败: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	outputPath := *output
	if outputPath == "" {
		base := strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath))
		outputPath = base + ".md"
	}

	resume, err := resumeParser.ParseAndSave(ctx, pdfPath, outputPath)
	if err != nil {
		return err
	}

	fmt.Printf("已解析: %s -> %s\n", pdfPath, outputPath)
	if !resume.Contact.IsEmpty() {
		fmt.Printf("  联系人: %s <%s>\n", resume.Contact.Name, resume.Contact.Email)
	}
	fmt.Printf("  工作经历 %d 条，教育经历 %d 条，技能分组 %d 个\n",
		len(resume.Experience), len(resume.Education), len(resume.Skills))
	return nil
}

func runInitConfig(args []string) error {
	fs := pflag.NewFlagSet("init-config", pflag.ContinueOnError)
	path := fs.StringP("output", "o", "config.yaml", "示例配置文件输出路径")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := config.CreateSampleConfig(*path); err != nil {
		return err
	}
	fmt.Printf("示例配置已生成: %s\n", *path)
	return nil
}
