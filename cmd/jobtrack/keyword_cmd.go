package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gorm.io/datatypes"

	"jobtrack-go/internal/keywords"
	"jobtrack-go/internal/storage"
	"jobtrack-go/internal/storage/models"
)

func runAnalyzeJD(args []string) error {
	fs := pflag.NewFlagSet("analyze-jd", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "配置文件路径")
	file := fs.StringP("file", "f", "", "职位描述文本文件，省略时从参数读取申请ID")
	asJSON := fs.Bool("json", false, "以JSON输出完整分析结果")
	track := fs.Bool("track", false, "把提取的关键词写入表现跟踪表")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var text string
	switch {
	case *file != "":
		data, err := os.ReadFile(*file)
		if err != nil {
			return fmt.Errorf("读取职位描述文件失败: %w", err)
		}
		text = string(data)
	case fs.NArg() > 0:
		// 参数是申请ID，分析其存储的职位描述
		_, db, err := openStorage(*configPath)
		if err != nil {
			return err
		}
		defer db.Close()
		app, err := db.GetApplication(context.Background(), fs.Arg(0))
		if err != nil {
			return err
		}
		if app.JobDescription == "" {
			return fmt.Errorf("申请 %s 没有存储职位描述", app.ApplicationID)
		}
		text = app.JobDescription
	default:
		return fmt.Errorf("用法: jobtrack analyze-jd --file <jd.txt> 或 jobtrack analyze-jd <application-id>")
	}

	analysis := keywords.Analyze(text)

	if *track {
		if err := trackKeywords(*configPath, analysis.ATSKeywords); err != nil {
			return err
		}
	}

	if *asJSON {
		data, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return fmt.Errorf("序列化分析结果失败: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printKeywordList := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Printf("%s\n", title)
		fmt.Printf("  %s\n\n", strings.Join(items, ", "))
	}

	fmt.Println("Job Description Analysis")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()
	printKeywordList("技术技能:", analysis.TechnicalSkills)
	printKeywordList("领导力/软技能:", analysis.LeadershipSkills)
	printKeywordList("领域要求:", analysis.DomainExpertise)

	if len(analysis.RequiredSkills) > 0 {
		fmt.Println("必须项:")
		for _, item := range analysis.RequiredSkills {
			fmt.Printf("  - %s\n", item)
		}
		fmt.Println()
	}
	if len(analysis.NiceToHaveSkills) > 0 {
		fmt.Println("加分项:")
		for _, item := range analysis.NiceToHaveSkills {
			fmt.Printf("  - %s\n", item)
		}
		fmt.Println()
	}

	if len(analysis.ATSKeywords) > 0 {
		fmt.Println("ATS关键词（按频率）:")
		limit := len(analysis.ATSKeywords)
		if limit > 20 {
			limit = 20
		}
		for i, kw := range analysis.ATSKeywords[:limit] {
			fmt.Printf("  %2d. %-25s (出现 %d 次)\n", i+1, kw, analysis.KeywordFrequency[kw])
		}
	}
	return nil
}

// trackKeywords 把关键词写入表现跟踪表，已存在的只更新使用次数和日期
func trackKeywords(configPath string, keywordList []string) error {
	_, db, err := openStorage(configPath)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	today := datatypes.Date(time.Now())

	for _, keyword := range keywordList {
		perf, err := db.GetKeywordPerformance(ctx, keyword)
		if err != nil {
			if !errors.Is(err, storage.ErrKeywordNotFound) {
				return err
			}
			perf = &models.KeywordPerformance{
				Keyword:  keyword,
				Category: keywords.Categorize(keyword),
			}
		}
		perf.TotalUses++
		perf.LastUsedDate = &today
		if err := db.UpsertKeywordPerformance(ctx, perf); err != nil {
			return err
		}
	}

	fmt.Printf("已跟踪 %d 个关键词。\n", len(keywordList))
	return nil
}
