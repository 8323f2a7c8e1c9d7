package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"jobtrack-go/internal/dashboard"
	"jobtrack-go/internal/storage"
	"jobtrack-go/internal/storage/models"
)

func runDashboard(args []string) error {
	fs := pflag.NewFlagSet("dashboard", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "配置文件路径")
	format := fs.String("format", string(dashboard.FormatTerminal), "输出格式: terminal, markdown, json")
	dateFilter := fs.String("period", "", `日期过滤: "last 30 days", "last 3 months", "this year", "YYYY-MM-DD:YYYY-MM-DD"`)
	if err := fs.Parse(args); err != nil {
		return err
	}

	outputFormat := dashboard.Format(*format)
	if !outputFormat.Valid() {
		return fmt.Errorf("不支持的输出格式: %q", *format)
	}

	dateRange, err := dashboard.ParseDateFilter(*dateFilter, time.Now())
	if err != nil {
		return err
	}

	cfg, db, err := openStorage(*configPath)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	filter := storage.ApplicationFilter{}
	if dateRange != nil {
		filter.Since = &dateRange.Start
		filter.Until = &dateRange.End
	}

	apps, err := db.ListApplications(ctx, filter)
	if err != nil {
		return err
	}

	// 状态历史只取过滤后申请的
	var appIDs []string
	for _, app := range apps {
		appIDs = append(appIDs, app.ApplicationID)
	}
	var stages []models.ApplicationStage
	if len(appIDs) > 0 {
		stages, err = db.ListStagesForApplications(ctx, appIDs)
		if err != nil {
			return err
		}
	}

	keywords, err := db.ListTopKeywords(ctx, 0, 0)
	if err != nil {
		return err
	}

	output, err := dashboard.NewGenerator(cfg.Dashboard).Generate(apps, stages, keywords, outputFormat)
	if err != nil {
		return err
	}
	fmt.Println(output)
	return nil
}

func runSyncMetrics(args []string) error {
	fs := pflag.NewFlagSet("sync-metrics", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "配置文件路径")
	date := fs.String("date", time.Now().Format(dateLayout), "快照日期 (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	snapshotDate, err := parseDate(*date)
	if err != nil {
		return err
	}

	cfg, db, err := openStorage(*configPath)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	apps, err := db.ListApplications(ctx, storage.ApplicationFilter{})
	if err != nil {
		return err
	}
	stages, err := db.ListStagesForApplications(ctx, nil)
	if err != nil {
		return err
	}

	snapshot := dashboard.NewGenerator(cfg.Dashboard).BuildSnapshot(snapshotDate, apps, stages)
	if err := db.UpsertMetricSnapshot(ctx, &snapshot); err != nil {
		return err
	}

	fmt.Printf("指标快照已同步: %s（申请 %d 条，回复率 %.1f%%，面试率 %.1f%%，offer率 %.1f%%）\n",
		snapshotDate.Format(dateLayout),
		snapshot.TotalApplications,
		snapshot.ResponseRate,
		snapshot.InterviewRate,
		snapshot.OfferRate)
	return nil
}
