package dashboard

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"jobtrack-go/internal/config"
	"jobtrack-go/internal/storage/models"
)

func testConfig() config.DashboardConfig {
	return config.DashboardConfig{
		ResponseRateBenchmark:  50.0,
		InterviewRateBenchmark: 15.0,
		OfferRateBenchmark:     5.0,
		TopKeywords:            10,
	}
}

func makeApps(statuses ...models.ApplicationStatus) []models.Application {
	apps := make([]models.Application, len(statuses))
	for i, status := range statuses {
		apps[i] = models.Application{Status: status}
	}
	return apps
}

// TestCalculateFunnel 验证漏斗统计和回复率
func TestCalculateFunnel(t *testing.T) {
	apps := makeApps(
		models.StatusApplied, models.StatusApplied,
		models.StatusScreening,
		models.StatusInterviewing,
		models.StatusOffer,
		models.StatusRejected,
	)

	funnel := CalculateFunnel(apps)

	assert.Equal(t, 6, funnel.Total)
	assert.Equal(t, 2, funnel.Counts[models.StatusApplied])
	assert.Equal(t, 1, funnel.Counts[models.StatusScreening])
	assert.Equal(t, 1, funnel.Counts[models.StatusOffer])
	// 6条里4条离开了applied
	assert.InDelta(t, 66.67, funnel.ResponseRate, 0.01)
	assert.InDelta(t, 33.33, funnel.Percentages[models.StatusApplied], 0.01)
}

// TestCalculateFunnelEmpty 空数据返回全零，不报错
func TestCalculateFunnelEmpty(t *testing.T) {
	funnel := CalculateFunnel(nil)
	assert.Equal(t, 0, funnel.Total)
	assert.Zero(t, funnel.ResponseRate)
	assert.Equal(t, 0, funnel.Counts[models.StatusApplied])
}

// TestCalculateSuccessMetrics 验证成功率口径和基准评级
func TestCalculateSuccessMetrics(t *testing.T) {
	// 10条申请：6条有回复，3条达到面试，1条拿到offer
	apps := makeApps(
		models.StatusApplied, models.StatusApplied, models.StatusApplied, models.StatusApplied,
		models.StatusScreening, models.StatusScreening,
		models.StatusRejected,
		models.StatusInterviewing, models.StatusInterviewing,
		models.StatusOffer,
	)

	metrics := CalculateSuccessMetrics(apps, testConfig())

	assert.InDelta(t, 60.0, metrics.ResponseRate, 0.01)
	assert.InDelta(t, 30.0, metrics.InterviewRate, 0.01)
	assert.InDelta(t, 10.0, metrics.OfferRate, 0.01)

	// 60 >= 50*1.1, 30 >= 15*1.1, 10 >= 5*1.1
	assert.Equal(t, BenchmarkAbove, metrics.ResponseRateStatus)
	assert.Equal(t, BenchmarkAbove, metrics.InterviewRateStatus)
	assert.Equal(t, BenchmarkAbove, metrics.OfferRateStatus)
}

// TestRateStatus 基准±10%以内是average
func TestRateStatus(t *testing.T) {
	assert.Equal(t, BenchmarkAbove, rateStatus(56.0, 50.0))
	assert.Equal(t, BenchmarkAverage, rateStatus(50.0, 50.0))
	assert.Equal(t, BenchmarkAverage, rateStatus(46.0, 50.0))
	assert.Equal(t, BenchmarkBelow, rateStatus(45.0, 50.0))
}

func dateOf(value string) datatypes.Date {
	d, _ := time.Parse("2006-01-02", value)
	return datatypes.Date(d)
}

// TestCalculateTimeMetrics 验证阶段耗时按申请分组计算
func TestCalculateTimeMetrics(t *testing.T) {
	stages := []models.ApplicationStage{
		{ApplicationID: "a", Status: models.StatusApplied, StageDate: dateOf("2026-01-01")},
		{ApplicationID: "a", Status: models.StatusScreening, StageDate: dateOf("2026-01-05")},
		{ApplicationID: "a", Status: models.StatusInterviewing, StageDate: dateOf("2026-01-11")},
		{ApplicationID: "a", Status: models.StatusOffer, StageDate: dateOf("2026-01-21")},
		{ApplicationID: "b", Status: models.StatusApplied, StageDate: dateOf("2026-01-01")},
		{ApplicationID: "b", Status: models.StatusScreening, StageDate: dateOf("2026-01-03")},
	}

	metrics := CalculateTimeMetrics(stages)

	// 回复耗时: a=4天, b=2天 -> 平均3
	assert.InDelta(t, 3.0, metrics.AvgResponseTimeDays, 0.01)
	assert.InDelta(t, 10.0, metrics.AvgTimeToInterviewDays, 0.01)
	assert.InDelta(t, 20.0, metrics.AvgTimeToOfferDays, 0.01)
}

// TestCalculateTimeMetricsNoApplied 缺少applied起点的申请不参与统计
func TestCalculateTimeMetricsNoApplied(t *testing.T) {
	stages := []models.ApplicationStage{
		{ApplicationID: "a", Status: models.StatusScreening, StageDate: dateOf("2026-01-05")},
	}
	assert.Equal(t, TimeMetrics{}, CalculateTimeMetrics(stages))
}

// TestAnalyzeKeywords 验证关键词按回复率排序和高低表现划分
func TestAnalyzeKeywords(t *testing.T) {
	keywords := []models.KeywordPerformance{
		{Keyword: "python", ResponseRate: 45.0},
		{Keyword: "kubernetes", ResponseRate: 80.0},
		{Keyword: "go", ResponseRate: 60.0},
	}

	analysis := AnalyzeKeywords(keywords)

	require.Len(t, analysis.TopByResponse, 3)
	assert.Equal(t, "kubernetes", analysis.TopByResponse[0].Keyword)
	assert.Equal(t, "go", analysis.TopByResponse[1].Keyword)

	require.Len(t, analysis.HighPerformers, 1)
	assert.Equal(t, "kubernetes", analysis.HighPerformers[0].Keyword)
	require.Len(t, analysis.LowPerformers, 1)
	assert.Equal(t, "python", analysis.LowPerformers[0].Keyword)
}

// TestParseDateFilter 验证各种日期过滤表达式
func TestParseDateFilter(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	t.Run("last N days", func(t *testing.T) {
		r, err := ParseDateFilter("last 30 days", now)
		require.NoError(t, err)
		require.NotNil(t, r)
		assert.Equal(t, now.AddDate(0, 0, -30), r.Start)
		assert.Equal(t, now, r.End)
	})

	t.Run("last N months按30天折算", func(t *testing.T) {
		r, err := ParseDateFilter("last 3 months", now)
		require.NoError(t, err)
		assert.Equal(t, now.AddDate(0, 0, -90), r.Start)
	})

	t.Run("this year", func(t *testing.T) {
		r, err := ParseDateFilter("this year", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), r.Start)
	})

	t.Run("显式区间", func(t *testing.T) {
		r, err := ParseDateFilter("2026-01-01:2026-06-30", now)
		require.NoError(t, err)
		assert.Equal(t, "2026-01-01", r.Start.Format("2006-01-02"))
		assert.Equal(t, "2026-06-30", r.End.Format("2006-01-02"))
	})

	t.Run("空串不过滤", func(t *testing.T) {
		r, err := ParseDateFilter("", now)
		require.NoError(t, err)
		assert.Nil(t, r)
	})

	t.Run("无法解析时报错", func(t *testing.T) {
		_, err := ParseDateFilter("yesterday", now)
		assert.Error(t, err)

		_, err = ParseDateFilter("2026-06-30:2026-01-01", now)
		assert.Error(t, err)
	})
}

// TestGenerateTerminal 终端面板包含漏斗、指标和建议
func TestGenerateTerminal(t *testing.T) {
	apps := makeApps(models.StatusApplied, models.StatusScreening, models.StatusOffer)
	generator := NewGenerator(testConfig())

	output, err := generator.Generate(apps, nil, nil, FormatTerminal)
	require.NoError(t, err)

	assert.Contains(t, output, "Application Pipeline Dashboard")
	assert.Contains(t, output, "Total Applications: 3")
	assert.Contains(t, output, "Success Metrics:")
	assert.Contains(t, output, "Recommendations:")
	assert.Contains(t, output, "No keyword data available.")
}

// TestGenerateJSON JSON输出可以反序列化回Report
func TestGenerateJSON(t *testing.T) {
	apps := makeApps(models.StatusApplied, models.StatusInterviewing)
	generator := NewGenerator(testConfig())

	output, err := generator.Generate(apps, nil, nil, FormatJSON)
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal([]byte(output), &report))
	assert.Equal(t, 2, report.Funnel.Total)
	assert.NotEmpty(t, report.Recommendations)
}

// TestGenerateUnknownFormat 不支持的格式报错
func TestGenerateUnknownFormat(t *testing.T) {
	_, err := NewGenerator(testConfig()).Generate(nil, nil, nil, Format("xml"))
	assert.Error(t, err)
}

// TestBuildSnapshot 验证快照的聚合口径
func TestBuildSnapshot(t *testing.T) {
	date := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
	followup := dateOf("2026-08-20")
	apps := []models.Application{
		{Status: models.StatusApplied, AppliedDate: dateOf("2026-08-26")},
		{Status: models.StatusScreening, AppliedDate: dateOf("2026-08-01"), NextFollowupDate: &followup},
		{Status: models.StatusInterviewing, AppliedDate: dateOf("2026-07-15")},
		{Status: models.StatusOffer, AppliedDate: dateOf("2026-07-01")},
		{Status: models.StatusRejected, AppliedDate: dateOf("2026-06-01")},
	}

	snapshot := NewGenerator(testConfig()).BuildSnapshot(date, apps, nil)

	assert.Equal(t, 5, snapshot.TotalApplications)
	assert.Equal(t, 1, snapshot.ApplicationsSentToday)
	assert.Equal(t, 4, snapshot.TotalResponses)
	assert.Equal(t, 2, snapshot.TotalInterviews) // interviewing + offer
	assert.Equal(t, 1, snapshot.TotalOffers)
	assert.Equal(t, 1, snapshot.TotalRejections)
	assert.Equal(t, 4, snapshot.ActiveApplications)
	assert.Equal(t, 1, snapshot.PendingFollowups)
	assert.Equal(t, "2026-08-26", time.Time(snapshot.MetricDate).Format("2006-01-02"))
}

// TestRecommendationsFallback 无任何信号时给出通用建议
func TestRecommendationsFallback(t *testing.T) {
	recs := buildRecommendations(SuccessMetrics{
		ResponseRateBenchmark:  50,
		InterviewRateBenchmark: 15,
		OfferRateBenchmark:     5,
		ResponseRate:           50,
		InterviewRate:          15,
	}, KeywordAnalysis{}, TimeMetrics{})
	require.Len(t, recs, 1)
	assert.True(t, strings.Contains(recs[0], "Continue applying"))
}
