package dashboard

import (
	"encoding/json"
	"fmt"
	"strings"

	"jobtrack-go/internal/config"
	"jobtrack-go/internal/storage/models"
)

// Format 面板输出格式
type Format string

const (
	FormatTerminal Format = "terminal"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Valid 判断是否是支持的输出格式
func (f Format) Valid() bool {
	switch f {
	case FormatTerminal, FormatMarkdown, FormatJSON:
		return true
	}
	return false
}

// Generator 分析面板生成器
type Generator struct {
	cfg config.DashboardConfig
}

// NewGenerator 创建面板生成器
func NewGenerator(cfg config.DashboardConfig) *Generator {
	return &Generator{cfg: cfg}
}

// Report 面板的全部计算结果，JSON格式直接序列化此结构
type Report struct {
	Funnel          Funnel                      `json:"funnel"`
	Metrics         SuccessMetrics              `json:"metrics"`
	TimeMetrics     TimeMetrics                 `json:"time_metrics"`
	Keywords        []models.KeywordPerformance `json:"keywords"`
	Recommendations []string                    `json:"recommendations"`
}

// Build 计算面板全部指标
func (g *Generator) Build(
	applications []models.Application,
	stages []models.ApplicationStage,
	keywords []models.KeywordPerformance,
) Report {
	funnel := CalculateFunnel(applications)
	metrics := CalculateSuccessMetrics(applications, g.cfg)
	timeMetrics := CalculateTimeMetrics(stages)
	keywordAnalysis := AnalyzeKeywords(keywords)

	return Report{
		Funnel:          funnel,
		Metrics:         metrics,
		TimeMetrics:     timeMetrics,
		Keywords:        keywordAnalysis.TopByResponse,
		Recommendations: buildRecommendations(metrics, keywordAnalysis, timeMetrics),
	}
}

// Generate 计算指标并按指定格式渲染
func (g *Generator) Generate(
	applications []models.Application,
	stages []models.ApplicationStage,
	keywords []models.KeywordPerformance,
	format Format,
) (string, error) {
	report := g.Build(applications, stages, keywords)

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return "", fmt.Errorf("序列化面板数据失败: %w", err)
		}
		return string(data), nil
	case FormatTerminal, FormatMarkdown:
		return g.renderText(report), nil
	default:
		return "", fmt.Errorf("不支持的输出格式: %q", format)
	}
}

// renderText 渲染terminal/markdown文本面板
func (g *Generator) renderText(report Report) string {
	sections := []string{
		"Application Pipeline Dashboard",
		strings.Repeat("=", 60),
		"",
		RenderFunnel(report.Funnel),
		renderMetricsTable(report.Metrics),
	}

	if report.TimeMetrics.AvgResponseTimeDays > 0 {
		timeLines := []string{
			"Time Analysis:",
			fmt.Sprintf("- Avg time to response:  %.1f days", report.TimeMetrics.AvgResponseTimeDays),
		}
		if report.TimeMetrics.AvgTimeToInterviewDays > 0 {
			timeLines = append(timeLines,
				fmt.Sprintf("- Avg time to interview: %.1f days", report.TimeMetrics.AvgTimeToInterviewDays))
		}
		if report.TimeMetrics.AvgTimeToOfferDays > 0 {
			timeLines = append(timeLines,
				fmt.Sprintf("- Avg time to offer:     %.1f days", report.TimeMetrics.AvgTimeToOfferDays))
		}
		timeLines = append(timeLines, "")
		sections = append(sections, strings.Join(timeLines, "\n"))
	}

	sections = append(sections, g.renderKeywordChart(report.Keywords))

	if len(report.Recommendations) > 0 {
		recLines := []string{"Recommendations:"}
		recLines = append(recLines, report.Recommendations...)
		recLines = append(recLines, "")
		sections = append(sections, strings.Join(recLines, "\n"))
	}

	return strings.Join(sections, "\n")
}

// renderMetricsTable 渲染成功率指标表
func renderMetricsTable(metrics SuccessMetrics) string {
	format := func(rate, benchmark float64, status BenchmarkStatus) string {
		symbol := "✗"
		switch status {
		case BenchmarkAbove:
			symbol = "✓"
		case BenchmarkAverage:
			symbol = "→"
		}
		label := strings.ToUpper(string(status)[:1]) + string(status)[1:]
		return fmt.Sprintf("%.0f%%  %s %s (%.0f%%)", rate, symbol, label, benchmark)
	}

	lines := []string{
		"Success Metrics:",
		fmt.Sprintf("- Response Rate:  %s", format(metrics.ResponseRate, metrics.ResponseRateBenchmark, metrics.ResponseRateStatus)),
		fmt.Sprintf("- Interview Rate: %s", format(metrics.InterviewRate, metrics.InterviewRateBenchmark, metrics.InterviewRateStatus)),
		fmt.Sprintf("- Offer Rate:     %s", format(metrics.OfferRate, metrics.OfferRateBenchmark, metrics.OfferRateStatus)),
		"",
	}
	return strings.Join(lines, "\n")
}

// renderKeywordChart 渲染关键词榜单
func (g *Generator) renderKeywordChart(keywords []models.KeywordPerformance) string {
	if len(keywords) == 0 {
		return "No keyword data available.\n"
	}

	limit := g.cfg.TopKeywords
	if limit <= 0 || limit > len(keywords) {
		limit = len(keywords)
	}

	lines := []string{"Top Keywords (by response rate):"}
	for i, kw := range keywords[:limit] {
		lines = append(lines, fmt.Sprintf("%d. %-30s - %.0f%% (%d/%d responses)",
			i+1, kw.Keyword, kw.ResponseRate, kw.ResponseCount, kw.TotalUses))
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

// buildRecommendations 根据指标生成可执行建议
func buildRecommendations(metrics SuccessMetrics, keywords KeywordAnalysis, timeMetrics TimeMetrics) []string {
	var recommendations []string

	if len(keywords.HighPerformers) > 0 {
		top := keywords.HighPerformers[0]
		recommendations = append(recommendations,
			fmt.Sprintf("→ Emphasize '%s' in future applications - %.0f%% response rate",
				top.Keyword, top.ResponseRate))
	}

	if metrics.ResponseRate < metrics.ResponseRateBenchmark {
		recommendations = append(recommendations,
			"→ Response rate below average - review resume keywords and formatting")
	} else if metrics.InterviewRate > 25 {
		recommendations = append(recommendations,
			"→ Your interview conversion is strong - focus on getting more interviews")
	}

	if metrics.InterviewRate < metrics.InterviewRateBenchmark && metrics.ResponseRate > metrics.ResponseRateBenchmark {
		recommendations = append(recommendations,
			"→ Strong response rate but low interview rate - improve screening call performance")
	}

	if timeMetrics.AvgResponseTimeDays > 0 {
		followupDays := int(timeMetrics.AvgResponseTimeDays) + 2
		recommendations = append(recommendations,
			fmt.Sprintf("→ Consider following up after %d days if no response", followupDays))
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations,
			"→ Continue applying consistently and track your progress")
	}
	return recommendations
}
