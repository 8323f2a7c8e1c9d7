package dashboard

import (
	"fmt"
	"strings"

	"jobtrack-go/internal/storage/models"
)

// Funnel 申请漏斗统计
type Funnel struct {
	Total        int                                `json:"total"`
	Counts       map[models.ApplicationStatus]int   `json:"counts"`
	Percentages  map[models.ApplicationStatus]float64 `json:"percentages"`
	ResponseRate float64                            `json:"response_rate"`
}

// CalculateFunnel 统计各状态的申请数量和占比。
// 回复率 = 状态已离开applied的申请占比。
func CalculateFunnel(applications []models.Application) Funnel {
	funnel := Funnel{
		Counts:      make(map[models.ApplicationStatus]int, len(models.AllStatuses)),
		Percentages: make(map[models.ApplicationStatus]float64, len(models.AllStatuses)),
	}
	for _, status := range models.AllStatuses {
		funnel.Counts[status] = 0
		funnel.Percentages[status] = 0
	}

	funnel.Total = len(applications)
	if funnel.Total == 0 {
		return funnel
	}

	for _, app := range applications {
		status := app.Status
		if !status.Valid() {
			status = models.StatusApplied
		}
		funnel.Counts[status]++
	}

	for status, count := range funnel.Counts {
		funnel.Percentages[status] = float64(count) / float64(funnel.Total) * 100.0
	}

	responded := funnel.Total - funnel.Counts[models.StatusApplied]
	funnel.ResponseRate = float64(responded) / float64(funnel.Total) * 100.0
	return funnel
}

// funnelBarWidth ASCII漏斗条的最大宽度
const funnelBarWidth = 50

// RenderFunnel 渲染ASCII漏斗图
func RenderFunnel(funnel Funnel) string {
	if funnel.Total == 0 {
		return "No applications to display.\n"
	}

	bar := func(status models.ApplicationStatus) string {
		count := funnel.Counts[status]
		width := count * funnelBarWidth / funnel.Total
		return fmt.Sprintf("%s %d (%.0f%%)",
			strings.Repeat("█", width), count, funnel.Percentages[status])
	}

	lines := []string{
		"Application Pipeline",
		strings.Repeat("=", 60),
		"",
		fmt.Sprintf("Total Applications: %d", funnel.Total),
		fmt.Sprintf("├─ Applied:       %s", bar(models.StatusApplied)),
		fmt.Sprintf("├─ Screening:     %s", bar(models.StatusScreening)),
		fmt.Sprintf("├─ Interview:     %s", bar(models.StatusInterviewing)),
		fmt.Sprintf("├─ Offer:         %s", bar(models.StatusOffer)),
		fmt.Sprintf("└─ Rejected:      %s", bar(models.StatusRejected)),
		"",
	}
	return strings.Join(lines, "\n")
}
