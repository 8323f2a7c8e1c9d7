package dashboard

import (
	"time"

	"gorm.io/datatypes"

	"jobtrack-go/internal/storage/models"
)

// BuildSnapshot 根据当前全量数据计算一天的指标快照。
// 快照按metric_date做upsert，一天内多次同步只保留最新结果。
func (g *Generator) BuildSnapshot(
	date time.Time,
	applications []models.Application,
	stages []models.ApplicationStage,
) models.MetricSnapshot {
	metrics := CalculateSuccessMetrics(applications, g.cfg)
	timeMetrics := CalculateTimeMetrics(stages)
	day := date.Format("2006-01-02")

	snapshot := models.MetricSnapshot{
		MetricDate:             datatypes.Date(date),
		TotalApplications:      len(applications),
		ResponseRate:           metrics.ResponseRate,
		InterviewRate:          metrics.InterviewRate,
		OfferRate:              metrics.OfferRate,
		AvgResponseTimeDays:    timeMetrics.AvgResponseTimeDays,
		AvgTimeToInterviewDays: timeMetrics.AvgTimeToInterviewDays,
		AvgTimeToOfferDays:     timeMetrics.AvgTimeToOfferDays,
	}

	for _, app := range applications {
		if time.Time(app.AppliedDate).Format("2006-01-02") == day {
			snapshot.ApplicationsSentToday++
		}
		if app.Status.IsResponse() {
			snapshot.TotalResponses++
		}
		if app.Status.IsActive() {
			snapshot.ActiveApplications++
		}
		if app.Status == models.StatusRejected {
			snapshot.TotalRejections++
		}
		switch app.Status {
		case models.StatusInterviewing, models.StatusOffer, models.StatusAccepted:
			snapshot.TotalInterviews++
		}
		switch app.Status {
		case models.StatusOffer, models.StatusAccepted:
			snapshot.TotalOffers++
		}
		if app.NextFollowupDate != nil && app.Status.IsActive() {
			if !time.Time(*app.NextFollowupDate).After(date) {
				snapshot.PendingFollowups++
			}
		}
	}

	return snapshot
}
