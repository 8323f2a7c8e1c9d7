package dashboard

import (
	"sort"
	"time"

	"jobtrack-go/internal/config"
	"jobtrack-go/internal/storage/models"
)

// BenchmarkStatus 指标相对行业基准的评级
type BenchmarkStatus string

const (
	BenchmarkAbove   BenchmarkStatus = "above"
	BenchmarkAverage BenchmarkStatus = "average"
	BenchmarkBelow   BenchmarkStatus = "below"
)

// SuccessMetrics 成功率指标及基准对比
type SuccessMetrics struct {
	ResponseRate  float64 `json:"response_rate"`
	InterviewRate float64 `json:"interview_rate"`
	OfferRate     float64 `json:"offer_rate"`

	ResponseRateBenchmark  float64 `json:"response_rate_benchmark"`
	InterviewRateBenchmark float64 `json:"interview_rate_benchmark"`
	OfferRateBenchmark     float64 `json:"offer_rate_benchmark"`

	ResponseRateStatus  BenchmarkStatus `json:"response_rate_status"`
	InterviewRateStatus BenchmarkStatus `json:"interview_rate_status"`
	OfferRateStatus     BenchmarkStatus `json:"offer_rate_status"`
}

// CalculateSuccessMetrics 计算回复率/面试率/offer率并评级。
// 回复 = 离开applied状态；面试 = interviewing/offer/accepted；
// offer = offer/accepted。withdrawn不算回复。
func CalculateSuccessMetrics(applications []models.Application, cfg config.DashboardConfig) SuccessMetrics {
	metrics := SuccessMetrics{
		ResponseRateBenchmark:  cfg.ResponseRateBenchmark,
		InterviewRateBenchmark: cfg.InterviewRateBenchmark,
		OfferRateBenchmark:     cfg.OfferRateBenchmark,
		ResponseRateStatus:     BenchmarkAverage,
		InterviewRateStatus:    BenchmarkAverage,
		OfferRateStatus:        BenchmarkAverage,
	}

	total := len(applications)
	if total == 0 {
		return metrics
	}

	var responded, interviewed, offered int
	for _, app := range applications {
		if app.Status != models.StatusApplied {
			responded++
		}
		switch app.Status {
		case models.StatusInterviewing, models.StatusOffer, models.StatusAccepted:
			interviewed++
		}
		switch app.Status {
		case models.StatusOffer, models.StatusAccepted:
			offered++
		}
	}

	metrics.ResponseRate = float64(responded) / float64(total) * 100.0
	metrics.InterviewRate = float64(interviewed) / float64(total) * 100.0
	metrics.OfferRate = float64(offered) / float64(total) * 100.0

	metrics.ResponseRateStatus = rateStatus(metrics.ResponseRate, cfg.ResponseRateBenchmark)
	metrics.InterviewRateStatus = rateStatus(metrics.InterviewRate, cfg.InterviewRateBenchmark)
	metrics.OfferRateStatus = rateStatus(metrics.OfferRate, cfg.OfferRateBenchmark)
	return metrics
}

// rateStatus 基准±10%以内算average
func rateStatus(rate, benchmark float64) BenchmarkStatus {
	if rate >= benchmark*1.1 {
		return BenchmarkAbove
	}
	if rate <= benchmark*0.9 {
		return BenchmarkBelow
	}
	return BenchmarkAverage
}

// TimeMetrics 各阶段平均耗时（天）
type TimeMetrics struct {
	AvgResponseTimeDays    float64 `json:"avg_response_time_days"`
	AvgTimeToInterviewDays float64 `json:"avg_time_to_interview_days"`
	AvgTimeToOfferDays     float64 `json:"avg_time_to_offer_days"`
}

// CalculateTimeMetrics 根据状态历史计算各阶段平均耗时。
// 每个申请取applied到各状态首次出现的天数差，再跨申请求平均。
func CalculateTimeMetrics(stages []models.ApplicationStage) TimeMetrics {
	if len(stages) == 0 {
		return TimeMetrics{}
	}

	byApplication := make(map[string][]models.ApplicationStage)
	for _, stage := range stages {
		byApplication[stage.ApplicationID] = append(byApplication[stage.ApplicationID], stage)
	}

	var responseTimes, interviewTimes, offerTimes []float64

	for _, appStages := range byApplication {
		sort.Slice(appStages, func(i, j int) bool {
			return time.Time(appStages[i].StageDate).Before(time.Time(appStages[j].StageDate))
		})

		var appliedAt, screeningAt, interviewAt, offerAt *time.Time
		for _, stage := range appStages {
			date := time.Time(stage.StageDate)
			switch stage.Status {
			case models.StatusApplied:
				appliedAt = &date
			case models.StatusScreening:
				if screeningAt == nil {
					screeningAt = &date
				}
			case models.StatusInterviewing:
				if interviewAt == nil {
					interviewAt = &date
				}
			case models.StatusOffer:
				if offerAt == nil {
					offerAt = &date
				}
			}
		}

		if appliedAt == nil {
			continue
		}
		if screeningAt != nil {
			responseTimes = append(responseTimes, daysBetween(*appliedAt, *screeningAt))
		}
		if interviewAt != nil {
			interviewTimes = append(interviewTimes, daysBetween(*appliedAt, *interviewAt))
		}
		if offerAt != nil {
			offerTimes = append(offerTimes, daysBetween(*appliedAt, *offerAt))
		}
	}

	return TimeMetrics{
		AvgResponseTimeDays:    average(responseTimes),
		AvgTimeToInterviewDays: average(interviewTimes),
		AvgTimeToOfferDays:     average(offerTimes),
	}
}

func daysBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
