package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jobtrack-go/internal/logger"
	"jobtrack-go/internal/storage/models"
)

// ErrKeywordNotFound 关键词不存在
var ErrKeywordNotFound = errors.New("关键词记录不存在")

// UpsertMetricSnapshot 写入一天的指标快照，同一metric_date只保留一行
func (m *MySQL) UpsertMetricSnapshot(ctx context.Context, snapshot *models.MetricSnapshot) error {
	err := m.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "metric_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_applications",
			"applications_sent_today",
			"total_responses",
			"response_rate",
			"total_interviews",
			"interview_rate",
			"total_offers",
			"offer_rate",
			"total_rejections",
			"avg_response_time_days",
			"avg_time_to_interview_days",
			"avg_time_to_offer_days",
			"active_applications",
			"pending_followups",
			"updated_at",
		}),
	}).Create(snapshot).Error
	if err != nil {
		return fmt.Errorf("写入指标快照失败: %w", err)
	}

	logger.Debug().
		Time("metric_date", time.Time(snapshot.MetricDate)).
		Int("total_applications", snapshot.TotalApplications).
		Msg("指标快照已写入")
	return nil
}

// GetMetricSnapshot 获取指定日期的指标快照，不存在时返回nil
func (m *MySQL) GetMetricSnapshot(ctx context.Context, date time.Time) (*models.MetricSnapshot, error) {
	var snapshot models.MetricSnapshot
	err := m.db.WithContext(ctx).
		First(&snapshot, "metric_date = ?", date.Format("2006-01-02")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询指标快照失败: %w", err)
	}
	return &snapshot, nil
}

// ListMetricSnapshots 列出日期区间内的指标快照，按日期升序
func (m *MySQL) ListMetricSnapshots(ctx context.Context, since, until time.Time) ([]models.MetricSnapshot, error) {
	var snapshots []models.MetricSnapshot
	err := m.db.WithContext(ctx).
		Where("metric_date BETWEEN ? AND ?", since.Format("2006-01-02"), until.Format("2006-01-02")).
		Order("metric_date ASC").
		Find(&snapshots).Error
	if err != nil {
		return nil, fmt.Errorf("查询指标快照列表失败: %w", err)
	}
	return snapshots, nil
}

// UpsertKeywordPerformance 写入关键词表现，同一keyword只保留一行
func (m *MySQL) UpsertKeywordPerformance(ctx context.Context, perf *models.KeywordPerformance) error {
	err := m.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "keyword"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_uses",
			"response_count",
			"response_rate",
			"interview_count",
			"interview_rate",
			"offer_count",
			"offer_rate",
			"category",
			"last_used_date",
			"updated_at",
		}),
	}).Create(perf).Error
	if err != nil {
		return fmt.Errorf("写入关键词表现失败: %w", err)
	}
	return nil
}

// GetKeywordPerformance 按关键词查询表现记录
func (m *MySQL) GetKeywordPerformance(ctx context.Context, keyword string) (*models.KeywordPerformance, error) {
	var perf models.KeywordPerformance
	err := m.db.WithContext(ctx).First(&perf, "keyword = ?", keyword).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrKeywordNotFound, keyword)
		}
		return nil, fmt.Errorf("查询关键词表现失败: %w", err)
	}
	return &perf, nil
}

// ListTopKeywords 按回复率倒序列出使用次数达到下限的关键词
func (m *MySQL) ListTopKeywords(ctx context.Context, minUses, limit int) ([]models.KeywordPerformance, error) {
	query := m.db.WithContext(ctx).Model(&models.KeywordPerformance{})
	if minUses > 0 {
		query = query.Where("total_uses >= ?", minUses)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var keywords []models.KeywordPerformance
	if err := query.Order("response_rate DESC, total_uses DESC").Find(&keywords).Error; err != nil {
		return nil, fmt.Errorf("查询关键词榜单失败: %w", err)
	}
	return keywords, nil
}
