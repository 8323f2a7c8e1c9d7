package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"jobtrack-go/internal/logger"
	"jobtrack-go/internal/storage/models"
)

// 面试类型/结果校验错误
var (
	ErrInvalidInterviewType   = errors.New("无效的面试类型")
	ErrInvalidInterviewResult = errors.New("无效的面试结果")
)

// CreateInterview 为已有申请记录一场面试。
// 申请处于applied或screening状态时自动推进到interviewing并记录状态历史。
func (m *MySQL) CreateInterview(ctx context.Context, interview *models.Interview) error {
	if !interview.InterviewType.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidInterviewType, interview.InterviewType)
	}
	if interview.Result != "" && !interview.Result.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidInterviewResult, interview.Result)
	}
	if interview.RoundNumber <= 0 {
		interview.RoundNumber = 1
	}
	if interview.PanelSize <= 0 {
		interview.PanelSize = 1
	}

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var app models.Application
		if err := tx.First(&app, "application_id = ?", interview.ApplicationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrApplicationNotFound, interview.ApplicationID)
			}
			return fmt.Errorf("查询申请记录失败: %w", err)
		}

		if err := tx.Create(interview).Error; err != nil {
			return fmt.Errorf("创建面试记录失败: %w", err)
		}

		// 还停留在早期状态的申请随面试自动推进
		if app.Status == models.StatusApplied || app.Status == models.StatusScreening {
			if err := tx.Model(&app).Update("status", models.StatusInterviewing).Error; err != nil {
				return fmt.Errorf("推进申请状态失败: %w", err)
			}
			stage := &models.ApplicationStage{
				ApplicationID: app.ApplicationID,
				Status:        models.StatusInterviewing,
				StageDate:     interview.InterviewDate,
				ChangedBy:     "auto",
				Notes:         "状态随面试记录自动推进",
			}
			if err := tx.Create(stage).Error; err != nil {
				return fmt.Errorf("写入状态历史失败: %w", err)
			}
		}

		logger.Debug().
			Uint64("interview_id", interview.InterviewID).
			Str("application_id", interview.ApplicationID).
			Str("type", string(interview.InterviewType)).
			Int("round", interview.RoundNumber).
			Msg("面试记录已创建")
		return nil
	})
}

// GetInterview 按ID获取面试记录
func (m *MySQL) GetInterview(ctx context.Context, id uint64) (*models.Interview, error) {
	var interview models.Interview
	err := m.db.WithContext(ctx).First(&interview, "interview_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrInterviewNotFound, id)
		}
		return nil, fmt.Errorf("查询面试记录失败: %w", err)
	}
	return &interview, nil
}

// ListInterviews 列出一个申请的全部面试，按日期和轮次升序。
// applicationID为空时返回全部面试。
func (m *MySQL) ListInterviews(ctx context.Context, applicationID string) ([]models.Interview, error) {
	query := m.db.WithContext(ctx).Model(&models.Interview{})
	if applicationID != "" {
		query = query.Where("application_id = ?", applicationID)
	}

	var interviews []models.Interview
	if err := query.Order("interview_date ASC, round_number ASC").Find(&interviews).Error; err != nil {
		return nil, fmt.Errorf("查询面试列表失败: %w", err)
	}
	return interviews, nil
}

// UpdateInterview 更新面试记录的指定字段
func (m *MySQL) UpdateInterview(ctx context.Context, id uint64, updates map[string]interface{}) (*models.Interview, error) {
	if raw, ok := updates["result"]; ok {
		result, isResult := raw.(models.InterviewResult)
		if !isResult {
			if s, isString := raw.(string); isString {
				result = models.InterviewResult(s)
				updates["result"] = result
			}
		}
		if !result.Valid() {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInterviewResult, raw)
		}
	}

	interview, err := m.GetInterview(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := m.db.WithContext(ctx).Model(interview).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("更新面试记录失败: %w", err)
	}

	return m.GetInterview(ctx, id)
}

// DeleteInterview 删除面试记录
func (m *MySQL) DeleteInterview(ctx context.Context, id uint64) error {
	result := m.db.WithContext(ctx).Delete(&models.Interview{}, "interview_id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("删除面试记录失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %d", ErrInterviewNotFound, id)
	}
	return nil
}
