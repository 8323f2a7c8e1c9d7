package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"jobtrack-go/internal/logger"
	"jobtrack-go/internal/storage/models"
)

// 存储层哨兵错误
var (
	ErrApplicationNotFound = errors.New("申请记录不存在")
	ErrInterviewNotFound   = errors.New("面试记录不存在")
	ErrInvalidStatus       = errors.New("无效的申请状态")
	ErrInvalidEmployment   = errors.New("无效的雇佣类型")
)

// ApplicationFilter 申请列表的查询条件，零值字段不参与过滤
type ApplicationFilter struct {
	Status  models.ApplicationStatus
	Company string
	Since   *time.Time // 申请日期下界（含）
	Until   *time.Time // 申请日期上界（含）
	Limit   int
}

// CreateApplication 创建申请记录，生成UUID并写入首条状态历史。
// 两次写入在同一事务中，保证状态历史与主表一致。
func (m *MySQL) CreateApplication(ctx context.Context, app *models.Application) error {
	if !app.Status.Valid() {
		if app.Status == "" {
			app.Status = models.StatusApplied
		} else {
			return fmt.Errorf("%w: %s", ErrInvalidStatus, app.Status)
		}
	}
	if !app.EmploymentType.Valid() {
		if app.EmploymentType == "" {
			app.EmploymentType = models.EmploymentFullTime
		} else {
			return fmt.Errorf("%w: %s", ErrInvalidEmployment, app.EmploymentType)
		}
	}

	if app.ApplicationID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("生成申请ID失败: %w", err)
		}
		app.ApplicationID = id.String()
	}

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(app).Error; err != nil {
			return fmt.Errorf("创建申请记录失败: %w", err)
		}

		stage := &models.ApplicationStage{
			ApplicationID: app.ApplicationID,
			Status:        app.Status,
			StageDate:     app.AppliedDate,
			ChangedBy:     "manual",
		}
		if err := tx.Create(stage).Error; err != nil {
			return fmt.Errorf("写入状态历史失败: %w", err)
		}

		logger.Debug().
			Str("application_id", app.ApplicationID).
			Str("company", app.Company).
			Str("position", app.Position).
			Msg("申请记录已创建")
		return nil
	})
}

// GetApplication 按ID获取申请记录，附带面试和状态历史
func (m *MySQL) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	err := m.db.WithContext(ctx).
		Preload("Interviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("interview_date ASC, round_number ASC")
		}).
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("stage_date ASC, stage_id ASC")
		}).
		First(&app, "application_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrApplicationNotFound, id)
		}
		return nil, fmt.Errorf("查询申请记录失败: %w", err)
	}
	return &app, nil
}

// ListApplications 按条件列出申请，按申请日期倒序
func (m *MySQL) ListApplications(ctx context.Context, filter ApplicationFilter) ([]models.Application, error) {
	query := m.db.WithContext(ctx).Model(&models.Application{})

	if filter.Status != "" {
		if !filter.Status.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, filter.Status)
		}
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Company != "" {
		query = query.Where("company LIKE ?", "%"+filter.Company+"%")
	}
	if filter.Since != nil {
		query = query.Where("applied_date >= ?", filter.Since.Format("2006-01-02"))
	}
	if filter.Until != nil {
		query = query.Where("applied_date <= ?", filter.Until.Format("2006-01-02"))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var apps []models.Application
	if err := query.Order("applied_date DESC, created_at DESC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("查询申请列表失败: %w", err)
	}
	return apps, nil
}

// UpdateApplication 更新申请记录的指定字段。
// 状态变更会追加一条状态历史，其余字段直接更新。
func (m *MySQL) UpdateApplication(ctx context.Context, id string, updates map[string]interface{}) (*models.Application, error) {
	if len(updates) == 0 {
		return m.GetApplication(ctx, id)
	}

	if raw, ok := updates["status"]; ok {
		status, isStatus := raw.(models.ApplicationStatus)
		if !isStatus {
			if s, isString := raw.(string); isString {
				status = models.ApplicationStatus(s)
				updates["status"] = status
			}
		}
		if !status.Valid() {
			return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, raw)
		}
	}

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var app models.Application
		if err := tx.First(&app, "application_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrApplicationNotFound, id)
			}
			return fmt.Errorf("查询申请记录失败: %w", err)
		}

		if err := tx.Model(&app).Updates(updates).Error; err != nil {
			return fmt.Errorf("更新申请记录失败: %w", err)
		}

		// 状态发生变化时追加历史
		if raw, ok := updates["status"]; ok {
			newStatus := raw.(models.ApplicationStatus)
			if newStatus != app.Status {
				stage := &models.ApplicationStage{
					ApplicationID: id,
					Status:        newStatus,
					StageDate:     datatypes.Date(time.Now()),
					ChangedBy:     "manual",
				}
				if err := tx.Create(stage).Error; err != nil {
					return fmt.Errorf("写入状态历史失败: %w", err)
				}
				logger.Debug().
					Str("application_id", id).
					Str("from", string(app.Status)).
					Str("to", string(newStatus)).
					Msg("申请状态已变更")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return m.GetApplication(ctx, id)
}

// DeleteApplication 删除申请及其关联的面试和状态历史
func (m *MySQL) DeleteApplication(ctx context.Context, id string) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Application{}, "application_id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("删除申请记录失败: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", ErrApplicationNotFound, id)
		}

		// 外键迁移被禁用，级联删除在应用层完成
		if err := tx.Delete(&models.Interview{}, "application_id = ?", id).Error; err != nil {
			return fmt.Errorf("删除面试记录失败: %w", err)
		}
		if err := tx.Delete(&models.ApplicationStage{}, "application_id = ?", id).Error; err != nil {
			return fmt.Errorf("删除状态历史失败: %w", err)
		}

		logger.Debug().Str("application_id", id).Msg("申请记录已删除")
		return nil
	})
}

// ListStages 返回一个申请的状态历史，按时间升序
func (m *MySQL) ListStages(ctx context.Context, applicationID string) ([]models.ApplicationStage, error) {
	var stages []models.ApplicationStage
	err := m.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("stage_date ASC, stage_id ASC").
		Find(&stages).Error
	if err != nil {
		return nil, fmt.Errorf("查询状态历史失败: %w", err)
	}
	return stages, nil
}

// ListStagesForApplications 批量返回多个申请的状态历史。
// ids为空时返回全部历史。
func (m *MySQL) ListStagesForApplications(ctx context.Context, ids []string) ([]models.ApplicationStage, error) {
	query := m.db.WithContext(ctx).Model(&models.ApplicationStage{})
	if len(ids) > 0 {
		query = query.Where("application_id IN ?", ids)
	}

	var stages []models.ApplicationStage
	if err := query.Order("stage_date ASC, stage_id ASC").Find(&stages).Error; err != nil {
		return nil, fmt.Errorf("查询状态历史失败: %w", err)
	}
	return stages, nil
}

// CountApplications 返回满足条件的申请总数
func (m *MySQL) CountApplications(ctx context.Context, filter ApplicationFilter) (int64, error) {
	query := m.db.WithContext(ctx).Model(&models.Application{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Since != nil {
		query = query.Where("applied_date >= ?", filter.Since.Format("2006-01-02"))
	}
	if filter.Until != nil {
		query = query.Where("applied_date <= ?", filter.Until.Format("2006-01-02"))
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("统计申请数量失败: %w", err)
	}
	return count, nil
}
