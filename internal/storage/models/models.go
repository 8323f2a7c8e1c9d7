package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// ApplicationStatus 申请状态枚举
type ApplicationStatus string

const (
	StatusApplied      ApplicationStatus = "applied"
	StatusScreening    ApplicationStatus = "screening"
	StatusInterviewing ApplicationStatus = "interviewing"
	StatusOffer        ApplicationStatus = "offer"
	StatusRejected     ApplicationStatus = "rejected"
	StatusAccepted     ApplicationStatus = "accepted"
	StatusWithdrawn    ApplicationStatus = "withdrawn"
)

// AllStatuses 状态的规范顺序，漏斗统计按此顺序输出
var AllStatuses = []ApplicationStatus{
	StatusApplied,
	StatusScreening,
	StatusInterviewing,
	StatusOffer,
	StatusRejected,
	StatusAccepted,
	StatusWithdrawn,
}

// Valid 判断是否是合法的申请状态
func (s ApplicationStatus) Valid() bool {
	for _, status := range AllStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsResponse 判断状态是否代表公司已有回复。
// applied和withdrawn之外的状态都算收到了回复。
func (s ApplicationStatus) IsResponse() bool {
	return s.Valid() && s != StatusApplied && s != StatusWithdrawn
}

// IsActive 判断申请是否仍在进行中
func (s ApplicationStatus) IsActive() bool {
	switch s {
	case StatusApplied, StatusScreening, StatusInterviewing, StatusOffer:
		return true
	}
	return false
}

// EmploymentType 雇佣类型枚举
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "Full-time"
	EmploymentPartTime   EmploymentType = "Part-time"
	EmploymentContract   EmploymentType = "Contract"
	EmploymentInternship EmploymentType = "Internship"
	EmploymentFreelance  EmploymentType = "Freelance"
)

// Valid 判断是否是合法的雇佣类型
func (e EmploymentType) Valid() bool {
	switch e {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract,
		EmploymentInternship, EmploymentFreelance:
		return true
	}
	return false
}

// InterviewType 面试类型枚举
type InterviewType string

const (
	InterviewPhone        InterviewType = "phone"
	InterviewVideo        InterviewType = "video"
	InterviewOnsite       InterviewType = "onsite"
	InterviewTechnical    InterviewType = "technical"
	InterviewBehavioral   InterviewType = "behavioral"
	InterviewPanel        InterviewType = "panel"
	InterviewHR           InterviewType = "hr"
	InterviewCaseStudy    InterviewType = "case_study"
	InterviewPresentation InterviewType = "presentation"
)

// Valid 判断是否是合法的面试类型
func (t InterviewType) Valid() bool {
	switch t {
	case InterviewPhone, InterviewVideo, InterviewOnsite, InterviewTechnical,
		InterviewBehavioral, InterviewPanel, InterviewHR, InterviewCaseStudy,
		InterviewPresentation:
		return true
	}
	return false
}

// InterviewResult 面试结果枚举
type InterviewResult string

const (
	ResultPassed    InterviewResult = "passed"
	ResultFailed    InterviewResult = "failed"
	ResultPending   InterviewResult = "pending"
	ResultCancelled InterviewResult = "cancelled"
)

// Valid 判断是否是合法的面试结果
func (r InterviewResult) Valid() bool {
	switch r {
	case ResultPassed, ResultFailed, ResultPending, ResultCancelled:
		return true
	}
	return false
}

// KeywordCategory 关键词类别枚举
type KeywordCategory string

const (
	KeywordTechnicalSkill KeywordCategory = "technical_skill"
	KeywordSoftSkill      KeywordCategory = "soft_skill"
	KeywordCertification  KeywordCategory = "certification"
	KeywordTool           KeywordCategory = "tool"
	KeywordFramework      KeywordCategory = "framework"
	KeywordDomain         KeywordCategory = "domain"
	KeywordLanguage       KeywordCategory = "language"
	KeywordMethodology    KeywordCategory = "methodology"
)

// Application 求职申请主表
type Application struct {
	ApplicationID    string            `gorm:"type:char(36);primaryKey"`
	Company          string            `gorm:"type:varchar(255);not null;index:idx_applications_company"`
	Position         string            `gorm:"type:varchar(255);not null"`
	JobURL           string            `gorm:"type:varchar(1024)"`
	JobDescription   string            `gorm:"type:text"`
	Location         string            `gorm:"type:varchar(255)"`
	SalaryRange      string            `gorm:"type:varchar(100)"`
	EmploymentType   EmploymentType    `gorm:"type:varchar(50);default:'Full-time'"`
	AppliedDate      datatypes.Date    `gorm:"type:date;not null;index:idx_applications_applied_date"`
	Status           ApplicationStatus `gorm:"type:varchar(50);default:'applied';index:idx_applications_status"`
	Source           string            `gorm:"type:varchar(100)"`
	ResumeVersion    string            `gorm:"type:varchar(100)"`
	CoverLetterUsed  bool              `gorm:"default:false"`
	KeywordsTargeted datatypes.JSON    `gorm:"type:json"` // 关键词数组
	LastContactDate  *datatypes.Date   `gorm:"type:date"`
	NextFollowupDate *datatypes.Date   `gorm:"type:date"`
	Notes            string            `gorm:"type:text"`
	ResumePath       string            `gorm:"type:varchar(1024)"`
	CoverLetterPath  string            `gorm:"type:varchar(1024)"`
	CreatedAt        time.Time         `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt        time.Time         `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`

	Interviews []Interview        `gorm:"foreignKey:ApplicationID;references:ApplicationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Stages     []ApplicationStage `gorm:"foreignKey:ApplicationID;references:ApplicationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Application) TableName() string {
	return "applications"
}

// SetKeywords 把目标关键词列表序列化进JSON列
func (a *Application) SetKeywords(keywords []string) error {
	if len(keywords) == 0 {
		a.KeywordsTargeted = nil
		return nil
	}
	data, err := json.Marshal(keywords)
	if err != nil {
		return fmt.Errorf("序列化关键词失败: %w", err)
	}
	a.KeywordsTargeted = datatypes.JSON(data)
	return nil
}

// Keywords 反序列化目标关键词列表，列为空时返回nil
func (a *Application) Keywords() ([]string, error) {
	if len(a.KeywordsTargeted) == 0 {
		return nil, nil
	}
	var keywords []string
	if err := json.Unmarshal(a.KeywordsTargeted, &keywords); err != nil {
		return nil, fmt.Errorf("反序列化关键词失败: %w", err)
	}
	return keywords, nil
}

// Interview 面试记录表
type Interview struct {
	InterviewID         uint64          `gorm:"primaryKey;autoIncrement"`
	ApplicationID       string          `gorm:"type:char(36);not null;index:idx_interviews_application_id"`
	InterviewDate       datatypes.Date  `gorm:"type:date;not null;index:idx_interviews_interview_date"`
	InterviewTime       string          `gorm:"type:varchar(10)"` // HH:MM
	DurationMinutes     int             `gorm:"type:int"`
	InterviewType       InterviewType   `gorm:"type:varchar(50);not null"`
	RoundNumber         int             `gorm:"type:int;default:1"`
	InterviewerName     string          `gorm:"type:varchar(255)"`
	InterviewerTitle    string          `gorm:"type:varchar(255)"`
	InterviewerEmail    string          `gorm:"type:varchar(255)"`
	PanelSize           int             `gorm:"type:int;default:1"`
	QuestionsAsked      datatypes.JSON  `gorm:"type:json"`
	TopicsCovered       datatypes.JSON  `gorm:"type:json"`
	TechnicalAssessment string          `gorm:"type:text"`
	Result              InterviewResult `gorm:"type:varchar(50)"`
	FeedbackReceived    string          `gorm:"type:text"`
	PersonalNotes       string          `gorm:"type:text"`
	AreasToImprove      string          `gorm:"type:text"`
	Location            string          `gorm:"type:varchar(255)"`
	MeetingLink         string          `gorm:"type:varchar(1024)"`
	Timezone            string          `gorm:"type:varchar(50)"`
	CreatedAt           time.Time       `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt           time.Time       `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`

	Application *Application `gorm:"foreignKey:ApplicationID;references:ApplicationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Interview) TableName() string {
	return "interviews"
}

// SetQuestions 把面试问题列表序列化进JSON列
func (i *Interview) SetQuestions(questions []string) error {
	if len(questions) == 0 {
		i.QuestionsAsked = nil
		return nil
	}
	data, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("序列化面试问题失败: %w", err)
	}
	i.QuestionsAsked = datatypes.JSON(data)
	return nil
}

// SetTopics 把面试主题列表序列化进JSON列
func (i *Interview) SetTopics(topics []string) error {
	if len(topics) == 0 {
		i.TopicsCovered = nil
		return nil
	}
	data, err := json.Marshal(topics)
	if err != nil {
		return fmt.Errorf("序列化面试主题失败: %w", err)
	}
	i.TopicsCovered = datatypes.JSON(data)
	return nil
}

// ApplicationStage 申请状态变更历史表，只追加不修改
type ApplicationStage struct {
	StageID       uint64            `gorm:"primaryKey;autoIncrement"`
	ApplicationID string            `gorm:"type:char(36);not null;index:idx_stages_application_id"`
	Status        ApplicationStatus `gorm:"type:varchar(50);not null"`
	StageDate     datatypes.Date    `gorm:"type:date;not null"`
	Notes         string            `gorm:"type:text"`
	ChangedBy     string            `gorm:"type:varchar(100);default:'manual'"`
	CreatedAt     time.Time         `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`

	Application *Application `gorm:"foreignKey:ApplicationID;references:ApplicationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (ApplicationStage) TableName() string {
	return "application_stages"
}

// MetricSnapshot 按天的汇总指标表，同一天只有一行（按metric_date做upsert）
type MetricSnapshot struct {
	SnapshotID             uint64         `gorm:"primaryKey;autoIncrement"`
	MetricDate             datatypes.Date `gorm:"type:date;not null;uniqueIndex:idx_metrics_metric_date_unique"`
	TotalApplications      int            `gorm:"type:int;default:0"`
	ApplicationsSentToday  int            `gorm:"type:int;default:0"`
	TotalResponses         int            `gorm:"type:int;default:0"`
	ResponseRate           float64        `gorm:"type:float;default:0"`
	TotalInterviews        int            `gorm:"type:int;default:0"`
	InterviewRate          float64        `gorm:"type:float;default:0"`
	TotalOffers            int            `gorm:"type:int;default:0"`
	OfferRate              float64        `gorm:"type:float;default:0"`
	TotalRejections        int            `gorm:"type:int;default:0"`
	AvgResponseTimeDays    float64        `gorm:"type:float;default:0"`
	AvgTimeToInterviewDays float64        `gorm:"type:float;default:0"`
	AvgTimeToOfferDays     float64        `gorm:"type:float;default:0"`
	ActiveApplications     int            `gorm:"type:int;default:0"`
	PendingFollowups       int            `gorm:"type:int;default:0"`
	CreatedAt              time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt              time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (MetricSnapshot) TableName() string {
	return "metric_snapshots"
}

// KeywordPerformance 关键词表现表，每个关键词一行（按keyword做upsert）
type KeywordPerformance struct {
	KeywordID      uint64          `gorm:"primaryKey;autoIncrement"`
	Keyword        string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_keywords_keyword_unique"`
	TotalUses      int             `gorm:"type:int;default:0"`
	ResponseCount  int             `gorm:"type:int;default:0"`
	ResponseRate   float64         `gorm:"type:float;default:0"`
	InterviewCount int             `gorm:"type:int;default:0"`
	InterviewRate  float64         `gorm:"type:float;default:0"`
	OfferCount     int             `gorm:"type:int;default:0"`
	OfferRate      float64         `gorm:"type:float;default:0"`
	Category       KeywordCategory `gorm:"type:varchar(50);index:idx_keywords_category"`
	LastUsedDate   *datatypes.Date `gorm:"type:date"`
	CreatedAt      time.Time       `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt      time.Time       `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (KeywordPerformance) TableName() string {
	return "keyword_performances"
}
