package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrack-go/internal/storage/models"
)

const sampleJD = `Senior Backend Engineer

We are looking for an experienced engineer to join our platform team.

Requirements:
- 5+ years of experience with Python or Go
- Strong knowledge of PostgreSQL and Redis
- Experience with Docker and Kubernetes

Nice to have:
- Familiarity with Terraform
- Experience mentoring junior engineers

Responsibilities:
- Design and build scalable microservices
- Collaborate with cross-functional teams`

// TestExtract 提取词库关键词和经验年限短语
func TestExtract(t *testing.T) {
	keywords := Extract(sampleJD)

	assert.Contains(t, keywords, "python")
	assert.Contains(t, keywords, "go")
	assert.Contains(t, keywords, "postgresql")
	assert.Contains(t, keywords, "docker")
	assert.Contains(t, keywords, "kubernetes")
	assert.Contains(t, keywords, "terraform")
	assert.Contains(t, keywords, "mentoring")
	assert.Contains(t, keywords, "microservices")
	assert.Contains(t, keywords, "5+ years of experience")

	assert.Empty(t, Extract(""))
}

// TestCategorize 关键词映射到类别枚举
func TestCategorize(t *testing.T) {
	assert.Equal(t, models.KeywordTechnicalSkill, Categorize("python"))
	assert.Equal(t, models.KeywordSoftSkill, Categorize("mentoring"))
	assert.Equal(t, models.KeywordDomain, Categorize("scalability"))
	// 词库外的词默认按技术技能处理
	assert.Equal(t, models.KeywordTechnicalSkill, Categorize("cobol"))
}

// TestFrequency 多词短语用子串计数，单词用分词计数
func TestFrequency(t *testing.T) {
	freq := Frequency("python python go, machine learning and machine learning")

	assert.Equal(t, 2, freq["python"])
	assert.Equal(t, 1, freq["go"])
	assert.Equal(t, 2, freq["machine learning"])
}

// TestCategorizeRequirements 按段落标题划分必须项和加分项
func TestCategorizeRequirements(t *testing.T) {
	required, niceToHave := CategorizeRequirements(sampleJD)

	require.Len(t, required, 3)
	assert.Contains(t, required[0], "5+ years")

	require.Len(t, niceToHave, 2)
	assert.Contains(t, niceToHave[0], "Terraform")

	// Responsibilities段落的条目不计入
	for _, item := range required {
		assert.NotContains(t, item, "scalable microservices")
	}
}

// TestCategorizeRequirementsHeuristic 没有段落标题时退回句式启发
func TestCategorizeRequirementsHeuristic(t *testing.T) {
	text := "You will need 3+ years experience with Go. Familiarity with Rust is welcome."
	required, niceToHave := CategorizeRequirements(text)

	require.NotEmpty(t, required)
	assert.Contains(t, required[0], "3+ years experience with Go")
	require.NotEmpty(t, niceToHave)
	assert.Contains(t, niceToHave[0], "Familiarity with Rust")
}

// TestImportance 频率归一化，required段落和开头出现有加权
func TestImportance(t *testing.T) {
	importance := Importance(sampleJD)
	require.NotEmpty(t, importance)

	for keyword, score := range importance {
		assert.LessOrEqual(t, score, 1.0, keyword)
		assert.Greater(t, score, 0.0, keyword)
	}
}

// TestAnalyze 完整分析包含全部板块
func TestAnalyze(t *testing.T) {
	analysis := Analyze(sampleJD)

	assert.NotEmpty(t, analysis.TechnicalSkills)
	assert.NotEmpty(t, analysis.LeadershipSkills)
	assert.NotEmpty(t, analysis.DomainExpertise)
	assert.NotEmpty(t, analysis.RequiredSkills)
	assert.NotEmpty(t, analysis.NiceToHaveSkills)
	assert.NotEmpty(t, analysis.ATSKeywords)
	assert.NotEmpty(t, analysis.KeywordFrequency)

	// 空文本返回零值
	assert.Empty(t, Analyze("").ATSKeywords)
}
