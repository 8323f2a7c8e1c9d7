package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrack-go/internal/types"
)

// TestParseExperienceSection 验证典型工作经历块的解析
func TestParseExperienceSection(t *testing.T) {
	text := `Software Engineer | Acme Corp
Jan 2020 - Present
• Built distributed systems
• Led team of 5

Data Analyst at Beta Inc
Jun 2018 - Dec 2019
- Analyzed customer data`

	entries := ParseExperienceSection(text)
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, "Software Engineer", first.Title)
	assert.Equal(t, "Acme Corp", first.Company)
	assert.Equal(t, types.DateRange{Start: "Jan 2020", End: "Present"}, first.Dates)
	assert.Equal(t, []string{"Built distributed systems", "Led team of 5"}, first.Bullets)

	second := entries[1]
	assert.Equal(t, "Data Analyst", second.Title)
	assert.Equal(t, "Beta Inc", second.Company)
	assert.Equal(t, []string{"Analyzed customer data"}, second.Bullets)
}

// TestSplitTitleCompany 验证职位/公司拆分的优先级：竖线 > at > 逗号
func TestSplitTitleCompany(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		title   string
		company string
		ok      bool
	}{
		{"竖线分隔", "Software Engineer | Acme Corp", "Software Engineer", "Acme Corp", true},
		{"at分隔", "Engineer at Acme Corp", "Engineer", "Acme Corp", true},
		{"逗号分隔", "Engineer, Acme Corp", "Engineer", "Acme Corp", true},
		{"竖线优先于at", "Engineer at Night | Acme Corp", "Engineer at Night", "Acme Corp", true},
		{"无分隔符", "Software Engineer", "", "", false},
		{"去掉日期尾巴", "Engineer | Acme Corp (Jan 2020 - Present)", "Engineer", "Acme Corp", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, company, ok := splitTitleCompany(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.title, title)
			assert.Equal(t, tt.company, company)
		})
	}
}

// TestParseExperienceDateBoundary 已有日期的条目再遇到日期行时开启新条目
func TestParseExperienceDateBoundary(t *testing.T) {
	text := `Engineer | Acme Corp
Jan 2020 - Present
Analyst | Beta Inc
Jun 2018 - Dec 2019`

	entries := ParseExperienceSection(text)
	require.Len(t, entries, 2)
	assert.Equal(t, "Acme Corp", entries[0].Company)
	assert.Equal(t, "Beta Inc", entries[1].Company)
}

// TestParseExperienceUnparsableKeepsRaw 解析不了的行原样保留，绝不丢弃
func TestParseExperienceUnparsableKeepsRaw(t *testing.T) {
	text := `Freelance consulting work
Various clients and engagements`

	entries := ParseExperienceSection(text)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Title)
	assert.Contains(t, entries[0].RawText, "Freelance consulting work")
	assert.Contains(t, entries[0].RawText, "Various clients")
}

// TestParseExperienceEmpty 空区间返回空列表
func TestParseExperienceEmpty(t *testing.T) {
	assert.Empty(t, ParseExperienceSection(""))
	assert.Empty(t, ParseExperienceSection("\n\n\n"))
}
