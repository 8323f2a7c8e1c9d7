package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrack-go/internal/types"
)

// TestParseEducationSection 验证教育经历块的解析
func TestParseEducationSection(t *testing.T) {
	text := `BS Computer Science | State University
2016 - 2020
GPA: 3.9/4.0

MS Data Science, Tech Institute
2020 - 2022`

	entries := ParseEducationSection(text)
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, "BS Computer Science", first.Degree)
	assert.Equal(t, "State University", first.Institution)
	assert.Equal(t, types.DateRange{Start: "2016", End: "2020"}, first.Dates)
	assert.Equal(t, "3.9/4.0", first.GPA)

	second := entries[1]
	assert.Equal(t, "MS Data Science", second.Degree)
	assert.Equal(t, "Tech Institute", second.Institution)
	assert.Empty(t, second.GPA)
}

// TestExtractGPA 带前缀写法优先，裸分数只在行内出现GPA字样时认可
func TestExtractGPA(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"带冒号前缀", "GPA: 3.9/4.0", "3.9/4.0"},
		{"空格前缀", "gpa 3.75/4.00", "3.75/4.00"},
		{"带空格的分数", "GPA: 3.9 / 4.0", "3.9/4.0"},
		{"裸分数有GPA字样", "Cumulative GPA 3.8/4.0", "3.8/4.0"},
		{"裸分数无GPA字样不提取", "Scored 3.9/4.0 in finals", ""},
		{"无GPA", "Dean's List", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractGPA(tt.line))
		})
	}
}

// TestParseEducationGPAWithDates GPA与日期同行时两者都要提取
func TestParseEducationGPAWithDates(t *testing.T) {
	text := `BS Computer Science | State University
2016 - 2020, GPA: 3.9/4.0`

	entries := ParseEducationSection(text)
	require.Len(t, entries, 1)
	assert.Equal(t, "3.9/4.0", entries[0].GPA)
	assert.Equal(t, types.DateRange{Start: "2016", End: "2020"}, entries[0].Dates)
}

// TestParseEducationMissingFields 缺失GPA和日期不是错误
func TestParseEducationMissingFields(t *testing.T) {
	entries := ParseEducationSection("BA History | Liberal College")
	require.Len(t, entries, 1)
	assert.Equal(t, "BA History", entries[0].Degree)
	assert.Empty(t, entries[0].GPA)
	assert.Equal(t, types.DateRange{}, entries[0].Dates)
}
