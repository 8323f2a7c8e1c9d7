package parser

import (
	"regexp"
	"strings"

	"jobtrack-go/internal/types"
)

// GPA写法：带前缀的 "GPA: 3.9/4.0" 优先，其次裸分数 "3.9/4.0"
var (
	gpaLabeledPattern = regexp.MustCompile(`(?i)GPA[:\s]+(\d+\.\d+\s*/\s*\d+\.\d+)`)
	gpaBarePattern    = regexp.MustCompile(`\d+\.\d+\s*/\s*\d+\.\d+`)
)

// ParseEducationSection 把教育经历区间解析成结构化条目。
// 块切分与工作经历相同；学位/学校沿用同一套首行拆分规则，
// GPA是可选字段，从块内任意行提取。
func ParseEducationSection(text string) []types.EducationEntry {
	var entries []types.EducationEntry
	var current *types.EducationEntry

	flush := func() {
		if current != nil && !isEmptyEducation(*current) {
			entries = append(entries, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}

		// GPA与日期可能同行（"2016 - 2020  GPA: 3.9/4.0"），
		// 取走GPA后剩余文本再参与日期判断
		if gpa := extractGPA(trimmed); gpa != "" && current != nil && current.GPA == "" {
			current.GPA = gpa
			trimmed = strings.TrimSpace(gpaLabeledPattern.ReplaceAllString(trimmed, ""))
			trimmed = strings.TrimSpace(gpaBarePattern.ReplaceAllString(trimmed, ""))
			if trimmed == "" {
				continue
			}
		}

		if current == nil {
			current = newEducationEntry(trimmed)
			continue
		}

		if dates, ok := ExtractDateRange(trimmed); ok && !gpaBarePattern.MatchString(trimmed) {
			if current.Dates == (types.DateRange{}) {
				current.Dates = dates
				continue
			}
			flush()
			current = newEducationEntry(trimmed)
			continue
		}

		if current.RawText == "" {
			current.RawText = trimmed
		} else {
			current.RawText += "\n" + trimmed
		}
	}
	flush()

	return entries
}

func newEducationEntry(line string) *types.EducationEntry {
	entry := &types.EducationEntry{}

	if dates, ok := ExtractDateRange(line); ok {
		entry.Dates = dates
	}

	degree, institution, ok := splitTitleCompany(line)
	if !ok {
		entry.RawText = line
		return entry
	}
	entry.Degree = degree
	entry.Institution = institution
	return entry
}

// extractGPA 提取GPA，优先带"GPA"前缀的写法
func extractGPA(line string) string {
	if m := gpaLabeledPattern.FindStringSubmatch(line); m != nil {
		return strings.ReplaceAll(m[1], " ", "")
	}
	if strings.Contains(strings.ToLower(line), "gpa") {
		if m := gpaBarePattern.FindString(line); m != "" {
			return strings.ReplaceAll(m, " ", "")
		}
	}
	return ""
}

func isEmptyEducation(e types.EducationEntry) bool {
	return e.Degree == "" && e.Institution == "" && e.RawText == "" &&
		e.GPA == "" && e.Dates == (types.DateRange{})
}
