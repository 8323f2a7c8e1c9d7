package parser

import (
	"regexp"
	"strings"

	"jobtrack-go/internal/types"
)

var (
	bulletPattern  = regexp.MustCompile(`^[•\-*·]\s*`)
	titleAtPattern = regexp.MustCompile(`(?i)^(.+?)\s+at\s+(.+)$`)
	parenTail      = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
)

// ParseExperienceSection 把工作经历区间解析成结构化条目。
// 块边界是空行或新的日期行；块首行给出职位/公司，
// 无法解析的行原样保留在RawText中，任何输入都不会导致失败。
func ParseExperienceSection(text string) []types.ExperienceEntry {
	var entries []types.ExperienceEntry
	var current *types.ExperienceEntry

	flush := func() {
		if current != nil && !isEmptyExperience(*current) {
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

		if bulletPattern.MatchString(trimmed) {
			if current == nil {
				current = &types.ExperienceEntry{}
			}
			current.Bullets = append(current.Bullets, bulletPattern.ReplaceAllString(trimmed, ""))
			continue
		}

		if current == nil {
			current = newExperienceEntry(trimmed)
			continue
		}

		if dates, ok := ExtractDateRange(trimmed); ok {
			if current.Dates == (types.DateRange{}) {
				current.Dates = dates
				continue
			}
			// 当前条目已有日期，又遇到日期行：按新条目边界处理
			flush()
			current = newExperienceEntry(trimmed)
			continue
		}

		// 解析不了的行保留原文
		if current.RawText == "" {
			current.RawText = trimmed
		} else {
			current.RawText += "\n" + trimmed
		}
	}
	flush()

	return entries
}

// newExperienceEntry 从块首行构造条目：先取日期，再按
// "Title | Company" > "Title at Company" > "Title, Company" 的
// 优先级拆职位/公司，都不命中时整行进RawText。
func newExperienceEntry(line string) *types.ExperienceEntry {
	entry := &types.ExperienceEntry{}

	if dates, ok := ExtractDateRange(line); ok {
		entry.Dates = dates
	}

	title, company, ok := splitTitleCompany(line)
	if !ok {
		entry.RawText = line
		return entry
	}
	entry.Title = title
	entry.Company = company
	return entry
}

// splitTitleCompany 按固定优先级把 "职位 <分隔> 公司" 拆开
func splitTitleCompany(line string) (title, company string, ok bool) {
	if strings.Contains(line, "|") {
		parts := strings.Split(line, "|")
		return cleanField(parts[0]), cleanField(parts[1]), true
	}
	if m := titleAtPattern.FindStringSubmatch(line); m != nil {
		return cleanField(m[1]), cleanField(m[2]), true
	}
	if strings.Contains(line, ",") {
		parts := strings.SplitN(line, ",", 2)
		return cleanField(parts[0]), cleanField(parts[1]), true
	}
	return "", "", false
}

// cleanField 去掉字段里的日期尾巴，例如 "Acme Corp (Jan 2020 - Present)"
func cleanField(s string) string {
	s = strings.TrimSpace(s)
	if tail := parenTail.FindString(s); tail != "" && hasDateRange(tail) {
		s = strings.TrimSpace(parenTail.ReplaceAllString(s, ""))
	}
	return s
}

func isEmptyExperience(e types.ExperienceEntry) bool {
	return e.Title == "" && e.Company == "" && e.RawText == "" &&
		len(e.Bullets) == 0 && e.Dates == (types.DateRange{})
}
