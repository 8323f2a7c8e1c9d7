package parser

import (
	"regexp"
	"strings"

	"jobtrack-go/internal/types"
)

var skillSeparator = regexp.MustCompile(`[,;]`)

// ParseSkillsSection 把技能区间解析成分组列表。
// 带冒号的行开启一个新分组（"Languages: Python, Go"），
// 之后的无标签行并入当前分组；空行关闭分组；
// 完全没有标签的内容成为一个无Category的分组。
// 空区间返回空列表，不是错误。
func ParseSkillsSection(text string) []types.SkillGroup {
	var groups []types.SkillGroup
	current := -1 // 当前开放分组在groups中的下标

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			current = -1
			continue
		}

		if idx := strings.Index(trimmed, ":"); idx >= 0 {
			groups = append(groups, types.SkillGroup{
				Category: strings.TrimSpace(trimmed[:idx]),
				Skills:   splitSkills(trimmed[idx+1:]),
			})
			current = len(groups) - 1
			continue
		}

		if current < 0 {
			groups = append(groups, types.SkillGroup{})
			current = len(groups) - 1
		}
		groups[current].Skills = append(groups[current].Skills, splitSkills(trimmed)...)
	}

	// 丢掉既无标签也无内容的分组
	var result []types.SkillGroup
	for _, group := range groups {
		if group.Category != "" || len(group.Skills) > 0 {
			result = append(result, group)
		}
	}
	return result
}

// splitSkills 按逗号/分号切分并去除空白项
func splitSkills(text string) []string {
	var skills []string
	for _, part := range skillSeparator.Split(text, -1) {
		if part = strings.TrimSpace(part); part != "" {
			skills = append(skills, part)
		}
	}
	return skills
}
