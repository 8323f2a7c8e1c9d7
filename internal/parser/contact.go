package parser

import (
	"regexp"
	"strings"

	"jobtrack-go/internal/types"
)

// 联系人信息识别模式。固定模式匹配，不做NLP。
var (
	emailPattern    = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	linkedinPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
	githubPattern   = regexp.MustCompile(`(?i)github\.com/[\w.-]+`)

	// 电话模式按优先级排列，先命中的生效
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\(\d{3}\)\s*\d{3}-\d{4}`),            // (555) 123-4567
		regexp.MustCompile(`\+?\d-\d{3}-\d{3}-\d{4}`),            // +1-555-123-4567
		regexp.MustCompile(`\d{3}-\d{3}-\d{4}`),                  // 555-123-4567
		regexp.MustCompile(`\+?\d{1,3}[\s.-]?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`), // 其他常见写法
	}

	digitRunPattern = regexp.MustCompile(`\d{3}`)
)

// ExtractContactInfo 从第一页的前scanLines个非空行中提取联系人信息。
// 匹配不到的字段留空，这不是错误。
func ExtractContactInfo(pageText string, scanLines int) types.ContactInfo {
	if scanLines <= 0 {
		scanLines = 10
	}

	var headerLines []string
	for _, line := range strings.Split(pageText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		headerLines = append(headerLines, line)
		if len(headerLines) >= scanLines {
			break
		}
	}
	header := strings.Join(headerLines, "\n")

	var info types.ContactInfo
	info.Email = emailPattern.FindString(header)
	info.LinkedIn = strings.ToLower(linkedinPattern.FindString(header))
	info.GitHub = strings.ToLower(githubPattern.FindString(header))
	for _, pattern := range phonePatterns {
		if match := pattern.FindString(header); match != "" {
			info.Phone = match
			break
		}
	}

	// github模式会把linkedin之外的代码托管链接也吃进来，
	// 但不应把linkedin链接当成github
	if strings.Contains(info.GitHub, "linkedin.com") {
		info.GitHub = ""
	}

	// 姓名/头衔启发式：第一个联系人模式出现之前的头一两个非空行
	if len(headerLines) > 0 && !looksLikeContactLine(headerLines[0]) {
		info.Name = headerLines[0]
		if len(headerLines) > 1 && !looksLikeContactLine(headerLines[1]) {
			info.Title = headerLines[1]
		}
	}

	return info
}

// looksLikeContactLine 判断一行是否已经是联系方式而非姓名/头衔
func looksLikeContactLine(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(line, "@") ||
		digitRunPattern.MatchString(line) ||
		strings.Contains(lower, "linkedin") ||
		strings.Contains(lower, "github")
}
