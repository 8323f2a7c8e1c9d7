package parser

import (
	"regexp"
	"strings"

	"jobtrack-go/internal/types"
)

// 日期模式按精度从高到低排列：月-年 > 月/年 > 纯年份。
// 先命中的模式决定整行的解释，避免 "Jan 2020" 被当成纯年份。
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)[a-z]*\.?\s+\d{4}`),
	regexp.MustCompile(`\b\d{1,2}/\d{4}`),
	regexp.MustCompile(`\b(19|20)\d{2}\b`),
}

var presentPattern = regexp.MustCompile(`(?i)\b(present|current|now)\b`)

// ExtractDateRange 从一行文本中识别起止日期。
// 第二个日期缺失而出现 Present/Current/Now 时视为开放区间。
// 识别不到任何日期时ok为false，调用方照常保留原文。
func ExtractDateRange(text string) (types.DateRange, bool) {
	for _, pattern := range datePatterns {
		matches := pattern.FindAllString(text, 2)
		if len(matches) == 0 {
			continue
		}

		dates := types.DateRange{Start: strings.TrimSpace(matches[0])}
		if len(matches) > 1 {
			dates.End = strings.TrimSpace(matches[1])
		} else if presentPattern.MatchString(text) {
			dates.End = "Present"
		}
		return dates, true
	}
	return types.DateRange{}, false
}

// hasDateRange 判断一行是否包含可识别的日期，用于经历块的边界切分
func hasDateRange(text string) bool {
	_, ok := ExtractDateRange(text)
	return ok
}
