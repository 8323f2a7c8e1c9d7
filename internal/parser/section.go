package parser

import (
	"strings"
	"unicode"

	"jobtrack-go/internal/config"
	"jobtrack-go/internal/types"
)

// SectionSegmenter 按标题同义词表把简历全文切分成章节区间
type SectionSegmenter struct {
	table []config.SectionSynonyms
}

// NewSectionSegmenter 创建章节切分器。
// table按优先级排列，一行同时命中多个章节时先声明的获胜；
// 为空时使用内置默认表。
func NewSectionSegmenter(table []config.SectionSynonyms) *SectionSegmenter {
	if len(table) == 0 {
		table = config.DefaultSectionSynonyms()
	}
	return &SectionSegmenter{table: table}
}

// Segment 扫描每一行并切分章节。
// 标题行本身不进入任何区间；未落入识别章节的文本进入
// Unstructured桶，按文档顺序原样保留，绝不丢弃。
func (s *SectionSegmenter) Segment(text string) types.SectionMap {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var result types.SectionMap
	var unstructured []string

	// current指向当前收集行的章节，-1表示在任何识别章节之外
	current := -1
	spanIndex := map[types.SectionType]int{}

	for _, line := range strings.Split(text, "\n") {
		if sectionType, ok := s.matchHeader(line); ok {
			if idx, seen := spanIndex[sectionType]; seen {
				// 同名章节再次出现时并入首次出现的区间
				current = idx
			} else {
				result.Spans = append(result.Spans, types.SectionSpan{
					Type:   sectionType,
					Header: strings.TrimSpace(line),
				})
				current = len(result.Spans) - 1
				spanIndex[sectionType] = current
			}
			continue
		}

		if current >= 0 {
			span := &result.Spans[current]
			if span.Content == "" {
				span.Content = line
			} else {
				span.Content += "\n" + line
			}
		} else {
			unstructured = append(unstructured, line)
		}
	}

	result.Unstructured = strings.Join(unstructured, "\n")
	return result
}

// matchHeader 判断一行是否是章节标题。
// 大小写不敏感，整行等于同义词，或以同义词开头且紧跟的不是字母数字
// （允许 "EXPERIENCE:"、"Skills —" 这类写法，拒绝 "experienced engineer"）。
func (s *SectionSegmenter) matchHeader(line string) (types.SectionType, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(line))
	if trimmed == "" {
		return "", false
	}

	for _, entry := range s.table {
		for _, synonym := range entry.Synonyms {
			synonym = strings.ToLower(synonym)
			if trimmed == synonym {
				return entry.Section, true
			}
			if strings.HasPrefix(trimmed, synonym) {
				rest := strings.TrimSpace(trimmed[len(synonym):])
				if rest == "" {
					return entry.Section, true
				}
				first, _ := firstRune(rest)
				if !unicode.IsLetter(first) && !unicode.IsDigit(first) {
					return entry.Section, true
				}
			}
		}
	}
	return "", false
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}
