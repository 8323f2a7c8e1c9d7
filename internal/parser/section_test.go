package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrack-go/internal/types"
)

// TestSegmentBasic 验证基本的章节切分
func TestSegmentBasic(t *testing.T) {
	text := `Jane Doe
jane@example.com

SUMMARY
Engineer with 8 years of experience.

EXPERIENCE
Software Engineer | Acme Corp

EDUCATION
BS Computer Science, State University`

	segmenter := NewSectionSegmenter(nil)
	sections := segmenter.Segment(text)

	require.Len(t, sections.Spans, 3)
	assert.Equal(t, types.SectionSummary, sections.Spans[0].Type)
	assert.Equal(t, types.SectionExperience, sections.Spans[1].Type)
	assert.Equal(t, types.SectionEducation, sections.Spans[2].Type)

	summary, ok := sections.Get(types.SectionSummary)
	require.True(t, ok)
	assert.Contains(t, summary, "8 years of experience")

	// 标题行之前的内容进入未结构化桶
	assert.Contains(t, sections.Unstructured, "Jane Doe")
	assert.Contains(t, sections.Unstructured, "jane@example.com")
}

// TestSegmentSynonyms 同义标题映射到同一规范章节
func TestSegmentSynonyms(t *testing.T) {
	tests := []struct {
		header string
		want   types.SectionType
	}{
		{"WORK EXPERIENCE", types.SectionExperience},
		{"Employment History", types.SectionExperience},
		{"Professional Experience", types.SectionExperience},
		{"Technical Skills", types.SectionSkills},
		{"Core Competencies", types.SectionSkills},
		{"Professional Summary", types.SectionSummary},
		{"Objective", types.SectionSummary},
		{"Academic Background", types.SectionEducation},
		{"Certifications", types.SectionCertifications},
		{"Publications", types.SectionPublications},
	}

	segmenter := NewSectionSegmenter(nil)
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			sections := segmenter.Segment(tt.header + "\ncontent line")
			require.Len(t, sections.Spans, 1)
			assert.Equal(t, tt.want, sections.Spans[0].Type)
		})
	}
}

// TestSegmentHeaderPrefixRule 标题同义词后紧跟字母数字时不算标题
func TestSegmentHeaderPrefixRule(t *testing.T) {
	segmenter := NewSectionSegmenter(nil)

	// "EXPERIENCE:" 是标题
	sections := segmenter.Segment("EXPERIENCE:\nSoftware Engineer")
	require.Len(t, sections.Spans, 1)
	assert.Equal(t, types.SectionExperience, sections.Spans[0].Type)

	// "Experienced engineer" 是普通正文
	sections = segmenter.Segment("Experienced engineer with Go skills")
	assert.Empty(t, sections.Spans)
	assert.Contains(t, sections.Unstructured, "Experienced engineer")
}

// TestSegmentDuplicateHeaders 重复标题并入首次出现的区间
func TestSegmentDuplicateHeaders(t *testing.T) {
	text := `EXPERIENCE
First job

EXPERIENCE
Second job`

	segmenter := NewSectionSegmenter(nil)
	sections := segmenter.Segment(text)

	require.Len(t, sections.Spans, 1)
	content, _ := sections.Get(types.SectionExperience)
	assert.Contains(t, content, "First job")
	assert.Contains(t, content, "Second job")
}

// TestSegmentPreservesAllText 切分不丢失任何非标题文本
func TestSegmentPreservesAllText(t *testing.T) {
	text := `Preamble line one
Preamble line two

SKILLS
Go, Python

Random trailing note inside skills`

	segmenter := NewSectionSegmenter(nil)
	sections := segmenter.Segment(text)

	var collected []string
	collected = append(collected, sections.Unstructured)
	for _, span := range sections.Spans {
		collected = append(collected, span.Content)
	}
	joined := strings.Join(collected, "\n")

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "SKILLS" {
			continue
		}
		assert.Contains(t, joined, line)
	}
}

// TestSegmentNoHeaders 无任何标题时全文进入未结构化桶
func TestSegmentNoHeaders(t *testing.T) {
	segmenter := NewSectionSegmenter(nil)
	sections := segmenter.Segment("just some text\nwithout headers")
	assert.Empty(t, sections.Spans)
	assert.Equal(t, "just some text\nwithout headers", sections.Unstructured)
}
