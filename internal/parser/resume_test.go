package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrack-go/internal/types"
)

const sampleResumeText = `Jane Doe
Senior Engineer
jane@example.com | (555) 111-2222

SUMMARY
Engineer with 8 years of experience building backend systems.

EXPERIENCE
Software Engineer | Acme Corp
Jan 2020 - Present
• Built distributed systems
• Led team of 5

EDUCATION
BS Computer Science | State University
2016 - 2020
GPA: 3.9/4.0

SKILLS
Languages: Python, Go
Tools: Docker, Kubernetes`

func newTextOnlyParser() *ResumeParser {
	return &ResumeParser{
		segmenter: NewSectionSegmenter(nil),
		scanLines: 10,
	}
}

// TestParseTextEndToEnd 整条文本解析管线的端到端验证
func TestParseTextEndToEnd(t *testing.T) {
	resume := newTextOnlyParser().ParseText(sampleResumeText)

	assert.Equal(t, "Jane Doe", resume.Contact.Name)
	assert.Equal(t, "Senior Engineer", resume.Contact.Title)
	assert.Equal(t, "jane@example.com", resume.Contact.Email)
	assert.Equal(t, "(555) 111-2222", resume.Contact.Phone)

	assert.Contains(t, resume.Summary, "8 years of experience")

	require.Len(t, resume.Experience, 1)
	exp := resume.Experience[0]
	assert.Equal(t, "Software Engineer", exp.Title)
	assert.Equal(t, "Acme Corp", exp.Company)
	assert.Equal(t, types.DateRange{Start: "Jan 2020", End: "Present"}, exp.Dates)
	assert.Len(t, exp.Bullets, 2)

	require.Len(t, resume.Education, 1)
	edu := resume.Education[0]
	assert.Equal(t, "BS Computer Science", edu.Degree)
	assert.Equal(t, "State University", edu.Institution)
	assert.Equal(t, types.DateRange{Start: "2016", End: "2020"}, edu.Dates)
	assert.Equal(t, "3.9/4.0", edu.GPA)

	require.Len(t, resume.Skills, 2)
	assert.Equal(t, "Languages", resume.Skills[0].Category)
}

// TestRenderMarkdownStructure frontmatter分隔符恰好两个，章节按规范顺序
func TestRenderMarkdownStructure(t *testing.T) {
	resume := newTextOnlyParser().ParseText(sampleResumeText)

	markdown, err := RenderMarkdown(resume)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(markdown, "---\n"))
	assert.True(t, strings.HasPrefix(markdown, "---\n"))

	// frontmatter字段顺序固定
	nameIdx := strings.Index(markdown, "name: Jane Doe")
	emailIdx := strings.Index(markdown, "email: jane@example.com")
	require.GreaterOrEqual(t, nameIdx, 0)
	require.GreaterOrEqual(t, emailIdx, 0)
	assert.Less(t, nameIdx, emailIdx)

	// 章节顺序：Summary -> Experience -> Education -> Skills
	summaryIdx := strings.Index(markdown, "## Summary")
	expIdx := strings.Index(markdown, "## Experience")
	eduIdx := strings.Index(markdown, "## Education")
	skillsIdx := strings.Index(markdown, "## Skills")
	require.GreaterOrEqual(t, summaryIdx, 0)
	require.GreaterOrEqual(t, expIdx, 0)
	require.GreaterOrEqual(t, eduIdx, 0)
	require.GreaterOrEqual(t, skillsIdx, 0)
	assert.Less(t, summaryIdx, expIdx)
	assert.Less(t, expIdx, eduIdx)
	assert.Less(t, eduIdx, skillsIdx)

	assert.Contains(t, markdown, "### Software Engineer | Acme Corp")
	assert.Contains(t, markdown, "*Jan 2020 - Present*")
	assert.Contains(t, markdown, "- Built distributed systems")
	assert.Contains(t, markdown, "GPA: 3.9/4.0")
	assert.Contains(t, markdown, "**Languages:** Python, Go")
}

// TestRenderMarkdownDeterministic 同一输入渲染两次结果字节级一致
func TestRenderMarkdownDeterministic(t *testing.T) {
	resume := newTextOnlyParser().ParseText(sampleResumeText)

	first, err := RenderMarkdown(resume)
	require.NoError(t, err)
	second, err := RenderMarkdown(resume)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// TestRenderMarkdownEmptyContact 无联系人信息时frontmatter为空但分隔符仍在
func TestRenderMarkdownEmptyContact(t *testing.T) {
	markdown, err := RenderMarkdown(&types.ParsedResume{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(markdown, "---\n---\n"))
}

// TestRenderMarkdownSkipsEmptySections 缺失章节不输出对应标题
func TestRenderMarkdownSkipsEmptySections(t *testing.T) {
	resume := newTextOnlyParser().ParseText("SKILLS\nGo, Python")

	markdown, err := RenderMarkdown(resume)
	require.NoError(t, err)
	assert.Contains(t, markdown, "## Skills")
	assert.NotContains(t, markdown, "## Experience")
	assert.NotContains(t, markdown, "## Education")
}

// TestExtractFromFileNotFound 文件不存在时返回ErrFileNotFound哨兵
func TestExtractFromFileNotFound(t *testing.T) {
	ctx := context.Background()
	extractor, err := NewPDFTextExtractor(ctx)
	require.NoError(t, err)

	_, err = extractor.ExtractFromFile(ctx, "/nonexistent/resume.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileNotFound)
}
