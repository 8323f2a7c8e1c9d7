package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jobtrack-go/internal/config"
	"jobtrack-go/internal/logger"
	"jobtrack-go/internal/types"
)

// ResumeParser 简历解析管线：文本提取 -> 联系人 -> 章节切分 -> 各章节结构化。
type ResumeParser struct {
	extractor *PDFTextExtractor
	segmenter *SectionSegmenter
	scanLines int
}

// NewResumeParser 创建解析管线，cfg为nil时使用默认配置
func NewResumeParser(ctx context.Context, cfg *config.ParserConfig, opts ...PDFExtractorOption) (*ResumeParser, error) {
	var sections []config.SectionSynonyms
	scanLines := 10
	if cfg != nil {
		sections = cfg.Sections
		if cfg.ContactScanLines > 0 {
			scanLines = cfg.ContactScanLines
		}
	}

	extractor, err := NewPDFTextExtractor(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("初始化PDF提取器失败: %w", err)
	}

	return &ResumeParser{
		extractor: extractor,
		segmenter: NewSectionSegmenter(sections),
		scanLines: scanLines,
	}, nil
}

// ParseFile 解析一个PDF文件，返回结构化简历
func (p *ResumeParser) ParseFile(ctx context.Context, path string) (*types.ParsedResume, error) {
	doc, err := p.extractor.ExtractFromFile(ctx, path)
	if err != nil {
		return nil, err
	}

	resume := p.ParseText(doc.FullText())
	logger.Debug().
		Str("path", path).
		Int("pages", len(doc.Pages)).
		Int("experience_entries", len(resume.Experience)).
		Int("education_entries", len(resume.Education)).
		Bool("has_contact", !resume.Contact.IsEmpty()).
		Msg("简历解析完成")
	return resume, nil
}

// ParseText 对已提取的纯文本执行结构化解析。
// 任何章节缺失都不是错误，对应字段保持零值。
func (p *ResumeParser) ParseText(text string) *types.ParsedResume {
	resume := &types.ParsedResume{RawText: text}
	resume.Contact = ExtractContactInfo(text, p.scanLines)
	resume.Sections = p.segmenter.Segment(text)

	if content, ok := resume.Sections.Get(types.SectionSummary); ok {
		resume.Summary = strings.TrimSpace(content)
	}
	if content, ok := resume.Sections.Get(types.SectionExperience); ok {
		resume.Experience = ParseExperienceSection(content)
	}
	if content, ok := resume.Sections.Get(types.SectionEducation); ok {
		resume.Education = ParseEducationSection(content)
	}
	if content, ok := resume.Sections.Get(types.SectionSkills); ok {
		resume.Skills = ParseSkillsSection(content)
	}

	if resume.Contact.IsEmpty() {
		logger.Debug().Msg("未提取到任何联系人信息")
	}
	if len(resume.Sections.Spans) == 0 {
		logger.Debug().Msg("未识别出任何章节标题，全部文本归入未结构化内容")
	}
	return resume
}

// ToMarkdown 渲染为frontmatter + markdown文本
func (p *ResumeParser) ToMarkdown(resume *types.ParsedResume) (string, error) {
	return RenderMarkdown(resume)
}

// ParseAndSave 解析PDF并把markdown写入outputPath。
// 解析或渲染失败时不产生任何输出文件。
func (p *ResumeParser) ParseAndSave(ctx context.Context, pdfPath, outputPath string) (*types.ParsedResume, error) {
	resume, err := p.ParseFile(ctx, pdfPath)
	if err != nil {
		return nil, err
	}

	markdown, err := RenderMarkdown(resume)
	if err != nil {
		return nil, fmt.Errorf("渲染markdown失败: %w", err)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, []byte(markdown), 0o644); err != nil {
		return nil, fmt.Errorf("写入输出文件失败: %w", err)
	}

	logger.Info().Str("pdf", pdfPath).Str("output", outputPath).Msg("简历已解析并保存")
	return resume, nil
}
