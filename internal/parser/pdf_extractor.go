package parser

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoparser "github.com/cloudwego/eino/components/document/parser"

	"jobtrack-go/internal/logger"
	"jobtrack-go/internal/types"
)

// PDFTextExtractor 使用 Eino PDF Parser 按页提取文本
type PDFTextExtractor struct {
	parser  *pdf.PDFParser
	timeout time.Duration
}

// PDFExtractorOption PDF提取器的配置选项
type PDFExtractorOption func(*PDFTextExtractor)

// WithExtractTimeout 配置单次提取的超时时间
func WithExtractTimeout(d time.Duration) PDFExtractorOption {
	return func(e *PDFTextExtractor) {
		e.timeout = d
	}
}

// NewPDFTextExtractor 初始化PDF文本提取器。
// ToPages为true：每页一个文档，保留页序供RawDocument使用。
func NewPDFTextExtractor(ctx context.Context, options ...PDFExtractorOption) (*PDFTextExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Eino PDF parser: %w", err)
	}

	extractor := &PDFTextExtractor{
		parser:  p,
		timeout: 30 * time.Second,
	}
	for _, option := range options {
		option(extractor)
	}
	return extractor, nil
}

// ExtractFromFile 从给定的PDF文件路径提取RawDocument。
// 文件不存在、PDF无法读取、全文提取不到字符时返回致命错误，
// 其余情况一律成功返回。
func (e *PDFTextExtractor) ExtractFromFile(ctx context.Context, filePath string) (*types.RawDocument, error) {
	startTime := time.Now()

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newFileNotFoundError(filePath, err.Error())
		}
		return nil, newInvalidPDFError(filePath, err.Error())
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	docs, err := e.parser.Parse(ctx, file, einoparser.WithURI(filePath))
	if err != nil {
		return nil, newInvalidPDFError(filePath, err.Error())
	}

	pages := make([]string, 0, len(docs))
	charCount := 0
	for _, doc := range docs {
		pages = append(pages, doc.Content)
		// 只统计非空白字符，整页空白等同于没有文本
		charCount += utf8.RuneCountInString(strings.Join(strings.Fields(doc.Content), ""))
	}

	if charCount == 0 {
		return nil, newNoTextError(filePath)
	}

	logger.Debug().
		Str("file", filePath).
		Int("pages", len(pages)).
		Int("chars", charCount).
		Dur("elapsed", time.Since(startTime)).
		Msg("PDF文本提取完成")

	return &types.RawDocument{
		SourcePath: filePath,
		Pages:      pages,
		CharCount:  charCount,
	}, nil
}
