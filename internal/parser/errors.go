package parser

import (
	"errors"
	"fmt"
)

// 解析失败的基础错误类型。三种都是整次解析的致命错误，
// 章节内容格式不对不属于错误，按原样保留输出。
var (
	// ErrFileNotFound 输入路径不存在
	ErrFileNotFound = errors.New("简历文件不存在")
	// ErrInvalidPDF 文件损坏或不是合法PDF
	ErrInvalidPDF = errors.New("无法读取PDF文件")
	// ErrNoExtractableText 整个文档提取不到任何字符（多半是扫描件）
	ErrNoExtractableText = errors.New("PDF中没有可提取的文本")
)

// PDFParseError 带有文件路径和失败原因的解析错误
type PDFParseError struct {
	Path    string
	Op      string
	BaseErr error
	Detail  string
}

func (e *PDFParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, 文件:%s): %s", e.BaseErr, e.Op, e.Path, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, 文件:%s)", e.BaseErr, e.Op, e.Path)
}

func (e *PDFParseError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *PDFParseError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func newFileNotFoundError(path string, detail string) error {
	return &PDFParseError{Path: path, Op: "open", BaseErr: ErrFileNotFound, Detail: detail}
}

func newInvalidPDFError(path string, detail string) error {
	return &PDFParseError{Path: path, Op: "extract", BaseErr: ErrInvalidPDF, Detail: detail}
}

func newNoTextError(path string) error {
	return &PDFParseError{Path: path, Op: "extract", BaseErr: ErrNoExtractableText,
		Detail: "疑似扫描/图片PDF，本工具不做OCR"}
}
