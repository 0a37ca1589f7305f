package parser

import (
	"context"
	"errors"
	"fmt"

	"resume-analyzer/internal/types"

	"github.com/rs/zerolog"
)

// ErrUnsupportedFormat 未注册提取器的文档格式
var ErrUnsupportedFormat = errors.New("unsupported document format")

// DocumentExtractor 单一格式的文本提取器
type DocumentExtractor interface {
	// Name 提取器名称
	Name() string

	// ExtractTextFromBytes 从字节数组提取文本和元数据
	ExtractTextFromBytes(ctx context.Context, data []byte, uri string) (string, map[string]interface{}, error)
}

// TextExtractor 按文档格式分派到对应的提取器
type TextExtractor struct {
	extractors map[types.DocumentFormat]DocumentExtractor
	logger     zerolog.Logger
}

// NewTextExtractor 创建分派器，extractors 的 key 为文档格式
func NewTextExtractor(extractors map[types.DocumentFormat]DocumentExtractor, logger zerolog.Logger) *TextExtractor {
	registered := make(map[types.DocumentFormat]DocumentExtractor, len(extractors))
	for format, ex := range extractors {
		if ex != nil {
			registered[format] = ex
		}
	}
	return &TextExtractor{extractors: registered, logger: logger}
}

// Extract 提取文档纯文本。损坏或无法解析的文档直接返回错误，不做重试和部分回退
func (t *TextExtractor) Extract(ctx context.Context, doc *types.ResumeDocument) (text string, err error) {
	if doc == nil {
		return "", fmt.Errorf("%w: nil document", ErrUnsupportedFormat)
	}
	ex, ok := t.extractors[doc.Format]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, doc.Format)
	}

	// 底层 PDF 库在遇到畸形对象时可能 panic
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%s extractor panicked on %s: %v", ex.Name(), doc.Filename, r)
		}
	}()

	text, metadata, err := ex.ExtractTextFromBytes(ctx, doc.Data, doc.Filename)
	if err != nil {
		return "", err
	}

	t.logger.Debug().
		Str("format", string(doc.Format)).
		Str("extractor", ex.Name()).
		Interface("metadata", metadata).
		Msg("文本提取完成")
	return text, nil
}

// ExtractorFor 返回某格式注册的提取器名称，未注册时为空
func (t *TextExtractor) ExtractorFor(format types.DocumentFormat) string {
	if ex, ok := t.extractors[format]; ok {
		return ex.Name()
	}
	return ""
}
