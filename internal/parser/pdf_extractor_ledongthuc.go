package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"
)

// LedongthucPDFExtractor 基于 github.com/ledongthuc/pdf 的 PDF 文本提取器
type LedongthucPDFExtractor struct {
	logger zerolog.Logger
}

// NewLedongthucPDFExtractor 创建提取器
func NewLedongthucPDFExtractor(logger zerolog.Logger) *LedongthucPDFExtractor {
	return &LedongthucPDFExtractor{logger: logger}
}

// Name 提取器名称
func (e *LedongthucPDFExtractor) Name() string {
	return "ledongthuc-pdf"
}

// ExtractTextFromBytes 逐页读取内容流并拼接文本
func (e *LedongthucPDFExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string) (string, map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	startTime := time.Now()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, fmt.Errorf("failed to read pdf %s: %w", uri, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", nil, fmt.Errorf("failed to extract pdf text %s: %w", uri, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", nil, fmt.Errorf("failed to read pdf text %s: %w", uri, err)
	}
	text := buf.String()

	duration := time.Since(startTime)
	e.logger.Debug().Str("uri", uri).Int("pages", reader.NumPage()).Int("chars", len(text)).Dur("elapsed", duration).Msg("PDF提取完成")

	return text, map[string]interface{}{
		"extractor":              e.Name(),
		"page_count":             reader.NumPage(),
		"processing_duration_ms": duration.Milliseconds(),
		"text_length":            len(text),
	}, nil
}
