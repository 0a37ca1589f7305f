package parser

import (
	"bytes"
	"context"
	"testing"
	"time"

	"resume-analyzer/internal/testutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEinoPDFTextExtractor(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	extractor, err := NewEinoPDFTextExtractor(ctx)
	require.NoError(t, err, "创建PDF提取器不应返回错误")
	require.NotNil(t, extractor.parser, "PDF提取器内部的parser不应为nil")

	// 测试带自定义选项的创建
	var buf bytes.Buffer
	custom := zerolog.New(&buf)
	extractorWithOptions, err := NewEinoPDFTextExtractor(ctx, WithEinoLogger(custom))
	require.NoError(t, err)
	assert.Equal(t, "eino-pdf", extractorWithOptions.Name())

	_, _, err = extractorWithOptions.ExtractTextFromBytes(ctx, testutil.BuildPDF([]string{"x"}), "custom.pdf")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "custom.pdf", "自定义logger应收到调试日志")
}

func TestEinoExtractTextFromGeneratedPDF(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	extractor, err := NewEinoPDFTextExtractor(ctx)
	require.NoError(t, err)

	data := testutil.BuildPDF([]string{"Jane Doe", "Skilled in Python and SQL"})
	text, metadata, err := extractor.ExtractTextFromBytes(ctx, data, "generated.pdf")
	require.NoError(t, err, "PDF提取不应返回错误")

	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Python and SQL")
	assert.Equal(t, "eino-pdf", metadata["extractor"])
	assert.Equal(t, len(text), metadata["text_length"])
}

// TestEinoExtractFromInvalidPDF 非PDF内容应返回错误，而不是空文本
func TestEinoExtractFromInvalidPDF(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	extractor, err := NewEinoPDFTextExtractor(ctx)
	require.NoError(t, err)

	text, _, err := extractor.ExtractTextFromBytes(ctx, []byte("this is not a pdf document"), "broken.pdf")
	assert.Error(t, err, "无效PDF应返回错误")
	assert.Empty(t, text)
}

func TestLedongthucExtractTextFromGeneratedPDF(t *testing.T) {
	extractor := NewLedongthucPDFExtractor(zerolog.Nop())

	data := testutil.BuildPDF([]string{"John Smith", "5 years of experience"})
	text, metadata, err := extractor.ExtractTextFromBytes(context.Background(), data, "generated.pdf")
	require.NoError(t, err)

	assert.Contains(t, text, "John Smith")
	assert.Contains(t, text, "5 years of experience")
	assert.Equal(t, 1, metadata["page_count"])
}

func TestLedongthucExtractFromInvalidPDF(t *testing.T) {
	extractor := NewLedongthucPDFExtractor(zerolog.Nop())

	_, _, err := extractor.ExtractTextFromBytes(context.Background(), []byte("plain text, not a pdf"), "broken.pdf")
	assert.Error(t, err)
}

func TestLedongthucRespectsCanceledContext(t *testing.T) {
	extractor := NewLedongthucPDFExtractor(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := extractor.ExtractTextFromBytes(ctx, testutil.BuildPDF([]string{"x"}), "x.pdf")
	assert.ErrorIs(t, err, context.Canceled)
}
