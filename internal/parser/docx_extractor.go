package parser

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nguyenthenguyen/docx"
	"github.com/rs/zerolog"
)

// DocxTextExtractor 解包 DOCX 并按段落拼接 word/document.xml 中的文本
type DocxTextExtractor struct {
	logger zerolog.Logger
}

// NewDocxTextExtractor 创建 DOCX 文本提取器
func NewDocxTextExtractor(logger zerolog.Logger) *DocxTextExtractor {
	return &DocxTextExtractor{logger: logger}
}

// Name 提取器名称
func (e *DocxTextExtractor) Name() string {
	return "docx"
}

// ExtractTextFromBytes 段落之间以 "\n" 分隔
func (e *DocxTextExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string) (string, map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	startTime := time.Now()

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse docx %s: %w", uri, err)
	}
	defer doc.Close()

	paragraphs, err := documentParagraphs(doc.Editable().GetContent())
	if err != nil {
		return "", nil, fmt.Errorf("failed to read docx body %s: %w", uri, err)
	}
	text := strings.Join(paragraphs, "\n")

	duration := time.Since(startTime)
	e.logger.Debug().Str("uri", uri).Int("paragraphs", len(paragraphs)).Int("chars", len(text)).Dur("elapsed", duration).Msg("DOCX提取完成")

	return text, map[string]interface{}{
		"extractor":              e.Name(),
		"paragraph_count":        len(paragraphs),
		"processing_duration_ms": duration.Milliseconds(),
		"text_length":            len(text),
	}, nil
}

// documentParagraphs 遍历 document.xml，收集每个 w:p 中 w:t 的文本
// w:tab 记为 "\t"，w:br / w:cr 记为 "\n"
// 文本框(w:txbxContent)里的段落嵌套在外层 w:p 内，内层段落先闭合，作为独立段落输出
func documentParagraphs(documentXML string) ([]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(documentXML))

	var (
		paragraphs []string
		open       []*strings.Builder // 未闭合的段落，栈顶为最内层
		textDepth  int
		tabsDepth  int // w:tabs 内的 w:tab 是制表位定义，不是文本
	)

	top := func() *strings.Builder {
		if len(open) == 0 {
			return nil
		}
		return open[len(open)-1]
	}

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				open = append(open, &strings.Builder{})
			case "t":
				textDepth++
			case "tabs":
				tabsDepth++
			case "tab":
				if b := top(); b != nil && tabsDepth == 0 {
					b.WriteString("\t")
				}
			case "br", "cr":
				if b := top(); b != nil {
					b.WriteString("\n")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if b := top(); b != nil {
					paragraphs = append(paragraphs, b.String())
					open = open[:len(open)-1]
				}
			case "t":
				if textDepth > 0 {
					textDepth--
				}
			case "tabs":
				if tabsDepth > 0 {
					tabsDepth--
				}
			}
		case xml.CharData:
			if b := top(); b != nil && textDepth > 0 {
				b.Write(t)
			}
		}
	}

	return paragraphs, nil
}
