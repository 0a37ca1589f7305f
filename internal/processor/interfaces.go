package processor

import (
	"context"

	"resume-analyzer/internal/types"
)

// TextExtractor 文档文本提取接口
type TextExtractor interface {
	// Extract 按文档格式提取纯文本
	Extract(ctx context.Context, doc *types.ResumeDocument) (string, error)
}

// FieldExtractor 字段抽取接口，纯函数，不返回错误
type FieldExtractor interface {
	Extract(text string) types.ExtractedRecord
}

// SimilarityScorer 文本相似度接口，返回 [0,100]
type SimilarityScorer interface {
	Score(resumeText, jdText string) float64
}
