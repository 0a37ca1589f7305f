package processor

import (
	"context"
	"fmt"
	"time"

	"resume-analyzer/internal/tracing"
	"resume-analyzer/internal/types"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// 定义tracer
var tracer = otel.Tracer("resume-analyzer/processor")

// ResumeAnalyzer 单次简历分析流水线：提取文本 -> 抽取字段 -> 计算匹配度
// 组件在创建后只读，可被多个请求共享
type ResumeAnalyzer struct {
	components Components
	settings   Settings
}

// NewResumeAnalyzer 使用组件和设置创建分析器
func NewResumeAnalyzer(components *Components, settings *Settings) *ResumeAnalyzer {
	a := &ResumeAnalyzer{settings: Settings{Logger: zerolog.Nop()}}
	if components != nil {
		a.components = *components
	}
	if settings != nil {
		a.settings = *settings
	}
	return a
}

// NewResumeAnalyzerWithOptions 选项模式构建分析器
func NewResumeAnalyzerWithOptions(compOpts []ComponentOpt, setOpts []SettingOpt) *ResumeAnalyzer {
	components := &Components{}
	for _, opt := range compOpts {
		opt(components)
	}
	settings := &Settings{Logger: zerolog.Nop()}
	for _, opt := range setOpts {
		opt(settings)
	}
	return NewResumeAnalyzer(components, settings)
}

func (a *ResumeAnalyzer) validate() error {
	switch {
	case a.components.TextExtractor == nil:
		return fmt.Errorf("%w: text extractor", ErrNotInitialized)
	case a.components.FieldExtractor == nil:
		return fmt.Errorf("%w: field extractor", ErrNotInitialized)
	case a.components.Scorer == nil:
		return fmt.Errorf("%w: scorer", ErrNotInitialized)
	}
	return nil
}

// ExtractText 只做文本提取，失败时返回包装了 ErrParseTextFailed 的 *AnalyzeError
func (a *ResumeAnalyzer) ExtractText(ctx context.Context, analysisID string, doc *types.ResumeDocument) (string, error) {
	if a.components.TextExtractor == nil {
		return "", fmt.Errorf("%w: text extractor", ErrNotInitialized)
	}
	if doc == nil || !doc.Format.IsSupported() {
		format := ""
		if doc != nil {
			format = string(doc.Format)
		}
		return "", NewFormatError(analysisID, fmt.Sprintf("格式 %q 不受支持", format))
	}

	ctx, span := tracer.Start(ctx, "ExtractText",
		trace.WithAttributes(
			attribute.String("document.format", string(doc.Format)),
			attribute.Int("file_size_bytes", len(doc.Data)),
		))
	defer span.End()

	text, err := a.components.TextExtractor.Extract(ctx, doc)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeParse)
		return "", NewParseError(analysisID, err.Error())
	}

	span.SetAttributes(attribute.Int("text_length", len(text)))
	span.AddEvent("text_extraction_completed")
	return text, nil
}

// Analyze 执行完整的分析流程。文档无法解析时不产生任何记录
func (a *ResumeAnalyzer) Analyze(ctx context.Context, analysisID string, doc *types.ResumeDocument) (*types.AnalysisResult, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}

	filename := ""
	if doc != nil {
		filename = doc.Filename
	}
	ctx, span := tracer.Start(ctx, "AnalyzeResume",
		trace.WithAttributes(
			attribute.String("analysis_id", analysisID),
			attribute.String("file_name", tracing.SafeFileName(filename)),
		))
	defer span.End()

	log := a.settings.Logger.With().Str("analysis_id", analysisID).Logger()
	startTime := time.Now()

	text, err := a.ExtractText(ctx, analysisID, doc)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeParse)
		log.Warn().Err(err).Str("file", filename).Msg("简历文本提取失败")
		return nil, err
	}
	if a.settings.Debug {
		log.Debug().Str("preview", tracing.SafeResumeContent(text)).Msg("提取文本预览")
	}

	_, fieldSpan := tracer.Start(ctx, "ExtractFields")
	record := a.components.FieldExtractor.Extract(text)
	fieldSpan.SetAttributes(
		attribute.String("resume.email", tracing.SafeAttributeValue("resume.email", record.Email, tracing.DefaultMaxLength)),
		attribute.String("resume.phone", tracing.SafeAttributeValue("resume.phone", record.Phone, tracing.DefaultMaxLength)),
		attribute.Int("skills_count", len(record.Skills)),
		attribute.Int("education_lines", len(record.Education)),
		attribute.Int("experience_years", record.ExperienceYears),
	)
	fieldSpan.End()

	_, scoreSpan := tracer.Start(ctx, "ScoreSimilarity")
	score := a.components.Scorer.Score(text, a.components.JobDescription.Text())
	scoreSpan.SetAttributes(attribute.Float64("match_score", score))
	scoreSpan.End()

	result := &types.AnalysisResult{
		AnalysisID:      analysisID,
		Filename:        doc.Filename,
		Format:          doc.Format,
		TextLength:      len(text),
		ExtractedRecord: record,
		MatchScore:      score,
		DurationMS:      time.Since(startTime).Milliseconds(),
	}

	log.Info().
		Str("file", tracing.SafeFileName(doc.Filename)).
		Str("email", tracing.MaskPII(record.Email)).
		Str("phone", tracing.MaskPII(record.Phone)).
		Int("skills", len(record.Skills)).
		Int("experience_years", record.ExperienceYears).
		Float64("match_score", score).
		Int64("duration_ms", result.DurationMS).
		Msg("简历分析完成")

	span.SetStatus(codes.Ok, "处理成功")
	return result, nil
}
