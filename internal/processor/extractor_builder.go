package processor

import (
	"context"
	"fmt"

	"resume-analyzer/internal/config"
	"resume-analyzer/internal/fields"
	"resume-analyzer/internal/parser"
	"resume-analyzer/internal/scorer"
	"resume-analyzer/internal/types"

	"github.com/rs/zerolog"
)

// BuildTextExtractor 统一构建文本提取器的逻辑
// PDF 引擎按 parser.pdf_engine 选择，DOCX 固定使用 docx 提取器
func BuildTextExtractor(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*parser.TextExtractor, error) {
	initLogger := logger.With().Str("component", "ExtractorInit").Logger()

	var pdfExtractor parser.DocumentExtractor
	switch cfg.Parser.PDFEngine {
	case config.PDFEngineLedongthuc:
		pdfExtractor = parser.NewLedongthucPDFExtractor(logger.With().Str("component", "LedongthucPDF").Logger())
	case config.PDFEngineEino, "":
		einoExtractor, err := parser.NewEinoPDFTextExtractor(ctx,
			parser.WithEinoLogger(logger.With().Str("component", "EinoPDF").Logger()),
		)
		if err != nil {
			return nil, fmt.Errorf("创建Eino PDF提取器失败: %w", err)
		}
		pdfExtractor = einoExtractor
	default:
		return nil, fmt.Errorf("未知的 PDF 引擎: %q", cfg.Parser.PDFEngine)
	}

	textExtractor := parser.NewTextExtractor(map[types.DocumentFormat]parser.DocumentExtractor{
		types.FormatPDF:  pdfExtractor,
		types.FormatDOCX: parser.NewDocxTextExtractor(logger.With().Str("component", "DOCX").Logger()),
	}, logger)

	initLogger.Info().
		Str("pdf", textExtractor.ExtractorFor(types.FormatPDF)).
		Str("docx", textExtractor.ExtractorFor(types.FormatDOCX)).
		Msg("文本提取器初始化完成")
	return textExtractor, nil
}

// BuildResumeAnalyzer 按配置和已加载的静态资源组装完整的分析流水线
func BuildResumeAnalyzer(ctx context.Context, cfg *config.Config, res *config.Resources, logger zerolog.Logger) (*ResumeAnalyzer, error) {
	if res == nil {
		return nil, fmt.Errorf("%w: resources", ErrNotInitialized)
	}
	textExtractor, err := BuildTextExtractor(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return NewResumeAnalyzerWithOptions(
		[]ComponentOpt{
			WithTextExtractor(textExtractor),
			WithFieldExtractor(fields.NewExtractor(res.Skills)),
			WithScorer(scorer.New()),
			WithJobDescription(res.JobDescription),
		},
		[]SettingOpt{
			WithLogger(logger.With().Str("component", "ResumeAnalyzer").Logger()),
			WithDebug(cfg.Logger.Level == "debug"),
		},
	), nil
}
