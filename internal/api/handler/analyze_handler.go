package handler

import (
	"context"
	"errors"
	"fmt"
	"io"

	"resume-analyzer/internal/constants"
	"resume-analyzer/internal/logger"
	"resume-analyzer/internal/processor"
	"resume-analyzer/internal/tracing"
	"resume-analyzer/internal/types"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server/render"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/gofrs/uuid/v5"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"
)

// Analyzer 简历分析流水线
type Analyzer interface {
	Analyze(ctx context.Context, analysisID string, doc *types.ResumeDocument) (*types.AnalysisResult, error)
}

// AnalyzeHandler 负责接收上传的简历并返回分析结果
// 同一时间只执行一次分析，后到的请求排队等待
type AnalyzeHandler struct {
	analyzer Analyzer
	pages    render.HTMLRender
	sem      *semaphore.Weighted
	newID    func() (string, error)
}

// NewAnalyzeHandler 创建一个新的分析处理器
func NewAnalyzeHandler(analyzer Analyzer) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
		pages:    render.HTMLProduction{Template: PageTemplates()},
		sem:      semaphore.NewWeighted(1),
		newID:    newAnalysisID,
	}
}

func newAnalysisID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("生成UUIDv7失败: %w", err)
	}
	return id.String(), nil
}

// HandleAnalyze 读取上传内容并执行分析
func (h *AnalyzeHandler) HandleAnalyze(ctx context.Context, filename string, reader io.Reader) (*AnalyzeResponse, error) {
	format := types.FormatFromFilename(filename)
	if !format.IsSupported() {
		return nil, processor.NewFormatError("", fmt.Sprintf("仅支持 .pdf 和 .docx 文件，收到 %q", filename))
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("读取上传文件内容失败: %w", err)
	}

	analysisID, err := h.newID()
	if err != nil {
		return nil, err
	}

	if err := h.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("等待分析槽位失败: %w", err)
	}
	defer h.sem.Release(1)

	result, err := h.analyzer.Analyze(ctx, analysisID, &types.ResumeDocument{
		Filename: filename,
		Format:   format,
		Data:     data,
	})
	if err != nil {
		return nil, err
	}
	return NewAnalyzeResponse(result), nil
}

// statusFor 错误到 HTTP 状态码和链路错误类型的映射
func statusFor(err error) (int, tracing.ErrorType) {
	switch {
	case errors.Is(err, processor.ErrUnsupportedFormat):
		return consts.StatusBadRequest, tracing.ErrorTypeValidation
	case errors.Is(err, processor.ErrParseTextFailed):
		return consts.StatusUnprocessableEntity, tracing.ErrorTypeParse
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return consts.StatusServiceUnavailable, tracing.ErrorTypeTimeout
	default:
		return consts.StatusInternalServerError, tracing.ErrorTypeInternal
	}
}

// analyzeUpload 解析 multipart 表单中的文件并执行分析，返回响应和 HTTP 状态码
func (h *AnalyzeHandler) analyzeUpload(c context.Context, ctx *app.RequestContext) (*AnalyzeResponse, int, error) {
	fileHeader, err := ctx.FormFile(constants.UploadFormField)
	if err != nil {
		err = errors.New("文件未找到")
		tracing.RecordHTTPError(trace.SpanFromContext(c), err, consts.StatusBadRequest, tracing.ErrorTypeValidation)
		return nil, consts.StatusBadRequest, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, consts.StatusInternalServerError, errors.New("打开文件失败")
	}
	defer file.Close()

	resp, err := h.HandleAnalyze(c, fileHeader.Filename, file)
	if err != nil {
		code, errType := statusFor(err)
		tracing.RecordHTTPError(trace.SpanFromContext(c), err, code, errType)
		log := logger.Ctx(c)
		if code >= consts.StatusInternalServerError {
			log.Error().Err(err).Str("file", tracing.SafeFileName(fileHeader.Filename)).Msg("简历分析失败")
		} else {
			log.Warn().Err(err).Str("file", tracing.SafeFileName(fileHeader.Filename)).Int("status", code).Msg("简历分析被拒绝")
		}
		return nil, code, err
	}
	return resp, consts.StatusOK, nil
}

// AnalyzeJSON POST /api/v1/resume/analyze
func (h *AnalyzeHandler) AnalyzeJSON(c context.Context, ctx *app.RequestContext) {
	resp, code, err := h.analyzeUpload(c, ctx)
	if err != nil {
		ctx.JSON(code, utils.H{"error": err.Error()})
		return
	}
	ctx.JSON(code, resp)
}

// AnalyzePage POST /analyze，渲染结果页
func (h *AnalyzeHandler) AnalyzePage(c context.Context, ctx *app.RequestContext) {
	resp, code, err := h.analyzeUpload(c, ctx)
	if err != nil {
		ctx.Render(code, h.pages.Instance(constants.ErrorTemplate, errorPage{Message: err.Error()}))
		return
	}
	ctx.Render(code, h.pages.Instance(constants.ResultTemplate, resp))
}

// IndexPage GET /，上传表单
func (h *AnalyzeHandler) IndexPage(_ context.Context, ctx *app.RequestContext) {
	ctx.Render(consts.StatusOK, h.pages.Instance(constants.IndexTemplate, nil))
}
