package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"resume-analyzer/internal/api/handler"
	"resume-analyzer/internal/api/router"
	"resume-analyzer/internal/config"
	"resume-analyzer/internal/fields"
	"resume-analyzer/internal/parser"
	"resume-analyzer/internal/processor"
	"resume-analyzer/internal/scorer"
	"resume-analyzer/internal/testutil"
	"resume-analyzer/internal/types"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJobDescription = "Data Analyst with SQL, Python and Tableau. Bachelor degree and 2+ years of experience."

// newTestEngine 使用真实的解析、抽取和计分组件
func newTestEngine(t *testing.T) *server.Hertz {
	t.Helper()

	analyzer := processor.NewResumeAnalyzer(&processor.Components{
		TextExtractor: parser.NewTextExtractor(map[types.DocumentFormat]parser.DocumentExtractor{
			types.FormatPDF:  parser.NewLedongthucPDFExtractor(zerolog.Nop()),
			types.FormatDOCX: parser.NewDocxTextExtractor(zerolog.Nop()),
		}, zerolog.Nop()),
		FieldExtractor: fields.NewExtractor(config.NewSkillVocabulary([]string{"python", "sql", "tableau", "excel"})),
		Scorer:         scorer.New(),
		JobDescription: config.NewJobDescription(testJobDescription),
	}, &processor.Settings{Logger: zerolog.Nop()})

	h := server.New()
	router.RegisterRoutes(h, handler.NewAnalyzeHandler(analyzer))
	return h
}

func createMultipart(t *testing.T, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func postFile(h *server.Hertz, path string, body *bytes.Buffer, contentType string) *ut.ResponseRecorder {
	return ut.PerformRequest(h.Engine, "POST", path,
		&ut.Body{Body: body, Len: body.Len()},
		ut.Header{Key: "Content-Type", Value: contentType},
	)
}

func TestAnalyzeJSONWithDocx(t *testing.T) {
	h := newTestEngine(t)

	docx := testutil.BuildDOCX([]string{
		"Jane Doe",
		"jane.doe@example.com",
		"+1 555 123 4567",
		"Bachelor of Science in Statistics",
		"5+ years of experience with SQL, Python and Tableau",
	})
	body, contentType := createMultipart(t, "Jane_Doe.DOCX", docx)

	resp := postFile(h, "/api/v1/resume/analyze", body, contentType)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var result handler.AnalyzeResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))

	_, err := uuid.FromString(result.AnalysisID)
	assert.NoError(t, err, "analysis_id 应为 UUID")
	assert.Equal(t, "Jane_Doe.DOCX", result.FileName)
	assert.Equal(t, "docx", result.Format)
	assert.Equal(t, "jane.doe@example.com", result.Email)
	assert.Equal(t, "+1 555 123 4567", result.Phone)
	assert.Equal(t, []string{"python", "sql", "tableau"}, result.Skills)
	assert.Equal(t, []string{"Bachelor of Science in Statistics"}, result.Education)
	assert.Equal(t, 5, result.ExperienceYears)
	assert.Greater(t, result.MatchScore, 0.0)
	assert.LessOrEqual(t, result.MatchScore, 100.0)
	assert.Regexp(t, `^\d+\.\d{2}$`, result.MatchScoreDisplay, "分数保留两位小数")
	assert.Greater(t, result.TextLength, 0)
}

func TestAnalyzeJSONWithPDF(t *testing.T) {
	h := newTestEngine(t)

	pdf := testutil.BuildPDF([]string{"John Smith", "john@example.com", "3 years of experience in Excel"})
	body, contentType := createMultipart(t, "john.pdf", pdf)

	resp := postFile(h, "/api/v1/resume/analyze", body, contentType)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var result handler.AnalyzeResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	assert.Equal(t, "pdf", result.Format)
	assert.Equal(t, 3, result.ExperienceYears)
	assert.Contains(t, result.Skills, "excel")
}

func TestAnalyzeRejectsUnsupportedExtension(t *testing.T) {
	h := newTestEngine(t)

	body, contentType := createMultipart(t, "resume.txt", []byte("plain text resume"))
	resp := postFile(h, "/api/v1/resume/analyze", body, contentType)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "error")
}

func TestAnalyzeMissingFile(t *testing.T) {
	h := newTestEngine(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("note", "no file"))
	require.NoError(t, writer.Close())

	resp := postFile(h, "/api/v1/resume/analyze", body, writer.FormDataContentType())
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAnalyzeCorruptDocument(t *testing.T) {
	h := newTestEngine(t)

	body, contentType := createMultipart(t, "broken.pdf", []byte("this is not really a pdf"))
	resp := postFile(h, "/api/v1/resume/analyze", body, contentType)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.NotContains(t, resp.Body.String(), "match_score", "解析失败时不返回记录")
}

func TestAnalyzePageRendersResult(t *testing.T) {
	h := newTestEngine(t)

	docx := testutil.BuildDOCX([]string{"No contact details here", "Enjoys hiking"})
	body, contentType := createMultipart(t, "plain.docx", docx)

	resp := postFile(h, "/analyze", body, contentType)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, string(resp.Header().ContentType()), "text/html")

	page := resp.Body.String()
	assert.Contains(t, page, "Resume Analysis")
	assert.Contains(t, page, "<strong>Email:</strong> Not found")
	assert.Contains(t, page, "<strong>Skills:</strong> Not Found")
	assert.Contains(t, page, "<strong>Education:</strong> Not found")
	assert.Contains(t, page, "<strong>Experience:</strong> 0 years")
}

func TestAnalyzePageRendersError(t *testing.T) {
	h := newTestEngine(t)

	body, contentType := createMultipart(t, "broken.docx", []byte("not a zip"))
	resp := postFile(h, "/analyze", body, contentType)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Contains(t, resp.Body.String(), "Could not analyze resume")
}

// TestAnalyzePageRejectsUnsupported 页面模板在测试引擎上同样可渲染，不依赖服务启动时注入
func TestAnalyzePageRejectsUnsupported(t *testing.T) {
	h := newTestEngine(t)

	body, contentType := createMultipart(t, "resume.txt", []byte("Jane Doe"))
	resp := postFile(h, "/analyze", body, contentType)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, string(resp.Header().ContentType()), "text/html")
	assert.Contains(t, resp.Body.String(), "Could not analyze resume")
	assert.Contains(t, resp.Body.String(), "resume.txt")
}

func TestIndexAndHealth(t *testing.T) {
	h := newTestEngine(t)

	resp := ut.PerformRequest(h.Engine, "GET", "/", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `enctype="multipart/form-data"`)
	assert.Contains(t, resp.Body.String(), `name="file"`)

	resp = ut.PerformRequest(h.Engine, "GET", "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"ok"}`, resp.Body.String())
}

// blockingAnalyzer 记录同时进行的分析数量
type blockingAnalyzer struct {
	mu      sync.Mutex
	running int
	peak    int
}

func (b *blockingAnalyzer) Analyze(_ context.Context, id string, doc *types.ResumeDocument) (*types.AnalysisResult, error) {
	b.mu.Lock()
	b.running++
	if b.running > b.peak {
		b.peak = b.running
	}
	b.mu.Unlock()

	time.Sleep(20 * time.Millisecond)

	b.mu.Lock()
	b.running--
	b.mu.Unlock()
	return &types.AnalysisResult{AnalysisID: id, Filename: doc.Filename, Format: doc.Format}, nil
}

func TestHandleAnalyzeSerializesRequests(t *testing.T) {
	analyzer := &blockingAnalyzer{}
	h := handler.NewAnalyzeHandler(analyzer)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.HandleAnalyze(context.Background(), "r.pdf", strings.NewReader("x"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, analyzer.peak, "同一时间只允许一个分析")
}

type failingAnalyzer struct{ err error }

func (f failingAnalyzer) Analyze(context.Context, string, *types.ResumeDocument) (*types.AnalysisResult, error) {
	return nil, f.err
}

func TestHandleAnalyzeErrors(t *testing.T) {
	h := handler.NewAnalyzeHandler(failingAnalyzer{err: processor.NewParseError("x", "bad")})
	_, err := h.HandleAnalyze(context.Background(), "a.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, processor.ErrParseTextFailed)

	_, err = h.HandleAnalyze(context.Background(), "a.doc", strings.NewReader("x"))
	assert.ErrorIs(t, err, processor.ErrUnsupportedFormat)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h = handler.NewAnalyzeHandler(failingAnalyzer{err: errors.New("unused")})
	_, err = h.HandleAnalyze(ctx, "a.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled, "请求已取消时不进入分析")
}
