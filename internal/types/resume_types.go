package types

import (
	"path/filepath"
	"strings"
)

// NotFound 未匹配到字段时使用的占位值
const NotFound = "Not found"

// DocumentFormat 简历文档格式
type DocumentFormat string

const (
	// FormatPDF PDF 文档
	FormatPDF DocumentFormat = "pdf"
	// FormatDOCX Word 2007+ 文档
	FormatDOCX DocumentFormat = "docx"
)

// SupportedFormats 上传入口允许的格式
var SupportedFormats = []DocumentFormat{FormatPDF, FormatDOCX}

// IsSupported 判断格式是否受支持
func (f DocumentFormat) IsSupported() bool {
	for _, s := range SupportedFormats {
		if f == s {
			return true
		}
	}
	return false
}

// FormatFromFilename 按扩展名（忽略大小写）推断格式，返回值需再用 IsSupported 检查
func FormatFromFilename(filename string) DocumentFormat {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	return DocumentFormat(strings.ToLower(ext))
}

// ResumeDocument 一次上传的简历原始内容，仅在单次分析中使用
type ResumeDocument struct {
	Filename string
	Format   DocumentFormat
	Data     []byte
}

// ExtractedRecord 从简历文本中提取出的结构化字段
type ExtractedRecord struct {
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Skills          []string `json:"skills"`
	Education       []string `json:"education"`
	ExperienceYears int      `json:"experience_years"`
}

// AnalysisResult 单次简历分析的结果
type AnalysisResult struct {
	AnalysisID string         `json:"analysis_id"`
	Filename   string         `json:"file_name"`
	Format     DocumentFormat `json:"format"`
	TextLength int            `json:"text_length"`

	ExtractedRecord

	// 与岗位描述的匹配度 (0-100)
	MatchScore float64 `json:"match_score"`

	// 处理耗时(毫秒)
	DurationMS int64 `json:"duration_ms"`
}
