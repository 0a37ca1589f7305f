package processor

import (
	"errors"
	"fmt"

	"resume-analyzer/internal/parser"
)

// 定义基础错误类型
var (
	ErrParseTextFailed   = errors.New("提取简历文本失败")
	ErrUnsupportedFormat = parser.ErrUnsupportedFormat
	ErrNotInitialized    = errors.New("分析器组件未初始化")
)

// AnalyzeError 包含详细错误信息的自定义错误
type AnalyzeError struct {
	AnalysisID string
	Op         string
	BaseErr    error
	Detail     string
}

func (e *AnalyzeError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, ID:%s): %s", e.BaseErr, e.Op, e.AnalysisID, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, ID:%s)", e.BaseErr, e.Op, e.AnalysisID)
}

func (e *AnalyzeError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *AnalyzeError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewParseError(id, detail string) error {
	return &AnalyzeError{
		AnalysisID: id,
		Op:         "parse",
		BaseErr:    ErrParseTextFailed,
		Detail:     detail,
	}
}

func NewFormatError(id, detail string) error {
	return &AnalyzeError{
		AnalysisID: id,
		Op:         "validate",
		BaseErr:    ErrUnsupportedFormat,
		Detail:     detail,
	}
}
