package constants

const (
	// ServiceName 服务名，用于日志和 tracing
	ServiceName = "resume-analyzer"
	// Version 服务版本
	Version = "1.0.0"

	// 路由
	APIPrefix        = "/api/v1"
	IndexPath        = "/"
	AnalyzePagePath  = "/analyze"
	AnalyzeAPIPath   = "/resume/analyze"
	HealthPath       = "/health"
	UploadFormField  = "file"
	IndexTemplate    = "index.html"
	ResultTemplate   = "result.html"
	ErrorTemplate    = "error.html"
	ScoreDisplayFmt  = "%.2f"
	SkillsSeparator  = ", "
	EducationJoinSep = " | "

	// SkillsNotFound 技能列表为空时的展示文案，与字段占位值 "Not found" 大小写不同
	SkillsNotFound = "Not Found"
)
