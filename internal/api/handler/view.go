package handler

import (
	"embed"
	"fmt"
	"html/template"
	"math"
	"strings"

	"resume-analyzer/internal/constants"
	"resume-analyzer/internal/types"
)

//go:embed templates/*.html
var templatesFS embed.FS

// PageTemplates 上传页、结果页和错误页模板
func PageTemplates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.html"))
}

// AnalyzeResponse 分析结果，JSON 接口和结果页共用
type AnalyzeResponse struct {
	AnalysisID        string   `json:"analysis_id"`
	FileName          string   `json:"file_name"`
	Format            string   `json:"format"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	Skills            []string `json:"skills"`
	Education         []string `json:"education"`
	ExperienceYears   int      `json:"experience_years"`
	MatchScore        float64  `json:"match_score"`
	MatchScoreDisplay string   `json:"match_score_display"`
	TextLength        int      `json:"text_length"`
	DurationMS        int64    `json:"duration_ms"`
}

// NewAnalyzeResponse 由分析结果构建响应
func NewAnalyzeResponse(result *types.AnalysisResult) *AnalyzeResponse {
	skills := result.Skills
	if skills == nil {
		skills = []string{}
	}
	education := result.Education
	if education == nil {
		education = []string{}
	}
	return &AnalyzeResponse{
		AnalysisID:        result.AnalysisID,
		FileName:          result.Filename,
		Format:            string(result.Format),
		Email:             result.Email,
		Phone:             result.Phone,
		Skills:            skills,
		Education:         education,
		ExperienceYears:   result.ExperienceYears,
		MatchScore:        result.MatchScore,
		MatchScoreDisplay: fmt.Sprintf(constants.ScoreDisplayFmt, result.MatchScore),
		TextLength:        result.TextLength,
		DurationMS:        result.DurationMS,
	}
}

// SkillsDisplay 技能以 ", " 连接，为空时显示 "Not Found"
func (r *AnalyzeResponse) SkillsDisplay() string {
	if len(r.Skills) == 0 {
		return constants.SkillsNotFound
	}
	return strings.Join(r.Skills, constants.SkillsSeparator)
}

// EducationDisplay 学历行以 " | " 连接，为空时显示 "Not found"
func (r *AnalyzeResponse) EducationDisplay() string {
	if len(r.Education) == 0 {
		return types.NotFound
	}
	return strings.Join(r.Education, constants.EducationJoinSep)
}

// ProgressPercent 进度条百分比，上限 100
func (r *AnalyzeResponse) ProgressPercent() float64 {
	return math.Max(0, math.Min(r.MatchScore, 100))
}

type errorPage struct {
	Message string
}
