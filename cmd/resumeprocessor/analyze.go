package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"resume-analyzer/internal/api/handler"

	"github.com/gofrs/uuid/v5"
)

// 处理完整分析命令
func handleAnalyzeCommand() error {
	doc, err := readDocument(*inputFile)
	if err != nil {
		return err
	}

	// 创建上下文，添加超时
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg, analyzer, err := loadPipeline(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("生成UUIDv7失败: %w", err)
	}

	result, err := analyzer.Analyze(ctx, id.String(), doc)
	if err != nil {
		return err
	}
	resp := handler.NewAnalyzeResponse(result)

	if *outFormat == "json" {
		out, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("序列化JSON失败: %w", err)
		}
		fmt.Println(string(out))
		return writeOutput(out)
	}

	report := fmt.Sprintf(`===== 分析结果 =====
文件: %s
岗位描述: %s
Email: %s
Phone: %s
Skills: %s
Education: %s
Experience: %d years
Match Score: %s%%
耗时: %dms
`,
		resp.FileName,
		cfg.ResolvePath(cfg.Resources.JobDescriptionFile),
		resp.Email,
		resp.Phone,
		resp.SkillsDisplay(),
		resp.EducationDisplay(),
		resp.ExperienceYears,
		resp.MatchScoreDisplay,
		resp.DurationMS,
	)
	fmt.Print(report)
	return writeOutput([]byte(report))
}
