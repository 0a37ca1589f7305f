package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"resume-analyzer/internal/config"
	"resume-analyzer/internal/logger"
	"resume-analyzer/internal/processor"
	"resume-analyzer/internal/types"
)

// loadPipeline 加载配置和静态资源并组装分析器
func loadPipeline(ctx context.Context) (*config.Config, *processor.ResumeAnalyzer, error) {
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}

	// 命令行输出为主，日志只保留警告以上
	logCfg := logger.Config(cfg.Logger)
	if logCfg.Level == "info" || logCfg.Level == "debug" {
		logCfg.Level = "warn"
	}
	logger.Init(logCfg)

	res, err := cfg.LoadResources()
	if err != nil {
		return nil, nil, err
	}

	analyzer, err := processor.BuildResumeAnalyzer(ctx, cfg, res, logger.Logger)
	if err != nil {
		return nil, nil, err
	}
	return cfg, analyzer, nil
}

// readDocument 读取本地文件并按扩展名确定格式
func readDocument(path string) (*types.ResumeDocument, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("无法获取文件的绝对路径: %w", err)
	}

	format := types.FormatFromFilename(absPath)
	if !format.IsSupported() {
		return nil, processor.NewFormatError("", fmt.Sprintf("仅支持 .pdf 和 .docx 文件，收到 %q", filepath.Base(absPath)))
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("无法访问文件 %s: %w", absPath, err)
	}

	return &types.ResumeDocument{
		Filename: filepath.Base(absPath),
		Format:   format,
		Data:     data,
	}, nil
}

// truncateForDisplay 按字符截断，maxLen < 0 时不截断
func truncateForDisplay(text string, maxLen int) string {
	runes := []rune(text)
	if maxLen < 0 || len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "...(已截断，使用 --maxlen 参数显示更多)"
}

func writeOutput(content []byte) error {
	if *saveFile == "" {
		return nil
	}
	if err := os.WriteFile(*saveFile, content, 0644); err != nil {
		return fmt.Errorf("保存到文件失败: %w", err)
	}
	fmt.Printf("结果已保存到: %s\n", *saveFile)
	return nil
}
