package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// 处理提取文本命令
func handleExtractCommand() error {
	doc, err := readDocument(*inputFile)
	if err != nil {
		return err
	}

	// 创建上下文，添加超时以防止无限等待
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	_, analyzer, err := loadPipeline(ctx)
	if err != nil {
		return err
	}

	startTime := time.Now()
	text, err := analyzer.ExtractText(ctx, "cli-extract", doc)
	if err != nil {
		return err
	}
	elapsedTime := time.Since(startTime)

	if *outFormat == "json" {
		out, err := json.MarshalIndent(map[string]interface{}{
			"file_name":   doc.Filename,
			"format":      doc.Format,
			"text":        text,
			"text_length": len(text),
			"elapsed_ms":  elapsedTime.Milliseconds(),
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("序列化JSON失败: %w", err)
		}
		fmt.Println(string(out))
		return writeOutput(out)
	}

	fmt.Printf("提取完成! 耗时: %v\n", elapsedTime)
	fmt.Printf("\n===== 提取的文本 (总计 %d 字符) =====\n", len(text))
	fmt.Println(truncateForDisplay(text, *maxLen))
	return writeOutput([]byte(text))
}
