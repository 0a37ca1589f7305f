package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// 命令行参数定义
var (
	inputFile  = pflag.StringP("file", "f", "", "简历文件路径，支持 .pdf / .docx (必填)")
	configPath = pflag.StringP("config", "c", "", "配置文件路径，为空时在默认位置查找")
	maxLen     = pflag.Int("maxlen", 1000, "显示的文本最大长度，设为-1显示全部")
	command    = pflag.String("cmd", "analyze", "执行的命令: extract=仅提取文本, analyze=完整分析")
	outFormat  = pflag.String("format", "text", "输出格式，可选项：text, json")
	saveFile   = pflag.String("save", "", "保存输出内容到文件")
)

func main() {
	// 解析命令行参数
	pflag.Parse()

	if *inputFile == "" {
		fmt.Println("错误: 必须提供简历文件路径。使用 --file 参数。")
		pflag.Usage()
		os.Exit(1)
	}
	if *outFormat != "text" && *outFormat != "json" {
		fmt.Printf("错误: 未知输出格式 '%s'。支持: text, json\n", *outFormat)
		os.Exit(1)
	}

	// 根据命令执行不同的功能
	var err error
	switch *command {
	case "extract":
		err = handleExtractCommand()
	case "analyze":
		err = handleAnalyzeCommand()
	default:
		fmt.Printf("错误: 未知命令 '%s'。支持的命令: extract, analyze\n", *command)
		pflag.Usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Printf("处理失败: %v\n", err)
		os.Exit(1)
	}
}
