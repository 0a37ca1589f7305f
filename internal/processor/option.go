package processor

import (
	"resume-analyzer/internal/config"

	"github.com/rs/zerolog"
)

// Components 聚合所有功能组件依赖，便于集中管理和测试替换
type Components struct {
	TextExtractor  TextExtractor    // 文本提取
	FieldExtractor FieldExtractor   // 字段抽取
	Scorer         SimilarityScorer // 相似度计分

	JobDescription *config.JobDescription // 固定的职位描述
}

// Settings 纯配置项，不包含任何业务逻辑组件
type Settings struct {
	Debug  bool           // 调试模式下输出文本预览
	Logger zerolog.Logger // 日志记录器
}

// ComponentOpt 组件选项类型，仅改变 Components 结构体内的字段
type ComponentOpt func(*Components)

// SettingOpt 设置选项类型，仅改变 Settings 结构体内的字段
type SettingOpt func(*Settings)

// WithTextExtractor 设置文本提取组件
func WithTextExtractor(extractor TextExtractor) ComponentOpt {
	return func(c *Components) {
		c.TextExtractor = extractor
	}
}

// WithFieldExtractor 设置字段抽取组件
func WithFieldExtractor(extractor FieldExtractor) ComponentOpt {
	return func(c *Components) {
		c.FieldExtractor = extractor
	}
}

// WithScorer 设置计分组件
func WithScorer(scorer SimilarityScorer) ComponentOpt {
	return func(c *Components) {
		c.Scorer = scorer
	}
}

// WithJobDescription 设置职位描述
func WithJobDescription(jd *config.JobDescription) ComponentOpt {
	return func(c *Components) {
		c.JobDescription = jd
	}
}

// WithDebug 设置调试模式
func WithDebug(debug bool) SettingOpt {
	return func(s *Settings) {
		s.Debug = debug
	}
}

// WithLogger 设置日志记录器
func WithLogger(logger zerolog.Logger) SettingOpt {
	return func(s *Settings) {
		s.Logger = logger
	}
}
