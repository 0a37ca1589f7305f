package config

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
)

// SkillVocabulary 技能词表，加载后只读
type SkillVocabulary struct {
	terms  map[string]struct{}
	source string
}

// NewSkillVocabulary 由词条列表构建词表，词条会被去空白并转为小写，空行忽略
func NewSkillVocabulary(terms []string) *SkillVocabulary {
	v := &SkillVocabulary{terms: make(map[string]struct{}, len(terms))}
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		v.terms[term] = struct{}{}
	}
	return v
}

// LoadSkillVocabulary 读取技能词表文件（每行一个技能）
func LoadSkillVocabulary(path string) (*SkillVocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取技能词表失败: %w", err)
	}

	var terms []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		terms = append(terms, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("解析技能词表 %s 失败: %w", path, err)
	}

	v := NewSkillVocabulary(terms)
	v.source = path
	return v, nil
}

// Contains 判断小写 token 是否在词表中
func (v *SkillVocabulary) Contains(token string) bool {
	if v == nil {
		return false
	}
	_, ok := v.terms[token]
	return ok
}

// Len 词表大小
func (v *SkillVocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.terms)
}

// Terms 返回排序后的词条副本
func (v *SkillVocabulary) Terms() []string {
	if v == nil {
		return nil
	}
	out := make([]string, 0, len(v.terms))
	for term := range v.terms {
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}

// Source 词表来源文件，内存构建时为空
func (v *SkillVocabulary) Source() string {
	if v == nil {
		return ""
	}
	return v.source
}

// JobDescription 用于比对的岗位描述，原样保存
type JobDescription struct {
	text   string
	source string
}

// NewJobDescription 用给定文本构建岗位描述
func NewJobDescription(text string) *JobDescription {
	return &JobDescription{text: text}
}

// LoadJobDescription 读取岗位描述文件
func LoadJobDescription(path string) (*JobDescription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取岗位描述失败: %w", err)
	}
	return &JobDescription{text: string(data), source: path}, nil
}

// Text 岗位描述全文
func (j *JobDescription) Text() string {
	if j == nil {
		return ""
	}
	return j.text
}

// Source 岗位描述来源文件
func (j *JobDescription) Source() string {
	if j == nil {
		return ""
	}
	return j.source
}

// Resources 进程启动时加载的静态资源
type Resources struct {
	Skills         *SkillVocabulary
	JobDescription *JobDescription
}

// LoadResources 按配置加载技能词表和岗位描述，任一缺失即返回错误
func (c *Config) LoadResources() (*Resources, error) {
	skills, err := LoadSkillVocabulary(c.ResolvePath(c.Resources.SkillsFile))
	if err != nil {
		return nil, err
	}
	jd, err := LoadJobDescription(c.ResolvePath(c.Resources.JobDescriptionFile))
	if err != nil {
		return nil, err
	}
	return &Resources{Skills: skills, JobDescription: jd}, nil
}
