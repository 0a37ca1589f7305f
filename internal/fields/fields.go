// Package fields 从简历纯文本中抽取联系方式、技能、学历和工作年限
package fields

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"resume-analyzer/internal/config"
	"resume-analyzer/internal/types"
)

var (
	// Go 的 \s 只含 ASCII 空白，[\s\p{Z}] 覆盖 Word/PDF 文本里常见的不间断空格
	emailPattern      = regexp.MustCompile(`[^\s\p{Z}]+@[^\s\p{Z}]+`)
	phonePattern      = regexp.MustCompile(`\+?\d[\d -]{8,12}\d`)
	experiencePattern = regexp.MustCompile(`(?i)(\d+)[+]?[\s\p{Z}]*(?:years|yrs|year)[\s\p{Z}]*(?:of)?[\s\p{Z}]*(?:experience)?`)
)

// EducationKeywords 学历行匹配关键字（小写子串）
var EducationKeywords = []string{"b.tech", "m.tech", "bachelor", "master", "bsc", "msc", "degree", "engineering"}

// MaxEducationLines 最多保留的学历行数
const MaxEducationLines = 2

// Extractor 字段抽取器，词表只读
type Extractor struct {
	vocabulary *config.SkillVocabulary
	tokenizer  Tokenizer
}

// Option 抽取器选项
type Option func(*Extractor)

// WithTokenizer 替换默认的 prose 分词器
func WithTokenizer(t Tokenizer) Option {
	return func(e *Extractor) {
		if t != nil {
			e.tokenizer = t
		}
	}
}

// NewExtractor 创建字段抽取器
func NewExtractor(vocabulary *config.SkillVocabulary, opts ...Option) *Extractor {
	e := &Extractor{
		vocabulary: vocabulary,
		tokenizer:  NewProseTokenizer(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract 抽取全部字段，不会失败，空文本得到全部为占位值的记录
func (e *Extractor) Extract(text string) types.ExtractedRecord {
	return types.ExtractedRecord{
		Email:           ExtractEmail(text),
		Phone:           ExtractPhone(text),
		Skills:          e.ExtractSkills(text),
		Education:       ExtractEducation(text),
		ExperienceYears: ExtractExperienceYears(text),
	}
}

// ExtractEmail 第一个 \S+@\S+ 匹配
func ExtractEmail(text string) string {
	if m := emailPattern.FindString(text); m != "" {
		return m
	}
	return types.NotFound
}

// ExtractPhone 第一个电话号码匹配
func ExtractPhone(text string) string {
	if m := phonePattern.FindString(text); m != "" {
		return m
	}
	return types.NotFound
}

// ExtractSkills 词元与词表做精确的小写匹配，去重后排序返回
func (e *Extractor) ExtractSkills(text string) []string {
	if e.vocabulary.Len() == 0 {
		return []string{}
	}

	seen := make(map[string]struct{})
	for _, tok := range e.tokenizer.Tokenize(text) {
		tok = strings.ToLower(tok)
		if e.vocabulary.Contains(tok) {
			seen[tok] = struct{}{}
		}
	}

	skills := make([]string, 0, len(seen))
	for s := range seen {
		skills = append(skills, s)
	}
	sort.Strings(skills)
	return skills
}

// ExtractEducation 按 "\n" 切行，保留含学历关键字的前两行（原样，不去空白）
func ExtractEducation(text string) []string {
	lines := make([]string, 0, MaxEducationLines)
	if text == "" {
		return lines
	}
	for _, line := range strings.Split(text, "\n") {
		if !hasEducationKeyword(line) {
			continue
		}
		lines = append(lines, line)
		if len(lines) == MaxEducationLines {
			break
		}
	}
	return lines
}

func hasEducationKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range EducationKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ExtractExperienceYears 所有 "N years" 形式中的最大整数，没有则为 0
// 只识别阿拉伯数字，"five years" 不计入
func ExtractExperienceYears(text string) int {
	maxYears := 0
	for _, m := range experiencePattern.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > maxYears {
			maxYears = n
		}
	}
	return maxYears
}
