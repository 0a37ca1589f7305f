package fields

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
)

// Tokenizer 将文本切分为有序的小写词元，标点单独成词元
type Tokenizer interface {
	Tokenize(text string) []string
}

// ProseTokenizer 基于 prose 迭代分词器，只做分词，不做词性标注和实体识别
type ProseTokenizer struct{}

// NewProseTokenizer 创建默认分词器
func NewProseTokenizer() *ProseTokenizer {
	return &ProseTokenizer{}
}

// Tokenize 实现 Tokenizer
func (ProseTokenizer) Tokenize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return NewRegexpTokenizer().Tokenize(text)
	}

	raw := doc.Tokens()
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		tokens = append(tokens, splitInfix(strings.ToLower(tok.Text))...)
	}
	return tokens
}

// isInfix 词内分隔符：prose 会把 "python/sql"、"python,sql"、"python-sql" 当成一个词元
func isInfix(r rune) bool {
	switch r {
	case ':', '<', '>', '=', '/', ',', '-':
		return true
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// splitInfix 在两侧都是字母或数字的分隔符处拆分词元，分隔符本身单独成词元
func splitInfix(token string) []string {
	runes := []rune(token)
	var (
		parts []string
		start int
	)
	for i := 1; i < len(runes)-1; i++ {
		if isInfix(runes[i]) && isWordRune(runes[i-1]) && isWordRune(runes[i+1]) {
			parts = append(parts, string(runes[start:i]), string(runes[i]))
			start = i + 1
		}
	}
	if parts == nil {
		return []string{token}
	}
	return append(parts, string(runes[start:]))
}

var wordPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+|[^\s\p{L}\p{M}\p{N}_]`)

// RegexpTokenizer 按单词字符连续片段切分，其余非空白字符各自成词元
type RegexpTokenizer struct {
	pattern *regexp.Regexp
}

// NewRegexpTokenizer 创建正则分词器
func NewRegexpTokenizer() *RegexpTokenizer {
	return &RegexpTokenizer{pattern: wordPattern}
}

// Tokenize 实现 Tokenizer
func (t *RegexpTokenizer) Tokenize(text string) []string {
	matches := t.pattern.FindAllString(text, -1)
	for i, m := range matches {
		matches[i] = strings.ToLower(m)
	}
	return matches
}
