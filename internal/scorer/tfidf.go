// Package scorer 计算简历与职位描述之间的 TF-IDF 余弦相似度
package scorer

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// 单词字符只含字母、数字和下划线，组合附加符号(\p{M})视为分隔
var termPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// MinTermLength 参与计分的词最少字符数
const MinTermLength = 2

// Scorer 两文档 TF-IDF 相似度计算器，无状态
type Scorer struct{}

// New 创建计分器
func New() *Scorer {
	return &Scorer{}
}

// Score 返回 [0,100] 的匹配分数，任一文档为空或无有效词时为 0
func (s *Scorer) Score(resumeText, jdText string) float64 {
	return Score(resumeText, jdText)
}

// Score 只在这两个文档上拟合 idf：idf = ln((1+n)/(1+df)) + 1，n = 2
func Score(resumeText, jdText string) float64 {
	a := termCounts(resumeText)
	b := termCounts(jdText)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	vocab := make([]string, 0, len(a)+len(b))
	for term := range a {
		vocab = append(vocab, term)
	}
	for term := range b {
		if _, ok := a[term]; !ok {
			vocab = append(vocab, term)
		}
	}
	sort.Strings(vocab)

	const n = 2.0
	va := make([]float64, len(vocab))
	vb := make([]float64, len(vocab))
	for i, term := range vocab {
		df := 0.0
		if a[term] > 0 {
			df++
		}
		if b[term] > 0 {
			df++
		}
		idf := math.Log((1+n)/(1+df)) + 1
		va[i] = float64(a[term]) * idf
		vb[i] = float64(b[term]) * idf
	}

	sim := cosine(normalizeL2(va), normalizeL2(vb)) * 100
	return math.Max(0, math.Min(100, sim))
}

// Terms 文本分词结果：小写，连续单词字符，长度不小于 MinTermLength
func Terms(text string) []string {
	matches := termPattern.FindAllString(strings.ToLower(text), -1)
	terms := matches[:0]
	for _, m := range matches {
		if utf8.RuneCountInString(m) >= MinTermLength {
			terms = append(terms, m)
		}
	}
	return terms
}

func termCounts(text string) map[string]int {
	counts := make(map[string]int)
	for _, term := range Terms(text) {
		counts[term]++
	}
	return counts
}

func normalizeL2(v []float64) []float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	norm := math.Sqrt(sum)
	out := make([]float64, len(v))
	if norm == 0 {
		return out
	}
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	den := math.Sqrt(na) * math.Sqrt(nb)
	if den == 0 {
		return 0
	}
	return dot / den
}
