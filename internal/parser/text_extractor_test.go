package parser

import (
	"context"
	"errors"
	"testing"

	"resume-analyzer/internal/testutil"
	"resume-analyzer/internal/types"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	name  string
	text  string
	err   error
	panic bool
	calls int
}

func (f *fakeExtractor) Name() string { return f.name }

func (f *fakeExtractor) ExtractTextFromBytes(_ context.Context, data []byte, _ string) (string, map[string]interface{}, error) {
	f.calls++
	if f.panic {
		panic("malformed xref")
	}
	if f.err != nil {
		return "", nil, f.err
	}
	return f.text, map[string]interface{}{"bytes": len(data)}, nil
}

func TestTextExtractorDispatch(t *testing.T) {
	pdfFake := &fakeExtractor{name: "fake-pdf", text: "from pdf"}
	docxFake := &fakeExtractor{name: "fake-docx", text: "from docx"}
	extractor := NewTextExtractor(map[types.DocumentFormat]DocumentExtractor{
		types.FormatPDF:  pdfFake,
		types.FormatDOCX: docxFake,
	}, zerolog.Nop())

	text, err := extractor.Extract(context.Background(), &types.ResumeDocument{Filename: "a.pdf", Format: types.FormatPDF, Data: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, "from pdf", text)

	text, err = extractor.Extract(context.Background(), &types.ResumeDocument{Filename: "a.docx", Format: types.FormatDOCX, Data: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, "from docx", text)

	assert.Equal(t, 1, pdfFake.calls)
	assert.Equal(t, 1, docxFake.calls)
	assert.Equal(t, "fake-pdf", extractor.ExtractorFor(types.FormatPDF))
	assert.Empty(t, extractor.ExtractorFor("txt"))
}

func TestTextExtractorUnsupported(t *testing.T) {
	extractor := NewTextExtractor(map[types.DocumentFormat]DocumentExtractor{
		types.FormatPDF:  &fakeExtractor{name: "fake-pdf"},
		types.FormatDOCX: nil,
	}, zerolog.Nop())

	_, err := extractor.Extract(context.Background(), &types.ResumeDocument{Filename: "a.txt", Format: "txt"})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	// 值为 nil 的提取器不会被注册
	_, err = extractor.Extract(context.Background(), &types.ResumeDocument{Filename: "a.docx", Format: types.FormatDOCX})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = extractor.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestTextExtractorPropagatesErrors(t *testing.T) {
	boom := errors.New("corrupt stream")
	extractor := NewTextExtractor(map[types.DocumentFormat]DocumentExtractor{
		types.FormatPDF: &fakeExtractor{name: "fake-pdf", err: boom},
	}, zerolog.Nop())

	text, err := extractor.Extract(context.Background(), &types.ResumeDocument{Filename: "a.pdf", Format: types.FormatPDF})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, text)
}

func TestTextExtractorRecoversPanic(t *testing.T) {
	extractor := NewTextExtractor(map[types.DocumentFormat]DocumentExtractor{
		types.FormatPDF: &fakeExtractor{name: "fake-pdf", text: "never", panic: true},
	}, zerolog.Nop())

	text, err := extractor.Extract(context.Background(), &types.ResumeDocument{Filename: "bad.pdf", Format: types.FormatPDF})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed xref")
	assert.Empty(t, text)
}

func TestTextExtractorWithRealDocx(t *testing.T) {
	extractor := NewTextExtractor(map[types.DocumentFormat]DocumentExtractor{
		types.FormatDOCX: NewDocxTextExtractor(zerolog.Nop()),
	}, zerolog.Nop())

	doc := &types.ResumeDocument{
		Filename: "resume.docx",
		Format:   types.FormatDOCX,
		Data:     testutil.BuildDOCX([]string{"B.Tech in Computer Science", "Python"}),
	}
	text, err := extractor.Extract(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "B.Tech in Computer Science\nPython", text)
}
