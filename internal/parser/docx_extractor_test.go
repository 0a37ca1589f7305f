package parser

import (
	"context"
	"testing"

	"resume-analyzer/internal/testutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocxTextExtractor(t *testing.T) {
	extractor := NewDocxTextExtractor(zerolog.Nop())

	data := testutil.BuildDOCX([]string{
		"Jane Doe",
		"jane.doe@example.com | +1 555-123-4567",
		"Skills:\tPython, SQL & Tableau",
	})

	text, metadata, err := extractor.ExtractTextFromBytes(context.Background(), data, "resume.docx")
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\njane.doe@example.com | +1 555-123-4567\nSkills:\tPython, SQL & Tableau", text)
	assert.Equal(t, 3, metadata["paragraph_count"])
	assert.Equal(t, "docx", metadata["extractor"])
}

func TestDocxTextExtractorInvalid(t *testing.T) {
	extractor := NewDocxTextExtractor(zerolog.Nop())

	_, _, err := extractor.ExtractTextFromBytes(context.Background(), []byte("definitely not a zip archive"), "broken.docx")
	assert.ErrorContains(t, err, "failed to parse docx")
}

func TestDocumentParagraphs(t *testing.T) {
	documentXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:r><w:t>Work</w:t></w:r><w:r><w:t xml:space="preserve"> History</w:t></w:r></w:p>
<w:p></w:p>
<w:p><w:r><w:t>Line one</w:t><w:br/><w:t>Line two</w:t></w:r></w:p>
<w:p><w:r><w:t>A</w:t><w:tab/><w:t>B</w:t></w:r></w:p>
<w:p><w:r><w:instrText>PAGE</w:instrText></w:r></w:p>
</w:body></w:document>`

	paragraphs, err := documentParagraphs(documentXML)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Work History",
		"",
		"Line one\nLine two",
		"A\tB",
		"",
	}, paragraphs, "只收集 w:t 文本，域代码不计入")
}

func TestDocumentParagraphsMalformed(t *testing.T) {
	_, err := documentParagraphs("<w:document><w:body><w:p>")
	assert.Error(t, err)
}

// TestDocumentParagraphsTextBox 文本框段落嵌套在外层段落中，两层文本都要保留
func TestDocumentParagraphsTextBox(t *testing.T) {
	documentXML := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr><w:r><w:t>Jane Doe jane@x.com</w:t></w:r>` +
		`<w:r><w:pict><w:txbxContent><w:p><w:r><w:t>Skills: Python</w:t></w:r></w:p></w:txbxContent></w:pict></w:r>` +
		`<w:r><w:t xml:space="preserve"> 5 years of experience</w:t></w:r></w:p>
<w:p><w:r><w:t>B.Tech in CS</w:t></w:r></w:p>
</w:body></w:document>`

	paragraphs, err := documentParagraphs(documentXML)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Skills: Python",
		"Jane Doe jane@x.com 5 years of experience",
		"B.Tech in CS",
	}, paragraphs, "内层段落先闭合先输出，外层段落文本不丢失")
}
