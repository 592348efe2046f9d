package ingest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-chatbot-be/internal/pkg/logger"
	"ai-chatbot-be/pkg/extractor"
	"ai-chatbot-be/pkg/knowledge"
)

func TestCSVParserQuotedFields(t *testing.T) {
	parser := &CSVParser{}
	docs := parser.Parse(context.Background(), Text("question,answer\n\"What?\",\"This.\""), "faq.csv")

	require.Len(t, docs, 1)
	assert.Equal(t, "Q: What?\nA: This.", docs[0].Content)
	assert.Equal(t, knowledge.TypeFAQ, docs[0].Metadata["type"])
	assert.Equal(t, "What?", docs[0].Metadata["question"])
	assert.Equal(t, "This.", docs[0].Metadata["answer"])
	assert.Equal(t, "faq.csv", docs[0].Metadata["source"])
}

func TestCSVParserCommaInsideQuotes(t *testing.T) {
	parser := &CSVParser{}
	docs := parser.Parse(context.Background(), Text("question,answer\n\"What, exactly?\",\"This, that.\""), "faq.csv")

	require.Len(t, docs, 1)
	assert.Equal(t, "What, exactly?", docs[0].Metadata["question"])
	assert.Equal(t, "This, that.", docs[0].Metadata["answer"])
}

func TestCSVParserDropsShortRows(t *testing.T) {
	parser := &CSVParser{}
	docs := parser.Parse(context.Background(), Text("question,answer\nonly one field\n,missing question\nvalid,row"), "faq.csv")

	require.Len(t, docs, 1)
	assert.Equal(t, "valid", docs[0].Metadata["question"])
}

func TestJSONParserMixedArray(t *testing.T) {
	parser := &JSONParser{}
	raw := `[{"question":"Q1","answer":"A1"},{"content":"C1"}]`
	docs := parser.Parse(context.Background(), Text(raw), "kb.json")

	require.Len(t, docs, 2)
	assert.Equal(t, "Q: Q1\nA: A1", docs[0].Content)
	assert.Equal(t, knowledge.TypeFAQ, docs[0].Metadata["type"])
	assert.Equal(t, "C1", docs[1].Content)
	assert.Equal(t, knowledge.TypeContent, docs[1].Metadata["type"])
	assert.Equal(t, "Item 2", docs[1].Metadata["title"])
}

func TestJSONParserSkipsNonObjectElements(t *testing.T) {
	parser := &JSONParser{}
	raw := `[{"question":"Q1","answer":"A1"},"stray string",{"content":"C1"},42]`
	docs := parser.Parse(context.Background(), Text(raw), "kb.json")

	require.Len(t, docs, 2)
	assert.Equal(t, "Q: Q1\nA: A1", docs[0].Content)
	assert.Equal(t, "C1", docs[1].Content)
	assert.Equal(t, "Item 3", docs[1].Metadata["title"])
}

func TestJSONParserSingleObject(t *testing.T) {
	parser := &JSONParser{}
	docs := parser.Parse(context.Background(), Text(`{"content":"About us","title":"Company"}`), "about.json")

	require.Len(t, docs, 1)
	assert.Equal(t, "About us", docs[0].Content)
	assert.Equal(t, "Company", docs[0].Metadata["title"])
}

func TestJSONParserInvalidInput(t *testing.T) {
	parser := &JSONParser{}
	docs := parser.Parse(context.Background(), Text("{not json"), "bad.json")
	assert.Empty(t, docs)
}

func TestTextParserChunksAndLabels(t *testing.T) {
	parser := &TextParser{}
	body := strings.Repeat("word ", 300)
	docs := parser.Parse(context.Background(), Text(body), "notes.md")

	require.NotEmpty(t, docs)
	assert.Equal(t, len(docs), docs[0].Metadata["total_chunks"])
	for i, doc := range docs {
		assert.LessOrEqual(t, len(doc.Content), DefaultChunkSize)
		assert.Equal(t, i, doc.Metadata["chunk_index"])
		assert.Equal(t, "notes.md", doc.Metadata["source"])
	}
}

func TestTextParserEmptyInput(t *testing.T) {
	parser := &TextParser{}
	assert.Empty(t, parser.Parse(context.Background(), Text("   \n  "), "empty.txt"))
}

type staticExtractor struct {
	extraction *extractor.Extraction
	err        error
}

func (s *staticExtractor) Extract(ctx context.Context, data []byte, format string) (*extractor.Extraction, error) {
	return s.extraction, s.err
}

func TestDocumentParserChunksExtractedText(t *testing.T) {
	stub := &staticExtractor{extraction: &extractor.Extraction{Text: "page one text", Pages: 2}}
	parser := NewDocumentParser("pdf", knowledge.TypePDF, stub, logger.NewNopLogger())

	docs := parser.Parse(context.Background(), Binary([]byte{0x25, 0x50, 0x44, 0x46}), "guide.pdf")
	require.Len(t, docs, 1)
	assert.Equal(t, "page one text", docs[0].Content)
	assert.Equal(t, knowledge.TypePDF, docs[0].Metadata["type"])
	assert.Equal(t, 2, docs[0].Metadata["pages"])
}

func TestDocumentParserEmptyExtraction(t *testing.T) {
	stub := &staticExtractor{extraction: &extractor.Extraction{Text: "  "}}
	parser := NewDocumentParser("docx", knowledge.TypeDOCX, stub, logger.NewNopLogger())

	docs := parser.Parse(context.Background(), Binary([]byte{0x50, 0x4b}), "doc.docx")
	assert.Empty(t, docs)
}

func TestDispatcherSelectsByExtension(t *testing.T) {
	d := NewDispatcher(&staticExtractor{}, logger.NewNopLogger())

	assert.IsType(t, &CSVParser{}, d.ParserFor("faq.CSV"))
	assert.IsType(t, &JSONParser{}, d.ParserFor("data.json"))
	assert.IsType(t, &DocumentParser{}, d.ParserFor("report.pdf"))
	assert.IsType(t, &DocumentParser{}, d.ParserFor("letter.docx"))
	assert.IsType(t, &TextParser{}, d.ParserFor("readme.md"))
	assert.IsType(t, &TextParser{}, d.ParserFor("mystery.xyz"))
}
