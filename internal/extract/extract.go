// Package extract turns uploaded case documents into plain text.
package extract

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/justicejet/defensepack/internal/config"
	"github.com/justicejet/defensepack/internal/model"
)

// PDFExtractor extracts text from raw PDF bytes.
type PDFExtractor interface {
	ExtractPDF(ctx context.Context, data []byte) (string, error)
}

// Extractor extracts text content from an uploaded document.
type Extractor interface {
	ExtractText(ctx context.Context, doc model.Document) (string, error)
}

// documentExtractor routes PDFs to a PDFExtractor and reads everything else
// as text.
type documentExtractor struct {
	pdf PDFExtractor
}

// New returns an Extractor that uses pdf for PDF documents.
func New(pdf PDFExtractor) Extractor {
	return &documentExtractor{pdf: pdf}
}

// NewExtractor creates an Extractor based on config.
func NewExtractor(cfg config.ExtractConfig) (Extractor, error) {
	switch cfg.Provider {
	case "native", "":
		return New(NewNative()), nil
	case "pdftotext":
		return New(NewPdfToText(cfg.PdfToTextPath)), nil
	default:
		return nil, eris.Errorf("extract: unknown provider %q", cfg.Provider)
	}
}

func (e *documentExtractor) ExtractText(ctx context.Context, doc model.Document) (string, error) {
	if !doc.IsPDF() {
		return string(doc.Data), nil
	}
	text, err := e.pdf.ExtractPDF(ctx, doc.Data)
	if err != nil {
		return "", eris.Wrapf(err, "extract: %s", doc.Name)
	}
	return text, nil
}

// Combine extracts every document in order and joins the texts with a blank
// line. The first failure aborts the whole combination.
func Combine(ctx context.Context, ex Extractor, docs []model.Document) (string, error) {
	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return "", eris.Wrap(err, "extract: combine")
		}
		text, err := ex.ExtractText(ctx, doc)
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n\n"), nil
}
