package extract

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rotisserie/eris"
)

// Native extracts PDF text in-process with github.com/ledongthuc/pdf.
type Native struct{}

// NewNative creates a Native extractor.
func NewNative() *Native {
	return &Native{}
}

// ExtractPDF parses data as a PDF and returns its plain text.
func (n *Native) ExtractPDF(ctx context.Context, data []byte) (text string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = eris.Errorf("extract: malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", eris.Wrap(err, "extract: open pdf")
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", eris.Wrap(err, "extract: pdf text")
	}

	var buf strings.Builder
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", eris.Wrap(err, "extract: read pdf text")
	}
	return buf.String(), nil
}
