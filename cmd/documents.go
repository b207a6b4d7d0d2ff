package main

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/justicejet/defensepack/internal/extract"
	"github.com/justicejet/defensepack/internal/model"
)

// loadDocuments reads each path into a Document, guessing the content type
// from the file extension.
func loadDocuments(paths []string) ([]model.Document, error) {
	docs := make([]model.Document, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, eris.Wrapf(err, "read %s", p)
		}
		docs = append(docs, model.Document{
			Name:        filepath.Base(p),
			ContentType: mime.TypeByExtension(filepath.Ext(p)),
			Data:        data,
		})
	}
	return docs, nil
}

// documentText loads every path and extracts the combined text.
func documentText(ctx context.Context, ex extract.Extractor, paths []string) (string, error) {
	docs, err := loadDocuments(paths)
	if err != nil {
		return "", err
	}
	return extract.Combine(ctx, ex, docs)
}

// writeOutput encodes v as indented JSON or YAML.
func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return eris.Wrap(err, "encode yaml")
		}
		return enc.Close()
	default:
		return eris.Errorf("unknown output format %q (want json or yaml)", format)
	}
}
