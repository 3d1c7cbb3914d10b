package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/kallax/pkg/core/game"
	"github.com/matzehuels/kallax/pkg/core/pack"
)

// WriteItems encodes items in the wrapped form. Username may be empty.
func WriteItems(w io.Writer, username string, items []game.Item) error {
	if items == nil {
		items = []game.Item{}
	}
	return encode(w, ItemsFile{Username: username, Items: items})
}

// ExportItems writes an items file at path.
func ExportItems(path, username string, items []game.Item) error {
	return writeFile(path, func(w io.Writer) error { return WriteItems(w, username, items) })
}

// WriteResult encodes res in its wire shape.
func WriteResult(w io.Writer, res *pack.Result) error {
	return encode(w, res)
}

// ExportResult writes a result file at path.
func ExportResult(path string, res *pack.Result) error {
	return writeFile(path, func(w io.Writer) error { return WriteResult(w, res) })
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
