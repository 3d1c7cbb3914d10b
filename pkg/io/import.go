package io

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/kallax/pkg/core/game"
	"github.com/matzehuels/kallax/pkg/core/pack"
	kerrors "github.com/matzehuels/kallax/pkg/errors"
)

// ItemsFile is the wrapped items document.
type ItemsFile struct {
	Username string      `json:"username,omitempty"`
	Items    []game.Item `json:"items"`
}

// ReadItems decodes an items document from r. Both the bare array and the
// wrapped object form are accepted. Items without a positive game id are
// rejected.
func ReadItems(r io.Reader) ([]game.Item, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "read items")
	}

	var items []game.Item
	dec := json.NewDecoder(br)
	switch first {
	case '[':
		err = dec.Decode(&items)
	case '{':
		var f ItemsFile
		err = dec.Decode(&f)
		items = f.Items
	default:
		return nil, kerrors.New(kerrors.ErrCodeInvalidInput, "items must be a JSON array or object, got %q", first)
	}
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "decode items")
	}

	for i, it := range items {
		if it.GameID <= 0 {
			return nil, kerrors.New(kerrors.ErrCodeInvalidInput, "item %d (%q): gameId must be positive", i, it.Name)
		}
		if it.VersionID < 0 {
			return nil, kerrors.New(kerrors.ErrCodeInvalidInput, "item %d (%q): versionId must not be negative", i, it.Name)
		}
	}
	return items, nil
}

// ImportItems reads an items file at path.
func ImportItems(path string) ([]game.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadItems(f)
}

// ReadResult decodes a packing result from r.
func ReadResult(r io.Reader) (*pack.Result, error) {
	var res pack.Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "decode result")
	}
	return &res, nil
}

// ImportResult reads a result file at path.
func ImportResult(path string) (*pack.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadResult(f)
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF {
				return 0, fmt.Errorf("empty input")
			}
			return 0, err
		}
		if !bytes.ContainsRune([]byte(" \t\r\n"), rune(b)) {
			return b, br.UnreadByte()
		}
	}
}
