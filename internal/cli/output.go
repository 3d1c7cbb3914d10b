package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/kallax/pkg/render"
)

// writeArtifacts writes each rendered format next to base and returns the
// written paths in format order. A single format written to an explicit
// output path keeps that path as given.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, fallback string) ([]string, error) {
	base := basePath(output, fallback)
	single := len(formats) == 1 && output != "" && filepath.Ext(output) != ""

	var paths []string
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			continue
		}
		path := base + "." + render.Extension(f)
		if single {
			path = output
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath strips a known format extension from output, or falls back to
// fallback when output is empty.
func basePath(output, fallback string) string {
	if output == "" {
		output = fallback
	}
	if strings.HasSuffix(output, ".labels.pdf") {
		return strings.TrimSuffix(output, ".labels.pdf")
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if slices.Contains(render.Formats, ext) {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}

// sanitizeName turns a username into a file-name friendly stem.
func sanitizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, s)
}
