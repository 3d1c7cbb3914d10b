package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/kallax/pkg/core/pack"
	kerrors "github.com/matzehuels/kallax/pkg/errors"
)

// ProfileExtensions lists the file extensions LoadProfile understands.
var ProfileExtensions = []string{".toml", ".yaml", ".yml", ".json"}

// LoadProfile reads a packing profile over the default config and validates
// the result.
func LoadProfile(path string) (pack.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pack.Config{}, kerrors.Wrap(kerrors.ErrCodeInvalidPath, err, "read profile %s", path)
	}
	cfg, err := ParseProfile(data, filepath.Ext(path))
	if err != nil {
		return pack.Config{}, kerrors.Wrap(kerrors.GetCode(err), err, "profile %s", path)
	}
	return cfg, nil
}

// ParseProfile decodes a profile in the format named by ext (".toml",
// ".yaml", ".yml" or ".json").
func ParseProfile(data []byte, ext string) (pack.Config, error) {
	cfg := pack.DefaultConfig()
	var err error
	switch strings.ToLower(ext) {
	case ".toml":
		_, err = toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg)
	case ".yaml", ".yml":
		if len(bytes.TrimSpace(data)) > 0 {
			err = yaml.Unmarshal(data, &cfg)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
	default:
		return pack.Config{}, kerrors.New(kerrors.ErrCodeInvalidFormat,
			"unknown profile format %q (must be one of: %s)", ext, strings.Join(ProfileExtensions, ", "))
	}
	if err != nil {
		return pack.Config{}, kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "decode profile")
	}
	if err := cfg.Validate(); err != nil {
		return pack.Config{}, err
	}
	return cfg, nil
}

// WriteProfile writes cfg as TOML, the format `kallax profile init` emits.
func WriteProfile(path string, cfg pack.Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeInternal, err, "encode profile")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeInvalidPath, err, "write profile %s", path)
	}
	return nil
}
