package model

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/teranos/mutigen/errors"
	"gopkg.in/yaml.v3"
)

// Format is a batch file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatForPath picks the decoder from the file extension
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.WithHint(
			errors.Newf("unsupported model file extension %q", filepath.Ext(path)),
			"use .yaml, .yml, .toml or .json")
	}
}

// Decode reads a batch in the given format. Unknown keys are rejected.
func Decode(r io.Reader, format Format) (*Batch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read model batch")
	}

	var batch Batch
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&batch); err != nil && err != io.EOF {
			return nil, errors.Wrap(err, "failed to decode YAML batch")
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &batch)
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode TOML batch")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Newf("unknown key %q in TOML batch", undecoded[0].String())
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&batch); err != nil && err != io.EOF {
			return nil, errors.Wrap(err, "failed to decode JSON batch")
		}
	default:
		return nil, errors.Newf("unknown batch format %q", format)
	}
	return &batch, nil
}

// LoadFile reads one batch file, choosing the decoder by extension
func LoadFile(path string) (*Batch, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, errors.Wrapf(err, "model file %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open model file %s", path)
	}
	defer f.Close()

	batch, err := Decode(f, format)
	if err != nil {
		return nil, errors.Wrapf(err, "model file %s", path)
	}
	return batch, nil
}

// LoadFiles concatenates the classes of several batch files in argument
// order. Every non-empty requires constraint must hold for version ("" skips
// the check); the merged batch carries the first one encountered.
func LoadFiles(version string, paths ...string) (*Batch, error) {
	merged := &Batch{}
	for _, path := range paths {
		batch, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if err := CheckRequires(batch.Requires, version); err != nil {
			return nil, errors.Wrapf(err, "model file %s", path)
		}
		if merged.Requires == "" {
			merged.Requires = batch.Requires
		}
		merged.Classes = append(merged.Classes, batch.Classes...)
	}
	return merged, nil
}
