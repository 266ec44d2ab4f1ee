package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/labyrinth/pkg/errors"
	"github.com/matzehuels/labyrinth/pkg/grid"
)

// Format identifies a definition encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot tell definition format of %q (want .json or .toml)", path)
	}
}

// ReadJSON decodes a definition from r. Unknown fields are rejected so that
// typos such as "pasages" do not silently produce a closed maze.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Definition, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var d Definition
	if err := dec.Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "decode JSON")
	}
	return &d, nil
}

// ReadTOML decodes a definition from r. Undecoded keys are rejected.
func ReadTOML(r io.Reader) (*Definition, error) {
	var d Definition
	md, err := toml.NewDecoder(r).Decode(&d)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "decode TOML")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidDefinition, "unknown key %q", undecoded[0].String())
	}
	return &d, nil
}

// Read decodes a definition in the given format.
func Read(r io.Reader, format Format) (*Definition, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown definition format %q", format)
	}
}

// WriteJSON encodes d as indented JSON.
func WriteJSON(d *Definition, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteTOML encodes d as TOML.
func WriteTOML(d *Definition, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Write encodes d in the given format.
func Write(d *Definition, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(d, w)
	case FormatTOML:
		return WriteTOML(d, w)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown definition format %q", format)
	}
}

// MarshalJSON returns the JSON definition of g.
func MarshalJSON(g *grid.Grid) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(FromGrid(g), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Import reads the definition file at path, choosing the decoder from its
// extension, and builds its grid.
func Import(path string) (*grid.Grid, *Definition, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "maze file %s not found", path)
		}
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	d, err := Read(f, format)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	g, err := d.Grid()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, d, nil
}

// Export writes d to path, choosing the encoder from its extension.
func Export(d *Definition, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(d, f, format)
}
