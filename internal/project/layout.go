package project

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/SocketPlan/internal/configurator"
	"github.com/piwi3910/SocketPlan/internal/model"
)

// LayoutVersion is written into every layout document.
const LayoutVersion = "1.0.0"

// Format is the encoding of a layout document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatForPath picks the document format from a file extension.
// Anything other than .yaml or .yml is JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LayoutDocument is the top-level structure of a saved layout.
type LayoutDocument struct {
	Version   string       `json:"version" yaml:"version"`
	CreatedAt string       `json:"created_at" yaml:"created_at"`
	Layout    model.Layout `json:"layout" yaml:"layout"`
}

// NewLayoutDocument wraps layout with the current version and timestamp.
func NewLayoutDocument(layout model.Layout) LayoutDocument {
	return LayoutDocument{
		Version:   LayoutVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Layout:    layout,
	}
}

// EncodeLayout writes layout as a versioned document to w.
func EncodeLayout(w io.Writer, layout model.Layout, format Format) error {
	doc := NewLayoutDocument(layout)
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode layout: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode layout: %w", err)
		}
		return nil
	}
}

// DecodeLayout reads a layout document from r. Documents without a version
// are rejected.
func DecodeLayout(r io.Reader, format Format) (LayoutDocument, error) {
	var doc LayoutDocument
	var err error
	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
	default:
		err = json.NewDecoder(r).Decode(&doc)
	}
	if err != nil {
		return LayoutDocument{}, fmt.Errorf("failed to parse layout: %w", err)
	}
	if doc.Version == "" {
		return LayoutDocument{}, fmt.Errorf("invalid layout file: missing version field")
	}
	return doc, nil
}

// ExportLayout saves layout to path, as YAML when the extension asks for it
// and JSON otherwise. Missing parent directories are created.
func ExportLayout(path string, layout model.Layout) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create layout file: %w", err)
	}
	if err := EncodeLayout(f, layout, FormatForPath(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ImportLayout reads a layout document from path without checking it
// against the placement rules.
func ImportLayout(path string) (LayoutDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return LayoutDocument{}, fmt.Errorf("failed to read layout file: %w", err)
	}
	defer f.Close()
	return DecodeLayout(f, FormatForPath(path))
}

// LoadLayout reads a layout document and replays it through the
// configurator. Plates are clamped and socket groups that break the
// placement rules are dropped and returned as warnings.
func LoadLayout(path string) (configurator.State, []error, error) {
	doc, err := ImportLayout(path)
	if err != nil {
		return configurator.State{}, nil, err
	}
	state, rejected := configurator.FromLayout(doc.Layout)
	return state, rejected, nil
}
