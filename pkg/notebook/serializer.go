package notebook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/jupypod/pkg/core"
)

// Serializer defines how to read and write a notebook file format.
type Serializer interface {
	// Parse reads from r and returns a Document.
	Parse(r io.Reader) (*Document, error)
	// Serialize converts the Document to bytes.
	Serialize(doc Document) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers keyed by file extension.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".ipynb": NewJSONSerializer(),
		".json":  NewJSONSerializer(),
		".yaml":  NewYAMLSerializer(),
		".yml":   NewYAMLSerializer(),
	}
}

// SerializerFor picks the serializer matching the extension of path, falling
// back to JSON for unknown extensions.
func SerializerFor(path string) Serializer {
	if s, ok := DefaultSerializers()[strings.ToLower(filepath.Ext(path))]; ok {
		return s
	}
	return NewJSONSerializer()
}

// --- JSON Serializer ---

// JSONSerializer handles the native .ipynb representation.
type JSONSerializer struct {
	// Indent is the indentation used on Serialize. Empty means compact output.
	Indent string
}

// NewJSONSerializer creates a JSON serializer with one-space indentation, as
// written by Jupyter.
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{Indent: " "}
}

func (s *JSONSerializer) Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", core.ErrMalformedDocument, err)
	}
	if doc.Cells == nil {
		return nil, fmt.Errorf("%w: missing cells array", core.ErrMalformedDocument)
	}
	return &doc, nil
}

func (s *JSONSerializer) Serialize(doc Document) ([]byte, error) {
	if s.Indent == "" {
		return json.Marshal(doc)
	}
	return json.MarshalIndent(doc, "", s.Indent)
}

// --- YAML Serializer ---

// YAMLSerializer reads and writes the same document as YAML. Cell sources are
// converted to and from plain YAML values.
type YAMLSerializer struct{}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

type yamlDocument struct {
	Metadata      map[string]any `yaml:"metadata"`
	NBFormat      int            `yaml:"nbformat"`
	NBFormatMinor int            `yaml:"nbformat_minor"`
	Cells         []yamlCell     `yaml:"cells"`
}

type yamlCell struct {
	CellType string       `yaml:"cell_type"`
	Metadata CellMetadata `yaml:"metadata"`
	Source   any          `yaml:"source"`
}

func (s *YAMLSerializer) Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var payload yamlDocument
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: invalid yaml: %v", core.ErrMalformedDocument, err)
	}
	if payload.Cells == nil {
		return nil, fmt.Errorf("%w: missing cells array", core.ErrMalformedDocument)
	}

	doc := &Document{
		Metadata:      payload.Metadata,
		NBFormat:      payload.NBFormat,
		NBFormatMinor: payload.NBFormatMinor,
		Cells:         make([]Cell, 0, len(payload.Cells)),
	}
	for i, c := range payload.Cells {
		src, err := json.Marshal(c.Source)
		if err != nil {
			return nil, fmt.Errorf("%w: cell %d: %v", core.ErrMalformedDocument, i, err)
		}
		doc.Cells = append(doc.Cells, Cell{CellType: c.CellType, Metadata: c.Metadata, Source: src})
	}
	return doc, nil
}

func (s *YAMLSerializer) Serialize(doc Document) ([]byte, error) {
	payload := yamlDocument{
		Metadata:      doc.Metadata,
		NBFormat:      doc.NBFormat,
		NBFormatMinor: doc.NBFormatMinor,
		Cells:         make([]yamlCell, 0, len(doc.Cells)),
	}
	if payload.Metadata == nil {
		payload.Metadata = map[string]any{}
	}

	for i, c := range doc.Cells {
		var src any = ""
		if len(bytes.TrimSpace(c.Source)) > 0 {
			if err := json.Unmarshal(c.Source, &src); err != nil {
				return nil, fmt.Errorf("cell %d: invalid source: %w", i, err)
			}
		}
		payload.Cells = append(payload.Cells, yamlCell{CellType: c.CellType, Metadata: c.Metadata, Source: src})
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(payload); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
