package notebook

import (
	"encoding/json"

	"github.com/aretw0/jupypod/pkg/core"
)

const (
	// FormatMajor and FormatMinor are the nbformat versions written on save.
	FormatMajor = 4
	FormatMinor = 0

	// CellTypeMarkdown is the only cell type produced by the canvas.
	CellTypeMarkdown = "markdown"
)

// Document is a notebook file.
type Document struct {
	Metadata      map[string]any `json:"metadata"`
	NBFormat      int            `json:"nbformat"`
	NBFormatMinor int            `json:"nbformat_minor"`
	Cells         []Cell         `json:"cells"`
}

// Cell is one persisted note.
type Cell struct {
	CellType string       `json:"cell_type"`
	Metadata CellMetadata `json:"metadata"`
	// Source is the opaque rich-text document of the note.
	Source json.RawMessage `json:"source"`
}

// CellMetadata carries the canvas placement of a cell.
type CellMetadata struct {
	ID       string     `json:"id" yaml:"id"`
	Position core.Point `json:"position" yaml:"position"`
}
