package notebook

import (
	"bytes"
	"encoding/json"

	"github.com/aretw0/jupypod/pkg/canvas"
	"github.com/aretw0/jupypod/pkg/core"
)

var emptySource = json.RawMessage(`""`)

// Encode converts the notes among entities into a document, in the given order.
// Groups are skipped. Note positions are written as stored: a nested note's
// position is relative to its group, not absolute, so after Decode it lands at
// that relative coordinate on the top level.
func Encode(entities []core.Entity, metadata map[string]any) Document {
	if metadata == nil {
		metadata = map[string]any{}
	}
	doc := Document{
		Metadata:      metadata,
		NBFormat:      FormatMajor,
		NBFormatMinor: FormatMinor,
		Cells:         []Cell{},
	}

	for _, e := range entities {
		if e.IsGroup() {
			continue
		}
		src := e.Content
		if len(src) == 0 {
			src = emptySource
		}
		doc.Cells = append(doc.Cells, Cell{
			CellType: CellTypeMarkdown,
			Metadata: CellMetadata{ID: e.ID, Position: e.Position},
			Source:   append(json.RawMessage(nil), src...),
		})
	}
	return doc
}

// Decode rebuilds one top-level note per cell. Stored ids are ignored and fresh
// ones are drawn from newID (NanoID when nil).
func Decode(doc Document, newID canvas.IDGenerator) []core.Entity {
	if newID == nil {
		newID = canvas.NanoID
	}

	out := make([]core.Entity, 0, len(doc.Cells))
	for _, c := range doc.Cells {
		e := core.Entity{
			ID:       newID(),
			Kind:     core.KindNote,
			Position: c.Metadata.Position,
			Size:     canvas.DefaultNoteSize,
		}
		if src := bytes.TrimSpace(c.Source); len(src) > 0 && !bytes.Equal(src, emptySource) && string(src) != "null" {
			e.Content = canvas.NormalizeContent(src)
		}
		out = append(out, e)
	}
	return out
}
